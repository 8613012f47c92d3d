package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/acm"
	"github.com/aws/aws-sdk-go-v2/service/acm/types"
	log "github.com/sirupsen/logrus"

	"github.com/zalando-incubator/aws-cloud-adapter/certs"
)

type acmCertificateProvider struct {
	api ACMAPI
}

func newACMCertProvider(api ACMAPI) certs.CertificatesProvider {
	return &acmCertificateProvider{api: api}
}

// GetCertificates returns the issued AWS ACM certificates
func (p *acmCertificateProvider) GetCertificates(ctx context.Context) ([]*certs.CertificateSummary, error) {
	t := beginTrace("SSLCertificates.listACMCertificates")
	defer t.end()

	acmSummaries, err := p.listCerts(ctx)
	if err != nil {
		return nil, t.fail(err)
	}
	result := make([]*certs.CertificateSummary, 0, len(acmSummaries))
	for _, o := range acmSummaries {
		arn := aws.ToString(o.CertificateArn)
		resp, err := p.api.GetCertificate(ctx, &acm.GetCertificateInput{CertificateArn: o.CertificateArn})
		if err != nil {
			return nil, t.fail(err)
		}
		summary, err := summaryFromPEM(arn, aws.ToString(resp.Certificate), aws.ToString(resp.CertificateChain))
		if err != nil {
			log.Warnf("skipping ACM certificate %s: %v", arn, err)
			continue
		}
		result = append(result, summary.WithName(aws.ToString(o.DomainName)))
	}
	return result, nil
}

func (p *acmCertificateProvider) listCerts(ctx context.Context) ([]types.CertificateSummary, error) {
	params := &acm.ListCertificatesInput{
		CertificateStatuses: []types.CertificateStatus{types.CertificateStatusIssued},
	}
	var acmSummaries []types.CertificateSummary
	for {
		resp, err := p.api.ListCertificates(ctx, params)
		if err != nil {
			return nil, err
		}
		acmSummaries = append(acmSummaries, resp.CertificateSummaryList...)
		if aws.ToString(resp.NextToken) == "" {
			return acmSummaries, nil
		}
		params.NextToken = resp.NextToken
	}
}
