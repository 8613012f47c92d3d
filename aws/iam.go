package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/iam/types"
	log "github.com/sirupsen/logrus"

	"github.com/zalando-incubator/aws-cloud-adapter/certs"
)

type iamCertificateProvider struct {
	api IAMAPI
}

func newIAMCertProvider(api IAMAPI) certs.CertificatesProvider {
	return &iamCertificateProvider{api: api}
}

// GetCertificates returns the IAM server certificates. Certificates whose
// body cannot be parsed are skipped.
func (p *iamCertificateProvider) GetCertificates(ctx context.Context) ([]*certs.CertificateSummary, error) {
	t := beginTrace("SSLCertificates.listIAMCertificates")
	defer t.end()

	certList, err := p.listCerts(ctx)
	if err != nil {
		return nil, t.fail(err)
	}
	list := make([]*certs.CertificateSummary, 0, len(certList))
	for _, o := range certList {
		resp, err := p.api.GetServerCertificate(ctx, &iam.GetServerCertificateInput{ServerCertificateName: o.ServerCertificateName})
		if err != nil {
			return nil, t.fail(err)
		}
		summary, err := newIAMCertSummary(resp.ServerCertificate)
		if err != nil {
			log.Warnf("skipping IAM certificate %s: %v", aws.ToString(o.Arn), err)
			continue
		}
		list = append(list, summary)
	}
	return list, nil
}

// listCerts returns a list of iam certificates filtered by Path / for all ELB/ELBv2 certificate
// https://docs.aws.amazon.com/IAM/latest/APIReference/API_ListServerCertificates.html#API_ListServerCertificates_RequestParameters
func (p *iamCertificateProvider) listCerts(ctx context.Context) ([]types.ServerCertificateMetadata, error) {
	var certList []types.ServerCertificateMetadata
	params := &iam.ListServerCertificatesInput{
		PathPrefix: aws.String("/"),
	}
	for {
		resp, err := p.api.ListServerCertificates(ctx, params)
		if err != nil {
			return nil, err
		}
		certList = append(certList, resp.ServerCertificateMetadataList...)
		if !resp.IsTruncated || aws.ToString(resp.Marker) == "" {
			return certList, nil
		}
		params.Marker = resp.Marker
	}
}

func newIAMCertSummary(cert *types.ServerCertificate) (*certs.CertificateSummary, error) {
	if cert == nil || cert.ServerCertificateMetadata == nil {
		return nil, ErrNoCertificates
	}
	meta := cert.ServerCertificateMetadata
	summary, err := summaryFromPEM(aws.ToString(meta.Arn), aws.ToString(cert.CertificateBody), aws.ToString(cert.CertificateChain))
	if err != nil {
		return nil, err
	}
	return summary.
		WithName(aws.ToString(meta.ServerCertificateName)).
		WithUploadedAt(aws.ToTime(meta.UploadDate)), nil
}
