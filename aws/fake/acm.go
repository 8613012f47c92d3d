package fake

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/acm"
	"github.com/aws/aws-sdk-go-v2/service/acm/types"
)

type ACMClient struct {
	cert map[string]*acm.GetCertificateOutput
	err  map[string]error
}

func (m *ACMClient) ListCertificates(ctx context.Context, input *acm.ListCertificatesInput, fn ...func(*acm.Options)) (*acm.ListCertificatesOutput, error) {
	if err, ok := m.err["ListCertificates"]; ok {
		return nil, err
	}
	arns := make([]string, 0, len(m.cert))
	for arn := range m.cert {
		arns = append(arns, arn)
	}
	sort.Strings(arns)

	output := &acm.ListCertificatesOutput{
		CertificateSummaryList: make([]types.CertificateSummary, 0, len(arns)),
	}
	for _, arn := range arns {
		output.CertificateSummaryList = append(output.CertificateSummaryList, types.CertificateSummary{
			CertificateArn: aws.String(arn),
		})
	}
	return output, nil
}

func (m *ACMClient) GetCertificate(ctx context.Context, input *acm.GetCertificateInput, fn ...func(*acm.Options)) (*acm.GetCertificateOutput, error) {
	if err, ok := m.err["GetCertificate"]; ok {
		return nil, err
	}
	if input.CertificateArn == nil {
		return nil, fmt.Errorf("expected a valid CertificateArn, got: nil")
	}

	arn := *input.CertificateArn
	if _, ok := m.cert[arn]; ok {
		return m.cert[arn], nil
	}
	return nil, fmt.Errorf("cert not found: %s", arn)
}

func NewACMClient(cert map[string]*acm.GetCertificateOutput, err map[string]error) *ACMClient {
	return &ACMClient{
		cert: cert,
		err:  err,
	}
}
