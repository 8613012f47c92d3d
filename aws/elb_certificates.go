package aws

import (
	"context"
	"errors"

	"github.com/zalando-incubator/aws-cloud-adapter/certs"
	"github.com/zalando-incubator/aws-cloud-adapter/cloud"
)

// ListSSLCertificates returns the certificates of the IAM and ACM stores.
func (s *LoadBalancerSupport) ListSSLCertificates(ctx context.Context) ([]*cloud.SSLCertificate, error) {
	t := beginTrace("LoadBalancers.listSSLCertificates")
	defer t.end()

	list, err := s.certs.GetCertificates(ctx)
	if err != nil {
		return nil, t.fail(err)
	}
	result := make([]*cloud.SSLCertificate, 0, len(list))
	for _, c := range list {
		result = append(result, toSSLCertificate(c))
	}
	return result, nil
}

// GetSSLCertificate returns the certificate with the given ARN or name, or nil
// when there is none.
func (s *LoadBalancerSupport) GetSSLCertificate(ctx context.Context, nameOrID string) (*cloud.SSLCertificate, error) {
	t := beginTrace("LoadBalancers.getSSLCertificate")
	defer t.end()

	list, err := s.certs.GetCertificates(ctx)
	if err != nil {
		return nil, t.fail(err)
	}
	for _, c := range list {
		if c.ID() == nameOrID {
			return toSSLCertificate(c), nil
		}
	}
	for _, c := range list {
		if c.Name() == nameOrID {
			return toSSLCertificate(c), nil
		}
	}
	return nil, nil
}

// FindSSLCertificate returns the certificate best matching hostname, or nil
// when none covers it.
func (s *LoadBalancerSupport) FindSSLCertificate(ctx context.Context, hostname string) (*cloud.SSLCertificate, error) {
	t := beginTrace("LoadBalancers.findSSLCertificate")
	defer t.end()

	list, err := s.certs.GetCertificates(ctx)
	if err != nil {
		return nil, t.fail(err)
	}
	best, err := certs.FindBestMatchingCertificate(list, hostname)
	if errors.Is(err, certs.ErrNoMatchingCertificateFound) {
		return nil, nil
	}
	if err != nil {
		return nil, t.fail(err)
	}
	return toSSLCertificate(best), nil
}

func toSSLCertificate(c *certs.CertificateSummary) *cloud.SSLCertificate {
	return &cloud.SSLCertificate{
		ID:          c.ID(),
		Name:        c.Name(),
		Body:        c.Body(),
		Chain:       c.Chain(),
		DomainNames: c.DomainNames(),
		NotBefore:   c.NotBefore(),
		NotAfter:    c.NotAfter(),
		CreatedAt:   c.UploadedAt(),
	}
}
