package aws

import (
	"crypto/x509"
	"encoding/pem"
	"errors"

	"github.com/zalando-incubator/aws-cloud-adapter/certs"
)

var (
	// ErrNoCertificates is used to signal that no certificates were found in the PEM data
	ErrNoCertificates = errors.New("no certificates found in PEM data")
)

// ParseCertificates parses X509 PEM-encoded certificates from a string
func ParseCertificates(pemCertificates string) ([]*x509.Certificate, error) {
	var result []*x509.Certificate

	rest := []byte(pemCertificates)
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			return result, nil
		}
		if block.Type != "CERTIFICATE" {
			continue
		}

		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, err
		}
		result = append(result, cert)
	}
}

// summaryFromPEM builds a certificate summary from the leaf certificate of
// body. The common name comes first in the domain names.
func summaryFromPEM(id, body, chain string) (*certs.CertificateSummary, error) {
	parsed, err := ParseCertificates(body)
	if err != nil {
		return nil, err
	}
	if len(parsed) == 0 {
		return nil, ErrNoCertificates
	}
	leaf := parsed[0]

	names := append([]string{leaf.Subject.CommonName}, leaf.DNSNames...)
	return certs.NewCertificate(id, names, leaf.NotBefore, leaf.NotAfter).WithPEM(body, chain), nil
}
