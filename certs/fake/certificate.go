package fake

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/zalando-incubator/aws-cloud-adapter/certs"
)

// CertificateProvider returns a fixed list of certificates.
type CertificateProvider struct {
	Summaries []*certs.CertificateSummary
	Err       error
}

func (m *CertificateProvider) GetCertificates(context.Context) ([]*certs.CertificateSummary, error) {
	return m.Summaries, m.Err
}

var (
	keyOnce sync.Once
	key     *rsa.PrivateKey
	keyErr  error
)

// NewPEMCertificate returns a self signed, PEM encoded certificate for the
// given names. The first name becomes the common name.
func NewPEMCertificate(names []string, notBefore, notAfter time.Time) (string, error) {
	keyOnce.Do(func() {
		key, keyErr = rsa.GenerateKey(rand.Reader, 2048)
	})
	if keyErr != nil {
		return "", fmt.Errorf("unable to generate certificate key: %w", keyErr)
	}

	cert := x509.Certificate{
		SerialNumber: big.NewInt(time.Now().UnixNano()),
		NotBefore:    notBefore,
		NotAfter:     notAfter,

		KeyUsage:              x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
	}
	if len(names) > 0 {
		cert.Subject = pkix.Name{CommonName: names[0]}
		cert.DNSNames = names[1:]
	}

	body, err := x509.CreateCertificate(rand.Reader, &cert, &cert, key.Public(), key)
	if err != nil {
		return "", fmt.Errorf("unable to create certificate: %w", err)
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: body})), nil
}
