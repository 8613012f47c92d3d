package certs

import (
	"context"
	"time"
)

// CertificatesProvider interface for Certificate Provider like
// AWS IAM or AWS ACM
type CertificatesProvider interface {
	GetCertificates(ctx context.Context) ([]*CertificateSummary, error)
}

// CertificateSummary is the business object for Certificates
type CertificateSummary struct {
	id          string
	name        string
	domainNames []string
	notBefore   time.Time
	notAfter    time.Time
	uploadedAt  time.Time
	body        string
	chain       string
}

// NewCertificate returns a new CertificateSummary with the matching
// fields set from the arguments
func NewCertificate(id string, domainNames []string, notBefore, notAfter time.Time) *CertificateSummary {
	names := make([]string, 0, len(domainNames))
	for _, n := range domainNames {
		if n != "" {
			names = append(names, n)
		}
	}
	return &CertificateSummary{
		id:          id,
		domainNames: names,
		notBefore:   notBefore,
		notAfter:    notAfter,
	}
}

// WithName sets the provider specific name of the certificate.
func (c *CertificateSummary) WithName(name string) *CertificateSummary {
	c.name = name
	return c
}

// WithPEM keeps the PEM encoded certificate body and chain.
func (c *CertificateSummary) WithPEM(body, chain string) *CertificateSummary {
	c.body = body
	c.chain = chain
	return c
}

func (c *CertificateSummary) WithUploadedAt(t time.Time) *CertificateSummary {
	c.uploadedAt = t
	return c
}

// ID returns the certificate ID for the underlying provider
func (c *CertificateSummary) ID() string {
	return c.id
}

// Name returns the name of the certificate, falling back to the ID.
func (c *CertificateSummary) Name() string {
	if c.name == "" {
		return c.id
	}
	return c.name
}

// DomainNames returns all the host names
// (sites, IP addresses, common names, etc.) protected by the
// certificate
func (c *CertificateSummary) DomainNames() []string {
	return c.domainNames
}

func (c *CertificateSummary) NotBefore() time.Time {
	return c.notBefore
}

func (c *CertificateSummary) NotAfter() time.Time {
	return c.notAfter
}

func (c *CertificateSummary) UploadedAt() time.Time {
	return c.uploadedAt
}

func (c *CertificateSummary) Body() string {
	return c.body
}

func (c *CertificateSummary) Chain() string {
	return c.chain
}

// ValidAt reports whether t lies within the validity period.
func (c *CertificateSummary) ValidAt(t time.Time) bool {
	return !t.Before(c.notBefore) && !t.After(c.notAfter)
}

// For tests: allow overriding current time
var currentTime = time.Now
