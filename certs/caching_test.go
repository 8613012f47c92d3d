package certs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProvider struct {
	calls int
	certs []*CertificateSummary
	err   error
}

func (p *countingProvider) GetCertificates(context.Context) ([]*CertificateSummary, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.certs, nil
}

func TestCachingProvider(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	defer func(f func() time.Time) { currentTime = f }(currentTime)
	currentTime = func() time.Time { return now }

	iam := &countingProvider{certs: []*CertificateSummary{
		NewCertificate("arn:aws:iam::123456789012:server-certificate/web", []string{"web.example.org"}, now, now.Add(time.Hour)),
	}}
	acm := &countingProvider{certs: []*CertificateSummary{
		NewCertificate("arn:aws:acm:us-east-1:123456789012:certificate/a", []string{"a.example.org"}, now, now.Add(time.Hour)),
		NewCertificate("arn:aws:acm:us-east-1:123456789012:certificate/b", []string{"b.example.org"}, now, now.Add(time.Hour)),
	}}
	blacklist := map[string]bool{"arn:aws:acm:us-east-1:123456789012:certificate/b": true}

	p := NewCachingProvider(10*time.Minute, blacklist, iam, acm)

	summaries, err := p.GetCertificates(context.Background())
	require.NoError(t, err)
	assert.Len(t, summaries, 2)

	now = now.Add(5 * time.Minute)
	_, err = p.GetCertificates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, iam.calls)
	assert.Equal(t, 1, acm.calls)

	// an expired cache is reloaded, a failing reload keeps the old values
	now = now.Add(10 * time.Minute)
	acm.err = errors.New("throttled")
	summaries, err = p.GetCertificates(context.Background())
	require.NoError(t, err)
	assert.Len(t, summaries, 2)
	assert.Equal(t, 2, acm.calls)
}

func TestCachingProviderInitialFailure(t *testing.T) {
	p := NewCachingProvider(time.Minute, nil, &countingProvider{err: errors.New("denied")})
	_, err := p.GetCertificates(context.Background())
	assert.EqualError(t, err, "initial load of certificates failed: denied")
}

func TestCertificateSummary(t *testing.T) {
	now := time.Now()
	c := NewCertificate("id", []string{"", "a.org"}, now.Add(-time.Hour), now.Add(time.Hour))
	assert.Equal(t, []string{"a.org"}, c.DomainNames())
	assert.Equal(t, "id", c.Name())
	assert.Equal(t, "web", c.WithName("web").Name())
	assert.True(t, c.ValidAt(now))
	assert.False(t, c.ValidAt(now.Add(2*time.Hour)))

	c.WithPEM("body", "chain")
	assert.Equal(t, "body", c.Body())
	assert.Equal(t, "chain", c.Chain())
}
