package certs

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

type cachingProvider struct {
	sync.Mutex
	providers         []CertificatesProvider
	certDetails       []*CertificateSummary
	blacklistedArnMap map[string]bool
	ttl               time.Duration
	loadedAt          time.Time
}

type certProviderWrapper struct {
	certs []*CertificateSummary
	err   error
}

// NewCachingProvider collects certificates from multiple providers
// and keeps them cached in memory for ttl. The cache is loaded on the
// first call to GetCertificates and reloaded on the first call after it
// expired. If a reload fails the last known cached values are considered
// current.
func NewCachingProvider(ttl time.Duration, blacklistedArnMap map[string]bool, providers ...CertificatesProvider) CertificatesProvider {
	return &cachingProvider{
		providers:         providers,
		blacklistedArnMap: blacklistedArnMap,
		ttl:               ttl,
	}
}

// GetCertificates returns a copy of the cached certificates
func (cc *cachingProvider) GetCertificates(ctx context.Context) ([]*CertificateSummary, error) {
	cc.Lock()
	defer cc.Unlock()

	if cc.loadedAt.IsZero() || currentTime().Sub(cc.loadedAt) >= cc.ttl {
		if err := cc.updateCertCache(ctx); err != nil {
			if cc.loadedAt.IsZero() {
				return nil, fmt.Errorf("initial load of certificates failed: %w", err)
			}
			log.Infof("certificate cache update failed: %v", err)
		}
	}

	certCopy := make([]*CertificateSummary, len(cc.certDetails))
	copy(certCopy, cc.certDetails)
	return certCopy, nil
}

// updateCertCache will only update the current certificate cache if
// all providers are successful.  In case it fails it will return the
// original error.
func (cc *cachingProvider) updateCertCache(ctx context.Context) error {
	var wg sync.WaitGroup
	ch := make(chan certProviderWrapper, len(cc.providers))
	wg.Add(len(cc.providers))
	for _, cp := range cc.providers {
		go func(provider CertificatesProvider) {
			defer wg.Done()
			res, err := provider.GetCertificates(ctx)
			ch <- certProviderWrapper{certs: res, err: err}
		}(cp)
	}
	wg.Wait()
	close(ch)

	newList := make([]*CertificateSummary, 0)
	for providerResponse := range ch {
		if providerResponse.err != nil {
			return providerResponse.err
		}
		for _, certSummary := range providerResponse.certs {
			if !cc.blacklistedArnMap[certSummary.ID()] {
				newList = append(newList, certSummary)
			}
		}
	}
	cc.certDetails = newList
	cc.loadedAt = currentTime()
	return nil
}
