package certs

import (
	"errors"
	"strings"
	"time"
)

const (
	// minimal time period for the NotAfter attribute of a Cert to be in the future
	minimalCertValidityPeriod = 7 * 24 * time.Hour
	// used as wildcard char in Cert Hostname/AltName matches
	glob = "*"
)

// ErrNoMatchingCertificateFound is used if there is no matching certificate found
var ErrNoMatchingCertificateFound = errors.New("no matching certificate found")

// FindBestMatchingCertificate uses a suffix search, best match operation, in order to find the best matching
// certificate for a given hostname. Certificates outside of their validity period are ignored.
func FindBestMatchingCertificate(certs []*CertificateSummary, hostname string) (*CertificateSummary, error) {
	var candidate *CertificateSummary
	longestMatch := -1
	now := currentTime()

	for _, cert := range certs {
		if !cert.ValidAt(now) {
			continue
		}
		for _, altName := range cert.DomainNames() {
			if !prefixGlob(altName, hostname) {
				continue
			}
			nameLength := len(altName)
			if candidate == nil || preferred(cert, nameLength, candidate, longestMatch, now) {
				longestMatch = nameLength
				candidate = cert
			}
		}
	}

	if candidate == nil {
		return nil, ErrNoMatchingCertificateFound
	}
	return candidate, nil
}

// preferred reports whether cert, matching with a name of nameLength, should
// replace the current candidate matching with longestMatch.
func preferred(cert *CertificateSummary, nameLength int, candidate *CertificateSummary, longestMatch int, now time.Time) bool {
	expiresSoon := func(c *CertificateSummary) bool {
		return c.NotAfter().Add(-minimalCertValidityPeriod).Before(now)
	}

	switch {
	case nameLength > longestMatch:
		// more specific cert: *.example.org -> foo.example.org
		return cert.NotBefore().Before(now) && !expiresSoon(cert)
	case nameLength == longestMatch:
		switch {
		case cert.NotBefore().After(candidate.NotBefore()):
			// newer and not expiring within the validity period
			return !expiresSoon(cert)
		case cert.NotBefore().Equal(candidate.NotBefore()):
			// same issue date, longer valid
			return !candidate.NotAfter().After(cert.NotAfter())
		default:
			// older but the candidate expires soon and cert lasts longer
			return expiresSoon(candidate) && cert.NotAfter().After(candidate.NotAfter())
		}
	}
	// less specific cert only when the candidate is not usable anymore
	return expiresSoon(candidate) && now.Before(candidate.NotBefore()) &&
		cert.NotBefore().Before(now) && !expiresSoon(cert)
}

func prefixGlob(pattern, subj string) bool {
	// Empty pattern can only match empty subject
	if pattern == "" {
		return subj == pattern
	}

	// If the pattern _is_ a glob, it matches everything
	if pattern == glob {
		return true
	}

	if !strings.HasPrefix(pattern, glob) {
		// No globs in pattern, so test for equality
		return subj == pattern
	}

	pat := pattern[1:]
	trimmedSubj := strings.TrimSuffix(subj, pat)
	return trimmedSubj != subj && trimmedSubj != "" && !strings.Contains(trimmedSubj, ".")
}
