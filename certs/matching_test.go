package certs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dummyCert(id string, names []string, notBefore, notAfter time.Time) *CertificateSummary {
	return NewCertificate(id, names, notBefore, notAfter)
}

func TestFindBestMatchingCertificate(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	defer func(f func() time.Time) { currentTime = f }(currentTime)
	currentTime = func() time.Time { return now }

	day := 24 * time.Hour
	hostname := "shop.lb.example.org"

	exact := dummyCert("exact", []string{hostname}, now.Add(-7*day), now.Add(30*day))
	wildcard := dummyCert("wildcard", []string{"*.lb.example.org"}, now.Add(-7*day), now.Add(30*day))
	foreign := dummyCert("foreign", []string{"*.other.org", "other.org"}, now.Add(-7*day), now.Add(30*day))
	deepWildcard := dummyCert("deep", []string{"*.example.org"}, now.Add(-7*day), now.Add(30*day))
	expired := dummyCert("expired", []string{hostname}, now.Add(-60*day), now.Add(-day))
	future := dummyCert("future", []string{hostname}, now.Add(day), now.Add(60*day))
	expiresSoon := dummyCert("soon", []string{hostname}, now.Add(-day), now.Add(3*day))
	newer := dummyCert("newer", []string{hostname}, now.Add(-day), now.Add(365*day))
	older := dummyCert("older", []string{hostname}, now.Add(-300*day), now.Add(365*day))
	sameStartShort := dummyCert("short", []string{hostname}, now.Add(-7*day), now.Add(10*day))
	sameStartLong := dummyCert("long", []string{hostname}, now.Add(-7*day), now.Add(100*day))
	altNames := dummyCert("alt", []string{"other.org", hostname, "*.other.org"}, now.Add(-7*day), now.Add(30*day))

	for _, ti := range []struct {
		msg    string
		certs  []*CertificateSummary
		expect *CertificateSummary
	}{
		{"exact match", []*CertificateSummary{exact}, exact},
		{"wildcard match", []*CertificateSummary{wildcard}, wildcard},
		{"exact preferred over wildcard", []*CertificateSummary{wildcard, exact}, exact},
		{"exact kept over later wildcard", []*CertificateSummary{exact, wildcard}, exact},
		{"wildcard covers one label only", []*CertificateSummary{deepWildcard}, nil},
		{"foreign domain", []*CertificateSummary{foreign}, nil},
		{"alternative names", []*CertificateSummary{foreign, altNames}, altNames},
		{"expired", []*CertificateSummary{expired}, nil},
		{"not yet valid", []*CertificateSummary{future}, nil},
		{"expiring soon still used alone", []*CertificateSummary{expiresSoon}, expiresSoon},
		{"expiring soon replaced by older", []*CertificateSummary{expiresSoon, older}, older},
		{"newest first", []*CertificateSummary{older, newer}, newer},
		{"newest kept", []*CertificateSummary{newer, older}, newer},
		{"same start longer valid", []*CertificateSummary{sameStartShort, sameStartLong}, sameStartLong},
		{"same start longer kept", []*CertificateSummary{sameStartLong, sameStartShort}, sameStartLong},
	} {
		t.Run(ti.msg, func(t *testing.T) {
			c, err := FindBestMatchingCertificate(ti.certs, hostname)
			if ti.expect == nil {
				assert.ErrorIs(t, err, ErrNoMatchingCertificateFound)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, ti.expect.ID(), c.ID())
		})
	}
}

func TestGlob(t *testing.T) {
	for _, ti := range []struct {
		msg     string
		pattern string
		subj    string
		expect  bool
	}{
		{"exact match", "www.foo.org", "www.foo.org", true},
		{"simple glob", "*", "www.foo.org", true},
		{"simple match", "*.foo.org", "www.foo.org", true},
		{"wrong prefix", "www.foo.org", "wwww.foo.org", false},
		{"wrong suffix", "www.foo.org", "www.foo.orgg", false},
		{"two labels", "*.foo.org", "www.baz.foo.org", false},
		{"apex", "*.foo.org", "foo.org", false},
		{"unrelated host", "*.foo.org", "localhost", false},
		{"empty pattern", "", "", true},
	} {
		t.Run(ti.msg, func(t *testing.T) {
			assert.Equal(t, ti.expect, prefixGlob(ti.pattern, ti.subj))
		})
	}
}
