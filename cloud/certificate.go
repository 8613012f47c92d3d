package cloud

import "time"

// SSLCertificate is a server certificate held in the provider's certificate
// store.
type SSLCertificate struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Body        string    `json:"body,omitempty"`
	Chain       string    `json:"chain,omitempty"`
	DomainNames []string  `json:"domainNames,omitempty"`
	NotBefore   time.Time `json:"notBefore"`
	NotAfter    time.Time `json:"notAfter"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}
