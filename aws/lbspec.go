package aws

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ghodss/yaml"
	log "github.com/sirupsen/logrus"

	"github.com/zalando-incubator/aws-cloud-adapter/cloud"
)

// LoadBalancerSpec is the document form of a load balancer create request as
// read from YAML or JSON files.
type LoadBalancerSpec struct {
	Name           string           `json:"name"`
	Description    string           `json:"description,omitempty"`
	Internal       bool             `json:"internal,omitempty"`
	IPVersions     []string         `json:"ipVersions,omitempty"`
	Subnets        []string         `json:"subnets,omitempty"`
	SecurityGroups []string         `json:"securityGroups,omitempty"`
	Listeners      []ListenerSpec   `json:"listeners"`
	Endpoints      []string         `json:"endpoints,omitempty"`
	HealthCheck    *HealthCheckSpec `json:"healthCheck,omitempty"`
}

type ListenerSpec struct {
	Protocol       string `json:"protocol"`
	PublicPort     int    `json:"publicPort"`
	PrivatePort    int    `json:"privatePort"`
	SSLCertificate string `json:"sslCertificate,omitempty"`
}

type HealthCheckSpec struct {
	Protocol       string `json:"protocol,omitempty"`
	Port           int    `json:"port,omitempty"`
	Path           string `json:"path,omitempty"`
	Interval       string `json:"interval,omitempty"`
	Timeout        string `json:"timeout,omitempty"`
	HealthyCount   int    `json:"healthyCount,omitempty"`
	UnhealthyCount int    `json:"unhealthyCount,omitempty"`
}

// NewLoadBalancerSpecFromYAML parses a raw slice of yaml bytes into a new
// LoadBalancerSpec.
func NewLoadBalancerSpecFromYAML(b []byte) (*LoadBalancerSpec, error) {
	spec := &LoadBalancerSpec{}
	if err := yaml.Unmarshal(b, spec); err != nil {
		return nil, err
	}
	return spec, nil
}

// Hash computes a hash of the spec which can be used to detect changes
// between two versions. The hash string will be empty if there was an error
// while encoding.
func (s *LoadBalancerSpec) Hash() string {
	buf, err := json.Marshal(s)
	if err != nil {
		log.Errorf("failed to marshal load balancer spec: %v", err)
		return ""
	}
	hash := sha256.Sum256(buf)
	return hex.EncodeToString(hash[:])
}

// CreateOptions converts the spec into create options.
func (s *LoadBalancerSpec) CreateOptions() (*cloud.LoadBalancerCreateOptions, error) {
	listeners := make([]cloud.LbListener, 0, len(s.Listeners))
	for _, l := range s.Listeners {
		protocol, err := parseProtocol(l.Protocol)
		if err != nil {
			return nil, err
		}
		listeners = append(listeners, cloud.LbListener{
			Algorithm:        cloud.LbAlgorithmRoundRobin,
			Persistence:      cloud.LbPersistenceNone,
			Protocol:         protocol,
			PublicPort:       l.PublicPort,
			PrivatePort:      l.PrivatePort,
			SSLCertificateID: l.SSLCertificate,
		})
	}

	opts := cloud.NewLoadBalancerCreateOptions(s.Name, s.Description, listeners...).
		InSubnets(s.Subnets...).
		WithEndpoints(s.Endpoints...)
	opts.SecurityGroups = s.SecurityGroups
	if s.Internal {
		opts.AsInternal()
	}
	if hash := s.Hash(); hash != "" {
		opts.WithTag(specHashTag, hash)
	}
	for _, v := range s.IPVersions {
		switch strings.ToUpper(v) {
		case "IPV4":
			opts.IPVersions = append(opts.IPVersions, cloud.IPVersion4)
		case "IPV6":
			opts.IPVersions = append(opts.IPVersions, cloud.IPVersion6)
		default:
			return nil, fmt.Errorf("%w: unknown IP version %q", cloud.ErrInvalidArgument, v)
		}
	}

	if s.HealthCheck != nil {
		hc, err := s.HealthCheck.Options()
		if err != nil {
			return nil, err
		}
		opts.WithHealthCheck(hc)
	}
	return opts, nil
}

// NewHealthCheckSpecFromYAML parses a health check document.
func NewHealthCheckSpecFromYAML(b []byte) (*HealthCheckSpec, error) {
	spec := &HealthCheckSpec{}
	if err := yaml.Unmarshal(b, spec); err != nil {
		return nil, err
	}
	return spec, nil
}

// Options converts the spec into health check options. Empty durations stay
// zero.
func (h *HealthCheckSpec) Options() (*cloud.HealthCheckOptions, error) {
	hc := &cloud.HealthCheckOptions{
		Port:           h.Port,
		Path:           h.Path,
		HealthyCount:   h.HealthyCount,
		UnhealthyCount: h.UnhealthyCount,
	}
	var err error
	if h.Protocol != "" {
		if hc.Protocol, err = parseProtocol(h.Protocol); err != nil {
			return nil, err
		}
	}
	if h.Interval != "" {
		if hc.Interval, err = time.ParseDuration(h.Interval); err != nil {
			return nil, fmt.Errorf("%w: interval: %v", cloud.ErrInvalidArgument, err)
		}
	}
	if h.Timeout != "" {
		if hc.Timeout, err = time.ParseDuration(h.Timeout); err != nil {
			return nil, fmt.Errorf("%w: timeout: %v", cloud.ErrInvalidArgument, err)
		}
	}
	return hc, nil
}

func parseProtocol(p string) (cloud.LbProtocol, error) {
	switch strings.ToUpper(p) {
	case "HTTP":
		return cloud.LbProtocolHTTP, nil
	case "HTTPS":
		return cloud.LbProtocolHTTPS, nil
	case "RAW_TCP", "TCP":
		return cloud.LbProtocolRawTCP, nil
	}
	return "", fmt.Errorf("%w: unknown protocol %q", cloud.ErrInvalidArgument, p)
}
