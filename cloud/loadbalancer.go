package cloud

import (
	"context"
	"time"
)

type LbAlgorithm string

const (
	LbAlgorithmRoundRobin LbAlgorithm = "ROUND_ROBIN"
	LbAlgorithmLeastConn  LbAlgorithm = "LEAST_CONN"
	LbAlgorithmSource     LbAlgorithm = "SOURCE"
)

type LbEndpointType string

const (
	LbEndpointTypeVM LbEndpointType = "VM"
	LbEndpointTypeIP LbEndpointType = "IP"
)

type LbEndpointState string

const (
	LbEndpointStateActive   LbEndpointState = "ACTIVE"
	LbEndpointStateInactive LbEndpointState = "INACTIVE"
)

type IPVersion string

const (
	IPVersion4 IPVersion = "IPV4"
	IPVersion6 IPVersion = "IPV6"
)

type LbPersistence string

const (
	LbPersistenceNone   LbPersistence = "NONE"
	LbPersistenceCookie LbPersistence = "COOKIE"
	LbPersistenceSubnet LbPersistence = "SUBNET"
)

type LbProtocol string

const (
	LbProtocolHTTP   LbProtocol = "HTTP"
	LbProtocolHTTPS  LbProtocol = "HTTPS"
	LbProtocolRawTCP LbProtocol = "RAW_TCP"
)

type LoadBalancerAddressType string

const (
	LoadBalancerAddressTypeDNS LoadBalancerAddressType = "DNS"
	LoadBalancerAddressTypeIP  LoadBalancerAddressType = "IP"
)

type LoadBalancerState string

const (
	LoadBalancerStatePending    LoadBalancerState = "PENDING"
	LoadBalancerStateActive     LoadBalancerState = "ACTIVE"
	LoadBalancerStateError      LoadBalancerState = "ERROR"
	LoadBalancerStateTerminated LoadBalancerState = "TERMINATED"
)

// LbListener maps a public port on the load balancer to a private port on
// its endpoints.
type LbListener struct {
	Algorithm        LbAlgorithm   `json:"algorithm"`
	Persistence      LbPersistence `json:"persistence"`
	Protocol         LbProtocol    `json:"protocol"`
	PublicPort       int           `json:"publicPort" validate:"min=1,max=65535"`
	PrivatePort      int           `json:"privatePort" validate:"min=1,max=65535"`
	SSLCertificateID string        `json:"sslCertificateId,omitempty"`
}

// LoadBalancer is a provider managed load balancer.
type LoadBalancer struct {
	ID            string                  `json:"id"`
	Name          string                  `json:"name"`
	Description   string                  `json:"description,omitempty"`
	Address       string                  `json:"address"`
	AddressType   LoadBalancerAddressType `json:"addressType"`
	State         LoadBalancerState       `json:"state"`
	Type          string                  `json:"type,omitempty"`
	Scheme        string                  `json:"scheme,omitempty"`
	VlanID        string                  `json:"vlanId,omitempty"`
	DataCenterIDs []string                `json:"dataCenterIds,omitempty"`
	SubnetIDs     []string                `json:"subnetIds,omitempty"`
	IPVersions    []IPVersion             `json:"ipVersions,omitempty"`
	Listeners     []LbListener            `json:"listeners,omitempty"`
	CreatedAt     time.Time               `json:"createdAt"`
}

// LoadBalancerEndpoint is a backend registered with a load balancer.
type LoadBalancerEndpoint struct {
	Type        LbEndpointType  `json:"type"`
	ID          string          `json:"id"`
	State       LbEndpointState `json:"state"`
	Description string          `json:"description,omitempty"`
}

// HealthCheckOptions describes how a load balancer probes its endpoints.
type HealthCheckOptions struct {
	Protocol       LbProtocol    `json:"protocol"`
	Port           int           `json:"port" validate:"min=0,max=65535"`
	Path           string        `json:"path,omitempty"`
	Interval       time.Duration `json:"interval"`
	Timeout        time.Duration `json:"timeout"`
	HealthyCount   int           `json:"healthyCount" validate:"min=0,max=10"`
	UnhealthyCount int           `json:"unhealthyCount" validate:"min=0,max=10"`
}

// LoadBalancerCreateOptions carries everything needed to create a load
// balancer in one call.
type LoadBalancerCreateOptions struct {
	Name           string `validate:"required"`
	Description    string
	Internal       bool
	IPVersions     []IPVersion
	SubnetIDs      []string
	SecurityGroups []string
	Listeners      []LbListener `validate:"min=1,dive"`
	Endpoints      []string
	HealthCheck    *HealthCheckOptions `validate:"omitempty"`
	Tags           map[string]string
}

// NewLoadBalancerCreateOptions returns options for a load balancer named
// name with the given listeners.
func NewLoadBalancerCreateOptions(name, description string, listeners ...LbListener) *LoadBalancerCreateOptions {
	return &LoadBalancerCreateOptions{
		Name:        name,
		Description: description,
		Listeners:   listeners,
	}
}

func (o *LoadBalancerCreateOptions) InSubnets(subnetIDs ...string) *LoadBalancerCreateOptions {
	o.SubnetIDs = append(o.SubnetIDs, subnetIDs...)
	return o
}

func (o *LoadBalancerCreateOptions) WithEndpoints(ids ...string) *LoadBalancerCreateOptions {
	o.Endpoints = append(o.Endpoints, ids...)
	return o
}

func (o *LoadBalancerCreateOptions) WithHealthCheck(hc *HealthCheckOptions) *LoadBalancerCreateOptions {
	o.HealthCheck = hc
	return o
}

func (o *LoadBalancerCreateOptions) AsInternal() *LoadBalancerCreateOptions {
	o.Internal = true
	return o
}

func (o *LoadBalancerCreateOptions) WithTag(key, value string) *LoadBalancerCreateOptions {
	if o.Tags == nil {
		o.Tags = make(map[string]string)
	}
	o.Tags[key] = value
	return o
}

// LoadBalancerCapabilities describes what a provider supports for load
// balancers.
type LoadBalancerCapabilities interface {
	AddressType() LoadBalancerAddressType
	MaxPublicPorts() int
	ProviderTermForLoadBalancer() string
	// LoadBalancerVisibleScope returns nil when the scope is unknown.
	LoadBalancerVisibleScope() *VisibleScope
	HealthCheckRequiresLoadBalancer() bool
	HealthCheckRequiresListener() bool
	HealthCheckRequiresName() Requirement
	IdentifyEndpointsOnCreateRequirement() Requirement
	IdentifyListenersOnCreateRequirement() Requirement
	IdentifyVlanOnCreateRequirement() Requirement
	IdentifyHealthCheckOnCreateRequirement() Requirement
	IsAddressAssignedByProvider() bool
	IsDataCenterLimited() bool
	SupportedAlgorithms() []LbAlgorithm
	SupportedEndpointTypes() []LbEndpointType
	SupportedIPVersions() []IPVersion
	SupportedPersistenceOptions() []LbPersistence
	SupportedProtocols() []LbProtocol
	SupportsAddingEndpoints() bool
	SupportsMonitoring() bool
	SupportsMultipleTrafficTypes() bool
	SupportsSSLCertificateStore() bool
	LoadBalancerNamingConstraints() NamingConstraints
}

// LoadBalancerSupport is implemented by providers that manage load
// balancers.
type LoadBalancerSupport interface {
	Capabilities() LoadBalancerCapabilities
	ListLoadBalancers(ctx context.Context) ([]*LoadBalancer, error)
	ListLoadBalancerStatus(ctx context.Context) ([]ResourceStatus, error)
	// GetLoadBalancer returns nil without an error when the load balancer
	// does not exist.
	GetLoadBalancer(ctx context.Context, id string) (*LoadBalancer, error)
	// CreateLoadBalancer returns the provider ID of the new load balancer.
	CreateLoadBalancer(ctx context.Context, opts *LoadBalancerCreateOptions) (string, error)
	RemoveLoadBalancer(ctx context.Context, id string) error

	AddServers(ctx context.Context, id string, serverIDs ...string) error
	RemoveServers(ctx context.Context, id string, serverIDs ...string) error
	ListEndpoints(ctx context.Context, id string) ([]*LoadBalancerEndpoint, error)

	GetHealthCheck(ctx context.Context, id string) (*HealthCheckOptions, error)
	ModifyHealthCheck(ctx context.Context, id string, opts *HealthCheckOptions) error

	ListSSLCertificates(ctx context.Context) ([]*SSLCertificate, error)
	// GetSSLCertificate returns nil without an error when no certificate
	// has the given name or ID.
	GetSSLCertificate(ctx context.Context, nameOrID string) (*SSLCertificate, error)
}
