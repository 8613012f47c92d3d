package aws

import "github.com/zalando-incubator/aws-cloud-adapter/cloud"

// LoadBalancerCapabilities describes Elastic Load Balancing.
type LoadBalancerCapabilities struct{}

var _ cloud.LoadBalancerCapabilities = (*LoadBalancerCapabilities)(nil)

func (*LoadBalancerCapabilities) AddressType() cloud.LoadBalancerAddressType {
	return cloud.LoadBalancerAddressTypeDNS
}

// MaxPublicPorts returns 0, ELB does not limit the number of listeners
// through this model.
func (*LoadBalancerCapabilities) MaxPublicPorts() int {
	return 0
}

func (*LoadBalancerCapabilities) ProviderTermForLoadBalancer() string {
	return "load balancer"
}

func (*LoadBalancerCapabilities) LoadBalancerVisibleScope() *cloud.VisibleScope {
	return nil
}

func (*LoadBalancerCapabilities) HealthCheckRequiresLoadBalancer() bool {
	return true
}

func (*LoadBalancerCapabilities) HealthCheckRequiresListener() bool {
	return false
}

func (*LoadBalancerCapabilities) HealthCheckRequiresName() cloud.Requirement {
	return cloud.RequirementNone
}

func (*LoadBalancerCapabilities) IdentifyEndpointsOnCreateRequirement() cloud.Requirement {
	return cloud.RequirementOptional
}

func (*LoadBalancerCapabilities) IdentifyListenersOnCreateRequirement() cloud.Requirement {
	return cloud.RequirementRequired
}

func (*LoadBalancerCapabilities) IdentifyVlanOnCreateRequirement() cloud.Requirement {
	return cloud.RequirementNone
}

func (*LoadBalancerCapabilities) IdentifyHealthCheckOnCreateRequirement() cloud.Requirement {
	return cloud.RequirementOptional
}

func (*LoadBalancerCapabilities) IsAddressAssignedByProvider() bool {
	return true
}

func (*LoadBalancerCapabilities) IsDataCenterLimited() bool {
	return true
}

func (*LoadBalancerCapabilities) SupportedAlgorithms() []cloud.LbAlgorithm {
	return []cloud.LbAlgorithm{cloud.LbAlgorithmRoundRobin}
}

func (*LoadBalancerCapabilities) SupportedEndpointTypes() []cloud.LbEndpointType {
	return []cloud.LbEndpointType{cloud.LbEndpointTypeVM}
}

func (*LoadBalancerCapabilities) SupportedIPVersions() []cloud.IPVersion {
	return []cloud.IPVersion{cloud.IPVersion4, cloud.IPVersion6}
}

func (*LoadBalancerCapabilities) SupportedPersistenceOptions() []cloud.LbPersistence {
	return []cloud.LbPersistence{cloud.LbPersistenceNone}
}

func (*LoadBalancerCapabilities) SupportedProtocols() []cloud.LbProtocol {
	return []cloud.LbProtocol{cloud.LbProtocolHTTP, cloud.LbProtocolHTTPS, cloud.LbProtocolRawTCP}
}

func (*LoadBalancerCapabilities) SupportsAddingEndpoints() bool {
	return true
}

func (*LoadBalancerCapabilities) SupportsMonitoring() bool {
	return true
}

func (*LoadBalancerCapabilities) SupportsMultipleTrafficTypes() bool {
	return true
}

func (*LoadBalancerCapabilities) SupportsSSLCertificateStore() bool {
	return true
}

func (*LoadBalancerCapabilities) LoadBalancerNamingConstraints() cloud.NamingConstraints {
	return cloud.AlphaOnly(1, 32).ConstrainedBy('-')
}
