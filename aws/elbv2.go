package aws

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	elbv2Types "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"
	log "github.com/sirupsen/logrus"

	"github.com/zalando-incubator/aws-cloud-adapter/certs"
	"github.com/zalando-incubator/aws-cloud-adapter/cloud"
	"github.com/zalando-incubator/aws-cloud-adapter/problem"
)

const (
	descriptionTag            = "Description"
	specHashTag               = "aws-cloud-adapter:spec-hash"
	trafficPort               = "traffic-port"
	describeTagsBatchSize     = 20
	errLoadBalancerNotFound   = "LoadBalancerNotFound"
	errTargetGroupNotFound    = "TargetGroupNotFound"
	errInvalidLoadBalancerARN = "ValidationError"
)

// LoadBalancerSupport manages Application and Network Load Balancers. Every
// listener forwards to a target group of its own.
type LoadBalancerSupport struct {
	adapter *Adapter
	api     ELBV2API
	asg     AutoScalingAPI
	certs   certs.CertificatesProvider

	capsOnce sync.Once
	caps     *LoadBalancerCapabilities
}

var _ cloud.LoadBalancerSupport = (*LoadBalancerSupport)(nil)

func (s *LoadBalancerSupport) Capabilities() cloud.LoadBalancerCapabilities {
	s.capsOnce.Do(func() {
		s.caps = &LoadBalancerCapabilities{}
	})
	return s.caps
}

func isActiveLBState(state *elbv2Types.LoadBalancerState) bool {
	return state != nil && state.Code == elbv2Types.LoadBalancerStateEnumActive
}

// lbStateString returns the state code or "nil".
func lbStateString(state *elbv2Types.LoadBalancerState) string {
	if state == nil {
		return "nil"
	}
	return string(state.Code)
}

func loadBalancerState(state *elbv2Types.LoadBalancerState) cloud.LoadBalancerState {
	if isActiveLBState(state) {
		return cloud.LoadBalancerStateActive
	}
	if state == nil {
		return cloud.LoadBalancerStatePending
	}
	switch state.Code {
	case elbv2Types.LoadBalancerStateEnumActiveImpaired, elbv2Types.LoadBalancerStateEnumFailed:
		return cloud.LoadBalancerStateError
	}
	return cloud.LoadBalancerStatePending
}

// ListLoadBalancers returns every load balancer in the region with its
// listeners.
func (s *LoadBalancerSupport) ListLoadBalancers(ctx context.Context) ([]*cloud.LoadBalancer, error) {
	t := beginTrace("LoadBalancers.listLoadBalancers")
	defer t.end()

	lbs, err := s.describeLoadBalancers(ctx, &elbv2.DescribeLoadBalancersInput{})
	if err != nil {
		return nil, t.fail(err)
	}
	descriptions, err := s.descriptions(ctx, lbs)
	if err != nil {
		return nil, t.fail(err)
	}

	result := make([]*cloud.LoadBalancer, 0, len(lbs))
	for _, lb := range lbs {
		converted, err := s.toLoadBalancer(ctx, lb)
		if err != nil {
			return nil, t.fail(err)
		}
		converted.Description = descriptions[converted.ID]
		result = append(result, converted)
	}
	return result, nil
}

// ListLoadBalancerStatus returns the state of every load balancer without
// looking up listeners.
func (s *LoadBalancerSupport) ListLoadBalancerStatus(ctx context.Context) ([]cloud.ResourceStatus, error) {
	t := beginTrace("LoadBalancers.listLoadBalancerStatus")
	defer t.end()

	lbs, err := s.describeLoadBalancers(ctx, &elbv2.DescribeLoadBalancersInput{})
	if err != nil {
		return nil, t.fail(err)
	}
	result := make([]cloud.ResourceStatus, 0, len(lbs))
	for _, lb := range lbs {
		result = append(result, cloud.ResourceStatus{
			ProviderResourceID: aws.ToString(lb.LoadBalancerArn),
			Status:             loadBalancerState(lb.State),
		})
	}
	return result, nil
}

// GetLoadBalancer returns the load balancer with the given ARN or name, or nil
// when there is none.
func (s *LoadBalancerSupport) GetLoadBalancer(ctx context.Context, id string) (*cloud.LoadBalancer, error) {
	t := beginTrace("LoadBalancers.getLoadBalancer")
	defer t.end()

	lb, err := s.findLoadBalancer(ctx, id)
	if err != nil {
		return nil, t.fail(err)
	}
	if lb == nil {
		return nil, nil
	}
	converted, err := s.toLoadBalancer(ctx, *lb)
	if err != nil {
		return nil, t.fail(err)
	}
	descriptions, err := s.descriptions(ctx, []elbv2Types.LoadBalancer{*lb})
	if err != nil {
		return nil, t.fail(err)
	}
	converted.Description = descriptions[converted.ID]
	return converted, nil
}

func (s *LoadBalancerSupport) findLoadBalancer(ctx context.Context, id string) (*elbv2Types.LoadBalancer, error) {
	params := &elbv2.DescribeLoadBalancersInput{}
	if strings.HasPrefix(id, "arn:") {
		params.LoadBalancerArns = []string{id}
	} else {
		params.Names = []string{id}
	}
	lbs, err := s.describeLoadBalancers(ctx, params)
	if err != nil {
		if hasErrorCode(err, errLoadBalancerNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if len(lbs) == 0 {
		return nil, nil
	}
	return &lbs[0], nil
}

func (s *LoadBalancerSupport) describeLoadBalancers(ctx context.Context, params *elbv2.DescribeLoadBalancersInput) ([]elbv2Types.LoadBalancer, error) {
	var lbs []elbv2Types.LoadBalancer
	for {
		resp, err := s.api.DescribeLoadBalancers(ctx, params)
		if err != nil {
			return nil, err
		}
		lbs = append(lbs, resp.LoadBalancers...)
		if aws.ToString(resp.NextMarker) == "" {
			return lbs, nil
		}
		params.Marker = resp.NextMarker
	}
}

func (s *LoadBalancerSupport) describeListeners(ctx context.Context, lbARN string) ([]elbv2Types.Listener, error) {
	var listeners []elbv2Types.Listener
	params := &elbv2.DescribeListenersInput{LoadBalancerArn: aws.String(lbARN)}
	for {
		resp, err := s.api.DescribeListeners(ctx, params)
		if err != nil {
			return nil, err
		}
		listeners = append(listeners, resp.Listeners...)
		if aws.ToString(resp.NextMarker) == "" {
			return listeners, nil
		}
		params.Marker = resp.NextMarker
	}
}

func (s *LoadBalancerSupport) targetGroups(ctx context.Context, lbARN string) ([]elbv2Types.TargetGroup, error) {
	var groups []elbv2Types.TargetGroup
	params := &elbv2.DescribeTargetGroupsInput{LoadBalancerArn: aws.String(lbARN)}
	for {
		resp, err := s.api.DescribeTargetGroups(ctx, params)
		if err != nil {
			return nil, err
		}
		groups = append(groups, resp.TargetGroups...)
		if aws.ToString(resp.NextMarker) == "" {
			return groups, nil
		}
		params.Marker = resp.NextMarker
	}
}

func (s *LoadBalancerSupport) targetGroupARNs(ctx context.Context, lbARN string) ([]string, error) {
	groups, err := s.targetGroups(ctx, lbARN)
	if err != nil {
		return nil, err
	}
	arns := make([]string, 0, len(groups))
	for _, tg := range groups {
		arns = append(arns, aws.ToString(tg.TargetGroupArn))
	}
	return arns, nil
}

// resolveARN turns a load balancer name into its ARN.
func (s *LoadBalancerSupport) resolveARN(ctx context.Context, id string) (string, error) {
	if strings.HasPrefix(id, "arn:") {
		return id, nil
	}
	lb, err := s.findLoadBalancer(ctx, id)
	if err != nil {
		return "", err
	}
	if lb == nil {
		return "", fmt.Errorf("load balancer %q: %w", id, cloud.ErrInvalidArgument)
	}
	return aws.ToString(lb.LoadBalancerArn), nil
}

// descriptions returns the Description tag of every load balancer by ARN.
func (s *LoadBalancerSupport) descriptions(ctx context.Context, lbs []elbv2Types.LoadBalancer) (map[string]string, error) {
	arns := make([]string, 0, len(lbs))
	for _, lb := range lbs {
		arns = append(arns, aws.ToString(lb.LoadBalancerArn))
	}

	result := make(map[string]string, len(arns))
	for _, batch := range chunks(arns, describeTagsBatchSize) {
		resp, err := s.api.DescribeTags(ctx, &elbv2.DescribeTagsInput{ResourceArns: batch})
		if err != nil {
			return nil, err
		}
		for _, desc := range resp.TagDescriptions {
			for _, tag := range desc.Tags {
				if aws.ToString(tag.Key) == descriptionTag {
					result[aws.ToString(desc.ResourceArn)] = aws.ToString(tag.Value)
				}
			}
		}
	}
	return result, nil
}

func (s *LoadBalancerSupport) toLoadBalancer(ctx context.Context, lb elbv2Types.LoadBalancer) (*cloud.LoadBalancer, error) {
	lbARN := aws.ToString(lb.LoadBalancerArn)
	result := &cloud.LoadBalancer{
		ID:          lbARN,
		Name:        aws.ToString(lb.LoadBalancerName),
		Address:     aws.ToString(lb.DNSName),
		AddressType: cloud.LoadBalancerAddressTypeDNS,
		State:       loadBalancerState(lb.State),
		Type:        string(lb.Type),
		Scheme:      string(lb.Scheme),
		VlanID:      aws.ToString(lb.VpcId),
		IPVersions:  ipVersions(lb.IpAddressType),
		CreatedAt:   aws.ToTime(lb.CreatedTime),
	}
	for _, az := range lb.AvailabilityZones {
		result.DataCenterIDs = append(result.DataCenterIDs, aws.ToString(az.ZoneName))
		if subnet := aws.ToString(az.SubnetId); subnet != "" {
			result.SubnetIDs = append(result.SubnetIDs, subnet)
		}
	}

	listeners, err := s.describeListeners(ctx, lbARN)
	if err != nil {
		return nil, err
	}
	if len(listeners) == 0 {
		return result, nil
	}
	groups, err := s.targetGroups(ctx, lbARN)
	if err != nil {
		return nil, err
	}
	ports := make(map[string]int, len(groups))
	for _, tg := range groups {
		ports[aws.ToString(tg.TargetGroupArn)] = int(aws.ToInt32(tg.Port))
	}

	for _, l := range listeners {
		listener := cloud.LbListener{
			Algorithm:   cloud.LbAlgorithmRoundRobin,
			Persistence: cloud.LbPersistenceNone,
			Protocol:    lbProtocol(l.Protocol),
			PublicPort:  int(aws.ToInt32(l.Port)),
		}
		if len(l.Certificates) > 0 {
			listener.SSLCertificateID = aws.ToString(l.Certificates[0].CertificateArn)
		}
		for _, action := range l.DefaultActions {
			if action.Type == elbv2Types.ActionTypeEnumForward {
				listener.PrivatePort = ports[aws.ToString(action.TargetGroupArn)]
				break
			}
		}
		result.Listeners = append(result.Listeners, listener)
	}
	return result, nil
}

func ipVersions(t elbv2Types.IpAddressType) []cloud.IPVersion {
	if t == elbv2Types.IpAddressTypeDualstack {
		return []cloud.IPVersion{cloud.IPVersion4, cloud.IPVersion6}
	}
	return []cloud.IPVersion{cloud.IPVersion4}
}

func lbProtocol(p elbv2Types.ProtocolEnum) cloud.LbProtocol {
	switch p {
	case elbv2Types.ProtocolEnumHttp:
		return cloud.LbProtocolHTTP
	case elbv2Types.ProtocolEnumHttps, elbv2Types.ProtocolEnumTls:
		return cloud.LbProtocolHTTPS
	}
	return cloud.LbProtocolRawTCP
}

// elbProtocol maps a listener protocol onto the protocols the given load
// balancer type supports.
func elbProtocol(p cloud.LbProtocol, lbType elbv2Types.LoadBalancerTypeEnum) elbv2Types.ProtocolEnum {
	if lbType == elbv2Types.LoadBalancerTypeEnumNetwork {
		if p == cloud.LbProtocolHTTPS {
			return elbv2Types.ProtocolEnumTls
		}
		return elbv2Types.ProtocolEnumTcp
	}
	if p == cloud.LbProtocolHTTPS {
		return elbv2Types.ProtocolEnumHttps
	}
	return elbv2Types.ProtocolEnumHttp
}

// loadBalancerType returns application when every listener speaks HTTP(S).
func loadBalancerType(listeners []cloud.LbListener) elbv2Types.LoadBalancerTypeEnum {
	for _, l := range listeners {
		if l.Protocol == cloud.LbProtocolRawTCP {
			return elbv2Types.LoadBalancerTypeEnumNetwork
		}
	}
	return elbv2Types.LoadBalancerTypeEnumApplication
}

// CreateLoadBalancer creates the load balancer, one target group and listener
// per requested listener and registers the initial endpoints. It returns the
// ARN of the new load balancer.
func (s *LoadBalancerSupport) CreateLoadBalancer(ctx context.Context, opts *cloud.LoadBalancerCreateOptions) (string, error) {
	t := beginTrace("LoadBalancers.createLoadBalancer")
	defer t.end()

	if opts == nil {
		return "", t.fail(cloud.ErrInvalidArgument)
	}
	if err := s.adapter.validate.Struct(opts); err != nil {
		return "", t.fail(fmt.Errorf("%w: %v", cloud.ErrInvalidArgument, err))
	}

	name := opts.Name
	constraints := s.Capabilities().LoadBalancerNamingConstraints()
	if !constraints.IsValidName(name) {
		name = constraints.ConvertToValidName(name)
		if name == "" {
			return "", t.fail(fmt.Errorf("%w: no valid load balancer name in %q", cloud.ErrInvalidArgument, opts.Name))
		}
		t.log.Debugf("using load balancer name %s instead of %s", name, opts.Name)
	}

	lbType := loadBalancerType(opts.Listeners)
	params := &elbv2.CreateLoadBalancerInput{
		Name:          aws.String(name),
		Type:          lbType,
		Scheme:        elbv2Types.LoadBalancerSchemeEnumInternetFacing,
		Subnets:       opts.SubnetIDs,
		IpAddressType: s.ipAddressType(opts.IPVersions),
	}
	if opts.Internal {
		params.Scheme = elbv2Types.LoadBalancerSchemeEnumInternal
	}
	if lbType == elbv2Types.LoadBalancerTypeEnumApplication {
		params.SecurityGroups = opts.SecurityGroups
	}
	if opts.Description != "" {
		params.Tags = []elbv2Types.Tag{{Key: aws.String(descriptionTag), Value: aws.String(opts.Description)}}
	}
	for _, k := range sortedKeys(opts.Tags) {
		params.Tags = append(params.Tags, elbv2Types.Tag{Key: aws.String(k), Value: aws.String(opts.Tags[k])})
	}
	t.log.Debugf("parameters=%+v", params)
	t.log.Infof("Creating load balancer %s", name)

	resp, err := s.api.CreateLoadBalancer(ctx, params)
	if err != nil {
		return "", t.fail(err)
	}
	if len(resp.LoadBalancers) == 0 || aws.ToString(resp.LoadBalancers[0].LoadBalancerArn) == "" {
		return "", t.fail(cloud.ErrNotCreated)
	}
	lb := resp.LoadBalancers[0]
	lbARN := aws.ToString(lb.LoadBalancerArn)

	targetGroupARNs := make([]string, 0, len(opts.Listeners))
	for _, l := range opts.Listeners {
		tgARN, err := s.createListener(ctx, lb, lbType, l, opts.HealthCheck)
		if err != nil {
			return "", t.fail(err)
		}
		targetGroupARNs = append(targetGroupARNs, tgARN)
	}

	if len(opts.Endpoints) > 0 {
		if err := registerTargetsOnTargetGroups(ctx, s.api, targetGroupARNs, opts.Endpoints); err != nil {
			return "", t.fail(err)
		}
	}

	t.log.Infof("Created load balancer %s in state %s", lbARN, lbStateString(lb.State))
	return lbARN, nil
}

func (s *LoadBalancerSupport) ipAddressType(versions []cloud.IPVersion) elbv2Types.IpAddressType {
	for _, v := range versions {
		if v == cloud.IPVersion6 {
			return elbv2Types.IpAddressTypeDualstack
		}
	}
	if len(versions) == 0 && s.adapter.ipAddressType == IPAddressTypeDualstack {
		return elbv2Types.IpAddressTypeDualstack
	}
	return elbv2Types.IpAddressTypeIpv4
}

// createListener creates the target group for l and a listener forwarding to
// it. It returns the target group ARN.
func (s *LoadBalancerSupport) createListener(ctx context.Context, lb elbv2Types.LoadBalancer, lbType elbv2Types.LoadBalancerTypeEnum, l cloud.LbListener, hc *cloud.HealthCheckOptions) (string, error) {
	protocol := elbProtocol(l.Protocol, lbType)
	tgParams := &elbv2.CreateTargetGroupInput{
		Name:       aws.String(targetGroupName(aws.ToString(lb.LoadBalancerName), string(protocol), int32(l.PublicPort))),
		Port:       aws.Int32(int32(l.PrivatePort)),
		Protocol:   protocol,
		VpcId:      lb.VpcId,
		TargetType: elbv2Types.TargetTypeEnumInstance,
	}
	if hc != nil {
		applyHealthCheck(hc, &tgParams.HealthCheckProtocol, &tgParams.HealthCheckPort, &tgParams.HealthCheckPath,
			&tgParams.HealthCheckIntervalSeconds, &tgParams.HealthCheckTimeoutSeconds,
			&tgParams.HealthyThresholdCount, &tgParams.UnhealthyThresholdCount)
	} else if protocol == elbv2Types.ProtocolEnumHttp || protocol == elbv2Types.ProtocolEnumHttps {
		tgParams.HealthCheckPath = aws.String(s.adapter.healthCheckPath)
	}

	tgResp, err := s.api.CreateTargetGroup(ctx, tgParams)
	if err != nil {
		return "", err
	}
	if len(tgResp.TargetGroups) == 0 {
		return "", fmt.Errorf("target group %s: %w", aws.ToString(tgParams.Name), cloud.ErrNotCreated)
	}
	tgARN := aws.ToString(tgResp.TargetGroups[0].TargetGroupArn)

	listenerParams := &elbv2.CreateListenerInput{
		LoadBalancerArn: lb.LoadBalancerArn,
		Port:            aws.Int32(int32(l.PublicPort)),
		Protocol:        protocol,
		DefaultActions: []elbv2Types.Action{{
			Type:           elbv2Types.ActionTypeEnumForward,
			TargetGroupArn: aws.String(tgARN),
		}},
	}
	if l.SSLCertificateID != "" {
		listenerParams.Certificates = []elbv2Types.Certificate{{CertificateArn: aws.String(l.SSLCertificateID)}}
	}
	if _, err := s.api.CreateListener(ctx, listenerParams); err != nil {
		return "", err
	}
	return tgARN, nil
}

// RemoveLoadBalancer deletes the load balancer and then its target groups.
// Failures to delete target groups are collected and returned together.
func (s *LoadBalancerSupport) RemoveLoadBalancer(ctx context.Context, id string) error {
	t := beginTrace("LoadBalancers.removeLoadBalancer")
	defer t.end()

	lbARN, err := s.resolveARN(ctx, id)
	if err != nil {
		return t.fail(err)
	}
	targetGroupARNs, err := s.targetGroupARNs(ctx, lbARN)
	if err != nil && !hasErrorCode(err, errLoadBalancerNotFound) {
		return t.fail(err)
	}

	if _, err := s.api.DeleteLoadBalancer(ctx, &elbv2.DeleteLoadBalancerInput{LoadBalancerArn: aws.String(lbARN)}); err != nil {
		return t.fail(err)
	}
	t.log.Infof("Removed load balancer %s", lbARN)

	var problems problem.List
	for _, tgARN := range targetGroupARNs {
		_, err := s.api.DeleteTargetGroup(ctx, &elbv2.DeleteTargetGroupInput{TargetGroupArn: aws.String(tgARN)})
		if err != nil && !hasErrorCode(err, errTargetGroupNotFound) {
			problems.Add("unable to delete target group %s: %v", tgARN, err)
		}
	}
	if problems.Any() {
		return t.fail(problems.Join())
	}
	return nil
}

// AddServers registers the instances on every target group of the load
// balancer.
func (s *LoadBalancerSupport) AddServers(ctx context.Context, id string, serverIDs ...string) error {
	t := beginTrace("LoadBalancers.addServers")
	defer t.end()

	if len(serverIDs) == 0 {
		return nil
	}
	targetGroupARNs, err := s.targetGroupARNsFor(ctx, id)
	if err != nil {
		return t.fail(err)
	}
	if err := registerTargetsOnTargetGroups(ctx, s.api, targetGroupARNs, serverIDs); err != nil {
		return t.fail(err)
	}
	return nil
}

// RemoveServers deregisters the instances from every target group of the
// load balancer.
func (s *LoadBalancerSupport) RemoveServers(ctx context.Context, id string, serverIDs ...string) error {
	t := beginTrace("LoadBalancers.removeServers")
	defer t.end()

	if len(serverIDs) == 0 {
		return nil
	}
	targetGroupARNs, err := s.targetGroupARNsFor(ctx, id)
	if err != nil {
		return t.fail(err)
	}
	if err := deregisterTargetsOnTargetGroups(ctx, s.api, targetGroupARNs, serverIDs); err != nil {
		return t.fail(err)
	}
	return nil
}

func (s *LoadBalancerSupport) targetGroupARNsFor(ctx context.Context, id string) ([]string, error) {
	lbARN, err := s.resolveARN(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.targetGroupARNs(ctx, lbARN)
}

// ListEndpoints returns the registered instances. An instance is active when
// it is healthy in at least one target group.
func (s *LoadBalancerSupport) ListEndpoints(ctx context.Context, id string) ([]*cloud.LoadBalancerEndpoint, error) {
	t := beginTrace("LoadBalancers.listEndpoints")
	defer t.end()

	targetGroupARNs, err := s.targetGroupARNsFor(ctx, id)
	if err != nil {
		return nil, t.fail(err)
	}

	var endpoints []*cloud.LoadBalancerEndpoint
	byID := make(map[string]*cloud.LoadBalancerEndpoint)
	for _, tgARN := range targetGroupARNs {
		resp, err := s.api.DescribeTargetHealth(ctx, &elbv2.DescribeTargetHealthInput{TargetGroupArn: aws.String(tgARN)})
		if err != nil {
			return nil, t.fail(err)
		}
		for _, desc := range resp.TargetHealthDescriptions {
			if desc.Target == nil {
				continue
			}
			state := cloud.LbEndpointStateInactive
			var description string
			if desc.TargetHealth != nil {
				if desc.TargetHealth.State == elbv2Types.TargetHealthStateEnumHealthy {
					state = cloud.LbEndpointStateActive
				}
				description = aws.ToString(desc.TargetHealth.Description)
			}

			targetID := aws.ToString(desc.Target.Id)
			if e, ok := byID[targetID]; ok {
				if state == cloud.LbEndpointStateActive {
					e.State = state
					e.Description = description
				}
				continue
			}
			e := &cloud.LoadBalancerEndpoint{
				Type:        cloud.LbEndpointTypeVM,
				ID:          targetID,
				State:       state,
				Description: description,
			}
			byID[targetID] = e
			endpoints = append(endpoints, e)
		}
	}
	return endpoints, nil
}

// GetHealthCheck returns the health check of the first target group of the
// load balancer, nil when it has none.
func (s *LoadBalancerSupport) GetHealthCheck(ctx context.Context, id string) (*cloud.HealthCheckOptions, error) {
	t := beginTrace("LoadBalancers.getHealthCheck")
	defer t.end()

	lbARN, err := s.resolveARN(ctx, id)
	if err != nil {
		return nil, t.fail(err)
	}
	groups, err := s.targetGroups(ctx, lbARN)
	if err != nil {
		return nil, t.fail(err)
	}
	if len(groups) == 0 {
		return nil, nil
	}
	return toHealthCheck(groups[0]), nil
}

// ModifyHealthCheck applies opts to every target group of the load balancer.
func (s *LoadBalancerSupport) ModifyHealthCheck(ctx context.Context, id string, opts *cloud.HealthCheckOptions) error {
	t := beginTrace("LoadBalancers.modifyHealthCheck")
	defer t.end()

	if opts == nil {
		return t.fail(cloud.ErrInvalidArgument)
	}
	if err := s.adapter.validate.Struct(opts); err != nil {
		return t.fail(fmt.Errorf("%w: %v", cloud.ErrInvalidArgument, err))
	}
	targetGroupARNs, err := s.targetGroupARNsFor(ctx, id)
	if err != nil {
		return t.fail(err)
	}
	for _, tgARN := range targetGroupARNs {
		params := &elbv2.ModifyTargetGroupInput{TargetGroupArn: aws.String(tgARN)}
		applyHealthCheck(opts, &params.HealthCheckProtocol, &params.HealthCheckPort, &params.HealthCheckPath,
			&params.HealthCheckIntervalSeconds, &params.HealthCheckTimeoutSeconds,
			&params.HealthyThresholdCount, &params.UnhealthyThresholdCount)
		if _, err := s.api.ModifyTargetGroup(ctx, params); err != nil {
			return t.fail(err)
		}
	}
	return nil
}

func toHealthCheck(tg elbv2Types.TargetGroup) *cloud.HealthCheckOptions {
	hc := &cloud.HealthCheckOptions{
		Protocol:       lbProtocol(tg.HealthCheckProtocol),
		Path:           aws.ToString(tg.HealthCheckPath),
		Interval:       time.Duration(aws.ToInt32(tg.HealthCheckIntervalSeconds)) * time.Second,
		Timeout:        time.Duration(aws.ToInt32(tg.HealthCheckTimeoutSeconds)) * time.Second,
		HealthyCount:   int(aws.ToInt32(tg.HealthyThresholdCount)),
		UnhealthyCount: int(aws.ToInt32(tg.UnhealthyThresholdCount)),
	}
	if port, err := strconv.Atoi(aws.ToString(tg.HealthCheckPort)); err == nil {
		hc.Port = port
	}
	return hc
}

// applyHealthCheck sets the target group health check fields from hc. Zero
// values leave the AWS defaults in place; port 0 probes the traffic port.
func applyHealthCheck(hc *cloud.HealthCheckOptions, protocol *elbv2Types.ProtocolEnum, port, path **string, interval, timeout, healthy, unhealthy **int32) {
	switch hc.Protocol {
	case cloud.LbProtocolHTTP:
		*protocol = elbv2Types.ProtocolEnumHttp
	case cloud.LbProtocolHTTPS:
		*protocol = elbv2Types.ProtocolEnumHttps
	case cloud.LbProtocolRawTCP:
		*protocol = elbv2Types.ProtocolEnumTcp
	}
	if hc.Port > 0 {
		*port = aws.String(strconv.Itoa(hc.Port))
	} else {
		*port = aws.String(trafficPort)
	}
	if hc.Path != "" && hc.Protocol != cloud.LbProtocolRawTCP {
		*path = aws.String(hc.Path)
	}
	if hc.Interval > 0 {
		*interval = aws.Int32(int32(hc.Interval / time.Second))
	}
	if hc.Timeout > 0 {
		*timeout = aws.Int32(int32(hc.Timeout / time.Second))
	}
	if hc.HealthyCount > 0 {
		*healthy = aws.Int32(int32(hc.HealthyCount))
	}
	if hc.UnhealthyCount > 0 {
		*unhealthy = aws.Int32(int32(hc.UnhealthyCount))
	}
}

// AttachAutoScalingGroup attaches every target group of the load balancer to
// the Auto Scaling Group so that its instances are registered automatically.
func (s *LoadBalancerSupport) AttachAutoScalingGroup(ctx context.Context, id, autoScalingGroupName string) error {
	t := beginTrace("LoadBalancers.attachAutoScalingGroup")
	defer t.end()

	targetGroupARNs, err := s.targetGroupARNsFor(ctx, id)
	if err != nil {
		return t.fail(err)
	}
	if err := attachTargetGroupsToAutoScalingGroup(ctx, s.asg, targetGroupARNs, autoScalingGroupName); err != nil {
		return t.fail(err)
	}
	log.Infof("Attached %d target groups to auto scaling group %s", len(targetGroupARNs), autoScalingGroupName)
	return nil
}

// DetachAutoScalingGroup reverts AttachAutoScalingGroup.
func (s *LoadBalancerSupport) DetachAutoScalingGroup(ctx context.Context, id, autoScalingGroupName string) error {
	t := beginTrace("LoadBalancers.detachAutoScalingGroup")
	defer t.end()

	targetGroupARNs, err := s.targetGroupARNsFor(ctx, id)
	if err != nil {
		return t.fail(err)
	}
	if err := detachTargetGroupsFromAutoScalingGroup(ctx, s.asg, targetGroupARNs, autoScalingGroupName); err != nil {
		return t.fail(err)
	}
	log.Infof("Detached %d target groups from auto scaling group %s", len(targetGroupARNs), autoScalingGroupName)
	return nil
}

func targetDescriptions(instances []string) []elbv2Types.TargetDescription {
	targets := make([]elbv2Types.TargetDescription, len(instances))
	for i, instance := range instances {
		targets[i] = elbv2Types.TargetDescription{
			Id: aws.String(instance),
		}
	}
	return targets
}

func registerTargetsOnTargetGroups(ctx context.Context, svc ELBV2API, targetGroupARNs []string, instances []string) error {
	targets := targetDescriptions(instances)
	for _, targetGroupARN := range targetGroupARNs {
		input := &elbv2.RegisterTargetsInput{
			TargetGroupArn: aws.String(targetGroupARN),
			Targets:        targets,
		}

		_, err := svc.RegisterTargets(ctx, input)
		if err != nil {
			return fmt.Errorf("unable to register instances %q in target group %s: %w", instances, targetGroupARN, err)
		}
	}
	return nil
}

func deregisterTargetsOnTargetGroups(ctx context.Context, svc ELBV2API, targetGroupARNs []string, instances []string) error {
	targets := targetDescriptions(instances)
	for _, targetGroupARN := range targetGroupARNs {
		input := &elbv2.DeregisterTargetsInput{
			TargetGroupArn: aws.String(targetGroupARN),
			Targets:        targets,
		}

		_, err := svc.DeregisterTargets(ctx, input)
		if err != nil {
			return fmt.Errorf("unable to deregister instances %q in target group %s: %w", instances, targetGroupARN, err)
		}
	}
	return nil
}
