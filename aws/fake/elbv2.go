package fake

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"
)

type ELBv2Outputs struct {
	DescribeLoadBalancers *Pages
	CreateLoadBalancer    *APIResponse
	DeleteLoadBalancer    *APIResponse
	DescribeListeners     *Pages
	CreateListener        *APIResponse
	DescribeTargetGroups  *Pages
	CreateTargetGroup     *Pages
	ModifyTargetGroup     *APIResponse
	DeleteTargetGroup     *APIResponse
	RegisterTargets       *APIResponse
	DeregisterTargets     *APIResponse
	DescribeTargetHealth  *Pages
	DescribeTags          *APIResponse
}

type ELBv2Inputs struct {
	DescribeLoadBalancers []*elbv2.DescribeLoadBalancersInput
	CreateLoadBalancer    []*elbv2.CreateLoadBalancerInput
	DeleteLoadBalancer    []*elbv2.DeleteLoadBalancerInput
	CreateListener        []*elbv2.CreateListenerInput
	CreateTargetGroup     []*elbv2.CreateTargetGroupInput
	ModifyTargetGroup     []*elbv2.ModifyTargetGroupInput
	DeleteTargetGroup     []*elbv2.DeleteTargetGroupInput
	RegisterTargets       []*elbv2.RegisterTargetsInput
	DeregisterTargets     []*elbv2.DeregisterTargetsInput
	DescribeTargetHealth  []*elbv2.DescribeTargetHealthInput
	DescribeTags          []*elbv2.DescribeTagsInput
}

type ELBv2Client struct {
	mu      sync.Mutex
	Outputs ELBv2Outputs
	Inputs  ELBv2Inputs
}

func record[T any](mu *sync.Mutex, inputs *[]*T, in *T) {
	mu.Lock()
	cp := *in
	*inputs = append(*inputs, &cp)
	mu.Unlock()
}

func (m *ELBv2Client) DescribeLoadBalancers(_ context.Context, in *elbv2.DescribeLoadBalancersInput, _ ...func(*elbv2.Options)) (*elbv2.DescribeLoadBalancersOutput, error) {
	record(&m.mu, &m.Inputs.DescribeLoadBalancers, in)
	return page[elbv2.DescribeLoadBalancersOutput](m.Outputs.DescribeLoadBalancers)
}

func (m *ELBv2Client) CreateLoadBalancer(_ context.Context, in *elbv2.CreateLoadBalancerInput, _ ...func(*elbv2.Options)) (*elbv2.CreateLoadBalancerOutput, error) {
	record(&m.mu, &m.Inputs.CreateLoadBalancer, in)
	return result[elbv2.CreateLoadBalancerOutput](m.Outputs.CreateLoadBalancer)
}

func (m *ELBv2Client) DeleteLoadBalancer(_ context.Context, in *elbv2.DeleteLoadBalancerInput, _ ...func(*elbv2.Options)) (*elbv2.DeleteLoadBalancerOutput, error) {
	record(&m.mu, &m.Inputs.DeleteLoadBalancer, in)
	return result[elbv2.DeleteLoadBalancerOutput](m.Outputs.DeleteLoadBalancer)
}

func (m *ELBv2Client) DescribeListeners(_ context.Context, _ *elbv2.DescribeListenersInput, _ ...func(*elbv2.Options)) (*elbv2.DescribeListenersOutput, error) {
	return page[elbv2.DescribeListenersOutput](m.Outputs.DescribeListeners)
}

func (m *ELBv2Client) CreateListener(_ context.Context, in *elbv2.CreateListenerInput, _ ...func(*elbv2.Options)) (*elbv2.CreateListenerOutput, error) {
	record(&m.mu, &m.Inputs.CreateListener, in)
	return result[elbv2.CreateListenerOutput](m.Outputs.CreateListener)
}

func (m *ELBv2Client) DescribeTargetGroups(_ context.Context, _ *elbv2.DescribeTargetGroupsInput, _ ...func(*elbv2.Options)) (*elbv2.DescribeTargetGroupsOutput, error) {
	return page[elbv2.DescribeTargetGroupsOutput](m.Outputs.DescribeTargetGroups)
}

func (m *ELBv2Client) CreateTargetGroup(_ context.Context, in *elbv2.CreateTargetGroupInput, _ ...func(*elbv2.Options)) (*elbv2.CreateTargetGroupOutput, error) {
	record(&m.mu, &m.Inputs.CreateTargetGroup, in)
	return page[elbv2.CreateTargetGroupOutput](m.Outputs.CreateTargetGroup)
}

func (m *ELBv2Client) ModifyTargetGroup(_ context.Context, in *elbv2.ModifyTargetGroupInput, _ ...func(*elbv2.Options)) (*elbv2.ModifyTargetGroupOutput, error) {
	record(&m.mu, &m.Inputs.ModifyTargetGroup, in)
	return result[elbv2.ModifyTargetGroupOutput](m.Outputs.ModifyTargetGroup)
}

func (m *ELBv2Client) DeleteTargetGroup(_ context.Context, in *elbv2.DeleteTargetGroupInput, _ ...func(*elbv2.Options)) (*elbv2.DeleteTargetGroupOutput, error) {
	record(&m.mu, &m.Inputs.DeleteTargetGroup, in)
	return result[elbv2.DeleteTargetGroupOutput](m.Outputs.DeleteTargetGroup)
}

func (m *ELBv2Client) RegisterTargets(_ context.Context, in *elbv2.RegisterTargetsInput, _ ...func(*elbv2.Options)) (*elbv2.RegisterTargetsOutput, error) {
	record(&m.mu, &m.Inputs.RegisterTargets, in)
	return result[elbv2.RegisterTargetsOutput](m.Outputs.RegisterTargets)
}

func (m *ELBv2Client) DeregisterTargets(_ context.Context, in *elbv2.DeregisterTargetsInput, _ ...func(*elbv2.Options)) (*elbv2.DeregisterTargetsOutput, error) {
	record(&m.mu, &m.Inputs.DeregisterTargets, in)
	return result[elbv2.DeregisterTargetsOutput](m.Outputs.DeregisterTargets)
}

func (m *ELBv2Client) DescribeTargetHealth(_ context.Context, in *elbv2.DescribeTargetHealthInput, _ ...func(*elbv2.Options)) (*elbv2.DescribeTargetHealthOutput, error) {
	record(&m.mu, &m.Inputs.DescribeTargetHealth, in)
	return page[elbv2.DescribeTargetHealthOutput](m.Outputs.DescribeTargetHealth)
}

func (m *ELBv2Client) DescribeTags(_ context.Context, in *elbv2.DescribeTagsInput, _ ...func(*elbv2.Options)) (*elbv2.DescribeTagsOutput, error) {
	record(&m.mu, &m.Inputs.DescribeTags, in)
	return result[elbv2.DescribeTagsOutput](m.Outputs.DescribeTags)
}

// LoadBalancer returns an active load balancer as DescribeLoadBalancers
// reports it.
func LoadBalancer(arn, name string, lbType types.LoadBalancerTypeEnum, zones ...string) types.LoadBalancer {
	lb := types.LoadBalancer{
		LoadBalancerArn:  aws.String(arn),
		LoadBalancerName: aws.String(name),
		DNSName:          aws.String(name + ".elb.amazonaws.com"),
		Type:             lbType,
		Scheme:           types.LoadBalancerSchemeEnumInternetFacing,
		VpcId:            aws.String("vpc-1"),
		IpAddressType:    types.IpAddressTypeIpv4,
		State:            &types.LoadBalancerState{Code: types.LoadBalancerStateEnumActive},
	}
	for i, z := range zones {
		lb.AvailabilityZones = append(lb.AvailabilityZones, types.AvailabilityZone{
			ZoneName: aws.String(z),
			SubnetId: aws.String("subnet-" + string(rune('a'+i))),
		})
	}
	return lb
}

func MockDescribeLoadBalancersOutput(nextMarker string, lbs ...types.LoadBalancer) *elbv2.DescribeLoadBalancersOutput {
	out := &elbv2.DescribeLoadBalancersOutput{LoadBalancers: lbs}
	if nextMarker != "" {
		out.NextMarker = aws.String(nextMarker)
	}
	return out
}

func TargetGroup(arn string, port int32) types.TargetGroup {
	return types.TargetGroup{
		TargetGroupArn:             aws.String(arn),
		Port:                       aws.Int32(port),
		Protocol:                   types.ProtocolEnumHttp,
		HealthCheckProtocol:        types.ProtocolEnumHttp,
		HealthCheckPort:            aws.String("traffic-port"),
		HealthCheckPath:            aws.String("/health"),
		HealthCheckIntervalSeconds: aws.Int32(10),
		HealthCheckTimeoutSeconds:  aws.Int32(5),
		HealthyThresholdCount:      aws.Int32(2),
		UnhealthyThresholdCount:    aws.Int32(3),
	}
}

func MockDescribeTargetGroupsOutput(groups ...types.TargetGroup) *elbv2.DescribeTargetGroupsOutput {
	return &elbv2.DescribeTargetGroupsOutput{TargetGroups: groups}
}

func MockCreateTargetGroupOutput(arn string) *elbv2.CreateTargetGroupOutput {
	return &elbv2.CreateTargetGroupOutput{TargetGroups: []types.TargetGroup{{TargetGroupArn: aws.String(arn)}}}
}

// Listener returns a listener forwarding to the target group.
func Listener(protocol types.ProtocolEnum, port int32, targetGroupARN string) types.Listener {
	return types.Listener{
		Protocol: protocol,
		Port:     aws.Int32(port),
		DefaultActions: []types.Action{{
			Type:           types.ActionTypeEnumForward,
			TargetGroupArn: aws.String(targetGroupARN),
		}},
	}
}

func MockDescribeListenersOutput(listeners ...types.Listener) *elbv2.DescribeListenersOutput {
	return &elbv2.DescribeListenersOutput{Listeners: listeners}
}

// MockDescribeTagsOutput returns the tags per resource ARN.
func MockDescribeTagsOutput(tags map[string]Tags) *elbv2.DescribeTagsOutput {
	out := &elbv2.DescribeTagsOutput{}
	for arn, kv := range tags {
		desc := types.TagDescription{ResourceArn: aws.String(arn)}
		for k, v := range kv {
			desc.Tags = append(desc.Tags, types.Tag{Key: aws.String(k), Value: aws.String(v)})
		}
		out.TagDescriptions = append(out.TagDescriptions, desc)
	}
	return out
}

// MockDescribeTargetHealthOutput returns the targets with their health state.
func MockDescribeTargetHealthOutput(states map[string]types.TargetHealthStateEnum) *elbv2.DescribeTargetHealthOutput {
	out := &elbv2.DescribeTargetHealthOutput{}
	for id, state := range states {
		out.TargetHealthDescriptions = append(out.TargetHealthDescriptions, types.TargetHealthDescription{
			Target:       &types.TargetDescription{Id: aws.String(id)},
			TargetHealth: &types.TargetHealth{State: state},
		})
	}
	return out
}
