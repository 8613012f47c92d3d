package fake

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
)

type AutoscalingOutputs struct {
	AttachLoadBalancerTargetGroups *APIResponse
	DetachLoadBalancerTargetGroups *APIResponse
}

type AutoscalingInputs struct {
	AttachLoadBalancerTargetGroups []*autoscaling.AttachLoadBalancerTargetGroupsInput
	DetachLoadBalancerTargetGroups []*autoscaling.DetachLoadBalancerTargetGroupsInput
}

type AutoScalingClient struct {
	mu      sync.Mutex
	Outputs AutoscalingOutputs
	Inputs  AutoscalingInputs
}

func (m *AutoScalingClient) AttachLoadBalancerTargetGroups(_ context.Context, in *autoscaling.AttachLoadBalancerTargetGroupsInput, _ ...func(*autoscaling.Options)) (*autoscaling.AttachLoadBalancerTargetGroupsOutput, error) {
	record(&m.mu, &m.Inputs.AttachLoadBalancerTargetGroups, in)
	return result[autoscaling.AttachLoadBalancerTargetGroupsOutput](m.Outputs.AttachLoadBalancerTargetGroups)
}

func (m *AutoScalingClient) DetachLoadBalancerTargetGroups(_ context.Context, in *autoscaling.DetachLoadBalancerTargetGroupsInput, _ ...func(*autoscaling.Options)) (*autoscaling.DetachLoadBalancerTargetGroupsOutput, error) {
	record(&m.mu, &m.Inputs.DetachLoadBalancerTargetGroups, in)
	return result[autoscaling.DetachLoadBalancerTargetGroupsOutput](m.Outputs.DetachLoadBalancerTargetGroups)
}
