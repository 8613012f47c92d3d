package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
)

// limit target group updates to 10 at a time since this is the limit
// in AWS API.
const targetGroupsPerAutoScalingCall = 10

func chunks(items []string, size int) [][]string {
	var result [][]string
	for i := 0; i < len(items); i += size {
		end := i + size
		if end > len(items) {
			end = len(items)
		}
		result = append(result, items[i:end])
	}
	return result
}

func attachTargetGroupsToAutoScalingGroup(ctx context.Context, svc AutoScalingAPI, targetGroupARNs []string, autoScalingGroupName string) error {
	for _, groups := range chunks(targetGroupARNs, targetGroupsPerAutoScalingCall) {
		params := &autoscaling.AttachLoadBalancerTargetGroupsInput{
			AutoScalingGroupName: aws.String(autoScalingGroupName),
			TargetGroupARNs:      groups,
		}
		if _, err := svc.AttachLoadBalancerTargetGroups(ctx, params); err != nil {
			return err
		}
	}
	return nil
}

func detachTargetGroupsFromAutoScalingGroup(ctx context.Context, svc AutoScalingAPI, targetGroupARNs []string, autoScalingGroupName string) error {
	for _, groups := range chunks(targetGroupARNs, targetGroupsPerAutoScalingCall) {
		params := &autoscaling.DetachLoadBalancerTargetGroupsInput{
			AutoScalingGroupName: aws.String(autoScalingGroupName),
			TargetGroupARNs:      groups,
		}
		if _, err := svc.DetachLoadBalancerTargetGroups(ctx, params); err != nil {
			return err
		}
	}
	return nil
}
