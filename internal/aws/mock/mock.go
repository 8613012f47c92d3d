package mock

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/acm"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/stretchr/testify/mock"

	"github.com/zalando-incubator/aws-cloud-adapter/aws"
)

// AutoScalingAPI is a mock implementation of [aws.AutoScalingAPI]
type AutoScalingAPI struct {
	mock.Mock
}

var _ aws.AutoScalingAPI = &AutoScalingAPI{}

func (m *AutoScalingAPI) AttachLoadBalancerTargetGroups(ctx context.Context, params *autoscaling.AttachLoadBalancerTargetGroupsInput, optFns ...func(*autoscaling.Options)) (*autoscaling.AttachLoadBalancerTargetGroupsOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*autoscaling.AttachLoadBalancerTargetGroupsOutput)
	return out, args.Error(1)
}

func (m *AutoScalingAPI) DetachLoadBalancerTargetGroups(ctx context.Context, params *autoscaling.DetachLoadBalancerTargetGroupsInput, optFns ...func(*autoscaling.Options)) (*autoscaling.DetachLoadBalancerTargetGroupsOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*autoscaling.DetachLoadBalancerTargetGroupsOutput)
	return out, args.Error(1)
}

// EC2API is a mock implementation of [aws.EC2API]
type EC2API struct {
	mock.Mock
}

var _ aws.EC2API = &EC2API{}

func (m *EC2API) DescribeSnapshots(ctx context.Context, params *ec2.DescribeSnapshotsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSnapshotsOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*ec2.DescribeSnapshotsOutput)
	return out, args.Error(1)
}

func (m *EC2API) DescribeSnapshotAttribute(ctx context.Context, params *ec2.DescribeSnapshotAttributeInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSnapshotAttributeOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*ec2.DescribeSnapshotAttributeOutput)
	return out, args.Error(1)
}

func (m *EC2API) ModifySnapshotAttribute(ctx context.Context, params *ec2.ModifySnapshotAttributeInput, optFns ...func(*ec2.Options)) (*ec2.ModifySnapshotAttributeOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*ec2.ModifySnapshotAttributeOutput)
	return out, args.Error(1)
}

func (m *EC2API) CreateSnapshot(ctx context.Context, params *ec2.CreateSnapshotInput, optFns ...func(*ec2.Options)) (*ec2.CreateSnapshotOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*ec2.CreateSnapshotOutput)
	return out, args.Error(1)
}

func (m *EC2API) CopySnapshot(ctx context.Context, params *ec2.CopySnapshotInput, optFns ...func(*ec2.Options)) (*ec2.CopySnapshotOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*ec2.CopySnapshotOutput)
	return out, args.Error(1)
}

func (m *EC2API) DeleteSnapshot(ctx context.Context, params *ec2.DeleteSnapshotInput, optFns ...func(*ec2.Options)) (*ec2.DeleteSnapshotOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*ec2.DeleteSnapshotOutput)
	return out, args.Error(1)
}

func (m *EC2API) CreateTags(ctx context.Context, params *ec2.CreateTagsInput, optFns ...func(*ec2.Options)) (*ec2.CreateTagsOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*ec2.CreateTagsOutput)
	return out, args.Error(1)
}

func (m *EC2API) DeleteTags(ctx context.Context, params *ec2.DeleteTagsInput, optFns ...func(*ec2.Options)) (*ec2.DeleteTagsOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*ec2.DeleteTagsOutput)
	return out, args.Error(1)
}

// ECSAPI is a mock implementation of [aws.ECSAPI]
type ECSAPI struct {
	mock.Mock
}

var _ aws.ECSAPI = &ECSAPI{}

func (m *ECSAPI) ListClusters(ctx context.Context, params *ecs.ListClustersInput, optFns ...func(*ecs.Options)) (*ecs.ListClustersOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*ecs.ListClustersOutput)
	return out, args.Error(1)
}

func (m *ECSAPI) DescribeClusters(ctx context.Context, params *ecs.DescribeClustersInput, optFns ...func(*ecs.Options)) (*ecs.DescribeClustersOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*ecs.DescribeClustersOutput)
	return out, args.Error(1)
}

func (m *ECSAPI) CreateCluster(ctx context.Context, params *ecs.CreateClusterInput, optFns ...func(*ecs.Options)) (*ecs.CreateClusterOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*ecs.CreateClusterOutput)
	return out, args.Error(1)
}

func (m *ECSAPI) DeleteCluster(ctx context.Context, params *ecs.DeleteClusterInput, optFns ...func(*ecs.Options)) (*ecs.DeleteClusterOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*ecs.DeleteClusterOutput)
	return out, args.Error(1)
}

// ELBV2API is a mock implementation of [aws.ELBV2API]
type ELBV2API struct {
	mock.Mock
}

var _ aws.ELBV2API = &ELBV2API{}

func (m *ELBV2API) DescribeLoadBalancers(ctx context.Context, params *elbv2.DescribeLoadBalancersInput, optFns ...func(*elbv2.Options)) (*elbv2.DescribeLoadBalancersOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*elbv2.DescribeLoadBalancersOutput)
	return out, args.Error(1)
}

func (m *ELBV2API) CreateLoadBalancer(ctx context.Context, params *elbv2.CreateLoadBalancerInput, optFns ...func(*elbv2.Options)) (*elbv2.CreateLoadBalancerOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*elbv2.CreateLoadBalancerOutput)
	return out, args.Error(1)
}

func (m *ELBV2API) DeleteLoadBalancer(ctx context.Context, params *elbv2.DeleteLoadBalancerInput, optFns ...func(*elbv2.Options)) (*elbv2.DeleteLoadBalancerOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*elbv2.DeleteLoadBalancerOutput)
	return out, args.Error(1)
}

func (m *ELBV2API) DescribeListeners(ctx context.Context, params *elbv2.DescribeListenersInput, optFns ...func(*elbv2.Options)) (*elbv2.DescribeListenersOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*elbv2.DescribeListenersOutput)
	return out, args.Error(1)
}

func (m *ELBV2API) CreateListener(ctx context.Context, params *elbv2.CreateListenerInput, optFns ...func(*elbv2.Options)) (*elbv2.CreateListenerOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*elbv2.CreateListenerOutput)
	return out, args.Error(1)
}

func (m *ELBV2API) DescribeTargetGroups(ctx context.Context, params *elbv2.DescribeTargetGroupsInput, optFns ...func(*elbv2.Options)) (*elbv2.DescribeTargetGroupsOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*elbv2.DescribeTargetGroupsOutput)
	return out, args.Error(1)
}

func (m *ELBV2API) CreateTargetGroup(ctx context.Context, params *elbv2.CreateTargetGroupInput, optFns ...func(*elbv2.Options)) (*elbv2.CreateTargetGroupOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*elbv2.CreateTargetGroupOutput)
	return out, args.Error(1)
}

func (m *ELBV2API) ModifyTargetGroup(ctx context.Context, params *elbv2.ModifyTargetGroupInput, optFns ...func(*elbv2.Options)) (*elbv2.ModifyTargetGroupOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*elbv2.ModifyTargetGroupOutput)
	return out, args.Error(1)
}

func (m *ELBV2API) DeleteTargetGroup(ctx context.Context, params *elbv2.DeleteTargetGroupInput, optFns ...func(*elbv2.Options)) (*elbv2.DeleteTargetGroupOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*elbv2.DeleteTargetGroupOutput)
	return out, args.Error(1)
}

func (m *ELBV2API) RegisterTargets(ctx context.Context, params *elbv2.RegisterTargetsInput, optFns ...func(*elbv2.Options)) (*elbv2.RegisterTargetsOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*elbv2.RegisterTargetsOutput)
	return out, args.Error(1)
}

func (m *ELBV2API) DeregisterTargets(ctx context.Context, params *elbv2.DeregisterTargetsInput, optFns ...func(*elbv2.Options)) (*elbv2.DeregisterTargetsOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*elbv2.DeregisterTargetsOutput)
	return out, args.Error(1)
}

func (m *ELBV2API) DescribeTargetHealth(ctx context.Context, params *elbv2.DescribeTargetHealthInput, optFns ...func(*elbv2.Options)) (*elbv2.DescribeTargetHealthOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*elbv2.DescribeTargetHealthOutput)
	return out, args.Error(1)
}

func (m *ELBV2API) DescribeTags(ctx context.Context, params *elbv2.DescribeTagsInput, optFns ...func(*elbv2.Options)) (*elbv2.DescribeTagsOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*elbv2.DescribeTagsOutput)
	return out, args.Error(1)
}

// IAMAPI is a mock implementation of [aws.IAMAPI]
type IAMAPI struct {
	mock.Mock
}

var _ aws.IAMAPI = &IAMAPI{}

func (m *IAMAPI) GetUser(ctx context.Context, params *iam.GetUserInput, optFns ...func(*iam.Options)) (*iam.GetUserOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*iam.GetUserOutput)
	return out, args.Error(1)
}

func (m *IAMAPI) ListServerCertificates(ctx context.Context, params *iam.ListServerCertificatesInput, optFns ...func(*iam.Options)) (*iam.ListServerCertificatesOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*iam.ListServerCertificatesOutput)
	return out, args.Error(1)
}

func (m *IAMAPI) GetServerCertificate(ctx context.Context, params *iam.GetServerCertificateInput, optFns ...func(*iam.Options)) (*iam.GetServerCertificateOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*iam.GetServerCertificateOutput)
	return out, args.Error(1)
}

// ACMAPI is a mock implementation of [aws.ACMAPI]
type ACMAPI struct {
	mock.Mock
}

var _ aws.ACMAPI = &ACMAPI{}

func (m *ACMAPI) ListCertificates(ctx context.Context, params *acm.ListCertificatesInput, optFns ...func(*acm.Options)) (*acm.ListCertificatesOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*acm.ListCertificatesOutput)
	return out, args.Error(1)
}

func (m *ACMAPI) GetCertificate(ctx context.Context, params *acm.GetCertificateInput, optFns ...func(*acm.Options)) (*acm.GetCertificateOutput, error) {
	args := m.Called(ctx, params, optFns)
	out, _ := args.Get(0).(*acm.GetCertificateOutput)
	return out, args.Error(1)
}
