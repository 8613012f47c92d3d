package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/acm"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	ecstypes "github.com/aws/aws-sdk-go-v2/service/ecs/types"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	elbv2types "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/ghodss/yaml"
	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zalando-incubator/aws-cloud-adapter/aws"
	"github.com/zalando-incubator/aws-cloud-adapter/cloud"
	awsmock "github.com/zalando-incubator/aws-cloud-adapter/internal/aws/mock"
)

const testRegion = "eu-central-1"

type testClients struct {
	ec2   *awsmock.EC2API
	ecs   *awsmock.ECSAPI
	elbv2 *awsmock.ELBV2API
	iam   *awsmock.IAMAPI
	acm   *awsmock.ACMAPI
	asg   *awsmock.AutoScalingAPI
}

func newTestClients() *testClients {
	return &testClients{
		ec2:   &awsmock.EC2API{},
		ecs:   &awsmock.ECSAPI{},
		elbv2: &awsmock.ELBV2API{},
		iam:   &awsmock.IAMAPI{},
		acm:   &awsmock.ACMAPI{},
		asg:   &awsmock.AutoScalingAPI{},
	}
}

func (tc *testClients) assertExpectations(t *testing.T) {
	tc.ec2.AssertExpectations(t)
	tc.ecs.AssertExpectations(t)
	tc.elbv2.AssertExpectations(t)
	tc.iam.AssertExpectations(t)
	tc.acm.AssertExpectations(t)
	tc.asg.AssertExpectations(t)
}

func newTestCLI(tc *testClients) (*cli, *bytes.Buffer) {
	out := &bytes.Buffer{}
	c := newCLI(out)
	c.newAdapter = func(_ context.Context, cfg *config) (*aws.Adapter, error) {
		return cfg.configure(aws.NewAdapterFromClients(testRegion, aws.Clients{
			EC2:         tc.ec2,
			ECS:         tc.ecs,
			ELBV2:       tc.elbv2,
			IAM:         tc.iam,
			ACM:         tc.acm,
			AutoScaling: tc.asg,
		})), nil
	}
	return c, out
}

func cluster(name string) ecstypes.Cluster {
	return ecstypes.Cluster{
		ClusterName: awssdk.String(name),
		ClusterArn:  awssdk.String("arn:aws:ecs:eu-central-1:123456789012:cluster/" + name),
		Status:      awssdk.String("ACTIVE"),
	}
}

func TestClusterList(t *testing.T) {
	tc := newTestClients()
	tc.ecs.On("ListClusters", mock.Anything, mock.Anything, mock.Anything).
		Return(&ecs.ListClustersOutput{ClusterArns: []string{
			"arn:aws:ecs:eu-central-1:123456789012:cluster/a",
			"arn:aws:ecs:eu-central-1:123456789012:cluster/b",
		}}, nil)
	tc.ecs.On("DescribeClusters", mock.Anything, mock.Anything, mock.Anything).
		Return(&ecs.DescribeClustersOutput{Clusters: []ecstypes.Cluster{cluster("a"), cluster("b")}}, nil)

	c, out := newTestCLI(tc)
	require.NoError(t, c.run(context.Background(), []string{"cluster", "list"}))

	var got []*cloud.Cluster
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	want := []*cloud.Cluster{
		{ID: "arn:aws:ecs:eu-central-1:123456789012:cluster/a", Name: "a", Status: "ACTIVE"},
		{ID: "arn:aws:ecs:eu-central-1:123456789012:cluster/b", Name: "b", Status: "ACTIVE"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("clusters mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(c.metrics.resourcesTotal.WithLabelValues(resourceCluster)))
	assert.NotZero(t, testutil.ToFloat64(c.metrics.lastRunTimestamp))
	tc.assertExpectations(t)
}

func TestClusterGetNotFound(t *testing.T) {
	tc := newTestClients()
	tc.ecs.On("DescribeClusters", mock.Anything, mock.Anything, mock.Anything).
		Return(&ecs.DescribeClustersOutput{}, nil)

	c, out := newTestCLI(tc)
	err := c.run(context.Background(), []string{"cluster", "get", "missing"})
	assert.ErrorIs(t, err, errNotFound)
	assert.Empty(t, out.String())
	assert.Zero(t, testutil.ToFloat64(c.metrics.lastRunTimestamp))
}

func TestClusterCreate(t *testing.T) {
	tc := newTestClients()
	tc.ecs.On("CreateCluster", mock.Anything, mock.MatchedBy(func(in *ecs.CreateClusterInput) bool {
		return awssdk.ToString(in.ClusterName) == "web"
	}), mock.Anything).Return(&ecs.CreateClusterOutput{Cluster: &ecstypes.Cluster{
		ClusterArn: awssdk.String("arn:aws:ecs:eu-central-1:123456789012:cluster/web"),
	}}, nil)

	c, out := newTestCLI(tc)
	require.NoError(t, c.run(context.Background(), []string{"cluster", "create", "web"}))
	assert.JSONEq(t, `{"id": "arn:aws:ecs:eu-central-1:123456789012:cluster/web"}`, out.String())
	assert.Equal(t, 1.0, testutil.ToFloat64(c.metrics.changesTotal.WithLabelValues(resourceCluster, "create")))
	tc.assertExpectations(t)
}

func TestClusterSubscribed(t *testing.T) {
	tc := newTestClients()
	tc.ecs.On("ListClusters", mock.Anything, mock.Anything, mock.Anything).
		Return(&ecs.ListClustersOutput{}, nil)

	c, out := newTestCLI(tc)
	require.NoError(t, c.run(context.Background(), []string{"cluster", "subscribed"}))
	assert.JSONEq(t, `{"subscribed": true}`, out.String())
}

func TestSnapshotListYAML(t *testing.T) {
	tc := newTestClients()
	tc.ec2.On("DescribeSnapshots", mock.Anything, mock.MatchedBy(func(in *ec2.DescribeSnapshotsInput) bool {
		return len(in.OwnerIds) == 1 && in.OwnerIds[0] == "self" &&
			len(in.Filters) == 1 && awssdk.ToString(in.Filters[0].Name) == "tag:team"
	}), mock.Anything).Return(&ec2.DescribeSnapshotsOutput{Snapshots: []ec2types.Snapshot{{
		SnapshotId: awssdk.String("snap-1"),
		VolumeId:   awssdk.String("vol-1"),
		OwnerId:    awssdk.String("123456789012"),
		State:      ec2types.SnapshotStateCompleted,
		VolumeSize: awssdk.Int32(8),
		Tags: []ec2types.Tag{
			{Key: awssdk.String("Name"), Value: awssdk.String("db-backup")},
			{Key: awssdk.String("team"), Value: awssdk.String("db")},
		},
	}}}, nil)

	c, out := newTestCLI(tc)
	require.NoError(t, c.run(context.Background(), []string{"-o", "yaml", "snapshot", "list", "--tag", "team=db", "--regex", "^db-"}))

	var got []cloud.Snapshot
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "db-backup", got[0].Name)
	assert.Equal(t, cloud.SnapshotStateAvailable, got[0].State)
	assert.Equal(t, testRegion, got[0].RegionID)
	tc.assertExpectations(t)
}

func TestSnapshotCreateAndWait(t *testing.T) {
	tc := newTestClients()
	tc.ec2.On("CreateSnapshot", mock.Anything, mock.MatchedBy(func(in *ec2.CreateSnapshotInput) bool {
		if awssdk.ToString(in.VolumeId) != "vol-1" || len(in.TagSpecifications) != 1 {
			return false
		}
		tags := map[string]string{}
		for _, tag := range in.TagSpecifications[0].Tags {
			tags[awssdk.ToString(tag.Key)] = awssdk.ToString(tag.Value)
		}
		return cmp.Equal(map[string]string{"Name": "backup", "team": "db"}, tags)
	}), mock.Anything).Return(&ec2.CreateSnapshotOutput{SnapshotId: awssdk.String("snap-1")}, nil)

	snapshot := func(state ec2types.SnapshotState) *ec2.DescribeSnapshotsOutput {
		return &ec2.DescribeSnapshotsOutput{Snapshots: []ec2types.Snapshot{{
			SnapshotId: awssdk.String("snap-1"),
			State:      state,
		}}}
	}
	tc.ec2.On("DescribeSnapshots", mock.Anything, mock.Anything, mock.Anything).
		Return(snapshot(ec2types.SnapshotStatePending), nil).Once()
	tc.ec2.On("DescribeSnapshots", mock.Anything, mock.Anything, mock.Anything).
		Return(snapshot(ec2types.SnapshotStateCompleted), nil).Once()

	c, out := newTestCLI(tc)
	err := c.run(context.Background(), []string{
		"snapshot", "create", "--volume", "vol-1", "--name", "backup", "--tag", "team=db",
		"--wait", "--interval", "1ms",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": "snap-1"}`, out.String())
	assert.Equal(t, 2.0, testutil.ToFloat64(c.metrics.waitPollsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.metrics.changesTotal.WithLabelValues(resourceSnapshot, "create")))
	tc.assertExpectations(t)
}

func TestSnapshotCopy(t *testing.T) {
	tc := newTestClients()
	tc.ec2.On("CopySnapshot", mock.Anything, mock.MatchedBy(func(in *ec2.CopySnapshotInput) bool {
		return awssdk.ToString(in.SourceRegion) == "us-east-1" && awssdk.ToString(in.SourceSnapshotId) == "snap-0"
	}), mock.Anything).Return(&ec2.CopySnapshotOutput{SnapshotId: awssdk.String("snap-2")}, nil)

	c, out := newTestCLI(tc)
	err := c.run(context.Background(), []string{
		"snapshot", "copy", "--source-region", "us-east-1", "--source-id", "snap-0", "--name", "copy",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": "snap-2"}`, out.String())
	tc.assertExpectations(t)
}

func TestSnapshotTags(t *testing.T) {
	tc := newTestClients()
	tc.ec2.On("CreateTags", mock.Anything, mock.MatchedBy(func(in *ec2.CreateTagsInput) bool {
		return len(in.Resources) == 1 && in.Resources[0] == "snap-1" && len(in.Tags) == 2
	}), mock.Anything).Return(&ec2.CreateTagsOutput{}, nil)
	tc.ec2.On("DeleteTags", mock.Anything, mock.MatchedBy(func(in *ec2.DeleteTagsInput) bool {
		return len(in.Tags) == 1 && awssdk.ToString(in.Tags[0].Key) == "team"
	}), mock.Anything).Return(&ec2.DeleteTagsOutput{}, nil)

	c, _ := newTestCLI(tc)
	require.NoError(t, c.run(context.Background(), []string{"snapshot", "tag", "snap-1", "team=db", "env=prod"}))

	c, _ = newTestCLI(tc)
	require.NoError(t, c.run(context.Background(), []string{"snapshot", "untag", "snap-1", "team"}))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.metrics.changesTotal.WithLabelValues(resourceSnapshot, "update")))
	tc.assertExpectations(t)
}

func TestSnapshotPublic(t *testing.T) {
	tc := newTestClients()
	tc.ec2.On("DescribeSnapshotAttribute", mock.Anything, mock.Anything, mock.Anything).
		Return(&ec2.DescribeSnapshotAttributeOutput{CreateVolumePermissions: []ec2types.CreateVolumePermission{
			{Group: ec2types.PermissionGroupAll},
		}}, nil)

	c, out := newTestCLI(tc)
	require.NoError(t, c.run(context.Background(), []string{"snapshot", "public", "snap-1"}))
	assert.JSONEq(t, `{"id": "snap-1", "public": true}`, out.String())
}

func webLoadBalancer() *elbv2.DescribeLoadBalancersOutput {
	return &elbv2.DescribeLoadBalancersOutput{LoadBalancers: []elbv2types.LoadBalancer{{
		LoadBalancerArn:  awssdk.String("arn:aws:elasticloadbalancing:eu-central-1:123456789012:loadbalancer/app/web/1"),
		LoadBalancerName: awssdk.String("web"),
		State:            &elbv2types.LoadBalancerState{Code: elbv2types.LoadBalancerStateEnumActive},
	}}}
}

func webTargetGroups(arns ...string) *elbv2.DescribeTargetGroupsOutput {
	out := &elbv2.DescribeTargetGroupsOutput{}
	for _, arn := range arns {
		out.TargetGroups = append(out.TargetGroups, elbv2types.TargetGroup{TargetGroupArn: awssdk.String(arn)})
	}
	return out
}

func TestLoadBalancerAttachAutoScalingGroup(t *testing.T) {
	tc := newTestClients()
	tc.elbv2.On("DescribeLoadBalancers", mock.Anything, mock.MatchedBy(func(in *elbv2.DescribeLoadBalancersInput) bool {
		return len(in.Names) == 1 && in.Names[0] == "web"
	}), mock.Anything).Return(webLoadBalancer(), nil)
	tc.elbv2.On("DescribeTargetGroups", mock.Anything, mock.Anything, mock.Anything).
		Return(webTargetGroups("tg-1", "tg-2"), nil)
	tc.asg.On("AttachLoadBalancerTargetGroups", mock.Anything, mock.MatchedBy(func(in *autoscaling.AttachLoadBalancerTargetGroupsInput) bool {
		return awssdk.ToString(in.AutoScalingGroupName) == "nodes" && cmp.Equal([]string{"tg-1", "tg-2"}, in.TargetGroupARNs)
	}), mock.Anything).Return(&autoscaling.AttachLoadBalancerTargetGroupsOutput{}, nil)

	c, _ := newTestCLI(tc)
	require.NoError(t, c.run(context.Background(), []string{"lb", "attach-asg", "web", "nodes"}))
	tc.assertExpectations(t)
}

func TestLoadBalancerModifyHealthCheckFromFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "health.yaml")
	require.NoError(t, os.WriteFile(file, []byte("protocol: HTTP\npath: /ready\ninterval: 20s\n"), 0o600))

	tc := newTestClients()
	tc.elbv2.On("DescribeLoadBalancers", mock.Anything, mock.Anything, mock.Anything).Return(webLoadBalancer(), nil)
	tc.elbv2.On("DescribeTargetGroups", mock.Anything, mock.Anything, mock.Anything).Return(webTargetGroups("tg-1"), nil)
	tc.elbv2.On("ModifyTargetGroup", mock.Anything, mock.MatchedBy(func(in *elbv2.ModifyTargetGroupInput) bool {
		return awssdk.ToString(in.TargetGroupArn) == "tg-1" &&
			awssdk.ToString(in.HealthCheckPath) == "/ready" &&
			awssdk.ToString(in.HealthCheckPort) == "traffic-port" &&
			awssdk.ToInt32(in.HealthCheckIntervalSeconds) == 20
	}), mock.Anything).Return(&elbv2.ModifyTargetGroupOutput{}, nil)

	c, _ := newTestCLI(tc)
	require.NoError(t, c.run(context.Background(), []string{"lb", "modify-health-check", "web", "-f", file}))
	tc.assertExpectations(t)
}

func TestLoadBalancerGetNotFound(t *testing.T) {
	tc := newTestClients()
	tc.elbv2.On("DescribeLoadBalancers", mock.Anything, mock.Anything, mock.Anything).
		Return(&elbv2.DescribeLoadBalancersOutput{}, nil)

	c, _ := newTestCLI(tc)
	err := c.run(context.Background(), []string{"lb", "get", "missing"})
	assert.ErrorIs(t, err, errNotFound)
}

func TestLoadBalancerCreateMissingFile(t *testing.T) {
	c, _ := newTestCLI(newTestClients())
	err := c.run(context.Background(), []string{"lb", "create", "-f", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func TestCapabilities(t *testing.T) {
	c, out := newTestCLI(newTestClients())
	require.NoError(t, c.run(context.Background(), []string{"capabilities"}))

	var got capabilities
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "cluster", got.Containers.Cluster)
	assert.Equal(t, "snapshot", got.Snapshots.Snapshot)
	assert.True(t, got.Snapshots.Copying)
	assert.Contains(t, got.LoadBalancers.Protocols, cloud.LbProtocolRawTCP)
}

func TestUnknownCommand(t *testing.T) {
	c, _ := newTestCLI(newTestClients())
	assert.Error(t, c.run(context.Background(), []string{"volume", "list"}))
}

func TestWaitTimeout(t *testing.T) {
	tc := newTestClients()
	tc.ec2.On("DescribeSnapshots", mock.Anything, mock.Anything, mock.Anything).
		Return(&ec2.DescribeSnapshotsOutput{Snapshots: []ec2types.Snapshot{{
			SnapshotId: awssdk.String("snap-1"),
			State:      ec2types.SnapshotStatePending,
		}}}, nil)

	c, _ := newTestCLI(tc)
	start := time.Now()
	err := c.run(context.Background(), []string{"snapshot", "wait", "snap-1", "--interval", "5ms", "--wait-timeout", "30ms"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestWaitZeroInterval(t *testing.T) {
	c, _ := newTestCLI(newTestClients())
	err := c.run(context.Background(), []string{"snapshot", "wait", "snap-1", "--interval", "0s"})
	assert.ErrorIs(t, err, errInvalidInterval)
}

func TestSnapshotListRegexMatchesName(t *testing.T) {
	tc := newTestClients()
	tc.ec2.On("DescribeSnapshots", mock.Anything, mock.Anything, mock.Anything).
		Return(&ec2.DescribeSnapshotsOutput{Snapshots: []ec2types.Snapshot{
			{
				SnapshotId:  awssdk.String("snap-1"),
				Description: awssdk.String("db-nightly"),
				Tags:        []ec2types.Tag{{Key: awssdk.String("Name"), Value: awssdk.String("web")}},
			},
			{
				SnapshotId: awssdk.String("snap-2"),
				Tags:       []ec2types.Tag{{Key: awssdk.String("Name"), Value: awssdk.String("db-weekly")}},
			},
		}}, nil)

	c, out := newTestCLI(tc)
	require.NoError(t, c.run(context.Background(), []string{"snapshot", "list", "--regex", "^db-"}))

	var got []cloud.Snapshot
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "snap-2", got[0].ID)
}

func TestCertificateFindNoMatch(t *testing.T) {
	tc := newTestClients()
	tc.iam.On("ListServerCertificates", mock.Anything, mock.Anything, mock.Anything).
		Return(&iam.ListServerCertificatesOutput{}, nil)
	tc.acm.On("ListCertificates", mock.Anything, mock.Anything, mock.Anything).
		Return(&acm.ListCertificatesOutput{}, nil)

	c, out := newTestCLI(tc)
	err := c.run(context.Background(), []string{"cert", "find", "shop.example.org"})
	assert.ErrorIs(t, err, errNotFound)
	assert.Empty(t, out.String())
	tc.assertExpectations(t)
}
