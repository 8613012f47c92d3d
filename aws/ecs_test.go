package aws

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	ecstypes "github.com/aws/aws-sdk-go-v2/service/ecs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zalando-incubator/aws-cloud-adapter/aws/fake"
	"github.com/zalando-incubator/aws-cloud-adapter/cloud"
)

func TestIsSubscribed(t *testing.T) {
	for _, test := range []struct {
		name    string
		out     *fake.APIResponse
		want    bool
		wantErr bool
	}{
		{"subscribed", fake.R(fake.MockListClustersOutput(""), nil), true, false},
		{"access denied", fake.R(nil, fake.APIError("AccessDeniedException", "")), false, false},
		{"opt in required", fake.R(nil, fake.APIError("OptInRequired", "")), false, false},
		{"other error", fake.R(nil, fake.APIError("ServerException", "")), false, true},
	} {
		t.Run(test.name, func(t *testing.T) {
			a, c := newTestAdapter()
			c.ecs.Outputs.ListClusters = fake.P(test.out)

			got, err := a.Containers().IsSubscribed(context.Background())
			if test.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, test.want, got)
			assert.Equal(t, int32(1), aws.ToInt32(c.ecs.Inputs.ListClusters[0].MaxResults))
		})
	}
}

func TestListClusters(t *testing.T) {
	a, c := newTestAdapter()

	arns := make([]string, 0, 150)
	clusters := make([]ecstypes.Cluster, 0, 150)
	for i := 0; i < 150; i++ {
		cl := fake.Cluster(fmt.Sprintf("cluster-%d", i), testRegion, testAccount)
		arns = append(arns, aws.ToString(cl.ClusterArn))
		clusters = append(clusters, cl)
	}
	clusters[3].ClusterName = aws.String(" ")

	c.ecs.Outputs.ListClusters = fake.P(
		fake.R(fake.MockListClustersOutput("next", arns[:120]...), nil),
		fake.R(fake.MockListClustersOutput("", arns[120:]...), nil),
	)
	c.ecs.Outputs.DescribeClusters = fake.P(
		fake.R(&ecs.DescribeClustersOutput{Clusters: clusters[:100]}, nil),
		fake.R(&ecs.DescribeClustersOutput{Clusters: clusters[100:]}, nil),
	)

	got, err := a.Containers().ListClusters(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 149)
	assert.Equal(t, &cloud.Cluster{ID: arns[0], Name: "cluster-0", Status: "ACTIVE"}, got[0])

	require.Len(t, c.ecs.Inputs.ListClusters, 2)
	assert.Equal(t, "next", aws.ToString(c.ecs.Inputs.ListClusters[1].NextToken))
	require.Len(t, c.ecs.Inputs.DescribeClusters, 2)
	assert.Len(t, c.ecs.Inputs.DescribeClusters[0].Clusters, 100)
	assert.Len(t, c.ecs.Inputs.DescribeClusters[1].Clusters, 50)
}

func TestListClustersEmpty(t *testing.T) {
	a, c := newTestAdapter()
	got, err := a.Containers().ListClusters(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, c.ecs.Inputs.DescribeClusters)
}

func TestCreateCluster(t *testing.T) {
	a, c := newTestAdapter()
	cl := fake.Cluster("my-cluster_1", testRegion, testAccount)
	c.ecs.Outputs.CreateCluster = fake.R(&ecs.CreateClusterOutput{Cluster: &cl}, nil)

	id, err := a.Containers().CreateCluster(context.Background(), "my cluster_1!")
	require.NoError(t, err)
	assert.Equal(t, aws.ToString(cl.ClusterArn), id)
	assert.Equal(t, "my-cluster_1", aws.ToString(c.ecs.Inputs.CreateCluster[0].ClusterName))

	c.ecs.Outputs.CreateCluster = fake.R(&ecs.CreateClusterOutput{}, nil)
	_, err = a.Containers().CreateCluster(context.Background(), "x")
	assert.ErrorIs(t, err, cloud.ErrNotCreated)
}

func TestValidClusterName(t *testing.T) {
	now := time.UnixMilli(1452148872485)
	for _, test := range []struct {
		name string
		want string
	}{
		{"prod", "prod"},
		{"prod cluster", "prod-cluster"},
		{"a.b/c:d", "abcd"},
		{"under_score-dash", "under_score-dash"},
		{"!!!", "1452148872485"},
		{"", "1452148872485"},
	} {
		assert.Equal(t, test.want, validClusterName(test.name, now), test.name)
	}
}

func TestGetCluster(t *testing.T) {
	ctx := context.Background()
	a, c := newTestAdapter()
	cl := fake.Cluster("prod", testRegion, testAccount)

	c.ecs.Outputs.DescribeClusters = fake.P(fake.R(&ecs.DescribeClustersOutput{Clusters: []ecstypes.Cluster{cl}}, nil))
	got, err := a.Containers().GetCluster(ctx, "prod")
	require.NoError(t, err)
	assert.Equal(t, "prod", got.Name)
	assert.Equal(t, []string{"prod"}, c.ecs.Inputs.DescribeClusters[0].Clusters)

	c.ecs.Outputs.DescribeClusters = fake.P(fake.R(&ecs.DescribeClustersOutput{
		Failures: []ecstypes.Failure{{Arn: aws.String("prod"), Reason: aws.String("MISSING")}},
	}, nil))
	got, err = a.Containers().GetCluster(ctx, "prod")
	require.NoError(t, err)
	assert.Nil(t, got)

	c.ecs.Outputs.DescribeClusters = fake.P(fake.R(nil, fake.APIError("ClusterNotFoundException", "")))
	got, err = a.Containers().GetCluster(ctx, "prod")
	require.NoError(t, err)
	assert.Nil(t, got)

	c.ecs.Outputs.DescribeClusters = fake.P(fake.R(nil, fake.APIError("ServerException", "")))
	_, err = a.Containers().GetCluster(ctx, "prod")
	assert.True(t, cloud.IsCode(err, "ServerException"))
}

func TestRemoveCluster(t *testing.T) {
	a, c := newTestAdapter()
	require.NoError(t, a.Containers().RemoveCluster(context.Background(), "prod"))
	assert.Equal(t, "prod", aws.ToString(c.ecs.Inputs.DeleteCluster[0].Cluster))

	c.ecs.Outputs.DeleteCluster = fake.R(nil, fake.APIError("ClusterContainsServicesException", ""))
	assert.Error(t, a.Containers().RemoveCluster(context.Background(), "prod"))
}

func TestContainerCapabilities(t *testing.T) {
	a, _ := newTestAdapter()
	caps := a.Containers().Capabilities()
	assert.Equal(t, "cluster", caps.ProviderTermForCluster())
	assert.Equal(t, "service", caps.ProviderTermForScheduler())
	assert.Equal(t, "task", caps.ProviderTermForTask())
}
