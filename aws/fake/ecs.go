package fake

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/aws/aws-sdk-go-v2/service/ecs/types"
)

type ECSOutputs struct {
	ListClusters     *Pages
	DescribeClusters *Pages
	CreateCluster    *APIResponse
	DeleteCluster    *APIResponse
}

type ECSInputs struct {
	ListClusters     []*ecs.ListClustersInput
	DescribeClusters []*ecs.DescribeClustersInput
	CreateCluster    []*ecs.CreateClusterInput
	DeleteCluster    []*ecs.DeleteClusterInput
}

type ECSClient struct {
	mu      sync.Mutex
	Outputs ECSOutputs
	Inputs  ECSInputs
}

func (m *ECSClient) ListClusters(_ context.Context, in *ecs.ListClustersInput, _ ...func(*ecs.Options)) (*ecs.ListClustersOutput, error) {
	m.mu.Lock()
	cp := *in
	m.Inputs.ListClusters = append(m.Inputs.ListClusters, &cp)
	m.mu.Unlock()
	return page[ecs.ListClustersOutput](m.Outputs.ListClusters)
}

func (m *ECSClient) DescribeClusters(_ context.Context, in *ecs.DescribeClustersInput, _ ...func(*ecs.Options)) (*ecs.DescribeClustersOutput, error) {
	m.mu.Lock()
	m.Inputs.DescribeClusters = append(m.Inputs.DescribeClusters, in)
	m.mu.Unlock()
	return page[ecs.DescribeClustersOutput](m.Outputs.DescribeClusters)
}

func (m *ECSClient) CreateCluster(_ context.Context, in *ecs.CreateClusterInput, _ ...func(*ecs.Options)) (*ecs.CreateClusterOutput, error) {
	m.mu.Lock()
	m.Inputs.CreateCluster = append(m.Inputs.CreateCluster, in)
	m.mu.Unlock()
	return result[ecs.CreateClusterOutput](m.Outputs.CreateCluster)
}

func (m *ECSClient) DeleteCluster(_ context.Context, in *ecs.DeleteClusterInput, _ ...func(*ecs.Options)) (*ecs.DeleteClusterOutput, error) {
	m.mu.Lock()
	m.Inputs.DeleteCluster = append(m.Inputs.DeleteCluster, in)
	m.mu.Unlock()
	return result[ecs.DeleteClusterOutput](m.Outputs.DeleteCluster)
}

func Cluster(name, region, account string) types.Cluster {
	return types.Cluster{
		ClusterName: aws.String(name),
		ClusterArn:  aws.String("arn:aws:ecs:" + region + ":" + account + ":cluster/" + name),
		Status:      aws.String("ACTIVE"),
	}
}

func MockListClustersOutput(nextToken string, arns ...string) *ecs.ListClustersOutput {
	out := &ecs.ListClustersOutput{ClusterArns: arns}
	if nextToken != "" {
		out.NextToken = aws.String(nextToken)
	}
	return out
}
