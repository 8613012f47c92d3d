package aws

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/aws/aws-sdk-go-v2/service/ecs/types"
	log "github.com/sirupsen/logrus"

	"github.com/zalando-incubator/aws-cloud-adapter/cloud"
)

const (
	describeClustersBatchSize = 100
	errClusterNotFound        = "ClusterNotFoundException"
)

// ContainerSupport manages ECS clusters.
type ContainerSupport struct {
	adapter *Adapter
	api     ECSAPI

	capsOnce sync.Once
	caps     *ContainerCapabilities
}

var _ cloud.ContainerSupport = (*ContainerSupport)(nil)

// IsSubscribed reports whether the account can use ECS in the adapter region.
func (s *ContainerSupport) IsSubscribed(ctx context.Context) (bool, error) {
	t := beginTrace("Containers.isSubscribed")
	defer t.end()

	_, err := s.api.ListClusters(ctx, &ecs.ListClustersInput{MaxResults: aws.Int32(1)})
	if err != nil {
		if isAccessDenied(err) {
			t.log.Debugf("not subscribed: %v", err)
			return false, nil
		}
		return false, t.fail(err)
	}
	return true, nil
}

func (s *ContainerSupport) Capabilities() cloud.ContainerCapabilities {
	s.capsOnce.Do(func() {
		s.caps = &ContainerCapabilities{}
	})
	return s.caps
}

// ListClusters returns every cluster in the region.
func (s *ContainerSupport) ListClusters(ctx context.Context) ([]*cloud.Cluster, error) {
	t := beginTrace("Containers.listClusters")
	defer t.end()

	var arns []string
	params := &ecs.ListClustersInput{}
	for {
		resp, err := s.api.ListClusters(ctx, params)
		if err != nil {
			return nil, t.fail(err)
		}
		arns = append(arns, resp.ClusterArns...)
		if aws.ToString(resp.NextToken) == "" {
			break
		}
		params.NextToken = resp.NextToken
	}

	clusters := make([]*cloud.Cluster, 0, len(arns))
	for start := 0; start < len(arns); start += describeClustersBatchSize {
		end := start + describeClustersBatchSize
		if end > len(arns) {
			end = len(arns)
		}
		resp, err := s.api.DescribeClusters(ctx, &ecs.DescribeClustersInput{Clusters: arns[start:end]})
		if err != nil {
			return nil, t.fail(err)
		}
		for _, c := range resp.Clusters {
			if cluster := toCluster(c); cluster != nil {
				clusters = append(clusters, cluster)
			}
		}
	}
	return clusters, nil
}

// CreateCluster creates a cluster and returns its ARN. Characters ECS does not
// accept are removed from name.
func (s *ContainerSupport) CreateCluster(ctx context.Context, name string) (string, error) {
	t := beginTrace("Containers.createCluster")
	defer t.end()

	name = validClusterName(name, time.Now())
	t.log.Debugf("clusterName=%s", name)
	t.log.Infof("Creating container cluster %s", name)

	resp, err := s.api.CreateCluster(ctx, &ecs.CreateClusterInput{ClusterName: aws.String(name)})
	if err != nil {
		return "", t.fail(err)
	}
	if resp.Cluster == nil || aws.ToString(resp.Cluster.ClusterArn) == "" {
		return "", t.fail(cloud.ErrNotCreated)
	}

	clusterARN := aws.ToString(resp.Cluster.ClusterArn)
	t.log.Infof("Created container cluster %s", clusterARN)
	return clusterARN, nil
}

// GetCluster returns the cluster with the given name or ARN.
func (s *ContainerSupport) GetCluster(ctx context.Context, id string) (*cloud.Cluster, error) {
	t := beginTrace("Containers.getCluster")
	defer t.end()

	resp, err := s.api.DescribeClusters(ctx, &ecs.DescribeClustersInput{Clusters: []string{id}})
	if err != nil {
		if hasErrorCode(err, errClusterNotFound) {
			return nil, nil
		}
		return nil, t.fail(err)
	}
	for _, f := range resp.Failures {
		t.log.Debugf("cluster %s: %s", aws.ToString(f.Arn), aws.ToString(f.Reason))
	}
	if len(resp.Clusters) == 0 {
		return nil, nil
	}
	return toCluster(resp.Clusters[0]), nil
}

func (s *ContainerSupport) RemoveCluster(ctx context.Context, id string) error {
	t := beginTrace("Containers.removeCluster")
	defer t.end()

	if _, err := s.api.DeleteCluster(ctx, &ecs.DeleteClusterInput{Cluster: aws.String(id)}); err != nil {
		return t.fail(err)
	}
	log.Infof("Removed container cluster %s", id)
	return nil
}

// toCluster returns nil for clusters without a name or an ARN.
func toCluster(c types.Cluster) *cloud.Cluster {
	name := strings.TrimSpace(aws.ToString(c.ClusterName))
	clusterARN := strings.TrimSpace(aws.ToString(c.ClusterArn))
	if name == "" || clusterARN == "" {
		return nil
	}
	return &cloud.Cluster{
		ID:     clusterARN,
		Name:   name,
		Status: aws.ToString(c.Status),
	}
}

// validClusterName keeps letters, digits, '_' and '-', turns spaces into '-'
// and drops everything else. An empty result is replaced by the Unix time in
// milliseconds.
func validClusterName(name string, now time.Time) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return strconv.FormatInt(now.UnixMilli(), 10)
	}
	return b.String()
}
