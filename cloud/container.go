package cloud

import "context"

// Cluster is a container cluster as known by the provider.
type Cluster struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status,omitempty"`
}

// ContainerCapabilities describes the terminology a provider uses for
// container resources.
type ContainerCapabilities interface {
	ProviderTermForCluster() string
	ProviderTermForScheduler() string
	ProviderTermForTask() string
}

// ContainerSupport is implemented by providers that manage container
// clusters.
type ContainerSupport interface {
	IsSubscribed(ctx context.Context) (bool, error)
	Capabilities() ContainerCapabilities
	ListClusters(ctx context.Context) ([]*Cluster, error)
	// CreateCluster returns the provider ID of the new cluster.
	CreateCluster(ctx context.Context, name string) (string, error)
	// GetCluster returns nil without an error when the cluster does not exist.
	GetCluster(ctx context.Context, id string) (*Cluster, error)
	RemoveCluster(ctx context.Context, id string) error
}
