package aws

import "github.com/zalando-incubator/aws-cloud-adapter/cloud"

// ContainerCapabilities holds the ECS terminology.
type ContainerCapabilities struct{}

var _ cloud.ContainerCapabilities = (*ContainerCapabilities)(nil)

func (*ContainerCapabilities) ProviderTermForCluster() string {
	return "cluster"
}

func (*ContainerCapabilities) ProviderTermForScheduler() string {
	return "service"
}

func (*ContainerCapabilities) ProviderTermForTask() string {
	return "task"
}
