// Package cloud defines the provider independent resource model (clusters,
// snapshots, load balancers, SSL certificates) and the support and
// capabilities interfaces a cloud provider adapter implements.
package cloud
