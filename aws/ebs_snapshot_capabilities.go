package aws

import "github.com/zalando-incubator/aws-cloud-adapter/cloud"

// SnapshotCapabilities describes EBS snapshots.
type SnapshotCapabilities struct{}

var _ cloud.SnapshotCapabilities = (*SnapshotCapabilities)(nil)

func (*SnapshotCapabilities) ProviderTermForSnapshot() string {
	return "snapshot"
}

func (*SnapshotCapabilities) SupportsSnapshotCopying() bool {
	return true
}

func (*SnapshotCapabilities) SupportsSnapshotSharing() bool {
	return true
}

func (*SnapshotCapabilities) SupportsSnapshotSharingWithPublic() bool {
	return true
}

// SnapshotNamingConstraints follows the EC2 tag value rules since snapshot
// names are stored in the Name tag.
func (*SnapshotCapabilities) SnapshotNamingConstraints() cloud.NamingConstraints {
	return cloud.Alphanumeric(1, 255).ConstrainedBy(' ', '.', ':', '/', '=', '+', '-', '@', '_')
}
