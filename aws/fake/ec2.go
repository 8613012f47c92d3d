package fake

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

type EC2Outputs struct {
	DescribeSnapshots         *Pages
	DescribeSnapshotAttribute *APIResponse
	ModifySnapshotAttribute   *APIResponse
	CreateSnapshot            *APIResponse
	CopySnapshot              *APIResponse
	DeleteSnapshot            *APIResponse
	CreateTags                *APIResponse
	DeleteTags                *APIResponse
}

// EC2Inputs records the parameters of every call.
type EC2Inputs struct {
	DescribeSnapshots         []*ec2.DescribeSnapshotsInput
	DescribeSnapshotAttribute []*ec2.DescribeSnapshotAttributeInput
	ModifySnapshotAttribute   []*ec2.ModifySnapshotAttributeInput
	CreateSnapshot            []*ec2.CreateSnapshotInput
	CopySnapshot              []*ec2.CopySnapshotInput
	DeleteSnapshot            []*ec2.DeleteSnapshotInput
	CreateTags                []*ec2.CreateTagsInput
	DeleteTags                []*ec2.DeleteTagsInput
}

type EC2Client struct {
	mu      sync.Mutex
	Outputs EC2Outputs
	Inputs  EC2Inputs
}

func (m *EC2Client) DescribeSnapshots(_ context.Context, in *ec2.DescribeSnapshotsInput, _ ...func(*ec2.Options)) (*ec2.DescribeSnapshotsOutput, error) {
	m.mu.Lock()
	// copy, the caller reuses the input for the next page
	cp := *in
	m.Inputs.DescribeSnapshots = append(m.Inputs.DescribeSnapshots, &cp)
	m.mu.Unlock()
	return page[ec2.DescribeSnapshotsOutput](m.Outputs.DescribeSnapshots)
}

func (m *EC2Client) DescribeSnapshotAttribute(_ context.Context, in *ec2.DescribeSnapshotAttributeInput, _ ...func(*ec2.Options)) (*ec2.DescribeSnapshotAttributeOutput, error) {
	m.mu.Lock()
	m.Inputs.DescribeSnapshotAttribute = append(m.Inputs.DescribeSnapshotAttribute, in)
	m.mu.Unlock()
	return result[ec2.DescribeSnapshotAttributeOutput](m.Outputs.DescribeSnapshotAttribute)
}

func (m *EC2Client) ModifySnapshotAttribute(_ context.Context, in *ec2.ModifySnapshotAttributeInput, _ ...func(*ec2.Options)) (*ec2.ModifySnapshotAttributeOutput, error) {
	m.mu.Lock()
	m.Inputs.ModifySnapshotAttribute = append(m.Inputs.ModifySnapshotAttribute, in)
	m.mu.Unlock()
	return result[ec2.ModifySnapshotAttributeOutput](m.Outputs.ModifySnapshotAttribute)
}

func (m *EC2Client) CreateSnapshot(_ context.Context, in *ec2.CreateSnapshotInput, _ ...func(*ec2.Options)) (*ec2.CreateSnapshotOutput, error) {
	m.mu.Lock()
	m.Inputs.CreateSnapshot = append(m.Inputs.CreateSnapshot, in)
	m.mu.Unlock()
	return result[ec2.CreateSnapshotOutput](m.Outputs.CreateSnapshot)
}

func (m *EC2Client) CopySnapshot(_ context.Context, in *ec2.CopySnapshotInput, _ ...func(*ec2.Options)) (*ec2.CopySnapshotOutput, error) {
	m.mu.Lock()
	m.Inputs.CopySnapshot = append(m.Inputs.CopySnapshot, in)
	m.mu.Unlock()
	return result[ec2.CopySnapshotOutput](m.Outputs.CopySnapshot)
}

func (m *EC2Client) DeleteSnapshot(_ context.Context, in *ec2.DeleteSnapshotInput, _ ...func(*ec2.Options)) (*ec2.DeleteSnapshotOutput, error) {
	m.mu.Lock()
	m.Inputs.DeleteSnapshot = append(m.Inputs.DeleteSnapshot, in)
	m.mu.Unlock()
	return result[ec2.DeleteSnapshotOutput](m.Outputs.DeleteSnapshot)
}

func (m *EC2Client) CreateTags(_ context.Context, in *ec2.CreateTagsInput, _ ...func(*ec2.Options)) (*ec2.CreateTagsOutput, error) {
	m.mu.Lock()
	m.Inputs.CreateTags = append(m.Inputs.CreateTags, in)
	m.mu.Unlock()
	return result[ec2.CreateTagsOutput](m.Outputs.CreateTags)
}

func (m *EC2Client) DeleteTags(_ context.Context, in *ec2.DeleteTagsInput, _ ...func(*ec2.Options)) (*ec2.DeleteTagsOutput, error) {
	m.mu.Lock()
	m.Inputs.DeleteTags = append(m.Inputs.DeleteTags, in)
	m.mu.Unlock()
	return result[ec2.DeleteTagsOutput](m.Outputs.DeleteTags)
}

type Tags map[string]string

// Snapshot returns an EBS snapshot as DescribeSnapshots reports it.
func Snapshot(id, volumeID, owner string, state types.SnapshotState, tags Tags) types.Snapshot {
	s := types.Snapshot{
		SnapshotId: aws.String(id),
		VolumeId:   aws.String(volumeID),
		OwnerId:    aws.String(owner),
		State:      state,
		VolumeSize: aws.Int32(8),
	}
	for k, v := range tags {
		s.Tags = append(s.Tags, types.Tag{Key: aws.String(k), Value: aws.String(v)})
	}
	return s
}

func MockDescribeSnapshotsOutput(nextToken string, snapshots ...types.Snapshot) *ec2.DescribeSnapshotsOutput {
	out := &ec2.DescribeSnapshotsOutput{Snapshots: snapshots}
	if nextToken != "" {
		out.NextToken = aws.String(nextToken)
	}
	return out
}

// MockCreateVolumePermissions returns the attribute output for a snapshot
// shared with the given users, and publicly when public is set.
func MockCreateVolumePermissions(public bool, users ...string) *ec2.DescribeSnapshotAttributeOutput {
	out := &ec2.DescribeSnapshotAttributeOutput{}
	for _, u := range users {
		out.CreateVolumePermissions = append(out.CreateVolumePermissions, types.CreateVolumePermission{UserId: aws.String(u)})
	}
	if public {
		out.CreateVolumePermissions = append(out.CreateVolumePermissions, types.CreateVolumePermission{Group: types.PermissionGroupAll})
	}
	return out
}
