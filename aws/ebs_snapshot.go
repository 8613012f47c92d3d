package aws

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	log "github.com/sirupsen/logrus"

	"github.com/zalando-incubator/aws-cloud-adapter/cloud"
)

const (
	ownerSelf            = "self"
	publicGroup          = "all"
	errSnapshotNotFound  = "InvalidSnapshot.NotFound"
	errSnapshotMalformed = "InvalidSnapshotID.Malformed"
)

// SnapshotSupport manages EBS snapshots.
type SnapshotSupport struct {
	adapter *Adapter
	api     EC2API

	capsOnce sync.Once
	caps     *SnapshotCapabilities
}

var _ cloud.SnapshotSupport = (*SnapshotSupport)(nil)

func (s *SnapshotSupport) Capabilities() cloud.SnapshotCapabilities {
	s.capsOnce.Do(func() {
		s.caps = &SnapshotCapabilities{}
	})
	return s.caps
}

// CreateSnapshot snapshots a volume or, for copy options, copies a snapshot
// from another region. It returns the ID of the new snapshot.
func (s *SnapshotSupport) CreateSnapshot(ctx context.Context, opts *cloud.SnapshotCreateOptions) (string, error) {
	if opts == nil {
		return "", wrapError("Snapshots.createSnapshot", cloud.ErrInvalidArgument)
	}
	if opts.IsCopy() {
		return s.copySnapshot(ctx, opts)
	}

	t := beginTrace("Snapshots.createSnapshot")
	defer t.end()

	if opts.VolumeID == "" {
		return "", t.fail(cloud.ErrInvalidArgument)
	}
	params := &ec2.CreateSnapshotInput{
		VolumeId:          aws.String(opts.VolumeID),
		TagSpecifications: snapshotTagSpecifications(opts),
	}
	if opts.Description != "" {
		params.Description = aws.String(opts.Description)
	}
	t.log.Debugf("parameters=%+v", params)

	resp, err := s.api.CreateSnapshot(ctx, params)
	if err != nil {
		return "", t.fail(err)
	}
	id := aws.ToString(resp.SnapshotId)
	if id == "" {
		return "", t.fail(cloud.ErrNotCreated)
	}
	log.Infof("Created snapshot %s of volume %s", id, opts.VolumeID)
	return id, nil
}

func (s *SnapshotSupport) copySnapshot(ctx context.Context, opts *cloud.SnapshotCreateOptions) (string, error) {
	t := beginTrace("Snapshots.copySnapshot")
	defer t.end()

	if opts.SourceRegionID == "" {
		return "", t.fail(cloud.ErrInvalidArgument)
	}
	params := &ec2.CopySnapshotInput{
		SourceSnapshotId:  aws.String(opts.SourceSnapshotID),
		SourceRegion:      aws.String(opts.SourceRegionID),
		TagSpecifications: snapshotTagSpecifications(opts),
	}
	if opts.Description != "" {
		params.Description = aws.String(opts.Description)
	}
	t.log.Debugf("parameters=%+v", params)

	resp, err := s.api.CopySnapshot(ctx, params)
	if err != nil {
		return "", t.fail(err)
	}
	id := aws.ToString(resp.SnapshotId)
	if id == "" {
		return "", t.fail(cloud.ErrNotCreated)
	}
	log.Infof("Copied snapshot %s from %s into %s", opts.SourceSnapshotID, opts.SourceRegionID, id)
	return id, nil
}

func snapshotTagSpecifications(opts *cloud.SnapshotCreateOptions) []ec2types.TagSpecification {
	tags := make(map[string]string, len(opts.Tags)+1)
	for k, v := range opts.Tags {
		tags[k] = v
	}
	if opts.Name != "" {
		tags[nameTag] = opts.Name
	}
	if len(tags) == 0 {
		return nil
	}
	return []ec2types.TagSpecification{{
		ResourceType: ec2types.ResourceTypeSnapshot,
		Tags:         mapToEC2Tags(tags),
	}}
}

// GetSnapshot returns nil when the snapshot does not exist.
func (s *SnapshotSupport) GetSnapshot(ctx context.Context, id string) (*cloud.Snapshot, error) {
	t := beginTrace("Snapshots.getSnapshot")
	defer t.end()

	resp, err := s.api.DescribeSnapshots(ctx, &ec2.DescribeSnapshotsInput{SnapshotIds: []string{id}})
	if err != nil {
		if hasErrorCode(err, errSnapshotNotFound, errSnapshotMalformed) {
			return nil, nil
		}
		return nil, t.fail(err)
	}
	for _, snap := range resp.Snapshots {
		if aws.ToString(snap.SnapshotId) == id {
			return s.toSnapshot(snap), nil
		}
	}
	return nil, nil
}

// ListSnapshots returns the snapshots matching filter. Snapshots owned by
// another account are listed when the filter names that account.
func (s *SnapshotSupport) ListSnapshots(ctx context.Context, filter *cloud.SnapshotFilterOptions) ([]*cloud.Snapshot, error) {
	t := beginTrace("Snapshots.listSnapshots")
	defer t.end()

	params := &ec2.DescribeSnapshotsInput{OwnerIds: []string{s.owner(ctx, filter)}}
	if filter != nil && !filter.MatchesAny && len(filter.Tags) > 0 {
		params.Filters = tagFilters(filter.Tags)
	}
	t.log.Debugf("parameters=%+v", params)

	snapshots, err := s.describeSnapshots(ctx, params)
	if err != nil {
		return nil, t.fail(err)
	}

	result := make([]*cloud.Snapshot, 0, len(snapshots))
	for _, snap := range snapshots {
		converted := s.toSnapshot(snap)
		if filter.Matches(converted) {
			result = append(result, converted)
		}
	}
	return result, nil
}

// ListSnapshotStatus returns the state of every snapshot owned by the account.
func (s *SnapshotSupport) ListSnapshotStatus(ctx context.Context) ([]cloud.ResourceStatus, error) {
	t := beginTrace("Snapshots.listSnapshotStatus")
	defer t.end()

	snapshots, err := s.describeSnapshots(ctx, &ec2.DescribeSnapshotsInput{OwnerIds: []string{ownerSelf}})
	if err != nil {
		return nil, t.fail(err)
	}
	result := make([]cloud.ResourceStatus, 0, len(snapshots))
	for _, snap := range snapshots {
		result = append(result, cloud.ResourceStatus{
			ProviderResourceID: aws.ToString(snap.SnapshotId),
			Status:             snapshotState(snap.State),
		})
	}
	return result, nil
}

func (s *SnapshotSupport) describeSnapshots(ctx context.Context, params *ec2.DescribeSnapshotsInput) ([]ec2types.Snapshot, error) {
	var snapshots []ec2types.Snapshot
	for {
		resp, err := s.api.DescribeSnapshots(ctx, params)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, resp.Snapshots...)
		if aws.ToString(resp.NextToken) == "" {
			return snapshots, nil
		}
		params.NextToken = resp.NextToken
	}
}

// owner returns "self" unless the filter asks for a foreign account.
func (s *SnapshotSupport) owner(ctx context.Context, filter *cloud.SnapshotFilterOptions) string {
	if filter == nil || filter.AccountNumber == "" {
		return ownerSelf
	}
	own, err := s.adapter.AccountNumber(ctx)
	if err != nil {
		log.Warnf("unable to determine own account, listing snapshots of %s: %v", filter.AccountNumber, err)
		return filter.AccountNumber
	}
	if own == filter.AccountNumber {
		return ownerSelf
	}
	return filter.AccountNumber
}

func (s *SnapshotSupport) Remove(ctx context.Context, id string) error {
	t := beginTrace("Snapshots.remove")
	defer t.end()

	if _, err := s.api.DeleteSnapshot(ctx, &ec2.DeleteSnapshotInput{SnapshotId: aws.String(id)}); err != nil {
		return t.fail(err)
	}
	log.Infof("Removed snapshot %s", id)
	return nil
}

// IsPublic reports whether anybody may create volumes from the snapshot.
func (s *SnapshotSupport) IsPublic(ctx context.Context, id string) (bool, error) {
	t := beginTrace("Snapshots.isPublic")
	defer t.end()

	perms, err := s.createVolumePermissions(ctx, id)
	if err != nil {
		return false, t.fail(err)
	}
	for _, p := range perms {
		if p.Group == ec2types.PermissionGroupAll {
			return true, nil
		}
	}
	return false, nil
}

// ListShares returns the accounts the snapshot is shared with.
func (s *SnapshotSupport) ListShares(ctx context.Context, id string) ([]string, error) {
	t := beginTrace("Snapshots.listShares")
	defer t.end()

	perms, err := s.createVolumePermissions(ctx, id)
	if err != nil {
		return nil, t.fail(err)
	}
	return sharedUsers(perms), nil
}

func sharedUsers(perms []ec2types.CreateVolumePermission) []string {
	users := make([]string, 0, len(perms))
	for _, p := range perms {
		if user := aws.ToString(p.UserId); user != "" {
			users = append(users, user)
		}
	}
	return users
}

func (s *SnapshotSupport) createVolumePermissions(ctx context.Context, id string) ([]ec2types.CreateVolumePermission, error) {
	resp, err := s.api.DescribeSnapshotAttribute(ctx, &ec2.DescribeSnapshotAttributeInput{
		SnapshotId: aws.String(id),
		Attribute:  ec2types.SnapshotAttributeNameCreateVolumePermission,
	})
	if err != nil {
		return nil, err
	}
	return resp.CreateVolumePermissions, nil
}

func (s *SnapshotSupport) AddSnapshotShare(ctx context.Context, id, account string) error {
	t := beginTrace("Snapshots.addSnapshotShare")
	defer t.end()

	if err := s.modifyUsers(ctx, id, ec2types.OperationTypeAdd, account); err != nil {
		return t.fail(err)
	}
	return nil
}

func (s *SnapshotSupport) RemoveSnapshotShare(ctx context.Context, id, account string) error {
	t := beginTrace("Snapshots.removeSnapshotShare")
	defer t.end()

	if err := s.modifyUsers(ctx, id, ec2types.OperationTypeRemove, account); err != nil {
		return t.fail(err)
	}
	return nil
}

func (s *SnapshotSupport) AddPublicShare(ctx context.Context, id string) error {
	t := beginTrace("Snapshots.addPublicShare")
	defer t.end()

	if err := s.modifyPublic(ctx, id, ec2types.OperationTypeAdd); err != nil {
		return t.fail(err)
	}
	return nil
}

func (s *SnapshotSupport) RemovePublicShare(ctx context.Context, id string) error {
	t := beginTrace("Snapshots.removePublicShare")
	defer t.end()

	if err := s.modifyPublic(ctx, id, ec2types.OperationTypeRemove); err != nil {
		return t.fail(err)
	}
	return nil
}

// RemoveAllSnapshotShares revokes every account share in one request and then
// the public share.
func (s *SnapshotSupport) RemoveAllSnapshotShares(ctx context.Context, id string) error {
	t := beginTrace("Snapshots.removeAllSnapshotShares")
	defer t.end()

	perms, err := s.createVolumePermissions(ctx, id)
	if err != nil {
		return t.fail(err)
	}
	if users := sharedUsers(perms); len(users) > 0 {
		if err := s.modifyUsers(ctx, id, ec2types.OperationTypeRemove, users...); err != nil {
			return t.fail(err)
		}
	}
	if err := s.modifyPublic(ctx, id, ec2types.OperationTypeRemove); err != nil {
		return t.fail(err)
	}
	return nil
}

func (s *SnapshotSupport) modifyUsers(ctx context.Context, id string, op ec2types.OperationType, accounts ...string) error {
	_, err := s.api.ModifySnapshotAttribute(ctx, &ec2.ModifySnapshotAttributeInput{
		SnapshotId:    aws.String(id),
		Attribute:     ec2types.SnapshotAttributeNameCreateVolumePermission,
		OperationType: op,
		UserIds:       accounts,
	})
	return err
}

func (s *SnapshotSupport) modifyPublic(ctx context.Context, id string, op ec2types.OperationType) error {
	_, err := s.api.ModifySnapshotAttribute(ctx, &ec2.ModifySnapshotAttributeInput{
		SnapshotId:    aws.String(id),
		Attribute:     ec2types.SnapshotAttributeNameCreateVolumePermission,
		OperationType: op,
		GroupNames:    []string{publicGroup},
	})
	return err
}

// UpdateTags sets tags on the snapshot, replacing existing values.
func (s *SnapshotSupport) UpdateTags(ctx context.Context, id string, tags map[string]string) error {
	t := beginTrace("Snapshots.updateTags")
	defer t.end()

	if len(tags) == 0 {
		return nil
	}
	_, err := s.api.CreateTags(ctx, &ec2.CreateTagsInput{
		Resources: []string{id},
		Tags:      mapToEC2Tags(tags),
	})
	if err != nil {
		return t.fail(err)
	}
	return nil
}

// RemoveTags deletes the tags with the given keys from the snapshot.
func (s *SnapshotSupport) RemoveTags(ctx context.Context, id string, keys ...string) error {
	t := beginTrace("Snapshots.removeTags")
	defer t.end()

	if len(keys) == 0 {
		return nil
	}
	tags := make([]ec2types.Tag, 0, len(keys))
	for _, k := range keys {
		tags = append(tags, ec2types.Tag{Key: aws.String(k)})
	}
	_, err := s.api.DeleteTags(ctx, &ec2.DeleteTagsInput{
		Resources: []string{id},
		Tags:      tags,
	})
	if err != nil {
		return t.fail(err)
	}
	return nil
}

func (s *SnapshotSupport) toSnapshot(snap ec2types.Snapshot) *cloud.Snapshot {
	tags := ec2TagsToMap(snap.Tags)
	id := aws.ToString(snap.SnapshotId)
	description := aws.ToString(snap.Description)

	name := tags[nameTag]
	if name == "" {
		name = description
	}
	if name == "" {
		name = id
	}

	return &cloud.Snapshot{
		ID:          id,
		Name:        name,
		Description: description,
		State:       snapshotState(snap.State),
		Owner:       aws.ToString(snap.OwnerId),
		Progress:    aws.ToString(snap.Progress),
		RegionID:    s.adapter.Region(),
		SizeInGb:    int(aws.ToInt32(snap.VolumeSize)),
		Timestamp:   aws.ToTime(snap.StartTime),
		VolumeID:    aws.ToString(snap.VolumeId),
		Tags:        tags,
	}
}

func snapshotState(state ec2types.SnapshotState) cloud.SnapshotState {
	switch state {
	case ec2types.SnapshotStateCompleted:
		return cloud.SnapshotStateAvailable
	case ec2types.SnapshotStateError:
		return cloud.SnapshotStateDeleted
	}
	return cloud.SnapshotStatePending
}
