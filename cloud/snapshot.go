package cloud

import (
	"context"
	"regexp"
	"time"
)

// SnapshotState is the lifecycle state of a volume snapshot.
type SnapshotState string

const (
	SnapshotStatePending   SnapshotState = "PENDING"
	SnapshotStateAvailable SnapshotState = "AVAILABLE"
	SnapshotStateDeleted   SnapshotState = "DELETED"
)

// Snapshot is a point in time copy of a block volume.
type Snapshot struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	State       SnapshotState     `json:"state"`
	Owner       string            `json:"owner,omitempty"`
	Progress    string            `json:"progress,omitempty"`
	RegionID    string            `json:"regionId"`
	SizeInGb    int               `json:"sizeInGb"`
	Timestamp   time.Time         `json:"timestamp"`
	VolumeID    string            `json:"volumeId,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`
}

// Tag returns the value of the tag key or an empty string.
func (s *Snapshot) Tag(key string) string {
	if s.Tags == nil {
		return ""
	}
	return s.Tags[key]
}

// TimestampMillis returns the snapshot creation time in Unix milliseconds.
func (s *Snapshot) TimestampMillis() int64 {
	if s.Timestamp.IsZero() {
		return 0
	}
	return s.Timestamp.UnixMilli()
}

// SnapshotCreateOptions describes either a new snapshot of a volume or a copy
// of an existing snapshot from another region.
type SnapshotCreateOptions struct {
	VolumeID         string
	SourceRegionID   string
	SourceSnapshotID string
	Name             string
	Description      string
	Tags             map[string]string
}

// NewSnapshotCreateOptions returns options for snapshotting volumeID.
func NewSnapshotCreateOptions(volumeID, name, description string) *SnapshotCreateOptions {
	return &SnapshotCreateOptions{
		VolumeID:    volumeID,
		Name:        name,
		Description: description,
	}
}

// NewSnapshotCopyOptions returns options for copying sourceSnapshotID from
// sourceRegionID into the current region.
func NewSnapshotCopyOptions(sourceRegionID, sourceSnapshotID, name, description string) *SnapshotCreateOptions {
	return &SnapshotCreateOptions{
		SourceRegionID:   sourceRegionID,
		SourceSnapshotID: sourceSnapshotID,
		Name:             name,
		Description:      description,
	}
}

// WithTags adds tags to be set on the new snapshot.
func (o *SnapshotCreateOptions) WithTags(tags map[string]string) *SnapshotCreateOptions {
	if o.Tags == nil {
		o.Tags = make(map[string]string, len(tags))
	}
	for k, v := range tags {
		o.Tags[k] = v
	}
	return o
}

// IsCopy reports whether the options describe a copy of an existing snapshot.
func (o *SnapshotCreateOptions) IsCopy() bool {
	return o.SourceSnapshotID != ""
}

// SnapshotFilterOptions narrows snapshot listings. The account number always
// has to match, the remaining criteria are combined with AND unless
// MatchesAny is set.
type SnapshotFilterOptions struct {
	AccountNumber string
	Regex         string
	Tags          map[string]string
	MatchesAny    bool
}

func NewSnapshotFilterOptions() *SnapshotFilterOptions {
	return &SnapshotFilterOptions{}
}

func (f *SnapshotFilterOptions) WithAccountNumber(account string) *SnapshotFilterOptions {
	f.AccountNumber = account
	return f
}

func (f *SnapshotFilterOptions) WithRegex(regex string) *SnapshotFilterOptions {
	f.Regex = regex
	return f
}

func (f *SnapshotFilterOptions) WithTags(tags map[string]string) *SnapshotFilterOptions {
	f.Tags = tags
	return f
}

func (f *SnapshotFilterOptions) MatchingAny() *SnapshotFilterOptions {
	f.MatchesAny = true
	return f
}

// HasCriteria reports whether any criterion besides the account is set.
func (f *SnapshotFilterOptions) HasCriteria() bool {
	return f.Regex != "" || len(f.Tags) > 0
}

// Matches reports whether s satisfies the filter.
func (f *SnapshotFilterOptions) Matches(s *Snapshot) bool {
	if s == nil {
		return false
	}
	if f == nil {
		return true
	}
	if f.AccountNumber != "" && s.Owner != f.AccountNumber {
		return false
	}
	if !f.HasCriteria() {
		return true
	}

	var results []bool
	if f.Regex != "" {
		re, err := regexp.Compile(f.Regex)
		results = append(results, err == nil && re.MatchString(s.Name))
	}
	if len(f.Tags) > 0 {
		results = append(results, f.matchesTags(s.Tags))
	}

	for _, ok := range results {
		if f.MatchesAny && ok {
			return true
		}
		if !f.MatchesAny && !ok {
			return false
		}
	}
	return !f.MatchesAny
}

func (f *SnapshotFilterOptions) matchesTags(tags map[string]string) bool {
	for k, v := range f.Tags {
		actual, ok := tags[k]
		matched := ok && actual == v
		if f.MatchesAny && matched {
			return true
		}
		if !f.MatchesAny && !matched {
			return false
		}
	}
	return !f.MatchesAny
}

// SnapshotCapabilities describes what a provider supports for snapshots.
type SnapshotCapabilities interface {
	ProviderTermForSnapshot() string
	SupportsSnapshotCopying() bool
	SupportsSnapshotSharing() bool
	SupportsSnapshotSharingWithPublic() bool
	SnapshotNamingConstraints() NamingConstraints
}

// SnapshotSupport is implemented by providers that manage volume snapshots.
type SnapshotSupport interface {
	Capabilities() SnapshotCapabilities
	// CreateSnapshot returns the provider ID of the new snapshot.
	CreateSnapshot(ctx context.Context, opts *SnapshotCreateOptions) (string, error)
	// GetSnapshot returns nil without an error when the snapshot does not exist.
	GetSnapshot(ctx context.Context, id string) (*Snapshot, error)
	ListSnapshots(ctx context.Context, filter *SnapshotFilterOptions) ([]*Snapshot, error)
	ListSnapshotStatus(ctx context.Context) ([]ResourceStatus, error)
	Remove(ctx context.Context, id string) error

	IsPublic(ctx context.Context, id string) (bool, error)
	ListShares(ctx context.Context, id string) ([]string, error)
	AddSnapshotShare(ctx context.Context, id, account string) error
	RemoveSnapshotShare(ctx context.Context, id, account string) error
	AddPublicShare(ctx context.Context, id string) error
	RemovePublicShare(ctx context.Context, id string) error
	RemoveAllSnapshotShares(ctx context.Context, id string) error

	UpdateTags(ctx context.Context, id string, tags map[string]string) error
	RemoveTags(ctx context.Context, id string, keys ...string) error
}
