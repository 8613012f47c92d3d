package cloud

// Requirement expresses whether an option must, may or must not be supplied.
type Requirement string

const (
	RequirementNone     Requirement = "NONE"
	RequirementOptional Requirement = "OPTIONAL"
	RequirementRequired Requirement = "REQUIRED"
)

// VisibleScope describes where a resource is visible.
type VisibleScope string

const (
	VisibleScopeAccountGlobal     VisibleScope = "ACCOUNT_GLOBAL"
	VisibleScopeAccountRegion     VisibleScope = "ACCOUNT_REGION"
	VisibleScopeAccountDatacenter VisibleScope = "ACCOUNT_DATACENTER"
)

// ResourceStatus is the lightweight status of a resource, used when listing
// full objects would be too expensive.
type ResourceStatus struct {
	ProviderResourceID string      `json:"id"`
	Status             interface{} `json:"status"`
}
