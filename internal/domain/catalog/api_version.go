package catalog

import (
	"github.com/modelserve/gateway/internal/domain/shared"
	"github.com/modelserve/gateway/internal/domain/workspace"
)

// APIVersion pins a deployment to one backend workspace plus the
// pipeline endpoints and auth mode used to call it. The three
// coordinate names form the routing key the gateway resolves on every
// request.
type APIVersion struct {
	shared.BaseEntity
	ProductName    string `gorm:"type:varchar(50);not null;uniqueIndex:idx_version_coords,priority:1"`
	DeploymentName string `gorm:"type:varchar(50);not null;uniqueIndex:idx_version_coords,priority:2"`
	Name           string `gorm:"type:varchar(50);not null;uniqueIndex:idx_version_coords,priority:3"`

	WorkspaceName string             `gorm:"type:varchar(50);not null"`
	AuthMode      workspace.AuthMode `gorm:"type:varchar(10);not null;default:'Token'"`

	// Submission URLs for the async operations; empty means the
	// operation is not offered by this version.
	TrainAPI          string `gorm:"type:varchar(500)"`
	BatchInferenceAPI string `gorm:"type:varchar(500)"`
	DeployAPI         string `gorm:"type:varchar(500)"`

	// RealTimeAPI is the scoring URL for synchronous prediction.
	RealTimeAPI string `gorm:"type:varchar(500)"`

	// KeySecretName references the scoring key in the secret store
	// when AuthMode is Key.
	KeySecretName string `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (APIVersion) TableName() string {
	return "api_versions"
}

// SubmitAPIFor returns the configured submission URL for an operation
// type, or "" when the version does not offer it.
func (v *APIVersion) SubmitAPIFor(operationType string) string {
	switch operationType {
	case "training":
		return v.TrainAPI
	case "inference":
		return v.BatchInferenceAPI
	case "deployment":
		return v.DeployAPI
	}
	return ""
}
