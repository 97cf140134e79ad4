package workspace

import (
	"github.com/modelserve/gateway/internal/domain/shared"
)

// AuthMode selects how calls to a workspace-hosted endpoint are
// authenticated.
type AuthMode string

const (
	// AuthModeToken sends a service principal bearer token.
	AuthModeToken AuthMode = "Token"
	// AuthModeKey sends a pre-provisioned endpoint key.
	AuthModeKey AuthMode = "Key"
	// AuthModeNone sends no credential at all.
	AuthModeNone AuthMode = "None"
)

// Valid reports whether the mode is one of the supported values.
func (m AuthMode) Valid() bool {
	switch m {
	case AuthModeToken, AuthModeKey, AuthModeNone:
		return true
	}
	return false
}

// AMLWorkspace holds the connection material for one Azure ML
// workspace. ResourceID is the full ARM path starting with
// "/subscriptions/"; the service principal triple is what the broker
// exchanges for management-plane tokens. ClientSecretName is a
// reference into the secret store, never the secret itself.
type AMLWorkspace struct {
	shared.BaseEntity
	Name             string `gorm:"type:varchar(50);not null;uniqueIndex"`
	ResourceID       string `gorm:"type:varchar(500);not null"`
	AADTenantID      string `gorm:"type:varchar(50);not null"`
	AADClientID      string `gorm:"type:varchar(50);not null"`
	ClientSecretName string `gorm:"type:varchar(100);not null"`
	Region           string `gorm:"type:varchar(50)"` // cached; refreshed from ARM when empty
}

// TableName returns the table name for GORM
func (AMLWorkspace) TableName() string {
	return "aml_workspaces"
}
