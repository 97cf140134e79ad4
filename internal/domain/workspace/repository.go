package workspace

import "context"

// Repository defines the interface for workspace persistence
type Repository interface {
	// FindByName finds a workspace by its unique name
	FindByName(ctx context.Context, name string) (*AMLWorkspace, error)

	// Save creates or updates a workspace
	Save(ctx context.Context, ws *AMLWorkspace) error

	// Delete deletes a workspace by name
	Delete(ctx context.Context, name string) error
}
