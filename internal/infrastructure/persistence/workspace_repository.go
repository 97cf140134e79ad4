package persistence

import (
	"context"
	"errors"

	"github.com/modelserve/gateway/internal/domain/shared"
	"github.com/modelserve/gateway/internal/domain/workspace"
	"gorm.io/gorm"
)

// GormWorkspaceRepository implements workspace.Repository using GORM
type GormWorkspaceRepository struct {
	db *gorm.DB
}

// NewGormWorkspaceRepository creates a new GormWorkspaceRepository
func NewGormWorkspaceRepository(db *gorm.DB) *GormWorkspaceRepository {
	return &GormWorkspaceRepository{db: db}
}

// FindByName finds a workspace by its unique name
func (r *GormWorkspaceRepository) FindByName(ctx context.Context, name string) (*workspace.AMLWorkspace, error) {
	var ws workspace.AMLWorkspace
	if err := r.db.WithContext(ctx).First(&ws, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ws, nil
}

// Save creates or updates a workspace
func (r *GormWorkspaceRepository) Save(ctx context.Context, ws *workspace.AMLWorkspace) error {
	return r.db.WithContext(ctx).Save(ws).Error
}

// Delete deletes a workspace by name
func (r *GormWorkspaceRepository) Delete(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).Delete(&workspace.AMLWorkspace{}, "name = ?", name).Error
}
