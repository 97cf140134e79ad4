package persistence

import (
	"context"
	"errors"

	"github.com/modelserve/gateway/internal/domain/catalog"
	"github.com/modelserve/gateway/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByName finds a product by its unique name
func (r *GormProductRepository) FindByName(ctx context.Context, name string) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).First(&product, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindAll lists all products
func (r *GormProductRepository) FindAll(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := r.db.WithContext(ctx).Order("name").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// Delete deletes a product by name
func (r *GormProductRepository) Delete(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).Delete(&catalog.Product{}, "name = ?", name).Error
}

// GormDeploymentRepository implements catalog.DeploymentRepository using GORM
type GormDeploymentRepository struct {
	db *gorm.DB
}

// NewGormDeploymentRepository creates a new GormDeploymentRepository
func NewGormDeploymentRepository(db *gorm.DB) *GormDeploymentRepository {
	return &GormDeploymentRepository{db: db}
}

// FindByName finds a deployment by product and deployment name
func (r *GormDeploymentRepository) FindByName(ctx context.Context, productName, name string) (*catalog.Deployment, error) {
	var deployment catalog.Deployment
	if err := r.db.WithContext(ctx).
		Where("product_name = ? AND name = ?", productName, name).
		First(&deployment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &deployment, nil
}

// FindByProduct lists the deployments of a product
func (r *GormDeploymentRepository) FindByProduct(ctx context.Context, productName string) ([]catalog.Deployment, error) {
	var deployments []catalog.Deployment
	if err := r.db.WithContext(ctx).
		Where("product_name = ?", productName).
		Order("name").
		Find(&deployments).Error; err != nil {
		return nil, err
	}
	return deployments, nil
}

// Save creates or updates a deployment
func (r *GormDeploymentRepository) Save(ctx context.Context, deployment *catalog.Deployment) error {
	return r.db.WithContext(ctx).Save(deployment).Error
}

// Delete deletes a deployment
func (r *GormDeploymentRepository) Delete(ctx context.Context, productName, name string) error {
	return r.db.WithContext(ctx).
		Delete(&catalog.Deployment{}, "product_name = ? AND name = ?", productName, name).Error
}

// GormAPIVersionRepository implements catalog.APIVersionRepository using GORM
type GormAPIVersionRepository struct {
	db *gorm.DB
}

// NewGormAPIVersionRepository creates a new GormAPIVersionRepository
func NewGormAPIVersionRepository(db *gorm.DB) *GormAPIVersionRepository {
	return &GormAPIVersionRepository{db: db}
}

// FindByName finds a version by its full coordinate triple
func (r *GormAPIVersionRepository) FindByName(ctx context.Context, productName, deploymentName, name string) (*catalog.APIVersion, error) {
	var version catalog.APIVersion
	if err := r.db.WithContext(ctx).
		Where("product_name = ? AND deployment_name = ? AND name = ?", productName, deploymentName, name).
		First(&version).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &version, nil
}

// FindByDeployment lists the versions of a deployment
func (r *GormAPIVersionRepository) FindByDeployment(ctx context.Context, productName, deploymentName string) ([]catalog.APIVersion, error) {
	var versions []catalog.APIVersion
	if err := r.db.WithContext(ctx).
		Where("product_name = ? AND deployment_name = ?", productName, deploymentName).
		Order("name").
		Find(&versions).Error; err != nil {
		return nil, err
	}
	return versions, nil
}

// Save creates or updates a version
func (r *GormAPIVersionRepository) Save(ctx context.Context, version *catalog.APIVersion) error {
	return r.db.WithContext(ctx).Save(version).Error
}

// Delete deletes a version
func (r *GormAPIVersionRepository) Delete(ctx context.Context, productName, deploymentName, name string) error {
	return r.db.WithContext(ctx).
		Delete(&catalog.APIVersion{}, "product_name = ? AND deployment_name = ? AND name = ?",
			productName, deploymentName, name).Error
}
