package catalog

import "context"

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByName finds a product by its unique name
	FindByName(ctx context.Context, name string) (*Product, error)

	// FindAll lists all products
	FindAll(ctx context.Context) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product by name
	Delete(ctx context.Context, name string) error
}

// DeploymentRepository defines the interface for deployment persistence
type DeploymentRepository interface {
	// FindByName finds a deployment by product and deployment name
	FindByName(ctx context.Context, productName, name string) (*Deployment, error)

	// FindByProduct lists the deployments of a product
	FindByProduct(ctx context.Context, productName string) ([]Deployment, error)

	// Save creates or updates a deployment
	Save(ctx context.Context, deployment *Deployment) error

	// Delete deletes a deployment
	Delete(ctx context.Context, productName, name string) error
}

// APIVersionRepository defines the interface for API version persistence
type APIVersionRepository interface {
	// FindByName finds a version by its full coordinate triple
	FindByName(ctx context.Context, productName, deploymentName, name string) (*APIVersion, error)

	// FindByDeployment lists the versions of a deployment
	FindByDeployment(ctx context.Context, productName, deploymentName string) ([]APIVersion, error)

	// Save creates or updates a version
	Save(ctx context.Context, version *APIVersion) error

	// Delete deletes a version
	Delete(ctx context.Context, productName, deploymentName, name string) error
}
