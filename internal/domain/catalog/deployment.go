package catalog

import (
	"github.com/modelserve/gateway/internal/domain/shared"
)

// Deployment is a named variant of a product, e.g. a region or a
// pricing tier. Product and deployment names together identify it;
// callers address it by name, never by ID.
type Deployment struct {
	shared.BaseEntity
	ProductName string `gorm:"type:varchar(50);not null;uniqueIndex:idx_deployment_product_name,priority:1"`
	Name        string `gorm:"type:varchar(50);not null;uniqueIndex:idx_deployment_product_name,priority:2"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Deployment) TableName() string {
	return "deployments"
}

// NewDeployment creates a new deployment under a product
func NewDeployment(productName, name string) (*Deployment, error) {
	if err := ValidateName(productName); err != nil {
		return nil, err
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	return &Deployment{
		BaseEntity:  shared.NewBaseEntity(),
		ProductName: productName,
		Name:        name,
	}, nil
}
