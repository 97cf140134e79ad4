package catalog

import (
	"regexp"

	"github.com/modelserve/gateway/internal/domain/shared"
)

// ProductType describes what kind of ML capability a product exposes
type ProductType string

const (
	ProductTypeTrainYourOwnModel  ProductType = "TYOM"
	ProductTypeRealTimePrediction ProductType = "RTP"
	ProductTypeBatchInference     ProductType = "BI"
)

// Product is a published ML offering. It is the aggregate root of the
// catalog: deployments and API versions hang off it by name.
type Product struct {
	shared.BaseEntity
	Name        string      `gorm:"type:varchar(50);not null;uniqueIndex"`
	Type        ProductType `gorm:"type:varchar(20);not null"`
	Owner       string      `gorm:"type:varchar(200);not null"`
	Description string      `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

var namePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]{0,49}$`)

// ValidateName checks that a catalog name is usable as a routing
// coordinate and as a backend tag value.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return shared.NewDomainError("INVALID_INPUT", "name must be 1-50 alphanumeric, dash or underscore characters")
	}
	return nil
}

// NewProduct creates a new product
func NewProduct(name, owner string, productType ProductType) (*Product, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Type:       productType,
		Owner:      owner,
	}, nil
}
