package subscription

import (
	"github.com/google/uuid"
	"github.com/modelserve/gateway/internal/domain/shared"
)

// Status represents the lifecycle state of a subscription
type Status string

const (
	StatusSubscribed   Status = "Subscribed"
	StatusSuspended    Status = "Suspended"
	StatusUnsubscribed Status = "Unsubscribed"
)

// Subscription grants one user access to one product deployment. The
// subscription ID doubles as the tenant key every backend artifact is
// tagged with, so it never changes after creation.
type Subscription struct {
	shared.BaseEntity
	Owner          string `gorm:"type:varchar(200);not null;index"`
	ProductName    string `gorm:"type:varchar(50);not null"`
	DeploymentName string `gorm:"type:varchar(50);not null"`
	Status         Status `gorm:"type:varchar(20);not null;default:'Subscribed'"`
}

// TableName returns the table name for GORM
func (Subscription) TableName() string {
	return "subscriptions"
}

// NewSubscription creates an active subscription for a user
func NewSubscription(id uuid.UUID, owner, productName, deploymentName string) *Subscription {
	base := shared.NewBaseEntity()
	base.ID = id
	return &Subscription{
		BaseEntity:     base,
		Owner:          owner,
		ProductName:    productName,
		DeploymentName: deploymentName,
		Status:         StatusSubscribed,
	}
}

// Active reports whether the subscription may be used for routing
func (s *Subscription) Active() bool {
	return s.Status == StatusSubscribed
}

// OwnedBy reports whether the given user owns this subscription
func (s *Subscription) OwnedBy(userID string) bool {
	return s.Owner == userID
}
