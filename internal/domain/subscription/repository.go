package subscription

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for subscription persistence
type Repository interface {
	// FindByID finds a subscription by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Subscription, error)

	// FindByOwner lists the subscriptions of a user
	FindByOwner(ctx context.Context, owner string) ([]Subscription, error)

	// Save creates or updates a subscription
	Save(ctx context.Context, sub *Subscription) error

	// Delete deletes a subscription
	Delete(ctx context.Context, id uuid.UUID) error
}
