package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/modelserve/gateway/internal/domain/shared"
	"github.com/modelserve/gateway/internal/domain/subscription"
	"gorm.io/gorm"
)

// GormSubscriptionRepository implements subscription.Repository using GORM
type GormSubscriptionRepository struct {
	db *gorm.DB
}

// NewGormSubscriptionRepository creates a new GormSubscriptionRepository
func NewGormSubscriptionRepository(db *gorm.DB) *GormSubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// FindByID finds a subscription by its ID
func (r *GormSubscriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*subscription.Subscription, error) {
	var sub subscription.Subscription
	if err := r.db.WithContext(ctx).First(&sub, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// FindByOwner lists the subscriptions of a user
func (r *GormSubscriptionRepository) FindByOwner(ctx context.Context, owner string) ([]subscription.Subscription, error) {
	var subs []subscription.Subscription
	if err := r.db.WithContext(ctx).
		Where("owner = ?", owner).
		Order("created_at").
		Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// Save creates or updates a subscription
func (r *GormSubscriptionRepository) Save(ctx context.Context, sub *subscription.Subscription) error {
	return r.db.WithContext(ctx).Save(sub).Error
}

// Delete deletes a subscription
func (r *GormSubscriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&subscription.Subscription{}, "id = ?", id).Error
}
