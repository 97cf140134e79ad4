package routing

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/modelserve/gateway/internal/domain/shared"
	"github.com/modelserve/gateway/internal/domain/subscription"
	"github.com/modelserve/gateway/internal/infrastructure/identity"
	"go.uber.org/zap"
)

// AccessGuard verifies that the caller owns the subscription named by
// a request. It runs before any backend call so unauthorized requests
// never reach the execution service.
type AccessGuard struct {
	subscriptions subscription.Repository
	directory     identity.UserDirectory
	logger        *zap.Logger
}

// NewAccessGuard creates a new access guard
func NewAccessGuard(
	subscriptions subscription.Repository,
	directory identity.UserDirectory,
	logger *zap.Logger,
) *AccessGuard {
	return &AccessGuard{
		subscriptions: subscriptions,
		directory:     directory,
		logger:        logger,
	}
}

// Authorize loads the subscription and checks it against the
// caller-claimed user. The stored owner is translated through the
// user directory before comparison.
func (g *AccessGuard) Authorize(ctx context.Context, subscriptionID uuid.UUID, userID string) (*subscription.Subscription, error) {
	sub, err := g.subscriptions.FindByID(ctx, subscriptionID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFound("subscription")
		}
		return nil, err
	}

	owner, err := g.directory.UserName(ctx, sub.Owner)
	if err != nil {
		return nil, err
	}
	if owner != userID {
		g.logger.Warn("subscription access denied",
			zap.String("subscription_id", subscriptionID.String()),
			zap.String("claimed_user", userID))
		return nil, shared.NewForbidden("subscription does not belong to the calling user")
	}

	if !sub.Active() {
		return nil, shared.NewForbidden("subscription is not active")
	}

	return sub, nil
}
