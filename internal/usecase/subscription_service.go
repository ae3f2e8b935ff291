package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/viewly/viewly/internal/domain/model"
	"github.com/viewly/viewly/internal/domain/repository"
)

// SubscriptionService manages the directed subscription graph. The edge
// table is the source of truth; the per-channel subscriber counter is a
// cache of its cardinality and is reconciled when it drifts.
type SubscriptionService interface {
	// Subscribe adds a subscriber->channel edge and bumps the channel's
	// cached counter. Self-subscription is forbidden.
	Subscribe(ctx context.Context, subscriberID, channelID uuid.UUID) error

	// Unsubscribe removes the edge and drops the cached counter.
	Unsubscribe(ctx context.Context, subscriberID, channelID uuid.UUID) error

	// ListChannels returns the channels the account subscribes to,
	// credential hashes stripped.
	ListChannels(ctx context.Context, subscriberID uuid.UUID) ([]*model.Account, error)

	// Reconcile recomputes a channel's cached subscriber counter from
	// the edge table. This is the recovery path for counter staleness.
	Reconcile(ctx context.Context, channelID uuid.UUID) error
}

type subscriptionService struct {
	subscriptions repository.SubscriptionRepository
	accounts      repository.AccountRepository
}

// NewSubscriptionService creates a new SubscriptionService instance.
func NewSubscriptionService(
	subscriptions repository.SubscriptionRepository,
	accounts repository.AccountRepository,
) SubscriptionService {
	return &subscriptionService{
		subscriptions: subscriptions,
		accounts:      accounts,
	}
}

// Subscribe inserts the edge, then bumps the counter. The two writes
// are separate atomic statements; a crash between them leaves the
// counter stale, which Reconcile repairs from the edges.
func (s *subscriptionService) Subscribe(ctx context.Context, subscriberID, channelID uuid.UUID) error {
	if subscriberID == channelID {
		return ErrForbidden
	}

	if err := s.subscriptions.AddEdge(ctx, subscriberID, channelID); err != nil {
		return err
	}

	if err := s.accounts.AdjustSubscriberCount(ctx, channelID, 1); err != nil {
		return fmt.Errorf("increment subscriber count: %w", err)
	}

	return nil
}

// Unsubscribe removes the edge, then drops the counter. The counter
// floors at zero in the repository, so a stale decrement cannot push it
// negative.
func (s *subscriptionService) Unsubscribe(ctx context.Context, subscriberID, channelID uuid.UUID) error {
	if err := s.subscriptions.RemoveEdge(ctx, subscriberID, channelID); err != nil {
		return err
	}

	if err := s.accounts.AdjustSubscriberCount(ctx, channelID, -1); err != nil {
		return fmt.Errorf("decrement subscriber count: %w", err)
	}

	return nil
}

// ListChannels resolves the subscriber's channel ids to accounts.
func (s *subscriptionService) ListChannels(ctx context.Context, subscriberID uuid.UUID) ([]*model.Account, error) {
	channelIDs, err := s.subscriptions.ListChannels(ctx, subscriberID)
	if err != nil {
		return nil, err
	}

	channels := make([]*model.Account, 0, len(channelIDs))
	for _, id := range channelIDs {
		channel, err := s.accounts.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("resolve channel %s: %w", id, err)
		}
		channels = append(channels, channel.Sanitized())
	}

	return channels, nil
}

// Reconcile recomputes the cached counter from the edge table.
func (s *subscriptionService) Reconcile(ctx context.Context, channelID uuid.UUID) error {
	return s.accounts.ReconcileSubscriberCount(ctx, channelID)
}
