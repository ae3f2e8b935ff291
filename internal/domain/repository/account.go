package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/viewly/viewly/internal/domain/model"
)

// AccountRepository defines the interface for account persistence.
// Implementations should be provided by the infrastructure layer (e.g., PostgreSQL).
type AccountRepository interface {
	// Create persists a new account.
	// Returns ErrEmailTaken, ErrPhoneTaken, or ErrChannelNameTaken when
	// the corresponding uniqueness constraint is violated.
	Create(ctx context.Context, account *model.Account) error

	// GetByID retrieves an account by its identifier.
	// Returns ErrAccountNotFound if the account does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error)

	// GetByEmail retrieves an account by its email address.
	// Returns ErrAccountNotFound if no account matches.
	GetByEmail(ctx context.Context, email string) (*model.Account, error)

	// Update persists profile changes (identity fields, credential hash,
	// avatar reference) as a single write.
	// Returns ErrAccountNotFound if the account does not exist.
	Update(ctx context.Context, account *model.Account) error

	// Delete removes the account record.
	// Returns ErrAccountNotFound if no record was deleted, which callers
	// performing idempotent retries may treat as already done.
	Delete(ctx context.Context, id uuid.UUID) error

	// AdjustSubscriberCount applies delta to the cached subscriber
	// counter as a single atomic operation. The counter floors at zero.
	AdjustSubscriberCount(ctx context.Context, channelID uuid.UUID, delta int64) error

	// ReconcileSubscriberCount recomputes the cached subscriber counter
	// from the subscription edge table. The edge table is the source of
	// truth; this is the recovery path for counter staleness.
	ReconcileSubscriberCount(ctx context.Context, channelID uuid.UUID) error
}

// SubscriptionRepository manages directed subscribe edges between
// accounts. The edge set is authoritative for subscriber counts.
type SubscriptionRepository interface {
	// AddEdge inserts a subscriber->channel edge.
	// Returns ErrAlreadySubscribed if the edge exists.
	AddEdge(ctx context.Context, subscriberID, channelID uuid.UUID) error

	// RemoveEdge deletes a subscriber->channel edge.
	// Returns ErrNotSubscribed if the edge does not exist.
	RemoveEdge(ctx context.Context, subscriberID, channelID uuid.UUID) error

	// ListChannels returns the channel ids the subscriber follows.
	ListChannels(ctx context.Context, subscriberID uuid.UUID) ([]uuid.UUID, error)

	// DeleteBySubscriber removes every outbound edge of an account and,
	// in the same statement, recomputes the cached subscriber counter of
	// every affected channel. Removing when no edges remain is a no-op,
	// so a retry after a completed run changes nothing.
	DeleteBySubscriber(ctx context.Context, subscriberID uuid.UUID) error

	// DeleteByChannel removes every inbound edge of a channel.
	// Removing when no edges remain is a no-op.
	DeleteByChannel(ctx context.Context, channelID uuid.UUID) error
}
