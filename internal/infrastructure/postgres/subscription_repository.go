package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/viewly/viewly/internal/domain/repository"
)

// SubscriptionRepository implements repository.SubscriptionRepository
// using PostgreSQL. The (subscriber_id, channel_id) primary key makes
// edge inserts naturally conflict-detecting.
type SubscriptionRepository struct {
	db DBTX
}

// NewSubscriptionRepository creates a new SubscriptionRepository instance.
func NewSubscriptionRepository(db DBTX) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// AddEdge inserts a subscriber->channel edge.
func (r *SubscriptionRepository) AddEdge(ctx context.Context, subscriberID, channelID uuid.UUID) error {
	const query = `
		INSERT INTO subscriptions (subscriber_id, channel_id, created_at)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.Exec(ctx, query, subscriberID, channelID, time.Now())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return repository.ErrAlreadySubscribed
			case "23503":
				return repository.ErrAccountNotFound
			}
		}
		return fmt.Errorf("failed to add subscription edge: %w", err)
	}

	return nil
}

// RemoveEdge deletes a subscriber->channel edge.
func (r *SubscriptionRepository) RemoveEdge(ctx context.Context, subscriberID, channelID uuid.UUID) error {
	const query = `DELETE FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2`

	tag, err := r.db.Exec(ctx, query, subscriberID, channelID)
	if err != nil {
		return fmt.Errorf("failed to remove subscription edge: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrNotSubscribed
	}

	return nil
}

// ListChannels returns the channel ids the subscriber follows.
func (r *SubscriptionRepository) ListChannels(ctx context.Context, subscriberID uuid.UUID) ([]uuid.UUID, error) {
	const query = `
		SELECT channel_id
		FROM subscriptions
		WHERE subscriber_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, subscriberID)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscribed channels: %w", err)
	}
	defer rows.Close()

	var channels []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan channel id: %w", err)
		}
		channels = append(channels, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscriptions: %w", err)
	}

	return channels, nil
}

// DeleteBySubscriber removes every outbound edge of an account and
// repairs each affected channel's cached counter in the same statement,
// so a failure leaves both tables untouched and a retry after success
// is a no-op. The recount excludes the departing subscriber because the
// outer UPDATE does not see the rows the CTE deletes.
func (r *SubscriptionRepository) DeleteBySubscriber(ctx context.Context, subscriberID uuid.UUID) error {
	const query = `
		WITH removed AS (
			DELETE FROM subscriptions WHERE subscriber_id = $1 RETURNING channel_id
		)
		UPDATE accounts
		SET subscriber_count = (SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = accounts.id AND s.subscriber_id <> $1), updated_at = $2
		WHERE id IN (SELECT channel_id FROM removed)
	`

	if _, err := r.db.Exec(ctx, query, subscriberID, time.Now()); err != nil {
		return fmt.Errorf("failed to delete subscriptions by subscriber: %w", err)
	}

	return nil
}

// DeleteByChannel removes every inbound edge of a channel.
func (r *SubscriptionRepository) DeleteByChannel(ctx context.Context, channelID uuid.UUID) error {
	const query = `DELETE FROM subscriptions WHERE channel_id = $1`

	if _, err := r.db.Exec(ctx, query, channelID); err != nil {
		return fmt.Errorf("failed to delete subscriptions by channel: %w", err)
	}

	return nil
}

// Compile-time verification that SubscriptionRepository implements repository.SubscriptionRepository.
var _ repository.SubscriptionRepository = (*SubscriptionRepository)(nil)
