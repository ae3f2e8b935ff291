package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/viewly/viewly/internal/domain/model"
	"github.com/viewly/viewly/internal/domain/repository"
)

// EngagementRepository implements repository.EngagementRepository using
// PostgreSQL. Mutual exclusion between the like and dislike sets is
// structural: (video_id, account_id) is the reaction table's primary
// key, so an account holds at most one reaction per video and every
// mutation is a single atomic statement.
type EngagementRepository struct {
	db DBTX
}

// NewEngagementRepository creates a new EngagementRepository instance.
func NewEngagementRepository(db DBTX) *EngagementRepository {
	return &EngagementRepository{db: db}
}

// SetReaction places accountID in the reaction set of the given kind,
// displacing any opposite reaction in the same statement.
func (r *EngagementRepository) SetReaction(ctx context.Context, videoID, accountID uuid.UUID, kind model.ReactionKind) error {
	const query = `
		INSERT INTO video_reactions (video_id, account_id, kind, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (video_id, account_id) DO UPDATE SET kind = EXCLUDED.kind
	`

	_, err := r.db.Exec(ctx, query, videoID, accountID, kind.String(), time.Now())
	if err != nil {
		return foreignKeyError(err, "failed to set reaction")
	}

	return nil
}

// AddView records accountID as a distinct viewer. Repeat views are
// no-ops.
func (r *EngagementRepository) AddView(ctx context.Context, videoID, accountID uuid.UUID) error {
	const query = `
		INSERT INTO video_views (video_id, account_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (video_id, account_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, videoID, accountID, time.Now())
	if err != nil {
		return foreignKeyError(err, "failed to add view")
	}

	return nil
}

// Counts returns the derived engagement counts for a video.
func (r *EngagementRepository) Counts(ctx context.Context, videoID uuid.UUID) (model.EngagementCounts, error) {
	const query = `
		SELECT
			(SELECT COUNT(*) FROM video_reactions WHERE video_id = $1 AND kind = 'like'),
			(SELECT COUNT(*) FROM video_reactions WHERE video_id = $1 AND kind = 'dislike'),
			(SELECT COUNT(*) FROM video_views WHERE video_id = $1)
	`

	var counts model.EngagementCounts
	err := r.db.QueryRow(ctx, query, videoID).Scan(&counts.Likes, &counts.Dislikes, &counts.Views)
	if err != nil {
		return model.EngagementCounts{}, fmt.Errorf("failed to count engagement: %w", err)
	}

	return counts, nil
}

// HasReaction reports whether accountID is in the reaction set of the
// given kind.
func (r *EngagementRepository) HasReaction(ctx context.Context, videoID, accountID uuid.UUID, kind model.ReactionKind) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM video_reactions
			WHERE video_id = $1 AND account_id = $2 AND kind = $3
		)
	`

	var exists bool
	err := r.db.QueryRow(ctx, query, videoID, accountID, kind.String()).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check reaction: %w", err)
	}

	return exists, nil
}

// RemoveAccount strips accountID from every video's reaction and view
// sets. Both deletes are no-ops on resume.
func (r *EngagementRepository) RemoveAccount(ctx context.Context, accountID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM video_reactions WHERE account_id = $1`, accountID); err != nil {
		return fmt.Errorf("failed to remove reactions: %w", err)
	}
	if _, err := r.db.Exec(ctx, `DELETE FROM video_views WHERE account_id = $1`, accountID); err != nil {
		return fmt.Errorf("failed to remove views: %w", err)
	}
	return nil
}

// foreignKeyError maps a foreign key violation to the sentinel for the
// missing referenced record.
func foreignKeyError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		if pgErr.ConstraintName != "" && pgErr.ConstraintName != "video_reactions_video_id_fkey" && pgErr.ConstraintName != "video_views_video_id_fkey" {
			return repository.ErrAccountNotFound
		}
		return repository.ErrVideoNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Compile-time verification that EngagementRepository implements repository.EngagementRepository.
var _ repository.EngagementRepository = (*EngagementRepository)(nil)
