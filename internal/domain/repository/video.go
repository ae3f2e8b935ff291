package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/viewly/viewly/internal/domain/model"
)

// VideoRepository defines the interface for video persistence.
type VideoRepository interface {
	// Create persists a new video record.
	Create(ctx context.Context, video *model.Video) error

	// GetByID retrieves a video by its identifier.
	// Returns ErrVideoNotFound if the video does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error)

	// GetByOwner retrieves all videos owned by an account, newest first.
	GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Video, error)

	// List retrieves all videos, newest first.
	List(ctx context.Context) ([]*model.Video, error)

	// ListByCategory retrieves all videos in a category, newest first.
	ListByCategory(ctx context.Context, category string) ([]*model.Video, error)

	// ListByTag retrieves all videos carrying a tag, newest first.
	ListByTag(ctx context.Context, tag string) ([]*model.Video, error)

	// Update persists metadata and asset-reference changes as a single write.
	// Returns ErrVideoNotFound if the video does not exist.
	Update(ctx context.Context, video *model.Video) error

	// Delete removes the video record.
	// Returns ErrVideoNotFound if no record was deleted.
	Delete(ctx context.Context, id uuid.UUID) error
}

// EngagementRepository manages per-video engagement set membership.
// Every mutation is a single atomic statement; callers never
// read-modify-write these sets.
type EngagementRepository interface {
	// SetReaction places accountID in the reaction set of the given
	// kind, removing it from the opposite set in the same statement.
	// Repeating the same reaction is a no-op.
	// Returns ErrVideoNotFound if the video does not exist.
	SetReaction(ctx context.Context, videoID, accountID uuid.UUID, kind model.ReactionKind) error

	// AddView records accountID as a distinct viewer. Repeat views by
	// the same account are no-ops.
	// Returns ErrVideoNotFound if the video does not exist.
	AddView(ctx context.Context, videoID, accountID uuid.UUID) error

	// Counts returns the derived engagement counts for a video.
	Counts(ctx context.Context, videoID uuid.UUID) (model.EngagementCounts, error)

	// HasReaction reports whether accountID is in the reaction set of
	// the given kind.
	HasReaction(ctx context.Context, videoID, accountID uuid.UUID, kind model.ReactionKind) (bool, error)

	// RemoveAccount strips accountID from every video's reaction and
	// view sets. Already-stripped accounts are no-ops.
	RemoveAccount(ctx context.Context, accountID uuid.UUID) error
}
