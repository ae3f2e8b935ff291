package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/viewly/viewly/internal/domain/model"
)

// CommentRepository defines the interface for comment persistence.
type CommentRepository interface {
	// Create persists a new comment.
	Create(ctx context.Context, comment *model.Comment) error

	// GetByID retrieves a comment by its identifier.
	// Returns ErrCommentNotFound if the comment does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)

	// ListByVideo retrieves all comments on a video, oldest first.
	ListByVideo(ctx context.Context, videoID uuid.UUID) ([]*model.Comment, error)

	// Update persists body changes.
	// Returns ErrCommentNotFound if the comment does not exist.
	Update(ctx context.Context, comment *model.Comment) error

	// Delete removes a comment.
	// Returns ErrCommentNotFound if no record was deleted.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByVideo removes every comment on a video. A no-op when none
	// remain.
	DeleteByVideo(ctx context.Context, videoID uuid.UUID) error

	// DeleteByAuthor removes every comment written by an account. A
	// no-op when none remain.
	DeleteByAuthor(ctx context.Context, authorID uuid.UUID) error
}
