package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/viewly/viewly/internal/domain/model"
	"github.com/viewly/viewly/internal/domain/repository"
)

// CommentRepository implements repository.CommentRepository using PostgreSQL.
type CommentRepository struct {
	db DBTX
}

// NewCommentRepository creates a new CommentRepository instance.
func NewCommentRepository(db DBTX) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create persists a new comment.
func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	const query = `
		INSERT INTO comments (id, video_id, author_id, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		comment.ID,
		comment.VideoID,
		comment.AuthorID,
		comment.Body,
		comment.CreatedAt,
		comment.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return repository.ErrDuplicateComment
			case "23503":
				if pgErr.ConstraintName == "comments_author_id_fkey" {
					return repository.ErrAccountNotFound
				}
				return repository.ErrVideoNotFound
			}
		}
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

// GetByID retrieves a comment by its identifier.
func (r *CommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	const query = commentSelect + ` WHERE id = $1`

	comment, err := scanComment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment by ID: %w", err)
	}

	return comment, nil
}

// ListByVideo retrieves all comments on a video, oldest first.
func (r *CommentRepository) ListByVideo(ctx context.Context, videoID uuid.UUID) ([]*model.Comment, error) {
	const query = commentSelect + ` WHERE video_id = $1 ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var comments []*model.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}

	return comments, nil
}

// Update persists body changes.
func (r *CommentRepository) Update(ctx context.Context, comment *model.Comment) error {
	const query = `
		UPDATE comments
		SET body = $2, updated_at = $3
		WHERE id = $1
	`

	comment.UpdatedAt = time.Now()

	tag, err := r.db.Exec(ctx, query, comment.ID, comment.Body, comment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrCommentNotFound
	}

	return nil
}

// Delete removes a comment.
func (r *CommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM comments WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrCommentNotFound
	}

	return nil
}

// DeleteByVideo removes every comment on a video.
func (r *CommentRepository) DeleteByVideo(ctx context.Context, videoID uuid.UUID) error {
	const query = `DELETE FROM comments WHERE video_id = $1`

	if _, err := r.db.Exec(ctx, query, videoID); err != nil {
		return fmt.Errorf("failed to delete comments by video: %w", err)
	}

	return nil
}

// DeleteByAuthor removes every comment written by an account.
func (r *CommentRepository) DeleteByAuthor(ctx context.Context, authorID uuid.UUID) error {
	const query = `DELETE FROM comments WHERE author_id = $1`

	if _, err := r.db.Exec(ctx, query, authorID); err != nil {
		return fmt.Errorf("failed to delete comments by author: %w", err)
	}

	return nil
}

const commentSelect = `
		SELECT id, video_id, author_id, body, created_at, updated_at
		FROM comments`

// scanComment scans a single row into a Comment model.
func scanComment(row pgx.Row) (*model.Comment, error) {
	var comment model.Comment

	err := row.Scan(
		&comment.ID,
		&comment.VideoID,
		&comment.AuthorID,
		&comment.Body,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &comment, nil
}

// Compile-time verification that CommentRepository implements repository.CommentRepository.
var _ repository.CommentRepository = (*CommentRepository)(nil)
