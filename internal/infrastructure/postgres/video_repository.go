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

// DBTX is an interface that abstracts pgxpool.Pool and pgx.Tx for testability.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// VideoRepository implements repository.VideoRepository using PostgreSQL.
type VideoRepository struct {
	db DBTX
}

// NewVideoRepository creates a new VideoRepository instance.
func NewVideoRepository(db DBTX) *VideoRepository {
	return &VideoRepository{db: db}
}

// Create persists a new video record.
func (r *VideoRepository) Create(ctx context.Context, video *model.Video) error {
	const query = `
		INSERT INTO videos (id, owner_id, title, description, category, tags, video_asset_id, video_url, thumbnail_asset_id, thumbnail_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		video.ID,
		video.OwnerID,
		video.Title,
		video.Description,
		video.Category,
		video.Tags,
		nullString(video.Media.ID),
		nullString(video.Media.URL),
		nullString(video.Thumbnail.ID),
		nullString(video.Thumbnail.URL),
		video.CreatedAt,
		video.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return repository.ErrDuplicateVideo
			case "23503":
				return repository.ErrAccountNotFound
			}
		}
		return fmt.Errorf("failed to create video: %w", err)
	}

	return nil
}

// GetByID retrieves a video by its identifier.
func (r *VideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	const query = videoSelect + ` WHERE id = $1`

	video, err := scanVideo(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to get video by ID: %w", err)
	}

	return video, nil
}

// GetByOwner retrieves all videos owned by an account, newest first.
func (r *VideoRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Video, error) {
	const query = videoSelect + ` WHERE owner_id = $1 ORDER BY created_at DESC`
	return r.queryVideos(ctx, query, ownerID)
}

// List retrieves all videos, newest first.
func (r *VideoRepository) List(ctx context.Context) ([]*model.Video, error) {
	const query = videoSelect + ` ORDER BY created_at DESC`
	return r.queryVideos(ctx, query)
}

// ListByCategory retrieves all videos in a category, newest first.
func (r *VideoRepository) ListByCategory(ctx context.Context, category string) ([]*model.Video, error) {
	const query = videoSelect + ` WHERE category = $1 ORDER BY created_at DESC`
	return r.queryVideos(ctx, query, category)
}

// ListByTag retrieves all videos carrying a tag, newest first.
func (r *VideoRepository) ListByTag(ctx context.Context, tag string) ([]*model.Video, error) {
	const query = videoSelect + ` WHERE $1 = ANY(tags) ORDER BY created_at DESC`
	return r.queryVideos(ctx, query, tag)
}

// Update persists metadata and asset-reference changes as a single write.
func (r *VideoRepository) Update(ctx context.Context, video *model.Video) error {
	const query = `
		UPDATE videos
		SET title = $2, description = $3, category = $4, tags = $5, video_asset_id = $6, video_url = $7, thumbnail_asset_id = $8, thumbnail_url = $9, updated_at = $10
		WHERE id = $1
	`

	video.UpdatedAt = time.Now()

	tag, err := r.db.Exec(ctx, query,
		video.ID,
		video.Title,
		video.Description,
		video.Category,
		video.Tags,
		nullString(video.Media.ID),
		nullString(video.Media.URL),
		nullString(video.Thumbnail.ID),
		nullString(video.Thumbnail.URL),
		video.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update video: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrVideoNotFound
	}

	return nil
}

// Delete removes the video record.
func (r *VideoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM videos WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrVideoNotFound
	}

	return nil
}

func (r *VideoRepository) queryVideos(ctx context.Context, query string, args ...any) ([]*model.Video, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query videos: %w", err)
	}
	defer rows.Close()

	var videos []*model.Video
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating videos: %w", err)
	}

	return videos, nil
}

const videoSelect = `
		SELECT id, owner_id, title, description, category, tags, video_asset_id, video_url, thumbnail_asset_id, thumbnail_url, created_at, updated_at
		FROM videos`

// scanVideo scans a single row into a Video model.
func scanVideo(row pgx.Row) (*model.Video, error) {
	var (
		video            model.Video
		videoAssetID     *string
		videoURL         *string
		thumbnailAssetID *string
		thumbnailURL     *string
	)

	err := row.Scan(
		&video.ID,
		&video.OwnerID,
		&video.Title,
		&video.Description,
		&video.Category,
		&video.Tags,
		&videoAssetID,
		&videoURL,
		&thumbnailAssetID,
		&thumbnailURL,
		&video.CreatedAt,
		&video.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if videoAssetID != nil {
		video.Media.ID = *videoAssetID
	}
	if videoURL != nil {
		video.Media.URL = *videoURL
	}
	if thumbnailAssetID != nil {
		video.Thumbnail.ID = *thumbnailAssetID
	}
	if thumbnailURL != nil {
		video.Thumbnail.URL = *thumbnailURL
	}

	return &video, nil
}

// nullString returns nil for empty strings, otherwise returns a pointer to the string.
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Compile-time verification that VideoRepository implements repository.VideoRepository.
var _ repository.VideoRepository = (*VideoRepository)(nil)
