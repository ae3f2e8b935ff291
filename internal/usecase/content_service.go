package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/viewly/viewly/internal/assets"
	"github.com/viewly/viewly/internal/domain/model"
	"github.com/viewly/viewly/internal/domain/repository"
)

var (
	// ErrMissingMedia is returned when an upload lacks the video payload.
	ErrMissingMedia = errors.New("video payload is required")

	// ErrMissingThumbnail is returned when an upload lacks the thumbnail payload.
	ErrMissingThumbnail = errors.New("thumbnail payload is required")
)

// UploadVideoInput contains the input parameters for publishing a video.
type UploadVideoInput struct {
	OwnerID     uuid.UUID
	Title       string
	Description string
	Category    string
	Tags        []string
	Media       assets.Content
	Thumbnail   assets.Content
}

// UpdateVideoInput carries partial metadata changes. Nil fields keep
// their prior values.
type UpdateVideoInput struct {
	Title       *string
	Description *string
	Category    *string
	Tags        []string
	Thumbnail   *assets.Content
}

// ContentService defines the video lifecycle operations.
type ContentService interface {
	// Upload validates metadata, stores both assets, and writes the
	// record last. A failed record write compensates by removing the
	// stored assets.
	Upload(ctx context.Context, input UploadVideoInput) (*model.Video, error)

	// GetVideo retrieves a video by id.
	GetVideo(ctx context.Context, videoID uuid.UUID) (*model.Video, error)

	// ListVideos retrieves all videos, newest first.
	ListVideos(ctx context.Context) ([]*model.Video, error)

	// ListByOwner retrieves an account's videos, newest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Video, error)

	// ListByCategory retrieves videos in a category, newest first.
	ListByCategory(ctx context.Context, category string) ([]*model.Video, error)

	// ListByTag retrieves videos carrying a tag, newest first.
	ListByTag(ctx context.Context, tag string) ([]*model.Video, error)

	// Update applies metadata changes and optionally swaps the
	// thumbnail. Only the owner may update.
	Update(ctx context.Context, videoID, callerID uuid.UUID, input UpdateVideoInput) (*model.Video, error)

	// Delete destroys both assets and removes the record, comments
	// included. Only the owner may delete. Every step is idempotent, so
	// a partial failure is retryable.
	Delete(ctx context.Context, videoID, callerID uuid.UUID) error
}

type contentService struct {
	videos   repository.VideoRepository
	comments repository.CommentRepository
	gateway  AssetGateway
	logger   *slog.Logger
}

// NewContentService creates a new ContentService instance.
func NewContentService(
	videos repository.VideoRepository,
	comments repository.CommentRepository,
	gateway AssetGateway,
	logger *slog.Logger,
) ContentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &contentService{
		videos:   videos,
		comments: comments,
		gateway:  gateway,
		logger:   logger,
	}
}

// Upload publishes a video. Asset stores precede the record write so a
// reachable record always references stored assets; a failed record
// write removes both assets again.
func (s *contentService) Upload(ctx context.Context, input UploadVideoInput) (*model.Video, error) {
	video, err := model.NewVideo(input.OwnerID, input.Title, input.Description, input.Category, input.Tags)
	if err != nil {
		return nil, err
	}
	if input.Media.Reader == nil {
		return nil, ErrMissingMedia
	}
	if input.Thumbnail.Reader == nil {
		return nil, ErrMissingThumbnail
	}

	mediaRef, err := s.gateway.Store(ctx, input.Media, model.AssetKindVideo, folderVideos)
	if err != nil {
		return nil, err
	}
	video.SetMedia(mediaRef)

	thumbRef, err := s.gateway.Store(ctx, input.Thumbnail, model.AssetKindImage, folderThumbnails)
	if err != nil {
		s.removeAsset(ctx, mediaRef.ID, model.AssetKindVideo, "upload failure")
		return nil, err
	}
	video.SetThumbnail(thumbRef)

	if err := s.videos.Create(ctx, video); err != nil {
		s.removeAsset(ctx, thumbRef.ID, model.AssetKindImage, "record write failure")
		s.removeAsset(ctx, mediaRef.ID, model.AssetKindVideo, "record write failure")
		return nil, err
	}

	return video, nil
}

// GetVideo retrieves a video by id.
func (s *contentService) GetVideo(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
	return s.videos.GetByID(ctx, videoID)
}

// ListVideos retrieves all videos, newest first.
func (s *contentService) ListVideos(ctx context.Context) ([]*model.Video, error) {
	return s.videos.List(ctx)
}

// ListByOwner retrieves an account's videos, newest first.
func (s *contentService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Video, error) {
	return s.videos.GetByOwner(ctx, ownerID)
}

// ListByCategory retrieves videos in a category, newest first.
func (s *contentService) ListByCategory(ctx context.Context, category string) ([]*model.Video, error) {
	return s.videos.ListByCategory(ctx, category)
}

// ListByTag retrieves videos carrying a tag, newest first.
func (s *contentService) ListByTag(ctx context.Context, tag string) ([]*model.Video, error) {
	return s.videos.ListByTag(ctx, tag)
}

// Update applies metadata changes and optionally swaps the thumbnail.
// The new thumbnail is stored first, the record written second, and the
// old thumbnail destroyed last.
func (s *contentService) Update(ctx context.Context, videoID, callerID uuid.UUID, input UpdateVideoInput) (*model.Video, error) {
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !video.IsOwnedBy(callerID) {
		return nil, ErrForbidden
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, model.ErrEmptyTitle
		}
		video.Title = *input.Title
	}
	if input.Description != nil {
		if *input.Description == "" {
			return nil, model.ErrEmptyDescription
		}
		video.Description = *input.Description
	}
	if input.Category != nil {
		if *input.Category == "" {
			return nil, model.ErrEmptyCategory
		}
		video.Category = *input.Category
	}
	if input.Tags != nil {
		video.Tags = input.Tags
	}

	oldThumbnailID := video.Thumbnail.ID
	if input.Thumbnail != nil {
		ref, err := s.gateway.Store(ctx, *input.Thumbnail, model.AssetKindImage, folderThumbnails)
		if err != nil {
			return nil, err
		}
		video.SetThumbnail(ref)
	}

	if err := s.videos.Update(ctx, video); err != nil {
		if input.Thumbnail != nil {
			s.removeAsset(ctx, video.Thumbnail.ID, model.AssetKindImage, "record write failure")
		}
		return nil, err
	}

	if input.Thumbnail != nil && oldThumbnailID != "" {
		if err := s.gateway.Remove(ctx, oldThumbnailID, model.AssetKindImage); err != nil {
			s.logger.Warn("failed to remove replaced thumbnail",
				slog.String("asset_id", oldThumbnailID),
				slog.String("error", err.Error()),
			)
		}
	}

	return video, nil
}

// Delete removes the video's assets, its comments, and its record, in
// that order. Each step is a no-op when already done, so a failed run
// can be retried from the start.
func (s *contentService) Delete(ctx context.Context, videoID, callerID uuid.UUID) error {
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return err
	}
	if !video.IsOwnedBy(callerID) {
		return ErrForbidden
	}

	if err := s.gateway.Remove(ctx, video.Thumbnail.ID, model.AssetKindImage); err != nil {
		return fmt.Errorf("delete thumbnail asset: %w", err)
	}

	if err := s.gateway.Remove(ctx, video.Media.ID, model.AssetKindVideo); err != nil {
		return fmt.Errorf("delete video asset: %w", err)
	}

	if err := s.comments.DeleteByVideo(ctx, videoID); err != nil {
		return fmt.Errorf("delete video comments: %w", err)
	}

	if err := s.videos.Delete(ctx, videoID); err != nil {
		return fmt.Errorf("delete video record: %w", err)
	}

	return nil
}

// removeAsset is the compensation path: removal failures are logged
// only, because the triggering error is the one worth surfacing.
func (s *contentService) removeAsset(ctx context.Context, id string, kind model.AssetKind, reason string) {
	if err := s.gateway.Remove(ctx, id, kind); err != nil {
		s.logger.Warn("failed to remove asset during compensation",
			slog.String("asset_id", id),
			slog.String("kind", kind.String()),
			slog.String("reason", reason),
			slog.String("error", err.Error()),
		)
	}
}
