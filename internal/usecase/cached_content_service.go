package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/viewly/viewly/internal/domain/model"
	"github.com/viewly/viewly/internal/infrastructure/cache"
	"github.com/viewly/viewly/internal/infrastructure/metrics"
)

// CachedContentServiceConfig holds configuration for CachedContentService.
type CachedContentServiceConfig struct {
	// CacheTTL is the TTL for cached video metadata.
	CacheTTL time.Duration
}

// DefaultCachedContentServiceConfig returns the default configuration.
func DefaultCachedContentServiceConfig() CachedContentServiceConfig {
	return CachedContentServiceConfig{
		CacheTTL: 5 * time.Minute,
	}
}

// cachedContentService wraps ContentService with caching on the
// single-video read path. It implements the decorator pattern to add
// caching without modifying the original service.
type cachedContentService struct {
	delegate ContentService
	cache    cache.VideoCache
	sfGroup  singleflight.Group

	cacheTTL time.Duration
}

// NewCachedContentService creates a CachedContentService wrapping the
// provided ContentService.
func NewCachedContentService(
	delegate ContentService,
	videoCache cache.VideoCache,
	cfg CachedContentServiceConfig,
) ContentService {
	return &cachedContentService{
		delegate: delegate,
		cache:    videoCache,
		cacheTTL: cfg.CacheTTL,
	}
}

// Upload delegates to the underlying service.
// No caching for create operations - the video is immediately returned.
func (s *cachedContentService) Upload(ctx context.Context, input UploadVideoInput) (*model.Video, error) {
	return s.delegate.Upload(ctx, input)
}

// GetVideo retrieves video information with caching.
// Uses singleflight to prevent cache stampede on concurrent requests for the same video.
func (s *cachedContentService) GetVideo(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
	// Use singleflight to coalesce concurrent requests
	key := videoID.String()
	result, err, shared := s.sfGroup.Do(key, func() (any, error) {
		return s.getVideoWithCache(ctx, videoID)
	})

	// Record singleflight metrics
	if shared {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightShared).Inc()
	} else {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightInitiated).Inc()
	}

	if err != nil {
		return nil, err
	}

	return result.(*model.Video), nil
}

// getVideoWithCache implements the cache-aside pattern.
func (s *cachedContentService) getVideoWithCache(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
	// Try cache first
	video, err := s.cache.Get(ctx, videoID)
	if err != nil {
		// Log cache error but continue to database
		slog.Warn("cache get failed, falling back to database",
			"video_id", videoID,
			"error", err,
		)
	}

	if video != nil {
		return video, nil // Cache hit
	}

	// Cache miss - fetch from database
	video, err = s.delegate.GetVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}

	// Store in cache (errors logged but not propagated)
	if err := s.cache.Set(ctx, video, s.cacheTTL); err != nil {
		slog.Warn("failed to cache video",
			"video_id", videoID,
			"error", err,
		)
	}

	return video, nil
}

// ListVideos delegates to the underlying service.
func (s *cachedContentService) ListVideos(ctx context.Context) ([]*model.Video, error) {
	return s.delegate.ListVideos(ctx)
}

// ListByOwner delegates to the underlying service.
func (s *cachedContentService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Video, error) {
	return s.delegate.ListByOwner(ctx, ownerID)
}

// ListByCategory delegates to the underlying service.
func (s *cachedContentService) ListByCategory(ctx context.Context, category string) ([]*model.Video, error) {
	return s.delegate.ListByCategory(ctx, category)
}

// ListByTag delegates to the underlying service.
func (s *cachedContentService) ListByTag(ctx context.Context, tag string) ([]*model.Video, error) {
	return s.delegate.ListByTag(ctx, tag)
}

// Update invalidates the cached entry before delegating, so a
// concurrent read cannot re-serve the superseded metadata past the
// write.
func (s *cachedContentService) Update(ctx context.Context, videoID, callerID uuid.UUID, input UpdateVideoInput) (*model.Video, error) {
	s.invalidate(ctx, videoID)
	return s.delegate.Update(ctx, videoID, callerID, input)
}

// Delete invalidates the cached entry before delegating.
func (s *cachedContentService) Delete(ctx context.Context, videoID, callerID uuid.UUID) error {
	s.invalidate(ctx, videoID)
	return s.delegate.Delete(ctx, videoID, callerID)
}

func (s *cachedContentService) invalidate(ctx context.Context, videoID uuid.UUID) {
	if err := s.cache.Delete(ctx, videoID); err != nil {
		// Cache invalidation failure is non-critical; the entry expires.
		slog.Warn("failed to invalidate video cache",
			"video_id", videoID,
			"error", err,
		)
	}
}
