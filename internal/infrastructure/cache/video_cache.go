package cache

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/viewly/viewly/internal/domain/model"
)

// VideoCache defines the caching contract for video read paths.
// Implementations must treat a miss as (nil, nil), not an error.
type VideoCache interface {
	Get(ctx context.Context, videoID uuid.UUID) (*model.Video, error)
	Set(ctx context.Context, video *model.Video, ttl time.Duration) error
	Delete(ctx context.Context, videoID uuid.UUID) error
}
