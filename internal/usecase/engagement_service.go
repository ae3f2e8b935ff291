package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/viewly/viewly/internal/domain/model"
	"github.com/viewly/viewly/internal/domain/repository"
)

// EngagementService records per-video engagement. All mutations are
// single atomic statements in the repository; an account is in at most
// one of a video's reaction sets, and views count distinct accounts.
type EngagementService interface {
	// Like places the account in the video's liked-by set, leaving the
	// disliked-by set. Repeats are no-ops.
	Like(ctx context.Context, videoID, accountID uuid.UUID) error

	// Dislike places the account in the video's disliked-by set,
	// leaving the liked-by set. Repeats are no-ops.
	Dislike(ctx context.Context, videoID, accountID uuid.UUID) error

	// RecordView marks the account as a distinct viewer of the video.
	// Repeat views by the same account do not change the count.
	RecordView(ctx context.Context, videoID, accountID uuid.UUID) error

	// Counts returns the video's derived engagement numbers.
	Counts(ctx context.Context, videoID uuid.UUID) (model.EngagementCounts, error)
}

type engagementService struct {
	engagement repository.EngagementRepository
	videos     repository.VideoRepository
}

// NewEngagementService creates a new EngagementService instance.
func NewEngagementService(
	engagement repository.EngagementRepository,
	videos repository.VideoRepository,
) EngagementService {
	return &engagementService{
		engagement: engagement,
		videos:     videos,
	}
}

func (s *engagementService) Like(ctx context.Context, videoID, accountID uuid.UUID) error {
	return s.engagement.SetReaction(ctx, videoID, accountID, model.ReactionLike)
}

func (s *engagementService) Dislike(ctx context.Context, videoID, accountID uuid.UUID) error {
	return s.engagement.SetReaction(ctx, videoID, accountID, model.ReactionDislike)
}

func (s *engagementService) RecordView(ctx context.Context, videoID, accountID uuid.UUID) error {
	return s.engagement.AddView(ctx, videoID, accountID)
}

// Counts verifies the video exists so an absent video reads as NotFound
// rather than three zero counts.
func (s *engagementService) Counts(ctx context.Context, videoID uuid.UUID) (model.EngagementCounts, error) {
	if _, err := s.videos.GetByID(ctx, videoID); err != nil {
		return model.EngagementCounts{}, err
	}
	return s.engagement.Counts(ctx, videoID)
}
