package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/viewly/viewly/internal/domain/model"
	"github.com/viewly/viewly/internal/domain/repository"
	"github.com/viewly/viewly/internal/infrastructure/metrics"
)

// Purge step names, in execution order.
const (
	purgeStepAvatar        = "avatar"
	purgeStepVideos        = "videos"
	purgeStepEngagement    = "engagement"
	purgeStepComments      = "comments"
	purgeStepOutboundEdges = "outbound_edges"
	purgeStepInboundEdges  = "inbound_edges"
	purgeStepRecord        = "record"
)

// PurgeService removes an account and everything it owns. The run is a
// sequence of independently idempotent steps; a failed step aborts the
// run, and a re-run resumes safely because completed steps are no-ops.
type PurgeService interface {
	Purge(ctx context.Context, accountID uuid.UUID) error
}

type purgeService struct {
	accounts      repository.AccountRepository
	subscriptions repository.SubscriptionRepository
	videos        repository.VideoRepository
	engagement    repository.EngagementRepository
	comments      repository.CommentRepository
	gateway       AssetGateway
	logger        *slog.Logger
}

// NewPurgeService creates a new PurgeService instance.
func NewPurgeService(
	accounts repository.AccountRepository,
	subscriptions repository.SubscriptionRepository,
	videos repository.VideoRepository,
	engagement repository.EngagementRepository,
	comments repository.CommentRepository,
	gateway AssetGateway,
	logger *slog.Logger,
) PurgeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &purgeService{
		accounts:      accounts,
		subscriptions: subscriptions,
		videos:        videos,
		engagement:    engagement,
		comments:      comments,
		gateway:       gateway,
		logger:        logger,
	}
}

// Purge executes the deletion cascade:
//
//  1. destroy the avatar asset
//  2. per owned video: destroy both assets, delete its comments, delete
//     the record
//  3. strip the account from every engagement set
//  4. delete comments the account authored on other videos
//  5. delete outbound subscription edges, repairing each affected
//     channel's cached counter in the same statement
//  6. delete inbound subscription edges
//  7. delete the account record (terminal step)
//
// An account that is already gone reads as an earlier completed run.
func (s *purgeService) Purge(ctx context.Context, accountID uuid.UUID) error {
	account, err := s.accounts.GetByID(ctx, accountID)
	if errors.Is(err, repository.ErrAccountNotFound) {
		s.logger.Info("account already purged", slog.String("account_id", accountID.String()))
		return nil
	}
	if err != nil {
		return fmt.Errorf("load account: %w", err)
	}

	if err := s.step(purgeStepAvatar, func() error {
		return s.gateway.Remove(ctx, account.Avatar.ID, model.AssetKindImage)
	}); err != nil {
		return err
	}

	if err := s.step(purgeStepVideos, func() error {
		return s.purgeVideos(ctx, accountID)
	}); err != nil {
		return err
	}

	if err := s.step(purgeStepEngagement, func() error {
		return s.engagement.RemoveAccount(ctx, accountID)
	}); err != nil {
		return err
	}

	if err := s.step(purgeStepComments, func() error {
		return s.comments.DeleteByAuthor(ctx, accountID)
	}); err != nil {
		return err
	}

	if err := s.step(purgeStepOutboundEdges, func() error {
		return s.purgeOutboundEdges(ctx, accountID)
	}); err != nil {
		return err
	}

	if err := s.step(purgeStepInboundEdges, func() error {
		return s.subscriptions.DeleteByChannel(ctx, accountID)
	}); err != nil {
		return err
	}

	if err := s.step(purgeStepRecord, func() error {
		err := s.accounts.Delete(ctx, accountID)
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil
		}
		return err
	}); err != nil {
		return err
	}

	s.logger.Info("account purged", slog.String("account_id", accountID.String()))
	return nil
}

// purgeVideos removes every owned video: assets first, then comments,
// then the record. A video already gone from the listing was handled by
// an earlier run.
func (s *purgeService) purgeVideos(ctx context.Context, accountID uuid.UUID) error {
	videos, err := s.videos.GetByOwner(ctx, accountID)
	if err != nil {
		return fmt.Errorf("list owned videos: %w", err)
	}

	for _, video := range videos {
		if err := s.gateway.Remove(ctx, video.Thumbnail.ID, model.AssetKindImage); err != nil {
			return fmt.Errorf("remove thumbnail of %s: %w", video.ID, err)
		}
		if err := s.gateway.Remove(ctx, video.Media.ID, model.AssetKindVideo); err != nil {
			return fmt.Errorf("remove media of %s: %w", video.ID, err)
		}
		if err := s.comments.DeleteByVideo(ctx, video.ID); err != nil {
			return fmt.Errorf("delete comments of %s: %w", video.ID, err)
		}
		if err := s.videos.Delete(ctx, video.ID); err != nil && !errors.Is(err, repository.ErrVideoNotFound) {
			return fmt.Errorf("delete record of %s: %w", video.ID, err)
		}
	}

	return nil
}

// purgeOutboundEdges removes the account's subscriptions. The edge
// delete and the counter repair share one statement, so a failure
// leaves every counter untouched and a retry repeats the whole step
// rather than finding the edges already gone.
func (s *purgeService) purgeOutboundEdges(ctx context.Context, accountID uuid.UUID) error {
	if err := s.subscriptions.DeleteBySubscriber(ctx, accountID); err != nil {
		return fmt.Errorf("delete outbound edges: %w", err)
	}

	return nil
}

// step runs one purge step, recording its outcome.
func (s *purgeService) step(name string, fn func() error) error {
	if err := fn(); err != nil {
		metrics.PurgeStepsTotal.WithLabelValues(name, metrics.PurgeStatusErr).Inc()
		return fmt.Errorf("purge step %s: %w", name, err)
	}
	metrics.PurgeStepsTotal.WithLabelValues(name, metrics.PurgeStatusOK).Inc()
	return nil
}
