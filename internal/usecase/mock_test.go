package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/viewly/viewly/internal/assets"
	"github.com/viewly/viewly/internal/domain/model"
	"github.com/viewly/viewly/internal/domain/repository"
)

// mockAccountRepository provides a configurable mock for AccountRepository.
type mockAccountRepository struct {
	createFn                   func(ctx context.Context, account *model.Account) error
	getByIDFn                  func(ctx context.Context, id uuid.UUID) (*model.Account, error)
	getByEmailFn               func(ctx context.Context, email string) (*model.Account, error)
	updateFn                   func(ctx context.Context, account *model.Account) error
	deleteFn                   func(ctx context.Context, id uuid.UUID) error
	adjustSubscriberCountFn    func(ctx context.Context, channelID uuid.UUID, delta int64) error
	reconcileSubscriberCountFn func(ctx context.Context, channelID uuid.UUID) error
}

func (m *mockAccountRepository) Create(ctx context.Context, account *model.Account) error {
	if m.createFn != nil {
		return m.createFn(ctx, account)
	}
	return nil
}

func (m *mockAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrAccountNotFound
}

func (m *mockAccountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, repository.ErrAccountNotFound
}

func (m *mockAccountRepository) Update(ctx context.Context, account *model.Account) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, account)
	}
	return nil
}

func (m *mockAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockAccountRepository) AdjustSubscriberCount(ctx context.Context, channelID uuid.UUID, delta int64) error {
	if m.adjustSubscriberCountFn != nil {
		return m.adjustSubscriberCountFn(ctx, channelID, delta)
	}
	return nil
}

func (m *mockAccountRepository) ReconcileSubscriberCount(ctx context.Context, channelID uuid.UUID) error {
	if m.reconcileSubscriberCountFn != nil {
		return m.reconcileSubscriberCountFn(ctx, channelID)
	}
	return nil
}

// mockSubscriptionRepository provides a configurable mock for SubscriptionRepository.
type mockSubscriptionRepository struct {
	addEdgeFn            func(ctx context.Context, subscriberID, channelID uuid.UUID) error
	removeEdgeFn         func(ctx context.Context, subscriberID, channelID uuid.UUID) error
	listChannelsFn       func(ctx context.Context, subscriberID uuid.UUID) ([]uuid.UUID, error)
	deleteBySubscriberFn func(ctx context.Context, subscriberID uuid.UUID) error
	deleteByChannelFn    func(ctx context.Context, channelID uuid.UUID) error
}

func (m *mockSubscriptionRepository) AddEdge(ctx context.Context, subscriberID, channelID uuid.UUID) error {
	if m.addEdgeFn != nil {
		return m.addEdgeFn(ctx, subscriberID, channelID)
	}
	return nil
}

func (m *mockSubscriptionRepository) RemoveEdge(ctx context.Context, subscriberID, channelID uuid.UUID) error {
	if m.removeEdgeFn != nil {
		return m.removeEdgeFn(ctx, subscriberID, channelID)
	}
	return nil
}

func (m *mockSubscriptionRepository) ListChannels(ctx context.Context, subscriberID uuid.UUID) ([]uuid.UUID, error) {
	if m.listChannelsFn != nil {
		return m.listChannelsFn(ctx, subscriberID)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) DeleteBySubscriber(ctx context.Context, subscriberID uuid.UUID) error {
	if m.deleteBySubscriberFn != nil {
		return m.deleteBySubscriberFn(ctx, subscriberID)
	}
	return nil
}

func (m *mockSubscriptionRepository) DeleteByChannel(ctx context.Context, channelID uuid.UUID) error {
	if m.deleteByChannelFn != nil {
		return m.deleteByChannelFn(ctx, channelID)
	}
	return nil
}

// mockVideoRepository provides a configurable mock for VideoRepository.
type mockVideoRepository struct {
	createFn         func(ctx context.Context, video *model.Video) error
	getByIDFn        func(ctx context.Context, id uuid.UUID) (*model.Video, error)
	getByOwnerFn     func(ctx context.Context, ownerID uuid.UUID) ([]*model.Video, error)
	listFn           func(ctx context.Context) ([]*model.Video, error)
	listByCategoryFn func(ctx context.Context, category string) ([]*model.Video, error)
	listByTagFn      func(ctx context.Context, tag string) ([]*model.Video, error)
	updateFn         func(ctx context.Context, video *model.Video) error
	deleteFn         func(ctx context.Context, id uuid.UUID) error
}

func (m *mockVideoRepository) Create(ctx context.Context, video *model.Video) error {
	if m.createFn != nil {
		return m.createFn(ctx, video)
	}
	return nil
}

func (m *mockVideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrVideoNotFound
}

func (m *mockVideoRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Video, error) {
	if m.getByOwnerFn != nil {
		return m.getByOwnerFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockVideoRepository) List(ctx context.Context) ([]*model.Video, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockVideoRepository) ListByCategory(ctx context.Context, category string) ([]*model.Video, error) {
	if m.listByCategoryFn != nil {
		return m.listByCategoryFn(ctx, category)
	}
	return nil, nil
}

func (m *mockVideoRepository) ListByTag(ctx context.Context, tag string) ([]*model.Video, error) {
	if m.listByTagFn != nil {
		return m.listByTagFn(ctx, tag)
	}
	return nil, nil
}

func (m *mockVideoRepository) Update(ctx context.Context, video *model.Video) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, video)
	}
	return nil
}

func (m *mockVideoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// mockEngagementRepository provides a configurable mock for EngagementRepository.
type mockEngagementRepository struct {
	setReactionFn   func(ctx context.Context, videoID, accountID uuid.UUID, kind model.ReactionKind) error
	addViewFn       func(ctx context.Context, videoID, accountID uuid.UUID) error
	countsFn        func(ctx context.Context, videoID uuid.UUID) (model.EngagementCounts, error)
	hasReactionFn   func(ctx context.Context, videoID, accountID uuid.UUID, kind model.ReactionKind) (bool, error)
	removeAccountFn func(ctx context.Context, accountID uuid.UUID) error
}

func (m *mockEngagementRepository) SetReaction(ctx context.Context, videoID, accountID uuid.UUID, kind model.ReactionKind) error {
	if m.setReactionFn != nil {
		return m.setReactionFn(ctx, videoID, accountID, kind)
	}
	return nil
}

func (m *mockEngagementRepository) AddView(ctx context.Context, videoID, accountID uuid.UUID) error {
	if m.addViewFn != nil {
		return m.addViewFn(ctx, videoID, accountID)
	}
	return nil
}

func (m *mockEngagementRepository) Counts(ctx context.Context, videoID uuid.UUID) (model.EngagementCounts, error) {
	if m.countsFn != nil {
		return m.countsFn(ctx, videoID)
	}
	return model.EngagementCounts{}, nil
}

func (m *mockEngagementRepository) HasReaction(ctx context.Context, videoID, accountID uuid.UUID, kind model.ReactionKind) (bool, error) {
	if m.hasReactionFn != nil {
		return m.hasReactionFn(ctx, videoID, accountID, kind)
	}
	return false, nil
}

func (m *mockEngagementRepository) RemoveAccount(ctx context.Context, accountID uuid.UUID) error {
	if m.removeAccountFn != nil {
		return m.removeAccountFn(ctx, accountID)
	}
	return nil
}

// mockCommentRepository provides a configurable mock for CommentRepository.
type mockCommentRepository struct {
	createFn         func(ctx context.Context, comment *model.Comment) error
	getByIDFn        func(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	listByVideoFn    func(ctx context.Context, videoID uuid.UUID) ([]*model.Comment, error)
	updateFn         func(ctx context.Context, comment *model.Comment) error
	deleteFn         func(ctx context.Context, id uuid.UUID) error
	deleteByVideoFn  func(ctx context.Context, videoID uuid.UUID) error
	deleteByAuthorFn func(ctx context.Context, authorID uuid.UUID) error
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	if m.createFn != nil {
		return m.createFn(ctx, comment)
	}
	return nil
}

func (m *mockCommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrCommentNotFound
}

func (m *mockCommentRepository) ListByVideo(ctx context.Context, videoID uuid.UUID) ([]*model.Comment, error) {
	if m.listByVideoFn != nil {
		return m.listByVideoFn(ctx, videoID)
	}
	return nil, nil
}

func (m *mockCommentRepository) Update(ctx context.Context, comment *model.Comment) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, comment)
	}
	return nil
}

func (m *mockCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockCommentRepository) DeleteByVideo(ctx context.Context, videoID uuid.UUID) error {
	if m.deleteByVideoFn != nil {
		return m.deleteByVideoFn(ctx, videoID)
	}
	return nil
}

func (m *mockCommentRepository) DeleteByAuthor(ctx context.Context, authorID uuid.UUID) error {
	if m.deleteByAuthorFn != nil {
		return m.deleteByAuthorFn(ctx, authorID)
	}
	return nil
}

// mockAssetGateway provides a configurable mock for AssetGateway.
type mockAssetGateway struct {
	storeFn   func(ctx context.Context, content assets.Content, kind model.AssetKind, folder string) (model.AssetRef, error)
	replaceFn func(ctx context.Context, oldID string, content assets.Content, kind model.AssetKind, folder string) (model.AssetRef, error)
	removeFn  func(ctx context.Context, id string, kind model.AssetKind) error
}

func (m *mockAssetGateway) Store(ctx context.Context, content assets.Content, kind model.AssetKind, folder string) (model.AssetRef, error) {
	if m.storeFn != nil {
		return m.storeFn(ctx, content, kind, folder)
	}
	key := folder + "/asset"
	return model.AssetRef{ID: key, URL: "http://blobs.local/" + key}, nil
}

func (m *mockAssetGateway) Replace(ctx context.Context, oldID string, content assets.Content, kind model.AssetKind, folder string) (model.AssetRef, error) {
	if m.replaceFn != nil {
		return m.replaceFn(ctx, oldID, content, kind, folder)
	}
	key := folder + "/asset"
	return model.AssetRef{ID: key, URL: "http://blobs.local/" + key}, nil
}

func (m *mockAssetGateway) Remove(ctx context.Context, id string, kind model.AssetKind) error {
	if m.removeFn != nil {
		return m.removeFn(ctx, id, kind)
	}
	return nil
}

// mockMessageQueue provides a configurable mock for MessageQueue.
type mockMessageQueue struct {
	publishPurgeTaskFn  func(ctx context.Context, task repository.PurgeTask) error
	consumePurgeTasksFn func(ctx context.Context, handler func(task repository.PurgeTask) error) error
}

func (m *mockMessageQueue) PublishPurgeTask(ctx context.Context, task repository.PurgeTask) error {
	if m.publishPurgeTaskFn != nil {
		return m.publishPurgeTaskFn(ctx, task)
	}
	return nil
}

func (m *mockMessageQueue) ConsumePurgeTasks(ctx context.Context, handler func(task repository.PurgeTask) error) error {
	if m.consumePurgeTasksFn != nil {
		return m.consumePurgeTasksFn(ctx, handler)
	}
	return nil
}

func (m *mockMessageQueue) Close() error {
	return nil
}

// mockTokenIssuer provides a configurable mock for TokenIssuer.
type mockTokenIssuer struct {
	issueFn func(accountID uuid.UUID, email string) (string, error)
}

func (m *mockTokenIssuer) Issue(accountID uuid.UUID, email string) (string, error) {
	if m.issueFn != nil {
		return m.issueFn(accountID, email)
	}
	return "token", nil
}

// mockVideoCache provides a configurable mock for cache.VideoCache.
type mockVideoCache struct {
	getFn    func(ctx context.Context, videoID uuid.UUID) (*model.Video, error)
	setFn    func(ctx context.Context, video *model.Video, ttl time.Duration) error
	deleteFn func(ctx context.Context, videoID uuid.UUID) error
}

func (m *mockVideoCache) Get(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
	if m.getFn != nil {
		return m.getFn(ctx, videoID)
	}
	return nil, nil
}

func (m *mockVideoCache) Set(ctx context.Context, video *model.Video, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, video, ttl)
	}
	return nil
}

func (m *mockVideoCache) Delete(ctx context.Context, videoID uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, videoID)
	}
	return nil
}
