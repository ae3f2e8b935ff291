package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/viewly/viewly/internal/domain/model"
	"github.com/viewly/viewly/internal/usecase"
)

// Function-field mocks for the service interfaces the handlers consume.

type mockIdentityService struct {
	registerFn      func(ctx context.Context, input usecase.RegisterInput) (*model.Account, error)
	authenticateFn  func(ctx context.Context, email, password string) (*model.Account, string, error)
	getAccountFn    func(ctx context.Context, accountID uuid.UUID) (*model.Account, error)
	updateProfileFn func(ctx context.Context, accountID uuid.UUID, input usecase.UpdateProfileInput) (*model.Account, error)
	deleteAccountFn func(ctx context.Context, accountID uuid.UUID) error
}

func (m *mockIdentityService) Register(ctx context.Context, input usecase.RegisterInput) (*model.Account, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, input)
	}
	return nil, nil
}

func (m *mockIdentityService) Authenticate(ctx context.Context, email, password string) (*model.Account, string, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(ctx, email, password)
	}
	return nil, "", nil
}

func (m *mockIdentityService) GetAccount(ctx context.Context, accountID uuid.UUID) (*model.Account, error) {
	if m.getAccountFn != nil {
		return m.getAccountFn(ctx, accountID)
	}
	return nil, nil
}

func (m *mockIdentityService) UpdateProfile(ctx context.Context, accountID uuid.UUID, input usecase.UpdateProfileInput) (*model.Account, error) {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(ctx, accountID, input)
	}
	return nil, nil
}

func (m *mockIdentityService) DeleteAccount(ctx context.Context, accountID uuid.UUID) error {
	if m.deleteAccountFn != nil {
		return m.deleteAccountFn(ctx, accountID)
	}
	return nil
}

type mockSubscriptionService struct {
	subscribeFn    func(ctx context.Context, subscriberID, channelID uuid.UUID) error
	unsubscribeFn  func(ctx context.Context, subscriberID, channelID uuid.UUID) error
	listChannelsFn func(ctx context.Context, subscriberID uuid.UUID) ([]*model.Account, error)
	reconcileFn    func(ctx context.Context, channelID uuid.UUID) error
}

func (m *mockSubscriptionService) Subscribe(ctx context.Context, subscriberID, channelID uuid.UUID) error {
	if m.subscribeFn != nil {
		return m.subscribeFn(ctx, subscriberID, channelID)
	}
	return nil
}

func (m *mockSubscriptionService) Unsubscribe(ctx context.Context, subscriberID, channelID uuid.UUID) error {
	if m.unsubscribeFn != nil {
		return m.unsubscribeFn(ctx, subscriberID, channelID)
	}
	return nil
}

func (m *mockSubscriptionService) ListChannels(ctx context.Context, subscriberID uuid.UUID) ([]*model.Account, error) {
	if m.listChannelsFn != nil {
		return m.listChannelsFn(ctx, subscriberID)
	}
	return nil, nil
}

func (m *mockSubscriptionService) Reconcile(ctx context.Context, channelID uuid.UUID) error {
	if m.reconcileFn != nil {
		return m.reconcileFn(ctx, channelID)
	}
	return nil
}

type mockContentService struct {
	uploadFn         func(ctx context.Context, input usecase.UploadVideoInput) (*model.Video, error)
	getVideoFn       func(ctx context.Context, videoID uuid.UUID) (*model.Video, error)
	listVideosFn     func(ctx context.Context) ([]*model.Video, error)
	listByOwnerFn    func(ctx context.Context, ownerID uuid.UUID) ([]*model.Video, error)
	listByCategoryFn func(ctx context.Context, category string) ([]*model.Video, error)
	listByTagFn      func(ctx context.Context, tag string) ([]*model.Video, error)
	updateFn         func(ctx context.Context, videoID, callerID uuid.UUID, input usecase.UpdateVideoInput) (*model.Video, error)
	deleteFn         func(ctx context.Context, videoID, callerID uuid.UUID) error
}

func (m *mockContentService) Upload(ctx context.Context, input usecase.UploadVideoInput) (*model.Video, error) {
	if m.uploadFn != nil {
		return m.uploadFn(ctx, input)
	}
	return nil, nil
}

func (m *mockContentService) GetVideo(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
	if m.getVideoFn != nil {
		return m.getVideoFn(ctx, videoID)
	}
	return nil, nil
}

func (m *mockContentService) ListVideos(ctx context.Context) ([]*model.Video, error) {
	if m.listVideosFn != nil {
		return m.listVideosFn(ctx)
	}
	return nil, nil
}

func (m *mockContentService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Video, error) {
	if m.listByOwnerFn != nil {
		return m.listByOwnerFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockContentService) ListByCategory(ctx context.Context, category string) ([]*model.Video, error) {
	if m.listByCategoryFn != nil {
		return m.listByCategoryFn(ctx, category)
	}
	return nil, nil
}

func (m *mockContentService) ListByTag(ctx context.Context, tag string) ([]*model.Video, error) {
	if m.listByTagFn != nil {
		return m.listByTagFn(ctx, tag)
	}
	return nil, nil
}

func (m *mockContentService) Update(ctx context.Context, videoID, callerID uuid.UUID, input usecase.UpdateVideoInput) (*model.Video, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, videoID, callerID, input)
	}
	return nil, nil
}

func (m *mockContentService) Delete(ctx context.Context, videoID, callerID uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, videoID, callerID)
	}
	return nil
}

type mockEngagementService struct {
	likeFn       func(ctx context.Context, videoID, accountID uuid.UUID) error
	dislikeFn    func(ctx context.Context, videoID, accountID uuid.UUID) error
	recordViewFn func(ctx context.Context, videoID, accountID uuid.UUID) error
	countsFn     func(ctx context.Context, videoID uuid.UUID) (model.EngagementCounts, error)
}

func (m *mockEngagementService) Like(ctx context.Context, videoID, accountID uuid.UUID) error {
	if m.likeFn != nil {
		return m.likeFn(ctx, videoID, accountID)
	}
	return nil
}

func (m *mockEngagementService) Dislike(ctx context.Context, videoID, accountID uuid.UUID) error {
	if m.dislikeFn != nil {
		return m.dislikeFn(ctx, videoID, accountID)
	}
	return nil
}

func (m *mockEngagementService) RecordView(ctx context.Context, videoID, accountID uuid.UUID) error {
	if m.recordViewFn != nil {
		return m.recordViewFn(ctx, videoID, accountID)
	}
	return nil
}

func (m *mockEngagementService) Counts(ctx context.Context, videoID uuid.UUID) (model.EngagementCounts, error) {
	if m.countsFn != nil {
		return m.countsFn(ctx, videoID)
	}
	return model.EngagementCounts{}, nil
}

type mockCommentService struct {
	createFn      func(ctx context.Context, videoID, authorID uuid.UUID, body string) (*model.Comment, error)
	editFn        func(ctx context.Context, commentID, callerID uuid.UUID, body string) (*model.Comment, error)
	deleteFn      func(ctx context.Context, commentID, callerID uuid.UUID) error
	listByVideoFn func(ctx context.Context, videoID uuid.UUID) ([]*model.Comment, error)
}

func (m *mockCommentService) Create(ctx context.Context, videoID, authorID uuid.UUID, body string) (*model.Comment, error) {
	if m.createFn != nil {
		return m.createFn(ctx, videoID, authorID, body)
	}
	return nil, nil
}

func (m *mockCommentService) Edit(ctx context.Context, commentID, callerID uuid.UUID, body string) (*model.Comment, error) {
	if m.editFn != nil {
		return m.editFn(ctx, commentID, callerID, body)
	}
	return nil, nil
}

func (m *mockCommentService) Delete(ctx context.Context, commentID, callerID uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, commentID, callerID)
	}
	return nil
}

func (m *mockCommentService) ListByVideo(ctx context.Context, videoID uuid.UUID) ([]*model.Comment, error) {
	if m.listByVideoFn != nil {
		return m.listByVideoFn(ctx, videoID)
	}
	return nil, nil
}
