package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/viewly/viewly/internal/domain/model"
	"github.com/viewly/viewly/internal/domain/repository"
)

// CommentService manages comments on videos. Only the author may edit
// or delete a comment; comments are removed with their video and with
// their author.
type CommentService interface {
	// Create attaches a comment to a video.
	Create(ctx context.Context, videoID, authorID uuid.UUID, body string) (*model.Comment, error)

	// Edit replaces a comment's body. Author only.
	Edit(ctx context.Context, commentID, callerID uuid.UUID, body string) (*model.Comment, error)

	// Delete removes a comment. Author only.
	Delete(ctx context.Context, commentID, callerID uuid.UUID) error

	// ListByVideo returns a video's comments, oldest first.
	ListByVideo(ctx context.Context, videoID uuid.UUID) ([]*model.Comment, error)
}

type commentService struct {
	comments repository.CommentRepository
	videos   repository.VideoRepository
}

// NewCommentService creates a new CommentService instance.
func NewCommentService(
	comments repository.CommentRepository,
	videos repository.VideoRepository,
) CommentService {
	return &commentService{
		comments: comments,
		videos:   videos,
	}
}

// Create validates the body and writes the comment. The video's
// existence is enforced by the repository, which reports an absent
// video as NotFound.
func (s *commentService) Create(ctx context.Context, videoID, authorID uuid.UUID, body string) (*model.Comment, error) {
	comment, err := model.NewComment(videoID, authorID, body)
	if err != nil {
		return nil, err
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// Edit replaces the body after an authorship check.
func (s *commentService) Edit(ctx context.Context, commentID, callerID uuid.UUID, body string) (*model.Comment, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if !comment.IsAuthoredBy(callerID) {
		return nil, ErrForbidden
	}

	if err := comment.SetBody(body); err != nil {
		return nil, err
	}

	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// Delete removes the comment after an authorship check.
func (s *commentService) Delete(ctx context.Context, commentID, callerID uuid.UUID) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if !comment.IsAuthoredBy(callerID) {
		return ErrForbidden
	}

	return s.comments.Delete(ctx, commentID)
}

// ListByVideo verifies the video exists, then lists its comments.
func (s *commentService) ListByVideo(ctx context.Context, videoID uuid.UUID) ([]*model.Comment, error) {
	if _, err := s.videos.GetByID(ctx, videoID); err != nil {
		return nil, err
	}
	return s.comments.ListByVideo(ctx, videoID)
}
