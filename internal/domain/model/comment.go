package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyCommentBody   = errors.New("comment body cannot be empty")
	ErrInvalidVideoID     = errors.New("video ID cannot be nil")
	ErrInvalidAuthorID    = errors.New("author ID cannot be nil")
	ErrCommentBodyTooLong = errors.New("comment body exceeds maximum length of 2000 characters")
)

const maxCommentBodyLength = 2000

// Comment is owned by its video (deleted with it) and weakly
// references its author.
type Comment struct {
	ID        uuid.UUID
	VideoID   uuid.UUID
	AuthorID  uuid.UUID
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewComment creates a validated Comment.
func NewComment(videoID, authorID uuid.UUID, body string) (*Comment, error) {
	if videoID == uuid.Nil {
		return nil, ErrInvalidVideoID
	}
	if authorID == uuid.Nil {
		return nil, ErrInvalidAuthorID
	}
	if body == "" {
		return nil, ErrEmptyCommentBody
	}
	if len(body) > maxCommentBodyLength {
		return nil, ErrCommentBodyTooLong
	}

	now := time.Now()
	return &Comment{
		ID:        uuid.New(),
		VideoID:   videoID,
		AuthorID:  authorID,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// SetBody replaces the body after validating it.
func (c *Comment) SetBody(body string) error {
	if body == "" {
		return ErrEmptyCommentBody
	}
	if len(body) > maxCommentBodyLength {
		return ErrCommentBodyTooLong
	}
	c.Body = body
	c.UpdatedAt = time.Now()
	return nil
}

// IsAuthoredBy reports whether accountID wrote this comment.
func (c *Comment) IsAuthoredBy(accountID uuid.UUID) bool {
	return c.AuthorID == accountID
}
