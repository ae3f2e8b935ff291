package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle       = errors.New("title cannot be empty")
	ErrEmptyDescription = errors.New("description cannot be empty")
	ErrEmptyCategory    = errors.New("category cannot be empty")
	ErrInvalidOwnerID   = errors.New("owner ID cannot be nil")
	ErrTitleTooLong     = errors.New("title exceeds maximum length of 255 characters")
)

const maxTitleLength = 255

// ReactionKind is the type of an engagement set membership.
type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

func (k ReactionKind) IsValid() bool {
	return k == ReactionLike || k == ReactionDislike
}

func (k ReactionKind) String() string {
	return string(k)
}

// Video represents an uploaded video record. It exclusively owns its
// two binary assets; the engagement sets hold weak references to
// accounts (relation only, never lifecycle ownership).
type Video struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Title       string
	Description string
	Category    string
	Tags        []string
	Media       AssetRef
	Thumbnail   AssetRef
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EngagementCounts carries the derived per-video engagement numbers.
type EngagementCounts struct {
	Likes    int64
	Dislikes int64
	Views    int64
}

// NewVideo creates a Video with validated metadata. Asset references
// are attached separately once the uploads are confirmed.
func NewVideo(ownerID uuid.UUID, title, description, category string, tags []string) (*Video, error) {
	if ownerID == uuid.Nil {
		return nil, ErrInvalidOwnerID
	}
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if len(title) > maxTitleLength {
		return nil, ErrTitleTooLong
	}
	if description == "" {
		return nil, ErrEmptyDescription
	}
	if category == "" {
		return nil, ErrEmptyCategory
	}

	now := time.Now()
	return &Video{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Category:    category,
		Tags:        tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// SetMedia attaches the video blob reference.
func (v *Video) SetMedia(ref AssetRef) {
	v.Media = ref
	v.UpdatedAt = time.Now()
}

// SetThumbnail attaches the thumbnail blob reference.
func (v *Video) SetThumbnail(ref AssetRef) {
	v.Thumbnail = ref
	v.UpdatedAt = time.Now()
}

// IsOwnedBy reports whether accountID owns this video.
func (v *Video) IsOwnedBy(accountID uuid.UUID) bool {
	return v.OwnerID == accountID
}

// ParseTags splits a comma-separated tag list, trimming whitespace and
// dropping empty entries. Order is preserved.
func ParseTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
