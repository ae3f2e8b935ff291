package model

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyEmail         = errors.New("email cannot be empty")
	ErrInvalidEmail       = errors.New("email format is invalid")
	ErrEmptyPhone         = errors.New("phone cannot be empty")
	ErrEmptyChannelName   = errors.New("channel name cannot be empty")
	ErrEmptyPasswordHash  = errors.New("password hash cannot be empty")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrChannelNameTooLong = errors.New("channel name exceeds maximum length of 100 characters")
)

const (
	// MinPasswordLength is the minimum accepted raw password length.
	MinPasswordLength = 6

	maxChannelNameLength = 100
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s has a plausible mailbox shape.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Account represents a registered channel owner.
//
// SubscriberCount is derived state: it caches the cardinality of
// inbound subscription edges and is never the source of truth.
type Account struct {
	ID              uuid.UUID
	Email           string
	Phone           string
	ChannelName     string
	PasswordHash    string
	Avatar          AssetRef
	SubscriberCount int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewAccount creates an Account with validated identity fields.
// The password must already be hashed; raw password policy is checked
// by the identity service before hashing.
func NewAccount(email, phone, channelName, passwordHash string) (*Account, error) {
	if email == "" {
		return nil, ErrEmptyEmail
	}
	if !ValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if phone == "" {
		return nil, ErrEmptyPhone
	}
	if channelName == "" {
		return nil, ErrEmptyChannelName
	}
	if len(channelName) > maxChannelNameLength {
		return nil, ErrChannelNameTooLong
	}
	if passwordHash == "" {
		return nil, ErrEmptyPasswordHash
	}

	now := time.Now()
	return &Account{
		ID:           uuid.New(),
		Email:        email,
		Phone:        phone,
		ChannelName:  channelName,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// SetAvatar replaces the avatar reference.
func (a *Account) SetAvatar(ref AssetRef) {
	a.Avatar = ref
	a.UpdatedAt = time.Now()
}

// Sanitized returns a copy with the credential hash stripped, safe to
// hand back to callers.
func (a *Account) Sanitized() *Account {
	clean := *a
	clean.PasswordHash = ""
	return &clean
}
