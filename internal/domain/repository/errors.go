package repository

import "errors"

var (
	// ErrAccountNotFound is returned when an account cannot be found.
	ErrAccountNotFound = errors.New("account not found")

	// ErrVideoNotFound is returned when a video cannot be found.
	ErrVideoNotFound = errors.New("video not found")

	// ErrCommentNotFound is returned when a comment cannot be found.
	ErrCommentNotFound = errors.New("comment not found")

	// ErrEmailTaken is returned when the email uniqueness constraint is violated.
	ErrEmailTaken = errors.New("email is already taken")

	// ErrPhoneTaken is returned when the phone uniqueness constraint is violated.
	ErrPhoneTaken = errors.New("phone is already taken")

	// ErrChannelNameTaken is returned when the channel name uniqueness constraint is violated.
	ErrChannelNameTaken = errors.New("channel name is already taken")

	// ErrDuplicateAccount is returned for an account uniqueness violation
	// that cannot be attributed to a specific field.
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrAlreadySubscribed is returned when the subscription edge already exists.
	ErrAlreadySubscribed = errors.New("already subscribed to channel")

	// ErrNotSubscribed is returned when removing a subscription edge that does not exist.
	ErrNotSubscribed = errors.New("not subscribed to channel")

	// ErrDuplicateVideo is returned when attempting to create a video that already exists.
	ErrDuplicateVideo = errors.New("video already exists")

	// ErrDuplicateComment is returned when attempting to create a comment that already exists.
	ErrDuplicateComment = errors.New("comment already exists")

	// ErrObjectNotFound is returned when a blob store object is absent.
	ErrObjectNotFound = errors.New("object not found")

	// ErrBucketNotFound is returned when the configured bucket does not exist.
	ErrBucketNotFound = errors.New("bucket not found")
)
