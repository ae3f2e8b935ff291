package usecase

import "errors"

var (
	// ErrUnauthorized is returned when credential verification fails.
	ErrUnauthorized = errors.New("invalid credentials")

	// ErrForbidden is returned when the caller is not permitted to
	// perform the operation (non-owner mutation, self-subscribe).
	ErrForbidden = errors.New("operation not permitted")
)
