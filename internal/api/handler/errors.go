package handler

import (
	"errors"
	"net/http"

	"github.com/viewly/viewly/internal/assets"
	"github.com/viewly/viewly/internal/domain/model"
	"github.com/viewly/viewly/internal/domain/repository"
	"github.com/viewly/viewly/internal/usecase"
)

// writeServiceError maps a service-layer error onto the HTTP taxonomy:
// validation 400, unauthorized 401, forbidden 403, not found 404,
// conflict 409, storage upstream 502, everything else 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case isValidationError(err):
		Error(w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, usecase.ErrUnauthorized):
		Error(w, http.StatusUnauthorized, "unauthorized", "Invalid credentials")
	case errors.Is(err, usecase.ErrForbidden):
		Error(w, http.StatusForbidden, "forbidden", "Operation not permitted")
	case errors.Is(err, repository.ErrAccountNotFound):
		Error(w, http.StatusNotFound, "account_not_found", "Account not found")
	case errors.Is(err, repository.ErrVideoNotFound):
		Error(w, http.StatusNotFound, "video_not_found", "Video not found")
	case errors.Is(err, repository.ErrCommentNotFound):
		Error(w, http.StatusNotFound, "comment_not_found", "Comment not found")
	case errors.Is(err, repository.ErrEmailTaken):
		Error(w, http.StatusConflict, "email_taken", "Email is already taken")
	case errors.Is(err, repository.ErrPhoneTaken):
		Error(w, http.StatusConflict, "phone_taken", "Phone is already taken")
	case errors.Is(err, repository.ErrChannelNameTaken):
		Error(w, http.StatusConflict, "channel_name_taken", "Channel name is already taken")
	case errors.Is(err, repository.ErrDuplicateAccount):
		Error(w, http.StatusConflict, "account_exists", "Account already exists")
	case errors.Is(err, repository.ErrAlreadySubscribed):
		Error(w, http.StatusConflict, "already_subscribed", "Already subscribed to this channel")
	case errors.Is(err, repository.ErrNotSubscribed):
		Error(w, http.StatusConflict, "not_subscribed", "Not subscribed to this channel")
	case errors.Is(err, repository.ErrDuplicateVideo):
		Error(w, http.StatusConflict, "video_exists", "Video already exists")
	case errors.Is(err, repository.ErrDuplicateComment):
		Error(w, http.StatusConflict, "comment_exists", "Comment already exists")
	case errors.Is(err, assets.ErrUpstream):
		Error(w, http.StatusBadGateway, "storage_unavailable", "Media storage is temporarily unavailable")
	default:
		Error(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}

var validationErrors = []error{
	model.ErrEmptyEmail,
	model.ErrInvalidEmail,
	model.ErrEmptyPhone,
	model.ErrEmptyChannelName,
	model.ErrChannelNameTooLong,
	model.ErrPasswordTooShort,
	model.ErrInvalidOwnerID,
	model.ErrEmptyTitle,
	model.ErrTitleTooLong,
	model.ErrEmptyDescription,
	model.ErrEmptyCategory,
	model.ErrInvalidVideoID,
	model.ErrInvalidAuthorID,
	model.ErrEmptyCommentBody,
	model.ErrCommentBodyTooLong,
	usecase.ErrMissingMedia,
	usecase.ErrMissingThumbnail,
}

func isValidationError(err error) bool {
	for _, sentinel := range validationErrors {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
