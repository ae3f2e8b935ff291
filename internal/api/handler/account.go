package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/viewly/viewly/internal/api/middleware"
	"github.com/viewly/viewly/internal/usecase"
)

// AccountHandler handles profile and subscription endpoints. All routes
// sit behind the session middleware; the caller identity comes from the
// request context, never from the body.
type AccountHandler struct {
	identity      usecase.IdentityService
	subscriptions usecase.SubscriptionService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(identity usecase.IdentityService, subscriptions usecase.SubscriptionService) *AccountHandler {
	return &AccountHandler{identity: identity, subscriptions: subscriptions}
}

// Profile handles GET /v1/accounts/me
func (h *AccountHandler) Profile(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		Error(w, http.StatusUnauthorized, "unauthorized", "Missing session")
		return
	}

	account, err := h.identity.GetAccount(r.Context(), accountID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toAccountResponse(account))
}

// UpdateProfile handles PATCH /v1/accounts/me. The body is multipart
// form data; absent fields keep their stored values.
func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		Error(w, http.StatusUnauthorized, "unauthorized", "Missing session")
		return
	}

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Body must be multipart form data")
		return
	}

	input := usecase.UpdateProfileInput{
		Email:       optionalFormValue(r, "email"),
		Phone:       optionalFormValue(r, "phone"),
		ChannelName: optionalFormValue(r, "channel_name"),
		Password:    optionalFormValue(r, "password"),
	}

	avatar, cleanup, err := formFileContent(r, "avatar")
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_avatar", "Avatar file could not be read")
		return
	}
	defer cleanup()
	input.Avatar = avatar

	account, err := h.identity.UpdateProfile(r.Context(), accountID, input)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toAccountResponse(account))
}

// Delete handles DELETE /v1/accounts/me. Deletion is asynchronous: the
// request enqueues a purge task and returns 202.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		Error(w, http.StatusUnauthorized, "unauthorized", "Missing session")
		return
	}

	if err := h.identity.DeleteAccount(r.Context(), accountID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

// Subscribe handles POST /v1/channels/{id}/subscription
func (h *AccountHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		Error(w, http.StatusUnauthorized, "unauthorized", "Missing session")
		return
	}

	channelID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_channel_id", "Channel ID must be a valid UUID")
		return
	}

	if err := h.subscriptions.Subscribe(r.Context(), accountID, channelID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Unsubscribe handles DELETE /v1/channels/{id}/subscription
func (h *AccountHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		Error(w, http.StatusUnauthorized, "unauthorized", "Missing session")
		return
	}

	channelID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_channel_id", "Channel ID must be a valid UUID")
		return
	}

	if err := h.subscriptions.Unsubscribe(r.Context(), accountID, channelID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Subscriptions handles GET /v1/accounts/me/subscriptions
func (h *AccountHandler) Subscriptions(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		Error(w, http.StatusUnauthorized, "unauthorized", "Missing session")
		return
	}

	channels, err := h.subscriptions.ListChannels(r.Context(), accountID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]AccountResponse, 0, len(channels))
	for _, channel := range channels {
		out = append(out, toAccountResponse(channel))
	}
	JSON(w, http.StatusOK, out)
}

// optionalFormValue returns a pointer to the form value, or nil when
// the field was not submitted at all.
func optionalFormValue(r *http.Request, field string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	values, ok := r.MultipartForm.Value[field]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}
