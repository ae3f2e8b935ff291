package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/viewly/viewly/internal/assets"
	"github.com/viewly/viewly/internal/domain/model"
	"github.com/viewly/viewly/internal/usecase"
)

const (
	sessionCookieName = "jwt"

	// maxFormMemory bounds the in-memory portion of multipart parsing;
	// larger payloads spill to temporary files.
	maxFormMemory = 32 << 20
)

// AccountResponse is the public representation of an account. The
// credential hash never appears here.
type AccountResponse struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	ChannelName     string `json:"channel_name"`
	AvatarURL       string `json:"avatar_url,omitempty"`
	SubscriberCount int64  `json:"subscriber_count"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token   string          `json:"token"`
	Account AccountResponse `json:"account"`
}

// AuthHandler handles registration and session endpoints.
type AuthHandler struct {
	svc        usecase.IdentityService
	sessionTTL time.Duration
}

// NewAuthHandler creates a new AuthHandler. sessionTTL controls the
// lifetime of the session cookie set on login.
func NewAuthHandler(svc usecase.IdentityService, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{svc: svc, sessionTTL: sessionTTL}
}

// Register handles POST /v1/auth/register. The body is multipart form
// data so the optional avatar image can ride along with the fields.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Body must be multipart form data")
		return
	}

	input := usecase.RegisterInput{
		Email:       r.FormValue("email"),
		Phone:       r.FormValue("phone"),
		ChannelName: r.FormValue("channel_name"),
		Password:    r.FormValue("password"),
	}

	avatar, cleanup, err := formFileContent(r, "avatar")
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_avatar", "Avatar file could not be read")
		return
	}
	defer cleanup()
	input.Avatar = avatar

	account, err := h.svc.Register(r.Context(), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	JSON(w, http.StatusCreated, toAccountResponse(account))
}

// Login handles POST /v1/auth/login. On success the session token is
// returned in the body and mirrored into a cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	if req.Email == "" || req.Password == "" {
		Error(w, http.StatusBadRequest, "invalid_request", "Email and password are required")
		return
	}

	account, token, err := h.svc.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.sessionTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	JSON(w, http.StatusOK, LoginResponse{
		Token:   token,
		Account: toAccountResponse(account),
	})
}

// Logout handles POST /v1/auth/logout. Sessions are stateless, so
// logout only clears the cookie; the token stays valid until expiry.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	w.WriteHeader(http.StatusNoContent)
}

// formFileContent reads an optional multipart file field. A missing
// field returns (nil, noop, nil); the cleanup closes the file.
func formFileContent(r *http.Request, field string) (*assets.Content, func(), error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, func() {}, err
	}

	content := &assets.Content{
		Reader:      file,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
	}
	return content, func() { file.Close() }, nil
}

func toAccountResponse(a *model.Account) AccountResponse {
	return AccountResponse{
		ID:              a.ID.String(),
		Email:           a.Email,
		Phone:           a.Phone,
		ChannelName:     a.ChannelName,
		AvatarURL:       a.Avatar.URL,
		SubscriberCount: a.SubscriberCount,
		CreatedAt:       a.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:       a.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
