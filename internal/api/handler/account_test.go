package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/viewly/viewly/internal/api/middleware"
	"github.com/viewly/viewly/internal/domain/model"
	"github.com/viewly/viewly/internal/domain/repository"
	"github.com/viewly/viewly/internal/usecase"
)

// withSession attaches an authenticated account id, mimicking what the
// session middleware does on real requests.
func withSession(req *http.Request, accountID uuid.UUID) *http.Request {
	return req.WithContext(middleware.WithAccountID(req.Context(), accountID))
}

func TestAccountHandler_Profile(t *testing.T) {
	account := testAccount()

	identity := &mockIdentityService{
		getAccountFn: func(ctx context.Context, accountID uuid.UUID) (*model.Account, error) {
			if accountID != account.ID {
				t.Errorf("account id = %v, want %v", accountID, account.ID)
			}
			return account, nil
		},
	}
	h := NewAccountHandler(identity, &mockSubscriptionService{})

	req := withSession(httptest.NewRequest(http.MethodGet, "/v1/accounts/me", nil), account.ID)
	rec := httptest.NewRecorder()

	h.Profile(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var resp AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.ID != account.ID.String() {
		t.Errorf("id = %q, want %q", resp.ID, account.ID)
	}
}

func TestAccountHandler_Profile_NoSession(t *testing.T) {
	h := NewAccountHandler(&mockIdentityService{}, &mockSubscriptionService{})

	req := httptest.NewRequest(http.MethodGet, "/v1/accounts/me", nil)
	rec := httptest.NewRecorder()

	h.Profile(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestAccountHandler_UpdateProfile(t *testing.T) {
	account := testAccount()

	identity := &mockIdentityService{
		updateProfileFn: func(ctx context.Context, accountID uuid.UUID, input usecase.UpdateProfileInput) (*model.Account, error) {
			if input.ChannelName == nil || *input.ChannelName != "Renamed" {
				t.Errorf("channel name = %v, want Renamed", input.ChannelName)
			}
			if input.Email != nil {
				t.Error("email was not submitted, expected nil")
			}
			if input.Avatar == nil {
				t.Error("expected avatar content to be forwarded")
			}
			return account, nil
		},
	}
	h := NewAccountHandler(identity, &mockSubscriptionService{})

	body, contentType := multipartBody(t,
		map[string]string{"channel_name": "Renamed"},
		map[string][]byte{"avatar": []byte("png-bytes")},
	)
	req := withSession(httptest.NewRequest(http.MethodPatch, "/v1/accounts/me", body), account.ID)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.UpdateProfile(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestAccountHandler_Delete(t *testing.T) {
	accountID := uuid.New()
	deleted := false

	identity := &mockIdentityService{
		deleteAccountFn: func(ctx context.Context, id uuid.UUID) error {
			deleted = true
			if id != accountID {
				t.Errorf("account id = %v, want %v", id, accountID)
			}
			return nil
		},
	}
	h := NewAccountHandler(identity, &mockSubscriptionService{})

	req := withSession(httptest.NewRequest(http.MethodDelete, "/v1/accounts/me", nil), accountID)
	rec := httptest.NewRecorder()

	h.Delete(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Errorf("expected status %d, got %d", http.StatusAccepted, rec.Code)
	}
	if !deleted {
		t.Error("expected DeleteAccount to be called")
	}
}

func TestAccountHandler_Subscribe(t *testing.T) {
	subscriberID := uuid.New()
	channelID := uuid.New()

	tests := []struct {
		name           string
		channelID      string
		setupMock      func(m *mockSubscriptionService)
		wantStatusCode int
	}{
		{
			name:      "successful subscribe",
			channelID: channelID.String(),
			setupMock: func(m *mockSubscriptionService) {
				m.subscribeFn = func(ctx context.Context, sub, ch uuid.UUID) error {
					if sub != subscriberID || ch != channelID {
						t.Errorf("edge = %v->%v, want %v->%v", sub, ch, subscriberID, channelID)
					}
					return nil
				}
			},
			wantStatusCode: http.StatusNoContent,
		},
		{
			name:           "invalid channel id",
			channelID:      "not-a-uuid",
			setupMock:      func(m *mockSubscriptionService) {},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:      "self subscribe forbidden",
			channelID: subscriberID.String(),
			setupMock: func(m *mockSubscriptionService) {
				m.subscribeFn = func(ctx context.Context, sub, ch uuid.UUID) error {
					return usecase.ErrForbidden
				}
			},
			wantStatusCode: http.StatusForbidden,
		},
		{
			name:      "already subscribed",
			channelID: channelID.String(),
			setupMock: func(m *mockSubscriptionService) {
				m.subscribeFn = func(ctx context.Context, sub, ch uuid.UUID) error {
					return repository.ErrAlreadySubscribed
				}
			},
			wantStatusCode: http.StatusConflict,
		},
		{
			name:      "channel not found",
			channelID: channelID.String(),
			setupMock: func(m *mockSubscriptionService) {
				m.subscribeFn = func(ctx context.Context, sub, ch uuid.UUID) error {
					return repository.ErrAccountNotFound
				}
			},
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subs := &mockSubscriptionService{}
			tt.setupMock(subs)
			h := NewAccountHandler(&mockIdentityService{}, subs)

			r := chi.NewRouter()
			r.Post("/v1/channels/{id}/subscription", h.Subscribe)

			req := withSession(httptest.NewRequest(http.MethodPost, "/v1/channels/"+tt.channelID+"/subscription", nil), subscriberID)
			rec := httptest.NewRecorder()

			r.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("expected status %d, got %d", tt.wantStatusCode, rec.Code)
			}
		})
	}
}

func TestAccountHandler_Unsubscribe(t *testing.T) {
	subscriberID := uuid.New()
	channelID := uuid.New()

	tests := []struct {
		name           string
		setupMock      func(m *mockSubscriptionService)
		wantStatusCode int
	}{
		{
			name: "successful unsubscribe",
			setupMock: func(m *mockSubscriptionService) {
				m.unsubscribeFn = func(ctx context.Context, sub, ch uuid.UUID) error {
					return nil
				}
			},
			wantStatusCode: http.StatusNoContent,
		},
		{
			name: "not subscribed",
			setupMock: func(m *mockSubscriptionService) {
				m.unsubscribeFn = func(ctx context.Context, sub, ch uuid.UUID) error {
					return repository.ErrNotSubscribed
				}
			},
			wantStatusCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subs := &mockSubscriptionService{}
			tt.setupMock(subs)
			h := NewAccountHandler(&mockIdentityService{}, subs)

			r := chi.NewRouter()
			r.Delete("/v1/channels/{id}/subscription", h.Unsubscribe)

			req := withSession(httptest.NewRequest(http.MethodDelete, "/v1/channels/"+channelID.String()+"/subscription", nil), subscriberID)
			rec := httptest.NewRecorder()

			r.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("expected status %d, got %d", tt.wantStatusCode, rec.Code)
			}
		})
	}
}

func TestAccountHandler_Subscriptions(t *testing.T) {
	subscriberID := uuid.New()
	channels := []*model.Account{testAccount(), testAccount()}

	subs := &mockSubscriptionService{
		listChannelsFn: func(ctx context.Context, id uuid.UUID) ([]*model.Account, error) {
			return channels, nil
		},
	}
	h := NewAccountHandler(&mockIdentityService{}, subs)

	req := withSession(httptest.NewRequest(http.MethodGet, "/v1/accounts/me/subscriptions", nil), subscriberID)
	rec := httptest.NewRecorder()

	h.Subscriptions(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var resp []AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(resp) != 2 {
		t.Errorf("expected 2 channels, got %d", len(resp))
	}
}
