package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/viewly/viewly/internal/auth"
)

const sessionCookieName = "jwt"

type accountCtxKey int

const accountIDKey accountCtxKey = iota

// TokenValidator validates a session token and returns its claims.
type TokenValidator interface {
	Validate(token string) (*auth.SessionClaims, error)
}

var _ TokenValidator = (*auth.TokenManager)(nil)

// Session authenticates requests with a session token carried either in
// an Authorization: Bearer header or a jwt cookie. The header wins when
// both are present. Requests without a valid token are rejected with
// 401 before reaching the handler.
func Session(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				unauthorized(w, "missing session token")
				return
			}

			claims, err := tokens.Validate(token)
			if err != nil {
				unauthorized(w, "invalid or expired session token")
				return
			}

			accountID, err := uuid.Parse(claims.AccountID)
			if err != nil {
				unauthorized(w, "invalid or expired session token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAccountID(r.Context(), accountID)))
		})
	}
}

// WithAccountID returns a context carrying the authenticated account id.
func WithAccountID(ctx context.Context, accountID uuid.UUID) context.Context {
	return context.WithValue(ctx, accountIDKey, accountID)
}

// GetAccountID retrieves the authenticated account id from context.
// The boolean is false on routes not behind Session.
func GetAccountID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(accountIDKey).(uuid.UUID)
	return id, ok
}

func extractToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return token
		}
		return ""
	}
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func unauthorized(w http.ResponseWriter, message string) {
	http.Error(w, message, http.StatusUnauthorized)
}
