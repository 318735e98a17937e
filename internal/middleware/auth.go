package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/yusufkecer/fittrack-backend/internal/domain"
	"github.com/yusufkecer/fittrack-backend/internal/service"
)

type contextKey string

const UserIDKey contextKey = "user_id"

type TokenParser interface {
	Parse(token string) (*service.Claims, error)
}

// AccountChecker reports whether the owner of a token may still use it.
type AccountChecker interface {
	IsActive(ctx context.Context, userID int64) (bool, error)
}

// UserIDFromContext returns the authenticated user id set by AuthRequired.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(UserIDKey).(int64)
	return id, ok && id > 0
}

// WithUserID stores an authenticated user id on ctx.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// AuthRequired rejects requests without a valid bearer access token. When
// accounts is set, tokens of deactivated accounts are rejected too.
func AuthRequired(tokens TokenParser, accounts AccountChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			if header == "" {
				writeError(w, http.StatusUnauthorized, domain.CodeUnauthorized, "missing authorization header")
				return
			}

			tokenStr := strings.TrimPrefix(header, "Bearer ")
			if tokenStr == header || tokenStr == "" {
				writeError(w, http.StatusUnauthorized, domain.CodeUnauthorized, "invalid authorization format")
				return
			}

			claims, err := tokens.Parse(tokenStr)
			if err != nil {
				writeError(w, http.StatusUnauthorized, domain.CodeUnauthorized, "invalid or expired token")
				return
			}

			if accounts != nil {
				active, err := accounts.IsActive(r.Context(), claims.UserID)
				if err != nil {
					writeError(w, http.StatusInternalServerError, domain.CodeInternal, "internal server error")
					return
				}
				if !active {
					writeError(w, http.StatusUnauthorized, domain.CodeUnauthorized, "account is deactivated")
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), claims.UserID)))
		})
	}
}
