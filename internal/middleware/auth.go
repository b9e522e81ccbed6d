package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/and161185/paygate/internal/auth"
)

type contextKey string

const SubjectContextKey contextKey = "subject"

const adminRole = "admin"

// AuthMiddleware guards admin endpoints. The token carries everything we
// need; there is no account lookup behind it.
func AuthMiddleware(tm *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			sub, role, err := tm.ParseToken(tokenStr)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			if role != adminRole {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), SubjectContextKey, sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
