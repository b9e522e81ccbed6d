package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/and161185/paygate/internal/auth"
)

func TestAuthMiddleware(t *testing.T) {
	tm := auth.NewTokenManager("test-secret")
	adminToken, _ := tm.GenerateToken("ops", "admin")
	viewerToken, _ := tm.GenerateToken("viewer", "viewer")

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
	}{
		{
			name:           "no header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid token",
			authHeader:     "Bearer invalidtoken",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong role",
			authHeader:     "Bearer " + viewerToken,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "ok",
			authHeader:     "Bearer " + adminToken,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			rr := httptest.NewRecorder()
			mw := AuthMiddleware(tm)
			handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if sub, ok := r.Context().Value(SubjectContextKey).(string); !ok || sub == "" {
					t.Error("missing subject in context")
				}
				w.WriteHeader(http.StatusOK)
			}))

			handler.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("expected %d, got %d", tt.expectedStatus, rr.Code)
			}
		})
	}
}
