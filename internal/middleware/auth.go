package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Varun5711/wecare/internal/logger"
	"github.com/Varun5711/wecare/internal/models"
)

type contextKey string

const UserIDKey contextKey = "user_id"

// TokenValidator resolves a bearer token to a user id.
type TokenValidator interface {
	ValidateToken(token string) (string, error)
}

type AuthMiddleware struct {
	validator TokenValidator
	log       *logger.Logger
}

func NewAuthMiddleware(validator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		validator: validator,
		log:       logger.New("auth-middleware"),
	}
}

func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		userID, err := m.validator.ValidateToken(token)
		if err != nil {
			m.log.Warn("Invalid token: %v", err)
			writeError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(UserIDKey).(string); ok {
		return userID
	}
	return ""
}

// WithUserID is used by tests that bypass RequireAuth.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(models.ErrorResponse{Message: message})
}
