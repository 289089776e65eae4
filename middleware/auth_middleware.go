package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/keerthiramGR/college-event/repositories"
	"github.com/keerthiramGR/college-event/sessions"
	"github.com/keerthiramGR/college-event/utils"
	"go.uber.org/zap"
)

// SessionDecoder defines the interface for decoding session tokens
type SessionDecoder interface {
	// Decode verifies a session token and returns its claims
	Decode(token string) (*sessions.Claims, error)
}

// AuthMiddleware authenticates requests and resolves the live account behind
// each token. Resolving on every request means role changes and deletions
// take effect immediately instead of waiting for the token to expire.
type AuthMiddleware struct {
	decoder SessionDecoder
	users   repositories.UserRepository
	logger  *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(decoder SessionDecoder, users repositories.UserRepository, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		decoder: decoder,
		users:   users,
		logger:  logger,
	}
}

// RequireAuth is a middleware that requires a valid session token and a
// matching live account. The resolved user is placed on the request context.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := GetRequestIDFromContext(ctx)

		token := extractBearerToken(r)
		if token == "" {
			m.logger.Warn("missing token",
				zap.String("request_id", requestID))
			_ = utils.WriteUnauthorized(w, "Missing or invalid authorization")
			return
		}

		claims, err := m.decoder.Decode(token)
		if err != nil {
			m.logger.Warn("token validation failed",
				zap.String("request_id", requestID),
				zap.Error(err))
			_ = utils.WriteUnauthorized(w, "Invalid or expired token")
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			m.logger.Warn("invalid subject in token",
				zap.String("request_id", requestID))
			_ = utils.WriteUnauthorized(w, "Invalid or expired token")
			return
		}

		user, err := m.users.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				m.logger.Warn("token references unknown user",
					zap.String("request_id", requestID),
					zap.String("user_id", userID.String()))
				_ = utils.WriteUnauthorized(w, "Invalid or expired token")
				return
			}
			m.logger.Error("failed to resolve user",
				zap.String("request_id", requestID),
				zap.Error(err))
			_ = utils.WriteInternalServerError(w, "")
			return
		}

		ctx = WithUser(ctx, user)

		m.logger.Debug("authentication successful",
			zap.String("request_id", requestID),
			zap.String("user_id", user.ID.String()),
			zap.String("email", user.Email))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin is a middleware that requires the authenticated user to hold
// the admin role. Must run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := GetRequestIDFromContext(ctx)

		user := GetUserFromContext(ctx)
		if user == nil {
			m.logger.Error("user not found in context",
				zap.String("request_id", requestID))
			_ = utils.WriteUnauthorized(w, "Authentication required")
			return
		}

		if !user.IsAdmin() {
			m.logger.Warn("admin access denied",
				zap.String("request_id", requestID),
				zap.String("user_id", user.ID.String()),
				zap.String("role", string(user.Role)))
			_ = utils.WriteForbidden(w, "Admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// extractBearerToken extracts the Bearer token from the Authorization header
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	// Check if it starts with "Bearer "
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
