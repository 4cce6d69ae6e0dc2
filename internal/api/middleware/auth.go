package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/inkwell-app/inkwell/internal/api/response"
	"github.com/inkwell-app/inkwell/internal/repository/redis"
	"github.com/inkwell-app/inkwell/internal/security"
)

type contextKey string

const (
	UserIDKey      contextKey = "userID"
	UserEmailKey   contextKey = "userEmail"
	WorkspaceIDKey contextKey = "workspaceID"
)

// AuthMiddleware handles JWT authentication. Everything past this point
// works with the resolved actor id; no handler reads ambient session state.
type AuthMiddleware struct {
	jwtManager *security.JWTManager
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(jwtManager *security.JWTManager) *AuthMiddleware {
	return &AuthMiddleware{jwtManager: jwtManager}
}

// Authenticate validates the JWT token and resolves the actor identity
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			response.Unauthorized(w, "missing or malformed authorization header")
			return
		}

		claims, err := m.jwtManager.ValidateAccessToken(token)
		if err != nil {
			response.Unauthorized(w, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, UserEmailKey, claims.Email)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		// WebSocket clients cannot set headers from browsers; accept the
		// token as a query parameter on upgrade requests only.
		if websocket := r.Header.Get("Upgrade"); strings.EqualFold(websocket, "websocket") {
			return r.URL.Query().Get("token")
		}
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// GetUserID gets the resolved actor id from context
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// GetUserEmail gets the user email from context
func GetUserEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailKey).(string)
	return email, ok
}

// GetWorkspaceID gets the workspace ID from context
func GetWorkspaceID(ctx context.Context) (uuid.UUID, bool) {
	workspaceID, ok := ctx.Value(WorkspaceIDKey).(uuid.UUID)
	return workspaceID, ok
}

// WorkspaceContext extracts the workspace ID from the URL and adds it to
// context. Membership is NOT checked here; every service operation runs its
// own authorization before mutating.
func WorkspaceContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		workspaceIDStr := chi.URLParam(r, "workspaceID")
		if workspaceIDStr == "" {
			response.BadRequest(w, "missing workspace ID")
			return
		}

		workspaceID, err := uuid.Parse(workspaceIDStr)
		if err != nil {
			response.BadRequest(w, "invalid workspace ID")
			return
		}

		ctx := context.WithValue(r.Context(), WorkspaceIDKey, workspaceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RateLimitMiddleware handles per-user rate limiting
type RateLimitMiddleware struct {
	rateLimiter *redis.RateLimiter
}

// NewRateLimitMiddleware creates a new rate limit middleware
func NewRateLimitMiddleware(rateLimiter *redis.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{rateLimiter: rateLimiter}
}

// Limit applies rate limiting based on user ID
func (m *RateLimitMiddleware) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserID(r.Context())
		if !ok {
			response.Unauthorized(w, "unauthorized")
			return
		}

		allowed, remaining, resetTime, err := m.rateLimiter.Allow(r.Context(), userID.String())
		if err != nil {
			// A rate limiter outage must not take requests down with it.
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", resetTime.UTC().Format(time.RFC3339))

		if !allowed {
			response.Error(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}
