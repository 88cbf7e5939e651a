package middleware

import (
	"errors"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"umbrella-backend-go/internal/db"
	"umbrella-backend-go/internal/models"
)

// ErrorResponse mirrors the API error body. Defined locally to avoid an
// import cycle with internal/api.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Context keys set by VerifyToken for downstream handlers.
const (
	ContextUserID  = "userID"
	ContextProfile = "userProfile"
)

// AuthMiddleware verifies Firebase ID tokens and attaches the caller's
// profile to the request context.
type AuthMiddleware struct {
	firebaseAuthClient *auth.Client
	userRepo           db.UserRepository
	logger             *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware instance. Panics on nil
// dependencies since authenticated routes cannot work without them.
func NewAuthMiddleware(fbAuthClient *auth.Client, userRepo db.UserRepository, logger *zap.Logger) *AuthMiddleware {
	if fbAuthClient == nil {
		panic("Firebase Auth client is not initialized for AuthMiddleware")
	}
	if userRepo == nil {
		panic("user repository is not initialized for AuthMiddleware")
	}
	return &AuthMiddleware{firebaseAuthClient: fbAuthClient, userRepo: userRepo, logger: logger}
}

// VerifyToken checks the Bearer token in the Authorization header, loads
// the caller's profile record and stores both UID and profile in the Gin
// context. Requests without a stored profile are rejected: an auth
// account alone grants nothing.
func (m *AuthMiddleware) VerifyToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Authorization header is required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Authorization header format must be 'Bearer {token}'"})
			return
		}

		token, err := m.firebaseAuthClient.VerifyIDToken(c.Request.Context(), parts[1])
		if err != nil {
			m.logger.Warn("Failed to verify ID token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid or expired authentication token"})
			return
		}

		profile, err := m.userRepo.GetByUID(c.Request.Context(), token.UID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: "No profile exists for this account"})
				return
			}
			m.logger.Error("Failed to load profile for authenticated user",
				zap.String("uid", token.UID), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load user profile"})
			return
		}

		c.Set(ContextUserID, token.UID)
		c.Set(ContextProfile, profile)
		c.Next()
	}
}

// RequireRole gates a route group behind a minimum role. Must run after
// VerifyToken.
func RequireRole(min models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile := ProfileFromContext(c)
		if profile == nil || !profile.Role.AtLeast(min) {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: "access denied"})
			return
		}
		c.Next()
	}
}

// ProfileFromContext returns the profile set by VerifyToken, or nil.
func ProfileFromContext(c *gin.Context) *models.UserProfile {
	v, ok := c.Get(ContextProfile)
	if !ok {
		return nil
	}
	profile, ok := v.(*models.UserProfile)
	if !ok {
		return nil
	}
	return profile
}
