package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"umbrella-backend-go/internal/core"
	"umbrella-backend-go/internal/models"
)

// AuthHandler serves the unauthenticated account endpoints.
type AuthHandler struct {
	userService core.UserService
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(us core.UserService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{userService: us, logger: logger}
}

// Register handles POST /auth/register. It creates the auth account and
// the profile record; new accounts always start with the user role.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	profile, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, core.ErrEmailInUse) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Email is already registered"})
			return
		}
		h.logger.Error("Failed to register user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to register user"})
		return
	}
	c.JSON(http.StatusCreated, profile.Sanitized())
}

// PasswordReset handles POST /auth/password-reset. It returns the reset
// link for the account email.
func (h *AuthHandler) PasswordReset(c *gin.Context) {
	var req models.PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	link, err := h.userService.SendPasswordReset(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "No account exists for this email"})
			return
		}
		h.logger.Error("Failed to generate password reset link", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate password reset link"})
		return
	}
	c.JSON(http.StatusOK, PasswordResetResponse{ResetLink: link})
}
