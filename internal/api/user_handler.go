package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"umbrella-backend-go/internal/core"
	"umbrella-backend-go/internal/middleware"
	"umbrella-backend-go/internal/models"
)

// UserHandler serves the profile and user-administration endpoints.
type UserHandler struct {
	userService core.UserService
	logger      *zap.Logger
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(us core.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{userService: us, logger: logger}
}

// mapUserErrorToStatus translates service errors into HTTP statuses.
func mapUserErrorToStatus(err error) (int, string) {
	switch {
	case errors.Is(err, core.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, core.ErrForbidden):
		return http.StatusForbidden, "access denied"
	case errors.Is(err, core.ErrInvalidRole):
		return http.StatusBadRequest, "Invalid role"
	default:
		return http.StatusInternalServerError, "An unexpected error occurred"
	}
}

// GetMe handles GET /users/me.
func (h *UserHandler) GetMe(c *gin.Context) {
	profile := middleware.ProfileFromContext(c)
	if profile == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Not authenticated"})
		return
	}
	c.JSON(http.StatusOK, profile.Sanitized())
}

// UpdateMe handles PUT /users/me. Users may edit their own contact
// fields only.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	profile := middleware.ProfileFromContext(c)
	if profile == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Not authenticated"})
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	updated, err := h.userService.UpdateProfile(c.Request.Context(), profile.UID, &req)
	if err != nil {
		status, msg := mapUserErrorToStatus(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("Failed to update profile", zap.String("uid", profile.UID), zap.Error(err))
		}
		c.JSON(status, ErrorResponse{Error: msg})
		return
	}
	c.JSON(http.StatusOK, updated.Sanitized())
}

// ListUsers handles GET /admin/users.
func (h *UserHandler) ListUsers(c *gin.Context) {
	actor := middleware.ProfileFromContext(c)
	users, err := h.userService.List(c.Request.Context(), actor)
	if err != nil {
		status, msg := mapUserErrorToStatus(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("Failed to list users", zap.Error(err))
		}
		c.JSON(status, ErrorResponse{Error: msg})
		return
	}

	sanitized := make([]*models.UserProfile, 0, len(users))
	for _, u := range users {
		sanitized = append(sanitized, u.Sanitized())
	}
	c.JSON(http.StatusOK, sanitized)
}

// UpdateUser handles PUT /admin/users/:uid. Role changes inside the body
// require the owner role; the service enforces that.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	actor := middleware.ProfileFromContext(c)
	uid := c.Param("uid")

	var req models.AdminUserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	updated, err := h.userService.AdminUpdate(c.Request.Context(), actor, uid, &req)
	if err != nil {
		status, msg := mapUserErrorToStatus(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("Failed to update user", zap.String("uid", uid), zap.Error(err))
		}
		c.JSON(status, ErrorResponse{Error: msg})
		return
	}
	c.JSON(http.StatusOK, updated.Sanitized())
}

// DeleteUser handles DELETE /admin/users/:uid. Owner only.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	actor := middleware.ProfileFromContext(c)
	uid := c.Param("uid")

	if err := h.userService.Delete(c.Request.Context(), actor, uid); err != nil {
		status, msg := mapUserErrorToStatus(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("Failed to delete user", zap.String("uid", uid), zap.Error(err))
		}
		c.JSON(status, ErrorResponse{Error: msg})
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "User deleted"})
}

// IssueTemporaryPassword handles POST /admin/users/:uid/temp-password.
// Owner only; the password appears in this response and nowhere else.
func (h *UserHandler) IssueTemporaryPassword(c *gin.Context) {
	actor := middleware.ProfileFromContext(c)
	uid := c.Param("uid")

	password, err := h.userService.IssueTemporaryPassword(c.Request.Context(), actor, uid)
	if err != nil {
		status, msg := mapUserErrorToStatus(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("Failed to issue temporary password", zap.String("uid", uid), zap.Error(err))
		}
		c.JSON(status, ErrorResponse{Error: msg})
		return
	}
	c.JSON(http.StatusOK, TemporaryPasswordResponse{Password: password, ExpiresIn: "24h"})
}
