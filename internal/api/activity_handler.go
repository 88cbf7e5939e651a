package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"umbrella-backend-go/internal/core"
	"umbrella-backend-go/internal/middleware"
)

// ActivityHandler serves the feed and analytics endpoints.
type ActivityHandler struct {
	activityService core.ActivityService
	statsService    core.StatsService
	logger          *zap.Logger
}

// NewActivityHandler creates a new ActivityHandler instance.
func NewActivityHandler(as core.ActivityService, ss core.StatsService, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{activityService: as, statsService: ss, logger: logger}
}

// ListActivities handles GET /activities?limit=n. The service clamps the
// limit to the configured feed cap.
func (h *ActivityHandler) ListActivities(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be a number"})
			return
		}
		limit = n
	}

	activities, err := h.activityService.Recent(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to list activities", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list activities"})
		return
	}
	c.JSON(http.StatusOK, activities)
}

// ClearActivities handles DELETE /admin/activities.
func (h *ActivityHandler) ClearActivities(c *gin.Context) {
	actor := middleware.ProfileFromContext(c)
	if err := h.activityService.ClearAll(c.Request.Context(), actor); err != nil {
		if errors.Is(err, core.ErrForbidden) {
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "access denied"})
			return
		}
		h.logger.Error("Failed to clear activities", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to clear activities"})
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Activity log cleared"})
}

// GetStats handles GET /stats.
func (h *ActivityHandler) GetStats(c *gin.Context) {
	report, err := h.statsService.Report(c.Request.Context(), time.Now())
	if err != nil {
		h.logger.Error("Failed to compute usage report", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute usage report"})
		return
	}
	c.JSON(http.StatusOK, report)
}
