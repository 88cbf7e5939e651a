package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"umbrella-backend-go/internal/core"
	"umbrella-backend-go/internal/middleware"
)

// UmbrellaHandler serves the fleet and lending endpoints.
type UmbrellaHandler struct {
	umbrellaService core.UmbrellaService
	logger          *zap.Logger
}

// NewUmbrellaHandler creates a new UmbrellaHandler instance.
func NewUmbrellaHandler(us core.UmbrellaService, logger *zap.Logger) *UmbrellaHandler {
	return &UmbrellaHandler{umbrellaService: us, logger: logger}
}

// mapUmbrellaErrorToStatus translates service errors into HTTP statuses.
// Precondition failures on a lend are conflicts, not bad requests: the
// request was well-formed, the umbrella state disagreed.
func mapUmbrellaErrorToStatus(err error) (int, string) {
	switch {
	case errors.Is(err, core.ErrInvalidUmbrellaID):
		return http.StatusBadRequest, "Umbrella id must be between 1 and 21"
	case errors.Is(err, core.ErrUmbrellaNotFound):
		return http.StatusNotFound, "Umbrella not found"
	case errors.Is(err, core.ErrUmbrellaNotAvailable):
		return http.StatusConflict, "Umbrella is not available"
	case errors.Is(err, core.ErrUmbrellaNotBorrowed):
		return http.StatusConflict, "Umbrella is not borrowed"
	case errors.Is(err, core.ErrNotBorrower):
		return http.StatusForbidden, "Umbrella is borrowed by another user"
	case errors.Is(err, core.ErrForbidden):
		return http.StatusForbidden, "access denied"
	default:
		return http.StatusInternalServerError, "An unexpected error occurred"
	}
}

func umbrellaIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Umbrella id must be a number"})
		return 0, false
	}
	return id, true
}

// ListUmbrellas handles GET /umbrellas.
func (h *UmbrellaHandler) ListUmbrellas(c *gin.Context) {
	umbrellas, err := h.umbrellaService.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list umbrellas", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list umbrellas"})
		return
	}
	c.JSON(http.StatusOK, umbrellas)
}

// GetUmbrella handles GET /umbrellas/:id.
func (h *UmbrellaHandler) GetUmbrella(c *gin.Context) {
	id, ok := umbrellaIDParam(c)
	if !ok {
		return
	}
	umbrella, err := h.umbrellaService.Get(c.Request.Context(), id)
	if err != nil {
		status, msg := mapUmbrellaErrorToStatus(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("Failed to get umbrella", zap.Int("id", id), zap.Error(err))
		}
		c.JSON(status, ErrorResponse{Error: msg})
		return
	}
	c.JSON(http.StatusOK, umbrella)
}

// ListZones handles GET /zones.
func (h *UmbrellaHandler) ListZones(c *gin.Context) {
	resp := ZonesResponse{}
	for _, zone := range core.Zones() {
		resp.Zones = append(resp.Zones, ZoneInfo{
			Zone:        string(zone),
			UmbrellaIDs: core.UmbrellasForZone(zone),
		})
	}
	c.JSON(http.StatusOK, resp)
}

// Borrow handles POST /umbrellas/:id/borrow.
func (h *UmbrellaHandler) Borrow(c *gin.Context) {
	id, ok := umbrellaIDParam(c)
	if !ok {
		return
	}
	actor := middleware.ProfileFromContext(c)
	umbrella, err := h.umbrellaService.Borrow(c.Request.Context(), actor, id)
	if err != nil {
		status, msg := mapUmbrellaErrorToStatus(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("Failed to borrow umbrella", zap.Int("id", id), zap.Error(err))
		}
		c.JSON(status, ErrorResponse{Error: msg})
		return
	}
	c.JSON(http.StatusOK, umbrella)
}

// Return handles POST /umbrellas/:id/return.
func (h *UmbrellaHandler) Return(c *gin.Context) {
	id, ok := umbrellaIDParam(c)
	if !ok {
		return
	}
	actor := middleware.ProfileFromContext(c)
	umbrella, err := h.umbrellaService.Return(c.Request.Context(), actor, id)
	if err != nil {
		status, msg := mapUmbrellaErrorToStatus(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("Failed to return umbrella", zap.Int("id", id), zap.Error(err))
		}
		c.JSON(status, ErrorResponse{Error: msg})
		return
	}
	c.JSON(http.StatusOK, umbrella)
}

// ForceReturnAll handles POST /admin/umbrellas/force-return.
func (h *UmbrellaHandler) ForceReturnAll(c *gin.Context) {
	actor := middleware.ProfileFromContext(c)
	returned, err := h.umbrellaService.ForceReturnAll(c.Request.Context(), actor)
	if err != nil {
		status, msg := mapUmbrellaErrorToStatus(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("Failed to force return umbrellas", zap.Error(err))
		}
		c.JSON(status, ErrorResponse{Error: msg})
		return
	}
	c.JSON(http.StatusOK, ForceReturnResponse{Message: "All borrowed umbrellas returned", Returned: returned})
}

// ResetSystem handles POST /admin/umbrellas/reset.
func (h *UmbrellaHandler) ResetSystem(c *gin.Context) {
	actor := middleware.ProfileFromContext(c)
	if err := h.umbrellaService.ResetSystem(c.Request.Context(), actor); err != nil {
		status, msg := mapUmbrellaErrorToStatus(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("Failed to reset system", zap.Error(err))
		}
		c.JSON(status, ErrorResponse{Error: msg})
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "System reset"})
}

// Seed handles POST /admin/umbrellas/seed.
func (h *UmbrellaHandler) Seed(c *gin.Context) {
	created, err := h.umbrellaService.Seed(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to seed umbrellas", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to seed umbrellas"})
		return
	}
	c.JSON(http.StatusOK, SeedResponse{Message: "Seed complete", Created: created})
}
