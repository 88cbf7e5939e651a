package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"umbrella-backend-go/internal/core"
	"umbrella-backend-go/internal/db"
	"umbrella-backend-go/internal/models"
)

// NotificationHandler serves the web-push subscription endpoints.
type NotificationHandler struct {
	subscriptionRepo db.PushSubscriptionRepository
	vapidPublicKey   string
	logger           *zap.Logger
}

// NewNotificationHandler creates a new NotificationHandler instance.
func NewNotificationHandler(sr db.PushSubscriptionRepository, vapidPublicKey string, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{subscriptionRepo: sr, vapidPublicKey: vapidPublicKey, logger: logger}
}

// GetVAPIDKey handles GET /notifications/vapid-key.
func (h *NotificationHandler) GetVAPIDKey(c *gin.Context) {
	if h.vapidPublicKey == "" {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Push notifications are not configured"})
		return
	}
	c.JSON(http.StatusOK, VAPIDKeyResponse{PublicKey: h.vapidPublicKey})
}

// PutSubscription handles PUT /notifications/subscription. Saving the
// same endpoint again replaces the previous registration, so a browser
// switching zones just re-subscribes.
func (h *NotificationHandler) PutSubscription(c *gin.Context) {
	var req models.PutSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}
	if core.UmbrellasForZone(req.Zone) == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unknown zone"})
		return
	}

	sub := &models.PushSubscription{
		Endpoint:  req.Endpoint,
		P256DH:    req.P256DH,
		Auth:      req.Auth,
		Zone:      req.Zone,
		CreatedAt: time.Now().UnixMilli(),
	}
	if err := h.subscriptionRepo.Save(c.Request.Context(), sub); err != nil {
		h.logger.Error("Failed to save push subscription", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save subscription"})
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Subscription saved"})
}

// DeleteSubscription handles DELETE /notifications/subscription.
func (h *NotificationHandler) DeleteSubscription(c *gin.Context) {
	var req models.DeleteSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}
	if err := h.subscriptionRepo.DeleteByEndpoint(c.Request.Context(), req.Endpoint); err != nil {
		h.logger.Error("Failed to delete push subscription", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete subscription"})
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Subscription deleted"})
}
