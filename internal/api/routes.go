package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"umbrella-backend-go/internal/config"
	"umbrella-backend-go/internal/middleware"
	"umbrella-backend-go/internal/models"
)

// Handlers bundles the handler instances wired in main.
type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Umbrella     *UmbrellaHandler
	Activity     *ActivityHandler
	Notification *NotificationHandler
}

// SetupRoutes registers all routes on the router. All dependencies are
// passed in explicitly; nothing is resolved from package state.
func SetupRoutes(router *gin.Engine, appConfig *config.Config, h *Handlers, authMW *middleware.AuthMiddleware) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	v1.Use(middleware.RateLimitMiddleware(appConfig.RateLimitPerSec, appConfig.RateLimitBurst))

	// Unauthenticated endpoints.
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/password-reset", h.Auth.PasswordReset)
	}
	v1.GET("/notifications/vapid-key", h.Notification.GetVAPIDKey)

	// Read-heavy fleet endpoints get a short-lived response cache. The
	// payloads carry no caller-specific data so a shared cache is safe.
	cached := v1.Group("")
	cached.Use(authMW.VerifyToken())
	cached.Use(middleware.CacheMiddleware(time.Duration(appConfig.CacheTTLSeconds) * time.Second))
	{
		cached.GET("/umbrellas", h.Umbrella.ListUmbrellas)
		cached.GET("/zones", h.Umbrella.ListZones)
		cached.GET("/activities", h.Activity.ListActivities)
		cached.GET("/stats", h.Activity.GetStats)
	}

	// Authenticated endpoints.
	authed := v1.Group("")
	authed.Use(authMW.VerifyToken())
	{
		authed.GET("/umbrellas/:id", h.Umbrella.GetUmbrella)
		authed.POST("/umbrellas/:id/borrow", h.Umbrella.Borrow)
		authed.POST("/umbrellas/:id/return", h.Umbrella.Return)

		authed.GET("/users/me", h.User.GetMe)
		authed.PUT("/users/me", h.User.UpdateMe)

		authed.PUT("/notifications/subscription", h.Notification.PutSubscription)
		authed.DELETE("/notifications/subscription", h.Notification.DeleteSubscription)
	}

	// Admin endpoints.
	admin := v1.Group("/admin")
	admin.Use(authMW.VerifyToken(), middleware.RequireRole(models.RoleAdmin))
	{
		admin.POST("/umbrellas/seed", h.Umbrella.Seed)
		admin.POST("/umbrellas/force-return", h.Umbrella.ForceReturnAll)
		admin.POST("/umbrellas/reset", h.Umbrella.ResetSystem)
		admin.DELETE("/activities", h.Activity.ClearActivities)
		admin.GET("/users", h.User.ListUsers)
		admin.PUT("/users/:uid", h.User.UpdateUser)
	}

	// Owner endpoints.
	owner := v1.Group("/admin")
	owner.Use(authMW.VerifyToken(), middleware.RequireRole(models.RoleOwner))
	{
		owner.DELETE("/users/:uid", h.User.DeleteUser)
		owner.POST("/users/:uid/temp-password", h.User.IssueTemporaryPassword)
	}
}
