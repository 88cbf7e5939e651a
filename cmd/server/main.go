package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"umbrella-backend-go/internal/api"
	"umbrella-backend-go/internal/config"
	"umbrella-backend-go/internal/core"
	"umbrella-backend-go/internal/db"
	"umbrella-backend-go/internal/middleware"
	"umbrella-backend-go/internal/notification"
)

func main() {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()

	appConfig, err := config.LoadConfig()
	if err != nil {
		zapLogger.Fatal("Failed to load application configuration", zap.Error(err))
	}
	zapLogger.Info("Application configuration loaded")

	initCtx, cancelInitCtx := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInitCtx()
	if err := db.InitFirebase(initCtx, appConfig, zapLogger); err != nil {
		zapLogger.Fatal("Failed to initialize Firebase Admin SDK", zap.Error(err))
	}
	zapLogger.Info("Firebase Admin SDK (Realtime Database, Auth) initialized")

	dbClient := db.GetDatabaseClient()
	firebaseAuthClient := db.GetFirebaseAuthClient()

	// Repositories.
	umbrellaRepo := db.NewRTDBUmbrellaRepository(dbClient)
	activityRepo := db.NewRTDBActivityRepository(dbClient)
	userRepo := db.NewRTDBUserRepository(dbClient)
	subscriptionRepo := db.NewRTDBPushSubscriptionRepository(dbClient)
	authProvider := db.NewFirebaseAuthProvider(firebaseAuthClient)

	// Notification worker pool; left nil when no VAPID key pair is
	// configured so returns still work without push delivery.
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()
	var notifier core.AvailabilityNotifier
	if appConfig.VAPIDPublicKey != "" && appConfig.VAPIDPrivateKey != "" {
		sender := notification.NewWebpushSender(appConfig.VAPIDSubject, appConfig.VAPIDPublicKey, appConfig.VAPIDPrivateKey)
		pool := notification.NewWorkerPool(subscriptionRepo, sender, appConfig.NotificationWorkers, zapLogger)
		pool.Start(workerCtx)
		notifier = pool
	} else {
		zapLogger.Warn("VAPID keys not configured, availability notifications disabled")
	}

	// Core services.
	umbrellaService := core.NewUmbrellaService(umbrellaRepo, activityRepo, notifier, zapLogger)
	activityService := core.NewActivityService(activityRepo, appConfig.ActivityFeedLimit, zapLogger)
	statsService := core.NewStatsService(umbrellaRepo, activityRepo, appConfig.ActivityFeedLimit, zapLogger)
	userService := core.NewUserService(userRepo, authProvider, zapLogger)

	// Create any missing umbrella records. Existing records are never
	// touched, so this is safe on every boot.
	if _, err := umbrellaService.Seed(initCtx); err != nil {
		zapLogger.Fatal("Failed to seed umbrella records", zap.Error(err))
	}

	if strings.ToLower(appConfig.GinMode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()

	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	if appConfig.ClientURL != "" {
		router.Use(middleware.CORSMiddleware(appConfig))
		zapLogger.Info("CORS middleware enabled", zap.String("clientURL", appConfig.ClientURL))
	} else {
		zapLogger.Warn("CORS middleware skipped: CLIENT_URL is not configured")
	}

	authMW := middleware.NewAuthMiddleware(firebaseAuthClient, userRepo, zapLogger)
	handlers := &api.Handlers{
		Auth:         api.NewAuthHandler(userService, zapLogger),
		User:         api.NewUserHandler(userService, zapLogger),
		Umbrella:     api.NewUmbrellaHandler(umbrellaService, zapLogger),
		Activity:     api.NewActivityHandler(activityService, statsService, zapLogger),
		Notification: api.NewNotificationHandler(subscriptionRepo, appConfig.VAPIDPublicKey, zapLogger),
	}
	api.SetupRoutes(router, appConfig, handlers, authMW)

	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	zapLogger.Info("Starting HTTP server", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quitChannel
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	cancelWorkers()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	zapLogger.Info("Server exiting gracefully")
}
