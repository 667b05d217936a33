// File: medivault/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medivault/config"
	"medivault/cron"
	"medivault/database"
	documentRepo "medivault/database/repository/document"
	medicationRepo "medivault/database/repository/medication"
	reminderRepo "medivault/database/repository/reminder"
	userRepoPkg "medivault/database/repository/user"
	"medivault/handlers"
	"medivault/middleware"
	"medivault/routes"
	"medivault/services/intelligence"
	"medivault/services/medication"
	"medivault/services/notification"
	"medivault/services/storage"
	"medivault/services/user"
	"medivault/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()

	storageService, err := storage.NewCloudinaryStorageService(
		config.AppConfig.CloudinaryCloudName,
		config.AppConfig.CloudinaryAPIKey,
		config.AppConfig.CloudinaryAPISecret,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize document storage: %v", err)
	}

	geminiClient, err := intelligence.NewGeminiClient(config.AppConfig.GeminiAPIKey)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize Gemini client: %v", err)
	}
	extractionService := intelligence.NewDefaultExtractionService(geminiClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	medRepo := medicationRepo.NewMongoMedicationRepo()
	remRepo := reminderRepo.NewMongoReminderRepo()
	docRepo := documentRepo.NewMongoDocumentRepo()

	// services.
	userService := &user.DefaultUserService{
		Repo: userRepo,
	}
	medicationService := &medication.DefaultMedicationService{
		Repo:       medRepo,
		Reminders:  remRepo,
		WindowDays: config.AppConfig.ReminderWindowDays,
	}

	emailChannel, err := notification.NewEmailChannel(config.AppConfig)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize email channel: %v", err)
	}
	pushChannel := notification.NewWebPushChannel(
		config.AppConfig.VAPIDPublicKey,
		config.AppConfig.VAPIDPrivateKey,
		config.AppConfig.VAPIDSubscriber,
	)
	notificationService := &notification.DefaultNotificationService{
		Users:       userRepo,
		Medications: medRepo,
		Push:        pushChannel,
		Email:       emailChannel,
	}

	// Background reminder poller.
	poller := cron.NewDueReminderPoller(
		remRepo,
		notificationService,
		time.Duration(config.AppConfig.PollIntervalSeconds)*time.Second,
		time.Duration(config.AppConfig.ReminderStaleHours)*time.Hour,
	)
	if err := poller.Start(); err != nil {
		logger.Sugar().Fatalf("main: failed to start reminder poller: %v", err)
	}

	// handlers.
	h := &routes.Handlers{
		User:         handlers.NewUserHandler(userService),
		Subscription: handlers.NewSubscriptionHandler(userService),
		Medication:   handlers.NewMedicationHandler(medicationService),
		Document:     handlers.NewDocumentHandler(docRepo, storageService, extractionService, medicationService),
	}
	routes.RegisterRoutes(router, h)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	// Stop the poller first so no tick is half-dispatched when the process
	// exits; each reminder status write is atomic either way.
	poller.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
