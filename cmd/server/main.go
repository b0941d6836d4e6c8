package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sabimarket/sabimarket-backend/config"
	"github.com/sabimarket/sabimarket-backend/internal/app/controller"
	"github.com/sabimarket/sabimarket-backend/internal/app/repository"
	"github.com/sabimarket/sabimarket-backend/internal/app/service"
	"github.com/sabimarket/sabimarket-backend/internal/db"
	"github.com/sabimarket/sabimarket-backend/internal/middleware"
	"github.com/sabimarket/sabimarket-backend/internal/router"
	"github.com/sabimarket/sabimarket-backend/internal/scheduler"
	"github.com/sabimarket/sabimarket-backend/internal/storage"
	"github.com/sabimarket/sabimarket-backend/pkg/logger"
	"github.com/sabimarket/sabimarket-backend/pkg/paystack"
	"github.com/sabimarket/sabimarket-backend/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting SabiMarket Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, token revocation disabled", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer redis.Close()

	gateway, err := paystack.NewClient(paystack.Config{
		SecretKey:   cfg.Paystack.SecretKey,
		BaseURL:     cfg.Paystack.BaseURL,
		CallbackURL: cfg.Paystack.CallbackURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize payment gateway client", err)
	}

	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	marketRepo := repository.NewMarketRepository(db.GetDB())
	traderRepo := repository.NewTraderRepository(db.GetDB())
	caretakerRepo := repository.NewCaretakerRepository(db.GetDB())
	chairmanRepo := repository.NewChairmanRepository(db.GetDB())
	goodBoyRepo := repository.NewGoodBoyRepository(db.GetDB())
	levyRepo := repository.NewLevyRepository(db.GetDB())
	advertRepo := repository.NewAdvertisementRepository(db.GetDB())
	subscriptionRepo := repository.NewSubscriptionRepository(db.GetDB())
	feedbackRepo := repository.NewFeedbackRepository(db.GetDB())

	// Services
	authService := service.NewAuthService(userRepo, &cfg.JWT)
	levyService := service.NewLevyService(levyRepo, traderRepo, goodBoyRepo, gateway, db.GetDB())
	complianceService := service.NewComplianceService(marketRepo, traderRepo, caretakerRepo, levyRepo)
	dashboardService := service.NewDashboardService(marketRepo, traderRepo, caretakerRepo, chairmanRepo, levyRepo, complianceService)
	reportService := service.NewReportService(marketRepo, levyRepo)
	marketService := service.NewMarketService(marketRepo, db.GetDB())
	traderService := service.NewTraderService(traderRepo, marketRepo, caretakerRepo, authService)
	goodBoyService := service.NewGoodBoyService(goodBoyRepo, caretakerRepo, authService)
	staffService := service.NewStaffService(caretakerRepo, chairmanRepo, marketRepo, authService)
	advertService := service.NewAdvertisementService(advertRepo, userRepo)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, userRepo, gateway)
	feedbackService := service.NewFeedbackService(feedbackRepo, marketRepo, userRepo)

	// Controllers
	authController := controller.NewAuthController(authService)
	levyController := controller.NewLevyController(levyService)
	dashboardController := controller.NewDashboardController(dashboardService, complianceService, reportService)
	marketController := controller.NewMarketController(marketService)
	traderController := controller.NewTraderController(traderService)
	goodBoyController := controller.NewGoodBoyController(goodBoyService)
	staffController := controller.NewStaffController(staffService)
	advertController := controller.NewAdvertisementController(advertService)
	subController := controller.NewSubscriptionController(subscriptionService)
	feedbackController := controller.NewFeedbackController(feedbackService)
	uploadController := controller.NewUploadController(s3Storage)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	snapshotScheduler := scheduler.NewSnapshotScheduler(complianceService, advertService)
	if err := snapshotScheduler.Start(); err != nil {
		logger.Fatal("Failed to start snapshot scheduler", err)
	}
	defer snapshotScheduler.Stop()

	r := router.NewRouter(
		authController,
		levyController,
		dashboardController,
		marketController,
		traderController,
		goodBoyController,
		staffController,
		advertController,
		subController,
		feedbackController,
		uploadController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
