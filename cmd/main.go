package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/yungbote/tenancy-backend/internal/config"
	"github.com/yungbote/tenancy-backend/internal/db"
	"github.com/yungbote/tenancy-backend/internal/handlers"
	"github.com/yungbote/tenancy-backend/internal/logger"
	"github.com/yungbote/tenancy-backend/internal/middleware"
	"github.com/yungbote/tenancy-backend/internal/observability"
	"github.com/yungbote/tenancy-backend/internal/repos"
	"github.com/yungbote/tenancy-backend/internal/server"
	"github.com/yungbote/tenancy-backend/internal/services"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Config
	cfg, err := config.Load(log)
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Tracing
	shutdownOtel := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "tenancy-backend",
		Environment: os.Getenv("APP_ENV"),
		Version:     os.Getenv("APP_VERSION"),
	})
	if shutdownOtel != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownOtel(ctx); err != nil {
				log.Warn("otel shutdown failed", "error", err)
			}
		}()
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	agreementRepo := repos.NewAgreementRepo(thePG, log)
	apartmentRepo := repos.NewApartmentRepo(thePG, log)
	announcementRepo := repos.NewAnnouncementRepo(thePG, log)
	couponRepo := repos.NewCouponRepo(thePG, log)
	paymentRepo := repos.NewPaymentRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	identityVerifier, err := services.NewIdentityVerifier(nil, cfg.Identity)
	if err != nil {
		log.Fatal("Failed to init identity verifier", "error", err)
	}
	avatarService, err := services.NewAvatarService(log, cfg.MediaRoot, cfg.MediaBaseURL)
	if err != nil {
		// Avatars are cosmetic; provisioning works without them.
		log.Warn("Avatar service disabled", "error", err)
		avatarService = nil
	}
	userService := services.NewUserService(thePG, log, userRepo, avatarService)
	agreementService := services.NewAgreementService(thePG, log, agreementRepo, userRepo)
	apartmentService := services.NewApartmentService(thePG, log, apartmentRepo, agreementRepo)
	announcementService := services.NewAnnouncementService(thePG, log, announcementRepo)
	couponService := services.NewCouponService(thePG, log, couponRepo)
	paymentService := services.NewPaymentService(thePG, log, cfg.StripeKey, paymentRepo, agreementRepo, apartmentRepo, couponRepo)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, identityVerifier, userService)

	// Handlers
	log.Info("Setting up Handlers from main...")
	healthcheckHandler := handlers.NewHealthcheckHandler()
	userHandler := handlers.NewUserHandler(userService)
	agreementHandler := handlers.NewAgreementHandler(agreementService)
	apartmentHandler := handlers.NewApartmentHandler(apartmentService)
	announcementHandler := handlers.NewAnnouncementHandler(announcementService)
	couponHandler := handlers.NewCouponHandler(couponService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)

	// Router
	router := server.NewRouter(server.RouterConfig{
		Log:                 log,
		Config:              &cfg,
		AuthMiddleware:      authMiddleware,
		HealthcheckHandler:  healthcheckHandler,
		UserHandler:         userHandler,
		AgreementHandler:    agreementHandler,
		ApartmentHandler:    apartmentHandler,
		AnnouncementHandler: announcementHandler,
		CouponHandler:       couponHandler,
		PaymentHandler:      paymentHandler,
	})

	log.Info("Starting server...", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
