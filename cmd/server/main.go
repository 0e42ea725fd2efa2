package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/appnity/prepportal-backend/internal/config"
	"github.com/appnity/prepportal-backend/internal/database"
	"github.com/appnity/prepportal-backend/internal/handlers"
	"github.com/appnity/prepportal-backend/internal/migrations"
	"github.com/appnity/prepportal-backend/internal/routes"
	"github.com/appnity/prepportal-backend/internal/services"
	"github.com/appnity/prepportal-backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// 0. Load Config & Initialize Logger
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Env)
	logger.Info().Str("environment", cfg.Env).Msg("Starting Prep Portal Backend...")

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 1. Connect Database
	database.Connect()
	database.InitRedis()

	// 2. Migrations
	m := migrations.NewMigrator(database.DB)
	if err := m.AutoMigrate(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate tables")
	}
	if err := m.Run(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run migrations")
	}
	logger.Info().Msg("Database migrations complete")

	// 3. Collaborators
	ctx := context.Background()
	files, err := services.NewFileStore(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize file storage")
	}
	handlers.Files = files

	var otpStore services.OTPStore = services.NewMemoryOTPStore()
	if database.Redis != nil {
		otpStore = services.NewRedisOTPStore(database.Redis)
	}
	if cfg.SMTPUser != "" {
		handlers.OTP = services.NewOTPService(otpStore, services.NewSMTPMailer(cfg))
	} else {
		logger.Warn().Msg("SMTP not configured, email verification disabled")
	}

	handlers.LeetCode = services.NewLeetCodeClient(cfg.LeetCodeGraphQLURL)

	// 4. Router
	uploadDir := ""
	if !cfg.R2Enabled() {
		uploadDir = cfg.UploadDir
	}
	r := routes.NewRouter(uploadDir)

	// 5. Start Server with graceful shutdown
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited gracefully")
}
