package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/community-connect/backend/internal/metrics"
	"github.com/anonto42/community-connect/backend/internal/middleware"
	"github.com/anonto42/community-connect/backend/internal/repositories"
	"github.com/anonto42/community-connect/backend/internal/router"
	"github.com/anonto42/community-connect/backend/internal/validators"
	"github.com/anonto42/community-connect/backend/pkg/config"
	"github.com/anonto42/community-connect/backend/pkg/firebase"
	"github.com/anonto42/community-connect/backend/pkg/logger"
	"github.com/anonto42/community-connect/backend/pkg/storage"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.Configure(logger.Config{Level: cfg.LogLevel, Pretty: cfg.IsDevelopment()})

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize databases")
	}
	defer db.CloseDB()

	if cfg.AutoMigrate {
		if err := repositories.AutoMigrate(db.Postgres); err != nil {
			logger.Fatal().Err(err).Msg("Failed to auto migrate models")
		}
		logger.Info().Msg("PostgreSQL auto-migrations completed")
	}

	ctx := context.Background()

	// Initialize Firebase only when a component needs it
	var firebaseApp *firebase.App
	if cfg.UsesFirebase() {
		firebaseApp, err = firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, cfg.MediaBucket)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to initialize Firebase")
		}
	}

	media, err := mediaStore(cfg, firebaseApp)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize media storage")
	}

	var verifier middleware.TokenVerifier
	if firebaseApp != nil {
		verifier = firebaseApp.AuthClient
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	router.SetupMiddleware(e)
	if err := router.SetupRoutes(e, cfg, db, media, verifier); err != nil {
		logger.Fatal().Err(err).Msg("Failed to set up routes")
	}

	metricsServer := &http.Server{Addr: ":" + cfg.MetricsPort, Handler: metricsMux()}
	go func() {
		logger.Info().Str("port", cfg.MetricsPort).Msg("Metrics server listening")
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("Metrics server stopped")
		}
	}()

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("Server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Server stopped")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server shutdown failed")
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Metrics server shutdown failed")
	}
	logger.Info().Msg("Server stopped")
}

func mediaStore(cfg *config.Config, app *firebase.App) (storage.MediaStore, error) {
	if cfg.StorageProvider == "firebase" {
		return storage.NewFirebaseStore(app.StorageClient, cfg.MediaBucket)
	}
	return storage.NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseKey, cfg.MediaBucket)
}

func metricsMux() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	return mux
}
