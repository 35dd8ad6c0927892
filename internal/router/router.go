package router

import (
	"context"
	"fmt"

	"github.com/anonto42/community-connect/backend/internal/handlers"
	"github.com/anonto42/community-connect/backend/internal/middleware"
	"github.com/anonto42/community-connect/backend/internal/repositories"
	"github.com/anonto42/community-connect/backend/internal/services"
	"github.com/anonto42/community-connect/backend/pkg/config"
	"github.com/anonto42/community-connect/backend/pkg/logger"
	"github.com/anonto42/community-connect/backend/pkg/storage"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.RequestID())
	e.Use(eMiddleware.CORS())
	e.Use(middleware.PrometheusMiddleware())
	e.Use(middleware.RequestLogger())
	logger.Debug().Msg("Global middleware configured.")
}

// SetupRoutes builds repositories, services and handlers and registers every route.
// verifier is only used when cfg.AuthProvider is "firebase".
func SetupRoutes(e *echo.Echo, cfg *config.Config, db *config.DB, media storage.MediaStore, verifier middleware.TokenVerifier) error {
	posts, err := postRepository(cfg, db)
	if err != nil {
		return err
	}

	// --- Repositories ---
	mode := repositories.NotificationMode(cfg.NotificationsMode)
	profileRepo := repositories.NewPostgresProfileRepository(db.Postgres)
	badgeRepo := repositories.NewPostgresBadgeRepository(db.Postgres)
	requestRepo := repositories.NewPostgresRequestRepository(db.Postgres)
	notificationRepo := repositories.NewNotificationRepository(db.Postgres, mode)
	requestStore := repositories.NewRequestStore(db.Postgres, mode)

	// --- Services ---
	feed := services.NewFeedLoader(posts, profileRepo)
	composer := services.NewPostComposer(posts, media)
	dispatcher := services.NewRequestDispatcher(posts, requestStore)
	profiles := services.NewProfileService(profileRepo, posts, badgeRepo)

	// Health check - always accessible
	e.GET("/health", handlers.NewHealthHandler(db.Postgres).HealthCheck)

	// --- Protected routes ---
	authMiddleware, err := authentication(cfg, verifier)
	if err != nil {
		return err
	}
	api := e.Group("/api/v1")
	api.Use(authMiddleware, middleware.LoadSession(profileRepo))
	logger.Debug().Str("provider", cfg.AuthProvider).Msg("Authentication middleware applied to /api/v1 group.")

	handlers.NewFeedHandler(feed).RegisterFeedRoutes(api)
	handlers.NewPostHandler(composer, posts, profileRepo, requestRepo).RegisterPostRoutes(api)
	handlers.NewRequestHandler(dispatcher).RegisterRequestRoutes(api)
	handlers.NewProfileHandler(profiles).RegisterProfileRoutes(api)
	handlers.NewNotificationHandler(notificationRepo).RegisterNotificationRoutes(api)

	logger.Info().Str("posts_backend", cfg.PostsBackend).Str("notifications_mode", cfg.NotificationsMode).Msg("All routes configured.")
	return nil
}

func postRepository(cfg *config.Config, db *config.DB) (repositories.PostRepository, error) {
	if cfg.PostsBackend != "mongo" {
		return repositories.NewPostgresPostRepository(db.Postgres), nil
	}
	if db.Mongo == nil {
		return nil, fmt.Errorf("posts backend is mongo but no MongoDB connection is open")
	}

	repo := repositories.NewMongoPostRepository(db.Mongo.Database(cfg.MongoDatabase))
	if err := repo.EnsureIndexes(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to create post indexes: %w", err)
	}
	return repo, nil
}

func authentication(cfg *config.Config, verifier middleware.TokenVerifier) (echo.MiddlewareFunc, error) {
	switch cfg.AuthProvider {
	case "firebase":
		if verifier == nil {
			return nil, fmt.Errorf("firebase auth selected but no firebase auth client is available")
		}
		return middleware.FirebaseAuthMiddleware(verifier), nil
	case "jwt":
		return middleware.JWTAuthMiddleware(cfg.JWTSecret), nil
	default:
		return nil, fmt.Errorf("unknown auth provider %q", cfg.AuthProvider)
	}
}
