package router

import (
	"time"

	"github.com/adrisdev/fotogram/backend/internal/cache"
	"github.com/adrisdev/fotogram/backend/internal/handlers"
	"github.com/adrisdev/fotogram/backend/internal/middleware"
	"github.com/adrisdev/fotogram/backend/internal/models"
	"github.com/adrisdev/fotogram/backend/internal/repositories"
	"github.com/adrisdev/fotogram/backend/internal/services"
	"github.com/adrisdev/fotogram/backend/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// SetupRoutes builds the repository and service graph once at startup and
// wires it into the route tree. All dependencies are explicit; there is no
// global registry.
func SetupRoutes(e *echo.Echo, cfg *config.Config, db *config.DB, log *logrus.Logger) error {
	if err := db.Postgres.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Like{},
	); err != nil {
		return err
	}
	log.Info("postgres auto-migrations completed")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db.Postgres)
	followRepo := repositories.NewPostgresFollowRepository(db.Postgres)
	likeRepo := repositories.NewPostgresLikeRepository(db.Postgres)
	postRepo := repositories.NewMongoPostRepository(db.Mongo.Database(cfg.MongoDatabase))
	pageCache := cache.NewRedisPageCache(db.Redis)

	// --- Services ---
	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	identityService := services.NewIdentityService(userRepo, services.NewPasswordHasher(), tokenService, log)
	socialService := services.NewSocialGraphService(followRepo, userRepo, log)
	engagementService := services.NewEngagementService(likeRepo, postRepo, userRepo, log)
	feedService := services.NewFeedService(postRepo, userRepo, pageCache, time.Duration(cfg.FeedCacheTTLSeconds)*time.Second, log)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/auth")
	handlers.NewAuthHandler(identityService).RegisterAuthRoutes(authGroup)

	// --- Protected routes (require a verified bearer token) ---
	api := e.Group("")
	api.Use(middleware.AuthGateway(tokenService, identityService))

	handlers.NewUserHandler(identityService, socialService).RegisterUserRoutes(api)
	handlers.NewFollowHandler(socialService).RegisterFollowRoutes(api)
	handlers.NewEngagementHandler(engagementService).RegisterEngagementRoutes(api)
	handlers.NewFeedHandler(feedService).RegisterFeedRoutes(api)

	log.Info("all routes configured")
	return nil
}
