// internal/router/router.go
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/games-api/internal/config"
	"github.com/javajoker/games-api/internal/handlers"
	"github.com/javajoker/games-api/internal/middleware"
	"github.com/javajoker/games-api/internal/services"
	"github.com/javajoker/games-api/internal/utils"
)

// Initialize wires services, handlers and routes. cache may be nil, which
// disables response caching.
func Initialize(db *gorm.DB, cfg *config.Config, cache *services.CacheService) *gin.Engine {
	// Initialize services
	mediaService, err := services.NewMediaService(cfg)
	if err != nil {
		logrus.WithError(err).Warn("Media service unavailable, header images are served as stored")
	}

	gameService := services.NewGameService(db, cache, mediaService)
	authService := services.NewAuthService(db, cfg)

	// Initialize handlers
	gameHandler := handlers.NewGameHandler(gameService)
	authHandler := handlers.NewAuthHandler(authService, cfg.Environment == "production")
	healthHandler := handlers.NewHealthHandler(db)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit(cfg.RateLimit))

	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Catalog query routes
	api := r.Group("/api")
	api.Use(middleware.APIKeyRequired(authService, cfg.API.RequireToken))
	{
		api.GET("/games", gameHandler.GetGames)
		api.GET("/games/by-tag", gameHandler.GetGamesByTag)
		api.GET("/tags", gameHandler.GetTags)
	}

	// Authentication routes
	auth := r.Group("/auth")
	{
		credentials := auth.Group("")
		credentials.Use(middleware.AuthRateLimit(cfg.RateLimit))
		{
			credentials.POST("/register", authHandler.Register)
			credentials.POST("/login", authHandler.Login)
		}

		session := auth.Group("")
		session.Use(middleware.AuthRequired())
		{
			session.POST("/logout", authHandler.Logout)
			session.GET("/me", authHandler.GetCurrentUser)
			session.POST("/api-token", authHandler.IssueAPIToken)
		}
	}

	return r
}
