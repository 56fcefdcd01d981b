package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/AmedoFerguson/backend/docs"
	"github.com/AmedoFerguson/backend/internal/api/handler"
	"github.com/AmedoFerguson/backend/internal/api/middleware"
	"github.com/AmedoFerguson/backend/internal/core/service"
	mongodb "github.com/AmedoFerguson/backend/internal/infrastructure/db/mongo"
	redisdb "github.com/AmedoFerguson/backend/internal/infrastructure/db/redis"
	healthhandlers "github.com/AmedoFerguson/backend/internal/infrastructure/http/handlers"
	"github.com/AmedoFerguson/backend/internal/infrastructure/imgur"
	"github.com/AmedoFerguson/backend/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Pre(echomiddleware.RemoveTrailingSlash())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	// --- Dependencies ---
	uploader := imgur.NewClient(cfg.Imgur.ClientID, cfg.Imgur.UploadURL, log)
	tokens := service.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	listingRepo := mongodb.NewListingRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	modelsCache := redisdb.NewModelsCache(rdb)

	listingService := service.NewListingService(listingRepo, uploader, modelsCache, log)
	accountService := service.NewAccountService(userRepo, uploader, tokens, log)

	listingHandler := handler.NewListingHandler(listingService)
	authHandler := handler.NewAuthHandler(accountService)
	authMiddleware := middleware.Auth(cfg.JWTSecret)

	// --- Listing routes ---
	items := e.Group("/items")
	items.GET("", listingHandler.List)
	items.GET("/models", listingHandler.Models)
	items.POST("", listingHandler.Create, authMiddleware)
	items.GET("/:id", listingHandler.Get, authMiddleware)
	items.PUT("/:id", listingHandler.Update, authMiddleware)
	items.PATCH("/:id", listingHandler.Update, authMiddleware)
	items.DELETE("/:id", listingHandler.Delete, authMiddleware)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/token/refresh", authHandler.Refresh)
	auth.GET("/user", authHandler.CurrentUser, authMiddleware)
	auth.GET("/users/:id", authHandler.UserByID)
	auth.PUT("/users/:id", authHandler.UpdateProfile, authMiddleware)
	auth.PATCH("/users/:id", authHandler.UpdateProfile, authMiddleware)

	// --- Health probes (no auth required) ---
	healthHandler := healthhandlers.NewHealthHandler()
	healthDepsHandler := healthhandlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability / docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
