package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/codetrail/marketplace-api/internal/api/handler"
	"github.com/codetrail/marketplace-api/internal/api/middleware"
	"github.com/codetrail/marketplace-api/internal/core/service"
	"github.com/codetrail/marketplace-api/internal/infrastructure/config"
	mongodb "github.com/codetrail/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/codetrail/marketplace-api/internal/infrastructure/db/redis"
	"github.com/codetrail/marketplace-api/internal/infrastructure/storage"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	imageRepo := mongodb.NewImageRepository(db)
	productRepo := mongodb.NewProductRepository(db)

	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	fileStore := storage.NewDiskStore(cfg.Uploads.Dir, cfg.Uploads.PublicPath)
	imageService := service.NewImageService(imageRepo, fileStore, log)
	throttle := redisdb.NewLoginThrottle(rdb, cfg.Throttle.MaxAttempts, cfg.Throttle.Window)
	userService := service.NewUserService(userRepo, tokens, imageService, throttle, cfg.PageLimit, log)
	productService := service.NewProductService(productRepo, log)

	userHandler := handler.NewUserHandler(userService)
	productHandler := handler.NewProductHandler(productService)
	auth := middleware.Auth(tokens)

	// --- User routes ---
	users := e.Group("/users")
	users.POST("", userHandler.Register)
	users.POST("/login", userHandler.Login)
	users.POST("/reset-password", userHandler.ResetPassword)
	users.PUT("/update-password", userHandler.UpdatePassword, auth)
	users.GET("/profile", userHandler.GetProfile, auth)
	users.PUT("/profile", userHandler.UpdateProfile, auth)
	users.PUT("/profile-photo", userHandler.UploadProfilePhoto, auth)
	users.GET("/manage", userHandler.ManagedUsers, auth)
	users.GET("/manage-banned", userHandler.BannedUsers, auth)
	users.PUT("/manage-ban/:userEmail", userHandler.Ban, auth)
	users.PUT("/manage-unban/:userEmail", userHandler.Unban, auth)
	users.DELETE("/manage-delete/:userEmail", userHandler.Delete, auth)

	// --- Product routes ---
	products := e.Group("/products")
	products.POST("", productHandler.Create, auth)
	products.GET("", productHandler.List)
	products.GET("/:id", productHandler.Get)
	products.PATCH("/:id", productHandler.Update, auth)
	products.DELETE("/:id", productHandler.Delete, auth)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	return e
}
