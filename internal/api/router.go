package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jaidev3/notebook-llm/internal/api/handler"
	"github.com/jaidev3/notebook-llm/internal/api/middleware"
	"github.com/jaidev3/notebook-llm/internal/core/domain"
	"github.com/jaidev3/notebook-llm/internal/core/service"
	"github.com/jaidev3/notebook-llm/internal/infrastructure/config"
	mongodb "github.com/jaidev3/notebook-llm/internal/infrastructure/db/mongo"
	redisdb "github.com/jaidev3/notebook-llm/internal/infrastructure/db/redis"
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
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("auth"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	accountCache := redisdb.NewAccountCache(rdb, userRepo)
	hasher := service.NewBcryptHasher(cfg.BcryptCost)
	tokens := service.NewTokenService(cfg.JWTSecret, time.Duration(cfg.JWTExpireMinutes)*time.Minute)
	authService := service.NewAuthService(userRepo, hasher, tokens)
	userService := service.NewUserService(userRepo, accountCache)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	authMiddleware := middleware.Auth(tokens, accountCache)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, authMiddleware)

	// --- Admin routes ---
	admin := e.Group("/api/v1/users", authMiddleware, middleware.RequireRoles(domain.RoleAdmin))
	admin.GET("", userHandler.List)
	admin.PATCH("/:id/role", userHandler.UpdateRole)
	admin.PATCH("/:id/deactivate", userHandler.Deactivate)
	admin.DELETE("/:id", userHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/", healthHandler.Root)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/api/v1/health", healthHandler.LivenessV1)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
