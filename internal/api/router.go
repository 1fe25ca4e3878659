package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cityworks/complaints-api/internal/api/handler"
	"github.com/cityworks/complaints-api/internal/api/middleware"
	"github.com/cityworks/complaints-api/internal/core/domain"
	"github.com/cityworks/complaints-api/internal/core/service"
	"github.com/cityworks/complaints-api/internal/infrastructure/config"
	mongodb "github.com/cityworks/complaints-api/internal/infrastructure/db/mongo"
	redisdb "github.com/cityworks/complaints-api/internal/infrastructure/db/redis"
)

const (
	msgMasterAdminView   = "Access forbidden: Only the master admin can view this page."
	msgMasterAdminAction = "Access forbidden: Only the master admin can perform this action."
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *goredis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("complaints"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	issueRepo := mongodb.NewIssueRepository(db)
	limiter := redisdb.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.AttemptWindow)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, log)
	profileService := service.NewProfileService(userRepo, log)
	issueService := service.NewIssueService(issueRepo, log)
	adminService := service.NewAdminService(userRepo, log)

	authHandler := handler.NewAuthHandler(authService, limiter)
	profileHandler := handler.NewProfileHandler(profileService)
	issueHandler := handler.NewIssueHandler(issueService)
	adminHandler := handler.NewAdminHandler(adminService)

	authn := middleware.Auth(cfg.JWTSecret)

	// --- API routes ---
	apiGroup := e.Group("/api")

	apiGroup.POST("/auth/register", authHandler.Register)
	apiGroup.POST("/auth/login", authHandler.Login)

	apiGroup.GET("/users/profile", profileHandler.Get, authn)
	apiGroup.PUT("/users/profile", profileHandler.Update, authn)

	// List visibility is role-scoped inside the service, so only
	// authentication happens here.
	apiGroup.GET("/issues", issueHandler.List, authn)
	apiGroup.POST("/issues", issueHandler.Create, authn, middleware.RBAC(domain.RoleResident))
	apiGroup.PUT("/issues/:id", issueHandler.Update, authn, middleware.RBAC(domain.RoleAdmin, domain.RoleService))

	apiGroup.GET("/admins", adminHandler.List, authn, middleware.MasterAdmin(msgMasterAdminView))
	apiGroup.PUT("/admins/:username/:action", adminHandler.SetStatus, authn, middleware.MasterAdmin(msgMasterAdminAction))

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
