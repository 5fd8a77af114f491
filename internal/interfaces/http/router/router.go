// Package router assembles the gin engine, middleware chain and route
// registration for the CRM API.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/crm/backend/internal/infrastructure/auth"
	"github.com/crm/backend/internal/infrastructure/config"
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/crm/backend/internal/interfaces/http/middleware"
)

// RouteRegistrar registers a handler's routes on the API group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Config holds everything the router needs to assemble the engine
type Config struct {
	AppConfig  *config.Config
	Logger     *zap.Logger
	JWTService *auth.JWTService
	Registrars []RouteRegistrar
}

// New builds the gin engine with the full middleware chain and all
// registered routes under /api/v1.
func New(cfg Config) (*gin.Engine, error) {
	if cfg.AppConfig.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if err := engine.SetTrustedProxies(cfg.AppConfig.HTTP.TrustedProxies); err != nil {
		return nil, err
	}

	engine.Use(logger.Recovery(cfg.Logger))
	engine.Use(logger.RequestLogger(cfg.Logger))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.AppConfig.Telemetry.ServiceName,
		Enabled:     cfg.AppConfig.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.CORSFromConfig(cfg.AppConfig.HTTP))
	engine.Use(middleware.Secure())
	engine.Use(middleware.BodyLimit(cfg.AppConfig.HTTP.MaxBodySize))

	engine.GET("/health", healthCheck)
	engine.GET("/healthz", healthCheck)

	api := engine.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: cfg.JWTService,
		SkipPaths: []string{
			"/api/v1/health",
			"/api/v1/auth/register",
			"/api/v1/auth/login",
		},
		Logger: cfg.Logger,
	}))

	api.GET("/health", healthCheck)

	for _, registrar := range cfg.Registrars {
		registrar.RegisterRoutes(api)
	}

	return engine, nil
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
