// Package router assembles the gin engine: middleware chain, API routes,
// health probes and the Swagger UI.
package router

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/restaurant/backend/internal/infrastructure/config"
	"github.com/restaurant/backend/internal/infrastructure/logger"
	"github.com/restaurant/backend/internal/interfaces/http/handler"
	"github.com/restaurant/backend/internal/interfaces/http/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// DefaultBasePath prefixes every API route
const DefaultBasePath = "/api"

// RouteRegistrar is implemented by handlers that mount their own routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router mounts registrars under a common base path
type Router struct {
	engine     *gin.Engine
	basePath   string
	registrars []RouteRegistrar
}

// RouterOption configures a Router
type RouterOption func(*Router)

// WithBasePath overrides DefaultBasePath
func WithBasePath(path string) RouterOption {
	return func(r *Router) {
		r.basePath = path
	}
}

// NewRouter creates a Router on engine
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:   engine,
		basePath: DefaultBasePath,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register queues registrars for Setup
func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrars...)
	return r
}

// Setup mounts every registered handler and returns the API group
func (r *Router) Setup() *gin.RouterGroup {
	api := r.engine.Group(r.basePath)
	for _, reg := range r.registrars {
		reg.RegisterRoutes(api)
	}
	return api
}

// Engine returns the underlying gin engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// Dependencies are the collaborators New wires into the engine
type Dependencies struct {
	Config  *config.Config
	Logger  *zap.Logger
	Version string

	Menu      handler.MenuService
	Orders    handler.OrderService
	Analytics handler.AnalyticsService

	// Checks feed /ready; keys name the dependency
	Checks map[string]handler.Pinger
	// Meter is nil when metrics are disabled
	Meter metric.Meter
	// RateLimiter is required when cfg.HTTP.RateLimitEnabled is set
	RateLimiter *middleware.RateLimiter
}

// New builds the fully wired gin engine
func New(deps Dependencies) (*gin.Engine, error) {
	cfg := deps.Config
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
		SkipPaths:   []string{"/health", "/ready"},
	}))
	engine.Use(middleware.SpanEnricher())
	engine.Use(logger.GinMiddleware(log))

	httpMetrics, err := middleware.HTTPMetrics(deps.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP metrics: %w", err)
	}
	engine.Use(httpMetrics)

	secCfg := middleware.DefaultSecurityConfig()
	secCfg.HSTSEnabled = cfg.App.Env == "production"
	engine.Use(middleware.Secure(secCfg))
	engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
	}))

	if cfg.HTTP.RateLimitEnabled {
		if deps.RateLimiter == nil {
			return nil, fmt.Errorf("rate limiting enabled without a limiter")
		}
		engine.Use(middleware.RateLimit(deps.RateLimiter))
	}

	engine.Use(middleware.BodyLimitWithOverrides(cfg.HTTP.MaxBodySize, map[string]int64{
		// multipart framing on top of the image itself
		DefaultBasePath + "/menu/:id/image": cfg.HTTP.MaxUploadSize + 64<<10,
	}))

	health := handler.NewHealthHandler(deps.Version, deps.Checks, log)
	engine.GET("/", health.Root)
	engine.GET("/health", health.Health)
	engine.GET("/ready", health.Ready)

	if cfg.Swagger.Enabled {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	NewRouter(engine).
		Register(
			handler.NewMenuHandler(deps.Menu, cfg.HTTP.MaxUploadSize, log),
			handler.NewOrderHandler(deps.Orders, log),
			handler.NewAnalyticsHandler(deps.Analytics, log),
		).
		Setup()

	base := handler.NewBaseHandler(log)
	engine.NoRoute(func(c *gin.Context) {
		base.NotFound(c, "Route not found")
	})

	return engine, nil
}
