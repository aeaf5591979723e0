// Package api exposes the assessment engine and the trajectory store over HTTP.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/ZanzyTHEbar/lews/docs"
	"github.com/ZanzyTHEbar/lews/internal/cache"
	apperrors "github.com/ZanzyTHEbar/lews/internal/errors"
	"github.com/ZanzyTHEbar/lews/internal/lockin"
	"github.com/ZanzyTHEbar/lews/internal/middleware"
	"github.com/ZanzyTHEbar/lews/internal/monitoring"
	"github.com/ZanzyTHEbar/lews/internal/ratelimit"
	"github.com/ZanzyTHEbar/lews/internal/security"
	"github.com/ZanzyTHEbar/lews/internal/trajectory"
)

// Deps are the collaborators of the router. Limiter and Cache are optional.
type Deps struct {
	Engine   *lockin.Engine
	Store    *trajectory.Store
	Metrics  *monitoring.Metrics
	Logger   *monitoring.Logger
	Limiter  *ratelimit.RateLimiter
	Cache    *cache.Cache
	Security security.Config
	// Compression is optional; nil serves identity-encoded bodies
	Compression *middleware.CompressionConfig
	Version     string
}

// Handler serves the API routes
type Handler struct {
	engine  *lockin.Engine
	store   *trajectory.Store
	metrics *monitoring.Metrics
	logger  *monitoring.Logger
	limiter *ratelimit.RateLimiter
	version string
}

// NewHandler wires the route handlers without a router
func NewHandler(d Deps) *Handler {
	return &Handler{
		engine:  d.Engine,
		store:   d.Store,
		metrics: d.Metrics,
		logger:  d.Logger,
		limiter: d.Limiter,
		version: d.Version,
	}
}

// NewRouter builds the gin engine with middleware and routes installed
func NewRouter(d Deps) *gin.Engine {
	h := NewHandler(d)

	r := gin.New()
	r.Use(
		monitoring.RequestIDMiddleware(),
		monitoring.MonitoringMiddleware(d.Metrics, d.Logger),
		monitoring.SecurityMonitoringMiddleware(d.Logger),
		// inside the monitoring middleware so recovered panics are still counted
		apperrors.RecoveryHandler(),
	)
	r.Use(security.Middlewares(d.Security)...)
	if d.Compression != nil {
		r.Use(middleware.NewCompressor(*d.Compression).Handler())
	}
	r.Use(apperrors.ErrorHandler())

	r.NoRoute(func(c *gin.Context) {
		apperrors.Respond(c, apperrors.NewNotFoundError("Route not found", nil))
	})

	// operational endpoints are never rate limited
	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	limited := r.Group("/")
	if d.Limiter != nil {
		limited.Use(d.Limiter.IPRateLimitMiddleware())
		limited.GET("/ratelimit", d.Limiter.HandleRateLimitStatus())
	}

	limited.POST("/calculate", h.Calculate)

	cached := limited.Group("/")
	if d.Cache != nil {
		cached.Use(d.Cache.Middleware(d.Metrics, d.Logger))
	}
	cached.GET("/trajectory", h.Trajectory)
	cached.GET("/trajectories", h.Trajectories)
	cached.GET("/dimensions", h.Dimensions)
	cached.GET("/presets", h.Presets)

	return r
}

func notFoundBody(c *gin.Context, err error) {
	apperrors.Respond(c, apperrors.NewNotFoundError(err.Error(), err))
}

func writeJSON(c *gin.Context, v any) {
	c.JSON(http.StatusOK, v)
}
