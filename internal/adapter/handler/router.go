package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// HealthCheck reports whether a dependency is reachable
type HealthCheck func(ctx context.Context) error

// Router holds all handlers
type Router struct {
	environment     string
	meetingHandler  *Meeting
	pipelineHandler *Pipeline
	shareHandler    *Share
	authMiddleware  echo.MiddlewareFunc
	gatherer        prometheus.Gatherer
	checks          map[string]HealthCheck
}

// RouterOption customizes a Router
type RouterOption func(*Router)

// WithAuth protects the meeting and share management routes
func WithAuth(mw echo.MiddlewareFunc) RouterOption {
	return func(rt *Router) { rt.authMiddleware = mw }
}

// WithMetrics serves the given registry at /metrics
func WithMetrics(g prometheus.Gatherer) RouterOption {
	return func(rt *Router) { rt.gatherer = g }
}

// WithHealthCheck adds a named dependency check to /health
func WithHealthCheck(name string, check HealthCheck) RouterOption {
	return func(rt *Router) { rt.checks[name] = check }
}

// NewRouter creates a new router with all handlers
func NewRouter(environment string, meetingHandler *Meeting, pipelineHandler *Pipeline, shareHandler *Share, opts ...RouterOption) *Router {
	rt := &Router{
		environment:     environment,
		meetingHandler:  meetingHandler,
		pipelineHandler: pipelineHandler,
		shareHandler:    shareHandler,
		checks:          make(map[string]HealthCheck),
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)
	if rt.gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(rt.gatherer, promhttp.HandlerOpts{})))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/v1")

	rt.setupMeetingRoutes(v1)
	rt.setupShareRoutes(v1)
}

func (rt *Router) protected() []echo.MiddlewareFunc {
	if rt.authMiddleware == nil {
		return nil
	}
	return []echo.MiddlewareFunc{rt.authMiddleware}
}

// setupMeetingRoutes configures meeting and pipeline routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetings := g.Group("/meetings", rt.protected()...)

	meetings.POST("", rt.meetingHandler.Upload)
	meetings.GET("", rt.meetingHandler.List)
	meetings.GET("/stats", rt.meetingHandler.Stats)
	meetings.GET("/:id", rt.meetingHandler.Get)
	meetings.GET("/:id/status", rt.meetingHandler.Status)

	meetings.POST("/:id/transcribe", rt.pipelineHandler.Transcribe)
	meetings.POST("/:id/summarize", rt.pipelineHandler.Summarize)
}

// setupShareRoutes configures share link routes. Opening a link needs no token.
func (rt *Router) setupShareRoutes(g *echo.Group) {
	share := g.Group("/share")

	share.POST("", rt.shareHandler.Create, rt.protected()...)
	share.DELETE("/:token", rt.shareHandler.Revoke, rt.protected()...)
	share.GET("/:token", rt.shareHandler.Get)
}

// healthCheck returns health status with per-dependency results
func (rt *Router) healthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	status := "ok"
	code := http.StatusOK
	results := make(map[string]string, len(rt.checks))
	for name, check := range rt.checks {
		if err := check(ctx); err != nil {
			results[name] = err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	return c.JSON(code, map[string]interface{}{
		"status":       status,
		"environment":  rt.environment,
		"dependencies": results,
	})
}
