// Package api provides the HTTP API server for the VLAN registry.
// It uses the Echo framework to serve the REST endpoints, the HTML dashboard,
// Prometheus metrics and a WebSocket feed of registry events.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	_ "evalgo.org/vlanreg/docs" // Register API docs
	"evalgo.org/vlanreg/internal/config"
	"evalgo.org/vlanreg/internal/metrics"
	"evalgo.org/vlanreg/internal/registry"
	"evalgo.org/vlanreg/internal/version"
	"evalgo.org/vlanreg/internal/web"
)

// Server represents the vlanreg API server.
type Server struct {
	echo     *echo.Echo
	registry *registry.Registry
	config   *config.Config
	logger   *zap.Logger
	metrics  *metrics.Registry
	wsHub    *Hub
}

// New creates a new API server instance serving reg.
func New(cfg *config.Config, reg *registry.Registry, logger *zap.Logger) *Server {
	e := echo.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.Server.Debug

	// Set custom error handler
	e.HTTPErrorHandler = HTTPErrorHandler

	server := &Server{
		echo:     e,
		registry: reg,
		config:   cfg,
		logger:   logger,
		metrics:  metrics.New(reg.Count),
		wsHub:    NewHub(logger),
	}

	reg.Subscribe(server.metrics.ObserveCreated)
	reg.Subscribe(server.wsHub.VLANCreated)

	// Start WebSocket hub in background
	go server.wsHub.Run()

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures Echo middleware.
func (s *Server) setupMiddleware() {
	// Request ID middleware
	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	// Logger middleware
	s.echo.Use(RequestLogger(s.logger))

	// Recover middleware
	s.echo.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			s.logger.Error("panic recovered", zap.Error(err), zap.ByteString("stack", stack))
			return err
		},
	}))

	// Security headers middleware
	s.echo.Use(SecurityHeaders)

	// CORS middleware
	if len(s.config.Security.AllowedOrigins) > 0 {
		s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.config.Security.AllowedOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		}))
	}

	// Rate limiting
	if s.config.Security.RateLimit > 0 {
		s.echo.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(
			rate.Limit(s.config.Security.RateLimit),
		)))
	}

	if s.config.Server.BodyLimit != "" {
		s.echo.Use(middleware.BodyLimit(s.config.Server.BodyLimit))
	}

	s.echo.Use(RequestMetrics(s.metrics))
}

// setupRoutes configures API routes.
func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/", s.index)

	vlans := s.echo.Group("/vlans")
	vlans.GET("", s.listVLANs)
	vlans.POST("", s.createVLAN, ValidateContentType)
	vlans.GET("/:id", s.getVLAN, ValidateVLANIDParam)

	// API documentation
	s.echo.GET("/docs/*", echoSwagger.WrapHandler)

	// Read-only dashboard
	webHandler := web.NewHandler(s.registry)
	s.echo.GET("/ui", webHandler.Dashboard)

	// Registry events
	s.echo.GET("/ws/events", s.handleEvents)

	// Prometheus metrics
	s.echo.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := s.config.Server.Address()

	s.logger.Info("starting vlanreg API server",
		zap.String("address", addr),
		zap.String("version", version.Version),
		zap.Bool("debug", s.config.Server.Debug),
	)

	// Configure server timeouts
	s.echo.Server.ReadTimeout = s.config.Server.ReadTimeout
	s.echo.Server.WriteTimeout = s.config.Server.WriteTimeout

	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down vlanreg API server")

	s.wsHub.Stop()

	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	s.logger.Info("server shutdown complete", zap.Int("total_vlans", s.registry.Count()))
	return nil
}

// healthCheck handles GET /health
// @Summary Health check
// @Description Reports liveness, the number of registered VLANs and memory usage
// @Tags meta
// @Produce json
// @Success 200 {object} HealthResponse "Service is healthy"
// @Router /health [get]
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Health:  s.registry.Health(),
		Service: "vlanreg",
		Version: version.Version,
	})
}

// index handles GET /
// @Summary Endpoint directory
// @Description Returns the service name, version, VLAN ID range and the available endpoints
// @Tags meta
// @Produce json
// @Success 200 {object} IndexResponse "Endpoint directory"
// @Router / [get]
func (s *Server) index(c echo.Context) error {
	lo, hi := s.registry.Bounds()

	return c.JSON(http.StatusOK, IndexResponse{
		Service:   "vlanreg",
		Version:   version.Version,
		VLANRange: VLANRange{Min: lo, Max: hi},
		Endpoints: map[string]string{
			"GET /":          "this endpoint directory",
			"GET /health":    "liveness, VLAN count and memory usage",
			"GET /vlans":     "list all registered VLANs",
			"GET /vlans/:id": "get a single VLAN",
			"POST /vlans":    `register a VLAN: {"id": int, "name"?: string}`,
			"GET /ui":        "HTML dashboard",
			"GET /metrics":   "Prometheus metrics",
			"GET /ws/events": "WebSocket feed of registry events",
			"GET /docs/*":    "Swagger UI and OpenAPI document",
		},
		Timestamp: time.Now().UTC(),
	})
}

// ServeHTTP allows Server to implement http.Handler for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}
