// Package api - Thin HTTP layer
// The API is ONLY responsible for: input ingestion, engine invocation, output serialization.
// The API NEVER performs cost logic.
package api

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"ghcost/core/engine"
)

// Options configures the server
type Options struct {
	Version     string
	EnablePprof bool
	BodyLimit   int
	ReadTimeout time.Duration
	Logger      *zap.Logger
}

// Server is the API server
type Server struct {
	app     *fiber.App
	engine  *engine.Engine
	version string
	logger  *zap.Logger
}

// NewServer creates a new API server around an engine
func NewServer(eng *engine.Engine, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		engine:  eng,
		version: opts.Version,
		logger:  logger,
	}

	s.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		BodyLimit:             opts.BodyLimit,
		ReadTimeout:           opts.ReadTimeout,
		ErrorHandler:          s.handleError,
	})

	s.app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	if opts.EnablePprof {
		s.app.Use(pprof.New())
	}

	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Core endpoints
	v1 := s.app.Group("/v1")
	v1.Post("/estimate", s.handleEstimate)
	v1.Post("/form/estimate", s.handleFormEstimate)
	v1.Get("/plans", s.handlePlans)
	v1.Get("/plans/:key", s.handlePlan)
	v1.Get("/features", s.handleFeatures)

	// Supporting endpoints
	s.app.Get("/health", s.handleHealth)
	s.app.Get("/version", s.handleVersion)
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

// App exposes the fiber app, mainly for app.Test
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen starts the server
func (s *Server) Listen(addr string) error {
	s.logger.Info("listening", zap.String("addr", addr))
	return s.app.Listen(addr)
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}
