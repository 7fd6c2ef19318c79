// Package server provides HTTP server management and lifecycle handling for the MediCombine API.
// It includes server setup, middleware configuration, route management, and graceful shutdown.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/giygas/medicombine-api/config"
	"github.com/giygas/medicombine-api/interfaces"
	"github.com/giygas/medicombine-api/logging"
	"github.com/giygas/medicombine-api/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server represents the HTTP server
type Server struct {
	server      *http.Server
	router      chi.Router
	handler     interfaces.HTTPHandler
	rateLimiter *RateLimiter
	config      *config.Config
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, handler interfaces.HTTPHandler, rateLimiter *RateLimiter) *Server {
	router := chi.NewRouter()

	// Generation calls can take far longer than a database lookup
	writeTimeout := cfg.GenerationTimeout + 15*time.Second

	s := &Server{
		server: &http.Server{
			Handler:           router,
			Addr:              cfg.Address + ":" + cfg.Port,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       60 * time.Second,
		},
		router:      router,
		handler:     handler,
		rateLimiter: rateLimiter,
		config:      cfg,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Router exposes the configured router, mainly for tests
func (s *Server) Router() http.Handler {
	return s.router
}

// setupMiddleware configures all middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(RealIPMiddleware)
	s.router.Use(logging.LoggingMiddleware(logging.DefaultLogger()))
	s.router.Use(middleware.RedirectSlashes)
	s.router.Use(middleware.Recoverer)
	s.router.Use(metrics.Metrics)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"X-Request-Id", "X-RateLimit-Remaining"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	s.router.Use(RequestSizeMiddleware(s.config))
	s.router.Use(s.rateLimiter.Middleware)
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/", s.handler.Root)
	s.router.Get("/health", s.handler.HealthCheck)
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/generate", s.handler.GenerateCombinations)
		r.Post("/generate/full", s.handler.GenerateTherapyPlan)
		r.Post("/interactions", s.handler.CheckInteractions)
		r.Post("/interaction-matrix", s.handler.InteractionMatrix)
		r.Post("/export-csv", s.handler.ExportCSV)
		r.Post("/export-pdf", s.handler.ExportPDF)
	})
}

// Start starts the server
func (s *Server) Start() error {
	logging.Info(fmt.Sprintf("Starting server at: %s:%s", s.config.Address, s.config.Port))
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")

	if err := s.server.Shutdown(ctx); err != nil {
		logging.Error("Server forced to shutdown", "error", err)
		// If graceful shutdown fails, force close
		if err := s.server.Close(); err != nil {
			logging.Error("Server close error", "error", err)
			return err
		}
	}

	logging.Info("Server shutdown complete")
	return nil
}
