// Package api serves the admin HTTP surface: liveness and readiness probes
// for container orchestration, plus the per-worker processing counters.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/diz-unimr/adt2fhir/internal/stats"
)

// Server represents the admin API server
type Server struct {
	router   chi.Router
	handlers *Handlers
}

// NewServer creates a new admin API server
func NewServer(registry *stats.Registry) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		handlers: NewHandlers(registry),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handlers.Health)
	s.router.Get("/readyz", s.handlers.Ready)
	s.router.Get("/stats", s.handlers.Stats)
}

// SetReady marks the service ready: fixtures loaded and bus clients
// constructed. /readyz serves 503 until this is called.
func (s *Server) SetReady() {
	s.handlers.ready.Store(true)
}

// Router returns the chi router
func (s *Server) Router() http.Handler {
	return s.router
}
