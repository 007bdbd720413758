// Package api provides the HTTP API server and handlers for the Lectio server.
package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/lectioapp/lectio-server/internal/config"
	"github.com/lectioapp/lectio-server/internal/logger"
	"github.com/lectioapp/lectio-server/internal/metrics"
	"github.com/lectioapp/lectio-server/internal/service"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	notes   *service.NotesService
	metrics *metrics.Metrics
	router  *chi.Mux
	api     huma.API
	log     *logger.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(notes *service.NotesService, m *metrics.Metrics, cfg config.ServerConfig, log *logger.Logger) *Server {
	router := chi.NewRouter()

	s := &Server{
		notes:   notes,
		metrics: m,
		router:  router,
		log:     log,
	}

	s.setupMiddleware(cfg)

	humaConfig := huma.DefaultConfig("Lectio API", "1.0.0")
	humaConfig.Info.Description = "Turns lecture videos into structured, exportable study notes."
	s.api = humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerNoteRoutes()
	s.registerExportRoutes()
	s.registerMetricsRoute()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware(cfg config.ServerConfig) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(metrics.RequestMiddleware(s.metrics))

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

func (s *Server) registerMetricsRoute() {
	s.router.Handle("/metrics", s.metrics.Handler())
}
