package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/luciengaly/football-scraping/internal/metrics"
)

// Server represents the REST API server
type Server struct {
	port    int
	server  *http.Server
	handler *Handler
}

// NewRouter builds the routes served by the API. m may be nil.
func NewRouter(handler *Handler, m *metrics.Metrics) *mux.Router {
	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)
	if m != nil {
		router.Use(MetricsMiddleware(m))
		router.Handle("/metrics", m.Handler()).Methods("GET")
	}

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Matches
	api.HandleFunc("/matches/extract", handler.ExtractMatch).Methods("POST")
	api.HandleFunc("/matches/{matchID}", handler.GetMatch).Methods("GET")

	// Seasons
	api.HandleFunc("/seasons/{season}/matches", handler.ListSeasonMatches).Methods("GET")

	return router
}

// NewServer creates a new REST API server
func NewServer(port int, handler *Handler, m *metrics.Metrics) *Server {
	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           NewRouter(handler, m),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
