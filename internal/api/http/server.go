// Package http exposes the analytics read API over REST. Handlers parse and
// validate the request, delegate to the analytics service, and serialize its
// result unchanged.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"tradebook/internal/adapters/config"
	"tradebook/internal/adapters/ratelimit"
	"tradebook/internal/api/health"
	"tradebook/internal/metrics"
	"tradebook/pkg/logger"
)

// Server hosts the REST API
type Server struct {
	server  *http.Server
	router  *mux.Router
	log     *logger.Logger
	limiter *ratelimit.Limiter
}

// NewServer creates the API server and registers all routes
func NewServer(
	cfg config.HTTPConfig,
	analytics AnalyticsService,
	healthHandler *health.Handler,
	log *logger.Logger,
) *Server {
	s := &Server{
		router:  mux.NewRouter(),
		log:     log,
		limiter: ratelimit.NewLimiter("http", cfg.RequestsPerMinute),
	}

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSec) * time.Second,
	}

	s.registerRoutes(analytics, healthHandler)

	return s
}

func (s *Server) registerRoutes(analytics AnalyticsService, healthHandler *health.Handler) {
	s.router.HandleFunc("/healthz", healthHandler.HandleLiveness).Methods(http.MethodGet)
	s.router.HandleFunc("/readyz", healthHandler.HandleReadiness).Methods(http.MethodGet)
	s.router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api/v1").Subrouter()
	api.Use(s.loggingMiddleware)
	api.Use(s.rateLimitMiddleware)
	api.Use(s.metricsMiddleware)

	h := newAnalyticsHandler(analytics, s.log)
	api.HandleFunc("/accounts/{accountID}/metrics/dashboard", h.dashboard).Methods(http.MethodGet)
	api.HandleFunc("/accounts/{accountID}/metrics/advanced", h.advanced).Methods(http.MethodGet)
	api.HandleFunc("/accounts/{accountID}/metrics/playbooks", h.playbooks).Methods(http.MethodGet)
}

// Router exposes the configured router, mainly for tests
func (s *Server) Router() http.Handler {
	return s.router
}

// Start begins serving requests and blocks until the server stops
func (s *Server) Start() error {
	s.log.Infow("starting http server", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
