// internal/api/server.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	apihandler "github.com/newthinker/stratdeck/internal/api/handler/api"
	"github.com/newthinker/stratdeck/internal/api/handler/web"
	"github.com/newthinker/stratdeck/internal/api/job"
	"github.com/newthinker/stratdeck/internal/api/middleware"
	"github.com/newthinker/stratdeck/internal/catalog"
	"github.com/newthinker/stratdeck/internal/dashboard"
	"github.com/newthinker/stratdeck/internal/ingest"
	"github.com/newthinker/stratdeck/internal/metrics"
	"github.com/newthinker/stratdeck/internal/storage/artifact"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server represents the HTTP server for stratdeck
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
	deps       Dependencies
}

// Config holds server configuration
type Config struct {
	Host           string
	Port           int
	TemplatesDir   string
	APIKey         string
	HomePath       string
	ReportsPrefix  string
	DataFile       string
	MetricsEnabled bool
	MetricsPath    string
}

// Dependencies holds the collaborators the handlers are built from.
type Dependencies struct {
	Loader  catalog.Loader
	Reports artifact.Store

	// Builder renders pages with charts. APIBuilder renders the JSON view and
	// should have no chart drawer; it defaults to one sharing Builder's
	// descriptions.
	Builder    *dashboard.Builder
	APIBuilder *dashboard.Builder

	// Ingester enables the /api/ingest routes when set.
	Ingester apihandler.Runner

	Metrics *metrics.Registry // optional
}

// NewServer creates a new HTTP server
func NewServer(cfg Config, deps Dependencies, logger *zap.Logger) (*Server, error) {
	if deps.Loader == nil {
		return nil, fmt.Errorf("server requires a data loader")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.Builder == nil {
		deps.Builder = dashboard.NewBuilder(nil, nil, logger, deps.Metrics)
	}
	if deps.APIBuilder == nil {
		deps.APIBuilder = dashboard.NewBuilder(deps.Builder.Descriptions(), nil, logger, nil)
	}
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = "/metrics"
	}

	mux := http.NewServeMux()

	s := &Server{
		logger: logger,
		mux:    mux,
		deps:   deps,
	}

	if err := s.setupRoutes(cfg); err != nil {
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(cfg Config) error {
	webHandler, err := web.NewHandler(cfg.TemplatesDir, web.Options{
		Loader:        s.deps.Loader,
		Builder:       s.deps.Builder,
		Reports:       s.deps.Reports,
		ReportsPrefix: cfg.ReportsPrefix,
		HomePath:      cfg.HomePath,
		Logger:        s.logger,
		Metrics:       s.deps.Metrics,
	})
	if err != nil {
		return fmt.Errorf("creating web handler: %w", err)
	}

	// Web UI routes
	s.mux.HandleFunc("GET /{$}", webHandler.Home)
	s.mux.HandleFunc("GET /index.html", webHandler.Home)
	s.mux.HandleFunc("GET /strategy", webHandler.Strategy)
	s.mux.HandleFunc("GET /strategy.html", webHandler.Strategy)
	s.mux.HandleFunc("GET /reports/{name}", webHandler.Report)

	// Health check (no auth)
	s.mux.HandleFunc("GET /api/health", s.handleHealth)

	auth := middleware.APIKeyAuth(cfg.APIKey)

	strategies := apihandler.NewStrategiesHandler(s.deps.Loader, s.deps.APIBuilder, s.logger)
	s.mux.Handle("GET /api/strategies", auth(http.HandlerFunc(strategies.List)))
	s.mux.Handle("GET /api/categories", auth(http.HandlerFunc(strategies.Categories)))

	if s.deps.Ingester != nil {
		ingestHandler := apihandler.NewIngestHandler(s.deps.Ingester, job.NewStore(100, time.Hour),
			ingest.Options{ReportsPrefix: cfg.ReportsPrefix, OutputFile: cfg.DataFile}, s.logger)
		s.mux.Handle("POST /api/ingest", auth(http.HandlerFunc(ingestHandler.Start)))
		s.mux.Handle("GET /api/ingest", auth(http.HandlerFunc(ingestHandler.List)))
		s.mux.Handle("GET /api/ingest/{id}", auth(http.HandlerFunc(ingestHandler.Get)))
	}

	if cfg.MetricsEnabled && s.deps.Metrics != nil {
		s.mux.Handle("GET "+cfg.MetricsPath, promhttp.HandlerFor(s.deps.Metrics, promhttp.HandlerOpts{}))
	}

	return nil
}

// Handler returns the routes wrapped in the access log and metrics middleware.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.mux
	if s.deps.Metrics != nil {
		h = metrics.HTTPMiddleware(s.deps.Metrics)(h)
	}
	return metrics.LoggingMiddleware(s.logger)(h)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
