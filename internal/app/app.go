// Package app wires configuration into the storage, catalog, dashboard and
// ingest components shared by the CLI commands.
package app

import (
	"context"
	"fmt"

	"github.com/newthinker/stratdeck/internal/api"
	"github.com/newthinker/stratdeck/internal/catalog"
	"github.com/newthinker/stratdeck/internal/chart"
	"github.com/newthinker/stratdeck/internal/config"
	"github.com/newthinker/stratdeck/internal/dashboard"
	"github.com/newthinker/stratdeck/internal/ingest"
	"github.com/newthinker/stratdeck/internal/metrics"
	"github.com/newthinker/stratdeck/internal/storage/artifact"
	"go.uber.org/zap"
)

// App is the main application orchestrator
type App struct {
	cfg     *config.Config
	logger  *zap.Logger
	store   artifact.Store
	metrics *metrics.Registry

	source     *catalog.Source
	builder    *dashboard.Builder
	apiBuilder *dashboard.Builder
	ingester   *ingest.Ingester
}

// New creates a new App instance. The configuration is expected to be
// validated already.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	store, err := openStore(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	return NewWithStore(cfg, store, logger), nil
}

// openStore builds the artifact backend selected by cfg.Type.
func openStore(cfg config.StorageConfig) (artifact.Store, error) {
	switch cfg.Type {
	case "", "localfs":
		return artifact.NewLocalFS(cfg.Path)
	case "s3":
		return artifact.NewS3(artifact.S3Config{
			Bucket:    cfg.S3.Bucket,
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Prefix:    cfg.S3.Prefix,
		})
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}

// NewWithStore creates an App over an existing store.
func NewWithStore(cfg *config.Config, store artifact.Store, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	reg := metrics.NewRegistry()

	entries := make([]dashboard.Entry, 0, len(cfg.Dashboard.Categories))
	for _, c := range cfg.Dashboard.Categories {
		entries = append(entries, dashboard.Entry{Name: c.Name, Description: c.Description})
	}
	descriptions := dashboard.NewDescriptions(cfg.Dashboard.DefaultDescription, entries...)
	drawer := chart.NewSVGDrawer(cfg.Dashboard.Chart.Width, cfg.Dashboard.Chart.Height)

	return &App{
		cfg:        cfg,
		logger:     logger,
		store:      store,
		metrics:    reg,
		source:     catalog.NewSource(store, cfg.Data.File, reg),
		builder:    dashboard.NewBuilder(descriptions, drawer, logger.Named("dashboard"), reg),
		apiBuilder: dashboard.NewBuilder(descriptions, nil, logger.Named("api"), nil),
		ingester:   ingest.New(store, logger.Named("ingest"), reg),
	}
}

// Server builds the HTTP server from the application components.
func (a *App) Server() (*api.Server, error) {
	return api.NewServer(api.Config{
		Host:           a.cfg.Server.Host,
		Port:           a.cfg.Server.Port,
		TemplatesDir:   a.cfg.Server.TemplatesDir,
		APIKey:         a.cfg.Server.APIKey,
		HomePath:       a.cfg.Server.HomePath,
		ReportsPrefix:  a.cfg.Data.ReportsPrefix,
		DataFile:       a.cfg.Data.File,
		MetricsEnabled: a.cfg.Metrics.Enabled,
		MetricsPath:    a.cfg.Metrics.Path,
	}, api.Dependencies{
		Loader:     a.source,
		Reports:    a.store,
		Builder:    a.builder,
		APIBuilder: a.apiBuilder,
		Ingester:   a.ingester,
		Metrics:    a.metrics,
	}, a.logger)
}

// Ingest regenerates the data file from the stored reports.
func (a *App) Ingest(ctx context.Context) (ingest.Result, error) {
	return a.ingester.Run(ctx, ingest.Options{
		ReportsPrefix: a.cfg.Data.ReportsPrefix,
		OutputFile:    a.cfg.Data.File,
	})
}

// Source returns the data.json loader.
func (a *App) Source() *catalog.Source {
	return a.source
}

// Metrics returns the metrics registry.
func (a *App) Metrics() *metrics.Registry {
	return a.metrics
}
