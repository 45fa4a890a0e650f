// Package app provides application initialization and wiring.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jobrunner/metes/internal/adapters/boundary"
	"github.com/jobrunner/metes/internal/adapters/elevation"
	httpAdapter "github.com/jobrunner/metes/internal/adapters/http"
	"github.com/jobrunner/metes/internal/adapters/metrics"
	"github.com/jobrunner/metes/internal/adapters/storage"
	"github.com/jobrunner/metes/internal/adapters/store"
	tlsAdapter "github.com/jobrunner/metes/internal/adapters/tls"
	"github.com/jobrunner/metes/internal/adapters/watcher"
	"github.com/jobrunner/metes/internal/application"
	"github.com/jobrunner/metes/internal/config"
	"github.com/jobrunner/metes/internal/ports/output"
)

// App holds all application components.
type App struct {
	Config        *config.Config
	Logger        *slog.Logger
	Storage       output.ObjectStorage
	Boundary      *boundary.Source
	Store         *store.SQLiteStore
	Distance      *application.DistanceSession
	Polygon       *application.PolygonSession
	Profile       *application.ElevationProfileSession
	Coordinator   *application.Coordinator
	HealthService *application.HealthService
	HTTPServer    *httpAdapter.Server
	TLSServer     *tlsAdapter.Server
	Watcher       *watcher.Watcher
	Metrics       *metrics.Collector
}

// New creates and initializes a new application.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	// Initialize metrics
	if cfg.Metrics.Enabled {
		app.Metrics = metrics.NewCollector("metes")
	}

	var metricsCollector output.MetricsCollector
	if app.Metrics != nil {
		metricsCollector = app.Metrics
	} else {
		metricsCollector = &output.NoOpMetrics{}
	}

	// Initialize storage adapter
	objectStorage, err := initStorage(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}
	app.Storage = objectStorage

	// Initialize boundary source
	app.Boundary = boundary.NewSource(objectStorage, cfg.Boundary.Key, logger)

	// Initialize measurement store
	measurementStore, err := store.NewSQLiteStore(cfg.Store.Path, metricsCollector, logger)
	if err != nil {
		return nil, fmt.Errorf("initializing measurement store: %w", err)
	}
	app.Store = measurementStore

	// Initialize elevation provider
	provider, err := initElevation(cfg.Elevation, objectStorage, logger)
	if err != nil {
		return nil, fmt.Errorf("initializing elevation provider: %w", err)
	}

	// Initialize measurement sessions
	events := &output.NoOpEvents{}
	app.Distance = application.NewDistanceSession(app.Boundary, events, metricsCollector, logger)
	app.Polygon = application.NewPolygonSession(app.Boundary, measurementStore, events, metricsCollector, logger)
	app.Profile = application.NewElevationProfileSession(provider, events, metricsCollector, logger)
	app.Coordinator = application.NewCoordinator(app.Distance, app.Polygon, app.Profile, metricsCollector, logger)

	// Initialize health service
	app.HealthService = application.NewHealthService(app.Boundary, app.Coordinator)

	// Initialize HTTP server
	app.HTTPServer = httpAdapter.NewServer(
		cfg.Server,
		app.Distance,
		app.Polygon,
		app.Profile,
		app.Coordinator,
		app.HealthService,
		measurementStore,
		app.Boundary,
		logger,
	)

	// Expose Prometheus metrics on the main router
	if app.Metrics != nil {
		app.HTTPServer.Router().Use(app.Metrics.Middleware)
		app.HTTPServer.Router().Handle(cfg.Metrics.Path, metrics.Handler()).Methods(http.MethodGet)
	}

	// Initialize TLS server if enabled
	if cfg.TLS.Enabled {
		tlsServer, err := tlsAdapter.NewServer(
			tlsAdapter.Config{
				Enabled:  cfg.TLS.Enabled,
				Domains:  cfg.TLS.Domains,
				Email:    cfg.TLS.Email,
				CacheDir: cfg.TLS.CacheDir,
				Staging:  cfg.TLS.Staging,
				DNS: tlsAdapter.DNSConfig{
					SubscriptionID:    cfg.TLS.DNS.SubscriptionID,
					ResourceGroupName: cfg.TLS.DNS.ResourceGroupName,
					ClientID:          cfg.TLS.DNS.ClientID,
				},
			},
			app.HTTPServer.Router(),
			logger,
		)
		if err != nil {
			return nil, fmt.Errorf("initializing TLS: %w", err)
		}
		app.TLSServer = tlsServer
	}

	// Initialize file watcher for boundary hot-reload
	watchPaths := cfg.Boundary.WatchPaths
	if len(watchPaths) == 0 && cfg.Storage.Type == "local" {
		watchPaths = []string{cfg.Storage.LocalPath}
	}
	if len(watchPaths) > 0 {
		w, err := watcher.New(
			watcher.Config{
				Paths: watchPaths,
			},
			app.handleFileEvent,
			logger,
		)
		if err != nil {
			logger.Warn("failed to initialize file watcher", "error", err)
		} else {
			app.Watcher = w
		}
	}

	return app, nil
}

// Start starts all application components.
func (a *App) Start(ctx context.Context) error {
	// Load the boundary region; sessions run with an indeterminate
	// region until it arrives.
	if err := a.Boundary.Reload(ctx); err != nil {
		a.Logger.Warn("failed to load boundary region", "error", err)
	}

	// Start file watcher
	if a.Watcher != nil {
		if err := a.Watcher.Start(ctx); err != nil {
			a.Logger.Warn("failed to start file watcher", "error", err)
		}
	}

	// Start server
	if a.Config.TLS.Enabled && a.TLSServer != nil {
		return a.TLSServer.ListenAndServe(a.Config.Server.Address())
	}
	return a.HTTPServer.Start()
}

// Shutdown gracefully shuts down all components.
func (a *App) Shutdown(ctx context.Context) error {
	a.Logger.Info("shutting down application")

	// Stop watcher
	if a.Watcher != nil {
		_ = a.Watcher.Stop()
	}

	// Shutdown HTTP server
	if err := a.HTTPServer.Shutdown(ctx); err != nil {
		a.Logger.Error("HTTP server shutdown error", "error", err)
	}

	// Close measurement store
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			a.Logger.Error("measurement store close error", "error", err)
		}
	}

	return nil
}

// handleFileEvent handles file system events for boundary hot-reload.
func (a *App) handleFileEvent(ctx context.Context, event watcher.Event) error {
	a.Logger.Info("file event", "path", event.Path, "operation", event.Operation.String())

	switch event.Operation {
	case watcher.OpCreate, watcher.OpModify:
		return a.Boundary.Reload(ctx)

	case watcher.OpDelete:
		// Keep the last good boundary; a deleted file is usually being
		// replaced.
		return nil
	}

	return nil
}

// initStorage initializes the appropriate storage adapter.
func initStorage(ctx context.Context, cfg config.StorageConfig) (output.ObjectStorage, error) {
	switch output.StorageType(cfg.Type) {
	case output.StorageTypeLocal:
		return storage.NewLocalStorage(cfg.LocalPath), nil

	case output.StorageTypeS3:
		return storage.NewS3Storage(ctx, storage.S3Config{
			Bucket:          cfg.S3.Bucket,
			Region:          cfg.S3.Region,
			Prefix:          cfg.S3.Prefix,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
		})

	case output.StorageTypeAzure:
		return storage.NewAzureStorage(storage.AzureConfig{
			Container:        cfg.Azure.Container,
			AccountName:      cfg.Azure.AccountName,
			AccountKey:       cfg.Azure.AccountKey,
			ConnectionString: cfg.Azure.ConnectionString,
			Prefix:           cfg.Azure.Prefix,
		})

	case output.StorageTypeHTTP:
		return storage.NewHTTPStorage(storage.HTTPConfig{
			BaseURL:   cfg.HTTP.BaseURL,
			IndexFile: cfg.HTTP.IndexFile,
			Timeout:   cfg.HTTP.Timeout,
			Username:  cfg.HTTP.Username,
			Password:  cfg.HTTP.Password,
		}), nil

	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// initElevation initializes the configured elevation provider.
func initElevation(cfg config.ElevationConfig, objectStorage output.ObjectStorage, logger *slog.Logger) (output.ElevationProvider, error) {
	switch cfg.Provider {
	case "api":
		return elevation.NewAPIProvider(elevation.APIConfig{
			BaseURL: cfg.API.BaseURL,
			APIKey:  cfg.API.APIKey,
			Timeout: cfg.API.Timeout,
		}, logger), nil

	case "dem":
		return elevation.NewDEMProvider(objectStorage, elevation.DEMConfig{
			Prefix:   cfg.DEM.Prefix,
			CacheDir: cfg.DEM.CacheDir,
		}, logger), nil

	case "":
		return elevation.NewDisabledProvider(), nil

	default:
		return nil, fmt.Errorf("unknown elevation provider: %s", cfg.Provider)
	}
}
