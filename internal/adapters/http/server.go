// Package http provides the HTTP server and handlers.
package http //nolint:revive // package name conflicts with stdlib but is acceptable in this context

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/jobrunner/metes/internal/application"
	"github.com/jobrunner/metes/internal/config"
	"github.com/jobrunner/metes/internal/ports/output"
)

// Server wraps the HTTP server with application handlers.
type Server struct {
	server      *http.Server
	router      *mux.Router
	distance    *application.DistanceSession
	polygon     *application.PolygonSession
	profile     *application.ElevationProfileSession
	coordinator *application.Coordinator
	health      *application.HealthService
	store       output.MeasurementStore
	region      output.RegionSource
	logger      *slog.Logger
	config      config.ServerConfig
}

// NewServer creates a new HTTP server.
func NewServer(
	cfg config.ServerConfig,
	distance *application.DistanceSession,
	polygon *application.PolygonSession,
	profile *application.ElevationProfileSession,
	coordinator *application.Coordinator,
	health *application.HealthService,
	store output.MeasurementStore,
	region output.RegionSource,
	logger *slog.Logger,
) *Server {
	s := &Server{
		distance:    distance,
		polygon:     polygon,
		profile:     profile,
		coordinator: coordinator,
		health:      health,
		store:       store,
		region:      region,
		logger:      logger,
		config:      cfg,
	}

	s.router = s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Address(),
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return s
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() *mux.Router {
	r := mux.NewRouter()

	// Add middleware
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)

	// Add CORS middleware if configured. Route middleware only runs on
	// method matches, so preflights against POST/PUT/DELETE routes have
	// to be caught on the method-mismatch path as well.
	if s.config.CORS.Enabled() {
		r.Use(s.corsMiddleware)
		r.MethodNotAllowedHandler = s.corsMiddleware(http.HandlerFunc(
			func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusMethodNotAllowed)
			},
		))
	}

	// Health endpoints
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/health/live", s.handleLiveness).Methods(http.MethodGet)
	r.HandleFunc("/health/ready", s.handleReadiness).Methods(http.MethodGet)

	// API v1
	api := r.PathPrefix("/api/v1").Subrouter()

	// Mode coordination
	api.HandleFunc("/mode", s.handleGetMode).Methods(http.MethodGet)
	api.HandleFunc("/mode", s.handleActivateMode).Methods(http.MethodPost)
	api.HandleFunc("/mode", s.handleDeactivateMode).Methods(http.MethodDelete)

	// Distance session
	api.HandleFunc("/distance", s.handleDistanceSnapshot).Methods(http.MethodGet)
	api.HandleFunc("/distance", s.handleDistanceClear).Methods(http.MethodDelete)
	api.HandleFunc("/distance/points", s.handleDistancePoint).Methods(http.MethodPost)
	api.HandleFunc("/distance/stop", s.handleDistanceStop).Methods(http.MethodPost)

	// Polygon session
	api.HandleFunc("/polygon", s.handlePolygonSnapshot).Methods(http.MethodGet)
	api.HandleFunc("/polygon", s.handlePolygonClear).Methods(http.MethodDelete)
	api.HandleFunc("/polygon/points", s.handlePolygonPoint).Methods(http.MethodPost)
	api.HandleFunc("/polygon/stop", s.handlePolygonStop).Methods(http.MethodPost)
	api.HandleFunc("/polygon/load", s.handlePolygonLoad).Methods(http.MethodPost)
	api.HandleFunc("/polygon/edit", s.handlePolygonEnableEdit).Methods(http.MethodPost)
	api.HandleFunc("/polygon/edit/commit", s.handlePolygonCommitEdit).Methods(http.MethodPost)
	api.HandleFunc("/polygon/edit/cancel", s.handlePolygonCancelEdit).Methods(http.MethodPost)
	api.HandleFunc("/polygon/vertices", s.handlePolygonInsertVertex).Methods(http.MethodPost)
	api.HandleFunc("/polygon/vertices/{index}", s.handlePolygonSetVertex).Methods(http.MethodPut)
	api.HandleFunc("/polygon/vertices/{index}", s.handlePolygonRemoveVertex).Methods(http.MethodDelete)

	// Elevation profile session
	api.HandleFunc("/profile", s.handleProfileSnapshot).Methods(http.MethodGet)
	api.HandleFunc("/profile", s.handleProfileClear).Methods(http.MethodDelete)
	api.HandleFunc("/profile/points", s.handleProfilePoint).Methods(http.MethodPost)
	api.HandleFunc("/profile/request", s.handleProfileRequest).Methods(http.MethodPost)

	// Saved measurements
	api.HandleFunc("/measurements", s.handleListMeasurements).Methods(http.MethodGet)
	api.HandleFunc("/measurements", s.handleSaveMeasurement).Methods(http.MethodPost)
	api.HandleFunc("/measurements/{id}", s.handleGetMeasurement).Methods(http.MethodGet)
	api.HandleFunc("/measurements/{id}", s.handleDeleteMeasurement).Methods(http.MethodDelete)

	// Region boundary
	api.HandleFunc("/region", s.handleRegion).Methods(http.MethodGet)

	// KML export
	api.HandleFunc("/export/{mode}.kml", s.handleExportKML).Methods(http.MethodGet)

	// OpenAPI spec and Swagger UI
	r.HandleFunc("/openapi.json", s.handleOpenAPI).Methods(http.MethodGet)
	r.HandleFunc("/docs", s.handleSwaggerUI).Methods(http.MethodGet)
	r.HandleFunc("/swagger", s.handleSwaggerUI).Methods(http.MethodGet)

	// Frontend measurement page (if enabled)
	if s.config.FrontendEnabled {
		r.HandleFunc("/", s.handleFrontend).Methods(http.MethodGet)
	}

	return r
}

// Router returns the mux router.
func (s *Server) Router() *mux.Router {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "address", s.config.Address())
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs incoming requests.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap response writer to capture status code
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.statusCode,
			"duration", time.Since(start),
			"remote_addr", r.RemoteAddr,
		)
	})
}

// recoveryMiddleware recovers from panics.
func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				s.logger.Error("panic recovered", "error", err, "path", r.URL.Path)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
