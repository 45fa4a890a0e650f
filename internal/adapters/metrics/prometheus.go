// Package metrics provides Prometheus metrics collection.
package metrics

import (
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jobrunner/metes/internal/domain"
)

// Collector implements the MetricsCollector port using Prometheus.
type Collector struct {
	pointsAccepted      *prometheus.CounterVec
	pointsRejected      *prometheus.CounterVec
	activeMode          *prometheus.GaugeVec
	profileRequests     *prometheus.CounterVec
	profileDuration     *prometheus.HistogramVec
	storageOperations   *prometheus.CounterVec
	storageDuration     *prometheus.HistogramVec
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// NewCollector creates a new Prometheus metrics collector.
func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = "metes"
	}

	return &Collector{
		pointsAccepted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "points_accepted_total",
				Help:      "Total number of clicked points accepted into a session",
			},
			[]string{"mode"},
		),

		pointsRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "points_rejected_total",
				Help:      "Total number of clicked points rejected by the boundary gate",
			},
			[]string{"mode"},
		),

		activeMode: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "active_mode",
				Help:      "Whether a measurement mode is currently active (1) or not (0)",
			},
			[]string{"mode"},
		),

		profileRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "profile_requests_total",
				Help:      "Total number of elevation profile requests",
			},
			[]string{"provider", "status"},
		),

		profileDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "profile_duration_seconds",
				Help:      "Elevation provider request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"provider"},
		),

		storageOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "storage_operations_total",
				Help:      "Total number of storage operations",
			},
			[]string{"operation", "status"},
		),

		storageDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "storage_duration_seconds",
				Help:      "Storage operation duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}

// IncPointsAccepted increments the accepted-vertex counter.
func (c *Collector) IncPointsAccepted(mode domain.Mode) {
	c.pointsAccepted.WithLabelValues(string(mode)).Inc()
}

// IncPointsRejected increments the boundary-rejection counter.
func (c *Collector) IncPointsRejected(mode domain.Mode) {
	c.pointsRejected.WithLabelValues(string(mode)).Inc()
}

// SetActiveMode records whether the mode is currently collecting.
func (c *Collector) SetActiveMode(mode domain.Mode, active bool) {
	value := 0.0
	if active {
		value = 1.0
	}
	c.activeMode.WithLabelValues(string(mode)).Set(value)
}

// IncProfileRequests increments the elevation profile counter.
func (c *Collector) IncProfileRequests(provider string, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	c.profileRequests.WithLabelValues(provider, status).Inc()
}

// ObserveProfileDuration records elevation provider latency.
func (c *Collector) ObserveProfileDuration(provider string, duration time.Duration) {
	c.profileDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// IncStorageOperations increments storage operation counter.
func (c *Collector) IncStorageOperations(operation string, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	c.storageOperations.WithLabelValues(operation, status).Inc()
}

// ObserveStorageDuration records storage operation duration.
func (c *Collector) ObserveStorageDuration(operation string, duration time.Duration) {
	c.storageDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// IncHTTPRequests increments the HTTP request counter.
func (c *Collector) IncHTTPRequests(method, path, status string) {
	c.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
}

// ObserveHTTPDuration records HTTP request duration.
func (c *Collector) ObserveHTTPDuration(method, path string, duration time.Duration) {
	c.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware returns HTTP middleware for metrics collection.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap response writer to capture status code
		wrapped := &statusResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		path := normalizePath(r.URL.Path)
		status := statusToString(wrapped.statusCode)

		c.IncHTTPRequests(r.Method, path, status)
		c.ObserveHTTPDuration(r.Method, path, duration)
	})
}

type statusResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusResponseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// normalizePath collapses dynamic path segments to placeholders so the
// path label stays low-cardinality.
func normalizePath(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/v1/measurements/"):
		return "/api/v1/measurements/{id}"
	case strings.HasPrefix(path, "/api/v1/polygon/vertices/"):
		return "/api/v1/polygon/vertices/{index}"
	case strings.HasPrefix(path, "/api/v1/export/"):
		return "/api/v1/export/{mode}"
	case len(path) > 40:
		return path[:40] + "..."
	default:
		return path
	}
}

// statusToString converts HTTP status code to string category.
func statusToString(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}
