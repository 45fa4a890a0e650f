package http

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/jobrunner/metes/internal/application"
	"github.com/jobrunner/metes/internal/config"
	"github.com/jobrunner/metes/internal/ports/output"
)

func TestMatchOrigin(t *testing.T) {
	tests := []struct {
		name    string
		origin  string
		pattern string
		want    bool
	}{
		{"exact match", "https://map.example.com", "https://map.example.com", true},
		{"exact mismatch", "https://map.example.com", "https://other.example.com", false},
		{"catch-all", "https://anything.example.org", "*", true},
		{"wildcard subdomain", "https://map.example.com", "*.example.com", true},
		{"wildcard deep subdomain", "https://eu.map.example.com", "*.example.com", true},
		{"wildcard does not match apex", "https://example.com", "*.example.com", false},
		{"wildcard with port", "https://map.example.com:8443", "*.example.com", true},
		{"wildcard case insensitive", "https://MAP.Example.COM", "*.example.com", true},
		{"wildcard different domain", "https://map.evil.com", "*.example.com", false},
		{"suffix trick rejected", "https://notexample.com", "*.example.com", false},
		{"empty pattern", "https://map.example.com", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchOrigin(tt.origin, tt.pattern); got != tt.want {
				t.Errorf("matchOrigin(%q, %q) = %v, want %v", tt.origin, tt.pattern, got, tt.want)
			}
		})
	}
}

func TestOriginHost(t *testing.T) {
	tests := []struct {
		origin string
		want   string
	}{
		{"https://example.com", "example.com"},
		{"https://example.com:8443", "example.com"},
		{"http://localhost:3000", "localhost"},
		{"example.com:8080", "example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			if got := originHost(tt.origin); got != tt.want {
				t.Errorf("originHost(%q) = %q, want %q", tt.origin, got, tt.want)
			}
		})
	}
}

// newCORSTestServer builds a server with CORS origins configured.
func newCORSTestServer(t *testing.T, origins []string) *Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	region := insideRegion()
	store := newMemStore()
	events := &output.NoOpEvents{}
	metrics := &output.NoOpMetrics{}

	distance := application.NewDistanceSession(region, events, metrics, logger)
	polygon := application.NewPolygonSession(region, store, events, metrics, logger)
	profile := application.NewElevationProfileSession(&stubProvider{}, events, metrics, logger)
	coordinator := application.NewCoordinator(distance, polygon, profile, metrics, logger)
	health := application.NewHealthService(region, coordinator)

	return NewServer(
		config.ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
			CORS: config.CORSConfig{AllowedOrigins: origins},
		},
		distance, polygon, profile, coordinator, health,
		store, region, logger,
	)
}

func TestCORSMiddlewareAllowedOrigin(t *testing.T) {
	server := newCORSTestServer(t, []string{"https://map.example.com"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/mode", nil)
	req.Header.Set("Origin", "https://map.example.com")
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://map.example.com" {
		t.Errorf("Allow-Origin = %q, want the origin reflected", got)
	}
	if got := rec.Header().Get("Vary"); got != "Origin" {
		t.Errorf("Vary = %q, want Origin", got)
	}
}

func TestCORSMiddlewareDisallowedOrigin(t *testing.T) {
	server := newCORSTestServer(t, []string{"https://map.example.com"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/mode", nil)
	req.Header.Set("Origin", "https://evil.example.org")
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Allow-Origin = %q, want empty for disallowed origin", got)
	}
	// The request itself still goes through, only the headers are
	// withheld.
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestCORSMiddlewarePreflight(t *testing.T) {
	server := newCORSTestServer(t, []string{"*.example.com"})

	var reachedNext bool
	handler := server.corsMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		reachedNext = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/distance/points", nil)
	req.Header.Set("Origin", "https://map.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got == "" {
		t.Error("Allow-Methods should be set for preflight")
	}
	if reachedNext {
		t.Error("preflight should not reach the next handler")
	}
}

func TestCORSMiddlewarePlainOptionsPassesThrough(t *testing.T) {
	server := newCORSTestServer(t, []string{"*.example.com"})

	var reachedNext bool
	handler := server.corsMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		reachedNext = true
	}))

	// OPTIONS without preflight headers is a regular request.
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/mode", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !reachedNext {
		t.Error("plain OPTIONS should reach the next handler")
	}
}
