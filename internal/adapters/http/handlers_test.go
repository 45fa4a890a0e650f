package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/twpayne/go-polyline"

	"github.com/jobrunner/metes/internal/application"
	"github.com/jobrunner/metes/internal/config"
	"github.com/jobrunner/metes/internal/domain"
	"github.com/jobrunner/metes/internal/ports/output"
)

// memStore implements output.MeasurementStore for testing.
type memStore struct {
	measurements map[string]domain.SavedMeasurement
	nextID       int
}

func newMemStore() *memStore {
	return &memStore{measurements: make(map[string]domain.SavedMeasurement)}
}

func (m *memStore) Save(_ context.Context, saved domain.SavedMeasurement) (string, error) {
	if saved.ID == "" {
		m.nextID++
		saved.ID = fmt.Sprintf("m-%d", m.nextID)
	}
	m.measurements[saved.ID] = saved
	return saved.ID, nil
}

func (m *memStore) Get(_ context.Context, id string) (*domain.SavedMeasurement, error) {
	saved, ok := m.measurements[id]
	if !ok {
		return nil, domain.ErrMeasurementNotFound
	}
	return &saved, nil
}

func (m *memStore) List(_ context.Context, mode domain.Mode) ([]domain.SavedMeasurement, error) {
	var out []domain.SavedMeasurement
	for _, saved := range m.measurements {
		if mode != "" && saved.Mode != mode {
			continue
		}
		out = append(out, saved)
	}
	return out, nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	if _, ok := m.measurements[id]; !ok {
		return domain.ErrMeasurementNotFound
	}
	delete(m.measurements, id)
	return nil
}

// stubProvider implements output.ElevationProvider with fixed readings.
type stubProvider struct {
	err error
}

func (p *stubProvider) SampleElevation(_ context.Context, path []domain.Point, sampleCount int) ([]output.ElevationReading, error) {
	if p.err != nil {
		return nil, p.err
	}
	readings := make([]output.ElevationReading, sampleCount)
	for i := range readings {
		readings[i] = output.ElevationReading{Location: path[0], ElevationMeters: float64(100 + i)}
	}
	return readings, nil
}

func (p *stubProvider) Name() string { return "stub" }

func insideRegion() output.RegionSource {
	return &output.StaticRegion{Region: domain.RegionDescriptor{
		Test: func(domain.Point) (bool, bool) { return true, true },
	}}
}

func outsideRegion() output.RegionSource {
	return &output.StaticRegion{Region: domain.RegionDescriptor{
		Test: func(domain.Point) (bool, bool) { return false, true },
	}}
}

func newTestServer(t *testing.T, region output.RegionSource) (*Server, *memStore) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	store := newMemStore()
	events := &output.NoOpEvents{}
	metrics := &output.NoOpMetrics{}

	distance := application.NewDistanceSession(region, events, metrics, logger)
	polygon := application.NewPolygonSession(region, store, events, metrics, logger)
	profile := application.NewElevationProfileSession(&stubProvider{}, events, metrics, logger)
	coordinator := application.NewCoordinator(distance, polygon, profile, metrics, logger)
	health := application.NewHealthService(region, coordinator)

	server := NewServer(
		config.ServerConfig{Host: "127.0.0.1", Port: 8080},
		distance, polygon, profile, coordinator, health,
		store, region, logger,
	)
	return server, store
}

func doJSON(t *testing.T, server *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return body
}

func activateMode(t *testing.T, server *Server, mode string) {
	t.Helper()

	rec := doJSON(t, server, http.MethodPost, "/api/v1/mode", map[string]string{"mode": mode})
	if rec.Code != http.StatusOK {
		t.Fatalf("failed to activate mode %s: status %d", mode, rec.Code)
	}
}

func TestHandleActivateMode(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
	}{
		{
			name:           "distance mode",
			body:           map[string]string{"mode": "distance"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "elevation mode",
			body:           map[string]string{"mode": "elevation"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown mode",
			body:           map[string]string{"mode": "teleport"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing mode",
			body:           map[string]string{},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newTestServer(t, insideRegion())

			rec := doJSON(t, server, http.MethodPost, "/api/v1/mode", tt.body)
			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
		})
	}
}

func TestHandleGetMode(t *testing.T) {
	server, _ := newTestServer(t, insideRegion())
	activateMode(t, server, "polygon")

	rec := doJSON(t, server, http.MethodGet, "/api/v1/mode", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["active"] != "polygon" {
		t.Errorf("expected active mode polygon, got %v", body["active"])
	}
}

func TestHandleDeactivateMode(t *testing.T) {
	server, _ := newTestServer(t, insideRegion())
	activateMode(t, server, "distance")

	rec := doJSON(t, server, http.MethodDelete, "/api/v1/mode", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := decodeBody(t, doJSON(t, server, http.MethodGet, "/api/v1/mode", nil))
	if body["active"] != "" {
		t.Errorf("expected no active mode, got %v", body["active"])
	}
}

func TestHandleDistanceFlow(t *testing.T) {
	server, _ := newTestServer(t, insideRegion())
	activateMode(t, server, "distance")

	points := []map[string]float64{
		{"lat": 47.0, "lng": 11.0},
		{"lat": 47.0, "lng": 11.1},
		{"lat": 47.1, "lng": 11.1},
	}
	for _, p := range points {
		rec := doJSON(t, server, http.MethodPost, "/api/v1/distance/points", p)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}
		body := decodeBody(t, rec)
		if body["accepted"] != true {
			t.Fatalf("expected point accepted, got %v", body["accepted"])
		}
		if body["verdict"] != "inside" {
			t.Fatalf("expected verdict inside, got %v", body["verdict"])
		}
	}

	rec := doJSON(t, server, http.MethodGet, "/api/v1/distance?unit=metric", nil)
	body := decodeBody(t, rec)
	snap := body["snapshot"].(map[string]interface{})
	if total := snap["total_meters"].(float64); total <= 0 {
		t.Errorf("expected positive total, got %f", total)
	}
	if formatted := body["total_formatted"].(string); !strings.HasSuffix(formatted, "km") {
		t.Errorf("expected km formatting, got %q", formatted)
	}

	rec = doJSON(t, server, http.MethodPost, "/api/v1/distance/stop", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 on stop, got %d", rec.Code)
	}

	// Adding after stop is a state conflict.
	rec = doJSON(t, server, http.MethodPost, "/api/v1/distance/points", points[0])
	if rec.Code != http.StatusConflict {
		t.Errorf("expected status 409 after stop, got %d", rec.Code)
	}
}

func TestHandleDistancePointRejected(t *testing.T) {
	server, _ := newTestServer(t, outsideRegion())
	activateMode(t, server, "distance")

	rec := doJSON(t, server, http.MethodPost, "/api/v1/distance/points", map[string]float64{"lat": 47.0, "lng": 11.0})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["accepted"] != false {
		t.Errorf("expected point rejected, got %v", body["accepted"])
	}
	if body["verdict"] != "outside" {
		t.Errorf("expected verdict outside, got %v", body["verdict"])
	}
}

func TestHandleDistancePointInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "latitude out of range", body: `{"lat": 91.0, "lng": 11.0}`},
		{name: "longitude out of range", body: `{"lat": 47.0, "lng": 181.0}`},
		{name: "malformed JSON", body: `{lat: 47}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newTestServer(t, insideRegion())
			activateMode(t, server, "distance")

			req := httptest.NewRequest(http.MethodPost, "/api/v1/distance/points", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			server.Router().ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", rec.Code)
			}
		})
	}
}

func TestHandlePolygonFlow(t *testing.T) {
	server, _ := newTestServer(t, insideRegion())
	activateMode(t, server, "polygon")

	square := []map[string]float64{
		{"lat": 47.0, "lng": 11.0},
		{"lat": 47.0, "lng": 11.1},
		{"lat": 47.1, "lng": 11.1},
		{"lat": 47.1, "lng": 11.0},
	}
	for _, p := range square {
		rec := doJSON(t, server, http.MethodPost, "/api/v1/polygon/points", p)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}
	}

	rec := doJSON(t, server, http.MethodGet, "/api/v1/polygon", nil)
	body := decodeBody(t, rec)
	snap := body["snapshot"].(map[string]interface{})
	if area := snap["area_square_meters"].(float64); area <= 0 {
		t.Errorf("expected positive area, got %f", area)
	}
	if body["area_formatted"] == "" {
		t.Error("expected formatted area")
	}

	rec = doJSON(t, server, http.MethodPost, "/api/v1/polygon/stop", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 on stop, got %d", rec.Code)
	}
}

func TestHandlePolygonLoadFromPolyline(t *testing.T) {
	server, _ := newTestServer(t, insideRegion())

	encoded := string(polyline.EncodeCoords([][]float64{
		{47.0, 11.0},
		{47.0, 11.1},
		{47.1, 11.1},
	}))

	rec := doJSON(t, server, http.MethodPost, "/api/v1/polygon/load", map[string]string{"polyline": encoded})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	snap := body["snapshot"].(map[string]interface{})
	vertices := snap["vertices"].([]interface{})
	if len(vertices) != 3 {
		t.Errorf("expected 3 vertices, got %d", len(vertices))
	}
}

func TestHandlePolygonLoadFromStore(t *testing.T) {
	server, store := newTestServer(t, insideRegion())

	id, err := store.Save(context.Background(), domain.SavedMeasurement{
		Name: "field",
		Mode: domain.ModePolygon,
		Vertices: []domain.Point{
			{Lat: 47.0, Lng: 11.0},
			{Lat: 47.0, Lng: 11.1},
			{Lat: 47.1, Lng: 11.1},
		},
	})
	if err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}

	rec := doJSON(t, server, http.MethodPost, "/api/v1/polygon/load", map[string]string{"id": id})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	snap := body["snapshot"].(map[string]interface{})
	if snap["loaded_id"] != id {
		t.Errorf("expected loaded_id %s, got %v", id, snap["loaded_id"])
	}
}

func TestHandlePolygonLoadErrors(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]string
		expectedStatus int
	}{
		{
			name:           "unknown id",
			body:           map[string]string{"id": "missing"},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "garbage polyline",
			body:           map[string]string{"polyline": "\xff\xff"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "empty body",
			body:           map[string]string{},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newTestServer(t, insideRegion())

			rec := doJSON(t, server, http.MethodPost, "/api/v1/polygon/load", tt.body)
			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
		})
	}
}

func TestHandlePolygonEditFlow(t *testing.T) {
	server, store := newTestServer(t, insideRegion())

	id, err := store.Save(context.Background(), domain.SavedMeasurement{
		Mode: domain.ModePolygon,
		Vertices: []domain.Point{
			{Lat: 47.0, Lng: 11.0},
			{Lat: 47.0, Lng: 11.1},
			{Lat: 47.1, Lng: 11.1},
		},
	})
	if err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}

	doJSON(t, server, http.MethodPost, "/api/v1/polygon/load", map[string]string{"id": id})

	rec := doJSON(t, server, http.MethodPost, "/api/v1/polygon/edit", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 on edit, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, server, http.MethodPost, "/api/v1/polygon/vertices", map[string]interface{}{
		"index": 1, "lat": 47.05, "lng": 11.05,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 on insert, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, server, http.MethodPut, "/api/v1/polygon/vertices/0", map[string]float64{
		"lat": 46.99, "lng": 10.99,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 on set, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, server, http.MethodDelete, "/api/v1/polygon/vertices/3", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 on remove, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, server, http.MethodPost, "/api/v1/polygon/edit/commit", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 on commit, got %d: %s", rec.Code, rec.Body.String())
	}

	saved, err := store.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("failed to read back: %v", err)
	}
	if saved.Vertices[0].Lat != 46.99 {
		t.Errorf("expected committed vertex 46.99, got %f", saved.Vertices[0].Lat)
	}
}

func TestHandlePolygonEditWithoutLoad(t *testing.T) {
	server, _ := newTestServer(t, insideRegion())

	rec := doJSON(t, server, http.MethodPost, "/api/v1/polygon/edit", nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("expected status 409, got %d", rec.Code)
	}
}

func TestHandleVertexIndexErrors(t *testing.T) {
	server, _ := newTestServer(t, insideRegion())

	rec := doJSON(t, server, http.MethodPut, "/api/v1/polygon/vertices/abc", map[string]float64{"lat": 47, "lng": 11})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for bad index, got %d", rec.Code)
	}
}

func TestHandleProfileFlow(t *testing.T) {
	server, _ := newTestServer(t, insideRegion())
	activateMode(t, server, "elevation")

	// Requesting before both endpoints are set is a conflict.
	rec := doJSON(t, server, http.MethodPost, "/api/v1/profile/request", nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409 before endpoints, got %d", rec.Code)
	}

	doJSON(t, server, http.MethodPost, "/api/v1/profile/points", map[string]float64{"lat": 47.0, "lng": 11.0})
	doJSON(t, server, http.MethodPost, "/api/v1/profile/points", map[string]float64{"lat": 47.1, "lng": 11.0})

	rec = doJSON(t, server, http.MethodPost, "/api/v1/profile/request", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	snap := body["snapshot"].(map[string]interface{})
	if snap["sampled"] != true {
		t.Errorf("expected sampled snapshot, got %v", snap["sampled"])
	}
	samples := snap["samples"].([]interface{})
	if len(samples) == 0 {
		t.Error("expected samples in snapshot")
	}

	rec = doJSON(t, server, http.MethodDelete, "/api/v1/profile", nil)
	body = decodeBody(t, rec)
	snap = body["snapshot"].(map[string]interface{})
	if snap["sampled"] != false {
		t.Errorf("expected cleared snapshot, got %v", snap["sampled"])
	}
}

func TestHandleProfilePointRequiresElevationMode(t *testing.T) {
	server, _ := newTestServer(t, insideRegion())
	activateMode(t, server, "distance")

	rec := doJSON(t, server, http.MethodPost, "/api/v1/profile/points", map[string]float64{"lat": 47.0, "lng": 11.0})
	if rec.Code != http.StatusConflict {
		t.Errorf("expected status 409 for profile point outside elevation mode, got %d", rec.Code)
	}
}

func TestHandleMeasurementsCRUD(t *testing.T) {
	server, _ := newTestServer(t, insideRegion())
	activateMode(t, server, "distance")

	doJSON(t, server, http.MethodPost, "/api/v1/distance/points", map[string]float64{"lat": 47.0, "lng": 11.0})
	doJSON(t, server, http.MethodPost, "/api/v1/distance/points", map[string]float64{"lat": 47.1, "lng": 11.0})

	rec := doJSON(t, server, http.MethodPost, "/api/v1/measurements", map[string]string{
		"mode": "distance", "name": "morning walk",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	id := decodeBody(t, rec)["id"].(string)

	rec = doJSON(t, server, http.MethodGet, "/api/v1/measurements/"+id, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	saved := decodeBody(t, rec)
	if saved["name"] != "morning walk" {
		t.Errorf("expected name round-trip, got %v", saved["name"])
	}

	rec = doJSON(t, server, http.MethodGet, "/api/v1/measurements?mode=distance", nil)
	body := decodeBody(t, rec)
	if body["count"].(float64) != 1 {
		t.Errorf("expected 1 measurement, got %v", body["count"])
	}

	rec = doJSON(t, server, http.MethodDelete, "/api/v1/measurements/"+id, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}

	rec = doJSON(t, server, http.MethodGet, "/api/v1/measurements/"+id, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404 after delete, got %d", rec.Code)
	}
}

func TestHandleSaveMeasurementErrors(t *testing.T) {
	tests := []struct {
		name string
		body map[string]string
	}{
		{name: "elevation not saveable", body: map[string]string{"mode": "elevation"}},
		{name: "empty distance session", body: map[string]string{"mode": "distance"}},
		{name: "unknown mode", body: map[string]string{"mode": "teleport"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newTestServer(t, insideRegion())

			rec := doJSON(t, server, http.MethodPost, "/api/v1/measurements", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", rec.Code)
			}
		})
	}
}

func TestHandleRegion(t *testing.T) {
	server, _ := newTestServer(t, insideRegion())

	rec := doJSON(t, server, http.MethodGet, "/api/v1/region", nil)
	body := decodeBody(t, rec)
	if body["ready"] != true {
		t.Errorf("expected region ready, got %v", body["ready"])
	}

	rec = doJSON(t, server, http.MethodGet, "/api/v1/region?lat=47.0&lng=11.0", nil)
	body = decodeBody(t, rec)
	if body["verdict"] != "inside" {
		t.Errorf("expected verdict inside, got %v", body["verdict"])
	}

	rec = doJSON(t, server, http.MethodGet, "/api/v1/region?lat=abc&lng=11.0", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for bad coordinates, got %d", rec.Code)
	}
}

func TestHandleExportKML(t *testing.T) {
	server, _ := newTestServer(t, insideRegion())
	activateMode(t, server, "distance")

	// Empty session cannot be exported.
	rec := doJSON(t, server, http.MethodGet, "/api/v1/export/distance.kml", nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409 for empty session, got %d", rec.Code)
	}

	doJSON(t, server, http.MethodPost, "/api/v1/distance/points", map[string]float64{"lat": 47.0, "lng": 11.0})
	doJSON(t, server, http.MethodPost, "/api/v1/distance/points", map[string]float64{"lat": 47.1, "lng": 11.0})

	rec = doJSON(t, server, http.MethodGet, "/api/v1/export/distance.kml", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/vnd.google-earth.kml+xml" {
		t.Errorf("unexpected content type %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "<LineString>") {
		t.Errorf("expected LineString in KML output: %s", rec.Body.String())
	}

	rec = doJSON(t, server, http.MethodGet, "/api/v1/export/elevation.kml", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for elevation export, got %d", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	server, _ := newTestServer(t, insideRegion())

	for _, path := range []string{"/health", "/health/live", "/health/ready"} {
		rec := doJSON(t, server, http.MethodGet, path, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("expected status 200 for %s, got %d", path, rec.Code)
		}
	}
}

func TestHandleOpenAPI(t *testing.T) {
	server, _ := newTestServer(t, insideRegion())

	rec := doJSON(t, server, http.MethodGet, "/openapi.json", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var spec map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &spec); err != nil {
		t.Fatalf("OpenAPI spec is not valid JSON: %v", err)
	}
	if spec["openapi"] == nil {
		t.Error("expected openapi version field")
	}
}
