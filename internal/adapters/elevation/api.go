package elevation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jobrunner/metes/internal/domain"
	"github.com/jobrunner/metes/internal/ports/output"
)

// APIProvider implements output.ElevationProvider against a lookup API
// speaking the open-elevation wire format: POST a list of locations,
// receive the same list with elevations filled in.
type APIProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	logger  *slog.Logger
}

// APIConfig holds elevation API configuration.
type APIConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// NewAPIProvider creates a new API-backed elevation provider.
func NewAPIProvider(cfg APIConfig, logger *slog.Logger) *APIProvider {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &APIProvider{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		logger:  logger,
	}
}

// Name implements output.ElevationProvider.
func (p *APIProvider) Name() string {
	return "api"
}

type apiLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Elevation float64 `json:"elevation,omitempty"`
}

type apiRequest struct {
	Locations []apiLocation `json:"locations"`
}

type apiResponse struct {
	Results []apiLocation `json:"results"`
}

// SampleElevation implements output.ElevationProvider.
func (p *APIProvider) SampleElevation(ctx context.Context, path []domain.Point, sampleCount int) ([]output.ElevationReading, error) {
	locations := interpolatePath(path, sampleCount)

	payload := apiRequest{Locations: make([]apiLocation, len(locations))}
	for i, loc := range locations {
		payload.Locations[i] = apiLocation{Latitude: loc.Lat, Longitude: loc.Lng}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding lookup request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/v1/lookup", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("elevation lookup: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: elevation API returned status %d", domain.ErrUnavailable, resp.StatusCode)
	}

	var result apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding lookup response: %w", err)
	}
	if len(result.Results) != len(locations) {
		return nil, fmt.Errorf("%w: elevation API returned %d results for %d locations",
			domain.ErrInternal, len(result.Results), len(locations))
	}

	readings := make([]output.ElevationReading, len(result.Results))
	for i, r := range result.Results {
		readings[i] = output.ElevationReading{
			Location:        domain.Point{Lat: r.Latitude, Lng: r.Longitude},
			ElevationMeters: r.Elevation,
		}
	}

	p.logger.Debug("elevation lookup completed",
		"samples", len(readings),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return readings, nil
}
