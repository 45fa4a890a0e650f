package elevation

import (
	"context"
	"fmt"

	"github.com/jobrunner/metes/internal/domain"
	"github.com/jobrunner/metes/internal/ports/output"
)

// DisabledProvider is used when no elevation provider is configured.
// Every sample request fails with ErrUnavailable so profile sessions
// surface a clear error instead of hanging.
type DisabledProvider struct{}

// NewDisabledProvider creates a provider that rejects all requests.
func NewDisabledProvider() *DisabledProvider {
	return &DisabledProvider{}
}

// Name implements output.ElevationProvider.
func (p *DisabledProvider) Name() string { return "disabled" }

// SampleElevation implements output.ElevationProvider.
func (p *DisabledProvider) SampleElevation(_ context.Context, _ []domain.Point, _ int) ([]output.ElevationReading, error) {
	return nil, fmt.Errorf("no elevation provider configured: %w", domain.ErrUnavailable)
}
