package output

import (
	"context"

	"github.com/jobrunner/metes/internal/domain"
)

// ElevationProvider defines the secondary port for terrain elevation
// sampling. The engine never retries internally; a failed call is
// reported to the session and the caller decides whether to ask again.
type ElevationProvider interface {
	// SampleElevation returns elevations for sampleCount locations evenly
	// spaced along the path. The result preserves path order.
	SampleElevation(ctx context.Context, path []domain.Point, sampleCount int) ([]ElevationReading, error)

	// Name identifies the provider for error reporting and metrics.
	Name() string
}

// ElevationReading is a single provider response entry.
type ElevationReading struct {
	Location        domain.Point
	ElevationMeters float64
}
