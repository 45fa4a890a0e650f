// Package input defines the primary/driving ports of the application.
package input

import (
	"context"

	"github.com/jobrunner/metes/internal/domain"
)

// ClickResult is what the point-input collaborator gets back for each
// delivered click: the verdict plus the updated snapshot to render.
type ClickResult struct {
	Verdict  domain.RegionVerdict `json:"verdict"`
	Accepted bool                 `json:"accepted"`
	Warning  string               `json:"warning,omitempty"`
}

// DistanceMeasurer defines the primary port for distance measurements.
type DistanceMeasurer interface {
	// Start begins collecting vertices, clearing any prior result.
	Start() domain.DistanceSnapshot

	// AddVertex offers a clicked point to the active session.
	AddVertex(p domain.Point) (ClickResult, domain.DistanceSnapshot, error)

	// Stop ends collection, retaining the result for inspection.
	Stop() (domain.DistanceSnapshot, error)

	// Clear resets the session from any state.
	Clear() domain.DistanceSnapshot

	// Snapshot returns the current state without mutating it.
	Snapshot() domain.DistanceSnapshot
}

// PolygonMeasurer defines the primary port for polygon measurements.
type PolygonMeasurer interface {
	Start() domain.PolygonSnapshot
	AddVertex(p domain.Point) (ClickResult, domain.PolygonSnapshot, error)
	Stop() (domain.PolygonSnapshot, error)
	Clear() domain.PolygonSnapshot
	Snapshot() domain.PolygonSnapshot

	// Load hydrates a stopped session from a previously saved polygon.
	Load(vertices []domain.Point, id string) (domain.PolygonSnapshot, error)

	// EnableEdit begins accepting vertex mutations for a loaded polygon.
	EnableEdit() (domain.PolygonSnapshot, error)

	// InsertVertexAt, SetVertexAt and RemoveVertexAt apply edit-handle
	// mutations from the rendering surface.
	InsertVertexAt(index int, p domain.Point) (domain.PolygonSnapshot, error)
	SetVertexAt(index int, p domain.Point) (domain.PolygonSnapshot, error)
	RemoveVertexAt(index int) (domain.PolygonSnapshot, error)

	// CommitEdit persists the edited vertices as the new saved state.
	CommitEdit(ctx context.Context) (domain.PolygonSnapshot, error)

	// CancelEdit discards in-progress edits and reloads the last
	// persisted vertices.
	CancelEdit(ctx context.Context) (domain.PolygonSnapshot, error)
}

// ElevationProfiler defines the primary port for elevation profiles.
type ElevationProfiler interface {
	// Start arms the session for endpoint collection, discarding any
	// prior profile.
	Start() domain.ProfileSnapshot

	// AddEndpoint offers a clicked endpoint. Once two endpoints exist, a
	// further point restarts the pair with only the new point retained.
	AddEndpoint(p domain.Point) (domain.ProfileSnapshot, error)

	// RequestProfile samples the two-point path through the elevation
	// provider and computes per-sample distances plus aggregate stats.
	RequestProfile(ctx context.Context) (domain.ProfileSnapshot, error)

	// Clear resets the session.
	Clear() domain.ProfileSnapshot

	// Snapshot returns the current state without mutating it.
	Snapshot() domain.ProfileSnapshot
}

// ModeCoordinator defines the primary port for mode exclusivity.
type ModeCoordinator interface {
	// Activate makes the requested mode the only active one, stopping
	// and clearing the others first.
	Activate(mode domain.Mode) error

	// Active returns the currently active mode, or the empty mode when
	// nothing is active.
	Active() domain.Mode

	// Deactivate stops and clears whichever mode is active.
	Deactivate()
}

// HealthChecker defines the primary port for health checks.
type HealthChecker interface {
	// IsHealthy returns true if the service is healthy.
	IsHealthy(ctx context.Context) bool

	// IsReady returns true if the service is ready to accept requests.
	IsReady(ctx context.Context) bool

	// GetHealthDetails returns detailed health information.
	GetHealthDetails(ctx context.Context) HealthDetails
}

// HealthDetails contains detailed health information.
type HealthDetails struct {
	Healthy     bool              // Overall health status
	Ready       bool              // Ready to accept requests
	RegionReady bool              // Boundary data loaded
	ActiveMode  string            // Currently active measurement mode
	Components  map[string]string // Component statuses
}
