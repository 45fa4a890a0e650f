package application

import (
	"errors"
	"testing"

	"github.com/jobrunner/metes/internal/domain"
	"github.com/jobrunner/metes/internal/ports/output"
)

func newTestCoordinator(events output.MeasurementEvents) (*Coordinator, *DistanceSession, *PolygonSession, *ElevationProfileSession) {
	if events == nil {
		events = &output.NoOpEvents{}
	}
	region := insideAll()
	metrics := &output.NoOpMetrics{}
	logger := testLogger()

	distance := NewDistanceSession(region, events, metrics, logger)
	polygon := NewPolygonSession(region, newMockStore(), events, metrics, logger)
	elevation := NewElevationProfileSession(&mockProvider{}, events, metrics, logger)
	coordinator := NewCoordinator(distance, polygon, elevation, metrics, logger)
	return coordinator, distance, polygon, elevation
}

func TestCoordinatorActivateStartsSession(t *testing.T) {
	coordinator, distance, _, _ := newTestCoordinator(nil)

	if err := coordinator.Activate(domain.ModeDistance); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	if got := coordinator.Active(); got != domain.ModeDistance {
		t.Errorf("Active() = %v, want %v", got, domain.ModeDistance)
	}
	if !distance.Snapshot().Active {
		t.Error("distance session not active after Activate")
	}
}

func TestCoordinatorExclusivity(t *testing.T) {
	coordinator, distance, polygon, _ := newTestCoordinator(nil)

	coordinator.Activate(domain.ModeDistance)
	distance.AddVertex(domain.Point{Lat: 1, Lng: 1})
	distance.AddVertex(domain.Point{Lat: 2, Lng: 2})

	if err := coordinator.Activate(domain.ModePolygon); err != nil {
		t.Fatalf("Activate(polygon) failed: %v", err)
	}

	snap := distance.Snapshot()
	if snap.Active {
		t.Error("distance session still active after switching modes")
	}
	if len(snap.Vertices) != 0 {
		t.Errorf("distance session kept %d vertices after switch, want 0", len(snap.Vertices))
	}
	if !polygon.Snapshot().Active {
		t.Error("polygon session not active after Activate")
	}
	if got := coordinator.Active(); got != domain.ModePolygon {
		t.Errorf("Active() = %v, want %v", got, domain.ModePolygon)
	}
}

func TestCoordinatorSwitchClearsElevation(t *testing.T) {
	coordinator, _, _, elevation := newTestCoordinator(nil)

	coordinator.Activate(domain.ModeElevation)
	elevation.AddEndpoint(domain.Point{Lat: 1, Lng: 1})
	elevation.AddEndpoint(domain.Point{Lat: 2, Lng: 2})

	coordinator.Activate(domain.ModeDistance)

	snap := elevation.Snapshot()
	if len(snap.Endpoints) != 0 {
		t.Errorf("elevation session kept %d endpoints after switch, want 0", len(snap.Endpoints))
	}
}

func TestCoordinatorElevationRefusedWhileDistanceActive(t *testing.T) {
	coordinator, distance, _, elevation := newTestCoordinator(nil)

	coordinator.Activate(domain.ModeDistance)
	if _, _, err := distance.AddVertex(domain.Point{Lat: 1, Lng: 1}); err != nil {
		t.Fatalf("AddVertex failed: %v", err)
	}

	snap, err := elevation.AddEndpoint(domain.Point{Lat: 2, Lng: 2})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("AddEndpoint while distance active: err = %v, want ErrInvalidTransition", err)
	}
	if len(snap.Endpoints) != 0 {
		t.Errorf("inactive elevation session collected %d endpoints, want 0", len(snap.Endpoints))
	}
	if got := coordinator.Active(); got != domain.ModeDistance {
		t.Errorf("Active() = %v, want %v", got, domain.ModeDistance)
	}
}

func TestCoordinatorDistanceRefusedWhileElevationActive(t *testing.T) {
	coordinator, distance, _, elevation := newTestCoordinator(nil)

	coordinator.Activate(domain.ModeElevation)
	if _, err := elevation.AddEndpoint(domain.Point{Lat: 1, Lng: 1}); err != nil {
		t.Fatalf("AddEndpoint failed: %v", err)
	}

	if _, _, err := distance.AddVertex(domain.Point{Lat: 2, Lng: 2}); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("AddVertex while elevation active: err = %v, want ErrInvalidTransition", err)
	}
}

func TestCoordinatorReactivateSameModeIsNoOp(t *testing.T) {
	coordinator, distance, _, _ := newTestCoordinator(nil)

	coordinator.Activate(domain.ModeDistance)
	distance.AddVertex(domain.Point{Lat: 1, Lng: 1})

	if err := coordinator.Activate(domain.ModeDistance); err != nil {
		t.Fatalf("re-Activate failed: %v", err)
	}
	if len(distance.Snapshot().Vertices) != 1 {
		t.Error("re-activating the active mode reset the session")
	}
}

func TestCoordinatorDeactivate(t *testing.T) {
	coordinator, distance, _, _ := newTestCoordinator(nil)

	coordinator.Activate(domain.ModeDistance)
	distance.AddVertex(domain.Point{Lat: 1, Lng: 1})
	coordinator.Deactivate()

	if got := coordinator.Active(); got != "" {
		t.Errorf("Active() = %v after Deactivate, want empty", got)
	}
	if distance.Snapshot().Active {
		t.Error("distance session still active after Deactivate")
	}

	// Deactivating with no active mode is a no-op.
	coordinator.Deactivate()
}

func TestCoordinatorRejectsUnknownMode(t *testing.T) {
	coordinator, _, _, _ := newTestCoordinator(nil)

	err := coordinator.Activate(domain.Mode("teleport"))
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Activate(unknown): err = %v, want ErrInvalidInput", err)
	}
	if got := coordinator.Active(); got != "" {
		t.Errorf("Active() = %v after failed Activate, want empty", got)
	}
}
