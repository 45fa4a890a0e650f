package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/jobrunner/metes/internal/domain"
	"github.com/jobrunner/metes/internal/ports/output"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// mockRegion implements output.RegionSource for testing.
type mockRegion struct {
	descriptor domain.RegionDescriptor
	ready      bool
}

func (m *mockRegion) Descriptor() domain.RegionDescriptor { return m.descriptor }

func (m *mockRegion) Ready() bool { return m.ready }

// insideAll accepts every point as inside the boundary.
func insideAll() *mockRegion {
	return &mockRegion{
		descriptor: domain.RegionDescriptor{
			Test: func(_ domain.Point) (bool, bool) { return true, true },
		},
		ready: true,
	}
}

// outsideAll rejects every point as outside the boundary.
func outsideAll() *mockRegion {
	return &mockRegion{
		descriptor: domain.RegionDescriptor{
			Test: func(_ domain.Point) (bool, bool) { return false, true },
		},
		ready: true,
	}
}

// indeterminateAll has no boundary data at all.
func indeterminateAll() *mockRegion {
	return &mockRegion{ready: false}
}

// mockStore implements output.MeasurementStore for testing.
type mockStore struct {
	mu       sync.Mutex
	saved    map[string]domain.SavedMeasurement
	nextID   int
	saveErr  error
	getErr   error
	saveHits int
}

func newMockStore() *mockStore {
	return &mockStore{saved: map[string]domain.SavedMeasurement{}}
}

func (m *mockStore) Save(_ context.Context, meas domain.SavedMeasurement) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return "", m.saveErr
	}
	m.saveHits++
	if meas.ID == "" {
		m.nextID++
		meas.ID = fmt.Sprintf("m-%d", m.nextID)
	}
	m.saved[meas.ID] = meas
	return meas.ID, nil
}

func (m *mockStore) Get(_ context.Context, id string) (*domain.SavedMeasurement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	meas, ok := m.saved[id]
	if !ok {
		return nil, domain.ErrMeasurementNotFound
	}
	return &meas, nil
}

func (m *mockStore) List(_ context.Context, mode domain.Mode) ([]domain.SavedMeasurement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.SavedMeasurement
	for _, meas := range m.saved {
		if mode == "" || meas.Mode == mode {
			out = append(out, meas)
		}
	}
	return out, nil
}

func (m *mockStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.saved[id]; !ok {
		return domain.ErrMeasurementNotFound
	}
	delete(m.saved, id)
	return nil
}

// mockProvider implements output.ElevationProvider for testing. The
// sample function receives the request count so tests can assert on it.
type mockProvider struct {
	mu      sync.Mutex
	sample  func(path []domain.Point, count int) ([]output.ElevationReading, error)
	calls   int
	lastN   int
	release chan struct{} // when set, SampleElevation blocks until closed
}

func (m *mockProvider) SampleElevation(_ context.Context, path []domain.Point, count int) ([]output.ElevationReading, error) {
	m.mu.Lock()
	m.calls++
	m.lastN = count
	release := m.release
	m.mu.Unlock()

	if release != nil {
		<-release
	}
	if m.sample != nil {
		return m.sample(path, count)
	}

	readings := make([]output.ElevationReading, len(path))
	for i, p := range path {
		readings[i] = output.ElevationReading{Location: p, ElevationMeters: float64(100 * i)}
	}
	return readings, nil
}

func (m *mockProvider) Name() string { return "mock" }

// recordingEvents implements output.MeasurementEvents and records what
// fired, in order.
type recordingEvents struct {
	mu       sync.Mutex
	fired    []string
	warnings []string
	rejected []domain.Point
}

func (r *recordingEvents) record(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fired = append(r.fired, name)
}

func (r *recordingEvents) DistanceUpdated(_ domain.DistanceSnapshot) { r.record("distance_updated") }

func (r *recordingEvents) DistanceStopped(_ domain.DistanceSnapshot) { r.record("distance_stopped") }

func (r *recordingEvents) PolygonUpdated(_ domain.PolygonSnapshot) { r.record("polygon_updated") }

func (r *recordingEvents) PolygonStopped(_ domain.PolygonSnapshot) { r.record("polygon_stopped") }

func (r *recordingEvents) ProfileUpdated(_ domain.ProfileSnapshot) { r.record("profile_updated") }

func (r *recordingEvents) PointRejected(_ domain.Mode, p domain.Point) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fired = append(r.fired, "point_rejected")
	r.rejected = append(r.rejected, p)
}

func (r *recordingEvents) Warning(_ domain.Mode, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fired = append(r.fired, "warning")
	r.warnings = append(r.warnings, message)
}

func (r *recordingEvents) Cleared(_ domain.Mode) { r.record("cleared") }

func (r *recordingEvents) count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, f := range r.fired {
		if f == name {
			n++
		}
	}
	return n
}
