package application

import (
	"log/slog"
	"sync"

	"github.com/jobrunner/metes/internal/domain"
	"github.com/jobrunner/metes/internal/ports/input"
	"github.com/jobrunner/metes/internal/ports/output"
)

// DistanceSession accumulates an ordered vertex sequence for a polyline
// measurement. Transitions are driven by discrete click events; the
// mutex only protects against adapter callers on different goroutines,
// there is no internal parallelism.
type DistanceSession struct {
	mu      sync.Mutex
	region  output.RegionSource
	events  output.MeasurementEvents
	metrics output.MetricsCollector
	logger  *slog.Logger

	state    sessionState
	vertices []domain.Point
	segments []domain.Segment
	total    float64
}

var _ input.DistanceMeasurer = (*DistanceSession)(nil)

// NewDistanceSession creates a new distance measurement session.
func NewDistanceSession(
	region output.RegionSource,
	events output.MeasurementEvents,
	metrics output.MetricsCollector,
	logger *slog.Logger,
) *DistanceSession {
	return &DistanceSession{
		region:  region,
		events:  events,
		metrics: metrics,
		logger:  logger,
	}
}

// Start begins collecting vertices, clearing any prior result.
func (s *DistanceSession) Start() domain.DistanceSnapshot {
	s.mu.Lock()
	s.state = stateActive
	s.vertices = nil
	s.segments = nil
	s.total = 0
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Debug("distance session started")
	return snap
}

// AddVertex offers a clicked point to the active session. Points
// classified outside the boundary are rejected without state change;
// inside and indeterminate points are committed, the latter with a
// warning.
func (s *DistanceSession) AddVertex(p domain.Point) (input.ClickResult, domain.DistanceSnapshot, error) {
	if err := p.Validate(); err != nil {
		return input.ClickResult{}, s.Snapshot(), err
	}

	s.mu.Lock()
	if s.state != stateActive {
		state := s.state
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return input.ClickResult{}, snap, &domain.TransitionError{
			Mode:      domain.ModeDistance,
			Operation: "addVertex",
			State:     state.String(),
		}
	}
	s.mu.Unlock()

	result := gateVertex(domain.ModeDistance, p, s.region, s.events, s.metrics)
	if !result.Accepted {
		s.mu.Lock()
		snap := s.snapshotLocked()
		s.mu.Unlock()
		s.logger.Debug("distance vertex rejected", "point", p.String())
		return result, snap, nil
	}

	s.mu.Lock()
	s.vertices = append(s.vertices, p)
	if n := len(s.vertices); n > 1 {
		meters := domain.Distance(s.vertices[n-2], p)
		s.total += meters
		s.segments = append(s.segments, domain.Segment{
			FromIndex:        n - 2,
			ToIndex:          n - 1,
			Meters:           meters,
			CumulativeMeters: s.total,
		})
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.events.DistanceUpdated(snap)
	return result, snap, nil
}

// Stop ends collection. The result is retained for inspection and
// saving; only Clear discards it.
func (s *DistanceSession) Stop() (domain.DistanceSnapshot, error) {
	s.mu.Lock()
	if s.state != stateActive {
		state := s.state
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, &domain.TransitionError{
			Mode:      domain.ModeDistance,
			Operation: "stop",
			State:     state.String(),
		}
	}
	s.state = stateStopped
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.events.DistanceStopped(snap)
	s.logger.Debug("distance session stopped", "vertices", len(snap.Vertices), "total_meters", snap.TotalMeters)
	return snap, nil
}

// Clear resets the session to idle from any state.
func (s *DistanceSession) Clear() domain.DistanceSnapshot {
	s.mu.Lock()
	s.state = stateIdle
	s.vertices = nil
	s.segments = nil
	s.total = 0
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.events.Cleared(domain.ModeDistance)
	return snap
}

// Abort stops an active session and clears it. Used by the coordinator
// when another mode takes over.
func (s *DistanceSession) Abort() {
	s.mu.Lock()
	wasActive := s.state == stateActive
	s.mu.Unlock()

	if wasActive {
		_, _ = s.Stop()
	}
	s.Clear()
}

// Snapshot returns the current state without mutating it.
func (s *DistanceSession) Snapshot() domain.DistanceSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *DistanceSession) snapshotLocked() domain.DistanceSnapshot {
	vertices := make([]domain.Point, len(s.vertices))
	copy(vertices, s.vertices)
	segments := make([]domain.Segment, len(s.segments))
	copy(segments, s.segments)

	return domain.DistanceSnapshot{
		Vertices:    vertices,
		Segments:    segments,
		TotalMeters: s.total,
		Active:      s.state == stateActive,
	}
}
