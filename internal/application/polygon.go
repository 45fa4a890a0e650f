package application

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jobrunner/metes/internal/domain"
	"github.com/jobrunner/metes/internal/ports/input"
	"github.com/jobrunner/metes/internal/ports/output"
)

// degenerateWarning is surfaced when edit mutations leave fewer than
// three vertices. Area and perimeter degrade to 0; it is not an error.
const degenerateWarning = "polygon has fewer than 3 vertices; area undefined"

// PolygonSession accumulates an ordered vertex sequence for a closed
// region, with an edit sub-mode that accepts external vertex mutations
// for a polygon hydrated from storage.
type PolygonSession struct {
	mu      sync.Mutex
	region  output.RegionSource
	store   output.MeasurementStore
	events  output.MeasurementEvents
	metrics output.MetricsCollector
	logger  *slog.Logger

	state     sessionState
	vertices  []domain.Point
	area      float64
	perimeter float64
	editable  bool
	editing   bool
	loadedID  string
}

var _ input.PolygonMeasurer = (*PolygonSession)(nil)

// NewPolygonSession creates a new polygon measurement session.
func NewPolygonSession(
	region output.RegionSource,
	store output.MeasurementStore,
	events output.MeasurementEvents,
	metrics output.MetricsCollector,
	logger *slog.Logger,
) *PolygonSession {
	return &PolygonSession{
		region:  region,
		store:   store,
		events:  events,
		metrics: metrics,
		logger:  logger,
	}
}

// Start begins collecting vertices, clearing any prior result.
func (s *PolygonSession) Start() domain.PolygonSnapshot {
	s.mu.Lock()
	s.state = stateActive
	s.resetLocked()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Debug("polygon session started")
	return snap
}

// AddVertex offers a clicked point to the active session. Area and
// perimeter are recomputed on every accepted vertex, so callers can
// observe 0 before the three-vertex threshold.
func (s *PolygonSession) AddVertex(p domain.Point) (input.ClickResult, domain.PolygonSnapshot, error) {
	if err := p.Validate(); err != nil {
		return input.ClickResult{}, s.Snapshot(), err
	}

	s.mu.Lock()
	if s.state != stateActive {
		state := s.state
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return input.ClickResult{}, snap, &domain.TransitionError{
			Mode:      domain.ModePolygon,
			Operation: "addVertex",
			State:     state.String(),
		}
	}
	s.mu.Unlock()

	result := gateVertex(domain.ModePolygon, p, s.region, s.events, s.metrics)
	if !result.Accepted {
		s.mu.Lock()
		snap := s.snapshotLocked()
		s.mu.Unlock()
		s.logger.Debug("polygon vertex rejected", "point", p.String())
		return result, snap, nil
	}

	s.mu.Lock()
	s.vertices = append(s.vertices, p)
	s.recomputeLocked()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.events.PolygonUpdated(snap)
	return result, snap, nil
}

// Stop ends collection, retaining the result.
func (s *PolygonSession) Stop() (domain.PolygonSnapshot, error) {
	s.mu.Lock()
	if s.state != stateActive {
		state := s.state
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, &domain.TransitionError{
			Mode:      domain.ModePolygon,
			Operation: "stop",
			State:     state.String(),
		}
	}
	s.state = stateStopped
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.events.PolygonStopped(snap)
	s.logger.Debug("polygon session stopped",
		"vertices", len(snap.Vertices),
		"area_m2", snap.AreaSquareMeters,
		"perimeter_m", snap.PerimeterMeters,
	)
	return snap, nil
}

// Clear resets the session to idle from any state, dropping any loaded
// polygon id.
func (s *PolygonSession) Clear() domain.PolygonSnapshot {
	s.mu.Lock()
	s.state = stateIdle
	s.resetLocked()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.events.Cleared(domain.ModePolygon)
	return snap
}

// Abort stops an active session and clears it.
func (s *PolygonSession) Abort() {
	s.mu.Lock()
	wasActive := s.state == stateActive
	s.mu.Unlock()

	if wasActive {
		_, _ = s.Stop()
	}
	s.Clear()
}

// Load hydrates a stopped session directly from a previously saved
// polygon, bypassing click-driven collection.
func (s *PolygonSession) Load(vertices []domain.Point, id string) (domain.PolygonSnapshot, error) {
	for _, p := range vertices {
		if err := p.Validate(); err != nil {
			return s.Snapshot(), err
		}
	}

	s.mu.Lock()
	s.resetLocked()
	s.state = stateStopped
	s.vertices = make([]domain.Point, len(vertices))
	copy(s.vertices, vertices)
	s.loadedID = id
	s.editable = id != ""
	s.recomputeLocked()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.events.PolygonUpdated(snap)
	s.logger.Debug("polygon loaded", "id", id, "vertices", len(vertices))
	return snap, nil
}

// MarkEditable flags a drawn polygon as editable. Requires at least
// three vertices; loaded polygons are editable without this call.
func (s *PolygonSession) MarkEditable() (domain.PolygonSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.vertices) < 3 {
		return s.snapshotLocked(), &domain.TransitionError{
			Mode:      domain.ModePolygon,
			Operation: "markEditable",
			State:     s.state.String(),
		}
	}
	s.editable = true
	return s.snapshotLocked(), nil
}

// EnableEdit switches a loaded polygon into edit mode, after which the
// rendering surface's edit handles may push vertex mutations.
func (s *PolygonSession) EnableEdit() (domain.PolygonSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loadedID == "" {
		return s.snapshotLocked(), domain.ErrNoLoadedPolygon
	}
	s.editable = true
	s.editing = true
	return s.snapshotLocked(), nil
}

// InsertVertexAt inserts a vertex before index. index == len(vertices)
// appends.
func (s *PolygonSession) InsertVertexAt(index int, p domain.Point) (domain.PolygonSnapshot, error) {
	if err := p.Validate(); err != nil {
		return s.Snapshot(), err
	}
	return s.mutate("insertVertexAt", func() error {
		if index < 0 || index > len(s.vertices) {
			return s.indexError(index)
		}
		s.vertices = append(s.vertices, domain.Point{})
		copy(s.vertices[index+1:], s.vertices[index:])
		s.vertices[index] = p
		return nil
	})
}

// SetVertexAt replaces the vertex at index.
func (s *PolygonSession) SetVertexAt(index int, p domain.Point) (domain.PolygonSnapshot, error) {
	if err := p.Validate(); err != nil {
		return s.Snapshot(), err
	}
	return s.mutate("setVertexAt", func() error {
		if index < 0 || index >= len(s.vertices) {
			return s.indexError(index)
		}
		s.vertices[index] = p
		return nil
	})
}

// RemoveVertexAt removes the vertex at index. Dropping below three
// vertices degrades area and perimeter to 0 with a warning; it never
// fails.
func (s *PolygonSession) RemoveVertexAt(index int) (domain.PolygonSnapshot, error) {
	return s.mutate("removeVertexAt", func() error {
		if index < 0 || index >= len(s.vertices) {
			return s.indexError(index)
		}
		s.vertices = append(s.vertices[:index], s.vertices[index+1:]...)
		return nil
	})
}

// mutate applies one edit-handle mutation, recomputes derived values and
// emits a refreshed label signal.
func (s *PolygonSession) mutate(op string, apply func() error) (domain.PolygonSnapshot, error) {
	s.mu.Lock()
	if !s.editing {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, domain.ErrNotEditing
	}
	if err := apply(); err != nil {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, err
	}
	s.recomputeLocked()
	degenerate := len(s.vertices) < 3
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Debug("polygon vertices mutated", "op", op, "vertices", len(snap.Vertices))
	if degenerate {
		s.events.Warning(domain.ModePolygon, degenerateWarning)
	}
	s.events.PolygonUpdated(snap)
	return snap, nil
}

// CommitEdit persists the current vertex list as the new saved state for
// the loaded polygon and leaves edit mode.
func (s *PolygonSession) CommitEdit(ctx context.Context) (domain.PolygonSnapshot, error) {
	s.mu.Lock()
	if !s.editing {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, domain.ErrNotEditing
	}
	m := domain.SavedMeasurement{
		ID:               s.loadedID,
		Mode:             domain.ModePolygon,
		Vertices:         append([]domain.Point{}, s.vertices...),
		AreaSquareMeters: s.area,
		PerimeterMeters:  s.perimeter,
	}
	s.mu.Unlock()

	if _, err := s.store.Save(ctx, m); err != nil {
		return s.Snapshot(), err
	}

	s.mu.Lock()
	s.editing = false
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.events.PolygonUpdated(snap)
	s.logger.Info("polygon edit committed", "id", m.ID, "vertices", len(m.Vertices))
	return snap, nil
}

// CancelEdit discards in-progress edits, reloading the last persisted
// vertex list for the loaded polygon.
func (s *PolygonSession) CancelEdit(ctx context.Context) (domain.PolygonSnapshot, error) {
	s.mu.Lock()
	if !s.editing {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, domain.ErrNotEditing
	}
	id := s.loadedID
	s.mu.Unlock()

	saved, err := s.store.Get(ctx, id)
	if err != nil {
		return s.Snapshot(), err
	}

	s.mu.Lock()
	s.vertices = make([]domain.Point, len(saved.Vertices))
	copy(s.vertices, saved.Vertices)
	s.recomputeLocked()
	s.editing = false
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.events.PolygonUpdated(snap)
	s.logger.Debug("polygon edit canceled", "id", id)
	return snap, nil
}

// Snapshot returns the current state without mutating it.
func (s *PolygonSession) Snapshot() domain.PolygonSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *PolygonSession) resetLocked() {
	s.vertices = nil
	s.area = 0
	s.perimeter = 0
	s.editable = false
	s.editing = false
	s.loadedID = ""
}

func (s *PolygonSession) recomputeLocked() {
	s.area = domain.PolygonArea(s.vertices)
	s.perimeter = domain.PolygonPerimeter(s.vertices)
}

func (s *PolygonSession) indexError(index int) error {
	return &domain.ValidationError{
		Field:      "index",
		Value:      index,
		Constraint: "[0, len(vertices))",
		Message:    "vertex index out of range",
	}
}

func (s *PolygonSession) snapshotLocked() domain.PolygonSnapshot {
	vertices := make([]domain.Point, len(s.vertices))
	copy(vertices, s.vertices)

	return domain.PolygonSnapshot{
		Vertices:         vertices,
		AreaSquareMeters: s.area,
		PerimeterMeters:  s.perimeter,
		Active:           s.state == stateActive,
		Editable:         s.editable,
		Editing:          s.editing,
		LoadedID:         s.loadedID,
	}
}
