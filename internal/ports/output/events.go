package output

import "github.com/jobrunner/metes/internal/domain"

// MeasurementEvents defines the secondary port for session signals. The
// rendering surface subscribes here to draw markers, lines and labels;
// the engine itself never touches visual primitives.
type MeasurementEvents interface {
	// DistanceUpdated fires after a vertex is committed to the distance
	// session, with the running total in the snapshot.
	DistanceUpdated(snap domain.DistanceSnapshot)

	// DistanceStopped fires when the distance session stops, with the
	// final total and vertex list.
	DistanceStopped(snap domain.DistanceSnapshot)

	// PolygonUpdated fires after any polygon vertex change, including
	// edit-mode mutations.
	PolygonUpdated(snap domain.PolygonSnapshot)

	// PolygonStopped fires when the polygon session stops.
	PolygonStopped(snap domain.PolygonSnapshot)

	// ProfileUpdated fires when profile endpoints change or samples
	// arrive.
	ProfileUpdated(snap domain.ProfileSnapshot)

	// PointRejected fires when the boundary gate refuses a candidate
	// point. The session remains active.
	PointRejected(mode domain.Mode, p domain.Point)

	// Warning surfaces an advisory condition (indeterminate region,
	// degenerate polygon while editing).
	Warning(mode domain.Mode, message string)

	// Cleared fires when a session resets, so the renderer can drop its
	// artifacts for that mode.
	Cleared(mode domain.Mode)
}

// NoOpEvents is a no-op implementation of MeasurementEvents.
type NoOpEvents struct{}

// DistanceUpdated implements MeasurementEvents.
func (n *NoOpEvents) DistanceUpdated(_ domain.DistanceSnapshot) {}

// DistanceStopped implements MeasurementEvents.
func (n *NoOpEvents) DistanceStopped(_ domain.DistanceSnapshot) {}

// PolygonUpdated implements MeasurementEvents.
func (n *NoOpEvents) PolygonUpdated(_ domain.PolygonSnapshot) {}

// PolygonStopped implements MeasurementEvents.
func (n *NoOpEvents) PolygonStopped(_ domain.PolygonSnapshot) {}

// ProfileUpdated implements MeasurementEvents.
func (n *NoOpEvents) ProfileUpdated(_ domain.ProfileSnapshot) {}

// PointRejected implements MeasurementEvents.
func (n *NoOpEvents) PointRejected(_ domain.Mode, _ domain.Point) {}

// Warning implements MeasurementEvents.
func (n *NoOpEvents) Warning(_ domain.Mode, _ string) {}

// Cleared implements MeasurementEvents.
func (n *NoOpEvents) Cleared(_ domain.Mode) {}
