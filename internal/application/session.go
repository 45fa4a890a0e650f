// Package application contains the measurement session services.
package application

import (
	"github.com/jobrunner/metes/internal/domain"
	"github.com/jobrunner/metes/internal/ports/input"
	"github.com/jobrunner/metes/internal/ports/output"
)

// sessionState tracks the collection lifecycle of a click-driven session.
type sessionState int

// Session lifecycle states.
const (
	stateIdle sessionState = iota
	stateActive
	stateStopped
)

// String returns the string representation of the state.
func (s sessionState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateActive:
		return "active"
	case stateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// indeterminateWarning is surfaced when a point is accepted provisionally
// because boundary data is not available yet.
const indeterminateWarning = "boundary data not loaded; point accepted provisionally"

// gateVertex runs the boundary gate for a candidate point. An outside
// verdict rejects; inside and indeterminate both accept, the latter with
// a warning. Rejection is a per-click event, never a session failure.
func gateVertex(mode domain.Mode, p domain.Point, region output.RegionSource,
	events output.MeasurementEvents, metrics output.MetricsCollector) input.ClickResult {

	verdict := region.Descriptor().Classify(p)

	result := input.ClickResult{Verdict: verdict}
	switch verdict {
	case domain.VerdictOutside:
		metrics.IncPointsRejected(mode)
		events.PointRejected(mode, p)
	case domain.VerdictIndeterminate:
		result.Accepted = true
		result.Warning = indeterminateWarning
		metrics.IncPointsAccepted(mode)
		events.Warning(mode, indeterminateWarning)
	case domain.VerdictInside:
		result.Accepted = true
		metrics.IncPointsAccepted(mode)
	}

	return result
}
