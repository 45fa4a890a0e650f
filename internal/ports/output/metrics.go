package output

import (
	"time"

	"github.com/jobrunner/metes/internal/domain"
)

// MetricsCollector defines the secondary port for metrics collection.
type MetricsCollector interface {
	// IncPointsAccepted increments the accepted-vertex counter.
	IncPointsAccepted(mode domain.Mode)

	// IncPointsRejected increments the boundary-rejection counter.
	IncPointsRejected(mode domain.Mode)

	// SetActiveMode records which session is currently collecting, if any.
	SetActiveMode(mode domain.Mode, active bool)

	// IncProfileRequests increments the elevation profile counter.
	IncProfileRequests(provider string, success bool)

	// ObserveProfileDuration records elevation provider latency.
	ObserveProfileDuration(provider string, duration time.Duration)

	// IncStorageOperations increments storage operation counter.
	IncStorageOperations(operation string, success bool)

	// ObserveStorageDuration records storage operation duration.
	ObserveStorageDuration(operation string, duration time.Duration)
}

// NoOpMetrics is a no-op implementation of MetricsCollector.
type NoOpMetrics struct{}

// IncPointsAccepted implements MetricsCollector.
func (n *NoOpMetrics) IncPointsAccepted(_ domain.Mode) {}

// IncPointsRejected implements MetricsCollector.
func (n *NoOpMetrics) IncPointsRejected(_ domain.Mode) {}

// SetActiveMode implements MetricsCollector.
func (n *NoOpMetrics) SetActiveMode(_ domain.Mode, _ bool) {}

// IncProfileRequests implements MetricsCollector.
func (n *NoOpMetrics) IncProfileRequests(_ string, _ bool) {}

// ObserveProfileDuration implements MetricsCollector.
func (n *NoOpMetrics) ObserveProfileDuration(_ string, _ time.Duration) {}

// IncStorageOperations implements MetricsCollector.
func (n *NoOpMetrics) IncStorageOperations(_ string, _ bool) {}

// ObserveStorageDuration implements MetricsCollector.
func (n *NoOpMetrics) ObserveStorageDuration(_ string, _ time.Duration) {}
