package application

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/jobrunner/metes/internal/domain"
	"github.com/jobrunner/metes/internal/ports/input"
	"github.com/jobrunner/metes/internal/ports/output"
)

// Coordinator enforces mode exclusivity across the measurement
// sessions. At most one mode is active at a time; activating a mode
// aborts whichever one currently holds the slot.
type Coordinator struct {
	mu        sync.Mutex
	distance  *DistanceSession
	polygon   *PolygonSession
	elevation *ElevationProfileSession
	metrics   output.MetricsCollector
	logger    *slog.Logger

	active domain.Mode
}

var _ input.ModeCoordinator = (*Coordinator)(nil)

// NewCoordinator creates a coordinator over the three sessions.
func NewCoordinator(
	distance *DistanceSession,
	polygon *PolygonSession,
	elevation *ElevationProfileSession,
	metrics output.MetricsCollector,
	logger *slog.Logger,
) *Coordinator {
	return &Coordinator{
		distance:  distance,
		polygon:   polygon,
		elevation: elevation,
		metrics:   metrics,
		logger:    logger,
	}
}

// Activate makes mode the active one, aborting the previously active
// session first. Activating the already-active mode is a no-op.
func (c *Coordinator) Activate(mode domain.Mode) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if mode == c.active {
		return nil
	}

	if c.active != "" {
		c.abortLocked(c.active)
		c.metrics.SetActiveMode(c.active, false)
	}

	switch mode {
	case domain.ModeDistance:
		c.distance.Start()
	case domain.ModePolygon:
		c.polygon.Start()
	case domain.ModeElevation:
		c.elevation.Start()
	default:
		return fmt.Errorf("%w: unknown mode %q", domain.ErrInvalidInput, mode)
	}

	c.active = mode
	c.metrics.SetActiveMode(mode, true)
	c.logger.Info("mode activated", "mode", mode)
	return nil
}

// Deactivate aborts the active mode, if any, leaving no mode active.
func (c *Coordinator) Deactivate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active == "" {
		return
	}

	c.abortLocked(c.active)
	c.metrics.SetActiveMode(c.active, false)
	c.logger.Info("mode deactivated", "mode", c.active)
	c.active = ""
}

// Active reports the currently active mode, or "" when none is.
func (c *Coordinator) Active() domain.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

func (c *Coordinator) abortLocked(mode domain.Mode) {
	switch mode {
	case domain.ModeDistance:
		c.distance.Abort()
	case domain.ModePolygon:
		c.polygon.Abort()
	case domain.ModeElevation:
		c.elevation.Abort()
	}
}
