package application

import (
	"context"

	"github.com/jobrunner/metes/internal/ports/input"
	"github.com/jobrunner/metes/internal/ports/output"
)

// HealthService provides health check functionality.
type HealthService struct {
	region      output.RegionSource
	coordinator *Coordinator
}

// NewHealthService creates a new health service.
func NewHealthService(region output.RegionSource, coordinator *Coordinator) *HealthService {
	return &HealthService{
		region:      region,
		coordinator: coordinator,
	}
}

var _ input.HealthChecker = (*HealthService)(nil)

// IsHealthy returns true if the service is healthy.
func (s *HealthService) IsHealthy(ctx context.Context) bool {
	return true // Basic health check
}

// IsReady returns true if the service is ready to accept requests.
// Measurement sessions work without boundary data (clicks are gated as
// indeterminate), so readiness does not depend on the region source.
func (s *HealthService) IsReady(ctx context.Context) bool {
	return true
}

// GetHealthDetails returns detailed health information.
func (s *HealthService) GetHealthDetails(ctx context.Context) input.HealthDetails {
	regionReady := s.region.Ready()

	components := map[string]string{
		"boundary": "degraded",
	}
	if regionReady {
		components["boundary"] = "ok"
	}

	return input.HealthDetails{
		Healthy:     s.IsHealthy(ctx),
		Ready:       s.IsReady(ctx),
		RegionReady: regionReady,
		ActiveMode:  string(s.coordinator.Active()),
		Components:  components,
	}
}
