package output

import (
	"context"

	"github.com/jobrunner/metes/internal/domain"
)

// MeasurementStore defines the secondary port for measurement
// persistence. Sessions hand over plain snapshots; serialization and
// the storage medium belong entirely to the adapter.
type MeasurementStore interface {
	// Save persists a measurement and returns its id. An empty
	// measurement id means the store assigns one.
	Save(ctx context.Context, m domain.SavedMeasurement) (string, error)

	// Get returns a saved measurement by id.
	Get(ctx context.Context, id string) (*domain.SavedMeasurement, error)

	// List returns all saved measurements, optionally filtered by mode.
	List(ctx context.Context, mode domain.Mode) ([]domain.SavedMeasurement, error)

	// Delete removes a saved measurement.
	Delete(ctx context.Context, id string) error
}
