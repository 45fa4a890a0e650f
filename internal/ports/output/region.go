package output

import "github.com/jobrunner/metes/internal/domain"

// RegionSource defines the secondary port for boundary data. The data
// may still be loading when a session first asks; in that case the
// returned descriptor classifies every point as indeterminate.
type RegionSource interface {
	// Descriptor returns the current boundary descriptor. The returned
	// value is safe for concurrent reads.
	Descriptor() domain.RegionDescriptor

	// Ready reports whether boundary data has finished loading.
	Ready() bool
}

// StaticRegion is a RegionSource backed by a fixed descriptor, useful
// for tests and for callers that build their own boundary.
type StaticRegion struct {
	Region domain.RegionDescriptor
}

// Descriptor implements RegionSource.
func (s *StaticRegion) Descriptor() domain.RegionDescriptor { return s.Region }

// Ready implements RegionSource.
func (s *StaticRegion) Ready() bool {
	return s.Region.Test != nil || s.Region.Bounds != nil
}
