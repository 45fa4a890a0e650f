// Package boundary loads region geometry from GeoJSON and serves
// point-in-polygon verdicts to the measurement sessions.
package boundary

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	"github.com/jobrunner/metes/internal/domain"
	"github.com/jobrunner/metes/internal/ports/output"
)

// Source implements output.RegionSource over a GeoJSON boundary file in
// object storage. Until the first successful load every point
// classifies as indeterminate; after a load the descriptor is swapped
// atomically so in-flight reads keep a consistent view.
type Source struct {
	storage output.ObjectStorage
	key     string
	logger  *slog.Logger

	mu         sync.RWMutex
	descriptor domain.RegionDescriptor
	ready      bool
}

// NewSource creates a boundary source for the given storage key. It
// does not load; call Reload to fetch the geometry.
func NewSource(storage output.ObjectStorage, key string, logger *slog.Logger) *Source {
	return &Source{
		storage: storage,
		key:     key,
		logger:  logger,
	}
}

// Reload fetches and parses the boundary file, replacing the current
// descriptor on success. On failure the previous descriptor stays in
// effect.
func (s *Source) Reload(ctx context.Context) error {
	reader, err := s.storage.GetReader(ctx, s.key)
	if err != nil {
		return &domain.StorageError{Operation: "getReader", Key: s.key, Err: err}
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return &domain.StorageError{Operation: "read", Key: s.key, Err: err}
	}

	descriptor, polygons, err := Parse(data)
	if err != nil {
		return fmt.Errorf("parsing boundary %s: %w", s.key, err)
	}

	s.mu.Lock()
	s.descriptor = descriptor
	s.ready = true
	s.mu.Unlock()

	s.logger.Info("boundary loaded",
		"key", s.key,
		"polygons", polygons,
		"bytes", len(data),
	)
	return nil
}

// Descriptor implements output.RegionSource.
func (s *Source) Descriptor() domain.RegionDescriptor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.descriptor
}

// Ready implements output.RegionSource.
func (s *Source) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Key returns the storage key this source loads from.
func (s *Source) Key() string {
	return s.key
}

// Parse builds a region descriptor from GeoJSON bytes. It accepts a
// FeatureCollection or a single Feature and collects every Polygon and
// MultiPolygon geometry; other geometry types are skipped. The second
// return value is the number of polygons collected.
func Parse(data []byte) (domain.RegionDescriptor, int, error) {
	features, err := unmarshalFeatures(data)
	if err != nil {
		return domain.RegionDescriptor{}, 0, err
	}

	var polygons []orb.Polygon
	for _, f := range features {
		switch geom := f.Geometry.(type) {
		case orb.Polygon:
			polygons = append(polygons, geom)
		case orb.MultiPolygon:
			polygons = append(polygons, geom...)
		}
	}
	if len(polygons) == 0 {
		return domain.RegionDescriptor{}, 0, fmt.Errorf("%w: no polygon geometry in boundary file", domain.ErrInvalidInput)
	}

	bound := polygons[0].Bound()
	for _, poly := range polygons[1:] {
		bound = bound.Union(poly.Bound())
	}

	descriptor := domain.RegionDescriptor{
		Test: func(p domain.Point) (bool, bool) {
			pt := orb.Point{p.Lng, p.Lat}
			for _, poly := range polygons {
				if planar.PolygonContains(poly, pt) {
					return true, true
				}
			}
			return false, true
		},
		Bounds: &domain.BoundingBox{
			MinLat: bound.Min.Y(),
			MinLng: bound.Min.X(),
			MaxLat: bound.Max.Y(),
			MaxLng: bound.Max.X(),
		},
	}
	return descriptor, len(polygons), nil
}

func unmarshalFeatures(data []byte) ([]*geojson.Feature, error) {
	if fc, err := geojson.UnmarshalFeatureCollection(data); err == nil {
		return fc.Features, nil
	}
	if f, err := geojson.UnmarshalFeature(data); err == nil {
		return []*geojson.Feature{f}, nil
	}
	return nil, fmt.Errorf("%w: not a GeoJSON feature or feature collection", domain.ErrInvalidInput)
}
