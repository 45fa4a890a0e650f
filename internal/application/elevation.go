package application

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jobrunner/metes/internal/domain"
	"github.com/jobrunner/metes/internal/ports/input"
	"github.com/jobrunner/metes/internal/ports/output"
)

// Sample count bounds for a profile request. The count scales with path
// length at roughly one sample per hundred meters.
const (
	minProfileSamples     = 10
	maxProfileSamples     = 256
	metersPerSampleApprox = 100.0
)

// ElevationProfileSession correlates a two-point path with sampled
// elevation data. Endpoints behave as a sliding window of size two: a
// third click restarts the pair with only the new point retained.
//
// RequestProfile is the single suspension point in the engine. Each
// request is tagged with the endpoint generation it was issued for;
// responses arriving after the endpoints moved on are discarded rather
// than applied to state that no longer matches them.
type ElevationProfileSession struct {
	mu       sync.Mutex
	provider output.ElevationProvider
	events   output.MeasurementEvents
	metrics  output.MetricsCollector
	logger   *slog.Logger

	active     bool
	endpoints  []domain.Point
	samples    []domain.ElevationSample
	stats      domain.ProfileStats
	sampled    bool
	inFlight   bool
	generation uint64
}

var _ input.ElevationProfiler = (*ElevationProfileSession)(nil)

// NewElevationProfileSession creates a new elevation profile session.
func NewElevationProfileSession(
	provider output.ElevationProvider,
	events output.MeasurementEvents,
	metrics output.MetricsCollector,
	logger *slog.Logger,
) *ElevationProfileSession {
	return &ElevationProfileSession{
		provider: provider,
		events:   events,
		metrics:  metrics,
		logger:   logger,
	}
}

// Start arms the session for endpoint collection, discarding any prior
// profile and invalidating outstanding requests. Only the coordinator
// calls it; endpoints offered to an unstarted session are refused so
// mode exclusivity holds for elevation the same way it does for the
// vertex sessions.
func (s *ElevationProfileSession) Start() domain.ProfileSnapshot {
	s.mu.Lock()
	s.active = true
	s.endpoints = nil
	s.samples = nil
	s.stats = domain.ProfileStats{}
	s.sampled = false
	s.generation++
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Debug("elevation session started")
	return snap
}

// AddEndpoint offers a clicked endpoint. From an already-complete pair
// (or a sampled profile) the new point starts a fresh pair; any
// outstanding provider request is invalidated.
func (s *ElevationProfileSession) AddEndpoint(p domain.Point) (domain.ProfileSnapshot, error) {
	if err := p.Validate(); err != nil {
		return s.Snapshot(), err
	}

	s.mu.Lock()
	if !s.active {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, &domain.TransitionError{
			Mode:      domain.ModeElevation,
			Operation: "addEndpoint",
			State:     "inactive",
		}
	}
	if len(s.endpoints) >= 2 || s.sampled {
		s.endpoints = []domain.Point{p}
		s.samples = nil
		s.stats = domain.ProfileStats{}
		s.sampled = false
		s.generation++
	} else {
		s.endpoints = append(s.endpoints, p)
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.events.ProfileUpdated(snap)
	return snap, nil
}

// RequestProfile samples the two-point path through the elevation
// provider. It is valid only with both endpoints set, rejects duplicate
// requests while one is outstanding, and leaves the endpoints intact on
// provider failure so the caller can retry without re-selecting points.
func (s *ElevationProfileSession) RequestProfile(ctx context.Context) (domain.ProfileSnapshot, error) {
	s.mu.Lock()
	if !s.active {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, &domain.TransitionError{
			Mode:      domain.ModeElevation,
			Operation: "requestProfile",
			State:     "inactive",
		}
	}
	if len(s.endpoints) != 2 {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, domain.ErrEndpointsIncomplete
	}
	if s.inFlight {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, domain.ErrProfileInFlight
	}

	generation := s.generation
	path := make([]domain.Point, len(s.endpoints))
	copy(path, s.endpoints)
	s.inFlight = true
	s.mu.Unlock()

	count := sampleCountFor(domain.PathDistance(path))
	start := time.Now()
	readings, err := s.provider.SampleElevation(ctx, path, count)
	elapsed := time.Since(start)

	s.mu.Lock()
	s.inFlight = false

	if err != nil {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		s.metrics.IncProfileRequests(s.provider.Name(), false)
		s.logger.Warn("elevation provider failed", "provider", s.provider.Name(), "error", err)
		return snap, &domain.ProviderError{Provider: s.provider.Name(), Err: err}
	}

	if generation != s.generation {
		// The user moved on while the request was outstanding; the
		// response no longer describes the current endpoints.
		snap := s.snapshotLocked()
		s.mu.Unlock()
		s.logger.Debug("stale elevation response discarded",
			"request_generation", generation,
			"current_generation", s.generation,
		)
		return snap, domain.ErrProfileSuperseded
	}

	s.samples = samplesFrom(readings)
	s.stats = statsFor(s.samples)
	s.sampled = true
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.metrics.IncProfileRequests(s.provider.Name(), true)
	s.metrics.ObserveProfileDuration(s.provider.Name(), elapsed)
	s.events.ProfileUpdated(snap)
	return snap, nil
}

// Clear resets the session to idle, discarding endpoints, samples and
// stats, and invalidating any outstanding request. A cleared session
// refuses endpoints until the coordinator starts it again.
func (s *ElevationProfileSession) Clear() domain.ProfileSnapshot {
	s.mu.Lock()
	s.active = false
	s.endpoints = nil
	s.samples = nil
	s.stats = domain.ProfileStats{}
	s.sampled = false
	s.generation++
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.events.Cleared(domain.ModeElevation)
	return snap
}

// Abort disarms and clears the session when the coordinator switches
// the active mode away from elevation.
func (s *ElevationProfileSession) Abort() domain.ProfileSnapshot {
	return s.Clear()
}

// Snapshot returns the current state without mutating it.
func (s *ElevationProfileSession) Snapshot() domain.ProfileSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *ElevationProfileSession) snapshotLocked() domain.ProfileSnapshot {
	endpoints := make([]domain.Point, len(s.endpoints))
	copy(endpoints, s.endpoints)
	samples := make([]domain.ElevationSample, len(s.samples))
	copy(samples, s.samples)

	return domain.ProfileSnapshot{
		Endpoints: endpoints,
		Samples:   samples,
		Stats:     s.stats,
		Sampled:   s.sampled,
		InFlight:  s.inFlight,
	}
}

// sampleCountFor scales the provider sample count with path length,
// clamped to [minProfileSamples, maxProfileSamples].
func sampleCountFor(pathMeters float64) int {
	count := minProfileSamples + int(pathMeters/metersPerSampleApprox)
	if count < minProfileSamples {
		count = minProfileSamples
	}
	if count > maxProfileSamples {
		count = maxProfileSamples
	}
	return count
}

// samplesFrom annotates provider readings with cumulative
// distance-from-start along the sampled path.
func samplesFrom(readings []output.ElevationReading) []domain.ElevationSample {
	samples := make([]domain.ElevationSample, len(readings))
	cumulative := 0.0
	for i, r := range readings {
		if i > 0 {
			cumulative += domain.Distance(readings[i-1].Location, r.Location)
		}
		samples[i] = domain.ElevationSample{
			Location:                r.Location,
			ElevationMeters:         r.ElevationMeters,
			DistanceFromStartMeters: cumulative,
		}
	}
	return samples
}

// statsFor aggregates a sample list. Gain sums positive deltas between
// consecutive samples; loss sums negative deltas as a positive
// magnitude.
func statsFor(samples []domain.ElevationSample) domain.ProfileStats {
	if len(samples) == 0 {
		return domain.ProfileStats{}
	}

	stats := domain.ProfileStats{
		MaxElevation: samples[0].ElevationMeters,
		MinElevation: samples[0].ElevationMeters,
	}

	sum := 0.0
	for i, s := range samples {
		e := s.ElevationMeters
		sum += e
		if e > stats.MaxElevation {
			stats.MaxElevation = e
		}
		if e < stats.MinElevation {
			stats.MinElevation = e
		}
		if i > 0 {
			delta := e - samples[i-1].ElevationMeters
			if delta > 0 {
				stats.TotalGain += delta
			} else {
				stats.TotalLoss += -delta
			}
		}
	}
	stats.AvgElevation = sum / float64(len(samples))

	return stats
}
