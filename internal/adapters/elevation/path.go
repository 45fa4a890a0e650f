// Package elevation provides elevation providers backed by a remote
// lookup API and by locally stored DEM tiles.
package elevation

import "github.com/jobrunner/metes/internal/domain"

// interpolatePath returns count locations evenly spaced by distance
// along the path. The first and last path points are always included.
// Linear interpolation in lat/lng is adequate at profile scales.
func interpolatePath(path []domain.Point, count int) []domain.Point {
	if len(path) == 0 || count <= 0 {
		return nil
	}
	if len(path) == 1 || count == 1 {
		return []domain.Point{path[0]}
	}

	total := domain.PathDistance(path)
	if total == 0 {
		out := make([]domain.Point, count)
		for i := range out {
			out[i] = path[0]
		}
		return out
	}

	// Cumulative distance at each path vertex.
	cumulative := make([]float64, len(path))
	for i := 1; i < len(path); i++ {
		cumulative[i] = cumulative[i-1] + domain.Distance(path[i-1], path[i])
	}

	out := make([]domain.Point, count)
	seg := 0
	for i := 0; i < count; i++ {
		target := total * float64(i) / float64(count-1)
		for seg < len(path)-2 && cumulative[seg+1] < target {
			seg++
		}
		segLen := cumulative[seg+1] - cumulative[seg]
		t := 0.0
		if segLen > 0 {
			t = (target - cumulative[seg]) / segLen
		}
		out[i] = domain.Point{
			Lat: path[seg].Lat + t*(path[seg+1].Lat-path[seg].Lat),
			Lng: path[seg].Lng + t*(path[seg+1].Lng-path[seg].Lng),
		}
	}
	out[count-1] = path[len(path)-1]
	return out
}
