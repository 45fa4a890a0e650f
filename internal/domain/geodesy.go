package domain

import "math"

// EarthRadiusMeters is the mean Earth radius used for great-circle math.
const EarthRadiusMeters = 6371000.0

// MetersPerDegree is the approximate length of one degree of arc at the
// equator. PolygonArea scales its planar result by the square of this
// constant regardless of latitude, so areas away from the equator are
// under- or over-estimated. This matches the behavior measurements were
// historically produced with; do not "fix" it without versioning stored
// results.
const MetersPerDegree = 111319.9

// Distance returns the haversine great-circle distance between two points
// in meters. It is a total function over valid points.
func Distance(a, b Point) float64 {
	if a.Equal(b) {
		return 0
	}

	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dlat := (b.Lat - a.Lat) * math.Pi / 180
	dlng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlng/2)*math.Sin(dlng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

// PathDistance returns the cumulative distance along a polyline in meters.
// Fewer than two points yield 0.
func PathDistance(points []Point) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += Distance(points[i-1], points[i])
	}
	return total
}

// PolygonArea returns the enclosed area of a ring in square meters using
// the shoelace formula on raw degrees, scaled by MetersPerDegree². The
// ring is closed implicitly; the caller must not duplicate the first
// vertex. Fewer than three points yield 0.
func PolygonArea(points []Point) float64 {
	if len(points) < 3 {
		return 0
	}

	sum := 0.0
	j := len(points) - 1
	for i := range points {
		sum += (points[j].Lng + points[i].Lng) * (points[j].Lat - points[i].Lat)
		j = i
	}

	return math.Abs(sum/2) * MetersPerDegree * MetersPerDegree
}

// PolygonPerimeter returns the perimeter of a ring in meters, including
// the implicit closing edge from the last vertex back to the first.
func PolygonPerimeter(points []Point) float64 {
	if len(points) < 2 {
		return 0
	}
	return PathDistance(points) + Distance(points[len(points)-1], points[0])
}

// Bearing describes a forward azimuth with its compass label.
type Bearing struct {
	Degrees float64 `json:"degrees"`
	Compass string  `json:"compass"`
}

var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// BearingBetween returns the initial bearing from a to b, normalized to
// [0, 360) and quantized to the 16-point compass rose.
func BearingBetween(a, b Point) Bearing {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dlng := (b.Lng - a.Lng) * math.Pi / 180

	y := math.Sin(dlng) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dlng)

	deg := math.Atan2(y, x) * 180 / math.Pi
	deg = math.Mod(deg+360, 360)

	idx := int(math.Mod(deg+11.25, 360) / 22.5)

	return Bearing{
		Degrees: deg,
		Compass: compassPoints[idx],
	}
}

// SegmentsFor derives the segment list for an ordered vertex list.
// The result always has max(len(points)-1, 0) entries.
func SegmentsFor(points []Point) []Segment {
	if len(points) < 2 {
		return []Segment{}
	}

	segments := make([]Segment, 0, len(points)-1)
	cumulative := 0.0
	for i := 1; i < len(points); i++ {
		meters := Distance(points[i-1], points[i])
		cumulative += meters
		segments = append(segments, Segment{
			FromIndex:        i - 1,
			ToIndex:          i,
			Meters:           meters,
			CumulativeMeters: cumulative,
		})
	}
	return segments
}
