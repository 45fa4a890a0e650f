package domain

// RegionVerdict classifies a candidate point against the working boundary.
type RegionVerdict string

// Possible verdicts. Indeterminate means region data is not available
// yet; callers must not treat it as a rejection.
const (
	VerdictInside        RegionVerdict = "inside"
	VerdictOutside       RegionVerdict = "outside"
	VerdictIndeterminate RegionVerdict = "indeterminate"
)

// PolygonTest reports whether p lies inside the precise boundary
// geometry. ok is false when the geometry cannot answer, for example
// while boundary data is still loading.
type PolygonTest func(p Point) (inside bool, ok bool)

// BoundingBox is an axis-aligned lat/lng rectangle used as a coarse
// fallback when no precise geometry test is available.
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLat float64 `json:"max_lat"`
	MaxLng float64 `json:"max_lng"`
}

// Contains reports whether p falls within the box.
func (b BoundingBox) Contains(p Point) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat &&
		p.Lng >= b.MinLng && p.Lng <= b.MaxLng
}

// RegionDescriptor describes the boundary a session gates candidate
// points against. The engine never owns or fetches boundary data; the
// descriptor is supplied by a collaborator and is safe for concurrent
// reads.
type RegionDescriptor struct {
	Test   PolygonTest
	Bounds *BoundingBox
}

// Classify returns the verdict for a candidate point: the precise test
// decides when it can, the bounding box decides otherwise, and with no
// region data of any kind the verdict is indeterminate rather than a
// guess.
func (r RegionDescriptor) Classify(p Point) RegionVerdict {
	if r.Test != nil {
		if inside, ok := r.Test(p); ok {
			if inside {
				return VerdictInside
			}
			return VerdictOutside
		}
	}

	if r.Bounds != nil {
		if r.Bounds.Contains(p) {
			return VerdictInside
		}
		return VerdictOutside
	}

	return VerdictIndeterminate
}
