package domain

// Segment is a derived edge of a measurement path. Segments are
// recomputed whenever the owning vertex list changes; they are never
// stored independently.
type Segment struct {
	FromIndex        int     `json:"from"`
	ToIndex          int     `json:"to"`
	Meters           float64 `json:"meters"`
	CumulativeMeters float64 `json:"cumulative_meters"`
}

// DistanceSnapshot is the serializable state of a distance measurement.
type DistanceSnapshot struct {
	Vertices    []Point   `json:"vertices"`
	Segments    []Segment `json:"segments"`
	TotalMeters float64   `json:"total_meters"`
	Active      bool      `json:"active"`
}

// PolygonSnapshot is the serializable state of a polygon measurement.
type PolygonSnapshot struct {
	Vertices         []Point `json:"vertices"`
	AreaSquareMeters float64 `json:"area_square_meters"`
	PerimeterMeters  float64 `json:"perimeter_meters"`
	Active           bool    `json:"active"`
	Editable         bool    `json:"editable"`
	Editing          bool    `json:"editing"`
	LoadedID         string  `json:"loaded_id,omitempty"`
}

// ElevationSample is one elevation reading along a profile path.
type ElevationSample struct {
	Location                Point   `json:"location"`
	ElevationMeters         float64 `json:"elevation_meters"`
	DistanceFromStartMeters float64 `json:"distance_from_start_meters"`
}

// ProfileStats aggregates an elevation profile. Gain sums only positive
// deltas between consecutive samples; Loss sums the negative ones as a
// positive magnitude.
type ProfileStats struct {
	MaxElevation float64 `json:"max_elevation"`
	MinElevation float64 `json:"min_elevation"`
	AvgElevation float64 `json:"avg_elevation"`
	TotalGain    float64 `json:"total_gain"`
	TotalLoss    float64 `json:"total_loss"`
}

// ProfileSnapshot is the serializable state of an elevation profile
// measurement. Samples and Stats are populated only once both endpoints
// are set and the provider has answered.
type ProfileSnapshot struct {
	Endpoints []Point           `json:"endpoints"`
	Samples   []ElevationSample `json:"samples"`
	Stats     ProfileStats      `json:"stats"`
	Sampled   bool              `json:"sampled"`
	InFlight  bool              `json:"in_flight"`
}

// SavedMeasurement is a persisted measurement result. The engine only
// produces and consumes these values; storage itself belongs to the
// persistence collaborator.
type SavedMeasurement struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Mode             Mode    `json:"mode"`
	Vertices         []Point `json:"vertices"`
	TotalMeters      float64 `json:"total_meters,omitempty"`
	AreaSquareMeters float64 `json:"area_square_meters,omitempty"`
	PerimeterMeters  float64 `json:"perimeter_meters,omitempty"`
	SavedAtUnix      int64   `json:"saved_at"`
}
