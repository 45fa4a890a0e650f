// Package domain contains the core business entities and value objects.
package domain

import "fmt"

// Point represents a WGS84 geographic coordinate.
//
// Points are immutable once committed to a session: mutation always means
// constructing a new value, never writing through a stored one.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// NewPoint creates a validated Point.
func NewPoint(lat, lng float64) (Point, error) {
	p := Point{Lat: lat, Lng: lng}
	if err := p.Validate(); err != nil {
		return Point{}, err
	}
	return p, nil
}

// Validate checks that the coordinate is within WGS84 bounds.
func (p Point) Validate() error {
	if p.Lat < -90 || p.Lat > 90 {
		return &ValidationError{
			Field:      "lat",
			Value:      p.Lat,
			Constraint: "[-90, 90]",
			Message:    "latitude must be between -90 and 90",
		}
	}
	if p.Lng < -180 || p.Lng > 180 {
		return &ValidationError{
			Field:      "lng",
			Value:      p.Lng,
			Constraint: "[-180, 180]",
			Message:    "longitude must be between -180 and 180",
		}
	}
	return nil
}

// Equal reports whether two points are the same coordinate.
func (p Point) Equal(o Point) bool {
	return p.Lat == o.Lat && p.Lng == o.Lng
}

// String returns a string representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%f, %f)", p.Lat, p.Lng)
}
