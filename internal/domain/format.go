package domain

import "fmt"

// Unit selects the measurement system for formatted output. It affects
// only display strings, never stored numeric state.
type Unit string

// Supported unit systems.
const (
	UnitMetric   Unit = "metric"
	UnitImperial Unit = "imperial"
)

// ParseUnit parses a unit string, defaulting to metric.
func ParseUnit(s string) (Unit, error) {
	switch Unit(s) {
	case UnitMetric, "":
		return UnitMetric, nil
	case UnitImperial:
		return UnitImperial, nil
	default:
		return "", &ValidationError{
			Field:      "unit",
			Value:      s,
			Constraint: "metric|imperial",
			Message:    "unknown unit system",
		}
	}
}

// Conversion constants.
const (
	metersPerMile = 1609.344
	metersPerFoot = 0.3048

	sqMetersPerSqMile = 2589988.110336
	sqMetersPerAcre   = 4046.8564224
	sqMetersPerSqFoot = 0.09290304
)

// FormatDistance renders a distance in meters as a human-readable string.
// Metric switches km/m at 1000 m and m/cm at 1 m; imperial switches
// mi/ft at one mile and drops to fractional feet below 100 ft.
func FormatDistance(meters float64, unit Unit) string {
	if unit == UnitImperial {
		feet := meters / metersPerFoot
		switch {
		case meters >= metersPerMile:
			return fmt.Sprintf("%.2f mi", meters/metersPerMile)
		case feet >= 100:
			return fmt.Sprintf("%.0f ft", feet)
		default:
			return fmt.Sprintf("%.1f ft", feet)
		}
	}

	switch {
	case meters >= 1000:
		return fmt.Sprintf("%.2f km", meters/1000)
	case meters >= 1:
		return fmt.Sprintf("%.1f m", meters)
	default:
		return fmt.Sprintf("%.0f cm", meters*100)
	}
}

// FormatArea renders an area in square meters as a human-readable string.
// Metric switches km²/ha/m² at 1,000,000 and 10,000 m²; imperial switches
// sq mi/acres/sq ft at one square mile and one acre.
func FormatArea(squareMeters float64, unit Unit) string {
	if unit == UnitImperial {
		switch {
		case squareMeters >= sqMetersPerSqMile:
			return fmt.Sprintf("%.2f sq mi", squareMeters/sqMetersPerSqMile)
		case squareMeters >= sqMetersPerAcre:
			return fmt.Sprintf("%.2f acres", squareMeters/sqMetersPerAcre)
		default:
			return fmt.Sprintf("%.0f sq ft", squareMeters/sqMetersPerSqFoot)
		}
	}

	switch {
	case squareMeters >= 1000000:
		return fmt.Sprintf("%.2f km²", squareMeters/1000000)
	case squareMeters >= 10000:
		return fmt.Sprintf("%.2f ha", squareMeters/10000)
	default:
		return fmt.Sprintf("%.1f m²", squareMeters)
	}
}
