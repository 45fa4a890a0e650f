package domain

import "fmt"

// Mode identifies a measurement mode. The set is closed: switching on a
// Mode must handle exactly these three values.
type Mode string

// Measurement modes.
const (
	ModeDistance  Mode = "distance"
	ModePolygon   Mode = "polygon"
	ModeElevation Mode = "elevation"
)

// Modes lists all measurement modes in activation-priority order.
func Modes() []Mode {
	return []Mode{ModeDistance, ModePolygon, ModeElevation}
}

// ParseMode parses a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeDistance, ModePolygon, ModeElevation:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("mode %q: %w", s, ErrInvalidInput)
	}
}
