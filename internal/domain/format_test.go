package domain

import (
	"strings"
	"testing"
)

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		name   string
		meters float64
		unit   Unit
		want   string
	}{
		{name: "metric kilometers", meters: 12345, unit: UnitMetric, want: "12.35 km"},
		{name: "metric meters", meters: 999, unit: UnitMetric, want: "999.0 m"},
		{name: "metric boundary to km", meters: 1000, unit: UnitMetric, want: "1.00 km"},
		{name: "metric centimeters", meters: 0.42, unit: UnitMetric, want: "42 cm"},
		{name: "imperial miles", meters: 3218.688, unit: UnitImperial, want: "2.00 mi"},
		{name: "imperial feet", meters: 152.4, unit: UnitImperial, want: "500 ft"},
		{name: "imperial short feet", meters: 15.24, unit: UnitImperial, want: "50.0 ft"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatDistance(tt.meters, tt.unit)
			if got != tt.want {
				t.Errorf("FormatDistance(%f, %s) = %q, want %q", tt.meters, tt.unit, got, tt.want)
			}
		})
	}
}

func TestFormatDistanceDelhiMumbaiEndsInKm(t *testing.T) {
	d := Distance(Point{Lat: 28.6139, Lng: 77.2090}, Point{Lat: 19.0760, Lng: 72.8777})
	s := FormatDistance(d, UnitMetric)
	if !strings.HasSuffix(s, " km") {
		t.Errorf("formatted distance %q should end in \" km\"", s)
	}
}

func TestFormatArea(t *testing.T) {
	tests := []struct {
		name         string
		squareMeters float64
		unit         Unit
		want         string
	}{
		{name: "metric square kilometers", squareMeters: 2500000, unit: UnitMetric, want: "2.50 km²"},
		{name: "metric hectares", squareMeters: 25000, unit: UnitMetric, want: "2.50 ha"},
		{name: "metric square meters", squareMeters: 9999, unit: UnitMetric, want: "9999.0 m²"},
		{name: "imperial square miles", squareMeters: 5179976.220672, unit: UnitImperial, want: "2.00 sq mi"},
		{name: "imperial acres", squareMeters: 8093.7128448, unit: UnitImperial, want: "2.00 acres"},
		{name: "imperial square feet", squareMeters: 92.90304, unit: UnitImperial, want: "1000 sq ft"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatArea(tt.squareMeters, tt.unit)
			if got != tt.want {
				t.Errorf("FormatArea(%f, %s) = %q, want %q", tt.squareMeters, tt.unit, got, tt.want)
			}
		})
	}
}

func TestParseUnit(t *testing.T) {
	tests := []struct {
		input   string
		want    Unit
		wantErr bool
	}{
		{input: "", want: UnitMetric},
		{input: "metric", want: UnitMetric},
		{input: "imperial", want: UnitImperial},
		{input: "nautical", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("parse "+tt.input, func(t *testing.T) {
			got, err := ParseUnit(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseUnit(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseUnit(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseUnit(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}
