package storage

import "testing"

func TestIsDataFile(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"region.geojson", true},
		{"region.GeoJSON", true},
		{"boundary.json", true},
		{"N47E011.hgt", true},
		{"dem/N47E011.HGT", true},
		{"readme.txt", false},
		{"region.geojson.bak", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := isDataFile(tt.path); got != tt.expected {
				t.Errorf("isDataFile(%q) = %v, want %v", tt.path, got, tt.expected)
			}
		})
	}
}
