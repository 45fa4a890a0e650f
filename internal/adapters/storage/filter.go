package storage

import "strings"

// dataFileExtensions are the file types the storage adapters serve:
// GeoJSON boundary geometry and SRTM elevation tiles.
var dataFileExtensions = []string{".geojson", ".json", ".hgt"}

// isDataFile checks whether the name is a servable data file.
func isDataFile(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range dataFileExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
