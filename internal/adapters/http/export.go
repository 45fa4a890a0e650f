package http

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	kml "github.com/twpayne/go-kml/v2"

	"github.com/jobrunner/metes/internal/domain"
)

// handleExportKML renders the current snapshot of a mode's session as
// a KML document. Distance sessions export a LineString, polygon
// sessions a closed Polygon.
func (s *Server) handleExportKML(w http.ResponseWriter, r *http.Request) {
	mode, err := domain.ParseMode(mux.Vars(r)["mode"])
	if err != nil {
		s.writeSessionError(w, err)
		return
	}

	var doc kml.Element
	switch mode {
	case domain.ModeDistance:
		snap := s.distance.Snapshot()
		if len(snap.Vertices) < 2 {
			s.writeError(w, http.StatusConflict, "distance session has fewer than 2 vertices")
			return
		}
		doc = distanceKML(snap)

	case domain.ModePolygon:
		snap := s.polygon.Snapshot()
		if len(snap.Vertices) < 3 {
			s.writeError(w, http.StatusConflict, "polygon session has fewer than 3 vertices")
			return
		}
		doc = polygonKML(snap)

	default:
		s.writeError(w, http.StatusBadRequest, "elevation profiles cannot be exported as KML")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.google-earth.kml+xml")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.kml", mode))
	if err := doc.Write(w); err != nil {
		s.logger.Error("failed to write KML export", "mode", mode, "error", err)
	}
}

func distanceKML(snap domain.DistanceSnapshot) kml.Element {
	return kml.KML(
		kml.Document(
			kml.Name("Distance Measurement"),
			kml.Placemark(
				kml.Name(fmt.Sprintf("Path (%s)", domain.FormatDistance(snap.TotalMeters, domain.UnitMetric))),
				kml.LineString(
					kml.Tessellate(true),
					kml.Coordinates(toKMLCoordinates(snap.Vertices)...),
				),
			),
		),
	)
}

func polygonKML(snap domain.PolygonSnapshot) kml.Element {
	// KML linear rings must be closed.
	ring := toKMLCoordinates(snap.Vertices)
	ring = append(ring, ring[0])

	return kml.KML(
		kml.Document(
			kml.Name("Area Measurement"),
			kml.Placemark(
				kml.Name(fmt.Sprintf("Area (%s)", domain.FormatArea(snap.AreaSquareMeters, domain.UnitMetric))),
				kml.Polygon(
					kml.Tessellate(true),
					kml.OuterBoundaryIs(
						kml.LinearRing(
							kml.Coordinates(ring...),
						),
					),
				),
			),
		),
	)
}

func toKMLCoordinates(vertices []domain.Point) []kml.Coordinate {
	coords := make([]kml.Coordinate, len(vertices))
	for i, v := range vertices {
		coords[i] = kml.Coordinate{Lon: v.Lng, Lat: v.Lat}
	}
	return coords
}
