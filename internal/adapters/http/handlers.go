package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/twpayne/go-polyline"

	"github.com/jobrunner/metes/internal/domain"
)

// pointRequest is the body of every click endpoint.
type pointRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (s *Server) decodePoint(r *http.Request) (domain.Point, error) {
	var req pointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return domain.Point{}, errors.New("invalid JSON body: expected {lat, lng}")
	}
	return domain.Point{Lat: req.Lat, Lng: req.Lng}, nil
}

// parseUnit reads the optional ?unit= query parameter.
func (s *Server) parseUnit(r *http.Request) (domain.Unit, error) {
	return domain.ParseUnit(r.URL.Query().Get("unit"))
}

// handleGetMode returns the currently active measurement mode.
func (s *Server) handleGetMode(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"active": string(s.coordinator.Active()),
		"modes":  domain.Modes(),
	})
}

// handleActivateMode activates a measurement mode, aborting any other.
func (s *Server) handleActivateMode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode string `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body: expected {mode}")
		return
	}

	mode, err := domain.ParseMode(req.Mode)
	if err != nil {
		s.writeSessionError(w, err)
		return
	}
	if err := s.coordinator.Activate(mode); err != nil {
		s.writeSessionError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{"active": string(mode)})
}

// handleDeactivateMode aborts the active mode, if any.
func (s *Server) handleDeactivateMode(w http.ResponseWriter, _ *http.Request) {
	s.coordinator.Deactivate()
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"active": ""})
}

// --- distance session ---

func (s *Server) handleDistancePoint(w http.ResponseWriter, r *http.Request) {
	p, err := s.decodePoint(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, snap, err := s.distance.AddVertex(p)
	if err != nil {
		s.writeSessionError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"accepted": result.Accepted,
		"verdict":  string(result.Verdict),
		"warning":  result.Warning,
		"snapshot": snap,
	})
}

func (s *Server) handleDistanceSnapshot(w http.ResponseWriter, r *http.Request) {
	unit, err := s.parseUnit(r)
	if err != nil {
		s.writeSessionError(w, err)
		return
	}

	snap := s.distance.Snapshot()
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"snapshot":        snap,
		"total_formatted": domain.FormatDistance(snap.TotalMeters, unit),
	})
}

func (s *Server) handleDistanceStop(w http.ResponseWriter, _ *http.Request) {
	snap, err := s.distance.Stop()
	if err != nil {
		s.writeSessionError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"snapshot": snap})
}

func (s *Server) handleDistanceClear(w http.ResponseWriter, _ *http.Request) {
	snap := s.distance.Clear()
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"snapshot": snap})
}

// --- polygon session ---

func (s *Server) handlePolygonPoint(w http.ResponseWriter, r *http.Request) {
	p, err := s.decodePoint(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, snap, err := s.polygon.AddVertex(p)
	if err != nil {
		s.writeSessionError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"accepted": result.Accepted,
		"verdict":  string(result.Verdict),
		"warning":  result.Warning,
		"snapshot": snap,
	})
}

func (s *Server) handlePolygonSnapshot(w http.ResponseWriter, r *http.Request) {
	unit, err := s.parseUnit(r)
	if err != nil {
		s.writeSessionError(w, err)
		return
	}

	snap := s.polygon.Snapshot()
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"snapshot":            snap,
		"area_formatted":      domain.FormatArea(snap.AreaSquareMeters, unit),
		"perimeter_formatted": domain.FormatDistance(snap.PerimeterMeters, unit),
	})
}

func (s *Server) handlePolygonStop(w http.ResponseWriter, _ *http.Request) {
	snap, err := s.polygon.Stop()
	if err != nil {
		s.writeSessionError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"snapshot": snap})
}

func (s *Server) handlePolygonClear(w http.ResponseWriter, _ *http.Request) {
	snap := s.polygon.Clear()
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"snapshot": snap})
}

// handlePolygonLoad hydrates the polygon session either from a saved
// measurement id or from a Google encoded polyline.
func (s *Server) handlePolygonLoad(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID       string `json:"id"`
		Polyline string `json:"polyline"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body: expected {id} or {polyline}")
		return
	}

	var vertices []domain.Point
	switch {
	case req.ID != "":
		saved, err := s.store.Get(r.Context(), req.ID)
		if err != nil {
			s.writeSessionError(w, err)
			return
		}
		vertices = saved.Vertices

	case req.Polyline != "":
		coords, _, err := polyline.DecodeCoords([]byte(req.Polyline))
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid encoded polyline")
			return
		}
		vertices = make([]domain.Point, len(coords))
		for i, c := range coords {
			vertices[i] = domain.Point{Lat: c[0], Lng: c[1]}
		}

	default:
		s.writeError(w, http.StatusBadRequest, "either id or polyline is required")
		return
	}

	snap, err := s.polygon.Load(vertices, req.ID)
	if err != nil {
		s.writeSessionError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"snapshot": snap})
}

func (s *Server) handlePolygonEnableEdit(w http.ResponseWriter, _ *http.Request) {
	snap, err := s.polygon.EnableEdit()
	if err != nil {
		s.writeSessionError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"snapshot": snap})
}

func (s *Server) handlePolygonCommitEdit(w http.ResponseWriter, r *http.Request) {
	snap, err := s.polygon.CommitEdit(r.Context())
	if err != nil {
		s.writeSessionError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"snapshot": snap})
}

func (s *Server) handlePolygonCancelEdit(w http.ResponseWriter, r *http.Request) {
	snap, err := s.polygon.CancelEdit(r.Context())
	if err != nil {
		s.writeSessionError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"snapshot": snap})
}

// vertexRequest carries a vertex mutation. Index is in the body for
// inserts and in the path for set/remove.
type vertexRequest struct {
	Index int     `json:"index"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
}

func (s *Server) handlePolygonInsertVertex(w http.ResponseWriter, r *http.Request) {
	var req vertexRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body: expected {index, lat, lng}")
		return
	}

	snap, err := s.polygon.InsertVertexAt(req.Index, domain.Point{Lat: req.Lat, Lng: req.Lng})
	if err != nil {
		s.writeSessionError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"snapshot": snap})
}

func (s *Server) handlePolygonSetVertex(w http.ResponseWriter, r *http.Request) {
	index, err := parseIndex(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := s.decodePoint(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := s.polygon.SetVertexAt(index, p)
	if err != nil {
		s.writeSessionError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"snapshot": snap})
}

func (s *Server) handlePolygonRemoveVertex(w http.ResponseWriter, r *http.Request) {
	index, err := parseIndex(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := s.polygon.RemoveVertexAt(index)
	if err != nil {
		s.writeSessionError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"snapshot": snap})
}

func parseIndex(r *http.Request) (int, error) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		return 0, errors.New("invalid vertex index")
	}
	return index, nil
}

// --- elevation profile session ---

func (s *Server) handleProfilePoint(w http.ResponseWriter, r *http.Request) {
	p, err := s.decodePoint(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := s.profile.AddEndpoint(p)
	if err != nil {
		s.writeSessionError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"snapshot": snap})
}

func (s *Server) handleProfileRequest(w http.ResponseWriter, r *http.Request) {
	snap, err := s.profile.RequestProfile(r.Context())
	if err != nil {
		s.writeSessionError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"snapshot": snap})
}

func (s *Server) handleProfileSnapshot(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"snapshot": s.profile.Snapshot()})
}

func (s *Server) handleProfileClear(w http.ResponseWriter, _ *http.Request) {
	snap := s.profile.Clear()
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"snapshot": snap})
}

// --- saved measurements ---

func (s *Server) handleListMeasurements(w http.ResponseWriter, r *http.Request) {
	var mode domain.Mode
	if v := r.URL.Query().Get("mode"); v != "" {
		parsed, err := domain.ParseMode(v)
		if err != nil {
			s.writeSessionError(w, err)
			return
		}
		mode = parsed
	}

	measurements, err := s.store.List(r.Context(), mode)
	if err != nil {
		s.writeSessionError(w, err)
		return
	}
	if measurements == nil {
		measurements = []domain.SavedMeasurement{}
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"measurements": measurements,
		"count":        len(measurements),
	})
}

// handleSaveMeasurement persists the current snapshot of the named
// mode's session.
func (s *Server) handleSaveMeasurement(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode string `json:"mode"`
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body: expected {mode, name}")
		return
	}

	mode, err := domain.ParseMode(req.Mode)
	if err != nil {
		s.writeSessionError(w, err)
		return
	}

	m := domain.SavedMeasurement{Name: req.Name, Mode: mode}
	switch mode {
	case domain.ModeDistance:
		snap := s.distance.Snapshot()
		if len(snap.Vertices) < 2 {
			s.writeError(w, http.StatusBadRequest, "distance measurement needs at least 2 vertices")
			return
		}
		m.Vertices = snap.Vertices
		m.TotalMeters = snap.TotalMeters

	case domain.ModePolygon:
		snap := s.polygon.Snapshot()
		if len(snap.Vertices) < 3 {
			s.writeError(w, http.StatusBadRequest, "polygon measurement needs at least 3 vertices")
			return
		}
		m.Vertices = snap.Vertices
		m.AreaSquareMeters = snap.AreaSquareMeters
		m.PerimeterMeters = snap.PerimeterMeters

	default:
		s.writeError(w, http.StatusBadRequest, "elevation profiles cannot be saved")
		return
	}

	id, err := s.store.Save(r.Context(), m)
	if err != nil {
		s.writeSessionError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]interface{}{"id": id})
}

func (s *Server) handleGetMeasurement(w http.ResponseWriter, r *http.Request) {
	saved, err := s.store.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeSessionError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteMeasurement(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.writeSessionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- region ---

// handleRegion reports boundary readiness, and classifies a point when
// lat/lng query parameters are present.
func (s *Server) handleRegion(w http.ResponseWriter, r *http.Request) {
	descriptor := s.region.Descriptor()

	response := map[string]interface{}{
		"ready": s.region.Ready(),
	}
	if descriptor.Bounds != nil {
		response["bounds"] = descriptor.Bounds
	}

	q := r.URL.Query()
	if q.Get("lat") != "" || q.Get("lng") != "" {
		lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
		lng, errLng := strconv.ParseFloat(q.Get("lng"), 64)
		if errLat != nil || errLng != nil {
			s.writeError(w, http.StatusBadRequest, "invalid lat/lng parameters")
			return
		}
		p, err := domain.NewPoint(lat, lng)
		if err != nil {
			s.writeSessionError(w, err)
			return
		}
		response["verdict"] = string(descriptor.Classify(p))
	}

	s.writeJSON(w, http.StatusOK, response)
}

// --- health ---

// handleHealth returns detailed health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	details := s.health.GetHealthDetails(r.Context())

	status := http.StatusOK
	if !details.Healthy {
		status = http.StatusServiceUnavailable
	}

	s.writeJSON(w, status, map[string]interface{}{
		"status":       boolToStatus(details.Healthy),
		"ready":        details.Ready,
		"region_ready": details.RegionReady,
		"active_mode":  details.ActiveMode,
		"components":   details.Components,
	})
}

// handleLiveness returns liveness status.
func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	if s.health.IsHealthy(r.Context()) {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	} else {
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
	}
}

// handleReadiness returns readiness status.
func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	if s.health.IsReady(r.Context()) {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	} else {
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
	}
}

// handleOpenAPI returns the OpenAPI specification.
func (s *Server) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	spec, err := getOpenAPIJSON()
	if err != nil {
		s.logger.Error("failed to get OpenAPI spec", "error", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to load OpenAPI specification")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(spec)
}

// writeSessionError maps application errors to HTTP status codes.
func (s *Server) writeSessionError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		s.writeError(w, http.StatusBadRequest, validationErr.Message)
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrNoLoadedPolygon),
		errors.Is(err, domain.ErrNotEditing),
		errors.Is(err, domain.ErrEndpointsIncomplete):
		s.writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrProfileInFlight):
		s.writeError(w, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, domain.ErrProfileSuperseded):
		s.writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnavailable):
		s.writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		var provErr *domain.ProviderError
		if errors.As(err, &provErr) {
			s.writeError(w, http.StatusBadGateway, provErr.Error())
			return
		}
		s.logger.Error("request failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "request failed")
	}
}

// writeJSON writes a JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]interface{}{
		"error":   http.StatusText(status),
		"message": message,
	})
}

func boolToStatus(b bool) string {
	if b {
		return "ok"
	}
	return "unhealthy"
}
