// Package store provides the SQLite-backed measurement store.
package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/twpayne/go-polyline"

	"github.com/jobrunner/metes/internal/domain"
	"github.com/jobrunner/metes/internal/ports/output"
)

const schema = `
CREATE TABLE IF NOT EXISTS measurements (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL DEFAULT '',
	mode        TEXT NOT NULL,
	vertices    TEXT NOT NULL,
	total_m     REAL NOT NULL DEFAULT 0,
	area_m2     REAL NOT NULL DEFAULT 0,
	perimeter_m REAL NOT NULL DEFAULT 0,
	saved_at    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_measurements_mode ON measurements(mode);
`

// SQLiteStore implements output.MeasurementStore on a local SQLite
// database. Vertex lists are stored as encoded polylines, which keeps
// rows compact and the geometry column human-portable.
type SQLiteStore struct {
	db      *sql.DB
	metrics output.MetricsCollector
	logger  *slog.Logger
}

// NewSQLiteStore opens (and if needed initializes) the database at
// path. Use ":memory:" for an ephemeral store.
func NewSQLiteStore(path string, metrics output.MetricsCollector, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, &domain.StorageError{Operation: "open", Key: path, Err: err}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, &domain.StorageError{Operation: "migrate", Key: path, Err: err}
	}

	return &SQLiteStore{
		db:      db,
		metrics: metrics,
		logger:  logger,
	}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save implements output.MeasurementStore. An existing id is replaced;
// an empty one gets a generated id.
func (s *SQLiteStore) Save(ctx context.Context, m domain.SavedMeasurement) (string, error) {
	if m.ID == "" {
		id, err := newID()
		if err != nil {
			return "", err
		}
		m.ID = id
	}
	if m.SavedAtUnix == 0 {
		m.SavedAtUnix = time.Now().Unix()
	}

	start := time.Now()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO measurements (id, name, mode, vertices, total_m, area_m2, perimeter_m, saved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			mode = excluded.mode,
			vertices = excluded.vertices,
			total_m = excluded.total_m,
			area_m2 = excluded.area_m2,
			perimeter_m = excluded.perimeter_m,
			saved_at = excluded.saved_at`,
		m.ID, m.Name, string(m.Mode), encodeVertices(m.Vertices),
		m.TotalMeters, m.AreaSquareMeters, m.PerimeterMeters, m.SavedAtUnix,
	)
	s.observe("save", start, err)
	if err != nil {
		return "", &domain.StorageError{Operation: "save", Key: m.ID, Err: err}
	}

	s.logger.Debug("measurement saved", "id", m.ID, "mode", m.Mode, "vertices", len(m.Vertices))
	return m.ID, nil
}

// Get implements output.MeasurementStore.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*domain.SavedMeasurement, error) {
	start := time.Now()
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, mode, vertices, total_m, area_m2, perimeter_m, saved_at
		FROM measurements WHERE id = ?`, id)

	m, err := scanMeasurement(row)
	s.observe("get", start, err)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrMeasurementNotFound
	}
	if err != nil {
		return nil, &domain.StorageError{Operation: "get", Key: id, Err: err}
	}
	return m, nil
}

// List implements output.MeasurementStore. An empty mode returns all
// measurements, newest first.
func (s *SQLiteStore) List(ctx context.Context, mode domain.Mode) ([]domain.SavedMeasurement, error) {
	query := `
		SELECT id, name, mode, vertices, total_m, area_m2, perimeter_m, saved_at
		FROM measurements`
	args := []any{}
	if mode != "" {
		query += ` WHERE mode = ?`
		args = append(args, string(mode))
	}
	query += ` ORDER BY saved_at DESC, id`

	start := time.Now()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.observe("list", start, err)
		return nil, &domain.StorageError{Operation: "list", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var measurements []domain.SavedMeasurement
	for rows.Next() {
		m, err := scanMeasurement(rows)
		if err != nil {
			s.observe("list", start, err)
			return nil, &domain.StorageError{Operation: "list", Err: err}
		}
		measurements = append(measurements, *m)
	}
	s.observe("list", start, rows.Err())
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Operation: "list", Err: err}
	}
	return measurements, nil
}

// Delete implements output.MeasurementStore.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	start := time.Now()
	result, err := s.db.ExecContext(ctx, `DELETE FROM measurements WHERE id = ?`, id)
	s.observe("delete", start, err)
	if err != nil {
		return &domain.StorageError{Operation: "delete", Key: id, Err: err}
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return &domain.StorageError{Operation: "delete", Key: id, Err: err}
	}
	if affected == 0 {
		return domain.ErrMeasurementNotFound
	}
	return nil
}

func (s *SQLiteStore) observe(operation string, start time.Time, err error) {
	s.metrics.IncStorageOperations(operation, err == nil || errors.Is(err, sql.ErrNoRows))
	s.metrics.ObserveStorageDuration(operation, time.Since(start))
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanMeasurement(sc scanner) (*domain.SavedMeasurement, error) {
	var m domain.SavedMeasurement
	var mode, vertices string
	if err := sc.Scan(&m.ID, &m.Name, &mode, &vertices,
		&m.TotalMeters, &m.AreaSquareMeters, &m.PerimeterMeters, &m.SavedAtUnix); err != nil {
		return nil, err
	}
	m.Mode = domain.Mode(mode)

	points, err := decodeVertices(vertices)
	if err != nil {
		return nil, fmt.Errorf("decoding vertices for %s: %w", m.ID, err)
	}
	m.Vertices = points
	return &m, nil
}

func encodeVertices(points []domain.Point) string {
	coords := make([][]float64, len(points))
	for i, p := range points {
		coords[i] = []float64{p.Lat, p.Lng}
	}
	return string(polyline.EncodeCoords(coords))
}

func decodeVertices(encoded string) ([]domain.Point, error) {
	if encoded == "" {
		return nil, nil
	}
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, err
	}
	points := make([]domain.Point, len(coords))
	for i, c := range coords {
		points[i] = domain.Point{Lat: c[0], Lng: c[1]}
	}
	return points, nil
}

func newID() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating id: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
