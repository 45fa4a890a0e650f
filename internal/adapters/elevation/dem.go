package elevation

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jobrunner/metes/internal/domain"
	"github.com/jobrunner/metes/internal/ports/output"
)

// SRTM .hgt tiles are square grids of big-endian int16 samples; the
// side length determines the resolution (3601 for 1-arcsecond, 1201
// for 3-arcsecond). Rows run north to south.
const srtmVoid = -32768

// DEMProvider implements output.ElevationProvider over SRTM height
// tiles in object storage. Tiles are fetched on demand and cached in
// memory for the life of the process; with a cache directory
// configured they are also staged on local disk so restarts do not
// re-download them. Tiles absent from storage read as sea level,
// matching the SRTM convention of not shipping ocean tiles.
type DEMProvider struct {
	storage  output.ObjectStorage
	prefix   string
	cacheDir string
	logger   *slog.Logger

	mu        sync.Mutex
	tiles     map[string]*demTile
	inventory map[string]bool // keys known to exist, nil until listed
	listed    bool
}

// DEMConfig holds DEM provider configuration.
type DEMConfig struct {
	Prefix   string // key prefix inside storage, e.g. "dem/"
	CacheDir string // local staging directory, empty disables disk caching
}

// NewDEMProvider creates a new DEM-backed elevation provider.
func NewDEMProvider(storage output.ObjectStorage, cfg DEMConfig, logger *slog.Logger) *DEMProvider {
	return &DEMProvider{
		storage:  storage,
		prefix:   cfg.Prefix,
		cacheDir: cfg.CacheDir,
		logger:   logger,
		tiles:    make(map[string]*demTile),
	}
}

// Name implements output.ElevationProvider.
func (p *DEMProvider) Name() string {
	return "dem"
}

// SampleElevation implements output.ElevationProvider.
func (p *DEMProvider) SampleElevation(ctx context.Context, path []domain.Point, sampleCount int) ([]output.ElevationReading, error) {
	locations := interpolatePath(path, sampleCount)

	readings := make([]output.ElevationReading, len(locations))
	for i, loc := range locations {
		tile, err := p.tileFor(ctx, loc)
		if err != nil {
			return nil, err
		}
		readings[i] = output.ElevationReading{
			Location:        loc,
			ElevationMeters: tile.sample(loc),
		}
	}
	return readings, nil
}

// seaLevelTile stands in for tiles that do not exist in storage.
var seaLevelTile = &demTile{side: 2, samples: make([]int16, 4)}

// tileFor returns the cached tile covering the location, fetching it
// from storage on first use. Tiles not present in storage resolve to
// a flat sea-level tile.
func (p *DEMProvider) tileFor(ctx context.Context, loc domain.Point) (*demTile, error) {
	key := p.prefix + tileName(loc)

	p.mu.Lock()
	if tile, ok := p.tiles[key]; ok {
		p.mu.Unlock()
		return tile, nil
	}
	p.mu.Unlock()

	available, err := p.tileAvailable(ctx, key)
	if err != nil {
		return nil, err
	}

	var tile *demTile
	if !available {
		p.logger.Debug("dem tile absent, reading as sea level", "key", key)
		tile = seaLevelTile
	} else {
		data, err := p.fetchTile(ctx, key)
		if err != nil {
			return nil, err
		}
		tile, err = parseTile(loc, data)
		if err != nil {
			return nil, fmt.Errorf("parsing tile %s: %w", key, err)
		}
		p.logger.Debug("dem tile loaded", "key", key, "side", tile.side)
	}

	p.mu.Lock()
	p.tiles[key] = tile
	p.mu.Unlock()

	return tile, nil
}

// tileAvailable reports whether storage holds the key. The first call
// lists the storage once to build an inventory; when listing is not
// supported the check falls back to per-key existence probes.
func (p *DEMProvider) tileAvailable(ctx context.Context, key string) (bool, error) {
	p.mu.Lock()
	if !p.listed {
		p.listed = true
		p.inventory = p.listTiles(ctx)
	}
	inventory := p.inventory
	p.mu.Unlock()

	if inventory != nil {
		return inventory[key], nil
	}

	ok, err := p.storage.Exists(ctx, key)
	if err != nil {
		return false, &domain.StorageError{Operation: "exists", Key: key, Err: err}
	}
	return ok, nil
}

// listTiles builds the tile inventory. Returns nil when the backend
// cannot enumerate its objects.
func (p *DEMProvider) listTiles(ctx context.Context) map[string]bool {
	objects, err := p.storage.List(ctx)
	if err != nil {
		p.logger.Warn("listing dem tiles failed, falling back to per-tile probes", "error", err)
		return nil
	}
	if objects == nil {
		return nil
	}

	inventory := make(map[string]bool, len(objects))
	for _, obj := range objects {
		name := strings.TrimPrefix(obj.Key, p.prefix)
		if !strings.HasSuffix(strings.ToLower(name), ".hgt") {
			continue
		}
		// Backends differ on whether listed keys carry the prefix, so
		// index both spellings.
		inventory[p.prefix+name] = true
		inventory[obj.Key] = true
	}
	p.logger.Info("dem tile inventory built", "tiles", len(inventory))
	return inventory
}

// fetchTile reads the raw tile bytes, staging them in the cache
// directory first when one is configured.
func (p *DEMProvider) fetchTile(ctx context.Context, key string) ([]byte, error) {
	if p.cacheDir != "" {
		return p.fetchViaCache(ctx, key)
	}

	reader, err := p.storage.GetReader(ctx, key)
	if err != nil {
		return nil, &domain.StorageError{Operation: "getReader", Key: key, Err: err}
	}
	defer func() { _ = reader.Close() }()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, &domain.StorageError{Operation: "read", Key: key, Err: err}
	}
	return data, nil
}

func (p *DEMProvider) fetchViaCache(ctx context.Context, key string) ([]byte, error) {
	local := filepath.Join(p.cacheDir, filepath.Base(key))

	if _, err := os.Stat(local); err != nil {
		if err := p.storage.Download(ctx, key, local); err != nil {
			return nil, &domain.StorageError{Operation: "download", Key: key, Err: err}
		}
		p.logger.Debug("dem tile staged", "key", key, "path", local)
	}

	data, err := os.ReadFile(local) //#nosec G304 -- local is built from the configured cache dir
	if err != nil {
		return nil, &domain.StorageError{Operation: "read", Key: key, Err: err}
	}
	return data, nil
}

// tileName builds the SRTM file name for the tile containing the
// location, e.g. N47E011.hgt. Tiles are named by their southwest
// corner.
func tileName(loc domain.Point) string {
	latDir, lngDir := "N", "E"
	lat := int(math.Floor(loc.Lat))
	lng := int(math.Floor(loc.Lng))
	if lat < 0 {
		latDir = "S"
		lat = -lat
	}
	if lng < 0 {
		lngDir = "W"
		lng = -lng
	}
	return fmt.Sprintf("%s%02d%s%03d.hgt", latDir, lat, lngDir, lng)
}

// demTile is one parsed SRTM tile.
type demTile struct {
	swLat, swLng float64 // southwest corner
	side         int
	samples      []int16
}

func parseTile(loc domain.Point, data []byte) (*demTile, error) {
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("%w: odd tile size %d", domain.ErrInvalidInput, len(data))
	}
	count := len(data) / 2
	side := int(math.Sqrt(float64(count)))
	if side*side != count || side < 2 {
		return nil, fmt.Errorf("%w: tile size %d is not a square grid", domain.ErrInvalidInput, len(data))
	}

	samples := make([]int16, count)
	for i := range samples {
		samples[i] = int16(binary.BigEndian.Uint16(data[i*2:]))
	}

	return &demTile{
		swLat:   math.Floor(loc.Lat),
		swLng:   math.Floor(loc.Lng),
		side:    side,
		samples: samples,
	}, nil
}

// sample bilinearly interpolates the elevation at the location. Void
// cells contribute 0.
func (t *demTile) sample(loc domain.Point) float64 {
	// Fractional grid position; row 0 is the north edge.
	x := (loc.Lng - t.swLng) * float64(t.side-1)
	y := (1 - (loc.Lat - t.swLat)) * float64(t.side-1)

	x0 := clampIndex(int(x), t.side)
	y0 := clampIndex(int(y), t.side)
	x1 := clampIndex(x0+1, t.side)
	y1 := clampIndex(y0+1, t.side)
	fx := x - float64(x0)
	fy := y - float64(y0)

	top := lerp(t.at(x0, y0), t.at(x1, y0), fx)
	bottom := lerp(t.at(x0, y1), t.at(x1, y1), fx)
	return lerp(top, bottom, fy)
}

func (t *demTile) at(x, y int) float64 {
	v := t.samples[y*t.side+x]
	if v == srtmVoid {
		return 0
	}
	return float64(v)
}

func clampIndex(i, side int) int {
	if i < 0 {
		return 0
	}
	if i > side-1 {
		return side - 1
	}
	return i
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}
