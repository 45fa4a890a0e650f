package storage

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jobrunner/metes/internal/ports/output"
)

// HTTPStorage reads data files from a plain HTTP(S) file server. The
// server cannot be enumerated, so List reads an index file that names
// one object per line.
type HTTPStorage struct {
	client    *http.Client
	baseURL   string
	indexFile string
	username  string
	password  string
}

// HTTPConfig holds HTTP storage configuration.
type HTTPConfig struct {
	BaseURL   string
	IndexFile string // default: index.txt
	Timeout   time.Duration
	Username  string
	Password  string
}

// NewHTTPStorage creates an HTTP storage adapter.
func NewHTTPStorage(cfg HTTPConfig) *HTTPStorage {
	if cfg.IndexFile == "" {
		cfg.IndexFile = "index.txt"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Minute
	}

	return &HTTPStorage{
		client:    &http.Client{Timeout: cfg.Timeout},
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		indexFile: cfg.IndexFile,
		username:  cfg.Username,
		password:  cfg.Password,
	}
}

// newRequest builds a request for the key, applying basic auth when
// credentials are configured.
func (h *HTTPStorage) newRequest(ctx context.Context, method, key string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+"/"+key, nil)
	if err != nil {
		return nil, err
	}
	if h.username != "" && h.password != "" {
		req.SetBasicAuth(h.username, h.password)
	}
	return req, nil
}

// List fetches and parses the index file.
func (h *HTTPStorage) List(ctx context.Context) ([]output.StorageObject, error) {
	req, err := h.newRequest(ctx, http.MethodGet, h.indexFile)
	if err != nil {
		return nil, err
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching index file: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("index file returned status %d", resp.StatusCode)
	}

	return parseIndex(resp.Body)
}

// parseIndex reads an index listing with one key per line. Blank lines
// and lines starting with # are skipped, as are entries that are not
// servable data files.
func parseIndex(r io.Reader) ([]output.StorageObject, error) {
	var objects []output.StorageObject

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !isDataFile(line) {
			continue
		}
		objects = append(objects, output.StorageObject{Key: line})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading index file: %w", err)
	}
	return objects, nil
}

// Download fetches the object and writes it to dest.
func (h *HTTPStorage) Download(ctx context.Context, key string, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0750); err != nil {
		return err
	}

	body, err := h.GetReader(ctx, key)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", key, err)
	}
	defer func() { _ = body.Close() }()

	f, err := os.Create(dest) //#nosec G304 -- dest is a controlled local path
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	_, err = io.Copy(f, body)
	return err
}

// GetReader streams the object body.
func (h *HTTPStorage) GetReader(ctx context.Context, key string) (io.ReadCloser, error) {
	req, err := h.newRequest(ctx, http.MethodGet, key)
	if err != nil {
		return nil, err
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, key)
	}
	return resp.Body, nil
}

// Exists probes the object with a HEAD request. Connection failures
// count as absent rather than erroring, so a flaky upstream degrades
// to missing tiles instead of failed requests.
func (h *HTTPStorage) Exists(ctx context.Context, key string) (bool, error) {
	req, err := h.newRequest(ctx, http.MethodHead, key)
	if err != nil {
		return false, err
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return false, nil //nolint:nilerr // unreachable upstream reads as absent
	}
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode == http.StatusOK, nil
}
