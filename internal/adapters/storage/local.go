// Package storage provides object storage adapters for boundary
// geometry and DEM tiles.
package storage

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jobrunner/metes/internal/ports/output"
)

// LocalStorage serves data files straight from a directory on disk.
// It is the default backend for single-host deployments where the
// boundary file and DEM tiles sit next to the binary.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a local filesystem adapter rooted at basePath.
func NewLocalStorage(basePath string) *LocalStorage {
	return &LocalStorage{basePath: basePath}
}

// List walks the base directory and returns every servable data file,
// keyed by its path relative to the root.
func (l *LocalStorage) List(_ context.Context) ([]output.StorageObject, error) {
	var objects []output.StorageObject

	walk := func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !isDataFile(entry.Name()) {
			return nil
		}

		info, err := entry.Info()
		if err != nil {
			return err
		}
		key, err := filepath.Rel(l.basePath, path)
		if err != nil {
			return err
		}

		objects = append(objects, output.StorageObject{
			Key:          key,
			Size:         info.Size(),
			LastModified: info.ModTime().Unix(),
		})
		return nil
	}

	if err := filepath.WalkDir(l.basePath, walk); err != nil {
		return nil, fmt.Errorf("listing %s: %w", l.basePath, err)
	}
	return objects, nil
}

// Download copies the object to dest. When dest already is the
// source path this is a no-op, which lets callers stage files without
// caring about the backend.
func (l *LocalStorage) Download(_ context.Context, key string, dest string) error {
	src := l.FullPath(key)
	if src == dest {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0750); err != nil {
		return err
	}
	return copyFile(src, dest)
}

// GetReader opens the object for reading.
func (l *LocalStorage) GetReader(_ context.Context, key string) (io.ReadCloser, error) {
	return os.Open(l.FullPath(key))
}

// Exists reports whether the object is present on disk.
func (l *LocalStorage) Exists(_ context.Context, key string) (bool, error) {
	_, err := os.Stat(l.FullPath(key))
	switch {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, err
	}
}

// FullPath resolves a key to its absolute location under the root.
func (l *LocalStorage) FullPath(key string) string {
	return filepath.Join(l.basePath, key)
}

func copyFile(src, dest string) error {
	in, err := os.Open(src) //#nosec G304 -- src is resolved under the configured base path
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dest) //#nosec G304 -- dest is a controlled local path
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	_, err = io.Copy(out, in)
	return err
}
