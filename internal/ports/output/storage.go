// Package output defines the secondary/driven ports of the application.
package output

import (
	"context"
	"io"
)

// ObjectStorage is the secondary port the boundary source and the DEM
// elevation provider read their data through. Implementations exist
// for the local filesystem, S3, Azure Blob Storage and plain HTTP file
// servers.
type ObjectStorage interface {
	// List enumerates the servable data files. Backends that cannot
	// enumerate return an empty result rather than an error.
	List(ctx context.Context) ([]StorageObject, error)

	// Download stages an object on the local filesystem.
	Download(ctx context.Context, key string, dest string) error

	// GetReader streams the object body. The caller closes it.
	GetReader(ctx context.Context, key string) (io.ReadCloser, error)

	// Exists reports whether the object is present.
	Exists(ctx context.Context, key string) (bool, error)
}

// StorageObject describes one listed object.
type StorageObject struct {
	Key          string // path relative to the backend root or prefix
	Size         int64  // size in bytes, 0 when the backend cannot tell
	LastModified int64  // unix timestamp, 0 when unknown
	ETag         string // content hash, empty when unknown
}

// StorageType names a storage backend in configuration.
type StorageType string

const (
	StorageTypeS3    StorageType = "s3"
	StorageTypeAzure StorageType = "azure"
	StorageTypeHTTP  StorageType = "http"
	StorageTypeLocal StorageType = "local"
)
