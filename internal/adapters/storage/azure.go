package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"

	"github.com/jobrunner/metes/internal/ports/output"
)

// AzureStorage serves data files from an Azure Blob Storage container,
// optionally under a blob name prefix.
type AzureStorage struct {
	client    *azblob.Client
	container string
	prefix    string
}

// AzureConfig holds Azure Blob Storage configuration. Either a
// connection string or an account name and key must be set.
type AzureConfig struct {
	Container        string
	AccountName      string
	AccountKey       string
	ConnectionString string
	Prefix           string
}

// NewAzureStorage creates an Azure Blob Storage adapter.
func NewAzureStorage(cfg AzureConfig) (*AzureStorage, error) {
	client, err := newAzureClient(cfg)
	if err != nil {
		return nil, err
	}
	return &AzureStorage{
		client:    client,
		container: cfg.Container,
		prefix:    cfg.Prefix,
	}, nil
}

func newAzureClient(cfg AzureConfig) (*azblob.Client, error) {
	if cfg.ConnectionString != "" {
		return azblob.NewClientFromConnectionString(cfg.ConnectionString, nil)
	}

	cred, err := azblob.NewSharedKeyCredential(cfg.AccountName, cfg.AccountKey)
	if err != nil {
		return nil, fmt.Errorf("building shared key credential: %w", err)
	}
	url := "https://" + cfg.AccountName + ".blob.core.windows.net/"
	return azblob.NewClientWithSharedKeyCredential(url, cred, nil)
}

// List pages through the container and returns every servable data
// file, keyed relative to the prefix.
func (a *AzureStorage) List(ctx context.Context) ([]output.StorageObject, error) {
	var objects []output.StorageObject

	pager := a.client.NewListBlobsFlatPager(a.container, &azblob.ListBlobsFlatOptions{
		Prefix: &a.prefix,
	})
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing container %s: %w", a.container, err)
		}
		for _, blob := range page.Segment.BlobItems {
			if obj, ok := a.objectFromBlob(blob); ok {
				objects = append(objects, obj)
			}
		}
	}
	return objects, nil
}

func (a *AzureStorage) objectFromBlob(blob *container.BlobItem) (output.StorageObject, bool) {
	name := *blob.Name
	if !isDataFile(name) {
		return output.StorageObject{}, false
	}

	key := strings.TrimPrefix(name, a.prefix)
	key = strings.TrimPrefix(key, "/")
	obj := output.StorageObject{Key: key}

	if props := blob.Properties; props != nil {
		if props.ContentLength != nil {
			obj.Size = *props.ContentLength
		}
		if props.LastModified != nil {
			obj.LastModified = props.LastModified.Unix()
		}
		if props.ETag != nil {
			obj.ETag = string(*props.ETag)
		}
	}
	return obj, true
}

// Download fetches the blob and writes it to dest.
func (a *AzureStorage) Download(ctx context.Context, key string, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0750); err != nil {
		return err
	}

	body, err := a.GetReader(ctx, key)
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

// GetReader streams the blob body.
func (a *AzureStorage) GetReader(ctx context.Context, key string) (io.ReadCloser, error) {
	resp, err := a.client.DownloadStream(ctx, a.container, a.fullKey(key), nil)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// Exists probes the blob by reading its first byte. A BlobNotFound
// response reads as absent; other failures surface as errors.
func (a *AzureStorage) Exists(ctx context.Context, key string) (bool, error) {
	resp, err := a.client.DownloadStream(ctx, a.container, a.fullKey(key), &azblob.DownloadStreamOptions{
		Range: azblob.HTTPRange{Offset: 0, Count: 1},
	})
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
			return false, nil
		}
		return false, err
	}
	_ = resp.Body.Close()
	return true, nil
}

// fullKey prepends the configured prefix to a relative key.
func (a *AzureStorage) fullKey(key string) string {
	if a.prefix == "" {
		return key
	}
	return a.prefix + "/" + key
}
