// Package blobstore resolves asset names to blobs in an Azure Storage
// container.
package blobstore

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/phanxgames/grove/assets"
)

// DefaultTimeout bounds a single blob download.
const DefaultTimeout = 30 * time.Second

// downloader is the subset of *azblob.Client the locator needs.
type downloader interface {
	DownloadStream(ctx context.Context, containerName, blobName string, o *azblob.DownloadStreamOptions) (azblob.DownloadStreamResponse, error)
}

// Locator downloads assets from a container. Asset names map to blob names
// under an optional prefix.
type Locator struct {
	client    downloader
	container string
	prefix    string
	timeout   time.Duration
}

// New creates a locator over an existing client.
func New(client *azblob.Client, container, prefix string) *Locator {
	return &Locator{client: client, container: container, prefix: prefix, timeout: DefaultTimeout}
}

// NewFromConnectionString creates a client from a storage connection string.
func NewFromConnectionString(conn, container, prefix string) (*Locator, error) {
	client, err := azblob.NewClientFromConnectionString(conn, nil)
	if err != nil {
		return nil, fmt.Errorf("blobstore: create client: %w", err)
	}
	return New(client, container, prefix), nil
}

// SetTimeout changes the per-download timeout.
func (l *Locator) SetTimeout(d time.Duration) {
	l.timeout = d
}

func (l *Locator) String() string {
	return "azblob:" + l.container + "/" + l.prefix
}

// Locate downloads the blob into memory. A missing blob or container is
// reported as assets.ErrNotFound.
func (l *Locator) Locate(name string) (io.ReadCloser, error) {
	blob := name
	if l.prefix != "" {
		blob = path.Join(l.prefix, name)
	}
	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	resp, err := l.client.DownloadStream(ctx, l.container, blob, nil)
	if err != nil {
		cancel()
		if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
			err = assets.ErrNotFound
		}
		return nil, &assets.LocatorError{Locator: l.String(), Name: name, Err: err}
	}
	return &body{ReadCloser: resp.Body, cancel: cancel}, nil
}

// body ties the download context to the stream lifetime.
type body struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *body) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}
