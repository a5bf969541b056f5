package storage

import (
	"context"
	"io"
)

// StorageInterface abstracts the file store that holds banner and product
// imagery. The shop runs on the local implementation; anything that can
// save and serve blobs by key slots in here.
type StorageInterface interface {
	// SaveFile stores the blob under key and returns its size.
	SaveFile(ctx context.Context, key string, reader io.Reader) (int64, error)

	// ReadFile opens a stored blob for reading.
	ReadFile(ctx context.Context, key string) (io.ReadCloser, error)

	// DeleteFile removes a blob. Deleting a missing key is not an error.
	DeleteFile(ctx context.Context, key string) error

	// FileExists checks if a blob exists and returns its size.
	FileExists(ctx context.Context, key string) (exists bool, size int64, err error)

	// PublicURL returns the browser-servable URL for a stored blob.
	PublicURL(key string) string
}
