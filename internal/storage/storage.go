package storage

import "errors"

// ErrNotFound is returned by Read when no blob exists under the given name.
var ErrNotFound = errors.New("storage: blob not found")

// BlobStore persists raw image bytes under generated storage names.
type BlobStore interface {
	// EnsureReady prepares the backing store. It is idempotent and safe to
	// call on every startup.
	EnsureReady() error
	// Save writes the blob and returns the storage path a record should
	// reference. Readers never observe a partially written blob.
	Save(name string, data []byte) (string, error)
	// Read returns the blob bytes, or ErrNotFound.
	Read(name string) ([]byte, error)
}
