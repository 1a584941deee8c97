package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// Package storage contains file storage abstractions. The default backend keeps
// uploads in a flat local directory; an S3-compatible backend (MinIO) can be
// selected via configuration.

// ErrNotFound is returned by Get when no object exists under the given key.
var ErrNotFound = errors.New("object not found")

// PutOptions define optional parameters for storing objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and the
// implementation will buffer/chunk as supported by the backend.
type PutOptions struct {
	Size        int64
	ContentType string
}

// ObjectInfo contains basic information about a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// Storage is the file storage interface shared by the local and MinIO backends.
// Keys are flat stored filenames; implementations must reject keys that escape
// their root (path separators, traversal).
type Storage interface {
	// Put stores an object under the given key using the provided reader and options.
	// Storing to an existing key overwrites it.
	Put(ctx context.Context, key string, r io.Reader, opt PutOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	// Returns ErrNotFound if the key does not exist.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
