package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// Package storage keeps generated report documents. The local backend writes
// into a directory; the MinIO backend into an S3-compatible bucket.

// ErrObjectNotFound is returned by Stat and Get when no object exists under the key.
var ErrObjectNotFound = errors.New("object not found")

// ErrInvalidKey is returned for keys that are empty or contain path separators.
var ErrInvalidKey = errors.New("invalid object key")

// PutObjectOptions define optional parameters for storing objects.
// Size should be the exact number of bytes if known, -1 otherwise.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the document store used by the report service.
type Storage interface {
	// Put stores the content of r under key. A partially written object is never visible to Get.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Stat returns object info without reading content, or ErrObjectNotFound.
	Stat(ctx context.Context, key string) (ObjectInfo, error)
	// Ping verifies the backend is reachable and writable.
	Ping(ctx context.Context) error
}
