// Package storage contains object storage abstractions for generated
// artifacts (label sheets, snapshot archives). Backends stream content and
// never buffer whole objects in memory.
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"arkiv/internal/config"
)

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and the implementation
// will buffer/chunk as supported by the backend.
// ContentType and Metadata are optional.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is a reusable object storage client interface. Methods use context
// and streaming readers/writers.
type Storage interface {
	// Put uploads an object under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited URL that can be used to download the object without credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// New constructs the Storage backend selected by the configuration.
// With the "none" backend it returns nil; callers must treat a nil Storage
// as "archiving disabled".
func New(cfg config.StorageConfig) (Storage, error) {
	switch cfg.Backend {
	case config.StorageMinIO:
		return NewMinIO(cfg.MinIO)
	case config.StorageLocal:
		return NewLocal(cfg.LocalPath)
	case config.StorageNone, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported storage backend: %q", cfg.Backend)
	}
}
