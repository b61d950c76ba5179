package arcmirror

import (
	"context"
	"io"
	"time"
)

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// UploadInput carries the content and metadata for a single upload.
type UploadInput struct {
	Key         string
	ContentType string
	Body        io.Reader
	Metadata    map[string]string
}

// ObjectStore persists files in an object storage bucket.
// Implementations hide the storage provider's client and pagination.
type ObjectStore interface {
	// EnsureBucket verifies the bucket exists, creating it when missing.
	EnsureBucket(ctx context.Context) error

	// Head returns metadata for an object.
	// Returns ENOTFOUND if the object does not exist.
	Head(ctx context.Context, key string) (*ObjectInfo, error)

	// Put stores an object under the given key.
	Put(ctx context.Context, input UploadInput) error

	// List returns all objects under the given key prefix, draining
	// every page of results.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
}
