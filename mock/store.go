package mock

import (
	"context"

	"arcmirror"
)

var _ arcmirror.ObjectStore = (*ObjectStore)(nil)

// ObjectStore is a mock implementation of arcmirror.ObjectStore.
type ObjectStore struct {
	EnsureBucketFn func(ctx context.Context) error
	HeadFn         func(ctx context.Context, key string) (*arcmirror.ObjectInfo, error)
	PutFn          func(ctx context.Context, input arcmirror.UploadInput) error
	ListFn         func(ctx context.Context, prefix string) ([]arcmirror.ObjectInfo, error)
}

func (s *ObjectStore) EnsureBucket(ctx context.Context) error {
	return s.EnsureBucketFn(ctx)
}

func (s *ObjectStore) Head(ctx context.Context, key string) (*arcmirror.ObjectInfo, error) {
	return s.HeadFn(ctx, key)
}

func (s *ObjectStore) Put(ctx context.Context, input arcmirror.UploadInput) error {
	return s.PutFn(ctx, input)
}

func (s *ObjectStore) List(ctx context.Context, prefix string) ([]arcmirror.ObjectInfo, error) {
	return s.ListFn(ctx, prefix)
}
