// Package slog provides logging decorators for arcmirror services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"arcmirror"
)

// Ensure LoggingObjectStore implements arcmirror.ObjectStore.
var _ arcmirror.ObjectStore = (*LoggingObjectStore)(nil)

// LoggingObjectStore wraps an ObjectStore with debug logging.
type LoggingObjectStore struct {
	next   arcmirror.ObjectStore
	logger *slog.Logger
}

// NewLoggingObjectStore creates a new LoggingObjectStore.
func NewLoggingObjectStore(next arcmirror.ObjectStore, logger *slog.Logger) *LoggingObjectStore {
	return &LoggingObjectStore{next: next, logger: logger}
}

// EnsureBucket delegates to the wrapped store and logs the operation.
func (s *LoggingObjectStore) EnsureBucket(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("ensure bucket",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.EnsureBucket(ctx)
}

// Head delegates to the wrapped store and logs the operation.
func (s *LoggingObjectStore) Head(ctx context.Context, key string) (info *arcmirror.ObjectInfo, err error) {
	defer func(begin time.Time) {
		var size int64
		if info != nil {
			size = info.Size
		}
		s.logger.Debug("head object",
			"key", key,
			"size", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Head(ctx, key)
}

// Put delegates to the wrapped store and logs the operation.
func (s *LoggingObjectStore) Put(ctx context.Context, input arcmirror.UploadInput) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("put object",
			"key", input.Key,
			"content_type", input.ContentType,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Put(ctx, input)
}

// List delegates to the wrapped store and logs the operation.
func (s *LoggingObjectStore) List(ctx context.Context, prefix string) (objects []arcmirror.ObjectInfo, err error) {
	defer func(begin time.Time) {
		s.logger.Info("list objects",
			"prefix", prefix,
			"count", len(objects),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.List(ctx, prefix)
}
