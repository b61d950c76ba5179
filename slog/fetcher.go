package slog

import (
	"context"
	"io"
	"log/slog"
	"time"

	"arcmirror"
)

// Ensure LoggingFetcher implements arcmirror.Fetcher.
var _ arcmirror.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   arcmirror.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next arcmirror.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch page",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Head delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Head(ctx context.Context, url string) (size int64, err error) {
	defer func(begin time.Time) {
		f.logger.Debug("head remote",
			"url", url,
			"size", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Head(ctx, url)
}

// Download delegates to the wrapped fetcher and logs the operation.
// Bytes transferred are not logged here since the body streams to the
// caller.
func (f *LoggingFetcher) Download(ctx context.Context, url string) (body io.ReadCloser, err error) {
	defer func(begin time.Time) {
		f.logger.Info("download",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Download(ctx, url)
}
