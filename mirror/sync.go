package mirror

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"arcmirror"
)

// DefaultConcurrency is the number of parallel downloads when the
// Syncer's Concurrency field is unset.
const DefaultConcurrency = 5

// Syncer downloads listed files and uploads them to object storage,
// skipping objects whose stored size already matches the remote size.
type Syncer struct {
	Fetcher     arcmirror.Fetcher
	Store       arcmirror.ObjectStore
	RateLimiter arcmirror.DomainLimiter
	Prefix      string
	Concurrency int

	// now stamps upload metadata; overridable in tests.
	now func() time.Time
}

// Result holds the outcome of a sync operation.
type Result struct {
	Uploaded int
	Skipped  int
	Failed   int
	Bytes    int64
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressUploaded
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressEvent reports progress during a sync operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Key       string
	Error     error
}

// ProgressFunc is a callback for reporting sync progress.
type ProgressFunc func(event ProgressEvent)

// syncResult holds the outcome of processing a single URL.
type syncResult struct {
	url     string
	key     string
	bytes   int64
	skipped bool
	err     error
}

// Run syncs every URL into the store. The progress callback, if
// provided, receives events as the sync proceeds. Per-record failures
// are counted, not returned; Run errors only when the bucket itself is
// unusable.
func (s *Syncer) Run(ctx context.Context, urls []string, progress ProgressFunc) (*Result, error) {
	if err := s.Store.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("ensure bucket: %w", err)
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan syncResult, len(urls))

	var completed atomic.Int64
	total := len(urls)

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, u := range urls {
			u := u
			g.Go(func() error {
				result := s.processURL(gctx, u)
				resultCh <- result
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var result Result
	for r := range resultCh {
		completed.Add(1)

		event := ProgressEvent{
			Completed: int(completed.Load()),
			Total:     total,
			URL:       r.url,
			Key:       r.key,
		}

		switch {
		case r.err != nil:
			result.Failed++
			event.Type = ProgressFailed
			event.Error = r.err
		case r.skipped:
			result.Skipped++
			event.Type = ProgressSkipped
		default:
			result.Uploaded++
			result.Bytes += r.bytes
			event.Type = ProgressUploaded
		}

		if progress != nil {
			progress(event)
		}
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	return &result, nil
}

// processURL downloads a single file and uploads it to the store.
func (s *Syncer) processURL(ctx context.Context, rawURL string) syncResult {
	result := syncResult{
		url: rawURL,
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		result.err = arcmirror.Errorf(arcmirror.EINVALID, "invalid URL %q: %v", rawURL, err)
		return result
	}
	result.key = s.Prefix + path.Base(parsed.Path)

	// Get the expected remote file size.
	if err := s.wait(ctx, parsed.Host); err != nil {
		result.err = err
		return result
	}
	remoteSize, err := s.Fetcher.Head(ctx, rawURL)
	if err != nil {
		result.err = fmt.Errorf("head %s: %w", rawURL, err)
		return result
	}

	// Skip if the stored object already matches the remote size.
	obj, err := s.Store.Head(ctx, result.key)
	if err == nil {
		if obj.Size == remoteSize {
			result.skipped = true
			return result
		}
	} else if arcmirror.ErrorCode(err) != arcmirror.ENOTFOUND {
		result.err = fmt.Errorf("head object %s: %w", result.key, err)
		return result
	}

	// Download the full body into memory so the upload knows the exact
	// byte length regardless of what the server advertised.
	if err := s.wait(ctx, parsed.Host); err != nil {
		result.err = err
		return result
	}
	body, err := s.Fetcher.Download(ctx, rawURL)
	if err != nil {
		result.err = fmt.Errorf("download %s: %w", rawURL, err)
		return result
	}

	var buf bytes.Buffer
	_, err = io.Copy(&buf, body)
	body.Close()
	if err != nil {
		result.err = fmt.Errorf("read %s: %w", rawURL, err)
		return result
	}

	content := buf.Bytes()
	now := time.Now
	if s.now != nil {
		now = s.now
	}

	err = s.Store.Put(ctx, arcmirror.UploadInput{
		Key:         result.key,
		ContentType: ContentTypeFor(result.key),
		Body:        bytes.NewReader(content),
		Metadata: map[string]string{
			"source-url":     rawURL,
			"download-date":  now().UTC().Format(time.RFC3339),
			"content-length": strconv.Itoa(len(content)),
			"content-hash":   ComputeHash(content),
		},
	})
	if err != nil {
		result.err = fmt.Errorf("upload %s: %w", result.key, err)
		return result
	}

	result.bytes = int64(len(content))
	return result
}

func (s *Syncer) wait(ctx context.Context, domain string) error {
	if s.RateLimiter == nil {
		return nil
	}
	return s.RateLimiter.Wait(ctx, domain)
}

// ContentTypeFor returns the MIME type for a file based on its extension.
func ContentTypeFor(filename string) string {
	switch strings.ToLower(path.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".mp3":
		return "audio/mpeg"
	case ".txt":
		return "text/plain"
	case ".json":
		return "application/json"
	default:
		return "application/octet-stream"
	}
}
