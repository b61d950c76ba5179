package arcmirror

import (
	"context"
	"io"
)

// Fetcher retrieves remote content over HTTP.
type Fetcher interface {
	// Fetch retrieves the HTML content of a page.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Head returns the size in bytes the server advertises for the URL.
	// Returns 0 when the server does not report a Content-Length.
	Head(ctx context.Context, url string) (size int64, err error)

	// Download opens a streaming reader for the file at the URL.
	// The caller must close the returned reader.
	Download(ctx context.Context, url string) (io.ReadCloser, error)
}

// DomainLimiter rate-limits outbound requests per domain.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled before the wait
	// completes.
	Wait(ctx context.Context, domain string) error
}
