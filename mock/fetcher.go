package mock

import (
	"context"
	"io"

	"arcmirror"
)

var _ arcmirror.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of arcmirror.Fetcher.
type Fetcher struct {
	FetchFn    func(ctx context.Context, url string) (string, error)
	HeadFn     func(ctx context.Context, url string) (int64, error)
	DownloadFn func(ctx context.Context, url string) (io.ReadCloser, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Head(ctx context.Context, url string) (int64, error) {
	return f.HeadFn(ctx, url)
}

func (f *Fetcher) Download(ctx context.Context, url string) (io.ReadCloser, error) {
	return f.DownloadFn(ctx, url)
}

var _ arcmirror.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of arcmirror.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.WaitFn(ctx, domain)
}
