// Package http provides an HTTP-based implementation of arcmirror.Fetcher
// for fetching listing pages and downloading archive files.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"arcmirror"
)

// DefaultFetchTimeout is the default timeout for page and HEAD requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultDownloadTimeout is the default timeout for file downloads.
// Archive files run to hundreds of megabytes, so this covers the full
// body read, not just the connection.
const DefaultDownloadTimeout = 5 * time.Minute

// DefaultUserAgent is sent with every request. The archive serves
// different content to clients without a browser-like user agent.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Ensure Fetcher implements arcmirror.Fetcher at compile time.
var _ arcmirror.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages and files over HTTP.
type Fetcher struct {
	client          *http.Client
	downloadClient  *http.Client
	timeout         time.Duration
	downloadTimeout time.Duration
	userAgent       string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for page and HEAD requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithDownloadTimeout sets the timeout for file downloads.
// Defaults to DefaultDownloadTimeout (5m) if not specified.
func WithDownloadTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.downloadTimeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:         DefaultFetchTimeout,
		downloadTimeout: DefaultDownloadTimeout,
		userAgent:       DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}
	f.downloadClient = &http.Client{
		Timeout: f.downloadTimeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := f.newRequest(ctx, http.MethodGet, url)
	if err != nil {
		return "", err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Head returns the size the server advertises for the URL. Servers that
// omit Content-Length yield 0, which callers treat as "size unknown".
func (f *Fetcher) Head(ctx context.Context, url string) (int64, error) {
	req, err := f.newRequest(ctx, http.MethodHead, url)
	if err != nil {
		return 0, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	if resp.ContentLength < 0 {
		return 0, nil
	}
	return resp.ContentLength, nil
}

// Download opens a streaming reader for the file at the URL.
// The caller must close the returned reader.
func (f *Fetcher) Download(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := f.newRequest(ctx, http.MethodGet, url)
	if err != nil {
		return nil, err
	}

	resp, err := f.downloadClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	return resp.Body, nil
}

func (f *Fetcher) newRequest(ctx context.Context, method, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)
	return req, nil
}
