package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"arcmirror"
	"arcmirror/mirror"
	"arcmirror/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeURLFile(t *testing.T, urls ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(urls, "\n")+"\n"), 0644))
	return path
}

func TestSyncCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("syncs URLs and prints summary", func(t *testing.T) {
		t.Parallel()

		urlFile := writeURLFile(t,
			"https://example.gov/files/a.pdf",
			"https://example.gov/files/b.pdf",
		)

		content := "file data"
		syncer := &mirror.Syncer{
			Fetcher: &mock.Fetcher{
				HeadFn: func(ctx context.Context, url string) (int64, error) {
					return int64(len(content)), nil
				},
				DownloadFn: func(ctx context.Context, url string) (io.ReadCloser, error) {
					return io.NopCloser(strings.NewReader(content)), nil
				},
			},
			Store: &mock.ObjectStore{
				EnsureBucketFn: func(ctx context.Context) error { return nil },
				HeadFn: func(ctx context.Context, key string) (*arcmirror.ObjectInfo, error) {
					return nil, arcmirror.Errorf(arcmirror.ENOTFOUND, "object %q not found", key)
				},
				PutFn: func(ctx context.Context, input arcmirror.UploadInput) error {
					return nil
				},
			},
			Prefix: "archive/",
		}

		var stdout, stderr bytes.Buffer
		deps := &Dependencies{Ctx: context.Background(), Stdout: &stdout, Stderr: &stderr, Syncer: syncer}
		cmd := &SyncCmd{URLFile: urlFile, Bucket: "archive-mirror"}

		require.NoError(t, cmd.Run(deps))

		out := stdout.String()
		assert.Contains(t, out, `Syncing 2 files to bucket "archive-mirror"`)
		assert.Contains(t, out, "uploaded archive/a.pdf")
		assert.Contains(t, out, "Uploaded: 2")
		assert.Contains(t, out, "Failed: 0")
		assert.Contains(t, out, "Transferred: 18 B")
	})

	t.Run("reports skipped and failed records", func(t *testing.T) {
		t.Parallel()

		urlFile := writeURLFile(t,
			"https://example.gov/files/present.pdf",
			"https://example.gov/files/broken.pdf",
		)

		syncer := &mirror.Syncer{
			Fetcher: &mock.Fetcher{
				HeadFn: func(ctx context.Context, url string) (int64, error) {
					if strings.Contains(url, "broken") {
						return 0, arcmirror.Errorf(arcmirror.EUNAVAILABLE, "HTTP 503")
					}
					return 100, nil
				},
			},
			Store: &mock.ObjectStore{
				EnsureBucketFn: func(ctx context.Context) error { return nil },
				HeadFn: func(ctx context.Context, key string) (*arcmirror.ObjectInfo, error) {
					return &arcmirror.ObjectInfo{Key: key, Size: 100}, nil
				},
			},
			Prefix: "archive/",
		}

		var stdout, stderr bytes.Buffer
		deps := &Dependencies{Ctx: context.Background(), Stdout: &stdout, Stderr: &stderr, Syncer: syncer}
		cmd := &SyncCmd{URLFile: urlFile, Bucket: "archive-mirror"}

		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), "skip archive/present.pdf")
		assert.Contains(t, stdout.String(), "Skipped: 1")
		assert.Contains(t, stdout.String(), "Failed: 1")
		assert.Contains(t, stderr.String(), "failed")
	})

	t.Run("reports missing URL file", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		deps := &Dependencies{Ctx: context.Background(), Stdout: &stdout, Stderr: &stderr}
		cmd := &SyncCmd{URLFile: filepath.Join(t.TempDir(), "missing.txt"), Bucket: "archive-mirror"}

		require.Error(t, cmd.Run(deps))
		assert.Contains(t, stderr.String(), "failed to read URL file")
	})

	t.Run("does nothing for an empty URL file", func(t *testing.T) {
		t.Parallel()

		urlFile := filepath.Join(t.TempDir(), "urls.txt")
		require.NoError(t, os.WriteFile(urlFile, []byte("\n\n"), 0644))

		var stdout, stderr bytes.Buffer
		deps := &Dependencies{Ctx: context.Background(), Stdout: &stdout, Stderr: &stderr}
		cmd := &SyncCmd{URLFile: urlFile, Bucket: "archive-mirror"}

		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), "No URLs to sync.")
	})
}
