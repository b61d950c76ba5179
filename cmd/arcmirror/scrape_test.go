package main

import (
	"bytes"
	"context"
	"testing"

	"arcmirror"
	"arcmirror/mirror"
	"arcmirror/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrapeDeps(scraper *mirror.Scraper) (*Dependencies, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Dependencies{
		Ctx:     context.Background(),
		Stdout:  &stdout,
		Stderr:  &stderr,
		Scraper: scraper,
	}, &stdout, &stderr
}

func TestScrapeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints preview and saved file paths", func(t *testing.T) {
		t.Parallel()

		records := make([]arcmirror.Record, 7)
		for i := range records {
			records[i] = arcmirror.Record{
				Filename:    "doc.pdf",
				URL:         "https://example.gov/doc.pdf",
				ReleaseDate: "07/21/2025",
			}
		}

		scraper := &mirror.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					return "<html></html>", nil
				},
			},
			Records: &mock.RecordScraper{
				ScrapeFn: func(html, baseURL string) ([]arcmirror.Record, error) {
					return records, nil
				},
			},
			Writer: &mock.RecordWriter{
				WriteRecordsFn: func(ctx context.Context, records []arcmirror.Record) (*arcmirror.RecordFiles, error) {
					return &arcmirror.RecordFiles{CSV: "records.csv", JSON: "records.json", URLList: "urls.txt"}, nil
				},
			},
		}

		deps, stdout, _ := scrapeDeps(scraper)
		cmd := &ScrapeCmd{URL: "https://example.gov/listing"}

		require.NoError(t, cmd.Run(deps))

		out := stdout.String()
		assert.Contains(t, out, "Found 7 records")
		assert.Contains(t, out, "... and 2 more records")
		assert.Contains(t, out, "Records saved to records.csv, records.json and urls.txt")
	})

	t.Run("reports empty listings without writing files", func(t *testing.T) {
		t.Parallel()

		scraper := &mirror.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					return "<html></html>", nil
				},
			},
			Records: &mock.RecordScraper{
				ScrapeFn: func(html, baseURL string) ([]arcmirror.Record, error) {
					return nil, nil
				},
			},
		}

		deps, stdout, _ := scrapeDeps(scraper)
		cmd := &ScrapeCmd{URL: "https://example.gov/listing"}

		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), "No records found")
	})

	t.Run("reports scrape errors on stderr", func(t *testing.T) {
		t.Parallel()

		scraper := &mirror.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					return "", arcmirror.Errorf(arcmirror.EUNAVAILABLE, "connection refused")
				},
			},
		}

		deps, _, stderr := scrapeDeps(scraper)
		cmd := &ScrapeCmd{URL: "https://example.gov/listing"}

		require.Error(t, cmd.Run(deps))
		assert.Contains(t, stderr.String(), "error:")
	})
}
