package mock

import (
	"context"

	"arcmirror"
)

var _ arcmirror.RecordScraper = (*RecordScraper)(nil)

// RecordScraper is a mock implementation of arcmirror.RecordScraper.
type RecordScraper struct {
	ScrapeFn func(html string, baseURL string) ([]arcmirror.Record, error)
}

func (s *RecordScraper) Scrape(html string, baseURL string) ([]arcmirror.Record, error) {
	return s.ScrapeFn(html, baseURL)
}

var _ arcmirror.RecordWriter = (*RecordWriter)(nil)

// RecordWriter is a mock implementation of arcmirror.RecordWriter.
type RecordWriter struct {
	WriteRecordsFn func(ctx context.Context, records []arcmirror.Record) (*arcmirror.RecordFiles, error)
}

func (w *RecordWriter) WriteRecords(ctx context.Context, records []arcmirror.Record) (*arcmirror.RecordFiles, error) {
	return w.WriteRecordsFn(ctx, records)
}
