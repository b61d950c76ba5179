// Package mirror provides orchestration for mirroring archive listings
// into object storage. It coordinates scraping, downloading, uploading
// and index generation.
package mirror

import (
	"context"
	"fmt"

	"arcmirror"
)

// Scraper orchestrates scraping a listing page into record files.
type Scraper struct {
	Fetcher arcmirror.Fetcher
	Records arcmirror.RecordScraper
	Writer  arcmirror.RecordWriter
}

// ScrapeResult holds the outcome of a scrape operation.
type ScrapeResult struct {
	Records []arcmirror.Record
	Files   *arcmirror.RecordFiles
}

// Run fetches the listing page, extracts its records and persists them.
// When the page yields no records, no files are written and Files is nil.
func (s *Scraper) Run(ctx context.Context, pageURL string) (*ScrapeResult, error) {
	html, err := s.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch listing page: %w", err)
	}

	records, err := s.Records.Scrape(html, pageURL)
	if err != nil {
		return nil, fmt.Errorf("scrape records: %w", err)
	}

	result := &ScrapeResult{Records: records}
	if len(records) == 0 {
		return result, nil
	}

	files, err := s.Writer.WriteRecords(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("save records: %w", err)
	}
	result.Files = files

	return result, nil
}
