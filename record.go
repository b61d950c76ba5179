package arcmirror

import (
	"context"
	"net/url"
	"path"
)

// Record represents a single document entry from an archive listing page.
type Record struct {
	Filename    string `json:"filename"`
	URL         string `json:"url"`
	ReleaseDate string `json:"release_date"`
}

// Validate returns an error if the record contains invalid fields.
func (r *Record) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "record URL required")
	}
	return nil
}

// DisplayName returns the record's filename, falling back to the base of
// the URL path when the listing provided no anchor text.
func (r *Record) DisplayName() string {
	if r.Filename != "" {
		return r.Filename
	}
	u, err := url.Parse(r.URL)
	if err != nil {
		return r.URL
	}
	return path.Base(u.Path)
}

// RecordScraper extracts document records from a listing page.
// Implementations hide the table-matching heuristics used to locate
// records within arbitrary archive HTML.
type RecordScraper interface {
	// Scrape parses the HTML of a listing page and returns the records
	// it references. Relative links are resolved against baseURL.
	Scrape(html string, baseURL string) ([]Record, error)
}

// RecordFiles holds the paths of the files produced by a RecordWriter.
type RecordFiles struct {
	CSV     string
	JSON    string
	URLList string
}

// RecordWriter persists scraped records for later processing.
type RecordWriter interface {
	// WriteRecords saves the records and returns the paths of the
	// written files.
	WriteRecords(ctx context.Context, records []Record) (*RecordFiles, error)
}
