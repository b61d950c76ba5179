// Package goquery provides a goquery-based implementation of
// arcmirror.RecordScraper for extracting document records from archive
// listing pages.
package goquery

import (
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"arcmirror"
)

// Table header cells that identify the records table on the listing page.
const (
	headerRecordNumber = "Record Number"
	headerReleaseDate  = "NARA Release Date"
)

// minTablePDFLinks is the minimum number of PDF links a table must
// contain to be accepted by the fallback table search.
const minTablePDFLinks = 10

// releaseDateUnknown is used when the listing provides no release date.
const releaseDateUnknown = "Unknown"

// Ensure Scraper implements arcmirror.RecordScraper at compile time.
var _ arcmirror.RecordScraper = (*Scraper)(nil)

// Scraper extracts document records from listing-page HTML.
//
// It locates the records table in three tiers: first by exact header
// text match, then any table dense with PDF links, and finally falls
// back to collecting every PDF/MP3 link on the page.
type Scraper struct{}

// NewScraper creates a new Scraper.
func NewScraper() *Scraper {
	return &Scraper{}
}

// Scrape parses listing-page HTML and returns the records it references.
// Relative hrefs are resolved against baseURL.
func (s *Scraper) Scrape(html string, baseURL string) ([]arcmirror.Record, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, arcmirror.Errorf(arcmirror.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, arcmirror.Errorf(arcmirror.EINVALID, "failed to parse HTML: %v", err)
	}

	table := findRecordsTable(doc)
	if table == nil {
		table = findPDFDenseTable(doc)
	}
	if table == nil {
		return extractPageLinks(doc, base), nil
	}

	return extractTableRecords(table, base), nil
}

// findRecordsTable returns the first table whose headers contain both
// the record number and release date columns.
func findRecordsTable(doc *goquery.Document) *goquery.Selection {
	var table *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, t *goquery.Selection) bool {
		headers := t.Find("th")
		if headers.Length() < 2 {
			return true
		}
		var hasRecordNumber, hasReleaseDate bool
		headers.Each(func(_ int, th *goquery.Selection) {
			switch strings.TrimSpace(th.Text()) {
			case headerRecordNumber:
				hasRecordNumber = true
			case headerReleaseDate:
				hasReleaseDate = true
			}
		})
		if hasRecordNumber && hasReleaseDate {
			table = t
			return false
		}
		return true
	})
	return table
}

// findPDFDenseTable returns the first table containing more than
// minTablePDFLinks links to PDF files.
func findPDFDenseTable(doc *goquery.Document) *goquery.Selection {
	var table *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, t *goquery.Selection) bool {
		count := 0
		t.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			if strings.Contains(strings.ToLower(href), ".pdf") {
				count++
			}
		})
		if count > minTablePDFLinks {
			table = t
			return false
		}
		return true
	})
	return table
}

// extractTableRecords extracts (filename, url, release date) triples
// from the rows of the records table. The header row is skipped, as are
// rows without a link or with fewer than two cells.
func extractTableRecords(table *goquery.Selection, base *url.URL) []arcmirror.Record {
	var records []arcmirror.Record

	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			// Header row.
			return
		}

		cells := row.Find("td, th")
		if cells.Length() < 2 {
			return
		}

		link := cells.Eq(0).Find("a[href]").First()
		href, exists := link.Attr("href")
		if !exists || href == "" {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}

		filename := strings.TrimSpace(link.Text())
		releaseDate := strings.TrimSpace(cells.Eq(1).Text())
		if releaseDate == "" {
			releaseDate = releaseDateUnknown
		}

		records = append(records, arcmirror.Record{
			Filename:    filename,
			URL:         resolved,
			ReleaseDate: releaseDate,
		})
	})

	return records
}

// extractPageLinks collects every PDF and MP3 link on the page. Used
// when no suitable table is found. The release date is unknown in this
// mode since there is no adjacent column to read it from.
func extractPageLinks(doc *goquery.Document, base *url.URL) []arcmirror.Record {
	var records []arcmirror.Record

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		lower := strings.ToLower(href)
		if !strings.Contains(lower, ".pdf") && !strings.Contains(lower, ".mp3") {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}

		filename := strings.TrimSpace(a.Text())
		if filename == "" {
			if u, err := url.Parse(href); err == nil {
				filename = path.Base(u.Path)
			}
		}

		records = append(records, arcmirror.Record{
			Filename:    filename,
			URL:         resolved,
			ReleaseDate: releaseDateUnknown,
		})
	})

	return records
}

// resolveURL resolves a relative href against the listing page's base
// URL. Returns empty string if the href cannot be parsed.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
