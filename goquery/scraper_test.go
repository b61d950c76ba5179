package goquery_test

import (
	"testing"

	"arcmirror"
	arcgoquery "arcmirror/goquery"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseURL = "https://www.archives.gov/research/mlk"

func TestScraper_Scrape_RecordsTable(t *testing.T) {
	t.Parallel()

	t.Run("extracts records from header-matched table", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
		<table>
			<tr><th>Record Number</th><th>NARA Release Date</th></tr>
			<tr><td><a href="/files/docid-001.pdf">docid-001.pdf</a></td><td>07/21/2025</td></tr>
			<tr><td><a href="https://cdn.archives.gov/docid-002.pdf">docid-002.pdf</a></td><td>07/22/2025</td></tr>
		</table>
		</body></html>`

		records, err := arcgoquery.NewScraper().Scrape(html, baseURL)
		require.NoError(t, err)
		require.Len(t, records, 2)

		assert.Equal(t, arcmirror.Record{
			Filename:    "docid-001.pdf",
			URL:         "https://www.archives.gov/files/docid-001.pdf",
			ReleaseDate: "07/21/2025",
		}, records[0])
		assert.Equal(t, "https://cdn.archives.gov/docid-002.pdf", records[1].URL)
	})

	t.Run("skips rows without links or with too few cells", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
		<table>
			<tr><th>Record Number</th><th>NARA Release Date</th></tr>
			<tr><td>no link here</td><td>07/21/2025</td></tr>
			<tr><td><a href="/files/a.pdf">a.pdf</a></td></tr>
			<tr><td><a href="/files/b.pdf">b.pdf</a></td><td>07/23/2025</td></tr>
		</table>
		</body></html>`

		records, err := arcgoquery.NewScraper().Scrape(html, baseURL)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "b.pdf", records[0].Filename)
	})

	t.Run("defaults blank release date to Unknown", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
		<table>
			<tr><th>Record Number</th><th>NARA Release Date</th></tr>
			<tr><td><a href="/files/a.pdf">a.pdf</a></td><td>  </td></tr>
		</table>
		</body></html>`

		records, err := arcgoquery.NewScraper().Scrape(html, baseURL)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Unknown", records[0].ReleaseDate)
	})

	t.Run("ignores tables with other headers", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
		<table>
			<tr><th>Name</th><th>Date</th></tr>
			<tr><td><a href="/files/x.pdf">x.pdf</a></td><td>01/01/2020</td></tr>
		</table>
		<table>
			<tr><th>Record Number</th><th>NARA Release Date</th></tr>
			<tr><td><a href="/files/y.pdf">y.pdf</a></td><td>07/21/2025</td></tr>
		</table>
		</body></html>`

		records, err := arcgoquery.NewScraper().Scrape(html, baseURL)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "y.pdf", records[0].Filename)
	})
}

func TestScraper_Scrape_PDFDenseTableFallback(t *testing.T) {
	t.Parallel()

	// No header match, but one table has more than 10 PDF links.
	var rows string
	for i := 0; i < 12; i++ {
		rows += `<tr><td><a href="/files/doc-` + string(rune('a'+i)) + `.pdf">doc</a></td><td>date</td></tr>`
	}
	html := `<html><body><table><tr><td>first</td><td>second</td></tr>` + rows + `</table></body></html>`

	records, err := arcgoquery.NewScraper().Scrape(html, baseURL)
	require.NoError(t, err)
	// First row is treated as the header and skipped.
	assert.Len(t, records, 12)
}

func TestScraper_Scrape_PageWideFallback(t *testing.T) {
	t.Parallel()

	t.Run("collects pdf and mp3 links with unknown dates", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
		<p><a href="/files/doc-1.pdf">Document One</a></p>
		<p><a href="/audio/tape-2.mp3">Tape Two</a></p>
		<p><a href="/about">About</a></p>
		</body></html>`

		records, err := arcgoquery.NewScraper().Scrape(html, baseURL)
		require.NoError(t, err)
		require.Len(t, records, 2)

		assert.Equal(t, "Document One", records[0].Filename)
		assert.Equal(t, "https://www.archives.gov/files/doc-1.pdf", records[0].URL)
		assert.Equal(t, "Unknown", records[0].ReleaseDate)
		assert.Equal(t, "https://www.archives.gov/audio/tape-2.mp3", records[1].URL)
	})

	t.Run("derives filename from URL when anchor text is empty", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><a href="/files/doc-3.pdf"></a></body></html>`

		records, err := arcgoquery.NewScraper().Scrape(html, baseURL)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "doc-3.pdf", records[0].Filename)
	})

	t.Run("returns no records for a page without document links", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><a href="/about">About</a></body></html>`

		records, err := arcgoquery.NewScraper().Scrape(html, baseURL)
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestScraper_Scrape_InvalidBaseURL(t *testing.T) {
	t.Parallel()

	_, err := arcgoquery.NewScraper().Scrape("<html></html>", "://bad")
	require.Error(t, err)
	assert.Equal(t, arcmirror.EINVALID, arcmirror.ErrorCode(err))
}
