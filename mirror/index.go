package mirror

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"path"
	"strings"

	"arcmirror"
)

// indexTemplate renders the public index page. Object keys come from
// bucket listings, so href and text values go through html/template's
// contextual escaping.
var indexTemplate = template.Must(template.New("index").Parse(`<html><body>
{{- if .DatasetURL}}
<h1>Processed Dataset</h1>
<p><a href="{{.DatasetURL}}">Download {{.DatasetName}}</a></p>
{{- end}}
<h1>Unprocessed National Archive Files</h1>
<ul>
{{- range .Entries}}
<li><a href="{{.URL}}">{{.Name}}</a></li>
{{- end}}
</ul>
</body></html>
`))

// Indexer generates an HTML index of the objects stored under a prefix.
type Indexer struct {
	Store  arcmirror.ObjectStore
	Bucket string
	Prefix string

	// DatasetURL, when set, adds a link to a separately hosted
	// processed dataset file at the top of the page.
	DatasetURL string
}

// indexEntry is one listed object on the index page.
type indexEntry struct {
	URL  string
	Name string
}

// Render lists the bucket and returns the rendered index page.
// The returned count is the number of objects listed.
func (ix *Indexer) Render(ctx context.Context) ([]byte, int, error) {
	objects, err := ix.Store.List(ctx, ix.Prefix)
	if err != nil {
		return nil, 0, fmt.Errorf("list objects: %w", err)
	}

	var entries []indexEntry
	for _, obj := range objects {
		// Zero-byte folder placeholder keys are not downloadable files.
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		entries = append(entries, indexEntry{
			URL:  ObjectURL(ix.Bucket, obj.Key),
			Name: path.Base(obj.Key),
		})
	}

	data := struct {
		DatasetURL  string
		DatasetName string
		Entries     []indexEntry
	}{
		DatasetURL:  ix.DatasetURL,
		DatasetName: datasetName(ix.DatasetURL),
		Entries:     entries,
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		return nil, 0, fmt.Errorf("render index: %w", err)
	}

	return buf.Bytes(), len(entries), nil
}

// ObjectURL returns the public HTTPS URL for an object.
func ObjectURL(bucket, key string) string {
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", bucket, key)
}

// datasetName returns the display name for the processed dataset link.
func datasetName(datasetURL string) string {
	if datasetURL == "" {
		return ""
	}
	return path.Base(datasetURL)
}
