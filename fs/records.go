// Package fs provides file-based persistence for scraped records.
package fs

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"arcmirror"
)

// timestampLayout matches the archive convention for record file names,
// e.g. records_20250722_133807.csv.
const timestampLayout = "20060102_150405"

// Ensure Writer implements arcmirror.RecordWriter at compile time.
var _ arcmirror.RecordWriter = (*Writer)(nil)

// Writer persists records as timestamped CSV, JSON and URL-list files.
type Writer struct {
	dir string
	now func() time.Time
}

// Option configures a Writer.
type Option func(*Writer)

// WithNow overrides the clock used for file timestamps. Used in tests.
func WithNow(now func() time.Time) Option {
	return func(w *Writer) {
		w.now = now
	}
}

// NewWriter creates a Writer that writes record files to dir.
func NewWriter(dir string, opts ...Option) *Writer {
	w := &Writer{
		dir: dir,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteRecords saves the records as CSV, JSON and a newline-delimited
// URL list, returning the paths of the written files.
func (w *Writer) WriteRecords(ctx context.Context, records []arcmirror.Record) (*arcmirror.RecordFiles, error) {
	if len(records) == 0 {
		return nil, arcmirror.Errorf(arcmirror.EINVALID, "no records to save")
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return nil, err
	}

	ts := w.now().Format(timestampLayout)
	files := &arcmirror.RecordFiles{
		CSV:     filepath.Join(w.dir, fmt.Sprintf("records_%s.csv", ts)),
		JSON:    filepath.Join(w.dir, fmt.Sprintf("records_%s.json", ts)),
		URLList: filepath.Join(w.dir, fmt.Sprintf("urls_%s.txt", ts)),
	}

	if err := writeCSV(files.CSV, records); err != nil {
		return nil, err
	}
	if err := writeJSON(files.JSON, records); err != nil {
		return nil, err
	}
	if err := writeURLList(files.URLList, records); err != nil {
		return nil, err
	}

	return files, nil
}

func writeCSV(path string, records []arcmirror.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write([]string{"filename", "url", "release_date"}); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write([]string{r.Filename, r.URL, r.ReleaseDate}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(path string, records []arcmirror.Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

func writeURLList(path string, records []arcmirror.Record) error {
	var b strings.Builder
	for _, r := range records {
		b.WriteString(r.URL)
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0644)
}

// ReadURLList reads a newline-delimited URL file, skipping blank lines
// and surrounding whitespace.
func ReadURLList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return urls, nil
}
