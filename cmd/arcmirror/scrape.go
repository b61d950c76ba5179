package main

import (
	"fmt"

	"arcmirror"
)

// previewCount is how many records the scrape command prints before
// summarizing the rest.
const previewCount = 5

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	result, err := deps.Scraper.Run(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", arcmirror.ErrorMessage(err))
		return err
	}

	if len(result.Records) == 0 {
		fmt.Fprintln(deps.Stdout, "No records found. Check the page structure or network connection.")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Found %d records\n", len(result.Records))
	for i, record := range result.Records {
		if i >= previewCount {
			fmt.Fprintf(deps.Stdout, "... and %d more records\n", len(result.Records)-previewCount)
			break
		}
		fmt.Fprintf(deps.Stdout, "%d. %s - %s\n   URL: %s\n", i+1, record.DisplayName(), record.ReleaseDate, record.URL)
	}

	fmt.Fprintf(deps.Stdout, "Records saved to %s, %s and %s\n",
		result.Files.CSV, result.Files.JSON, result.Files.URLList)

	return nil
}
