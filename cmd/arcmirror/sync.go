package main

import (
	"fmt"

	"arcmirror/fs"
	"arcmirror/mirror"
)

// Run executes the sync command.
func (c *SyncCmd) Run(deps *Dependencies) error {
	urls, err := fs.ReadURLList(c.URLFile)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: failed to read URL file: %v\n", err)
		return err
	}
	if len(urls) == 0 {
		fmt.Fprintln(deps.Stdout, "No URLs to sync.")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Syncing %d files to bucket %q\n", len(urls), c.Bucket)

	progress := func(event mirror.ProgressEvent) {
		switch event.Type {
		case mirror.ProgressUploaded:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] uploaded %s\n", event.Completed, event.Total, event.Key)
		case mirror.ProgressSkipped:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] skip %s: exists with matching size\n", event.Completed, event.Total, event.Key)
		case mirror.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] failed %s: %v\n", event.Completed, event.Total, mirror.TruncateURL(event.URL, 60), event.Error)
		}
	}

	result, err := deps.Syncer.Run(deps.Ctx, urls, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "\nSync summary:\n")
	fmt.Fprintf(deps.Stdout, "  Total files: %d\n", len(urls))
	fmt.Fprintf(deps.Stdout, "  Uploaded: %d\n", result.Uploaded)
	fmt.Fprintf(deps.Stdout, "  Skipped: %d\n", result.Skipped)
	fmt.Fprintf(deps.Stdout, "  Failed: %d\n", result.Failed)
	fmt.Fprintf(deps.Stdout, "  Transferred: %s\n", mirror.FormatBytes(result.Bytes))

	return nil
}
