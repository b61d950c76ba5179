package main

import (
	"fmt"
	"os"
)

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	html, count, err := deps.Indexer.Render(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	if err := os.WriteFile(c.Output, html, 0644); err != nil {
		fmt.Fprintf(deps.Stderr, "error: failed to write %s: %v\n", c.Output, err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s written with %d objects\n", c.Output, count)
	return nil
}
