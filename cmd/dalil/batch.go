package main

import (
	"fmt"

	"github.com/dalil-app/dalil"
	"github.com/dalil-app/dalil/catalog"
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	records, err := deps.Catalog.ProcessBatch(deps.Ctx, c.URLs, catalog.BatchOptions{
		Concurrency: c.Concurrency,
		ItemTimeout: c.Timeout,
		Dynamic:     c.Dynamic,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", dalil.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Indexed %d of %d pages\n", len(records), len(c.URLs))
	for _, r := range records {
		fmt.Fprintf(deps.Stdout, "  %s  %s\n", r.ID, r.Title)
	}
	return nil
}
