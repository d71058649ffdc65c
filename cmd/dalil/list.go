package main

import (
	"fmt"

	"github.com/dalil-app/dalil"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	records, err := deps.Store.LoadAll(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", dalil.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "No services indexed. Use 'dalil scrape' or 'dalil ingest' to add some.")
		return nil
	}

	for _, r := range records {
		fmt.Fprintf(deps.Stdout, "%s  [%s/%s]  %s\n", r.ID, r.Language, r.Status, r.Title)
	}

	return nil
}
