package main

import (
	"fmt"

	"github.com/dalil-app/dalil"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	opts := dalil.SearchOptions{
		Language:       dalil.Language(c.Language),
		Category:       c.Category,
		MaxResults:     c.Max,
		IncludeExpired: c.IncludeExpired,
		SortBy:         dalil.SortOrder(c.Sort),
	}

	results, err := deps.Catalog.Search(deps.Ctx, c.Query, opts)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", dalil.ErrorMessage(err))
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No services found.")
		return nil
	}

	for i, r := range results {
		fmt.Fprintf(deps.Stdout, "%d. %s (score %d)\n", i+1, r.Record.Title, r.Score)
		fmt.Fprintf(deps.Stdout, "   %s | %s | %s\n", r.Record.Authority.Name, r.Record.Category, r.Record.URL)
	}

	return nil
}
