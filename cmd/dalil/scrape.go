package main

import (
	"fmt"

	"github.com/dalil-app/dalil"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	record, err := deps.Catalog.ScrapeAndIndex(deps.Ctx, c.URL, c.Dynamic)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", dalil.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Indexed %q (%s)\n", record.Title, record.ID)
	fmt.Fprintf(deps.Stdout, "  authority: %s\n", record.Authority.Name)
	fmt.Fprintf(deps.Stdout, "  category:  %s\n", record.Category)
	fmt.Fprintf(deps.Stdout, "  language:  %s\n", record.Language)
	return nil
}
