package main

import (
	"fmt"
	"regexp"

	"github.com/dalil-app/dalil"
	"github.com/dalil-app/dalil/catalog"
)

// Run executes the ingest command.
func (c *IngestCmd) Run(deps *Dependencies) error {
	filter, err := buildFilter(c.Include, c.Exclude)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", dalil.ErrorMessage(err))
		return err
	}

	records, err := deps.Catalog.IngestSite(deps.Ctx, c.URL, filter, catalog.BatchOptions{
		Concurrency: c.Concurrency,
		ItemTimeout: c.Timeout,
		Dynamic:     c.Dynamic,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", dalil.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Ingested %d pages from %s\n", len(records), c.URL)
	return nil
}

// buildFilter compiles include and exclude regex flags into a URLFilter.
func buildFilter(include, exclude []string) (*dalil.URLFilter, error) {
	if len(include) == 0 && len(exclude) == 0 {
		return nil, nil
	}
	filter := &dalil.URLFilter{}
	for _, p := range include {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, dalil.Errorf(dalil.EINVALID, "invalid filter pattern %q: %v", p, err)
		}
		filter.Include = append(filter.Include, re)
	}
	for _, p := range exclude {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, dalil.Errorf(dalil.EINVALID, "invalid exclude pattern %q: %v", p, err)
		}
		filter.Exclude = append(filter.Exclude, re)
	}
	return filter, nil
}
