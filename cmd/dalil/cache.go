package main

import "fmt"

// Run executes the clear-cache command.
func (c *ClearCacheCmd) Run(deps *Dependencies) error {
	removed := deps.Catalog.ClearCache(deps.Ctx, c.Prefix)
	fmt.Fprintf(deps.Stdout, "Cleared %d cached entries\n", removed)
	return nil
}
