package main

import (
	"fmt"

	"github.com/dalil-app/dalil"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Store.DeleteRecord(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", dalil.ErrorMessage(err))
		return err
	}

	// The engine was seeded from the store at startup, so mirror the
	// deletion there too.
	if err := deps.Engine.RemoveRecord(c.ID); err != nil && dalil.ErrorCode(err) != dalil.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: %s\n", dalil.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted %s\n", c.ID)
	return nil
}
