package main

import (
	"fmt"

	"github.com/dalil-app/dalil"
	"github.com/dalil-app/dalil/query"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	language := dalil.Language(c.Language)
	if language == "" {
		language = query.DetectLanguage(c.Question)
	}

	answer, err := deps.Responder.Respond(deps.Ctx, c.Question, language)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", dalil.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, answer)
	return nil
}
