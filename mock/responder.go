package mock

import (
	"context"

	"github.com/dalil-app/dalil"
)

var _ dalil.Responder = (*Responder)(nil)

// Responder is a mock implementation of dalil.Responder.
type Responder struct {
	RespondFn func(ctx context.Context, query string, language dalil.Language) (string, error)
}

func (r *Responder) Respond(ctx context.Context, query string, language dalil.Language) (string, error) {
	return r.RespondFn(ctx, query, language)
}
