package dalil

import (
	"context"
	"log/slog"
)

// Responder generates a natural-language answer to a user query in the
// given language, typically backed by a large-language-model provider.
type Responder interface {
	Respond(ctx context.Context, query string, language Language) (string, error)
}

// ResponderChain dispatches to an ordered list of responders, advancing to
// the next on failure. It replaces ad-hoc provider fallback logic with an
// explicitly configured list.
type ResponderChain struct {
	Responders []Responder
	Logger     *slog.Logger
}

// Respond tries each responder in order and returns the first successful
// answer. Returns EINTERNAL if every responder fails or the list is empty.
func (c *ResponderChain) Respond(ctx context.Context, query string, language Language) (string, error) {
	var lastErr error
	for i, r := range c.Responders {
		answer, err := r.Respond(ctx, query, language)
		if err == nil {
			return answer, nil
		}
		lastErr = err
		if c.Logger != nil {
			c.Logger.Warn("responder failed, advancing",
				"position", i,
				"error", err,
			)
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}
	if lastErr != nil {
		return "", lastErr
	}
	return "", Errorf(EINTERNAL, "no responders configured")
}
