package mock

import (
	"context"

	"github.com/dalil-app/dalil"
)

var _ dalil.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of dalil.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ dalil.FetchPolicy = (*FetchPolicy)(nil)

// FetchPolicy is a mock implementation of dalil.FetchPolicy.
type FetchPolicy struct {
	CanFetchFn func(ctx context.Context, url string) bool
}

func (p *FetchPolicy) CanFetch(ctx context.Context, url string) bool {
	return p.CanFetchFn(ctx, url)
}
