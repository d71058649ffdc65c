package dalil

import "context"

// Fetcher retrieves raw page content from URLs.
// Implementations must rotate their client identity between successive
// calls and honor a minimum inter-request delay that grows when the remote
// signals rate limiting (surfaced as ERATELIMIT, never retried internally).
type Fetcher interface {
	// Fetch retrieves the page content for the URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// FetchPolicy decides whether acquisition is permitted for a URL.
type FetchPolicy interface {
	// CanFetch reports whether the URL may be fetched. Implementations
	// default to permissive when the check cannot be performed.
	CanFetch(ctx context.Context, url string) bool
}

// PermissivePolicy allows every URL. It is the default when no policy
// is configured.
type PermissivePolicy struct{}

// CanFetch always returns true.
func (PermissivePolicy) CanFetch(context.Context, string) bool { return true }
