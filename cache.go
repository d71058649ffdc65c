package dalil

import "context"

// Cache stores computed values under request-signature keys for a bounded
// time. Entries are valid only within their TTL; expired entries are
// evicted lazily on the next lookup, never proactively swept.
//
// Keys are plain strings with a colon-separated operation prefix
// (e.g. "search:en:visa") so that administrative invalidation can target
// a subset of entries by prefix.
type Cache interface {
	// Get loads the value stored under key into dest.
	// Returns false on a miss or an expired entry.
	Get(ctx context.Context, key string, dest any) bool

	// Set stores value under key, replacing any existing entry.
	Set(ctx context.Context, key string, value any)

	// DeletePrefix removes all entries whose key starts with prefix.
	// An empty prefix removes every entry. Returns the number removed.
	DeletePrefix(ctx context.Context, prefix string) int
}
