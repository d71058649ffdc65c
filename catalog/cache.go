package catalog

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/dalil-app/dalil"
)

// Compile-time interface verification.
var _ dalil.Cache = (*MemoryCache)(nil)

// entry is a cached value with its storage timestamp.
type entry struct {
	data     []byte
	storedAt time.Time
}

// MemoryCache is an in-process TTL cache. Entries are valid while
// now - storedAt < TTL; expired entries are evicted lazily on the next
// lookup, never proactively swept. Values are stored JSON-encoded so a
// cached result cannot alias mutable state handed to callers.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryCache creates a MemoryCache with the given TTL.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get loads the value stored under key into dest.
// Returns false on a miss, an expired entry, or a decode failure.
func (c *MemoryCache) Get(_ context.Context, key string, dest any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return false
	}
	if c.now().Sub(e.storedAt) >= c.ttl {
		delete(c.entries, key)
		return false
	}
	return json.Unmarshal(e.data, dest) == nil
}

// Set stores value under key, replacing any existing entry.
// Values that cannot be encoded are silently not cached.
func (c *MemoryCache) Set(_ context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{data: data, storedAt: c.now()}
}

// DeletePrefix removes all entries whose key starts with prefix.
// An empty prefix removes every entry. Returns the number removed.
func (c *MemoryCache) DeletePrefix(_ context.Context, prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of entries currently held, including entries
// that have expired but not yet been evicted.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
