// Package bloom provides memory-bounded URL deduplication for catalog
// ingestion using Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter tracks which URLs have already been ingested. False positives
// make an occasional fresh URL look seen; false negatives never happen,
// so a seen URL is never re-ingested by mistake.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected URLs with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add marks a URL as seen.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test reports whether a URL might have been seen.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

// EstimatedCount returns the approximate number of URLs added.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
