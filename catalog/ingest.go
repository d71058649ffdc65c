package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/dalil-app/dalil"
	"github.com/dalil-app/dalil/bloom"
)

// Dedup filter sizing for site ingestion. Government portals list a few
// thousand services at most; 10k keeps the false positive rate honest.
const (
	ingestExpectedURLs      = 10000
	ingestFalsePositiveRate = 0.01
)

type ingestState struct {
	once sync.Once
	seen *bloom.Filter
}

// IngestSite discovers service page URLs from a portal's sitemap and feeds
// them through ProcessBatch. URLs already ingested by this service instance
// are skipped, so repeated ingestion runs only pick up new pages.
func (s *Service) IngestSite(ctx context.Context, baseURL string, filter *dalil.URLFilter, opts BatchOptions) ([]*dalil.ServiceRecord, error) {
	if s.Sitemaps == nil {
		return nil, dalil.Errorf(dalil.EINVALID, "no sitemap service configured")
	}

	urls, err := s.Sitemaps.DiscoverURLs(ctx, baseURL, filter)
	if err != nil {
		return nil, fmt.Errorf("sitemap discovery: %w", err)
	}

	s.ingest.once.Do(func() {
		s.ingest.seen = bloom.NewFilter(ingestExpectedURLs, ingestFalsePositiveRate)
	})

	fresh := make([]string, 0, len(urls))
	for _, u := range urls {
		if s.ingest.seen.Test(u) {
			continue
		}
		s.ingest.seen.Add(u)
		fresh = append(fresh, u)
	}

	s.logger().Info("site discovery",
		"base", baseURL,
		"discovered", len(urls),
		"fresh", len(fresh),
	)
	return s.ProcessBatch(ctx, fresh, opts)
}
