package catalog_test

import (
	"context"
	"sync"
	"testing"

	"github.com/dalil-app/dalil"
	"github.com/dalil-app/dalil/catalog"
	"github.com/dalil-app/dalil/index"
	"github.com/dalil-app/dalil/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_IngestSite(t *testing.T) {
	t.Parallel()

	t.Run("discovers, scrapes, and skips already-ingested URLs on rerun", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		fetched := map[string]int{}

		discovered := []string{
			"https://portal.example/services/visa",
			"https://portal.example/services/license",
		}

		s := &catalog.Service{
			Engine: index.NewEngine(),
			Sitemaps: &mock.SitemapService{
				DiscoverURLsFn: func(_ context.Context, _ string, _ *dalil.URLFilter) ([]string, error) {
					return discovered, nil
				},
			},
			Static: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					mu.Lock()
					fetched[url]++
					mu.Unlock()
					return "page", nil
				},
			},
			Extractor: &mock.Extractor{
				ExtractRecordFn: func(_ string, sourceURL string) (*dalil.ServiceRecord, error) {
					return &dalil.ServiceRecord{Title: "Service", URL: sourceURL}, nil
				},
			},
			Logger: quietLogger(),
		}
		ctx := context.Background()

		records, err := s.IngestSite(ctx, "https://portal.example", nil, catalog.BatchOptions{})
		require.NoError(t, err)
		assert.Len(t, records, 2)

		// Second run discovers the same URLs plus one new page.
		discovered = append(discovered, "https://portal.example/services/permit")

		records, err = s.IngestSite(ctx, "https://portal.example", nil, catalog.BatchOptions{})
		require.NoError(t, err)
		assert.Len(t, records, 1)

		for url, n := range fetched {
			assert.Equal(t, 1, n, "url %s fetched more than once", url)
		}
	})

	t.Run("missing sitemap service is EINVALID", func(t *testing.T) {
		t.Parallel()

		s := &catalog.Service{Engine: index.NewEngine(), Logger: quietLogger()}

		_, err := s.IngestSite(context.Background(), "https://portal.example", nil, catalog.BatchOptions{})

		assert.Equal(t, dalil.EINVALID, dalil.ErrorCode(err))
	})
}
