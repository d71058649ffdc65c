package mock

import (
	"context"

	"github.com/dalil-app/dalil"
)

var _ dalil.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of dalil.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *dalil.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *dalil.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
