package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/dalil-app/dalil"
	dalilhttp "github.com/dalil-app/dalil/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sitemapServer serves a robots.txt pointing at a sitemap index that
// references one child sitemap.
func sitemapServer(t *testing.T) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/robots.txt":
			_, _ = w.Write([]byte("User-agent: *\nSitemap: " + srv.URL + "/sitemap_index.xml\n"))
		case "/sitemap_index.xml":
			_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>` + srv.URL + `/sitemap_services.xml</loc></sitemap>
</sitemapindex>`))
		case "/sitemap_services.xml":
			_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>` + srv.URL + `/services/visa</loc></url>
  <url><loc>` + srv.URL + `/services/license</loc></url>
  <url><loc>` + srv.URL + `/news/update</loc></url>
  <url><loc>` + srv.URL + `/services/visa</loc></url>
</urlset>`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	return srv
}

func TestSitemapService_DiscoverURLs(t *testing.T) {
	t.Parallel()

	t.Run("resolves index recursively and deduplicates", func(t *testing.T) {
		t.Parallel()

		srv := sitemapServer(t)
		defer srv.Close()

		s := dalilhttp.NewSitemapService(srv.Client())
		urls, err := s.DiscoverURLs(context.Background(), srv.URL, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{
			srv.URL + "/services/visa",
			srv.URL + "/services/license",
			srv.URL + "/news/update",
		}, urls)
	})

	t.Run("base path scopes discovery", func(t *testing.T) {
		t.Parallel()

		srv := sitemapServer(t)
		defer srv.Close()

		s := dalilhttp.NewSitemapService(srv.Client())
		urls, err := s.DiscoverURLs(context.Background(), srv.URL+"/services/", nil)

		require.NoError(t, err)
		assert.Len(t, urls, 2)
		for _, u := range urls {
			assert.Contains(t, u, "/services/")
		}
	})

	t.Run("filter trims the result", func(t *testing.T) {
		t.Parallel()

		srv := sitemapServer(t)
		defer srv.Close()

		filter := &dalil.URLFilter{Include: []*regexp.Regexp{regexp.MustCompile(`/services/visa$`)}}

		s := dalilhttp.NewSitemapService(srv.Client())
		urls, err := s.DiscoverURLs(context.Background(), srv.URL, filter)

		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/services/visa"}, urls)
	})

	t.Run("no sitemap yields empty slice", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		s := dalilhttp.NewSitemapService(srv.Client())
		urls, err := s.DiscoverURLs(context.Background(), srv.URL, nil)

		require.NoError(t, err)
		assert.Empty(t, urls)
	})
}
