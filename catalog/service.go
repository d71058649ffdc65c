// Package catalog provides the orchestration layer of the service catalog:
// it composes the search engine, content acquisition, TTL caching, and a
// bounded concurrency gate behind the public search/scrape/batch API
// consumed by the chat layer.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dalil-app/dalil"
	"github.com/dalil-app/dalil/query"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

// classifyThreshold gates query classification: a derived category is only
// applied as a search filter above this confidence.
const classifyThreshold = 0.6

// Service is the composition root of the catalog core. Construct one per
// Engine/Cache pair at application startup and pass it by reference to
// callers; it owns the concurrency gate for acquisitions.
type Service struct {
	Engine    dalil.SearchEngine
	Static    dalil.Fetcher
	Dynamic   dalil.Fetcher
	Policy    dalil.FetchPolicy
	Extractor dalil.Extractor

	// Cache is optional; a nil cache disables caching entirely.
	Cache dalil.Cache

	// Store is optional; when set, scraped records are persisted so the
	// catalog can be re-seeded on restart.
	Store dalil.CatalogStore

	// Sitemaps is optional; it enables IngestSite discovery.
	Sitemaps dalil.SitemapService

	Logger *slog.Logger

	// MaxConcurrent caps in-flight acquisitions. Excess callers queue in
	// arrival order and are admitted FIFO as slots free.
	MaxConcurrent int

	// ItemTimeout bounds each batch item. Defaults to 60s.
	ItemTimeout time.Duration

	// DefaultLanguage is applied to searches that specify none.
	DefaultLanguage dalil.Language

	gateOnce sync.Once
	gate     *semaphore.Weighted
	ingest   ingestState
}

// Initialize seeds the engine with a starting catalog. Records are added
// with AddRecord semantics: re-initializing with an ID that is already
// indexed returns ECONFLICT.
func (s *Service) Initialize(ctx context.Context, records []*dalil.ServiceRecord) error {
	for _, r := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Engine.AddRecord(r); err != nil {
			return fmt.Errorf("seeding record %q: %w", r.ID, err)
		}
	}
	s.logger().Info("catalog seeded", "records", len(records))
	return nil
}

// Search answers a free-text query against the catalog, consulting the
// cache first. On a miss it derives entity hints and a confidence-gated
// category classification from the query before delegating to the engine.
func (s *Service) Search(ctx context.Context, queryText string, opts dalil.SearchOptions) ([]dalil.SearchResult, error) {
	if opts.Language == "" && s.DefaultLanguage != "" {
		opts.Language = s.DefaultLanguage
	}
	opts = opts.Normalize()

	// The key reflects the caller's request signature, not any filter the
	// classifier derives below.
	key := searchKey(queryText, opts)
	if s.Cache != nil {
		var cached []dalil.SearchResult
		if s.Cache.Get(ctx, key, &cached) {
			s.logger().Debug("search cache hit", "key", key)
			return cached, nil
		}
	}

	if hints := query.EntityHints(queryText, opts.Language); len(hints) > 0 {
		s.logger().Debug("entity hints", "query", queryText, "hints", hints)
	}

	if opts.Category == "" {
		if category, confidence := query.Classify(queryText, opts.Language); category != "" && confidence >= classifyThreshold {
			s.logger().Debug("classified query",
				"category", category,
				"confidence", confidence,
			)
			opts.Category = category
		}
	}

	results, err := s.Engine.Search(queryText, opts)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		s.Cache.Set(ctx, key, results)
	}
	return results, nil
}

// ScrapeAndIndex acquires a page, extracts a service record from it, and
// adds or updates it in the engine. A URL disallowed by policy is a fatal
// error for this call (EPOLICY) and is not retried. The concurrency slot
// is always released, including on error.
func (s *Service) ScrapeAndIndex(ctx context.Context, url string, dynamic bool) (*dalil.ServiceRecord, error) {
	key := scrapeKey(url, dynamic)
	if s.Cache != nil {
		var cached dalil.ServiceRecord
		if s.Cache.Get(ctx, key, &cached) {
			s.logger().Debug("scrape cache hit", "url", url)
			return &cached, nil
		}
	}

	if err := s.acquire(ctx); err != nil {
		return nil, err
	}
	defer s.release()

	if s.Policy != nil && !s.Policy.CanFetch(ctx, url) {
		return nil, dalil.Errorf(dalil.EPOLICY, "acquisition disallowed for %q", url)
	}

	html, err := s.fetcher(dynamic).Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}

	record, err := s.Extractor.ExtractRecord(html, url)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", url, err)
	}
	s.completeRecord(record, url, html)

	if err := s.Engine.AddRecord(record); err != nil {
		if dalil.ErrorCode(err) != dalil.ECONFLICT {
			return nil, err
		}
		// Re-extraction of a known service replaces it in place.
		if err := s.Engine.UpdateRecord(record); err != nil {
			return nil, err
		}
	}

	if s.Store != nil {
		if err := s.Store.SaveRecord(ctx, record); err != nil {
			s.logger().Warn("persisting record failed", "id", record.ID, "error", err)
		}
	}

	if s.Cache != nil {
		s.Cache.Set(ctx, key, record)
	}

	s.logger().Info("indexed scraped record",
		"id", record.ID,
		"url", url,
		"language", record.Language,
	)
	return record, nil
}

// BatchOptions controls ProcessBatch.
type BatchOptions struct {
	// Concurrency sizes the chunks processed together.
	// Defaults to the service's MaxConcurrent.
	Concurrency int

	// ItemTimeout bounds each item. Defaults to the service's ItemTimeout.
	ItemTimeout time.Duration

	// Dynamic selects the rendering fetch path for every item.
	Dynamic bool
}

// ProcessBatch scrapes and indexes a list of URLs. Duplicate URLs are
// skipped. The list is partitioned into chunks sized by the concurrency
// setting; chunks run strictly in order while items within a chunk run
// concurrently, each bounded by the per-item timeout. Failed or timed-out
// items are logged and dropped; the returned records carry no ordering
// guarantee relative to the input.
func (s *Service) ProcessBatch(ctx context.Context, urls []string, opts BatchOptions) ([]*dalil.ServiceRecord, error) {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = s.maxConcurrent()
	}
	timeout := opts.ItemTimeout
	if timeout <= 0 {
		timeout = s.ItemTimeout
	}
	if timeout <= 0 {
		timeout = dalil.DefaultItemTimeout
	}

	urls = dedupe(urls)

	var (
		mu      sync.Mutex
		records []*dalil.ServiceRecord
	)

	for start := 0; start < len(urls); start += concurrency {
		if err := ctx.Err(); err != nil {
			return records, err
		}

		end := start + concurrency
		if end > len(urls) {
			end = len(urls)
		}
		chunk := urls[start:end]

		var wg sync.WaitGroup
		for _, url := range chunk {
			wg.Add(1)
			go func(url string) {
				defer wg.Done()

				ictx, cancel := context.WithTimeout(ctx, timeout)
				defer cancel()

				record, err := s.ScrapeAndIndex(ictx, url, opts.Dynamic)
				if err != nil {
					if errors.Is(err, context.DeadlineExceeded) {
						err = dalil.Errorf(dalil.ETIMEOUT, "batch item %q timed out after %s", url, timeout)
					}
					s.logger().Warn("batch item dropped", "url", url, "error", err)
					return
				}

				mu.Lock()
				records = append(records, record)
				mu.Unlock()
			}(url)
		}
		wg.Wait()
	}

	s.logger().Info("batch processed",
		"urls", len(urls),
		"indexed", len(records),
	)
	return records, nil
}

// ClearCache drops all cache entries, or only those whose key starts with
// the given prefix. Returns the number of entries removed.
func (s *Service) ClearCache(ctx context.Context, prefix string) int {
	if s.Cache == nil {
		return 0
	}
	removed := s.Cache.DeletePrefix(ctx, prefix)
	s.logger().Info("cache cleared", "prefix", prefix, "removed", removed)
	return removed
}

// completeRecord fills fields extraction could not recover with
// deterministic defaults so the record is valid for indexing. Placeholders
// use the exported Unknown* sentinels; identifiers are generated.
func (s *Service) completeRecord(r *dalil.ServiceRecord, url, html string) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.Title == "" {
		r.Title = dalil.UnknownTitle
	}
	if r.Authority.Name == "" {
		r.Authority.Name = dalil.UnknownAuthority
	}
	if r.Category == "" {
		r.Category = dalil.UnknownCategory
	}
	if r.URL == "" {
		r.URL = url
	}
	if !r.Language.Valid() {
		r.Language = query.DetectLanguage(r.Document())
	}
	if r.Status == "" {
		r.Status = dalil.StatusActive
	}
	if r.LastUpdated.IsZero() {
		r.LastUpdated = time.Now()
	}
	if r.ContentHash == "" {
		r.ContentHash = fmt.Sprintf("%x", xxhash.Sum64String(html))
	}
}

// fetcher selects the static or rendering fetch path. The static fetcher
// is the fallback when no dynamic fetcher is configured.
func (s *Service) fetcher(dynamic bool) dalil.Fetcher {
	if dynamic && s.Dynamic != nil {
		return s.Dynamic
	}
	return s.Static
}

// acquire claims a concurrency slot, queueing FIFO behind other callers.
func (s *Service) acquire(ctx context.Context) error {
	s.gateOnce.Do(func() {
		s.gate = semaphore.NewWeighted(int64(s.maxConcurrent()))
	})
	return s.gate.Acquire(ctx, 1)
}

func (s *Service) release() {
	s.gate.Release(1)
}

func (s *Service) maxConcurrent() int {
	if s.MaxConcurrent > 0 {
		return s.MaxConcurrent
	}
	return dalil.DefaultMaxConcurrent
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// searchKey builds the cache signature of a search request. The language
// sits directly after the operation so administrative invalidation can
// target one language partition by prefix.
func searchKey(queryText string, opts dalil.SearchOptions) string {
	return "search:" + string(opts.Language) +
		":" + query.Normalize(queryText) +
		":cat=" + opts.Category +
		":max=" + strconv.Itoa(opts.MaxResults) +
		":exp=" + strconv.FormatBool(opts.IncludeExpired) +
		":sort=" + string(opts.SortBy)
}

// scrapeKey builds the cache signature of a scrape request.
func scrapeKey(url string, dynamic bool) string {
	return "scrape:" + url + ":" + strconv.FormatBool(dynamic)
}

// dedupe removes duplicate URLs, preserving first-occurrence order.
func dedupe(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
