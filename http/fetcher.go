// Package http provides HTTP-based acquisition: a static-markup fetcher
// with identity rotation and adaptive pacing, a robots.txt fetch policy,
// and sitemap-based URL discovery.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/dalil-app/dalil"
	"golang.org/x/time/rate"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMinDelay is the starting minimum delay between requests.
const DefaultMinDelay = 500 * time.Millisecond

// defaultUserAgents is the identity ring rotated across requests.
// Successive requests never present the same identity back-to-back.
var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 13_5) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.5 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:127.0) Gecko/20100101 Firefox/127.0",
}

// Ensure Fetcher implements dalil.Fetcher at compile time.
var _ dalil.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves page content over plain HTTP. It does not execute
// JavaScript and is suitable for static markup only; use rod.Fetcher for
// script-generated pages.
//
// Each request presents the next identity in a rotating ring and waits out
// a minimum inter-request delay. When the remote answers 429, the delay is
// doubled and the failure surfaces as ERATELIMIT; the delay never shrinks
// on its own, callers reset it explicitly via ResetDelay.
type Fetcher struct {
	client     *http.Client
	timeout    time.Duration
	userAgents []string

	mu       sync.Mutex
	nextUA   int
	minDelay time.Duration
	limiter  *rate.Limiter
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.timeout = d }
}

// WithMinDelay sets the starting minimum inter-request delay.
// Defaults to DefaultMinDelay.
func WithMinDelay(d time.Duration) Option {
	return func(f *Fetcher) { f.minDelay = d }
}

// WithUserAgents replaces the identity ring.
func WithUserAgents(agents []string) Option {
	return func(f *Fetcher) {
		if len(agents) > 0 {
			f.userAgents = agents
		}
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:    DefaultFetchTimeout,
		minDelay:   DefaultMinDelay,
		userAgents: defaultUserAgents,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{Timeout: f.timeout}
	f.limiter = rate.NewLimiter(rate.Every(f.minDelay), 1)

	return f
}

// Fetch retrieves the page content from the given URL.
// A 429 response doubles the inter-request delay before returning
// ERATELIMIT; the request is not retried here.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.rotateIdentity())
	req.Header.Set("Accept-Language", "en, ar;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		delay := f.doubleDelay()
		return "", dalil.Errorf(dalil.ERATELIMIT, "%s signaled throttling, inter-request delay now %s", url, delay)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// MinDelay returns the current minimum inter-request delay.
func (f *Fetcher) MinDelay() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.minDelay
}

// ResetDelay restores the inter-request delay to its configured start.
// The delay never decreases automatically.
func (f *Fetcher) ResetDelay(d time.Duration) {
	if d <= 0 {
		d = DefaultMinDelay
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.minDelay = d
	f.limiter.SetLimit(rate.Every(d))
}

// Close releases resources. The underlying http.Client needs no explicit
// cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// rotateIdentity returns the next user agent in the ring.
func (f *Fetcher) rotateIdentity() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ua := f.userAgents[f.nextUA]
	f.nextUA = (f.nextUA + 1) % len(f.userAgents)
	return ua
}

// doubleDelay doubles the minimum inter-request delay and returns the
// new value.
func (f *Fetcher) doubleDelay() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.minDelay *= 2
	f.limiter.SetLimit(rate.Every(f.minDelay))
	return f.minDelay
}
