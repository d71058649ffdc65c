// Package rod fetches rendered HTML from JavaScript-heavy portal pages
// using headless Chrome automation.
package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/dalil-app/dalil"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultSettleDelay is how long to wait after load for client-side
// rendering to finish before capturing the page.
const DefaultSettleDelay = 500 * time.Millisecond

// defaultUserAgents is the identity ring rotated across page visits.
var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36",
}

// Ensure Fetcher implements dalil.Fetcher at compile time.
var _ dalil.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using a managed headless
// Chrome browser. Fetcher is safe for concurrent use.
type Fetcher struct {
	manager     *BrowserManager
	settleDelay time.Duration
	userAgents  []string
	visits      atomic.Uint64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithSettleDelay sets the post-load wait before capturing page HTML.
func WithSettleDelay(d time.Duration) Option {
	return func(f *Fetcher) { f.settleDelay = d }
}

// WithUserAgents replaces the rotated user agent identities.
func WithUserAgents(agents []string) Option {
	return func(f *Fetcher) {
		if len(agents) > 0 {
			f.userAgents = agents
		}
	}
}

// NewFetcher creates a new Fetcher backed by a fresh browser manager.
// Close must be called when the Fetcher is no longer needed.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	manager, err := NewBrowserManager()
	if err != nil {
		return nil, dalil.Errorf(dalil.EINTERNAL, "failed to start browser: %v", err)
	}

	f := &Fetcher{
		manager:     manager,
		settleDelay: DefaultSettleDelay,
		userAgents:  defaultUserAgents,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML after scripts
// have had a chance to run.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	browser := f.manager.Browser()
	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	ua := f.userAgents[f.visits.Add(1)%uint64(len(f.userAgents))]
	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent:      ua,
		AcceptLanguage: "en,ar;q=0.8",
	}); err != nil {
		return "", err
	}

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	// Give client-side rendering time to populate the DOM.
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(f.settleDelay):
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	f.manager.IncrementPageCount()
	return html, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}
