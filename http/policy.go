package http

import (
	"bufio"
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/dalil-app/dalil"
)

// Ensure RobotsPolicy implements dalil.FetchPolicy at compile time.
var _ dalil.FetchPolicy = (*RobotsPolicy)(nil)

// RobotsPolicy decides fetch permission from a site's robots.txt.
// The policy is permissive: when robots.txt cannot be retrieved or parsed,
// every URL on that host is allowed.
//
// Only Disallow rules in the wildcard (`User-agent: *`) group are honored.
type RobotsPolicy struct {
	client *http.Client

	mu       sync.Mutex
	disallow map[string][]string // host -> disallowed path prefixes
}

// NewRobotsPolicy creates a RobotsPolicy with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewRobotsPolicy(client *http.Client) *RobotsPolicy {
	if client == nil {
		client = http.DefaultClient
	}
	return &RobotsPolicy{
		client:   client,
		disallow: make(map[string][]string),
	}
}

// CanFetch reports whether the URL may be fetched.
func (p *RobotsPolicy) CanFetch(ctx context.Context, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return true
	}

	rules := p.rulesForHost(ctx, u)
	path := u.Path
	if path == "" {
		path = "/"
	}
	for _, prefix := range rules {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}

// rulesForHost returns the cached Disallow prefixes for a host, fetching
// robots.txt on first use.
func (p *RobotsPolicy) rulesForHost(ctx context.Context, u *url.URL) []string {
	p.mu.Lock()
	rules, ok := p.disallow[u.Host]
	p.mu.Unlock()
	if ok {
		return rules
	}

	rules = p.fetchRules(ctx, u)

	p.mu.Lock()
	p.disallow[u.Host] = rules
	p.mu.Unlock()
	return rules
}

// fetchRules retrieves and parses robots.txt for the URL's host.
// Any failure yields no rules, i.e. a permissive default.
func (p *RobotsPolicy) fetchRules(ctx context.Context, u *url.URL) []string {
	robotsURL := (&url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/robots.txt"}).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var rules []string
	inWildcardGroup := false
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if i := strings.Index(line, "#"); i != -1 {
			line = strings.TrimSpace(line[:i])
		}
		if line == "" {
			continue
		}

		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, "user-agent:"):
			agent := strings.TrimSpace(line[len("user-agent:"):])
			inWildcardGroup = agent == "*"
		case inWildcardGroup && strings.HasPrefix(lower, "disallow:"):
			prefix := strings.TrimSpace(line[len("disallow:"):])
			if prefix != "" {
				rules = append(rules, prefix)
			}
		}
	}
	if scanner.Err() != nil {
		return nil
	}
	return rules
}
