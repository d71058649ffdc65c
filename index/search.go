package index

import (
	"sort"
	"strings"
	"time"

	"github.com/dalil-app/dalil"
	"github.com/dalil-app/dalil/query"
)

// Per-token scoring bonuses by field location.
const (
	tokenMatchScore = 1
	titleBonus      = 3
	descBonus       = 2
	categoryBonus   = 2
)

// Authority tier bonuses.
const (
	nationalBonus    = 3
	subnationalBonus = 2
	otherBonus       = 1
)

// Search matches, scores, and ranks records against a free-text query.
// Zero matches yield an empty slice and a nil error.
func (e *Engine) Search(queryText string, opts dalil.SearchOptions) ([]dalil.SearchResult, error) {
	opts = opts.Normalize()

	tokens := query.Expand(query.Tokenize(queryText), opts.Language)
	if len(tokens) == 0 {
		return []dalil.SearchResult{}, nil
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	// Candidate union via the inverted index.
	candidates := make(map[string]struct{})
	for _, tok := range tokens {
		for id := range e.inverted[tok] {
			candidates[id] = struct{}{}
		}
	}

	now := time.Now()
	results := make([]dalil.SearchResult, 0, len(candidates))
	for id := range candidates {
		r := e.records[id]

		if r.Language != opts.Language {
			continue
		}
		if r.Status == dalil.StatusExpired && !opts.IncludeExpired {
			continue
		}
		if opts.Category != "" && !strings.EqualFold(r.Category, opts.Category) {
			continue
		}

		results = append(results, dalil.SearchResult{
			Record:        r,
			Score:         e.score(r, tokens, now),
			MatchedFields: matchedFields(r, tokens),
		})
	}

	sortResults(results, opts.SortBy)

	if len(results) > opts.MaxResults {
		results = results[:opts.MaxResults]
	}
	return results, nil
}

// score computes the relevance of a record against the expanded query
// tokens. Field-location bonuses stack per matching token; the authority
// and recency bonuses apply once per record.
func (e *Engine) score(r *dalil.ServiceRecord, tokens []string, now time.Time) int {
	recordTokens := e.tokens[r.ID]
	title := query.Normalize(r.Title)
	desc := query.Normalize(r.Description)
	category := query.Normalize(r.Category)

	score := 0
	for _, tok := range tokens {
		if _, ok := recordTokens[tok]; !ok {
			continue
		}
		score += tokenMatchScore
		if strings.Contains(title, tok) {
			score += titleBonus
		}
		if strings.Contains(desc, tok) {
			score += descBonus
		}
		if strings.Contains(category, tok) {
			score += categoryBonus
		}
	}

	switch r.Authority.Tier() {
	case dalil.TierNational:
		score += nationalBonus
	case dalil.TierSubnational:
		score += subnationalBonus
	default:
		score += otherBonus
	}

	if !r.LastUpdated.IsZero() {
		age := now.Sub(r.LastUpdated)
		switch {
		case age <= recentWindow:
			score += 2
		case age <= staleWindow:
			score += 1
		}
	}

	return score
}

// matchedFields reports which record fields contain any query token,
// each field named at most once.
func matchedFields(r *dalil.ServiceRecord, tokens []string) []string {
	fields := []struct {
		name string
		text string
	}{
		{"title", r.Title},
		{"description", r.Description},
		{"category", r.Category},
		{"subcategory", r.Subcategory},
		{"authority", r.Authority.Name},
		{"eligibility", strings.Join(r.Eligibility, " ")},
		{"documents", strings.Join(r.Documents, " ")},
		{"steps", strings.Join(r.Steps, " ")},
	}

	var matched []string
	for _, f := range fields {
		norm := query.Normalize(f.text)
		if norm == "" {
			continue
		}
		for _, tok := range tokens {
			if strings.Contains(norm, tok) {
				matched = append(matched, f.name)
				break
			}
		}
	}
	return matched
}

// sortResults orders results in place according to the requested order.
func sortResults(results []dalil.SearchResult, order dalil.SortOrder) {
	switch order {
	case dalil.SortByDate:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Record.LastUpdated.After(results[j].Record.LastUpdated)
		})
	case dalil.SortByAuthority:
		sort.SliceStable(results, func(i, j int) bool {
			ti, tj := results[i].Record.Authority.Tier(), results[j].Record.Authority.Tier()
			if ti != tj {
				return ti < tj
			}
			return results[i].Score > results[j].Score
		})
	default: // relevance
		sort.SliceStable(results, func(i, j int) bool {
			if results[i].Score != results[j].Score {
				return results[i].Score > results[j].Score
			}
			// Deterministic tie-break so callers can rely on stable output.
			return results[i].Record.ID < results[j].Record.ID
		})
	}
}
