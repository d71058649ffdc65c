package dalil

// SortOrder selects how search results are ordered.
type SortOrder string

// Sort orders for SearchOptions.
const (
	// SortByRelevance orders by descending score; equal scores are broken
	// by ascending record ID so result order is deterministic.
	SortByRelevance SortOrder = "relevance"

	// SortByDate orders by descending last-updated time; records without
	// a date sort last.
	SortByDate SortOrder = "date"

	// SortByAuthority orders national authorities first, then subnational,
	// then all others, each tier broken by descending score.
	SortByAuthority SortOrder = "authority"
)

// Default search option values.
const (
	DefaultLanguage   = LanguageEnglish
	DefaultMaxResults = 10
)

// SearchOptions controls filtering and ordering of a search.
// The zero value is usable; Normalize fills in defaults.
type SearchOptions struct {
	Language       Language  `json:"language"`
	Category       string    `json:"category,omitempty"`
	MaxResults     int       `json:"maxResults"`
	IncludeExpired bool      `json:"includeExpired"`
	SortBy         SortOrder `json:"sortBy"`
}

// Normalize returns a copy of the options with defaults applied.
func (o SearchOptions) Normalize() SearchOptions {
	if o.Language == "" {
		o.Language = DefaultLanguage
	}
	if o.MaxResults <= 0 {
		o.MaxResults = DefaultMaxResults
	}
	if o.SortBy == "" {
		o.SortBy = SortByRelevance
	}
	return o
}

// SearchResult pairs a matched record with its relevance score and the
// fields in which query tokens were found.
type SearchResult struct {
	Record        *ServiceRecord `json:"record"`
	Score         int            `json:"score"`
	MatchedFields []string       `json:"matchedFields"`
}

// SearchEngine owns the catalog of service records and its indices.
//
// Implementations must serialize index-mutating operations against reads:
// the indices are fully rebuilt on every mutation and are not safe for
// concurrent readers during a write.
type SearchEngine interface {
	// AddRecord indexes a new record.
	// Returns ECONFLICT if the ID already exists; use UpdateRecord instead.
	AddRecord(record *ServiceRecord) error

	// UpdateRecord replaces an existing record by ID and rebuilds indices.
	// Returns ENOTFOUND if the record does not exist.
	UpdateRecord(record *ServiceRecord) error

	// RemoveRecord deletes a record and purges it from all indices.
	// Returns ENOTFOUND if the record does not exist.
	RemoveRecord(id string) error

	// Search matches, scores, and ranks records against a free-text query.
	// Zero matches yield an empty slice and a nil error.
	Search(query string, opts SearchOptions) ([]SearchResult, error)
}
