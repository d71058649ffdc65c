package dalil

import (
	"context"
	"strings"
	"time"
)

// Language identifies the script a record or query is written in.
// The catalog is partitioned by language: a query in one language only
// matches records tagged with that language.
type Language string

// Supported languages.
const (
	LanguageEnglish Language = "en"
	LanguageArabic  Language = "ar"
)

// Valid reports whether the language is one of the supported values.
func (l Language) Valid() bool {
	return l == LanguageEnglish || l == LanguageArabic
}

// Status represents the lifecycle state of a service record.
type Status string

// Record statuses. Expired records are excluded from search results
// unless explicitly requested.
const (
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
)

// AuthorityTier classifies the administrative level of an issuing authority.
type AuthorityTier int

// Authority tiers, ordered from highest to lowest ranking weight.
const (
	TierNational AuthorityTier = iota
	TierSubnational
	TierOther
)

// nationalPrefixes mark authority codes of federal-level bodies.
var nationalPrefixes = []string{"FED-", "MIN-"}

// subnationalPrefixes mark authority codes of emirate-level bodies.
var subnationalPrefixes = []string{"DXB-", "AUH-", "SHJ-", "AJM-", "RAK-", "FUJ-", "UAQ-"}

// Authority is the government body that issues a service.
type Authority struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Tier returns the administrative tier denoted by the authority code.
func (a Authority) Tier() AuthorityTier {
	code := strings.ToUpper(a.Code)
	for _, p := range nationalPrefixes {
		if strings.HasPrefix(code, p) {
			return TierNational
		}
	}
	for _, p := range subnationalPrefixes {
		if strings.HasPrefix(code, p) {
			return TierSubnational
		}
	}
	return TierOther
}

// Fee is a single fee line item attached to a service.
type Fee struct {
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Description string  `json:"description"`
}

// Contact holds optional contact information for a service.
type Contact struct {
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Website string `json:"website,omitempty"`
}

// Placeholder values used when extraction could not recover a field.
// They are exported constants rather than bare strings so that downstream
// consumers can distinguish "extraction found nothing" from real data.
const (
	UnknownTitle     = "Unknown Service"
	UnknownAuthority = "Unknown Authority"
	UnknownCategory  = "general"
)

// ServiceRecord describes a single government service.
type ServiceRecord struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Authority      Authority `json:"authority"`
	Category       string    `json:"category"`
	Subcategory    string    `json:"subcategory,omitempty"`
	Eligibility    []string  `json:"eligibility,omitempty"`
	Documents      []string  `json:"documents,omitempty"`
	Fees           []Fee     `json:"fees,omitempty"`
	ProcessingTime string    `json:"processingTime,omitempty"`
	Steps          []string  `json:"steps,omitempty"`
	URL            string    `json:"url"`
	Contact        *Contact  `json:"contact,omitempty"`
	LastUpdated    time.Time `json:"lastUpdated"`
	Language       Language  `json:"language"`
	Status         Status    `json:"status"`
	ContentHash    string    `json:"contentHash,omitempty"`
}

// Validate returns an error if the record contains invalid fields.
func (r *ServiceRecord) Validate() error {
	if r.ID == "" {
		return Errorf(EINVALID, "record ID required")
	}
	if r.Title == "" {
		return Errorf(EINVALID, "record title required")
	}
	if !r.Language.Valid() {
		return Errorf(EINVALID, "unsupported language %q", r.Language)
	}
	return nil
}

// Document returns the searchable text of the record: the concatenation of
// title, description, authority, category, subcategory, eligibility items,
// required documents, and application steps.
func (r *ServiceRecord) Document() string {
	var sb strings.Builder
	sb.WriteString(r.Title)
	sb.WriteByte(' ')
	sb.WriteString(r.Description)
	sb.WriteByte(' ')
	sb.WriteString(r.Authority.Name)
	sb.WriteByte(' ')
	sb.WriteString(r.Category)
	sb.WriteByte(' ')
	sb.WriteString(r.Subcategory)
	for _, s := range r.Eligibility {
		sb.WriteByte(' ')
		sb.WriteString(s)
	}
	for _, s := range r.Documents {
		sb.WriteByte(' ')
		sb.WriteString(s)
	}
	for _, s := range r.Steps {
		sb.WriteByte(' ')
		sb.WriteString(s)
	}
	return sb.String()
}

// CatalogStore persists service records so the in-memory catalog can be
// re-seeded on restart. Persistence is a collaborator of the search core,
// not part of it.
type CatalogStore interface {
	// SaveRecord inserts or replaces a record by ID.
	SaveRecord(ctx context.Context, record *ServiceRecord) error

	// LoadAll returns every persisted record.
	LoadAll(ctx context.Context) ([]*ServiceRecord, error)

	// DeleteRecord removes a record by ID.
	// Returns ENOTFOUND if the record does not exist.
	DeleteRecord(ctx context.Context, id string) error
}
