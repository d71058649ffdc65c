package index_test

import (
	"testing"
	"time"

	"github.com/dalil-app/dalil"
	"github.com/dalil-app/dalil/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Search_Filters(t *testing.T) {
	t.Parallel()

	t.Run("language partitions the catalog", func(t *testing.T) {
		t.Parallel()

		e := index.NewEngine()
		en := testRecord("svc-en", "Tourist Visa")
		ar := testRecord("svc-ar", "تاشيرة سياحية")
		ar.Language = dalil.LanguageArabic
		require.NoError(t, e.AddRecord(en))
		require.NoError(t, e.AddRecord(ar))

		results, err := e.Search("visa", dalil.SearchOptions{Language: dalil.LanguageEnglish})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "svc-en", results[0].Record.ID)

		results, err = e.Search("تاشيرة", dalil.SearchOptions{Language: dalil.LanguageArabic})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "svc-ar", results[0].Record.ID)
	})

	t.Run("expired records excluded unless requested", func(t *testing.T) {
		t.Parallel()

		e := index.NewEngine()
		expired := testRecord("svc-old", "Visa Amnesty Programme")
		expired.Status = dalil.StatusExpired
		require.NoError(t, e.AddRecord(expired))

		results, err := e.Search("amnesty", dalil.SearchOptions{})
		require.NoError(t, err)
		assert.Empty(t, results)

		results, err = e.Search("amnesty", dalil.SearchOptions{IncludeExpired: true})
		require.NoError(t, err)
		assert.Len(t, results, 1)
	})

	t.Run("category filter is case-insensitive", func(t *testing.T) {
		t.Parallel()

		e := index.NewEngine()
		r := testRecord("svc-1", "Tourist Visa")
		r.Category = "Visa"
		require.NoError(t, e.AddRecord(r))
		other := testRecord("svc-2", "Visa Fine Payment")
		other.Category = "driving"
		require.NoError(t, e.AddRecord(other))

		results, err := e.Search("visa", dalil.SearchOptions{Category: "visa"})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "svc-1", results[0].Record.ID)
	})

	t.Run("zero matches is an empty result, not an error", func(t *testing.T) {
		t.Parallel()

		e := index.NewEngine()
		results, err := e.Search("anything", dalil.SearchOptions{})

		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("empty query returns empty result", func(t *testing.T) {
		t.Parallel()

		e := index.NewEngine()
		require.NoError(t, e.AddRecord(testRecord("svc-1", "Tourist Visa")))

		results, err := e.Search("  !? ", dalil.SearchOptions{})

		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("max results truncates after sorting", func(t *testing.T) {
		t.Parallel()

		e := index.NewEngine()
		require.NoError(t, e.AddRecord(testRecord("svc-1", "Permit One")))
		require.NoError(t, e.AddRecord(testRecord("svc-2", "Permit Two")))
		require.NoError(t, e.AddRecord(testRecord("svc-3", "Permit Three")))

		results, err := e.Search("permit", dalil.SearchOptions{MaxResults: 2})

		require.NoError(t, err)
		assert.Len(t, results, 2)
	})
}

func TestEngine_Search_SynonymExpansion(t *testing.T) {
	t.Parallel()

	e := index.NewEngine()
	require.NoError(t, e.AddRecord(testRecord("svc-1", "Trade Permit Issuance")))

	// "license" expands to "permit" via the synonym table.
	results, err := e.Search("license", dalil.SearchOptions{})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "svc-1", results[0].Record.ID)
}

func TestEngine_Search_Scoring(t *testing.T) {
	t.Parallel()

	t.Run("national authority with recent update", func(t *testing.T) {
		t.Parallel()

		e := index.NewEngine()
		r := &dalil.ServiceRecord{
			ID:          "svc-visa",
			Title:       "Tourist Visa Application",
			Description: "Apply for a short stay in the country.",
			Authority:   dalil.Authority{Name: "Federal Authority for Identity and Citizenship", Code: "FED-ICP"},
			Category:    "visa",
			Language:    dalil.LanguageEnglish,
			Status:      dalil.StatusActive,
			LastUpdated: time.Now(),
		}
		require.NoError(t, e.AddRecord(r))

		results, err := e.Search("visa", dalil.SearchOptions{Language: dalil.LanguageEnglish})

		require.NoError(t, err)
		require.Len(t, results, 1)

		// +1 token, +3 title, +2 category, +3 national authority, +2 recency.
		assert.Equal(t, 11, results[0].Score)
		assert.Contains(t, results[0].MatchedFields, "title")
		assert.Contains(t, results[0].MatchedFields, "category")
	})

	t.Run("field bonuses stack per matching token", func(t *testing.T) {
		t.Parallel()

		e := index.NewEngine()
		one := &dalil.ServiceRecord{
			ID:       "svc-a",
			Title:    "Residency Grant",
			Language: dalil.LanguageEnglish,
			Status:   dalil.StatusActive,
		}
		both := &dalil.ServiceRecord{
			ID:          "svc-b",
			Title:       "Residency Grant",
			Description: "Residency for skilled workers.",
			Language:    dalil.LanguageEnglish,
			Status:      dalil.StatusActive,
		}
		require.NoError(t, e.AddRecord(one))
		require.NoError(t, e.AddRecord(both))

		results, err := e.Search("residency grant", dalil.SearchOptions{})

		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "svc-b", results[0].Record.ID)
		assert.Greater(t, results[0].Score, results[1].Score)
	})

	t.Run("equal scores break ties by ascending ID", func(t *testing.T) {
		t.Parallel()

		e := index.NewEngine()
		require.NoError(t, e.AddRecord(testRecord("svc-b", "Noise Complaint")))
		require.NoError(t, e.AddRecord(testRecord("svc-a", "Noise Permit")))

		results, err := e.Search("noise", dalil.SearchOptions{})

		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "svc-a", results[0].Record.ID)
		assert.Equal(t, "svc-b", results[1].Record.ID)
	})
}

func TestEngine_Search_Sorting(t *testing.T) {
	t.Parallel()

	t.Run("date sorts more recently updated first", func(t *testing.T) {
		t.Parallel()

		e := index.NewEngine()
		older := testRecord("svc-old", "Visa Renewal")
		older.LastUpdated = time.Now().Add(-48 * time.Hour)
		newer := testRecord("svc-new", "Visa Renewal")
		newer.LastUpdated = time.Now().Add(-1 * time.Hour)
		require.NoError(t, e.AddRecord(older))
		require.NoError(t, e.AddRecord(newer))

		results, err := e.Search("renewal", dalil.SearchOptions{SortBy: dalil.SortByDate})

		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "svc-new", results[0].Record.ID)
		assert.Equal(t, "svc-old", results[1].Record.ID)
	})

	t.Run("missing dates sort last", func(t *testing.T) {
		t.Parallel()

		e := index.NewEngine()
		dated := testRecord("svc-dated", "Visa Renewal")
		undated := testRecord("svc-undated", "Visa Renewal")
		undated.LastUpdated = time.Time{}
		require.NoError(t, e.AddRecord(undated))
		require.NoError(t, e.AddRecord(dated))

		results, err := e.Search("renewal", dalil.SearchOptions{SortBy: dalil.SortByDate})

		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "svc-dated", results[0].Record.ID)
	})

	t.Run("authority sorts national, subnational, other", func(t *testing.T) {
		t.Parallel()

		e := index.NewEngine()
		other := testRecord("svc-other", "Permit Lookup")
		other.Authority = dalil.Authority{Name: "Some Office", Code: "XYZ"}
		sub := testRecord("svc-sub", "Permit Lookup")
		sub.Authority = dalil.Authority{Name: "Dubai Municipality", Code: "DXB-DM"}
		nat := testRecord("svc-nat", "Permit Lookup")
		nat.Authority = dalil.Authority{Name: "Ministry of Interior", Code: "MIN-MOI"}
		require.NoError(t, e.AddRecord(other))
		require.NoError(t, e.AddRecord(sub))
		require.NoError(t, e.AddRecord(nat))

		results, err := e.Search("permit", dalil.SearchOptions{SortBy: dalil.SortByAuthority})

		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, "svc-nat", results[0].Record.ID)
		assert.Equal(t, "svc-sub", results[1].Record.ID)
		assert.Equal(t, "svc-other", results[2].Record.ID)
	})
}

func TestEngine_Search_MatchedFields(t *testing.T) {
	t.Parallel()

	e := index.NewEngine()
	r := &dalil.ServiceRecord{
		ID:          "svc-1",
		Title:       "Work Permit",
		Description: "Employment permit for the private sector.",
		Category:    "business",
		Documents:   []string{"Permit application form"},
		Steps:       []string{"Pay the permit fee"},
		Language:    dalil.LanguageEnglish,
		Status:      dalil.StatusActive,
	}
	require.NoError(t, e.AddRecord(r))

	results, err := e.Search("permit", dalil.SearchOptions{})

	require.NoError(t, err)
	require.Len(t, results, 1)

	fields := results[0].MatchedFields
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "description")
	assert.Contains(t, fields, "documents")
	assert.Contains(t, fields, "steps")
	assert.NotContains(t, fields, "category")

	// Each field appears at most once.
	seen := map[string]int{}
	for _, f := range fields {
		seen[f]++
	}
	for f, n := range seen {
		assert.Equal(t, 1, n, "field %s repeated", f)
	}
}
