package gemini_test

import (
	"context"
	"testing"

	"github.com/dalil-app/dalil"
	"github.com/dalil-app/dalil/gemini"
	"github.com/dalil-app/dalil/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponder_Respond_Validation(t *testing.T) {
	t.Parallel()

	t.Run("requires query", func(t *testing.T) {
		t.Parallel()

		r := gemini.NewResponder(nil, &mock.SearchEngine{})
		_, err := r.Respond(context.Background(), "", dalil.LanguageEnglish)

		require.Error(t, err)
		assert.Equal(t, dalil.EINVALID, dalil.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND without matching services", func(t *testing.T) {
		t.Parallel()

		engine := &mock.SearchEngine{
			SearchFn: func(query string, opts dalil.SearchOptions) ([]dalil.SearchResult, error) {
				return nil, nil
			},
		}

		r := gemini.NewResponder(nil, engine)
		_, err := r.Respond(context.Background(), "visa renewal", dalil.LanguageEnglish)

		require.Error(t, err)
		assert.Equal(t, dalil.ENOTFOUND, dalil.ErrorCode(err))
	})
}

func TestBuildUserPrompt(t *testing.T) {
	t.Parallel()

	results := []dalil.SearchResult{
		{
			Record: &dalil.ServiceRecord{
				ID:        "svc-1",
				Title:     "Tourist Visa Application",
				Authority: dalil.Authority{Name: "Federal Authority for Identity and Citizenship"},
				URL:       "https://example.gov.ae/visa",
				Language:  dalil.LanguageEnglish,
			},
		},
		{
			Record: &dalil.ServiceRecord{
				ID:       "svc-2",
				Title:    "Visa Status Inquiry",
				URL:      "https://example.gov.ae/status",
				Language: dalil.LanguageEnglish,
			},
		},
	}

	prompt := gemini.BuildUserPrompt(results, "How do I apply for a tourist visa?")

	assert.Contains(t, prompt, "<index>1</index>")
	assert.Contains(t, prompt, "<index>2</index>")
	assert.Contains(t, prompt, "<title>Tourist Visa Application</title>")
	assert.Contains(t, prompt, "<authority>Federal Authority for Identity and Citizenship</authority>")
	assert.Contains(t, prompt, "<url>https://example.gov.ae/visa</url>")
	assert.Contains(t, prompt, "Question: How do I apply for a tourist visa?")
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("english instruction", func(t *testing.T) {
		t.Parallel()

		config := gemini.BuildConfig(dalil.LanguageEnglish)
		require.NotNil(t, config.SystemInstruction)
		assert.Contains(t, config.SystemInstruction.Parts[0].Text, "Answer in English")
	})

	t.Run("arabic instruction", func(t *testing.T) {
		t.Parallel()

		config := gemini.BuildConfig(dalil.LanguageArabic)
		require.NotNil(t, config.SystemInstruction)
		assert.Contains(t, config.SystemInstruction.Parts[0].Text, "Answer in Arabic")
	})
}
