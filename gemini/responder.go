// Package gemini answers catalog questions with Google Gemini, grounded
// on indexed service records.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/dalil-app/dalil"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// maxGroundingRecords caps how many matching records are included in the
// prompt. Service pages are short; ten fits comfortably in context.
const maxGroundingRecords = 10

// Ensure Responder implements dalil.Responder at compile time.
var _ dalil.Responder = (*Responder)(nil)

// Responder implements dalil.Responder using Google Gemini. Answers are
// grounded on catalog search results for the query.
type Responder struct {
	client *genai.Client
	engine dalil.SearchEngine
}

// NewResponder creates a new Responder.
func NewResponder(client *genai.Client, engine dalil.SearchEngine) *Responder {
	return &Responder{client: client, engine: engine}
}

// Respond answers a natural language question about government services.
func (r *Responder) Respond(ctx context.Context, query string, language dalil.Language) (string, error) {
	if query == "" {
		return "", dalil.Errorf(dalil.EINVALID, "query required")
	}

	results, err := r.engine.Search(query, dalil.SearchOptions{
		Language:   language,
		MaxResults: maxGroundingRecords,
	})
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", dalil.Errorf(dalil.ENOTFOUND, "no services found for query %q", query)
	}

	prompt := BuildUserPrompt(results, query)
	config := BuildConfig(language)

	result, err := r.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", dalil.Errorf(dalil.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
// The system instruction pins the answer to the supplied records and to
// the requested language.
func BuildConfig(language dalil.Language) *genai.GenerateContentConfig {
	temp := float32(0.4)
	answerLang := "English"
	if language == dalil.LanguageArabic {
		answerLang = "Arabic"
	}
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: fmt.Sprintf("You are a helpful assistant answering questions about government services. Answer in %s, based only on the service records provided. If the answer is not in the records, say so.", answerLang),
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt containing service records and
// the question.
func BuildUserPrompt(results []dalil.SearchResult, question string) string {
	var sb strings.Builder
	sb.WriteString("<services>\n")
	for i, result := range results {
		record := result.Record
		sb.WriteString("<service>\n")
		fmt.Fprintf(&sb, "<index>%d</index>\n", i+1)
		fmt.Fprintf(&sb, "<title>%s</title>\n", record.Title)
		fmt.Fprintf(&sb, "<authority>%s</authority>\n", record.Authority.Name)
		fmt.Fprintf(&sb, "<url>%s</url>\n", record.URL)
		fmt.Fprintf(&sb, "<details>%s</details>\n", record.Document())
		sb.WriteString("</service>\n")
	}
	sb.WriteString("</services>\n\n")
	fmt.Fprintf(&sb, "Question: %s", question)
	return sb.String()
}
