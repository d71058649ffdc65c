// Package trafilatura extracts the main textual content of a page,
// stripped of navigation and boilerplate.
package trafilatura

import (
	"strings"

	"github.com/dalil-app/dalil"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Extractor implements dalil.ContentExtractor at compile time.
var _ dalil.ContentExtractor = (*Extractor)(nil)

// Extractor extracts the main content of an HTML document.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract pulls the main text out of raw HTML. Returns EINVALID when the
// document yields no usable content.
func (e *Extractor) Extract(rawHTML string) (*dalil.ContentResult, error) {
	result, err := trafilatura.Extract(strings.NewReader(rawHTML), trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
	})
	if err != nil {
		return nil, dalil.Errorf(dalil.EINVALID, "failed to extract content: %v", err)
	}

	text := strings.TrimSpace(result.ContentText)
	if text == "" {
		return nil, dalil.Errorf(dalil.EINVALID, "no content found in document")
	}

	return &dalil.ContentResult{
		Title: strings.TrimSpace(result.Metadata.Title),
		Text:  text,
	}, nil
}
