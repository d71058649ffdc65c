package dalil

// Extractor performs best-effort structural extraction of a service record
// from raw page content. Fields not found in the source are left at their
// zero value, never fabricated.
type Extractor interface {
	// ExtractRecord parses raw HTML into a partial service record.
	// The sourceURL is recorded on the result and used to resolve
	// relative links.
	ExtractRecord(html string, sourceURL string) (*ServiceRecord, error)
}

// ContentResult holds generic content extracted from an HTML page.
type ContentResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// Text is the main content with boilerplate (nav, footer, ads) removed.
	Text string
}

// ContentExtractor extracts the main content from HTML pages.
// It is used as a fallback when structural extraction finds no description.
type ContentExtractor interface {
	Extract(html string) (*ContentResult, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	Convert(html string) (string, error)
}
