package mock

import "github.com/dalil-app/dalil"

var _ dalil.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of dalil.Extractor.
type Extractor struct {
	ExtractRecordFn func(html string, sourceURL string) (*dalil.ServiceRecord, error)
}

func (e *Extractor) ExtractRecord(html string, sourceURL string) (*dalil.ServiceRecord, error) {
	return e.ExtractRecordFn(html, sourceURL)
}

var _ dalil.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of dalil.ContentExtractor.
type ContentExtractor struct {
	ExtractFn func(html string) (*dalil.ContentResult, error)
}

func (e *ContentExtractor) Extract(html string) (*dalil.ContentResult, error) {
	return e.ExtractFn(html)
}

var _ dalil.Converter = (*Converter)(nil)

// Converter is a mock implementation of dalil.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
