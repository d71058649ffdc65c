// Package mock provides function-field mock implementations of the dalil
// domain interfaces for use in tests.
package mock

import "github.com/dalil-app/dalil"

var _ dalil.SearchEngine = (*SearchEngine)(nil)

// SearchEngine is a mock implementation of dalil.SearchEngine.
type SearchEngine struct {
	AddRecordFn    func(record *dalil.ServiceRecord) error
	UpdateRecordFn func(record *dalil.ServiceRecord) error
	RemoveRecordFn func(id string) error
	SearchFn       func(query string, opts dalil.SearchOptions) ([]dalil.SearchResult, error)
}

func (e *SearchEngine) AddRecord(record *dalil.ServiceRecord) error {
	return e.AddRecordFn(record)
}

func (e *SearchEngine) UpdateRecord(record *dalil.ServiceRecord) error {
	return e.UpdateRecordFn(record)
}

func (e *SearchEngine) RemoveRecord(id string) error {
	return e.RemoveRecordFn(id)
}

func (e *SearchEngine) Search(query string, opts dalil.SearchOptions) ([]dalil.SearchResult, error) {
	return e.SearchFn(query, opts)
}
