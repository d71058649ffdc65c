// Package index implements the in-memory catalog index and search engine.
// It owns three indices: a per-record token set, an inverted token-to-ID
// index, and an entity index. The inverted and entity indices are fully
// rebuilt on every update or removal; at catalog sizes seen here the
// simplicity is worth more than incremental maintenance.
package index

import (
	"sort"
	"sync"
	"time"

	"github.com/dalil-app/dalil"
	"github.com/dalil-app/dalil/query"
)

// Recency bonus windows.
const (
	recentWindow = 30 * 24 * time.Hour
	staleWindow  = 90 * 24 * time.Hour
)

// Compile-time interface verification.
var _ dalil.SearchEngine = (*Engine)(nil)

// Engine is an in-memory search engine over service records.
// It is safe for concurrent use; a single writer lock serializes all
// index-mutating operations against readers.
type Engine struct {
	mu       sync.RWMutex
	records  map[string]*dalil.ServiceRecord
	tokens   map[string]map[string]struct{} // record ID -> token set
	inverted map[string]map[string]struct{} // token -> record IDs
	entities map[string]map[string]struct{} // "type:value" -> record IDs
}

// NewEngine creates an empty Engine.
func NewEngine() *Engine {
	return &Engine{
		records:  make(map[string]*dalil.ServiceRecord),
		tokens:   make(map[string]map[string]struct{}),
		inverted: make(map[string]map[string]struct{}),
		entities: make(map[string]map[string]struct{}),
	}
}

// Len returns the number of indexed records.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.records)
}

// AddRecord indexes a new record.
// Returns ECONFLICT if the ID already exists.
func (e *Engine) AddRecord(record *dalil.ServiceRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.records[record.ID]; exists {
		return dalil.Errorf(dalil.ECONFLICT, "record %q already exists", record.ID)
	}

	e.records[record.ID] = record
	e.indexRecord(record)
	return nil
}

// UpdateRecord replaces an existing record by ID and rebuilds all indices.
// Returns ENOTFOUND if the record does not exist.
func (e *Engine) UpdateRecord(record *dalil.ServiceRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.records[record.ID]; !exists {
		return dalil.Errorf(dalil.ENOTFOUND, "record %q not found", record.ID)
	}

	e.records[record.ID] = record
	e.rebuild()
	return nil
}

// RemoveRecord deletes a record and rebuilds all indices, purging the
// record's tokens and entities.
// Returns ENOTFOUND if the record does not exist.
func (e *Engine) RemoveRecord(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.records[id]; !exists {
		return dalil.Errorf(dalil.ENOTFOUND, "record %q not found", id)
	}

	delete(e.records, id)
	e.rebuild()
	return nil
}

// FindByEntity returns the IDs of records exhibiting the given entity,
// e.g. ("authority", "roads and transport authority"). The lookup is
// read-only; IDs are returned in ascending order.
func (e *Engine) FindByEntity(entityType, value string) []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	ids := e.entities[entityKey(entityType, value)]
	out := make([]string, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// indexRecord adds a record's tokens and entities to the indices.
// Caller must hold the write lock.
func (e *Engine) indexRecord(r *dalil.ServiceRecord) {
	tokens := query.TokenSet(r.Document())
	e.tokens[r.ID] = tokens

	for tok := range tokens {
		ids, ok := e.inverted[tok]
		if !ok {
			ids = make(map[string]struct{})
			e.inverted[tok] = ids
		}
		ids[r.ID] = struct{}{}
	}

	e.indexEntity("authority", r.Authority.Name, r.ID)
	e.indexEntity("category", r.Category, r.ID)
}

// indexEntity records an entity occurrence. Empty values are skipped.
func (e *Engine) indexEntity(entityType, value, id string) {
	if value == "" {
		return
	}
	key := entityKey(entityType, value)
	ids, ok := e.entities[key]
	if !ok {
		ids = make(map[string]struct{})
		e.entities[key] = ids
	}
	ids[id] = struct{}{}
}

// rebuild discards and reconstructs every index from the record catalog.
// Caller must hold the write lock.
func (e *Engine) rebuild() {
	e.tokens = make(map[string]map[string]struct{}, len(e.records))
	e.inverted = make(map[string]map[string]struct{})
	e.entities = make(map[string]map[string]struct{})
	for _, r := range e.records {
		e.indexRecord(r)
	}
}

func entityKey(entityType, value string) string {
	return entityType + ":" + query.Normalize(value)
}
