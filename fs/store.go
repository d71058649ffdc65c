// Package fs provides file-based persistence for the service catalog.
// Records are stored one JSON file per record, which keeps small catalogs
// inspectable and diffable without a database.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dalil-app/dalil"
)

// Ensure Store implements dalil.CatalogStore at compile time.
var _ dalil.CatalogStore = (*Store)(nil)

// Store implements dalil.CatalogStore on a directory of JSON files.
// Writes go to a temporary file first and are renamed into place, so a
// crash mid-write never leaves a truncated record.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

// recordPath maps a record ID to its file. IDs are UUIDs or caller-chosen
// slugs; path separators are flattened so an ID cannot escape the dir.
func (s *Store) recordPath(id string) string {
	safe := strings.NewReplacer("/", "_", string(filepath.Separator), "_").Replace(id)
	return filepath.Join(s.dir, safe+".json")
}

// SaveRecord inserts or replaces a record by ID.
func (s *Store) SaveRecord(ctx context.Context, record *dalil.ServiceRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}

	path := s.recordPath(record.ID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// LoadAll returns every persisted record, ordered by ID.
func (s *Store) LoadAll(ctx context.Context) ([]*dalil.ServiceRecord, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var records []*dalil.ServiceRecord
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		record := &dalil.ServiceRecord{}
		if err := json.Unmarshal(data, record); err != nil {
			return nil, dalil.Errorf(dalil.EINTERNAL, "corrupt record file %q: %v", entry.Name(), err)
		}
		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

// DeleteRecord removes a record by ID. Returns ENOTFOUND if the record
// does not exist.
func (s *Store) DeleteRecord(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := os.Remove(s.recordPath(id))
	if errors.Is(err, fs.ErrNotExist) {
		return dalil.Errorf(dalil.ENOTFOUND, "record not found: %s", id)
	}
	return err
}
