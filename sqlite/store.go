package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dalil-app/dalil"
)

// Compile-time interface verification.
var _ dalil.CatalogStore = (*CatalogStore)(nil)

// CatalogStore implements dalil.CatalogStore using SQLite. List-valued
// fields are stored as JSON columns since they are only ever read back
// whole.
type CatalogStore struct {
	db *DB
}

// NewCatalogStore creates a new CatalogStore.
func NewCatalogStore(db *DB) *CatalogStore {
	return &CatalogStore{db: db}
}

// SaveRecord inserts or replaces a record by ID.
func (s *CatalogStore) SaveRecord(ctx context.Context, record *dalil.ServiceRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	eligibility, err := json.Marshal(record.Eligibility)
	if err != nil {
		return fmt.Errorf("failed to encode eligibility: %w", err)
	}
	documents, err := json.Marshal(record.Documents)
	if err != nil {
		return fmt.Errorf("failed to encode documents: %w", err)
	}
	steps, err := json.Marshal(record.Steps)
	if err != nil {
		return fmt.Errorf("failed to encode steps: %w", err)
	}
	fees, err := json.Marshal(record.Fees)
	if err != nil {
		return fmt.Errorf("failed to encode fees: %w", err)
	}
	contact := ""
	if record.Contact != nil {
		b, err := json.Marshal(record.Contact)
		if err != nil {
			return fmt.Errorf("failed to encode contact: %w", err)
		}
		contact = string(b)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO services (
			id, title, description, authority_name, authority_code,
			category, subcategory, language, status, url,
			eligibility, documents, steps, fees,
			processing_time, contact, content_hash, last_updated
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, record.ID, record.Title, record.Description, record.Authority.Name, record.Authority.Code,
		record.Category, record.Subcategory, string(record.Language), string(record.Status), record.URL,
		string(eligibility), string(documents), string(steps), string(fees),
		record.ProcessingTime, contact, record.ContentHash,
		record.LastUpdated.UTC().Format(time.RFC3339))

	return err
}

// LoadAll returns every persisted record.
func (s *CatalogStore) LoadAll(ctx context.Context) ([]*dalil.ServiceRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, authority_name, authority_code,
			category, subcategory, language, status, url,
			eligibility, documents, steps, fees,
			processing_time, contact, content_hash, last_updated
		FROM services
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*dalil.ServiceRecord
	for rows.Next() {
		record, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// DeleteRecord removes a record by ID. Returns ENOTFOUND if the record
// does not exist.
func (s *CatalogStore) DeleteRecord(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM services WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return dalil.Errorf(dalil.ENOTFOUND, "record not found: %s", id)
	}
	return nil
}

// scanRecord decodes one services row.
func scanRecord(scan func(dest ...any) error) (*dalil.ServiceRecord, error) {
	var (
		record      dalil.ServiceRecord
		language    string
		status      string
		eligibility string
		documents   string
		steps       string
		fees        string
		contact     string
		lastUpdated string
	)

	err := scan(&record.ID, &record.Title, &record.Description,
		&record.Authority.Name, &record.Authority.Code,
		&record.Category, &record.Subcategory, &language, &status, &record.URL,
		&eligibility, &documents, &steps, &fees,
		&record.ProcessingTime, &contact, &record.ContentHash, &lastUpdated)
	if err != nil {
		return nil, err
	}

	record.Language = dalil.Language(language)
	record.Status = dalil.Status(status)

	if err := json.Unmarshal([]byte(eligibility), &record.Eligibility); err != nil {
		return nil, fmt.Errorf("failed to decode eligibility: %w", err)
	}
	if err := json.Unmarshal([]byte(documents), &record.Documents); err != nil {
		return nil, fmt.Errorf("failed to decode documents: %w", err)
	}
	if err := json.Unmarshal([]byte(steps), &record.Steps); err != nil {
		return nil, fmt.Errorf("failed to decode steps: %w", err)
	}
	if err := json.Unmarshal([]byte(fees), &record.Fees); err != nil {
		return nil, fmt.Errorf("failed to decode fees: %w", err)
	}
	if contact != "" {
		record.Contact = &dalil.Contact{}
		if err := json.Unmarshal([]byte(contact), record.Contact); err != nil {
			return nil, fmt.Errorf("failed to decode contact: %w", err)
		}
	}
	if lastUpdated != "" {
		ts, err := time.Parse(time.RFC3339, lastUpdated)
		if err != nil {
			return nil, fmt.Errorf("failed to parse last_updated: %w", err)
		}
		record.LastUpdated = ts
	}

	return &record, nil
}
