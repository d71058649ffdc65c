package mock

import (
	"context"

	"github.com/dalil-app/dalil"
)

var _ dalil.CatalogStore = (*CatalogStore)(nil)

// CatalogStore is a mock implementation of dalil.CatalogStore.
type CatalogStore struct {
	SaveRecordFn   func(ctx context.Context, record *dalil.ServiceRecord) error
	LoadAllFn      func(ctx context.Context) ([]*dalil.ServiceRecord, error)
	DeleteRecordFn func(ctx context.Context, id string) error
}

func (s *CatalogStore) SaveRecord(ctx context.Context, record *dalil.ServiceRecord) error {
	return s.SaveRecordFn(ctx, record)
}

func (s *CatalogStore) LoadAll(ctx context.Context) ([]*dalil.ServiceRecord, error) {
	return s.LoadAllFn(ctx)
}

func (s *CatalogStore) DeleteRecord(ctx context.Context, id string) error {
	return s.DeleteRecordFn(ctx, id)
}
