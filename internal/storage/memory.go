package storage

import (
	"slices"

	"github.com/guttosm/pricemachine/internal/domain/models"
)

// PriceStore is the aggregate of every ingested record.
//
// Insertion order is preserved (file discovery order, then row order) and
// duplicates are kept. The store is filled once during ingestion and only
// read afterwards.
type PriceStore interface {
	Append(records ...models.PriceRecord)
	All() []models.PriceRecord
	Len() int
}

// MemoryStore is an append-only, in-process PriceStore.
//
// It performs no locking: all writes happen during the sequential ingestion
// phase, before any reader exists.
type MemoryStore struct {
	records []models.PriceRecord
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append adds records to the end of the store.
func (s *MemoryStore) Append(records ...models.PriceRecord) {
	s.records = append(s.records, records...)
}

// All returns a copy of the stored records in insertion order.
func (s *MemoryStore) All() []models.PriceRecord {
	return slices.Clone(s.records)
}

// Len reports how many records are stored.
func (s *MemoryStore) Len() int {
	return len(s.records)
}
