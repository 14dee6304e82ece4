// Package memory provides in-memory implementations of the driven
// storage ports for tests and wiring without a database file.
package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/gnum-cli/internal/core/domain"
	"github.com/custodia-labs/gnum-cli/internal/core/ports/driven"
)

// Ensure PurchaseStore implements the interface.
var _ driven.PurchaseStore = (*PurchaseStore)(nil)

// PurchaseStore is an in-memory implementation of driven.PurchaseStore.
// It mirrors the SQLite adapter's semantics: key uniqueness on append
// and an index entry per stored row.
type PurchaseStore struct {
	mu      sync.RWMutex
	nextID  int64
	rows    []domain.PurchaseRecord
	keys    map[domain.DedupKey]struct{}
	indexed map[int64]string
}

// NewPurchaseStore creates a new in-memory purchase store.
func NewPurchaseStore() *PurchaseStore {
	return &PurchaseStore{
		nextID:  1,
		keys:    make(map[domain.DedupKey]struct{}),
		indexed: make(map[int64]string),
	}
}

// Append stores records, skipping rows whose dedup key exists, and
// indexes every unindexed row.
func (s *PurchaseStore) Append(_ context.Context, records []domain.PurchaseRecord) (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inserted := 0
	for _, r := range records {
		if _, ok := s.keys[r.Key()]; ok {
			continue
		}
		r.ID = s.nextID
		s.nextID++
		s.rows = append(s.rows, r)
		s.keys[r.Key()] = struct{}{}
		inserted++
	}

	indexed := 0
	for _, r := range s.rows {
		if _, ok := s.indexed[r.ID]; !ok {
			s.indexed[r.ID] = r.ProductName
			indexed++
		}
	}

	return inserted, indexed, nil
}

// FindByCode returns rows matched by exact product code equality.
func (s *PurchaseStore) FindByCode(_ context.Context, code string) ([]domain.PurchaseRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []domain.PurchaseRecord
	for _, r := range s.rows {
		if r.ProductCode == code {
			matches = append(matches, r)
		}
	}
	return matches, nil
}

// List returns every stored row in insertion order.
func (s *PurchaseStore) List(_ context.Context) ([]domain.PurchaseRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.PurchaseRecord, len(s.rows))
	copy(out, s.rows)
	return out, nil
}

// Count returns the number of stored rows.
func (s *PurchaseStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows), nil
}

// RebuildSearchIndex recreates the index from the stored rows.
func (s *PurchaseStore) RebuildSearchIndex(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.indexed = make(map[int64]string, len(s.rows))
	for _, r := range s.rows {
		s.indexed[r.ID] = r.ProductName
	}
	return len(s.rows), nil
}

// IndexedCount returns the number of index entries. For tests.
func (s *PurchaseStore) IndexedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.indexed)
}
