package driven

import (
	"context"

	"github.com/custodia-labs/gnum-cli/internal/core/domain"
)

// PurchaseStore persists purchase rows and their full-text shadow index.
// Backed by SQLite.
//
// The store owns the authoritative duplicate guarantee: a row whose
// (product_code, date, supplier) triple already exists in the table is
// rejected at the storage layer regardless of any in-memory dedup the
// caller performed. The table and the index are reconciled as a unit by
// the end of every append; callers never observe them partially synced.
type PurchaseStore interface {
	// Append inserts records into the purchases table, silently skipping
	// rows whose dedup key is already present, and backfills the search
	// index for every table row not yet indexed. Both happen in one
	// transaction. Returns the number of rows inserted and the number of
	// index entries added.
	Append(ctx context.Context, records []domain.PurchaseRecord) (inserted, indexed int, err error)

	// FindByCode returns all rows whose product_code equals code exactly.
	FindByCode(ctx context.Context, code string) ([]domain.PurchaseRecord, error)

	// List returns every persisted row. Callers scanning for normalised
	// substring matches read the full table per query.
	List(ctx context.Context) ([]domain.PurchaseRecord, error)

	// Count returns the number of rows in the purchases table.
	Count(ctx context.Context) (int, error)

	// RebuildSearchIndex drops and recreates the full-text shadow from
	// the table. The index holds nothing the table lacks, so this is
	// always safe. Returns the number of entries written.
	RebuildSearchIndex(ctx context.Context) (int, error)
}
