package driving

import (
	"context"

	"github.com/custodia-labs/gnum-cli/internal/core/domain"
)

// IngestService loads extracted purchase records into the store.
type IngestService interface {
	// Ingest deduplicates and appends one batch of records per source
	// document, then synchronises the search index. Batch-internal
	// duplicates are dropped first occurrence wins; rows already in the
	// store are skipped at the storage layer. Only a storage-level
	// failure returns an error.
	Ingest(ctx context.Context, batches [][]domain.PurchaseRecord) (domain.IngestSummary, error)

	// IngestFiles extracts each workbook path and ingests the results.
	// Per-document extraction failures are isolated: they appear in the
	// summary's Failures and do not abort sibling documents.
	IngestFiles(ctx context.Context, paths []string) (domain.IngestSummary, error)

	// Reindex rebuilds the full-text shadow index from the table.
	Reindex(ctx context.Context) (int, error)
}
