package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/gnum-cli/internal/core/domain"
	"github.com/custodia-labs/gnum-cli/internal/core/ports/driven"
	"github.com/custodia-labs/gnum-cli/internal/core/ports/driving"
	"github.com/custodia-labs/gnum-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService loads purchase records into the store.
//
// The in-memory dedup here is a batch optimisation; the store's key
// uniqueness is the authoritative guarantee, so a key that slips past
// (cross-call race, batch spanning an already-persisted key) is skipped
// at the storage layer rather than failing the batch.
type IngestService struct {
	store     driven.PurchaseStore
	extractor driven.Extractor
}

// NewIngestService creates a new ingest service. The extractor may be
// nil when callers only use Ingest with pre-extracted batches.
func NewIngestService(store driven.PurchaseStore, extractor driven.Extractor) *IngestService {
	return &IngestService{store: store, extractor: extractor}
}

// Ingest flattens the per-document batches, validates, deduplicates,
// appends, and synchronises the search index.
func (s *IngestService) Ingest(
	ctx context.Context, batches [][]domain.PurchaseRecord,
) (domain.IngestSummary, error) {
	summary := domain.IngestSummary{RunID: uuid.NewString()}
	logger.Section("Ingest")
	logger.Debug("Run %s: %d document batch(es)", summary.RunID, len(batches))

	// Flatten, dropping structurally invalid records per document.
	var flat []domain.PurchaseRecord
	for _, batch := range batches {
		for _, r := range batch {
			if err := r.Validate(); err != nil {
				logger.Warn("Validation failure: %v", err)
				summary.Failures = append(summary.Failures, domain.DocumentFailure{
					Source: r.SourceFile,
					Reason: err.Error(),
				})
				continue
			}
			flat = append(flat, r)
		}
	}

	if len(flat) == 0 {
		logger.Info("No valid data found")
		return summary, nil
	}

	// In-batch dedup, first occurrence wins, order preserved.
	deduped := dedupe(flat)
	summary.Duplicates += len(flat) - len(deduped)
	logger.Debug("Batch of %d record(s), %d in-batch duplicate(s)", len(flat), len(flat)-len(deduped))

	inserted, indexed, err := s.store.Append(ctx, deduped)
	if err != nil {
		return summary, fmt.Errorf("append purchases: %w", err)
	}

	summary.Imported = inserted
	summary.Indexed = indexed
	summary.Duplicates += len(deduped) - inserted
	logger.Info("Imported %d row(s), indexed %d entr(ies)", inserted, indexed)

	return summary, nil
}

// IngestFiles extracts each workbook and ingests the results. A
// document that cannot be read is recorded in the summary and does not
// abort its siblings; only a storage failure aborts the call.
func (s *IngestService) IngestFiles(ctx context.Context, paths []string) (domain.IngestSummary, error) {
	if s.extractor == nil {
		return domain.IngestSummary{}, fmt.Errorf("ingest files: extractor not configured")
	}

	batches := make([][]domain.PurchaseRecord, 0, len(paths))
	var failures []domain.DocumentFailure

	for _, path := range paths {
		records, err := s.extractor.Extract(ctx, path)
		if err != nil {
			logger.Warn("Extraction failed for %s: %v", path, err)
			failures = append(failures, domain.DocumentFailure{Source: path, Reason: err.Error()})
			continue
		}
		batches = append(batches, records)
	}

	summary, err := s.Ingest(ctx, batches)
	summary.Failures = append(failures, summary.Failures...)
	return summary, err
}

// Reindex rebuilds the full-text shadow index from the table.
func (s *IngestService) Reindex(ctx context.Context) (int, error) {
	n, err := s.store.RebuildSearchIndex(ctx)
	if err != nil {
		return 0, fmt.Errorf("rebuild search index: %w", err)
	}
	logger.Info("Rebuilt search index: %d entr(ies)", n)
	return n, nil
}

// dedupe removes records sharing a dedup key, keeping the first
// occurrence and the original order.
func dedupe(records []domain.PurchaseRecord) []domain.PurchaseRecord {
	seen := make(map[domain.DedupKey]struct{}, len(records))
	out := make([]domain.PurchaseRecord, 0, len(records))
	for _, r := range records {
		if _, ok := seen[r.Key()]; ok {
			continue
		}
		seen[r.Key()] = struct{}{}
		out = append(out, r)
	}
	return out
}
