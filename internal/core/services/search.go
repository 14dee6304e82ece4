package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/gnum-cli/internal/core/domain"
	"github.com/custodia-labs/gnum-cli/internal/core/ports/driven"
	"github.com/custodia-labs/gnum-cli/internal/core/ports/driving"
	"github.com/custodia-labs/gnum-cli/internal/logger"
	"github.com/custodia-labs/gnum-cli/internal/normalise"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService answers lookups against the purchase store.
//
// Name and supplier searches normalise the stored field per query
// rather than caching normalised values; the full table is read into
// memory per call, which is fine at local data volumes.
type SearchService struct {
	store      driven.PurchaseStore
	normaliser *normalise.Normaliser
}

// NewSearchService creates a new search service. A nil normaliser
// defaults to the mark-keeping pipeline.
func NewSearchService(store driven.PurchaseStore, normaliser *normalise.Normaliser) *SearchService {
	if normaliser == nil {
		normaliser = normalise.New()
	}
	return &SearchService{store: store, normaliser: normaliser}
}

// FindByCode returns rows whose product code equals code exactly.
func (s *SearchService) FindByCode(ctx context.Context, code string) ([]domain.PurchaseRecord, error) {
	if strings.TrimSpace(code) == "" {
		return nil, nil
	}

	rows, err := s.store.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("find by code: %w", err)
	}
	logger.Debug("Code lookup %q: %d row(s)", code, len(rows))
	return rows, nil
}

// SearchByName returns rows whose normalised product name contains the
// normalised query as a contiguous substring.
func (s *SearchService) SearchByName(ctx context.Context, query string) ([]domain.PurchaseRecord, error) {
	return s.scan(ctx, query, func(r domain.PurchaseRecord) string { return r.ProductName })
}

// SearchBySupplier applies the same semantics to the supplier field.
func (s *SearchService) SearchBySupplier(ctx context.Context, query string) ([]domain.PurchaseRecord, error) {
	return s.scan(ctx, query, func(r domain.PurchaseRecord) string { return r.Supplier })
}

// scan runs a normalised-substring scan of one field over all rows.
func (s *SearchService) scan(
	ctx context.Context, query string, field func(domain.PurchaseRecord) string,
) ([]domain.PurchaseRecord, error) {
	if s.normaliser.Apply(query) == "" {
		// Empty filters never reach the store.
		return nil, nil
	}

	rows, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}

	var matches []domain.PurchaseRecord
	for _, r := range rows {
		if s.normaliser.Contains(field(r), query) {
			matches = append(matches, r)
		}
	}
	logger.Debug("Substring search %q: %d of %d row(s)", query, len(matches), len(rows))
	return matches, nil
}
