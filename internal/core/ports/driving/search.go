package driving

import (
	"context"

	"github.com/custodia-labs/gnum-cli/internal/core/domain"
)

// SearchService answers lookups against the persisted purchase rows.
// Results carry the stored row shape unmodified; display relabelling is
// the caller's concern.
type SearchService interface {
	// FindByCode returns rows whose product code equals code exactly.
	// No normalisation and no partial matching.
	FindByCode(ctx context.Context, code string) ([]domain.PurchaseRecord, error)

	// SearchByName returns rows whose normalised product name contains
	// the normalised query as a contiguous substring.
	SearchByName(ctx context.Context, query string) ([]domain.PurchaseRecord, error)

	// SearchBySupplier applies the same normalised-substring semantics
	// to the supplier field.
	SearchBySupplier(ctx context.Context, query string) ([]domain.PurchaseRecord, error)
}
