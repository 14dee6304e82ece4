package driven

import (
	"context"

	"github.com/custodia-labs/gnum-cli/internal/core/domain"
)

// Extractor reads one spreadsheet workbook into purchase records.
// Implementations assume one specific fixed cell template; they are not
// generic tabular importers.
type Extractor interface {
	// Extract returns the records found in the workbook at path.
	//
	// A workbook without a parseable date, or with no data rows before
	// the first blank product-code cell, legitimately contributes zero
	// records and returns an empty slice with a nil error. Only an
	// unreadable workbook returns an error (domain.ErrInvalidDocument).
	Extract(ctx context.Context, path string) ([]domain.PurchaseRecord, error)
}
