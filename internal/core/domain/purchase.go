package domain

import "fmt"

// UnknownSupplier is substituted when a workbook's supplier cell is blank.
// Missing suppliers are policy, not an error: rows are still imported.
const UnknownSupplier = "Unknown Supplier"

// PurchaseRecord is one line item extracted from one purchase workbook.
// It is the canonical row shape persisted in the purchases table.
type PurchaseRecord struct {
	// ID is the surrogate key assigned by the store. Zero until persisted.
	ID int64

	// ProductCode identifies the product. Required; a blank code cell
	// terminates row scanning in the source workbook.
	ProductCode string

	// ProductName is the human-readable product name.
	ProductName string

	// Qty is the purchased quantity.
	Qty float64

	// Unit is the unit of measure.
	Unit string

	// Price is the unit price.
	Price float64

	// TotalPrice is the line total.
	TotalPrice float64

	// Supplier is the supplier name, or UnknownSupplier when the source
	// cell was blank.
	Supplier string

	// Date is the purchase date in ISO form (2006-01-02). Required.
	Date string

	// SourceFile is the originating workbook name.
	SourceFile string
}

// DedupKey identifies a record for duplicate detection. Two records with
// the same key are considered the same line item regardless of name or
// price divergence (a documented limitation, not resolved here).
type DedupKey struct {
	ProductCode string
	Date        string
	Supplier    string
}

// Key returns the record's dedup key.
func (r PurchaseRecord) Key() DedupKey {
	return DedupKey{ProductCode: r.ProductCode, Date: r.Date, Supplier: r.Supplier}
}

// Validate checks that required fields are present post-extraction.
func (r PurchaseRecord) Validate() error {
	if r.ProductCode == "" {
		return fmt.Errorf("%w: missing product code (%s)", ErrInvalidRecord, r.SourceFile)
	}
	if r.Date == "" {
		return fmt.Errorf("%w: missing date (%s)", ErrInvalidRecord, r.SourceFile)
	}
	return nil
}

// DocumentFailure records why one document in a batch contributed nothing.
type DocumentFailure struct {
	// Source is the document name or path.
	Source string

	// Reason is the user-facing failure description.
	Reason string
}

// IngestSummary reports the outcome of one ingest call.
type IngestSummary struct {
	// RunID uniquely identifies this ingest run in logs.
	RunID string

	// Imported is the number of rows actually appended to the table.
	Imported int

	// Duplicates is the number of rows dropped as already present,
	// either in-batch or at the storage layer.
	Duplicates int

	// Indexed is the number of search-index entries added, including
	// backfill for rows left unindexed by prior partial runs.
	Indexed int

	// Failures lists documents that could not contribute records.
	Failures []DocumentFailure
}
