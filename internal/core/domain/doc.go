// Package domain defines the core business entities for gnum.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - PurchaseRecord: One line item from one purchase workbook
//   - DedupKey: The (product_code, date, supplier) identity triple
//   - IngestSummary: Outcome of one ingest run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
