package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate indicates a record whose dedup key is already present.
	// Recoverable: the row is reported as "already present", never fatal
	// for batch processing.
	ErrDuplicate = errors.New("already present")

	// ErrInvalidRecord indicates a record missing a required field
	// after extraction.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrInvalidDocument indicates an unreadable or corrupt workbook.
	// Surfaced per document; sibling documents in a batch still process.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")
)
