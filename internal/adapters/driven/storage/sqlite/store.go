// Package sqlite provides the SQLite-backed purchase store.
//
// One database file holds the purchases table and its purchases_fts
// full-text shadow. Appends and index backfill commit as a single
// transaction, so callers never observe the two out of sync.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/gnum-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/gnum-cli/internal/core/domain"
	"github.com/custodia-labs/gnum-cli/internal/core/ports/driven"
)

// purchaseColumns is the scan order shared by all row queries.
const purchaseColumns = "id, product_code, product_name, supplier, date, qty, unit, price, total_price, source_file"

// backfillSQL inserts an index entry for every table row that has no
// corresponding entry yet. Running it closes gaps left by prior partial
// runs as well as indexing the current batch.
const backfillSQL = `
	INSERT INTO purchases_fts(rowid, product_name)
	SELECT id, product_name FROM purchases
	WHERE id NOT IN (SELECT rowid FROM purchases_fts)
`

// Ensure Store implements the interface.
var _ driven.PurchaseStore = (*Store)(nil)

// Store is a SQLite-backed purchase store. It is an explicitly owned
// handle: open it once, pass it to the services that need it, and close
// it when done. Tests create disposable stores in temp directories.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.gnum/data/purchases.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".gnum", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "purchases.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// Append inserts records and backfills the search index in one
// transaction. Rows whose dedup key already exists are skipped via
// INSERT OR IGNORE; the UNIQUE constraint makes this race-safe across
// concurrent callers.
func (s *Store) Append(ctx context.Context, records []domain.PurchaseRecord) (int, int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO purchases
			(product_code, product_name, supplier, date, qty, unit, price, total_price, source_file)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, r := range records {
		res, err := stmt.ExecContext(ctx, r.ProductCode, r.ProductName, r.Supplier,
			r.Date, r.Qty, r.Unit, r.Price, r.TotalPrice, r.SourceFile)
		if err != nil {
			return 0, 0, fmt.Errorf("inserting purchase %s/%s: %w", r.ProductCode, r.Date, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, 0, fmt.Errorf("counting inserted rows: %w", err)
		}
		inserted += int(n)
	}

	res, err := tx.ExecContext(ctx, backfillSQL)
	if err != nil {
		return 0, 0, fmt.Errorf("backfilling search index: %w", err)
	}
	indexed64, err := res.RowsAffected()
	if err != nil {
		return 0, 0, fmt.Errorf("counting indexed rows: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("committing transaction: %w", err)
	}
	return inserted, int(indexed64), nil
}

// FindByCode returns rows matched by exact product_code equality.
func (s *Store) FindByCode(ctx context.Context, code string) ([]domain.PurchaseRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+purchaseColumns+" FROM purchases WHERE product_code = ?", code)
	if err != nil {
		return nil, fmt.Errorf("querying purchases by code: %w", err)
	}
	defer rows.Close()

	return scanPurchases(rows)
}

// List returns every persisted purchase row in insertion order.
func (s *Store) List(ctx context.Context) ([]domain.PurchaseRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+purchaseColumns+" FROM purchases ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying purchases: %w", err)
	}
	defer rows.Close()

	return scanPurchases(rows)
}

// Count returns the number of rows in the purchases table.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM purchases").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting purchases: %w", err)
	}
	return count, nil
}

// RebuildSearchIndex recreates the full-text shadow from the table.
func (s *Store) RebuildSearchIndex(ctx context.Context) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM purchases_fts"); err != nil {
		return 0, fmt.Errorf("clearing search index: %w", err)
	}

	res, err := tx.ExecContext(ctx, backfillSQL)
	if err != nil {
		return 0, fmt.Errorf("rebuilding search index: %w", err)
	}
	indexed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting indexed rows: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return int(indexed), nil
}

// UnindexedCount returns the number of table rows without a search-index
// entry. Zero after any successful append.
func (s *Store) UnindexedCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM purchases WHERE id NOT IN (SELECT rowid FROM purchases_fts)").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting unindexed purchases: %w", err)
	}
	return count, nil
}

// scanPurchases scans multiple purchase rows.
func scanPurchases(rows *sql.Rows) ([]domain.PurchaseRecord, error) {
	var purchases []domain.PurchaseRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		var p domain.PurchaseRecord
		if err := rows.Scan(&p.ID, &p.ProductCode, &p.ProductName, &p.Supplier,
			&p.Date, &p.Qty, &p.Unit, &p.Price, &p.TotalPrice, &p.SourceFile); err != nil {
			return nil, fmt.Errorf("scanning purchase: %w", err)
		}
		purchases = append(purchases, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating purchases: %w", err)
	}

	return purchases, nil
}
