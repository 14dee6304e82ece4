// Package xlsx extracts purchase records from .xlsx workbooks that
// follow the fixed purchase template described by CellMap.
package xlsx

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/gnum-cli/internal/core/domain"
	"github.com/custodia-labs/gnum-cli/internal/core/ports/driven"
	"github.com/custodia-labs/gnum-cli/internal/logger"
)

// dateLayouts are tried in order. Ambiguous numeric dates resolve
// day-first, matching how the workbooks are authored.
var dateLayouts = []string{
	"02.01.2006",
	"2.1.2006",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02.01.06",
	"02/01/06",
	"02-01-06",
	"2006-01-02",
}

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor reads purchase workbooks according to a CellMap.
type Extractor struct {
	cells CellMap
}

// New creates an extractor for the standard workbook template.
func New() *Extractor {
	return NewWithCellMap(DefaultCellMap())
}

// NewWithCellMap creates an extractor for a custom template layout.
func NewWithCellMap(cells CellMap) *Extractor {
	return &Extractor{cells: cells}
}

// Extract reads the first sheet of the workbook at path.
//
// A blank supplier cell is replaced with domain.UnknownSupplier. A
// missing or unparseable date skips the whole document: it contributes
// zero records and that is reported as an outcome, not an error. Row
// scanning stops at the first blank product-code cell; rows past a gap
// are never read.
func (e *Extractor) Extract(ctx context.Context, path string) ([]domain.PurchaseRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening workbook %s: %w", domain.ErrInvalidDocument, path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook %s has no sheets", domain.ErrInvalidDocument, path)
	}
	sheet := sheets[0]
	name := filepath.Base(path)

	supplier, err := f.GetCellValue(sheet, e.cells.SupplierCell)
	if err != nil {
		return nil, fmt.Errorf("%w: reading supplier cell: %w", domain.ErrInvalidDocument, err)
	}
	supplier = strings.TrimSpace(supplier)
	if supplier == "" {
		supplier = domain.UnknownSupplier
	}

	rawDate, err := f.GetCellValue(sheet, e.cells.DateCell)
	if err != nil {
		return nil, fmt.Errorf("%w: reading date cell: %w", domain.ErrInvalidDocument, err)
	}
	date, ok := parseDate(rawDate)
	if !ok {
		logger.Info("Skipping %s: no valid date", name)
		return nil, nil
	}

	var records []domain.PurchaseRecord
	for row := e.cells.DataStartRow; ; row++ {
		code, err := f.GetCellValue(sheet, cell(e.cells.CodeCol, row))
		if err != nil {
			return nil, fmt.Errorf("%w: reading row %d: %w", domain.ErrInvalidDocument, row, err)
		}
		code = strings.TrimSpace(code)
		if code == "" {
			// First gap terminates the document.
			break
		}

		records = append(records, domain.PurchaseRecord{
			ProductCode: code,
			ProductName: e.stringAt(f, sheet, e.cells.NameCol, row),
			Qty:         e.numberAt(f, sheet, e.cells.QtyCol, row),
			Unit:        e.stringAt(f, sheet, e.cells.UnitCol, row),
			Price:       e.numberAt(f, sheet, e.cells.PriceCol, row),
			TotalPrice:  e.numberAt(f, sheet, e.cells.TotalCol, row),
			Supplier:    supplier,
			Date:        date,
			SourceFile:  name,
		})

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
	}

	if len(records) == 0 {
		logger.Info("Skipping %s: no product rows", name)
	} else {
		logger.Info("Parsed %d row(s) from %s", len(records), name)
	}

	return records, nil
}

// stringAt reads a trimmed cell value; unreadable cells read as empty.
func (e *Extractor) stringAt(f *excelize.File, sheet, col string, row int) string {
	v, err := f.GetCellValue(sheet, cell(col, row))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(v)
}

// numberAt reads a numeric cell value; blank or non-numeric cells read
// as zero.
func (e *Extractor) numberAt(f *excelize.File, sheet, col string, row int) float64 {
	raw := e.stringAt(f, sheet, col, row)
	if raw == "" {
		return 0
	}
	// Workbooks exported with comma decimal separators still parse.
	raw = strings.ReplaceAll(raw, ",", ".")
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return n
}

// parseDate normalises a raw date cell value to ISO form. Day-first
// layouts are tried first; a bare number is treated as an Excel date
// serial. Returns false when nothing parses.
func parseDate(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), true
		}
	}

	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t.Format("2006-01-02"), true
		}
	}

	return "", false
}
