package xlsx

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/gnum-cli/internal/core/domain"
)

// writeWorkbook builds a template-shaped workbook in dir and returns its path.
// Each row is {code, name, qty, unit, price, total}; empty code cells are skipped.
func writeWorkbook(t *testing.T, dir, name, supplier, date string, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetList()[0]

	if supplier != "" {
		require.NoError(t, f.SetCellValue(sheet, "F6", supplier))
	}
	if date != "" {
		require.NoError(t, f.SetCellValue(sheet, "M5", date))
	}

	cols := []string{"D", "G", "H", "K", "L", "O"}
	for i, row := range rows {
		for j, v := range row {
			if v == nil {
				continue
			}
			require.NoError(t, f.SetCellValue(sheet, cell(cols[j], 9+i), v))
		}
	}

	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestExtract_ValidWorkbook(t *testing.T) {
	dir := t.TempDir()
	path := writeWorkbook(t, dir, "MTIncInner12.xlsx", "Alpha LLC", "15.03.2024", [][]any{
		{"P-1", "Պտուտակ M8", 10, "հատ", 25.5, 255.0},
		{"P-2", "Մանեկ M8", 20, "հատ", 12.0, 240.0},
	})

	records, err := New().Extract(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "P-1", first.ProductCode)
	assert.Equal(t, "Պտուտակ M8", first.ProductName)
	assert.Equal(t, 10.0, first.Qty)
	assert.Equal(t, "հատ", first.Unit)
	assert.Equal(t, 25.5, first.Price)
	assert.Equal(t, 255.0, first.TotalPrice)
	assert.Equal(t, "Alpha LLC", first.Supplier)
	assert.Equal(t, "2024-03-15", first.Date)
	assert.Equal(t, "MTIncInner12.xlsx", first.SourceFile)

	// Header values are stamped onto every row of the document.
	assert.Equal(t, first.Supplier, records[1].Supplier)
	assert.Equal(t, first.Date, records[1].Date)
	assert.Equal(t, first.SourceFile, records[1].SourceFile)
}

func TestExtract_NoDate(t *testing.T) {
	dir := t.TempDir()
	path := writeWorkbook(t, dir, "nodate.xlsx", "Alpha LLC", "", [][]any{
		{"P-1", "Bolt", 1, "pcs", 1.0, 1.0},
	})

	records, err := New().Extract(context.Background(), path)
	require.NoError(t, err, "no date is an outcome, not an error")
	assert.Empty(t, records)
}

func TestExtract_UnparseableDate(t *testing.T) {
	dir := t.TempDir()
	path := writeWorkbook(t, dir, "baddate.xlsx", "Alpha LLC", "sometime in spring", [][]any{
		{"P-1", "Bolt", 1, "pcs", 1.0, 1.0},
	})

	records, err := New().Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestExtract_GapTerminatesScan(t *testing.T) {
	dir := t.TempDir()
	path := writeWorkbook(t, dir, "gap.xlsx", "Alpha LLC", "01.02.2024", [][]any{
		{"P-1", "Bolt", 1, "pcs", 1.0, 1.0},
		{"P-2", "Nut", 2, "pcs", 2.0, 4.0},
		{nil, "orphan name with no code", 3, "pcs", 3.0, 9.0},
		{"P-4", "never reached", 4, "pcs", 4.0, 16.0},
	})

	records, err := New().Extract(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, records, 2, "rows past the first gap must never be read")
	assert.Equal(t, "P-2", records[1].ProductCode)
}

func TestExtract_MissingSupplier(t *testing.T) {
	dir := t.TempDir()
	path := writeWorkbook(t, dir, "nosupplier.xlsx", "", "01.02.2024", [][]any{
		{"P-1", "Bolt", 1, "pcs", 1.0, 1.0},
	})

	records, err := New().Extract(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.UnknownSupplier, records[0].Supplier)
}

func TestExtract_NoRows(t *testing.T) {
	dir := t.TempDir()
	path := writeWorkbook(t, dir, "empty.xlsx", "Alpha LLC", "01.02.2024", nil)

	records, err := New().Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestExtract_UnreadableWorkbook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corrupt.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a workbook"), 0600))

	_, err := New().Extract(context.Background(), path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidDocument))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{"day first dotted", "15.03.2024", "2024-03-15", true},
		{"ambiguous resolves day first", "03.04.2024", "2024-04-03", true},
		{"slashes", "15/03/2024", "2024-03-15", true},
		{"dashes", "15-03-2024", "2024-03-15", true},
		{"iso passthrough", "2024-03-15", "2024-03-15", true},
		{"excel serial", "45366", "2024-03-15", true},
		{"blank", "", "", false},
		{"garbage", "next tuesday", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseDate(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
