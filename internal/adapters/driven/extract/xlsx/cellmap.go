package xlsx

import "fmt"

// CellMap declares where each logical field lives in the workbook
// template. The scan logic is generic over the map, so a revised
// template only needs a new map, not new code.
type CellMap struct {
	// SupplierCell is the A1 coordinate of the supplier name.
	SupplierCell string

	// DateCell is the A1 coordinate of the purchase date.
	DateCell string

	// DataStartRow is the 1-based row where data rows begin.
	DataStartRow int

	// CodeCol is the column letter of the product code. A blank cell in
	// this column terminates the scan.
	CodeCol string

	// NameCol, QtyCol, UnitCol, PriceCol, TotalCol are the column
	// letters of the remaining row fields.
	NameCol  string
	QtyCol   string
	UnitCol  string
	PriceCol string
	TotalCol string
}

// DefaultCellMap returns the coordinates of the standard purchase
// workbook template: supplier at F6, date at M5, data rows from row 9
// with code D, name G, qty H, unit K, price L, total O.
func DefaultCellMap() CellMap {
	return CellMap{
		SupplierCell: "F6",
		DateCell:     "M5",
		DataStartRow: 9,
		CodeCol:      "D",
		NameCol:      "G",
		QtyCol:       "H",
		UnitCol:      "K",
		PriceCol:     "L",
		TotalCol:     "O",
	}
}

// cell builds an A1 coordinate from a column letter and a 1-based row.
func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
