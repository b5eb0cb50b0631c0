// =============================================================================
// Cart Parser - XLSX Cart Reader
// =============================================================================
//
// This module reads carts saved as Excel workbooks. The workbook is expected
// to hold the same table as a cart CSV file, on a single sheet:
//
//   | Column A     | Column B | Column C |
//   |--------------|----------|----------|
//   | Product name | Price    | Quantity |
//   | Mollis       | 9.00     | 2        |
//
// The sheet is rendered back to comma-separated text so that it goes through
// exactly the same validation and line parsing as a CSV file. Cell values are
// the formatted values Excel would display.
//
// =============================================================================

package xlsxparser

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/cart-parser/internal/csvparser"
)

// Reader reads the cart sheet of an XLSX workbook as CSV text.
type Reader struct {
	// Sheet is the name of the sheet to read. Empty means the first sheet.
	Sheet string
}

// NewReader creates a Reader for the first sheet.
func NewReader() *Reader {
	return &Reader{}
}

// ReadFile opens the workbook at path and returns its cart sheet as text.
// Cells are read as stored, without their number formats.
// File system errors are returned unwrapped.
func (r *Reader) ReadFile(path string) (string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return "", err
		}
		return "", fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheetName := r.Sheet
	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}
	if sheetName == "" {
		return "", fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return "", fmt.Errorf("failed to read rows of sheet %q: %w", sheetName, err)
	}

	return RowsToText(rows), nil
}

// RowsToText joins rows into cart text, one line per row. Rows with no
// cells are skipped.
func RowsToText(rows [][]string) string {
	var builder strings.Builder

	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		builder.WriteString(strings.Join(row, csvparser.Delimiter+" "))
		builder.WriteString("\n")
	}

	return builder.String()
}
