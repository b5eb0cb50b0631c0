package xlsxparser

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, sheet string, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
		require.NoError(t, f.DeleteSheet("Sheet1"))
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "cart.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReader_ReadFile(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]any{
		{"Product name", "Price", "Quantity"},
		{"Mollis consequat", "9.00", "2"},
		{"Tvoluptatem", "10.32", "1"},
	})

	text, err := NewReader().ReadFile(path)

	require.NoError(t, err)
	assert.Equal(t, "Product name, Price, Quantity\nMollis consequat, 9.00, 2\nTvoluptatem, 10.32, 1\n", text)
}

func TestReader_IgnoresNumberFormats(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Product name", "Price", "Quantity"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"Laptop", 1234.5, 1}))

	// #,##0.00 would display the price as 1,234.50.
	style, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Sheet1", "B2", "B2", style))

	path := filepath.Join(t.TempDir(), "cart.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	text, err := NewReader().ReadFile(path)

	require.NoError(t, err)
	assert.Equal(t, "Product name, Price, Quantity\nLaptop, 1234.5, 1\n", text)
}

func TestReader_NamedSheet(t *testing.T) {
	path := writeWorkbook(t, "Cart", [][]any{
		{"Product name", "Price", "Quantity"},
		{"Pen", "1.5", "4"},
	})

	text, err := (&Reader{Sheet: "Cart"}).ReadFile(path)

	require.NoError(t, err)
	assert.Contains(t, text, "Pen, 1.5, 4")
}

func TestReader_UnknownSheet(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]any{{"Product name", "Price", "Quantity"}})

	_, err := (&Reader{Sheet: "Missing"}).ReadFile(path)

	assert.Error(t, err)
}

func TestReader_MissingFile(t *testing.T) {
	_, err := NewReader().ReadFile(filepath.Join(t.TempDir(), "nope.xlsx"))

	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestRowsToText(t *testing.T) {
	text := RowsToText([][]string{{"a", "b"}, {}, {"c"}})

	assert.Equal(t, "a, b\nc\n", text)
}
