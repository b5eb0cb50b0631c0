// =============================================================================
// Cart Parser - CSV Splitting
// =============================================================================
//
// This module turns raw cart text into lines and cells. It is shared by the
// validator and the cart parser so both see exactly the same rows.
//
// SPLITTING RULES:
//   - Lines are separated by "\n" (a trailing "\r" is stripped).
//   - Lines with no characters at all are dropped. A line holding only
//     whitespace is kept and becomes a row with a single empty cell.
//   - Each kept line is trimmed, split on the delimiter and every cell trimmed.
//   - A data row ending with a delimiter loses the empty cell it produces.
//
// The first kept line is the header; the rest are data rows numbered from 1.
//
// The cart format has no quoting, so encoding/csv is not used: a quoted cell
// such as 'a,b' must count as two cells for the row-length check.
//
// =============================================================================

package csvparser

import (
	"strings"
)

// Delimiter separates cells within a line.
const Delimiter = ","

// =============================================================================
// CSV DATA STRUCTURE
// =============================================================================

// Row is a single data row.
type Row struct {
	// Index is the 1-based position of the row among data rows.
	Index int

	// Line is the trimmed source line.
	Line string

	// Cells are the trimmed cells, without a trailing empty cell.
	Cells []string
}

// CSVData is the split form of a cart file.
type CSVData struct {
	// Header contains the trimmed header cells. It is empty when the text
	// contains no lines.
	Header []string

	// Rows contains the data rows in file order.
	Rows []Row
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse splits text into a header and data rows.
//
// PARAMETERS:
//   - text: The raw file contents.
//
// RETURNS:
//   - The split data. Parse never fails; malformed rows are reported by the
//     validator, not here.
func Parse(text string) *CSVData {
	lines := SplitLines(text)
	data := &CSVData{
		Header: []string{},
		Rows:   make([]Row, 0, max(len(lines)-1, 0)),
	}

	if len(lines) == 0 {
		return data
	}

	data.Header = SplitCells(lines[0])

	for i, line := range lines[1:] {
		data.Rows = append(data.Rows, Row{
			Index: i + 1,
			Line:  line,
			Cells: SplitRow(line),
		})
	}

	return data
}

// SplitLines returns the trimmed, non-empty lines of text.
func SplitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))

	for _, line := range raw {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		lines = append(lines, strings.TrimSpace(line))
	}

	return lines
}

// SplitCells splits a line on the delimiter and trims every cell.
func SplitCells(line string) []string {
	cells := strings.Split(line, Delimiter)
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

// SplitRow splits a data line like SplitCells and drops the empty cell left
// by a trailing delimiter. A line that is a single empty cell keeps it.
func SplitRow(line string) []string {
	cells := SplitCells(line)
	if n := len(cells); n > 1 && cells[n-1] == "" {
		cells = cells[:n-1]
	}
	return cells
}
