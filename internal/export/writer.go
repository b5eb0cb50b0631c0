// =============================================================================
// Cart Parser - Result Export
// =============================================================================
//
// This module writes a parsed cart to an output stream in one of the
// supported formats. Items are always written in file order.
//
// FORMATS:
//   - json: {"items": [{"id": ..., "name": ..., "price": ..., "quantity": ...}], "total": ...}
//   - yaml: the same structure as YAML
//   - xml:
//       <?xml version="1.0" encoding="UTF-8"?>
//       <cart total="348.32">
//         <item id="...">
//           <name>Mollis consequat</name>
//           <price>9</price>
//           <quantity>2</quantity>
//         </item>
//       </cart>
//   - xlsx: a "Cart" sheet with a header row, one row per item and a
//           closing total row
//
// =============================================================================

package export

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/cart-parser/internal/cart"
)

// Format is an output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatXML  Format = "xml"
	FormatXLSX Format = "xlsx"
)

// SheetName is the sheet written by the xlsx format.
const SheetName = "Cart"

// ParseFormat maps a name ("json", "yml", ...) to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "xml":
		return FormatXML, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported output format %q", name)
	}
}

// FormatFromPath picks a format from the file extension of path.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Extension returns the file extension for the format, without a dot.
func (f Format) Extension() string {
	return string(f)
}

// =============================================================================
// WRITE FUNCTIONS
// =============================================================================

// Write renders result to w in the given format.
func Write(w io.Writer, result *cart.Result, format Format) error {
	if result == nil {
		return fmt.Errorf("nothing to export")
	}

	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatYAML:
		return writeYAML(w, result)
	case FormatXML:
		return writeXML(w, result)
	case FormatXLSX:
		return writeXLSX(w, result)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func writeJSON(w io.Writer, result *cart.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, result *cart.Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}

func writeXML(w io.Writer, result *cart.Result) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to marshal XML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}

	_, err := io.WriteString(w, "\n")
	return err
}

// xlsxHeader is the header row of the xlsx format.
var xlsxHeader = []any{"ID", "Product name", "Price", "Quantity", "Subtotal"}

func writeXLSX(w io.Writer, result *cart.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	rows := make([][]any, 0, len(result.Items)+2)
	rows = append(rows, xlsxHeader)
	for _, item := range result.Items {
		rows = append(rows, []any{item.ID, item.Name, item.Price, item.Quantity, item.Subtotal()})
	}
	rows = append(rows, []any{"", "Total", "", "", result.Total})

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
