// =============================================================================
// Cart Parser - Cart Schema
// =============================================================================
//
// This package declares the columns a cart CSV file must contain. The schema
// is static: it is built once and never mutated.
//
//   | Index | Header       | Key      | Type           |
//   |-------|--------------|----------|----------------|
//   | 0     | Product name | name     | string         |
//   | 1     | Price        | price    | numberPositive |
//   | 2     | Quantity     | quantity | numberPositive |
//
// The header is what the file must say; the key is what the parsed line item
// calls the value. Renaming a header therefore never changes the item shape.
//
// =============================================================================

package schema

// =============================================================================
// COLUMN TYPES
// =============================================================================

// ColumnType is the rule a cell in a column is checked and converted with.
type ColumnType string

const (
	// TypeString accepts any nonempty text and keeps it as-is.
	TypeString ColumnType = "string"

	// TypeNumberPositive accepts finite numbers greater than or equal to zero.
	TypeNumberPositive ColumnType = "numberPositive"
)

// Column keys used by the line parser.
const (
	KeyName     = "name"
	KeyPrice    = "price"
	KeyQuantity = "quantity"
)

// Column describes a single expected column.
type Column struct {
	// Name is the exact header text expected in the file (case-sensitive).
	Name string

	// Key is the semantic role of the column in a parsed line item.
	Key string

	// Type is the validation and conversion rule for the column's cells.
	Type ColumnType
}

// =============================================================================
// SCHEMA
// =============================================================================

// Schema is an ordered, read-only list of columns. Column order maps to the
// CSV column index.
type Schema struct {
	columns []Column
}

// New creates a schema from the given columns. The slice is copied.
func New(columns ...Column) *Schema {
	cols := make([]Column, len(columns))
	copy(cols, columns)
	return &Schema{columns: cols}
}

// Cart is the schema of a shopping cart file.
var Cart = New(
	Column{Name: "Product name", Key: KeyName, Type: TypeString},
	Column{Name: "Price", Key: KeyPrice, Type: TypeNumberPositive},
	Column{Name: "Quantity", Key: KeyQuantity, Type: TypeNumberPositive},
)

// Columns returns a copy of the column definitions in order.
func (s *Schema) Columns() []Column {
	cols := make([]Column, len(s.columns))
	copy(cols, s.columns)
	return cols
}

// Len returns the number of columns.
func (s *Schema) Len() int {
	return len(s.columns)
}

// Column returns the column at index i. It panics if i is out of range,
// like a slice index would.
func (s *Schema) Column(i int) Column {
	return s.columns[i]
}

// Names returns the expected header names in order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.columns))
	for i, c := range s.columns {
		names[i] = c.Name
	}
	return names
}
