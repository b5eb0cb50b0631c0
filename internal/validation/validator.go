// =============================================================================
// Cart Parser - Validation Engine
// =============================================================================
//
// This module checks cart text against a schema and reports every violation
// it finds. It never stops at the first problem and never modifies its input.
//
// VALIDATION ORDER:
//   Errors are returned in a single top-to-bottom, left-to-right scan:
//   1. Header: one error per header cell that differs from the schema
//   2. For each data row, in file order:
//      a. Row length: one error when the cell count differs from the schema;
//         the row's cells are then not checked
//      b. Cells: one error per cell that breaks its column's type rule,
//         in column order
//
// ERROR KINDS:
//   - header: row 0, column = header index
//   - row:    row = data row number (from 1), column = -1
//   - cell:   row = data row number (from 1), column = cell index
//
// =============================================================================

package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ginjaninja78/cart-parser/internal/csvparser"
	"github.com/ginjaninja78/cart-parser/internal/schema"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// ErrorType classifies a validation error.
type ErrorType string

const (
	ErrorTypeHeader ErrorType = "header"
	ErrorTypeRow    ErrorType = "row"
	ErrorTypeCell   ErrorType = "cell"
)

// RowLevel is the column index of errors that concern a whole row.
const RowLevel = -1

// ValidationError represents a single validation error. It is a plain value:
// two errors are equal when all four fields are equal.
type ValidationError struct {
	// Type is the kind of check that failed.
	Type ErrorType `json:"type" yaml:"type"`

	// Row is 0 for the header and the data row number (from 1) otherwise.
	Row int `json:"row" yaml:"row"`

	// Column is the cell index, or RowLevel for row errors.
	Column int `json:"column" yaml:"column"`

	// Message is a human-readable description of the violation.
	Message string `json:"message" yaml:"message"`
}

// NewError creates a ValidationError.
func NewError(errType ErrorType, row, column int, message string) ValidationError {
	return ValidationError{
		Type:    errType,
		Row:     row,
		Column:  column,
		Message: message,
	}
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return e.Message
}

// =============================================================================
// VALIDATOR
// =============================================================================

// Validator checks cart text against a schema.
type Validator struct {
	schema *schema.Schema
}

// NewValidator creates a Validator for the given schema. A nil schema means
// schema.Cart.
func NewValidator(s *schema.Schema) *Validator {
	if s == nil {
		s = schema.Cart
	}
	return &Validator{schema: s}
}

// Validate checks text against the cart schema.
func Validate(text string) []ValidationError {
	return NewValidator(schema.Cart).Validate(text)
}

// =============================================================================
// MAIN VALIDATION FUNCTION
// =============================================================================

// Validate checks text against the validator's schema.
//
// PARAMETERS:
//   - text: The raw file contents. The first non-empty line is the header.
//
// RETURNS:
//   - Every validation error in scan order. The slice is empty, never nil,
//     when the text is valid.
func (v *Validator) Validate(text string) []ValidationError {
	data := csvparser.Parse(text)
	errors := make([]ValidationError, 0)

	errors = append(errors, v.ValidateHeader(data.Header)...)

	for _, row := range data.Rows {
		errors = append(errors, v.ValidateRow(row.Index, row.Cells)...)
	}

	return errors
}

// ValidateHeader compares header cells with the schema's column names.
// A missing header cell is reported as received empty.
func (v *Validator) ValidateHeader(header []string) []ValidationError {
	var errors []ValidationError

	for i, column := range v.schema.Columns() {
		received := ""
		if i < len(header) {
			received = header[i]
		}

		if received != column.Name {
			errors = append(errors, NewError(
				ErrorTypeHeader,
				0,
				i,
				fmt.Sprintf("Expected header to be named \"%s\" but received %s.", column.Name, received),
			))
		}
	}

	return errors
}

// ValidateRow checks the cells of data row number rowIndex. A wrong cell
// count produces one row error and skips the cell checks.
func (v *Validator) ValidateRow(rowIndex int, cells []string) []ValidationError {
	if len(cells) != v.schema.Len() {
		return []ValidationError{NewError(
			ErrorTypeRow,
			rowIndex,
			RowLevel,
			fmt.Sprintf("Expected row to have %d cells but received %d.", v.schema.Len(), len(cells)),
		)}
	}

	var errors []ValidationError

	for i, column := range v.schema.Columns() {
		if msg := ValidateCell(cells[i], column.Type); msg != "" {
			errors = append(errors, NewError(ErrorTypeCell, rowIndex, i, msg))
		}
	}

	return errors
}

// =============================================================================
// DATA TYPE VALIDATORS
// =============================================================================

// ValidateCell checks a single cell against a column type.
//
// RETURNS:
//   - An error message if validation fails, empty string if valid.
//
// SUPPORTED DATA TYPES:
//   - string: any nonempty text
//   - numberPositive: a finite number greater than or equal to zero
//
// Unknown types accept any value.
func ValidateCell(value string, columnType schema.ColumnType) string {
	switch columnType {
	case schema.TypeString:
		if strings.TrimSpace(value) == "" {
			return fmt.Sprintf("Expected cell to be a nonempty string but received \"%s\".", value)
		}

	case schema.TypeNumberPositive:
		if !IsPositiveNumber(value) {
			return fmt.Sprintf("Expected cell to be a positive number but received \"%s\".", value)
		}
	}

	return ""
}

// IsPositiveNumber reports whether value is the text of a finite number
// greater than or equal to zero. Words that merely name a number, such as
// "NaN" or "Infinity", are rejected.
func IsPositiveNumber(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}

	if !IsDecimalLiteral(value) {
		return false
	}

	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return false
	}

	return !math.IsNaN(n) && !math.IsInf(n, 0) && n >= 0
}

// IsDecimalLiteral reports whether s is free of the Go-only number syntax
// strconv understands: digit separators ("1_000") and hexadecimal floats
// ("0x1p4"). It does not check that s is a number.
func IsDecimalLiteral(s string) bool {
	if strings.ContainsRune(s, '_') {
		return false
	}

	t := strings.TrimLeft(s, "+-")
	if len(t) > 1 && t[0] == '0' && (t[1] == 'x' || t[1] == 'X') && strings.ContainsAny(t, "pP") {
		return false
	}

	return true
}

// =============================================================================
// ERROR FORMATTING
// =============================================================================

// FormatErrors formats validation errors for display or logging.
func FormatErrors(errors []ValidationError) string {
	if len(errors) == 0 {
		return "No validation errors."
	}

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Validation completed with %d error(s):\n\n", len(errors)))

	for i, err := range errors {
		builder.WriteString(fmt.Sprintf("%d. [%s] row %d, column %d: %s\n", i+1, err.Type, err.Row, err.Column, err.Message))
	}

	return builder.String()
}
