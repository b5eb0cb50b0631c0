// =============================================================================
// Cart Parser - Line Parser
// =============================================================================
//
// Converts one data line into a LineItem using the schema's column types:
//   - string:         the trimmed cell is kept as-is
//   - numberPositive: the trimmed cell is coerced with ToNumber
//
// The line parser does not validate. Lines that never passed the validator
// still convert, with NaN standing in for any number it could not read.
//
// =============================================================================

package cart

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/ginjaninja78/cart-parser/internal/csvparser"
	"github.com/ginjaninja78/cart-parser/internal/schema"
	"github.com/ginjaninja78/cart-parser/internal/validation"
)

// ParseLine converts a line with the cart schema.
func ParseLine(line string) LineItem {
	return parseLine(schema.Cart, line)
}

// ParseLine converts a line with the parser's schema.
func (p *Parser) ParseLine(line string) LineItem {
	return parseLine(p.schema, line)
}

func parseLine(s *schema.Schema, line string) LineItem {
	cells := csvparser.SplitCells(line)
	item := LineItem{
		Price:    math.NaN(),
		Quantity: math.NaN(),
	}

	for i, column := range s.Columns() {
		if i >= len(cells) {
			break
		}
		cell := cells[i]

		switch column.Type {
		case schema.TypeNumberPositive:
			item.setNumber(column.Key, ToNumber(cell))
		default:
			item.setText(column.Key, cell)
		}
	}

	return item
}

func (l *LineItem) setText(key, value string) {
	if key == schema.KeyName {
		l.Name = value
	}
}

func (l *LineItem) setNumber(key string, value float64) {
	switch key {
	case schema.KeyPrice:
		l.Price = value
	case schema.KeyQuantity:
		l.Quantity = value
	}
}

// =============================================================================
// NUMBER COERCION
// =============================================================================

// ToNumber converts text to a number the lenient way:
//   - blank text is 0
//   - decimal and exponent forms parse to their value ("89974.00" -> 89974)
//   - integer literals with a 0x, 0o or 0b prefix parse in that base
//   - out-of-range values saturate to +/-Inf
//   - digit separators and hexadecimal floats are NaN
//   - anything else is NaN
//
// NaN never compares equal to any number, itself included; use math.IsNaN.
func ToNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if !validation.IsDecimalLiteral(s) {
		return math.NaN()
	}

	n, err := strconv.ParseFloat(s, 64)
	if err == nil {
		return n
	}
	if errors.Is(err, strconv.ErrRange) {
		return n
	}

	if i, err := strconv.ParseInt(s, 0, 64); err == nil && hasBasePrefix(s) {
		return float64(i)
	}

	return math.NaN()
}

func hasBasePrefix(s string) bool {
	s = strings.TrimLeft(s, "+-")
	if len(s) < 2 || s[0] != '0' {
		return false
	}
	switch s[1] {
	case 'x', 'X', 'o', 'O', 'b', 'B':
		return true
	}
	return false
}
