package cart

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLine_StringColumn(t *testing.T) {
	item := ParseLine("62634, 89974.00, 356345")

	assert.Equal(t, "62634", item.Name)
}

func TestParseLine_NumberColumns(t *testing.T) {
	item := ParseLine("Example product1, 89974.00, 356345")

	assert.Equal(t, 356345.0, item.Quantity)
	assert.Equal(t, 89974.0, item.Price)
}

func TestParseLine_NonNumericBecomesNaN(t *testing.T) {
	item := ParseLine("Example, abc, null")

	assert.Equal(t, "Example", item.Name)
	assert.True(t, math.IsNaN(item.Price))
	assert.True(t, math.IsNaN(item.Quantity))
}

func TestParseLine_MissingCells(t *testing.T) {
	item := ParseLine("Only a name")

	assert.Equal(t, "Only a name", item.Name)
	assert.True(t, math.IsNaN(item.Price))
	assert.True(t, math.IsNaN(item.Quantity))
}

func TestParseLine_DoesNotValidate(t *testing.T) {
	item := ParseLine(", -5, 2,")

	assert.Empty(t, item.Name)
	assert.Equal(t, -5.0, item.Price)
	assert.Equal(t, 2.0, item.Quantity)
}

func TestToNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{in: "0", want: 0},
		{in: "  42 ", want: 42},
		{in: "89974.00", want: 89974},
		{in: "-3.5", want: -3.5},
		{in: "1e3", want: 1000},
		{in: "0x10", want: 16},
		{in: "0b101", want: 5},
		{in: "", want: 0},
		{in: "   ", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ToNumber(tt.in))
		})
	}
}

func TestToNumber_NaN(t *testing.T) {
	for _, in := range []string{"abc", "true", "null", "undefined", "{}", "[]", "1_000", "1_0", "0x1p4", "0x_1F", "12abc"} {
		t.Run(in, func(t *testing.T) {
			n := ToNumber(in)
			assert.True(t, math.IsNaN(n))
		})
	}
}

func TestToNumber_Overflow(t *testing.T) {
	assert.True(t, math.IsInf(ToNumber("1e400"), 1))
}
