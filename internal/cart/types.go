// =============================================================================
// Cart Parser - Cart Types
// =============================================================================
//
// Value types produced by a parse call. They are created fresh for every call
// and owned by the caller once returned.
//
// =============================================================================

package cart

import "encoding/xml"

// Item is a single validated cart line with its generated identifier.
type Item struct {
	// ID is an opaque identifier, unique within one result. Callers must not
	// interpret its structure.
	ID string `json:"id" yaml:"id" xml:"id,attr"`

	// Name is the product name. Never empty for parsed items.
	Name string `json:"name" yaml:"name" xml:"name"`

	// Price is the unit price, at least zero.
	Price float64 `json:"price" yaml:"price" xml:"price"`

	// Quantity is the number of units, at least zero.
	Quantity float64 `json:"quantity" yaml:"quantity" xml:"quantity"`
}

// Subtotal returns price times quantity.
func (i Item) Subtotal() float64 {
	return i.Price * i.Quantity
}

// LineItem is the result of converting one line, before an ID is assigned.
// Numeric fields hold NaN when the cell text was not a number.
type LineItem struct {
	Name     string
	Price    float64
	Quantity float64
}

// Result is the parsed cart.
type Result struct {
	XMLName xml.Name `json:"-" yaml:"-" xml:"cart"`

	// Items are the cart lines in file order.
	Items []Item `json:"items" yaml:"items" xml:"item"`

	// Total is the sum of price times quantity over all items. It is a plain
	// floating-point sum and is not rounded.
	Total float64 `json:"total" yaml:"total" xml:"total,attr"`
}

// CalcTotal sums price times quantity over items.
func CalcTotal(items []Item) float64 {
	var total float64
	for _, item := range items {
		total += item.Subtotal()
	}
	return total
}
