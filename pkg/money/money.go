package money

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// FormatCents renders integer cents as a dollar string, e.g. 24900 -> "$249.00".
func FormatCents(cents int) string {
	return "$" + decimal.NewFromInt(int64(cents)).Div(hundred).StringFixed(2)
}

// LineTotalCents multiplies a unit price by a quantity.
func LineTotalCents(unitPriceCents, quantity int) int {
	return int(decimal.NewFromInt(int64(unitPriceCents)).
		Mul(decimal.NewFromInt(int64(quantity))).
		IntPart())
}
