package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseCost interprets an element's raw cost string as a decimal literal.
// Non-numeric strings are treated as unresolved formulas and yield zero.
// This is the single hook where a formula evaluator could be substituted.
func ParseCost(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// TotalCost is the sum of computed material and labor cost.
func TotalCost(material, labor decimal.Decimal) decimal.Decimal {
	return material.Add(labor)
}

// TotalWithMarkup applies the percentage markup to the combined cost:
// (material + labor) * (1 + markup/100). Derived on read, never stored.
func TotalWithMarkup(material, labor, markup decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(markup.Div(decimal.NewFromInt(100)))
	return TotalCost(material, labor).Mul(factor)
}
