package domain

import "github.com/shopspring/decimal"

// FormatCents renders minor currency units as dollars, e.g. 14999 -> "$149.99".
func FormatCents(cents int64) string {
	return "$" + decimal.New(cents, -2).StringFixed(2)
}

// FormatPrice renders a decimal amount with two places.
func FormatPrice(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
