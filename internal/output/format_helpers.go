package output

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as sterling with thousands separators, e.g. £1,234.50
func FormatCurrency(amount decimal.Decimal) string {
	s := amount.Abs().StringFixed(2)
	whole, frac := s[:len(s)-3], s[len(s)-3:]

	var b strings.Builder
	if amount.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString("£")
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteString(frac)
	return b.String()
}

// FormatRate formats a fractional rate as a percentage, e.g. 0.0135 as 1.35%
func FormatRate(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).Round(2).String() + "%"
}
