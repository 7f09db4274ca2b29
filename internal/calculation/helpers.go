package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ten     = decimal.NewFromInt(10)
	hundred = decimal.NewFromInt(100)
)

// roundPence rounds half away from zero to 2 decimal places
func roundPence(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// prorate scales an annual figure to n of periods without losing precision at n == periods
func prorate(annual decimal.Decimal, n, periods int) decimal.Decimal {
	return annual.Mul(decimal.NewFromInt(int64(n))).Div(decimal.NewFromInt(int64(periods)))
}

func money(d decimal.Decimal) string {
	return "£" + d.StringFixed(2)
}

func percent(rate decimal.Decimal) string {
	return rate.Mul(hundred).String() + "%"
}

func warningLines(warnings []string) string {
	s := ""
	for _, w := range warnings {
		s += fmt.Sprintf("WARNING: %s. ", w)
	}
	return s
}
