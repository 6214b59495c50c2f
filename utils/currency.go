package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrencyVND renders an amount in Vietnamese dong with dot thousand
// separators and no decimals, e.g. 1250000 -> "1.250.000 ₫". Fractional
// dong does not circulate, so the amount is rounded to whole units.
func FormatCurrencyVND(amount decimal.Decimal) string {
	whole := amount.Round(0).StringFixed(0)

	negative := strings.HasPrefix(whole, "-")
	digits := strings.TrimPrefix(whole, "-")

	var groups []string
	for i := len(digits); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{digits[start:i]}, groups...)
	}

	out := strings.Join(groups, ".")
	if negative {
		out = "-" + out
	}
	return out + " ₫"
}
