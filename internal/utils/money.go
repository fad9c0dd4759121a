package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatUSD renders a price for display: "$1,234.50". Formatting is
// display-only; stored totals are never rounded.
func FormatUSD(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	fixed := amount.StringFixed(2)
	parts := strings.SplitN(fixed, ".", 2)
	return sign + "$" + groupThousands(parts[0]) + "." + parts[1]
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var out strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		out.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if out.Len() > 0 {
			out.WriteByte(',')
		}
		out.WriteString(digits[i : i+3])
	}
	return out.String()
}
