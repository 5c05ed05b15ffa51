package output

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FormatCurrency formats an amount as pounds and pence with thousands
// separators, e.g. £12,570.00 or -£1,234.50
func FormatCurrency(amount decimal.Decimal) string {
	return formatGBP(amount, 2)
}

// FormatCurrencyWhole formats an amount rounded to whole pounds
func FormatCurrencyWhole(amount decimal.Decimal) string {
	return formatGBP(amount, 0)
}

// FormatPercentage formats a fraction (0.2 = 20%) as a percentage
func FormatPercentage(rate decimal.Decimal) string {
	return rate.Mul(hundred).StringFixed(2) + "%"
}

// FormatRate formats a band rate without trailing zeros, 0.0875 -> 8.75%
func FormatRate(rate decimal.Decimal) string {
	return rate.Mul(hundred).Round(4).String() + "%"
}

func formatGBP(amount decimal.Decimal, places int32) string {
	fixed := amount.Abs().StringFixed(places)
	whole, frac := fixed, ""
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		whole, frac = fixed[:i], fixed[i:]
	}

	var sb strings.Builder
	if amount.Round(places).IsNegative() {
		sb.WriteByte('-')
	}
	sb.WriteString("£")
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(c)
	}
	sb.WriteString(frac)
	return sb.String()
}
