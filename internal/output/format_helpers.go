package output

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as euros with 2 decimals and thousands
// separators, e.g. "12,345.67 €".
func FormatCurrency(amount decimal.Decimal) string {
	return groupThousands(amount.StringFixed(2)) + " €"
}

// FormatAmount formats a float amount like FormatCurrency.
func FormatAmount(amount float64) string {
	return FormatCurrency(decimal.NewFromFloat(amount))
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatFraction formats a fraction (0.0425) as a percentage ("4.25%").
func FormatFraction(fraction float64) string {
	return FormatPercentage(decimal.NewFromFloat(fraction).Shift(2))
}

func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + frac
}
