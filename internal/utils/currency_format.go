package utils

import (
	"strings"

	"github.com/SscSPs/posync/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DefaultCurrencySymbol is the Naira sign used when no symbol is configured.
const DefaultCurrencySymbol = "₦"

// FormatWithPrecision formats an amount with the given precision and no grouping.
// Example: 12.3456 with precision 2 returns "12.35"
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}

// FormatMoney renders an amount with the currency symbol, thousands separators and two decimals.
// Example: 1234.5 returns "₦1,234.50"; -1234.5 returns "-₦1,234.50"
func FormatMoney(amount decimal.Decimal, symbol string) string {
	fixed := amount.Abs().StringFixed(domain.AmountPrecision)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if amount.Round(domain.AmountPrecision).IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(symbol)
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}
