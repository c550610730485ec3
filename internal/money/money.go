// Package money formats and rounds dollar amounts.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Format renders d with two decimals and en-US digit grouping ("2,456.78").
func Format(d decimal.Decimal) string {
	return printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

// FormatWhole renders d truncated to whole dollars with grouping ("12,450").
func FormatWhole(d decimal.Decimal) string {
	return printer.Sprintf("%d", d.Truncate(0).IntPart())
}

// MustParse parses a decimal literal and panics on malformed input.
// Intended for package-level fixtures.
func MustParse(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
