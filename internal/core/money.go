// Package core money helpers.
//
// Amounts travel as positive float64 magnitudes in documents and JSON (the
// store keeps them as doubles); all arithmetic that must not accumulate
// floating point drift goes through shopspring/decimal.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a user-entered amount. It accepts both dot (12.34) and
// comma (12,34) decimal separators, rejects non-positive values, and rounds
// half-up to two decimal places.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" || strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	d = d.Round(2)
	if d.Sign() <= 0 {
		return 0, ErrInvalidAmount
	}
	v, _ := d.Float64()
	return v, nil
}

// FormatAmount renders an amount with the symbol for the given currency and
// Indian digit grouping (1,23,456.00), the convention the exported reports use.
func FormatAmount(v float64, currency string) string {
	return CurrencySymbol(currency) + " " + GroupIndian(decimal.NewFromFloat(v).Round(2))
}

// CurrencySymbol maps an ISO currency code to its display prefix.
func CurrencySymbol(currency string) string {
	switch currency {
	case "", "INR":
		return "Rs"
	case "USD":
		return "$"
	case "EUR":
		return "€"
	case "GBP":
		return "£"
	default:
		return currency
	}
}

// GroupIndian formats a decimal with two fraction digits and Indian-style
// grouping: the last three integer digits form one group, the rest pair up
// (1234567.5 -> "12,34,567.50").
func GroupIndian(d decimal.Decimal) string {
	neg := d.Sign() < 0
	s := d.Abs().StringFixed(2)

	intPart, fracPart, _ := strings.Cut(s, ".")
	grouped := intPart
	if len(intPart) > 3 {
		head := intPart[:len(intPart)-3]
		tail := intPart[len(intPart)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		grouped = strings.Join(append(groups, tail), ",")
	}

	out := grouped + "." + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
