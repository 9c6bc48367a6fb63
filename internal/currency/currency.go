// Package currency renders prices for display in the storefront's fixed
// locale (en-IN) and currency (INR).
package currency

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	Locale       = "en-IN"
	CurrencyCode = "INR"
	Symbol       = "₹"

	maxFractionDigits = 2
)

// usdToINR is an approximate, static rate. Not suitable for settlement.
var usdToINR = decimal.RequireFromString("83.12")

// Format renders amount with 0 to 2 fractional digits, trimming trailing zeros.
func Format(amount decimal.Decimal) string {
	return render(amount, 0)
}

// FormatCompact drops the fraction for whole values and always shows two
// digits otherwise.
func FormatCompact(amount decimal.Decimal) string {
	if amount.IsInteger() {
		return render(amount, 0)
	}
	return render(amount, maxFractionDigits)
}

// FormatString parses s and formats it. Malformed input renders as NaN.
func FormatString(s string) string {
	d, err := Parse(s)
	if err != nil {
		return Symbol + "NaN"
	}
	return Format(d)
}

func FormatCompactString(s string) string {
	d, err := Parse(s)
	if err != nil {
		return Symbol + "NaN"
	}
	return FormatCompact(d)
}

func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse price %q: %w", s, err)
	}
	return d, nil
}

func ConvertUSDToINR(usd decimal.Decimal) decimal.Decimal {
	return usd.Mul(usdToINR)
}

func render(amount decimal.Decimal, minFraction int) string {
	rounded := amount.Round(maxFractionDigits)
	negative := rounded.IsNegative()

	fixed := rounded.Abs().StringFixed(maxFractionDigits)
	intPart, frac, _ := strings.Cut(fixed, ".")
	frac = strings.TrimRight(frac, "0")
	for len(frac) < minFraction {
		frac += "0"
	}

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteString(Symbol)
	b.WriteString(groupIndian(intPart))
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// groupIndian applies lakh/crore grouping: the last three digits, then pairs.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)
	return strings.Join(groups, ",") + "," + tail
}
