// Package invoice holds the invoice financial core: money and quantity
// rules, the totals calculator, the draft reducer, line-item stock
// validation and the settlement status machine. Everything here is pure;
// persistence and rendering live in the infrastructure layer.
package invoice

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Round2 rounds a monetary value to 2 decimal places, half up. Intermediate
// arithmetic stays unrounded; this is applied only at the formatting and
// amount-due boundaries to avoid compounding error.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ClampAmountPaid normalizes a paid amount into [0, total] and rounds it to
// 2 decimal places. A negative total clamps everything to zero.
func ClampAmountPaid(paid, total decimal.Decimal) decimal.Decimal {
	if total.IsNegative() {
		total = decimal.Zero
	}
	if paid.IsNegative() {
		paid = decimal.Zero
	}
	if paid.GreaterThan(total) {
		paid = total
	}
	return Round2(paid)
}

// FormatAmount renders a monetary value with 2 decimals and Indian digit
// grouping: the last three integer digits, then groups of two.
// E.g. 1234567.5 -> "12,34,567.50".
func FormatAmount(d decimal.Decimal) string {
	s := Round2(d).StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")
	grouped := groupIndian(intPart)
	if neg {
		grouped = "-" + grouped
	}
	return grouped + "." + fracPart
}

// ParseAmount parses a formatted amount back into a decimal, tolerating
// grouping separators and a currency prefix.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "₹")
	s = strings.ReplaceAll(s, ",", "")
	return decimal.NewFromString(strings.TrimSpace(s))
}

// groupIndian inserts commas into a plain digit string: last group of 3,
// then groups of 2. "1234567" -> "12,34,567".
func groupIndian(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	head := s[:n-3]
	tail := s[n-3:]
	var b strings.Builder
	rem := len(head) % 2
	if rem == 1 {
		b.WriteString(head[:1])
		head = head[1:]
		b.WriteByte(',')
	}
	for i := 0; i < len(head); i += 2 {
		b.WriteString(head[i : i+2])
		b.WriteByte(',')
	}
	b.WriteString(tail)
	return b.String()
}
