package invoice_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billforge/billforge-api/internal/domain/invoice"
)

func TestRound2_HalfUp(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.005", "1.01"},
		{"1.004", "1"},
		{"2.675", "2.68"},
		{"0.125", "0.13"},
		{"10", "10"},
	}
	for _, c := range cases {
		got := invoice.Round2(decimal.RequireFromString(c.in))
		assert.True(t, got.Equal(decimal.RequireFromString(c.want)), "%s -> %s, want %s", c.in, got, c.want)
	}
}

func TestClampAmountPaid(t *testing.T) {
	total := decimal.NewFromInt(100)

	assert.True(t, invoice.ClampAmountPaid(decimal.NewFromInt(-5), total).IsZero())
	assert.True(t, invoice.ClampAmountPaid(decimal.NewFromInt(250), total).Equal(total))
	assert.True(t, invoice.ClampAmountPaid(decimal.RequireFromString("40.555"), total).Equal(decimal.RequireFromString("40.56")))

	// negative total: everything clamps to zero
	assert.True(t, invoice.ClampAmountPaid(decimal.NewFromInt(10), decimal.NewFromInt(-3)).IsZero())
}

func TestFormatAmount_IndianGrouping(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"999", "999.00"},
		{"1000", "1,000.00"},
		{"123456", "1,23,456.00"},
		{"1234567.5", "12,34,567.50"},
		{"12345678.905", "1,23,45,678.91"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, invoice.FormatAmount(decimal.RequireFromString(c.in)), "input %s", c.in)
	}
}

// Formatting then parsing stays within 0.01 of the original for all
// non-negative values.
func TestFormatAmount_RoundTrip(t *testing.T) {
	tolerance := decimal.RequireFromString("0.01")
	for _, s := range []string{"0", "0.004", "17.38", "999.999", "2378", "1234567.891", "55555555.125"} {
		orig := decimal.RequireFromString(s)

		parsed, err := invoice.ParseAmount(invoice.FormatAmount(orig))
		require.NoError(t, err, "input %s", s)

		diff := parsed.Sub(orig).Abs()
		assert.True(t, diff.LessThanOrEqual(tolerance), "input %s drifted by %s", s, diff)
	}
}

func TestParseAmount_ToleratesCurrencyPrefix(t *testing.T) {
	got, err := invoice.ParseAmount("₹ 1,23,456.78")
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("123456.78")))
}
