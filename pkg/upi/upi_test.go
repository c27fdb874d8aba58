package upi_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billforge/billforge-api/pkg/upi"
)

func TestBuildPaymentLink(t *testing.T) {
	link, err := upi.BuildPaymentLink("acme@okaxis", "Acme Traders", decimal.RequireFromString("2378"), "INV-0042")
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(link, "upi://pay?"), "link = %s", link)

	u, err := url.Parse(link)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "acme@okaxis", q.Get("pa"))
	assert.Equal(t, "Acme Traders", q.Get("pn"))
	assert.Equal(t, "2378.00", q.Get("am"))
	assert.Equal(t, "INR", q.Get("cu"))
	assert.Equal(t, "Invoice INV-0042", q.Get("tn"))
}

func TestBuildPaymentLink_OmitsEmptyName(t *testing.T) {
	link, err := upi.BuildPaymentLink("acme@okaxis", "", decimal.NewFromInt(10), "INV-1")
	require.NoError(t, err)
	assert.NotContains(t, link, "pn=")
}

func TestBuildPaymentLink_MissingPayee(t *testing.T) {
	_, err := upi.BuildPaymentLink("", "Acme", decimal.NewFromInt(10), "INV-1")
	assert.ErrorIs(t, err, upi.ErrMissingPayee)
}

func TestBuildPaymentLink_NegativeAmount(t *testing.T) {
	_, err := upi.BuildPaymentLink("acme@okaxis", "Acme", decimal.NewFromInt(-1), "INV-1")
	assert.ErrorIs(t, err, upi.ErrInvalidAmount)
}

// A zero amount is legal: a fully settled invoice can still carry a
// scannable payee handle.
func TestBuildPaymentLink_ZeroAmount(t *testing.T) {
	link, err := upi.BuildPaymentLink("acme@okaxis", "Acme", decimal.Zero, "INV-1")
	require.NoError(t, err)
	assert.Contains(t, link, "am=0.00")
}
