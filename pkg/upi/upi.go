// Package upi builds UPI deep links (NPCI linking specification) for
// payment collection. The resulting string is meant to be rasterized as a
// QR code on the invoice document; any UPI app can scan and pre-fill the
// payment screen from it.
package upi

import (
	"errors"
	"net/url"

	"github.com/shopspring/decimal"
)

// ErrMissingPayee is returned when no virtual payment address is configured.
var ErrMissingPayee = errors.New("upi: payee VPA is empty")

// ErrInvalidAmount is returned for a negative payment amount.
var ErrInvalidAmount = errors.New("upi: amount must not be negative")

// BuildPaymentLink builds a upi://pay deep link for the given payee and amount.
// The amount must be the CURRENT amount due at generation time; partial
// payments between opening an invoice and generating the document would
// otherwise leave a stale figure inside the QR.
func BuildPaymentLink(payeeVPA, payeeName string, amount decimal.Decimal, invoiceNumber string) (string, error) {
	if payeeVPA == "" {
		return "", ErrMissingPayee
	}
	if amount.IsNegative() {
		return "", ErrInvalidAmount
	}

	q := url.Values{}
	q.Set("pa", payeeVPA)
	if payeeName != "" {
		q.Set("pn", payeeName)
	}
	q.Set("am", amount.StringFixed(2))
	q.Set("cu", "INR")
	q.Set("tn", "Invoice "+invoiceNumber)

	u := &url.URL{
		Scheme:   "upi",
		Opaque:   "//pay",
		RawQuery: q.Encode(),
	}
	return u.String(), nil
}
