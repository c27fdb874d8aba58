package invoice

import (
	"github.com/shopspring/decimal"

	"github.com/billforge/billforge-api/internal/domain/entity"
)

// Totals are the derived monetary figures for a line-item list. Subtotal,
// TaxAmount and Total stay unrounded; AmountDue is the rounded, clamped
// figure shown to the user.
type Totals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
	AmountDue decimal.Decimal
}

// ComputeTotals derives subtotal, tax, total and amount due from the items
// and tax/discount/payment inputs.
//
// Items with quantity <= 0 contribute nothing; whether they are legal at
// all is the validator's concern, not the calculator's. The discount may
// exceed subtotal+tax: Total is NOT floored at zero, only AmountDue is.
// amountPaid is clamped defensively even though the input layer already
// normalizes it, so the calculator stays correct when called directly.
func ComputeTotals(items []entity.InvoiceItem, taxPercent int64, discountAmount, amountPaid decimal.Decimal) Totals {
	var subtotal decimal.Decimal
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		subtotal = subtotal.Add(it.LineTotal())
	}

	if taxPercent < 0 {
		taxPercent = 0
	}
	taxAmount := subtotal.Mul(decimal.NewFromInt(taxPercent)).Div(decimal.NewFromInt(100))

	if discountAmount.IsNegative() {
		discountAmount = decimal.Zero
	}
	total := subtotal.Add(taxAmount).Sub(discountAmount)

	paid := ClampAmountPaid(amountPaid, total)
	amountDue := Round2(total.Sub(paid))
	if amountDue.IsNegative() {
		amountDue = decimal.Zero
	}

	return Totals{
		Subtotal:  subtotal,
		TaxAmount: taxAmount,
		Total:     total,
		AmountDue: amountDue,
	}
}
