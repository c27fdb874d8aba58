package invoice

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/billforge/billforge-api/internal/domain/entity"
)

// Snapshot is the finalized, immutable invoice record handed to the
// renderer. Every derived figure is recomputed here from the raw inputs;
// nothing is trusted from stored or user-entered intermediate state. Any
// edit produces a new snapshot.
type Snapshot struct {
	InvoiceNumber  string
	CreatedAt      time.Time
	DueDate        time.Time
	Customer       entity.Customer
	Items          []entity.InvoiceItem
	TaxPercent     int64
	DiscountAmount decimal.Decimal
	AmountPaid     decimal.Decimal
	Totals         Totals
	Status         string // display status at snapshot time
	Notes          string
}

// NewSnapshot builds the render-ready record from a stored invoice, its
// customer and items. now drives the Overdue presentation derivation.
func NewSnapshot(inv entity.Invoice, customer entity.Customer, items []entity.InvoiceItem, now time.Time) Snapshot {
	totals := ComputeTotals(items, inv.TaxPercent, inv.DiscountAmount, inv.AmountPaid)
	stored := ResolveStatus(totals.Total, inv.AmountPaid)
	return Snapshot{
		InvoiceNumber:  inv.Number,
		CreatedAt:      inv.Date,
		DueDate:        inv.DueDate,
		Customer:       customer,
		Items:          items,
		TaxPercent:     inv.TaxPercent,
		DiscountAmount: inv.DiscountAmount,
		AmountPaid:     ClampAmountPaid(inv.AmountPaid, totals.Total),
		Totals:         totals,
		Status:         DisplayStatus(stored, inv.DueDate, now),
		Notes:          inv.Notes,
	}
}
