package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settlement status of an invoice.
const (
	StatusPending = "Pending"
	StatusPaid    = "Paid"
	StatusOverdue = "Overdue" // presentation-level only, never stored
)

// Invoice represents a finalized invoice header. All derived figures
// (Subtotal, TaxAmount, Total) are recomputed from the items at creation
// time and again before rendering; they are stored for querying, not
// trusted blindly.
type Invoice struct {
	ID             string
	CustomerID     string
	Number         string
	Date           time.Time
	DueDate        time.Time
	TaxPercent     int64
	DiscountAmount decimal.Decimal
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal
	AmountPaid     decimal.Decimal
	Status         string // Pending or Paid; Overdue is derived at read time
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
