package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment represents one payment applied against an invoice's amount due.
type Payment struct {
	ID          string
	InvoiceID   string
	Amount      decimal.Decimal
	Method      string // cash, upi, card, bank_transfer
	ReferenceNo string
	PaidAt      time.Time
}
