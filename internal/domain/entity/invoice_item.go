package entity

import "github.com/shopspring/decimal"

// InvoiceItem represents one product line on an invoice. ProductName,
// ProductCode, UnitPrice and AvailableStock are snapshots taken when the
// product was picked; the catalog may change afterwards without affecting
// the stored line.
type InvoiceItem struct {
	ID             string
	InvoiceID      string
	LineNo         int64 // 1-based position on the invoice; display order
	ProductID      string
	ProductName    string
	ProductCode    string
	Quantity       int64
	UnitPrice      decimal.Decimal
	AvailableStock int64
}

// LineTotal is UnitPrice x Quantity. Derived, never stored independently.
func (i InvoiceItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}
