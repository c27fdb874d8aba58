package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog entry. Stock is the sellable quantity; line
// items snapshot it at selection time, so the figure here is authoritative
// only at read time.
type Product struct {
	ID          string
	Code        string // display code, unique
	Name        string
	Description string
	Price       decimal.Decimal // unit sale price
	Stock       int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
