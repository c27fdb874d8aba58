package entity

import "time"

// Customer represents a billed party.
type Customer struct {
	ID        string
	Name      string
	Address   string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
