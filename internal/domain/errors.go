package domain

import "errors"

// Domain errors (no external dependencies).
var (
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrDuplicate         = errors.New("duplicate resource")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrOverpayment       = errors.New("payment exceeds amount due")
	ErrAlreadyPaid       = errors.New("invoice already settled")
)
