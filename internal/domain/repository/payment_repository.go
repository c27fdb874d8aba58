package repository

import "github.com/billforge/billforge-api/internal/domain/entity"

// PaymentRepository is the persistence port for payments applied to invoices.
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	ListByInvoiceID(invoiceID string) ([]*entity.Payment, error)
}
