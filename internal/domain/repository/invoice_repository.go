package repository

import "github.com/billforge/billforge-api/internal/domain/entity"

// InvoiceRepository is the persistence port for invoice headers and items.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateItem(item *entity.InvoiceItem) error
	GetByID(id string) (*entity.Invoice, error)
	// GetByIDForUpdate fetches the invoice and, inside a transaction,
	// locks its row until commit. Settlement writers must read through
	// this so concurrent payments serialize on the committed amount_paid
	// instead of racing past the overpayment gate.
	GetByIDForUpdate(id string) (*entity.Invoice, error)
	GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error)
	// UpdateSettlement persists amount_paid, status and updated_at after a
	// payment or a mark-as-paid action.
	UpdateSettlement(invoice *entity.Invoice) error
}
