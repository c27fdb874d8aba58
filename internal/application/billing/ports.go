package billing

import (
	"context"

	"github.com/billforge/billforge-api/internal/domain/invoice"
	"github.com/billforge/billforge-api/internal/domain/repository"
)

// BillingTxRunner executes a function inside one transaction covering the
// catalog, invoice and payment repositories. Any error from fn rolls the
// whole submission back: no partial commits.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error) error
}

// InvoicePDFGenerator renders the paginated financial document from a
// finalized snapshot. Implementations must treat a QR encoding failure as
// a recoverable warning and any other layout failure as fatal.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, snap invoice.Snapshot) ([]byte, error)
}
