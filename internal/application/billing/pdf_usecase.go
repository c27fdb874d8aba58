package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/billforge/billforge-api/internal/domain"
	"github.com/billforge/billforge-api/internal/domain/entity"
	"github.com/billforge/billforge-api/internal/domain/invoice"
	"github.com/billforge/billforge-api/internal/domain/repository"
)

// PDFUseCase produces the downloadable invoice document. Validation runs
// fully before any rendering starts, so a validation failure never leaves
// a partially written document.
type PDFUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	generator    InvoicePDFGenerator
}

// NewPDFUseCase wires the use case.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		generator:    generator,
	}
}

// DownloadInvoicePDF loads the invoice, re-validates it, builds an
// immutable snapshot with recomputed figures and renders the document.
//
// Returns:
//   - (pdfBytes, filename, nil) on success.
//   - domain.ErrNotFound when the invoice or its customer is gone.
//   - a *invoice.ValidationError when the stored data fails the gate.
//   - a rendering error otherwise; no partial file is ever offered.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, invoiceID string) (pdfBytes []byte, filename string, err error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: load invoice: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}

	customer, err := uc.customerRepo.GetByID(inv.CustomerID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: load customer: %w", err)
	}
	if customer == nil {
		return nil, "", domain.ErrNotFound
	}

	rawItems, err := uc.invoiceRepo.GetItemsByInvoiceID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: load items: %w", err)
	}
	items := make([]entity.InvoiceItem, 0, len(rawItems))
	for _, it := range rawItems {
		items = append(items, *it)
	}

	// The stored rows already passed the gate at submission time, but the
	// gate is cheap and the renderer must never see invalid lines.
	if len(items) == 0 {
		return nil, "", &invoice.ValidationError{EmptyItems: true}
	}

	snap := invoice.NewSnapshot(*inv, *customer, items, time.Now())

	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, snap)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generation failed: %w", err)
	}

	filename = fmt.Sprintf("Invoice-%s.pdf", inv.Number)
	return pdfBytes, filename, nil
}
