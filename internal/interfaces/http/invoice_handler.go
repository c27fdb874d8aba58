package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/billforge/billforge-api/internal/application/billing"
	"github.com/billforge/billforge-api/internal/application/dto"
	"github.com/billforge/billforge-api/internal/domain"
	"github.com/billforge/billforge-api/internal/domain/invoice"
)

// InvoiceHandler handles invoicing HTTP requests.
type InvoiceHandler struct {
	createUC  *billing.CreateInvoiceUseCase
	paymentUC *billing.RecordPaymentUseCase
	pdfUC     *billing.PDFUseCase
}

// NewInvoiceHandler builds the handler.
func NewInvoiceHandler(
	createUC *billing.CreateInvoiceUseCase,
	paymentUC *billing.RecordPaymentUseCase,
	pdfUC *billing.PDFUseCase,
) *InvoiceHandler {
	return &InvoiceHandler{createUC: createUC, paymentUC: paymentUC, pdfUC: pdfUC}
}

// Create submits an invoice: validates the draft, decrements stock and
// persists everything in one transaction.
// POST /api/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.createUC.CreateInvoice(c.Context(), in)
	if err != nil {
		return invoiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID returns the full invoice detail with items and payment history.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.createUC.GetInvoice(c.Context(), c.Params("id"))
	if err != nil {
		return invoiceError(c, err)
	}
	return c.JSON(out)
}

// RecordPayment applies a payment against the invoice's amount due.
// POST /api/invoices/:id/payments
func (h *InvoiceHandler) RecordPayment(c *fiber.Ctx) error {
	var in dto.RecordPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.paymentUC.RecordPayment(c.Context(), c.Params("id"), in)
	if err != nil {
		return invoiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// MarkPaid settles the invoice in full via a closing payment for the
// remaining amount due.
// POST /api/invoices/:id/mark-paid
func (h *InvoiceHandler) MarkPaid(c *fiber.Ctx) error {
	if err := h.paymentUC.MarkPaid(c.Context(), c.Params("id")); err != nil {
		return invoiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadPDF renders and streams the invoice document.
// GET /api/invoices/:id/pdf
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdfUC.DownloadInvoicePDF(c.Context(), c.Params("id"))
	if err != nil {
		return invoiceError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// invoiceError maps domain errors to HTTP responses. Validation failures
// carry one actionable message per violated rule.
func invoiceError(c *fiber.Ctx, err error) error {
	var vErr *invoice.ValidationError
	if errors.As(err, &vErr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "invoice validation failed",
			Details: vErr.Messages(),
		})
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "invoice not found"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "insufficient stock"})
	case errors.Is(err, domain.ErrOverpayment):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "OVERPAYMENT", Message: "payment exceeds amount due"})
	case errors.Is(err, domain.ErrAlreadyPaid):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_PAID", Message: "invoice is already paid"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "internal error"})
	}
}
