package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/billforge/billforge-api/internal/application/dto"
	"github.com/billforge/billforge-api/internal/domain"
	"github.com/billforge/billforge-api/internal/domain/entity"
	"github.com/billforge/billforge-api/internal/domain/invoice"
	"github.com/billforge/billforge-api/internal/domain/repository"
	"github.com/billforge/billforge-api/pkg/logger"
)

// CreateInvoiceUseCase finalizes an invoice draft: it rebuilds the draft
// from catalog snapshots, runs the full validation gate, derives totals and
// settlement status, and persists header, items and the opening payment in
// one transaction while decrementing stock authoritatively.
type CreateInvoiceUseCase struct {
	txRunner     BillingTxRunner
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	invoiceRepo  repository.InvoiceRepository
	paymentRepo  repository.PaymentRepository
	log          *logger.Logger
}

// NewCreateInvoiceUseCase wires the use case.
func NewCreateInvoiceUseCase(
	txRunner BillingTxRunner,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	log *logger.Logger,
) *CreateInvoiceUseCase {
	return &CreateInvoiceUseCase{
		txRunner:     txRunner,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		invoiceRepo:  invoiceRepo,
		paymentRepo:  paymentRepo,
		log:          log,
	}
}

// CreateInvoice validates and persists a new invoice. Validation runs fully
// before any write: a validation failure never leaves partial state.
func (uc *CreateInvoiceUseCase) CreateInvoice(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	now := time.Now()

	// An empty customer ID is a validation problem, not a lookup; the gate
	// below reports it as "customer is required".
	var customer *entity.Customer
	if in.CustomerID != "" {
		c, err := uc.customerRepo.GetByID(in.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("load customer: %w", err)
		}
		if c == nil {
			return nil, domain.ErrNotFound
		}
		customer = c
	}

	// Rebuild the draft through the reducer so every normalization rule
	// (price snapshot, paid clamp, unset resolution) applies exactly once,
	// the same way interactive editing would have applied it.
	draft := invoice.NewDraft(now)
	draft = invoice.Reduce(draft, invoice.SetCustomer{CustomerID: in.CustomerID})
	for _, reqItem := range in.Items {
		product, err := uc.productRepo.GetByID(reqItem.ProductID)
		if err != nil {
			return nil, fmt.Errorf("load product: %w", err)
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		idx := len(draft.Items)
		draft = invoice.Reduce(draft, invoice.AddItem{Product: *product})
		draft = invoice.Reduce(draft, invoice.SetQuantity{Index: idx, Quantity: reqItem.Quantity})
	}
	draft = invoice.Reduce(draft, invoice.SetTaxPercent{Value: invoice.PercentOf(in.TaxPercent)})
	draft = invoice.Reduce(draft, invoice.SetDiscount{Value: invoice.AmountOf(in.DiscountAmount)})
	draft = invoice.Reduce(draft, invoice.SetAmountPaid{Value: invoice.AmountOf(in.AmountPaid)})
	draft = invoice.Reduce(draft, invoice.SetNotes{Text: in.Notes})
	if in.DueDate != "" {
		due, err := time.ParseInLocation("2006-01-02", in.DueDate, now.Location())
		if err != nil {
			return nil, fmt.Errorf("%w: due_date must be YYYY-MM-DD", domain.ErrInvalidInput)
		}
		draft = invoice.Reduce(draft, invoice.SetDueDate{Date: due})
	}
	draft = invoice.Normalize(draft)

	// Full validation gate before any side effect.
	if err := invoice.ValidateDraft(draft); err != nil {
		return nil, err
	}

	totals := draft.Totals()
	paid := draft.AmountPaid.OrZero()

	inv := &entity.Invoice{
		ID:             uuid.New().String(),
		CustomerID:     draft.CustomerID,
		Number:         in.Number,
		Date:           now,
		DueDate:        draft.DueDate,
		TaxPercent:     draft.TaxPercent.OrZero(),
		DiscountAmount: draft.DiscountAmount.OrZero(),
		Subtotal:       totals.Subtotal,
		TaxAmount:      totals.TaxAmount,
		Total:          totals.Total,
		AmountPaid:     paid,
		Status:         invoice.ResolveStatus(totals.Total, paid),
		Notes:          draft.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if inv.Number == "" {
		inv.Number = fmt.Sprintf("INV-%d", now.Unix())
	}

	items := make([]*entity.InvoiceItem, 0, len(draft.Items))
	for i, it := range draft.Items {
		line := it
		line.ID = uuid.New().String()
		line.InvoiceID = inv.ID
		line.LineNo = int64(i + 1) // draft order is the display order
		items = append(items, &line)
	}

	var openingPayment *entity.Payment
	if paid.IsPositive() {
		openingPayment = &entity.Payment{
			ID:        uuid.New().String(),
			InvoiceID: inv.ID,
			Amount:    paid,
			Method:    "cash",
			PaidAt:    now,
		}
	}

	err := uc.txRunner.RunBilling(ctx, func(
		productRepo repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		// Authoritative stock re-check; the draft validator only saw a
		// point-in-time snapshot.
		for _, it := range items {
			if err := productRepo.DecrementStock(it.ProductID, it.Quantity); err != nil {
				return err
			}
		}
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		for _, it := range items {
			if err := invoiceRepo.CreateItem(it); err != nil {
				return err
			}
		}
		if openingPayment != nil {
			if err := paymentRepo.Create(openingPayment); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("invoice_id", inv.ID).
		Str("number", inv.Number).
		Str("status", inv.Status).
		Msg("invoice created")

	var payments []*entity.Payment
	if openingPayment != nil {
		payments = append(payments, openingPayment)
	}
	return uc.toResponse(inv, customer.Name, items, payments, now), nil
}

// GetInvoice returns the full invoice detail with recomputed figures and
// the Overdue-aware display status.
func (uc *CreateInvoiceUseCase) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("load invoice: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.invoiceRepo.GetItemsByInvoiceID(id)
	if err != nil {
		return nil, fmt.Errorf("load invoice items: %w", err)
	}
	payments, err := uc.paymentRepo.ListByInvoiceID(id)
	if err != nil {
		return nil, fmt.Errorf("load payments: %w", err)
	}
	// The name is display-only; a failed lookup degrades the response
	// instead of failing it, but never silently.
	customerName := ""
	if customer, err := uc.customerRepo.GetByID(inv.CustomerID); err != nil {
		uc.log.Warn().Err(err).Str("invoice_id", id).Msg("load customer name for invoice detail")
	} else if customer != nil {
		customerName = customer.Name
	}
	return uc.toResponse(inv, customerName, items, payments, time.Now()), nil
}

func (uc *CreateInvoiceUseCase) toResponse(inv *entity.Invoice, customerName string, items []*entity.InvoiceItem, payments []*entity.Payment, now time.Time) *dto.InvoiceResponse {
	// Derived figures are recomputed, never read back from storage blindly.
	lines := make([]entity.InvoiceItem, 0, len(items))
	for _, it := range items {
		lines = append(lines, *it)
	}
	totals := invoice.ComputeTotals(lines, inv.TaxPercent, inv.DiscountAmount, inv.AmountPaid)

	resp := &dto.InvoiceResponse{
		ID:             inv.ID,
		CustomerID:     inv.CustomerID,
		CustomerName:   customerName,
		Number:         inv.Number,
		Date:           inv.Date.Format("2006-01-02"),
		DueDate:        inv.DueDate.Format("2006-01-02"),
		TaxPercent:     inv.TaxPercent,
		DiscountAmount: inv.DiscountAmount,
		Subtotal:       invoice.Round2(totals.Subtotal),
		TaxAmount:      invoice.Round2(totals.TaxAmount),
		Total:          invoice.Round2(totals.Total),
		AmountPaid:     invoice.ClampAmountPaid(inv.AmountPaid, totals.Total),
		AmountDue:      totals.AmountDue,
		Status:         inv.Status,
		DisplayStatus:  invoice.DisplayStatus(inv.Status, inv.DueDate, now),
		Notes:          inv.Notes,
		Items:          make([]dto.InvoiceItemResponse, 0, len(items)),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.InvoiceItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			ProductCode: it.ProductCode,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal(),
		})
	}
	for _, p := range payments {
		resp.Payments = append(resp.Payments, dto.PaymentResponse{
			ID:          p.ID,
			Amount:      p.Amount,
			Method:      p.Method,
			ReferenceNo: p.ReferenceNo,
			PaidAt:      p.PaidAt.Format(time.RFC3339),
		})
	}
	return resp
}
