package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/billforge/billforge-api/internal/application/dto"
	"github.com/billforge/billforge-api/internal/domain"
	"github.com/billforge/billforge-api/internal/domain/entity"
	"github.com/billforge/billforge-api/internal/domain/invoice"
	"github.com/billforge/billforge-api/internal/domain/repository"
	"github.com/billforge/billforge-api/pkg/logger"
)

// RecordPaymentUseCase applies payments against an invoice's amount due and
// moves it toward Paid through the settlement resolver.
type RecordPaymentUseCase struct {
	txRunner BillingTxRunner
	log      *logger.Logger
}

// NewRecordPaymentUseCase wires the use case.
func NewRecordPaymentUseCase(txRunner BillingTxRunner, log *logger.Logger) *RecordPaymentUseCase {
	return &RecordPaymentUseCase{txRunner: txRunner, log: log}
}

// RecordPayment registers one payment. The invoice row is read with a lock
// inside the same transaction that writes the payment and the settlement,
// so concurrent payments serialize: each one applies against the committed
// amount_paid and the overpayment gate cannot be raced past. The resolver
// never silently swallows part of a real payment.
func (uc *RecordPaymentUseCase) RecordPayment(ctx context.Context, invoiceID string, in dto.RecordPaymentRequest) (*dto.PaymentResponse, error) {
	now := time.Now()
	var (
		resp   *dto.PaymentResponse
		status string
	)
	err := uc.txRunner.RunBilling(ctx, func(
		_ repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		inv, err := invoiceRepo.GetByIDForUpdate(invoiceID)
		if err != nil {
			return fmt.Errorf("load invoice: %w", err)
		}
		if inv == nil {
			return domain.ErrNotFound
		}

		newPaid, err := invoice.ApplyPayment(inv.Total, inv.AmountPaid, in.Amount)
		if err != nil {
			return err
		}

		method := in.Method
		if method == "" {
			method = "cash"
		}
		payment := &entity.Payment{
			ID:          uuid.New().String(),
			InvoiceID:   inv.ID,
			Amount:      invoice.Round2(in.Amount),
			Method:      method,
			ReferenceNo: in.ReferenceNo,
			PaidAt:      now,
		}

		inv.AmountPaid = newPaid
		inv.Status = invoice.ResolveStatus(inv.Total, newPaid)
		inv.UpdatedAt = now

		if err := paymentRepo.Create(payment); err != nil {
			return err
		}
		if err := invoiceRepo.UpdateSettlement(inv); err != nil {
			return err
		}

		status = inv.Status
		resp = &dto.PaymentResponse{
			ID:          payment.ID,
			Amount:      payment.Amount,
			Method:      payment.Method,
			ReferenceNo: payment.ReferenceNo,
			PaidAt:      payment.PaidAt.Format(time.RFC3339),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("invoice_id", invoiceID).
		Str("payment_id", resp.ID).
		Str("status", status).
		Msg("payment recorded")

	return resp, nil
}

// MarkPaid settles the invoice deterministically: amountPaid becomes total
// and the remaining due is recorded as one closing payment so the history
// still reconciles through the same resolver as incremental payments. Like
// RecordPayment it reads the row under lock, so a payment landing
// concurrently cannot be double-counted by the closing payment.
func (uc *RecordPaymentUseCase) MarkPaid(ctx context.Context, invoiceID string) error {
	now := time.Now()
	err := uc.txRunner.RunBilling(ctx, func(
		_ repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		inv, err := invoiceRepo.GetByIDForUpdate(invoiceID)
		if err != nil {
			return fmt.Errorf("load invoice: %w", err)
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if inv.Status == entity.StatusPaid {
			return domain.ErrAlreadyPaid
		}

		remaining := invoice.Round2(inv.Total.Sub(invoice.ClampAmountPaid(inv.AmountPaid, inv.Total)))
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}

		newPaid, status := invoice.MarkPaid(inv.Total)
		inv.AmountPaid = newPaid
		inv.Status = status
		inv.UpdatedAt = now

		if remaining.IsPositive() {
			closing := &entity.Payment{
				ID:        uuid.New().String(),
				InvoiceID: inv.ID,
				Amount:    remaining,
				Method:    "cash",
				PaidAt:    now,
			}
			if err := paymentRepo.Create(closing); err != nil {
				return err
			}
		}
		return invoiceRepo.UpdateSettlement(inv)
	})
	if err != nil {
		return err
	}

	uc.log.Info().Str("invoice_id", invoiceID).Msg("invoice marked as paid")
	return nil
}
