package postgres

import (
	"context"
	"fmt"

	"github.com/billforge/billforge-api/internal/domain/entity"
	"github.com/billforge/billforge-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implements PaymentRepository (usable with pool or tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository builds the adapter.
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create persists one payment record.
func (r *PaymentRepo) Create(payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, invoice_id, amount, method, reference_no, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.InvoiceID, payment.Amount, payment.Method,
		nullIfEmpty(payment.ReferenceNo), payment.PaidAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// ListByInvoiceID returns the payment history for an invoice, oldest first.
func (r *PaymentRepo) ListByInvoiceID(invoiceID string) ([]*entity.Payment, error) {
	query := `
		SELECT id, invoice_id, amount, method, COALESCE(reference_no, ''), paid_at
		FROM payments WHERE invoice_id = $1 ORDER BY paid_at, id`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.InvoiceID, &p.Amount, &p.Method, &p.ReferenceNo, &p.PaidAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
