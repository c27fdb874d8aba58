package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/billforge/billforge-api/internal/domain/entity"
	"github.com/billforge/billforge-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implements InvoiceRepository (usable with pool or tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository builds the adapter. Pass a pool or tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persists the invoice header.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, customer_id, number, date, due_date, tax_percent, discount_amount,
		                      subtotal, tax_amount, total, amount_paid, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.CustomerID, invoice.Number, invoice.Date, invoice.DueDate,
		invoice.TaxPercent, invoice.DiscountAmount, invoice.Subtotal, invoice.TaxAmount,
		invoice.Total, invoice.AmountPaid, invoice.Status, nullIfEmpty(invoice.Notes),
		invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice number already exists: %w", err)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateItem persists one invoice line.
func (r *InvoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	query := `
		INSERT INTO invoice_items (id, invoice_id, line_no, product_id, product_name, product_code,
		                           quantity, unit_price, available_stock)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.InvoiceID, item.LineNo, item.ProductID, item.ProductName, item.ProductCode,
		item.Quantity, item.UnitPrice, item.AvailableStock,
	)
	if err != nil {
		return fmt.Errorf("insert invoice item: %w", err)
	}
	return nil
}

// GetByID fetches one invoice header by ID.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	return r.fetch(id, "")
}

// GetByIDForUpdate fetches the header and locks its row for the length of
// the surrounding transaction, serializing concurrent settlement writers.
func (r *InvoiceRepo) GetByIDForUpdate(id string) (*entity.Invoice, error) {
	return r.fetch(id, " FOR UPDATE")
}

func (r *InvoiceRepo) fetch(id, lock string) (*entity.Invoice, error) {
	query := `
		SELECT id, customer_id, number, date, due_date, tax_percent, discount_amount,
		       subtotal, tax_amount, total, amount_paid, status, COALESCE(notes, ''), created_at, updated_at
		FROM invoices WHERE id = $1` + lock
	var inv entity.Invoice
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&inv.ID, &inv.CustomerID, &inv.Number, &inv.Date, &inv.DueDate,
		&inv.TaxPercent, &inv.DiscountAmount, &inv.Subtotal, &inv.TaxAmount,
		&inv.Total, &inv.AmountPaid, &inv.Status, &inv.Notes, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// GetItemsByInvoiceID fetches the invoice lines in display order.
func (r *InvoiceRepo) GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error) {
	query := `
		SELECT id, invoice_id, line_no, product_id, product_name, product_code, quantity, unit_price, available_stock
		FROM invoice_items WHERE invoice_id = $1 ORDER BY line_no`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.LineNo, &it.ProductID, &it.ProductName, &it.ProductCode,
			&it.Quantity, &it.UnitPrice, &it.AvailableStock); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// UpdateSettlement persists the payment-derived fields after a payment or
// mark-as-paid action.
func (r *InvoiceRepo) UpdateSettlement(invoice *entity.Invoice) error {
	query := `
		UPDATE invoices SET amount_paid = $2, status = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.AmountPaid, invoice.Status, invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice settlement: %w", err)
	}
	return nil
}
