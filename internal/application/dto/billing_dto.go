package dto

import "github.com/shopspring/decimal"

// CreateCustomerRequest body for POST /api/customers.
type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// CustomerResponse customer in responses.
type CustomerResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// CreateInvoiceRequest body for POST /api/invoices.
type CreateInvoiceRequest struct {
	CustomerID     string               `json:"customer_id"`
	Number         string               `json:"number,omitempty"` // optional; generated when empty
	Items          []InvoiceItemRequest `json:"items"`
	TaxPercent     int64                `json:"tax_percent"`
	DiscountAmount decimal.Decimal      `json:"discount_amount"`
	AmountPaid     decimal.Decimal      `json:"amount_paid"`
	DueDate        string               `json:"due_date,omitempty"` // YYYY-MM-DD; defaults to today
	Notes          string               `json:"notes,omitempty"`
}

// InvoiceItemRequest one invoice line (product and quantity; unit price is
// snapshotted from the catalog server-side).
type InvoiceItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// InvoiceResponse invoice with items for GET /api/invoices/:id.
type InvoiceResponse struct {
	ID             string                `json:"id"`
	CustomerID     string                `json:"customer_id"`
	CustomerName   string                `json:"customer_name,omitempty"`
	Number         string                `json:"number"`
	Date           string                `json:"date"`
	DueDate        string                `json:"due_date"`
	TaxPercent     int64                 `json:"tax_percent"`
	DiscountAmount decimal.Decimal       `json:"discount_amount"`
	Subtotal       decimal.Decimal       `json:"subtotal"`
	TaxAmount      decimal.Decimal       `json:"tax_amount"`
	Total          decimal.Decimal       `json:"total"`
	AmountPaid     decimal.Decimal       `json:"amount_paid"`
	AmountDue      decimal.Decimal       `json:"amount_due"`
	Status         string                `json:"status"`         // stored settlement status
	DisplayStatus  string                `json:"display_status"` // Overdue-aware presentation label
	Notes          string                `json:"notes,omitempty"`
	Items          []InvoiceItemResponse `json:"items"`
	Payments       []PaymentResponse     `json:"payments,omitempty"`
}

// InvoiceItemResponse one line in the response.
type InvoiceItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductCode string          `json:"product_code"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// RecordPaymentRequest body for POST /api/invoices/:id/payments.
type RecordPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	ReferenceNo string          `json:"reference_no,omitempty"`
}

// PaymentResponse one recorded payment.
type PaymentResponse struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	ReferenceNo string          `json:"reference_no,omitempty"`
	PaidAt      string          `json:"paid_at"`
}
