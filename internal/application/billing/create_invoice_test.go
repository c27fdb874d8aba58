package billing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billforge/billforge-api/internal/application/billing"
	"github.com/billforge/billforge-api/internal/application/dto"
	"github.com/billforge/billforge-api/internal/domain/entity"
	"github.com/billforge/billforge-api/internal/domain/invoice"
)

func newCreateUC(store *memStore) *billing.CreateInvoiceUseCase {
	return billing.NewCreateInvoiceUseCase(
		&memTxRunner{store},
		&memCustomerRepo{store},
		&memProductRepo{store},
		&memInvoiceRepo{store},
		&memPaymentRepo{store},
		testLogger(),
	)
}

func seedCatalog(s *memStore) {
	s.customers["cust-1"] = &entity.Customer{ID: "cust-1", Name: "Sharma Traders"}
	for _, p := range []*entity.Product{
		{ID: "p-a", Code: "A-1", Name: "Bolt", Price: decimal.NewFromInt(100), Stock: 50},
		{ID: "p-b", Code: "B-1", Name: "Nut", Price: decimal.NewFromInt(200), Stock: 50},
		{ID: "p-c", Code: "C-1", Name: "Washer", Price: decimal.NewFromInt(300), Stock: 50},
	} {
		s.products[p.ID] = p
	}
}

func TestCreateInvoice_LineNumbersFollowSubmissionOrder(t *testing.T) {
	store := newMemStore()
	seedCatalog(store)
	uc := newCreateUC(store)

	resp, err := uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		CustomerID: "cust-1",
		Items: []dto.InvoiceItemRequest{
			{ProductID: "p-c", Quantity: 1},
			{ProductID: "p-a", Quantity: 2},
			{ProductID: "p-b", Quantity: 3},
		},
	})
	require.NoError(t, err)

	// Stored lines carry 1-based positions matching the submitted order,
	// so any reader sorting on them reproduces the draft exactly.
	require.Len(t, store.items, 3)
	for i, wantProduct := range []string{"p-c", "p-a", "p-b"} {
		assert.Equal(t, int64(i+1), store.items[i].LineNo)
		assert.Equal(t, wantProduct, store.items[i].ProductID)
	}

	// The response preserves the same order.
	require.Len(t, resp.Items, 3)
	assert.Equal(t, "Washer", resp.Items[0].ProductName)
	assert.Equal(t, "Bolt", resp.Items[1].ProductName)
	assert.Equal(t, "Nut", resp.Items[2].ProductName)
}

func TestCreateInvoice_EmptyCustomerShortCircuits(t *testing.T) {
	store := newMemStore()
	seedCatalog(store)
	uc := newCreateUC(store)

	_, err := uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		CustomerID: "",
		Items:      []dto.InvoiceItemRequest{{ProductID: "p-a", Quantity: 1}},
	})

	var vErr *invoice.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.True(t, vErr.MissingCustomer)
	assert.Contains(t, vErr.Messages(), "customer is required")
	// No lookup is attempted for a blank ID; the message never depends on
	// how the store treats an empty key.
	assert.Empty(t, store.customerCalls)
	assert.Empty(t, store.invoices)
}

func TestGetInvoice_CustomerLookupFailureDegradesName(t *testing.T) {
	store := newMemStore()
	now := time.Now()
	store.invoices["inv-1"] = &entity.Invoice{
		ID:         "inv-1",
		CustomerID: "cust-1",
		Number:     "INV-1001",
		Date:       now,
		DueDate:    now.AddDate(0, 0, 15),
		Total:      decimal.NewFromInt(100),
		Status:     entity.StatusPending,
	}
	store.customerErr = errors.New("connection reset")
	uc := newCreateUC(store)

	resp, err := uc.GetInvoice(context.Background(), "inv-1")
	require.NoError(t, err, "a display-name lookup failure must not fail the detail")
	assert.Empty(t, resp.CustomerName)
	assert.Equal(t, "INV-1001", resp.Number)
}
