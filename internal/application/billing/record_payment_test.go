package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billforge/billforge-api/internal/application/billing"
	"github.com/billforge/billforge-api/internal/application/dto"
	"github.com/billforge/billforge-api/internal/domain"
	"github.com/billforge/billforge-api/internal/domain/entity"
	"github.com/billforge/billforge-api/internal/domain/repository"
	"github.com/billforge/billforge-api/pkg/logger"
)

// ── in-memory fakes ───────────────────────────────────────────────────────────

// memStore backs all fake repositories in this package's tests. Reads hand
// out copies so a caller holding an old pointer never sees later writes,
// mirroring how a row read maps to a detached struct.
type memStore struct {
	customers     map[string]*entity.Customer
	customerErr   error
	customerCalls []string
	products      map[string]*entity.Product
	invoices      map[string]*entity.Invoice
	items         []*entity.InvoiceItem
	payments      []*entity.Payment
	lockedReads   int
	unlockedReads int
}

func newMemStore() *memStore {
	return &memStore{
		customers: map[string]*entity.Customer{},
		products:  map[string]*entity.Product{},
		invoices:  map[string]*entity.Invoice{},
	}
}

type memCustomerRepo struct{ s *memStore }

func (r *memCustomerRepo) Create(c *entity.Customer) error { r.s.customers[c.ID] = c; return nil }
func (r *memCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	r.s.customerCalls = append(r.s.customerCalls, id)
	if r.s.customerErr != nil {
		return nil, r.s.customerErr
	}
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}
func (r *memCustomerRepo) List() ([]*entity.Customer, error) { return nil, nil }
func (r *memCustomerRepo) Update(*entity.Customer) error     { return nil }
func (r *memCustomerRepo) Delete(string) error               { return nil }

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (r *memProductRepo) List() ([]*entity.Product, error) { return nil, nil }
func (r *memProductRepo) Update(*entity.Product) error     { return nil }
func (r *memProductRepo) DecrementStock(productID string, qty int64) error {
	p, ok := r.s.products[productID]
	if !ok || p.Stock < qty {
		return domain.ErrInsufficientStock
	}
	p.Stock -= qty
	return nil
}

type memInvoiceRepo struct{ s *memStore }

func (r *memInvoiceRepo) Create(inv *entity.Invoice) error {
	cp := *inv
	r.s.invoices[inv.ID] = &cp
	return nil
}
func (r *memInvoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	cp := *item
	r.s.items = append(r.s.items, &cp)
	return nil
}
func (r *memInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	r.s.unlockedReads++
	return r.read(id)
}
func (r *memInvoiceRepo) GetByIDForUpdate(id string) (*entity.Invoice, error) {
	r.s.lockedReads++
	return r.read(id)
}
func (r *memInvoiceRepo) read(id string) (*entity.Invoice, error) {
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}
func (r *memInvoiceRepo) GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error) {
	var out []*entity.InvoiceItem
	for _, it := range r.s.items {
		if it.InvoiceID == invoiceID {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (r *memInvoiceRepo) UpdateSettlement(inv *entity.Invoice) error {
	stored, ok := r.s.invoices[inv.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.AmountPaid = inv.AmountPaid
	stored.Status = inv.Status
	stored.UpdatedAt = inv.UpdatedAt
	return nil
}

type memPaymentRepo struct{ s *memStore }

func (r *memPaymentRepo) Create(p *entity.Payment) error {
	cp := *p
	r.s.payments = append(r.s.payments, &cp)
	return nil
}
func (r *memPaymentRepo) ListByInvoiceID(invoiceID string) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.s.payments {
		if p.InvoiceID == invoiceID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memTxRunner struct{ s *memStore }

func (r *memTxRunner) RunBilling(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
) error) error {
	return fn(&memProductRepo{r.s}, &memInvoiceRepo{r.s}, &memPaymentRepo{r.s})
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func seedInvoice(s *memStore, total, paid int64) *entity.Invoice {
	now := time.Now()
	inv := &entity.Invoice{
		ID:         "inv-1",
		CustomerID: "cust-1",
		Number:     "INV-1001",
		Date:       now,
		DueDate:    now.AddDate(0, 0, 15),
		Total:      decimal.NewFromInt(total),
		Subtotal:   decimal.NewFromInt(total),
		AmountPaid: decimal.NewFromInt(paid),
		Status:     entity.StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.invoices[inv.ID] = inv
	return inv
}

// ── tests ─────────────────────────────────────────────────────────────────────

func TestRecordPayment_AppliesAgainstCommittedAmount(t *testing.T) {
	store := newMemStore()
	seedInvoice(store, 500, 0)
	uc := billing.NewRecordPaymentUseCase(&memTxRunner{store}, testLogger())

	// First payment of 300 lands.
	resp, err := uc.RecordPayment(context.Background(), "inv-1", dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(300), Method: "upi",
	})
	require.NoError(t, err)
	assert.True(t, resp.Amount.Equal(decimal.NewFromInt(300)))

	// A second 300 is judged against the settled figure, not the one read
	// before the first payment committed: due is now 200, so it is rejected
	// and no payment row is written.
	_, err = uc.RecordPayment(context.Background(), "inv-1", dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(300),
	})
	require.ErrorIs(t, err, domain.ErrOverpayment)

	inv := store.invoices["inv-1"]
	assert.True(t, inv.AmountPaid.Equal(decimal.NewFromInt(300)), "amount_paid = %s", inv.AmountPaid)
	assert.Equal(t, entity.StatusPending, inv.Status)
	assert.Len(t, store.payments, 1, "rejected payment must not leave a row")

	// Every settlement read went through the locking read inside the
	// transaction; none through the plain one.
	assert.Equal(t, 2, store.lockedReads)
	assert.Zero(t, store.unlockedReads)

	// The exact remainder settles the invoice.
	_, err = uc.RecordPayment(context.Background(), "inv-1", dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(200),
	})
	require.NoError(t, err)
	inv = store.invoices["inv-1"]
	assert.Equal(t, entity.StatusPaid, inv.Status)
	assert.True(t, inv.AmountPaid.Equal(decimal.NewFromInt(500)))
	assert.Len(t, store.payments, 2)
}

func TestRecordPayment_UnknownInvoice(t *testing.T) {
	store := newMemStore()
	uc := billing.NewRecordPaymentUseCase(&memTxRunner{store}, testLogger())

	_, err := uc.RecordPayment(context.Background(), "missing", dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, store.payments)
}

func TestMarkPaid_ClosingPaymentUnderLock(t *testing.T) {
	store := newMemStore()
	seedInvoice(store, 500, 300)
	uc := billing.NewRecordPaymentUseCase(&memTxRunner{store}, testLogger())

	require.NoError(t, uc.MarkPaid(context.Background(), "inv-1"))

	inv := store.invoices["inv-1"]
	assert.Equal(t, entity.StatusPaid, inv.Status)
	assert.True(t, inv.AmountPaid.Equal(decimal.NewFromInt(500)))
	require.Len(t, store.payments, 1)
	assert.True(t, store.payments[0].Amount.Equal(decimal.NewFromInt(200)),
		"closing payment must cover exactly the remaining due")
	assert.Equal(t, 1, store.lockedReads)
	assert.Zero(t, store.unlockedReads)

	// Terminal: settling again is rejected and records nothing.
	err := uc.MarkPaid(context.Background(), "inv-1")
	assert.ErrorIs(t, err, domain.ErrAlreadyPaid)
	assert.Len(t, store.payments, 1)
}
