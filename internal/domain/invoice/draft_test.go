package invoice_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billforge/billforge-api/internal/domain/entity"
	"github.com/billforge/billforge-api/internal/domain/invoice"
)

func catalogProduct(id string, price float64, stock int64) entity.Product {
	return entity.Product{
		ID:    id,
		Code:  "SKU-" + id,
		Name:  "Product " + id,
		Price: decimal.NewFromFloat(price),
		Stock: stock,
	}
}

func TestReduce_AddItemSnapshotsCatalog(t *testing.T) {
	d := invoice.NewDraft(time.Now())

	d = invoice.Reduce(d, invoice.AddItem{Product: catalogProduct("p1", 1200, 7)})

	require.Len(t, d.Items, 1)
	it := d.Items[0]
	assert.Equal(t, "p1", it.ProductID)
	assert.Equal(t, "SKU-p1", it.ProductCode)
	assert.Equal(t, int64(1), it.Quantity)
	assert.Equal(t, int64(7), it.AvailableStock)
	assert.True(t, it.UnitPrice.Equal(decimal.NewFromInt(1200)))
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	d0 := invoice.NewDraft(time.Now())
	d0 = invoice.Reduce(d0, invoice.AddItem{Product: catalogProduct("p1", 100, 5)})

	d1 := invoice.Reduce(d0, invoice.SetQuantity{Index: 0, Quantity: 4})

	assert.Equal(t, int64(1), d0.Items[0].Quantity, "prior state must stay intact")
	assert.Equal(t, int64(4), d1.Items[0].Quantity)
}

func TestReduce_RemoveItem(t *testing.T) {
	d := invoice.NewDraft(time.Now())
	d = invoice.Reduce(d, invoice.AddItem{Product: catalogProduct("p1", 100, 5)})
	d = invoice.Reduce(d, invoice.AddItem{Product: catalogProduct("p2", 200, 5)})

	d = invoice.Reduce(d, invoice.RemoveItem{Index: 0})

	require.Len(t, d.Items, 1)
	assert.Equal(t, "p2", d.Items[0].ProductID)

	// out-of-range indices are ignored
	d = invoice.Reduce(d, invoice.RemoveItem{Index: 5})
	assert.Len(t, d.Items, 1)
}

func TestReduce_QuantityFloorsAtZero(t *testing.T) {
	d := invoice.NewDraft(time.Now())
	d = invoice.Reduce(d, invoice.AddItem{Product: catalogProduct("p1", 100, 5)})

	d = invoice.Reduce(d, invoice.SetQuantity{Index: 0, Quantity: -3})

	assert.Equal(t, int64(0), d.Items[0].Quantity)
}

// Totals are derived, never stored: a quantity edit is immediately visible.
func TestDraft_TotalsAreDerived(t *testing.T) {
	d := invoice.NewDraft(time.Now())
	d = invoice.Reduce(d, invoice.AddItem{Product: catalogProduct("p1", 1200, 5)})
	d = invoice.Reduce(d, invoice.AddItem{Product: catalogProduct("p2", 300, 9)})
	d = invoice.Reduce(d, invoice.SetQuantity{Index: 1, Quantity: 3})
	d = invoice.Reduce(d, invoice.SetTaxPercent{Value: invoice.PercentOf(18)})
	d = invoice.Reduce(d, invoice.SetDiscount{Value: invoice.AmountOf(decimal.NewFromInt(100))})

	totals := d.Totals()

	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(2100)))
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(2378)))
}

// 0 <= amountPaid <= total after every action, including edits that shrink
// the total underneath an already-entered payment.
func TestReduce_AmountPaidInvariant(t *testing.T) {
	d := invoice.NewDraft(time.Now())
	d = invoice.Reduce(d, invoice.AddItem{Product: catalogProduct("p1", 1000, 5)})
	d = invoice.Reduce(d, invoice.SetAmountPaid{Value: invoice.AmountOf(decimal.NewFromInt(1000))})

	require.True(t, d.AmountPaid.OrZero().Equal(decimal.NewFromInt(1000)))

	// removing the only item drops total to 0; paid must follow
	d = invoice.Reduce(d, invoice.RemoveItem{Index: 0})
	assert.True(t, d.AmountPaid.OrZero().IsZero())
}

func TestReduce_AmountPaidClampedAndRounded(t *testing.T) {
	d := invoice.NewDraft(time.Now())
	d = invoice.Reduce(d, invoice.AddItem{Product: catalogProduct("p1", 100, 5)})

	d = invoice.Reduce(d, invoice.SetAmountPaid{Value: invoice.AmountOf(decimal.RequireFromString("55.555"))})
	assert.True(t, d.AmountPaid.OrZero().Equal(decimal.RequireFromString("55.56")))

	d = invoice.Reduce(d, invoice.SetAmountPaid{Value: invoice.AmountOf(decimal.NewFromInt(500))})
	assert.True(t, d.AmountPaid.OrZero().Equal(decimal.NewFromInt(100)), "clamped to total")
}

// Unset and zero are distinguishable until Normalize resolves the blur.
func TestNormalize_ResolvesUnsetFields(t *testing.T) {
	d := invoice.NewDraft(time.Now())
	d = invoice.Reduce(d, invoice.AddItem{Product: catalogProduct("p1", 100, 5)})

	assert.False(t, d.TaxPercent.IsSet())
	assert.False(t, d.DiscountAmount.IsSet())

	d = invoice.Normalize(d)

	assert.True(t, d.TaxPercent.IsSet())
	assert.Equal(t, int64(0), d.TaxPercent.OrZero())
	assert.True(t, d.DiscountAmount.IsSet())
	assert.True(t, d.DiscountAmount.OrZero().IsZero())
}

func TestNewDraft_DueDateDefaultsToToday(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	d := invoice.NewDraft(now)
	assert.Equal(t, now, d.DueDate)
}
