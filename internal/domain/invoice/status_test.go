package invoice_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billforge/billforge-api/internal/domain"
	"github.com/billforge/billforge-api/internal/domain/entity"
	"github.com/billforge/billforge-api/internal/domain/invoice"
)

func TestResolveStatus_Initial(t *testing.T) {
	total := decimal.NewFromInt(2378)

	assert.Equal(t, entity.StatusPending, invoice.ResolveStatus(total, decimal.Zero))
	assert.Equal(t, entity.StatusPending, invoice.ResolveStatus(total, decimal.NewFromInt(2000)))
	assert.Equal(t, entity.StatusPaid, invoice.ResolveStatus(total, total))
}

func TestDisplayStatus_OverdueIsPresentationOnly(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	pastDue := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	futureDue := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	sameDay := time.Date(2026, 3, 15, 23, 0, 0, 0, time.UTC)

	assert.Equal(t, entity.StatusOverdue, invoice.DisplayStatus(entity.StatusPending, pastDue, now))
	assert.Equal(t, entity.StatusPending, invoice.DisplayStatus(entity.StatusPending, futureDue, now))
	// due today is not yet overdue
	assert.Equal(t, entity.StatusPending, invoice.DisplayStatus(entity.StatusPending, sameDay, now))
	// Paid is terminal regardless of the calendar
	assert.Equal(t, entity.StatusPaid, invoice.DisplayStatus(entity.StatusPaid, pastDue, now))
}

func TestApplyPayment_Accumulates(t *testing.T) {
	total := decimal.NewFromInt(500)

	paid, err := invoice.ApplyPayment(total, decimal.Zero, decimal.NewFromInt(200))
	require.NoError(t, err)
	assert.True(t, paid.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, entity.StatusPending, invoice.ResolveStatus(total, paid))

	paid, err = invoice.ApplyPayment(total, paid, decimal.NewFromInt(300))
	require.NoError(t, err)
	assert.True(t, paid.Equal(total))
	assert.Equal(t, entity.StatusPaid, invoice.ResolveStatus(total, paid))
}

func TestApplyPayment_RejectsOverpayment(t *testing.T) {
	total := decimal.NewFromInt(500)

	_, err := invoice.ApplyPayment(total, decimal.NewFromInt(400), decimal.NewFromInt(101))
	assert.ErrorIs(t, err, domain.ErrOverpayment)
}

func TestApplyPayment_RejectsNonPositive(t *testing.T) {
	total := decimal.NewFromInt(500)

	_, err := invoice.ApplyPayment(total, decimal.Zero, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = invoice.ApplyPayment(total, decimal.Zero, decimal.NewFromInt(-10))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyPayment_SettledIsTerminal(t *testing.T) {
	total := decimal.NewFromInt(500)

	_, err := invoice.ApplyPayment(total, total, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrAlreadyPaid)
}

// Marking as paid yields status Paid and amountDue 0 from any valid prior
// state, through the same resolver as incremental payments.
func TestMarkPaid(t *testing.T) {
	for _, total := range []string{"0.01", "500", "2378", "99999.99"} {
		paid, status := invoice.MarkPaid(decimal.RequireFromString(total))

		assert.Equal(t, entity.StatusPaid, status, "total %s", total)
		assert.True(t, paid.Equal(decimal.RequireFromString(total)), "total %s", total)
	}
}

func TestMarkPaid_NegativeTotal(t *testing.T) {
	paid, status := invoice.MarkPaid(decimal.NewFromInt(-20))

	assert.True(t, paid.IsZero())
	assert.Equal(t, entity.StatusPaid, status)
}
