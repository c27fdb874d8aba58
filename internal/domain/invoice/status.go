package invoice

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/billforge/billforge-api/internal/domain"
	"github.com/billforge/billforge-api/internal/domain/entity"
)

// ResolveStatus derives the stored settlement status from the money
// figures: Paid once the rounded amount due reaches exactly zero, Pending
// otherwise. Overdue is never stored; it is a presentation-level label
// (see DisplayStatus). Paid is terminal for this core: refunds and
// reversals are out of scope.
func ResolveStatus(total, amountPaid decimal.Decimal) string {
	due := Round2(total.Sub(ClampAmountPaid(amountPaid, total)))
	if due.LessThanOrEqual(decimal.Zero) {
		return entity.StatusPaid
	}
	return entity.StatusPending
}

// DisplayStatus maps a stored status plus the due date to the label shown
// to the user. A Pending invoice whose due date's calendar day has passed
// presents as Overdue; the stored field is untouched, so the two can
// legitimately diverge and both stay reproducible.
func DisplayStatus(status string, dueDate, now time.Time) string {
	if status == entity.StatusPending && dayStart(dueDate).Before(dayStart(now)) {
		return entity.StatusOverdue
	}
	return status
}

// ApplyPayment returns the new cumulative paid amount after recording a
// payment. It rejects non-positive amounts and anything that would push
// amountPaid above total; the entry point must not rely on the resolver
// silently clamping a real payment away.
func ApplyPayment(total, amountPaid, payment decimal.Decimal) (decimal.Decimal, error) {
	if !payment.GreaterThan(decimal.Zero) {
		return amountPaid, domain.ErrInvalidInput
	}
	due := Round2(total.Sub(amountPaid))
	if due.LessThanOrEqual(decimal.Zero) {
		return amountPaid, domain.ErrAlreadyPaid
	}
	if Round2(payment).GreaterThan(due) {
		return amountPaid, domain.ErrOverpayment
	}
	return Round2(amountPaid.Add(payment)), nil
}

// MarkPaid settles the invoice deterministically: amountPaid becomes total,
// and the status is re-derived through the same ResolveStatus machine as
// incremental payments, not a special-cased override.
func MarkPaid(total decimal.Decimal) (amountPaid decimal.Decimal, status string) {
	paid := Round2(total)
	if paid.IsNegative() {
		paid = decimal.Zero
	}
	return paid, ResolveStatus(total, paid)
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
