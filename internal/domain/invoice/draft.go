package invoice

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/billforge/billforge-api/internal/domain/entity"
)

// Draft is the mutable-looking but value-semantics invoice editing state.
// Totals are never stored on it; they are derived through Totals() so the
// figures cannot drift from the inputs.
type Draft struct {
	CustomerID     string
	Items          []entity.InvoiceItem
	TaxPercent     Percent
	DiscountAmount Amount
	AmountPaid     Amount
	DueDate        time.Time
	Notes          string
}

// NewDraft starts an empty draft due today.
func NewDraft(now time.Time) Draft {
	return Draft{DueDate: now}
}

// Action is one editing step applied through Reduce.
type Action interface{ isAction() }

// AddItem appends a line for the picked product, snapshotting its price,
// code and available stock. Quantity starts at 1.
type AddItem struct{ Product entity.Product }

// RemoveItem drops the line at Index; out-of-range indices are ignored.
type RemoveItem struct{ Index int }

// SetQuantity replaces the quantity of the line at Index. Zero is the
// transient "field cleared" state and stays invalid for submission.
type SetQuantity struct {
	Index    int
	Quantity int64
}

// SetCustomer points the draft at a customer.
type SetCustomer struct{ CustomerID string }

// SetTaxPercent, SetDiscount, SetAmountPaid replace the respective inputs.
type SetTaxPercent struct{ Value Percent }
type SetDiscount struct{ Value Amount }
type SetAmountPaid struct{ Value Amount }

// SetDueDate replaces the due date.
type SetDueDate struct{ Date time.Time }

// SetNotes replaces the free-text notes.
type SetNotes struct{ Text string }

func (AddItem) isAction()       {}
func (RemoveItem) isAction()    {}
func (SetQuantity) isAction()   {}
func (SetCustomer) isAction()   {}
func (SetTaxPercent) isAction() {}
func (SetDiscount) isAction()   {}
func (SetAmountPaid) isAction() {}
func (SetDueDate) isAction()    {}
func (SetNotes) isAction()      {}

// Reduce applies one action and returns the next draft state. The input
// draft is never mutated; the items slice is copied before any change.
// AmountPaid is clamped to [0, total] and rounded to 2 decimals on every
// action that can affect it, so the invariant 0 <= amountPaid <= total
// holds after every step.
func Reduce(d Draft, a Action) Draft {
	switch act := a.(type) {
	case AddItem:
		items := copyItems(d.Items)
		items = append(items, entity.InvoiceItem{
			ProductID:      act.Product.ID,
			ProductName:    act.Product.Name,
			ProductCode:    act.Product.Code,
			UnitPrice:      act.Product.Price,
			AvailableStock: act.Product.Stock,
			Quantity:       1,
		})
		d.Items = items
	case RemoveItem:
		if act.Index < 0 || act.Index >= len(d.Items) {
			return d
		}
		items := copyItems(d.Items)
		d.Items = append(items[:act.Index], items[act.Index+1:]...)
	case SetQuantity:
		if act.Index < 0 || act.Index >= len(d.Items) {
			return d
		}
		items := copyItems(d.Items)
		q := act.Quantity
		if q < 0 {
			q = 0
		}
		items[act.Index].Quantity = q
		d.Items = items
	case SetCustomer:
		d.CustomerID = act.CustomerID
	case SetTaxPercent:
		d.TaxPercent = act.Value
	case SetDiscount:
		d.DiscountAmount = act.Value
	case SetAmountPaid:
		d.AmountPaid = act.Value
	case SetDueDate:
		d.DueDate = act.Date
	case SetNotes:
		d.Notes = act.Text
	}
	return normalizePaid(d)
}

// Normalize resolves transient input states the way a blur event would:
// unset tax and discount become zero, and the paid amount is re-clamped
// against the (possibly changed) total.
func Normalize(d Draft) Draft {
	d.TaxPercent = PercentOf(d.TaxPercent.OrZero())
	disc := d.DiscountAmount.OrZero()
	if disc.IsNegative() {
		disc = decimal.Zero
	}
	d.DiscountAmount = AmountOf(disc)
	return normalizePaid(d)
}

// Totals derives the current figures from the draft inputs.
func (d Draft) Totals() Totals {
	return ComputeTotals(d.Items, d.TaxPercent.OrZero(), d.DiscountAmount.OrZero(), d.AmountPaid.OrZero())
}

func normalizePaid(d Draft) Draft {
	if !d.AmountPaid.IsSet() {
		return d
	}
	t := ComputeTotals(d.Items, d.TaxPercent.OrZero(), d.DiscountAmount.OrZero(), decimal.Zero)
	d.AmountPaid = AmountOf(ClampAmountPaid(d.AmountPaid.OrZero(), t.Total))
	return d
}

func copyItems(items []entity.InvoiceItem) []entity.InvoiceItem {
	out := make([]entity.InvoiceItem, len(items))
	copy(out, items)
	return out
}
