package invoice

import (
	"fmt"
	"strings"

	"github.com/billforge/billforge-api/internal/domain"
	"github.com/billforge/billforge-api/internal/domain/entity"
)

// ViolationKind classifies a line-item validation failure.
type ViolationKind string

const (
	// EmptyOrZeroQuantity: the quantity is below 1 (0 is the transient
	// "field cleared" state while editing, still unsubmittable).
	EmptyOrZeroQuantity ViolationKind = "EMPTY_OR_ZERO_QUANTITY"
	// ExceedsStock: the quantity is above the stock snapshot taken when
	// the product was added.
	ExceedsStock ViolationKind = "EXCEEDS_STOCK"
)

// Violation describes one invalid line item. Available is only meaningful
// for ExceedsStock.
type Violation struct {
	Index       int
	ProductName string
	Kind        ViolationKind
	Available   int64
}

// Message renders the actionable, user-facing text for the violation.
func (v Violation) Message() string {
	switch v.Kind {
	case ExceedsStock:
		return fmt.Sprintf("%q: quantity exceeds available stock (%d left)", v.ProductName, v.Available)
	default:
		return fmt.Sprintf("%q: quantity must be at least 1", v.ProductName)
	}
}

// ValidateItems checks every proposed line item's quantity against its
// stock snapshot. It returns nil when every item satisfies
// 1 <= quantity <= availableStock. Pure: no inventory service is consulted;
// the persistence layer re-validates authoritatively on submit.
func ValidateItems(items []entity.InvoiceItem) []Violation {
	var out []Violation
	for i, it := range items {
		switch {
		case it.Quantity < 1:
			out = append(out, Violation{Index: i, ProductName: it.ProductName, Kind: EmptyOrZeroQuantity})
		case it.Quantity > it.AvailableStock:
			out = append(out, Violation{Index: i, ProductName: it.ProductName, Kind: ExceedsStock, Available: it.AvailableStock})
		}
	}
	return out
}

// ValidationError aggregates everything wrong with a draft at submission
// time. Submission is all-or-nothing: any violation blocks the whole
// invoice, no partial commit.
type ValidationError struct {
	MissingCustomer bool
	EmptyItems      bool
	Violations      []Violation
}

func (e *ValidationError) Error() string {
	var parts []string
	if e.MissingCustomer {
		parts = append(parts, "customer is required")
	}
	if e.EmptyItems {
		parts = append(parts, "at least one line item is required")
	}
	for _, v := range e.Violations {
		parts = append(parts, v.Message())
	}
	return "invoice validation failed: " + strings.Join(parts, "; ")
}

// Unwrap lets callers match with errors.Is(err, domain.ErrInvalidInput).
func (e *ValidationError) Unwrap() error { return domain.ErrInvalidInput }

// Messages returns one actionable message per violated rule.
func (e *ValidationError) Messages() []string {
	var out []string
	if e.MissingCustomer {
		out = append(out, "customer is required")
	}
	if e.EmptyItems {
		out = append(out, "at least one line item is required")
	}
	for _, v := range e.Violations {
		out = append(out, v.Message())
	}
	return out
}

// ValidateDraft runs the full submission gate: customer present, at least
// one item, and every item within stock. Returns nil when submittable.
func ValidateDraft(d Draft) error {
	ve := &ValidationError{
		MissingCustomer: strings.TrimSpace(d.CustomerID) == "",
		EmptyItems:      len(d.Items) == 0,
		Violations:      ValidateItems(d.Items),
	}
	if ve.MissingCustomer || ve.EmptyItems || len(ve.Violations) > 0 {
		return ve
	}
	return nil
}
