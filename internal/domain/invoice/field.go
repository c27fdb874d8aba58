package invoice

import "github.com/shopspring/decimal"

// Amount is a monetary input field that distinguishes "being edited /
// cleared" from "resolved to zero". A cleared numeric input is Unset, not
// zero; blur resolves Unset to zero.
type Amount struct {
	set   bool
	value decimal.Decimal
}

// UnsetAmount returns the cleared state.
func UnsetAmount() Amount { return Amount{} }

// AmountOf wraps a concrete value.
func AmountOf(v decimal.Decimal) Amount { return Amount{set: true, value: v} }

// IsSet reports whether the field holds a concrete value.
func (a Amount) IsSet() bool { return a.set }

// OrZero resolves the field: the value when set, zero otherwise.
func (a Amount) OrZero() decimal.Decimal {
	if !a.set {
		return decimal.Zero
	}
	return a.value
}

// Percent is the integer analogue of Amount, used for the tax rate input.
type Percent struct {
	set   bool
	value int64
}

// UnsetPercent returns the cleared state.
func UnsetPercent() Percent { return Percent{} }

// PercentOf wraps a concrete value.
func PercentOf(v int64) Percent { return Percent{set: true, value: v} }

// IsSet reports whether the field holds a concrete value.
func (p Percent) IsSet() bool { return p.set }

// OrZero resolves the field: the value when set, zero otherwise. Negative
// values also resolve to zero, matching the invalid-input-on-blur rule.
func (p Percent) OrZero() int64 {
	if !p.set || p.value < 0 {
		return 0
	}
	return p.value
}
