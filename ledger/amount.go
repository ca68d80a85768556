package ledger

import (
	"github.com/shopspring/decimal"
)

// Max is the largest magnitude an Amount can represent. shopspring/decimal
// itself is arbitrary precision, so without an explicit ceiling arithmetic
// would never overflow; Max gives overflow an observable, checked boundary
// (2^96 - 1, unscaled).
var Max = decimal.RequireFromString("79228162514264337593543950335")

// Zero is the additive identity Amount. It carries one decimal place so
// untouched balance columns render as "0.0" rather than "0" on output.
var Zero = Amount{d: decimal.RequireFromString("0.0")}

// Amount is an exact decimal value with checked arithmetic. The zero value
// is not meaningful; use Zero or a constructor.
type Amount struct {
	d decimal.Decimal
}

// NewAmount wraps a decimal.Decimal as an Amount.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{d: d}
}

// ParseAmount parses a decimal string (as produced by the CSV input format)
// into an Amount.
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, err
	}
	return Amount{d: d}, nil
}

// IsNegative reports whether the amount is strictly less than zero.
func (a Amount) IsNegative() bool {
	return a.d.Sign() < 0
}

// IsZero reports whether the amount is exactly zero.
func (a Amount) IsZero() bool {
	return a.d.Sign() == 0
}

// GreaterThan reports whether a > other.
func (a Amount) GreaterThan(other Amount) bool {
	return a.d.Cmp(other.d) > 0
}

// Equal reports whether a == other.
func (a Amount) Equal(other Amount) bool {
	return a.d.Equal(other.d)
}

// CheckedAdd returns a+other, and false if the magnitude of the result would
// exceed Max.
func (a Amount) CheckedAdd(other Amount) (Amount, bool) {
	sum := a.d.Add(other.d)
	if sum.Abs().Cmp(Max) > 0 {
		return Amount{}, false
	}
	return Amount{d: sum}, true
}

// CheckedSub returns a-other, and false if the magnitude of the result would
// exceed Max (symmetric with CheckedAdd; in practice this domain never
// subtracts into overflow, only into negative territory, which callers
// guard against separately).
func (a Amount) CheckedSub(other Amount) (Amount, bool) {
	diff := a.d.Sub(other.d)
	if diff.Abs().Cmp(Max) > 0 {
		return Amount{}, false
	}
	return Amount{d: diff}, true
}

// SaturatingSub returns a-other, clamped to zero if other exceeds a. Callers
// use this only where a prior comparison has already proven a >= other, so
// the clamp is never actually exercised; it exists so the operation can
// never itself produce a negative Amount.
func (a Amount) SaturatingSub(other Amount) Amount {
	diff := a.d.Sub(other.d)
	if diff.Sign() < 0 {
		return Zero
	}
	return Amount{d: diff}
}

// String renders the amount with a decimal point and no scientific
// notation, preserving the mathematical value on round-trip through CSV.
func (a Amount) String() string {
	if a.d.Equal(a.d.Truncate(0)) {
		return a.d.StringFixed(1)
	}
	return a.d.String()
}
