// Package decimalx implements an arbitrary-precision, scale-disciplined
// Decimal value object, built directly on shopspring/decimal's exact
// rational arithmetic for monetary values.
//
// Every operation that can change scale takes an explicit result scale and
// rounds half-up (shopspring calls this "round half away from zero"; for
// the non-negative monetary domain this module targets, the two coincide).
package decimalx

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mExOms/pathfinder/internal/perr"
)

// CanonicalScale is the fixed scale used for cost, product, and
// tolerance values throughout the search engine.
const CanonicalScale int32 = 18

// MaxScale is the precision ceiling; requesting a result scale beyond this
// is a precision error.
const MaxScale int32 = 30

var fixedPointPattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// Decimal is an exact value paired with the scale it is displayed at.
// Two Decimals with different scales can still compare equal in value;
// Scale only governs String() and the rounding target of WithScale.
type Decimal struct {
	v     decimal.Decimal
	scale int32
}

// Zero returns the additive identity at the given display scale.
func Zero(scale int32) Decimal {
	return Decimal{v: decimal.Zero, scale: scale}
}

// FromRaw wraps an already-computed shopspring value at the given scale.
// Callers in sibling packages (money, graph, search) use this to build
// Decimals from literals without re-parsing strings.
func FromRaw(v decimal.Decimal, scale int32) Decimal {
	return Decimal{v: v, scale: scale}
}

// FromInt builds an exact integer value at the given scale.
func FromInt(n int64, scale int32) Decimal {
	return Decimal{v: decimal.NewFromInt(n), scale: scale}
}

// Parse validates and parses a fixed-point string of the form
// `[-]d+[.d+]`. The scale is inferred from the number of fractional
// digits; trailing zeros are preserved in that inferred scale.
func Parse(s string) (Decimal, error) {
	if !fixedPointPattern.MatchString(s) {
		return Decimal{}, perr.Inputf("decimalx.Parse", "malformed fixed-point string %q", s)
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return Decimal{}, perr.Inputf("decimalx.Parse", "malformed fixed-point string %q: %v", s, err)
	}
	scale := int32(0)
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		scale = int32(len(s) - idx - 1)
	}
	return Decimal{v: v, scale: scale}, nil
}

// Raw exposes the underlying shopspring value for sibling packages that
// need to hand it to a third-party API surface (none currently do, but
// this keeps the abstraction from becoming a dead end).
func (d Decimal) Raw() decimal.Decimal { return d.v }

// Scale returns the display scale.
func (d Decimal) Scale() int32 { return d.scale }

// String renders the canonical `[-]d+\.d{scale}` form, trailing zeros
// preserved, no thousands separators, no scientific notation.
func (d Decimal) String() string {
	return d.v.StringFixed(d.scale)
}

// IsZero reports whether the value is exactly zero.
func (d Decimal) IsZero() bool { return d.v.IsZero() }

// IsNegative reports whether the value is strictly less than zero.
func (d Decimal) IsNegative() bool { return d.v.IsNegative() }

// IsPositive reports whether the value is strictly greater than zero.
func (d Decimal) IsPositive() bool { return d.v.IsPositive() }

// Sign returns -1, 0, or 1.
func (d Decimal) Sign() int { return d.v.Sign() }

// Cmp compares by numeric value, independent of display scale.
func (d Decimal) Cmp(o Decimal) int { return d.v.Cmp(o.v) }

// Equal reports exact numeric equality, independent of display scale.
func (d Decimal) Equal(o Decimal) bool { return d.v.Equal(o.v) }

// GreaterThan reports d > o.
func (d Decimal) GreaterThan(o Decimal) bool { return d.v.Cmp(o.v) > 0 }

// LessThan reports d < o.
func (d Decimal) LessThan(o Decimal) bool { return d.v.Cmp(o.v) < 0 }

// WithScale re-scales to s, rounding half-up. Value identity (the
// quantity the Decimal represents) is preserved exactly when s >= current
// scale; rounding only occurs when narrowing.
func (d Decimal) WithScale(s int32) Decimal {
	return Decimal{v: d.v.Round(s), scale: s}
}

// Abs returns the absolute value at the same scale.
func (d Decimal) Abs() Decimal { return Decimal{v: d.v.Abs(), scale: d.scale} }

// Neg returns the negation at the same scale.
func (d Decimal) Neg() Decimal { return Decimal{v: d.v.Neg(), scale: d.scale} }

func checkScale(op string, resultScale int32) error {
	if resultScale < 0 {
		return perr.Inputf(op, "result scale %d must be non-negative", resultScale)
	}
	if resultScale > MaxScale {
		return perr.Precisionf(op, "result scale %d exceeds precision ceiling %d", resultScale, MaxScale)
	}
	return nil
}

// Add sums d and o, rounding to resultScale half-up. Working scale is
// max(d.scale, o.scale, resultScale); since the underlying arithmetic
// is exact, this module rounds only once, at the end, which produces an
// identical result to rounding intermediate sums at the working scale
// first.
func (d Decimal) Add(o Decimal, resultScale int32) (Decimal, error) {
	if err := checkScale("decimalx.Add", resultScale); err != nil {
		return Decimal{}, err
	}
	return Decimal{v: d.v.Add(o.v).Round(resultScale), scale: resultScale}, nil
}

// Sub subtracts o from d, rounding to resultScale half-up.
func (d Decimal) Sub(o Decimal, resultScale int32) (Decimal, error) {
	if err := checkScale("decimalx.Sub", resultScale); err != nil {
		return Decimal{}, err
	}
	return Decimal{v: d.v.Sub(o.v).Round(resultScale), scale: resultScale}, nil
}

// Mul multiplies d by o, rounding to resultScale half-up.
func (d Decimal) Mul(o Decimal, resultScale int32) (Decimal, error) {
	if err := checkScale("decimalx.Mul", resultScale); err != nil {
		return Decimal{}, err
	}
	return Decimal{v: d.v.Mul(o.v).Round(resultScale), scale: resultScale}, nil
}

// Div divides d by o, rounding to resultScale half-up. Division by zero
// is a precision error.
func (d Decimal) Div(o Decimal, resultScale int32) (Decimal, error) {
	if err := checkScale("decimalx.Div", resultScale); err != nil {
		return Decimal{}, err
	}
	if o.v.IsZero() {
		return Decimal{}, perr.Precision("decimalx.Div", "division by zero")
	}
	return Decimal{v: d.v.DivRound(o.v, resultScale), scale: resultScale}, nil
}

// MustDiv panics on error; reserved for constants derived from literals
// that are known never to divide by zero (e.g. rate inversion in tests).
func (d Decimal) MustDiv(o Decimal, resultScale int32) Decimal {
	r, err := d.Div(o, resultScale)
	if err != nil {
		panic(err)
	}
	return r
}

// MustParse parses s, panicking on error; reserved for package-level
// constants built from literals known to be well-formed.
func MustParse(s string) Decimal {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}
