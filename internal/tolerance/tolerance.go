// Package tolerance accepts or rejects a materialized spend against a
// tolerance window, reporting the observed residual.
package tolerance

import (
	"github.com/mExOms/pathfinder/internal/decimalx"
	"github.com/mExOms/pathfinder/internal/money"
)

// Scale is the canonical residual scale.
const Scale = decimalx.CanonicalScale

// Window bounds the tolerated shortfall (Min) and overshoot (Max),
// both in [0, 1).
type Window struct {
	Min decimalx.Decimal
	Max decimalx.Decimal
}

// Result carries the residual magnitude of an accepted evaluation.
type Result struct {
	Residual decimalx.Decimal
}

// Evaluate compares actual against requested spend and reports whether
// it falls within window. ok=false means rejected, not an error.
func Evaluate(requested, actual money.Money, window Window) (Result, bool, error) {
	residual, err := residualOf(requested, actual)
	if err != nil {
		return Result{}, false, err
	}

	cmp := actual.Cmp(requested)
	switch {
	case cmp < 0 && residual.GreaterThan(window.Min):
		return Result{}, false, nil
	case cmp > 0 && residual.GreaterThan(window.Max):
		return Result{}, false, nil
	}
	return Result{Residual: residual}, true, nil
}

// residualOf computes |actual - requested| / requested at Scale,
// treating a zero requested amount as residual 0 when actual is also
// zero, else 1.
func residualOf(requested, actual money.Money) (decimalx.Decimal, error) {
	if requested.Amount().IsZero() {
		if actual.Amount().IsZero() {
			return decimalx.Zero(Scale), nil
		}
		return decimalx.FromInt(1, Scale), nil
	}
	diff, err := actual.Amount().Sub(requested.Amount(), Scale)
	if err != nil {
		return decimalx.Decimal{}, err
	}
	return diff.Abs().Div(requested.Amount().Abs(), Scale)
}
