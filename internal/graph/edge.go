package graph

import (
	"github.com/mExOms/pathfinder/internal/decimalx"
	"github.com/mExOms/pathfinder/internal/money"
)

// Capacity is an inclusive [Min, Max] range of Money at a fixed currency.
type Capacity struct {
	Min money.Money
	Max money.Money
}

// Edge wraps one order as a directed, immutable traversal from From to
// To. For Buy orders From=Base, To=Quote; for Sell orders From=Quote,
// To=Base. Capacity currency follows the direction actually spent: gross
// base for Buy, quote for Sell.
type Edge struct {
	From  money.Currency
	To    money.Currency
	Side  money.Side
	Order money.Order

	// baseRate is the per-edge conversion rate at CanonicalScale used by
	// the search engine's cost/product accounting: for Buy, the order's
	// rate adjusted to fold in a proportional fee estimate after
	// edge-level fee adjustments; for Sell, 1/rate. Concrete, exact fee
	// amounts are resolved later by the leg materializer; this value
	// never feeds a final plan amount.
	baseRate decimalx.Decimal

	BaseCapacity      Capacity
	QuoteCapacity     Capacity
	GrossBaseCapacity Capacity
	Segments          []EdgeSegment

	// Multiplier penalizes the effective rate in reusable top-K search.
	// 1 means unpenalized.
	Multiplier decimalx.Decimal
}

// EffectiveRate returns the per-edge conversion rate used by the search
// engine's cost/product accounting, with the penalty multiplier applied,
// rounded to scale.
func (e Edge) EffectiveRate(scale int32) (decimalx.Decimal, error) {
	return e.baseRate.Mul(e.Multiplier, scale)
}

// WithMultiplier returns a copy of e with a new penalty multiplier.
func (e Edge) WithMultiplier(m decimalx.Decimal) Edge {
	e.Multiplier = m
	return e
}

// FromCapacity is the capacity consumed entering this edge: gross base
// for Buy (the taker covers any base fee), quote for Sell.
func (e Edge) FromCapacity() Capacity {
	if e.Side == money.Buy {
		return e.GrossBaseCapacity
	}
	return e.QuoteCapacity
}

// ToCapacity is the capacity received leaving this edge: quote for Buy,
// base for Sell.
func (e Edge) ToCapacity() Capacity {
	if e.Side == money.Buy {
		return e.QuoteCapacity
	}
	return e.BaseCapacity
}
