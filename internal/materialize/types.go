// Package materialize turns a candidate edge sequence from the search
// engine into concrete per-hop spent/received/fee amounts, or reports
// that no materialization exists for the requested seed.
package materialize

import (
	"github.com/mExOms/pathfinder/internal/decimalx"
	"github.com/mExOms/pathfinder/internal/graph"
	"github.com/mExOms/pathfinder/internal/money"
	"github.com/mExOms/pathfinder/internal/perr"
)

// Scale is the working precision materialization arithmetic rounds to.
const Scale = decimalx.CanonicalScale

// Seed is the initial {net, grossCeiling} the first edge in the
// sequence materializes against.
type Seed struct {
	Net          money.Money
	GrossCeiling money.Money
}

// Leg is one materialized hop: the order filled, how much of edge.From
// was spent, how much of edge.To was received, and the fee charged on
// that fill.
type Leg struct {
	From     money.Currency
	To       money.Currency
	Side     money.Side
	Order    money.Order
	Spent    money.Money
	Received money.Money
	Fees     money.FeeBreakdown
}

// Result is a fully materialized edge sequence.
type Result struct {
	Legs          []Leg
	TotalSpent    money.Money
	TotalReceived money.Money
	Fees          money.MoneyMap
}

// Materialize resolves edges in order against seed, propagating each
// leg's received amount as the next leg's spend seed. It returns
// (nil, nil) — "no materialization" — when any invariant or per-leg
// resolution fails; it returns a non-nil error only for input/precision
// failures a caller could not have avoided by trying a different seed.
func Materialize(edges []graph.Edge, seed Seed) (*Result, error) {
	if len(edges) == 0 {
		return nil, nil
	}
	if !seed.Net.Amount().IsPositive() {
		return nil, nil
	}
	if !seed.GrossCeiling.Amount().IsPositive() {
		return nil, nil
	}
	for i := 0; i+1 < len(edges); i++ {
		if edges[i].To != edges[i+1].From {
			return nil, nil
		}
	}

	legs := make([]Leg, 0, len(edges))
	fees := money.NewMoneyMap()

	currentSpend := seed.Net
	currentCeiling := seed.GrossCeiling

	for i, edge := range edges {
		if currentSpend.Currency() != edge.From {
			return nil, perr.Inputf("materialize.Materialize", "leg seed currency %s does not match edge.From %s", currentSpend.Currency(), edge.From)
		}

		var leg Leg
		var ok bool
		var err error
		switch edge.Side {
		case money.Buy:
			leg, ok, err = resolveBuyLeg(edge, currentSpend, currentCeiling)
		case money.Sell:
			leg, ok, err = resolveSellLeg(edge, currentSpend, currentCeiling)
		default:
			return nil, perr.Inputf("materialize.Materialize", "unknown side %v", edge.Side)
		}
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}

		if err := fees.AddFeeBreakdown(leg.Fees, Scale); err != nil {
			return nil, err
		}
		legs = append(legs, leg)

		currentSpend = leg.Received
		if i+1 < len(edges) {
			currentCeiling = unboundedCeiling(edges[i+1], leg)
		}
	}

	last := legs[len(legs)-1]
	if last.To != edges[len(edges)-1].To {
		return nil, nil
	}

	return &Result{
		Legs:          legs,
		TotalSpent:    legs[0].Spent,
		TotalReceived: last.Received,
		Fees:          fees,
	}, nil
}

// unboundedCeiling computes the ceiling the interior leg over edge
// materializes against: that order's own maximum capacity in edge.From
// (gross base for Buy, quote for Sell), since only the first
// leg is constrained by the caller's external spend budget; interior
// legs have no further exogenous constraint beyond what the next order
// can hold.
func unboundedCeiling(edge graph.Edge, leg Leg) money.Money {
	switch edge.Side {
	case money.Buy:
		return edge.GrossBaseCapacity.Max
	default:
		return edge.QuoteCapacity.Max
	}
}
