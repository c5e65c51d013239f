// Package orchestrator implements the linear Path Orchestrator and the
// Execution Plan Orchestrator: both wire together the graph builder,
// search engine, leg materializer, and tolerance evaluator behind the
// acceptance callback the search engine calls synchronously.
package orchestrator

import (
	"github.com/mExOms/pathfinder/internal/decimalx"
	"github.com/mExOms/pathfinder/internal/materialize"
	"github.com/mExOms/pathfinder/internal/money"
)

// PathResult is a fully materialized, tolerance-accepted linear path.
type PathResult struct {
	TotalSpent        money.Money
	TotalReceived     money.Money
	Cost              decimalx.Decimal
	Hops              int
	Legs              []materialize.Leg
	Route             []money.Currency
	Fees              money.MoneyMap
	ResidualTolerance decimalx.Decimal
}

// ExecutionPlan is a materialized path additionally tracking which
// order identities it consumed, for disjoint-mode graph exclusion and
// reusable-mode usage-count penalties.
type ExecutionPlan struct {
	TotalSpent        money.Money
	TotalReceived     money.Money
	Cost              decimalx.Decimal
	Hops              int
	Steps             []materialize.Leg
	Route             []money.Currency
	Fees              money.MoneyMap
	ResidualTolerance decimalx.Decimal
	OrderIDs          map[money.OrderID]bool

	// RouteSignature is carried for the reusable-mode dedup pass only; it
	// is not part of the external serialization shape.
	RouteSignature string
}

func routeOf(source money.Currency, legs []materialize.Leg) []money.Currency {
	route := make([]money.Currency, 0, len(legs)+1)
	route = append(route, source)
	for _, l := range legs {
		route = append(route, l.To)
	}
	return route
}

func orderIDsOf(legs []materialize.Leg) map[money.OrderID]bool {
	out := make(map[money.OrderID]bool, len(legs))
	for _, l := range legs {
		out[l.Order.ID] = true
	}
	return out
}
