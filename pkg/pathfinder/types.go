// Package pathfinder is the single external request/response boundary:
// callers submit an order book and a search configuration and receive
// an ordered, locale-independent result set plus a guard usage report.
package pathfinder

import (
	"github.com/mExOms/pathfinder/internal/money"
)

// Money is the external, serialization-ready view of a monetary amount:
// a fixed-point string preserving trailing zeros, never scientific
// notation, never a thousands separator.
type Money struct {
	Currency string `json:"currency"`
	Amount   string `json:"amount"`
	Scale    int32  `json:"scale"`
}

func moneyView(m money.Money) Money {
	return Money{
		Currency: string(m.Currency()),
		Amount:   m.Amount().String(),
		Scale:    m.Amount().Scale(),
	}
}

// MoneyMap is currency -> Money, keys sorted lexicographically by
// Currencies() at serialization time.
type MoneyMap map[string]Money

func moneyMapView(m money.MoneyMap) MoneyMap {
	out := make(MoneyMap, len(m))
	for _, c := range m.Currencies() {
		out[string(c)] = moneyView(m[c])
	}
	return out
}

// PathLeg is one hop of a linear PathResult.
type PathLeg struct {
	From     string   `json:"from"`
	To       string   `json:"to"`
	Spent    Money    `json:"spent"`
	Received Money    `json:"received"`
	Fees     MoneyMap `json:"fees"`
}

// ExecutionStep is one hop of an ExecutionPlan, additionally carrying
// its position in the plan.
type ExecutionStep struct {
	From     string   `json:"from"`
	To       string   `json:"to"`
	Spent    Money    `json:"spent"`
	Received Money    `json:"received"`
	Fees     MoneyMap `json:"fees"`
	Sequence int      `json:"sequence"`
}

// PathResult is one linear candidate path from the Path Orchestrator,
// fully materialized and tolerance-checked.
type PathResult struct {
	TotalSpent        Money     `json:"totalSpent"`
	TotalReceived     Money     `json:"totalReceived"`
	Cost              string    `json:"cost"`
	Hops              int       `json:"hops"`
	Legs              []PathLeg `json:"legs"`
	Route             []string  `json:"route"`
	FeeBreakdown      MoneyMap  `json:"feeBreakdown"`
	ResidualTolerance string    `json:"residualTolerance"`
}

// ExecutionPlan is one materialized, order-identity-tracking plan from
// the Execution Plan Orchestrator, used by both the disjoint and
// reusable execution-plan modes.
type ExecutionPlan struct {
	TotalSpent        Money           `json:"totalSpent"`
	TotalReceived     Money           `json:"totalReceived"`
	Cost              string          `json:"cost"`
	Hops              int             `json:"hops"`
	Steps             []ExecutionStep `json:"steps"`
	Route             []string        `json:"route"`
	FeeBreakdown      MoneyMap        `json:"feeBreakdown"`
	ResidualTolerance string          `json:"residualTolerance"`
}

// GuardReport is the external view of guard.Report.
type GuardReport struct {
	ExpansionsReached    bool    `json:"expansionsReached"`
	VisitedStatesReached bool    `json:"visitedStatesReached"`
	TimeBudgetReached    bool    `json:"timeBudgetReached"`
	Expansions           int     `json:"expansions"`
	VisitedStates        int     `json:"visitedStates"`
	ElapsedMilliseconds  float64 `json:"elapsedMilliseconds"`
	ExpansionLimit       int     `json:"expansionLimit"`
	VisitedStateLimit    int     `json:"visitedStateLimit"`
	TimeBudgetLimit      *int    `json:"timeBudgetLimit"`
}

// Any reports whether any guard limit was reached.
func (r GuardReport) Any() bool {
	return r.ExpansionsReached || r.VisitedStatesReached || r.TimeBudgetReached
}

// SearchOutcome is the external (results, guardReport) pair, T being
// PathResult or ExecutionPlan.
type SearchOutcome[T any] struct {
	Results []T         `json:"results"`
	Guard   GuardReport `json:"guard"`
}
