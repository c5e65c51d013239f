package orchestrator

import (
	"github.com/mExOms/pathfinder/internal/clock"
	"github.com/mExOms/pathfinder/internal/decimalx"
	"github.com/mExOms/pathfinder/internal/graph"
	"github.com/mExOms/pathfinder/internal/materialize"
	"github.com/mExOms/pathfinder/internal/money"
	"github.com/mExOms/pathfinder/internal/search"
	"github.com/mExOms/pathfinder/internal/tolerance"
)

// RunPath builds the graph, runs the search engine, and for every
// candidate edge sequence materializes and tolerance-checks it before
// accepting, returning the ordered PathResult set plus the guard report.
func RunPath(book money.OrderBook, source, target money.Currency, cfg search.Config, clk clock.Clock) (search.Outcome[PathResult], error) {
	filtered := filterOrders(book, cfg.SpendAmount, search.Scale)
	g, err := graph.Build(filtered, search.Scale)
	if err != nil {
		return search.Outcome[PathResult]{}, err
	}

	window := tolerance.Window{Min: cfg.Tolerance.Min, Max: cfg.Tolerance.Max}
	ceiling := overshootCeiling(cfg.SpendAmount, cfg.Tolerance.Max)

	accept := func(cp search.CandidatePath) (PathResult, bool, error) {
		seed := materialize.Seed{Net: cfg.SpendAmount, GrossCeiling: ceiling}
		result, err := materialize.Materialize(cp.Edges, seed)
		if err != nil {
			return PathResult{}, false, err
		}
		if result == nil {
			return PathResult{}, false, nil
		}

		evalResult, ok, err := tolerance.Evaluate(cfg.SpendAmount, result.TotalSpent, window)
		if err != nil {
			return PathResult{}, false, err
		}
		if !ok {
			return PathResult{}, false, nil
		}

		return PathResult{
			TotalSpent:        result.TotalSpent,
			TotalReceived:     result.TotalReceived,
			Cost:              cp.Cost,
			Hops:              cp.Hops,
			Legs:              result.Legs,
			Route:             routeOf(source, result.Legs),
			Fees:              result.Fees,
			ResidualTolerance: evalResult.Residual,
		}, true, nil
	}

	eng := search.NewEngine[PathResult](g)
	return eng.Search(source, target, cfg, clk, accept)
}

// overshootCeiling widens spend by the tolerance window's overshoot
// bound, giving the leg materializer room to land within the accepted
// window rather than clamping exactly to spend.
func overshootCeiling(spend money.Money, toleranceMax decimalx.Decimal) money.Money {
	margin, err := decimalx.FromInt(1, search.Scale).Add(toleranceMax, search.Scale)
	if err != nil {
		return spend
	}
	amt, err := spend.Amount().Mul(margin, spend.Scale())
	if err != nil {
		return spend
	}
	ceiling, err := money.New(amt, spend.Currency())
	if err != nil {
		return spend
	}
	return ceiling
}
