package orchestrator

import (
	"github.com/mExOms/pathfinder/internal/clock"
	"github.com/mExOms/pathfinder/internal/decimalx"
	"github.com/mExOms/pathfinder/internal/graph"
	"github.com/mExOms/pathfinder/internal/guard"
	"github.com/mExOms/pathfinder/internal/materialize"
	"github.com/mExOms/pathfinder/internal/money"
	"github.com/mExOms/pathfinder/internal/search"
	"github.com/mExOms/pathfinder/internal/tolerance"
)

// reusablePenalty is the per-use rate penalty reusable mode applies to
// an order's effective rate, (1-p)^usage.
var reusablePenalty = decimalx.MustParse("0.15")

// ExecutionPlanOutcome is an ordered plan set plus the aggregated guard
// report across every search iteration.
type ExecutionPlanOutcome struct {
	Plans []ExecutionPlan
	Guard guard.Report
}

func planAcceptFunc(source money.Currency, cfg search.Config, ceiling money.Money, window tolerance.Window) search.AcceptFunc[ExecutionPlan] {
	return func(cp search.CandidatePath) (ExecutionPlan, bool, error) {
		seed := materialize.Seed{Net: cfg.SpendAmount, GrossCeiling: ceiling}
		result, err := materialize.Materialize(cp.Edges, seed)
		if err != nil {
			return ExecutionPlan{}, false, err
		}
		if result == nil {
			return ExecutionPlan{}, false, nil
		}
		evalResult, ok, err := tolerance.Evaluate(cfg.SpendAmount, result.TotalSpent, window)
		if err != nil {
			return ExecutionPlan{}, false, err
		}
		if !ok {
			return ExecutionPlan{}, false, nil
		}
		return ExecutionPlan{
			TotalSpent:        result.TotalSpent,
			TotalReceived:     result.TotalReceived,
			Cost:              cp.Cost,
			Hops:              cp.Hops,
			Steps:             result.Legs,
			Route:             routeOf(source, result.Legs),
			Fees:              result.Fees,
			ResidualTolerance: evalResult.Residual,
			OrderIDs:          orderIDsOf(result.Legs),
			RouteSignature:    search.RouteSignature(source, cp.Edges),
		}, true, nil
	}
}

// RunExecutionPlansDisjoint runs disjoint mode: each iteration's winning
// plan removes its orders from the graph before the next iteration runs,
// so no order identity appears in two plans.
func RunExecutionPlansDisjoint(book money.OrderBook, source, target money.Currency, cfg search.Config, k int, clk clock.Clock) (ExecutionPlanOutcome, error) {
	filtered := filterOrders(book, cfg.SpendAmount, search.Scale)
	full, err := graph.Build(filtered, search.Scale)
	if err != nil {
		return ExecutionPlanOutcome{}, err
	}

	window := tolerance.Window{Min: cfg.Tolerance.Min, Max: cfg.Tolerance.Max}
	ceiling := overshootCeiling(cfg.SpendAmount, cfg.Tolerance.Max)
	accept := planAcceptFunc(source, cfg, ceiling, window)

	iterCfg := cfg
	iterCfg.ResultLimit = 1

	excluded := make(map[money.OrderID]bool)
	var plans []ExecutionPlan
	var reports []guard.Report

	for i := 0; i < k; i++ {
		g := full.WithoutOrders(excluded)
		eng := search.NewEngine[ExecutionPlan](g)
		outcome, err := eng.Search(source, target, iterCfg, clk, accept)
		if err != nil {
			return ExecutionPlanOutcome{Guard: guard.Aggregate(reports)}, err
		}
		reports = append(reports, outcome.Guard)
		if len(outcome.Results) == 0 {
			break
		}
		plan := outcome.Results[0]
		plans = append(plans, plan)
		for id := range plan.OrderIDs {
			excluded[id] = true
		}
		if outcome.Guard.Any() {
			break
		}
	}

	return ExecutionPlanOutcome{Plans: plans, Guard: guard.Aggregate(reports)}, nil
}

// RunExecutionPlansReusable runs reusable mode: orders may be reused
// across plans, biased away from by a multiplicative penalty that grows
// with usage count; plans with a RouteSignature or cost already
// accepted are skipped, and the run stops early once skips run K deep
// consecutively.
func RunExecutionPlansReusable(book money.OrderBook, source, target money.Currency, cfg search.Config, k int, clk clock.Clock) (ExecutionPlanOutcome, error) {
	filtered := filterOrders(book, cfg.SpendAmount, search.Scale)
	full, err := graph.Build(filtered, search.Scale)
	if err != nil {
		return ExecutionPlanOutcome{}, err
	}

	window := tolerance.Window{Min: cfg.Tolerance.Min, Max: cfg.Tolerance.Max}
	ceiling := overshootCeiling(cfg.SpendAmount, cfg.Tolerance.Max)
	accept := planAcceptFunc(source, cfg, ceiling, window)

	iterCfg := cfg
	iterCfg.ResultLimit = 1

	usage := make(map[money.OrderID]int)
	acceptedSignatures := make(map[string]bool)
	var accepted []ExecutionPlan
	var reports []guard.Report
	consecutiveDuplicates := 0

	maxIterations := 2 * k
	for i := 0; i < maxIterations; i++ {
		g := full.WithOrderPenalties(usage, reusablePenalty, search.Scale)
		eng := search.NewEngine[ExecutionPlan](g)
		outcome, err := eng.Search(source, target, iterCfg, clk, accept)
		if err != nil {
			return ExecutionPlanOutcome{Guard: guard.Aggregate(reports)}, err
		}
		reports = append(reports, outcome.Guard)
		if len(outcome.Results) == 0 {
			break
		}
		candidate := outcome.Results[0]

		duplicate := acceptedSignatures[candidate.RouteSignature] || costMatchesAccepted(accepted, candidate.Cost)
		for id := range candidate.OrderIDs {
			usage[id]++
		}
		if duplicate {
			consecutiveDuplicates++
			if outcome.Guard.Any() {
				break
			}
			if consecutiveDuplicates >= k {
				break
			}
			continue
		}

		consecutiveDuplicates = 0
		acceptedSignatures[candidate.RouteSignature] = true
		accepted = append(accepted, candidate)
		if outcome.Guard.Any() {
			break
		}
		if len(accepted) >= k {
			break
		}
	}

	return ExecutionPlanOutcome{Plans: accepted, Guard: guard.Aggregate(reports)}, nil
}

func costMatchesAccepted(accepted []ExecutionPlan, cost decimalx.Decimal) bool {
	for _, p := range accepted {
		if p.Cost.Equal(cost) {
			return true
		}
	}
	return false
}
