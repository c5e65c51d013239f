package pathfinder

import (
	"github.com/mExOms/pathfinder/internal/clock"
	"github.com/mExOms/pathfinder/internal/materialize"
	"github.com/mExOms/pathfinder/internal/money"
	"github.com/mExOms/pathfinder/internal/orchestrator"
)

// FindPaths runs the linear Path Orchestrator, returning the ordered,
// materialized, tolerance-checked PathResult set plus the guard usage
// report. clk is an explicit dependency, never a process-wide
// singleton; production callers pass clock.Real{}.
func FindPaths(req PathSearchRequest, clk clock.Clock) (SearchOutcome[PathResult], error) {
	source, target, cfg, err := req.resolve()
	if err != nil {
		return SearchOutcome[PathResult]{}, err
	}
	outcome, err := orchestrator.RunPath(req.OrderBook, source, target, cfg, clk)
	if err != nil {
		return SearchOutcome[PathResult]{}, err
	}
	results := make([]PathResult, len(outcome.Results))
	for i, r := range outcome.Results {
		results[i] = pathResultView(r)
	}
	return SearchOutcome[PathResult]{Results: results, Guard: guardView(outcome.Guard)}, nil
}

// FindExecutionPlansDisjoint runs the Execution Plan Orchestrator's
// disjoint mode: up to k plans drawn from strictly non-overlapping
// orders.
func FindExecutionPlansDisjoint(req PathSearchRequest, k int, clk clock.Clock) (SearchOutcome[ExecutionPlan], error) {
	source, target, cfg, err := req.resolve()
	if err != nil {
		return SearchOutcome[ExecutionPlan]{}, err
	}
	outcome, err := orchestrator.RunExecutionPlansDisjoint(req.OrderBook, source, target, cfg, k, clk)
	if err != nil {
		return SearchOutcome[ExecutionPlan]{}, err
	}
	return executionPlanOutcomeView(outcome), nil
}

// FindExecutionPlansReusable runs the Execution Plan Orchestrator's
// reusable mode: up to k plans, orders may repeat across plans under a
// usage-count rate penalty.
func FindExecutionPlansReusable(req PathSearchRequest, k int, clk clock.Clock) (SearchOutcome[ExecutionPlan], error) {
	source, target, cfg, err := req.resolve()
	if err != nil {
		return SearchOutcome[ExecutionPlan]{}, err
	}
	outcome, err := orchestrator.RunExecutionPlansReusable(req.OrderBook, source, target, cfg, k, clk)
	if err != nil {
		return SearchOutcome[ExecutionPlan]{}, err
	}
	return executionPlanOutcomeView(outcome), nil
}

func executionPlanOutcomeView(outcome orchestrator.ExecutionPlanOutcome) SearchOutcome[ExecutionPlan] {
	plans := make([]ExecutionPlan, len(outcome.Plans))
	for i, p := range outcome.Plans {
		plans[i] = executionPlanView(p)
	}
	return SearchOutcome[ExecutionPlan]{Results: plans, Guard: guardView(outcome.Guard)}
}

func pathResultView(r orchestrator.PathResult) PathResult {
	return PathResult{
		TotalSpent:        moneyView(r.TotalSpent),
		TotalReceived:     moneyView(r.TotalReceived),
		Cost:              r.Cost.String(),
		Hops:              r.Hops,
		Legs:              legsView(r.Legs),
		Route:             routeView(r.Route),
		FeeBreakdown:      moneyMapView(r.Fees),
		ResidualTolerance: r.ResidualTolerance.String(),
	}
}

func executionPlanView(p orchestrator.ExecutionPlan) ExecutionPlan {
	return ExecutionPlan{
		TotalSpent:        moneyView(p.TotalSpent),
		TotalReceived:     moneyView(p.TotalReceived),
		Cost:              p.Cost.String(),
		Hops:              p.Hops,
		Steps:             stepsView(p.Steps),
		Route:             routeView(p.Route),
		FeeBreakdown:      moneyMapView(p.Fees),
		ResidualTolerance: p.ResidualTolerance.String(),
	}
}

func legsView(legs []materialize.Leg) []PathLeg {
	out := make([]PathLeg, len(legs))
	for i, l := range legs {
		out[i] = PathLeg{
			From:     string(l.From),
			To:       string(l.To),
			Spent:    moneyView(l.Spent),
			Received: moneyView(l.Received),
			Fees:     feeBreakdownView(l.Fees),
		}
	}
	return out
}

func stepsView(legs []materialize.Leg) []ExecutionStep {
	out := make([]ExecutionStep, len(legs))
	for i, l := range legs {
		out[i] = ExecutionStep{
			From:     string(l.From),
			To:       string(l.To),
			Spent:    moneyView(l.Spent),
			Received: moneyView(l.Received),
			Fees:     feeBreakdownView(l.Fees),
			Sequence: i,
		}
	}
	return out
}

func feeBreakdownView(f money.FeeBreakdown) MoneyMap {
	out := make(MoneyMap)
	if f.BaseFee != nil {
		out[string(f.BaseFee.Currency())] = moneyView(*f.BaseFee)
	}
	if f.QuoteFee != nil {
		out[string(f.QuoteFee.Currency())] = moneyView(*f.QuoteFee)
	}
	return out
}

func routeView(route []money.Currency) []string {
	out := make([]string, len(route))
	for i, c := range route {
		out[i] = string(c)
	}
	return out
}
