package search

import (
	"github.com/mExOms/pathfinder/internal/clock"
	"github.com/mExOms/pathfinder/internal/decimalx"
	"github.com/mExOms/pathfinder/internal/graph"
	"github.com/mExOms/pathfinder/internal/guard"
	"github.com/mExOms/pathfinder/internal/money"
	"github.com/mExOms/pathfinder/internal/ordering"
	"github.com/mExOms/pathfinder/internal/perr"
)

// AcceptFunc converts a candidate path into the caller's result type.
// ok=false means "do not keep this candidate" (e.g. it failed
// materialization or tolerance evaluation downstream) without being an
// error. Returning a non-nil error aborts the whole search.
type AcceptFunc[T any] func(CandidatePath) (value T, ok bool, err error)

// Outcome is the result of one Search call: the kept, K-bounded,
// best-first-ordered values plus the guard usage report.
type Outcome[T any] struct {
	Results []T
	Guard   guard.Report
}

// Engine runs the best-first search over a fixed Graph, parameterized
// over the result type T so the Path Orchestrator (values of type
// PathResult) and the Execution Plan Orchestrator (values of type
// ExecutionPlan) can share one search loop instead of duplicating it;
// the walk itself is mode-agnostic over what the caller does with a
// visited node.
type Engine[T any] struct {
	graph *graph.Graph
}

// NewEngine builds a search engine over g.
func NewEngine[T any](g *graph.Graph) *Engine[T] {
	return &Engine[T]{graph: g}
}

// Search explores source -> target under cfg, calling accept once per
// path reached within the configured hop bounds, and returns the
// K-bounded, best-first set of accepted values plus the guard report.
//
// A missing source or target node is an empty outcome, not an error:
// infeasibility is never an exception.
func (e *Engine[T]) Search(source, target money.Currency, cfg Config, clk clock.Clock, accept AcceptFunc[T]) (Outcome[T], error) {
	if err := cfg.Validate(); err != nil {
		return Outcome[T]{}, err
	}
	if !e.graph.HasNode(source) || !e.graph.HasNode(target) {
		return Outcome[T]{}, nil
	}

	tracker := guard.NewTracker(cfg.Guard, clk)
	results := ordering.NewResultSet[T](cfg.ResultLimit, cfg.Ordering)
	registry := newStateRegistry()
	fr := newFrontier(cfg.Ordering)

	var insertionSeq int64
	nextInsertion := func() int64 {
		insertionSeq++
		return insertionSeq
	}

	one := decimalx.FromInt(1, Scale)
	initRange := SpendRange{Min: cfg.SpendAmount, Max: cfg.SpendAmount}
	initVisited := map[money.Currency]bool{source: true}
	initSig := stateSignature(initRange, cfg.SpendAmount)

	fr.push(&frontierState{
		node:     source,
		cost:     one,
		product:  one,
		hops:     0,
		edges:    nil,
		visited:  initVisited,
		hasRange: true,
		rng:      initRange,
		desired:  cfg.SpendAmount,
		key: ordering.Key{
			Cost:           one,
			Hops:           0,
			RouteSignature: RouteSignature(source, nil),
			InsertionOrder: nextInsertion(),
		},
	})
	registry.register(source, initSig, one, 0)

	var bestTargetCost *decimalx.Decimal
	toleranceHeuristic := cfg.Tolerance.Heuristic()

	for fr.Len() > 0 {
		if tracker.CheckTimeBudget() {
			break
		}
		if !tracker.GuardsAllow() {
			break
		}
		state := fr.pop()
		tracker.CountExpansion()

		if bestTargetCost != nil && exceedsTolerance(state.cost, *bestTargetCost, toleranceHeuristic) {
			continue
		}

		if state.node == target && state.hops >= cfg.Hops.Min {
			cp := CandidatePath{
				Cost:       state.cost,
				Product:    state.product,
				Hops:       state.hops,
				Edges:      state.edges,
				SpendRange: state.rng,
				Desired:    state.desired,
			}
			value, ok, err := accept(cp)
			if err != nil {
				return Outcome[T]{}, err
			}
			if ok {
				results.Add(state.key, value)
				if bestTargetCost == nil || state.cost.LessThan(*bestTargetCost) {
					c := state.cost
					bestTargetCost = &c
				}
			}
		}

		if state.hops >= cfg.Hops.Max {
			continue
		}

		for _, edge := range e.graph.Neighbors(state.node) {
			if state.visited[edge.To] {
				continue
			}

			rate, err := edge.EffectiveRate(Scale)
			if err != nil {
				return Outcome[T]{}, err
			}
			newProduct, err := state.product.Mul(rate, Scale)
			if err != nil {
				return Outcome[T]{}, err
			}
			newCost, err := state.cost.Div(rate, Scale)
			if err != nil {
				return Outcome[T]{}, err
			}

			newRange := state.rng
			newDesired := state.desired
			if state.hasRange {
				fromCap := edge.FromCapacity()
				toCap := edge.ToCapacity()
				intersected, ok := intersectRange(state.rng, fromCap)
				if !ok {
					continue
				}
				converted, err := convertRange(intersected, fromCap, toCap)
				if err != nil {
					return Outcome[T]{}, err
				}
				clamped, err := clampDesired(state.desired, intersected, fromCap, toCap)
				if err != nil {
					return Outcome[T]{}, err
				}
				newRange = converted
				newDesired = clamped
			}

			newHops := state.hops + 1
			if bestTargetCost != nil && exceedsTolerance(newCost, *bestTargetCost, toleranceHeuristic) {
				continue
			}
			if registry.dominated(edge.To, newCost, newHops) {
				continue
			}
			if tracker.RegisterVisitedState() {
				continue
			}

			newEdges := make([]graph.Edge, len(state.edges), len(state.edges)+1)
			copy(newEdges, state.edges)
			newEdges = append(newEdges, edge)

			newVisited := make(map[money.Currency]bool, len(state.visited)+1)
			for k := range state.visited {
				newVisited[k] = true
			}
			newVisited[edge.To] = true

			sig := stateSignature(newRange, newDesired)
			registry.register(edge.To, sig, newCost, newHops)

			fr.push(&frontierState{
				node:     edge.To,
				cost:     newCost,
				product:  newProduct,
				hops:     newHops,
				edges:    newEdges,
				visited:  newVisited,
				hasRange: state.hasRange,
				rng:      newRange,
				desired:  newDesired,
				key: ordering.Key{
					Cost:           newCost,
					Hops:           newHops,
					RouteSignature: RouteSignature(source, newEdges),
					InsertionOrder: nextInsertion(),
				},
			})
		}
	}

	report := tracker.Report()
	if cfg.ThrowOnGuardLimit && report.Any() {
		return Outcome[T]{Guard: report}, perr.Guard("search.Engine.Search", "guard limit reached before search completed")
	}
	return Outcome[T]{Results: results.Drain(), Guard: report}, nil
}

// exceedsTolerance reports whether cost exceeds maxAllowed := bestCost
// when heuristic is zero, else bestCost / (1 - heuristic).
func exceedsTolerance(cost, bestCost, heuristic decimalx.Decimal) bool {
	if heuristic.IsZero() {
		return cost.GreaterThan(bestCost)
	}
	denom, err := decimalx.FromInt(1, Scale).Sub(heuristic, Scale)
	if err != nil || denom.IsZero() {
		return false
	}
	maxAllowed, err := bestCost.Div(denom, Scale)
	if err != nil {
		return false
	}
	return cost.GreaterThan(maxAllowed)
}
