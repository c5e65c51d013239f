// Package search implements the best-first path search over the
// conversion graph, built on a classic Dijkstra priority-queue shape
// widened from a single int distance to the full
// cost/hops/signature/insertion ordering key, plus dominance filtering,
// tolerance-bounded pruning, and guard rails a plain Dijkstra does not
// need.
package search

import (
	"strconv"
	"strings"

	"github.com/mExOms/pathfinder/internal/decimalx"
	"github.com/mExOms/pathfinder/internal/graph"
	"github.com/mExOms/pathfinder/internal/guard"
	"github.com/mExOms/pathfinder/internal/money"
	"github.com/mExOms/pathfinder/internal/ordering"
	"github.com/mExOms/pathfinder/internal/perr"
)

// Scale is the canonical cost/product/tolerance scale.
const Scale = decimalx.CanonicalScale

// SpendRange is the feasible [Min, Max] window of spend at a node,
// tracked forward through the search the way OrderBounds tracks fill
// bounds on a single order.
type SpendRange struct {
	Min money.Money
	Max money.Money
}

// ToleranceWindow bounds the residual shortfall (Min) and overshoot (Max)
// tolerated on spend, both in [0, 1).
type ToleranceWindow struct {
	Min decimalx.Decimal
	Max decimalx.Decimal
}

// Heuristic returns the single scalar the search prunes against: Max
// when Max > Min, else Min, clamped to [0, 1-10^-18].
func (w ToleranceWindow) Heuristic() decimalx.Decimal {
	t := w.Min
	if w.Max.GreaterThan(w.Min) {
		t = w.Max
	}
	ceiling := oneMinusEpsilon()
	if t.GreaterThan(ceiling) {
		return ceiling
	}
	return t
}

var oneMinusEpsilonValue = func() decimalx.Decimal {
	// 1 - 10^-18 at Scale=18, i.e. "0.999999999999999999".
	d, err := decimalx.Parse("0." + strings.Repeat("9", int(Scale)))
	if err != nil {
		panic(err)
	}
	return d
}()

func oneMinusEpsilon() decimalx.Decimal { return oneMinusEpsilonValue }

// HopLimits bounds path length: 1 <= Min <= Max.
type HopLimits struct {
	Min int
	Max int
}

// Config is the internal engine configuration resolved from the
// external PathSearchConfig.
type Config struct {
	SpendAmount       money.Money
	Tolerance         ToleranceWindow
	Hops              HopLimits
	ResultLimit       int
	Guard             guard.Limits
	ThrowOnGuardLimit bool
	Ordering          ordering.Strategy
}

// Validate enforces the input-error conditions on config construction.
func (c Config) Validate() error {
	if c.SpendAmount.IsZero() {
		return perr.Input("search.Config.Validate", "spendAmount must be positive")
	}
	if c.Hops.Min < 1 {
		return perr.Inputf("search.Config.Validate", "hopLimits.min %d must be >= 1", c.Hops.Min)
	}
	if c.Hops.Max < c.Hops.Min {
		return perr.Inputf("search.Config.Validate", "hopLimits.max %d must be >= hopLimits.min %d", c.Hops.Max, c.Hops.Min)
	}
	if c.ResultLimit < 1 {
		return perr.Inputf("search.Config.Validate", "resultLimit %d must be >= 1", c.ResultLimit)
	}
	one := decimalx.FromInt(1, Scale)
	if c.Tolerance.Min.IsNegative() || !c.Tolerance.Min.LessThan(one) {
		return perr.Inputf("search.Config.Validate", "toleranceWindow.min %s must be in [0,1)", c.Tolerance.Min.String())
	}
	if c.Tolerance.Max.IsNegative() || !c.Tolerance.Max.LessThan(one) {
		return perr.Inputf("search.Config.Validate", "toleranceWindow.max %s must be in [0,1)", c.Tolerance.Max.String())
	}
	if c.Tolerance.Max.LessThan(c.Tolerance.Min) {
		return perr.Input("search.Config.Validate", "toleranceWindow.max must be >= toleranceWindow.min")
	}
	return c.Guard.Validate()
}

// CandidatePath is a materialization-ready edge sequence from the
// search's perspective: cost, cumulative product, hop count, the edges
// themselves, and the spend range tracked alongside it. cost * product
// = 1 at Scale within half-up rounding.
type CandidatePath struct {
	Cost       decimalx.Decimal
	Product    decimalx.Decimal
	Hops       int
	Edges      []graph.Edge
	SpendRange SpendRange
	Desired    money.Money
}

// RouteSignature builds the canonical node+side+order-identity sequence
// string used for deterministic tie-breaking and dedup. Source is
// included so a zero-hop path still has a signature.
func RouteSignature(source money.Currency, edges []graph.Edge) string {
	var b strings.Builder
	b.WriteString("node:")
	b.WriteString(string(source))
	for _, e := range edges {
		b.WriteString("|hop:")
		b.WriteString(string(e.From))
		b.WriteString(">")
		b.WriteString(string(e.To))
		b.WriteString(":")
		b.WriteString(e.Side.String())
		b.WriteString(":")
		b.WriteString(strconv.Itoa(int(e.Order.ID)))
	}
	return b.String()
}

// stateSignature builds the per-node dominance key from the tracked
// spend range and desired amount. Route prefix data is deliberately
// excluded: this engine's fee policies do not make downstream
// materialization depend on which specific earlier orders were used,
// only on the range/desired amounts they produced.
func stateSignature(r SpendRange, desired money.Money) string {
	var b strings.Builder
	b.WriteString("range-min:")
	b.WriteString(string(r.Min.Currency()))
	b.WriteString(",")
	b.WriteString(r.Min.Amount().String())
	b.WriteString("|range-max:")
	b.WriteString(string(r.Max.Currency()))
	b.WriteString(",")
	b.WriteString(r.Max.Amount().String())
	b.WriteString("|desired:")
	b.WriteString(string(desired.Currency()))
	b.WriteString(",")
	b.WriteString(desired.Amount().String())
	return b.String()
}
