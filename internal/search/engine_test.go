package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mExOms/pathfinder/internal/clock"
	"github.com/mExOms/pathfinder/internal/decimalx"
	"github.com/mExOms/pathfinder/internal/graph"
	"github.com/mExOms/pathfinder/internal/guard"
	"github.com/mExOms/pathfinder/internal/money"
	"github.com/mExOms/pathfinder/internal/ordering"
)

func mustMoney(t *testing.T, amount string, currency money.Currency) money.Money {
	t.Helper()
	d, err := decimalx.Parse(amount)
	require.NoError(t, err)
	m, err := money.New(d.WithScale(Scale), currency)
	require.NoError(t, err)
	return m
}

func sellOrder(t *testing.T, id money.OrderID, base, quote money.Currency, rate, min, max string) money.Order {
	t.Helper()
	pair, err := money.NewAssetPair(base, quote)
	require.NoError(t, err)
	bounds, err := money.NewOrderBounds(mustMoney(t, min, base), mustMoney(t, max, base))
	require.NoError(t, err)
	r, err := decimalx.Parse(rate)
	require.NoError(t, err)
	exch, err := money.NewExchangeRate(r.WithScale(Scale), base, quote)
	require.NoError(t, err)
	order, err := money.NewOrder(id, money.Sell, pair, bounds, exch, money.NoFeePolicy{})
	require.NoError(t, err)
	return order
}

func buyOrder(t *testing.T, id money.OrderID, base, quote money.Currency, rate, min, max string) money.Order {
	t.Helper()
	pair, err := money.NewAssetPair(base, quote)
	require.NoError(t, err)
	bounds, err := money.NewOrderBounds(mustMoney(t, min, base), mustMoney(t, max, base))
	require.NoError(t, err)
	r, err := decimalx.Parse(rate)
	require.NoError(t, err)
	exch, err := money.NewExchangeRate(r.WithScale(Scale), base, quote)
	require.NoError(t, err)
	order, err := money.NewOrder(id, money.Buy, pair, bounds, exch, money.NoFeePolicy{})
	require.NoError(t, err)
	return order
}

func baseConfig(spend money.Money) Config {
	return Config{
		SpendAmount:       spend,
		Tolerance:         ToleranceWindow{Min: decimalx.Zero(Scale), Max: decimalx.MustParse("0.05")},
		Hops:              HopLimits{Min: 1, Max: 3},
		ResultLimit:       5,
		Guard:             guard.Limits{MaxExpansions: 10000, MaxVisitedStates: 10000},
		ThrowOnGuardLimit: false,
		Ordering:          ordering.CostHopsSignature{Scale: Scale},
	}
}

// acceptAll turns any candidate path reaching the target into itself,
// with no materialization or tolerance check — enough to exercise the
// search loop in isolation from leg materialization and tolerance
// checking.
func acceptAll(cp CandidatePath) (CandidatePath, bool, error) { return cp, true, nil }

func TestSearch_S1_OneHopSell(t *testing.T) {
	order := sellOrder(t, 1, "BTC", "USD", "30000", "0.001", "5")
	g, err := graph.Build(money.OrderBook{order}, Scale)
	require.NoError(t, err)

	cfg := baseConfig(mustMoney(t, "100", "USD"))
	eng := NewEngine[CandidatePath](g)
	out, err := eng.Search("USD", "BTC", cfg, clock.Real{}, acceptAll)
	require.NoError(t, err)
	require.Len(t, out.Results, 1)
	assert.Equal(t, 1, out.Results[0].Hops)
	assert.False(t, out.Guard.Any())
}

func TestSearch_S2_TwoHop(t *testing.T) {
	a := buyOrder(t, 1, "USD", "EUR", "0.92", "10", "1000")
	b := sellOrder(t, 2, "BTC", "EUR", "27500", "0.001", "500")
	g, err := graph.Build(money.OrderBook{a, b}, Scale)
	require.NoError(t, err)

	cfg := baseConfig(mustMoney(t, "100", "USD"))
	cfg.Hops = HopLimits{Min: 2, Max: 2}
	cfg.Tolerance.Max = decimalx.MustParse("0.10")

	eng := NewEngine[CandidatePath](g)
	out, err := eng.Search("USD", "BTC", cfg, clock.Real{}, acceptAll)
	require.NoError(t, err)
	require.Len(t, out.Results, 1)
	assert.Equal(t, 2, out.Results[0].Hops)
	assert.Equal(t, money.Currency("EUR"), out.Results[0].Edges[0].To)
}

func TestSearch_S3_EmptyOrderBookYieldsEmptyResults(t *testing.T) {
	g, err := graph.Build(nil, Scale)
	require.NoError(t, err)

	cfg := baseConfig(mustMoney(t, "100", "USD"))
	eng := NewEngine[CandidatePath](g)
	out, err := eng.Search("USD", "BTC", cfg, clock.Real{}, acceptAll)
	require.NoError(t, err)
	assert.Empty(t, out.Results)
	assert.False(t, out.Guard.Any())
}

func TestSearch_S4_MissingSourceYieldsEmptyResultsNoError(t *testing.T) {
	order := sellOrder(t, 1, "BTC", "USD", "30000", "0.001", "5")
	g, err := graph.Build(money.OrderBook{order}, Scale)
	require.NoError(t, err)

	cfg := baseConfig(mustMoney(t, "100", "EUR"))
	eng := NewEngine[CandidatePath](g)
	out, err := eng.Search("EUR", "BTC", cfg, clock.Real{}, acceptAll)
	require.NoError(t, err)
	assert.Empty(t, out.Results)
}

func TestSearch_S5_MaxExpansionsOneSetsGuardFlag(t *testing.T) {
	a := buyOrder(t, 1, "USD", "EUR", "0.92", "10", "1000")
	b := sellOrder(t, 2, "BTC", "EUR", "27500", "0.001", "500")
	c := sellOrder(t, 3, "BTC", "USD", "30000", "0.001", "5")
	g, err := graph.Build(money.OrderBook{a, b, c}, Scale)
	require.NoError(t, err)

	cfg := baseConfig(mustMoney(t, "100", "USD"))
	cfg.Hops = HopLimits{Min: 1, Max: 3}
	cfg.Guard = guard.Limits{MaxExpansions: 1, MaxVisitedStates: 10000}

	eng := NewEngine[CandidatePath](g)
	out, err := eng.Search("USD", "BTC", cfg, clock.Real{}, acceptAll)
	require.NoError(t, err)
	assert.True(t, out.Guard.ExpansionsReached)
}

func TestSearch_S6_EqualCostPathsOrderedLexicographicallyBySignature(t *testing.T) {
	// Two 2-hop routes USD->A->BTC and USD->B->BTC at identical product.
	toA := buyOrder(t, 1, "USD", "AAA", "1", "10", "1000")
	fromA := sellOrder(t, 2, "BTC", "AAA", "30000", "0.001", "500")
	toB := buyOrder(t, 3, "USD", "BBB", "1", "10", "1000")
	fromB := sellOrder(t, 4, "BTC", "BBB", "30000", "0.001", "500")
	g, err := graph.Build(money.OrderBook{toA, fromA, toB, fromB}, Scale)
	require.NoError(t, err)

	cfg := baseConfig(mustMoney(t, "100", "USD"))
	cfg.Hops = HopLimits{Min: 2, Max: 2}
	cfg.ResultLimit = 2

	eng := NewEngine[CandidatePath](g)
	out, err := eng.Search("USD", "BTC", cfg, clock.Real{}, acceptAll)
	require.NoError(t, err)
	require.Len(t, out.Results, 2)

	sigA := RouteSignature("USD", out.Results[0].Edges)
	sigB := RouteSignature("USD", out.Results[1].Edges)
	assert.Less(t, sigA, sigB)
}

func TestSearch_S7_CycleDoesNotReachUnrelatedTarget(t *testing.T) {
	usdToEur := buyOrder(t, 1, "USD", "EUR", "0.9", "10", "1000")
	eurToUsd := buyOrder(t, 2, "EUR", "USD", "1.1", "10", "1000")
	g, err := graph.Build(money.OrderBook{usdToEur, eurToUsd}, Scale)
	require.NoError(t, err)

	cfg := baseConfig(mustMoney(t, "100", "USD"))
	cfg.Hops = HopLimits{Min: 1, Max: 4}

	eng := NewEngine[CandidatePath](g)
	out, err := eng.Search("USD", "JPY", cfg, clock.Real{}, acceptAll)
	require.NoError(t, err)
	assert.Empty(t, out.Results)
}

func TestSearch_S9_ThrowOnGuardLimitRaisesError(t *testing.T) {
	a := buyOrder(t, 1, "USD", "EUR", "0.92", "10", "1000")
	b := sellOrder(t, 2, "BTC", "EUR", "27500", "0.001", "500")
	g, err := graph.Build(money.OrderBook{a, b}, Scale)
	require.NoError(t, err)

	cfg := baseConfig(mustMoney(t, "100", "USD"))
	cfg.Guard = guard.Limits{MaxExpansions: 1, MaxVisitedStates: 10000}
	cfg.ThrowOnGuardLimit = true

	eng := NewEngine[CandidatePath](g)
	_, err = eng.Search("USD", "BTC", cfg, clock.Real{}, acceptAll)
	assert.Error(t, err)
}

func TestSearch_RespectsTimeBudget(t *testing.T) {
	order := sellOrder(t, 1, "BTC", "USD", "30000", "0.001", "5")
	// A costlier USD->EUR edge keeps a state queued after the BTC target
	// is popped, so the loop head polls the clock again after the accept
	// callback has advanced it.
	costly := buyOrder(t, 2, "USD", "EUR", "0.00001", "10", "1000")
	g, err := graph.Build(money.OrderBook{order, costly}, Scale)
	require.NoError(t, err)

	cfg := baseConfig(mustMoney(t, "100", "USD"))
	ms := 10
	cfg.Guard.TimeBudgetMs = &ms

	fixed := clock.NewFixed(time.Unix(0, 0))
	eng := NewEngine[CandidatePath](g)
	out, err := eng.Search("USD", "BTC", cfg, fixed, func(cp CandidatePath) (CandidatePath, bool, error) {
		fixed.Advance(time.Hour)
		return cp, true, nil
	})
	require.NoError(t, err)
	assert.True(t, out.Guard.TimeBudgetReached)
}

func TestSearch_ConfigValidation(t *testing.T) {
	g, err := graph.Build(nil, Scale)
	require.NoError(t, err)
	eng := NewEngine[CandidatePath](g)

	cfg := baseConfig(money.Zero("USD", Scale))
	_, err = eng.Search("USD", "BTC", cfg, clock.Real{}, acceptAll)
	assert.Error(t, err)
}

func TestRouteSignature_IncludesSourceEvenWithNoEdges(t *testing.T) {
	sig := RouteSignature("USD", nil)
	assert.Equal(t, "node:USD", sig)
}
