package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mExOms/pathfinder/internal/decimalx"
	"github.com/mExOms/pathfinder/internal/money"
)

const scale = decimalx.CanonicalScale

func mustMoney(t *testing.T, amount string, currency money.Currency) money.Money {
	t.Helper()
	d, err := decimalx.Parse(amount)
	require.NoError(t, err)
	m, err := money.New(d.WithScale(scale), currency)
	require.NoError(t, err)
	return m
}

func sellOrder(t *testing.T, id money.OrderID, base, quote money.Currency, rate string) money.Order {
	t.Helper()
	pair, err := money.NewAssetPair(base, quote)
	require.NoError(t, err)
	bounds, err := money.NewOrderBounds(mustMoney(t, "0.01", base), mustMoney(t, "5", base))
	require.NoError(t, err)
	r, err := decimalx.Parse(rate)
	require.NoError(t, err)
	exch, err := money.NewExchangeRate(r.WithScale(scale), base, quote)
	require.NoError(t, err)
	order, err := money.NewOrder(id, money.Sell, pair, bounds, exch, money.NoFeePolicy{})
	require.NoError(t, err)
	return order
}

func buyOrder(t *testing.T, id money.OrderID, base, quote money.Currency, rate string) money.Order {
	t.Helper()
	pair, err := money.NewAssetPair(base, quote)
	require.NoError(t, err)
	bounds, err := money.NewOrderBounds(mustMoney(t, "10", base), mustMoney(t, "1000", base))
	require.NoError(t, err)
	r, err := decimalx.Parse(rate)
	require.NoError(t, err)
	exch, err := money.NewExchangeRate(r.WithScale(scale), base, quote)
	require.NoError(t, err)
	order, err := money.NewOrder(id, money.Buy, pair, bounds, exch, money.NoFeePolicy{})
	require.NoError(t, err)
	return order
}

func TestBuild_SellEdgeDirectionAndCapacity(t *testing.T) {
	book := money.OrderBook{sellOrder(t, 1, "BTC", "USD", "30000")}
	g, err := Build(book, scale)
	require.NoError(t, err)

	edges := g.Neighbors("USD")
	require.Len(t, edges, 1)
	assert.Equal(t, money.Currency("BTC"), edges[0].To)
	assert.Equal(t, 0, edges[0].FromCapacity().Min.Cmp(edges[0].QuoteCapacity.Min))
	assert.Equal(t, 0, edges[0].ToCapacity().Min.Cmp(edges[0].BaseCapacity.Min))
}

func TestBuild_BuyEdgeDirectionAndCapacity(t *testing.T) {
	book := money.OrderBook{buyOrder(t, 1, "USD", "EUR", "0.92")}
	g, err := Build(book, scale)
	require.NoError(t, err)

	edges := g.Neighbors("USD")
	require.Len(t, edges, 1)
	assert.Equal(t, money.Currency("EUR"), edges[0].To)
	assert.Equal(t, 0, edges[0].FromCapacity().Min.Cmp(edges[0].GrossBaseCapacity.Min))
	assert.Equal(t, 0, edges[0].ToCapacity().Min.Cmp(edges[0].QuoteCapacity.Min))
}

func TestHasNode(t *testing.T) {
	book := money.OrderBook{sellOrder(t, 1, "BTC", "USD", "30000")}
	g, err := Build(book, scale)
	require.NoError(t, err)

	assert.True(t, g.HasNode("USD"))
	assert.True(t, g.HasNode("BTC"))
	assert.False(t, g.HasNode("EUR"))
}

func TestWithoutOrders_DropsExcludedEdges(t *testing.T) {
	book := money.OrderBook{
		sellOrder(t, 1, "BTC", "USD", "30000"),
		sellOrder(t, 2, "BTC", "USD", "31000"),
	}
	g, err := Build(book, scale)
	require.NoError(t, err)

	filtered := g.WithoutOrders(map[money.OrderID]bool{1: true})
	edges := filtered.Neighbors("USD")
	require.Len(t, edges, 1)
	assert.Equal(t, money.OrderID(2), edges[0].Order.ID)

	// original graph is untouched
	assert.Len(t, g.Neighbors("USD"), 2)
}

func TestWithOrderPenalties_WorsensEffectiveRateByUsage(t *testing.T) {
	book := money.OrderBook{sellOrder(t, 1, "BTC", "USD", "30000")}
	g, err := Build(book, scale)
	require.NoError(t, err)

	unpenalized := g.Neighbors("USD")[0]
	baseRate, err := unpenalized.EffectiveRate(scale)
	require.NoError(t, err)

	penalized := g.WithOrderPenalties(map[money.OrderID]int{1: 2}, decimalx.MustParse("0.15"), scale)
	penalizedEdge := penalized.Neighbors("USD")[0]
	penalizedRate, err := penalizedEdge.EffectiveRate(scale)
	require.NoError(t, err)

	assert.True(t, penalizedRate.LessThan(baseRate))
}

func TestWithOrderPenalties_ZeroUsageLeavesRateUnchanged(t *testing.T) {
	book := money.OrderBook{sellOrder(t, 1, "BTC", "USD", "30000")}
	g, err := Build(book, scale)
	require.NoError(t, err)

	baseRate, err := g.Neighbors("USD")[0].EffectiveRate(scale)
	require.NoError(t, err)

	penalized := g.WithOrderPenalties(map[money.OrderID]int{}, decimalx.MustParse("0.15"), scale)
	penalizedRate, err := penalized.Neighbors("USD")[0].EffectiveRate(scale)
	require.NoError(t, err)

	assert.Equal(t, 0, baseRate.Cmp(penalizedRate))
}

func TestBuild_SkipsSelfPairs(t *testing.T) {
	order := sellOrder(t, 1, "BTC", "USD", "30000")
	order.Pair.Quote = order.Pair.Base
	book := money.OrderBook{order}

	g, err := Build(book, scale)
	require.NoError(t, err)
	assert.Empty(t, g.Neighbors("USD"))
	assert.Empty(t, g.Neighbors("BTC"))
}
