// Package graph builds the directed conversion multigraph the search
// engine explores, turning a set of orders into a keyed adjacency
// structure the search loop walks.
package graph

import (
	"github.com/mExOms/pathfinder/internal/decimalx"
	"github.com/mExOms/pathfinder/internal/money"
)

// Graph is a directed multigraph keyed by the currency each edge departs
// from.
type Graph struct {
	edges map[money.Currency][]Edge
}

// Build derives one Edge per order, ignoring self-edges (pair base ==
// quote is already rejected at Order construction, but a defensive skip
// keeps Build total even over a hand-built OrderBook).
func Build(book money.OrderBook, scale int32) (*Graph, error) {
	g := &Graph{edges: make(map[money.Currency][]Edge)}
	for _, order := range book {
		if order.Pair.Base == order.Pair.Quote {
			continue
		}
		edge, err := buildEdge(order, scale)
		if err != nil {
			return nil, err
		}
		from := edge.From
		g.edges[from] = append(g.edges[from], edge)
	}
	return g, nil
}

func buildEdge(order money.Order, scale int32) (Edge, error) {
	quoteMin, err := order.CalculateEffectiveQuoteAmount(order.Bounds.Min, scale)
	if err != nil {
		return Edge{}, err
	}
	quoteMax, err := order.CalculateEffectiveQuoteAmount(order.Bounds.Max, scale)
	if err != nil {
		return Edge{}, err
	}
	grossMin, err := order.CalculateGrossBaseSpend(order.Bounds.Min, scale)
	if err != nil {
		return Edge{}, err
	}
	grossMax, err := order.CalculateGrossBaseSpend(order.Bounds.Max, scale)
	if err != nil {
		return Edge{}, err
	}

	var from, to money.Currency
	var rate decimalx.Decimal
	switch order.Side {
	case money.Buy:
		from, to = order.Pair.Base, order.Pair.Quote
		// Fold the proportional quote-fee ratio into the search-time
		// rate, approximated at the upper bound fill.
		rate = feeAdjustedBuyRate(order, quoteMax, scale)
	case money.Sell:
		from, to = order.Pair.Quote, order.Pair.Base
		inv, err := decimalx.FromInt(1, scale).Div(order.Rate.Rate(), scale)
		if err != nil {
			return Edge{}, err
		}
		rate = inv
	}

	segment := EdgeSegment{
		Kind:         Mandatory,
		BaseMin:      order.Bounds.Min,
		BaseMax:      order.Bounds.Max,
		QuoteMin:     quoteMin,
		QuoteMax:     quoteMax,
		GrossBaseMin: grossMin,
		GrossBaseMax: grossMax,
	}

	return Edge{
		From:              from,
		To:                to,
		Side:              order.Side,
		Order:             order,
		baseRate:          rate,
		BaseCapacity:      Capacity{Min: order.Bounds.Min, Max: order.Bounds.Max},
		QuoteCapacity:     Capacity{Min: quoteMin, Max: quoteMax},
		GrossBaseCapacity: Capacity{Min: grossMin, Max: grossMax},
		Segments:          []EdgeSegment{segment},
		Multiplier:        decimalx.FromInt(1, scale),
	}, nil
}

func feeAdjustedBuyRate(order money.Order, effectiveQuoteAtMax money.Money, scale int32) decimalx.Decimal {
	if order.Bounds.Max.IsZero() {
		return order.Rate.Rate()
	}
	rate, err := effectiveQuoteAtMax.Amount().Div(order.Bounds.Max.Amount(), scale)
	if err != nil {
		return order.Rate.Rate()
	}
	return rate
}

// HasNode reports whether c appears as a From or To endpoint of any edge.
func (g *Graph) HasNode(c money.Currency) bool {
	if _, ok := g.edges[c]; ok {
		return true
	}
	for _, edges := range g.edges {
		for _, e := range edges {
			if e.To == c {
				return true
			}
		}
	}
	return false
}

// Neighbors returns the outgoing edges from node c.
func (g *Graph) Neighbors(c money.Currency) []Edge {
	return g.edges[c]
}

// WithoutOrders returns a new Graph omitting edges whose order identity is
// in excluded.
func (g *Graph) WithoutOrders(excluded map[money.OrderID]bool) *Graph {
	out := &Graph{edges: make(map[money.Currency][]Edge, len(g.edges))}
	for from, edges := range g.edges {
		kept := make([]Edge, 0, len(edges))
		for _, e := range edges {
			if !excluded[e.Order.ID] {
				kept = append(kept, e)
			}
		}
		if len(kept) > 0 {
			out.edges[from] = kept
		}
	}
	return out
}

// WithOrderPenalties returns a new Graph where each edge's effective rate
// is multiplicatively penalized by (1-p)^usage[order], worsening it. The
// graph itself is not pruned; penalization only biases search-time cost.
func (g *Graph) WithOrderPenalties(usage map[money.OrderID]int, p decimalx.Decimal, scale int32) *Graph {
	out := &Graph{edges: make(map[money.Currency][]Edge, len(g.edges))}
	factor, _ := decimalx.FromInt(1, scale).Sub(p, scale)
	for from, edges := range g.edges {
		copied := make([]Edge, len(edges))
		for i, e := range edges {
			copied[i] = e.WithMultiplier(pow(factor, usage[e.Order.ID], scale))
		}
		out.edges[from] = copied
	}
	return out
}

func pow(base decimalx.Decimal, n int, scale int32) decimalx.Decimal {
	result := decimalx.FromInt(1, scale)
	for i := 0; i < n; i++ {
		result, _ = result.Mul(base, scale)
	}
	return result
}
