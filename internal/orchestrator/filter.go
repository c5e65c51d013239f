package orchestrator

import (
	"github.com/mExOms/pathfinder/internal/money"
)

// filterOrders drops orders that could never be used as a path's first
// hop because their minimum required input already exceeds the total
// spend. An order whose minimum-input currency differs from spend's
// currency is never filtered here: cycle prevention means an edge
// departing in spend's currency can only ever be the first hop, so this
// filter cannot incorrectly discard a usable later hop.
func filterOrders(book money.OrderBook, spend money.Money, scale int32) money.OrderBook {
	kept := make(money.OrderBook, 0, len(book))
	for _, order := range book {
		min, err := minimumInput(order, scale)
		if err != nil {
			continue
		}
		if min.Currency() == spend.Currency() && min.Cmp(spend) > 0 {
			continue
		}
		kept = append(kept, order)
	}
	return kept
}

// minimumInput is the smallest amount, in the currency a traveler would
// have to provide, that fills order at all.
func minimumInput(order money.Order, scale int32) (money.Money, error) {
	switch order.Side {
	case money.Buy:
		return order.CalculateGrossBaseSpend(order.Bounds.Min, scale)
	default:
		return order.CalculateQuoteAmount(order.Bounds.Min, scale)
	}
}
