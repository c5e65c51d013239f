package search

import (
	"container/heap"

	"github.com/mExOms/pathfinder/internal/decimalx"
	"github.com/mExOms/pathfinder/internal/graph"
	"github.com/mExOms/pathfinder/internal/money"
	"github.com/mExOms/pathfinder/internal/ordering"
)

// frontierState is one queued search state.
type frontierState struct {
	node    money.Currency
	cost    decimalx.Decimal
	product decimalx.Decimal
	hops    int
	edges   []graph.Edge
	visited map[money.Currency]bool

	hasRange bool
	rng      SpendRange
	desired  money.Money

	key ordering.Key
}

// frontier is a min-heap over frontierState ordered by (cost, hops,
// routeSignature, insertionOrder), the classic container/heap item/queue
// pair used for a priority-queue-driven shortest-path search.
type frontier struct {
	items    []*frontierState
	strategy ordering.Strategy
}

func (f *frontier) Len() int { return len(f.items) }
func (f *frontier) Less(i, j int) bool {
	return f.strategy.Less(f.items[i].key, f.items[j].key)
}
func (f *frontier) Swap(i, j int) { f.items[i], f.items[j] = f.items[j], f.items[i] }
func (f *frontier) Push(x any)    { f.items = append(f.items, x.(*frontierState)) }
func (f *frontier) Pop() any {
	old := f.items
	n := len(old)
	it := old[n-1]
	f.items = old[:n-1]
	return it
}

func newFrontier(strategy ordering.Strategy) *frontier {
	return &frontier{strategy: strategy}
}

func (f *frontier) push(s *frontierState) { heap.Push(f, s) }
func (f *frontier) pop() *frontierState   { return heap.Pop(f).(*frontierState) }
