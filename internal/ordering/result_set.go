package ordering

import (
	"container/heap"
	"sort"
)

// ResultSet is a K-bounded, signature-deduplicated collection of results.
// It keeps the best-K results seen so far, evicting the worst on overflow,
// and preserves only the first (best) occurrence of any route signature —
// the engine discovers routes in best-first order, so the first arrival
// at a signature is already optimal.
type ResultSet[T any] struct {
	k        int
	strategy Strategy
	worst    *worstHeap[T]
	seen     map[string]int // route signatures currently kept (value unused), for dedup and eviction bookkeeping
}

type item[T any] struct {
	key   Key
	value T
}

// worstHeap is a max-heap under Strategy: Pop yields the worst item, a
// small item/queue pair inverted from the usual min-heap shape so the
// root is the eviction candidate rather than the best candidate.
type worstHeap[T any] struct {
	items    []item[T]
	strategy Strategy
}

func (h *worstHeap[T]) Len() int { return len(h.items) }
func (h *worstHeap[T]) Less(i, j int) bool {
	return h.strategy.Less(h.items[j].key, h.items[i].key)
}
func (h *worstHeap[T]) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *worstHeap[T]) Push(x any)    { h.items = append(h.items, x.(item[T])) }
func (h *worstHeap[T]) Pop() any {
	old := h.items
	n := len(old)
	it := old[n-1]
	h.items = old[:n-1]
	return it
}

// NewResultSet builds a result set bounded to k entries.
func NewResultSet[T any](k int, strategy Strategy) *ResultSet[T] {
	return &ResultSet[T]{
		k:        k,
		strategy: strategy,
		worst:    &worstHeap[T]{strategy: strategy},
		seen:     make(map[string]int),
	}
}

// Add offers (key, value) for inclusion. It returns false when the
// signature is a duplicate of one already kept, or when the set is full
// and key is not better than the current worst entry.
func (rs *ResultSet[T]) Add(key Key, value T) bool {
	if _, dup := rs.seen[key.RouteSignature]; dup {
		return false
	}
	if rs.worst.Len() < rs.k {
		heap.Push(rs.worst, item[T]{key: key, value: value})
		rs.seen[key.RouteSignature] = 1
		return true
	}
	worstItem := rs.worst.items[0]
	if !rs.strategy.Less(key, worstItem.key) {
		return false
	}
	heap.Pop(rs.worst)
	delete(rs.seen, worstItem.key.RouteSignature)
	heap.Push(rs.worst, item[T]{key: key, value: value})
	rs.seen[key.RouteSignature] = 1
	return true
}

// Len reports the number of entries currently kept.
func (rs *ResultSet[T]) Len() int { return rs.worst.Len() }

// Drain returns the kept entries sorted best-first by Strategy. The
// ResultSet is left empty.
func (rs *ResultSet[T]) Drain() []T {
	items := make([]item[T], len(rs.worst.items))
	copy(items, rs.worst.items)
	sort.Slice(items, func(i, j int) bool {
		return rs.strategy.Less(items[i].key, items[j].key)
	})
	out := make([]T, len(items))
	for i, it := range items {
		out[i] = it.value
	}
	rs.worst.items = nil
	rs.seen = make(map[string]int)
	return out
}
