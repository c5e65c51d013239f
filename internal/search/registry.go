package search

import (
	"github.com/mExOms/pathfinder/internal/decimalx"
	"github.com/mExOms/pathfinder/internal/money"
)

// record is a (cost, hops) pair kept per node for dominance bookkeeping,
// tagged with the state signature it was registered under; dominated
// does not compare signatures.
type record struct {
	signature string
	cost      decimalx.Decimal
	hops      int
}

func (r record) dominates(cost decimalx.Decimal, hops int) bool {
	return r.cost.Cmp(cost) <= 0 && r.hops <= hops
}

// stateRegistry holds, per node, the Pareto frontier of (cost, hops)
// records used for dominance filtering.
type stateRegistry struct {
	byNode map[money.Currency][]record
}

func newStateRegistry() *stateRegistry {
	return &stateRegistry{byNode: make(map[money.Currency][]record)}
}

// dominated reports whether any existing record at node dominates a
// candidate of the given cost/hops, regardless of signature: a prior
// state with both lower-or-equal cost and lower-or-equal hops makes the
// candidate redundant whether or not its signature matches.
func (s *stateRegistry) dominated(node money.Currency, cost decimalx.Decimal, hops int) bool {
	for _, r := range s.byNode[node] {
		if r.dominates(cost, hops) {
			return true
		}
	}
	return false
}

// register inserts a new record at node, evicting any existing records
// it dominates.
func (s *stateRegistry) register(node money.Currency, signature string, cost decimalx.Decimal, hops int) {
	existing := s.byNode[node]
	kept := existing[:0]
	newRecord := record{signature: signature, cost: cost, hops: hops}
	for _, r := range existing {
		if newRecord.dominates(r.cost, r.hops) {
			continue
		}
		kept = append(kept, r)
	}
	kept = append(kept, newRecord)
	s.byNode[node] = kept
}
