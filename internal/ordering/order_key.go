// Package ordering implements deterministic total ordering over
// candidate states and results, plus a K-bounded result set, built on a
// small container/heap item/queue pair generalized from a single int
// distance to the full (cost, hops, signature, insertionOrder) key.
package ordering

import "github.com/mExOms/pathfinder/internal/decimalx"

// Key is the total order over candidate paths: cost ascending, hops
// ascending, RouteSignature lexicographic ascending, insertionOrder
// ascending.
type Key struct {
	Cost           decimalx.Decimal
	Hops           int
	RouteSignature string
	InsertionOrder int64
}

// Strategy compares two Keys, reporting whether a sorts before b.
type Strategy interface {
	Less(a, b Key) bool
}

// CostHopsSignature is the default ordering strategy: compares cost
// rounded to Scale, then hops, then RouteSignature, then insertion
// order.
type CostHopsSignature struct {
	Scale int32
}

func (s CostHopsSignature) Less(a, b Key) bool {
	ca, cb := a.Cost.WithScale(s.Scale), b.Cost.WithScale(s.Scale)
	if c := ca.Cmp(cb); c != 0 {
		return c < 0
	}
	if a.Hops != b.Hops {
		return a.Hops < b.Hops
	}
	if a.RouteSignature != b.RouteSignature {
		return a.RouteSignature < b.RouteSignature
	}
	return a.InsertionOrder < b.InsertionOrder
}
