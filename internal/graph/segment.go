package graph

import "github.com/mExOms/pathfinder/internal/money"

// SegmentKind tags a capacity slice as required by the fee policy
// (Mandatory) or freely fillable within it (Optional).
type SegmentKind int

const (
	Mandatory SegmentKind = iota
	Optional
)

// EdgeSegment is a slice of an edge's capacity with matched base, quote,
// and gross-base ranges. Gross base includes any base-denominated fee on
// top of the base amount a taker must cover.
type EdgeSegment struct {
	Kind          SegmentKind
	BaseMin       money.Money
	BaseMax       money.Money
	QuoteMin      money.Money
	QuoteMax      money.Money
	GrossBaseMin  money.Money
	GrossBaseMax  money.Money
}
