package money

import "github.com/mExOms/pathfinder/internal/perr"

// OrderBounds is the inclusive [Min, Max] window an order's base-side fill
// must fall within. Min and Max share a currency; scale is
// max(min.scale, max.scale).
type OrderBounds struct {
	Min Money
	Max Money
}

// NewOrderBounds validates same currency and Min <= Max.
func NewOrderBounds(min, max Money) (OrderBounds, error) {
	if min.Currency() != max.Currency() {
		return OrderBounds{}, perr.Inputf("money.NewOrderBounds", "currency mismatch: %s vs %s", min.Currency(), max.Currency())
	}
	scale := min.Scale()
	if max.Scale() > scale {
		scale = max.Scale()
	}
	minS, maxS := min.WithScale(scale), max.WithScale(scale)
	if minS.Cmp(maxS) > 0 {
		return OrderBounds{}, perr.Inputf("money.NewOrderBounds", "min %s exceeds max %s", min.String(), max.String())
	}
	return OrderBounds{Min: minS, Max: maxS}, nil
}

// Contains reports whether m falls within [Min, Max], inclusive.
func (b OrderBounds) Contains(m Money) bool {
	scale := b.scale()
	ms := m.WithScale(scale)
	return ms.Cmp(b.Min.WithScale(scale)) >= 0 && ms.Cmp(b.Max.WithScale(scale)) <= 0
}

// Clamp projects m into [Min, Max].
func (b OrderBounds) Clamp(m Money) Money {
	scale := b.scale()
	ms := m.WithScale(scale)
	min, max := b.Min.WithScale(scale), b.Max.WithScale(scale)
	if ms.Cmp(min) < 0 {
		return min
	}
	if ms.Cmp(max) > 0 {
		return max
	}
	return ms
}

func (b OrderBounds) scale() int32 {
	if b.Max.Scale() > b.Min.Scale() {
		return b.Max.Scale()
	}
	return b.Min.Scale()
}
