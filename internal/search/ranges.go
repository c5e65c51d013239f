package search

import (
	"github.com/mExOms/pathfinder/internal/graph"
	"github.com/mExOms/pathfinder/internal/money"
)

// intersectRange narrows r (in the edge's From currency) to cap, the
// edge's capacity in that same currency. An empty intersection is
// reported via ok=false.
func intersectRange(r SpendRange, cap graph.Capacity) (SpendRange, bool) {
	min := maxMoney(r.Min, cap.Min)
	max := minMoney(r.Max, cap.Max)
	if min.Cmp(max) > 0 {
		return SpendRange{}, false
	}
	return SpendRange{Min: min, Max: max}, true
}

func maxMoney(a, b money.Money) money.Money {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}

func minMoney(a, b money.Money) money.Money {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

// convertRange maps an intersected source range into the target
// currency via a linear map across the edge's (source min, source max)
// -> (target min, target max).
func convertRange(src SpendRange, fromCap, toCap graph.Capacity) (SpendRange, error) {
	newMin, err := linearMap(src.Min, fromCap, toCap)
	if err != nil {
		return SpendRange{}, err
	}
	newMax, err := linearMap(src.Max, fromCap, toCap)
	if err != nil {
		return SpendRange{}, err
	}
	return SpendRange{Min: newMin, Max: newMax}, nil
}

func linearMap(v money.Money, fromCap, toCap graph.Capacity) (money.Money, error) {
	fromMin := fromCap.Min.Amount().WithScale(Scale)
	fromMax := fromCap.Max.Amount().WithScale(Scale)
	toMin := toCap.Min.Amount().WithScale(Scale)
	toMax := toCap.Max.Amount().WithScale(Scale)
	vv := v.Amount().WithScale(Scale)

	denom, err := fromMax.Sub(fromMin, Scale)
	if err != nil {
		return money.Money{}, err
	}
	if denom.IsZero() {
		return money.New(toMin, toCap.Min.Currency())
	}
	numer, err := vv.Sub(fromMin, Scale)
	if err != nil {
		return money.Money{}, err
	}
	ratio, err := numer.Div(denom, Scale)
	if err != nil {
		return money.Money{}, err
	}
	span, err := toMax.Sub(toMin, Scale)
	if err != nil {
		return money.Money{}, err
	}
	delta, err := ratio.Mul(span, Scale)
	if err != nil {
		return money.Money{}, err
	}
	result, err := toMin.Add(delta, Scale)
	if err != nil {
		return money.Money{}, err
	}
	return money.New(result, toCap.Min.Currency())
}

// clampDesired projects desired (in the edge's From currency) into the
// intersected source range, then maps it into the target currency the
// same way the range itself is converted.
func clampDesired(desired money.Money, src SpendRange, fromCap, toCap graph.Capacity) (money.Money, error) {
	clamped := desired
	if clamped.Cmp(src.Min) < 0 {
		clamped = src.Min
	}
	if clamped.Cmp(src.Max) > 0 {
		clamped = src.Max
	}
	return linearMap(clamped, fromCap, toCap)
}
