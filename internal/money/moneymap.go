package money

import "sort"

// MoneyMap aggregates Money values by currency, the shape used to
// serialize fee breakdowns and totals for external callers.
type MoneyMap map[Currency]Money

// NewMoneyMap builds an empty map.
func NewMoneyMap() MoneyMap { return make(MoneyMap) }

// Add merges v into the map, summing with any existing entry for v's
// currency at resultScale.
func (m MoneyMap) Add(v Money, resultScale int32) error {
	existing, ok := m[v.Currency()]
	if !ok {
		m[v.Currency()] = v.WithScale(resultScale)
		return nil
	}
	sum, err := existing.Add(v, resultScale)
	if err != nil {
		return err
	}
	m[v.Currency()] = sum
	return nil
}

// AddFeeBreakdown folds both sides of a fee breakdown into the map.
func (m MoneyMap) AddFeeBreakdown(f FeeBreakdown, resultScale int32) error {
	if f.BaseFee != nil {
		if err := m.Add(*f.BaseFee, resultScale); err != nil {
			return err
		}
	}
	if f.QuoteFee != nil {
		if err := m.Add(*f.QuoteFee, resultScale); err != nil {
			return err
		}
	}
	return nil
}

// Currencies returns the map's keys sorted lexicographically, the
// deterministic order external serialization requires.
func (m MoneyMap) Currencies() []Currency {
	out := make([]Currency, 0, len(m))
	for c := range m {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
