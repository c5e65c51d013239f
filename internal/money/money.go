package money

import (
	"github.com/mExOms/pathfinder/internal/decimalx"
	"github.com/mExOms/pathfinder/internal/perr"
)

// Money is a non-negative Decimal amount tagged with a Currency and a
// display scale.
type Money struct {
	amount   decimalx.Decimal
	currency Currency
}

// New builds a Money value. amount must be non-negative and currency
// non-empty; both are input errors otherwise.
func New(amount decimalx.Decimal, currency Currency) (Money, error) {
	if amount.IsNegative() {
		return Money{}, perr.Inputf("money.New", "amount %s must be non-negative", amount.String())
	}
	if currency == "" {
		return Money{}, perr.Input("money.New", "currency must not be empty")
	}
	return Money{amount: amount, currency: currency}, nil
}

// Zero builds a zero Money value at the given scale.
func Zero(currency Currency, scale int32) Money {
	return Money{amount: decimalx.Zero(scale), currency: currency}
}

func (m Money) Amount() decimalx.Decimal { return m.amount }
func (m Money) Currency() Currency       { return m.currency }
func (m Money) Scale() int32             { return m.amount.Scale() }
func (m Money) IsZero() bool             { return m.amount.IsZero() }

// WithScale re-scales the amount half-up without changing currency
// identity.
func (m Money) WithScale(s int32) Money {
	return Money{amount: m.amount.WithScale(s), currency: m.currency}
}

func (m Money) sameCurrency(op string, o Money) error {
	if m.currency != o.currency {
		return perr.Inputf(op, "currency mismatch: %s vs %s", m.currency, o.currency)
	}
	return nil
}

// Add adds two same-currency Money values, rounding to resultScale.
func (m Money) Add(o Money, resultScale int32) (Money, error) {
	if err := m.sameCurrency("money.Money.Add", o); err != nil {
		return Money{}, err
	}
	sum, err := m.amount.Add(o.amount, resultScale)
	if err != nil {
		return Money{}, err
	}
	return New(sum, m.currency)
}

// Sub subtracts o from m, rounding to resultScale. The result must remain
// non-negative (Money invariant); a negative result is an input error.
func (m Money) Sub(o Money, resultScale int32) (Money, error) {
	if err := m.sameCurrency("money.Money.Sub", o); err != nil {
		return Money{}, err
	}
	diff, err := m.amount.Sub(o.amount, resultScale)
	if err != nil {
		return Money{}, err
	}
	return New(diff, m.currency)
}

// Cmp compares two same-currency Money values by numeric value. Callers
// must check currency equality first; Cmp panics on mismatch to surface
// a programming error immediately rather than silently compare across
// currencies.
func (m Money) Cmp(o Money) int {
	if m.currency != o.currency {
		panic("money: Cmp across mismatched currencies " + string(m.currency) + " vs " + string(o.currency))
	}
	return m.amount.Cmp(o.amount)
}

func (m Money) String() string {
	return m.amount.String() + " " + string(m.currency)
}
