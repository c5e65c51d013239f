package money

import (
	"github.com/mExOms/pathfinder/internal/decimalx"
	"github.com/mExOms/pathfinder/internal/perr"
)

// ExchangeRate converts an amount in Base into Quote: rate > 0, base != quote.
type ExchangeRate struct {
	rate  decimalx.Decimal
	base  Currency
	quote Currency
}

// NewExchangeRate validates rate > 0 and base != quote.
func NewExchangeRate(rate decimalx.Decimal, base, quote Currency) (ExchangeRate, error) {
	if !rate.IsPositive() {
		return ExchangeRate{}, perr.Inputf("money.NewExchangeRate", "rate %s must be positive", rate.String())
	}
	if base == quote {
		return ExchangeRate{}, perr.Inputf("money.NewExchangeRate", "base and quote must differ, both %s", base)
	}
	return ExchangeRate{rate: rate, base: base, quote: quote}, nil
}

func (r ExchangeRate) Rate() decimalx.Decimal { return r.rate }
func (r ExchangeRate) Base() Currency         { return r.base }
func (r ExchangeRate) Quote() Currency        { return r.quote }

// Convert maps baseMoney (which must be in Base currency) into Quote at
// scale s.
func (r ExchangeRate) Convert(baseMoney Money, s int32) (Money, error) {
	if baseMoney.Currency() != r.base {
		return Money{}, perr.Inputf("money.ExchangeRate.Convert", "expected currency %s, got %s", r.base, baseMoney.Currency())
	}
	q, err := baseMoney.Amount().Mul(r.rate, s)
	if err != nil {
		return Money{}, err
	}
	return New(q, r.quote)
}

// Invert returns the reciprocal rate quote->base at the given scale.
func (r ExchangeRate) Invert(s int32) (ExchangeRate, error) {
	one := decimalx.FromInt(1, s)
	inv, err := one.Div(r.rate, s)
	if err != nil {
		return ExchangeRate{}, err
	}
	return NewExchangeRate(inv, r.quote, r.base)
}
