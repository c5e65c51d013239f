package materialize

import (
	"github.com/mExOms/pathfinder/internal/decimalx"
	"github.com/mExOms/pathfinder/internal/graph"
	"github.com/mExOms/pathfinder/internal/money"
)

const maxSellIterations = 16

var relativeTolerance = decimalx.MustParse("0.000001")

// resolveSellLeg fills edge.Order against a desired effective quote
// spend (in edge.From == quote currency), bounded by availableBudget.
func resolveSellLeg(edge graph.Edge, targetEffectiveQuote, availableBudget money.Money) (Leg, bool, error) {
	order := edge.Order

	if !order.HasFeePolicy() {
		inv, err := order.Rate.Invert(Scale)
		if err != nil {
			return Leg{}, false, err
		}
		base, err := inv.Convert(targetEffectiveQuote, Scale)
		if err != nil {
			return Leg{}, false, err
		}
		if !order.Bounds.Contains(base) {
			return Leg{}, false, nil
		}
		if targetEffectiveQuote.Cmp(availableBudget) > 0 {
			return Leg{}, false, nil
		}
		return Leg{
			From:     edge.From,
			To:       edge.To,
			Side:     edge.Side,
			Order:    order,
			Spent:    targetEffectiveQuote,
			Received: base,
			Fees:     money.NoFee,
		}, true, nil
	}

	inv, err := order.Rate.Invert(Scale)
	if err != nil {
		return Leg{}, false, err
	}
	baseAmount, err := inv.Convert(targetEffectiveQuote, Scale)
	if err != nil {
		return Leg{}, false, err
	}
	baseAmount = order.Bounds.Clamp(baseAmount)

	for i := 0; i < maxSellIterations; i++ {
		rawQuote, effQuote, netBase, fees, err := evaluateSell(order, baseAmount)
		if err != nil {
			return Leg{}, false, err
		}

		if relativeDiffExceeds(rawQuote.Amount(), availableBudget.Amount(), relativeTolerance) &&
			rawQuote.Cmp(availableBudget) > 0 {
			ratio, err := availableBudget.Amount().Div(rawQuote.Amount(), Scale)
			if err != nil || !ratio.IsPositive() {
				return Leg{}, false, nil
			}
			next := order.Bounds.Clamp(scaleMoney(baseAmount, ratio))
			if next.Cmp(baseAmount) == 0 {
				return Leg{}, false, nil
			}
			baseAmount = next
			continue
		}

		if !relativeDiffExceeds(effQuote.Amount(), targetEffectiveQuote.Amount(), relativeTolerance) {
			if !order.Bounds.Contains(baseAmount) {
				return Leg{}, false, nil
			}
			return Leg{
				From:     edge.From,
				To:       edge.To,
				Side:     edge.Side,
				Order:    order,
				Spent:    rawQuote,
				Received: netBase,
				Fees:     fees,
			}, true, nil
		}

		ratio, err := targetEffectiveQuote.Amount().Div(effQuote.Amount(), Scale)
		if err != nil || !ratio.IsPositive() {
			return Leg{}, false, nil
		}
		next := order.Bounds.Clamp(scaleMoney(baseAmount, ratio))
		if next.Cmp(baseAmount) == 0 {
			return Leg{}, false, nil
		}
		baseAmount = next
	}
	return Leg{}, false, nil
}

// evaluateSell computes the raw (gross) quote outlay, the fee-adjusted
// effective quote, and the net base received for a candidate base fill.
func evaluateSell(order money.Order, base money.Money) (rawQuote, effQuote, netBase money.Money, fees money.FeeBreakdown, err error) {
	rawQuote, err = order.CalculateQuoteAmount(base, Scale)
	if err != nil {
		return money.Money{}, money.Money{}, money.Money{}, money.FeeBreakdown{}, err
	}
	effQuote, err = order.CalculateEffectiveQuoteAmount(base, Scale)
	if err != nil {
		return money.Money{}, money.Money{}, money.Money{}, money.FeeBreakdown{}, err
	}
	if !order.HasFeePolicy() {
		return rawQuote, effQuote, base, money.NoFee, nil
	}
	fees, err = order.FeePolicy.Calculate(order.Side, base, rawQuote)
	if err != nil {
		return money.Money{}, money.Money{}, money.Money{}, money.FeeBreakdown{}, err
	}
	netBase = base
	if fees.BaseFee != nil {
		netBase, err = base.Sub(fees.BaseFee.WithScale(base.Scale()), base.Scale())
		if err != nil {
			return money.Money{}, money.Money{}, money.Money{}, money.FeeBreakdown{}, err
		}
	}
	return rawQuote, effQuote, netBase, fees, nil
}

func scaleMoney(m money.Money, ratio decimalx.Decimal) money.Money {
	scaled, err := m.Amount().Mul(ratio, m.Scale())
	if err != nil {
		return m
	}
	out, err := money.New(scaled, m.Currency())
	if err != nil {
		return m
	}
	return out
}

// relativeDiffExceeds reports whether |a-b|/|b| > tol, treating a zero
// denominator as exceeded unless a is also zero — the same zero-baseline
// rule the tolerance evaluator applies, here used for this leg's own
// convergence check.
func relativeDiffExceeds(a, b, tol decimalx.Decimal) bool {
	if b.IsZero() {
		return !a.IsZero()
	}
	diff, _ := a.Sub(b, Scale)
	ratio, err := diff.Abs().Div(b.Abs(), Scale)
	if err != nil {
		return true
	}
	return ratio.GreaterThan(tol)
}
