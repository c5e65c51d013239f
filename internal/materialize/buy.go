package materialize

import (
	"github.com/mExOms/pathfinder/internal/graph"
	"github.com/mExOms/pathfinder/internal/money"
)

const maxBuyIterations = 12

// resolveBuyLeg fills edge.Order against netSeed (in edge.From == base
// currency), bounded by grossCeiling.
func resolveBuyLeg(edge graph.Edge, netSeed, grossCeiling money.Money) (Leg, bool, error) {
	order := edge.Order

	minGross, _, _, err := fillBuy(order, order.Bounds.Min)
	if err != nil {
		return Leg{}, false, err
	}
	if minGross.Cmp(grossCeiling) > 0 {
		return Leg{}, false, nil
	}

	netCandidate := order.Bounds.Clamp(netSeed)
	for i := 0; i < maxBuyIterations; i++ {
		gross, quote, fees, err := fillBuy(order, netCandidate)
		if err != nil {
			return Leg{}, false, err
		}
		if gross.Cmp(grossCeiling) <= 0 {
			return Leg{
				From:     edge.From,
				To:       edge.To,
				Side:     edge.Side,
				Order:    order,
				Spent:    gross,
				Received: quote,
				Fees:     fees,
			}, true, nil
		}

		ratio, err := grossCeiling.Amount().Div(gross.Amount(), Scale)
		if err != nil || ratio.IsZero() {
			return Leg{}, false, nil
		}
		scaledAmount, err := netCandidate.Amount().Mul(ratio, netCandidate.Scale())
		if err != nil {
			return Leg{}, false, err
		}
		scaled, err := money.New(scaledAmount, netCandidate.Currency())
		if err != nil {
			return Leg{}, false, err
		}
		next := order.Bounds.Clamp(scaled)
		if next.Cmp(netCandidate) == 0 {
			return Leg{}, false, nil
		}
		netCandidate = next
	}
	return Leg{}, false, nil
}

// fillBuy evaluates order at a concrete base fill, returning the gross
// base spend, the effective quote received, and the fee charged.
func fillBuy(order money.Order, base money.Money) (gross, quote money.Money, fees money.FeeBreakdown, err error) {
	gross, err = order.CalculateGrossBaseSpend(base, Scale)
	if err != nil {
		return money.Money{}, money.Money{}, money.FeeBreakdown{}, err
	}
	quote, err = order.CalculateEffectiveQuoteAmount(base, Scale)
	if err != nil {
		return money.Money{}, money.Money{}, money.FeeBreakdown{}, err
	}
	if !order.HasFeePolicy() {
		return gross, quote, money.NoFee, nil
	}
	rawQuote, err := order.CalculateQuoteAmount(base, Scale)
	if err != nil {
		return money.Money{}, money.Money{}, money.FeeBreakdown{}, err
	}
	fees, err = order.FeePolicy.Calculate(order.Side, base, rawQuote)
	if err != nil {
		return money.Money{}, money.Money{}, money.FeeBreakdown{}, err
	}
	return gross, quote, fees, nil
}
