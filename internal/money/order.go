package money

import "github.com/mExOms/pathfinder/internal/perr"

// OrderID is a stable identity assigned to an order within an OrderBook,
// used as the value-handle back-reference from paths to the orders that
// produced them.
type OrderID int

// Order is a single resting limit order: a side, the asset pair it trades,
// its base-currency fill bounds, its effective rate, and an optional fee
// policy.
type Order struct {
	ID         OrderID
	Side       Side
	Pair       AssetPair
	Bounds     OrderBounds
	Rate       ExchangeRate
	FeePolicy  FeePolicy
}

// NewOrder validates that Bounds is denominated in Pair.Base and that
// Rate's base/quote match Pair exactly.
func NewOrder(id OrderID, side Side, pair AssetPair, bounds OrderBounds, rate ExchangeRate, feePolicy FeePolicy) (Order, error) {
	if bounds.Min.Currency() != pair.Base {
		return Order{}, perr.Inputf("money.NewOrder", "bounds currency %s must match pair base %s", bounds.Min.Currency(), pair.Base)
	}
	if rate.Base() != pair.Base || rate.Quote() != pair.Quote {
		return Order{}, perr.Inputf("money.NewOrder", "rate %s/%s must match pair %s/%s", rate.Base(), rate.Quote(), pair.Base, pair.Quote)
	}
	return Order{ID: id, Side: side, Pair: pair, Bounds: bounds, Rate: rate, FeePolicy: feePolicy}, nil
}

// HasFeePolicy reports whether this order carries a fee policy that can
// charge a fee: a nil policy and NoFeePolicy both report false.
func (o Order) HasFeePolicy() bool {
	if o.FeePolicy == nil {
		return false
	}
	_, none := o.FeePolicy.(NoFeePolicy)
	return !none
}

// CalculateQuoteAmount converts a base-currency fill into the raw quote
// amount at scale s, with no fee adjustment.
func (o Order) CalculateQuoteAmount(base Money, s int32) (Money, error) {
	return o.Rate.Convert(base, s)
}

// CalculateEffectiveQuoteAmount is the raw quote amount minus any
// quote-denominated fee.
func (o Order) CalculateEffectiveQuoteAmount(base Money, s int32) (Money, error) {
	raw, err := o.CalculateQuoteAmount(base, s)
	if err != nil {
		return Money{}, err
	}
	if !o.HasFeePolicy() {
		return raw, nil
	}
	fees, err := o.FeePolicy.Calculate(o.Side, base, raw)
	if err != nil {
		return Money{}, err
	}
	if fees.QuoteFee == nil {
		return raw, nil
	}
	return raw.Sub(fees.QuoteFee.WithScale(s), s)
}

// CalculateGrossBaseSpend is the base amount plus any base-denominated
// fee the taker must additionally cover.
func (o Order) CalculateGrossBaseSpend(base Money, s int32) (Money, error) {
	if !o.HasFeePolicy() {
		return base.WithScale(s), nil
	}
	quote, err := o.CalculateQuoteAmount(base, s)
	if err != nil {
		return Money{}, err
	}
	fees, err := o.FeePolicy.Calculate(o.Side, base, quote)
	if err != nil {
		return Money{}, err
	}
	if fees.BaseFee == nil {
		return base.WithScale(s), nil
	}
	return base.Add(fees.BaseFee.WithScale(s), s)
}

// OrderBook is an ordered sequence of orders.
type OrderBook []Order
