package money

import "github.com/mExOms/pathfinder/internal/perr"

// FeeBreakdown is the fee charged on a fill, split by which side of the
// trade it is denominated in. Either side may be the zero value (absent).
type FeeBreakdown struct {
	BaseFee  *Money
	QuoteFee *Money
}

// NoFee is the absent breakdown.
var NoFee = FeeBreakdown{}

// Merge adds matching-currency fees together; mismatched currencies on
// either side are an input error.
func (f FeeBreakdown) Merge(o FeeBreakdown, resultScale int32) (FeeBreakdown, error) {
	merged := FeeBreakdown{}
	base, err := mergeSide(f.BaseFee, o.BaseFee, resultScale)
	if err != nil {
		return FeeBreakdown{}, err
	}
	merged.BaseFee = base
	quote, err := mergeSide(f.QuoteFee, o.QuoteFee, resultScale)
	if err != nil {
		return FeeBreakdown{}, err
	}
	merged.QuoteFee = quote
	return merged, nil
}

func mergeSide(a, b *Money, resultScale int32) (*Money, error) {
	switch {
	case a == nil && b == nil:
		return nil, nil
	case a == nil:
		v := b.WithScale(resultScale)
		return &v, nil
	case b == nil:
		v := a.WithScale(resultScale)
		return &v, nil
	default:
		sum, err := a.Add(*b, resultScale)
		if err != nil {
			return nil, perr.Inputf("money.FeeBreakdown.Merge", "cannot merge fees: %v", err)
		}
		return &sum, nil
	}
}

// FeePolicy is a capability: given a fill's side and concrete base/quote
// amounts, it produces the fee charged. Fingerprint is a stable string
// identifying the policy's configuration, used to build deterministic
// route signatures without inspecting opaque policy state.
type FeePolicy interface {
	Calculate(side Side, base, quote Money) (FeeBreakdown, error)
	Fingerprint() string
}

// NoFeePolicy charges nothing and fingerprints as "none".
type NoFeePolicy struct{}

func (NoFeePolicy) Calculate(Side, Money, Money) (FeeBreakdown, error) { return NoFee, nil }
func (NoFeePolicy) Fingerprint() string                                { return "none" }

// FlatRateFeePolicy charges a fixed percentage of the quote-side amount,
// the common flat "taker fee" shape.
type FlatRateFeePolicy struct {
	// RatePermille is parts-per-thousand to keep the fingerprint a plain
	// integer rather than a floating point literal.
	RatePermille int64
	Scale        int32
}

// NewFlatRateFeePolicy validates RatePermille before construction: a rate
// over 1000 (100%) would drive CalculateEffectiveQuoteAmount's fee
// subtraction negative, which money.Sub rejects. Rejecting it here keeps
// that failure local to order construction rather than surfacing deep
// inside a search run.
func NewFlatRateFeePolicy(ratePermille int64, scale int32) (FlatRateFeePolicy, error) {
	if ratePermille < 0 || ratePermille > 1000 {
		return FlatRateFeePolicy{}, perr.Inputf("money.NewFlatRateFeePolicy", "rate %d permille must be within [0, 1000]", ratePermille)
	}
	return FlatRateFeePolicy{RatePermille: ratePermille, Scale: scale}, nil
}

func (p FlatRateFeePolicy) Calculate(side Side, base, quote Money) (FeeBreakdown, error) {
	rate := ratioFromPermille(p.RatePermille, p.Scale)
	switch side {
	case Buy:
		fee, err := quote.Amount().Mul(rate, p.Scale)
		if err != nil {
			return FeeBreakdown{}, err
		}
		feeMoney, err := New(fee, quote.Currency())
		if err != nil {
			return FeeBreakdown{}, err
		}
		return FeeBreakdown{QuoteFee: &feeMoney}, nil
	case Sell:
		fee, err := quote.Amount().Mul(rate, p.Scale)
		if err != nil {
			return FeeBreakdown{}, err
		}
		feeMoney, err := New(fee, quote.Currency())
		if err != nil {
			return FeeBreakdown{}, err
		}
		return FeeBreakdown{QuoteFee: &feeMoney}, nil
	default:
		return FeeBreakdown{}, perr.Inputf("money.FlatRateFeePolicy.Calculate", "unknown side %v", side)
	}
}

func (p FlatRateFeePolicy) Fingerprint() string {
	return "flat-rate:" + itoa(p.RatePermille) + "permille"
}
