package pathfinder

import (
	"github.com/mExOms/pathfinder/internal/decimalx"
	"github.com/mExOms/pathfinder/internal/guard"
	"github.com/mExOms/pathfinder/internal/money"
	"github.com/mExOms/pathfinder/internal/ordering"
	"github.com/mExOms/pathfinder/internal/search"
)

// PathSearchConfig is the external search configuration: every bound
// the search engine and its downstream stages enforce, expressed in
// serialization-ready fixed-point strings.
type PathSearchConfig struct {
	SpendAmount       Money
	ToleranceMin      string
	ToleranceMax      string
	HopsMin           int
	HopsMax           int
	ResultLimit       int
	MaxExpansions     int
	MaxVisitedStates  int
	TimeBudgetMs      *int
	ThrowOnGuardLimit bool
}

// PathSearchRequest is the external request boundary: an order book, a
// config, and the two asset identifiers to search between.
type PathSearchRequest struct {
	OrderBook   money.OrderBook
	Config      PathSearchConfig
	SourceAsset string
	TargetAsset string
}

// resolve normalizes the request's assets and builds the internal
// search.Config, failing eagerly on any malformed input: empty or
// malformed assets are input errors.
func (r PathSearchRequest) resolve() (source, target money.Currency, cfg search.Config, err error) {
	source, err = money.NormalizeCurrency(r.SourceAsset)
	if err != nil {
		return "", "", search.Config{}, err
	}
	target, err = money.NormalizeCurrency(r.TargetAsset)
	if err != nil {
		return "", "", search.Config{}, err
	}

	spendAmount, err := decimalx.Parse(r.Config.SpendAmount.Amount)
	if err != nil {
		return "", "", search.Config{}, err
	}
	spendCurrency, err := money.NormalizeCurrency(r.Config.SpendAmount.Currency)
	if err != nil {
		return "", "", search.Config{}, err
	}
	spend, err := money.New(spendAmount.WithScale(search.Scale), spendCurrency)
	if err != nil {
		return "", "", search.Config{}, err
	}

	toleranceMin, err := decimalx.Parse(r.Config.ToleranceMin)
	if err != nil {
		return "", "", search.Config{}, err
	}
	toleranceMax, err := decimalx.Parse(r.Config.ToleranceMax)
	if err != nil {
		return "", "", search.Config{}, err
	}

	var timeBudget *int
	if r.Config.TimeBudgetMs != nil {
		v := *r.Config.TimeBudgetMs
		timeBudget = &v
	}

	cfg = search.Config{
		SpendAmount: spend,
		Tolerance: search.ToleranceWindow{
			Min: toleranceMin.WithScale(search.Scale),
			Max: toleranceMax.WithScale(search.Scale),
		},
		Hops:        search.HopLimits{Min: r.Config.HopsMin, Max: r.Config.HopsMax},
		ResultLimit: r.Config.ResultLimit,
		Guard: guard.Limits{
			MaxExpansions:    r.Config.MaxExpansions,
			MaxVisitedStates: r.Config.MaxVisitedStates,
			TimeBudgetMs:     timeBudget,
		},
		ThrowOnGuardLimit: r.Config.ThrowOnGuardLimit,
		Ordering:          ordering.CostHopsSignature{Scale: search.Scale},
	}
	if err := cfg.Validate(); err != nil {
		return "", "", search.Config{}, err
	}
	return source, target, cfg, nil
}
