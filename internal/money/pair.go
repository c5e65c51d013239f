package money

import "github.com/mExOms/pathfinder/internal/perr"

// AssetPair is a (Base, Quote) currency pair; base must differ from quote.
type AssetPair struct {
	Base  Currency
	Quote Currency
}

// NewAssetPair validates base != quote.
func NewAssetPair(base, quote Currency) (AssetPair, error) {
	if base == quote {
		return AssetPair{}, perr.Inputf("money.NewAssetPair", "base and quote must differ, both %s", base)
	}
	return AssetPair{Base: base, Quote: quote}, nil
}
