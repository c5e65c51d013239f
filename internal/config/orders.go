package config

import (
	"github.com/spf13/viper"

	"github.com/mExOms/pathfinder/internal/decimalx"
	"github.com/mExOms/pathfinder/internal/money"
	"github.com/mExOms/pathfinder/internal/perr"
)

// OrderSpec is the on-disk shape of one order book entry, decoded by
// viper/mapstructure.
type OrderSpec struct {
	ID              int    `mapstructure:"id"`
	Side            string `mapstructure:"side"`
	Base            string `mapstructure:"base"`
	Quote           string `mapstructure:"quote"`
	MinBase         string `mapstructure:"minBase"`
	MaxBase         string `mapstructure:"maxBase"`
	Rate            string `mapstructure:"rate"`
	FeeRatePermille *int64 `mapstructure:"feeRatePermille"`
}

// Scale is the fixed-point scale order-book amounts parse at.
const Scale = decimalx.CanonicalScale

// LoadOrderBook reads an order book from path. An empty path yields a
// small illustrative demo book so the CLI runs with zero configuration.
func LoadOrderBook(path string) (money.OrderBook, error) {
	if path == "" {
		return demoOrderBook()
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var specs []OrderSpec
	if err := v.UnmarshalKey("orders", &specs); err != nil {
		return nil, err
	}
	return buildOrderBook(specs)
}

func buildOrderBook(specs []OrderSpec) (money.OrderBook, error) {
	book := make(money.OrderBook, 0, len(specs))
	for _, spec := range specs {
		order, err := spec.toOrder()
		if err != nil {
			return nil, err
		}
		book = append(book, order)
	}
	return book, nil
}

func (spec OrderSpec) toOrder() (money.Order, error) {
	base, err := money.NormalizeCurrency(spec.Base)
	if err != nil {
		return money.Order{}, err
	}
	quote, err := money.NormalizeCurrency(spec.Quote)
	if err != nil {
		return money.Order{}, err
	}
	pair, err := money.NewAssetPair(base, quote)
	if err != nil {
		return money.Order{}, err
	}

	minAmt, err := decimalx.Parse(spec.MinBase)
	if err != nil {
		return money.Order{}, err
	}
	maxAmt, err := decimalx.Parse(spec.MaxBase)
	if err != nil {
		return money.Order{}, err
	}
	minMoney, err := money.New(minAmt.WithScale(Scale), base)
	if err != nil {
		return money.Order{}, err
	}
	maxMoney, err := money.New(maxAmt.WithScale(Scale), base)
	if err != nil {
		return money.Order{}, err
	}
	bounds, err := money.NewOrderBounds(minMoney, maxMoney)
	if err != nil {
		return money.Order{}, err
	}

	rateAmt, err := decimalx.Parse(spec.Rate)
	if err != nil {
		return money.Order{}, err
	}
	rate, err := money.NewExchangeRate(rateAmt.WithScale(Scale), base, quote)
	if err != nil {
		return money.Order{}, err
	}

	var side money.Side
	switch spec.Side {
	case "buy", "Buy", "BUY":
		side = money.Buy
	case "sell", "Sell", "SELL":
		side = money.Sell
	default:
		return money.Order{}, perr.Inputf("config.OrderSpec.toOrder", "unknown side %q", spec.Side)
	}

	var feePolicy money.FeePolicy = money.NoFeePolicy{}
	if spec.FeeRatePermille != nil {
		feePolicy, err = money.NewFlatRateFeePolicy(*spec.FeeRatePermille, Scale)
		if err != nil {
			return money.Order{}, err
		}
	}

	return money.NewOrder(money.OrderID(spec.ID), side, pair, bounds, rate, feePolicy)
}

func demoOrderBook() (money.OrderBook, error) {
	specs := []OrderSpec{
		{ID: 1, Side: "sell", Base: "BTC", Quote: "USD", MinBase: "0.001", MaxBase: "5", Rate: "30000"},
		{ID: 2, Side: "buy", Base: "USD", Quote: "EUR", MinBase: "10", MaxBase: "100000", Rate: "0.92"},
		{ID: 3, Side: "sell", Base: "BTC", Quote: "EUR", MinBase: "0.001", MaxBase: "5", Rate: "27500"},
	}
	return buildOrderBook(specs)
}
