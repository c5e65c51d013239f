package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mExOms/pathfinder/internal/decimalx"
)

func mustMoney(t *testing.T, amount string, currency Currency) Money {
	t.Helper()
	d, err := decimalx.Parse(amount)
	require.NoError(t, err)
	m, err := New(d, currency)
	require.NoError(t, err)
	return m
}

func TestNew_RejectsNegativeAmount(t *testing.T) {
	d, err := decimalx.Parse("-1")
	require.NoError(t, err)
	_, err = New(d, "USD")
	assert.Error(t, err)
}

func TestNew_RejectsEmptyCurrency(t *testing.T) {
	_, err := New(decimalx.Zero(2), "")
	assert.Error(t, err)
}

func TestMoney_CmpPanicsOnCurrencyMismatch(t *testing.T) {
	a := mustMoney(t, "1", "USD")
	b := mustMoney(t, "1", "EUR")
	assert.Panics(t, func() { a.Cmp(b) })
}

func TestMoney_AddSub(t *testing.T) {
	a := mustMoney(t, "10.5", "USD")
	b := mustMoney(t, "2.25", "USD")
	sum, err := a.Add(b, 2)
	require.NoError(t, err)
	assert.Equal(t, "12.75", sum.String()[:5])

	diff, err := a.Sub(b, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, diff.Cmp(mustMoney(t, "8.25", "USD")))
}

func TestMoney_SubNegativeResultIsInputError(t *testing.T) {
	a := mustMoney(t, "1", "USD")
	b := mustMoney(t, "2", "USD")
	_, err := a.Sub(b, 2)
	assert.Error(t, err)
}

func TestNormalizeCurrency(t *testing.T) {
	c, err := NormalizeCurrency("  usd ")
	require.NoError(t, err)
	assert.Equal(t, Currency("USD"), c)

	_, err = NormalizeCurrency("u1")
	assert.Error(t, err)

	_, err = NormalizeCurrency("")
	assert.Error(t, err)
}

func TestExchangeRate_ConvertAndInvert(t *testing.T) {
	rate, err := NewExchangeRate(decimalx.FromInt(2, 0), "USD", "EUR")
	require.NoError(t, err)

	converted, err := rate.Convert(mustMoney(t, "10", "USD"), 2)
	require.NoError(t, err)
	assert.Equal(t, 0, converted.Cmp(mustMoney(t, "20", "EUR")))

	inv, err := rate.Invert(4)
	require.NoError(t, err)
	back, err := inv.Convert(converted, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, back.Cmp(mustMoney(t, "10", "USD")))
}

func TestExchangeRate_RejectsZeroOrSamePair(t *testing.T) {
	_, err := NewExchangeRate(decimalx.Zero(2), "USD", "EUR")
	assert.Error(t, err)

	_, err = NewExchangeRate(decimalx.FromInt(1, 0), "USD", "USD")
	assert.Error(t, err)
}

func TestOrderBounds_ClampAndContains(t *testing.T) {
	bounds, err := NewOrderBounds(mustMoney(t, "10", "USD"), mustMoney(t, "100", "USD"))
	require.NoError(t, err)

	assert.True(t, bounds.Contains(mustMoney(t, "50", "USD")))
	assert.False(t, bounds.Contains(mustMoney(t, "5", "USD")))

	assert.Equal(t, 0, bounds.Clamp(mustMoney(t, "5", "USD")).Cmp(mustMoney(t, "10", "USD")))
	assert.Equal(t, 0, bounds.Clamp(mustMoney(t, "500", "USD")).Cmp(mustMoney(t, "100", "USD")))
}

func TestOrderBounds_RejectsMinAboveMax(t *testing.T) {
	_, err := NewOrderBounds(mustMoney(t, "100", "USD"), mustMoney(t, "10", "USD"))
	assert.Error(t, err)
}

func TestFlatRateFeePolicy_ChargesQuoteSideFee(t *testing.T) {
	policy := FlatRateFeePolicy{RatePermille: 10, Scale: 8} // 1%
	fees, err := policy.Calculate(Buy, mustMoney(t, "1", "BTC"), mustMoney(t, "30000", "USD"))
	require.NoError(t, err)
	require.NotNil(t, fees.QuoteFee)
	assert.Equal(t, 0, fees.QuoteFee.Cmp(mustMoney(t, "300", "USD")))
	assert.Nil(t, fees.BaseFee)
}

func TestOrder_CalculateEffectiveQuoteAmountSubtractsFee(t *testing.T) {
	pair, err := NewAssetPair("BTC", "USD")
	require.NoError(t, err)
	bounds, err := NewOrderBounds(mustMoney(t, "0.01", "BTC"), mustMoney(t, "5", "BTC"))
	require.NoError(t, err)
	rate, err := NewExchangeRate(decimalx.FromInt(30000, 0), "BTC", "USD")
	require.NoError(t, err)
	order, err := NewOrder(1, Buy, pair, bounds, rate, FlatRateFeePolicy{RatePermille: 10, Scale: 8})
	require.NoError(t, err)

	effective, err := order.CalculateEffectiveQuoteAmount(mustMoney(t, "1", "BTC"), 8)
	require.NoError(t, err)
	assert.Equal(t, 0, effective.Cmp(mustMoney(t, "29700", "USD")))
}

func TestNewOrder_RejectsMismatchedBoundsOrRate(t *testing.T) {
	pair, err := NewAssetPair("BTC", "USD")
	require.NoError(t, err)
	badBounds, err := NewOrderBounds(mustMoney(t, "1", "USD"), mustMoney(t, "2", "USD"))
	require.NoError(t, err)
	rate, err := NewExchangeRate(decimalx.FromInt(30000, 0), "BTC", "USD")
	require.NoError(t, err)

	_, err = NewOrder(1, Buy, pair, badBounds, rate, nil)
	assert.Error(t, err)
}
