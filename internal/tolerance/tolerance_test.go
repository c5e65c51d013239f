package tolerance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mExOms/pathfinder/internal/decimalx"
	"github.com/mExOms/pathfinder/internal/money"
)

func mustMoney(t *testing.T, amount string, currency money.Currency) money.Money {
	t.Helper()
	d, err := decimalx.Parse(amount)
	require.NoError(t, err)
	m, err := money.New(d.WithScale(Scale), currency)
	require.NoError(t, err)
	return m
}

func TestEvaluate_ExactMatchHasZeroResidual(t *testing.T) {
	window := Window{Min: decimalx.Zero(Scale), Max: decimalx.Zero(Scale)}
	result, ok, err := Evaluate(mustMoney(t, "100", "USD"), mustMoney(t, "100", "USD"), window)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, result.Residual.IsZero())
}

func TestEvaluate_ShortfallWithinMinWindowAccepted(t *testing.T) {
	window := Window{Min: decimalx.MustParse("0.05"), Max: decimalx.Zero(Scale)}
	_, ok, err := Evaluate(mustMoney(t, "100", "USD"), mustMoney(t, "96", "USD"), window)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEvaluate_ShortfallBeyondMinWindowRejected(t *testing.T) {
	window := Window{Min: decimalx.MustParse("0.01"), Max: decimalx.Zero(Scale)}
	_, ok, err := Evaluate(mustMoney(t, "100", "USD"), mustMoney(t, "96", "USD"), window)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEvaluate_OvershootBeyondMaxWindowRejected(t *testing.T) {
	window := Window{Min: decimalx.Zero(Scale), Max: decimalx.MustParse("0.01")}
	_, ok, err := Evaluate(mustMoney(t, "100", "USD"), mustMoney(t, "105", "USD"), window)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEvaluate_OvershootWithinMaxWindowAccepted(t *testing.T) {
	window := Window{Min: decimalx.Zero(Scale), Max: decimalx.MustParse("0.10")}
	result, ok, err := Evaluate(mustMoney(t, "100", "USD"), mustMoney(t, "105", "USD"), window)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, result.Residual.Cmp(decimalx.MustParse("0.05").WithScale(Scale)))
}

func TestEvaluate_ZeroRequestedAndZeroActualIsZeroResidual(t *testing.T) {
	window := Window{Min: decimalx.Zero(Scale), Max: decimalx.Zero(Scale)}
	result, ok, err := Evaluate(money.Zero("USD", Scale), money.Zero("USD", Scale), window)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, result.Residual.IsZero())
}

func TestEvaluate_ZeroRequestedNonZeroActualIsRejected(t *testing.T) {
	window := Window{Min: decimalx.Zero(Scale), Max: decimalx.MustParse("0.5")}
	_, ok, err := Evaluate(money.Zero("USD", Scale), mustMoney(t, "1", "USD"), window)
	require.NoError(t, err)
	assert.False(t, ok)
}
