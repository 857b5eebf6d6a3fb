package llamma

import (
	"errors"
	"math/big"
	"testing"

	"llamalend/core"
	"llamalend/pkg/number"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckSlippage(t *testing.T) {
	assert.NoError(t, CheckSlippage(number.Decimal("0.1")))
	assert.NoError(t, CheckSlippage(number.Decimal("100")))

	for _, s := range []string{"0", "-1", "100.01"} {
		assert.True(t, errors.Is(CheckSlippage(number.Decimal(s)), core.ErrSlippageOutOfRange), s)
	}
}

func TestMinAmountOut(t *testing.T) {
	min := MinAmountOut(number.Decimal("1000"), number.Decimal("0.5"), 18)
	assert.Equal(t, "995000000000000000000", min.String())

	min = MinAmountOut(number.Decimal("10"), number.Decimal("100"), 6)
	assert.Equal(t, "0", min.String())
}

func TestPartialMinAmountOut(t *testing.T) {
	frac, err := CalcPartialFrac(number.Decimal("25"), number.Decimal("100"), 18)
	require.NoError(t, err)

	min := PartialMinAmountOut(number.Decimal("1000"), frac.Frac, number.Decimal("0.5"), 18)
	assert.Equal(t, "248750000000000000000", min.String())
}

func TestCalcPartialFrac(t *testing.T) {
	frac, err := CalcPartialFrac(number.Decimal("25"), number.Decimal("100"), 18)
	require.NoError(t, err)
	assert.Equal(t, "250000000000000000", frac.Frac.String())
	assert.Equal(t, "0.25", frac.FracDecimal.String())
	assert.Equal(t, "25", frac.Amount.String())

	_, err = CalcPartialFrac(number.Decimal("100.000001"), number.Decimal("100"), 18)
	assert.True(t, errors.Is(err, core.ErrAmountExceedsLiquidatable))

	_, err = CalcPartialFrac(decimal.Zero, number.Decimal("100"), 18)
	assert.True(t, errors.Is(err, core.ErrAmountMustBePositive))

	_, err = CalcPartialFrac(number.Decimal("-1"), number.Decimal("100"), 18)
	assert.True(t, errors.Is(err, core.ErrAmountMustBePositive))
}

func TestCalcPartialFracTruncatesAmount(t *testing.T) {
	frac, err := CalcPartialFrac(number.Decimal("1.0000001"), number.Decimal("4"), 6)
	require.NoError(t, err)
	assert.Equal(t, "1", frac.Amount.String())
	assert.Equal(t, "0.25", frac.FracDecimal.String())
	assert.True(t, frac.FracDecimal.Mul(number.Decimal("4")).Equal(frac.Amount))

	_, err = CalcPartialFrac(number.Decimal("0.0000001"), number.Decimal("4"), 6)
	assert.True(t, errors.Is(err, core.ErrAmountMustBePositive))
}

func TestCheckFrac(t *testing.T) {
	assert.NoError(t, CheckFrac(&core.Fraction{Frac: number.ToRaw(number.Decimal("1"), FracPrecision)}))
	assert.NoError(t, CheckFrac(&core.Fraction{Frac: big.NewInt(1)}))

	assert.True(t, errors.Is(CheckFrac(nil), core.ErrAmountMustBePositive))
	assert.True(t, errors.Is(CheckFrac(&core.Fraction{Frac: big.NewInt(0)}), core.ErrAmountMustBePositive))

	over := &core.Fraction{Frac: number.ToRaw(number.Decimal("1.000000000000000001"), FracPrecision)}
	assert.True(t, errors.Is(CheckFrac(over), core.ErrAmountExceedsLiquidatable))
}

func TestCalcPartialFracRoundTrip(t *testing.T) {
	tokens := number.Decimal("3.000000000000000001")
	tolerance := tokens.Shift(-17)

	for _, v := range []string{"1", "0.000001", "1.5", "2.999999999999999999", "3.000000000000000001"} {
		amount := number.Decimal(v)
		frac, err := CalcPartialFrac(amount, tokens, 18)
		require.NoError(t, err, v)

		back := frac.FracDecimal.Mul(tokens)
		assert.True(t, amount.Sub(back).Abs().LessThanOrEqual(tolerance), "%s -> %s", v, back)
		assert.True(t, number.FromRaw(frac.Frac, FracPrecision).Equal(frac.FracDecimal), v)
	}
}
