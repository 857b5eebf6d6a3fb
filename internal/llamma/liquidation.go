package llamma

import (
	"math/big"

	"llamalend/core"
	"llamalend/pkg/number"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	// FracPrecision 1e18 is 100%
	FracPrecision int32 = 18
	fracOne             = new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(FracPrecision)), nil)
)

// CheckSlippage slippage must be in (0, 100]
func CheckSlippage(slippage decimal.Decimal) error {
	if !slippage.IsPositive() {
		return core.NewError(core.ErrSlippageOutOfRange, "slippage", slippage, 0)
	}

	if slippage.GreaterThan(hundred) {
		return core.NewError(core.ErrSlippageOutOfRange, "slippage", slippage, 100)
	}

	return nil
}

// MinAmountOut borrowed * (100 - slippage) / 100 in token units
func MinAmountOut(borrowed, slippage decimal.Decimal, decimals int32) *big.Int {
	min := borrowed.Mul(hundred.Sub(slippage)).Shift(-2)
	return number.ToRaw(min, decimals)
}

// PartialMinAmountOut borrowed * frac * (100 - slippage) / 100 in token units
func PartialMinAmountOut(borrowed decimal.Decimal, frac *big.Int, slippage decimal.Decimal, decimals int32) *big.Int {
	min := MinAmountOut(borrowed, slippage, decimals)
	min.Mul(min, frac)
	return min.Quo(min, fracOne)
}

// CalcPartialFrac express amount as a fraction of tokensToLiquidate
func CalcPartialFrac(amount, tokensToLiquidate decimal.Decimal, decimals int32) (*core.Fraction, error) {
	if amount.GreaterThan(tokensToLiquidate) {
		return nil, core.NewError(core.ErrAmountExceedsLiquidatable, "amount", amount, tokensToLiquidate)
	}

	if !amount.IsPositive() {
		return nil, core.NewError(core.ErrAmountMustBePositive, "amount", amount, 0)
	}

	rawAmount := number.ToRaw(amount, decimals)
	if rawAmount.Sign() == 0 {
		return nil, core.NewError(core.ErrAmountMustBePositive, "amount", amount, 0)
	}

	frac := new(big.Int).Mul(rawAmount, fracOne)
	frac.Quo(frac, number.ToRaw(tokensToLiquidate, decimals))

	return &core.Fraction{
		Frac:        frac,
		FracDecimal: number.FromRaw(frac, FracPrecision),
		Amount:      number.FromRaw(rawAmount, decimals),
	}, nil
}

// CheckFrac frac must lie in (0, 1e18]
func CheckFrac(frac *core.Fraction) error {
	if frac == nil || frac.Frac == nil || frac.Frac.Sign() <= 0 {
		return core.NewError(core.ErrAmountMustBePositive, "frac", frac, 0)
	}

	if frac.Frac.Cmp(fracOne) > 0 {
		return core.NewError(core.ErrAmountExceedsLiquidatable, "frac", frac.FracDecimal, 1)
	}

	return nil
}
