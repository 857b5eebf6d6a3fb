package llamma

import (
	"math/big"

	"llamalend/pkg/number"

	"github.com/shopspring/decimal"
)

var (
	// ProbeTarget probe trades aim at about 1e15 token units
	ProbeTarget = decimal.New(1, 15)
	// ProbeMaxShare probe never exceeds 20% of the trade
	ProbeMaxShare = decimal.New(2, -1)
	// ImpactPlaces price impact is reported with six decimals at most
	ImpactPlaces int32 = 6

	ratePrecision int32 = 36
)

// ProbeAmount size of the small trade approximating the marginal rate:
// min(amount * min(max(1e15/amount, 1e15/output), 0.2), 10^decimals)
func ProbeAmount(amount, output *big.Int, inDecimals int32) *big.Int {
	x := decimal.NewFromBigInt(amount, 0)
	y := decimal.NewFromBigInt(output, 0)

	k := ProbeMaxShare
	if x.IsPositive() && y.IsPositive() {
		k = decimal.Max(ProbeTarget.DivRound(x, ratePrecision), ProbeTarget.DivRound(y, ratePrecision))
		k = decimal.Min(k, ProbeMaxShare)
	}

	small := decimal.Min(x.Mul(k), decimal.New(1, inDecimals))
	return small.Truncate(0).BigInt()
}

// PriceImpact percentage loss of the trade rate against the probe rate,
// zero when the trade rate is better than the probe rate
func PriceImpact(amount, output, smallAmount, smallOutput *big.Int, inDecimals, outDecimals int32) string {
	if smallAmount.Sign() <= 0 || amount.Sign() <= 0 {
		return "0"
	}

	rate := number.FromRaw(output, outDecimals).DivRound(number.FromRaw(amount, inDecimals), ratePrecision)
	smallRate := number.FromRaw(smallOutput, outDecimals).DivRound(number.FromRaw(smallAmount, inDecimals), ratePrecision)
	if !smallRate.IsPositive() || rate.GreaterThan(smallRate) {
		return "0"
	}

	impact := decimal.NewFromInt(1).Sub(rate.DivRound(smallRate, ratePrecision)).Mul(hundred)
	return number.CutZeros(impact.Abs(), ImpactPlaces)
}
