package llamma

import (
	"math/big"

	"github.com/shopspring/decimal"
)

var (
	// MaxActiveBand active band hint while in soft liquidation, 2^255 - 1
	MaxActiveBand = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(1))
	// FullRepayBuffer absorbs interest accrued before inclusion
	FullRepayBuffer = decimal.New(10001, -4)
)

// FullRepayAmount debt * 1.0001 truncated to the token decimals
func FullRepayAmount(debt decimal.Decimal, decimals int32) decimal.Decimal {
	return debt.Mul(FullRepayBuffer).Truncate(decimals)
}

// ActiveBandHint bands do not matter mid liquidation, otherwise one below n1
func ActiveBandHint(inLiquidation bool, n1 int64) *big.Int {
	if inLiquidation {
		return new(big.Int).Set(MaxActiveBand)
	}

	return big.NewInt(n1 - 1)
}
