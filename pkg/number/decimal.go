package number

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Decimal parse decimal string, zero on error
func Decimal(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

// ToRaw human amount to token units, digits beyond decimals are truncated
func ToRaw(d decimal.Decimal, decimals int32) *big.Int {
	return d.Shift(decimals).Truncate(0).BigInt()
}

// FromRaw token units to human amount
func FromRaw(v *big.Int, decimals int32) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(v, -decimals)
}

// CutZeros fixed representation without trailing zeros
func CutZeros(d decimal.Decimal, places int32) string {
	return d.Truncate(places).String()
}
