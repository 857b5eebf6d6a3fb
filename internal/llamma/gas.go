package llamma

import (
	"math/big"

	"llamalend/pkg/number"

	"github.com/shopspring/decimal"
)

// GasLimit estimate * 1.3
func GasLimit(estimate uint64) uint64 {
	return estimate * 130 / 100
}

// FormatHealth 1e18 scaled health as a percentage
func FormatHealth(raw *big.Int) decimal.Decimal {
	return number.FromRaw(raw, 18).Mul(hundred)
}
