package core

import (
	"github.com/ethereum/go-ethereum/common"
)

// MaxDecimals max token decimals accepted in a market descriptor
const MaxDecimals = 36

// Market market descriptor, immutable and owned by the caller
type Market struct {
	Name               string         `json:"name"`
	Controller         common.Address `json:"controller"`
	AMM                common.Address `json:"amm"`
	CollateralToken    common.Address `json:"collateral_token"`
	BorrowedToken      common.Address `json:"borrowed_token"`
	CollateralDecimals int32          `json:"collateral_decimals"`
	BorrowedDecimals   int32          `json:"borrowed_decimals"`
	MinBands           int            `json:"min_bands"`
	MaxBands           int            `json:"max_bands"`
}

// Validate check band limits and decimals
func (m *Market) Validate() error {
	if m.MinBands <= 0 {
		return NewError(ErrInvalidMarket, "min_bands", m.MinBands, 1)
	}

	if m.MaxBands < m.MinBands {
		return NewError(ErrInvalidMarket, "max_bands", m.MaxBands, m.MinBands)
	}

	for _, d := range []int32{m.CollateralDecimals, m.BorrowedDecimals} {
		if d < 0 || d > MaxDecimals {
			return NewError(ErrInvalidMarket, "decimals", d, MaxDecimals)
		}
	}

	return nil
}

// CoinDecimals decimals by AMM coin index, 0 borrowed and 1 collateral
func (m *Market) CoinDecimals(i int) int32 {
	if i == 0 {
		return m.BorrowedDecimals
	}

	return m.CollateralDecimals
}

// CoinAddress token address by AMM coin index
func (m *Market) CoinAddress(i int) common.Address {
	if i == 0 {
		return m.BorrowedToken
	}

	return m.CollateralToken
}
