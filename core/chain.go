package core

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Call contract call handed to the submitter, the core never encodes or signs it
type Call struct {
	To     common.Address `json:"to"`
	Method string         `json:"method"`
	Args   []interface{}  `json:"args"`
}

// RawPosition on-chain user state in token units
type RawPosition struct {
	Collateral *big.Int
	Borrowed   *big.Int
	Debt       *big.Int
	N          int
}

// IStateReader point-in-time on-chain reads
type IStateReader interface {
	UserState(ctx context.Context, market *Market, user common.Address) (*RawPosition, error)
	// UserBands returns the user's (n2, n1) ticks
	UserBands(ctx context.Context, market *Market, user common.Address) (n2, n1 int64, err error)
	TokensToLiquidate(ctx context.Context, market *Market, user common.Address) (*big.Int, error)
	MinCollateral(ctx context.Context, market *Market, debt *big.Int, n int) (*big.Int, error)
}

// IOracle tick and capacity reads
type IOracle interface {
	PriceDown(ctx context.Context, market *Market, tick int64) (*big.Int, error)
	PriceUp(ctx context.Context, market *Market, tick int64) (*big.Int, error)
	DebtN1(ctx context.Context, market *Market, collateral, debt *big.Int, n int) (int64, error)
	MaxBorrowable(ctx context.Context, market *Market, collateral *big.Int, n int, existingDebt *big.Int) (*big.Int, error)
	// HealthCalculator returns health scaled by 1e18; user is the zero address for new loans
	HealthCalculator(ctx context.Context, market *Market, user common.Address, dCollateral, dDebt *big.Int, full bool, n int) (*big.Int, error)
}

// IAMMReader AMM exchange quotes
type IAMMReader interface {
	GetDy(ctx context.Context, market *Market, i, j int, in *big.Int) (*big.Int, error)
	GetDx(ctx context.Context, market *Market, i, j int, out *big.Int) (*big.Int, error)
	// MaxDx max input the AMM accepts in the direction and the output it yields
	MaxDx(ctx context.Context, market *Market, i, j int) (in, out *big.Int, err error)
}

// ITxSubmitter transaction estimation and submission
type ITxSubmitter interface {
	Signer() common.Address
	EstimateGas(ctx context.Context, call *Call) (uint64, error)
	Submit(ctx context.Context, call *Call, gasLimit uint64) (common.Hash, error)
}

// IAllowanceManager token allowance handling
type IAllowanceManager interface {
	HasAllowance(ctx context.Context, tokens []common.Address, amounts []*big.Int, owner, spender common.Address) (bool, error)
	EnsureAllowance(ctx context.Context, tokens []common.Address, amounts []*big.Int, spender common.Address) ([]common.Hash, error)
	EnsureAllowanceEstimateGas(ctx context.Context, tokens []common.Address, amounts []*big.Int, spender common.Address) (uint64, error)
}
