package loan

import (
	"context"
	"math/big"
	"sync"

	"llamalend/core"
	"llamalend/pkg/number"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

var (
	signer     = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	controller = common.HexToAddress("0x0000000000000000000000000000000000000c01")
	crvusd     = common.HexToAddress("0x0000000000000000000000000000000000000b01")
	weth       = common.HexToAddress("0x0000000000000000000000000000000000000a01")
)

func testMarket() *core.Market {
	return &core.Market{
		Name:               "weth",
		Controller:         controller,
		AMM:                common.HexToAddress("0x0000000000000000000000000000000000000d01"),
		CollateralToken:    weth,
		BorrowedToken:      crvusd,
		CollateralDecimals: 18,
		BorrowedDecimals:   18,
		MinBands:           4,
		MaxBands:           50,
	}
}

func raw(s string) *big.Int {
	return number.ToRaw(decimal.RequireFromString(s), 18)
}

type fakeChain struct {
	mux sync.Mutex

	position *core.RawPosition
	n2, n1   int64
	ttl      *big.Int
	minColl  *big.Int
	debtN1   int64
	health   *big.Int
	// maxRecv per band count, falls back to 1000
	maxRecv map[int]*big.Int

	approved bool
	gas      uint64

	maxBorrowableCalls int
	approveCalls       int
	submitted          []*core.Call
	gasLimits          []uint64
	lastHealthArgs     []interface{}
}

func newFakeChain() *fakeChain {
	return &fakeChain{
		position: &core.RawPosition{
			Collateral: big.NewInt(0),
			Borrowed:   big.NewInt(0),
			Debt:       big.NewInt(0),
		},
		ttl:      big.NewInt(0),
		minColl:  big.NewInt(0),
		health:   raw("0.05"),
		approved: true,
		gas:      100000,
	}
}

func (f *fakeChain) withPosition(collateral, borrowed, debt string, n int) *fakeChain {
	f.position = &core.RawPosition{
		Collateral: raw(collateral),
		Borrowed:   raw(borrowed),
		Debt:       raw(debt),
		N:          n,
	}
	return f
}

func (f *fakeChain) service() *Service {
	return New(testMarket(), f, f, f, f, nil)
}

func (f *fakeChain) UserState(ctx context.Context, market *core.Market, user common.Address) (*core.RawPosition, error) {
	return f.position, nil
}

func (f *fakeChain) UserBands(ctx context.Context, market *core.Market, user common.Address) (int64, int64, error) {
	return f.n2, f.n1, nil
}

func (f *fakeChain) TokensToLiquidate(ctx context.Context, market *core.Market, user common.Address) (*big.Int, error) {
	return f.ttl, nil
}

func (f *fakeChain) MinCollateral(ctx context.Context, market *core.Market, debt *big.Int, n int) (*big.Int, error) {
	return f.minColl, nil
}

func (f *fakeChain) PriceDown(ctx context.Context, market *core.Market, tick int64) (*big.Int, error) {
	return number.ToRaw(decimal.NewFromInt(tick), 18), nil
}

func (f *fakeChain) PriceUp(ctx context.Context, market *core.Market, tick int64) (*big.Int, error) {
	return number.ToRaw(decimal.NewFromInt(tick+1), 18), nil
}

func (f *fakeChain) DebtN1(ctx context.Context, market *core.Market, collateral, debt *big.Int, n int) (int64, error) {
	return f.debtN1, nil
}

func (f *fakeChain) MaxBorrowable(ctx context.Context, market *core.Market, collateral *big.Int, n int, existingDebt *big.Int) (*big.Int, error) {
	f.mux.Lock()
	defer f.mux.Unlock()

	f.maxBorrowableCalls++
	if v, ok := f.maxRecv[n]; ok {
		return v, nil
	}

	return raw("1000"), nil
}

func (f *fakeChain) HealthCalculator(ctx context.Context, market *core.Market, user common.Address, dCollateral, dDebt *big.Int, full bool, n int) (*big.Int, error) {
	f.lastHealthArgs = []interface{}{user, dCollateral, dDebt, full, n}
	return f.health, nil
}

func (f *fakeChain) Signer() common.Address {
	return signer
}

func (f *fakeChain) EstimateGas(ctx context.Context, call *core.Call) (uint64, error) {
	return f.gas, nil
}

func (f *fakeChain) Submit(ctx context.Context, call *core.Call, gasLimit uint64) (common.Hash, error) {
	f.submitted = append(f.submitted, call)
	f.gasLimits = append(f.gasLimits, gasLimit)
	return common.HexToHash("0x01"), nil
}

func (f *fakeChain) HasAllowance(ctx context.Context, tokens []common.Address, amounts []*big.Int, owner, spender common.Address) (bool, error) {
	return f.approved, nil
}

func (f *fakeChain) EnsureAllowance(ctx context.Context, tokens []common.Address, amounts []*big.Int, spender common.Address) ([]common.Hash, error) {
	f.approveCalls++
	if f.approved {
		return nil, nil
	}

	f.approved = true
	return []common.Hash{common.HexToHash("0x02")}, nil
}

func (f *fakeChain) EnsureAllowanceEstimateGas(ctx context.Context, tokens []common.Address, amounts []*big.Int, spender common.Address) (uint64, error) {
	if f.approved {
		return 0, nil
	}

	return 46000, nil
}
