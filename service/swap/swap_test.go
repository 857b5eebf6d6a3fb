package swap

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"llamalend/core"
	"llamalend/pkg/number"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	amm    = common.HexToAddress("0x0000000000000000000000000000000000000d01")
	crvusd = common.HexToAddress("0x0000000000000000000000000000000000000b01")
	wbtc   = common.HexToAddress("0x0000000000000000000000000000000000000a01")
)

func raw(s string, decimals int32) *big.Int {
	return number.ToRaw(decimal.RequireFromString(s), decimals)
}

// fakeAMM pays 5% less on trades of ten tokens or more
type fakeAMM struct {
	maxIn, maxOut *big.Int

	approved bool
	spender  common.Address
	tokens   []common.Address

	submitted []*core.Call
}

func (f *fakeAMM) GetDy(ctx context.Context, market *core.Market, i, j int, in *big.Int) (*big.Int, error) {
	v := number.FromRaw(in, market.CoinDecimals(i))
	if v.GreaterThanOrEqual(decimal.NewFromInt(10)) {
		v = v.Mul(decimal.RequireFromString("0.95"))
	}

	return number.ToRaw(v, market.CoinDecimals(j)), nil
}

func (f *fakeAMM) GetDx(ctx context.Context, market *core.Market, i, j int, out *big.Int) (*big.Int, error) {
	v := number.FromRaw(out, market.CoinDecimals(j))
	return number.ToRaw(v.Mul(decimal.NewFromInt(2)), market.CoinDecimals(i)), nil
}

func (f *fakeAMM) MaxDx(ctx context.Context, market *core.Market, i, j int) (*big.Int, *big.Int, error) {
	return f.maxIn, f.maxOut, nil
}

func (f *fakeAMM) Signer() common.Address {
	return common.HexToAddress("0xaa")
}

func (f *fakeAMM) EstimateGas(ctx context.Context, call *core.Call) (uint64, error) {
	return 50000, nil
}

func (f *fakeAMM) Submit(ctx context.Context, call *core.Call, gasLimit uint64) (common.Hash, error) {
	f.submitted = append(f.submitted, call)
	return common.HexToHash("0x01"), nil
}

func (f *fakeAMM) HasAllowance(ctx context.Context, tokens []common.Address, amounts []*big.Int, owner, spender common.Address) (bool, error) {
	f.spender = spender
	f.tokens = tokens
	return f.approved, nil
}

func (f *fakeAMM) EnsureAllowance(ctx context.Context, tokens []common.Address, amounts []*big.Int, spender common.Address) ([]common.Hash, error) {
	f.approved = true
	return nil, nil
}

func (f *fakeAMM) EnsureAllowanceEstimateGas(ctx context.Context, tokens []common.Address, amounts []*big.Int, spender common.Address) (uint64, error) {
	return 0, nil
}

func newService(f *fakeAMM) *Service {
	market := &core.Market{
		Name:               "wbtc",
		AMM:                amm,
		CollateralToken:    wbtc,
		BorrowedToken:      crvusd,
		CollateralDecimals: 8,
		BorrowedDecimals:   18,
		MinBands:           4,
		MaxBands:           50,
	}

	return New(market, f, f, f)
}

func TestInvalidIndex(t *testing.T) {
	s := newService(&fakeAMM{})
	ctx := context.Background()

	for _, pair := range [][2]int{{0, 0}, {1, 1}, {0, 2}, {-1, 0}} {
		_, err := s.SwapExpected(ctx, pair[0], pair[1], decimal.NewFromInt(1))
		assert.True(t, errors.Is(err, core.ErrInvalidIndex), pair)

		_, err = s.SwapPriceImpact(ctx, pair[0], pair[1], decimal.NewFromInt(1))
		assert.True(t, errors.Is(err, core.ErrInvalidIndex), pair)
	}

	_, err := s.SwapIsApproved(ctx, 2, decimal.NewFromInt(1))
	assert.True(t, errors.Is(err, core.ErrInvalidIndex))
}

func TestMaxSwappable(t *testing.T) {
	ctx := context.Background()

	s := newService(&fakeAMM{maxIn: raw("3", 8), maxOut: raw("90000", 18)})
	v, err := s.MaxSwappable(ctx, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, "3", v.String())

	s = newService(&fakeAMM{maxIn: raw("3", 8), maxOut: big.NewInt(0)})
	v, err = s.MaxSwappable(ctx, 1, 0)
	require.NoError(t, err)
	assert.True(t, v.IsZero())
}

func TestSwapQuotes(t *testing.T) {
	s := newService(&fakeAMM{})
	ctx := context.Background()

	out, err := s.SwapExpected(ctx, 0, 1, decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.Equal(t, "95", out.String())

	in, err := s.SwapRequired(ctx, 1, 0, decimal.RequireFromString("1.5"))
	require.NoError(t, err)
	assert.Equal(t, "3", in.String())
}

func TestSwapPriceImpact(t *testing.T) {
	s := newService(&fakeAMM{})
	ctx := context.Background()

	impact, err := s.SwapPriceImpact(ctx, 0, 1, decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.Equal(t, "5", impact)

	impact, err = s.SwapPriceImpact(ctx, 0, 1, decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.Equal(t, "0", impact)

	impact, err = s.SwapPriceImpact(ctx, 0, 1, decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "0", impact)
}

func TestSwap(t *testing.T) {
	f := &fakeAMM{}
	s := newService(f)
	ctx := context.Background()

	_, err := s.SwapEstimateGas(ctx, 0, 1, decimal.NewFromInt(100), decimal.NewFromInt(1))
	assert.True(t, errors.Is(err, core.ErrApprovalRequired))
	assert.Equal(t, amm, f.spender)
	assert.Equal(t, []common.Address{crvusd}, f.tokens)

	_, err = s.Swap(ctx, 0, 1, decimal.NewFromInt(100), decimal.Zero)
	assert.True(t, errors.Is(err, core.ErrSlippageOutOfRange))

	_, err = s.Swap(ctx, 0, 1, decimal.NewFromInt(100), decimal.NewFromInt(1))
	require.NoError(t, err)

	require.Len(t, f.submitted, 1)
	call := f.submitted[0]
	assert.Equal(t, "exchange", call.Method)
	assert.Equal(t, amm, call.To)
	assert.Equal(t, raw("100", 18).String(), call.Args[2].(*big.Int).String())
	assert.Equal(t, raw("94.05", 8).String(), call.Args[3].(*big.Int).String())
}
