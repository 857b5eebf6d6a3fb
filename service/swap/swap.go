package swap

import (
	"context"
	"math/big"

	"llamalend/core"
	"llamalend/internal/llamma"
	"llamalend/internal/tx"
	"llamalend/pkg/number"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Service quotes and swaps against the AMM of one market.
// Coin 0 is the borrowed token and coin 1 the collateral token.
type Service struct {
	market *core.Market
	amm    core.IAMMReader
	flow   *tx.Flow
}

// New new swap service
func New(
	market *core.Market,
	amm core.IAMMReader,
	submitter core.ITxSubmitter,
	allowance core.IAllowanceManager,
) *Service {
	return &Service{
		market: market,
		amm:    amm,
		flow:   tx.NewFlow(submitter, allowance),
	}
}

func checkIndex(i, j int) error {
	if (i == 0 && j == 1) || (i == 1 && j == 0) {
		return nil
	}

	return core.NewError(core.ErrInvalidIndex, "pair", []int{i, j}, "(0,1) or (1,0)")
}

// MaxSwappable max input the AMM accepts from coin i to coin j
func (s *Service) MaxSwappable(ctx context.Context, i, j int) (decimal.Decimal, error) {
	if err := checkIndex(i, j); err != nil {
		return decimal.Zero, err
	}

	in, out, err := s.amm.MaxDx(ctx, s.market, i, j)
	if err != nil {
		return decimal.Zero, err
	}

	if out == nil || out.Sign() == 0 {
		return decimal.Zero, nil
	}

	return number.FromRaw(in, s.market.CoinDecimals(i)), nil
}

// SwapExpected output of coin j for amount of coin i
func (s *Service) SwapExpected(ctx context.Context, i, j int, amount decimal.Decimal) (decimal.Decimal, error) {
	if err := checkIndex(i, j); err != nil {
		return decimal.Zero, err
	}

	out, err := s.amm.GetDy(ctx, s.market, i, j, number.ToRaw(amount, s.market.CoinDecimals(i)))
	if err != nil {
		return decimal.Zero, err
	}

	return number.FromRaw(out, s.market.CoinDecimals(j)), nil
}

// SwapRequired input of coin i needed to receive amount of coin j
func (s *Service) SwapRequired(ctx context.Context, i, j int, amount decimal.Decimal) (decimal.Decimal, error) {
	if err := checkIndex(i, j); err != nil {
		return decimal.Zero, err
	}

	in, err := s.amm.GetDx(ctx, s.market, i, j, number.ToRaw(amount, s.market.CoinDecimals(j)))
	if err != nil {
		return decimal.Zero, err
	}

	return number.FromRaw(in, s.market.CoinDecimals(i)), nil
}

// SwapPriceImpact impact in percent of swapping amount, measured against a
// small probe trade in the same direction
func (s *Service) SwapPriceImpact(ctx context.Context, i, j int, amount decimal.Decimal) (string, error) {
	if err := checkIndex(i, j); err != nil {
		return "", err
	}

	inDecimals, outDecimals := s.market.CoinDecimals(i), s.market.CoinDecimals(j)
	rawAmount := number.ToRaw(amount, inDecimals)
	output, err := s.amm.GetDy(ctx, s.market, i, j, rawAmount)
	if err != nil {
		return "", err
	}

	probe := llamma.ProbeAmount(rawAmount, output, inDecimals)
	if probe.Sign() == 0 {
		return "0", nil
	}

	probeOutput, err := s.amm.GetDy(ctx, s.market, i, j, probe)
	if err != nil {
		return "", err
	}

	return llamma.PriceImpact(rawAmount, output, probe, probeOutput, inDecimals, outDecimals), nil
}

func (s *Service) approval(i int, amount decimal.Decimal) tx.Approval {
	return tx.Approval{
		Tokens:  []common.Address{s.market.CoinAddress(i)},
		Amounts: []*big.Int{number.ToRaw(amount, s.market.CoinDecimals(i))},
		Spender: s.market.AMM,
	}
}

// SwapIsApproved AMM may pull amount of coin i
func (s *Service) SwapIsApproved(ctx context.Context, i int, amount decimal.Decimal) (bool, error) {
	if err := checkIndex(i, 1-i); err != nil {
		return false, err
	}

	return s.flow.IsApproved(ctx, s.approval(i, amount))
}

// SwapApprove approve amount of coin i if needed
func (s *Service) SwapApprove(ctx context.Context, i int, amount decimal.Decimal) ([]common.Hash, error) {
	if err := checkIndex(i, 1-i); err != nil {
		return nil, err
	}

	return s.flow.Approve(ctx, s.approval(i, amount))
}

func (s *Service) swapCall(ctx context.Context, i, j int, amount, slippage decimal.Decimal) (*core.Call, error) {
	if err := checkIndex(i, j); err != nil {
		return nil, err
	}

	if err := llamma.CheckSlippage(slippage); err != nil {
		return nil, err
	}

	rawAmount := number.ToRaw(amount, s.market.CoinDecimals(i))
	expected, err := s.amm.GetDy(ctx, s.market, i, j, rawAmount)
	if err != nil {
		return nil, err
	}

	outDecimals := s.market.CoinDecimals(j)
	minOut := llamma.MinAmountOut(number.FromRaw(expected, outDecimals), slippage, outDecimals)
	return &core.Call{
		To:     s.market.AMM,
		Method: "exchange",
		Args:   []interface{}{big.NewInt(int64(i)), big.NewInt(int64(j)), rawAmount, minOut},
	}, nil
}

// SwapEstimateGas gas of exchange, coin i must be approved
func (s *Service) SwapEstimateGas(ctx context.Context, i, j int, amount, slippage decimal.Decimal) (uint64, error) {
	call, err := s.swapCall(ctx, i, j, amount, slippage)
	if err != nil {
		return 0, err
	}

	return s.flow.EstimateGas(ctx, s.approval(i, amount), call)
}

// Swap swap amount of coin i for coin j, slippage in percent bounds the output
func (s *Service) Swap(ctx context.Context, i, j int, amount, slippage decimal.Decimal) (common.Hash, error) {
	call, err := s.swapCall(ctx, i, j, amount, slippage)
	if err != nil {
		return common.Hash{}, err
	}

	return s.flow.Execute(ctx, s.approval(i, amount), call)
}
