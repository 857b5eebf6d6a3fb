package loan

import (
	"context"
	"math/big"

	"llamalend/core"
	"llamalend/internal/llamma"
	"llamalend/internal/tx"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// requireLiquidatable position of user in soft liquidation
func (s *Service) requireLiquidatable(ctx context.Context, user common.Address, slippage decimal.Decimal) (*core.Position, error) {
	if err := llamma.CheckSlippage(slippage); err != nil {
		return nil, err
	}

	pos, err := s.requireLoan(ctx, user)
	if err != nil {
		return nil, err
	}

	if !pos.InLiquidation() {
		return nil, core.NewError(core.ErrNotInLiquidation, "borrowed", pos.Borrowed, nil)
	}

	return pos, nil
}

func (s *Service) liquidateApproval(ctx context.Context, user common.Address) (tx.Approval, error) {
	amount, err := s.TokensToLiquidate(ctx, user)
	if err != nil {
		return tx.Approval{}, err
	}

	if !amount.IsPositive() {
		return tx.Approval{}, nil
	}

	return s.borrowedApproval(amount), nil
}

func (s *Service) liquidateCall(ctx context.Context, user common.Address, slippage decimal.Decimal) (*core.Call, error) {
	pos, err := s.requireLiquidatable(ctx, user, slippage)
	if err != nil {
		return nil, err
	}

	return &core.Call{
		To:     s.market.Controller,
		Method: "liquidate",
		Args:   []interface{}{user, llamma.MinAmountOut(pos.Borrowed, slippage, s.market.BorrowedDecimals)},
	}, nil
}

// LiquidateIsApproved controller may pull the tokens needed to liquidate user
func (s *Service) LiquidateIsApproved(ctx context.Context, user common.Address) (bool, error) {
	a, err := s.liquidateApproval(ctx, user)
	if err != nil {
		return false, err
	}

	return s.flow.IsApproved(ctx, a)
}

// LiquidateApprove approve the tokens needed to liquidate user
func (s *Service) LiquidateApprove(ctx context.Context, user common.Address) ([]common.Hash, error) {
	a, err := s.liquidateApproval(ctx, user)
	if err != nil {
		return nil, err
	}

	return s.flow.Approve(ctx, a)
}

// LiquidateEstimateGas gas of liquidate
func (s *Service) LiquidateEstimateGas(ctx context.Context, user common.Address, slippage decimal.Decimal) (uint64, error) {
	call, err := s.liquidateCall(ctx, user, slippage)
	if err != nil {
		return 0, err
	}

	a, err := s.liquidateApproval(ctx, user)
	if err != nil {
		return 0, err
	}

	return s.flow.EstimateGas(ctx, a, call)
}

// Liquidate liquidate user, slippage in percent bounds the borrowed token received
func (s *Service) Liquidate(ctx context.Context, user common.Address, slippage decimal.Decimal) (common.Hash, error) {
	call, err := s.liquidateCall(ctx, user, slippage)
	if err != nil {
		return common.Hash{}, err
	}

	a, err := s.liquidateApproval(ctx, user)
	if err != nil {
		return common.Hash{}, err
	}

	return s.flow.Execute(ctx, a, call)
}

// SelfLiquidateIsApproved controller may pull the tokens needed to self liquidate
func (s *Service) SelfLiquidateIsApproved(ctx context.Context) (bool, error) {
	return s.LiquidateIsApproved(ctx, s.signer())
}

// SelfLiquidateApprove approve the tokens needed to self liquidate
func (s *Service) SelfLiquidateApprove(ctx context.Context) ([]common.Hash, error) {
	return s.LiquidateApprove(ctx, s.signer())
}

// SelfLiquidateEstimateGas gas of a self liquidation
func (s *Service) SelfLiquidateEstimateGas(ctx context.Context, slippage decimal.Decimal) (uint64, error) {
	return s.LiquidateEstimateGas(ctx, s.signer(), slippage)
}

// SelfLiquidate close the signer's loan in soft liquidation
func (s *Service) SelfLiquidate(ctx context.Context, slippage decimal.Decimal) (common.Hash, error) {
	return s.Liquidate(ctx, s.signer(), slippage)
}

// CalcPartialFrac fraction of the signer's position that amount liquidates
func (s *Service) CalcPartialFrac(ctx context.Context, amount decimal.Decimal) (*core.Fraction, error) {
	ttl, err := s.TokensToLiquidate(ctx, s.signer())
	if err != nil {
		return nil, err
	}

	return llamma.CalcPartialFrac(amount, ttl, s.market.BorrowedDecimals)
}

// PartialSelfLiquidateIsApproved controller may pull frac's amount
func (s *Service) PartialSelfLiquidateIsApproved(ctx context.Context, frac *core.Fraction) (bool, error) {
	return s.flow.IsApproved(ctx, s.borrowedApproval(frac.Amount))
}

// PartialSelfLiquidateApprove approve frac's amount if needed
func (s *Service) PartialSelfLiquidateApprove(ctx context.Context, frac *core.Fraction) ([]common.Hash, error) {
	return s.flow.Approve(ctx, s.borrowedApproval(frac.Amount))
}

func (s *Service) partialSelfLiquidateCall(ctx context.Context, frac *core.Fraction, slippage decimal.Decimal) (*core.Call, error) {
	user := s.signer()
	pos, err := s.requireLiquidatable(ctx, user, slippage)
	if err != nil {
		return nil, err
	}

	if err := llamma.CheckFrac(frac); err != nil {
		return nil, err
	}

	minOut := llamma.PartialMinAmountOut(pos.Borrowed, frac.Frac, slippage, s.market.BorrowedDecimals)
	return &core.Call{
		To:     s.market.Controller,
		Method: "liquidate_extended",
		Args:   []interface{}{user, minOut, new(big.Int).Set(frac.Frac)},
	}, nil
}

// PartialSelfLiquidateEstimateGas gas of a partial self liquidation
func (s *Service) PartialSelfLiquidateEstimateGas(ctx context.Context, frac *core.Fraction, slippage decimal.Decimal) (uint64, error) {
	call, err := s.partialSelfLiquidateCall(ctx, frac, slippage)
	if err != nil {
		return 0, err
	}

	return s.flow.EstimateGas(ctx, s.borrowedApproval(frac.Amount), call)
}

// PartialSelfLiquidate liquidate frac of the signer's position
func (s *Service) PartialSelfLiquidate(ctx context.Context, frac *core.Fraction, slippage decimal.Decimal) (common.Hash, error) {
	call, err := s.partialSelfLiquidateCall(ctx, frac, slippage)
	if err != nil {
		return common.Hash{}, err
	}

	return s.flow.Execute(ctx, s.borrowedApproval(frac.Amount), call)
}
