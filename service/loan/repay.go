package loan

import (
	"context"

	"llamalend/core"
	"llamalend/internal/llamma"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// RepayBands bands after repaying debt. In soft liquidation the bands stay
// where they are; a repay that clears the debt previews as closed.
func (s *Service) RepayBands(ctx context.Context, debt decimal.Decimal) (*core.RepayPreview, error) {
	user := s.signer()
	pos, err := s.requireLoan(ctx, user)
	if err != nil {
		return nil, err
	}

	if pos.InLiquidation() {
		bands, err := s.UserBands(ctx, user)
		if err != nil {
			return nil, err
		}

		return &core.RepayPreview{State: core.LoanStateSoftLiquidation, Bands: bands}, nil
	}

	remain := pos.Debt.Sub(debt)
	if !remain.IsPositive() {
		return &core.RepayPreview{State: core.LoanStateClosed}, nil
	}

	bands, err := s.bandsFor(ctx, pos.Collateral, remain, pos.N)
	if err != nil {
		return nil, err
	}

	return &core.RepayPreview{State: core.LoanStateHealthy, Bands: bands}, nil
}

// RepayPrices liquidation prices after repaying debt, nil when the loan closes
func (s *Service) RepayPrices(ctx context.Context, debt decimal.Decimal) (*core.Prices, error) {
	preview, err := s.RepayBands(ctx, debt)
	if err != nil {
		return nil, err
	}

	if preview.State == core.LoanStateClosed {
		return nil, nil
	}

	return s.pricesFor(ctx, preview.Bands)
}

// RepayHealth health after repaying debt
func (s *Service) RepayHealth(ctx context.Context, debt decimal.Decimal, full bool) (decimal.Decimal, error) {
	user := s.signer()
	pos, err := s.requireLoan(ctx, user)
	if err != nil {
		return decimal.Zero, err
	}

	return s.health(ctx, user, s.rawCollateral(decimal.Zero), s.rawBorrowed(debt.Neg()), full, pos.N)
}

// RepayIsApproved controller may pull the borrowed token
func (s *Service) RepayIsApproved(ctx context.Context, debt decimal.Decimal) (bool, error) {
	return s.flow.IsApproved(ctx, s.borrowedApproval(debt))
}

// RepayApprove approve the borrowed token if needed
func (s *Service) RepayApprove(ctx context.Context, debt decimal.Decimal) ([]common.Hash, error) {
	return s.flow.Approve(ctx, s.borrowedApproval(debt))
}

func (s *Service) repayCall(ctx context.Context, debt decimal.Decimal) (*core.Call, error) {
	user := s.signer()
	pos, err := s.requireLoan(ctx, user)
	if err != nil {
		return nil, err
	}

	bands, err := s.UserBands(ctx, user)
	if err != nil {
		return nil, err
	}

	return &core.Call{
		To:     s.market.Controller,
		Method: "repay",
		Args:   []interface{}{s.rawBorrowed(debt), user, llamma.ActiveBandHint(pos.InLiquidation(), bands.N1)},
	}, nil
}

// RepayEstimateGas gas of repay
func (s *Service) RepayEstimateGas(ctx context.Context, debt decimal.Decimal) (uint64, error) {
	call, err := s.repayCall(ctx, debt)
	if err != nil {
		return 0, err
	}

	return s.flow.EstimateGas(ctx, s.borrowedApproval(debt), call)
}

// Repay repay debt of the signer's loan
func (s *Service) Repay(ctx context.Context, debt decimal.Decimal) (common.Hash, error) {
	call, err := s.repayCall(ctx, debt)
	if err != nil {
		return common.Hash{}, err
	}

	return s.flow.Execute(ctx, s.borrowedApproval(debt), call)
}

// FullRepayAmount debt plus the interest buffer that clears the loan
func (s *Service) FullRepayAmount(ctx context.Context) (decimal.Decimal, error) {
	pos, err := s.requireLoan(ctx, s.signer())
	if err != nil {
		return decimal.Zero, err
	}

	return llamma.FullRepayAmount(pos.Debt, s.market.BorrowedDecimals), nil
}

// FullRepayIsApproved controller may pull the full repay amount
func (s *Service) FullRepayIsApproved(ctx context.Context) (bool, error) {
	amount, err := s.FullRepayAmount(ctx)
	if err != nil {
		return false, err
	}

	return s.RepayIsApproved(ctx, amount)
}

// FullRepayApprove approve the full repay amount if needed
func (s *Service) FullRepayApprove(ctx context.Context) ([]common.Hash, error) {
	amount, err := s.FullRepayAmount(ctx)
	if err != nil {
		return nil, err
	}

	return s.RepayApprove(ctx, amount)
}

// FullRepayEstimateGas gas of a full repay
func (s *Service) FullRepayEstimateGas(ctx context.Context) (uint64, error) {
	amount, err := s.FullRepayAmount(ctx)
	if err != nil {
		return 0, err
	}

	return s.RepayEstimateGas(ctx, amount)
}

// FullRepay close the signer's loan
func (s *Service) FullRepay(ctx context.Context) (common.Hash, error) {
	amount, err := s.FullRepayAmount(ctx)
	if err != nil {
		return common.Hash{}, err
	}

	return s.Repay(ctx, amount)
}
