package loan

import (
	"context"

	"llamalend/core"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// BorrowMoreMaxRecv extra debt available after adding collateral
func (s *Service) BorrowMoreMaxRecv(ctx context.Context, collateral decimal.Decimal) (decimal.Decimal, error) {
	pos, err := s.requireHealthy(ctx, s.signer())
	if err != nil {
		return decimal.Zero, err
	}

	total, err := s.maxBorrowable(ctx, pos.Collateral.Add(collateral), pos.N, pos.Debt)
	if err != nil {
		return decimal.Zero, err
	}

	if recv := total.Sub(pos.Debt); recv.IsPositive() {
		return recv, nil
	}

	return decimal.Zero, nil
}

// BorrowMoreBands bands after borrowing debt more against extra collateral
func (s *Service) BorrowMoreBands(ctx context.Context, collateral, debt decimal.Decimal) (core.Bands, error) {
	pos, err := s.requireHealthy(ctx, s.signer())
	if err != nil {
		return core.Bands{}, err
	}

	return s.bandsFor(ctx, pos.Collateral.Add(collateral), pos.Debt.Add(debt), pos.N)
}

// BorrowMorePrices liquidation prices after borrowing more
func (s *Service) BorrowMorePrices(ctx context.Context, collateral, debt decimal.Decimal) (*core.Prices, error) {
	bands, err := s.BorrowMoreBands(ctx, collateral, debt)
	if err != nil {
		return nil, err
	}

	return s.pricesFor(ctx, bands)
}

// BorrowMoreHealth health after borrowing more
func (s *Service) BorrowMoreHealth(ctx context.Context, collateral, debt decimal.Decimal, full bool) (decimal.Decimal, error) {
	user := s.signer()
	pos, err := s.requireHealthy(ctx, user)
	if err != nil {
		return decimal.Zero, err
	}

	return s.health(ctx, user, s.rawCollateral(collateral), s.rawBorrowed(debt), full, pos.N)
}

// BorrowMoreIsApproved controller may pull the extra collateral
func (s *Service) BorrowMoreIsApproved(ctx context.Context, collateral decimal.Decimal) (bool, error) {
	return s.flow.IsApproved(ctx, s.collateralApproval(collateral))
}

// BorrowMoreApprove approve the extra collateral if needed
func (s *Service) BorrowMoreApprove(ctx context.Context, collateral decimal.Decimal) ([]common.Hash, error) {
	return s.flow.Approve(ctx, s.collateralApproval(collateral))
}

func (s *Service) borrowMoreCall(ctx context.Context, collateral, debt decimal.Decimal) (*core.Call, error) {
	if _, err := s.requireHealthy(ctx, s.signer()); err != nil {
		return nil, err
	}

	return &core.Call{
		To:     s.market.Controller,
		Method: "borrow_more",
		Args:   []interface{}{s.rawCollateral(collateral), s.rawBorrowed(debt)},
	}, nil
}

// BorrowMoreEstimateGas gas of borrow_more
func (s *Service) BorrowMoreEstimateGas(ctx context.Context, collateral, debt decimal.Decimal) (uint64, error) {
	call, err := s.borrowMoreCall(ctx, collateral, debt)
	if err != nil {
		return 0, err
	}

	return s.flow.EstimateGas(ctx, s.collateralApproval(collateral), call)
}

// BorrowMore borrow debt more, optionally adding collateral
func (s *Service) BorrowMore(ctx context.Context, collateral, debt decimal.Decimal) (common.Hash, error) {
	call, err := s.borrowMoreCall(ctx, collateral, debt)
	if err != nil {
		return common.Hash{}, err
	}

	return s.flow.Execute(ctx, s.collateralApproval(collateral), call)
}
