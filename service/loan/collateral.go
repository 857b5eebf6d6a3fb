package loan

import (
	"context"

	"llamalend/core"
	"llamalend/internal/tx"
	"llamalend/pkg/number"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

func (s *Service) collateralBands(ctx context.Context, delta decimal.Decimal) (core.Bands, error) {
	pos, err := s.requireHealthy(ctx, s.signer())
	if err != nil {
		return core.Bands{}, err
	}

	return s.bandsFor(ctx, pos.Collateral.Add(delta), pos.Debt, pos.N)
}

func (s *Service) collateralHealth(ctx context.Context, delta decimal.Decimal, full bool) (decimal.Decimal, error) {
	user := s.signer()
	pos, err := s.requireHealthy(ctx, user)
	if err != nil {
		return decimal.Zero, err
	}

	return s.health(ctx, user, s.rawCollateral(delta), s.rawBorrowed(decimal.Zero), full, pos.N)
}

// AddCollateralBands bands after adding collateral
func (s *Service) AddCollateralBands(ctx context.Context, collateral decimal.Decimal) (core.Bands, error) {
	return s.collateralBands(ctx, collateral)
}

// AddCollateralPrices liquidation prices after adding collateral
func (s *Service) AddCollateralPrices(ctx context.Context, collateral decimal.Decimal) (*core.Prices, error) {
	bands, err := s.AddCollateralBands(ctx, collateral)
	if err != nil {
		return nil, err
	}

	return s.pricesFor(ctx, bands)
}

// AddCollateralHealth health after adding collateral
func (s *Service) AddCollateralHealth(ctx context.Context, collateral decimal.Decimal, full bool) (decimal.Decimal, error) {
	return s.collateralHealth(ctx, collateral, full)
}

// AddCollateralIsApproved controller may pull the collateral
func (s *Service) AddCollateralIsApproved(ctx context.Context, collateral decimal.Decimal) (bool, error) {
	return s.flow.IsApproved(ctx, s.collateralApproval(collateral))
}

// AddCollateralApprove approve the collateral if needed
func (s *Service) AddCollateralApprove(ctx context.Context, collateral decimal.Decimal) ([]common.Hash, error) {
	return s.flow.Approve(ctx, s.collateralApproval(collateral))
}

func (s *Service) addCollateralCall(ctx context.Context, collateral decimal.Decimal) (*core.Call, error) {
	user := s.signer()
	if _, err := s.requireHealthy(ctx, user); err != nil {
		return nil, err
	}

	return &core.Call{
		To:     s.market.Controller,
		Method: "add_collateral",
		Args:   []interface{}{s.rawCollateral(collateral), user},
	}, nil
}

// AddCollateralEstimateGas gas of add_collateral
func (s *Service) AddCollateralEstimateGas(ctx context.Context, collateral decimal.Decimal) (uint64, error) {
	call, err := s.addCollateralCall(ctx, collateral)
	if err != nil {
		return 0, err
	}

	return s.flow.EstimateGas(ctx, s.collateralApproval(collateral), call)
}

// AddCollateral add collateral to the signer's loan
func (s *Service) AddCollateral(ctx context.Context, collateral decimal.Decimal) (common.Hash, error) {
	call, err := s.addCollateralCall(ctx, collateral)
	if err != nil {
		return common.Hash{}, err
	}

	return s.flow.Execute(ctx, s.collateralApproval(collateral), call)
}

// MaxRemovable collateral that can leave without breaking the minimum
func (s *Service) MaxRemovable(ctx context.Context) (decimal.Decimal, error) {
	pos, err := s.requireHealthy(ctx, s.signer())
	if err != nil {
		return decimal.Zero, err
	}

	raw, err := s.states.MinCollateral(ctx, s.market, s.rawBorrowed(pos.Debt), pos.N)
	if err != nil {
		return decimal.Zero, err
	}

	removable := pos.Collateral.Sub(number.FromRaw(raw, s.market.CollateralDecimals))
	if removable.IsNegative() {
		return decimal.Zero, nil
	}

	return removable, nil
}

// RemoveCollateralBands bands after removing collateral
func (s *Service) RemoveCollateralBands(ctx context.Context, collateral decimal.Decimal) (core.Bands, error) {
	return s.collateralBands(ctx, collateral.Neg())
}

// RemoveCollateralPrices liquidation prices after removing collateral
func (s *Service) RemoveCollateralPrices(ctx context.Context, collateral decimal.Decimal) (*core.Prices, error) {
	bands, err := s.RemoveCollateralBands(ctx, collateral)
	if err != nil {
		return nil, err
	}

	return s.pricesFor(ctx, bands)
}

// RemoveCollateralHealth health after removing collateral
func (s *Service) RemoveCollateralHealth(ctx context.Context, collateral decimal.Decimal, full bool) (decimal.Decimal, error) {
	return s.collateralHealth(ctx, collateral.Neg(), full)
}

func (s *Service) removeCollateralCall(ctx context.Context, collateral decimal.Decimal) (*core.Call, error) {
	if _, err := s.requireHealthy(ctx, s.signer()); err != nil {
		return nil, err
	}

	return &core.Call{
		To:     s.market.Controller,
		Method: "remove_collateral",
		Args:   []interface{}{s.rawCollateral(collateral)},
	}, nil
}

// RemoveCollateralEstimateGas gas of remove_collateral
func (s *Service) RemoveCollateralEstimateGas(ctx context.Context, collateral decimal.Decimal) (uint64, error) {
	call, err := s.removeCollateralCall(ctx, collateral)
	if err != nil {
		return 0, err
	}

	return s.flow.EstimateGas(ctx, tx.Approval{}, call)
}

// RemoveCollateral withdraw collateral from the signer's loan
func (s *Service) RemoveCollateral(ctx context.Context, collateral decimal.Decimal) (common.Hash, error) {
	call, err := s.removeCollateralCall(ctx, collateral)
	if err != nil {
		return common.Hash{}, err
	}

	return s.flow.Execute(ctx, tx.Approval{}, call)
}
