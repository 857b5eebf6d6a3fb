package loan

import (
	"context"
	"math/big"

	"llamalend/core"
	"llamalend/internal/llamma"
	"llamalend/pkg/memoize"
	"llamalend/pkg/number"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// CreateLoanMaxRecv max debt for collateral spread over n bands
func (s *Service) CreateLoanMaxRecv(ctx context.Context, collateral decimal.Decimal, n int) (decimal.Decimal, error) {
	if err := llamma.CheckRange(s.market, n); err != nil {
		return decimal.Zero, err
	}

	return s.maxBorrowable(ctx, collateral, n, decimal.Zero)
}

func (s *Service) maxBorrowable(ctx context.Context, collateral decimal.Decimal, n int, debt decimal.Decimal) (decimal.Decimal, error) {
	raw, err := s.oracle.MaxBorrowable(ctx, s.market, s.rawCollateral(collateral), n, s.rawBorrowed(debt))
	if err != nil {
		return decimal.Zero, err
	}

	return number.FromRaw(raw, s.market.BorrowedDecimals), nil
}

// CreateLoanMaxRecvAllRanges max debt for every allowed band count,
// kept for five minutes per collateral amount
func (s *Service) CreateLoanMaxRecvAllRanges(ctx context.Context, collateral decimal.Decimal) (map[int]decimal.Decimal, error) {
	key := memoize.Key(s.market.Controller.Hex(), "max_recv_all_ranges", collateral.String())
	values, err := s.maxRecv.Do(ctx, key, func(ctx context.Context) (map[int]decimal.Decimal, error) {
		return s.collect(ctx, func(ctx context.Context, n int) (decimal.Decimal, error) {
			return s.maxBorrowable(ctx, collateral, n, decimal.Zero)
		})
	})
	if err != nil {
		return nil, err
	}

	// callers may mutate the map, the cached one stays intact
	out := make(map[int]decimal.Decimal, len(values))
	for n, v := range values {
		out[n] = v
	}

	return out, nil
}

// CreateLoanMaxRange widest band count that still supports debt
func (s *Service) CreateLoanMaxRange(ctx context.Context, collateral, debt decimal.Decimal) (int, error) {
	capacities, err := s.CreateLoanMaxRecvAllRanges(ctx, collateral)
	if err != nil {
		return 0, err
	}

	return llamma.MaxRangeFor(capacities, debt, s.market.MinBands, s.market.MaxBands), nil
}

// CreateLoanBands bands a new loan would occupy
func (s *Service) CreateLoanBands(ctx context.Context, collateral, debt decimal.Decimal, n int) (core.Bands, error) {
	if err := llamma.CheckRange(s.market, n); err != nil {
		return core.Bands{}, err
	}

	return s.bandsFor(ctx, collateral, debt, n)
}

// CreateLoanPrices liquidation prices a new loan would have
func (s *Service) CreateLoanPrices(ctx context.Context, collateral, debt decimal.Decimal, n int) (*core.Prices, error) {
	bands, err := s.CreateLoanBands(ctx, collateral, debt, n)
	if err != nil {
		return nil, err
	}

	return s.pricesFor(ctx, bands)
}

// CreateLoanHealth health a new loan would start with
func (s *Service) CreateLoanHealth(ctx context.Context, collateral, debt decimal.Decimal, n int, full bool) (decimal.Decimal, error) {
	if err := llamma.CheckRange(s.market, n); err != nil {
		return decimal.Zero, err
	}

	return s.health(ctx, common.Address{}, s.rawCollateral(collateral), s.rawBorrowed(debt), full, n)
}

// CreateLoanIsApproved controller may pull the collateral
func (s *Service) CreateLoanIsApproved(ctx context.Context, collateral decimal.Decimal) (bool, error) {
	return s.flow.IsApproved(ctx, s.collateralApproval(collateral))
}

// CreateLoanApprove approve the collateral if needed
func (s *Service) CreateLoanApprove(ctx context.Context, collateral decimal.Decimal) ([]common.Hash, error) {
	return s.flow.Approve(ctx, s.collateralApproval(collateral))
}

// CreateLoanApproveEstimateGas gas of the collateral approvals
func (s *Service) CreateLoanApproveEstimateGas(ctx context.Context, collateral decimal.Decimal) (uint64, error) {
	return s.flow.ApproveEstimateGas(ctx, s.collateralApproval(collateral))
}

func (s *Service) createLoanCall(ctx context.Context, collateral, debt decimal.Decimal, n int) (*core.Call, error) {
	pos, err := s.UserState(ctx, s.signer())
	if err != nil {
		return nil, err
	}

	if pos.HasLoan() {
		return nil, core.NewError(core.ErrLoanAlreadyExists, "debt", pos.Debt, 0)
	}

	if err := llamma.CheckRange(s.market, n); err != nil {
		return nil, err
	}

	return &core.Call{
		To:     s.market.Controller,
		Method: "create_loan",
		Args:   []interface{}{s.rawCollateral(collateral), s.rawBorrowed(debt), big.NewInt(int64(n))},
	}, nil
}

// CreateLoanEstimateGas gas of create_loan, the collateral must be approved
func (s *Service) CreateLoanEstimateGas(ctx context.Context, collateral, debt decimal.Decimal, n int) (uint64, error) {
	call, err := s.createLoanCall(ctx, collateral, debt, n)
	if err != nil {
		return 0, err
	}

	return s.flow.EstimateGas(ctx, s.collateralApproval(collateral), call)
}

// CreateLoan open a loan of debt against collateral over n bands
func (s *Service) CreateLoan(ctx context.Context, collateral, debt decimal.Decimal, n int) (common.Hash, error) {
	call, err := s.createLoanCall(ctx, collateral, debt, n)
	if err != nil {
		return common.Hash{}, err
	}

	return s.flow.Execute(ctx, s.collateralApproval(collateral), call)
}
