package loan

import (
	"context"
	"math/big"
	"sync"

	"llamalend/core"
	"llamalend/internal/llamma"
	"llamalend/internal/tx"
	"llamalend/pkg/memoize"
	"llamalend/pkg/number"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Service loan lifecycle of one market for the submitter's signer
type Service struct {
	market  *core.Market
	states  core.IStateReader
	oracle  core.IOracle
	flow    *tx.Flow
	maxRecv memoize.Typed[map[int]decimal.Decimal]
}

// New new loan service, cache holds the all-ranges capacity tables
func New(
	market *core.Market,
	states core.IStateReader,
	oracle core.IOracle,
	submitter core.ITxSubmitter,
	allowance core.IAllowanceManager,
	cache *memoize.Cache,
) *Service {
	if cache == nil {
		cache = memoize.New("max_recv", memoize.DefaultMaxAge)
	}

	return &Service{
		market:  market,
		states:  states,
		oracle:  oracle,
		flow:    tx.NewFlow(submitter, allowance),
		maxRecv: memoize.NewTyped[map[int]decimal.Decimal](cache),
	}
}

// Market market descriptor
func (s *Service) Market() *core.Market {
	return s.market
}

func (s *Service) signer() common.Address {
	return s.flow.Signer()
}

func (s *Service) rawCollateral(d decimal.Decimal) *big.Int {
	return number.ToRaw(d, s.market.CollateralDecimals)
}

func (s *Service) rawBorrowed(d decimal.Decimal) *big.Int {
	return number.ToRaw(d, s.market.BorrowedDecimals)
}

// UserState position of user
func (s *Service) UserState(ctx context.Context, user common.Address) (*core.Position, error) {
	raw, err := s.states.UserState(ctx, s.market, user)
	if err != nil {
		return nil, err
	}

	return &core.Position{
		Collateral: number.FromRaw(raw.Collateral, s.market.CollateralDecimals),
		Borrowed:   number.FromRaw(raw.Borrowed, s.market.BorrowedDecimals),
		Debt:       number.FromRaw(raw.Debt, s.market.BorrowedDecimals),
		N:          raw.N,
	}, nil
}

// LoanExists debt of user > 0
func (s *Service) LoanExists(ctx context.Context, user common.Address) (bool, error) {
	pos, err := s.UserState(ctx, user)
	if err != nil {
		return false, err
	}

	return pos.HasLoan(), nil
}

// UserBands bands of user
func (s *Service) UserBands(ctx context.Context, user common.Address) (core.Bands, error) {
	n2, n1, err := s.states.UserBands(ctx, s.market, user)
	if err != nil {
		return core.Bands{}, err
	}

	return core.Bands{N2: n2, N1: n1}, nil
}

// UserPrices liquidation prices of user
func (s *Service) UserPrices(ctx context.Context, user common.Address) (*core.Prices, error) {
	bands, err := s.UserBands(ctx, user)
	if err != nil {
		return nil, err
	}

	return s.pricesFor(ctx, bands)
}

// UserRange number of bands of user, zero without a loan
func (s *Service) UserRange(ctx context.Context, user common.Address) (int, error) {
	exists, err := s.LoanExists(ctx, user)
	if err != nil || !exists {
		return 0, err
	}

	bands, err := s.UserBands(ctx, user)
	if err != nil {
		return 0, err
	}

	return bands.Range(), nil
}

// UserHealth health of user in percent
func (s *Service) UserHealth(ctx context.Context, user common.Address, full bool) (decimal.Decimal, error) {
	pos, err := s.UserState(ctx, user)
	if err != nil {
		return decimal.Zero, err
	}

	return s.health(ctx, user, big.NewInt(0), big.NewInt(0), full, pos.N)
}

// TokensToLiquidate borrowed tokens needed to liquidate user
func (s *Service) TokensToLiquidate(ctx context.Context, user common.Address) (decimal.Decimal, error) {
	raw, err := s.states.TokensToLiquidate(ctx, s.market, user)
	if err != nil {
		return decimal.Zero, err
	}

	return number.FromRaw(raw, s.market.BorrowedDecimals), nil
}

// requireLoan position of user, LoanNotFound without debt
func (s *Service) requireLoan(ctx context.Context, user common.Address) (*core.Position, error) {
	pos, err := s.UserState(ctx, user)
	if err != nil {
		return nil, err
	}

	if !pos.HasLoan() {
		return nil, core.NewError(core.ErrLoanNotFound, "user", user.Hex(), nil)
	}

	return pos, nil
}

// requireHealthy position of user outside soft liquidation
func (s *Service) requireHealthy(ctx context.Context, user common.Address) (*core.Position, error) {
	pos, err := s.requireLoan(ctx, user)
	if err != nil {
		return nil, err
	}

	if pos.InLiquidation() {
		return nil, core.NewError(core.ErrAlreadyInLiquidation, "borrowed", pos.Borrowed, 0)
	}

	return pos, nil
}

func (s *Service) debtN1(ctx context.Context, collateral, debt decimal.Decimal, n int) (int64, error) {
	return s.oracle.DebtN1(ctx, s.market, s.rawCollateral(collateral), s.rawBorrowed(debt), n)
}

func (s *Service) bandsFor(ctx context.Context, collateral, debt decimal.Decimal, n int) (core.Bands, error) {
	n1, err := s.debtN1(ctx, collateral, debt, n)
	if err != nil {
		return core.Bands{}, err
	}

	return llamma.BandsFor(n1, n), nil
}

// pricesFor the two reads are independent
func (s *Service) pricesFor(ctx context.Context, bands core.Bands) (*core.Prices, error) {
	var down, up *big.Int

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		down, err = s.oracle.PriceDown(ctx, s.market, bands.N2)
		return
	})
	g.Go(func() (err error) {
		up, err = s.oracle.PriceUp(ctx, s.market, bands.N1)
		return
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &core.Prices{
		Down: number.FromRaw(down, 18),
		Up:   number.FromRaw(up, 18),
	}, nil
}

func (s *Service) health(ctx context.Context, user common.Address, dCollateral, dDebt *big.Int, full bool, n int) (decimal.Decimal, error) {
	raw, err := s.oracle.HealthCalculator(ctx, s.market, user, dCollateral, dDebt, full, n)
	if err != nil {
		return decimal.Zero, err
	}

	return llamma.FormatHealth(raw), nil
}

func (s *Service) collateralApproval(amount decimal.Decimal) tx.Approval {
	return tx.Approval{
		Tokens:  []common.Address{s.market.CollateralToken},
		Amounts: []*big.Int{s.rawCollateral(amount)},
		Spender: s.market.Controller,
	}
}

func (s *Service) borrowedApproval(amount decimal.Decimal) tx.Approval {
	return tx.Approval{
		Tokens:  []common.Address{s.market.BorrowedToken},
		Amounts: []*big.Int{s.rawBorrowed(amount)},
		Spender: s.market.Controller,
	}
}

// collect run fn for every n in [min_bands, max_bands] concurrently
func (s *Service) collect(ctx context.Context, fn func(ctx context.Context, n int) (decimal.Decimal, error)) (map[int]decimal.Decimal, error) {
	var mux sync.Mutex
	results := make(map[int]decimal.Decimal, s.market.MaxBands-s.market.MinBands+1)

	g, ctx := errgroup.WithContext(ctx)
	for n := s.market.MinBands; n <= s.market.MaxBands; n++ {
		n := n
		g.Go(func() error {
			v, err := fn(ctx, n)
			if err != nil {
				return err
			}

			mux.Lock()
			results[n] = v
			mux.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
