package core

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// LoanState loan lifecycle state
type LoanState int

const (
	// LoanStateNoLoan debt is zero
	LoanStateNoLoan LoanState = iota
	// LoanStateHealthy debt is positive and no collateral was converted
	LoanStateHealthy
	// LoanStateSoftLiquidation part of the collateral sits as borrowed token in the AMM
	LoanStateSoftLiquidation
	// LoanStateClosed loan fully repaid or liquidated
	LoanStateClosed
)

func (s LoanState) String() string {
	switch s {
	case LoanStateHealthy:
		return "healthy"
	case LoanStateSoftLiquidation:
		return "soft_liquidation"
	case LoanStateClosed:
		return "closed"
	default:
		return "no_loan"
	}
}

// Position user position snapshot at one block, never mutated in place
type Position struct {
	Collateral decimal.Decimal `json:"collateral"`
	Borrowed   decimal.Decimal `json:"borrowed"`
	Debt       decimal.Decimal `json:"debt"`
	N          int             `json:"n"`
}

// HasLoan debt > 0
func (p *Position) HasLoan() bool {
	return p.Debt.IsPositive()
}

// InLiquidation borrowed > 0
func (p *Position) InLiquidation() bool {
	return p.Borrowed.IsPositive()
}

// State lifecycle state of the snapshot
func (p *Position) State() LoanState {
	switch {
	case !p.HasLoan():
		return LoanStateNoLoan
	case p.InLiquidation():
		return LoanStateSoftLiquidation
	default:
		return LoanStateHealthy
	}
}

// Bands band pair (n2, n1), n1 lower and n2 = n1 + N - 1 upper
type Bands struct {
	N2 int64 `json:"n2"`
	N1 int64 `json:"n1"`
}

// Range number of bands covered
func (b Bands) Range() int {
	if b.N2 < b.N1 {
		return 0
	}

	return int(b.N2-b.N1) + 1
}

// Prices liquidation price range of a band pair. Band indices grow as
// prices fall, so Down belongs to n2 and Up to n1.
type Prices struct {
	Down decimal.Decimal `json:"down"`
	Up   decimal.Decimal `json:"up"`
}

// Fraction partial liquidation fraction in three consistent forms
type Fraction struct {
	// Frac 1e18 is 100%
	Frac        *big.Int        `json:"frac"`
	FracDecimal decimal.Decimal `json:"frac_decimal"`
	Amount      decimal.Decimal `json:"amount"`
}

// RepayPreview result of a repay preview
type RepayPreview struct {
	State LoanState `json:"state"`
	Bands Bands     `json:"bands"`
}
