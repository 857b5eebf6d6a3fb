package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// MarketStats aggregate data of one lending market from the statistics API
type MarketStats struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Controller      string          `json:"controllerAddress"`
	AMM             string          `json:"ammAddress"`
	CollateralToken string          `json:"collateralTokenAddress"`
	BorrowedToken   string          `json:"borrowedTokenAddress"`
	TotalDebt       decimal.Decimal `json:"totalDebt"`
	TotalSupplied   decimal.Decimal `json:"totalSupplied"`
	TotalCollateral decimal.Decimal `json:"totalCollateral"`
	BorrowAPY       decimal.Decimal `json:"borrowApy"`
	LendAPY         decimal.Decimal `json:"lendApy"`
	TotalDebtUSD    decimal.Decimal `json:"totalDebtUsd"`
	TotalSupplyUSD  decimal.Decimal `json:"totalSuppliedUsd"`
}

// IStatsService statistics api reads, cached
type IStatsService interface {
	MarketStats(ctx context.Context, network string) ([]*MarketStats, error)
	USDPrices(ctx context.Context, network string) (map[string]decimal.Decimal, error)
	USDRate(ctx context.Context, network, token string) (decimal.Decimal, error)
	PrimeMarketStats(network string, stats []*MarketStats)
	PrimeUSDPrices(network string, prices map[string]decimal.Decimal)
}

// IStatsFetcher uncached statistics api reads
type IStatsFetcher interface {
	FetchMarketStats(ctx context.Context, network string) ([]*MarketStats, error)
	FetchUSDPrices(ctx context.Context, network string) (map[string]decimal.Decimal, error)
}
