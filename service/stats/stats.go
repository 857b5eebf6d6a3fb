package stats

import (
	"context"
	"strings"

	"llamalend/core"
	"llamalend/pkg/memoize"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

// New new stats service, fetches go through cache
func New(fetcher core.IStatsFetcher, cache *memoize.Cache) core.IStatsService {
	if cache == nil {
		cache = memoize.New("stats", memoize.DefaultMaxAge)
	}

	return &service{
		fetcher: fetcher,
		markets: memoize.NewTyped[[]*core.MarketStats](cache),
		prices:  memoize.NewTyped[map[string]decimal.Decimal](cache),
	}
}

type service struct {
	fetcher core.IStatsFetcher
	markets memoize.Typed[[]*core.MarketStats]
	prices  memoize.Typed[map[string]decimal.Decimal]
}

func normalize(token string) string {
	return strings.ToLower(token)
}

func marketsKey(network string) string {
	return memoize.Key("market_stats", network)
}

func pricesKey(network string) string {
	return memoize.Key("usd_prices", network)
}

func (s *service) MarketStats(ctx context.Context, network string) ([]*core.MarketStats, error) {
	return s.markets.Do(ctx, marketsKey(network), func(ctx context.Context) ([]*core.MarketStats, error) {
		stats, err := s.fetcher.FetchMarketStats(ctx, network)
		if err != nil {
			logger.FromContext(ctx).WithError(err).Errorln("fetcher.FetchMarketStats", network)
		}

		return stats, err
	})
}

func (s *service) USDPrices(ctx context.Context, network string) (map[string]decimal.Decimal, error) {
	return s.prices.Do(ctx, pricesKey(network), func(ctx context.Context) (map[string]decimal.Decimal, error) {
		prices, err := s.fetcher.FetchUSDPrices(ctx, network)
		if err != nil {
			logger.FromContext(ctx).WithError(err).Errorln("fetcher.FetchUSDPrices", network)
		}

		return prices, err
	})
}

// USDRate price of token in usd, zero when the api does not list it
func (s *service) USDRate(ctx context.Context, network, token string) (decimal.Decimal, error) {
	prices, err := s.USDPrices(ctx, network)
	if err != nil {
		return decimal.Zero, err
	}

	return prices[normalize(token)], nil
}

func (s *service) PrimeMarketStats(network string, stats []*core.MarketStats) {
	s.markets.Set(marketsKey(network), stats)
}

func (s *service) PrimeUSDPrices(network string, prices map[string]decimal.Decimal) {
	normalized := make(map[string]decimal.Decimal, len(prices))
	for token, price := range prices {
		normalized[normalize(token)] = price
	}

	s.prices.Set(pricesKey(network), normalized)
}
