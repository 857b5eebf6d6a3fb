package warmer

import (
	"context"
	"errors"
	"testing"
	"time"

	"llamalend/core"
	"llamalend/pkg/memoize"
	"llamalend/service/stats"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	calls     int
	failPrice bool
}

func (f *fakeFetcher) FetchMarketStats(ctx context.Context, network string) ([]*core.MarketStats, error) {
	f.calls++
	return []*core.MarketStats{{Name: "wETH-long", TotalDebt: decimal.NewFromInt(7)}}, nil
}

func (f *fakeFetcher) FetchUSDPrices(ctx context.Context, network string) (map[string]decimal.Decimal, error) {
	if f.failPrice {
		return nil, errors.New("api down")
	}

	return map[string]decimal.Decimal{"0xabc": decimal.NewFromInt(2)}, nil
}

func TestWarmerPrimes(t *testing.T) {
	warm := &fakeFetcher{}
	cold := &fakeFetcher{}
	svc := stats.New(cold, memoize.New("stats", time.Minute))

	w := New("ethereum", time.Minute, warm, svc)
	require.NoError(t, w.onWork(context.Background()))

	markets, err := svc.MarketStats(context.Background(), "ethereum")
	require.NoError(t, err)
	assert.Equal(t, "wETH-long", markets[0].Name)

	rate, err := svc.USDRate(context.Background(), "ethereum", "0xABC")
	require.NoError(t, err)
	assert.Equal(t, "2", rate.String())

	assert.Equal(t, 1, warm.calls)
	assert.Zero(t, cold.calls)
}

func TestWarmerReportsFailure(t *testing.T) {
	warm := &fakeFetcher{failPrice: true}
	svc := stats.New(&fakeFetcher{}, nil)

	w := New("ethereum", time.Minute, warm, svc)
	assert.Error(t, w.onWork(context.Background()))
}
