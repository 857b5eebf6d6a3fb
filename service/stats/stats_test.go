package stats

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"llamalend/core"
	"llamalend/pkg/memoize"
	"llamalend/pkg/resthttp"

	"github.com/bluele/gcache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	*httptest.Server
	vaults int32
	prices int32
	fail   int32
}

func newFakeAPI(t *testing.T) *fakeAPI {
	api := &fakeAPI{}
	mux := http.NewServeMux()
	mux.HandleFunc("/getLendingVaults/ethereum", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&api.vaults, 1)
		assert.NotEmpty(t, r.Header.Get(resthttp.HeaderKeyRequestID))
		_, _ = w.Write([]byte(`{"success":true,"data":{"lendingVaultData":[
			{"id":"one-way-market-0","name":"wETH-long","controllerAddress":"0xc01","ammAddress":"0xd01",
			 "totalDebt":"1200.5","borrowApy":"4.25"}
		]}}`))
	})
	mux.HandleFunc("/getUSDPrices/ethereum", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&api.prices, 1)
		if atomic.LoadInt32(&api.fail) > 0 {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`bad gateway`))
			return
		}

		_, _ = w.Write([]byte(`{"data":{"0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2":"2500.5"}}`))
	})

	api.Server = httptest.NewServer(mux)
	t.Cleanup(api.Close)
	return api
}

func TestFetcher(t *testing.T) {
	api := newFakeAPI(t)
	f := NewFetcher(api.URL+"/", time.Second)
	ctx := context.Background()

	stats, err := f.FetchMarketStats(ctx, "ethereum")
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "wETH-long", stats[0].Name)
	assert.Equal(t, "0xc01", stats[0].Controller)
	assert.Equal(t, "1200.5", stats[0].TotalDebt.String())
	assert.Equal(t, "4.25", stats[0].BorrowAPY.String())

	prices, err := f.FetchUSDPrices(ctx, "ethereum")
	require.NoError(t, err)
	assert.Equal(t, "2500.5", prices["0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2"].String())

	_, err = f.FetchUSDPrices(ctx, "arbitrum")
	var httpErr *resthttp.Error
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestServiceCachesPerWindow(t *testing.T) {
	api := newFakeAPI(t)
	clock := gcache.NewFakeClock()
	s := New(NewFetcher(api.URL, time.Second), memoize.New("stats", 5*time.Minute, memoize.WithClock(clock)))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.MarketStats(ctx, "ethereum")
		require.NoError(t, err)

		rate, err := s.USDRate(ctx, "ethereum", "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")
		require.NoError(t, err)
		assert.Equal(t, "2500.5", rate.String())
	}

	assert.EqualValues(t, 1, atomic.LoadInt32(&api.vaults))
	assert.EqualValues(t, 1, atomic.LoadInt32(&api.prices))

	clock.Advance(5*time.Minute + time.Second)

	_, err := s.MarketStats(ctx, "ethereum")
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&api.vaults))
}

func TestServiceDoesNotCacheFailures(t *testing.T) {
	api := newFakeAPI(t)
	s := New(NewFetcher(api.URL, time.Second), nil)
	ctx := context.Background()

	atomic.StoreInt32(&api.fail, 1)
	_, err := s.USDPrices(ctx, "ethereum")
	assert.Error(t, err)

	atomic.StoreInt32(&api.fail, 0)
	prices, err := s.USDPrices(ctx, "ethereum")
	require.NoError(t, err)
	assert.Len(t, prices, 1)
	assert.EqualValues(t, 2, atomic.LoadInt32(&api.prices))
}

func TestServicePrimed(t *testing.T) {
	api := newFakeAPI(t)
	s := New(NewFetcher(api.URL, time.Second), nil)
	ctx := context.Background()

	s.PrimeUSDPrices("ethereum", map[string]decimal.Decimal{"0xABC": decimal.NewFromInt(3)})
	s.PrimeMarketStats("ethereum", []*core.MarketStats{{Name: "primed"}})

	rate, err := s.USDRate(ctx, "ethereum", "0xabc")
	require.NoError(t, err)
	assert.Equal(t, "3", rate.String())

	rate, err = s.USDRate(ctx, "ethereum", "0xdef")
	require.NoError(t, err)
	assert.True(t, rate.IsZero())

	stats, err := s.MarketStats(ctx, "ethereum")
	require.NoError(t, err)
	assert.Equal(t, "primed", stats[0].Name)

	assert.Zero(t, atomic.LoadInt32(&api.prices))
	assert.Zero(t, atomic.LoadInt32(&api.vaults))
}
