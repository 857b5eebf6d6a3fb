package stats

import (
	"context"
	"net/http"
	"time"

	"llamalend/core"
	"llamalend/pkg/resthttp"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

// Fetcher statistics api client without caching
type Fetcher struct {
	client *resty.Client
}

// NewFetcher new fetcher for endpoint
func NewFetcher(endpoint string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: resthttp.New(endpoint, timeout),
	}
}

type lendingVaultsResponse struct {
	Data struct {
		LendingVaultData []*core.MarketStats `json:"lendingVaultData"`
	} `json:"data"`
}

type usdPricesResponse struct {
	Data map[string]decimal.Decimal `json:"data"`
}

// FetchMarketStats GET /getLendingVaults/{network}
func (f *Fetcher) FetchMarketStats(ctx context.Context, network string) ([]*core.MarketStats, error) {
	var resp lendingVaultsResponse
	req := resthttp.Request(ctx, f.client, "lending_vaults").SetPathParam("network", network)
	if _, err := resthttp.Execute(req, http.MethodGet, "/getLendingVaults/{network}", nil, &resp); err != nil {
		return nil, err
	}

	return resp.Data.LendingVaultData, nil
}

// FetchUSDPrices GET /getUSDPrices/{network}, keyed by lower case token address
func (f *Fetcher) FetchUSDPrices(ctx context.Context, network string) (map[string]decimal.Decimal, error) {
	var resp usdPricesResponse
	req := resthttp.Request(ctx, f.client, "usd_prices").SetPathParam("network", network)
	if _, err := resthttp.Execute(req, http.MethodGet, "/getUSDPrices/{network}", nil, &resp); err != nil {
		return nil, err
	}

	prices := make(map[string]decimal.Decimal, len(resp.Data))
	for token, price := range resp.Data {
		prices[normalize(token)] = price
	}

	return prices, nil
}
