package request

import (
	"context"

	"llamalend/core"
)

type key int

const (
	marketKey key = iota
)

// WithMarket context with the market the route resolved
func WithMarket(ctx context.Context, market *core.Market) context.Context {
	return context.WithValue(ctx, marketKey, market)
}

// MarketFrom market of the route
func MarketFrom(ctx context.Context) (*core.Market, bool) {
	market, ok := ctx.Value(marketKey).(*core.Market)
	return market, ok
}
