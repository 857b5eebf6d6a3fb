package views

import (
	"strings"

	"llamalend/core"
)

// Market configured market with its latest api statistics
type Market struct {
	core.Market
	Stats *core.MarketStats `json:"stats,omitempty"`
}

// MarketView match market to its stats by controller address
func MarketView(market core.Market, stats []*core.MarketStats) Market {
	view := Market{Market: market}
	for _, s := range stats {
		if strings.EqualFold(s.Controller, market.Controller.Hex()) {
			view.Stats = s
			break
		}
	}

	return view
}

// MarketViews market views
func MarketViews(markets []core.Market, stats []*core.MarketStats) []Market {
	views := make([]Market, 0, len(markets))
	for _, m := range markets {
		views = append(views, MarketView(m, stats))
	}

	return views
}
