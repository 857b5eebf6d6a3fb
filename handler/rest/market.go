package rest

import (
	"net/http"

	"llamalend/core"
	"llamalend/handler/render"
	"llamalend/handler/views"

	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
)

// marketStats stats are decoration, markets render without them when the api is down
func marketStats(r *http.Request, cfg *core.Config, stats core.IStatsService) []*core.MarketStats {
	ctx := r.Context()
	list, err := stats.MarketStats(ctx, cfg.App.Network)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Warnln("stats.MarketStats")
		return nil
	}

	return list
}

func allMarketsHandler(cfg *core.Config, stats core.IStatsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, views.MarketViews(cfg.Markets, marketStats(r, cfg, stats)))
	}
}

func marketHandler(cfg *core.Config, stats core.IStatsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, views.MarketView(*mustMarket(r), marketStats(r, cfg, stats)))
	}
}

func statsHandler(cfg *core.Config, stats core.IStatsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := stats.MarketStats(r.Context(), cfg.App.Network)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, list)
	}
}

func usdRateHandler(cfg *core.Config, stats core.IStatsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := chi.URLParam(r, "token")
		rate, err := stats.USDRate(r.Context(), cfg.App.Network, token)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{
			"token": token,
			"usd":   rate,
		})
	}
}
