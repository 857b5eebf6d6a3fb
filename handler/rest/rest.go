package rest

import (
	"errors"
	"fmt"
	"net/http"

	"llamalend/core"
	"llamalend/handler/render"
	"llamalend/handler/request"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(cfg *core.Config, stats core.IStatsService) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/stats", statsHandler(cfg, stats))
	router.Get("/prices/{token}", usdRateHandler(cfg, stats))
	router.Get("/markets", allMarketsHandler(cfg, stats))
	router.Route("/markets/{market}", func(r chi.Router) {
		r.Use(requireMarket(cfg))
		r.Get("/", marketHandler(cfg, stats))
		r.Get("/bands", bandsHandler())
		r.Get("/full-repay", fullRepayHandler())
		r.Post("/max-range", maxRangeHandler())
		r.Post("/partial-frac", partialFracHandler())
	})

	return router
}

func requireMarket(cfg *core.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			name := chi.URLParam(r, "market")
			market, ok := cfg.FindMarket(name)
			if !ok {
				render.NotFoundRequest(w, fmt.Errorf("market %q not found", name))
				return
			}

			ctx := request.WithMarket(r.Context(), market)
			next.ServeHTTP(w, r.WithContext(ctx))
		}

		return http.HandlerFunc(fn)
	}
}

func mustMarket(r *http.Request) *core.Market {
	market, _ := request.MarketFrom(r.Context())
	return market
}
