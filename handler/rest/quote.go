package rest

import (
	"encoding/json"
	"net/http"

	"llamalend/handler/render"
	"llamalend/internal/llamma"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

func bandsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		market := mustMarket(r)
		query := r.URL.Query()

		n1, err := cast.ToInt64E(query.Get("n1"))
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		n, err := cast.ToIntE(query.Get("n"))
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := llamma.CheckRange(market, n); err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, llamma.BandsFor(n1, n))
	}
}

func fullRepayHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		market := mustMarket(r)
		debt, err := decimal.NewFromString(r.URL.Query().Get("debt"))
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, render.H{
			"amount": llamma.FullRepayAmount(debt, market.BorrowedDecimals),
		})
	}
}

func maxRangeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		market := mustMarket(r)

		var body struct {
			Capacities map[int]decimal.Decimal `json:"capacities"`
			Debt       decimal.Decimal         `json:"debt"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, render.H{
			"range": llamma.MaxRangeFor(body.Capacities, body.Debt, market.MinBands, market.MaxBands),
		})
	}
}

func partialFracHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		market := mustMarket(r)

		var body struct {
			Amount            decimal.Decimal `json:"amount"`
			TokensToLiquidate decimal.Decimal `json:"tokens_to_liquidate"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			render.BadRequest(w, err)
			return
		}

		frac, err := llamma.CalcPartialFrac(body.Amount, body.TokensToLiquidate, market.BorrowedDecimals)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, frac)
	}
}
