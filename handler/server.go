package handler

import (
	"errors"
	"net/http"

	"llamalend/core"
	"llamalend/handler/hc"
	"llamalend/handler/render"
	"llamalend/handler/rest"
	"llamalend/pkg/id"
	"llamalend/pkg/resthttp"

	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server server
type Server struct {
	cfg      *core.Config
	stats    core.IStatsService
	gatherer prometheus.Gatherer
	version  string
}

// New new server function
func New(
	cfg *core.Config,
	stats core.IStatsService,
	gatherer prometheus.Gatherer,
	version string,
) Server {
	return Server{
		cfg:      cfg,
		stats:    stats,
		gatherer: gatherer,
		version:  version,
	}
}

// Handler root handler
func (s Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(withRequestID)

	r.Mount("/hc", hc.Handle(s.version, s.cfg.App.Network))
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	r.Mount("/", s.HandleRestAPI())

	return r
}

// HandleRestAPI handle restful apis
func (s Server) HandleRestAPI() http.Handler {
	r := chi.NewRouter()
	r.Use(resetRoutePath)
	r.Use(render.WrapResponse(true))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	r.Mount("/", rest.Handle(s.cfg, s.stats))
	return r
}

// withRequestID reuse the caller's request id when it is a uuid or issue
// one, and log with it
func withRequestID(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(resthttp.HeaderKeyRequestID)
		if !id.Valid(requestID) {
			requestID = id.GenRequestID()
		}

		w.Header().Set(resthttp.HeaderKeyRequestID, requestID)

		ctx := id.WithRequestID(r.Context(), requestID)
		log := logger.FromContext(ctx).WithField("request_id", requestID)
		ctx = logger.WithContext(ctx, log)

		next.ServeHTTP(w, r.WithContext(ctx))
	}

	return http.HandlerFunc(fn)
}

func resetRoutePath(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if c := chi.RouteContext(ctx); c != nil {
			c.RoutePath = r.URL.Path
		}

		next.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}
