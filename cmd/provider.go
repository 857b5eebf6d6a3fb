package cmd

import (
	"llamalend/core"
	"llamalend/pkg/memoize"
	"llamalend/service/stats"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func provideConfig() *core.Config {
	return &cfg
}

func provideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return reg
}

func provideStatsCache(metrics *memoize.Metrics) *memoize.Cache {
	return memoize.New("stats", cfg.Cache.MaxAgeDuration(),
		memoize.WithSize(cfg.Cache.Size),
		memoize.WithMetrics(metrics),
	)
}

// ------------------service------------------------------------

func provideStatsFetcher() *stats.Fetcher {
	return stats.NewFetcher(cfg.Stats.EndPoint, cfg.Stats.TimeoutDuration())
}

func provideStatsService(fetcher core.IStatsFetcher, cache *memoize.Cache) core.IStatsService {
	return stats.New(fetcher, cache)
}
