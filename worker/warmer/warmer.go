package warmer

import (
	"context"
	"time"

	"llamalend/core"
	"llamalend/worker"

	"github.com/fox-one/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// New new cache warmer, refreshes the stats of network every interval
func New(
	network string,
	interval time.Duration,
	fetcher core.IStatsFetcher,
	stats core.IStatsService,
) *Warmer {
	return &Warmer{
		TickWorker: worker.TickWorker{
			Delay:    interval,
			ErrDelay: interval / 5,
		},
		network: network,
		fetcher: fetcher,
		stats:   stats,
	}
}

// Warmer primes the stats cache ahead of expiry so readers never wait on the api
type Warmer struct {
	worker.TickWorker
	network string
	fetcher core.IStatsFetcher
	stats   core.IStatsService
}

// Run run until ctx is done
func (w *Warmer) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "warmer")
	ctx = logger.WithContext(ctx, log)

	return w.StartTick(ctx, func(ctx context.Context) error {
		return w.onWork(ctx)
	})
}

func (w *Warmer) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("network", w.network)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		markets, err := w.fetcher.FetchMarketStats(ctx, w.network)
		if err != nil {
			log.WithError(err).Errorln("fetcher.FetchMarketStats")
			return err
		}

		w.stats.PrimeMarketStats(w.network, markets)
		log.Debugln("primed", len(markets), "markets")
		return nil
	})
	g.Go(func() error {
		prices, err := w.fetcher.FetchUSDPrices(ctx, w.network)
		if err != nil {
			log.WithError(err).Errorln("fetcher.FetchUSDPrices")
			return err
		}

		w.stats.PrimeUSDPrices(w.network, prices)
		log.Debugln("primed", len(prices), "prices")
		return nil
	})

	return g.Wait()
}
