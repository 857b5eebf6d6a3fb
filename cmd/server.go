package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"llamalend/handler"
	"llamalend/pkg/memoize"
	"llamalend/worker"
	"llamalend/worker/warmer"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "run llamalend api server",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		reg := provideRegistry()
		fetcher := provideStatsFetcher()
		statsService := provideStatsService(fetcher, provideStatsCache(memoize.NewMetrics(reg)))

		mux := chi.NewMux()
		mux.Use(middleware.StripSlashes)
		mux.Use(cors.AllowAll().Handler)
		mux.Use(middleware.Logger)
		mux.Use(middleware.NewCompressor(5).Handler)
		mux.Mount("/", handler.New(provideConfig(), statsService, reg, rootCmd.Version).Handler())

		port, _ := cmd.Flags().GetInt("port")
		if port == 0 {
			port = cfg.App.Port
		}
		addr := fmt.Sprintf(":%d", port)

		server := &http.Server{
			Addr:    addr,
			Handler: mux,
		}

		ctx, quit := context.WithCancel(ctx)
		done := make(chan struct{}, 1)
		signal.WithContextFunc(ctx, func() {
			quit()

			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				logrus.WithError(err).Error("graceful shutdown server failed")
			}

			close(done)
		})

		var workers []worker.Worker
		if interval := cfg.Stats.RefreshDuration(); interval > 0 {
			workers = append(workers, warmer.New(cfg.App.Network, interval, fetcher, statsService))
		}

		for _, w := range workers {
			go func(w worker.Worker) {
				if err := w.Run(logger.WithContext(ctx, logger.FromContext(ctx))); err != nil {
					logrus.WithError(err).Infoln("worker stopped")
				}
			}(w)
		}

		logrus.Infoln("serve at", addr)
		err := server.ListenAndServe()
		if err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server aborted")
		}

		<-done
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().IntP("port", "p", 0, "server port, overrides app.port")
}
