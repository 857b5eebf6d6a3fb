package worker

import (
	"context"
	"time"
)

// Worker background job
type Worker interface {
	Run(ctx context.Context) error
}

// TickWorker runs a job every Delay, or every ErrDelay after a failure
type TickWorker struct {
	Delay    time.Duration
	ErrDelay time.Duration
}

// StartTick run onTick until ctx is done, the first run starts immediately
func (w *TickWorker) StartTick(ctx context.Context, onTick func(ctx context.Context) error) error {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			delay := w.Delay
			if err := onTick(ctx); err != nil {
				delay = w.ErrDelay
			}

			if delay <= 0 {
				delay = time.Second
			}

			timer.Reset(delay)
		}
	}
}
