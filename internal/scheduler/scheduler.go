// Package scheduler repeats a task on a fixed interval.
package scheduler

import (
	"context"
	"time"

	"careers-engine/internal/logging"
)

type Task func(ctx context.Context) error

// Every runs task now and then once per interval until ctx is done. Runs
// never overlap: a slow run delays the next tick instead of stacking.
func Every(ctx context.Context, interval time.Duration, name string, task Task, log *logging.Logger) {
	if log == nil {
		log = logging.Nop()
	}
	log = log.With("task", name)

	run := func() {
		start := time.Now()
		if err := task(ctx); err != nil {
			log.Error("run failed", "err", err)
			return
		}
		log.Debug("run finished", "took", time.Since(start).Round(time.Millisecond))
	}

	run()

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if ctx.Err() != nil {
				return
			}
			run()
		}
	}
}
