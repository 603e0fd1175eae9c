package services

import (
	"context"
	"time"

	"github.com/shiftwise/backend/pkg/logger"
)

// taskStartDelay gives the server a moment to finish startup before the
// first cycle of any background task.
const taskStartDelay = 10 * time.Second

// runPeriodic runs fn once per interval, starting after delay, until ctx is
// cancelled. A failed cycle is logged and the next cycle proceeds on
// schedule; the sleep between cycles is interruptible.
func runPeriodic(ctx context.Context, name string, delay, interval time.Duration, fn func(context.Context) error) {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Str("task", name).Msg("background task stopped")
			return
		case <-timer.C:
		}

		if err := fn(ctx); err != nil {
			logger.Error().Err(err).Str("task", name).Msg("background task cycle failed")
		}

		timer.Reset(interval)
	}
}
