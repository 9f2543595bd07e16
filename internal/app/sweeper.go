package app

import (
	"context"
	"time"
)

// startSweeper drops per-session state that has been idle for longer than idle, on a fixed interval.
func startSweeper(ctx context.Context, a *App, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.Logger.Info().Msg("Idle sweeper: stopped")
			return
		case <-ticker.C:
			sweepIdle(a, idle)
		}
	}
}

func sweepIdle(a *App, idle time.Duration) int {
	keys := a.Dashboard.Sweep(idle)
	for _, key := range keys {
		a.Chat.Forget(key)
		a.Notices.Forget(key)
	}
	if len(keys) > 0 {
		a.Logger.Info().
			Int("sessions", len(keys)).
			Int("active", a.Dashboard.Active()).
			Msg("Idle sweeper: released dashboard state")
	}
	return len(keys)
}
