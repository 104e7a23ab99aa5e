package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultPollInterval = 30 * time.Second
	maxBackoff          = 30 * time.Second
)

// loader is the part of Controller the poller needs.
type loader interface {
	Load(ctx context.Context) error
}

// StartPoller launches a background goroutine that reloads the collection
// at interval, backing off while loads keep failing. It returns immediately
// and stops when ctx is cancelled.
func StartPoller(ctx context.Context, l loader, interval time.Duration, log zerolog.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		failures := 0
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}

			if err := l.Load(ctx); err != nil {
				failures++
				log.Warn().Err(err).Int("failures", failures).Msg("refresh failed")
			} else {
				failures = 0
			}
			timer.Reset(calculateBackoff(failures, interval))
		}
	}()
}

// calculateBackoff returns base doubled once per consecutive failure,
// capped at maxBackoff or base, whichever is larger. A failure never makes
// the next poll come sooner than base.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	limit := max(maxBackoff, base)
	if failures <= 0 {
		return base
	}
	if failures > 16 {
		return limit
	}
	backoff := base << failures
	if backoff > limit || backoff <= 0 {
		return limit
	}
	return backoff
}
