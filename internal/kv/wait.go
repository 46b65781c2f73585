package kv

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/navdir/internal/logger"
)

// RetryPolicy bounds how long WaitReady keeps pinging a backend.
type RetryPolicy struct {
	Timeout       time.Duration // total budget for all attempts (ex: 30s)
	Interval      time.Duration // first wait between attempts, doubled after each failure (ex: 2s)
	MaxInterval   time.Duration // cap on the wait between attempts (ex: 10s)
	PingTimeout   time.Duration // timeout of a single ping (ex: 2s)
	WarnThreshold int           // failed attempts logged at warn before switching to error
}

func (p RetryPolicy) Validate() error {
	switch {
	case p.Timeout <= 0:
		return fmt.Errorf("Timeout must be > 0, got %v", p.Timeout)
	case p.Interval <= 0:
		return fmt.Errorf("Interval must be > 0, got %v", p.Interval)
	case p.MaxInterval <= 0:
		return fmt.Errorf("MaxInterval must be > 0, got %v", p.MaxInterval)
	case p.PingTimeout <= 0:
		return fmt.Errorf("PingTimeout must be > 0, got %v", p.PingTimeout)
	case p.WarnThreshold < 0:
		return fmt.Errorf("WarnThreshold must be >= 0, got %d", p.WarnThreshold)
	}
	return nil
}

// Pinger is the part of Store WaitReady needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// WaitReady pings p with exponential backoff until it answers or the
// policy's Timeout elapses. It lets a service start next to a backend
// that is still booting while failing fast on one that never comes up.
func WaitReady(ctx context.Context, name string, p Pinger, policy RetryPolicy, log logger.Logger) error {
	if err := policy.Validate(); err != nil {
		return fmt.Errorf("invalid %s retry policy: %w", name, err)
	}

	ctx, cancel := context.WithTimeout(ctx, policy.Timeout)
	defer cancel()

	log = log.With(logger.String("backend", name))
	log.Info("waiting for backend", logger.Duration("timeout", policy.Timeout))

	started := time.Now()
	wait := policy.Interval

	for attempt := 1; ; attempt++ {
		pingCtx, pingCancel := context.WithTimeout(ctx, policy.PingTimeout)
		err := p.Ping(pingCtx)
		pingCancel()

		if err == nil {
			if attempt > 1 {
				log.Warn("backend ready after retry",
					logger.Int("attempts", attempt),
					logger.Duration("elapsed", time.Since(started)))
			} else {
				log.Info("backend ready")
			}
			return nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Error("backend unavailable",
				logger.Int("attempts", attempt),
				logger.Duration("timeout", policy.Timeout),
				logger.Error(err))
			return fmt.Errorf("%s unavailable after %d attempts (timeout: %v): %w",
				name, attempt, policy.Timeout, err)
		case <-timer.C:
		}

		logFn := log.Warn
		if attempt > policy.WarnThreshold {
			logFn = log.Error
		}
		logFn("backend not ready, retrying",
			logger.Int("attempt", attempt),
			logger.Duration("next_retry_in", wait),
			logger.Error(err))

		wait = min(wait*2, policy.MaxInterval)
	}
}
