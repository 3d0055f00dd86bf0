// Package connect holds the startup retry loop shared by every backing
// service the API depends on (SQLite, Redis).
package connect

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/bookmarks/internal/logger"
)

// PingFunc checks that a backend answers. It must honor ctx.
type PingFunc func(ctx context.Context) error

// Options defines the retry behavior for one backend.
type Options struct {
	Name           string        // backend label used in logs, ex: "sqlite"
	Target         string        // address or path, ex: "localhost:6379"
	ConnectTimeout time.Duration // total time allowed for connection attempts (ex: 30s)
	RetryInterval  time.Duration // initial wait between retries, doubles each attempt
	MaxWait        time.Duration // cap on the wait between retries (ex: 10s)
	PingTimeout    time.Duration // timeout for each ping attempt (ex: 2s)
	WarnThreshold  int           // warn for this many attempts, then log errors
}

// Validate ensures all durations are usable.
func (o Options) Validate() error {
	if o.ConnectTimeout <= 0 {
		return fmt.Errorf("%s: ConnectTimeout must be > 0, got %v", o.Name, o.ConnectTimeout)
	}
	if o.RetryInterval <= 0 {
		return fmt.Errorf("%s: RetryInterval must be > 0, got %v", o.Name, o.RetryInterval)
	}
	if o.MaxWait <= 0 {
		return fmt.Errorf("%s: MaxWait must be > 0, got %v", o.Name, o.MaxWait)
	}
	if o.PingTimeout <= 0 {
		return fmt.Errorf("%s: PingTimeout must be > 0, got %v", o.Name, o.PingTimeout)
	}
	if o.WarnThreshold < 0 {
		return fmt.Errorf("%s: WarnThreshold must be >= 0, got %d", o.Name, o.WarnThreshold)
	}
	return nil
}

// attemptLogger handles all connection logging for one backend.
type attemptLogger struct {
	logger logger.Logger
	opts   Options
}

func (al *attemptLogger) start() {
	al.logger.Info("connecting to "+al.opts.Name,
		logger.String("target", al.opts.Target),
		logger.Duration("timeout", al.opts.ConnectTimeout))
}

func (al *attemptLogger) success(attempts int, elapsed time.Duration) {
	if attempts > 1 {
		al.logger.Warn("connected to "+al.opts.Name+" after retry",
			logger.String("target", al.opts.Target),
			logger.Int("attempts", attempts),
			logger.Duration("elapsed", elapsed))
		return
	}
	al.logger.Info("connected to "+al.opts.Name,
		logger.String("target", al.opts.Target))
}

func (al *attemptLogger) timeout(attempts int, err error) {
	al.logger.Error(al.opts.Name+" unavailable - failed to connect after timeout",
		logger.String("target", al.opts.Target),
		logger.Int("attempts", attempts),
		logger.Duration("timeout", al.opts.ConnectTimeout),
		logger.Error(err))
}

func (al *attemptLogger) retry(attempt int, remaining, nextRetry time.Duration, err error) {
	switch {
	case remaining < 10*time.Second:
		al.logger.Error(al.opts.Name+" still down - retrying but timeout approaching",
			logger.String("target", al.opts.Target),
			logger.Int("attempt", attempt),
			logger.Duration("remaining", remaining),
			logger.Duration("next_retry_in", nextRetry),
			logger.Error(err))
	case attempt <= al.opts.WarnThreshold:
		al.logger.Warn(al.opts.Name+" connection failed, retrying",
			logger.String("target", al.opts.Target),
			logger.Int("attempt", attempt),
			logger.Duration("next_retry_in", nextRetry),
			logger.Error(err))
	default:
		al.logger.Error(al.opts.Name+" still unavailable - connection attempts failing",
			logger.String("target", al.opts.Target),
			logger.Int("attempt", attempt),
			logger.Duration("next_retry_in", nextRetry),
			logger.Error(err))
	}
}

// WithRetry pings until success, exponential backoff capped at MaxWait,
// giving up once ConnectTimeout has elapsed or ctx is done.
func WithRetry(ctx context.Context, opts Options, ping PingFunc, log logger.Logger) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	al := &attemptLogger{logger: log, opts: opts}

	ctx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout)
	defer cancel()

	al.start()
	started := time.Now()
	attempt := 0
	wait := opts.RetryInterval

	for {
		attempt++

		pingCtx, pingCancel := context.WithTimeout(ctx, opts.PingTimeout)
		err := ping(pingCtx)
		pingCancel()

		if err == nil {
			al.success(attempt, time.Since(started))
			return nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			al.timeout(attempt, err)
			return fmt.Errorf("%s unavailable at %s after %d attempts (timeout: %v): %w",
				opts.Name, opts.Target, attempt, opts.ConnectTimeout, err)

		case <-timer.C:
			al.retry(attempt, timeLeft(ctx), wait, err)
			wait *= 2
			if wait > opts.MaxWait {
				wait = opts.MaxWait
			}
		}
	}
}

// timeLeft returns the remaining time before context deadline.
func timeLeft(ctx context.Context) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return 0
	}
	return time.Until(deadline)
}
