package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/navdir/internal/domain"
	"github.com/MrSnakeDoc/navdir/internal/logger"
)

// LoadDirectory reads and normalizes the directory record. Absent data is an
// Ok read of the defaults; unreadable or malformed data is a Recovered read
// of the defaults carrying the cause.
func (a *Accessor) LoadDirectory(ctx context.Context) Result[domain.Directory] {
	key := a.opts.DataKey

	raw, found, err := a.kv.Get(ctx, key)
	if err != nil {
		return recovered(a.opts.Defaults.Clone(), SourceDefault, fmt.Errorf("read %q: %w", key, err))
	}
	if !found {
		return ok(a.opts.Defaults.Clone(), SourceDefault)
	}

	payload, err := domain.Decode([]byte(raw))
	if err != nil {
		return recovered(a.opts.Defaults.Clone(), SourceDefault, fmt.Errorf("decode %q: %w", key, err))
	}
	return ok(domain.Merge(a.opts.Defaults, payload), SourceStore)
}

// ReadDirectory returns the current directory. It never fails; recovered
// reads are logged and answered with the defaults.
func (a *Accessor) ReadDirectory(ctx context.Context) domain.Directory {
	res := a.LoadDirectory(ctx)
	if res.Recovered() {
		a.logger.Warn("directory read failed, serving defaults",
			logger.String("key", a.opts.DataKey),
			logger.Error(res.Err))
	}
	return res.Value
}

// WriteRaw decodes a write body and applies it with WriteDirectory. Bodies
// that are not a JSON array or object fail with ErrInvalidInput.
func (a *Accessor) WriteRaw(ctx context.Context, body []byte) (domain.Directory, error) {
	payload, err := domain.Decode(body)
	if err != nil {
		return domain.Directory{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return a.WriteDirectory(ctx, payload)
}

// WriteDirectory merges payload over the current directory and stores the
// result. The put is retried up to MaxAttempts times, waiting BaseDelay*n
// after the n-th failure. The write is detached from ctx cancellation: once
// started it runs to completion or exhausts its attempts. The record is not
// re-read to verify the write.
func (a *Accessor) WriteDirectory(ctx context.Context, payload domain.Payload) (domain.Directory, error) {
	ctx = context.WithoutCancel(ctx)

	current := a.LoadDirectory(ctx)
	if current.Recovered() {
		a.logger.Warn("merging write over defaults, current directory unreadable",
			logger.String("key", a.opts.DataKey),
			logger.Error(current.Err))
	}

	merged := domain.Merge(current.Value, payload)
	data, err := json.Marshal(merged)
	if err != nil {
		return domain.Directory{}, fmt.Errorf("encode directory: %w", err)
	}

	if err := a.putWithRetry(ctx, a.opts.DataKey, string(data)); err != nil {
		return domain.Directory{}, err
	}

	a.logger.Info("directory written",
		logger.String("key", a.opts.DataKey),
		logger.Int("links", len(merged.Links)),
		logger.Int("categories", len(merged.Categories)),
		logger.Bool("legacy_input", payload.IsLegacy()))
	return merged, nil
}

func (a *Accessor) putWithRetry(ctx context.Context, key, value string) error {
	var lastErr error
	for attempt := 1; attempt <= a.opts.MaxAttempts; attempt++ {
		err := a.kv.Put(ctx, key, value)
		if err == nil {
			if attempt > 1 {
				a.logger.Info("write succeeded after retry",
					logger.String("key", key),
					logger.Int("attempt", attempt))
			}
			return nil
		}
		lastErr = err

		if attempt == a.opts.MaxAttempts {
			break
		}
		delay := a.opts.BaseDelay * time.Duration(attempt)
		a.logger.Warn("write failed, retrying",
			logger.String("key", key),
			logger.Int("attempt", attempt),
			logger.Duration("next_retry_in", delay),
			logger.Error(err))
		a.sleep(delay)
	}

	a.logger.Error("write failed, attempts exhausted",
		logger.String("key", key),
		logger.Int("attempts", a.opts.MaxAttempts),
		logger.Error(lastErr))
	return &WriteError{Key: key, Attempts: a.opts.MaxAttempts, Err: lastErr}
}
