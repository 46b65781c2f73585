// Package store owns every read and write of the persisted directory and of
// the admin secret.
//
// Reads never fail: missing, unreadable or malformed data falls back to the
// default directory. Writes re-read the current record, merge the update over
// it and put the result with a bounded, linearly backed-off retry. There is
// no locking and no version check, so two concurrent writes can race and the
// last put wins.
package store

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/navdir/internal/domain"
	"github.com/MrSnakeDoc/navdir/internal/kv"
	"github.com/MrSnakeDoc/navdir/internal/logger"
)

// FallbackSecret is used when no default secret is configured at all.
const FallbackSecret = "admin"

// Options configures an Accessor.
type Options struct {
	DataKey   string // key of the directory record
	SecretKey string // key of the admin secret

	MaxAttempts int           // put attempts per directory write, 1 disables retries
	BaseDelay   time.Duration // delay before retry n is BaseDelay*n

	ConfiguredSecret string // admin secret from process configuration, may be empty
	DefaultSecret    string // last-resort admin secret

	Defaults domain.Directory // directory returned when the store has none
}

// DefaultOptions returns the production settings.
func DefaultOptions() Options {
	return Options{
		DataKey:       "data",
		SecretKey:     "admin_password",
		MaxAttempts:   3,
		BaseDelay:     200 * time.Millisecond,
		DefaultSecret: FallbackSecret,
		Defaults:      domain.Default(),
	}
}

// Accessor reads and writes the directory and the admin secret.
type Accessor struct {
	kv     kv.Store
	opts   Options
	logger logger.Logger
	sleep  func(time.Duration)
}

// Option customizes an Accessor.
type Option func(*Accessor)

// WithSleep replaces the function used to wait between write attempts.
func WithSleep(fn func(time.Duration)) Option {
	return func(a *Accessor) {
		if fn != nil {
			a.sleep = fn
		}
	}
}

// New builds an Accessor. Zero option fields fall back to DefaultOptions.
func New(store kv.Store, opts Options, log logger.Logger, options ...Option) *Accessor {
	def := DefaultOptions()
	if opts.DataKey == "" {
		opts.DataKey = def.DataKey
	}
	if opts.SecretKey == "" {
		opts.SecretKey = def.SecretKey
	}
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	if opts.BaseDelay < 0 {
		opts.BaseDelay = 0
	}
	if opts.DefaultSecret == "" {
		opts.DefaultSecret = FallbackSecret
	}
	if opts.Defaults.Links == nil && opts.Defaults.Categories == nil {
		opts.Defaults = def.Defaults
	}
	if log == nil {
		log = logger.NewNop()
	}

	a := &Accessor{
		kv:     store,
		opts:   opts,
		logger: log.With(logger.String("component", "store")),
		sleep:  time.Sleep,
	}
	for _, o := range options {
		o(a)
	}
	return a
}

// Options returns the effective options.
func (a *Accessor) Options() Options {
	return a.opts
}

// Ping checks the underlying kv store.
func (a *Accessor) Ping(ctx context.Context) error {
	return a.kv.Ping(ctx)
}
