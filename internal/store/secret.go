package store

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/navdir/internal/logger"
)

// LoadAdminSecret walks the fallback chain: the store, then the configured
// secret, then the default. A store failure is carried in Err but never
// stops the chain.
func (a *Accessor) LoadAdminSecret(ctx context.Context) Result[string] {
	value, found, err := a.kv.Get(ctx, a.opts.SecretKey)
	if err == nil && found && value != "" {
		return ok(value, SourceStore)
	}
	if err != nil {
		err = fmt.Errorf("read %q: %w", a.opts.SecretKey, err)
	}

	if a.opts.ConfiguredSecret != "" {
		return Result[string]{Value: a.opts.ConfiguredSecret, Source: SourceConfig, Err: err}
	}
	return Result[string]{Value: a.opts.DefaultSecret, Source: SourceDefault, Err: err}
}

// ReadAdminSecret returns the effective admin secret. It never fails and
// never returns an empty string.
func (a *Accessor) ReadAdminSecret(ctx context.Context) string {
	res := a.LoadAdminSecret(ctx)
	if res.Recovered() {
		a.logger.Debug("admin secret store read failed, using fallback",
			logger.String("source", res.Source.String()),
			logger.Error(res.Err))
	}
	return res.Value
}

// WriteAdminSecret stores a new admin secret. It is a single attempt: store
// errors are returned as-is to the caller.
func (a *Accessor) WriteAdminSecret(ctx context.Context, secret string) error {
	if strings.TrimSpace(secret) == "" {
		return ErrEmptySecret
	}
	if err := a.kv.Put(ctx, a.opts.SecretKey, secret); err != nil {
		return fmt.Errorf("store admin secret: %w", err)
	}
	a.logger.Info("admin secret updated")
	return nil
}

// CheckSecret reports whether presented matches the effective admin secret.
func (a *Accessor) CheckSecret(ctx context.Context, presented string) bool {
	if presented == "" {
		return false
	}
	expected := a.ReadAdminSecret(ctx)
	return subtle.ConstantTimeCompare([]byte(presented), []byte(expected)) == 1
}
