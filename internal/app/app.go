package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MrSnakeDoc/navdir/internal/config"
	"github.com/MrSnakeDoc/navdir/internal/domain"
	"github.com/MrSnakeDoc/navdir/internal/httpserver"
	"github.com/MrSnakeDoc/navdir/internal/httpserver/deps"
	"github.com/MrSnakeDoc/navdir/internal/kv"
	"github.com/MrSnakeDoc/navdir/internal/kv/memory"
	"github.com/MrSnakeDoc/navdir/internal/kv/redis"
	"github.com/MrSnakeDoc/navdir/internal/kv/sqlite"
	"github.com/MrSnakeDoc/navdir/internal/logger"
	"github.com/MrSnakeDoc/navdir/internal/render"
	"github.com/MrSnakeDoc/navdir/internal/sources/seed"
	"github.com/MrSnakeDoc/navdir/internal/store"
	"github.com/MrSnakeDoc/navdir/internal/utils"
	"github.com/MrSnakeDoc/navdir/internal/version"
)

type App struct {
	cfg    *config.Config
	logger logger.Logger
	kv     kv.Store
	store  *store.Accessor
	server *httpserver.Server
}

// New wires the kv backend, the store accessor and the HTTP server. The
// caller must Close the App when Run is not called.
func New(ctx context.Context, cfg *config.Config, loggerClient logger.Logger) (*App, error) {
	kvStore, err := OpenKV(ctx, cfg, loggerClient)
	if err != nil {
		return nil, err
	}

	acc, err := NewAccessor(cfg, kvStore, loggerClient)
	if err != nil {
		utils.Close(kvStore)
		return nil, err
	}

	renderer, err := render.New(render.Options{
		Title:              cfg.SiteTitle,
		IncludeEmpty:       cfg.ShowEmptyCategory,
		UncategorizedLabel: cfg.UncategorizedLabel,
	})
	if err != nil {
		utils.Close(kvStore)
		return nil, err
	}

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:           loggerClient,
		StartTime:        time.Now(),
		Version:          version.Version,
		Commit:           version.Commit,
		BuildDate:        version.BuildDate,
		GoVersion:        version.GoVersion,
		TimeNow:          time.Now,
		Backend:          cfg.Backend,
		AllowedHosts:     cfg.AllowedHosts,
		AllowedCIDRS:     cfg.AllowedCIDRS,
		TrustProxy:       cfg.TrustProxy,
		Store:            acc,
		Renderer:         renderer,
		HomepageMaxAge:   cfg.HomepageMaxAge,
		MaxBodyBytes:     cfg.MaxBodyBytes,
		ExposeErrorStack: cfg.ExposeErrorStack,
		AuthRateLimit: deps.AuthRateLimit{
			Burst:        cfg.AuthBurst,
			RefillPerMin: cfg.AuthRefillPerMin,
		},
	}

	server, err := httpserver.New(cfg, loggerClient.Named("http"), d)
	if err != nil {
		utils.Close(kvStore)
		return nil, err
	}

	return &App{
		cfg:    cfg,
		logger: loggerClient,
		kv:     kvStore,
		store:  acc,
		server: server,
	}, nil
}

// OpenKV connects the backend selected by cfg.Backend.
func OpenKV(ctx context.Context, cfg *config.Config, loggerClient logger.Logger) (kv.Store, error) {
	loggerClient = loggerClient.Named("kv")

	switch cfg.Backend {
	case config.BackendMemory:
		loggerClient.Warn("using the in-memory backend, data is lost on restart")
		return memory.New(nil), nil

	case config.BackendRedis:
		s, err := redis.Connect(ctx, redis.ConnectOptions{
			Addr:         cfg.RedisAddr,
			User:         cfg.RedisUser,
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			DialTimeout:  cfg.RedisDT,
			ReadTimeout:  cfg.RedisRT,
			WriteTimeout: cfg.RedisWT,
			PoolSize:     cfg.RedisPoolSize,
			Retry: kv.RetryPolicy{
				Timeout:       cfg.RedisConnectTimeout,
				Interval:      cfg.RedisRetryInterval,
				MaxInterval:   cfg.RedisMaxWait,
				PingTimeout:   cfg.RedisPingTimeout,
				WarnThreshold: cfg.RedisWarnThreshold,
			},
		}, loggerClient)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return s, nil

	case config.BackendSQLite:
		s, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		loggerClient.Info("sqlite store opened", logger.String("path", s.Path()))
		return s, nil

	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// NewAccessor builds the store accessor from cfg. A configured seed file
// replaces the built-in default directory.
func NewAccessor(cfg *config.Config, kvStore kv.Store, loggerClient logger.Logger) (*store.Accessor, error) {
	defaults := domain.Default()
	if cfg.SeedFile != "" {
		seeded, err := seed.LoadDefaults(cfg.SeedFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load seed file: %w", err)
		}
		loggerClient.Info("default directory loaded from seed file",
			logger.String("file", cfg.SeedFile),
			logger.Int("links", len(seeded.Links)),
			logger.Int("categories", len(seeded.Categories)))
		defaults = seeded
	}

	return store.New(kvStore, store.Options{
		DataKey:          cfg.DataKey,
		SecretKey:        cfg.SecretKey,
		MaxAttempts:      cfg.WriteAttempts,
		BaseDelay:        cfg.WriteBackoff,
		ConfiguredSecret: cfg.AdminSecret,
		DefaultSecret:    cfg.DefaultSecret,
		Defaults:         defaults,
	}, loggerClient), nil
}

// Store returns the accessor used by the server.
func (a *App) Store() *store.Accessor {
	return a.store
}

// Run serves HTTP until ctx is canceled or the server fails, then shuts
// down gracefully and closes the kv backend.
func (a *App) Run(ctx context.Context) error {
	a.logger.Infof("🚀 Starting navdir %s on %s", version.Version, a.cfg.ListenAddr)
	a.logger.Infof("navdir %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	if secret := a.store.LoadAdminSecret(ctx); secret.Source == store.SourceDefault {
		a.logger.Warn("admin secret is the built-in default, change it with `navdir password` or NAVDIR_ADMIN_SECRET")
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.server.Start(); err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("⏳ Shutting down gracefully...")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.cfg.ShutdownTimeout)
		defer cancel()
		if err := a.server.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("failed to stop server: %w", err)
		}
		return nil
	})

	err := g.Wait()
	if cerr := a.Close(); cerr != nil {
		err = errors.Join(err, cerr)
	}
	if err == nil {
		a.logger.Info("✅ navdir stopped cleanly")
	}
	return err
}

// Close releases the kv backend.
func (a *App) Close() error {
	if err := a.kv.Close(); err != nil {
		a.logger.Warnf("failed to close kv store: %v", err)
		return fmt.Errorf("close kv store: %w", err)
	}
	return nil
}
