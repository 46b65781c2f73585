package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/navdir/internal/kv"
	"github.com/MrSnakeDoc/navdir/internal/logger"
)

// ConnectOptions defines the Redis client settings and the startup retry policy.
type ConnectOptions struct {
	Addr         string        // Redis address (ex: "localhost:6379")
	User         string        // Optional username
	Password     string        // Optional password
	DB           int           // Redis DB number
	DialTimeout  time.Duration // Redis dial timeout
	ReadTimeout  time.Duration // Redis read timeout
	WriteTimeout time.Duration // Redis write timeout
	PoolSize     int           // Redis connection pool size
	Retry        kv.RetryPolicy
}

// Connect creates a Redis-backed store and waits until the server answers.
func Connect(ctx context.Context, opts ConnectOptions, log logger.Logger) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Username:     opts.User,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		PoolSize:     opts.PoolSize,
	})
	s := NewStore(client)

	log = log.With(logger.String("addr", opts.Addr))
	if err := kv.WaitReady(ctx, "redis", s, opts.Retry, log); err != nil {
		_ = client.Close()
		return nil, err
	}
	return s, nil
}
