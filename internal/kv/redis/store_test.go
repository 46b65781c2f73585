package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/navdir/internal/kv"
	"github.com/MrSnakeDoc/navdir/internal/logger"
)

func testOptions(addr string) ConnectOptions {
	return ConnectOptions{
		Addr:         addr,
		DialTimeout:  200 * time.Millisecond,
		ReadTimeout:  200 * time.Millisecond,
		WriteTimeout: 200 * time.Millisecond,
		PoolSize:     2,
		Retry: kv.RetryPolicy{
			Timeout:       500 * time.Millisecond,
			Interval:      50 * time.Millisecond,
			MaxInterval:   100 * time.Millisecond,
			PingTimeout:   100 * time.Millisecond,
			WarnThreshold: 1,
		},
	}
}

func TestStoreGetPut(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	s, err := Connect(ctx, testOptions(mr.Addr()), logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, ok, err := s.Get(ctx, "data")
	require.NoError(t, err)
	assert.False(t, ok, "missing key is absent, not an error")

	require.NoError(t, s.Put(ctx, "data", `{"links":[]}`))

	value, ok, err := s.Get(ctx, "data")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"links":[]}`, value)

	raw, err := mr.Get(Key("data"))
	require.NoError(t, err)
	assert.Equal(t, `{"links":[]}`, raw, "values live under the navdir prefix")
	assert.Zero(t, mr.TTL(Key("data")), "values never expire")
}

func TestStoreErrorsWhenServerGone(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	s, err := Connect(ctx, testOptions(mr.Addr()), logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	mr.Close()

	_, _, err = s.Get(ctx, "data")
	assert.Error(t, err)
	assert.Error(t, s.Put(ctx, "data", "x"))
	assert.Error(t, s.Ping(ctx))
}

func TestConnectTimesOut(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	start := time.Now()
	_, err := Connect(context.Background(), testOptions(addr), logger.NewNop())
	require.Error(t, err)
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestConnectRejectsInvalidOptions(t *testing.T) {
	opts := testOptions("localhost:0")
	opts.Retry.Timeout = 0

	_, err := Connect(context.Background(), opts, logger.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Timeout must be > 0")
}
