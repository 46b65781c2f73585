package kv

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/MrSnakeDoc/navdir/internal/logger"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// pinger fails its first failures pings.
type pinger struct {
	failures int32
	calls    atomic.Int32
}

func (p *pinger) Ping(ctx context.Context) error {
	if p.calls.Add(1) <= p.failures {
		return errors.New("connection refused")
	}
	return nil
}

func fastPolicy() RetryPolicy {
	return RetryPolicy{
		Timeout:       time.Second,
		Interval:      5 * time.Millisecond,
		MaxInterval:   10 * time.Millisecond,
		PingTimeout:   50 * time.Millisecond,
		WarnThreshold: 1,
	}
}

func TestWaitReadyRetries(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	p := &pinger{failures: 2}

	err := WaitReady(context.Background(), "test", p, fastPolicy(), logger.FromZap(zap.New(core)))
	require.NoError(t, err)
	assert.EqualValues(t, 3, p.calls.Load())

	retries := logs.FilterMessage("backend not ready, retrying").All()
	require.Len(t, retries, 2)
	assert.Equal(t, zapcore.WarnLevel, retries[0].Level)
	assert.Equal(t, zapcore.ErrorLevel, retries[1].Level, "past WarnThreshold")
	assert.Equal(t, 1, logs.FilterMessage("backend ready after retry").Len())
}

func TestWaitReadyTimesOut(t *testing.T) {
	policy := fastPolicy()
	policy.Timeout = 50 * time.Millisecond
	p := &pinger{failures: 1 << 30}

	err := WaitReady(context.Background(), "test", p, policy, logger.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test unavailable after")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestWaitReadyStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WaitReady(ctx, "test", &pinger{failures: 1 << 30}, fastPolicy(), logger.NewNop())
	assert.Error(t, err)
}

func TestRetryPolicyValidate(t *testing.T) {
	assert.NoError(t, fastPolicy().Validate())

	tests := map[string]func(p *RetryPolicy){
		"Timeout":       func(p *RetryPolicy) { p.Timeout = 0 },
		"Interval":      func(p *RetryPolicy) { p.Interval = -1 },
		"MaxInterval":   func(p *RetryPolicy) { p.MaxInterval = 0 },
		"PingTimeout":   func(p *RetryPolicy) { p.PingTimeout = 0 },
		"WarnThreshold": func(p *RetryPolicy) { p.WarnThreshold = -1 },
	}
	for field, mutate := range tests {
		p := fastPolicy()
		mutate(&p)
		err := p.Validate()
		require.Error(t, err, field)
		assert.Contains(t, err.Error(), field)
	}
}
