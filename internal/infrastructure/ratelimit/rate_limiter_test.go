package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiterBlocksAfterBurst(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	l := NewMemoryLimiter(2)
	fixed := time.Now()
	l.now = func() time.Time { return fixed }

	for i := 0; i < 2; i++ {
		ok, _, err := l.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, wait, err := l.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Greater(t, wait, time.Duration(0))

	ok, _, err = l.Allow(ctx, "5.6.7.8")
	require.NoError(t, err)
	assert.True(t, ok, "keys are limited independently")
}

func TestMemoryLimiterRefills(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	l := NewMemoryLimiter(1)
	now := time.Now()
	l.now = func() time.Time { return now }

	ok, _, _ := l.Allow(ctx, "k")
	require.True(t, ok)
	ok, _, _ = l.Allow(ctx, "k")
	require.False(t, ok)

	now = now.Add(time.Minute)
	ok, _, _ = l.Allow(ctx, "k")
	assert.True(t, ok)
}

func TestMemoryLimiterCleanup(t *testing.T) {
	t.Parallel()
	l := NewMemoryLimiter(5)
	now := time.Now()
	l.now = func() time.Time { return now }

	_, _, _ = l.Allow(context.Background(), "k")
	require.Len(t, l.visitors, 1)

	now = now.Add(time.Hour)
	l.Cleanup(time.Minute)
	assert.Empty(t, l.visitors)
}

type mockCmdable struct {
	counters    map[string]int64
	expireCalls []string
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{counters: make(map[string]int64)}
}

func (m *mockCmdable) Incr(ctx context.Context, key string) *redis.IntCmd {
	m.counters[key]++
	cmd := redis.NewIntCmd(ctx)
	cmd.SetVal(m.counters[key])
	return cmd
}

func (m *mockCmdable) Expire(ctx context.Context, key string, ttl time.Duration) *redis.BoolCmd {
	m.expireCalls = append(m.expireCalls, key)
	cmd := redis.NewBoolCmd(ctx)
	cmd.SetVal(true)
	return cmd
}

func (m *mockCmdable) TTL(ctx context.Context, key string) *redis.DurationCmd {
	cmd := redis.NewDurationCmd(ctx, time.Second)
	cmd.SetVal(30 * time.Second)
	return cmd
}

func TestRedisLimiterFixedWindow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mock := newMockCmdable()
	l := &RedisLimiter{store: mock, limit: 2, window: time.Minute}

	ok, _, err := l.Allow(ctx, "login:1.2.3.4")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, mock.expireCalls, 1)

	ok, _, err = l.Allow(ctx, "login:1.2.3.4")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, mock.expireCalls, 1, "expiry is only set on the first hit")

	ok, wait, err := l.Allow(ctx, "login:1.2.3.4")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 30*time.Second, wait)
	assert.Equal(t, int64(3), mock.counters["artifex:rate_limit:login:1.2.3.4"])
}
