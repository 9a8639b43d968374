package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = f.t.Add(d)
}

func newTestCache(ttl time.Duration) (*Cache[string], *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)}
	return New[string](ttl).WithClock(clock.Now), clock
}

func TestGetWithinTTL(t *testing.T) {
	c, clock := newTestCache(30 * time.Minute)
	c.Set("k", "v")

	clock.Advance(10 * time.Minute)
	value, age, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", value)
	assert.Equal(t, 10*time.Minute, age)
}

func TestGetExpiredIsMissAndEvicts(t *testing.T) {
	c, clock := newTestCache(30 * time.Minute)
	c.Set("k", "v")

	clock.Advance(30 * time.Minute)
	_, _, ok := c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestSetRefreshesTimestamp(t *testing.T) {
	c, clock := newTestCache(time.Minute)
	c.Set("k", "old")
	clock.Advance(50 * time.Second)
	c.Set("k", "new")
	clock.Advance(50 * time.Second)

	value, _, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "new", value)
}

func TestCleanupRemovesOnlyExpired(t *testing.T) {
	c, clock := newTestCache(time.Minute)
	c.Set("old", "1")
	clock.Advance(45 * time.Second)
	c.Set("fresh", "2")
	clock.Advance(30 * time.Second)

	assert.Equal(t, 1, c.Cleanup())
	assert.Equal(t, 1, c.Len())
	_, _, ok := c.Get("fresh")
	assert.True(t, ok)
}

func TestRunStopsWithContext(t *testing.T) {
	c := New[int](time.Millisecond)
	c.Set("a", 1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
