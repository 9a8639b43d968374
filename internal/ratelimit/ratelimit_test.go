package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireRespectsTotalLimit(t *testing.T) {
	rl := NewAILimiter(2, 0, 1)
	ctx := context.Background()

	require.NoError(t, rl.Acquire(ctx, "openai"))
	require.NoError(t, rl.Acquire(ctx, "gemini"))
	assert.ErrorIs(t, rl.Acquire(ctx, "openai"), ErrQuotaExceeded)

	stats := rl.GetStats()
	assert.Equal(t, 2, stats["total_used"])
}

func TestAcquireRespectsProviderLimit(t *testing.T) {
	rl := NewAILimiter(0, 0, 1)
	rl.SetProviderLimit("openai", 1)
	ctx := context.Background()

	require.NoError(t, rl.Acquire(ctx, "openai"))
	assert.ErrorIs(t, rl.Acquire(ctx, "openai"), ErrQuotaExceeded)
	assert.NoError(t, rl.Acquire(ctx, "gemini"))
}

func TestCountersResetAfterADay(t *testing.T) {
	rl := NewAILimiter(1, 0, 1)
	now := time.Now()
	rl.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, rl.Acquire(ctx, "openai"))
	require.ErrorIs(t, rl.Acquire(ctx, "openai"), ErrQuotaExceeded)

	now = now.Add(25 * time.Hour)
	assert.NoError(t, rl.Acquire(ctx, "openai"))
}

func TestAcquireHonoursContextWhilePacing(t *testing.T) {
	rl := NewAILimiter(0, 0.001, 1)
	require.NoError(t, rl.Acquire(context.Background(), "openai"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, rl.Acquire(ctx, "openai"))
}

func TestCacheHitRate(t *testing.T) {
	rl := NewAILimiter(0, 0, 1)
	require.NoError(t, rl.Acquire(context.Background(), "openai"))
	rl.RecordCacheHit()

	stats := rl.GetStats()
	assert.InDelta(t, 50.0, stats["cache_hit_rate"], 0.01)
}
