package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/deusflow/newsroom/internal/logger"
	"golang.org/x/time/rate"
)

var ErrQuotaExceeded = errors.New("AI request quota exceeded")

// AILimiter caps AI usage per provider and in total over a rolling day, and
// paces calls with a token bucket.
type AILimiter struct {
	mu          sync.Mutex
	counts      map[string]int
	limits      map[string]int
	totalCount  int
	maxTotal    int
	cacheHits   int
	cacheMisses int
	resetTime   time.Time
	bucket      *rate.Limiter
	now         func() time.Time
}

// NewAILimiter builds a limiter. maxTotal of 0 means no daily cap; perSecond
// of 0 disables pacing.
func NewAILimiter(maxTotal int, perSecond float64, burst int) *AILimiter {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	if burst < 1 {
		burst = 1
	}
	return &AILimiter{
		counts:    make(map[string]int),
		limits:    make(map[string]int),
		maxTotal:  maxTotal,
		resetTime: time.Now().Add(24 * time.Hour),
		bucket:    rate.NewLimiter(limit, burst),
		now:       time.Now,
	}
}

// SetProviderLimit caps one provider's daily requests; 0 removes the cap.
func (rl *AILimiter) SetProviderLimit(provider string, max int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.limits[provider] = max
}

// Acquire books one request for provider, waiting on the token bucket when
// calls arrive faster than the configured pace.
func (rl *AILimiter) Acquire(ctx context.Context, provider string) error {
	if err := rl.reserve(provider); err != nil {
		return err
	}
	if err := rl.bucket.Wait(ctx); err != nil {
		return fmt.Errorf("wait for %s slot: %w", provider, err)
	}
	return nil
}

func (rl *AILimiter) reserve(provider string) error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.checkReset()

	if max := rl.limits[provider]; max > 0 && rl.counts[provider] >= max {
		logger.Warn("AI provider limit reached", "provider", provider, "used", rl.counts[provider], "limit", max)
		return fmt.Errorf("%s: %w", provider, ErrQuotaExceeded)
	}
	if rl.maxTotal > 0 && rl.totalCount >= rl.maxTotal {
		logger.Warn("total AI limit reached", "used", rl.totalCount, "limit", rl.maxTotal)
		return ErrQuotaExceeded
	}

	rl.counts[provider]++
	rl.totalCount++
	rl.cacheMisses++
	logger.Debug("AI usage", "provider", provider, "used", rl.counts[provider], "total", rl.totalCount)
	return nil
}

// RecordCacheHit counts a response served from cache instead of the model.
func (rl *AILimiter) RecordCacheHit() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.cacheHits++
}

func (rl *AILimiter) cacheHitRate() float64 {
	total := rl.cacheHits + rl.cacheMisses
	if total == 0 {
		return 0
	}
	return float64(rl.cacheHits) / float64(total) * 100
}

func (rl *AILimiter) GetStats() map[string]interface{} {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	used := make(map[string]int, len(rl.counts))
	for k, v := range rl.counts {
		used[k] = v
	}
	return map[string]interface{}{
		"used_by_provider": used,
		"total_used":       rl.totalCount,
		"total_limit":      rl.maxTotal,
		"cache_hits":       rl.cacheHits,
		"cache_misses":     rl.cacheMisses,
		"cache_hit_rate":   rl.cacheHitRate(),
		"reset_time":       rl.resetTime.Format(time.RFC3339),
	}
}

// checkReset clears the counters once a day; caller holds mu.
func (rl *AILimiter) checkReset() {
	now := rl.now()
	if now.After(rl.resetTime) {
		logger.Info("resetting AI usage counters", "total", rl.totalCount, "cache_hits", rl.cacheHits)
		rl.counts = make(map[string]int)
		rl.totalCount = 0
		rl.cacheHits = 0
		rl.cacheMisses = 0
		rl.resetTime = now.Add(24 * time.Hour)
	}
}
