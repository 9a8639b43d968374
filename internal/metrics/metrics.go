// Package metrics keeps process-wide request counters for /api/stats.
package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	Requests    map[string]int64 // by route pattern
	Failures    int64
	CacheHits   int64
	CacheMisses int64
	StageWins   map[string]int64 // accepted extraction results by stage

	// Timings
	LastLatency    time.Duration
	AverageLatency time.Duration
	TotalLatency   time.Duration
	LatencyCount   int64

	// Status
	StartTime     time.Time
	LastErrorTime time.Time
	LastError     string

	now func() time.Time
}

func New() *Metrics {
	return &Metrics{
		Requests:  make(map[string]int64),
		StageWins: make(map[string]int64),
		StartTime: time.Now(),
		now:       time.Now,
	}
}

var Global = New()

func (m *Metrics) IncrementRequests(route string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests[route]++
}

func (m *Metrics) IncrementCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *Metrics) IncrementCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

// IncrementStageWin matches scraper.StageObserver.
func (m *Metrics) IncrementStageWin(stage string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StageWins[stage]++
}

func (m *Metrics) RecordLatency(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastLatency = duration
	m.TotalLatency += duration
	m.LatencyCount++
	m.AverageLatency = m.TotalLatency / time.Duration(m.LatencyCount)
}

// SetError counts a failed request and remembers its message.
func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Failures++
	m.LastError = err
	m.LastErrorTime = m.now()
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	requests := make(map[string]int64, len(m.Requests))
	var total int64
	for k, v := range m.Requests {
		requests[k] = v
		total += v
	}
	stages := make(map[string]int64, len(m.StageWins))
	for k, v := range m.StageWins {
		stages[k] = v
	}

	stats := map[string]interface{}{
		"requests_by_route":     requests,
		"total_requests":        total,
		"failed_requests":       m.Failures,
		"cache_hits":            m.CacheHits,
		"cache_misses":          m.CacheMisses,
		"extraction_stage_wins": stages,
		"last_latency_ms":       m.LastLatency.Milliseconds(),
		"average_latency_ms":    m.AverageLatency.Milliseconds(),
		"uptime_seconds":        int64(m.now().Sub(m.StartTime).Seconds()),
		"last_error":            m.LastError,
	}
	if !m.LastErrorTime.IsZero() {
		stats["last_error_time"] = m.LastErrorTime.Format(time.RFC3339)
	}
	return stats
}
