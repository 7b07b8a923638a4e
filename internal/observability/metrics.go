package observability

import (
	"sync"
	"time"
)

// RouteStats aggregates traffic counters for one route/method pair.
type RouteStats struct {
	Requests      int64
	Errors        int64
	TotalDuration time.Duration
}

// Metrics keeps in-process per-route counters. A nil receiver is a no-op
// so callers never have to guard.
type Metrics struct {
	mu     sync.RWMutex
	routes map[string]*RouteStats
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{routes: make(map[string]*RouteStats)}
}

// RecordRequest accounts a completed request against its route.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := m.route(method + " " + path)
	stats.Requests++
	stats.TotalDuration += duration
}

// RecordError accounts a request that ended in a domain error.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.route(method + " " + path).Errors++
}

// Snapshot returns a copy of all counters, keyed by "METHOD /path".
func (m *Metrics) Snapshot() map[string]RouteStats {
	if m == nil {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]RouteStats, len(m.routes))
	for key, stats := range m.routes {
		out[key] = *stats
	}
	return out
}

func (m *Metrics) route(key string) *RouteStats {
	stats, ok := m.routes[key]
	if !ok {
		stats = &RouteStats{}
		m.routes[key] = stats
	}
	return stats
}
