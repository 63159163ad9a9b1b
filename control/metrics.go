// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics collector for multiplexer monitoring.
// Exposes monotonic counters and gauges in a thread-safe map with
// dynamic registration.

package control

import (
	"sync"
	"time"
)

// Counter keys maintained by the multiplexer.
const (
	MetricEventsEnqueued = "events.enqueued"
	MetricEventsDropped  = "events.dropped"
	MetricEventsDequeued = "events.dequeued"
	MetricWaitCycles     = "wait.cycles"
	MetricWaitAborts     = "wait.aborts"
	MetricWaitErrors     = "wait.errors"
)

// MetricsRegistry holds mutable counters and gauges.
type MetricsRegistry struct {
	mu       sync.RWMutex
	counters map[string]int64
	gauges   map[string]any
	updated  time.Time
}

// NewMetricsRegistry creates an empty registry.
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		counters: make(map[string]int64),
		gauges:   make(map[string]any),
	}
}

// Inc adds delta to a monotonic counter, creating it on first use.
// Safe on a nil registry so callers can leave metrics unwired.
func (mr *MetricsRegistry) Inc(key string, delta int64) {
	if mr == nil {
		return
	}
	mr.mu.Lock()
	mr.counters[key] += delta
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// Counter returns the current value of one counter.
func (mr *MetricsRegistry) Counter(key string) int64 {
	if mr == nil {
		return 0
	}
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	return mr.counters[key]
}

// Set sets or updates a gauge key.
func (mr *MetricsRegistry) Set(key string, value any) {
	if mr == nil {
		return
	}
	mr.mu.Lock()
	mr.gauges[key] = value
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// GetSnapshot returns the latest counters and gauges merged into one
// view.
func (mr *MetricsRegistry) GetSnapshot() map[string]any {
	if mr == nil {
		return nil
	}
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	out := make(map[string]any, len(mr.counters)+len(mr.gauges))
	for k, v := range mr.counters {
		out[k] = v
	}
	for k, v := range mr.gauges {
		out[k] = v
	}
	return out
}
