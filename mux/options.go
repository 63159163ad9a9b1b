// File: mux/options.go
// Package mux defines functional options for the multiplexer.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package mux

import (
	"github.com/momentics/fdmux/api"
	"github.com/momentics/fdmux/control"
)

// Option customizes multiplexer initialization.
type Option func(*Mux)

// WithConfig replaces the whole configuration.
func WithConfig(cfg control.Config) Option {
	return func(m *Mux) {
		m.cfg = cfg
	}
}

// WithCapacity overrides the event queue capacity.
func WithCapacity(n int) Option {
	return func(m *Mux) {
		m.cfg.QueueCapacity = n
	}
}

// WithDropOnFull makes Enqueue drop instead of block when the queue is
// at capacity.
func WithDropOnFull() Option {
	return func(m *Mux) {
		m.cfg.DropOnFull = true
	}
}

// WithWaiter substitutes the platform descriptor-wait implementation.
func WithWaiter(w api.Waiter) Option {
	return func(m *Mux) {
		m.waiter = w
	}
}

// WithMetrics attaches a metrics registry; nil leaves metrics unwired.
func WithMetrics(mr *control.MetricsRegistry) Option {
	return func(m *Mux) {
		m.metrics = mr
	}
}
