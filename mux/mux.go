// File: mux/mux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Consumer-facing multiplexer: fuses queue readiness and proxy-thread
// readiness into one blocking call with combined results.

package mux

import (
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sys/unix"

	"github.com/momentics/fdmux/api"
	"github.com/momentics/fdmux/control"
	"github.com/momentics/fdmux/lowlevel"
)

// Mux is the unified blocking multiplexer. Any number of producer
// goroutines may enqueue events; exactly one consumer goroutine calls
// Wait, NextEvent, and Shutdown.
type Mux struct {
	cfg     control.Config
	waiter  api.Waiter
	queue   *Queue
	proxy   *selectProxy
	metrics *control.MetricsRegistry
	probes  *control.DebugProbes

	closed       atomic.Bool
	shutdownOnce sync.Once
	shutdownErr  error
}

var (
	_ api.Control          = (*Mux)(nil)
	_ api.GracefulShutdown = (*Mux)(nil)
)

// New creates a multiplexer and starts its wait-proxy thread. Failure
// to set up the proxy's primitives leaves no safe degraded mode;
// callers should treat the error as unrecoverable.
func New(opts ...Option) (*Mux, error) {
	m := &Mux{
		cfg:    control.DefaultConfig(),
		probes: control.NewDebugProbes(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if err := m.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("fdmux: %w", err)
	}
	if m.waiter == nil {
		m.waiter = lowlevel.DefaultWaiter()
	}

	m.queue = NewQueue(m.cfg.QueueCapacity)
	m.queue.metrics = m.metrics

	proxy, err := newSelectProxy(m.waiter)
	if err != nil {
		return nil, fmt.Errorf("fdmux: %w", err)
	}
	m.proxy = proxy
	go proxy.run(m.queue)

	m.probes.RegisterProbe("mux.pending", func() any { return m.queue.Pending() })
	m.probes.RegisterProbe("mux.capacity", func() any { return m.queue.Cap() })
	return m, nil
}

// Wait blocks until at least one event is queued, at least one
// descriptor in the given sets is ready, or the timeout elapses. The
// return value counts queued-event readiness (as 1) plus ready
// descriptors; 0 means an ordinary timeout with nothing ready, and an
// error is returned only when nothing else is ready and the underlying
// wait failed. A nil timeout blocks indefinitely.
//
// Queued events take priority: when the queue is non-empty on entry,
// Wait returns the pending count immediately without touching the
// descriptor wait.
func (m *Mux) Wait(nfds int, readfds, writefds, exceptfds *unix.FdSet,
	timeout *unix.Timespec, sigmask *unix.Sigset_t) (int, error) {
	if m.closed.Load() {
		return 0, api.ErrMuxClosed
	}

	// check
	if pending := m.queue.beginCycle(); pending > 0 {
		return pending, nil
	}
	m.metrics.Inc(control.MetricWaitCycles, 1)

	// arm
	m.proxy.arm(waitRequest{
		nfds:      nfds,
		readfds:   readfds,
		writefds:  writefds,
		exceptfds: exceptfds,
		timeout:   timeout,
		sigmask:   sigmask,
	})
	m.queue.awaitReadable()

	// abort-in-flight: unconditional, so the proxy is never left
	// waiting out a timeout the consumer no longer needs.
	m.proxy.interrupt()
	m.metrics.Inc(control.MetricWaitAborts, 1)

	// join
	res := m.proxy.join()

	// fuse
	n := 0
	if m.queue.Pending() > 0 {
		n = 1
	}
	if res.err == nil {
		if res.n > 0 {
			n += res.n
		}
	} else if n == 0 {
		m.metrics.Inc(control.MetricWaitErrors, 1)
		return 0, res.err
	}
	return n, nil
}

// Enqueue delivers one event from any producer goroutine. Blocks under
// sustained backpressure unless the mux was configured to drop.
func (m *Mux) Enqueue(ev api.Event) {
	if m.cfg.DropOnFull {
		m.queue.TryEnqueue(ev)
		return
	}
	m.queue.Enqueue(ev)
}

// TryEnqueue delivers one event without ever blocking; returns false
// if the event was dropped because the queue is full.
func (m *Mux) TryEnqueue(ev api.Event) bool {
	return m.queue.TryEnqueue(ev)
}

// NextEvent removes and returns the oldest queued event, blocking
// until one is available. Consumer-only.
func (m *Mux) NextEvent() api.Event {
	return m.queue.Dequeue()
}

// Pending returns the number of queued events.
func (m *Mux) Pending() int {
	return m.queue.Pending()
}

// Queue exposes the underlying event queue.
func (m *Mux) Queue() *Queue { return m.queue }

// Stats merges the metrics snapshot with the debug probe dump.
func (m *Mux) Stats() map[string]any {
	out := m.probes.DumpState()
	for k, v := range m.metrics.GetSnapshot() {
		out[k] = v
	}
	return out
}

// RegisterDebugProbe installs a named runtime inspection hook.
func (m *Mux) RegisterDebugProbe(name string, fn func() any) {
	m.probes.RegisterProbe(name, fn)
}

// Shutdown stops the proxy thread and releases the wake pipe.
// Idempotent. Must not race an in-flight Wait.
func (m *Mux) Shutdown() error {
	m.shutdownOnce.Do(func() {
		m.closed.Store(true)
		close(m.proxy.start)
		m.shutdownErr = m.proxy.wake.Close()
	})
	return m.shutdownErr
}
