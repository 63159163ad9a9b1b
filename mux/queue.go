// File: mux/queue.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Bounded, thread-safe FIFO of events shared by all producer threads
// and the single consumer.

package mux

import (
	"sync"

	"github.com/eapache/queue"

	"github.com/momentics/fdmux/api"
	"github.com/momentics/fdmux/control"
)

// Queue is the bounded event FIFO. One mutex guards the backing
// container, the count, and the proxy's completion flag together; two
// condition variables carry the wakeups: "readable" for the consumer,
// "writable" for producers blocked on a full queue.
type Queue struct {
	mu       sync.Mutex
	readable *sync.Cond
	writable *sync.Cond
	items    *queue.Queue
	capacity int

	// waitDone is set by the proxy when a descriptor wait finishes;
	// it shares the queue mutex so the consumer observes either wakeup
	// source through the single "readable" condition variable.
	waitDone bool

	metrics *control.MetricsRegistry
}

// NewQueue creates an empty queue. A non-positive capacity selects the
// default of 1024.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = control.DefaultQueueCapacity
	}
	q := &Queue{
		items:    queue.New(),
		capacity: capacity,
	}
	q.readable = sync.NewCond(&q.mu)
	q.writable = sync.NewCond(&q.mu)
	return q
}

// Cap returns the queue capacity.
func (q *Queue) Cap() int { return q.capacity }

// Enqueue appends one event, blocking while the queue is at capacity.
// Callable from any goroutine; the wait re-checks its predicate, so a
// spurious wakeup never overflows the queue.
func (q *Queue) Enqueue(ev api.Event) {
	q.mu.Lock()
	for q.items.Length() >= q.capacity {
		q.writable.Wait()
	}
	q.items.Add(ev)
	q.readable.Signal()
	q.mu.Unlock()
	q.metrics.Inc(control.MetricEventsEnqueued, 1)
}

// TryEnqueue appends one event unless the queue is at capacity, in
// which case the event is dropped and false returned. Producers that
// must never block use this path.
func (q *Queue) TryEnqueue(ev api.Event) bool {
	q.mu.Lock()
	if q.items.Length() >= q.capacity {
		q.mu.Unlock()
		q.metrics.Inc(control.MetricEventsDropped, 1)
		return false
	}
	q.items.Add(ev)
	q.readable.Signal()
	q.mu.Unlock()
	q.metrics.Inc(control.MetricEventsEnqueued, 1)
	return true
}

// Dequeue removes and returns the oldest event, blocking while the
// queue is empty. Used only by the single consumer.
func (q *Queue) Dequeue() api.Event {
	q.mu.Lock()
	for q.items.Length() == 0 {
		q.readable.Wait()
	}
	ev := q.items.Remove().(api.Event)
	q.writable.Signal()
	q.mu.Unlock()
	q.metrics.Inc(control.MetricEventsDequeued, 1)
	return ev
}

// Pending returns a snapshot of the number of queued events. Never
// blocks.
func (q *Queue) Pending() int {
	q.mu.Lock()
	n := q.items.Length()
	q.mu.Unlock()
	return n
}

// beginCycle reports the number of queued events; when none are
// pending it clears the completion flag for a fresh wait cycle, in the
// same critical section so no enqueue or stale completion can slip
// between the check and the arm.
func (q *Queue) beginCycle() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	if n := q.items.Length(); n > 0 {
		return n
	}
	q.waitDone = false
	return 0
}

// awaitReadable blocks until an event is queued or the in-flight wait
// completes. The predicate is re-checked before sleeping, so an
// enqueue landing between beginCycle and this call is never missed. A
// wakeup for any reason returns; the caller aborts and joins the proxy
// unconditionally.
func (q *Queue) awaitReadable() {
	q.mu.Lock()
	if q.items.Length() == 0 && !q.waitDone {
		q.readable.Wait()
	}
	q.mu.Unlock()
}

// notifyWaitDone marks the in-flight wait complete and wakes the
// consumer. Covers the cycle where the wait finishes with no new
// events queued.
func (q *Queue) notifyWaitDone() {
	q.mu.Lock()
	q.waitDone = true
	q.readable.Signal()
	q.mu.Unlock()
}
