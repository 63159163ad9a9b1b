// File: mux/queue_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package mux

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/momentics/fdmux/api"
	"github.com/momentics/fdmux/control"
)

func keyEvent(window api.Window, seq uint64) api.KeyDown {
	return api.KeyDown{
		Common:  api.Common{Window: window, Time: seq},
		Keycode: uint32(seq),
	}
}

func TestQueueFIFOOrder(t *testing.T) {
	q := NewQueue(16)
	for i := uint64(1); i <= 5; i++ {
		q.Enqueue(keyEvent(1, i))
	}
	require.Equal(t, 5, q.Pending())
	for i := uint64(1); i <= 5; i++ {
		ev := q.Dequeue()
		require.Equal(t, i, ev.EventTime())
	}
	require.Equal(t, 0, q.Pending())
}

func TestQueuePendingSnapshotStable(t *testing.T) {
	q := NewQueue(8)
	q.Enqueue(keyEvent(1, 1))
	q.Enqueue(keyEvent(1, 2))
	for i := 0; i < 10; i++ {
		require.Equal(t, 2, q.Pending())
	}
}

func TestQueueBackpressureBlocksProducer(t *testing.T) {
	q := NewQueue(4)
	for i := uint64(1); i <= 4; i++ {
		q.Enqueue(keyEvent(1, i))
	}

	done := make(chan struct{})
	go func() {
		q.Enqueue(keyEvent(2, 5))
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("enqueue completed while queue was at capacity")
	case <-time.After(100 * time.Millisecond):
	}
	require.Equal(t, 4, q.Pending())

	q.Dequeue()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("enqueue did not complete after a slot was freed")
	}
	require.Equal(t, 4, q.Pending())
}

func TestQueueTryEnqueueDropsWhenFull(t *testing.T) {
	mr := control.NewMetricsRegistry()
	q := NewQueue(2)
	q.metrics = mr

	require.True(t, q.TryEnqueue(keyEvent(1, 1)))
	require.True(t, q.TryEnqueue(keyEvent(1, 2)))
	require.False(t, q.TryEnqueue(keyEvent(1, 3)))
	require.Equal(t, 2, q.Pending())
	require.Equal(t, int64(1), mr.Counter(control.MetricEventsDropped))
	require.Equal(t, int64(2), mr.Counter(control.MetricEventsEnqueued))
}

// No lost events: every event from every producer is observed exactly
// once, in FIFO order among events from the same producer. The small
// capacity keeps producers bouncing off backpressure the whole run.
func TestQueueConcurrentProducersNoLostEvents(t *testing.T) {
	const producers = 8
	const perProducer = 200

	q := NewQueue(32)
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(window api.Window) {
			defer wg.Done()
			for seq := uint64(1); seq <= perProducer; seq++ {
				q.Enqueue(keyEvent(window, seq))
			}
		}(api.Window(p))
	}

	counts := make(map[api.Window]uint64)
	done := make(chan error, 1)
	go func() {
		for i := 0; i < producers*perProducer; i++ {
			ev := q.Dequeue()
			w := ev.EventWindow()
			if ev.EventTime() != counts[w]+1 {
				done <- fmt.Errorf("producer %d: got seq %d, want %d",
					w, ev.EventTime(), counts[w]+1)
				return
			}
			counts[w]++
		}
		done <- nil
	}()

	wg.Wait()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("timeout: events lost or consumer stuck")
	}
	require.Equal(t, 0, q.Pending())
	for p := 0; p < producers; p++ {
		require.Equal(t, uint64(perProducer), counts[api.Window(p)])
	}
}

func TestQueueDequeueBlocksUntilEnqueue(t *testing.T) {
	q := NewQueue(8)
	got := make(chan api.Event, 1)
	go func() {
		got <- q.Dequeue()
	}()

	select {
	case <-got:
		t.Fatal("dequeue returned from an empty queue")
	case <-time.After(50 * time.Millisecond):
	}

	q.Enqueue(keyEvent(3, 7))
	select {
	case ev := <-got:
		require.Equal(t, api.Window(3), ev.EventWindow())
	case <-time.After(2 * time.Second):
		t.Fatal("dequeue did not observe the enqueue")
	}
}
