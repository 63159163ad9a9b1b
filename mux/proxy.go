// File: mux/proxy.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Dedicated wait-proxy thread. The consumer must watch the event queue
// while a descriptor wait is in flight, so the blocking wait runs
// here, on a goroutine pinned to its own OS thread, driven by a narrow
// start/abort handshake.

package mux

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"
	"golang.org/x/sys/unix"

	"github.com/momentics/fdmux/api"
	"github.com/momentics/fdmux/lowlevel"
)

// waitRequest carries the parameters of one pending descriptor wait.
// Ownership transfers from the consumer to the proxy for the duration
// of a cycle; exactly one request is outstanding at a time.
type waitRequest struct {
	nfds                         int
	readfds, writefds, exceptfds *unix.FdSet
	timeout                      *unix.Timespec
	sigmask                      *unix.Sigset_t
}

// waitResult is written exactly once per cycle by the proxy and read
// exactly once by the consumer, after the semaphore barrier.
type waitResult struct {
	n   int
	err error
}

type selectProxy struct {
	waiter api.Waiter

	// wake interrupts an in-flight wait ("signal A"): best-effort,
	// non-fatal, races harmlessly after completion.
	wake *lowlevel.WakeFD

	// start begins a wait cycle ("signal B"). Buffered so the single
	// consumer never stalls handing off a cycle.
	start chan struct{}

	// sem is the consumer's mandatory barrier before reading res.
	sem *semaphore.Weighted

	// reqMu guards req alone. It is strictly narrower than the queue
	// mutex and never held while blocking or signaling, so producers
	// enqueuing events never contend with the proxy's parameter reads.
	reqMu sync.Mutex
	req   waitRequest

	res waitResult
}

func newSelectProxy(waiter api.Waiter) (*selectProxy, error) {
	wake, err := lowlevel.NewWakeFD()
	if err != nil {
		return nil, fmt.Errorf("wake pipe: %w", err)
	}
	sem := semaphore.NewWeighted(1)
	// Drain the semaphore so the first join blocks until the first
	// cycle posts it.
	_ = sem.Acquire(context.Background(), 1)
	return &selectProxy{
		waiter: waiter,
		wake:   wake,
		start:  make(chan struct{}, 1),
		sem:    sem,
	}, nil
}

// arm publishes the wait request and starts a cycle.
func (p *selectProxy) arm(req waitRequest) {
	p.reqMu.Lock()
	p.req = req
	p.reqMu.Unlock()
	p.start <- struct{}{}
}

// interrupt aborts the in-flight wait. The error is deliberately
// dropped: after Shutdown the pipe is gone and there is nothing left
// to interrupt.
func (p *selectProxy) interrupt() {
	_ = p.wake.Trigger()
}

// join blocks until the cycle's result is fully written, then returns
// it. The semaphore is the single synchronization point; the consumer
// may have woken from the condition variable purely due to a new event
// before the proxy posted.
func (p *selectProxy) join() waitResult {
	_ = p.sem.Acquire(context.Background(), 1)
	return p.res
}

// run is the proxy loop, one iteration per wait cycle. Pinned to an OS
// thread: both the descriptor wait and the pipe read are blocking
// syscalls.
func (p *selectProxy) run(q *Queue) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	for range p.start {
		p.reqMu.Lock()
		req := p.req
		p.reqMu.Unlock()

		p.res = p.await(req)

		// Publish completion before posting. The consumer joins
		// without holding the queue mutex, so this order cannot
		// deadlock, and it keeps a finished cycle's wakeup from
		// leaking into the next one as a spurious early return.
		q.notifyWaitDone()
		p.sem.Release(1)

		// The consumer sends exactly one abort per armed cycle;
		// retire it so the next wait starts with an empty pipe. Fails
		// only once the pipe is closed.
		if p.wake.Consume() != nil {
			return
		}
	}
}

// await performs one descriptor wait with the wake descriptor spliced
// into the read set. The wake descriptor is internal and never counts
// toward the caller's readiness.
func (p *selectProxy) await(req waitRequest) waitResult {
	readfds := req.readfds
	if readfds == nil {
		readfds = new(unix.FdSet)
	}
	wfd := p.wake.ReadFD()
	readfds.Set(wfd)
	nfds := req.nfds
	if nfds <= wfd {
		nfds = wfd + 1
	}

	n, err := p.waiter.Wait(nfds, readfds, req.writefds, req.exceptfds,
		req.timeout, req.sigmask)

	if n > 0 && readfds.IsSet(wfd) {
		readfds.Clear(wfd)
		n--
	}
	return waitResult{n: n, err: err}
}
