// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

// Package fake provides test doubles for fdmux contracts.
package fake

import (
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// Waiter is a scripted descriptor waiter for tests. It mimics the
// output semantics of pselect by zeroing the descriptor sets (nothing
// ready), then returns the scripted result. It records every call.
type Waiter struct {
	// N and Err are returned from every Wait call.
	N   int
	Err error

	// Delay is slept before returning, simulating a wait in flight.
	Delay time.Duration

	// OnWait, when set, runs on the proxy thread before returning.
	OnWait func()

	mu    sync.Mutex
	calls int
}

// Wait implements api.Waiter.
func (f *Waiter) Wait(nfds int, readfds, writefds, exceptfds *unix.FdSet,
	timeout *unix.Timespec, sigmask *unix.Sigset_t) (int, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if readfds != nil {
		readfds.Zero()
	}
	if writefds != nil {
		writefds.Zero()
	}
	if exceptfds != nil {
		exceptfds.Zero()
	}

	if f.OnWait != nil {
		f.OnWait()
	}
	if f.Delay > 0 {
		time.Sleep(f.Delay)
	}
	return f.N, f.Err
}

// Calls returns how many times Wait ran.
func (f *Waiter) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
