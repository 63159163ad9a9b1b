// File: api/waiter.go
// Package api defines the platform collaborator contract.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

import "golang.org/x/sys/unix"

// Waiter performs one blocking multiplexed descriptor wait with classic
// pselect(2) semantics: the descriptor sets are in/out parameters, the
// return value is the number of ready descriptors, and a nil timeout
// blocks indefinitely.
//
// Implementations must retire EINTR internally (retrying with the
// remaining time); interruption is delivered to callers through
// descriptor readiness, never through an error.
type Waiter interface {
	Wait(nfds int, readfds, writefds, exceptfds *unix.FdSet,
		timeout *unix.Timespec, sigmask *unix.Sigset_t) (int, error)
}

// WaiterFunc adapts a plain function to the Waiter interface.
type WaiterFunc func(nfds int, readfds, writefds, exceptfds *unix.FdSet,
	timeout *unix.Timespec, sigmask *unix.Sigset_t) (int, error)

// Wait implements Waiter.
func (f WaiterFunc) Wait(nfds int, readfds, writefds, exceptfds *unix.FdSet,
	timeout *unix.Timespec, sigmask *unix.Sigset_t) (int, error) {
	return f(nfds, readfds, writefds, exceptfds, timeout, sigmask)
}
