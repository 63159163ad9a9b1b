//go:build !linux && !darwin

// File: lowlevel/pselect_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub waiter for platforms without a native implementation.

package lowlevel

import (
	"golang.org/x/sys/unix"

	"github.com/momentics/fdmux/api"
)

// DefaultWaiter returns a waiter that always fails; supply a custom
// api.Waiter on unsupported platforms.
func DefaultWaiter() api.Waiter { return stubWaiter{} }

type stubWaiter struct{}

func (stubWaiter) Wait(nfds int, readfds, writefds, exceptfds *unix.FdSet,
	timeout *unix.Timespec, sigmask *unix.Sigset_t) (int, error) {
	return 0, api.ErrNotSupported
}
