//go:build darwin

// File: lowlevel/pselect_darwin.go
// Author: momentics <momentics@gmail.com>
//
// Darwin select(2) fallback. There is no pselect on Darwin, so the
// signal mask is ignored; fdmux interrupts via the wake pipe rather
// than signals, which keeps the contract intact.

package lowlevel

import (
	"time"

	"golang.org/x/sys/unix"

	"github.com/momentics/fdmux/api"
)

// DefaultWaiter returns the native descriptor-wait implementation for
// this platform.
func DefaultWaiter() api.Waiter { return selectWaiter{} }

type selectWaiter struct{}

// Wait invokes select(2), retrying stray EINTR with the remaining time.
func (selectWaiter) Wait(nfds int, readfds, writefds, exceptfds *unix.FdSet,
	timeout *unix.Timespec, sigmask *unix.Sigset_t) (int, error) {
	var deadline time.Time
	var tv *unix.Timeval
	if timeout != nil {
		deadline = time.Now().Add(time.Duration(timeout.Nano()))
		t := unix.NsecToTimeval(timeout.Nano())
		tv = &t
	}
	for {
		n, err := unix.Select(nfds, readfds, writefds, exceptfds, tv)
		if err != unix.EINTR {
			return n, err
		}
		if timeout != nil {
			left := time.Until(deadline)
			if left <= 0 {
				return 0, nil
			}
			t := unix.NsecToTimeval(left.Nanoseconds())
			tv = &t
		}
	}
}
