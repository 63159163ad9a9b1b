//go:build linux

// File: lowlevel/pselect_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux pselect(2)-based waiter. The signal mask is passed through to
// the kernel atomically, as pselect guarantees.

package lowlevel

import (
	"time"

	"golang.org/x/sys/unix"

	"github.com/momentics/fdmux/api"
)

// DefaultWaiter returns the native descriptor-wait implementation for
// this platform.
func DefaultWaiter() api.Waiter { return pselectWaiter{} }

type pselectWaiter struct{}

// Wait invokes pselect(2). Stray EINTR (the Go runtime signals its own
// threads) is retried with the remaining time against a deadline, so
// interruption never leaks to the caller as an error.
func (pselectWaiter) Wait(nfds int, readfds, writefds, exceptfds *unix.FdSet,
	timeout *unix.Timespec, sigmask *unix.Sigset_t) (int, error) {
	var deadline time.Time
	if timeout != nil {
		deadline = time.Now().Add(time.Duration(timeout.Nano()))
	}
	ts := timeout
	for {
		n, err := unix.Pselect(nfds, readfds, writefds, exceptfds, ts, sigmask)
		if err != unix.EINTR {
			return n, err
		}
		if timeout != nil {
			left := time.Until(deadline)
			if left <= 0 {
				return 0, nil
			}
			t := unix.NsecToTimespec(left.Nanoseconds())
			ts = &t
		}
	}
}
