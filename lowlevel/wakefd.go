// File: lowlevel/wakefd.go
// Author: momentics <momentics@gmail.com>
//
// Pipe-backed wakeup handle. Watching the read end from a blocking
// descriptor wait makes that wait interruptible: writing one byte to
// the pipe forces it to return. Interruption is best-effort and races
// harmlessly if it lands after the wait already completed.

package lowlevel

import (
	"sync"

	"golang.org/x/sys/unix"
)

// WakeFD is a wakeup handle built on an anonymous pipe.
type WakeFD struct {
	r, w      int
	closeOnce sync.Once
	closeErr  error
}

// NewWakeFD opens the pipe. Both ends are close-on-exec and blocking;
// a one-byte write can never stall.
func NewWakeFD() (*WakeFD, error) {
	var p [2]int
	if err := unix.Pipe(p[:]); err != nil {
		return nil, err
	}
	unix.CloseOnExec(p[0])
	unix.CloseOnExec(p[1])
	return &WakeFD{r: p[0], w: p[1]}, nil
}

// ReadFD returns the descriptor to include in a wait's read set.
func (wk *WakeFD) ReadFD() int { return wk.r }

// Trigger writes one byte to the pipe, forcing any wait watching
// ReadFD to return.
func (wk *WakeFD) Trigger() error {
	buf := [1]byte{0}
	for {
		_, err := unix.Write(wk.w, buf[:])
		if err != unix.EINTR {
			return err
		}
	}
}

// Consume blocks until one byte is available and retires it. Exactly
// one byte is read per call so trigger/consume accounting stays
// balanced across wait cycles.
func (wk *WakeFD) Consume() error {
	var buf [1]byte
	for {
		n, err := unix.Read(wk.r, buf[:])
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return err
		}
		if n == 1 {
			return nil
		}
	}
}

// Close releases both pipe ends. Safe to call more than once.
func (wk *WakeFD) Close() error {
	wk.closeOnce.Do(func() {
		errR := unix.Close(wk.r)
		errW := unix.Close(wk.w)
		if errR != nil {
			wk.closeErr = errR
		} else {
			wk.closeErr = errW
		}
	})
	return wk.closeErr
}
