//go:build linux || darwin

// File: lowlevel/wakefd_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package lowlevel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestWakeFDTriggerConsume(t *testing.T) {
	wk, err := NewWakeFD()
	require.NoError(t, err)
	defer wk.Close()

	require.NoError(t, wk.Trigger())
	require.NoError(t, wk.Consume())
}

func TestWakeFDInterruptsWait(t *testing.T) {
	wk, err := NewWakeFD()
	require.NoError(t, err)
	defer wk.Close()

	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = wk.Trigger()
	}()

	var readfds unix.FdSet
	readfds.Set(wk.ReadFD())
	ts := unix.NsecToTimespec((5 * time.Second).Nanoseconds())

	start := time.Now()
	n, err := DefaultWaiter().Wait(wk.ReadFD()+1, &readfds, nil, nil, &ts, nil)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.True(t, readfds.IsSet(wk.ReadFD()))
	require.Less(t, time.Since(start), 2*time.Second)

	require.NoError(t, wk.Consume())
}

func TestWakeFDConsumeBlocksUntilTrigger(t *testing.T) {
	wk, err := NewWakeFD()
	require.NoError(t, err)
	defer wk.Close()

	done := make(chan error, 1)
	go func() {
		done <- wk.Consume()
	}()

	select {
	case <-done:
		t.Fatal("consume returned without a trigger")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, wk.Trigger())
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("consume did not observe the trigger")
	}
}

func TestWakeFDCloseIdempotent(t *testing.T) {
	wk, err := NewWakeFD()
	require.NoError(t, err)
	require.NoError(t, wk.Close())
	require.NoError(t, wk.Close())
}
