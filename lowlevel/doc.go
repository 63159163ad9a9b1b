// Copyright (c) 2026
// Author: momentics <momentics@gmail.com>

// Package lowlevel provides the platform descriptor-wait primitives for
// fdmux: the native pselect/select waiter and the pipe-backed wakeup
// handle used to interrupt a blocked wait without terminating its
// thread. Linux and Darwin are supported natively; other platforms get
// a stub waiter.
package lowlevel
