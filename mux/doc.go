// Copyright (c) 2026
// Author: momentics <momentics@gmail.com>

// Package mux implements the unified blocking multiplexer: a single
// consumer waits, with one call, on OS descriptor readiness and on a
// bounded cross-thread event queue at the same time. A dedicated proxy
// thread performs the actual blocking descriptor wait so the consumer
// can watch the queue; a pipe-backed wakeup handle aborts the wait the
// instant an event arrives.
package mux
