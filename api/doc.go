// Copyright (c) 2026
// Author: momentics <momentics@gmail.com>

// Package api defines the core event types and contracts for fdmux: the
// tagged event union carried by the queue, the platform waiter consumed
// by the proxy, and the common error taxonomy.
package api
