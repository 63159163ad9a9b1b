// File: api/control.go
// Package api defines Control and shutdown contracts.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// Control exposes runtime metrics and debug probes of a multiplexer.
type Control interface {
	Stats() map[string]any
	RegisterDebugProbe(name string, fn func() any)
}

// GracefulShutdown unifies orderly teardown of components. Shutdown
// must be idempotent.
type GracefulShutdown interface {
	Shutdown() error
}
