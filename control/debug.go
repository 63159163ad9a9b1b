// control/debug.go
// Author: momentics <momentics@gmail.com>
//
// Runtime debug handler and probe reflector for internal inspection.

package control

import (
	"runtime"
	"sync"
)

// DebugProbes holds registered probe functions.
type DebugProbes struct {
	mu     sync.RWMutex
	probes map[string]func() any
}

// NewDebugProbes creates a probe registry with the platform probes
// preinstalled.
func NewDebugProbes() *DebugProbes {
	dp := &DebugProbes{
		probes: make(map[string]func() any),
	}
	dp.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
	dp.RegisterProbe("platform.goroutines", func() any {
		return runtime.NumGoroutine()
	})
	return dp
}

// RegisterProbe inserts a named debug hook.
func (dp *DebugProbes) RegisterProbe(name string, fn func() any) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	dp.probes[name] = fn
}

// RemoveProbe deletes a named debug hook.
func (dp *DebugProbes) RemoveProbe(name string) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	delete(dp.probes, name)
}

// DumpState returns output of all probes.
func (dp *DebugProbes) DumpState() map[string]any {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	out := make(map[string]any)
	for k, fn := range dp.probes {
		out[k] = fn()
	}
	return out
}
