// Package control
// Author: momentics <momentics@gmail.com>
//
// Configuration, runtime metrics, and debug introspection layer for
// fdmux.
//
// Provides concurrent-safe primitives including:
//   - Typed configuration with YAML loading and validation
//   - Monotonic counter registry with snapshot reads
//   - Debug hooks and probe registration
package control
