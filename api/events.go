// File: api/events.go
// Package api defines the event variants carried by the fdmux queue.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// Window identifies the target surface of an event. The multiplexer
// never interprets it; it is routed through the queue untouched.
type Window uint32

// Common holds the fields shared by every event variant: the target
// window and the server timestamp in milliseconds.
type Common struct {
	Window Window
	Time   uint64
}

// EventWindow returns the target of the event.
func (c Common) EventWindow() Window { return c.Window }

// EventTime returns the event timestamp.
func (c Common) EventTime() uint64 { return c.Time }

func (Common) event() {}

// Event is one unit of asynchronously produced occurrence. Variants are
// plain value structs, immutable after construction and copied by value
// into and out of the queue.
type Event interface {
	EventWindow() Window
	EventTime() uint64
	event()
}

// GeometryChanged reports a move or resize of the target window.
type GeometryChanged struct {
	Common
	X, Y          int
	Width, Height int
}

// KeyDown reports a key press.
type KeyDown struct {
	Common
	Modifiers uint32
	Keycode   uint32
}

// KeyUp reports a key release.
type KeyUp struct {
	Common
	Modifiers uint32
	Keycode   uint32
}

// ButtonDown reports a pointer button press.
type ButtonDown struct {
	Common
	X, Y      int
	Button    uint32
	Modifiers uint32
}

// ButtonUp reports a pointer button release.
type ButtonUp struct {
	Common
	X, Y      int
	Button    uint32
	Modifiers uint32
}

// MotionNotify reports pointer movement.
type MotionNotify struct {
	Common
	X, Y int
}

// FocusIn reports the target window gaining input focus.
type FocusIn struct {
	Common
}

// FocusOut reports the target window losing input focus.
type FocusOut struct {
	Common
}

// Expose reports a region of the target window needing redraw.
type Expose struct {
	Common
	X, Y          int
	Width, Height int
}

var (
	_ Event = GeometryChanged{}
	_ Event = KeyDown{}
	_ Event = KeyUp{}
	_ Event = ButtonDown{}
	_ Event = ButtonUp{}
	_ Event = MotionNotify{}
	_ Event = FocusIn{}
	_ Event = FocusOut{}
	_ Event = Expose{}
)
