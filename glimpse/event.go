package glimpse

import "sync/atomic"

// WindowID identifies the window an event belongs to. The zero value
// addresses the whole application.
type WindowID uint32

const AnyWindow WindowID = 0

var lastWindowID atomic.Uint32

// NextWindowID allocates a new, process wide unique WindowID.
func NextWindowID() WindowID {
	return WindowID(lastWindowID.Add(1))
}

type Event interface {
	// WindowID returns the window the event was generated for.
	WindowID() WindowID
}

// QuitEvent is sent when the user asks to close the window,
// e.g. by clicking the close button.
type QuitEvent struct {
	Window WindowID
}

// ResizeEvent carries the new framebuffer size in pixels.
type ResizeEvent struct {
	Window        WindowID
	Width, Height uint32
}

// MoveEvent carries the new position of the window in screen coordinates.
type MoveEvent struct {
	Window WindowID
	X, Y   int
}

type KeyEvent struct {
	Window WindowID
	Key    Key

	// platform specific scancode of the key
	Scancode int

	Action Action
}

func (ev QuitEvent) WindowID() WindowID   { return ev.Window }
func (ev ResizeEvent) WindowID() WindowID { return ev.Window }
func (ev MoveEvent) WindowID() WindowID   { return ev.Window }
func (ev KeyEvent) WindowID() WindowID    { return ev.Window }

// Pressed returns true if the key went down with this event.
func (ev KeyEvent) Pressed(key Key) bool {
	return ev.Key == key && ev.Action == ActionPress
}

//go:generate go tool stringer -type=Key -trimprefix=Key

type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyEnter
	KeySpace
	KeyTab
	KeyBackspace
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyF11
)

//go:generate go tool stringer -type=Action -trimprefix=Action

type Action int

const (
	ActionPress Action = iota
	ActionRelease
	ActionRepeat
)
