package glimpse

import (
	"fmt"
	"log/slog"
)

type Window interface {
	ID() WindowID

	// PollEvents drains all pending events without blocking. Each event is
	// returned exactly once.
	PollEvents() []Event

	// RequestClose marks the window as closed. The native window stays alive
	// until Terminate is called.
	RequestClose()
	IsOpen() bool

	// CurrentSize returns the framebuffer size as of the last resize event
	// returned by PollEvents.
	CurrentSize() (uint32, uint32)

	Terminate()
}

// WindowCreationError is returned if the window system could not
// build a window for the requested configuration.
type WindowCreationError struct {
	Reason string
	Err    error
}

func (e *WindowCreationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("create window: %s: %s", e.Reason, e.Err)
	}

	return "create window: " + e.Reason
}

func (e *WindowCreationError) Unwrap() error {
	return e.Err
}

// EventQueue buffers events generated by window system callbacks until
// they are drained.
type EventQueue struct {
	events []Event
}

func (q *EventQueue) Push(ev Event) {
	q.events = append(q.events, ev)
}

func (q *EventQueue) Len() int {
	return len(q.events)
}

// Drain returns all buffered events and empties the queue. The result is
// never nil.
func (q *EventQueue) Drain() []Event {
	events := q.events
	q.events = nil

	if events == nil {
		return []Event{}
	}

	return events
}

// State holds the part of a window that is observable through events.
// Window implementations embed it and feed every drained event through Apply.
type State struct {
	id     WindowID
	width  uint32
	height uint32
	closed bool

	keys KeysState
}

func NewState(id WindowID, width, height uint32) *State {
	return &State{id: id, width: width, height: height}
}

func (s *State) ID() WindowID {
	return s.id
}

func (s *State) IsOpen() bool {
	return !s.closed
}

func (s *State) RequestClose() {
	if s.closed {
		return
	}

	slog.Debug("Window close requested", slog.Int("window", int(s.id)))
	s.closed = true
}

func (s *State) CurrentSize() (uint32, uint32) {
	return s.width, s.height
}

// Keys returns the keyboard state as of the last call to Apply.
func (s *State) Keys() *KeysState {
	return &s.keys
}

// Apply updates the state from events that address this window.
func (s *State) Apply(events []Event) {
	s.keys.nextTick()

	for _, ev := range events {
		switch ev := ev.(type) {
		case ResizeEvent:
			if ev.Window == s.id {
				s.width = ev.Width
				s.height = ev.Height
			}

		case QuitEvent:
			if ev.Window == s.id || ev.Window == AnyWindow {
				s.RequestClose()
			}

		case KeyEvent:
			if ev.Window == s.id {
				s.keys.apply(ev)
			}
		}
	}
}
