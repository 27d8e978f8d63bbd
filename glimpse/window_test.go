package glimpse

import (
	"errors"
	"reflect"
	"testing"
)

func TestEventQueue_DrainNeverRedelivers(t *testing.T) {
	var q EventQueue

	q.Push(ResizeEvent{Window: 1, Width: 800, Height: 600})
	q.Push(MoveEvent{Window: 1, X: 10, Y: 20})

	first := q.Drain()
	want := []Event{
		ResizeEvent{Window: 1, Width: 800, Height: 600},
		MoveEvent{Window: 1, X: 10, Y: 20},
	}

	if !reflect.DeepEqual(want, first) {
		t.Fatalf("first drain\nwant: %+v\nhave: %+v", want, first)
	}

	if second := q.Drain(); len(second) != 0 {
		t.Fatalf("expected second drain to be empty, got %+v", second)
	}

	if q.Len() != 0 {
		t.Fatalf("expected empty queue, got %d events", q.Len())
	}
}

func TestEventQueue_DrainEmpty(t *testing.T) {
	var q EventQueue

	events := q.Drain()
	if events == nil {
		t.Fatalf("expected an empty slice, got nil")
	}

	if len(events) != 0 {
		t.Fatalf("expected no events, got %+v", events)
	}
}

func TestEventQueue_PushAfterDrainDoesNotAlias(t *testing.T) {
	var q EventQueue

	q.Push(MoveEvent{Window: 1, X: 1})
	drained := q.Drain()

	q.Push(MoveEvent{Window: 1, X: 2})

	if have := drained[0].(MoveEvent).X; have != 1 {
		t.Fatalf("drained event was overwritten, have x=%d", have)
	}
}

func TestState_ResizeTracksLastEvent(t *testing.T) {
	s := NewState(7, 1024, 768)

	s.Apply([]Event{
		ResizeEvent{Window: 7, Width: 640, Height: 480},
		ResizeEvent{Window: 7, Width: 800, Height: 600},
	})

	if w, h := s.CurrentSize(); w != 800 || h != 600 {
		t.Fatalf("expected 800x600, got %dx%d", w, h)
	}
}

func TestState_IgnoresEventsOfOtherWindows(t *testing.T) {
	s := NewState(7, 1024, 768)

	s.Apply([]Event{
		ResizeEvent{Window: 8, Width: 10, Height: 10},
		QuitEvent{Window: 8},
	})

	if w, h := s.CurrentSize(); w != 1024 || h != 768 {
		t.Fatalf("expected size to stay 1024x768, got %dx%d", w, h)
	}

	if !s.IsOpen() {
		t.Fatalf("quit event of another window closed this window")
	}
}

func TestState_CloseIsMonotonic(t *testing.T) {
	tests := []struct {
		name  string
		close func(s *State)
	}{
		{"RequestClose", func(s *State) { s.RequestClose() }},
		{"QuitEvent", func(s *State) { s.Apply([]Event{QuitEvent{Window: 3}}) }},
		{"ApplicationQuit", func(s *State) { s.Apply([]Event{QuitEvent{Window: AnyWindow}}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState(3, 100, 100)
			tt.close(s)

			if s.IsOpen() {
				t.Fatalf("expected window to be closed")
			}

			// nothing may reopen the window
			s.RequestClose()
			s.Apply([]Event{
				ResizeEvent{Window: 3, Width: 1, Height: 1},
				KeyEvent{Window: 3, Key: KeyEnter, Action: ActionPress},
			})

			if s.IsOpen() {
				t.Fatalf("window reopened")
			}
		})
	}
}

func TestNextWindowID_Unique(t *testing.T) {
	a, b := NextWindowID(), NextWindowID()
	if a == b || a == AnyWindow || b == AnyWindow {
		t.Fatalf("expected two distinct non zero ids, got %d and %d", a, b)
	}
}

func TestKeyEvent_Pressed(t *testing.T) {
	ev := KeyEvent{Key: KeyEscape, Action: ActionPress}
	if !ev.Pressed(KeyEscape) {
		t.Fatalf("expected escape to be pressed")
	}

	if ev.Pressed(KeyEnter) {
		t.Fatalf("expected enter not to be pressed")
	}

	ev.Action = ActionRelease
	if ev.Pressed(KeyEscape) {
		t.Fatalf("a release is not a press")
	}
}

func TestWindowCreationError(t *testing.T) {
	cause := errors.New("display unavailable")

	var err error = &WindowCreationError{Reason: "initialize glfw", Err: cause}

	if !errors.Is(err, cause) {
		t.Fatalf("expected error to wrap its cause")
	}

	var wce *WindowCreationError
	if !errors.As(err, &wce) || wce.Reason != "initialize glfw" {
		t.Fatalf("expected a WindowCreationError, got %v", err)
	}

	if want, have := "create window: initialize glfw: display unavailable", err.Error(); want != have {
		t.Fatalf("want %q, have %q", want, have)
	}
}
