package orion

import (
	"errors"
	"testing"

	"github.com/oliverbestmann/triangle/glimpse"
	"github.com/oliverbestmann/triangle/pulse"
	"github.com/oliverbestmann/triangle/pulse/pulsetest"
)

// scriptedWindow delivers one batch of events per call to PollEvents.
type scriptedWindow struct {
	*glimpse.State

	queue   glimpse.EventQueue
	batches [][]glimpse.Event
	polls   int
}

func newScriptedWindow(width, height uint32, batches ...[]glimpse.Event) *scriptedWindow {
	return &scriptedWindow{
		State:   glimpse.NewState(glimpse.NextWindowID(), width, height),
		batches: batches,
	}
}

func (w *scriptedWindow) PollEvents() []glimpse.Event {
	w.polls++

	if len(w.batches) > 0 {
		for _, ev := range w.batches[0] {
			w.queue.Push(ev)
		}

		w.batches = w.batches[1:]
	}

	events := w.queue.Drain()
	w.Apply(events)

	return events
}

func (w *scriptedWindow) Terminate() {}

type recordingGraphics struct {
	resizes   [][2]uint32
	refreshes int
	draws     int

	drawErr error
}

func (g *recordingGraphics) Resize(width, height uint32) error {
	g.resizes = append(g.resizes, [2]uint32{width, height})
	return nil
}

func (g *recordingGraphics) Refresh() error {
	g.refreshes++
	return nil
}

func (g *recordingGraphics) DrawFrame() error {
	g.draws++
	return g.drawErr
}

func newTestContext(t *testing.T, backend *pulsetest.Backend, width, height uint32) *pulse.Context {
	t.Helper()

	opts := pulse.DefaultOptions()
	opts.Width, opts.Height = width, height

	ctx, err := pulse.New(backend, opts)
	if err != nil {
		t.Fatalf("create context: %v", err)
	}

	t.Cleanup(ctx.Release)

	return ctx
}

func TestApp_ResizeReconfiguresSurface(t *testing.T) {
	backend := pulsetest.New()
	ctx := newTestContext(t, backend, 1024, 768)

	window := newScriptedWindow(1024, 768)
	window.batches = [][]glimpse.Event{
		{glimpse.ResizeEvent{Window: window.ID(), Width: 800, Height: 600}},
	}

	app := NewApp(window, ctx, AppOptions{})

	if err := app.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}

	if w, h := window.CurrentSize(); w != 800 || h != 600 {
		t.Fatalf("window size is %dx%d", w, h)
	}

	last, _ := backend.LastConfiguration()
	if last.Width != 800 || last.Height != 600 {
		t.Fatalf("surface configured with %dx%d", last.Width, last.Height)
	}

	if backend.Presented != 1 {
		t.Fatalf("expected the frame after the resize to be presented")
	}
}

func TestApp_EscapeCloses(t *testing.T) {
	graphics := &recordingGraphics{}

	window := newScriptedWindow(1024, 768)
	window.batches = [][]glimpse.Event{
		nil,
		{glimpse.KeyEvent{Window: window.ID(), Key: glimpse.KeyEscape, Action: glimpse.ActionPress}},
		nil,
	}

	app := NewApp(window, graphics, AppOptions{})

	if err := app.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}

	if window.IsOpen() {
		t.Fatalf("window must be closed")
	}

	if app.State() != Closing {
		t.Fatalf("expected state Closing, got %s", app.State())
	}

	if window.polls != 2 || graphics.draws != 2 {
		t.Fatalf("expected two iterations, got %d polls and %d draws", window.polls, graphics.draws)
	}
}

func TestApp_KeyReleaseDoesNotClose(t *testing.T) {
	graphics := &recordingGraphics{}

	window := newScriptedWindow(1024, 768)
	window.batches = [][]glimpse.Event{
		{glimpse.KeyEvent{Window: window.ID(), Key: glimpse.KeyEscape, Action: glimpse.ActionRelease}},
		{glimpse.KeyEvent{Window: window.ID(), Key: glimpse.KeySpace, Action: glimpse.ActionPress}},
	}

	app := NewApp(window, graphics, AppOptions{})

	for range 2 {
		if err := app.Step(); err != nil {
			t.Fatalf("step: %v", err)
		}
	}

	if !window.IsOpen() || app.State() != Running {
		t.Fatalf("window must stay open")
	}
}

func TestApp_QuitCloses(t *testing.T) {
	tests := []struct {
		name   string
		target func(own glimpse.WindowID) glimpse.WindowID
		closes bool
	}{
		{"own window", func(own glimpse.WindowID) glimpse.WindowID { return own }, true},
		{"application wide", func(glimpse.WindowID) glimpse.WindowID { return glimpse.AnyWindow }, true},
		{"other window", func(own glimpse.WindowID) glimpse.WindowID { return own + 1000 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window := newScriptedWindow(1024, 768)
			window.batches = [][]glimpse.Event{
				{glimpse.QuitEvent{Window: tt.target(window.ID())}},
			}

			app := NewApp(window, &recordingGraphics{}, AppOptions{})

			if err := app.Step(); err != nil {
				t.Fatalf("step: %v", err)
			}

			if closed := !window.IsOpen(); closed != tt.closes {
				t.Fatalf("expected closed=%v, got %v", tt.closes, closed)
			}
		})
	}
}

func TestApp_IgnoresEventsOfOtherWindows(t *testing.T) {
	graphics := &recordingGraphics{}

	window := newScriptedWindow(1024, 768)
	other := window.ID() + 1

	window.batches = [][]glimpse.Event{
		{
			glimpse.MoveEvent{Window: other, X: 10, Y: 20},
			glimpse.ResizeEvent{Window: other, Width: 10, Height: 10},
			glimpse.KeyEvent{Window: other, Key: glimpse.KeyEscape, Action: glimpse.ActionPress},
		},
	}

	app := NewApp(window, graphics, AppOptions{})

	if err := app.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}

	if graphics.refreshes != 0 || len(graphics.resizes) != 0 {
		t.Fatalf("events of other windows must be ignored")
	}

	if !window.IsOpen() {
		t.Fatalf("escape in another window must not close this one")
	}

	if graphics.draws != 1 {
		t.Fatalf("expected one draw, got %d", graphics.draws)
	}
}

func TestApp_MoveRefreshesSurface(t *testing.T) {
	backend := pulsetest.New()
	ctx := newTestContext(t, backend, 1024, 768)

	window := newScriptedWindow(1024, 768)
	window.batches = [][]glimpse.Event{
		{glimpse.MoveEvent{Window: window.ID(), X: 100, Y: 50}},
	}

	configured := len(backend.Configurations)

	app := NewApp(window, ctx, AppOptions{})
	if err := app.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}

	if len(backend.Configurations) != configured+1 {
		t.Fatalf("expected the surface to be reconfigured after a move")
	}

	last, _ := backend.LastConfiguration()
	if last.Width != 1024 || last.Height != 768 {
		t.Fatalf("a move must not change the surface size")
	}
}

func TestApp_DrawsOncePerIteration(t *testing.T) {
	graphics := &recordingGraphics{}

	window := newScriptedWindow(1024, 768)
	window.batches = [][]glimpse.Event{
		nil,
		{glimpse.ResizeEvent{Window: window.ID(), Width: 640, Height: 480}},
		{glimpse.MoveEvent{Window: window.ID()}, glimpse.MoveEvent{Window: window.ID()}},
		nil,
	}

	app := NewApp(window, graphics, AppOptions{})

	for range 4 {
		if err := app.Step(); err != nil {
			t.Fatalf("step: %v", err)
		}
	}

	if graphics.draws != 4 {
		t.Fatalf("expected 4 draws, got %d", graphics.draws)
	}

	if graphics.refreshes != 2 {
		t.Fatalf("expected 2 refreshes, got %d", graphics.refreshes)
	}

	if app.FrameTimes().FrameCount != 4 {
		t.Fatalf("expected 4 frames to be counted")
	}
}

func TestApp_RecoversFromOutdatedSurface(t *testing.T) {
	backend := pulsetest.New()
	backend.AcquireErrors = []error{&pulse.AcquireError{Reason: pulse.AcquireOutdated}}

	ctx := newTestContext(t, backend, 1024, 768)
	window := newScriptedWindow(1024, 768)

	app := NewApp(window, ctx, AppOptions{})

	for range 2 {
		if err := app.Step(); err != nil {
			t.Fatalf("step: %v", err)
		}
	}

	if backend.Presented != 1 {
		t.Fatalf("expected the second frame to be presented, got %d", backend.Presented)
	}
}

func TestApp_DrawErrorAbortsRun(t *testing.T) {
	cause := errors.New("gpu on fire")
	graphics := &recordingGraphics{drawErr: cause}

	window := newScriptedWindow(1024, 768)
	app := NewApp(window, graphics, AppOptions{})

	err := app.Run()
	if !errors.Is(err, cause) {
		t.Fatalf("expected the draw error, got %v", err)
	}

	if app.State() != Closing || graphics.draws != 1 {
		t.Fatalf("expected the loop to stop after the first failed frame")
	}
}

func TestApp_ClosedWindowDoesNotRun(t *testing.T) {
	graphics := &recordingGraphics{}

	window := newScriptedWindow(1024, 768)
	window.RequestClose()

	app := NewApp(window, graphics, AppOptions{})

	if err := app.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}

	if graphics.draws != 0 || window.polls != 0 {
		t.Fatalf("no iteration must run for a closed window")
	}
}

func TestNewApp_Limiter(t *testing.T) {
	tests := []struct {
		opts    AppOptions
		limited bool
	}{
		{AppOptions{MaxFPS: 60}, true},
		{AppOptions{MaxFPS: 60, VSync: true}, false},
		{AppOptions{MaxFPS: 0}, false},
	}

	for _, tt := range tests {
		app := NewApp(newScriptedWindow(1, 1), &recordingGraphics{}, tt.opts)

		if limited := app.limiter != nil; limited != tt.limited {
			t.Fatalf("%+v: expected limited=%v", tt.opts, tt.limited)
		}
	}
}
