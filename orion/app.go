package orion

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/oliverbestmann/triangle/glimpse"
)

// Graphics is the part of the graphics context the loop drives.
// It is implemented by *pulse.Context.
type Graphics interface {
	Resize(width, height uint32) error
	Refresh() error
	DrawFrame() error
}

//go:generate go tool stringer -type=State

// State of the application loop. Closing is terminal.
type State int

const (
	Running State = iota
	Closing
)

type AppOptions struct {
	// Upper bound for the frame rate, zero disables the limiter.
	MaxFPS int

	// With vsync enabled presentation already paces the loop
	// and MaxFPS is ignored.
	VSync bool
}

type App struct {
	window   glimpse.Window
	graphics Graphics

	state   State
	limiter *FrameLimiter
	times   FrameTimes
}

func NewApp(window glimpse.Window, graphics Graphics, opts AppOptions) *App {
	app := &App{
		window:   window,
		graphics: graphics,
	}

	if opts.MaxFPS > 0 && !opts.VSync {
		app.limiter = NewFrameLimiter(opts.MaxFPS)
	}

	return app
}

func (a *App) State() State {
	return a.state
}

// FrameTimes returns the timing statistics of the steps run so far.
func (a *App) FrameTimes() FrameTimes {
	return a.times
}

// Run steps the application until its window closes.
func (a *App) Run() error {
	slog.Info("Starting application loop", slog.Int("window", int(a.window.ID())))

	for a.window.IsOpen() {
		if err := a.Step(); err != nil {
			a.close()
			return err
		}
	}

	a.close()

	slog.Info("Application loop finished",
		slog.Uint64("frames", a.times.FrameCount),
		slog.Duration("averageFrameTime", a.times.AverageDuration),
	)

	return nil
}

// Step handles all pending window events and draws exactly one frame.
func (a *App) Step() error {
	for _, ev := range a.window.PollEvents() {
		if err := a.handle(ev); err != nil {
			return err
		}
	}

	if err := a.graphics.DrawFrame(); err != nil {
		return fmt.Errorf("draw frame: %w", err)
	}

	if a.times.Tick() {
		slog.Debug("Frame statistics",
			slog.Float64("fps", a.times.FPS()),
			slog.Duration("average", a.times.AverageDuration),
			slog.Duration("max", a.times.MaxDuration),
		)
	}

	if a.limiter != nil {
		a.limiter.Wait()
	}

	return nil
}

func (a *App) handle(ev glimpse.Event) error {
	id := a.window.ID()

	switch ev := ev.(type) {
	case glimpse.QuitEvent:
		if ev.Window == id || ev.Window == glimpse.AnyWindow {
			a.requestClose("quit")
		}

	case glimpse.KeyEvent:
		if ev.Window == id && ev.Pressed(glimpse.KeyEscape) {
			a.requestClose("escape")
		}

	case glimpse.ResizeEvent:
		if ev.Window != id {
			return nil
		}

		if err := a.graphics.Resize(ev.Width, ev.Height); err != nil {
			return fmt.Errorf("resize: %w", err)
		}

	case glimpse.MoveEvent:
		if ev.Window != id {
			return nil
		}

		// some platforms invalidate the surface when the window moves
		if err := a.graphics.Refresh(); err != nil {
			return fmt.Errorf("refresh after move: %w", err)
		}
	}

	return nil
}

func (a *App) requestClose(cause string) {
	if a.state == Closing {
		return
	}

	slog.Info("Closing window", slog.String("cause", cause))

	a.window.RequestClose()
	a.close()
}

func (a *App) close() {
	a.state = Closing
}

// frameBudget returns the minimum duration of one frame at the given rate.
func frameBudget(fps int) time.Duration {
	return time.Second / time.Duration(clamp(fps, 1, 1000))
}
