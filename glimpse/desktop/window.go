//go:build !js

// Package desktop implements glimpse.Window on top of GLFW.
package desktop

import (
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
	"strings"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/oliverbestmann/triangle/glimpse"
	"github.com/oliverbestmann/webgpu/wgpu"
	"github.com/oliverbestmann/webgpu/wgpuglfw"
)

func init() {
	// glfw must only be called from the main thread
	runtime.LockOSThread()
}

type Window struct {
	*glimpse.State

	win    *glfw.Window
	events glimpse.EventQueue
	config glimpse.WindowConfig
}

var _ glimpse.Window = (*Window)(nil)

// Build creates a new native window. The window does not use any client api,
// rendering goes through a wgpu surface created from SurfaceDescriptor.
func Build(config glimpse.WindowConfig) (*Window, error) {
	config = config.WithDefaults()

	if err := config.Validate(); err != nil {
		return nil, &glimpse.WindowCreationError{Reason: "invalid config", Err: err}
	}

	if err := applyInitHints(config); err != nil {
		return nil, &glimpse.WindowCreationError{Reason: "apply hints", Err: err}
	}

	if err := glfw.Init(); err != nil {
		return nil, &glimpse.WindowCreationError{Reason: "initialize glfw", Err: err}
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfwBool(config.Resizable))
	glfw.WindowHint(glfw.Decorated, glfwBool(config.Decorated))

	width, height := config.Width, config.Height

	var monitor *glfw.Monitor

	switch config.Fullscreen {
	case glimpse.Fullscreen:
		monitor = glfw.GetPrimaryMonitor()
		if monitor == nil {
			glfw.Terminate()
			return nil, &glimpse.WindowCreationError{Reason: "no monitor for fullscreen window"}
		}

		mode := monitor.GetVideoMode()
		width, height = mode.Width, mode.Height

		glfw.WindowHint(glfw.RefreshRate, mode.RefreshRate)

	case glimpse.Borderless:
		primary := glfw.GetPrimaryMonitor()
		if primary == nil {
			glfw.Terminate()
			return nil, &glimpse.WindowCreationError{Reason: "no monitor for borderless window"}
		}

		mode := primary.GetVideoMode()
		width, height = mode.Width, mode.Height

		glfw.WindowHint(glfw.Decorated, glfw.False)
	}

	win, err := glfw.CreateWindow(width, height, config.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, &glimpse.WindowCreationError{
			Reason: fmt.Sprintf("create %dx%d %s window", width, height, strings.ToLower(config.Fullscreen.String())),
			Err:    err,
		}
	}

	if config.Fullscreen == glimpse.Borderless {
		win.SetPos(0, 0)
	}

	fbWidth, fbHeight := win.GetFramebufferSize()

	w := &Window{
		State:  glimpse.NewState(glimpse.NextWindowID(), uint32(fbWidth), uint32(fbHeight)),
		win:    win,
		config: config,
	}

	w.installCallbacks()

	slog.Info("Window created",
		slog.Int("window", int(w.ID())),
		slog.String("title", config.Title),
		slog.Int("width", fbWidth),
		slog.Int("height", fbHeight),
		slog.String("mode", config.Fullscreen.String()),
	)

	return w, nil
}

func (w *Window) Config() glimpse.WindowConfig {
	return w.config
}

func (w *Window) PollEvents() []glimpse.Event {
	glfw.PollEvents()

	events := w.events.Drain()
	w.State.Apply(events)

	return events
}

func (w *Window) RequestClose() {
	w.State.RequestClose()
	w.win.SetShouldClose(true)
}

func (w *Window) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(w.win)
}

func (w *Window) Terminate() {
	w.win.Destroy()
	glfw.Terminate()
}

func (w *Window) installCallbacks() {
	id := w.ID()

	w.win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.events.Push(glimpse.ResizeEvent{
			Window: id,
			Width:  uint32(max(width, 0)),
			Height: uint32(max(height, 0)),
		})
	})

	w.win.SetPosCallback(func(_ *glfw.Window, x, y int) {
		w.events.Push(glimpse.MoveEvent{Window: id, X: x, Y: y})
	})

	w.win.SetCloseCallback(func(_ *glfw.Window) {
		w.events.Push(glimpse.QuitEvent{Window: id})
	})

	w.win.SetKeyCallback(func(_ *glfw.Window, glfwKey glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		w.events.Push(glimpse.KeyEvent{
			Window:   id,
			Key:      keyOf(glfwKey),
			Scancode: scancode,
			Action:   actionOf(action),
		})
	})
}

func applyInitHints(config glimpse.WindowConfig) error {
	for name, value := range config.Hints {
		hint, ok := initHints[strings.ToLower(name)]
		if !ok {
			return fmt.Errorf("unknown hint %q", name)
		}

		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("hint %q: %w", name, err)
		}

		glfw.InitHint(hint, glfwBool(enabled))
	}

	return nil
}

func glfwBool(value bool) int {
	if value {
		return glfw.True
	}

	return glfw.False
}
