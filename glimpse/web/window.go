//go:build js

// Package web implements glimpse.Window on top of a html canvas.
package web

import (
	"syscall/js"

	"github.com/oliverbestmann/triangle/glimpse"
	"github.com/oliverbestmann/webgpu/wgpu"
)

var jsKeys = map[string]glimpse.Key{
	"Escape":     glimpse.KeyEscape,
	"Enter":      glimpse.KeyEnter,
	" ":          glimpse.KeySpace,
	"Tab":        glimpse.KeyTab,
	"Backspace":  glimpse.KeyBackspace,
	"ArrowLeft":  glimpse.KeyLeft,
	"ArrowRight": glimpse.KeyRight,
	"ArrowUp":    glimpse.KeyUp,
	"ArrowDown":  glimpse.KeyDown,
	"F11":        glimpse.KeyF11,
}

type Window struct {
	*glimpse.State

	canvas js.Value
	events glimpse.EventQueue

	listeners []js.Func
}

var _ glimpse.Window = (*Window)(nil)

// New appends a canvas to the document body. The canvas always fills
// the visual viewport, size and fullscreen settings of the config are ignored.
func New(config glimpse.WindowConfig) (*Window, error) {
	config = config.WithDefaults()

	document := js.Global().Get("document")
	if document.IsUndefined() {
		return nil, &glimpse.WindowCreationError{Reason: "no document available"}
	}

	canvas := document.Call("createElement", "canvas")
	document.Get("body").Call("appendChild", canvas)
	document.Set("title", config.Title)

	canvas.Set("style", "width:100vw; height:100vh")

	width, height := resizeCanvas(canvas)

	w := &Window{
		State:  glimpse.NewState(glimpse.NextWindowID(), width, height),
		canvas: canvas,
	}

	w.listen(document, "keydown", glimpse.ActionPress)
	w.listen(document, "keyup", glimpse.ActionRelease)

	return w, nil
}

func (w *Window) PollEvents() []glimpse.Event {
	width, height := resizeCanvas(w.canvas)

	if curWidth, curHeight := w.CurrentSize(); curWidth != width || curHeight != height {
		w.events.Push(glimpse.ResizeEvent{Window: w.ID(), Width: width, Height: height})
	}

	events := w.events.Drain()
	w.State.Apply(events)

	return events
}

func (w *Window) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return &wgpu.SurfaceDescriptor{Canvas: w.canvas}
}

func (w *Window) Terminate() {
	for _, fn := range w.listeners {
		fn.Release()
	}

	w.canvas.Call("remove")
}

// Run calls step once per animation frame until the window is closed
// or step returns an error.
func (w *Window) Run(step func() error) error {
	helper := js.Global().Call("eval", `({
        async run(runOnce) {
            while (runOnce()) {
                await new Promise(resolve => requestAnimationFrame(resolve))
            }
        }
	})`)

	result := make(chan error, 1)

	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		if !w.IsOpen() {
			result <- nil
			return false
		}

		if err := step(); err != nil {
			result <- err
			return false
		}

		return true
	})

	defer fn.Release()

	helper.Call("run", fn)

	return <-result
}

func (w *Window) listen(target js.Value, eventType string, action glimpse.Action) {
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		ev := args[0]

		action := action
		if ev.Get("repeat").Bool() {
			action = glimpse.ActionRepeat
		}

		w.events.Push(glimpse.KeyEvent{
			Window:   w.ID(),
			Key:      jsKeys[ev.Get("key").String()],
			Scancode: ev.Get("keyCode").Int(),
			Action:   action,
		})

		return nil
	})

	target.Call("addEventListener", eventType, fn)
	w.listeners = append(w.listeners, fn)
}

func resizeCanvas(canvas js.Value) (uint32, uint32) {
	vv := js.Global().Get("visualViewport")
	viewWidth := vv.Get("width").Float()
	viewHeight := vv.Get("height").Float()

	ratio := js.Global().Get("devicePixelRatio").Float()

	width := uint32(viewWidth * ratio)
	height := uint32(viewHeight * ratio)

	canvas.Set("width", width)
	canvas.Set("height", height)

	return width, height
}
