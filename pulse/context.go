package pulse

import (
	"errors"
	"fmt"
	"log/slog"
)

type Options struct {
	// Initial size of the surface, usually the framebuffer size of the window.
	Width  uint32
	Height uint32

	PowerPreference      PowerPreference
	ForceFallbackAdapter bool
	FormatPolicy         FormatPolicy
	PresentMode          PresentMode

	// Maximum number of frames queued for presentation, defaults to 2.
	FrameLatency uint32

	// Color the surface is cleared to before drawing. Note that the zero
	// value is opaque white.
	ClearColor Color

	// WGSL source of the pipeline, defaults to DefaultShaderSource.
	ShaderSource string

	// Number of consecutive failed frame acquisitions after which
	// DrawFrame gives up. Zero retries forever.
	MaxConsecutiveFailures int
}

func DefaultOptions() Options {
	return Options{
		PowerPreference:        PowerPreferenceHighPerformance,
		FormatPolicy:           FormatPreferSRGB,
		PresentMode:            PresentModeFifo,
		FrameLatency:           2,
		ClearColor:             ColorBlack,
		ShaderSource:           DefaultShaderSource(),
		MaxConsecutiveFailures: 120,
	}
}

func (o Options) withDefaults() Options {
	if o.FrameLatency == 0 {
		o.FrameLatency = 2
	}

	if o.ShaderSource == "" {
		o.ShaderSource = DefaultShaderSource()
	}

	return o
}

type FrameStats struct {
	Presented uint64
	Skipped   uint64

	failures [acquireFailureCount]uint64
}

// Failures returns how often frame acquisition failed for the given reason.
func (s FrameStats) Failures(reason AcquireFailure) uint64 {
	if reason < 0 || int(reason) >= acquireFailureCount {
		return 0
	}

	return s.failures[reason]
}

// Context encapsulates the low level state of the gpu: the instance, the
// Surface of the window, the Adapter, the Device and its Queue. The handles
// are released in reverse order of their creation.
type Context struct {
	instance Instance
	surface  Surface
	adapter  Adapter
	device   Device
	queue    Queue

	pipelines *PipelineCache

	options Options
	config  SurfaceConfig

	// false while the surface has an empty size
	configured bool

	failures int
	stats    FrameStats
}

func New(backend Backend, opts Options) (ctx *Context, err error) {
	opts = opts.withDefaults()

	ctx = &Context{options: opts}

	defer func() {
		if err != nil {
			ctx.Release()
			ctx = nil
		}
	}()

	ctx.instance, err = backend.CreateInstance()
	if err != nil {
		return ctx, fmt.Errorf("create instance: %w", err)
	}

	// create a Surface based on the window
	ctx.surface, err = ctx.instance.CreateSurface()
	if err != nil {
		return ctx, fmt.Errorf("create surface: %w", err)
	}

	// find an adapter that can render to the Surface
	ctx.adapter, err = ctx.instance.RequestAdapter(AdapterOptions{
		PowerPreference:      opts.PowerPreference,
		ForceFallbackAdapter: opts.ForceFallbackAdapter,
		CompatibleSurface:    ctx.surface,
	})

	switch {
	case err != nil:
		return ctx, &NoAdapterError{Reason: "request adapter", Err: err}
	case ctx.adapter == nil:
		return ctx, &NoAdapterError{Reason: "no adapter supports the surface"}
	}

	info := ctx.adapter.Info()
	slog.Info("Selected adapter",
		slog.String("name", info.Name),
		slog.String("vendor", info.Vendor),
		slog.String("backend", info.Backend),
		slog.String("powerPreference", opts.PowerPreference.String()),
	)

	ctx.device, err = ctx.adapter.RequestDevice("device")
	if err != nil {
		return ctx, &DeviceCreationError{Reason: "request device", Err: err}
	}

	ctx.queue = ctx.device.Queue()

	caps := ctx.surface.Capabilities(ctx.adapter)
	slog.Info("Available surface formats", slog.Any("formats", caps.Formats))

	format, ok := opts.FormatPolicy.Choose(caps.Formats)
	if !ok {
		return ctx, &NoAdapterError{Reason: "adapter reports no formats for the surface"}
	}

	// the pipeline writes directly into the surface, it needs the negotiated format
	ctx.pipelines = NewPipelineCache(ctx.device, opts.ShaderSource)
	if _, err = ctx.pipelines.Get(format); err != nil {
		return ctx, err
	}

	presentMode := choosePresentMode(opts.PresentMode, caps.PresentModes)
	if presentMode != opts.PresentMode {
		slog.Warn("Present mode not supported, falling back",
			slog.String("requested", opts.PresentMode.String()),
			slog.String("using", presentMode.String()),
		)
	}

	ctx.config = SurfaceConfig{
		Format:       format,
		Width:        opts.Width,
		Height:       opts.Height,
		PresentMode:  presentMode,
		Usage:        TextureUsageRenderAttachment,
		FrameLatency: opts.FrameLatency,
	}

	slog.Info("Configure surface",
		slog.String("format", format.String()),
		slog.String("presentMode", presentMode.String()),
		slog.Int("width", int(opts.Width)),
		slog.Int("height", int(opts.Height)),
	)

	if err = ctx.configure(); err != nil {
		return ctx, fmt.Errorf("configure surface: %w", err)
	}

	return ctx, nil
}

// Config returns the current surface configuration.
func (c *Context) Config() SurfaceConfig {
	return c.config
}

func (c *Context) Stats() FrameStats {
	return c.stats
}

// Resize reconfigures the surface to the new size. It must be called
// whenever the window reports a new size.
func (c *Context) Resize(width, height uint32) error {
	slog.Debug("Resize surface",
		slog.Int("width", int(width)),
		slog.Int("height", int(height)),
	)

	c.config.Width = width
	c.config.Height = height

	if err := c.configure(); err != nil {
		return fmt.Errorf("resize surface: %w", err)
	}

	return nil
}

// Refresh reconfigures the surface without changing its size. Some platforms
// invalidate the surface when the window is moved.
func (c *Context) Refresh() error {
	if err := c.configure(); err != nil {
		return fmt.Errorf("refresh surface: %w", err)
	}

	return nil
}

func (c *Context) configure() error {
	if c.config.Width == 0 || c.config.Height == 0 {
		// a minimized window, wait for the next resize
		c.configured = false
		return nil
	}

	if err := c.surface.Configure(c.device, c.config); err != nil {
		return err
	}

	c.configured = true

	return nil
}

// DrawFrame renders and presents one frame. If no frame could be acquired,
// the surface is reconfigured and the frame is skipped.
func (c *Context) DrawFrame() error {
	if !c.configured {
		c.stats.Skipped++
		return nil
	}

	frame, err := c.surface.AcquireFrame()
	if err != nil {
		return c.acquireFailed(err)
	}

	c.failures = 0

	// release the frame if we fail before presenting it
	frameGuard := NewReleaseGuard(frame)
	defer frameGuard.Release()

	pipeline, err := c.pipelines.Get(c.config.Format)
	if err != nil {
		return err
	}

	enc, err := c.device.CreateCommandEncoder("command_encoder")
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}

	defer enc.Release()

	pass, err := enc.BeginRenderPass(&RenderPassDescriptor{
		Label:      "triangle",
		Target:     frame,
		ClearColor: c.options.ClearColor,
	})
	if err != nil {
		return fmt.Errorf("begin render pass: %w", err)
	}

	pipeline.Bind(pass)
	pass.Draw(3, 1, 0, 0)

	if err := pass.End(); err != nil {
		return fmt.Errorf("end render pass: %w", err)
	}

	buf, err := enc.Finish("command_buffer")
	if err != nil {
		return fmt.Errorf("finish command buffer: %w", err)
	}

	defer buf.Release()

	c.queue.Submit(buf)

	if err := frame.Present(); err != nil {
		return fmt.Errorf("present frame: %w", err)
	}

	// we do not need to release the frame if present was successful
	frameGuard.Keep()

	c.stats.Presented++

	return nil
}

func (c *Context) acquireFailed(err error) error {
	var acquireErr *AcquireError
	if !errors.As(err, &acquireErr) {
		return fmt.Errorf("acquire frame: %w", err)
	}

	c.failures++
	c.stats.Skipped++
	if reason := int(acquireErr.Reason); reason >= 0 && reason < acquireFailureCount {
		c.stats.failures[reason]++
	}

	slog.Warn("Skip frame, surface not available",
		slog.String("reason", acquireErr.Reason.String()),
		slog.Int("consecutive", c.failures),
	)

	if limit := c.options.MaxConsecutiveFailures; limit > 0 && c.failures >= limit {
		return fmt.Errorf("%w after %d failed frames: %w", ErrSurfaceUnrecoverable, c.failures, err)
	}

	return c.Refresh()
}

// Release frees all gpu resources. The surface is released
// before the instance it was created from.
func (c *Context) Release() {
	if c.pipelines != nil {
		c.pipelines.Purge()
		c.pipelines = nil
	}

	release(c.queue, c.device, c.adapter, c.surface, c.instance)

	c.queue = nil
	c.device = nil
	c.adapter = nil
	c.surface = nil
	c.instance = nil
}
