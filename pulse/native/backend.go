// Package native implements the pulse backend interfaces on top of wgpu.
package native

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/oliverbestmann/triangle/pulse"
	"github.com/oliverbestmann/webgpu/wgpu"
)

func init() {
	runtime.LockOSThread()

	if level, ok := parseLogLevel(os.Getenv("WGPU_LOG_LEVEL")); ok {
		wgpu.SetLogLevel(level)
	}
}

func parseLogLevel(value string) (wgpu.LogLevel, bool) {
	switch strings.ToUpper(value) {
	case "OFF":
		return wgpu.LogLevelOff, true
	case "ERROR":
		return wgpu.LogLevelError, true
	case "WARN":
		return wgpu.LogLevelWarn, true
	case "INFO":
		return wgpu.LogLevelInfo, true
	case "DEBUG":
		return wgpu.LogLevelDebug, true
	case "TRACE":
		return wgpu.LogLevelTrace, true
	default:
		return 0, false
	}
}

// SurfaceSource is implemented by windows that can be rendered to.
type SurfaceSource interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
}

type Backend struct {
	source SurfaceSource
}

var _ pulse.Backend = (*Backend)(nil)

// New returns a backend that renders into the given window.
func New(source SurfaceSource) *Backend {
	return &Backend{source: source}
}

func (b *Backend) CreateInstance() (pulse.Instance, error) {
	inst := wgpu.CreateInstance(nil)
	if inst == nil {
		return nil, errors.New("wgpu returned no instance")
	}

	return &instance{inst: inst, source: b.source}, nil
}

type instance struct {
	inst   *wgpu.Instance
	source SurfaceSource
}

func (i *instance) CreateSurface() (pulse.Surface, error) {
	desc := i.source.SurfaceDescriptor()
	if desc == nil {
		return nil, errors.New("window provides no surface descriptor")
	}

	s := i.inst.CreateSurface(desc)
	if s == nil {
		return nil, errors.New("wgpu returned no surface")
	}

	return &surface{surface: s}, nil
}

func (i *instance) RequestAdapter(opts pulse.AdapterOptions) (pulse.Adapter, error) {
	var compatible *wgpu.Surface
	if s, ok := opts.CompatibleSurface.(*surface); ok {
		compatible = s.surface
	}

	a, err := i.inst.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference:      powerPreference(opts.PowerPreference),
		ForceFallbackAdapter: opts.ForceFallbackAdapter,
		CompatibleSurface:    compatible,
	})

	if err != nil {
		return nil, err
	}

	if a == nil {
		return nil, nil
	}

	return &adapter{adapter: a}, nil
}

func (i *instance) Release() {
	i.inst.Release()
}

type adapter struct {
	adapter *wgpu.Adapter
}

func (a *adapter) Info() pulse.AdapterInfo {
	info := a.adapter.GetInfo()

	return pulse.AdapterInfo{
		Name:    info.Name,
		Vendor:  info.VendorName,
		Backend: info.BackendType.String(),
	}
}

func (a *adapter) RequestDevice(label string) (pulse.Device, error) {
	d, err := a.adapter.RequestDevice(&wgpu.DeviceDescriptor{Label: label})
	if err != nil {
		return nil, err
	}

	return &device{device: d}, nil
}

func (a *adapter) Release() {
	a.adapter.Release()
}

type surface struct {
	surface *wgpu.Surface

	// first supported alpha mode, picked up from the capabilities
	alphaMode wgpu.CompositeAlphaMode
}

func (s *surface) Capabilities(a pulse.Adapter) pulse.SurfaceCapabilities {
	caps := s.surface.GetCapabilities(a.(*adapter).adapter)

	if len(caps.AlphaModes) > 0 {
		s.alphaMode = caps.AlphaModes[0]
	}

	var result pulse.SurfaceCapabilities

	for _, format := range caps.Formats {
		if converted, ok := fromTextureFormat(format); ok {
			result.Formats = append(result.Formats, converted)
		}
	}

	for _, mode := range caps.PresentModes {
		if converted, ok := fromPresentMode(mode); ok {
			result.PresentModes = append(result.PresentModes, converted)
		}
	}

	return result
}

func (s *surface) Configure(d pulse.Device, config pulse.SurfaceConfig) error {
	format, ok := toTextureFormat(config.Format)
	if !ok {
		return fmt.Errorf("unsupported surface format %s", config.Format)
	}

	usage := wgpu.TextureUsageRenderAttachment
	if config.Usage&pulse.TextureUsageCopySrc != 0 {
		usage |= wgpu.TextureUsageCopySrc
	}

	s.surface.Configure(d.(*device).device, &wgpu.SurfaceConfiguration{
		Usage:                      usage,
		Format:                     format,
		Width:                      config.Width,
		Height:                     config.Height,
		PresentMode:                toPresentMode(config.PresentMode),
		AlphaMode:                  s.alphaMode,
		DesiredMaximumFrameLatency: config.FrameLatency,
	})

	return nil
}

func (s *surface) AcquireFrame() (pulse.Frame, error) {
	tex, err := s.surface.GetCurrentTexture()
	if err != nil {
		if reason, ok := classifyAcquireError(err); ok {
			return nil, &pulse.AcquireError{Reason: reason, Err: err}
		}

		return nil, err
	}

	return &frame{surface: s.surface, texture: tex}, nil
}

func (s *surface) Release() {
	s.surface.Release()
}

// classifyAcquireError maps the status wgpu reports for a failed
// GetCurrentTexture call to a recoverable failure.
func classifyAcquireError(err error) (pulse.AcquireFailure, bool) {
	message := err.Error()

	switch {
	case strings.Contains(message, "Timeout"):
		return pulse.AcquireTimeout, true
	case strings.Contains(message, "Outdated"):
		return pulse.AcquireOutdated, true
	case strings.Contains(message, "Lost"):
		// includes DeviceLost
		return pulse.AcquireLost, true
	case strings.Contains(message, "OutOfMemory"):
		return pulse.AcquireOutOfMemory, true
	default:
		return 0, false
	}
}

type frame struct {
	surface *wgpu.Surface
	texture *wgpu.Texture
}

func (f *frame) Present() error {
	f.surface.Present()
	return nil
}

func (f *frame) Release() {
	f.texture.Release()
}
