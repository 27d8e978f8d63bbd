// Package pulsetest provides an in memory pulse.Backend that records every
// call made against it. Failures can be injected to exercise error paths.
package pulsetest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/oliverbestmann/triangle/pulse"
)

// Backend is a fake gpu. Configure the exported fields before passing
// it to pulse.New and inspect them afterwards.
type Backend struct {
	// Calls records every call in order, e.g. "CreateInstance" or "Release Surface".
	Calls []string

	InstanceErr error
	SurfaceErr  error
	AdapterErr  error
	DeviceErr   error
	ShaderErr   error
	PipelineErr error
	ConfigErr   error

	// NoAdapter makes RequestAdapter return a nil adapter without error.
	NoAdapter bool

	Formats      []pulse.TextureFormat
	PresentModes []pulse.PresentMode

	// AcquireErrors are returned by consecutive calls to AcquireFrame.
	// A nil entry or an exhausted list acquires a frame successfully.
	AcquireErrors []error

	AdapterOptions []pulse.AdapterOptions
	Configurations []pulse.SurfaceConfig
	Pipelines      []pulse.RenderPipelineDescriptor
	Passes         []*RenderPass

	Submitted int
	Presented int
}

var _ pulse.Backend = (*Backend)(nil)

func New() *Backend {
	return &Backend{
		Formats: []pulse.TextureFormat{
			pulse.TextureFormatBGRA8Unorm,
			pulse.TextureFormatBGRA8UnormSrgb,
		},
		PresentModes: []pulse.PresentMode{
			pulse.PresentModeFifo,
			pulse.PresentModeImmediate,
		},
	}
}

// LastConfiguration returns the config of the most recent Configure call.
func (b *Backend) LastConfiguration() (pulse.SurfaceConfig, bool) {
	if len(b.Configurations) == 0 {
		return pulse.SurfaceConfig{}, false
	}

	return b.Configurations[len(b.Configurations)-1], true
}

// Released returns the names of all released handles, in order.
func (b *Backend) Released() []string {
	var released []string
	for _, call := range b.Calls {
		if name, ok := strings.CutPrefix(call, "Release "); ok {
			released = append(released, name)
		}
	}

	return released
}

func (b *Backend) record(format string, args ...any) {
	b.Calls = append(b.Calls, fmt.Sprintf(format, args...))
}

func (b *Backend) CreateInstance() (pulse.Instance, error) {
	b.record("CreateInstance")

	if b.InstanceErr != nil {
		return nil, b.InstanceErr
	}

	return &instance{handle{b, "Instance"}}, nil
}

type handle struct {
	backend *Backend
	name    string
}

func (h *handle) Release() {
	h.backend.record("Release %s", h.name)
}

type instance struct{ handle }

func (i *instance) CreateSurface() (pulse.Surface, error) {
	i.backend.record("CreateSurface")

	if i.backend.SurfaceErr != nil {
		return nil, i.backend.SurfaceErr
	}

	return &surface{handle{i.backend, "Surface"}}, nil
}

func (i *instance) RequestAdapter(opts pulse.AdapterOptions) (pulse.Adapter, error) {
	b := i.backend
	b.record("RequestAdapter")
	b.AdapterOptions = append(b.AdapterOptions, opts)

	switch {
	case b.AdapterErr != nil:
		return nil, b.AdapterErr
	case b.NoAdapter:
		return nil, nil
	}

	return &adapter{handle{b, "Adapter"}}, nil
}

type adapter struct{ handle }

func (a *adapter) Info() pulse.AdapterInfo {
	return pulse.AdapterInfo{Name: "fake", Vendor: "pulsetest", Backend: "memory"}
}

func (a *adapter) RequestDevice(label string) (pulse.Device, error) {
	a.backend.record("RequestDevice")

	if a.backend.DeviceErr != nil {
		return nil, a.backend.DeviceErr
	}

	return &device{handle{a.backend, "Device"}}, nil
}

type surface struct{ handle }

func (s *surface) Capabilities(adapter pulse.Adapter) pulse.SurfaceCapabilities {
	s.backend.record("Capabilities")

	return pulse.SurfaceCapabilities{
		Formats:      s.backend.Formats,
		PresentModes: s.backend.PresentModes,
	}
}

func (s *surface) Configure(device pulse.Device, config pulse.SurfaceConfig) error {
	b := s.backend
	b.record("Configure %dx%d", config.Width, config.Height)

	if b.ConfigErr != nil {
		return b.ConfigErr
	}

	b.Configurations = append(b.Configurations, config)

	return nil
}

func (s *surface) AcquireFrame() (pulse.Frame, error) {
	b := s.backend
	b.record("AcquireFrame")

	if len(b.AcquireErrors) > 0 {
		err := b.AcquireErrors[0]
		b.AcquireErrors = b.AcquireErrors[1:]

		if err != nil {
			return nil, err
		}
	}

	return &Frame{handle: handle{b, "Frame"}}, nil
}

// Frame is the fake surface image handed out by AcquireFrame.
type Frame struct {
	handle
	Presented bool
}

func (f *Frame) Present() error {
	f.backend.record("Present")
	f.backend.Presented++
	f.Presented = true
	return nil
}

type device struct{ handle }

func (d *device) Queue() pulse.Queue {
	d.backend.record("Queue")
	return &queue{handle{d.backend, "Queue"}}
}

func (d *device) CreateShaderModule(label string, source string) (pulse.ShaderModule, error) {
	d.backend.record("CreateShaderModule")

	if d.backend.ShaderErr != nil {
		return nil, d.backend.ShaderErr
	}

	if source == "" {
		return nil, errors.New("empty shader source")
	}

	return &handle{d.backend, "ShaderModule"}, nil
}

func (d *device) CreateBindGroupLayout(label string) (pulse.BindGroupLayout, error) {
	d.backend.record("CreateBindGroupLayout")
	return &handle{d.backend, "BindGroupLayout"}, nil
}

func (d *device) CreateBindGroup(label string, layout pulse.BindGroupLayout) (pulse.BindGroup, error) {
	d.backend.record("CreateBindGroup")
	return &BindGroup{handle{d.backend, "BindGroup"}}, nil
}

func (d *device) CreateRenderPipeline(desc *pulse.RenderPipelineDescriptor) (pulse.RenderPipeline, error) {
	b := d.backend
	b.record("CreateRenderPipeline %s", desc.Target.Format)

	if b.PipelineErr != nil {
		return nil, b.PipelineErr
	}

	b.Pipelines = append(b.Pipelines, *desc)

	return &RenderPipeline{handle: handle{b, "RenderPipeline"}, Format: desc.Target.Format}, nil
}

func (d *device) CreateCommandEncoder(label string) (pulse.CommandEncoder, error) {
	d.backend.record("CreateCommandEncoder")
	return &encoder{handle{d.backend, "CommandEncoder"}}, nil
}

// RenderPipeline is the fake pipeline handle, Format is the target format it
// was built for.
type RenderPipeline struct {
	handle
	Format pulse.TextureFormat
}

type BindGroup struct{ handle }

type queue struct{ handle }

func (q *queue) Submit(buffers ...pulse.CommandBuffer) {
	q.backend.record("Submit")
	q.backend.Submitted += len(buffers)
}

type encoder struct{ handle }

func (e *encoder) BeginRenderPass(desc *pulse.RenderPassDescriptor) (pulse.RenderPass, error) {
	e.backend.record("BeginRenderPass")

	pass := &RenderPass{backend: e.backend, Descriptor: *desc}
	e.backend.Passes = append(e.backend.Passes, pass)

	return pass, nil
}

func (e *encoder) Finish(label string) (pulse.CommandBuffer, error) {
	e.backend.record("Finish")
	return &handle{e.backend, "CommandBuffer"}, nil
}

type DrawCall struct {
	VertexCount, InstanceCount, FirstVertex, FirstInstance uint32
}

// RenderPass records the commands encoded into it.
type RenderPass struct {
	backend *Backend

	Descriptor pulse.RenderPassDescriptor

	// Commands lists the encoded commands in order, e.g. "SetPipeline" or "Draw".
	Commands []string

	Pipeline   pulse.RenderPipeline
	BindGroups map[uint32]pulse.BindGroup
	Draws      []DrawCall
	Ended      bool
}

func (p *RenderPass) SetPipeline(pipeline pulse.RenderPipeline) {
	p.Commands = append(p.Commands, "SetPipeline")
	p.Pipeline = pipeline
}

func (p *RenderPass) SetBindGroup(index uint32, group pulse.BindGroup) {
	p.Commands = append(p.Commands, fmt.Sprintf("SetBindGroup %d", index))

	if p.BindGroups == nil {
		p.BindGroups = map[uint32]pulse.BindGroup{}
	}

	p.BindGroups[index] = group
}

func (p *RenderPass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	p.Commands = append(p.Commands, "Draw")
	p.Draws = append(p.Draws, DrawCall{vertexCount, instanceCount, firstVertex, firstInstance})
}

func (p *RenderPass) End() error {
	p.Commands = append(p.Commands, "End")

	if p.Ended {
		return errors.New("render pass already ended")
	}

	p.Ended = true
	return nil
}
