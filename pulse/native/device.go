package native

import (
	"fmt"

	"github.com/oliverbestmann/triangle/pulse"
	"github.com/oliverbestmann/webgpu/wgpu"
)

type device struct {
	device *wgpu.Device
}

func (d *device) Queue() pulse.Queue {
	return &queue{queue: d.device.GetQueue()}
}

func (d *device) CreateShaderModule(label string, source string) (pulse.ShaderModule, error) {
	module, err := d.device.TryCreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:      label,
		WGSLSource: &wgpu.ShaderSourceWGSL{Code: source},
	})

	if err != nil {
		return nil, err
	}

	return module, nil
}

func (d *device) CreateBindGroupLayout(label string) (pulse.BindGroupLayout, error) {
	return d.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: label,
	}), nil
}

func (d *device) CreateBindGroup(label string, layout pulse.BindGroupLayout) (pulse.BindGroup, error) {
	return d.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label,
		Layout: layout.(*wgpu.BindGroupLayout),
	}), nil
}

func (d *device) CreateRenderPipeline(desc *pulse.RenderPipelineDescriptor) (pulse.RenderPipeline, error) {
	if desc.Primitive.PolygonMode != pulse.PolygonModeFill {
		return nil, fmt.Errorf("polygon mode %d is not supported", desc.Primitive.PolygonMode)
	}

	format, ok := toTextureFormat(desc.Target.Format)
	if !ok {
		return nil, fmt.Errorf("unsupported target format %s", desc.Target.Format)
	}

	var layouts []*wgpu.BindGroupLayout
	for _, layout := range desc.BindGroupLayouts {
		layouts = append(layouts, layout.(*wgpu.BindGroupLayout))
	}

	pipelineLayout := d.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            desc.Label,
		BindGroupLayouts: layouts,
	})

	// the pipeline keeps its own reference to the layout
	defer pipelineLayout.Release()

	module := desc.Module.(*wgpu.ShaderModule)

	pipeline, err := d.device.TryCreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  desc.Label,
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: desc.VertexEntryPoint,
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: desc.FragmentEntryPoint,
			Targets: []wgpu.ColorTargetState{
				{
					Format:    format,
					Blend:     blendState(desc.Target.Blend),
					WriteMask: wgpu.ColorWriteMask(desc.Target.WriteMask),
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  toTopology(desc.Primitive.Topology),
			FrontFace: toFrontFace(desc.Primitive.FrontFace),
			CullMode:  toCullMode(desc.Primitive.CullMode),
		},
		Multisample: wgpu.MultisampleState{
			Count:                  desc.Multisample.Count,
			Mask:                   desc.Multisample.Mask,
			AlphaToCoverageEnabled: desc.Multisample.AlphaToCoverageEnabled,
		},
	})

	if err != nil {
		return nil, err
	}

	return pipeline, nil
}

func (d *device) CreateCommandEncoder(label string) (pulse.CommandEncoder, error) {
	enc := d.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: label})
	return &encoder{encoder: enc}, nil
}

func (d *device) Release() {
	d.device.Release()
}

type queue struct {
	queue *wgpu.Queue
}

func (q *queue) Submit(buffers ...pulse.CommandBuffer) {
	converted := make([]*wgpu.CommandBuffer, 0, len(buffers))
	for _, buf := range buffers {
		converted = append(converted, buf.(*wgpu.CommandBuffer))
	}

	q.queue.Submit(converted...)
}

func (q *queue) Release() {
	q.queue.Release()
}

type encoder struct {
	encoder *wgpu.CommandEncoder
}

func (e *encoder) BeginRenderPass(desc *pulse.RenderPassDescriptor) (pulse.RenderPass, error) {
	target, ok := desc.Target.(*frame)
	if !ok {
		return nil, fmt.Errorf("can not render to %T", desc.Target)
	}

	view := target.texture.CreateView(nil)

	r, g, b, a := desc.ClearColor.Components()

	pass := e.encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: desc.Label,
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    view,
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: wgpu.StoreOpStore,
				ClearValue: wgpu.Color{
					R: float64(r),
					G: float64(g),
					B: float64(b),
					A: float64(a),
				},
			},
		},
	})

	return &renderPass{pass: pass, view: view}, nil
}

func (e *encoder) Finish(label string) (pulse.CommandBuffer, error) {
	return e.encoder.Finish(&wgpu.CommandBufferDescriptor{Label: label}), nil
}

func (e *encoder) Release() {
	e.encoder.Release()
}

type renderPass struct {
	pass *wgpu.RenderPassEncoder
	view *wgpu.TextureView
}

func (p *renderPass) SetPipeline(pipeline pulse.RenderPipeline) {
	p.pass.SetPipeline(pipeline.(*wgpu.RenderPipeline))
}

func (p *renderPass) SetBindGroup(index uint32, group pulse.BindGroup) {
	p.pass.SetBindGroup(index, group.(*wgpu.BindGroup), nil)
}

func (p *renderPass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	p.pass.Draw(vertexCount, instanceCount, firstVertex, firstInstance)
}

func (p *renderPass) End() error {
	err := p.pass.End()

	// must release pass before finishing the encoder
	p.pass.Release()
	p.view.Release()

	return err
}
