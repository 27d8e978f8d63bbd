package pulse

import (
	_ "embed"
	"fmt"
)

//go:embed triangle.wgsl
var triangleShaderSource string

const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// DefaultShaderSource returns the wgsl source of the triangle shader. The
// geometry and color are generated in the shader from the vertex index.
func DefaultShaderSource() string {
	return triangleShaderSource
}

// Pipeline is an immutable render pipeline together with its (empty)
// resource bindings.
type Pipeline struct {
	format TextureFormat

	shader    ShaderModule
	layout    BindGroupLayout
	bindGroup BindGroup
	pipeline  RenderPipeline
}

// TrianglePipelineDescriptor returns the fixed function state of the triangle
// pipeline: triangle list, ccw front face with front faces culled, a single
// sample, no blending and no depth or stencil.
func TrianglePipelineDescriptor(format TextureFormat) RenderPipelineDescriptor {
	return RenderPipelineDescriptor{
		Label:              "triangle",
		VertexEntryPoint:   VertexEntryPoint,
		FragmentEntryPoint: FragmentEntryPoint,

		Primitive: PrimitiveState{
			Topology:    PrimitiveTopologyTriangleList,
			FrontFace:   FrontFaceCCW,
			CullMode:    CullModeFront,
			PolygonMode: PolygonModeFill,
		},

		Multisample: MultisampleState{
			Count: 1,
			Mask:  0xffffffff,
		},

		Target: ColorTargetState{
			Format:    format,
			Blend:     BlendNone,
			WriteMask: ColorWriteMaskAll,
		},
	}
}

// BuildPipeline compiles the shader source and builds a pipeline
// rendering into textures of the given format.
func BuildPipeline(device Device, format TextureFormat, source string) (p *Pipeline, err error) {
	p = &Pipeline{format: format}

	defer func() {
		if err != nil {
			p.Release()
			p = nil
		}
	}()

	p.shader, err = device.CreateShaderModule("shader", source)
	if err != nil {
		return p, fmt.Errorf("compile shader: %w", err)
	}

	p.layout, err = device.CreateBindGroupLayout("bind_group_layout")
	if err != nil {
		return p, fmt.Errorf("create bind group layout: %w", err)
	}

	p.bindGroup, err = device.CreateBindGroup("bind_group", p.layout)
	if err != nil {
		return p, fmt.Errorf("create bind group: %w", err)
	}

	desc := TrianglePipelineDescriptor(format)
	desc.Module = p.shader
	desc.BindGroupLayouts = []BindGroupLayout{p.layout}

	p.pipeline, err = device.CreateRenderPipeline(&desc)
	if err != nil {
		return p, fmt.Errorf("create render pipeline: %w", err)
	}

	return p, nil
}

func (p *Pipeline) Format() TextureFormat {
	return p.format
}

// Bind attaches the pipeline and its bind group to the pass. It must be
// called before issuing draw calls.
func (p *Pipeline) Bind(pass RenderPass) {
	pass.SetPipeline(p.pipeline)
	pass.SetBindGroup(0, p.bindGroup)
}

func (p *Pipeline) Release() {
	release(p.pipeline, p.bindGroup, p.layout, p.shader)

	p.pipeline = nil
	p.bindGroup = nil
	p.layout = nil
	p.shader = nil
}
