package pulse

// The interfaces in this file describe the subset of a gpu api the Context
// drives. The wgpu implementation lives in package native, an in memory
// implementation for tests in package pulsetest.

type Backend interface {
	CreateInstance() (Instance, error)
}

type Instance interface {
	Releaser

	// CreateSurface creates the surface for the window the backend was built for.
	CreateSurface() (Surface, error)

	// RequestAdapter returns an adapter that can render to opts.CompatibleSurface.
	// It returns a nil Adapter if no such adapter exists.
	RequestAdapter(opts AdapterOptions) (Adapter, error)
}

type AdapterOptions struct {
	PowerPreference      PowerPreference
	ForceFallbackAdapter bool
	CompatibleSurface    Surface
}

type AdapterInfo struct {
	Name    string
	Vendor  string
	Backend string
}

type Adapter interface {
	Releaser

	Info() AdapterInfo
	RequestDevice(label string) (Device, error)
}

type SurfaceCapabilities struct {
	Formats      []TextureFormat
	PresentModes []PresentMode
}

type Surface interface {
	Releaser

	Capabilities(adapter Adapter) SurfaceCapabilities
	Configure(device Device, config SurfaceConfig) error

	// AcquireFrame returns the next image to render to. Recoverable
	// failures are reported as *AcquireError.
	AcquireFrame() (Frame, error)
}

// Frame is an acquired surface image. It must either be presented
// or released, never both.
type Frame interface {
	Releaser
	Present() error
}

type Device interface {
	Releaser

	Queue() Queue

	CreateShaderModule(label string, source string) (ShaderModule, error)

	// CreateBindGroupLayout creates a layout without any entries.
	CreateBindGroupLayout(label string) (BindGroupLayout, error)
	CreateBindGroup(label string, layout BindGroupLayout) (BindGroup, error)

	CreateRenderPipeline(desc *RenderPipelineDescriptor) (RenderPipeline, error)
	CreateCommandEncoder(label string) (CommandEncoder, error)
}

type Queue interface {
	Releaser
	Submit(buffers ...CommandBuffer)
}

type CommandEncoder interface {
	Releaser

	BeginRenderPass(desc *RenderPassDescriptor) (RenderPass, error)
	Finish(label string) (CommandBuffer, error)
}

type RenderPassDescriptor struct {
	Label string

	// Target is cleared to ClearColor when the pass begins.
	Target     Frame
	ClearColor Color
}

type RenderPass interface {
	SetPipeline(pipeline RenderPipeline)
	SetBindGroup(index uint32, group BindGroup)
	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32)
	End() error
}

type ShaderModule interface{ Releaser }
type BindGroupLayout interface{ Releaser }
type BindGroup interface{ Releaser }
type RenderPipeline interface{ Releaser }
type CommandBuffer interface{ Releaser }

type PrimitiveTopology int

const (
	PrimitiveTopologyTriangleList PrimitiveTopology = iota
	PrimitiveTopologyTriangleStrip
	PrimitiveTopologyLineList
	PrimitiveTopologyPointList
)

type FrontFace int

const (
	FrontFaceCCW FrontFace = iota
	FrontFaceCW
)

type CullMode int

const (
	CullModeNone CullMode = iota
	CullModeFront
	CullModeBack
)

type PolygonMode int

const (
	PolygonModeFill PolygonMode = iota
	PolygonModeLine
	PolygonModePoint
)

type BlendMode int

const (
	// BlendNone writes the fragment color as is, the output is opaque.
	BlendNone BlendMode = iota
	BlendAlpha
	BlendPremultipliedAlpha
)

type ColorWriteMask uint32

const (
	ColorWriteMaskRed ColorWriteMask = 1 << iota
	ColorWriteMaskGreen
	ColorWriteMaskBlue
	ColorWriteMaskAlpha

	ColorWriteMaskAll = ColorWriteMaskRed | ColorWriteMaskGreen | ColorWriteMaskBlue | ColorWriteMaskAlpha
)

type PrimitiveState struct {
	Topology    PrimitiveTopology
	FrontFace   FrontFace
	CullMode    CullMode
	PolygonMode PolygonMode
}

type MultisampleState struct {
	Count                  uint32
	Mask                   uint32
	AlphaToCoverageEnabled bool
}

type ColorTargetState struct {
	Format    TextureFormat
	Blend     BlendMode
	WriteMask ColorWriteMask
}

// RenderPipelineDescriptor describes a pipeline without vertex buffers
// and without a depth or stencil attachment.
type RenderPipelineDescriptor struct {
	Label string

	Module             ShaderModule
	VertexEntryPoint   string
	FragmentEntryPoint string

	BindGroupLayouts []BindGroupLayout

	Primitive   PrimitiveState
	Multisample MultisampleState
	Target      ColorTargetState
}
