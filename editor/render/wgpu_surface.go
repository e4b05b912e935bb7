package render

import (
	"encoding/binary"
	"fmt"
	"image"
	"math"
	"runtime"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/quarry3d/quarry/common"
	"github.com/quarry3d/quarry/editor/node"
)

const (
	// maxInstances caps the per-frame instance storage buffer. The editor
	// draws one box per visible bounded node, so this is generous.
	maxInstances = 1024

	// instanceStride is the packed size of one instance: mat4x4<f32> + vec4<f32>.
	instanceStride = 80

	// readbackAlign is the WebGPU row-pitch alignment for texture-to-buffer copies.
	readbackAlign = 256
)

const boxShaderSource = `
struct Scene {
	view_proj: mat4x4<f32>,
};

struct Instance {
	model: mat4x4<f32>,
	color: vec4<f32>,
};

@group(0) @binding(0) var<uniform> scene: Scene;
@group(0) @binding(1) var<storage, read> instances: array<Instance>;

struct VSOut {
	@builtin(position) position: vec4<f32>,
	@location(0) color: vec4<f32>,
	@location(1) normal: vec3<f32>,
};

@vertex
fn vs_main(
	@location(0) position: vec3<f32>,
	@location(1) normal: vec3<f32>,
	@builtin(instance_index) idx: u32,
) -> VSOut {
	let inst = instances[idx];
	var out: VSOut;
	out.position = scene.view_proj * inst.model * vec4<f32>(position, 1.0);
	out.color = inst.color;
	out.normal = normal;
	return out;
}

@fragment
fn fs_main(in: VSOut) -> @location(0) vec4<f32> {
	let light = normalize(vec3<f32>(0.4, 0.8, 0.6));
	let shade = 0.35 + 0.65 * max(dot(normalize(in.normal), light), 0.0);
	return vec4<f32>(in.color.rgb * shade, in.color.a);
}
`

// Unit cube centered at the origin, one face per normal.
var boxVertices = []float32{
	// position          normal
	-0.5, -0.5, 0.5, 0, 0, 1,
	0.5, -0.5, 0.5, 0, 0, 1,
	0.5, 0.5, 0.5, 0, 0, 1,
	-0.5, 0.5, 0.5, 0, 0, 1,

	0.5, -0.5, -0.5, 0, 0, -1,
	-0.5, -0.5, -0.5, 0, 0, -1,
	-0.5, 0.5, -0.5, 0, 0, -1,
	0.5, 0.5, -0.5, 0, 0, -1,

	0.5, -0.5, 0.5, 1, 0, 0,
	0.5, -0.5, -0.5, 1, 0, 0,
	0.5, 0.5, -0.5, 1, 0, 0,
	0.5, 0.5, 0.5, 1, 0, 0,

	-0.5, -0.5, -0.5, -1, 0, 0,
	-0.5, -0.5, 0.5, -1, 0, 0,
	-0.5, 0.5, 0.5, -1, 0, 0,
	-0.5, 0.5, -0.5, -1, 0, 0,

	-0.5, 0.5, 0.5, 0, 1, 0,
	0.5, 0.5, 0.5, 0, 1, 0,
	0.5, 0.5, -0.5, 0, 1, 0,
	-0.5, 0.5, -0.5, 0, 1, 0,

	-0.5, -0.5, -0.5, 0, -1, 0,
	0.5, -0.5, -0.5, 0, -1, 0,
	0.5, -0.5, 0.5, 0, -1, 0,
	-0.5, -0.5, 0.5, 0, -1, 0,
}

var boxIndices = []uint32{
	0, 1, 2, 0, 2, 3,
	4, 5, 6, 4, 6, 7,
	8, 9, 10, 8, 10, 11,
	12, 13, 14, 12, 14, 15,
	16, 17, 18, 16, 18, 19,
	20, 21, 22, 20, 22, 23,
}

type wgpuSurfaceImpl struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface // nil for an offscreen-only surface

	format wgpu.TextureFormat
	width  int
	height int

	clearColor           wgpu.Color
	forceFallbackAdapter bool
	surfaceDescriptor    *wgpu.SurfaceDescriptor

	depthView *wgpu.TextureView

	pipeline       *wgpu.RenderPipeline
	sceneBuffer    *wgpu.Buffer
	instanceBuffer *wgpu.Buffer
	bindGroup      *wgpu.BindGroup
	vertexBuffer   *wgpu.Buffer
	indexBuffer    *wgpu.Buffer

	// Offscreen color target, created lazily for snapshots and for
	// surfaces constructed without a window.
	targetTexture *wgpu.Texture
	targetView    *wgpu.TextureView

	disposed bool
}

var _ Surface = &wgpuSurfaceImpl{}

// NewSurface creates a WebGPU-backed Surface. With a surface descriptor it
// presents to that native surface; without one it renders offscreen only,
// which is enough for snapshots and headless use.
//
// Parameters:
//   - options: functional options to configure the surface
//
// Returns:
//   - Surface: the newly created surface
//   - error: an error if no adapter or device could be acquired
func NewSurface(options ...SurfaceBuilderOption) (Surface, error) {
	runtime.LockOSThread()
	s := &wgpuSurfaceImpl{
		mu:         &sync.Mutex{},
		width:      800,
		height:     600,
		format:     wgpu.TextureFormatRGBA8Unorm,
		clearColor: wgpu.Color{R: 0.1, G: 0.1, B: 0.12, A: 1.0},
	}

	for _, option := range options {
		option(s)
	}

	s.instance = wgpu.CreateInstance(nil)
	if s.surfaceDescriptor != nil {
		s.surface = s.instance.CreateSurface(s.surfaceDescriptor)
	}

	adapter, err := s.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: s.forceFallbackAdapter,
		CompatibleSurface:    s.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to acquire adapter: %w", err)
	}
	s.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Editor Device",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to acquire device: %w", err)
	}
	s.device = device
	s.queue = device.GetQueue()

	if s.surface != nil {
		capabilities := s.surface.GetCapabilities(s.adapter)
		s.format = capabilities.Formats[0]
	}

	if err := s.initPipeline(); err != nil {
		return nil, err
	}
	s.configure(s.width, s.height)

	return s, nil
}

func (s *wgpuSurfaceImpl) Width() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width
}

func (s *wgpuSurfaceImpl) Height() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.height
}

func (s *wgpuSurfaceImpl) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed || width <= 0 || height <= 0 {
		return
	}
	s.configure(width, height)
}

func (s *wgpuSurfaceImpl) Render(root node.Node, cam node.CameraNode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return fmt.Errorf("surface disposed")
	}
	if root == nil || cam == nil {
		return fmt.Errorf("render requires a root node and a camera")
	}

	if s.surface == nil {
		// Offscreen-only: draw into the internal target.
		if err := s.ensureTargetLocked(); err != nil {
			return err
		}
		return s.encodeLocked(s.targetView, root, cam)
	}

	surfaceTexture, err := s.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("failed to acquire surface texture: %w", err)
	}
	defer surfaceTexture.Release()

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("failed to create surface view: %w", err)
	}
	defer view.Release()

	if err := s.encodeLocked(view, root, cam); err != nil {
		return err
	}
	s.surface.Present()
	return nil
}

func (s *wgpuSurfaceImpl) Snapshot(root node.Node, cam node.CameraNode) (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return nil, fmt.Errorf("surface disposed")
	}
	if root == nil || cam == nil {
		return nil, fmt.Errorf("snapshot requires a root node and a camera")
	}

	if err := s.ensureTargetLocked(); err != nil {
		return nil, err
	}
	if err := s.encodeLocked(s.targetView, root, cam); err != nil {
		return nil, err
	}
	return s.readbackLocked()
}

func (s *wgpuSurfaceImpl) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return
	}
	s.disposed = true

	s.releaseTargetLocked()
	if s.depthView != nil {
		s.depthView.Release()
		s.depthView = nil
	}
	if s.vertexBuffer != nil {
		s.vertexBuffer.Release()
	}
	if s.indexBuffer != nil {
		s.indexBuffer.Release()
	}
	if s.sceneBuffer != nil {
		s.sceneBuffer.Release()
	}
	if s.instanceBuffer != nil {
		s.instanceBuffer.Release()
	}
	if s.bindGroup != nil {
		s.bindGroup.Release()
	}
	if s.pipeline != nil {
		s.pipeline.Release()
	}
	if s.device != nil {
		s.device.Release()
	}
	if s.adapter != nil {
		s.adapter.Release()
	}
	if s.surface != nil {
		s.surface.Release()
	}
	if s.instance != nil {
		s.instance.Release()
	}
}

func (s *wgpuSurfaceImpl) initPipeline() error {
	module, err := s.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "Box Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: boxShaderSource,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create shader module: %w", err)
	}
	defer module.Release()

	layout, err := s.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Scene Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: 64,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeReadOnlyStorage,
					MinBindingSize: instanceStride,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create bind group layout: %w", err)
	}

	pipelineLayout, err := s.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Box Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{layout},
	})
	if err != nil {
		return fmt.Errorf("failed to create pipeline layout: %w", err)
	}

	s.pipeline, err = s.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Box Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: 24,
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
						{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    s.format,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeBack,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create render pipeline: %w", err)
	}

	s.vertexBuffer, err = s.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Box Vertex Buffer",
		Contents: packFloats(boxVertices),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		return fmt.Errorf("failed to create vertex buffer: %w", err)
	}

	s.indexBuffer, err = s.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Box Index Buffer",
		Contents: packUints(boxIndices),
		Usage:    wgpu.BufferUsageIndex,
	})
	if err != nil {
		return fmt.Errorf("failed to create index buffer: %w", err)
	}

	s.sceneBuffer, err = s.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Scene Uniform Buffer",
		Size:  64,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("failed to create uniform buffer: %w", err)
	}

	s.instanceBuffer, err = s.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Instance Buffer",
		Size:  maxInstances * instanceStride,
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("failed to create instance buffer: %w", err)
	}

	s.bindGroup, err = s.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Scene Bind Group",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: s.sceneBuffer, Offset: 0, Size: wgpu.WholeSize},
			{Binding: 1, Buffer: s.instanceBuffer, Offset: 0, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create bind group: %w", err)
	}

	return nil
}

// configure (re)configures the presented surface and depth texture for the
// given pixel dimensions. Caller must hold the mutex.
func (s *wgpuSurfaceImpl) configure(width, height int) {
	s.width = width
	s.height = height

	if s.surface != nil {
		capabilities := s.surface.GetCapabilities(s.adapter)
		s.surface.Configure(s.adapter, s.device, &wgpu.SurfaceConfiguration{
			Usage:       wgpu.TextureUsageRenderAttachment,
			Format:      s.format,
			Width:       uint32(width),
			Height:      uint32(height),
			PresentMode: wgpu.PresentModeFifo,
			AlphaMode:   capabilities.AlphaModes[0],
		})
	}

	if s.depthView != nil {
		s.depthView.Release()
		s.depthView = nil
	}
	depthTexture, err := s.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err == nil {
		s.depthView, err = depthTexture.CreateView(nil)
		if err != nil {
			s.depthView = nil
		}
	}

	// The offscreen target is sized to the surface; rebuild lazily.
	s.releaseTargetLocked()
}

// ensureTargetLocked creates the offscreen color target if missing. Caller
// must hold the mutex.
func (s *wgpuSurfaceImpl) ensureTargetLocked() error {
	if s.targetView != nil {
		return nil
	}
	texture, err := s.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Capture Target",
		Size: wgpu.Extent3D{
			Width:              uint32(s.width),
			Height:             uint32(s.height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        s.format,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("failed to create capture target: %w", err)
	}
	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return fmt.Errorf("failed to create capture view: %w", err)
	}
	s.targetTexture = texture
	s.targetView = view
	return nil
}

func (s *wgpuSurfaceImpl) releaseTargetLocked() {
	if s.targetView != nil {
		s.targetView.Release()
		s.targetView = nil
	}
	if s.targetTexture != nil {
		s.targetTexture.Release()
		s.targetTexture = nil
	}
}

// encodeLocked writes the frame's uniforms and instances, encodes one render
// pass into the given view, and submits it. Caller must hold the mutex.
func (s *wgpuSurfaceImpl) encodeLocked(view *wgpu.TextureView, root node.Node, cam node.CameraNode) error {
	if s.depthView == nil {
		return fmt.Errorf("no depth target configured")
	}

	proj := cam.ProjectionMatrix()
	viewMat := cam.ViewMatrix()
	var viewProj [16]float32
	common.Mul4(viewProj[:], proj[:], viewMat[:])
	s.queue.WriteBuffer(s.sceneBuffer, 0, packMatrix(viewProj))

	instances, count := collectInstances(root)
	if count > 0 {
		s.queue.WriteBuffer(s.instanceBuffer, 0, instances)
	}

	encoder, err := s.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("failed to create command encoder: %w", err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: s.clearColor,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            s.depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	})

	if count > 0 {
		pass.SetPipeline(s.pipeline)
		pass.SetBindGroup(0, s.bindGroup, nil)
		pass.SetVertexBuffer(0, s.vertexBuffer, 0, wgpu.WholeSize)
		pass.SetIndexBuffer(s.indexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
		pass.DrawIndexed(uint32(len(boxIndices)), uint32(count), 0, 0, 0)
	}
	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("failed to finish command encoder: %w", err)
	}
	defer commandBuffer.Release()

	s.queue.Submit(commandBuffer)
	return nil
}

// readbackLocked copies the offscreen target into a mappable buffer and
// decodes it into an image. Caller must hold the mutex.
func (s *wgpuSurfaceImpl) readbackLocked() (image.Image, error) {
	paddedRow := (4*s.width + readbackAlign - 1) &^ (readbackAlign - 1)
	size := uint64(paddedRow * s.height)

	buffer, err := s.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Readback Buffer",
		Size:  size,
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readback buffer: %w", err)
	}
	defer buffer.Release()

	encoder, err := s.device.CreateCommandEncoder(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create command encoder: %w", err)
	}
	defer encoder.Release()

	encoder.CopyTextureToBuffer(
		&wgpu.ImageCopyTexture{
			Texture:  s.targetTexture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		&wgpu.ImageCopyBuffer{
			Buffer: buffer,
			Layout: wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  uint32(paddedRow),
				RowsPerImage: uint32(s.height),
			},
		},
		&wgpu.Extent3D{
			Width:              uint32(s.width),
			Height:             uint32(s.height),
			DepthOrArrayLayers: 1,
		},
	)

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to finish readback encoder: %w", err)
	}
	defer commandBuffer.Release()
	s.queue.Submit(commandBuffer)

	var status wgpu.BufferMapAsyncStatus
	if err := buffer.MapAsync(wgpu.MapModeRead, 0, size, func(st wgpu.BufferMapAsyncStatus) {
		status = st
	}); err != nil {
		return nil, fmt.Errorf("failed to map readback buffer: %w", err)
	}
	s.device.Poll(true, nil)
	if status != wgpu.BufferMapAsyncStatusSuccess {
		return nil, fmt.Errorf("readback map failed with status %d", status)
	}
	defer buffer.Unmap()

	data := buffer.GetMappedRange(0, uint(size))

	swizzle := s.format == wgpu.TextureFormatBGRA8Unorm || s.format == wgpu.TextureFormatBGRA8UnormSrgb
	img := image.NewNRGBA(image.Rect(0, 0, s.width, s.height))
	for y := 0; y < s.height; y++ {
		row := data[y*paddedRow : y*paddedRow+4*s.width]
		dst := img.Pix[y*img.Stride : y*img.Stride+4*s.width]
		copy(dst, row)
		if swizzle {
			for x := 0; x < 4*s.width; x += 4 {
				dst[x], dst[x+2] = dst[x+2], dst[x]
			}
		}
	}
	return img, nil
}

// collectInstances packs one box instance per visible node with bounds,
// walking the whole tree. Bounds are axis-aligned so node rotation does not
// affect the drawn box.
func collectInstances(root node.Node) ([]byte, int) {
	buf := make([]byte, 0, 32*instanceStride)
	count := 0

	var walk func(n node.Node)
	walk = func(n node.Node) {
		if n == nil || !n.Visible() || count >= maxInstances {
			return
		}
		if _, isCamera := node.AsCamera(n); !isCamera && n != root {
			if minB, maxB, ok := n.Bounds(); ok {
				buf = appendInstance(buf, minB, maxB, n.Helper())
				count++
			}
		}
		for _, child := range n.Children() {
			walk(child)
		}
	}
	walk(root)

	return buf, count
}

func appendInstance(buf []byte, minB, maxB mgl32.Vec3, helper bool) []byte {
	center := minB.Add(maxB).Mul(0.5)
	size := maxB.Sub(minB)

	var model [16]float32
	common.Identity(model[:])
	model[0] = size.X()
	model[5] = size.Y()
	model[10] = size.Z()
	model[12] = center.X()
	model[13] = center.Y()
	model[14] = center.Z()
	buf = append(buf, packMatrix(model)...)

	color := [4]float32{0.62, 0.65, 0.7, 1.0}
	if helper {
		color = [4]float32{1.0, 0.6, 0.1, 1.0}
	}
	for _, c := range color {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(c))
	}
	return buf
}

func packMatrix(m [16]float32) []byte {
	out := make([]byte, 0, 64)
	for _, v := range m {
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v))
	}
	return out
}

func packFloats(values []float32) []byte {
	out := make([]byte, 0, 4*len(values))
	for _, v := range values {
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v))
	}
	return out
}

func packUints(values []uint32) []byte {
	out := make([]byte, 0, 4*len(values))
	for _, v := range values {
		out = binary.LittleEndian.AppendUint32(out, v)
	}
	return out
}
