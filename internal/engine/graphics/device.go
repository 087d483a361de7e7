package graphics

import "go.uber.org/multierr"

// Backend creates backend specific resources. The managers validate input
// before calling it.
type Backend interface {
	NewGeometry(format VertexFormat, vertices []float32, indices []uint32) (Geometry, error)
	NewShader(vertexSrc, fragmentSrc string) (Shader, error)
	NewTexture(data TextureData, params TextureParameters) (Texture, error)
	NewCubemap(faces [6]TextureData, params TextureParameters) (Texture, error)
	NewTextureFramebuffer(color, depth Texture) (TextureFramebuffer, error)
	NewShaderUniformBuffer(size uint32) (ShaderUniformBuffer, error)
	// ActivateFramebuffer makes fb the render target with the given viewport.
	ActivateFramebuffer(fb Framebuffer, viewport Viewport)
}

// ErrorChecker is implemented by backends that report errors raised while
// resources are released.
type ErrorChecker interface {
	CheckError(op string) error
}

// Device owns GPU resources and exposes the render state setters used by
// the renderer.
type Device interface {
	Geometries() *GeometryManager
	Shaders() *ShaderManager
	Textures() *TextureManager
	Framebuffers() *FramebufferManager
	UniformBuffers() *ShaderUniformBufferManager

	// WindowFramebuffer returns the default framebuffer.
	WindowFramebuffer() Framebuffer

	// Clear clears the bound framebuffer. A nil color leaves color untouched.
	Clear(color *Color, depth bool)
	BindTexture(texture Texture, slot uint32)
	BindShaderUniformBuffer(buffer ShaderUniformBuffer, bindingPoint uint32)
	// BindFramebuffer binds fb, or the window framebuffer when fb is nil.
	// A nil viewport covers the whole target.
	BindFramebuffer(fb Framebuffer, viewport *Viewport)

	EnableVSync(enabled bool)
	SetFaceCulling(mode FaceCullingMode)
	SetBlending(enabled bool)
	SetDepthTest(mode DepthTestMode)
	// SetPolygonFill sets the rasterization mode. size is the line width or
	// point size; inShader leaves point size to the vertex shader.
	SetPolygonFill(mode PolygonFillMode, size float32, inShader bool)

	// Close destroys every resource still owned by the managers.
	Close() error
}

// DeviceBase implements the parts of Device shared by all backends.
type DeviceBase struct {
	backend        Backend
	window         Framebuffer
	geometries     GeometryManager
	shaders        ShaderManager
	textures       TextureManager
	framebuffers   FramebufferManager
	uniformBuffers ShaderUniformBufferManager
}

// NewDeviceBase wires the managers to a backend. window is the default
// framebuffer returned for nil bind targets.
func NewDeviceBase(backend Backend, window Framebuffer) *DeviceBase {
	return &DeviceBase{
		backend:        backend,
		window:         window,
		geometries:     GeometryManager{backend: backend},
		shaders:        ShaderManager{backend: backend},
		textures:       TextureManager{backend: backend},
		framebuffers:   FramebufferManager{backend: backend},
		uniformBuffers: ShaderUniformBufferManager{backend: backend},
	}
}

// Geometries returns the geometry manager.
func (d *DeviceBase) Geometries() *GeometryManager { return &d.geometries }

// Shaders returns the shader manager.
func (d *DeviceBase) Shaders() *ShaderManager { return &d.shaders }

// Textures returns the texture manager.
func (d *DeviceBase) Textures() *TextureManager { return &d.textures }

// Framebuffers returns the framebuffer manager.
func (d *DeviceBase) Framebuffers() *FramebufferManager { return &d.framebuffers }

// UniformBuffers returns the uniform buffer manager.
func (d *DeviceBase) UniformBuffers() *ShaderUniformBufferManager { return &d.uniformBuffers }

// WindowFramebuffer returns the default framebuffer.
func (d *DeviceBase) WindowFramebuffer() Framebuffer { return d.window }

// BindFramebuffer resolves the target and viewport, then activates them.
func (d *DeviceBase) BindFramebuffer(fb Framebuffer, viewport *Viewport) {
	if fb == nil {
		fb = d.window
	}
	vp := FullViewport(fb.Size())
	if viewport != nil {
		vp = *viewport
	}
	d.backend.ActivateFramebuffer(fb, vp)
}

// Close removes every resource. Framebuffers go first since they reference
// textures. Errors reported by the backend after each manager is cleared
// are combined.
func (d *DeviceBase) Close() error {
	log.Debug("releasing device resources")
	checker, _ := d.backend.(ErrorChecker)
	var err error
	release := func(name string, clear func()) {
		clear()
		if checker != nil {
			err = multierr.Append(err, checker.CheckError("releasing "+name))
		}
	}
	release("framebuffers", d.framebuffers.Clear)
	release("uniform buffers", d.uniformBuffers.Clear)
	release("textures", d.textures.Clear)
	release("shaders", d.shaders.Clear)
	release("geometries", d.geometries.Clear)
	return err
}
