package renderer

import "github.com/Faultbox/gltut/internal/engine/graphics"

// Material pass indices used by the factories.
const (
	MaterialPassLighting uint32 = 0
	MaterialPassDepth    uint32 = 1
)

// MaterialPass is the shader, textures, uniform buffers and raster state
// used for one purpose of a material.
type MaterialPass struct {
	device         graphics.Device
	binding        *ShaderBinding
	arguments      *ShaderArguments
	textures       *TextureSet
	uniformBuffers *UniformBufferSet

	faceCulling  graphics.FaceCullingMode
	transparent  bool
	fillMode     graphics.PolygonFillMode
	fillSize     float32
	fillInShader bool
}

func newMaterialPass(device graphics.Device, binding *ShaderBinding, textureSlots, uniformBufferPoints int) *MaterialPass {
	var shader graphics.Shader
	if binding != nil {
		shader = binding.Shader()
	}
	return &MaterialPass{
		device:         device,
		binding:        binding,
		arguments:      NewShaderArguments(shader),
		textures:       NewTextureSet(textureSlots),
		uniformBuffers: NewUniformBufferSet(uniformBufferPoints),
		faceCulling:    graphics.FaceCullingBack,
		fillMode:       graphics.PolygonFillSolid,
		fillSize:       1,
	}
}

// ShaderBinding returns the binding of the pass shader.
func (p *MaterialPass) ShaderBinding() *ShaderBinding { return p.binding }

// Arguments returns the cached uniform values of the pass.
func (p *MaterialPass) Arguments() *ShaderArguments { return p.arguments }

// Textures returns the texture slots of the pass.
func (p *MaterialPass) Textures() *TextureSet { return p.textures }

// UniformBuffers returns the uniform buffer binding points of the pass.
func (p *MaterialPass) UniformBuffers() *UniformBufferSet { return p.uniformBuffers }

// SetShaderBinding replaces the binding. Cached arguments are dropped when
// the shader changes.
func (p *MaterialPass) SetShaderBinding(binding *ShaderBinding) {
	p.binding = binding
	if binding == nil {
		p.arguments.SetShader(nil)
		return
	}
	p.arguments.SetShader(binding.Shader())
}

// FaceCulling returns the culling mode applied when the pass binds.
func (p *MaterialPass) FaceCulling() graphics.FaceCullingMode { return p.faceCulling }

// SetFaceCulling sets the culling mode.
func (p *MaterialPass) SetFaceCulling(mode graphics.FaceCullingMode) { p.faceCulling = mode }

// Transparent reports whether the pass is blended.
func (p *MaterialPass) Transparent() bool { return p.transparent }

// SetTransparent marks the pass as blended.
func (p *MaterialPass) SetTransparent(transparent bool) { p.transparent = transparent }

// PolygonFill returns the fill mode, line width or point size, and whether
// point size comes from the shader.
func (p *MaterialPass) PolygonFill() (graphics.PolygonFillMode, float32, bool) {
	return p.fillMode, p.fillSize, p.fillInShader
}

// SetPolygonFill sets the fill mode.
func (p *MaterialPass) SetPolygonFill(mode graphics.PolygonFillMode, size float32, inShader bool) {
	p.fillMode, p.fillSize, p.fillInShader = mode, size, inShader
}

// Bind prepares the device to draw g with this pass. It does nothing when
// the pass has no shader or g is nil.
func (p *MaterialPass) Bind(g *RenderGeometry) {
	if p.binding == nil || p.binding.Shader() == nil || g == nil {
		return
	}
	p.binding.UpdateGeometry(g)
	p.arguments.Bind()
	p.textures.Bind(p.device)
	p.uniformBuffers.Bind(p.device)
	p.device.SetBlending(p.transparent)
	p.device.SetFaceCulling(p.faceCulling)
	p.device.SetPolygonFill(p.fillMode, p.fillSize, p.fillInShader)
}

// Material is a set of passes indexed by material pass index.
type Material struct {
	device graphics.Device
	passes []*MaterialPass
}

// NewMaterial creates a material without passes.
func NewMaterial(device graphics.Device) *Material {
	return &Material{device: device}
}

// CreatePass creates the pass at index, or returns the existing one.
// textureSlots is clamped to MaxTextureSlots.
func (m *Material) CreatePass(index uint32, binding *ShaderBinding, textureSlots, uniformBufferPoints int) *MaterialPass {
	if int(index) < len(m.passes) && m.passes[index] != nil {
		return m.passes[index]
	}
	if int(index) >= len(m.passes) {
		m.passes = append(m.passes, make([]*MaterialPass, int(index)+1-len(m.passes))...)
	}
	pass := newMaterialPass(m.device, binding, textureSlots, uniformBufferPoints)
	m.passes[index] = pass
	return pass
}

// RemovePass removes the pass at index, if any.
func (m *Material) RemovePass(index uint32) {
	if int(index) < len(m.passes) {
		m.passes[index] = nil
	}
}

// Pass returns the pass at index, or nil.
func (m *Material) Pass(index uint32) *MaterialPass {
	if int(index) >= len(m.passes) {
		return nil
	}
	return m.passes[index]
}

// PassCount returns the number of pass slots, including empty ones.
func (m *Material) PassCount() int {
	return len(m.passes)
}
