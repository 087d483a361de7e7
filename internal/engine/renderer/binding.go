package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gltut/internal/engine/graphics"
)

// Parameter is a semantic render parameter a binding can route to a shader.
type Parameter int

const (
	ViewpointViewMatrix Parameter = iota
	ViewpointProjectionMatrix
	ViewpointPosition
	GeometryMatrix
	GeometryNormalMatrix
	ParameterCount
)

// String implements fmt.Stringer.
func (p Parameter) String() string {
	switch p {
	case ViewpointViewMatrix:
		return "viewpoint_view_matrix"
	case ViewpointProjectionMatrix:
		return "viewpoint_projection_matrix"
	case ViewpointPosition:
		return "viewpoint_position"
	case GeometryMatrix:
		return "geometry_matrix"
	case GeometryNormalMatrix:
		return "geometry_normal_matrix"
	}
	return fmt.Sprintf("Parameter(%d)", int(p))
}

func (p Parameter) valid() bool {
	return p >= 0 && p < ParameterCount
}

// Binding pushes viewpoint and geometry parameters to a shader.
type Binding interface {
	UpdateViewpoint(vp Viewpoint, aspectRatio float32)
	UpdateGeometry(g *RenderGeometry)
}

// NormalMatrix returns inverse(transpose(mat3(model))).
func NormalMatrix(model mgl32.Mat4) mgl32.Mat3 {
	return model.Mat3().Transpose().Inv()
}

// ShaderBinding routes parameters to named uniforms of one shader.
type ShaderBinding struct {
	shader    graphics.Shader
	names     [ParameterCount]string
	bound     [ParameterCount]bool
	locations [ParameterCount]int32
}

// NewShaderBinding creates a binding with no bound parameters.
func NewShaderBinding(shader graphics.Shader) *ShaderBinding {
	return &ShaderBinding{shader: shader}
}

// Shader returns the bound shader.
func (b *ShaderBinding) Shader() graphics.Shader {
	return b.shader
}

// Bind routes p to the uniform called name. An empty name unbinds p.
func (b *ShaderBinding) Bind(p Parameter, name string) {
	if !p.valid() {
		return
	}
	if name == "" {
		b.names[p], b.bound[p], b.locations[p] = "", false, -1
		return
	}
	b.names[p] = name
	b.bound[p] = true
	b.locations[p] = -1
	if b.shader != nil {
		b.locations[p] = b.shader.ParameterLocation(name)
	}
}

// BoundParameter returns the uniform name p is routed to.
func (b *ShaderBinding) BoundParameter(p Parameter) (string, bool) {
	if !p.valid() || !b.bound[p] {
		return "", false
	}
	return b.names[p], true
}

func (b *ShaderBinding) location(p Parameter) (int32, bool) {
	if !b.bound[p] || b.shader == nil {
		return -1, false
	}
	return b.locations[p], true
}

// UpdateViewpoint pushes the view matrix, projection and position.
func (b *ShaderBinding) UpdateViewpoint(vp Viewpoint, aspectRatio float32) {
	if vp == nil {
		return
	}
	if loc, ok := b.location(ViewpointViewMatrix); ok {
		b.shader.SetMat4(loc, vp.ViewMatrix())
	}
	if loc, ok := b.location(ViewpointProjectionMatrix); ok {
		b.shader.SetMat4(loc, vp.ProjectionMatrix(aspectRatio))
	}
	if loc, ok := b.location(ViewpointPosition); ok {
		b.shader.SetVec3(loc, vp.Position())
	}
}

// UpdateGeometry pushes the model and normal matrices.
func (b *ShaderBinding) UpdateGeometry(g *RenderGeometry) {
	if g == nil {
		return
	}
	model := g.Transform()
	if loc, ok := b.location(GeometryMatrix); ok {
		b.shader.SetMat4(loc, model)
	}
	if loc, ok := b.location(GeometryNormalMatrix); ok {
		b.shader.SetMat3(loc, NormalMatrix(model))
	}
}

// UniformBufferBinding routes parameters to std140 offsets of a uniform buffer.
type UniformBufferBinding struct {
	buffer  graphics.ShaderUniformBuffer
	offsets [ParameterCount]uint32
	bound   [ParameterCount]bool
}

// NewUniformBufferBinding creates a binding with no bound parameters.
func NewUniformBufferBinding(buffer graphics.ShaderUniformBuffer) *UniformBufferBinding {
	return &UniformBufferBinding{buffer: buffer}
}

// Buffer returns the target buffer.
func (b *UniformBufferBinding) Buffer() graphics.ShaderUniformBuffer {
	return b.buffer
}

// Bind routes p to a byte offset.
func (b *UniformBufferBinding) Bind(p Parameter, offset uint32) {
	if !p.valid() {
		return
	}
	b.offsets[p] = offset
	b.bound[p] = true
}

// Unbind removes the route of p.
func (b *UniformBufferBinding) Unbind(p Parameter) {
	if p.valid() {
		b.bound[p] = false
	}
}

// ParameterOffset returns the offset p is routed to.
func (b *UniformBufferBinding) ParameterOffset(p Parameter) (uint32, bool) {
	if !p.valid() || !b.bound[p] {
		return 0, false
	}
	return b.offsets[p], true
}

func (b *UniformBufferBinding) write(p Parameter, data []byte) {
	if b.bound[p] && b.buffer != nil {
		b.buffer.SetData(b.offsets[p], data)
	}
}

// UpdateViewpoint writes the view matrix, projection and position.
func (b *UniformBufferBinding) UpdateViewpoint(vp Viewpoint, aspectRatio float32) {
	if vp == nil {
		return
	}
	b.write(ViewpointViewMatrix, Std140Mat4(vp.ViewMatrix()))
	b.write(ViewpointProjectionMatrix, Std140Mat4(vp.ProjectionMatrix(aspectRatio)))
	b.write(ViewpointPosition, Std140Vec3(vp.Position()))
}

// UpdateGeometry writes the model and normal matrices.
func (b *UniformBufferBinding) UpdateGeometry(g *RenderGeometry) {
	if g == nil {
		return
	}
	model := g.Transform()
	b.write(GeometryMatrix, Std140Mat4(model))
	b.write(GeometryNormalMatrix, Std140Mat3(NormalMatrix(model)))
}
