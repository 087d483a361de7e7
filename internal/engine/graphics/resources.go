package graphics

import "github.com/go-gl/mathgl/mgl32"

// Geometry is an indexed triangle mesh stored on the device.
type Geometry interface {
	VertexFormat() VertexFormat
	VertexCount() int
	IndexCount() int
	// Draw issues the draw call for the whole mesh.
	Draw()
	Destroy()
}

// ShaderParameters sets uniform values on a shader program. Locations are
// obtained from ParameterLocation; a negative location means the uniform
// does not exist and setters ignore it.
type ShaderParameters interface {
	ParameterLocation(name string) int32
	UniformBlockIndex(name string) int32
	SetInt(location int32, v int32)
	SetFloat(location int32, v float32)
	SetVec2(location int32, v mgl32.Vec2)
	SetVec3(location int32, v mgl32.Vec3)
	SetVec4(location int32, v mgl32.Vec4)
	SetMat3(location int32, v mgl32.Mat3)
	SetMat4(location int32, v mgl32.Mat4)
	SetUniformBlockBindingPoint(blockIndex uint32, point uint32)
}

// Shader is a linked shader program.
type Shader interface {
	ShaderParameters
	// Bind makes the program current for subsequent draw calls.
	Bind()
	Destroy()
}

// ShaderUniformBuffer is a block of std140 uniform memory.
type ShaderUniformBuffer interface {
	Size() uint32
	// SetData writes data at a byte offset. Writes past the end are truncated.
	SetData(offset uint32, data []byte)
	Destroy()
}

// Texture is a 2D texture or a cubemap.
type Texture interface {
	Type() TextureType
	Size() Size
	Format() TextureFormat
	Parameters() TextureParameters
	SetParameters(params TextureParameters)
	// Resize reallocates storage. Previous contents are lost.
	Resize(size Size)
	Destroy()
}

// Framebuffer is a render target.
type Framebuffer interface {
	Size() Size
}

// TextureFramebuffer is an offscreen render target backed by textures.
type TextureFramebuffer interface {
	Framebuffer
	ColorTexture() Texture
	DepthTexture() Texture
	Destroy()
}

// windowFramebuffer is the default framebuffer of the window.
type windowFramebuffer struct {
	size func() Size
}

// NewWindowFramebuffer returns the window framebuffer, sized by a callback
// into the window layer.
func NewWindowFramebuffer(size func() Size) Framebuffer {
	return &windowFramebuffer{size: size}
}

// Size follows the window size.
func (w *windowFramebuffer) Size() Size {
	return w.size()
}

// SetIntByName sets an int uniform by name and reports whether it exists.
func SetIntByName(p ShaderParameters, name string, v int32) bool {
	loc := p.ParameterLocation(name)
	if loc < 0 {
		return false
	}
	p.SetInt(loc, v)
	return true
}

// SetFloatByName sets a float uniform by name and reports whether it exists.
func SetFloatByName(p ShaderParameters, name string, v float32) bool {
	loc := p.ParameterLocation(name)
	if loc < 0 {
		return false
	}
	p.SetFloat(loc, v)
	return true
}

// SetVec2ByName sets a vec2 uniform by name and reports whether it exists.
func SetVec2ByName(p ShaderParameters, name string, v mgl32.Vec2) bool {
	loc := p.ParameterLocation(name)
	if loc < 0 {
		return false
	}
	p.SetVec2(loc, v)
	return true
}

// SetVec3ByName sets a vec3 uniform by name and reports whether it exists.
func SetVec3ByName(p ShaderParameters, name string, v mgl32.Vec3) bool {
	loc := p.ParameterLocation(name)
	if loc < 0 {
		return false
	}
	p.SetVec3(loc, v)
	return true
}

// SetVec4ByName sets a vec4 uniform by name and reports whether it exists.
func SetVec4ByName(p ShaderParameters, name string, v mgl32.Vec4) bool {
	loc := p.ParameterLocation(name)
	if loc < 0 {
		return false
	}
	p.SetVec4(loc, v)
	return true
}

// SetMat3ByName sets a mat3 uniform by name and reports whether it exists.
func SetMat3ByName(p ShaderParameters, name string, v mgl32.Mat3) bool {
	loc := p.ParameterLocation(name)
	if loc < 0 {
		return false
	}
	p.SetMat3(loc, v)
	return true
}

// SetMat4ByName sets a mat4 uniform by name and reports whether it exists.
func SetMat4ByName(p ShaderParameters, name string, v mgl32.Mat4) bool {
	loc := p.ParameterLocation(name)
	if loc < 0 {
		return false
	}
	p.SetMat4(loc, v)
	return true
}

// ColorVec3 converts the RGB channels of c.
func ColorVec3(c Color) mgl32.Vec3 {
	return mgl32.Vec3{c.R, c.G, c.B}
}

// ColorVec4 converts c to a vector.
func ColorVec4(c Color) mgl32.Vec4 {
	return mgl32.Vec4{c.R, c.G, c.B, c.A}
}
