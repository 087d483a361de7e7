package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gltut/internal/engine/graphics"
)

type argumentKind int

const (
	argumentInt argumentKind = iota
	argumentFloat
	argumentVec2
	argumentVec3
	argumentVec4
	argumentMat3
	argumentMat4
)

// argument is one cached uniform value. Only the field selected by kind is
// meaningful.
type argument struct {
	location int32
	kind     argumentKind
	i        int32
	f        float32
	v2       mgl32.Vec2
	v3       mgl32.Vec3
	v4       mgl32.Vec4
	m3       mgl32.Mat3
	m4       mgl32.Mat4
}

type blockBinding struct {
	index uint32
	point uint32
}

// ShaderArguments caches uniform values for a shader and replays them when
// the shader is bound. Values may be set before the shader is ever active.
type ShaderArguments struct {
	shader graphics.Shader
	args   []argument
	blocks []blockBinding
}

// NewShaderArguments creates an empty cache for shader.
func NewShaderArguments(shader graphics.Shader) *ShaderArguments {
	return &ShaderArguments{shader: shader}
}

// Shader returns the target shader.
func (a *ShaderArguments) Shader() graphics.Shader {
	return a.shader
}

// SetShader changes the target shader. Cached values are dropped when the
// shader actually changes since locations are shader relative.
func (a *ShaderArguments) SetShader(shader graphics.Shader) {
	if shader == a.shader {
		return
	}
	a.shader = shader
	a.args = nil
	a.blocks = nil
}

// Len returns the number of cached values.
func (a *ShaderArguments) Len() int {
	return len(a.args)
}

// ParameterLocation resolves a uniform name on the target shader, or -1.
func (a *ShaderArguments) ParameterLocation(name string) int32 {
	if a.shader == nil {
		return -1
	}
	return a.shader.ParameterLocation(name)
}

func (a *ShaderArguments) store(arg argument) {
	if arg.location < 0 {
		return
	}
	for i := range a.args {
		if a.args[i].location == arg.location {
			a.args[i] = arg
			return
		}
	}
	a.args = append(a.args, arg)
}

// SetInt caches an int value for location.
func (a *ShaderArguments) SetInt(location int32, v int32) {
	a.store(argument{location: location, kind: argumentInt, i: v})
}

// SetFloat caches a float value for location.
func (a *ShaderArguments) SetFloat(location int32, v float32) {
	a.store(argument{location: location, kind: argumentFloat, f: v})
}

// SetVec2 caches a vec2 value for location.
func (a *ShaderArguments) SetVec2(location int32, v mgl32.Vec2) {
	a.store(argument{location: location, kind: argumentVec2, v2: v})
}

// SetVec3 caches a vec3 value for location.
func (a *ShaderArguments) SetVec3(location int32, v mgl32.Vec3) {
	a.store(argument{location: location, kind: argumentVec3, v3: v})
}

// SetVec4 caches a vec4 value for location.
func (a *ShaderArguments) SetVec4(location int32, v mgl32.Vec4) {
	a.store(argument{location: location, kind: argumentVec4, v4: v})
}

// SetMat3 caches a mat3 value for location.
func (a *ShaderArguments) SetMat3(location int32, v mgl32.Mat3) {
	a.store(argument{location: location, kind: argumentMat3, m3: v})
}

// SetMat4 caches a mat4 value for location.
func (a *ShaderArguments) SetMat4(location int32, v mgl32.Mat4) {
	a.store(argument{location: location, kind: argumentMat4, m4: v})
}

// SetUniformBlockBindingPoint records a block binding replayed on Bind.
func (a *ShaderArguments) SetUniformBlockBindingPoint(blockIndex uint32, point uint32) {
	for i := range a.blocks {
		if a.blocks[i].index == blockIndex {
			a.blocks[i].point = point
			return
		}
	}
	a.blocks = append(a.blocks, blockBinding{index: blockIndex, point: point})
}

// UniformBlockIndex resolves a block name on the target shader, or -1.
func (a *ShaderArguments) UniformBlockIndex(name string) int32 {
	if a.shader == nil {
		return -1
	}
	return a.shader.UniformBlockIndex(name)
}

// Bind binds the shader and pushes every cached value.
func (a *ShaderArguments) Bind() {
	if a.shader == nil {
		return
	}
	a.shader.Bind()
	for _, arg := range a.args {
		switch arg.kind {
		case argumentInt:
			a.shader.SetInt(arg.location, arg.i)
		case argumentFloat:
			a.shader.SetFloat(arg.location, arg.f)
		case argumentVec2:
			a.shader.SetVec2(arg.location, arg.v2)
		case argumentVec3:
			a.shader.SetVec3(arg.location, arg.v3)
		case argumentVec4:
			a.shader.SetVec4(arg.location, arg.v4)
		case argumentMat3:
			a.shader.SetMat3(arg.location, arg.m3)
		case argumentMat4:
			a.shader.SetMat4(arg.location, arg.m4)
		default:
			panic(fmt.Sprintf("renderer: unexpected shader argument kind %d", arg.kind))
		}
	}
	for _, b := range a.blocks {
		a.shader.SetUniformBlockBindingPoint(b.index, b.point)
	}
}

var _ graphics.ShaderParameters = (*ShaderArguments)(nil)
