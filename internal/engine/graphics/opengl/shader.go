package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gltut/internal/engine/graphics"
)

// Shader is a linked GL program. Uniforms are written with
// glProgramUniform so the program does not need to be bound.
type Shader struct {
	program   uint32
	locations map[string]int32
}

// NewShader implements graphics.Backend.
func (d *Device) NewShader(vertexSrc, fragmentSrc string) (graphics.Shader, error) {
	program, err := compileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}
	return &Shader{program: program, locations: make(map[string]int32)}, nil
}

// compileProgram compiles vertex and fragment shaders and links them into a program.
func compileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		msg := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &msg[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", gl.GoStr(&msg[0]))
	}

	return program, nil
}

// compileShader compiles a single shader stage.
func compileShader(source string, shaderType uint32, stage string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		msg := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &msg[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", stage, gl.GoStr(&msg[0]))
	}

	return shader, nil
}

// Bind makes the program current.
func (s *Shader) Bind() {
	gl.UseProgram(s.program)
}

// Destroy deletes the program.
func (s *Shader) Destroy() {
	if s.program != 0 {
		gl.DeleteProgram(s.program)
		s.program = 0
	}
}

// ParameterLocation returns the cached uniform location, or -1.
func (s *Shader) ParameterLocation(name string) int32 {
	if loc, ok := s.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(s.program, gl.Str(name+"\x00"))
	s.locations[name] = loc
	return loc
}

// UniformBlockIndex returns the index of a uniform block, or -1.
func (s *Shader) UniformBlockIndex(name string) int32 {
	idx := gl.GetUniformBlockIndex(s.program, gl.Str(name+"\x00"))
	if idx == gl.INVALID_INDEX {
		return -1
	}
	return int32(idx)
}

// SetInt sets an int or sampler uniform on the bound program.
func (s *Shader) SetInt(location int32, v int32) {
	if location >= 0 {
		gl.ProgramUniform1i(s.program, location, v)
	}
}

// SetFloat sets a float uniform.
func (s *Shader) SetFloat(location int32, v float32) {
	if location >= 0 {
		gl.ProgramUniform1f(s.program, location, v)
	}
}

// SetVec2 sets a vec2 uniform.
func (s *Shader) SetVec2(location int32, v mgl32.Vec2) {
	if location >= 0 {
		gl.ProgramUniform2f(s.program, location, v[0], v[1])
	}
}

// SetVec3 sets a vec3 uniform.
func (s *Shader) SetVec3(location int32, v mgl32.Vec3) {
	if location >= 0 {
		gl.ProgramUniform3f(s.program, location, v[0], v[1], v[2])
	}
}

// SetVec4 sets a vec4 uniform.
func (s *Shader) SetVec4(location int32, v mgl32.Vec4) {
	if location >= 0 {
		gl.ProgramUniform4f(s.program, location, v[0], v[1], v[2], v[3])
	}
}

// SetMat3 sets a mat3 uniform.
func (s *Shader) SetMat3(location int32, v mgl32.Mat3) {
	if location >= 0 {
		gl.ProgramUniformMatrix3fv(s.program, location, 1, false, &v[0])
	}
}

// SetMat4 sets a mat4 uniform.
func (s *Shader) SetMat4(location int32, v mgl32.Mat4) {
	if location >= 0 {
		gl.ProgramUniformMatrix4fv(s.program, location, 1, false, &v[0])
	}
}

// SetUniformBlockBindingPoint assigns a block to a buffer binding point.
func (s *Shader) SetUniformBlockBindingPoint(blockIndex uint32, point uint32) {
	gl.UniformBlockBinding(s.program, blockIndex, point)
}
