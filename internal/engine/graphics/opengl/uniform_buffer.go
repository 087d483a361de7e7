package opengl

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/gltut/internal/engine/graphics"
)

// UniformBuffer is a GL uniform buffer object.
type UniformBuffer struct {
	id   uint32
	size uint32
}

func bindBufferScoped(id uint32) func() {
	var prev int32
	gl.GetIntegerv(gl.UNIFORM_BUFFER_BINDING, &prev)
	gl.BindBuffer(gl.UNIFORM_BUFFER, id)
	return func() {
		gl.BindBuffer(gl.UNIFORM_BUFFER, uint32(prev))
	}
}

// NewShaderUniformBuffer implements graphics.Backend.
func (d *Device) NewShaderUniformBuffer(size uint32) (graphics.ShaderUniformBuffer, error) {
	b := &UniformBuffer{size: size}
	gl.GenBuffers(1, &b.id)
	restore := bindBufferScoped(b.id)
	defer restore()
	gl.BufferData(gl.UNIFORM_BUFFER, int(size), nil, gl.DYNAMIC_DRAW)
	if err := checkError("uniform buffer"); err != nil {
		b.Destroy()
		return nil, err
	}
	return b, nil
}

// Size returns the buffer size in bytes.
func (b *UniformBuffer) Size() uint32 { return b.size }

// SetData writes data at offset, truncated at the end of the buffer.
func (b *UniformBuffer) SetData(offset uint32, data []byte) {
	if offset >= b.size || len(data) == 0 {
		return
	}
	n := uint32(len(data))
	if offset+n > b.size {
		n = b.size - offset
	}
	restore := bindBufferScoped(b.id)
	defer restore()
	gl.BufferSubData(gl.UNIFORM_BUFFER, int(offset), int(n), gl.Ptr(data[:n]))
}

// Destroy deletes the buffer.
func (b *UniformBuffer) Destroy() {
	if b.id != 0 {
		gl.DeleteBuffers(1, &b.id)
		b.id = 0
	}
}
