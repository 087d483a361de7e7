package renderer

import "github.com/Faultbox/gltut/internal/engine/graphics"

// TextureSet is a fixed number of texture slots bound to consecutive units.
type TextureSet struct {
	textures []graphics.Texture
}

// NewTextureSet creates a set with count slots, clamped to MaxTextureSlots.
func NewTextureSet(count int) *TextureSet {
	s := &TextureSet{}
	s.SetSlotCount(count)
	return s
}

// SetSlotCount resizes the set, keeping textures in the remaining slots.
func (s *TextureSet) SetSlotCount(count int) {
	count = min(max(count, 0), graphics.MaxTextureSlots)
	if count <= len(s.textures) {
		clear(s.textures[count:])
		s.textures = s.textures[:count]
		return
	}
	s.textures = append(s.textures, make([]graphics.Texture, count-len(s.textures))...)
}

// SlotCount returns the number of slots.
func (s *TextureSet) SlotCount() int {
	return len(s.textures)
}

// SetTexture puts t in slot. Out of range slots are ignored.
func (s *TextureSet) SetTexture(slot int, t graphics.Texture) {
	if slot < 0 || slot >= len(s.textures) {
		return
	}
	s.textures[slot] = t
}

// Texture returns the texture in slot, or nil.
func (s *TextureSet) Texture(slot int) graphics.Texture {
	if slot < 0 || slot >= len(s.textures) {
		return nil
	}
	return s.textures[slot]
}

// Bind binds every non-empty slot to the texture unit of the same index.
func (s *TextureSet) Bind(device graphics.Device) {
	for i, t := range s.textures {
		if t != nil {
			device.BindTexture(t, uint32(i))
		}
	}
}

// UniformBufferSet assigns uniform buffers to consecutive binding points.
type UniformBufferSet struct {
	buffers []graphics.ShaderUniformBuffer
}

// NewUniformBufferSet creates a set with count binding points.
func NewUniformBufferSet(count int) *UniformBufferSet {
	s := &UniformBufferSet{}
	s.SetBindingPointCount(count)
	return s
}

// SetBindingPointCount resizes the set.
func (s *UniformBufferSet) SetBindingPointCount(count int) {
	count = max(count, 0)
	if count <= len(s.buffers) {
		clear(s.buffers[count:])
		s.buffers = s.buffers[:count]
		return
	}
	s.buffers = append(s.buffers, make([]graphics.ShaderUniformBuffer, count-len(s.buffers))...)
}

// BindingPointCount returns the number of binding points.
func (s *UniformBufferSet) BindingPointCount() int {
	return len(s.buffers)
}

// SetBuffer assigns b to a binding point. Out of range points are ignored.
func (s *UniformBufferSet) SetBuffer(point int, b graphics.ShaderUniformBuffer) {
	if point < 0 || point >= len(s.buffers) {
		return
	}
	s.buffers[point] = b
}

// Buffer returns the buffer at point, or nil.
func (s *UniformBufferSet) Buffer(point int) graphics.ShaderUniformBuffer {
	if point < 0 || point >= len(s.buffers) {
		return nil
	}
	return s.buffers[point]
}

// Bind binds every assigned buffer to its point.
func (s *UniformBufferSet) Bind(device graphics.Device) {
	for i, b := range s.buffers {
		if b != nil {
			device.BindShaderUniformBuffer(b, uint32(i))
		}
	}
}
