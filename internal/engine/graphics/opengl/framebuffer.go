package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/gltut/internal/engine/graphics"
)

// Framebuffer renders into texture attachments.
type Framebuffer struct {
	fbo   uint32
	color *Texture
	depth *Texture
}

// NewTextureFramebuffer implements graphics.Backend.
func (d *Device) NewTextureFramebuffer(color, depth graphics.Texture) (graphics.TextureFramebuffer, error) {
	fb := &Framebuffer{}
	if color != nil {
		t, ok := color.(*Texture)
		if !ok {
			return nil, fmt.Errorf("foreign color attachment %T", color)
		}
		fb.color = t
	}
	if depth != nil {
		t, ok := depth.(*Texture)
		if !ok {
			return nil, fmt.Errorf("foreign depth attachment %T", depth)
		}
		fb.depth = t
	}

	var prevFBO int32
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &prevFBO)
	defer gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(prevFBO))

	gl.GenFramebuffers(1, &fb.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)

	if fb.color != nil {
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, fb.color.id, 0)
	} else {
		// Depth only target.
		gl.DrawBuffer(gl.NONE)
		gl.ReadBuffer(gl.NONE)
	}
	if fb.depth != nil {
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, fb.depth.id, 0)
	}

	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		fb.Destroy()
		return nil, fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}
	return fb, nil
}

// Size follows the attachments.
func (fb *Framebuffer) Size() graphics.Size {
	if fb.color != nil {
		return fb.color.Size()
	}
	return fb.depth.Size()
}

// ColorTexture returns the color attachment, or nil.
func (fb *Framebuffer) ColorTexture() graphics.Texture {
	if fb.color == nil {
		return nil
	}
	return fb.color
}

// DepthTexture returns the depth attachment, or nil.
func (fb *Framebuffer) DepthTexture() graphics.Texture {
	if fb.depth == nil {
		return nil
	}
	return fb.depth
}

// Destroy deletes the framebuffer object. Attachments are owned by the
// texture manager.
func (fb *Framebuffer) Destroy() {
	if fb.fbo != 0 {
		gl.DeleteFramebuffers(1, &fb.fbo)
		fb.fbo = 0
	}
}
