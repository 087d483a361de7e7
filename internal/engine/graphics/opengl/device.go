// Package opengl implements the graphics device on OpenGL 4.1 core.
// It must be used from the thread owning the GL context.
package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/gltut/internal/engine/graphics"
	"github.com/Faultbox/gltut/internal/logger"
)

const log logger.Component = "opengl"

// Surface is the window side of the GL context.
type Surface interface {
	Size() graphics.Size
	SetVSync(enabled bool)
}

// Device is the OpenGL graphics device.
type Device struct {
	*graphics.DeviceBase

	surface  Surface
	viewport graphics.Viewport
}

// New initializes OpenGL on the current context.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New(surface Surface) (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	d := &Device{surface: surface}
	d.DeviceBase = graphics.NewDeviceBase(d, graphics.NewWindowFramebuffer(surface.Size))

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.Enable(gl.TEXTURE_CUBE_MAP_SEAMLESS)

	return d, nil
}

// ActivateFramebuffer implements graphics.Backend.
func (d *Device) ActivateFramebuffer(fb graphics.Framebuffer, viewport graphics.Viewport) {
	var fbo uint32
	if fb != d.WindowFramebuffer() {
		tfb, ok := fb.(*Framebuffer)
		if !ok {
			panic(fmt.Sprintf("opengl: foreign framebuffer %T", fb))
		}
		fbo = tfb.fbo
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
	gl.Viewport(int32(viewport.X), int32(viewport.Y), int32(viewport.Width), int32(viewport.Height))
	d.viewport = viewport
}

// Clear clears the bound framebuffer inside the current viewport only.
func (d *Device) Clear(color *graphics.Color, depth bool) {
	var mask uint32
	if color != nil {
		gl.ClearColor(color.R, color.G, color.B, color.A)
		mask |= gl.COLOR_BUFFER_BIT
	}
	if depth {
		gl.DepthMask(true)
		mask |= gl.DEPTH_BUFFER_BIT
	}
	if mask == 0 {
		return
	}
	vp := d.viewport
	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(int32(vp.X), int32(vp.Y), int32(vp.Width), int32(vp.Height))
	gl.Clear(mask)
	gl.Disable(gl.SCISSOR_TEST)
}

// BindTexture binds texture to a texture unit. A nil texture unbinds the unit.
func (d *Device) BindTexture(texture graphics.Texture, slot uint32) {
	if slot >= graphics.MaxTextureSlots {
		return
	}
	gl.ActiveTexture(gl.TEXTURE0 + slot)
	if texture == nil {
		gl.BindTexture(gl.TEXTURE_2D, 0)
		return
	}
	t := texture.(*Texture)
	gl.BindTexture(t.target, t.id)
}

// BindShaderUniformBuffer binds buffer to a uniform block binding point.
func (d *Device) BindShaderUniformBuffer(buffer graphics.ShaderUniformBuffer, bindingPoint uint32) {
	if buffer == nil {
		gl.BindBufferBase(gl.UNIFORM_BUFFER, bindingPoint, 0)
		return
	}
	gl.BindBufferBase(gl.UNIFORM_BUFFER, bindingPoint, buffer.(*UniformBuffer).id)
}

// EnableVSync forwards the swap interval to the window.
func (d *Device) EnableVSync(enabled bool) {
	d.surface.SetVSync(enabled)
}

// SetFaceCulling implements graphics.Device.
func (d *Device) SetFaceCulling(mode graphics.FaceCullingMode) {
	if mode == graphics.FaceCullingNone {
		gl.Disable(gl.CULL_FACE)
		return
	}
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(cullFace(mode))
}

// SetBlending enables standard alpha blending.
func (d *Device) SetBlending(enabled bool) {
	if !enabled {
		gl.Disable(gl.BLEND)
		return
	}
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
}

// SetDepthTest implements graphics.Device.
func (d *Device) SetDepthTest(mode graphics.DepthTestMode) {
	if mode == graphics.DepthTestDisabled {
		gl.Disable(gl.DEPTH_TEST)
		return
	}
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(depthFunc(mode))
}

// SetPolygonFill implements graphics.Device.
func (d *Device) SetPolygonFill(mode graphics.PolygonFillMode, size float32, inShader bool) {
	gl.PolygonMode(gl.FRONT_AND_BACK, polygonMode(mode))
	switch mode {
	case graphics.PolygonFillLine:
		gl.LineWidth(size)
	case graphics.PolygonFillPoint:
		if inShader {
			gl.Enable(gl.PROGRAM_POINT_SIZE)
		} else {
			gl.Disable(gl.PROGRAM_POINT_SIZE)
			gl.PointSize(size)
		}
	}
}

// Close releases every resource and reports a pending GL error.
func (d *Device) Close() error {
	log.Info("closing device")
	return d.DeviceBase.Close()
}

// CheckError implements graphics.ErrorChecker.
func (d *Device) CheckError(op string) error {
	return checkError(op)
}

func checkError(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("%s: GL error 0x%x", op, code)
	}
	return nil
}
