// Package headless implements the graphics device contract in memory.
// Every call is appended to a log so tests can assert on the exact command
// stream, and resource creation can be made to fail on demand.
package headless

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Faultbox/gltut/internal/engine/graphics"
)

// ErrInjected is returned by a creation call armed with FailNext.
var ErrInjected = errors.New("injected failure")

// Kind names a resource kind for failure injection.
type Kind int

const (
	KindGeometry Kind = iota
	KindShader
	KindTexture
	KindCubemap
	KindFramebuffer
	KindUniformBuffer
	// KindRelease fails the next backend error check made while closing.
	KindRelease
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindGeometry:
		return "geometry"
	case KindShader:
		return "shader"
	case KindTexture:
		return "texture"
	case KindCubemap:
		return "cubemap"
	case KindFramebuffer:
		return "framebuffer"
	case KindUniformBuffer:
		return "ubo"
	case KindRelease:
		return "release"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Device is a recording graphics device.
type Device struct {
	*graphics.DeviceBase

	calls  []string
	nextID int
	fail   map[Kind]int

	windowSize graphics.Size
	sizeFn     func() graphics.Size

	vsync       bool
	culling     graphics.FaceCullingMode
	blending    bool
	depthTest   graphics.DepthTestMode
	fillMode    graphics.PolygonFillMode
	boundFB     graphics.Framebuffer
	viewport    graphics.Viewport
	boundTex    [graphics.MaxTextureSlots]graphics.Texture
	boundShader *Shader
}

// New creates a device whose window framebuffer is sized by size.
func New(size func() graphics.Size) *Device {
	d := &Device{sizeFn: size, fail: make(map[Kind]int), depthTest: graphics.DepthTestLess}
	d.DeviceBase = graphics.NewDeviceBase(d, graphics.NewWindowFramebuffer(d.currentWindowSize))
	return d
}

// NewSized creates a device with a fixed window size that can be changed
// with SetWindowSize.
func NewSized(width, height int) *Device {
	d := New(nil)
	d.windowSize = graphics.Size{Width: width, Height: height}
	return d
}

func (d *Device) currentWindowSize() graphics.Size {
	if d.sizeFn != nil {
		return d.sizeFn()
	}
	return d.windowSize
}

// SetWindowSize changes the window framebuffer size of a NewSized device.
func (d *Device) SetWindowSize(size graphics.Size) {
	d.windowSize = size
}

func (d *Device) record(format string, args ...any) {
	d.calls = append(d.calls, fmt.Sprintf(format, args...))
}

// Calls returns a copy of the call log.
func (d *Device) Calls() []string {
	return append([]string(nil), d.calls...)
}

// Filter returns the logged calls starting with any of the prefixes.
func (d *Device) Filter(prefixes ...string) []string {
	var out []string
	for _, c := range d.calls {
		for _, p := range prefixes {
			if strings.HasPrefix(c, p) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// Reset clears the call log.
func (d *Device) Reset() {
	d.calls = nil
}

// FailNext makes the next creation of kind fail with ErrInjected.
func (d *Device) FailNext(kind Kind) {
	d.fail[kind]++
}

func (d *Device) injected(kind Kind) error {
	if d.fail[kind] > 0 {
		d.fail[kind]--
		d.record("%s.create failed", kind)
		return fmt.Errorf("%s: %w", kind, ErrInjected)
	}
	return nil
}

// CheckError implements graphics.ErrorChecker. It fails once per armed
// KindRelease.
func (d *Device) CheckError(op string) error {
	if d.fail[KindRelease] > 0 {
		d.fail[KindRelease]--
		d.record("%s failed", op)
		return fmt.Errorf("%s: %w", op, ErrInjected)
	}
	return nil
}

func (d *Device) newID() int {
	d.nextID++
	return d.nextID
}

// Clear records a clear of the bound framebuffer.
func (d *Device) Clear(color *graphics.Color, depth bool) {
	if color != nil {
		d.record("clear color=%g,%g,%g,%g depth=%t", color.R, color.G, color.B, color.A, depth)
		return
	}
	d.record("clear depth=%t", depth)
}

// BindTexture records a texture bind. Slots beyond MaxTextureSlots are ignored.
func (d *Device) BindTexture(texture graphics.Texture, slot uint32) {
	if slot >= graphics.MaxTextureSlots {
		return
	}
	d.boundTex[slot] = texture
	d.record("%s.bind %d", label(texture), slot)
}

// BindShaderUniformBuffer records a uniform buffer bind.
func (d *Device) BindShaderUniformBuffer(buffer graphics.ShaderUniformBuffer, bindingPoint uint32) {
	d.record("%s.bind %d", label(buffer), bindingPoint)
}

// EnableVSync records the swap interval.
func (d *Device) EnableVSync(enabled bool) {
	d.vsync = enabled
	d.record("vsync %t", enabled)
}

// SetFaceCulling records the culling mode.
func (d *Device) SetFaceCulling(mode graphics.FaceCullingMode) {
	d.culling = mode
	d.record("culling %s", mode)
}

// SetBlending records the blend state.
func (d *Device) SetBlending(enabled bool) {
	d.blending = enabled
	d.record("blending %t", enabled)
}

// SetDepthTest records the depth function.
func (d *Device) SetDepthTest(mode graphics.DepthTestMode) {
	d.depthTest = mode
	d.record("depth %s", mode)
}

// SetPolygonFill records the fill mode.
func (d *Device) SetPolygonFill(mode graphics.PolygonFillMode, size float32, inShader bool) {
	d.fillMode = mode
	d.record("fill %s %g %t", mode, size, inShader)
}

// ActivateFramebuffer records the bound target and viewport.
func (d *Device) ActivateFramebuffer(fb graphics.Framebuffer, viewport graphics.Viewport) {
	d.boundFB = fb
	d.viewport = viewport
	target := "window"
	if fb != d.WindowFramebuffer() {
		target = label(fb)
	}
	d.record("framebuffer %s %d,%d %dx%d", target, viewport.X, viewport.Y, viewport.Width, viewport.Height)
}

// Close destroys every resource.
func (d *Device) Close() error {
	d.record("close")
	return d.DeviceBase.Close()
}

// VSync returns the last swap interval state.
func (d *Device) VSync() bool { return d.vsync }

// FaceCulling returns the current culling mode.
func (d *Device) FaceCulling() graphics.FaceCullingMode { return d.culling }

// Blending returns the current blend state.
func (d *Device) Blending() bool { return d.blending }

// DepthTest returns the current depth function.
func (d *Device) DepthTest() graphics.DepthTestMode { return d.depthTest }

// PolygonFill returns the current fill mode.
func (d *Device) PolygonFill() graphics.PolygonFillMode { return d.fillMode }

// BoundFramebuffer returns the current render target.
func (d *Device) BoundFramebuffer() graphics.Framebuffer { return d.boundFB }

// Viewport returns the current viewport.
func (d *Device) Viewport() graphics.Viewport { return d.viewport }

// BoundTexture returns the texture bound to slot.
func (d *Device) BoundTexture(slot uint32) graphics.Texture {
	if slot >= graphics.MaxTextureSlots {
		return nil
	}
	return d.boundTex[slot]
}

// BoundShader returns the current program.
func (d *Device) BoundShader() *Shader { return d.boundShader }

type named interface {
	Name() string
}

func label(v any) string {
	if n, ok := v.(named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", v)
}
