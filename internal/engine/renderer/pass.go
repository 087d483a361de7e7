package renderer

import "github.com/Faultbox/gltut/internal/engine/graphics"

// Pass is an entry of the renderer's pass list.
type Pass interface {
	Execute()
	Active() bool
}

// PassConfig describes a render pass.
type PassConfig struct {
	Viewpoint    Viewpoint
	Object       RenderObject
	Target       graphics.Framebuffer // nil renders to the window
	MaterialPass uint32
	ClearColor   *graphics.Color
	ClearDepth   bool
	Viewport     *graphics.Viewport // nil covers the whole target
	FaceCulling  graphics.FaceCullingMode
	Blending     bool
}

// RenderPass renders one object into one target with fixed state. It keeps
// no state between executions.
type RenderPass struct {
	renderer     *Renderer
	viewpoint    Viewpoint
	object       RenderObject
	target       graphics.Framebuffer
	materialPass uint32
	clearColor   *graphics.Color
	clearDepth   bool
	viewport     *graphics.Viewport
	faceCulling  graphics.FaceCullingMode
	blending     bool
	depthTest    graphics.DepthTestMode
	active       bool
}

func newRenderPass(r *Renderer, cfg PassConfig) *RenderPass {
	p := &RenderPass{
		renderer:     r,
		viewpoint:    cfg.Viewpoint,
		object:       cfg.Object,
		target:       cfg.Target,
		materialPass: cfg.MaterialPass,
		clearDepth:   cfg.ClearDepth,
		faceCulling:  cfg.FaceCulling,
		blending:     cfg.Blending,
		depthTest:    graphics.DepthTestLess,
		active:       true,
	}
	p.SetClearColor(cfg.ClearColor)
	p.SetViewport(cfg.Viewport)
	return p
}

// Viewpoint returns the camera of the pass, or nil.
func (p *RenderPass) Viewpoint() Viewpoint { return p.viewpoint }

// SetViewpoint replaces the camera.
func (p *RenderPass) SetViewpoint(vp Viewpoint) { p.viewpoint = vp }

// Object returns what the pass draws.
func (p *RenderPass) Object() RenderObject { return p.object }

// SetObject replaces what the pass draws.
func (p *RenderPass) SetObject(obj RenderObject) { p.object = obj }

// Target returns the framebuffer, nil for the window.
func (p *RenderPass) Target() graphics.Framebuffer { return p.target }

// SetTarget sets the framebuffer, nil for the window.
func (p *RenderPass) SetTarget(fb graphics.Framebuffer) { p.target = fb }

// MaterialPass returns the material pass index drawn.
func (p *RenderPass) MaterialPass() uint32 { return p.materialPass }

// SetMaterialPass selects the material pass index drawn.
func (p *RenderPass) SetMaterialPass(index uint32) { p.materialPass = index }

// ClearDepth reports whether depth is cleared first.
func (p *RenderPass) ClearDepth() bool { return p.clearDepth }

// SetClearDepth sets whether depth is cleared first.
func (p *RenderPass) SetClearDepth(clear bool) { p.clearDepth = clear }

// FaceCulling returns the default culling mode.
func (p *RenderPass) FaceCulling() graphics.FaceCullingMode { return p.faceCulling }

// SetFaceCulling sets the default culling mode.
func (p *RenderPass) SetFaceCulling(mode graphics.FaceCullingMode) { p.faceCulling = mode }

// Blending reports whether blending is enabled.
func (p *RenderPass) Blending() bool { return p.blending }

// SetBlending enables or disables blending.
func (p *RenderPass) SetBlending(enabled bool) { p.blending = enabled }

// DepthTest returns the depth function.
func (p *RenderPass) DepthTest() graphics.DepthTestMode { return p.depthTest }

// SetDepthTest sets the depth function.
func (p *RenderPass) SetDepthTest(mode graphics.DepthTestMode) { p.depthTest = mode }

// Active reports whether the renderer executes the pass.
func (p *RenderPass) Active() bool { return p.active }

// SetActive enables or skips the pass.
func (p *RenderPass) SetActive(active bool) { p.active = active }

// ClearColor returns the clear color, or nil when color is not cleared.
func (p *RenderPass) ClearColor() *graphics.Color {
	if p.clearColor == nil {
		return nil
	}
	c := *p.clearColor
	return &c
}

// SetClearColor sets the clear color; nil disables color clearing.
func (p *RenderPass) SetClearColor(c *graphics.Color) {
	if c == nil {
		p.clearColor = nil
		return
	}
	cc := *c
	p.clearColor = &cc
}

// Viewport returns the explicit viewport, or nil.
func (p *RenderPass) Viewport() *graphics.Viewport {
	if p.viewport == nil {
		return nil
	}
	v := *p.viewport
	return &v
}

// SetViewport sets the viewport; nil covers the whole target.
func (p *RenderPass) SetViewport(v *graphics.Viewport) {
	if v == nil {
		p.viewport = nil
		return
	}
	vv := *v
	p.viewport = &vv
}

// AspectRatio returns the aspect ratio of the viewport, or of the target
// when no viewport is set. Degenerate sizes give 1.
func (p *RenderPass) AspectRatio() float32 {
	if p.viewport != nil {
		return p.viewport.AspectRatio()
	}
	target := p.target
	if target == nil {
		target = p.renderer.device.WindowFramebuffer()
	}
	return target.Size().AspectRatio()
}

// Execute binds the target, applies state, clears, updates every viewpoint
// binding of the renderer and renders the object.
func (p *RenderPass) Execute() {
	device := p.renderer.device
	device.SetFaceCulling(p.faceCulling)
	device.SetDepthTest(p.depthTest)
	device.BindFramebuffer(p.target, p.viewport)
	if p.clearColor != nil || p.clearDepth {
		device.Clear(p.clearColor, p.clearDepth)
	}
	device.SetBlending(p.blending)

	p.renderer.updateViewpointBindings(p.viewpoint, p.AspectRatio())

	if p.object != nil {
		p.object.Render(p.materialPass)
	}
}
