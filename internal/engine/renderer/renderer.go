package renderer

import (
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/gltut/internal/engine/graphics"
	"github.com/Faultbox/gltut/internal/logger"
)

const log logger.Component = "renderer"

type passEntry struct {
	pass     Pass
	priority int
}

// Renderer owns materials, render geometries, bindings and the pass list.
type Renderer struct {
	device     graphics.Device
	materials  []*Material
	geometries []*RenderGeometry
	groups     []*RenderGroup
	bindings   []Binding
	passes     []passEntry
}

// New creates a renderer drawing with device.
func New(device graphics.Device) *Renderer {
	return &Renderer{device: device}
}

// Device returns the graphics device.
func (r *Renderer) Device() graphics.Device {
	return r.device
}

// CreateMaterial creates an empty material.
func (r *Renderer) CreateMaterial() *Material {
	m := NewMaterial(r.device)
	r.materials = append(r.materials, m)
	return m
}

// RemoveMaterial forgets m.
func (r *Renderer) RemoveMaterial(m *Material) {
	r.materials = removeItem(r.materials, m)
}

// Materials returns the owned materials.
func (r *Renderer) Materials() []*Material {
	return r.materials
}

// CreateGeometry creates a render geometry with an identity transform.
func (r *Renderer) CreateGeometry(geometry graphics.Geometry, material *Material) *RenderGeometry {
	g := NewRenderGeometry(geometry, material)
	r.geometries = append(r.geometries, g)
	return g
}

// RemoveGeometry forgets g.
func (r *Renderer) RemoveGeometry(g *RenderGeometry) {
	r.geometries = removeItem(r.geometries, g)
}

// Geometries returns the owned render geometries.
func (r *Renderer) Geometries() []*RenderGeometry {
	return r.geometries
}

// CreateGroup creates an empty render group.
func (r *Renderer) CreateGroup() *RenderGroup {
	g := &RenderGroup{}
	r.groups = append(r.groups, g)
	return g
}

// RemoveGroup forgets g.
func (r *Renderer) RemoveGroup(g *RenderGroup) {
	r.groups = removeItem(r.groups, g)
}

// CreateShaderBinding creates and registers a named-uniform binding.
func (r *Renderer) CreateShaderBinding(shader graphics.Shader) *ShaderBinding {
	b := NewShaderBinding(shader)
	r.AddBinding(b)
	return b
}

// CreateUniformBufferBinding creates and registers a uniform buffer binding.
func (r *Renderer) CreateUniformBufferBinding(buffer graphics.ShaderUniformBuffer) *UniformBufferBinding {
	b := NewUniformBufferBinding(buffer)
	r.AddBinding(b)
	return b
}

// AddBinding registers b for viewpoint updates. Duplicates are ignored.
func (r *Renderer) AddBinding(b Binding) {
	if b == nil {
		return
	}
	for _, existing := range r.bindings {
		if existing == b {
			return
		}
	}
	r.bindings = append(r.bindings, b)
}

// RemoveBinding unregisters b.
func (r *Renderer) RemoveBinding(b Binding) {
	r.bindings = removeItem(r.bindings, b)
}

// BindingCount returns the number of registered bindings.
func (r *Renderer) BindingCount() int {
	return len(r.bindings)
}

// updateViewpointBindings pushes vp to every binding, not only the ones of
// the shaders about to draw.
func (r *Renderer) updateViewpointBindings(vp Viewpoint, aspectRatio float32) {
	if vp == nil {
		return
	}
	for _, b := range r.bindings {
		b.UpdateViewpoint(vp, aspectRatio)
	}
}

// CreatePass creates and schedules a render pass.
func (r *Renderer) CreatePass(cfg PassConfig, priority int) *RenderPass {
	p := newRenderPass(r, cfg)
	r.AddPass(p, priority)
	log.Debug("render pass created", zap.Int("priority", priority), zap.Uint32("material_pass", cfg.MaterialPass))
	return p
}

// CreateDepthSortedPass creates and schedules a pass rendering group back
// to front. cfg.Object is ignored.
func (r *Renderer) CreateDepthSortedPass(cfg PassConfig, group *RenderGroup, priority int) *DepthSortedRenderPass {
	p := newDepthSortedRenderPass(r, cfg, group)
	r.AddPass(p, priority)
	log.Debug("depth sorted pass created", zap.Int("priority", priority))
	return p
}

// AddPass schedules an externally built pass. Adding a scheduled pass
// changes its priority.
func (r *Renderer) AddPass(p Pass, priority int) {
	if p == nil {
		return
	}
	if r.SetPassPriority(p, priority) {
		return
	}
	r.passes = append(r.passes, passEntry{pass: p, priority: priority})
	r.sortPasses()
}

// RemovePass unschedules p.
func (r *Renderer) RemovePass(p Pass) {
	for i, e := range r.passes {
		if e.pass == p {
			r.passes = append(r.passes[:i], r.passes[i+1:]...)
			return
		}
	}
}

// SetPassPriority changes the priority of p and reorders the list. Passes
// of equal priority keep their relative order. It reports whether p is
// scheduled.
func (r *Renderer) SetPassPriority(p Pass, priority int) bool {
	for i := range r.passes {
		if r.passes[i].pass == p {
			r.passes[i].priority = priority
			r.sortPasses()
			return true
		}
	}
	return false
}

// PassPriority returns the priority of p.
func (r *Renderer) PassPriority(p Pass) (int, bool) {
	for _, e := range r.passes {
		if e.pass == p {
			return e.priority, true
		}
	}
	return 0, false
}

// Passes returns the scheduled passes in execution order.
func (r *Renderer) Passes() []Pass {
	out := make([]Pass, len(r.passes))
	for i, e := range r.passes {
		out[i] = e.pass
	}
	return out
}

func (r *Renderer) sortPasses() {
	sort.SliceStable(r.passes, func(i, j int) bool {
		return r.passes[i].priority < r.passes[j].priority
	})
}

// Execute runs every active pass in ascending priority order.
func (r *Renderer) Execute() {
	for _, e := range r.passes {
		if e.pass.Active() {
			e.pass.Execute()
		}
	}
}

func removeItem[T comparable](items []T, item T) []T {
	for i, it := range items {
		if it == item {
			return append(items[:i], items[i+1:]...)
		}
	}
	return items
}
