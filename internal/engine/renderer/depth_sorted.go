package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

// sortEpsilon is the largest per-element change of the view-projection
// matrix that does not trigger a re-sort.
const sortEpsilon = 1e-6

// DepthSortedRenderPass renders a group back to front relative to the pass
// viewpoint, for alpha blended objects.
type DepthSortedRenderPass struct {
	*RenderPass
	source  *RenderGroup
	sorted  RenderGroup
	last    mgl32.Mat4
	version uint64
	valid   bool
}

func newDepthSortedRenderPass(r *Renderer, cfg PassConfig, group *RenderGroup) *DepthSortedRenderPass {
	p := &DepthSortedRenderPass{source: group}
	cfg.Object = &p.sorted
	p.RenderPass = newRenderPass(r, cfg)
	return p
}

// Group returns the source group.
func (p *DepthSortedRenderPass) Group() *RenderGroup {
	return p.source
}

// Execute re-sorts when the group or the view-projection matrix changed,
// then runs the pass.
func (p *DepthSortedRenderPass) Execute() {
	p.RenderPass.object = &p.sorted
	if p.source != nil && p.viewpoint != nil {
		vp := p.viewpoint.ProjectionMatrix(p.AspectRatio()).Mul4(p.viewpoint.ViewMatrix())
		if !p.valid || p.version != p.source.version || !vp.ApproxEqualThreshold(p.last, sortEpsilon) {
			p.resort(p.viewpoint.ViewMatrix())
			p.last = vp
			p.version = p.source.version
			p.valid = true
		}
	}
	p.RenderPass.Execute()
}

// resort copies the source group and orders it by view space depth,
// farthest first. Objects without a transform sort as if at the origin.
func (p *DepthSortedRenderPass) resort(view mgl32.Mat4) {
	p.sorted.objects = append(p.sorted.objects[:0], p.source.objects...)
	p.sorted.Sort(func(a, b RenderObject) bool {
		return viewDepth(view, a) < viewDepth(view, b)
	})
}

// viewDepth returns the view space z of the object origin. The camera looks
// down -z, so smaller values are farther away.
func viewDepth(view mgl32.Mat4, obj RenderObject) float32 {
	var pos mgl32.Vec4
	if t, ok := obj.(Transformed); ok {
		pos = t.Transform().Col(3)
	} else {
		pos = mgl32.Vec4{0, 0, 0, 1}
	}
	return view.Mul4x1(pos).Z()
}

// Sorted returns the objects in the order of the last execution.
func (p *DepthSortedRenderPass) Sorted() []RenderObject {
	return p.sorted.objects
}
