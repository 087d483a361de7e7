package renderer

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gltut/internal/engine/graphics"
)

// RenderObject draws itself with one material pass.
type RenderObject interface {
	Render(materialPass uint32)
}

// Transformed is implemented by render objects with a world transform.
type Transformed interface {
	Transform() mgl32.Mat4
}

// RenderGeometry draws a geometry with a material and a model transform.
type RenderGeometry struct {
	geometry  graphics.Geometry
	material  *Material
	transform mgl32.Mat4
}

// NewRenderGeometry creates a render geometry with an identity transform.
func NewRenderGeometry(geometry graphics.Geometry, material *Material) *RenderGeometry {
	return &RenderGeometry{geometry: geometry, material: material, transform: mgl32.Ident4()}
}

// Geometry returns the drawn geometry.
func (g *RenderGeometry) Geometry() graphics.Geometry { return g.geometry }

// SetGeometry replaces the drawn geometry.
func (g *RenderGeometry) SetGeometry(geometry graphics.Geometry) { g.geometry = geometry }

// Material returns the material, or nil.
func (g *RenderGeometry) Material() *Material { return g.material }

// SetMaterial replaces the material.
func (g *RenderGeometry) SetMaterial(material *Material) { g.material = material }

// Transform returns the model matrix.
func (g *RenderGeometry) Transform() mgl32.Mat4 { return g.transform }

// SetTransform replaces the model matrix.
func (g *RenderGeometry) SetTransform(m mgl32.Mat4) { g.transform = m }

// Render binds the material pass and draws. Materials without a pass at
// the index are skipped.
func (g *RenderGeometry) Render(materialPass uint32) {
	if g.material == nil {
		return
	}
	pass := g.material.Pass(materialPass)
	if pass == nil {
		return
	}
	pass.Bind(g)
	if g.geometry != nil {
		g.geometry.Draw()
	}
}

// RenderGeometryGroup renders a list of geometries in insertion order.
type RenderGeometryGroup struct {
	geometries []*RenderGeometry
}

// Add appends g. Nil and duplicate entries are ignored.
func (gr *RenderGeometryGroup) Add(g *RenderGeometry) {
	if g == nil {
		return
	}
	for _, existing := range gr.geometries {
		if existing == g {
			return
		}
	}
	gr.geometries = append(gr.geometries, g)
}

// Remove drops g.
func (gr *RenderGeometryGroup) Remove(g *RenderGeometry) {
	for i, existing := range gr.geometries {
		if existing == g {
			gr.geometries = append(gr.geometries[:i], gr.geometries[i+1:]...)
			return
		}
	}
}

// Size returns the number of geometries.
func (gr *RenderGeometryGroup) Size() int { return len(gr.geometries) }

// Get returns geometry i, or nil.
func (gr *RenderGeometryGroup) Get(i int) *RenderGeometry {
	if i < 0 || i >= len(gr.geometries) {
		return nil
	}
	return gr.geometries[i]
}

// Render renders every geometry.
func (gr *RenderGeometryGroup) Render(materialPass uint32) {
	for _, g := range gr.geometries {
		g.Render(materialPass)
	}
}

// RenderGroup renders arbitrary objects in order. Adding a group to itself,
// directly or indirectly, is not detected.
type RenderGroup struct {
	objects []RenderObject
	version uint64
}

// Add appends obj. Nil and duplicate entries are ignored.
func (gr *RenderGroup) Add(obj RenderObject) {
	if obj == nil {
		return
	}
	for _, existing := range gr.objects {
		if existing == obj {
			return
		}
	}
	gr.objects = append(gr.objects, obj)
	gr.version++
}

// Remove drops obj.
func (gr *RenderGroup) Remove(obj RenderObject) {
	for i, existing := range gr.objects {
		if existing == obj {
			gr.objects = append(gr.objects[:i], gr.objects[i+1:]...)
			gr.version++
			return
		}
	}
}

// Size returns the number of objects.
func (gr *RenderGroup) Size() int { return len(gr.objects) }

// Objects returns the objects in render order.
func (gr *RenderGroup) Objects() []RenderObject {
	return gr.objects
}

// Sort reorders objects with a stable sort.
func (gr *RenderGroup) Sort(less func(a, b RenderObject) bool) {
	sort.SliceStable(gr.objects, func(i, j int) bool {
		return less(gr.objects[i], gr.objects[j])
	})
}

// Render renders every object.
func (gr *RenderGroup) Render(materialPass uint32) {
	for _, obj := range gr.objects {
		obj.Render(materialPass)
	}
}
