package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gltut/internal/engine/renderer"
)

// GeometryNode places a render geometry in the hierarchy. The geometry
// transform always equals the node's global transform.
type GeometryNode struct {
	Node
	geometry *renderer.RenderGeometry
}

func newGeometryNode(geometry *renderer.RenderGeometry, transform mgl32.Mat4, parent SceneNode) *GeometryNode {
	g := &GeometryNode{geometry: geometry}
	g.onGlobalChange = geometry.SetTransform
	g.init(transform, parent)
	geometry.SetTransform(g.global)
	return g
}

// RenderGeometry returns the geometry drawn for this node.
func (g *GeometryNode) RenderGeometry() *renderer.RenderGeometry {
	return g.geometry
}

// Material returns the material of the render geometry.
func (g *GeometryNode) Material() *renderer.Material {
	return g.geometry.Material()
}

// SetMaterial replaces the material of the render geometry.
func (g *GeometryNode) SetMaterial(m *renderer.Material) {
	g.geometry.SetMaterial(m)
}
