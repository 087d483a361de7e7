package factory

import (
	"fmt"

	"github.com/Faultbox/gltut/internal/engine/graphics"
	"github.com/Faultbox/gltut/internal/engine/renderer"
)

// Skybox is a cubemap drawn behind everything else.
type Skybox struct {
	pass     *renderer.RenderPass
	material *renderer.Material
	geometry *renderer.RenderGeometry
}

// Pass returns the render pass drawing the skybox.
func (s *Skybox) Pass() *renderer.RenderPass { return s.pass }

// SkyboxFactory creates skyboxes sharing one shader and one inverted cube.
type SkyboxFactory struct {
	renderer *renderer.Renderer
	geometry *GeometryFactory

	shader   *renderer.ShaderBinding
	cube     graphics.Geometry
	skyboxes []*Skybox
}

// Create adds a pass drawing cubemap around viewpoint. The pass does not
// clear and tests depth with LessEqual against the far plane, so it must
// run after the passes drawing the scene into the same target.
func (f *SkyboxFactory) Create(cubemap graphics.Texture, viewpoint renderer.Viewpoint, priority int) (*Skybox, error) {
	if cubemap == nil || cubemap.Type() != graphics.TextureTypeCubemap {
		return nil, fmt.Errorf("%w: skybox needs a cubemap", graphics.ErrInvalidTexture)
	}
	if f.shader == nil {
		b, err := SkyboxShader(f.renderer)
		if err != nil {
			return nil, fmt.Errorf("creating skybox shader: %w", err)
		}
		f.shader = b
	}
	if f.cube == nil {
		cube, err := f.geometry.Box(-2, -2, -2)
		if err != nil {
			return nil, fmt.Errorf("creating skybox cube: %w", err)
		}
		f.cube = cube
	}

	material := f.renderer.CreateMaterial()
	material.CreatePass(renderer.MaterialPassLighting, f.shader, 1, 0).Textures().SetTexture(0, cubemap)
	geometry := f.renderer.CreateGeometry(f.cube, material)
	pass := f.renderer.CreatePass(renderer.PassConfig{
		Viewpoint:    viewpoint,
		Object:       geometry,
		MaterialPass: renderer.MaterialPassLighting,
	}, priority)
	pass.SetDepthTest(graphics.DepthTestLessEqual)

	s := &Skybox{pass: pass, material: material, geometry: geometry}
	f.skyboxes = append(f.skyboxes, s)
	return s, nil
}

// Remove destroys a skybox created by f.
func (f *SkyboxFactory) Remove(s *Skybox) {
	for i, existing := range f.skyboxes {
		if existing != s {
			continue
		}
		f.skyboxes = append(f.skyboxes[:i], f.skyboxes[i+1:]...)
		f.renderer.RemovePass(s.pass)
		f.renderer.RemoveGeometry(s.geometry)
		f.renderer.RemoveMaterial(s.material)
		return
	}
}

func (f *SkyboxFactory) close() {
	for len(f.skyboxes) > 0 {
		f.Remove(f.skyboxes[len(f.skyboxes)-1])
	}
	removeShaderBinding(f.renderer, f.shader)
	f.shader = nil
	if f.cube != nil {
		f.renderer.Device().Geometries().Remove(f.cube)
		f.cube = nil
	}
}
