package factory

import (
	"fmt"

	"github.com/Faultbox/gltut/internal/engine/graphics"
	"github.com/Faultbox/gltut/internal/engine/renderer"
)

type windowPass struct {
	pass     *renderer.RenderPass
	material *renderer.Material
	geometry *renderer.RenderGeometry
}

// RenderPassFactory creates passes that are not tied to the scene.
type RenderPassFactory struct {
	renderer *renderer.Renderer
	geometry *GeometryFactory

	shader *renderer.ShaderBinding
	quad   graphics.Geometry
	passes []windowPass
}

// TextureToWindow draws texture over viewport of the window, or the whole
// window when viewport is nil. The pass clears depth but not color.
func (f *RenderPassFactory) TextureToWindow(texture graphics.Texture, viewport *graphics.Viewport, priority int) (*renderer.RenderPass, error) {
	if texture == nil {
		return nil, fmt.Errorf("%w: nil texture", graphics.ErrInvalidTexture)
	}
	if f.shader == nil {
		b, err := StandardShaderBinding(f.renderer, textureToWindowVertexShader, textureToWindowFragmentShader, StandardNames{})
		if err != nil {
			return nil, fmt.Errorf("creating texture to window shader: %w", err)
		}
		graphics.SetIntByName(b.Shader(), "textureSampler", 0)
		f.shader = b
	}
	if f.quad == nil {
		q, err := f.geometry.ScreenQuad()
		if err != nil {
			return nil, fmt.Errorf("creating screen quad: %w", err)
		}
		f.quad = q
	}

	material := f.renderer.CreateMaterial()
	mp := material.CreatePass(renderer.MaterialPassLighting, f.shader, 1, 0)
	mp.Textures().SetTexture(0, texture)
	mp.SetFaceCulling(graphics.FaceCullingNone)
	geometry := f.renderer.CreateGeometry(f.quad, material)

	pass := f.renderer.CreatePass(renderer.PassConfig{
		Object:       geometry,
		MaterialPass: renderer.MaterialPassLighting,
		ClearDepth:   true,
		Viewport:     viewport,
		FaceCulling:  graphics.FaceCullingNone,
	}, priority)
	f.passes = append(f.passes, windowPass{pass: pass, material: material, geometry: geometry})
	return pass, nil
}

// Remove destroys a pass created by TextureToWindow.
func (f *RenderPassFactory) Remove(pass *renderer.RenderPass) {
	for i, p := range f.passes {
		if p.pass != pass {
			continue
		}
		f.passes = append(f.passes[:i], f.passes[i+1:]...)
		f.renderer.RemovePass(p.pass)
		f.renderer.RemoveGeometry(p.geometry)
		f.renderer.RemoveMaterial(p.material)
		return
	}
}

func (f *RenderPassFactory) close() {
	for len(f.passes) > 0 {
		f.Remove(f.passes[len(f.passes)-1].pass)
	}
	removeShaderBinding(f.renderer, f.shader)
	f.shader = nil
	if f.quad != nil {
		f.renderer.Device().Geometries().Remove(f.quad)
		f.quad = nil
	}
}
