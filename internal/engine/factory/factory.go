// Package factory builds ready to render pieces on top of the renderer and
// the scene: primitive geometry, Phong and flat color materials with their
// shaders, textures, shadow maps, skyboxes and full screen passes.
//
// Factories own what they create. Shaders are shared between the materials
// of a factory and destroyed by Close.
package factory

import (
	"github.com/Faultbox/gltut/internal/engine/renderer"
	"github.com/Faultbox/gltut/internal/engine/scene"
	"github.com/Faultbox/gltut/internal/logger"
)

const log logger.Component = "factory"

// Factory groups the factories of one renderer and scene.
type Factory struct {
	Geometry   *GeometryFactory
	Material   *MaterialFactory
	Texture    *TextureFactory
	Shadow     *ShadowFactory
	RenderPass *RenderPassFactory
	Skybox     *SkyboxFactory
}

// New creates the factories. The texture factory listens to the scene
// window for resizes until Close.
func New(r *renderer.Renderer, s *scene.Scene) *Factory {
	geometry := &GeometryFactory{device: r.Device()}
	return &Factory{
		Geometry:   geometry,
		Material:   newMaterialFactory(r, s),
		Texture:    newTextureFactory(r.Device(), s.Window()),
		Shadow:     newShadowFactory(r),
		RenderPass: &RenderPassFactory{renderer: r, geometry: geometry},
		Skybox:     &SkyboxFactory{renderer: r, geometry: geometry},
	}
}

// Update moves shadow maps to their lights. Call it after the scene update
// and before the renderer executes.
func (f *Factory) Update() {
	f.Shadow.Update()
}

// Close releases shaders, materials, passes, shadow maps and cached solid
// color textures. Geometries and other textures handed out to callers stay
// with the device managers.
func (f *Factory) Close() {
	f.Skybox.close()
	f.RenderPass.close()
	f.Shadow.close()
	f.Material.close()
	f.Texture.close()
	log.Debug("factories closed")
}
