package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/gltut/internal/engine/graphics"
	"github.com/Faultbox/gltut/internal/engine/renderer"
	"github.com/Faultbox/gltut/internal/engine/scene"
)

// MaterialModel wraps a renderer material with typed setters.
type MaterialModel interface {
	Material() *renderer.Material
}

type lightCounts struct {
	directional, point, spot int
}

// MaterialFactory creates material models and shares their shaders.
type MaterialFactory struct {
	renderer *renderer.Renderer
	scene    *scene.Scene

	depthShader     *renderer.ShaderBinding
	flatColorShader *renderer.ShaderBinding
	phongShaders    map[lightCounts]*PhongShaderModel

	models []MaterialModel
}

func newMaterialFactory(r *renderer.Renderer, s *scene.Scene) *MaterialFactory {
	return &MaterialFactory{
		renderer:     r,
		scene:        s,
		phongShaders: make(map[lightCounts]*PhongShaderModel),
	}
}

func (f *MaterialFactory) depth() (*renderer.ShaderBinding, error) {
	if f.depthShader == nil {
		b, err := DepthShader(f.renderer)
		if err != nil {
			return nil, fmt.Errorf("creating depth shader: %w", err)
		}
		f.depthShader = b
	}
	return f.depthShader, nil
}

// FlatColor creates an unlit material. A depth pass is added when the
// material casts shadows.
func (f *MaterialFactory) FlatColor(castShadows bool) (*FlatColorMaterialModel, error) {
	if f.flatColorShader == nil {
		b, err := FlatColorShader(f.renderer)
		if err != nil {
			return nil, fmt.Errorf("creating flat color shader: %w", err)
		}
		f.flatColorShader = b
	}
	var depth *renderer.ShaderBinding
	if castShadows {
		var err error
		if depth, err = f.depth(); err != nil {
			return nil, err
		}
	}

	m := f.renderer.CreateMaterial()
	lighting := m.CreatePass(renderer.MaterialPassLighting, f.flatColorShader, 1, 0)
	graphics.SetFloatByName(lighting.Arguments(), "transparencyThreshold", 0)
	if depth != nil {
		m.CreatePass(renderer.MaterialPassDepth, depth, 0, 0)
	}
	model := &FlatColorMaterialModel{material: m}
	f.models = append(f.models, model)
	return model, nil
}

// PhongShader returns the Phong shader for the given light counts, creating
// it on first use.
func (f *MaterialFactory) PhongShader(maxDirectional, maxPoint, maxSpot int) (*PhongShaderModel, error) {
	key := lightCounts{maxDirectional, maxPoint, maxSpot}
	if m, ok := f.phongShaders[key]; ok {
		return m, nil
	}
	m, err := newPhongShaderModel(f.renderer, f.scene, maxDirectional, maxPoint, maxSpot)
	if err != nil {
		return nil, err
	}
	f.phongShaders[key] = m
	log.Debug("phong shader created", zap.Int("directional", maxDirectional),
		zap.Int("point", maxPoint), zap.Int("spot", maxSpot))
	return m, nil
}

// Phong creates a lit material using shader. Shadow maps of the scene
// lights are routed into the texture slots after the diffuse and specular
// maps.
func (f *MaterialFactory) Phong(shader *PhongShaderModel, castShadows bool) (*PhongMaterialModel, error) {
	if shader == nil {
		return nil, fmt.Errorf("creating phong material: nil shader model")
	}
	var depth *renderer.ShaderBinding
	if castShadows {
		var err error
		if depth, err = f.depth(); err != nil {
			return nil, err
		}
	}

	m := f.renderer.CreateMaterial()
	lighting := m.CreatePass(renderer.MaterialPassLighting, shader.ShaderBinding(), shader.TextureSlots(), 0)
	graphics.SetFloatByName(lighting.Arguments(), "shininess", DefaultShininess)
	if depth != nil {
		m.CreatePass(renderer.MaterialPassDepth, depth, 0, 0)
	}

	binding := f.scene.CreateTextureSetBinding(lighting.Textures())
	binding.Bind(scene.DirectionalLightShadowMap, PhongTextureSlots, shader.maxDirectional)
	binding.Bind(scene.SpotLightShadowMap, PhongTextureSlots+shader.maxDirectional, shader.maxSpot)

	model := &PhongMaterialModel{material: m, shader: shader, textureBinding: binding}
	f.models = append(f.models, model)
	return model, nil
}

// Remove destroys the material of a model created by f.
func (f *MaterialFactory) Remove(model MaterialModel) {
	for i, m := range f.models {
		if m != model {
			continue
		}
		f.models = append(f.models[:i], f.models[i+1:]...)
		if p, ok := model.(*PhongMaterialModel); ok {
			f.scene.RemoveTextureSetBinding(p.textureBinding)
		}
		f.renderer.RemoveMaterial(model.Material())
		return
	}
}

// Models returns the live material models.
func (f *MaterialFactory) Models() []MaterialModel {
	return f.models
}

func (f *MaterialFactory) close() {
	for len(f.models) > 0 {
		f.Remove(f.models[len(f.models)-1])
	}
	for key, m := range f.phongShaders {
		m.remove()
		delete(f.phongShaders, key)
	}
	removeShaderBinding(f.renderer, f.flatColorShader)
	removeShaderBinding(f.renderer, f.depthShader)
	f.flatColorShader = nil
	f.depthShader = nil
}

// FlatColorMaterialModel is an unlit material colored by one texture.
type FlatColorMaterialModel struct {
	material *renderer.Material
}

// Material returns the wrapped material.
func (m *FlatColorMaterialModel) Material() *renderer.Material { return m.material }

func (m *FlatColorMaterialModel) lighting() *renderer.MaterialPass {
	return m.material.Pass(renderer.MaterialPassLighting)
}

// SetColor sets the color texture.
func (m *FlatColorMaterialModel) SetColor(t graphics.Texture) {
	m.lighting().Textures().SetTexture(0, t)
}

// SetTransparencyThreshold discards fragments with a lower alpha. Values
// outside [0, 1] are ignored and 0 disables the test.
func (m *FlatColorMaterialModel) SetTransparencyThreshold(threshold float32) bool {
	if threshold < 0 || threshold > 1 {
		return false
	}
	graphics.SetFloatByName(m.lighting().Arguments(), "transparencyThreshold", threshold)
	return true
}

// SetTransparent marks the lighting pass as blended.
func (m *FlatColorMaterialModel) SetTransparent(transparent bool) {
	m.lighting().SetTransparent(transparent)
}

// PhongMaterialModel is a lit material with diffuse and specular maps.
type PhongMaterialModel struct {
	material       *renderer.Material
	shader         *PhongShaderModel
	textureBinding *scene.TextureSetBinding
}

// Material returns the wrapped material.
func (m *PhongMaterialModel) Material() *renderer.Material { return m.material }

// ShaderModel returns the shader the material was created with.
func (m *PhongMaterialModel) ShaderModel() *PhongShaderModel { return m.shader }

func (m *PhongMaterialModel) lighting() *renderer.MaterialPass {
	return m.material.Pass(renderer.MaterialPassLighting)
}

// SetDiffuse sets the diffuse map.
func (m *PhongMaterialModel) SetDiffuse(t graphics.Texture) {
	m.lighting().Textures().SetTexture(PhongDiffuseSlot, t)
}

// SetSpecular sets the specular map.
func (m *PhongMaterialModel) SetSpecular(t graphics.Texture) {
	m.lighting().Textures().SetTexture(PhongSpecularSlot, t)
}

// SetShininess sets the specular exponent of this material only.
func (m *PhongMaterialModel) SetShininess(shininess float32) {
	graphics.SetFloatByName(m.lighting().Arguments(), "shininess", shininess)
}

// SetTransparent marks the lighting pass as blended.
func (m *PhongMaterialModel) SetTransparent(transparent bool) {
	m.lighting().SetTransparent(transparent)
}
