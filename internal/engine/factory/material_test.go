package factory

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gltut/internal/engine/graphics"
	"github.com/Faultbox/gltut/internal/engine/graphics/headless"
	"github.com/Faultbox/gltut/internal/engine/renderer"
	"github.com/Faultbox/gltut/internal/engine/scene"
)

func TestStandardShaderBinding(t *testing.T) {
	env := newTestEnv(t)
	names := StandardNames{View: "view", Projection: "projection", Model: "model"}

	b, err := StandardShaderBinding(env.renderer, depthVertexShader, depthFragmentShader, names)
	if err != nil {
		t.Fatalf("failed to create binding: %v", err)
	}
	tests := []struct {
		param renderer.Parameter
		name  string
		bound bool
	}{
		{renderer.ViewpointViewMatrix, "view", true},
		{renderer.ViewpointProjectionMatrix, "projection", true},
		{renderer.GeometryMatrix, "model", true},
		{renderer.ViewpointPosition, "", false},
		{renderer.GeometryNormalMatrix, "", false},
	}
	for _, tt := range tests {
		name, ok := b.BoundParameter(tt.param)
		if ok != tt.bound || name != tt.name {
			t.Errorf("%v: expected %q %t, got %q %t", tt.param, tt.name, tt.bound, name, ok)
		}
	}
	if env.renderer.BindingCount() != 1 {
		t.Errorf("expected one registered binding, got %d", env.renderer.BindingCount())
	}

	names.NormalMatrix = "normalMat"
	if _, err := StandardShaderBinding(env.renderer, depthVertexShader, depthFragmentShader, names); !errors.Is(err, ErrMissingUniform) {
		t.Errorf("expected ErrMissingUniform, got %v", err)
	}
	if env.dev.Shaders().Size() != 1 {
		t.Errorf("expected the failed shader to be removed, got %d shaders", env.dev.Shaders().Size())
	}

	env.dev.FailNext(headless.KindShader)
	if _, err := StandardShaderBinding(env.renderer, depthVertexShader, depthFragmentShader, DefaultNames); !errors.Is(err, headless.ErrInjected) {
		t.Errorf("expected the device error, got %v", err)
	}
	if env.renderer.BindingCount() != 1 {
		t.Errorf("expected failures not to register bindings, got %d", env.renderer.BindingCount())
	}
}

func TestFlatColorMaterial(t *testing.T) {
	env := newTestEnv(t)
	f := env.factory.Material

	plain, err := f.FlatColor(false)
	if err != nil {
		t.Fatalf("failed to create material: %v", err)
	}
	if plain.Material().Pass(renderer.MaterialPassDepth) != nil {
		t.Error("expected no depth pass without shadows")
	}
	casting, err := f.FlatColor(true)
	if err != nil {
		t.Fatalf("failed to create material: %v", err)
	}
	other, err := f.FlatColor(true)
	if err != nil {
		t.Fatalf("failed to create material: %v", err)
	}

	lighting := casting.Material().Pass(renderer.MaterialPassLighting)
	if lighting.ShaderBinding() != plain.Material().Pass(renderer.MaterialPassLighting).ShaderBinding() {
		t.Error("expected flat color materials to share the shader")
	}
	depth := casting.Material().Pass(renderer.MaterialPassDepth)
	if depth == nil || depth.ShaderBinding() != other.Material().Pass(renderer.MaterialPassDepth).ShaderBinding() {
		t.Fatal("expected shadow casters to share the depth shader")
	}
	if lighting.Textures().SlotCount() != 1 {
		t.Errorf("expected one texture slot, got %d", lighting.Textures().SlotCount())
	}

	shader := shaderOf(lighting.ShaderBinding())
	expectValue(t, shader, "colorSampler", int32(0))
	expectValue(t, shader, "transparencyThreshold", float32(0))

	tests := []struct {
		threshold float32
		ok        bool
	}{
		{-0.1, false},
		{1.5, false},
		{0.5, true},
	}
	for _, tt := range tests {
		if ok := casting.SetTransparencyThreshold(tt.threshold); ok != tt.ok {
			t.Errorf("threshold %g: expected %t, got %t", tt.threshold, tt.ok, ok)
		}
	}
	// Thresholds live on the material, not on the shared shader
	lighting.Arguments().Bind()
	expectValue(t, shader, "transparencyThreshold", float32(0.5))
	plain.Material().Pass(renderer.MaterialPassLighting).Arguments().Bind()
	expectValue(t, shader, "transparencyThreshold", float32(0))

	casting.SetTransparent(true)
	if !lighting.Transparent() {
		t.Error("expected the lighting pass to be transparent")
	}

	f.Remove(casting)
	if len(f.Models()) != 2 {
		t.Errorf("expected two models, got %d", len(f.Models()))
	}
	for _, m := range env.renderer.Materials() {
		if m == casting.Material() {
			t.Error("expected the removed material to leave the renderer")
		}
	}
}

func TestPhongShaderCache(t *testing.T) {
	env := newTestEnv(t)
	f := env.factory.Material

	a, err := f.PhongShader(2, 1, 1)
	if err != nil {
		t.Fatalf("failed to create shader: %v", err)
	}
	b, err := f.PhongShader(2, 1, 1)
	if err != nil {
		t.Fatalf("failed to create shader: %v", err)
	}
	c, err := f.PhongShader(1, 1, 1)
	if err != nil {
		t.Fatalf("failed to create shader: %v", err)
	}
	if a != b {
		t.Error("expected the same light counts to share a shader")
	}
	if a == c {
		t.Error("expected different light counts to get their own shader")
	}
	if _, err := f.PhongShader(-1, 0, 0); err == nil {
		t.Error("expected error for negative light counts")
	}

	shader := shaderOf(a.ShaderBinding())
	expectValue(t, shader, "diffuseSampler", int32(PhongDiffuseSlot))
	expectValue(t, shader, "specularSampler", int32(PhongSpecularSlot))
	expectValue(t, shader, "shininess", float32(DefaultShininess))
	expectValue(t, shader, "shadowSamplers[0]", int32(2))
	expectValue(t, shader, "shadowSamplers[2]", int32(4))
	if _, ok := shader.Value("shadowSamplers[3]"); ok {
		t.Error("expected only three shadow samplers")
	}
	if a.TextureSlots() != 5 {
		t.Errorf("expected 5 texture slots, got %d", a.TextureSlots())
	}
	for _, p := range []renderer.Parameter{renderer.ViewpointPosition, renderer.GeometryNormalMatrix} {
		if _, ok := a.ShaderBinding().BoundParameter(p); !ok {
			t.Errorf("expected %v to be bound", p)
		}
	}
}

func TestPhongShadowMapBias(t *testing.T) {
	env := newTestEnv(t)
	m, err := env.factory.Material.PhongShader(1, 0, 0)
	if err != nil {
		t.Fatalf("failed to create shader: %v", err)
	}
	shader := shaderOf(m.ShaderBinding())
	expectValue(t, shader, "minShadowMapBias", float32(DefaultMinShadowMapBias))
	expectValue(t, shader, "maxShadowMapBias", float32(DefaultMaxShadowMapBias))

	tests := []struct {
		name     string
		set      func()
		min, max float32
	}{
		{"min above max", func() { m.SetMinShadowMapBias(1) }, DefaultMaxShadowMapBias, DefaultMaxShadowMapBias},
		{"negative min", func() { m.SetMinShadowMapBias(-1) }, 0, DefaultMaxShadowMapBias},
		{"raise max", func() { m.SetMinShadowMapBias(0.001); m.SetMaxShadowMapBias(0.01) }, 0.001, 0.01},
		{"negative max", func() { m.SetMaxShadowMapBias(-1) }, 0, 0},
	}
	for _, tt := range tests {
		tt.set()
		if m.MinShadowMapBias() != tt.min || m.MaxShadowMapBias() != tt.max {
			t.Errorf("%s: expected %g/%g, got %g/%g", tt.name, tt.min, tt.max, m.MinShadowMapBias(), m.MaxShadowMapBias())
		}
		expectValue(t, shader, "minShadowMapBias", tt.min)
		expectValue(t, shader, "maxShadowMapBias", tt.max)
	}
}

func TestPhongMaterial(t *testing.T) {
	env := newTestEnv(t)
	f := env.factory
	shaderModel, err := f.Material.PhongShader(2, 1, 1)
	if err != nil {
		t.Fatalf("failed to create shader: %v", err)
	}
	if _, err := f.Material.Phong(nil, false); err == nil {
		t.Error("expected error without a shader model")
	}
	m, err := f.Material.Phong(shaderModel, true)
	if err != nil {
		t.Fatalf("failed to create material: %v", err)
	}
	if m.ShaderModel() != shaderModel {
		t.Error("expected the creation shader model")
	}
	if m.Material().Pass(renderer.MaterialPassDepth) == nil {
		t.Error("expected a depth pass for a shadow caster")
	}
	lighting := m.Material().Pass(renderer.MaterialPassLighting)
	textures := lighting.Textures()
	if textures.SlotCount() != 5 {
		t.Fatalf("expected 5 texture slots, got %d", textures.SlotCount())
	}

	diffuse, _ := f.Texture.SolidColor(graphics.RGB(1, 1, 1))
	specular, _ := f.Texture.SolidColor(graphics.RGB(0.5, 0.5, 0.5))
	m.SetDiffuse(diffuse)
	m.SetSpecular(specular)
	m.SetShininess(8)
	if textures.Texture(PhongDiffuseSlot) != diffuse || textures.Texture(PhongSpecularSlot) != specular {
		t.Error("expected diffuse and specular maps in slots 0 and 1")
	}
	shader := shaderOf(shaderModel.ShaderBinding())
	lighting.Arguments().Bind()
	expectValue(t, shader, "shininess", float32(8))

	// A second material on the same shader keeps the default shininess
	plain, err := f.Material.Phong(shaderModel, false)
	if err != nil {
		t.Fatalf("failed to create material: %v", err)
	}
	plain.Material().Pass(renderer.MaterialPassLighting).Arguments().Bind()
	expectValue(t, shader, "shininess", float32(DefaultShininess))
	lighting.Arguments().Bind()
	expectValue(t, shader, "shininess", float32(8))
	f.Material.Remove(plain)

	// Shadow maps go after the material maps: directional first, then spot
	cfg := ShadowConfig{FrustumSize: 20, Near: 0.1, Far: 50, MapSize: 64}
	env.scene.CreateLight(scene.LightDirectional, mgl32.Translate3D(0, 10, 0), nil)
	dir := env.scene.CreateLight(scene.LightDirectional, mgl32.Translate3D(0, 10, 0), nil)
	spot := env.scene.CreateLight(scene.LightSpot, mgl32.Translate3D(0, 5, 0), nil)
	spot.SetOuterAngle(0.5)
	dirMap, err := f.Shadow.Create(dir, env.scene.RenderGroup(), cfg)
	if err != nil {
		t.Fatalf("failed to create shadow map: %v", err)
	}
	spotMap, err := f.Shadow.Create(spot, env.scene.RenderGroup(), cfg)
	if err != nil {
		t.Fatalf("failed to create shadow map: %v", err)
	}
	env.scene.Update()

	want := []graphics.Texture{diffuse, specular, nil, dirMap.Texture(), spotMap.Texture()}
	for slot, tex := range want {
		if textures.Texture(slot) != tex {
			t.Errorf("slot %d: expected %v, got %v", slot, tex, textures.Texture(slot))
		}
	}
	expectValue(t, shader, "directionalLights[1].shadowMatrix", dirMap.ShadowMatrix())
	expectValue(t, shader, "spotLights[0].shadowFar", float32(50))
	expectValue(t, shader, "spotLights[0].pos", mgl32.Vec3{0, 5, 0})

	f.Material.Remove(m)
	if len(f.Material.Models()) != 0 {
		t.Errorf("expected no models, got %d", len(f.Material.Models()))
	}
}
