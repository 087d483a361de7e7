package factory

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/gltut/internal/engine/graphics"
	"github.com/Faultbox/gltut/internal/engine/renderer"
	"github.com/Faultbox/gltut/internal/engine/scene"
)

// ShadowPassPriority runs shadow passes before the passes that sample them.
const ShadowPassPriority = -1000

// maxSpotShadowFOV bounds the perspective of spot light shadows.
const maxSpotShadowFOV = 170 * math.Pi / 180

var (
	// ErrUnsupportedLight is returned for lights without shadow support.
	ErrUnsupportedLight = errors.New("light type does not support shadows")
	// ErrInvalidShadowMap is returned for bad shadow map parameters.
	ErrInvalidShadowMap = errors.New("invalid shadow map")
)

// ShadowConfig sizes the light frustum and the depth texture.
type ShadowConfig struct {
	// FrustumSize is the side of the orthographic frustum of directional
	// lights. Spot lights use their outer cone angle instead.
	FrustumSize float32
	Near        float32
	Far         float32
	MapSize     int
}

// Validate reports the first bad parameter.
func (c ShadowConfig) Validate() error {
	switch {
	case c.FrustumSize <= 0:
		return fmt.Errorf("%w: frustum size %g", ErrInvalidShadowMap, c.FrustumSize)
	case c.Near <= 0:
		return fmt.Errorf("%w: near plane %g", ErrInvalidShadowMap, c.Near)
	case c.Far <= c.Near:
		return fmt.Errorf("%w: far plane %g not beyond near %g", ErrInvalidShadowMap, c.Far, c.Near)
	case c.MapSize <= 0:
		return fmt.Errorf("%w: map size %d", ErrInvalidShadowMap, c.MapSize)
	}
	return nil
}

// ShadowMap renders the depth of a shadow caster from a light into a float
// texture. It implements scene.ShadowMap.
type ShadowMap struct {
	light       *scene.LightNode
	config      ShadowConfig
	viewpoint   *renderer.StaticViewpoint
	texture     graphics.Texture
	framebuffer graphics.TextureFramebuffer
	pass        *renderer.RenderPass
	matrix      mgl32.Mat4
}

// Texture returns the depth texture.
func (m *ShadowMap) Texture() graphics.Texture { return m.texture }

// Viewpoint returns the light viewpoint used by the depth pass.
func (m *ShadowMap) Viewpoint() renderer.Viewpoint { return m.viewpoint }

// ShadowMatrix maps world positions into shadow map space.
func (m *ShadowMap) ShadowMatrix() mgl32.Mat4 { return m.matrix }

// FrustumNear returns the near plane of the light frustum.
func (m *ShadowMap) FrustumNear() float32 { return m.config.Near }

// FrustumFar returns the far plane of the light frustum.
func (m *ShadowMap) FrustumFar() float32 { return m.config.Far }

// Pass returns the depth pass of the shadow map.
func (m *ShadowMap) Pass() *renderer.RenderPass { return m.pass }

// Light returns the light the map follows.
func (m *ShadowMap) Light() *scene.LightNode { return m.light }

// lightUp picks an up vector that is not parallel to dir.
func lightUp(dir mgl32.Vec3) mgl32.Vec3 {
	if mgl32.Abs(dir.Y()) > 0.99 {
		return mgl32.Vec3{0, 0, 1}
	}
	return mgl32.Vec3{0, 1, 0}
}

func (m *ShadowMap) projection() mgl32.Mat4 {
	c := m.config
	if m.light.Type() == scene.LightSpot {
		fov := min(2*m.light.OuterAngle(), maxSpotShadowFOV)
		return mgl32.Perspective(fov, 1, c.Near, c.Far)
	}
	s := c.FrustumSize / 2
	return mgl32.Ortho(-s, s, -s, s, c.Near, c.Far)
}

// Update moves the viewpoint to the light and recomputes the shadow matrix.
func (m *ShadowMap) Update() {
	position := m.light.Position()
	dir := m.light.GlobalDirection()
	view := mgl32.LookAtV(position, position.Add(dir), lightUp(dir))
	projection := m.projection()

	m.viewpoint.SetPosition(position)
	m.viewpoint.SetViewMatrix(view)
	m.viewpoint.SetProjectionMatrix(projection)
	m.matrix = projection.Mul4(view)
}

// ShadowFactory creates one shadow map per light and keeps them following
// their lights.
type ShadowFactory struct {
	renderer *renderer.Renderer
	maps     map[*scene.LightNode]*ShadowMap
	order    []*scene.LightNode
}

func newShadowFactory(r *renderer.Renderer) *ShadowFactory {
	return &ShadowFactory{renderer: r, maps: make(map[*scene.LightNode]*ShadowMap)}
}

// Create returns the shadow map of light, creating it on first use with
// caster as the rendered object. The map is assigned to the light.
func (f *ShadowFactory) Create(light *scene.LightNode, caster renderer.RenderObject, cfg ShadowConfig) (*ShadowMap, error) {
	if light == nil || caster == nil {
		return nil, fmt.Errorf("%w: light and caster are required", ErrInvalidShadowMap)
	}
	if m, ok := f.maps[light]; ok {
		return m, nil
	}
	if t := light.Type(); t != scene.LightDirectional && t != scene.LightSpot {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedLight, t)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	device := f.renderer.Device()
	texture, err := device.Textures().Create(graphics.TextureData{
		Size:   graphics.Size{Width: cfg.MapSize, Height: cfg.MapSize},
		Format: graphics.TextureFormatFloat,
	}, graphics.TextureParameters{
		MinFilter: graphics.TextureFilterNearest,
		MagFilter: graphics.TextureFilterNearest,
		Wrap:      graphics.TextureWrapClampToEdge,
	})
	if err != nil {
		return nil, fmt.Errorf("creating shadow texture: %w", err)
	}
	fb, err := device.Framebuffers().Create(nil, texture)
	if err != nil {
		device.Textures().Remove(texture)
		return nil, fmt.Errorf("creating shadow framebuffer: %w", err)
	}

	m := &ShadowMap{
		light:       light,
		config:      cfg,
		viewpoint:   renderer.NewStaticViewpoint(),
		texture:     texture,
		framebuffer: fb,
	}
	m.pass = f.renderer.CreatePass(renderer.PassConfig{
		Viewpoint:    m.viewpoint,
		Object:       caster,
		Target:       fb,
		MaterialPass: renderer.MaterialPassDepth,
		ClearDepth:   true,
	}, ShadowPassPriority)
	m.Update()

	f.maps[light] = m
	f.order = append(f.order, light)
	light.SetShadowMap(m)
	log.Debug("shadow map created", zap.Stringer("light", light.Type()), zap.Int("size", cfg.MapSize))
	return m, nil
}

// Get returns the shadow map of light, or nil.
func (f *ShadowFactory) Get(light *scene.LightNode) *ShadowMap {
	return f.maps[light]
}

// Remove destroys the shadow map of light and detaches it.
func (f *ShadowFactory) Remove(light *scene.LightNode) {
	m, ok := f.maps[light]
	if !ok {
		return
	}
	delete(f.maps, light)
	for i, l := range f.order {
		if l == light {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	if light.ShadowMap() == scene.ShadowMap(m) {
		light.SetShadowMap(nil)
	}
	f.renderer.RemovePass(m.pass)
	device := f.renderer.Device()
	device.Framebuffers().Remove(m.framebuffer)
	device.Textures().Remove(m.texture)
}

// Update follows every light with its shadow map.
func (f *ShadowFactory) Update() {
	for _, light := range f.order {
		f.maps[light].Update()
	}
}

func (f *ShadowFactory) close() {
	for len(f.order) > 0 {
		f.Remove(f.order[len(f.order)-1])
	}
}
