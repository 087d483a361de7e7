package scene

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/gltut/internal/engine/graphics"
	"github.com/Faultbox/gltut/internal/engine/renderer"
	"github.com/Faultbox/gltut/internal/logger"
)

const log logger.Component = "scene"

// Scene owns geometry nodes, lights, cameras and the bindings that feed
// them to shaders. Opaque geometry is collected in one render group and
// transparent geometry in another, meant for a depth sorted pass.
type Scene struct {
	window   Window
	renderer *renderer.Renderer

	group       *renderer.RenderGroup
	transparent *renderer.RenderGroup

	geometries      []*GeometryNode
	lights          []*LightNode
	cameras         []*Camera
	controllers     []CameraController
	shaderBindings  []*ShaderBinding
	textureBindings []*TextureSetBinding

	activeCamera *Camera
	viewpoint    CameraViewpoint

	clock      func() time.Time
	created    time.Time
	lastUpdate time.Time
}

// New creates an empty scene rendering through r.
func New(w Window, r *renderer.Renderer) *Scene {
	s := &Scene{
		window:      w,
		renderer:    r,
		group:       r.CreateGroup(),
		transparent: r.CreateGroup(),
	}
	s.SetClock(time.Now)
	return s
}

// SetClock replaces the time source and restarts the scene time.
func (s *Scene) SetClock(clock func() time.Time) {
	s.clock = clock
	s.created = clock()
	s.lastUpdate = s.created
}

// Window returns the window cameras follow.
func (s *Scene) Window() Window { return s.window }

// Renderer returns the renderer objects are drawn with.
func (s *Scene) Renderer() *renderer.Renderer { return s.renderer }

// RenderGroup returns the group of opaque objects.
func (s *Scene) RenderGroup() *renderer.RenderGroup { return s.group }

// TransparentGroup returns the depth sorted group of transparent objects.
func (s *Scene) TransparentGroup() *renderer.RenderGroup { return s.transparent }

// CreateShaderBinding creates a light binding for shader, updated on every
// scene update.
func (s *Scene) CreateShaderBinding(shader graphics.Shader) *ShaderBinding {
	b := NewShaderBinding(shader)
	s.shaderBindings = append(s.shaderBindings, b)
	return b
}

// RemoveShaderBinding drops b.
func (s *Scene) RemoveShaderBinding(b *ShaderBinding) {
	s.shaderBindings = removeItem(s.shaderBindings, b)
}

// ShaderBindings returns the registered light bindings.
func (s *Scene) ShaderBindings() []*ShaderBinding {
	return s.shaderBindings
}

// CreateTextureSetBinding creates a shadow map binding for set.
func (s *Scene) CreateTextureSetBinding(set *renderer.TextureSet) *TextureSetBinding {
	b := NewTextureSetBinding(set)
	s.textureBindings = append(s.textureBindings, b)
	return b
}

// RemoveTextureSetBinding drops b.
func (s *Scene) RemoveTextureSetBinding(b *TextureSetBinding) {
	s.textureBindings = removeItem(s.textureBindings, b)
}

// CreateGeometry adds a geometry node drawn with material. The node joins
// the opaque render group.
func (s *Scene) CreateGeometry(geometry graphics.Geometry, material *renderer.Material, transform mgl32.Mat4, parent SceneNode) *GeometryNode {
	rg := s.renderer.CreateGeometry(geometry, material)
	node := newGeometryNode(rg, transform, parent)
	s.group.Add(rg)
	s.geometries = append(s.geometries, node)
	return node
}

// SetTransparent moves g between the opaque and the transparent group.
func (s *Scene) SetTransparent(g *GeometryNode, transparent bool) {
	from, to := s.transparent, s.group
	if transparent {
		from, to = s.group, s.transparent
	}
	from.Remove(g.geometry)
	to.Add(g.geometry)
}

// RemoveGeometry detaches g from the hierarchy and the renderer. Its
// children stay in the scene as roots.
func (s *Scene) RemoveGeometry(g *GeometryNode) {
	for i, existing := range s.geometries {
		if existing != g {
			continue
		}
		s.geometries = append(s.geometries[:i], s.geometries[i+1:]...)
		g.SetParent(nil)
		for _, c := range g.Children() {
			g.RemoveChild(c)
		}
		s.group.Remove(g.geometry)
		s.transparent.Remove(g.geometry)
		s.renderer.RemoveGeometry(g.geometry)
		return
	}
}

// Geometries returns the geometry nodes.
func (s *Scene) Geometries() []*GeometryNode {
	return s.geometries
}

// CreateLight adds a light.
func (s *Scene) CreateLight(t LightType, transform mgl32.Mat4, parent SceneNode) *LightNode {
	l := NewLightNode(t, transform, parent)
	s.lights = append(s.lights, l)
	log.Debug("light created", zap.Stringer("type", t))
	return l
}

// RemoveLight detaches l from the hierarchy and the scene.
func (s *Scene) RemoveLight(l *LightNode) {
	for i, existing := range s.lights {
		if existing == l {
			s.lights = append(s.lights[:i], s.lights[i+1:]...)
			l.SetParent(nil)
			return
		}
	}
}

// Lights returns the lights in creation order.
func (s *Scene) Lights() []*LightNode {
	return s.lights
}

// CreateCamera creates a camera following the scene window. The first
// camera becomes active.
func (s *Scene) CreateCamera(position, target, up mgl32.Vec3, fovDegrees, near, far float32, aspectRatio *float32) (*Camera, error) {
	c, err := NewCamera(s.window, position, target, up, fovDegrees, near, far, aspectRatio)
	if err != nil {
		log.Error("cannot create camera", zap.Error(err))
		return nil, err
	}
	s.cameras = append(s.cameras, c)
	if s.activeCamera == nil {
		s.SetActiveCamera(c)
	}
	return c, nil
}

// RemoveCamera closes c. Removing the active camera leaves none active.
func (s *Scene) RemoveCamera(c *Camera) {
	for i, existing := range s.cameras {
		if existing == c {
			s.cameras = append(s.cameras[:i], s.cameras[i+1:]...)
			c.Close()
			if s.activeCamera == c {
				s.SetActiveCamera(nil)
			}
			return
		}
	}
}

// SetActiveCamera selects the camera seen through ActiveViewpoint.
func (s *Scene) SetActiveCamera(c *Camera) {
	s.activeCamera = c
	s.viewpoint.SetCamera(c)
}

// ActiveCamera returns the active camera, or nil.
func (s *Scene) ActiveCamera() *Camera {
	return s.activeCamera
}

// ActiveViewpoint returns a viewpoint that always follows the active camera.
func (s *Scene) ActiveViewpoint() *CameraViewpoint {
	return &s.viewpoint
}

// AddCameraController registers c for updates. Nil and duplicates are ignored.
func (s *Scene) AddCameraController(c CameraController) {
	if c == nil {
		return
	}
	for _, existing := range s.controllers {
		if existing == c {
			return
		}
	}
	s.controllers = append(s.controllers, c)
}

// RemoveCameraController unregisters c.
func (s *Scene) RemoveCameraController(c CameraController) {
	s.controllers = removeItem(s.controllers, c)
}

// Update runs camera controllers, then light shader bindings, then shadow
// map texture bindings. Controllers are skipped when less than a
// millisecond passed since the previous update.
func (s *Scene) Update() {
	now := s.clock()
	timeMs := uint64(now.Sub(s.created).Milliseconds())
	deltaMs := uint32(now.Sub(s.lastUpdate).Milliseconds())

	if deltaMs > 0 {
		for _, c := range s.controllers {
			c.UpdateCamera(timeMs, deltaMs)
		}
		s.lastUpdate = now
	}
	for _, b := range s.shaderBindings {
		b.Update(s)
	}
	for _, b := range s.textureBindings {
		b.Update(s)
	}
}

// Close detaches every camera from the window.
func (s *Scene) Close() {
	for _, c := range s.cameras {
		c.Close()
	}
	s.cameras = nil
	s.SetActiveCamera(nil)
}

func removeItem[T comparable](items []T, item T) []T {
	for i, existing := range items {
		if existing == item {
			return append(items[:i], items[i+1:]...)
		}
	}
	return items
}
