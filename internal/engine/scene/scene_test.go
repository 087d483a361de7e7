package scene

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gltut/internal/engine/graphics"
	"github.com/Faultbox/gltut/internal/engine/renderer"
)

// fakeClock advances only when told to.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

// recordingController records its update arguments.
type recordingController struct {
	calls [][2]uint64
	fn    func()
}

func (c *recordingController) UpdateCamera(timeMs uint64, deltaMs uint32) {
	c.calls = append(c.calls, [2]uint64{timeMs, uint64(deltaMs)})
	if c.fn != nil {
		c.fn()
	}
}

func newTestGeometry(t *testing.T, s *Scene) graphics.Geometry {
	t.Helper()
	g, err := s.Renderer().Device().Geometries().Create(graphics.VertexFormat{3},
		[]float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, []uint32{0, 1, 2})
	if err != nil {
		t.Fatalf("failed to create geometry: %v", err)
	}
	return g
}

func contains(group *renderer.RenderGroup, obj renderer.RenderObject) bool {
	for _, o := range group.Objects() {
		if o == obj {
			return true
		}
	}
	return false
}

func TestSceneUpdateClock(t *testing.T) {
	s, _ := newTestScene(t)
	clock := &fakeClock{now: time.Unix(100, 0)}
	s.SetClock(clock.Now)

	c := &recordingController{}
	s.AddCameraController(c)
	s.AddCameraController(c)
	s.AddCameraController(nil)

	s.Update()
	if len(c.calls) != 0 {
		t.Fatalf("expected controllers to be skipped without elapsed time, got %d calls", len(c.calls))
	}

	clock.advance(16 * time.Millisecond)
	s.Update()
	clock.advance(34 * time.Millisecond)
	s.Update()

	want := [][2]uint64{{16, 16}, {50, 34}}
	if len(c.calls) != len(want) {
		t.Fatalf("expected %d calls, got %d", len(want), len(c.calls))
	}
	for i := range want {
		if c.calls[i] != want[i] {
			t.Errorf("call %d: expected %v, got %v", i, want[i], c.calls[i])
		}
	}

	s.RemoveCameraController(c)
	clock.advance(time.Second)
	s.Update()
	if len(c.calls) != len(want) {
		t.Error("expected removed controller not to be called")
	}
}

func TestSceneUpdateOrder(t *testing.T) {
	s, dev := newTestScene(t)
	clock := &fakeClock{now: time.Unix(0, 0)}
	s.SetClock(clock.Now)

	shader := newLightShader(t, dev)
	s.CreateShaderBinding(shader).Bind(PointLightPosition, "pointLights.position")
	light := s.CreateLight(LightPoint, mgl32.Ident4(), nil)

	// Bindings see what controllers did in the same update
	s.AddCameraController(&recordingController{fn: func() {
		light.SetTransform(mgl32.Translate3D(0, 4, 0))
	}})
	clock.advance(time.Millisecond)
	s.Update()
	expectValue(t, shader, "pointLights[0].position", mgl32.Vec3{0, 4, 0})
}

func TestSceneBindingsUpdateWithoutElapsedTime(t *testing.T) {
	s, dev := newTestScene(t)
	clock := &fakeClock{now: time.Unix(0, 0)}
	s.SetClock(clock.Now)
	shader := newLightShader(t, dev)
	b := s.CreateShaderBinding(shader)
	b.Bind(PointLightPosition, "pointLights.position")
	s.CreateLight(LightPoint, mgl32.Translate3D(3, 0, 0), nil)

	s.Update()
	expectValue(t, shader, "pointLights[0].position", mgl32.Vec3{3, 0, 0})

	s.RemoveShaderBinding(b)
	if len(s.ShaderBindings()) != 0 {
		t.Errorf("expected no bindings, got %d", len(s.ShaderBindings()))
	}
}

func TestSceneCameras(t *testing.T) {
	s, _ := newTestScene(t)
	w := s.Window().(*testWindow)

	first, err := s.CreateCamera(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, 60, 0.1, 100, nil)
	if err != nil {
		t.Fatalf("failed to create camera: %v", err)
	}
	second, err := s.CreateCamera(mgl32.Vec3{0, 5, 0}, mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}, 60, 0.1, 100, nil)
	if err != nil {
		t.Fatalf("failed to create camera: %v", err)
	}
	if _, err := s.CreateCamera(mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, 60, 0.1, 100, nil); err == nil {
		t.Error("expected error for a degenerate camera")
	}

	if s.ActiveCamera() != first {
		t.Error("expected the first camera to become active")
	}
	vp := s.ActiveViewpoint()
	if vp.Position() != (mgl32.Vec3{0, 0, 5}) {
		t.Errorf("expected viewpoint at the first camera, got %v", vp.Position())
	}

	s.SetActiveCamera(second)
	if vp.Position() != (mgl32.Vec3{0, 5, 0}) {
		t.Errorf("expected viewpoint to follow the active camera, got %v", vp.Position())
	}

	s.RemoveCamera(second)
	if s.ActiveCamera() != nil {
		t.Error("expected no active camera after removing it")
	}
	if vp.ViewMatrix() != mgl32.Ident4() {
		t.Error("expected identity view without an active camera")
	}
	if w.dispatcher.Len() != 1 {
		t.Errorf("expected one camera listening, got %d", w.dispatcher.Len())
	}

	s.Close()
	if w.dispatcher.Len() != 0 {
		t.Errorf("expected no listeners after close, got %d", w.dispatcher.Len())
	}
}

func TestSceneGeometry(t *testing.T) {
	s, _ := newTestScene(t)
	material := s.Renderer().CreateMaterial()
	parent := s.CreateGeometry(newTestGeometry(t, s), material, mgl32.Translate3D(0, 1, 0), nil)
	child := s.CreateGeometry(newTestGeometry(t, s), material, mgl32.Translate3D(1, 0, 0), parent)

	if !contains(s.RenderGroup(), parent.RenderGeometry()) || !contains(s.RenderGroup(), child.RenderGeometry()) {
		t.Fatal("expected new geometry in the opaque group")
	}
	if got := child.RenderGeometry().Transform().Col(3).Vec3(); got != (mgl32.Vec3{1, 1, 0}) {
		t.Errorf("expected child render transform at (1,1,0), got %v", got)
	}
	if child.Material() != material {
		t.Error("expected the creation material")
	}

	s.SetTransparent(child, true)
	if contains(s.RenderGroup(), child.RenderGeometry()) || !contains(s.TransparentGroup(), child.RenderGeometry()) {
		t.Error("expected child in the transparent group only")
	}
	s.SetTransparent(child, false)
	if !contains(s.RenderGroup(), child.RenderGeometry()) || contains(s.TransparentGroup(), child.RenderGeometry()) {
		t.Error("expected child back in the opaque group only")
	}

	s.RemoveGeometry(parent)
	if len(s.Geometries()) != 1 || s.Geometries()[0] != child {
		t.Fatalf("expected only the child to remain, got %d", len(s.Geometries()))
	}
	if child.Parent() != nil {
		t.Error("expected child to become a root")
	}
	if contains(s.RenderGroup(), parent.RenderGeometry()) {
		t.Error("expected removed geometry to leave its group")
	}
	for _, g := range s.Renderer().Geometries() {
		if g == parent.RenderGeometry() {
			t.Error("expected removed geometry to leave the renderer")
		}
	}
}

func TestSceneRemoveLight(t *testing.T) {
	s, _ := newTestScene(t)
	parent := NewNode(mgl32.Ident4(), nil)
	a := s.CreateLight(LightPoint, mgl32.Ident4(), parent)
	b := s.CreateLight(LightSpot, mgl32.Ident4(), nil)

	s.RemoveLight(a)
	if len(s.Lights()) != 1 || s.Lights()[0] != b {
		t.Fatalf("expected only the spot light to remain, got %d", len(s.Lights()))
	}
	if parent.ChildCount() != 0 {
		t.Error("expected removed light to leave its parent")
	}
}
