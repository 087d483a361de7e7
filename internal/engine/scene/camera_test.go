package scene

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gltut/internal/engine/graphics"
	"github.com/Faultbox/gltut/internal/engine/input"
)

// testWindow is a Window with a settable size.
type testWindow struct {
	size       graphics.Size
	dispatcher input.Dispatcher
}

func newTestWindow(w, h int) *testWindow {
	return &testWindow{size: graphics.Size{Width: w, Height: h}}
}

func (w *testWindow) Size() graphics.Size                { return w.size }
func (w *testWindow) AddEventHandler(h input.Handler)    { w.dispatcher.Add(h) }
func (w *testWindow) RemoveEventHandler(h input.Handler) { w.dispatcher.Remove(h) }

func (w *testWindow) resize(width, height int) {
	w.size = graphics.Size{Width: width, Height: height}
	w.dispatcher.Dispatch(input.Event{
		Type:   input.EventWindowResize,
		Resize: input.ResizeEvent{Width: width, Height: height},
	})
}

func (w *testWindow) mouse(e input.MouseEvent) {
	w.dispatcher.Dispatch(input.Event{Type: input.EventMouse, Mouse: e})
}

func (w *testWindow) key(k input.KeyCode, pressed bool) {
	w.dispatcher.Dispatch(input.Event{Type: input.EventKeyboard, Keyboard: input.KeyboardEvent{Key: k, Pressed: pressed}})
}

func newTestCamera(t *testing.T, w Window) *Camera {
	t.Helper()
	c, err := NewCamera(w, mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, 45, 0.1, 100, nil)
	if err != nil {
		t.Fatalf("failed to create camera: %v", err)
	}
	return c
}

func TestNewCameraValidation(t *testing.T) {
	ratio := float32(0)
	tests := []struct {
		name     string
		position mgl32.Vec3
		up       mgl32.Vec3
		fov      float32
		near     float32
		far      float32
		aspect   *float32
	}{
		{"position equals target", mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, 45, 0.1, 100, nil},
		{"zero up", mgl32.Vec3{0, 0, 1}, mgl32.Vec3{}, 45, 0.1, 100, nil},
		{"up along view", mgl32.Vec3{0, 3, 0}, mgl32.Vec3{0, 1, 0}, 45, 0.1, 100, nil},
		{"zero fov", mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}, 0, 0.1, 100, nil},
		{"zero near", mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}, 45, 0, 100, nil},
		{"far before near", mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}, 45, 1, 0.5, nil},
		{"zero aspect", mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}, 45, 0.1, 100, &ratio},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCamera(newTestWindow(8, 8), tt.position, mgl32.Vec3{}, tt.up, tt.fov, tt.near, tt.far, tt.aspect)
			if !errors.Is(err, ErrInvalidCamera) {
				t.Errorf("expected ErrInvalidCamera, got %v", err)
			}
		})
	}
}

func TestCameraViewRejectsDegenerateUpdates(t *testing.T) {
	v, err := NewCameraView(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	if err != nil {
		t.Fatalf("failed to create view: %v", err)
	}
	want := v.Matrix()

	tests := []struct {
		name string
		set  func() bool
	}{
		{"position on target", func() bool { return v.SetPosition(mgl32.Vec3{}) }},
		{"target on position", func() bool { return v.SetTarget(mgl32.Vec3{0, 0, 5}) }},
		{"zero up", func() bool { return v.SetUp(mgl32.Vec3{}) }},
		{"up along view", func() bool { return v.SetUp(mgl32.Vec3{0, 0, -1}) }},
		{"collapsed pair", func() bool { return v.Set(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{1, 1, 1}) }},
		{"looking along up", func() bool { return v.Set(mgl32.Vec3{0, 5, 0}, mgl32.Vec3{}) }},
	}
	for _, tt := range tests {
		if tt.set() {
			t.Errorf("%s: expected the update to be rejected", tt.name)
		}
		if v.Matrix() != want {
			t.Errorf("%s: expected the view to stay unchanged", tt.name)
		}
	}

	if !v.SetPosition(mgl32.Vec3{0, 2, 5}) {
		t.Fatal("expected a valid position to be accepted")
	}
	if v.Position() != (mgl32.Vec3{0, 2, 5}) {
		t.Errorf("expected position (0,2,5), got %v", v.Position())
	}
}

func TestCameraProjectionFollowsWindow(t *testing.T) {
	w := newTestWindow(800, 400)
	c := newTestCamera(t, w)

	want := mgl32.Perspective(mgl32.DegToRad(45), 2, 0.1, 100)
	if !c.Projection().Matrix().ApproxEqual(want) {
		t.Errorf("expected aspect 2 projection")
	}

	w.resize(400, 400)
	want = mgl32.Perspective(mgl32.DegToRad(45), 1, 0.1, 100)
	if !c.Projection().Matrix().ApproxEqual(want) {
		t.Errorf("expected aspect 1 projection after resize")
	}

	c.Close()
	if w.dispatcher.Len() != 0 {
		t.Errorf("expected no handlers after close, got %d", w.dispatcher.Len())
	}
}

func TestCameraProjectionFixedAspect(t *testing.T) {
	w := newTestWindow(800, 400)
	c := newTestCamera(t, w)
	ratio := float32(1.5)
	c.Projection().SetAspectRatio(&ratio)

	if w.dispatcher.Len() != 0 {
		t.Error("expected fixed aspect to stop following the window")
	}
	want := mgl32.Perspective(mgl32.DegToRad(45), 1.5, 0.1, 100)
	if !c.Projection().MatrixFor(3).ApproxEqual(want) {
		t.Error("expected fixed aspect ratio to win over the target")
	}
	if got := c.Projection().AspectRatio(); got == nil || *got != 1.5 {
		t.Errorf("expected 1.5, got %v", got)
	}

	c.Projection().SetAspectRatio(nil)
	if w.dispatcher.Len() != 1 {
		t.Error("expected nil aspect to follow the window again")
	}
}

func TestCameraViewpoint(t *testing.T) {
	vp := NewCameraViewpoint(nil)
	if vp.Position() != (mgl32.Vec3{}) || vp.ViewMatrix() != mgl32.Ident4() || vp.ProjectionMatrix(2) != mgl32.Ident4() {
		t.Error("expected origin and identity matrices without a camera")
	}

	c := newTestCamera(t, newTestWindow(800, 600))
	vp.SetCamera(c)
	if vp.Position() != (mgl32.Vec3{0, 0, 10}) {
		t.Errorf("expected camera position, got %v", vp.Position())
	}
	if vp.ViewMatrix() != c.View().Matrix() {
		t.Error("expected camera view matrix")
	}
	if !vp.ProjectionMatrix(2).ApproxEqual(mgl32.Perspective(mgl32.DegToRad(45), 2, 0.1, 100)) {
		t.Error("expected projection for the requested aspect ratio")
	}
}

func TestScreenToCameraRay(t *testing.T) {
	c := newTestCamera(t, newTestWindow(800, 600))

	center := ScreenToCameraRay(400, 300, c)
	if !vecNear(center, mgl32.Vec3{0, 0, -1}) {
		t.Errorf("expected forward ray, got %v", center)
	}
	left := ScreenToCameraRay(0, 300, c)
	if left.X() >= 0 {
		t.Errorf("expected ray to the left, got %v", left)
	}
	top := ScreenToCameraRay(400, 0, c)
	if top.Y() <= 0 {
		t.Errorf("expected ray upwards, got %v", top)
	}
}

func TestRayIntersectPlaneY(t *testing.T) {
	r := Ray{Origin: mgl32.Vec3{0, 10, 0}, Direction: mgl32.Vec3{0, -1, 0}}
	p, ok := r.IntersectPlaneY(2)
	if !ok || !vecNear(p, mgl32.Vec3{0, 2, 0}) {
		t.Errorf("expected hit at (0,2,0), got %v %t", p, ok)
	}
	if _, ok := r.IntersectPlaneY(20); ok {
		t.Error("expected no hit behind the origin")
	}
	flat := Ray{Direction: mgl32.Vec3{1, 0, 0}}
	if _, ok := flat.IntersectPlaneY(0); ok {
		t.Error("expected no hit for a parallel ray")
	}
}
