package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gltut/internal/config"
	"github.com/Faultbox/gltut/internal/engine/graphics"
	"github.com/Faultbox/gltut/internal/engine/graphics/headless"
	"github.com/Faultbox/gltut/internal/engine/renderer"
	"github.com/Faultbox/gltut/internal/engine/scene"
	"github.com/Faultbox/gltut/internal/engine/window"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newHeadlessEngine(t *testing.T) (*Engine, *window.HeadlessWindow, *headless.Device) {
	t.Helper()
	cfg := config.Default()
	cfg.Window.Backend = config.BackendHeadless
	cfg.Window.Width = 320
	cfg.Window.Height = 240
	cfg.Demo.ShowFPS = false
	e, err := New(cfg)
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	t.Cleanup(func() { e.Close() })
	w, ok := e.Window().(*window.HeadlessWindow)
	if !ok {
		t.Fatalf("expected a headless window, got %T", e.Window())
	}
	dev, ok := e.Device().(*headless.Device)
	if !ok {
		t.Fatalf("expected a headless device, got %T", e.Device())
	}
	return e, w, dev
}

func TestFPSCounter(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	c := NewFPSCounter(clock.Now)

	tests := []struct {
		step time.Duration
		want int
	}{
		{300 * time.Millisecond, 0},
		{300 * time.Millisecond, 0},
		{300 * time.Millisecond, 0},
		{100 * time.Millisecond, 4},
		{500 * time.Millisecond, 0},
		{1500 * time.Millisecond, 1},
	}
	for i, tt := range tests {
		clock.Advance(tt.step)
		if got := c.Tick(); got != tt.want {
			t.Errorf("tick %d: expected %d, got %d", i, tt.want, got)
		}
	}

	clock.Advance(900 * time.Millisecond)
	c.Reset()
	clock.Advance(200 * time.Millisecond)
	if got := c.Tick(); got != 0 {
		t.Errorf("expected reset to restart the interval, got %d", got)
	}
}

func TestNewInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Window.Backend = "vulkan"
	if _, err := New(cfg); err == nil {
		t.Error("expected error for an unknown backend")
	}
}

func TestEngineRunsFrames(t *testing.T) {
	e, w, dev := newHeadlessEngine(t)

	clear := e.ClearColor()
	e.Renderer().CreatePass(renderer.PassConfig{
		Viewpoint:  e.Scene().ActiveViewpoint(),
		Object:     e.Scene().RenderGroup(),
		ClearColor: &clear,
		ClearDepth: true,
	}, 0)

	if err := e.Run(3); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if e.Frames() != 3 || w.Swaps() != 3 {
		t.Errorf("expected 3 frames and swaps, got %d and %d", e.Frames(), w.Swaps())
	}
	if n := len(dev.Filter("clear")); n != 3 {
		t.Errorf("expected one clear per frame, got %d", n)
	}

	e.Stop()
	if e.Update() {
		t.Error("expected update to fail after stop")
	}
	if err := e.Run(2); err != nil || e.Frames() != 5 {
		t.Errorf("expected run to restart a stopped engine, got %d frames %v", e.Frames(), err)
	}

	w.RequestClose()
	if err := e.Run(0); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if e.Frames() != 5 {
		t.Errorf("expected a closed window to stop the loop, got %d frames", e.Frames())
	}
	if e.Update() {
		t.Error("expected update to fail after the window closed")
	}
}

func TestEngineShowsFPSInTitle(t *testing.T) {
	e, w, _ := newHeadlessEngine(t)
	clock := &fakeClock{now: time.Unix(0, 0)}
	e.fps = NewFPSCounter(clock.Now)

	for i := 0; i < 4; i++ {
		clock.Advance(250 * time.Millisecond)
		if !e.Update() {
			t.Fatal("expected update to succeed")
		}
	}
	if want := "gltut [FPS: 4]"; w.Title() != want {
		t.Errorf("expected title %q, got %q", want, w.Title())
	}
}

func TestEngineShadowMatrixFollowsLight(t *testing.T) {
	e, _, _ := newHeadlessEngine(t)

	model, err := e.PhongShader()
	if err != nil {
		t.Fatalf("failed to create phong shader: %v", err)
	}
	light := e.Scene().CreateLight(scene.LightDirectional, mgl32.Translate3D(0, 10, 0), nil)
	m, err := e.Factory().Shadow.Create(light, e.Scene().RenderGroup(), e.ShadowConfig())
	if err != nil {
		t.Fatalf("failed to create shadow map: %v", err)
	}
	shader := model.ShaderBinding().Shader().(*headless.Shader)

	for _, x := range []float32{0, 5, -3} {
		light.SetTransform(mgl32.Translate3D(x, 10, 0))
		if !e.Update() {
			t.Fatal("expected update to succeed")
		}
		got, ok := shader.Value("directionalLights[0].shadowMatrix")
		if !ok {
			t.Fatal("expected the shadow matrix to be set")
		}
		if got != m.ShadowMatrix() {
			t.Errorf("light at x=%g: expected the current shadow matrix %v, got %v", x, m.ShadowMatrix(), got)
		}
	}
}

func TestEngineClose(t *testing.T) {
	e, w, dev := newHeadlessEngine(t)

	shader, err := e.PhongShader()
	if err != nil {
		t.Fatalf("failed to create phong shader: %v", err)
	}
	if _, err := e.Factory().Material.Phong(shader, true); err != nil {
		t.Fatalf("failed to create material: %v", err)
	}
	light := e.Scene().CreateLight(scene.LightDirectional, mgl32.Translate3D(0, 10, 0), nil)
	if _, err := e.Factory().Shadow.Create(light, e.Scene().RenderGroup(), e.ShadowConfig()); err != nil {
		t.Fatalf("failed to create shadow map: %v", err)
	}
	if _, err := e.Factory().Texture.SolidColor(graphics.RGB(1, 1, 1)); err != nil {
		t.Fatalf("failed to create texture: %v", err)
	}

	if err := e.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if err := e.Close(); err != nil {
		t.Errorf("expected a second close to be a no-op, got %v", err)
	}
	if n := dev.Shaders().Size() + dev.Textures().Size() + dev.Framebuffers().Size(); n != 0 {
		t.Errorf("expected every resource released, got %d", n)
	}
	if len(dev.Filter("close")) != 1 {
		t.Error("expected the device to be closed once")
	}
	if w.PollEvents() {
		t.Error("expected the window to be closed")
	}
	if err := e.Run(1); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func TestShadowConfigFromRendererConfig(t *testing.T) {
	e, _, _ := newHeadlessEngine(t)
	got := e.ShadowConfig()
	rc := e.Config().Renderer
	if got.MapSize != rc.ShadowMapSize || got.FrustumSize != rc.ShadowFrustumSize || got.Near != rc.ShadowNear || got.Far != rc.ShadowFar {
		t.Errorf("expected shadow settings from %+v, got %+v", rc, got)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("expected default shadow settings to be valid, got %v", err)
	}
}
