package main

import (
	"testing"

	"github.com/Faultbox/gltut/internal/config"
	"github.com/Faultbox/gltut/internal/engine/engine"
	"github.com/Faultbox/gltut/internal/engine/graphics/headless"
	"github.com/Faultbox/gltut/internal/engine/input"
	"github.com/Faultbox/gltut/internal/engine/window"
)

func newHeadlessDemo(t *testing.T, controller string) (*demo, *window.HeadlessWindow, *headless.Device) {
	t.Helper()
	cfg := config.Default()
	cfg.Window.Backend = config.BackendHeadless
	cfg.Window.Width = 640
	cfg.Window.Height = 480
	cfg.Renderer.ShadowMapSize = 64
	cfg.Camera.Controller = controller
	e, err := engine.New(cfg)
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	d, err := newDemo(e)
	if err != nil {
		e.Close()
		t.Fatalf("failed to build demo: %v", err)
	}
	t.Cleanup(func() {
		d.Close()
		if err := e.Close(); err != nil {
			t.Errorf("close failed: %v", err)
		}
	})
	return d, e.Window().(*window.HeadlessWindow), e.Device().(*headless.Device)
}

func key(k input.KeyCode) input.Event {
	return input.Event{Type: input.EventKeyboard, Keyboard: input.KeyboardEvent{Key: k, Pressed: true}}
}

func TestDemoRendersFrames(t *testing.T) {
	for _, controller := range []string{config.ControllerMouse, config.ControllerFPS, config.ControllerNone} {
		t.Run(controller, func(t *testing.T) {
			d, w, dev := newHeadlessDemo(t, controller)
			if err := d.engine.Run(2); err != nil {
				t.Fatalf("run failed: %v", err)
			}
			if w.Swaps() != 2 {
				t.Errorf("expected 2 swaps, got %d", w.Swaps())
			}
			// Two shadow maps, main, skybox, transparent and the overlay
			passes := d.engine.Renderer().Passes()
			if len(passes) != 6 {
				t.Errorf("expected 6 passes, got %d", len(passes))
			}
			if len(dev.Filter("clear")) == 0 {
				t.Error("expected the frames to clear")
			}
			if (d.controller == nil) != (controller == config.ControllerNone) {
				t.Errorf("expected a controller for %q, got %v", controller, d.controller)
			}
		})
	}
}

func TestDemoKeys(t *testing.T) {
	d, w, _ := newHeadlessDemo(t, config.ControllerNone)
	if d.overlay == nil || d.overlay.Active() {
		t.Fatal("expected an inactive shadow map overlay")
	}

	w.Post(key(input.KeyF1))
	if !d.engine.Update() {
		t.Fatal("expected update to succeed")
	}
	if !d.overlay.Active() {
		t.Error("expected F1 to show the overlay")
	}

	w.Post(key(input.KeyEscape))
	if err := d.engine.Run(0); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if d.engine.Frames() != 2 {
		t.Errorf("expected Escape to stop after the current frame, got %d frames", d.engine.Frames())
	}
}

func TestSkyFaces(t *testing.T) {
	faces := skyFaces(8)
	for i, f := range faces {
		if f == nil || f.Bounds().Dx() != 8 || f.Bounds().Dy() != 8 {
			t.Fatalf("face %d: expected 8x8, got %v", i, f)
		}
	}
	top, bottom := faces[0].At(0, 0), faces[0].At(0, 7)
	if top == bottom {
		t.Error("expected a gradient on the side faces")
	}
	if r, g, b, _ := faces[3].At(4, 4).RGBA(); r>>8 != 60 || g>>8 != 55 || b>>8 != 50 {
		t.Errorf("expected the ground color below, got %d,%d,%d", r>>8, g>>8, b>>8)
	}
}
