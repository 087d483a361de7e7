// Package engine ties the window, graphics device, renderer, scene and
// factory together and drives the frame loop.
package engine

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/gltut/internal/config"
	"github.com/Faultbox/gltut/internal/engine/factory"
	"github.com/Faultbox/gltut/internal/engine/graphics"
	"github.com/Faultbox/gltut/internal/engine/graphics/headless"
	"github.com/Faultbox/gltut/internal/engine/graphics/opengl"
	"github.com/Faultbox/gltut/internal/engine/renderer"
	"github.com/Faultbox/gltut/internal/engine/scene"
	"github.com/Faultbox/gltut/internal/engine/window"
	"github.com/Faultbox/gltut/internal/logger"
)

const log logger.Component = "engine"

// ErrClosed is returned when running a closed engine.
var ErrClosed = errors.New("engine is closed")

// Engine owns every engine layer. Layers are created in dependency order
// and released in reverse.
type Engine struct {
	config   *config.Config
	window   window.Window
	device   graphics.Device
	renderer *renderer.Renderer
	scene    *scene.Scene
	factory  *factory.Factory

	fps     *FPSCounter
	frames  int
	stopped bool
	closed  bool
}

// New creates the window, the graphics device, the renderer, the scene and
// the factory. Windows without a GL context get a headless device. Anything
// created before a failure is released.
func New(cfg *config.Config) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	w, err := window.New(window.Config{
		Backend:    cfg.Window.Backend,
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	device, err := newDevice(w)
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("creating graphics device: %w", err), w.Close())
	}

	r := renderer.New(device)
	s := scene.New(w, r)
	e := &Engine{
		config:   cfg,
		window:   w,
		device:   device,
		renderer: r,
		scene:    s,
		factory:  factory.New(r, s),
	}
	if cfg.Demo.ShowFPS {
		e.fps = NewFPSCounter(nil)
	}

	log.Info("engine created",
		zap.String("backend", cfg.Window.Backend),
		zap.Bool("gl_context", w.HasContext()),
	)
	return e, nil
}

func newDevice(w window.Window) (graphics.Device, error) {
	if !w.HasContext() {
		return headless.New(w.Size), nil
	}
	return opengl.New(w)
}

// Config returns the validated configuration.
func (e *Engine) Config() *config.Config { return e.config }

// Window returns the window the engine renders into.
func (e *Engine) Window() window.Window { return e.window }

// Device returns the graphics device.
func (e *Engine) Device() graphics.Device { return e.device }

// Renderer returns the renderer executing the passes.
func (e *Engine) Renderer() *renderer.Renderer { return e.renderer }

// Scene returns the scene.
func (e *Engine) Scene() *scene.Scene { return e.scene }

// Factory returns the object factories.
func (e *Engine) Factory() *factory.Factory { return e.factory }

// Frames returns the number of frames rendered so far.
func (e *Engine) Frames() int { return e.frames }

// ShadowConfig returns the shadow map settings of the renderer config.
func (e *Engine) ShadowConfig() factory.ShadowConfig {
	rc := e.config.Renderer
	return factory.ShadowConfig{
		FrustumSize: rc.ShadowFrustumSize,
		Near:        rc.ShadowNear,
		Far:         rc.ShadowFar,
		MapSize:     rc.ShadowMapSize,
	}
}

// PhongShader returns the Phong shader sized for the configured light
// counts.
func (e *Engine) PhongShader() (*factory.PhongShaderModel, error) {
	rc := e.config.Renderer
	return e.factory.Material.PhongShader(rc.MaxDirectionalLights, rc.MaxPointLights, rc.MaxSpotLights)
}

// ClearColor returns the configured clear color.
func (e *Engine) ClearColor() graphics.Color {
	c := e.config.Renderer.ClearColor
	return graphics.Color{R: c[0], G: c[1], B: c[2], A: c[3]}
}

// Stop makes the next Update return false without closing anything.
func (e *Engine) Stop() { e.stopped = true }

// Update runs one frame: events, shadow maps, scene bindings, passes and
// the buffer swap. It returns false once the window has been closed.
func (e *Engine) Update() bool {
	if e.closed || e.stopped || !e.window.PollEvents() {
		return false
	}
	// Shadow matrices must be current before the bindings copy them.
	e.factory.Update()
	e.scene.Update()
	e.renderer.Execute()
	e.window.SwapBuffers()
	e.frames++

	if e.fps != nil {
		if fps := e.fps.Tick(); fps > 0 {
			e.window.SetTitle(fmt.Sprintf("%s [FPS: %d]", e.config.Window.Title, fps))
			log.Debug("frame rate", zap.Int("fps", fps))
		}
	}
	return true
}

// Run updates until the window closes or maxFrames frames have been
// rendered. A maxFrames of zero or less runs until the window closes.
func (e *Engine) Run(maxFrames int) error {
	if e.closed {
		return ErrClosed
	}
	e.stopped = false
	log.Info("starting frame loop", zap.Int("max_frames", maxFrames))
	start := e.frames
	for maxFrames <= 0 || e.frames-start < maxFrames {
		if !e.Update() {
			break
		}
	}
	log.Info("frame loop stopped", zap.Int("frames", e.frames-start))
	return nil
}

// Close releases the factory resources, the scene, the device and the
// window. Closing twice is a no-op.
func (e *Engine) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	log.Info("closing engine")

	e.factory.Close()
	e.scene.Close()
	return multierr.Combine(
		wrap("closing graphics device", e.device.Close()),
		wrap("closing window", e.window.Close()),
	)
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}
