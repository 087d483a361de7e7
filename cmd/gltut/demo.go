package main

import (
	"fmt"
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/gltut/internal/config"
	"github.com/Faultbox/gltut/internal/engine/engine"
	"github.com/Faultbox/gltut/internal/engine/factory"
	"github.com/Faultbox/gltut/internal/engine/graphics"
	"github.com/Faultbox/gltut/internal/engine/input"
	"github.com/Faultbox/gltut/internal/engine/renderer"
	"github.com/Faultbox/gltut/internal/engine/scene"
	"github.com/Faultbox/gltut/internal/logger"
)

const log logger.Component = "demo"

// Pass priorities after the shadow passes.
const (
	mainPassPriority        = 0
	skyboxPassPriority      = 1
	transparentPassPriority = 2
	overlayPassPriority     = 10
)

type closer interface {
	Close()
}

// demo builds the scene and reacts to the Escape and F1 keys.
type demo struct {
	engine     *engine.Engine
	shader     *factory.PhongShaderModel
	controller scene.CameraController
	overlay    *renderer.RenderPass
}

func newDemo(e *engine.Engine) (*demo, error) {
	d := &demo{engine: e}
	if err := d.build(); err != nil {
		d.Close()
		return nil, err
	}
	e.Window().AddEventHandler(d)
	return d, nil
}

func (d *demo) build() error {
	e := d.engine
	s := e.Scene()
	cfg := e.Config()

	camera, err := s.CreateCamera(mgl32.Vec3{0, 6, 14}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0},
		cfg.Camera.FOV, cfg.Camera.Near, cfg.Camera.Far, nil)
	if err != nil {
		return fmt.Errorf("creating camera: %w", err)
	}
	if err := d.createController(camera, cfg.Camera); err != nil {
		return err
	}

	d.shader, err = e.PhongShader()
	if err != nil {
		return fmt.Errorf("creating phong shader: %w", err)
	}
	if err := d.createObjects(); err != nil {
		return err
	}
	shadowMap, err := d.createLights()
	if err != nil {
		return err
	}
	return d.createPasses(shadowMap)
}

func (d *demo) createController(camera *scene.Camera, cfg config.CameraConfig) error {
	var (
		controller scene.CameraController
		err        error
	)
	switch cfg.Controller {
	case config.ControllerMouse:
		controller, err = scene.NewMouseCameraController(camera, cfg.RotationSpeed, cfg.ZoomSpeed, cfg.TranslationSpeed, cfg.MinDistance, cfg.MaxDistance)
	case config.ControllerFPS:
		controller, err = scene.NewFPSCameraController(camera, cfg.TranslationSpeed/10)
	default:
		return nil
	}
	if err != nil {
		return fmt.Errorf("creating %s camera controller: %w", cfg.Controller, err)
	}
	d.controller = controller
	d.engine.Scene().AddCameraController(controller)
	return nil
}

func (d *demo) phong(diffuse graphics.Color, castShadows bool) (*factory.PhongMaterialModel, error) {
	f := d.engine.Factory()
	m, err := f.Material.Phong(d.shader, castShadows)
	if err != nil {
		return nil, err
	}
	tex, err := f.Texture.SolidColor(diffuse)
	if err != nil {
		return nil, err
	}
	specular, err := f.Texture.SolidColor(graphics.RGB(0.6, 0.6, 0.6))
	if err != nil {
		return nil, err
	}
	m.SetDiffuse(tex)
	m.SetSpecular(specular)
	return m, nil
}

func (d *demo) createObjects() error {
	f := d.engine.Factory()
	s := d.engine.Scene()

	plane, err := f.Geometry.Plane(20, 20, 4)
	if err != nil {
		return fmt.Errorf("creating floor: %w", err)
	}
	floor, err := f.Material.Phong(d.shader, false)
	if err != nil {
		return fmt.Errorf("creating floor material: %w", err)
	}
	checker, err := f.Texture.Checkerboard(256, 8, graphics.RGB(0.8, 0.8, 0.8), graphics.RGB(0.3, 0.3, 0.35), graphics.DefaultTextureParameters())
	if err != nil {
		return fmt.Errorf("creating floor texture: %w", err)
	}
	floor.SetDiffuse(checker)
	floor.SetShininess(8)
	s.CreateGeometry(plane, floor.Material(), mgl32.Ident4(), nil)

	box, err := f.Geometry.Box(1, 1, 1)
	if err != nil {
		return fmt.Errorf("creating box: %w", err)
	}
	sphere, err := f.Geometry.Sphere(0.75, 4)
	if err != nil {
		return fmt.Errorf("creating sphere: %w", err)
	}

	solids := []struct {
		geometry graphics.Geometry
		color    graphics.Color
		position mgl32.Vec3
		angle    float32
	}{
		{box, graphics.RGB(0.8, 0.2, 0.2), mgl32.Vec3{-2, 0.5, 0}, 0.3},
		{box, graphics.RGB(0.2, 0.7, 0.3), mgl32.Vec3{2, 0.5, -1}, -0.6},
		{box, graphics.RGB(0.9, 0.7, 0.2), mgl32.Vec3{0, 0.5, -3}, 0.8},
		{sphere, graphics.RGB(0.2, 0.4, 0.9), mgl32.Vec3{0, 0.75, 1}, 0},
		{sphere, graphics.RGB(0.8, 0.8, 0.8), mgl32.Vec3{-3, 0.75, -3}, 0},
	}
	for _, o := range solids {
		m, err := d.phong(o.color, true)
		if err != nil {
			return fmt.Errorf("creating material: %w", err)
		}
		transform := mgl32.Translate3D(o.position.Elem()).Mul4(mgl32.HomogRotate3DY(o.angle))
		s.CreateGeometry(o.geometry, m.Material(), transform, nil)
	}

	glass := []struct {
		color    graphics.Color
		position mgl32.Vec3
	}{
		{graphics.Color{R: 0.9, G: 0.3, B: 0.9, A: 0.4}, mgl32.Vec3{3, 1, 2}},
		{graphics.Color{R: 0.3, G: 0.9, B: 0.9, A: 0.5}, mgl32.Vec3{3.5, 1, 3.5}},
		{graphics.Color{R: 1, G: 1, B: 0.3, A: 0.3}, mgl32.Vec3{-1, 1.5, 3}},
	}
	for _, o := range glass {
		m, err := d.phong(o.color, false)
		if err != nil {
			return fmt.Errorf("creating material: %w", err)
		}
		m.SetTransparent(true)
		node := s.CreateGeometry(box, m.Material(), mgl32.Translate3D(o.position.Elem()), nil)
		s.SetTransparent(node, true)
	}
	log.Info("objects created", zap.Int("solid", len(solids)), zap.Int("transparent", len(glass)))
	return nil
}

// createLights adds one light of each enabled kind and returns the
// directional shadow map, if any.
func (d *demo) createLights() (*factory.ShadowMap, error) {
	e := d.engine
	s := e.Scene()
	f := e.Factory()
	rc := e.Config().Renderer
	var sun *factory.ShadowMap

	if rc.MaxDirectionalLights > 0 {
		light := s.CreateLight(scene.LightDirectional, mgl32.Translate3D(6, 10, 6), nil)
		light.SetTarget(mgl32.Vec3{})
		light.SetAmbient(graphics.RGB(0.15, 0.15, 0.15))
		light.SetDiffuse(graphics.RGB(0.7, 0.7, 0.65))
		m, err := f.Shadow.Create(light, s.RenderGroup(), e.ShadowConfig())
		if err != nil {
			return nil, fmt.Errorf("creating directional shadow map: %w", err)
		}
		sun = m
	}

	if rc.MaxPointLights > 0 {
		position := mgl32.Vec3{-3, 2.5, 2}
		light := s.CreateLight(scene.LightPoint, mgl32.Translate3D(position.Elem()), nil)
		light.SetAmbient(graphics.RGB(0, 0, 0))
		light.SetDiffuse(graphics.RGB(1, 0.6, 0.3))
		light.SetLinearAttenuation(0.09)
		light.SetQuadraticAttenuation(0.032)

		bulb, err := f.Geometry.Sphere(0.1, 2)
		if err != nil {
			return nil, fmt.Errorf("creating light marker: %w", err)
		}
		marker, err := f.Material.FlatColor(false)
		if err != nil {
			return nil, fmt.Errorf("creating light marker material: %w", err)
		}
		orange, err := f.Texture.SolidColor(graphics.RGB(1, 0.6, 0.3))
		if err != nil {
			return nil, fmt.Errorf("creating light marker texture: %w", err)
		}
		marker.SetColor(orange)
		s.CreateGeometry(bulb, marker.Material(), mgl32.Ident4(), light)
	}

	if rc.MaxSpotLights > 0 {
		light := s.CreateLight(scene.LightSpot, mgl32.Translate3D(0, 7, -5), nil)
		light.SetTarget(mgl32.Vec3{0, 0, 0})
		light.SetAmbient(graphics.RGB(0, 0, 0))
		light.SetDiffuse(graphics.RGB(0.4, 0.5, 1))
		light.SetOuterAngle(mgl32.DegToRad(30))
		light.SetInnerAngle(mgl32.DegToRad(20))
		if _, err := f.Shadow.Create(light, s.RenderGroup(), e.ShadowConfig()); err != nil {
			return nil, fmt.Errorf("creating spot shadow map: %w", err)
		}
	}
	return sun, nil
}

func (d *demo) createPasses(sun *factory.ShadowMap) error {
	e := d.engine
	s := e.Scene()
	f := e.Factory()
	viewpoint := s.ActiveViewpoint()
	clear := e.ClearColor()

	e.Renderer().CreatePass(renderer.PassConfig{
		Viewpoint:  viewpoint,
		Object:     s.RenderGroup(),
		ClearColor: &clear,
		ClearDepth: true,
	}, mainPassPriority)

	cubemap, err := f.Texture.Cubemap(skyFaces(64), graphics.TextureParameters{
		MinFilter: graphics.TextureFilterLinear,
		MagFilter: graphics.TextureFilterLinear,
		Wrap:      graphics.TextureWrapClampToEdge,
	})
	if err != nil {
		return fmt.Errorf("creating sky cubemap: %w", err)
	}
	if _, err := f.Skybox.Create(cubemap, viewpoint, skyboxPassPriority); err != nil {
		return fmt.Errorf("creating skybox: %w", err)
	}

	e.Renderer().CreateDepthSortedPass(renderer.PassConfig{
		Viewpoint:   viewpoint,
		FaceCulling: graphics.FaceCullingNone,
		Blending:    true,
	}, s.TransparentGroup(), transparentPassPriority)

	if sun != nil {
		d.overlay, err = f.RenderPass.TextureToWindow(sun.Texture(), &graphics.Viewport{X: 10, Y: 10, Width: 200, Height: 200}, overlayPassPriority)
		if err != nil {
			return fmt.Errorf("creating shadow map overlay: %w", err)
		}
		d.overlay.SetActive(false)
	}
	return nil
}

// skyFaces paints a vertical gradient on the side faces, with the zenith
// color on +Y and the ground color on -Y.
func skyFaces(size int) [6]image.Image {
	zenith := color.RGBA{R: 40, G: 90, B: 180, A: 255}
	horizon := color.RGBA{R: 190, G: 210, B: 235, A: 255}
	ground := color.RGBA{R: 60, G: 55, B: 50, A: 255}

	fill := func(top, bottom color.RGBA) image.Image {
		img := image.NewRGBA(image.Rect(0, 0, size, size))
		for y := 0; y < size; y++ {
			t := float32(y) / float32(size-1)
			c := color.RGBA{
				R: lerp(top.R, bottom.R, t),
				G: lerp(top.G, bottom.G, t),
				B: lerp(top.B, bottom.B, t),
				A: 255,
			}
			for x := 0; x < size; x++ {
				img.SetRGBA(x, y, c)
			}
		}
		return img
	}

	side := fill(zenith, horizon)
	return [6]image.Image{side, side, fill(zenith, zenith), fill(ground, ground), side, side}
}

func lerp(a, b uint8, t float32) uint8 {
	return uint8(float32(a) + (float32(b)-float32(a))*t + 0.5)
}

// OnEvent stops the engine on Escape and toggles the shadow map overlay
// on F1.
func (d *demo) OnEvent(ev input.Event) {
	if ev.Type != input.EventKeyboard || !ev.Keyboard.Pressed || ev.Keyboard.Repeat {
		return
	}
	switch ev.Keyboard.Key {
	case input.KeyEscape:
		d.engine.Stop()
	case input.KeyF1:
		if d.overlay != nil {
			d.overlay.SetActive(!d.overlay.Active())
		}
	}
}

// Close detaches the demo from the window. Scene resources are released by
// the engine.
func (d *demo) Close() {
	d.engine.Window().RemoveEventHandler(d)
	if d.controller != nil {
		d.engine.Scene().RemoveCameraController(d.controller)
		if c, ok := d.controller.(closer); ok {
			c.Close()
		}
		d.controller = nil
	}
}
