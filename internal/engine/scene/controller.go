package scene

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gltut/internal/engine/input"
)

// CameraController moves a camera once per scene update.
type CameraController interface {
	// UpdateCamera is called with the time since scene creation and since
	// the previous update, both in milliseconds.
	UpdateCamera(timeMs uint64, deltaMs uint32)
}

// FPSCameraController translates the camera with the WASD keys.
type FPSCameraController struct {
	camera *Camera
	speed  float32
	keys   *input.KeyState
}

// NewFPSCameraController creates a controller moving speed units per
// second. It listens to the camera window until Close.
func NewFPSCameraController(camera *Camera, speed float32) (*FPSCameraController, error) {
	if speed <= 0 {
		return nil, fmt.Errorf("%w: translation speed must be positive", ErrInvalidCamera)
	}
	c := &FPSCameraController{camera: camera, speed: speed, keys: input.NewKeyState()}
	if w := camera.projection.window; w != nil {
		w.AddEventHandler(c)
	}
	return c, nil
}

// OnEvent tracks held keys.
func (c *FPSCameraController) OnEvent(e input.Event) {
	c.keys.OnEvent(e)
}

// UpdateCamera moves position and target along the held directions.
func (c *FPSCameraController) UpdateCamera(_ uint64, deltaMs uint32) {
	movement := mgl32.Vec3{
		axis(c.keys.Pressed(input.KeyD), c.keys.Pressed(input.KeyA)),
		0,
		axis(c.keys.Pressed(input.KeyS), c.keys.Pressed(input.KeyW)),
	}
	if movement.Len() == 0 {
		return
	}
	movement = movement.Normalize().Mul(c.speed * float32(deltaMs) / 1000)
	view := c.camera.view
	view.Set(view.position.Add(movement), view.target.Add(movement))
}

// Close stops listening to window events.
func (c *FPSCameraController) Close() {
	if w := c.camera.projection.window; w != nil {
		w.RemoveEventHandler(c)
	}
}

func axis(positive, negative bool) float32 {
	var v float32
	if positive {
		v++
	}
	if negative {
		v--
	}
	return v
}

// mouseRotationScale converts pixels to degrees before the speed factor.
const mouseRotationScale = 0.002

// maxPitch keeps the orbit away from the poles, in degrees.
const maxPitch = 89

// MouseCameraController orbits the camera around its target with the left
// button, pans the target with the middle button and zooms with the wheel.
type MouseCameraController struct {
	camera           *Camera
	rotationSpeed    float32
	zoomSpeed        float32
	translationSpeed float32
	minDistance      float32
	maxDistance      float32

	// Orbit state in degrees
	yaw, pitch float32
	distance   float32
	target     mgl32.Vec3

	mouseX, mouseY int
	buttons        input.MouseButtons

	rotating    bool
	rotateX     int
	rotateY     int
	translating bool
	translateX  int
	translateY  int
	oldTarget   mgl32.Vec3
}

// NewMouseCameraController creates an orbit controller starting from the
// current camera placement. The distance to the target is clamped to
// [minDistance, maxDistance].
func NewMouseCameraController(camera *Camera, rotationSpeed, zoomSpeed, translationSpeed, minDistance, maxDistance float32) (*MouseCameraController, error) {
	switch {
	case rotationSpeed <= 0:
		return nil, fmt.Errorf("%w: rotation speed must be positive", ErrInvalidCamera)
	case zoomSpeed <= 0:
		return nil, fmt.Errorf("%w: zoom speed must be positive", ErrInvalidCamera)
	case translationSpeed <= 0:
		return nil, fmt.Errorf("%w: translation speed must be positive", ErrInvalidCamera)
	case minDistance <= 0:
		return nil, fmt.Errorf("%w: minimum distance must be positive", ErrInvalidCamera)
	case maxDistance <= minDistance:
		return nil, fmt.Errorf("%w: maximum distance must exceed the minimum", ErrInvalidCamera)
	}

	c := &MouseCameraController{
		camera:           camera,
		rotationSpeed:    rotationSpeed,
		zoomSpeed:        zoomSpeed,
		translationSpeed: translationSpeed,
		minDistance:      minDistance,
		maxDistance:      maxDistance,
		target:           camera.view.target,
	}

	offset := camera.view.position.Sub(camera.view.target)
	c.distance = mgl32.Clamp(offset.Len(), minDistance, maxDistance)
	c.yaw = mgl32.RadToDeg(float32(math.Atan2(float64(offset.X()), float64(offset.Z()))))
	c.pitch = clampPitch(mgl32.RadToDeg(float32(math.Asin(float64(offset.Y() / offset.Len())))))

	if w := camera.projection.window; w != nil {
		w.AddEventHandler(c)
	}
	return c, nil
}

func clampPitch(p float32) float32 {
	return mgl32.Clamp(p, -maxPitch, maxPitch)
}

// Distance returns the current distance to the target.
func (c *MouseCameraController) Distance() float32 {
	return c.distance
}

// OnEvent tracks the cursor and applies wheel zoom.
func (c *MouseCameraController) OnEvent(e input.Event) {
	if e.Type != input.EventMouse {
		return
	}
	c.mouseX, c.mouseY = e.Mouse.X, e.Mouse.Y
	c.buttons = e.Mouse.Buttons
	if e.Mouse.Type == input.MouseWheel {
		c.distance *= float32(math.Pow(2, float64(-e.Mouse.Wheel*0.25*c.zoomSpeed/100)))
		c.distance = mgl32.Clamp(c.distance, c.minDistance, c.maxDistance)
	}
}

func (c *MouseCameraController) rotationOffset() (yaw, pitch float32) {
	dx := float32(c.mouseX - c.rotateX)
	dy := float32(c.mouseY - c.rotateY)
	return -dx * mouseRotationScale * c.rotationSpeed, dy * mouseRotationScale * c.rotationSpeed
}

// UpdateCamera applies drags and places the camera on its orbit.
func (c *MouseCameraController) UpdateCamera(uint64, uint32) {
	yaw, pitch := c.yaw, c.pitch

	switch {
	case c.buttons.Has(input.MouseLeft) && !c.rotating:
		c.rotating = true
		c.rotateX, c.rotateY = c.mouseX, c.mouseY
	case c.buttons.Has(input.MouseLeft):
		dYaw, dPitch := c.rotationOffset()
		yaw, pitch = c.yaw+dYaw, clampPitch(c.pitch+dPitch)
	case c.rotating:
		// Release commits the drag
		dYaw, dPitch := c.rotationOffset()
		c.yaw, c.pitch = c.yaw+dYaw, clampPitch(c.pitch+dPitch)
		yaw, pitch = c.yaw, c.pitch
		c.rotating = false
	}

	switch {
	case c.buttons.Has(input.MouseMiddle) && !c.translating:
		c.translating = true
		c.translateX, c.translateY = c.mouseX, c.mouseY
		c.oldTarget = c.target
	case c.buttons.Has(input.MouseMiddle):
		start := ScreenToCameraRay(c.translateX, c.translateY, c.camera)
		end := ScreenToCameraRay(c.mouseX, c.mouseY, c.camera)
		delta := start.Sub(end).Mul(c.distance * c.translationSpeed / 100)
		c.target = c.oldTarget.Add(delta)
	default:
		c.translating = false
	}

	c.camera.view.Set(c.target.Add(orbitOffset(yaw, pitch, c.distance)), c.target)
}

// orbitOffset returns the eye position relative to the target.
func orbitOffset(yawDeg, pitchDeg, distance float32) mgl32.Vec3 {
	yaw := float64(mgl32.DegToRad(yawDeg))
	pitch := float64(mgl32.DegToRad(pitchDeg))
	return mgl32.Vec3{
		distance * float32(math.Cos(pitch)*math.Sin(yaw)),
		distance * float32(math.Sin(pitch)),
		distance * float32(math.Cos(pitch)*math.Cos(yaw)),
	}
}

// Close stops listening to window events.
func (c *MouseCameraController) Close() {
	if w := c.camera.projection.window; w != nil {
		w.RemoveEventHandler(c)
	}
}
