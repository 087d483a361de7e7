package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gltut/internal/engine/graphics"
	"github.com/Faultbox/gltut/internal/engine/input"
)

// ErrInvalidCamera is returned for degenerate camera parameters.
var ErrInvalidCamera = errors.New("invalid camera")

// Window is the part of a window used by cameras and controllers.
type Window interface {
	Size() graphics.Size
	AddEventHandler(h input.Handler)
	RemoveEventHandler(h input.Handler)
}

// CameraView is a look-at transform.
type CameraView struct {
	position mgl32.Vec3
	target   mgl32.Vec3
	up       mgl32.Vec3
	matrix   mgl32.Mat4
}

// NewCameraView creates a view. The position must differ from the target
// and up must be non-zero and not parallel to the view direction.
func NewCameraView(position, target, up mgl32.Vec3) (*CameraView, error) {
	if err := checkView(position, target, up); err != nil {
		return nil, err
	}
	v := &CameraView{position: position, target: target, up: up}
	v.update()
	return v, nil
}

func checkView(position, target, up mgl32.Vec3) error {
	dir := target.Sub(position)
	if dir.Len() < 1e-6 {
		return fmt.Errorf("%w: position and target must differ", ErrInvalidCamera)
	}
	if up.Len() < 1e-6 {
		return fmt.Errorf("%w: up vector must not be zero", ErrInvalidCamera)
	}
	if dir.Normalize().Cross(up.Normalize()).Len() < 1e-6 {
		return fmt.Errorf("%w: up vector must not be parallel to the view direction", ErrInvalidCamera)
	}
	return nil
}

func (v *CameraView) update() {
	v.matrix = mgl32.LookAtV(v.position, v.target, v.up)
}

// Matrix returns the view matrix.
func (v *CameraView) Matrix() mgl32.Mat4 { return v.matrix }

// Position returns the eye position.
func (v *CameraView) Position() mgl32.Vec3 { return v.position }

// Target returns the look-at point.
func (v *CameraView) Target() mgl32.Vec3 { return v.target }

// Up returns the up vector.
func (v *CameraView) Up() mgl32.Vec3 { return v.up }

// SetPosition moves the eye. A position that would make the view
// degenerate is ignored and false is returned.
func (v *CameraView) SetPosition(p mgl32.Vec3) bool {
	return v.set(p, v.target, v.up)
}

// SetTarget moves the look-at point, ignoring degenerate targets.
func (v *CameraView) SetTarget(t mgl32.Vec3) bool {
	return v.set(v.position, t, v.up)
}

// SetUp changes the up vector, ignoring degenerate ones.
func (v *CameraView) SetUp(up mgl32.Vec3) bool {
	return v.set(v.position, v.target, up)
}

// Set replaces position and target together.
func (v *CameraView) Set(position, target mgl32.Vec3) bool {
	return v.set(position, target, v.up)
}

func (v *CameraView) set(position, target, up mgl32.Vec3) bool {
	if checkView(position, target, up) != nil {
		return false
	}
	v.position, v.target, v.up = position, target, up
	v.update()
	return true
}

// CameraProjection is a perspective projection. Without a fixed aspect
// ratio it follows the window size.
type CameraProjection struct {
	window      Window
	fov         float32
	near        float32
	far         float32
	aspectRatio *float32
	matrix      mgl32.Mat4
}

// NewCameraProjection creates a projection. fovDegrees and near must be
// positive and far must exceed near.
func NewCameraProjection(w Window, fovDegrees, near, far float32, aspectRatio *float32) (*CameraProjection, error) {
	if fovDegrees <= 0 {
		return nil, fmt.Errorf("%w: field of view must be positive", ErrInvalidCamera)
	}
	if near <= 0 {
		return nil, fmt.Errorf("%w: near plane must be positive", ErrInvalidCamera)
	}
	if far <= near {
		return nil, fmt.Errorf("%w: far plane must be beyond the near plane", ErrInvalidCamera)
	}
	if aspectRatio != nil && *aspectRatio <= 0 {
		return nil, fmt.Errorf("%w: aspect ratio must be positive", ErrInvalidCamera)
	}
	p := &CameraProjection{window: w, fov: fovDegrees, near: near, far: far}
	p.SetAspectRatio(aspectRatio)
	return p, nil
}

// FOV returns the vertical field of view in degrees.
func (p *CameraProjection) FOV() float32 { return p.fov }

// Near returns the near plane distance.
func (p *CameraProjection) Near() float32 { return p.near }

// Far returns the far plane distance.
func (p *CameraProjection) Far() float32 { return p.far }

// Matrix returns the projection matrix.
func (p *CameraProjection) Matrix() mgl32.Mat4 { return p.matrix }

// Window returns the window the aspect ratio follows.
func (p *CameraProjection) Window() Window { return p.window }

// SetFOV sets the vertical field of view in degrees.
func (p *CameraProjection) SetFOV(degrees float32) {
	p.fov = degrees
	p.update()
}

// SetNear sets the near plane distance.
func (p *CameraProjection) SetNear(near float32) {
	p.near = near
	p.update()
}

// SetFar sets the far plane distance.
func (p *CameraProjection) SetFar(far float32) {
	p.far = far
	p.update()
}

// AspectRatio returns the fixed aspect ratio, or nil when it follows the window.
func (p *CameraProjection) AspectRatio() *float32 {
	if p.aspectRatio == nil {
		return nil
	}
	r := *p.aspectRatio
	return &r
}

// SetAspectRatio fixes the aspect ratio. Nil makes the projection follow
// the window size again.
func (p *CameraProjection) SetAspectRatio(aspectRatio *float32) {
	if p.window != nil {
		p.window.RemoveEventHandler(p)
	}
	if aspectRatio != nil {
		r := *aspectRatio
		p.aspectRatio = &r
	} else {
		p.aspectRatio = nil
		if p.window != nil {
			p.window.AddEventHandler(p)
		}
	}
	p.update()
}

// MatrixFor returns the projection for a render target aspect ratio. A
// fixed aspect ratio takes precedence.
func (p *CameraProjection) MatrixFor(aspectRatio float32) mgl32.Mat4 {
	if p.aspectRatio != nil {
		aspectRatio = *p.aspectRatio
	}
	if aspectRatio <= 0 {
		aspectRatio = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(p.fov), aspectRatio, p.near, p.far)
}

func (p *CameraProjection) currentAspectRatio() float32 {
	if p.aspectRatio != nil {
		return *p.aspectRatio
	}
	if p.window == nil {
		return 1
	}
	return p.window.Size().AspectRatio()
}

func (p *CameraProjection) update() {
	p.matrix = p.MatrixFor(p.currentAspectRatio())
}

// OnEvent recomputes the matrix on window resize.
func (p *CameraProjection) OnEvent(e input.Event) {
	if e.Type == input.EventWindowResize {
		p.update()
	}
}

// Close stops following the window size.
func (p *CameraProjection) Close() {
	if p.window != nil {
		p.window.RemoveEventHandler(p)
	}
}

// Camera pairs a view with a projection.
type Camera struct {
	view       *CameraView
	projection *CameraProjection
	viewpoint  CameraViewpoint
}

// NewCamera creates a camera. A nil aspectRatio follows the window size.
func NewCamera(w Window, position, target, up mgl32.Vec3, fovDegrees, near, far float32, aspectRatio *float32) (*Camera, error) {
	view, err := NewCameraView(position, target, up)
	if err != nil {
		return nil, err
	}
	projection, err := NewCameraProjection(w, fovDegrees, near, far, aspectRatio)
	if err != nil {
		return nil, err
	}
	c := &Camera{view: view, projection: projection}
	c.viewpoint.camera = c
	return c, nil
}

// View returns the look-at transform.
func (c *Camera) View() *CameraView { return c.view }

// Projection returns the perspective projection.
func (c *Camera) Projection() *CameraProjection { return c.projection }

// Viewpoint returns the camera as a render pass viewpoint.
func (c *Camera) Viewpoint() *CameraViewpoint {
	return &c.viewpoint
}

// Close detaches the camera from the window.
func (c *Camera) Close() {
	c.projection.Close()
}

// CameraViewpoint exposes a camera as a renderer.Viewpoint. Without a
// camera it reports the origin and identity matrices.
type CameraViewpoint struct {
	camera *Camera
}

// NewCameraViewpoint creates a viewpoint for camera, which may be nil.
func NewCameraViewpoint(camera *Camera) *CameraViewpoint {
	return &CameraViewpoint{camera: camera}
}

// Camera returns the camera, or nil.
func (v *CameraViewpoint) Camera() *Camera { return v.camera }

// SetCamera replaces the camera.
func (v *CameraViewpoint) SetCamera(c *Camera) { v.camera = c }

// Position returns the camera position, or the origin without a camera.
func (v *CameraViewpoint) Position() mgl32.Vec3 {
	if v.camera == nil {
		return mgl32.Vec3{}
	}
	return v.camera.view.position
}

// ViewMatrix returns the camera view, or identity without a camera.
func (v *CameraViewpoint) ViewMatrix() mgl32.Mat4 {
	if v.camera == nil {
		return mgl32.Ident4()
	}
	return v.camera.view.matrix
}

// ProjectionMatrix returns the camera projection for aspectRatio.
func (v *CameraViewpoint) ProjectionMatrix(aspectRatio float32) mgl32.Mat4 {
	if v.camera == nil {
		return mgl32.Ident4()
	}
	return v.camera.projection.MatrixFor(aspectRatio)
}
