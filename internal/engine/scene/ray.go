package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gltut/internal/engine/graphics"
)

// Ray is a half line with a normalized direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// ScreenToRay converts window pixel coordinates to a world space ray.
// invViewProj is the inverse of projection * view.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj mgl32.Mat4) Ray {
	// Normalized device coordinates, Y up
	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH

	near := unproject(invViewProj, mgl32.Vec4{ndcX, ndcY, -1, 1})
	far := unproject(invViewProj, mgl32.Vec4{ndcX, ndcY, 1, 1})

	dir := far.Sub(near)
	if l := dir.Len(); l > 0 {
		dir = dir.Mul(1 / l)
	}
	return Ray{Origin: near, Direction: dir}
}

func unproject(inv mgl32.Mat4, p mgl32.Vec4) mgl32.Vec3 {
	w := inv.Mul4x1(p)
	if w[3] != 0 {
		return w.Vec3().Mul(1 / w[3])
	}
	return w.Vec3()
}

// ScreenToCameraRay returns the world space direction through a window
// pixel for camera. The window size comes from the camera projection.
func ScreenToCameraRay(x, y int, camera *Camera) mgl32.Vec3 {
	var size graphics.Size
	if w := camera.projection.window; w != nil {
		size = w.Size()
	}
	if size.Empty() {
		return camera.view.target.Sub(camera.view.position).Normalize()
	}
	viewProj := camera.projection.matrix.Mul4(camera.view.matrix)
	ray := ScreenToRay(float32(x), float32(y), float32(size.Width), float32(size.Height), viewProj.Inv())
	return ray.Direction
}

// IntersectPlaneY intersects the ray with the horizontal plane y = planeY.
// It reports false when the ray is parallel to the plane or points away.
func (r Ray) IntersectPlaneY(planeY float32) (mgl32.Vec3, bool) {
	if math.Abs(float64(r.Direction.Y())) < 0.001 {
		return mgl32.Vec3{}, false
	}
	t := (planeY - r.Origin.Y()) / r.Direction.Y()
	if t < 0 {
		return mgl32.Vec3{}, false
	}
	return r.Origin.Add(r.Direction.Mul(t)), true
}
