// Package renderer implements materials, render objects and the
// priority-ordered list of render passes executed every frame.
//
// Shader parameters reach the GPU through bindings. A binding maps a small
// set of semantic parameters (view matrix, projection matrix, viewpoint
// position, model matrix, normal matrix) onto named shader uniforms or
// byte offsets in a uniform buffer, so passes and materials never deal
// with shader specific names.
package renderer

import "github.com/go-gl/mathgl/mgl32"

// Viewpoint provides the camera matrices used by a render pass.
type Viewpoint interface {
	Position() mgl32.Vec3
	ViewMatrix() mgl32.Mat4
	// ProjectionMatrix returns the projection for a target aspect ratio.
	ProjectionMatrix(aspectRatio float32) mgl32.Mat4
}

// StaticViewpoint is a Viewpoint with explicitly set matrices.
type StaticViewpoint struct {
	position   mgl32.Vec3
	view       mgl32.Mat4
	projection mgl32.Mat4
}

// NewStaticViewpoint creates a viewpoint at the origin with identity matrices.
func NewStaticViewpoint() *StaticViewpoint {
	return &StaticViewpoint{view: mgl32.Ident4(), projection: mgl32.Ident4()}
}

// Position returns the eye position.
func (v *StaticViewpoint) Position() mgl32.Vec3 { return v.position }

// ViewMatrix returns the view matrix.
func (v *StaticViewpoint) ViewMatrix() mgl32.Mat4 { return v.view }

// ProjectionMatrix returns the fixed projection, ignoring the aspect ratio.
func (v *StaticViewpoint) ProjectionMatrix(float32) mgl32.Mat4 { return v.projection }

// SetPosition sets the eye position.
func (v *StaticViewpoint) SetPosition(p mgl32.Vec3) { v.position = p }

// SetViewMatrix sets the view matrix.
func (v *StaticViewpoint) SetViewMatrix(m mgl32.Mat4) { v.view = m }

// SetProjectionMatrix sets the projection matrix.
func (v *StaticViewpoint) SetProjectionMatrix(m mgl32.Mat4) { v.projection = m }
