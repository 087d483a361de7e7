package scene

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gltut/internal/engine/graphics"
	"github.com/Faultbox/gltut/internal/engine/renderer"
)

// LightType is the kind of light source.
type LightType int

const (
	LightDirectional LightType = iota
	LightPoint
	LightSpot
)

// String implements fmt.Stringer.
func (t LightType) String() string {
	switch t {
	case LightDirectional:
		return "directional"
	case LightPoint:
		return "point"
	case LightSpot:
		return "spot"
	}
	return fmt.Sprintf("LightType(%d)", int(t))
}

// Light defaults.
var (
	DefaultLightAmbient   = graphics.Color{R: 0.1, G: 0.1, B: 0.1, A: 1}
	DefaultLightDiffuse   = graphics.Color{R: 1, G: 1, B: 1, A: 1}
	DefaultLightSpecular  = graphics.Color{R: 1, G: 1, B: 1, A: 1}
	DefaultLightDirection = mgl32.Vec3{0, -1, 0}
)

// ShadowMap is a depth render target that follows a light.
type ShadowMap interface {
	Texture() graphics.Texture
	Viewpoint() renderer.Viewpoint
	// ShadowMatrix maps world space to the light clip space.
	ShadowMatrix() mgl32.Mat4
	FrustumNear() float32
	FrustumFar() float32
	// Update moves the light viewpoint to the current light transform.
	Update()
}

// LightNode is a light source in the hierarchy.
type LightNode struct {
	Node
	lightType LightType
	ambient   graphics.Color
	diffuse   graphics.Color
	specular  graphics.Color
	direction mgl32.Vec3
	inner     float32
	outer     float32
	linear    float32
	quadratic float32
	shadowMap ShadowMap
}

// NewLightNode creates a light with default colors, pointing down, with
// both cone angles at half pi.
func NewLightNode(t LightType, transform mgl32.Mat4, parent SceneNode) *LightNode {
	l := &LightNode{
		lightType: t,
		ambient:   DefaultLightAmbient,
		diffuse:   DefaultLightDiffuse,
		specular:  DefaultLightSpecular,
		direction: DefaultLightDirection,
		inner:     math.Pi / 2,
		outer:     math.Pi / 2,
	}
	l.init(transform, parent)
	return l
}

// Type returns the light type.
func (l *LightNode) Type() LightType { return l.lightType }

// SetType changes the light type.
func (l *LightNode) SetType(t LightType) { l.lightType = t }

// Ambient returns the ambient color.
func (l *LightNode) Ambient() graphics.Color { return l.ambient }

// SetAmbient sets the ambient color.
func (l *LightNode) SetAmbient(c graphics.Color) { l.ambient = c }

// Diffuse returns the diffuse color.
func (l *LightNode) Diffuse() graphics.Color { return l.diffuse }

// SetDiffuse sets the diffuse color.
func (l *LightNode) SetDiffuse(c graphics.Color) { l.diffuse = c }

// Specular returns the specular color.
func (l *LightNode) Specular() graphics.Color { return l.specular }

// SetSpecular sets the specular color.
func (l *LightNode) SetSpecular(c graphics.Color) { l.specular = c }

// Direction returns the normalized direction in the local frame.
func (l *LightNode) Direction() mgl32.Vec3 {
	return l.direction
}

// SetDirection sets the local direction. A near zero vector resets it to
// DefaultLightDirection.
func (l *LightNode) SetDirection(d mgl32.Vec3) {
	if d.Len() < 1e-6 {
		l.direction = DefaultLightDirection
		return
	}
	l.direction = d.Normalize()
}

// GlobalDirection returns the direction in world space.
func (l *LightNode) GlobalDirection() mgl32.Vec3 {
	d := l.global.Mat3().Mul3x1(l.direction)
	if d.Len() < 1e-6 {
		return DefaultLightDirection
	}
	return d.Normalize()
}

// SetTarget points the light at target, given in the parent frame.
func (l *LightNode) SetTarget(target mgl32.Vec3) {
	position := l.local.Col(3).Vec3()
	l.SetDirection(l.local.Mat3().Transpose().Mul3x1(target.Sub(position)))
}

// Position returns the world space position.
func (l *LightNode) Position() mgl32.Vec3 {
	return l.global.Col(3).Vec3()
}

// InnerAngle returns the inner spot cone angle in radians.
func (l *LightNode) InnerAngle() float32 {
	return l.inner
}

// SetInnerAngle sets the inner cone angle, clamped to [0, OuterAngle].
func (l *LightNode) SetInnerAngle(radians float32) {
	l.inner = mgl32.Clamp(radians, 0, l.outer)
}

// OuterAngle returns the outer spot cone angle in radians.
func (l *LightNode) OuterAngle() float32 {
	return l.outer
}

// SetOuterAngle sets the outer cone angle, clamped to [0, pi]. The inner
// angle is clamped down when it exceeds the new outer angle.
func (l *LightNode) SetOuterAngle(radians float32) {
	l.outer = mgl32.Clamp(radians, 0, math.Pi)
	l.inner = mgl32.Clamp(l.inner, 0, l.outer)
}

// LinearAttenuation returns the linear distance attenuation factor.
func (l *LightNode) LinearAttenuation() float32 {
	return l.linear
}

// SetLinearAttenuation sets the linear attenuation. Negative values are
// clamped to zero.
func (l *LightNode) SetLinearAttenuation(v float32) {
	l.linear = max(v, 0)
}

// QuadraticAttenuation returns the quadratic distance attenuation factor.
func (l *LightNode) QuadraticAttenuation() float32 {
	return l.quadratic
}

// SetQuadraticAttenuation sets the quadratic attenuation. Negative values
// are clamped to zero.
func (l *LightNode) SetQuadraticAttenuation(v float32) {
	l.quadratic = max(v, 0)
}

// ShadowMap returns the shadow map attached to the light, if any.
func (l *LightNode) ShadowMap() ShadowMap {
	return l.shadowMap
}

// SetShadowMap attaches a shadow map. Nil detaches it.
func (l *LightNode) SetShadowMap(m ShadowMap) {
	l.shadowMap = m
}
