package scene

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gltut/internal/engine/graphics"
)

// Parameter is a light property that can be routed to a shader uniform.
type Parameter int

const (
	DirectionalLightPosition Parameter = iota
	DirectionalLightDirection
	DirectionalLightAmbientColor
	DirectionalLightDiffuseColor
	DirectionalLightSpecularColor
	DirectionalLightShadowMatrix

	PointLightPosition
	PointLightLinearAttenuation
	PointLightQuadraticAttenuation
	PointLightAmbientColor
	PointLightDiffuseColor
	PointLightSpecularColor

	SpotLightPosition
	SpotLightDirection
	SpotLightInnerAngleCos
	SpotLightOuterAngleCos
	SpotLightLinearAttenuation
	SpotLightQuadraticAttenuation
	SpotLightAmbientColor
	SpotLightDiffuseColor
	SpotLightSpecularColor
	SpotLightShadowMatrix
	SpotLightShadowNear
	SpotLightShadowFar

	ParameterCount
)

var parameterNames = [ParameterCount]string{
	"directional_light_position",
	"directional_light_direction",
	"directional_light_ambient_color",
	"directional_light_diffuse_color",
	"directional_light_specular_color",
	"directional_light_shadow_matrix",
	"point_light_position",
	"point_light_linear_attenuation",
	"point_light_quadratic_attenuation",
	"point_light_ambient_color",
	"point_light_diffuse_color",
	"point_light_specular_color",
	"spot_light_position",
	"spot_light_direction",
	"spot_light_inner_angle_cos",
	"spot_light_outer_angle_cos",
	"spot_light_linear_attenuation",
	"spot_light_quadratic_attenuation",
	"spot_light_ambient_color",
	"spot_light_diffuse_color",
	"spot_light_specular_color",
	"spot_light_shadow_matrix",
	"spot_light_shadow_near",
	"spot_light_shadow_far",
}

// String implements fmt.Stringer.
func (p Parameter) String() string {
	if p >= 0 && p < ParameterCount {
		return parameterNames[p]
	}
	return fmt.Sprintf("Parameter(%d)", int(p))
}

// uniformName is a bound parameter split into an array name and an
// optional struct field: "pointLights.position" becomes
// pointLights[i].position.
type uniformName struct {
	array string
	field string
}

func (u uniformName) at(i int) string {
	name := u.array + "[" + strconv.Itoa(i) + "]"
	if u.field != "" {
		name += "." + u.field
	}
	return name
}

// ShaderBinding pushes the scene lights into uniform arrays of one shader.
// Lights of each type are numbered separately in scene order.
type ShaderBinding struct {
	shader graphics.Shader
	names  [ParameterCount]string
	parts  [ParameterCount]uniformName
}

// NewShaderBinding creates a binding with no bound parameters.
func NewShaderBinding(shader graphics.Shader) *ShaderBinding {
	return &ShaderBinding{shader: shader}
}

// Shader returns the target shader.
func (b *ShaderBinding) Shader() graphics.Shader {
	return b.shader
}

// Bind routes p to name, given as "array" or "array.field". An empty name
// unbinds p.
func (b *ShaderBinding) Bind(p Parameter, name string) {
	if p < 0 || p >= ParameterCount {
		return
	}
	b.names[p] = name
	array, field, _ := strings.Cut(name, ".")
	b.parts[p] = uniformName{array: array, field: field}
}

// BoundParameter returns the name p is routed to.
func (b *ShaderBinding) BoundParameter(p Parameter) (string, bool) {
	if p < 0 || p >= ParameterCount || b.names[p] == "" {
		return "", false
	}
	return b.names[p], true
}

func (b *ShaderBinding) setVec3(p Parameter, i int, v mgl32.Vec3) bool {
	return b.names[p] != "" && graphics.SetVec3ByName(b.shader, b.parts[p].at(i), v)
}

func (b *ShaderBinding) setFloat(p Parameter, i int, v float32) {
	if b.names[p] != "" {
		graphics.SetFloatByName(b.shader, b.parts[p].at(i), v)
	}
}

func (b *ShaderBinding) setMat4(p Parameter, i int, v mgl32.Mat4) {
	if b.names[p] != "" {
		graphics.SetMat4ByName(b.shader, b.parts[p].at(i), v)
	}
}

// Update writes the properties of every light in s. Colors of array slots
// no longer backed by a light are zeroed so removed lights stop shining.
func (b *ShaderBinding) Update(s *Scene) {
	if b.shader == nil || s == nil {
		return
	}
	var directional, point, spot int
	for _, light := range s.lights {
		switch light.Type() {
		case LightDirectional:
			b.updateColors(light, directional, DirectionalLightPosition,
				DirectionalLightAmbientColor, DirectionalLightDiffuseColor, DirectionalLightSpecularColor)
			b.setVec3(DirectionalLightDirection, directional, light.GlobalDirection())
			b.setMat4(DirectionalLightShadowMatrix, directional, shadowMatrix(light))
			directional++
		case LightPoint:
			b.updateColors(light, point, PointLightPosition,
				PointLightAmbientColor, PointLightDiffuseColor, PointLightSpecularColor)
			b.setFloat(PointLightLinearAttenuation, point, light.LinearAttenuation())
			b.setFloat(PointLightQuadraticAttenuation, point, light.QuadraticAttenuation())
			point++
		case LightSpot:
			b.updateColors(light, spot, SpotLightPosition,
				SpotLightAmbientColor, SpotLightDiffuseColor, SpotLightSpecularColor)
			b.setVec3(SpotLightDirection, spot, light.GlobalDirection())
			b.setFloat(SpotLightInnerAngleCos, spot, float32(math.Cos(float64(light.InnerAngle()))))
			b.setFloat(SpotLightOuterAngleCos, spot, float32(math.Cos(float64(light.OuterAngle()))))
			b.setFloat(SpotLightLinearAttenuation, spot, light.LinearAttenuation())
			b.setFloat(SpotLightQuadraticAttenuation, spot, light.QuadraticAttenuation())
			b.setMat4(SpotLightShadowMatrix, spot, shadowMatrix(light))
			if m := light.ShadowMap(); m != nil {
				b.setFloat(SpotLightShadowNear, spot, m.FrustumNear())
				b.setFloat(SpotLightShadowFar, spot, m.FrustumFar())
			}
			spot++
		default:
			panic(fmt.Sprintf("scene: unexpected light type %v", light.Type()))
		}
	}
	b.clearColors(directional, DirectionalLightAmbientColor, DirectionalLightDiffuseColor, DirectionalLightSpecularColor)
	b.clearColors(point, PointLightAmbientColor, PointLightDiffuseColor, PointLightSpecularColor)
	b.clearColors(spot, SpotLightAmbientColor, SpotLightDiffuseColor, SpotLightSpecularColor)
}

// clearColors zeroes the colors from index from until the shader runs out
// of array elements.
func (b *ShaderBinding) clearColors(from int, colors ...Parameter) {
	for i := from; ; i++ {
		found := false
		for _, p := range colors {
			if b.setVec3(p, i, mgl32.Vec3{}) {
				found = true
			}
		}
		if !found {
			return
		}
	}
}

func (b *ShaderBinding) updateColors(light *LightNode, i int, position, ambient, diffuse, specular Parameter) {
	b.setVec3(position, i, light.Position())
	b.setVec3(ambient, i, graphics.ColorVec3(light.Ambient()))
	b.setVec3(diffuse, i, graphics.ColorVec3(light.Diffuse()))
	b.setVec3(specular, i, graphics.ColorVec3(light.Specular()))
}

// shadowMatrix returns the light shadow matrix, or zero without a shadow map.
func shadowMatrix(light *LightNode) mgl32.Mat4 {
	if m := light.ShadowMap(); m != nil {
		return m.ShadowMatrix()
	}
	return mgl32.Mat4{}
}
