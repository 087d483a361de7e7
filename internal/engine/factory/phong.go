package factory

import (
	"fmt"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gltut/internal/engine/graphics"
	"github.com/Faultbox/gltut/internal/engine/renderer"
	"github.com/Faultbox/gltut/internal/engine/scene"
)

// Phong texture slots. Shadow maps follow at PhongTextureSlots, first the
// directional lights then the spot lights.
const (
	PhongDiffuseSlot  = 0
	PhongSpecularSlot = 1
	PhongTextureSlots = 2
)

// Phong shader defaults.
const (
	DefaultShininess        = 32
	DefaultMinShadowMapBias = 0.0005
	DefaultMaxShadowMapBias = 0.005
)

const phongLightUniforms = `
struct Color
{
	vec3 ambient;
	vec3 diffuse;
	vec3 specular;
};

#if MAX_DIRECTIONAL_LIGHTS > 0
struct DirectionalLight
{
	Color color;
	vec3 dir;
	mat4 shadowMatrix;
};
uniform DirectionalLight directionalLights[MAX_DIRECTIONAL_LIGHTS];
#endif

#if MAX_POINT_LIGHTS > 0
struct PointLight
{
	Color color;
	vec3 pos;
	float linAttenuation;
	float quadAttenuation;
};
uniform PointLight pointLights[MAX_POINT_LIGHTS];
#endif

#if MAX_SPOT_LIGHTS > 0
struct SpotLight
{
	Color color;
	vec3 pos;
	vec3 dir;
	float innerAngleCos;
	float outerAngleCos;
	float linAttenuation;
	float quadAttenuation;
	mat4 shadowMatrix;
	float shadowNear;
	float shadowFar;
};
uniform SpotLight spotLights[MAX_SPOT_LIGHTS];
#endif
`

const phongVertexShader = `
uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;
uniform mat3 normalMat;

layout (location = 0) in vec3 inPos;
layout (location = 1) in vec3 inNormal;
layout (location = 2) in vec2 inTexCoord;

out vec3 pos;
out vec3 normal;
out vec2 texCoord;

#if MAX_DIRECTIONAL_LIGHTS > 0
out vec4 directionalShadowSpacePos[MAX_DIRECTIONAL_LIGHTS];
#endif
#if MAX_SPOT_LIGHTS > 0
out vec4 spotShadowSpacePos[MAX_SPOT_LIGHTS];
#endif

void main()
{
	vec4 modelPos = model * vec4(inPos, 1.0);
	gl_Position = projection * view * modelPos;
	pos = vec3(modelPos);
	normal = normalMat * inNormal;
	texCoord = inTexCoord;

#if MAX_DIRECTIONAL_LIGHTS > 0
	for (int i = 0; i < MAX_DIRECTIONAL_LIGHTS; ++i)
		directionalShadowSpacePos[i] = directionalLights[i].shadowMatrix * modelPos;
#endif
#if MAX_SPOT_LIGHTS > 0
	for (int i = 0; i < MAX_SPOT_LIGHTS; ++i)
		spotShadowSpacePos[i] = spotLights[i].shadowMatrix * modelPos;
#endif
}
`

const phongFragmentShader = `
uniform sampler2D diffuseSampler;
uniform sampler2D specularSampler;
uniform float shininess;
uniform vec3 viewPos;
uniform float minShadowMapBias;
uniform float maxShadowMapBias;

in vec3 pos;
in vec3 normal;
in vec2 texCoord;

#if MAX_DIRECTIONAL_LIGHTS > 0
in vec4 directionalShadowSpacePos[MAX_DIRECTIONAL_LIGHTS];
#endif
#if MAX_SPOT_LIGHTS > 0
in vec4 spotShadowSpacePos[MAX_SPOT_LIGHTS];
#endif
#if MAX_DIRECTIONAL_LIGHTS > 0 || MAX_SPOT_LIGHTS > 0
uniform sampler2D shadowSamplers[MAX_DIRECTIONAL_LIGHTS + MAX_SPOT_LIGHTS];
#endif

out vec4 outColor;

float linearizeDepth(float depth, float zNear, float zFar)
{
	return (zNear * (zFar / (zFar + depth * (zNear - zFar)) - 1.0)) / (zFar - zNear);
}

#if MAX_DIRECTIONAL_LIGHTS > 0 || MAX_SPOT_LIGHTS > 0
// shadowFactor returns the lit fraction of a 3x3 PCF kernel. A positive
// zFar linearizes depths of a perspective shadow map.
float shadowFactor(vec4 shadowSpacePos, int sampler, float normalLightDot, float zNear, float zFar)
{
	if (shadowSpacePos.w <= 0.0)
		return 1.0;

	float bias = mix(minShadowMapBias, maxShadowMapBias, 1.0 - abs(normalLightDot));
	vec3 projCoords = shadowSpacePos.xyz * (0.5 / shadowSpacePos.w) + 0.5;
	if (zFar > 0.0)
		projCoords.z = linearizeDepth(projCoords.z, zNear, zFar);
	vec2 texelSize = 1.0 / textureSize(shadowSamplers[sampler], 0);
	float lit = 0.0;
	for (int x = -1; x <= 1; ++x)
	{
		for (int y = -1; y <= 1; ++y)
		{
			float closest = texture(shadowSamplers[sampler], projCoords.xy + vec2(x, y) * texelSize).r;
			if (zFar > 0.0)
				closest = linearizeDepth(closest, zNear, zFar);
			lit += float(projCoords.z - bias < closest);
		}
	}
	return lit / 9.0;
}
#endif

void main()
{
	vec3 norm = normalize(normal);
	vec3 viewDir = normalize(viewPos - pos);
	vec3 geomDiffuse = texture(diffuseSampler, texCoord).rgb;
	vec3 geomSpecular = texture(specularSampler, texCoord).rgb;
	vec3 result = vec3(0.0);

#if MAX_DIRECTIONAL_LIGHTS > 0
	for (int i = 0; i < MAX_DIRECTIONAL_LIGHTS; ++i)
	{
		result += directionalLights[i].color.ambient * geomDiffuse;
		vec3 lightDir = -directionalLights[i].dir;
		float normalLightDot = dot(norm, lightDir);
		vec3 diffuse = max(0.0, normalLightDot) * directionalLights[i].color.diffuse * geomDiffuse;
		vec3 reflectDir = reflect(-lightDir, norm);
		float spec = pow(max(dot(viewDir, reflectDir), 0.0), shininess);
		vec3 specular = spec * directionalLights[i].color.specular * geomSpecular;
		result += (diffuse + specular) * shadowFactor(directionalShadowSpacePos[i], i, normalLightDot, 0.0, 0.0);
	}
#endif

#if MAX_POINT_LIGHTS > 0
	for (int i = 0; i < MAX_POINT_LIGHTS; ++i)
	{
		vec3 ambient = pointLights[i].color.ambient * geomDiffuse;
		vec3 lightDir = pointLights[i].pos - pos;
		float distance = length(lightDir);
		lightDir /= distance;
		vec3 diffuse = max(0.0, dot(norm, lightDir)) * pointLights[i].color.diffuse * geomDiffuse;
		vec3 reflectDir = reflect(-lightDir, norm);
		float spec = pow(max(dot(viewDir, reflectDir), 0.0), shininess);
		vec3 specular = spec * pointLights[i].color.specular * geomSpecular;
		float attenuation = 1.0 / (1.0 +
			pointLights[i].linAttenuation * distance +
			pointLights[i].quadAttenuation * distance * distance);
		result += ambient + attenuation * (diffuse + specular);
	}
#endif

#if MAX_SPOT_LIGHTS > 0
	for (int i = 0; i < MAX_SPOT_LIGHTS; ++i)
	{
		result += spotLights[i].color.ambient * geomDiffuse;
		vec3 lightDir = spotLights[i].pos - pos;
		float distance = length(lightDir);
		lightDir /= distance;
		float theta = dot(-lightDir, spotLights[i].dir);
		float outerCos = spotLights[i].outerAngleCos;
		if (theta > outerCos)
		{
			float intensity = clamp((theta - outerCos) / max(spotLights[i].innerAngleCos - outerCos, 1e-4), 0.0, 1.0);
			float normalLightDot = dot(norm, lightDir);
			vec3 diffuse = max(0.0, normalLightDot) * spotLights[i].color.diffuse * geomDiffuse;
			vec3 reflectDir = reflect(-lightDir, norm);
			float spec = pow(max(dot(viewDir, reflectDir), 0.0), shininess);
			vec3 specular = spec * spotLights[i].color.specular * geomSpecular;
			float attenuation = 1.0 / (1.0 +
				spotLights[i].linAttenuation * distance +
				spotLights[i].quadAttenuation * distance * distance);
			float shadow = shadowFactor(spotShadowSpacePos[i], MAX_DIRECTIONAL_LIGHTS + i, normalLightDot,
				spotLights[i].shadowNear, spotLights[i].shadowFar);
			result += intensity * attenuation * shadow * (diffuse + specular);
		}
	}
#endif

	outColor = vec4(result, texture(diffuseSampler, texCoord).a);
}
`

// PhongShaderModel is a Phong shader compiled for fixed maximum light
// counts. The renderer binding feeds the camera and model matrices and the
// scene binding feeds the lights.
type PhongShaderModel struct {
	renderer     *renderer.Renderer
	scene        *scene.Scene
	binding      *renderer.ShaderBinding
	sceneBinding *scene.ShaderBinding

	maxDirectional int
	maxPoint       int
	maxSpot        int

	minBias float32
	maxBias float32
}

func phongHeader(maxDirectional, maxPoint, maxSpot int) string {
	return shaderVersion +
		"#define MAX_DIRECTIONAL_LIGHTS " + strconv.Itoa(maxDirectional) + "\n" +
		"#define MAX_POINT_LIGHTS " + strconv.Itoa(maxPoint) + "\n" +
		"#define MAX_SPOT_LIGHTS " + strconv.Itoa(maxSpot) + "\n" +
		phongLightUniforms
}

func newPhongShaderModel(r *renderer.Renderer, s *scene.Scene, maxDirectional, maxPoint, maxSpot int) (*PhongShaderModel, error) {
	if maxDirectional < 0 || maxPoint < 0 || maxSpot < 0 {
		return nil, fmt.Errorf("invalid light counts %d/%d/%d", maxDirectional, maxPoint, maxSpot)
	}
	header := phongHeader(maxDirectional, maxPoint, maxSpot)
	names := DefaultNames
	names.ViewPosition = "viewPos"
	names.NormalMatrix = "normalMat"
	binding, err := StandardShaderBinding(r, header+phongVertexShader, header+phongFragmentShader, names)
	if err != nil {
		return nil, fmt.Errorf("creating phong shader: %w", err)
	}

	m := &PhongShaderModel{
		renderer:       r,
		scene:          s,
		binding:        binding,
		maxDirectional: maxDirectional,
		maxPoint:       maxPoint,
		maxSpot:        maxSpot,
		maxBias:        DefaultMaxShadowMapBias,
		minBias:        DefaultMinShadowMapBias,
	}

	shader := binding.Shader()
	graphics.SetIntByName(shader, "diffuseSampler", PhongDiffuseSlot)
	graphics.SetIntByName(shader, "specularSampler", PhongSpecularSlot)
	graphics.SetFloatByName(shader, "shininess", DefaultShininess)
	for i := 0; i < maxDirectional+maxSpot; i++ {
		graphics.SetIntByName(shader, "shadowSamplers["+strconv.Itoa(i)+"]", int32(PhongTextureSlots+i))
	}
	m.SetMaxShadowMapBias(DefaultMaxShadowMapBias)

	sb := s.CreateShaderBinding(shader)
	sb.Bind(scene.DirectionalLightDirection, "directionalLights.dir")
	sb.Bind(scene.DirectionalLightAmbientColor, "directionalLights.color.ambient")
	sb.Bind(scene.DirectionalLightDiffuseColor, "directionalLights.color.diffuse")
	sb.Bind(scene.DirectionalLightSpecularColor, "directionalLights.color.specular")
	sb.Bind(scene.DirectionalLightShadowMatrix, "directionalLights.shadowMatrix")

	sb.Bind(scene.PointLightPosition, "pointLights.pos")
	sb.Bind(scene.PointLightAmbientColor, "pointLights.color.ambient")
	sb.Bind(scene.PointLightDiffuseColor, "pointLights.color.diffuse")
	sb.Bind(scene.PointLightSpecularColor, "pointLights.color.specular")
	sb.Bind(scene.PointLightLinearAttenuation, "pointLights.linAttenuation")
	sb.Bind(scene.PointLightQuadraticAttenuation, "pointLights.quadAttenuation")

	sb.Bind(scene.SpotLightPosition, "spotLights.pos")
	sb.Bind(scene.SpotLightDirection, "spotLights.dir")
	sb.Bind(scene.SpotLightInnerAngleCos, "spotLights.innerAngleCos")
	sb.Bind(scene.SpotLightOuterAngleCos, "spotLights.outerAngleCos")
	sb.Bind(scene.SpotLightAmbientColor, "spotLights.color.ambient")
	sb.Bind(scene.SpotLightDiffuseColor, "spotLights.color.diffuse")
	sb.Bind(scene.SpotLightSpecularColor, "spotLights.color.specular")
	sb.Bind(scene.SpotLightLinearAttenuation, "spotLights.linAttenuation")
	sb.Bind(scene.SpotLightQuadraticAttenuation, "spotLights.quadAttenuation")
	sb.Bind(scene.SpotLightShadowMatrix, "spotLights.shadowMatrix")
	sb.Bind(scene.SpotLightShadowNear, "spotLights.shadowNear")
	sb.Bind(scene.SpotLightShadowFar, "spotLights.shadowFar")
	m.sceneBinding = sb

	return m, nil
}

// ShaderBinding returns the renderer binding of the shader.
func (m *PhongShaderModel) ShaderBinding() *renderer.ShaderBinding { return m.binding }

// SceneBinding returns the light binding of the shader.
func (m *PhongShaderModel) SceneBinding() *scene.ShaderBinding { return m.sceneBinding }

// MaxLights returns the light counts the shader was compiled for.
func (m *PhongShaderModel) MaxLights() (directional, point, spot int) {
	return m.maxDirectional, m.maxPoint, m.maxSpot
}

// TextureSlots returns the number of texture slots a material pass needs.
func (m *PhongShaderModel) TextureSlots() int {
	return PhongTextureSlots + m.maxDirectional + m.maxSpot
}

// MinShadowMapBias returns the bias used for surfaces facing the light.
func (m *PhongShaderModel) MinShadowMapBias() float32 { return m.minBias }

// MaxShadowMapBias returns the bias used for surfaces at grazing angles.
func (m *PhongShaderModel) MaxShadowMapBias() float32 { return m.maxBias }

// SetMinShadowMapBias sets the minimum bias, clamped to [0, max bias].
func (m *PhongShaderModel) SetMinShadowMapBias(bias float32) {
	m.minBias = mgl32.Clamp(bias, 0, m.maxBias)
	graphics.SetFloatByName(m.binding.Shader(), "minShadowMapBias", m.minBias)
}

// SetMaxShadowMapBias sets the maximum bias. The minimum bias is clamped
// again.
func (m *PhongShaderModel) SetMaxShadowMapBias(bias float32) {
	m.maxBias = max(bias, 0)
	graphics.SetFloatByName(m.binding.Shader(), "maxShadowMapBias", m.maxBias)
	m.SetMinShadowMapBias(m.minBias)
}

func (m *PhongShaderModel) remove() {
	m.scene.RemoveShaderBinding(m.sceneBinding)
	removeShaderBinding(m.renderer, m.binding)
}
