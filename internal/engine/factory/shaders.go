package factory

import (
	"errors"
	"fmt"

	"github.com/Faultbox/gltut/internal/engine/graphics"
	"github.com/Faultbox/gltut/internal/engine/renderer"
)

// ErrMissingUniform is returned when a shader lacks a uniform a binding
// needs.
var ErrMissingUniform = errors.New("shader uniform not found")

// StandardNames are the uniforms the renderer parameters are routed to.
// Empty names stay unbound.
type StandardNames struct {
	View         string
	Projection   string
	Model        string
	ViewPosition string
	NormalMatrix string
}

// DefaultNames routes the view, projection and model matrices.
var DefaultNames = StandardNames{View: "view", Projection: "projection", Model: "model"}

type route struct {
	param renderer.Parameter
	name  string
}

func (n StandardNames) routes() []route {
	return []route{
		{renderer.ViewpointViewMatrix, n.View},
		{renderer.ViewpointProjectionMatrix, n.Projection},
		{renderer.GeometryMatrix, n.Model},
		{renderer.ViewpointPosition, n.ViewPosition},
		{renderer.GeometryNormalMatrix, n.NormalMatrix},
	}
}

// StandardShaderBinding compiles a shader and registers a renderer binding
// routing the viewpoint and geometry parameters to names. The shader is
// removed again when one of the names is not a uniform of it.
func StandardShaderBinding(r *renderer.Renderer, vertexSrc, fragmentSrc string, names StandardNames) (*renderer.ShaderBinding, error) {
	shaders := r.Device().Shaders()
	shader, err := shaders.Create(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("creating material shader: %w", err)
	}
	routes := names.routes()
	for _, e := range routes {
		if e.name != "" && shader.ParameterLocation(e.name) < 0 {
			shaders.Remove(shader)
			return nil, fmt.Errorf("%w: %q", ErrMissingUniform, e.name)
		}
	}
	b := r.CreateShaderBinding(shader)
	for _, e := range routes {
		if e.name != "" {
			b.Bind(e.param, e.name)
		}
	}
	return b, nil
}

// DepthShader creates the binding used by depth passes. It only writes
// depth and needs the model, view and projection matrices.
func DepthShader(r *renderer.Renderer) (*renderer.ShaderBinding, error) {
	return StandardShaderBinding(r, depthVertexShader, depthFragmentShader, DefaultNames)
}

// FlatColorShader creates an unlit shader sampling slot 0. Fragments with an
// alpha below transparencyThreshold are discarded unless it is 0.
func FlatColorShader(r *renderer.Renderer) (*renderer.ShaderBinding, error) {
	b, err := StandardShaderBinding(r, flatColorVertexShader, flatColorFragmentShader, DefaultNames)
	if err != nil {
		return nil, err
	}
	graphics.SetIntByName(b.Shader(), "colorSampler", 0)
	graphics.SetFloatByName(b.Shader(), "transparencyThreshold", 0)
	return b, nil
}

// SkyboxShader creates the cubemap shader. Only the rotation of the view
// matrix is used so the box stays centered on the viewer.
func SkyboxShader(r *renderer.Renderer) (*renderer.ShaderBinding, error) {
	names := StandardNames{View: "view", Projection: "projection"}
	b, err := StandardShaderBinding(r, skyboxVertexShader, skyboxFragmentShader, names)
	if err != nil {
		return nil, err
	}
	graphics.SetIntByName(b.Shader(), "skybox", 0)
	return b, nil
}

// removeShaderBinding unregisters b and destroys its shader.
func removeShaderBinding(r *renderer.Renderer, b *renderer.ShaderBinding) {
	if b == nil {
		return
	}
	r.RemoveBinding(b)
	r.Device().Shaders().Remove(b.Shader())
}

const shaderVersion = "#version 410 core\n"

const depthVertexShader = shaderVersion + `
uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

layout (location = 0) in vec3 inPos;

void main()
{
	gl_Position = projection * view * model * vec4(inPos, 1.0);
}
`

const depthFragmentShader = shaderVersion + `
void main()
{
}
`

const flatColorVertexShader = shaderVersion + `
uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

layout (location = 0) in vec3 inPos;
layout (location = 1) in vec3 inNormal;
layout (location = 2) in vec2 inTexCoord;

out vec2 texCoord;

void main()
{
	gl_Position = projection * view * model * vec4(inPos, 1.0);
	texCoord = inTexCoord;
}
`

const flatColorFragmentShader = shaderVersion + `
uniform sampler2D colorSampler;
uniform float transparencyThreshold;

in vec2 texCoord;

out vec4 outColor;

void main()
{
	outColor = texture(colorSampler, texCoord);
	if (transparencyThreshold != 0.0 && outColor.a < transparencyThreshold)
		discard;
}
`

const skyboxVertexShader = shaderVersion + `
uniform mat4 view;
uniform mat4 projection;

layout (location = 0) in vec3 inPos;

out vec3 texCoord;

void main()
{
	texCoord = inPos;
	vec4 pos = projection * mat4(mat3(view)) * vec4(inPos, 1.0);
	// Depth is 1 after the perspective divide
	gl_Position = pos.xyww;
}
`

const skyboxFragmentShader = shaderVersion + `
uniform samplerCube skybox;

in vec3 texCoord;

out vec4 outColor;

void main()
{
	outColor = texture(skybox, texCoord);
}
`

const textureToWindowVertexShader = shaderVersion + `
layout (location = 0) in vec3 inPos;
layout (location = 1) in vec2 inTexCoord;

out vec2 texCoord;

void main()
{
	gl_Position = vec4(inPos, 1.0);
	texCoord = inTexCoord;
}
`

const textureToWindowFragmentShader = shaderVersion + `
uniform sampler2D textureSampler;

in vec2 texCoord;

out vec4 outColor;

void main()
{
	outColor = texture(textureSampler, texCoord);
}
`
