package graphics

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/gltut/internal/logger"
)

const log logger.Component = "graphics"

// GeometryManager creates and owns geometries.
type GeometryManager struct {
	ItemManager[Geometry]
	backend Backend
}

// Create uploads an indexed triangle mesh. Vertices must hold a whole number
// of vertices of the given format and indices whole triangles referring to
// existing vertices.
func (m *GeometryManager) Create(format VertexFormat, vertices []float32, indices []uint32) (Geometry, error) {
	if !format.Valid() {
		return nil, fmt.Errorf("%w: bad vertex format %v", ErrInvalidGeometry, format)
	}
	if len(vertices) == 0 || len(vertices)%format.Size() != 0 {
		return nil, fmt.Errorf("%w: %d floats is not a multiple of vertex size %d",
			ErrInvalidGeometry, len(vertices), format.Size())
	}
	if len(indices) == 0 || len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: index count %d is not a positive multiple of 3", ErrInvalidGeometry, len(indices))
	}
	vertexCount := uint32(len(vertices) / format.Size())
	for i, idx := range indices {
		if idx >= vertexCount {
			return nil, fmt.Errorf("%w: index %d at %d out of range (%d vertices)", ErrInvalidGeometry, idx, i, vertexCount)
		}
	}

	g, err := m.backend.NewGeometry(format, vertices, indices)
	if err != nil {
		return nil, fmt.Errorf("creating geometry: %w", err)
	}
	m.Add(g)
	log.Debug("geometry created", zap.Uint32("vertices", vertexCount), zap.Int("indices", len(indices)))
	return g, nil
}

// ShaderManager creates and owns shader programs.
type ShaderManager struct {
	ItemManager[Shader]
	backend Backend
}

// Create compiles and links a program from vertex and fragment sources.
func (m *ShaderManager) Create(vertexSrc, fragmentSrc string) (Shader, error) {
	if vertexSrc == "" || fragmentSrc == "" {
		return nil, fmt.Errorf("%w: empty source", ErrInvalidShader)
	}
	s, err := m.backend.NewShader(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("creating shader: %w", err)
	}
	m.Add(s)
	log.Debug("shader created")
	return s, nil
}

// TextureManager creates and owns textures and cubemaps.
type TextureManager struct {
	ItemManager[Texture]
	backend Backend
}

func validateTextureData(d TextureData) error {
	if d.Size.Empty() {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidTexture, d.Size.Width, d.Size.Height)
	}
	if d.Format.BytesPerPixel() == 0 {
		return fmt.Errorf("%w: unknown format %v", ErrInvalidTexture, d.Format)
	}
	if d.Data != nil && len(d.Data) != d.ExpectedLen() {
		return fmt.Errorf("%w: %d bytes of data, expected %d", ErrInvalidTexture, len(d.Data), d.ExpectedLen())
	}
	return nil
}

// Create creates a 2D texture. Data may be nil for render targets.
func (m *TextureManager) Create(data TextureData, params TextureParameters) (Texture, error) {
	if err := validateTextureData(data); err != nil {
		return nil, err
	}
	t, err := m.backend.NewTexture(data, params)
	if err != nil {
		return nil, fmt.Errorf("creating texture: %w", err)
	}
	m.Add(t)
	log.Debug("texture created", zap.Int("width", data.Size.Width), zap.Int("height", data.Size.Height),
		zap.Stringer("format", data.Format))
	return t, nil
}

// CreateCubemap creates a cubemap from six square faces of equal size and
// format, ordered +X, -X, +Y, -Y, +Z, -Z.
func (m *TextureManager) CreateCubemap(faces [6]TextureData, params TextureParameters) (Texture, error) {
	for i, f := range faces {
		if err := validateTextureData(f); err != nil {
			return nil, fmt.Errorf("face %d: %w", i, err)
		}
		if f.Size.Width != f.Size.Height {
			return nil, fmt.Errorf("%w: face %d is not square", ErrInvalidTexture, i)
		}
		if f.Size != faces[0].Size || f.Format != faces[0].Format {
			return nil, fmt.Errorf("%w: face %d differs from face 0", ErrInvalidTexture, i)
		}
	}
	t, err := m.backend.NewCubemap(faces, params)
	if err != nil {
		return nil, fmt.Errorf("creating cubemap: %w", err)
	}
	m.Add(t)
	log.Debug("cubemap created", zap.Int("size", faces[0].Size.Width))
	return t, nil
}

// FramebufferManager creates and owns offscreen framebuffers.
type FramebufferManager struct {
	ItemManager[TextureFramebuffer]
	backend Backend
}

// Create builds a framebuffer rendering into the given textures. Either
// attachment may be nil, but not both. The textures stay owned by the
// texture manager.
func (m *FramebufferManager) Create(color, depth Texture) (TextureFramebuffer, error) {
	if color == nil && depth == nil {
		return nil, fmt.Errorf("%w: no attachments", ErrInvalidFramebuffer)
	}
	if color != nil && depth != nil && color.Size() != depth.Size() {
		return nil, fmt.Errorf("%w: attachment sizes differ", ErrInvalidFramebuffer)
	}
	if depth != nil && depth.Format() != TextureFormatFloat {
		return nil, fmt.Errorf("%w: depth attachment must use the float format", ErrInvalidFramebuffer)
	}
	fb, err := m.backend.NewTextureFramebuffer(color, depth)
	if err != nil {
		return nil, fmt.Errorf("creating framebuffer: %w", err)
	}
	m.Add(fb)
	log.Debug("framebuffer created", zap.Int("width", fb.Size().Width), zap.Int("height", fb.Size().Height))
	return fb, nil
}

// ShaderUniformBufferManager creates and owns uniform buffers.
type ShaderUniformBufferManager struct {
	ItemManager[ShaderUniformBuffer]
	backend Backend
}

// Create allocates a zeroed uniform buffer of size bytes.
func (m *ShaderUniformBufferManager) Create(size uint32) (ShaderUniformBuffer, error) {
	if size == 0 {
		return nil, fmt.Errorf("%w: zero size", ErrInvalidUniformBuffer)
	}
	b, err := m.backend.NewShaderUniformBuffer(size)
	if err != nil {
		return nil, fmt.Errorf("creating uniform buffer: %w", err)
	}
	m.Add(b)
	log.Debug("uniform buffer created", zap.Uint32("size", size))
	return b, nil
}
