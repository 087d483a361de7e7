package headless

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gltut/internal/engine/graphics"
)

// NewGeometry implements graphics.Backend.
func (d *Device) NewGeometry(format graphics.VertexFormat, vertices []float32, indices []uint32) (graphics.Geometry, error) {
	if err := d.injected(KindGeometry); err != nil {
		return nil, err
	}
	g := &Geometry{
		dev:      d,
		id:       d.newID(),
		format:   append(graphics.VertexFormat(nil), format...),
		Vertices: append([]float32(nil), vertices...),
		Indices:  append([]uint32(nil), indices...),
	}
	d.record("%s.create", g.Name())
	return g, nil
}

// NewShader implements graphics.Backend.
func (d *Device) NewShader(vertexSrc, fragmentSrc string) (graphics.Shader, error) {
	if err := d.injected(KindShader); err != nil {
		return nil, err
	}
	s := &Shader{
		dev:         d,
		id:          d.newID(),
		source:      vertexSrc + "\n" + fragmentSrc,
		locations:   make(map[string]int32),
		values:      make(map[int32]any),
		blocks:      make(map[string]int32),
		blockPoints: make(map[uint32]uint32),
	}
	d.record("%s.create", s.Name())
	return s, nil
}

// NewTexture implements graphics.Backend.
func (d *Device) NewTexture(data graphics.TextureData, params graphics.TextureParameters) (graphics.Texture, error) {
	if err := d.injected(KindTexture); err != nil {
		return nil, err
	}
	t := &Texture{
		dev:    d,
		id:     d.newID(),
		typ:    graphics.TextureType2D,
		size:   data.Size,
		format: data.Format,
		params: params,
		Data:   append([]byte(nil), data.Data...),
	}
	d.record("%s.create %dx%d %s", t.Name(), data.Size.Width, data.Size.Height, data.Format)
	return t, nil
}

// NewCubemap implements graphics.Backend.
func (d *Device) NewCubemap(faces [6]graphics.TextureData, params graphics.TextureParameters) (graphics.Texture, error) {
	if err := d.injected(KindCubemap); err != nil {
		return nil, err
	}
	t := &Texture{
		dev:    d,
		id:     d.newID(),
		typ:    graphics.TextureTypeCubemap,
		size:   faces[0].Size,
		format: faces[0].Format,
		params: params,
	}
	for _, f := range faces {
		t.Data = append(t.Data, f.Data...)
	}
	d.record("%s.create cubemap %d", t.Name(), faces[0].Size.Width)
	return t, nil
}

// NewTextureFramebuffer implements graphics.Backend.
func (d *Device) NewTextureFramebuffer(color, depth graphics.Texture) (graphics.TextureFramebuffer, error) {
	if err := d.injected(KindFramebuffer); err != nil {
		return nil, err
	}
	fb := &Framebuffer{dev: d, id: d.newID(), color: color, depth: depth}
	d.record("%s.create", fb.Name())
	return fb, nil
}

// NewShaderUniformBuffer implements graphics.Backend.
func (d *Device) NewShaderUniformBuffer(size uint32) (graphics.ShaderUniformBuffer, error) {
	if err := d.injected(KindUniformBuffer); err != nil {
		return nil, err
	}
	b := &UniformBuffer{dev: d, id: d.newID(), data: make([]byte, size)}
	d.record("%s.create %d", b.Name(), size)
	return b, nil
}

// Geometry is an in-memory mesh.
type Geometry struct {
	dev       *Device
	id        int
	format    graphics.VertexFormat
	Vertices  []float32
	Indices   []uint32
	Destroyed bool
	Draws     int
}

// Name returns the name used in the call log.
func (g *Geometry) Name() string { return fmt.Sprintf("geometry%d", g.id) }

// VertexFormat returns the layout the geometry was created with.
func (g *Geometry) VertexFormat() graphics.VertexFormat { return g.format }

// VertexCount returns the number of vertices.
func (g *Geometry) VertexCount() int { return len(g.Vertices) / g.format.Size() }

// IndexCount returns the number of indices.
func (g *Geometry) IndexCount() int { return len(g.Indices) }

// Draw records a draw call.
func (g *Geometry) Draw() {
	g.Draws++
	g.dev.record("%s.draw", g.Name())
}

// Destroy marks the geometry destroyed. A second call is an error in the
// manager contract and panics here so tests catch double frees.
func (g *Geometry) Destroy() {
	if g.Destroyed {
		panic(g.Name() + " destroyed twice")
	}
	g.Destroyed = true
	g.dev.record("%s.destroy", g.Name())
}

// Shader records uniform values by name. A uniform exists when its base
// identifier appears in the sources and, for array elements, the index is
// below the declared length. Locations are handed out in lookup order.
type Shader struct {
	dev         *Device
	id          int
	source      string
	locations   map[string]int32
	names       []string
	values      map[int32]any
	blocks      map[string]int32
	blockNames  []string
	blockPoints map[uint32]uint32
	Destroyed   bool
}

// Name returns the name used in the call log.
func (s *Shader) Name() string { return fmt.Sprintf("shader%d", s.id) }

// Bind records the program bind.
func (s *Shader) Bind() {
	s.dev.boundShader = s
	s.dev.record("%s.bind", s.Name())
}

// Destroy marks the shader destroyed.
func (s *Shader) Destroy() {
	if s.Destroyed {
		panic(s.Name() + " destroyed twice")
	}
	s.Destroyed = true
	s.dev.record("%s.destroy", s.Name())
}

func baseIdentifier(name string) string {
	if i := strings.IndexAny(name, "[."); i >= 0 {
		return name[:i]
	}
	return name
}

func containsIdentifier(source, ident string) bool {
	if ident == "" {
		return false
	}
	isIdent := func(r rune) bool { return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) }
	for start := 0; ; {
		i := strings.Index(source[start:], ident)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(ident)
		before := i == 0 || !isIdent(rune(source[i-1]))
		after := end == len(source) || !isIdent(rune(source[end]))
		if before && after {
			return true
		}
		start = i + 1
	}
}

// arrayIndex returns the element index of names like "lights[2].color".
func arrayIndex(name string) (int, bool) {
	open := strings.IndexByte(name, '[')
	if open < 0 || open != len(baseIdentifier(name)) {
		return 0, false
	}
	end := strings.IndexByte(name[open:], ']')
	if end < 0 {
		return 0, false
	}
	i, err := strconv.Atoi(name[open+1 : open+end])
	return i, err == nil
}

// arrayLength returns the length of the uniform array ident. Lengths may
// be integer literals, #define constants or sums of both.
func arrayLength(source, ident string) (int, bool) {
	lines := strings.Split(source, "\n")
	defines := make(map[string]int)
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 3 && fields[0] == "#define" {
			if n, err := strconv.Atoi(fields[2]); err == nil {
				defines[fields[1]] = n
			}
		}
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "uniform ") {
			continue
		}
		i := strings.Index(line, " "+ident+"[")
		if i < 0 {
			continue
		}
		rest := line[i+len(ident)+2:]
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			continue
		}
		n := 0
		for _, term := range strings.Split(rest[:end], "+") {
			term = strings.TrimSpace(term)
			v, err := strconv.Atoi(term)
			if err != nil {
				var ok bool
				if v, ok = defines[term]; !ok {
					return 0, false
				}
			}
			n += v
		}
		return n, true
	}
	return 0, false
}

// ParameterLocation implements graphics.ShaderParameters.
func (s *Shader) ParameterLocation(name string) int32 {
	if loc, ok := s.locations[name]; ok {
		return loc
	}
	base := baseIdentifier(name)
	if !containsIdentifier(s.source, base) {
		return -1
	}
	if i, ok := arrayIndex(name); ok {
		if n, declared := arrayLength(s.source, base); !declared || i < 0 || i >= n {
			return -1
		}
	}
	loc := int32(len(s.names))
	s.locations[name] = loc
	s.names = append(s.names, name)
	return loc
}

// UniformBlockIndex implements graphics.ShaderParameters.
func (s *Shader) UniformBlockIndex(name string) int32 {
	if idx, ok := s.blocks[name]; ok {
		return idx
	}
	if !containsIdentifier(s.source, name) {
		return -1
	}
	idx := int32(len(s.blockNames))
	s.blocks[name] = idx
	s.blockNames = append(s.blockNames, name)
	return idx
}

func (s *Shader) set(location int32, v any) {
	if location < 0 || int(location) >= len(s.names) {
		return
	}
	s.values[location] = v
	s.dev.record("%s.set %s", s.Name(), s.names[location])
}

// SetInt records an int value.
func (s *Shader) SetInt(location int32, v int32) { s.set(location, v) }

// SetFloat records a float value.
func (s *Shader) SetFloat(location int32, v float32) { s.set(location, v) }

// SetVec2 records a vec2 value.
func (s *Shader) SetVec2(location int32, v mgl32.Vec2) { s.set(location, v) }

// SetVec3 records a vec3 value.
func (s *Shader) SetVec3(location int32, v mgl32.Vec3) { s.set(location, v) }

// SetVec4 records a vec4 value.
func (s *Shader) SetVec4(location int32, v mgl32.Vec4) { s.set(location, v) }

// SetMat3 records a mat3 value.
func (s *Shader) SetMat3(location int32, v mgl32.Mat3) { s.set(location, v) }

// SetMat4 records a mat4 value.
func (s *Shader) SetMat4(location int32, v mgl32.Mat4) { s.set(location, v) }

// SetUniformBlockBindingPoint implements graphics.ShaderParameters.
func (s *Shader) SetUniformBlockBindingPoint(blockIndex uint32, point uint32) {
	if int(blockIndex) >= len(s.blockNames) {
		return
	}
	s.blockPoints[blockIndex] = point
	s.dev.record("%s.block %s %d", s.Name(), s.blockNames[blockIndex], point)
}

// Value returns the last value set for a uniform name.
func (s *Shader) Value(name string) (any, bool) {
	loc, ok := s.locations[name]
	if !ok {
		return nil, false
	}
	v, ok := s.values[loc]
	return v, ok
}

// BlockBindingPoint returns the binding point assigned to a uniform block.
func (s *Shader) BlockBindingPoint(name string) (uint32, bool) {
	idx, ok := s.blocks[name]
	if !ok {
		return 0, false
	}
	p, ok := s.blockPoints[uint32(idx)]
	return p, ok
}

// Texture is an in-memory texture or cubemap.
type Texture struct {
	dev       *Device
	id        int
	typ       graphics.TextureType
	size      graphics.Size
	format    graphics.TextureFormat
	params    graphics.TextureParameters
	Data      []byte
	Destroyed bool
}

// Name returns the name used in the call log.
func (t *Texture) Name() string { return fmt.Sprintf("texture%d", t.id) }

// Type returns the texture type.
func (t *Texture) Type() graphics.TextureType { return t.typ }

// Size returns the texture size.
func (t *Texture) Size() graphics.Size { return t.size }

// Format returns the pixel format.
func (t *Texture) Format() graphics.TextureFormat { return t.format }

// Parameters returns the sampling parameters.
func (t *Texture) Parameters() graphics.TextureParameters { return t.params }

// SetParameters records new sampling parameters.
func (t *Texture) SetParameters(params graphics.TextureParameters) {
	t.params = params
	t.dev.record("%s.params", t.Name())
}

// Resize drops the contents and records the new size.
func (t *Texture) Resize(size graphics.Size) {
	t.size = size
	t.Data = nil
	t.dev.record("%s.resize %dx%d", t.Name(), size.Width, size.Height)
}

// Destroy marks the texture destroyed.
func (t *Texture) Destroy() {
	if t.Destroyed {
		panic(t.Name() + " destroyed twice")
	}
	t.Destroyed = true
	t.dev.record("%s.destroy", t.Name())
}

// Framebuffer is an offscreen target.
type Framebuffer struct {
	dev          *Device
	id           int
	color, depth graphics.Texture
	Destroyed    bool
}

// Name returns the name used in the call log.
func (f *Framebuffer) Name() string { return fmt.Sprintf("framebuffer%d", f.id) }

// ColorTexture returns the color attachment, or nil.
func (f *Framebuffer) ColorTexture() graphics.Texture { return f.color }

// DepthTexture returns the depth attachment, or nil.
func (f *Framebuffer) DepthTexture() graphics.Texture { return f.depth }

// Size follows the attachments, which may have been resized.
func (f *Framebuffer) Size() graphics.Size {
	if f.color != nil {
		return f.color.Size()
	}
	return f.depth.Size()
}

// Destroy marks the framebuffer destroyed.
func (f *Framebuffer) Destroy() {
	if f.Destroyed {
		panic(f.Name() + " destroyed twice")
	}
	f.Destroyed = true
	f.dev.record("%s.destroy", f.Name())
}

// UniformBuffer is an in-memory uniform block.
type UniformBuffer struct {
	dev       *Device
	id        int
	data      []byte
	Destroyed bool
}

// Name returns the name used in the call log.
func (b *UniformBuffer) Name() string { return fmt.Sprintf("ubo%d", b.id) }

// Size returns the buffer size in bytes.
func (b *UniformBuffer) Size() uint32 { return uint32(len(b.data)) }

// Bytes returns the buffer contents.
func (b *UniformBuffer) Bytes() []byte { return b.data }

// SetData copies data at offset, truncating at the end of the buffer.
func (b *UniformBuffer) SetData(offset uint32, data []byte) {
	if int(offset) >= len(b.data) {
		return
	}
	n := copy(b.data[offset:], data)
	b.dev.record("%s.data %d %d", b.Name(), offset, n)
}

// Destroy marks the buffer destroyed.
func (b *UniformBuffer) Destroy() {
	if b.Destroyed {
		panic(b.Name() + " destroyed twice")
	}
	b.Destroyed = true
	b.dev.record("%s.destroy", b.Name())
}
