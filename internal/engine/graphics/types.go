// Package graphics defines the GPU device contract shared by the renderer,
// scene and factory layers, together with the managers that own every
// device resource.
package graphics

// MaxTextureSlots is the number of texture units a material pass may bind.
const MaxTextureSlots = 16

// Color is a linear RGBA color.
type Color struct {
	R, G, B, A float32
}

// RGB returns an opaque color.
func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// Size is a width/height pair in pixels.
type Size struct {
	Width, Height int
}

// AspectRatio returns width/height, or 1 when either side is zero.
func (s Size) AspectRatio() float32 {
	if s.Width <= 0 || s.Height <= 0 {
		return 1
	}
	return float32(s.Width) / float32(s.Height)
}

// Empty reports whether the size covers no pixels.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Viewport is a rectangle inside a framebuffer.
type Viewport struct {
	X, Y          int
	Width, Height int
}

// FullViewport covers a target of the given size.
func FullViewport(size Size) Viewport {
	return Viewport{Width: size.Width, Height: size.Height}
}

// Size returns the viewport dimensions.
func (v Viewport) Size() Size {
	return Size{Width: v.Width, Height: v.Height}
}

// AspectRatio returns width/height, or 1 when the viewport is degenerate.
func (v Viewport) AspectRatio() float32 {
	return v.Size().AspectRatio()
}

// VertexFormat lists the float component count of each vertex attribute,
// in attribute location order.
type VertexFormat []int

// Common vertex formats.
var (
	VertexFormatPos3          = VertexFormat{3}
	VertexFormatPos3Tex2      = VertexFormat{3, 2}
	VertexFormatPos3Norm3     = VertexFormat{3, 3}
	VertexFormatPos3Norm3Tex2 = VertexFormat{3, 3, 2}
	VertexFormatPos3Color4    = VertexFormat{3, 4}
)

// Size returns the number of floats per vertex.
func (f VertexFormat) Size() int {
	n := 0
	for _, c := range f {
		n += c
	}
	return n
}

// Stride returns the vertex size in bytes.
func (f VertexFormat) Stride() int {
	return f.Size() * 4
}

// Offset returns the byte offset of attribute i.
func (f VertexFormat) Offset(i int) int {
	n := 0
	for _, c := range f[:i] {
		n += c
	}
	return n * 4
}

// Valid reports whether every attribute has 1..4 components.
func (f VertexFormat) Valid() bool {
	if len(f) == 0 {
		return false
	}
	for _, c := range f {
		if c < 1 || c > 4 {
			return false
		}
	}
	return true
}

// TextureData is the pixel payload of a texture. Data may be nil for render
// targets whose contents are produced on the GPU.
type TextureData struct {
	Data   []byte
	Size   Size
	Format TextureFormat
}

// ExpectedLen returns the byte length Data must have when it is set.
func (d TextureData) ExpectedLen() int {
	return d.Size.Width * d.Size.Height * d.Format.BytesPerPixel()
}

// TextureParameters controls sampling of a texture.
type TextureParameters struct {
	MinFilter    TextureFilterMode
	MagFilter    TextureFilterMode
	Wrap         TextureWrapMode
	BorderColor  Color
	DepthCompare bool // sampler2DShadow style comparison for depth textures
}

// DefaultTextureParameters returns mipmapped linear filtering with repeat.
func DefaultTextureParameters() TextureParameters {
	return TextureParameters{
		MinFilter: TextureFilterLinearMipmap,
		MagFilter: TextureFilterLinear,
		Wrap:      TextureWrapRepeat,
	}
}
