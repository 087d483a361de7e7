package graphics

import "fmt"

// FaceCullingMode selects which triangle faces are discarded.
type FaceCullingMode int

const (
	FaceCullingBack FaceCullingMode = iota
	FaceCullingFront
	FaceCullingFrontAndBack
	FaceCullingNone
)

// String implements fmt.Stringer.
func (m FaceCullingMode) String() string {
	switch m {
	case FaceCullingBack:
		return "back"
	case FaceCullingFront:
		return "front"
	case FaceCullingFrontAndBack:
		return "front_and_back"
	case FaceCullingNone:
		return "none"
	}
	return fmt.Sprintf("FaceCullingMode(%d)", int(m))
}

// DepthTestMode is the depth comparison function. DepthTestDisabled turns
// the depth test off.
type DepthTestMode int

const (
	DepthTestNever DepthTestMode = iota
	DepthTestLess
	DepthTestEqual
	DepthTestLessEqual
	DepthTestGreater
	DepthTestNotEqual
	DepthTestGreaterEqual
	DepthTestAlways
	DepthTestDisabled
)

// String implements fmt.Stringer.
func (m DepthTestMode) String() string {
	switch m {
	case DepthTestNever:
		return "never"
	case DepthTestLess:
		return "less"
	case DepthTestEqual:
		return "equal"
	case DepthTestLessEqual:
		return "less_equal"
	case DepthTestGreater:
		return "greater"
	case DepthTestNotEqual:
		return "not_equal"
	case DepthTestGreaterEqual:
		return "greater_equal"
	case DepthTestAlways:
		return "always"
	case DepthTestDisabled:
		return "disabled"
	}
	return fmt.Sprintf("DepthTestMode(%d)", int(m))
}

// PolygonFillMode selects how triangles are rasterized.
type PolygonFillMode int

const (
	PolygonFillSolid PolygonFillMode = iota
	PolygonFillLine
	PolygonFillPoint
)

// String implements fmt.Stringer.
func (m PolygonFillMode) String() string {
	switch m {
	case PolygonFillSolid:
		return "solid"
	case PolygonFillLine:
		return "line"
	case PolygonFillPoint:
		return "point"
	}
	return fmt.Sprintf("PolygonFillMode(%d)", int(m))
}

// TextureFormat is the pixel layout of texture data.
type TextureFormat int

const (
	TextureFormatR TextureFormat = iota
	TextureFormatRGB
	TextureFormatRGBA
	TextureFormatFloat // single channel float32, used for depth targets
)

// BytesPerPixel returns the storage size of one pixel.
func (f TextureFormat) BytesPerPixel() int {
	switch f {
	case TextureFormatR:
		return 1
	case TextureFormatRGB:
		return 3
	case TextureFormatRGBA, TextureFormatFloat:
		return 4
	}
	return 0
}

// String implements fmt.Stringer.
func (f TextureFormat) String() string {
	switch f {
	case TextureFormatR:
		return "r"
	case TextureFormatRGB:
		return "rgb"
	case TextureFormatRGBA:
		return "rgba"
	case TextureFormatFloat:
		return "float"
	}
	return fmt.Sprintf("TextureFormat(%d)", int(f))
}

// TextureFilterMode is a minification or magnification filter.
type TextureFilterMode int

const (
	TextureFilterNearest TextureFilterMode = iota
	TextureFilterLinear
	TextureFilterLinearMipmap
)

// String implements fmt.Stringer.
func (m TextureFilterMode) String() string {
	switch m {
	case TextureFilterNearest:
		return "nearest"
	case TextureFilterLinear:
		return "linear"
	case TextureFilterLinearMipmap:
		return "linear_mipmap"
	}
	return fmt.Sprintf("TextureFilterMode(%d)", int(m))
}

// TextureWrapMode controls sampling outside [0, 1].
type TextureWrapMode int

const (
	TextureWrapRepeat TextureWrapMode = iota
	TextureWrapClampToEdge
	TextureWrapClampToBorder
)

// String implements fmt.Stringer.
func (m TextureWrapMode) String() string {
	switch m {
	case TextureWrapRepeat:
		return "repeat"
	case TextureWrapClampToEdge:
		return "clamp_to_edge"
	case TextureWrapClampToBorder:
		return "clamp_to_border"
	}
	return fmt.Sprintf("TextureWrapMode(%d)", int(m))
}

// TextureType distinguishes flat textures from cubemaps.
type TextureType int

const (
	TextureType2D TextureType = iota
	TextureTypeCubemap
)

// String implements fmt.Stringer.
func (t TextureType) String() string {
	switch t {
	case TextureType2D:
		return "2d"
	case TextureTypeCubemap:
		return "cubemap"
	}
	return fmt.Sprintf("TextureType(%d)", int(t))
}
