package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/gltut/internal/engine/graphics"
)

func cullFace(mode graphics.FaceCullingMode) uint32 {
	switch mode {
	case graphics.FaceCullingBack:
		return gl.BACK
	case graphics.FaceCullingFront:
		return gl.FRONT
	case graphics.FaceCullingFrontAndBack:
		return gl.FRONT_AND_BACK
	}
	panic(fmt.Sprintf("opengl: unexpected culling mode %v", mode))
}

func depthFunc(mode graphics.DepthTestMode) uint32 {
	switch mode {
	case graphics.DepthTestNever:
		return gl.NEVER
	case graphics.DepthTestLess:
		return gl.LESS
	case graphics.DepthTestEqual:
		return gl.EQUAL
	case graphics.DepthTestLessEqual:
		return gl.LEQUAL
	case graphics.DepthTestGreater:
		return gl.GREATER
	case graphics.DepthTestNotEqual:
		return gl.NOTEQUAL
	case graphics.DepthTestGreaterEqual:
		return gl.GEQUAL
	case graphics.DepthTestAlways:
		return gl.ALWAYS
	}
	panic(fmt.Sprintf("opengl: unexpected depth test mode %v", mode))
}

func polygonMode(mode graphics.PolygonFillMode) uint32 {
	switch mode {
	case graphics.PolygonFillSolid:
		return gl.FILL
	case graphics.PolygonFillLine:
		return gl.LINE
	case graphics.PolygonFillPoint:
		return gl.POINT
	}
	panic(fmt.Sprintf("opengl: unexpected polygon fill mode %v", mode))
}

// textureFormats returns internal format, pixel format and pixel type.
func textureFormats(f graphics.TextureFormat) (int32, uint32, uint32) {
	switch f {
	case graphics.TextureFormatR:
		return gl.R8, gl.RED, gl.UNSIGNED_BYTE
	case graphics.TextureFormatRGB:
		return gl.RGB8, gl.RGB, gl.UNSIGNED_BYTE
	case graphics.TextureFormatRGBA:
		return gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE
	case graphics.TextureFormatFloat:
		return gl.DEPTH_COMPONENT24, gl.DEPTH_COMPONENT, gl.FLOAT
	}
	panic(fmt.Sprintf("opengl: unexpected texture format %v", f))
}

func filterMode(m graphics.TextureFilterMode) int32 {
	switch m {
	case graphics.TextureFilterNearest:
		return gl.NEAREST
	case graphics.TextureFilterLinear:
		return gl.LINEAR
	case graphics.TextureFilterLinearMipmap:
		return gl.LINEAR_MIPMAP_LINEAR
	}
	panic(fmt.Sprintf("opengl: unexpected filter mode %v", m))
}

func wrapMode(m graphics.TextureWrapMode) int32 {
	switch m {
	case graphics.TextureWrapRepeat:
		return gl.REPEAT
	case graphics.TextureWrapClampToEdge:
		return gl.CLAMP_TO_EDGE
	case graphics.TextureWrapClampToBorder:
		return gl.CLAMP_TO_BORDER
	}
	panic(fmt.Sprintf("opengl: unexpected wrap mode %v", m))
}
