package opengl

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/gltut/internal/engine/graphics"
)

// Texture is a GL 2D texture or cubemap.
type Texture struct {
	id     uint32
	target uint32
	typ    graphics.TextureType
	size   graphics.Size
	format graphics.TextureFormat
	params graphics.TextureParameters
}

// bindScoped binds a texture on the active unit and returns a function
// restoring the previous binding.
func bindScoped(target, id uint32) func() {
	query := uint32(gl.TEXTURE_BINDING_2D)
	if target == gl.TEXTURE_CUBE_MAP {
		query = gl.TEXTURE_BINDING_CUBE_MAP
	}
	var prev int32
	gl.GetIntegerv(query, &prev)
	gl.BindTexture(target, id)
	return func() {
		gl.BindTexture(target, uint32(prev))
	}
}

func pixels(data []byte) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return gl.Ptr(data)
}

// NewTexture implements graphics.Backend.
func (d *Device) NewTexture(data graphics.TextureData, params graphics.TextureParameters) (graphics.Texture, error) {
	t := &Texture{
		target: gl.TEXTURE_2D,
		typ:    graphics.TextureType2D,
		size:   data.Size,
		format: data.Format,
	}
	gl.GenTextures(1, &t.id)
	restore := bindScoped(t.target, t.id)
	defer restore()

	t.upload(gl.TEXTURE_2D, data.Data)
	t.applyParameters(params, data.Data != nil)

	if err := checkError("texture"); err != nil {
		t.Destroy()
		return nil, fmt.Errorf("uploading texture: %w", err)
	}
	return t, nil
}

// NewCubemap implements graphics.Backend.
func (d *Device) NewCubemap(faces [6]graphics.TextureData, params graphics.TextureParameters) (graphics.Texture, error) {
	t := &Texture{
		target: gl.TEXTURE_CUBE_MAP,
		typ:    graphics.TextureTypeCubemap,
		size:   faces[0].Size,
		format: faces[0].Format,
	}
	gl.GenTextures(1, &t.id)
	restore := bindScoped(t.target, t.id)
	defer restore()

	for i, face := range faces {
		t.upload(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), face.Data)
	}
	t.applyParameters(params, faces[0].Data != nil)

	if err := checkError("cubemap"); err != nil {
		t.Destroy()
		return nil, fmt.Errorf("uploading cubemap: %w", err)
	}
	return t, nil
}

// upload writes one image level; the texture must be bound.
func (t *Texture) upload(target uint32, data []byte) {
	internal, format, xtype := textureFormats(t.format)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(target, 0, internal, int32(t.size.Width), int32(t.size.Height), 0, format, xtype, pixels(data))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
}

// applyParameters sets sampler state; the texture must be bound.
func (t *Texture) applyParameters(params graphics.TextureParameters, mipmaps bool) {
	t.params = params
	gl.TexParameteri(t.target, gl.TEXTURE_MIN_FILTER, filterMode(params.MinFilter))
	gl.TexParameteri(t.target, gl.TEXTURE_MAG_FILTER, filterMode(params.MagFilter))
	wrap := wrapMode(params.Wrap)
	gl.TexParameteri(t.target, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(t.target, gl.TEXTURE_WRAP_T, wrap)
	if t.target == gl.TEXTURE_CUBE_MAP {
		gl.TexParameteri(t.target, gl.TEXTURE_WRAP_R, wrap)
	}
	if params.Wrap == graphics.TextureWrapClampToBorder {
		border := graphics.ColorVec4(params.BorderColor)
		gl.TexParameterfv(t.target, gl.TEXTURE_BORDER_COLOR, &border[0])
	}
	if params.DepthCompare {
		gl.TexParameteri(t.target, gl.TEXTURE_COMPARE_MODE, gl.COMPARE_REF_TO_TEXTURE)
		gl.TexParameteri(t.target, gl.TEXTURE_COMPARE_FUNC, gl.LEQUAL)
	} else {
		gl.TexParameteri(t.target, gl.TEXTURE_COMPARE_MODE, gl.NONE)
	}
	if mipmaps && params.MinFilter == graphics.TextureFilterLinearMipmap {
		gl.GenerateMipmap(t.target)
	}
}

// Type returns the texture type.
func (t *Texture) Type() graphics.TextureType { return t.typ }

// Size returns the texture size.
func (t *Texture) Size() graphics.Size { return t.size }

// Format returns the pixel format.
func (t *Texture) Format() graphics.TextureFormat { return t.format }

// Parameters returns the sampling parameters.
func (t *Texture) Parameters() graphics.TextureParameters { return t.params }

// SetParameters updates sampler state without leaking the binding.
func (t *Texture) SetParameters(params graphics.TextureParameters) {
	restore := bindScoped(t.target, t.id)
	defer restore()
	t.applyParameters(params, true)
}

// Resize reallocates storage with undefined contents.
func (t *Texture) Resize(size graphics.Size) {
	if size == t.size || size.Empty() {
		return
	}
	t.size = size
	restore := bindScoped(t.target, t.id)
	defer restore()
	if t.target == gl.TEXTURE_CUBE_MAP {
		for i := uint32(0); i < 6; i++ {
			t.upload(gl.TEXTURE_CUBE_MAP_POSITIVE_X+i, nil)
		}
		return
	}
	t.upload(gl.TEXTURE_2D, nil)
}

// Destroy deletes the texture.
func (t *Texture) Destroy() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}
