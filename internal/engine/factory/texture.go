package factory

import (
	"fmt"
	"image"
	"image/color"

	"go.uber.org/zap"
	"golang.org/x/image/draw"

	"github.com/Faultbox/gltut/internal/engine/graphics"
	"github.com/Faultbox/gltut/internal/engine/input"
	"github.com/Faultbox/gltut/internal/engine/scene"
)

// TextureFactory creates textures from colors and images, and keeps render
// target textures sized to the window.
type TextureFactory struct {
	device graphics.Device
	window scene.Window

	solid       map[graphics.Color]graphics.Texture
	windowSized []graphics.Texture
}

func newTextureFactory(device graphics.Device, w scene.Window) *TextureFactory {
	f := &TextureFactory{
		device: device,
		window: w,
		solid:  make(map[graphics.Color]graphics.Texture),
	}
	if w != nil {
		w.AddEventHandler(f)
	}
	return f
}

func colorByte(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

func toRGBA(c graphics.Color) color.RGBA {
	return color.RGBA{R: colorByte(c.R), G: colorByte(c.G), B: colorByte(c.B), A: colorByte(c.A)}
}

// SolidColor returns a 1x1 texture of c. Textures are shared per color.
func (f *TextureFactory) SolidColor(c graphics.Color) (graphics.Texture, error) {
	if t, ok := f.solid[c]; ok {
		return t, nil
	}
	px := toRGBA(c)
	params := graphics.TextureParameters{
		MinFilter: graphics.TextureFilterNearest,
		MagFilter: graphics.TextureFilterNearest,
		Wrap:      graphics.TextureWrapRepeat,
	}
	t, err := f.device.Textures().Create(graphics.TextureData{
		Data:   []byte{px.R, px.G, px.B, px.A},
		Size:   graphics.Size{Width: 1, Height: 1},
		Format: graphics.TextureFormatRGBA,
	}, params)
	if err != nil {
		return nil, fmt.Errorf("creating solid color texture: %w", err)
	}
	f.solid[c] = t
	return t, nil
}

// imageData converts img to bottom-up RGBA rows. Images larger than maxSize
// on either side are scaled down keeping the aspect ratio; maxSize <= 0
// keeps the original size.
func imageData(img image.Image, maxSize int) graphics.TextureData {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize > 0 && (w > maxSize || h > maxSize) {
		if w >= h {
			w, h = maxSize, max(1, h*maxSize/w)
		} else {
			w, h = max(1, w*maxSize/h), maxSize
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	}

	// Texture rows start at the bottom
	data := make([]byte, len(dst.Pix))
	row := w * 4
	for y := 0; y < h; y++ {
		copy(data[(h-1-y)*row:(h-y)*row], dst.Pix[y*dst.Stride:y*dst.Stride+row])
	}
	return graphics.TextureData{Data: data, Size: graphics.Size{Width: w, Height: h}, Format: graphics.TextureFormatRGBA}
}

// FromImage uploads a decoded image as an RGBA texture.
func (f *TextureFactory) FromImage(img image.Image, params graphics.TextureParameters, maxSize int) (graphics.Texture, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty image", graphics.ErrInvalidTexture)
	}
	data := imageData(img, maxSize)
	t, err := f.device.Textures().Create(data, params)
	if err != nil {
		return nil, fmt.Errorf("creating image texture: %w", err)
	}
	return t, nil
}

// Checkerboard creates a size x size texture with cells x cells squares
// alternating between a and b, starting with a in the lower left corner.
func (f *TextureFactory) Checkerboard(size, cells int, a, b graphics.Color, params graphics.TextureParameters) (graphics.Texture, error) {
	if size <= 0 || cells <= 0 || cells > size {
		return nil, fmt.Errorf("%w: checkerboard %d cells over %d pixels", graphics.ErrInvalidTexture, cells, size)
	}
	ca, cb := toRGBA(a), toRGBA(b)
	data := make([]byte, 0, size*size*4)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := ca
			if (x*cells/size+y*cells/size)%2 == 1 {
				c = cb
			}
			data = append(data, c.R, c.G, c.B, c.A)
		}
	}
	t, err := f.device.Textures().Create(graphics.TextureData{
		Data:   data,
		Size:   graphics.Size{Width: size, Height: size},
		Format: graphics.TextureFormatRGBA,
	}, params)
	if err != nil {
		return nil, fmt.Errorf("creating checkerboard texture: %w", err)
	}
	return t, nil
}

// Cubemap creates a cubemap from faces ordered +X, -X, +Y, -Y, +Z, -Z.
// Every face is scaled to a square with the width of the first face.
func (f *TextureFactory) Cubemap(faces [6]image.Image, params graphics.TextureParameters) (graphics.Texture, error) {
	if faces[0] == nil || faces[0].Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty cubemap face 0", graphics.ErrInvalidTexture)
	}
	side := faces[0].Bounds().Dx()
	var data [6]graphics.TextureData
	for i, face := range faces {
		if face == nil || face.Bounds().Empty() {
			return nil, fmt.Errorf("%w: empty cubemap face %d", graphics.ErrInvalidTexture, i)
		}
		square := image.NewRGBA(image.Rect(0, 0, side, side))
		draw.BiLinear.Scale(square, square.Bounds(), face, face.Bounds(), draw.Src, nil)
		// Cubemap faces keep the top-down row order
		data[i] = graphics.TextureData{Data: square.Pix, Size: graphics.Size{Width: side, Height: side}, Format: graphics.TextureFormatRGBA}
	}
	t, err := f.device.Textures().CreateCubemap(data, params)
	if err != nil {
		return nil, fmt.Errorf("creating cubemap: %w", err)
	}
	return t, nil
}

// WindowSizeTexture creates an empty render target texture that follows the
// window size.
func (f *TextureFactory) WindowSizeTexture(format graphics.TextureFormat, params graphics.TextureParameters) (graphics.Texture, error) {
	t, err := f.device.Textures().Create(graphics.TextureData{Size: f.windowSize(), Format: format}, params)
	if err != nil {
		return nil, fmt.Errorf("creating window size texture: %w", err)
	}
	f.AddWindowSizeTexture(t)
	return t, nil
}

func (f *TextureFactory) windowSize() graphics.Size {
	size := graphics.Size{Width: 1, Height: 1}
	if f.window != nil && !f.window.Size().Empty() {
		size = f.window.Size()
	}
	return size
}

// AddWindowSizeTexture resizes t to the window now and on every resize.
func (f *TextureFactory) AddWindowSizeTexture(t graphics.Texture) {
	if t == nil {
		return
	}
	for _, existing := range f.windowSized {
		if existing == t {
			return
		}
	}
	f.windowSized = append(f.windowSized, t)
	if size := f.windowSize(); t.Size() != size {
		t.Resize(size)
	}
}

// RemoveWindowSizeTexture stops resizing t. The texture is kept.
func (f *TextureFactory) RemoveWindowSizeTexture(t graphics.Texture) {
	for i, existing := range f.windowSized {
		if existing == t {
			f.windowSized = append(f.windowSized[:i], f.windowSized[i+1:]...)
			return
		}
	}
}

// OnEvent resizes the window size textures.
func (f *TextureFactory) OnEvent(e input.Event) {
	if e.Type != input.EventWindowResize {
		return
	}
	size := graphics.Size{Width: e.Resize.Width, Height: e.Resize.Height}
	if size.Empty() {
		return
	}
	for _, t := range f.windowSized {
		t.Resize(size)
	}
	if len(f.windowSized) > 0 {
		log.Debug("window size textures resized", zap.Int("count", len(f.windowSized)),
			zap.Int("width", size.Width), zap.Int("height", size.Height))
	}
}

func (f *TextureFactory) close() {
	if f.window != nil {
		f.window.RemoveEventHandler(f)
	}
	f.windowSized = nil
	for c, t := range f.solid {
		f.device.Textures().Remove(t)
		delete(f.solid, c)
	}
}
