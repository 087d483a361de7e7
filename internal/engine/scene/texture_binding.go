package scene

import (
	"github.com/Faultbox/gltut/internal/engine/graphics"
	"github.com/Faultbox/gltut/internal/engine/renderer"
)

// TextureParameter is a per-light texture that can be routed to texture
// slots.
type TextureParameter int

const (
	DirectionalLightShadowMap TextureParameter = iota
	SpotLightShadowMap
	TextureParameterCount
)

// TextureSetBinding writes light shadow maps into consecutive slots of a
// texture set, starting at a bound slot per light type.
type TextureSetBinding struct {
	set   *renderer.TextureSet
	start [TextureParameterCount]int
	count [TextureParameterCount]int
	bound [TextureParameterCount]bool
}

// NewTextureSetBinding creates a binding for set with nothing bound.
func NewTextureSetBinding(set *renderer.TextureSet) *TextureSetBinding {
	return &TextureSetBinding{set: set}
}

// TextureSet returns the target texture set.
func (b *TextureSetBinding) TextureSet() *renderer.TextureSet {
	return b.set
}

// SetTextureSet changes the target set. With reset the bound slots are
// cleared too.
func (b *TextureSetBinding) SetTextureSet(set *renderer.TextureSet, reset bool) {
	b.set = set
	if reset {
		b.bound = [TextureParameterCount]bool{}
	}
}

// Bind routes p to count slots starting at startSlot. Lights past count
// are not stored.
func (b *TextureSetBinding) Bind(p TextureParameter, startSlot, count int) {
	if p < 0 || p >= TextureParameterCount || startSlot < 0 || count < 0 {
		return
	}
	b.start[p] = startSlot
	b.count[p] = count
	b.bound[p] = true
}

// Unbind removes the routing of p.
func (b *TextureSetBinding) Unbind(p TextureParameter) {
	if p >= 0 && p < TextureParameterCount {
		b.bound[p] = false
	}
}

// StartSlot returns the first slot p is routed to.
func (b *TextureSetBinding) StartSlot(p TextureParameter) (int, bool) {
	if p < 0 || p >= TextureParameterCount || !b.bound[p] {
		return 0, false
	}
	return b.start[p], true
}

// Update stores the shadow map of every directional and spot light of s.
// Lights without a shadow map clear their slot.
func (b *TextureSetBinding) Update(s *Scene) {
	if b.set == nil || s == nil {
		return
	}
	var directional, spot int
	for _, light := range s.lights {
		switch light.Type() {
		case LightDirectional:
			b.store(DirectionalLightShadowMap, directional, light)
			directional++
		case LightSpot:
			b.store(SpotLightShadowMap, spot, light)
			spot++
		}
	}
}

func (b *TextureSetBinding) store(p TextureParameter, i int, light *LightNode) {
	if !b.bound[p] || i >= b.count[p] {
		return
	}
	var texture graphics.Texture
	if m := light.ShadowMap(); m != nil {
		texture = m.Texture()
	}
	b.set.SetTexture(b.start[p]+i, texture)
}
