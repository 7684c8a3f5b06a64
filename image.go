package wicker

// Image draws a catalog texture stretched over its bounds. A missing texture
// draws nothing.
type Image struct {
	Node
	TextureKey string
	Tint       Color // zero draws untinted
}

// NewImage creates an image showing the texture registered under key.
func NewImage(id, key string) *Image {
	img := &Image{TextureKey: key}
	img.init(img, id)
	return img
}

func (img *Image) DrawContent(dc *DrawContext, r Rect) {
	if img.TextureKey == "" || dc.Catalog == nil {
		return
	}
	tex := dc.Catalog.Texture(img.TextureKey)
	if tex == nil {
		return
	}
	tint := img.Tint
	if tint.IsZero() {
		tint = ColorWhite
	}
	dc.DrawTexture(r, tex, tint)
}

