package wicker

import "image"

// Texture is an opaque host image. *ebiten.Image satisfies it.
type Texture interface {
	Bounds() image.Rectangle
}

// Surface is the host's immediate-mode drawing target for one frame. All
// rectangles are in screen space.
type Surface interface {
	FillRect(r Rect, c Color)
	StrokeRect(r Rect, c Color, thickness float64)
	DrawTexture(r Rect, tex Texture, tint Color)
	DrawText(r Rect, text string, style TextStyle)
	PushClip(r Rect)
	PopClip()
}

// DrawContext is handed to Drawable widgets. It embeds the host surface and
// carries the read-only resources needed to resolve styles.
type DrawContext struct {
	Surface
	Catalog  *ResourceCatalog
	Measurer TextMeasurer
}

// Color resolves key through the catalog, falling back to c.
func (dc *DrawContext) Color(key string, c Color) Color {
	if key == "" || dc.Catalog == nil {
		return c
	}
	return dc.Catalog.ColorOr(key, c)
}

// Frame is handed to Updatable widgets once per frame.
type Frame struct {
	Input    *Input
	Catalog  *ResourceCatalog
	Measurer TextMeasurer
	Config   *Config
	Window   *Window
}

// Draw draws the subtree rooted at n. Nodes that are not window roots draw
// at their screen position.
func (n *Node) Draw(dc *DrawContext) {
	origin := Vec2{}
	if n.parent != nil {
		origin = n.parent.ScreenPosition().Sub(n.parent.scrollOffset())
	}
	n.draw(dc, origin)
}

func (n *Node) draw(dc *DrawContext, origin Vec2) {
	if !n.visible {
		return
	}
	r := n.bounds.Translate(origin)
	n.drawBackground(dc, r)
	if d, ok := n.self.(Drawable); ok {
		d.DrawContent(dc, r)
	}

	kids := n.activeChildren()
	if len(kids) > 0 {
		_, scrolls := n.self.(Scroller)
		clip := n.ClipContent || scrolls
		if clip {
			dc.PushClip(r)
		}
		co := r.Pos().Sub(n.scrollOffset())
		for _, c := range kids {
			c.draw(dc, co)
		}
		if clip {
			dc.PopClip()
		}
	}

	if d, ok := n.self.(OverlayDrawer); ok {
		d.DrawOverlay(dc, r)
	}
}

func (n *Node) drawBackground(dc *DrawContext, r Rect) {
	st := &n.Style
	bg := dc.Color(st.BackgroundKey, st.Background)
	if n.mouseOver && !st.Hover.IsZero() {
		bg = st.Hover
	}
	if !bg.IsZero() {
		dc.FillRect(r, bg)
	}
	if st.BorderWidth > 0 {
		if bc := dc.Color(st.BorderKey, st.Border); !bc.IsZero() {
			dc.StrokeRect(r, bc, st.BorderWidth)
		}
	}
}

// Update runs per-frame widget logic for the subtree, depth-first. Only
// active children (the renderable subset for virtualizing widgets) update.
func (n *Node) Update(f *Frame) {
	if !n.visible {
		return
	}
	if u, ok := n.self.(Updatable); ok {
		u.UpdateContent(f)
	}
	for _, c := range snapshot(n.activeChildren()) {
		c.Update(f)
	}
}
