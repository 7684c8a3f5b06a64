package wicker

// Button is a clickable box with a centered caption. Subscribe to the
// embedded node's Clicked signal.
type Button struct {
	Node
	Text string

	Normal   Color
	HoverBg  Color
	Pressed  Color
	Disabled Color

	pressed bool
}

// NewButton creates a button with the stock colors.
func NewButton(id, text string) *Button {
	b := &Button{
		Text:     text,
		Normal:   Color{0.22, 0.22, 0.26, 1},
		HoverBg:  Color{0.3, 0.3, 0.36, 1},
		Pressed:  Color{0.16, 0.16, 0.2, 1},
		Disabled: Color{0.18, 0.18, 0.18, 0.6},
	}
	b.init(b, id)
	b.Style.Text = TextStyle{Color: ColorWhite, Align: TextAlignCenter, Middle: true, Padding: 4}
	return b
}

// IsPressed reports whether the left button went down on the button and has
// not been released or dragged off.
func (b *Button) IsPressed() bool { return b.pressed }

func (b *Button) HandleMouse(e MouseEvent) {
	switch e.Kind {
	case MouseDown:
		if e.Button == MouseButtonLeft {
			b.pressed = true
		}
	case MouseUp, MouseLeave:
		b.pressed = false
	}
}

func (b *Button) DrawContent(dc *DrawContext, r Rect) {
	c := b.Normal
	switch {
	case !b.enabled:
		c = b.Disabled
	case b.pressed:
		c = b.Pressed
	case b.mouseOver:
		c = b.HoverBg
	}
	dc.FillRect(r, c)
	if b.Text != "" {
		dc.DrawText(r, b.Text, b.Style.Text)
	}
}

// PreferredSize is the caption's measured size.
func (b *Button) PreferredSize(m TextMeasurer) Vec2 {
	return m.MeasureText(b.Text, b.Style.Text, 0)
}
