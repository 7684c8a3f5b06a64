package wicker

// Label draws a string. With AutoSize set it resizes itself to the measured
// text during the next update after the text changes. Wrapping labels keep
// their width and grow in height.
type Label struct {
	Node
	text     string
	AutoSize bool
	dirty    bool
}

// NewLabel creates a label.
func NewLabel(id, text string) *Label {
	l := &Label{text: text, dirty: true}
	l.init(l, id)
	l.Style.Text = TextStyle{Color: ColorWhite, Middle: true}
	return l
}

// Text returns the label's text.
func (l *Label) Text() string { return l.text }

// SetText replaces the text.
func (l *Label) SetText(s string) {
	if l.text == s {
		return
	}
	l.text = s
	l.dirty = true
}

// PreferredSize measures the text with the label's text style.
func (l *Label) PreferredSize(m TextMeasurer) Vec2 {
	wrap := 0.0
	if l.Style.Text.Wrap {
		wrap = l.Width()
	}
	return m.MeasureText(l.text, l.Style.Text, wrap)
}

// Fit resizes the label to its text immediately.
func (l *Label) Fit(m TextMeasurer) {
	s := l.PreferredSize(m)
	if l.Style.Text.Wrap && l.Width() > 0 {
		l.SetHeight(s.Y)
	} else {
		l.SetSize(s)
	}
	l.dirty = false
}

func (l *Label) UpdateContent(f *Frame) {
	if l.AutoSize && l.dirty && f.Measurer != nil {
		l.Fit(f.Measurer)
	}
}

func (l *Label) DrawContent(dc *DrawContext, r Rect) {
	if l.text != "" {
		dc.DrawText(r, l.text, l.Style.Text)
	}
}
