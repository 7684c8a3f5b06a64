package wicker

import (
	"unicode"

	"github.com/rivo/uniseg"
)

// TextInput is a single-line editable text field. It takes keyboard focus
// when clicked. Cursor movement and deletion step over whole grapheme
// clusters, so combining marks and emoji sequences edit as one character.
//
// TypingFinished fires once after Config.TypingCooldownFrames frames pass
// without an edit. The countdown restarts on every edit and runs inside the
// frame update, so handlers may touch the tree freely.
type TextInput struct {
	Node
	text        string
	cursor      int // byte offset, always on a grapheme boundary
	focused     bool
	cooldown    int
	Placeholder string
	MaxLength   int // in grapheme clusters; 0 is unlimited

	Caret       Color
	FocusBorder Color

	Changed        Signal[string]
	Submitted      Signal[string]
	TypingFinished Signal[string]
}

// NewTextInput creates an empty text input.
func NewTextInput(id string) *TextInput {
	t := &TextInput{
		Caret:       ColorWhite,
		FocusBorder: Color{0.45, 0.6, 0.95, 1},
	}
	t.init(t, id)
	t.Style.Background = Color{0.1, 0.1, 0.12, 1}
	t.Style.Text = TextStyle{Color: ColorWhite, Middle: true, Padding: 4}
	return t
}

// Text returns the current text.
func (t *TextInput) Text() string { return t.text }

// Cursor returns the cursor's byte offset.
func (t *TextInput) Cursor() int { return t.cursor }

// SetText replaces the text and moves the cursor to the end. Changed fires
// when the text differs.
func (t *TextInput) SetText(s string) {
	if t.MaxLength > 0 {
		s = truncateGraphemes(s, t.MaxLength)
	}
	t.cursor = len(s)
	if t.text == s {
		return
	}
	t.text = s
	t.Changed.Emit(s)
}

// IsFocused reports whether the input has keyboard focus.
func (t *TextInput) IsFocused() bool { return t.focused }

// SetFocused implements Focusable.
func (t *TextInput) SetFocused(v bool) { t.focused = v }

func (t *TextInput) HandleMouse(e MouseEvent) {
	if e.Kind != MouseDown || e.Button != MouseButtonLeft {
		return
	}
	if w := t.Window(); w != nil {
		w.Focus(t)
	}
	t.cursor = len(t.text)
}

func (t *TextInput) UpdateContent(f *Frame) {
	if t.focused && t.edit(f) {
		frames := DefaultConfig().TypingCooldownFrames
		if f.Config != nil {
			frames = f.Config.TypingCooldownFrames
		}
		t.cooldown = max(1, frames)
		t.Changed.Emit(t.text)
		return
	}
	if t.cooldown > 0 {
		t.cooldown--
		if t.cooldown == 0 {
			t.TypingFinished.Emit(t.text)
		}
	}
}

// edit applies the frame's typed characters and editing keys. It reports
// whether the text changed.
func (t *TextInput) edit(f *Frame) bool {
	in := f.Input
	before := t.text
	for _, r := range in.Chars {
		if unicode.IsControl(r) {
			continue
		}
		t.insert(string(r))
	}
	switch {
	case in.Keys.Has(KeyBackspace):
		if t.cursor > 0 {
			p := prevGrapheme(t.text, t.cursor)
			t.text = t.text[:p] + t.text[t.cursor:]
			t.cursor = p
		}
	case in.Keys.Has(KeyDelete):
		if t.cursor < len(t.text) {
			n := nextGrapheme(t.text, t.cursor)
			t.text = t.text[:t.cursor] + t.text[n:]
		}
	case in.Keys.Has(KeyLeft):
		t.cursor = prevGrapheme(t.text, t.cursor)
	case in.Keys.Has(KeyRight):
		t.cursor = nextGrapheme(t.text, t.cursor)
	case in.Keys.Has(KeyHome):
		t.cursor = 0
	case in.Keys.Has(KeyEnd):
		t.cursor = len(t.text)
	}
	if in.Keys.Has(KeyEnter) {
		t.Submitted.Emit(t.text)
	}
	if in.Keys.Has(KeyEscape) && f.Window != nil {
		f.Window.Focus(nil)
	}
	return t.text != before
}

func (t *TextInput) insert(s string) {
	if t.MaxLength > 0 && uniseg.GraphemeClusterCount(t.text+s) > t.MaxLength {
		return
	}
	t.text = t.text[:t.cursor] + s + t.text[t.cursor:]
	// A combining mark may merge with the previous cluster; keep the cursor
	// on a boundary.
	t.cursor = nextGrapheme(t.text, prevGrapheme(t.text, t.cursor+len(s)))
}

func (t *TextInput) DrawContent(dc *DrawContext, r Rect) {
	st := t.Style.Text
	switch {
	case t.text != "":
		dc.DrawText(r, t.text, st)
	case !t.focused && t.Placeholder != "":
		ph := st
		ph.Color = st.Color.WithAlpha(st.Color.A * 0.45)
		dc.DrawText(r, t.Placeholder, ph)
	}
	if !t.focused {
		return
	}
	if !t.FocusBorder.IsZero() {
		dc.StrokeRect(r, t.FocusBorder, 1)
	}
	x := r.X + st.Padding
	if t.cursor > 0 && dc.Measurer != nil {
		nopad := st
		nopad.Padding = 0
		x += dc.Measurer.MeasureText(t.text[:t.cursor], nopad, 0).X
	}
	dc.FillRect(Rect{x, r.Y + st.Padding, 1, max(0, r.Height-2*st.Padding)}, t.Caret)
}

// prevGrapheme returns the start of the grapheme cluster ending at i.
func prevGrapheme(s string, i int) int {
	pos, state := 0, -1
	rest := s
	for len(rest) > 0 {
		c, r, _, st := uniseg.FirstGraphemeClusterInString(rest, state)
		if pos+len(c) >= i {
			return pos
		}
		pos += len(c)
		rest, state = r, st
	}
	return pos
}

// nextGrapheme returns the end of the grapheme cluster starting at i.
func nextGrapheme(s string, i int) int {
	if i >= len(s) {
		return len(s)
	}
	c, _, _, _ := uniseg.FirstGraphemeClusterInString(s[i:], -1)
	return i + len(c)
}

func truncateGraphemes(s string, n int) string {
	pos, state := 0, -1
	rest := s
	for i := 0; i < n && len(rest) > 0; i++ {
		c, r, _, st := uniseg.FirstGraphemeClusterInString(rest, state)
		pos += len(c)
		rest, state = r, st
	}
	return s[:pos]
}
