package wicker

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// TextMeasurer is the host's text layout capability.
type TextMeasurer interface {
	// MeasureText returns the rendered size of text. wrapWidth > 0 wraps
	// lines at that width.
	MeasureText(text string, style TextStyle, wrapWidth float64) Vec2
}

// MonospaceMeasurer measures text on a fixed cell grid. Wide runes (CJK,
// emoji) take two cells. Used headless and in tests.
type MonospaceMeasurer struct {
	CellWidth  float64
	LineHeight float64
}

// NewMonospaceMeasurer returns a measurer with 8x16 cells.
func NewMonospaceMeasurer() *MonospaceMeasurer {
	return &MonospaceMeasurer{CellWidth: 8, LineHeight: 16}
}

// MeasureText implements TextMeasurer.
func (m *MonospaceMeasurer) MeasureText(text string, style TextStyle, wrapWidth float64) Vec2 {
	if text == "" {
		return Vec2{}
	}
	scale := 1.0
	if style.Size > 0 {
		scale = style.Size / m.LineHeight
	}
	cw := m.CellWidth * scale
	lh := m.LineHeight * scale

	var w float64
	lines := 0
	for _, line := range strings.Split(text, "\n") {
		lw := float64(runewidth.StringWidth(line)) * cw
		if wrapWidth > 0 && lw > wrapWidth {
			cols := max(1, int(wrapWidth/cw))
			cells := runewidth.StringWidth(line)
			lines += (cells + cols - 1) / cols
			w = max(w, float64(cols)*cw)
			continue
		}
		lines++
		w = max(w, lw)
	}
	return Vec2{w + 2*style.Padding, float64(lines)*lh + 2*style.Padding}
}
