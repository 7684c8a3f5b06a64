package ebitenhost

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/phanxgames/wicker"
)

type faceKey struct {
	font string
	size float64
}

// Fonts holds TrueType face sources keyed by name and caches faces per size.
// It implements wicker.TextMeasurer with the same layout DrawText uses.
type Fonts struct {
	sources     map[string]*text.GoTextFaceSource
	faces       map[faceKey]*text.GoTextFace
	DefaultSize float64
}

// NewFonts creates a font set whose default ("") font is parsed from ttf.
func NewFonts(ttf []byte, defaultSize float64) (*Fonts, error) {
	f := &Fonts{
		sources:     make(map[string]*text.GoTextFaceSource),
		faces:       make(map[faceKey]*text.GoTextFace),
		DefaultSize: defaultSize,
	}
	if err := f.AddFont("", ttf); err != nil {
		return nil, err
	}
	return f, nil
}

// DefaultFonts uses the Go Regular font.
func DefaultFonts(size float64) (*Fonts, error) {
	return NewFonts(goregular.TTF, size)
}

// AddFont registers a TrueType or OpenType font under name.
func (f *Fonts) AddFont(name string, ttf []byte) error {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(ttf))
	if err != nil {
		return fmt.Errorf("ebitenhost: parse font %q: %w", name, err)
	}
	f.sources[name] = src
	return nil
}

// Face returns the face for style, falling back to the default font.
func (f *Fonts) Face(style wicker.TextStyle) *text.GoTextFace {
	size := style.Size
	if size <= 0 {
		size = f.DefaultSize
	}
	name := style.Font
	if _, ok := f.sources[name]; !ok {
		name = ""
	}
	k := faceKey{name, size}
	if face, ok := f.faces[k]; ok {
		return face
	}
	face := &text.GoTextFace{Source: f.sources[name], Size: size}
	f.faces[k] = face
	return face
}

func (f *Fonts) lineHeight(face *text.GoTextFace) float64 {
	m := face.Metrics()
	return m.HAscent + m.HDescent + m.HLineGap
}

// MeasureText implements wicker.TextMeasurer.
func (f *Fonts) MeasureText(s string, style wicker.TextStyle, wrapWidth float64) wicker.Vec2 {
	if s == "" {
		return wicker.Vec2{}
	}
	face := f.Face(style)
	inner := wrapWidth
	if inner > 0 {
		inner = max(1, inner-2*style.Padding)
	}
	var w float64
	lines := f.lines(s, face, style, inner)
	for _, line := range lines {
		w = max(w, text.Advance(line, face))
	}
	h := f.lineHeight(face) * float64(len(lines))
	return wicker.Vec2{X: w + 2*style.Padding, Y: h + 2*style.Padding}
}

// lines splits s on newlines and, for wrapping styles, at word boundaries
// so no line exceeds width.
func (f *Fonts) lines(s string, face *text.GoTextFace, style wicker.TextStyle, width float64) []string {
	raw := strings.Split(s, "\n")
	if !style.Wrap || width <= 0 {
		return raw
	}
	var out []string
	for _, para := range raw {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		cur := words[0]
		for _, w := range words[1:] {
			next := cur + " " + w
			if text.Advance(next, face) > width {
				out = append(out, cur)
				cur = w
				continue
			}
			cur = next
		}
		out = append(out, cur)
	}
	return out
}
