package ebitenhost

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/wicker"
)

// Surface implements wicker.Surface on an *ebiten.Image. Clipping uses
// sub-images, which keep the parent's coordinate space.
type Surface struct {
	screen *ebiten.Image
	clips  []image.Rectangle
	fonts  *Fonts
}

// NewSurface creates a surface drawing text with fonts.
func NewSurface(fonts *Fonts) *Surface {
	return &Surface{fonts: fonts}
}

// Begin targets screen for the frame and drops any leftover clips.
func (s *Surface) Begin(screen *ebiten.Image) {
	s.screen = screen
	s.clips = s.clips[:0]
}

func (s *Surface) target() *ebiten.Image {
	if len(s.clips) == 0 {
		return s.screen
	}
	return s.screen.SubImage(s.clips[len(s.clips)-1]).(*ebiten.Image)
}

func (s *Surface) FillRect(r wicker.Rect, c wicker.Color) {
	if c.A <= 0 || r.Width <= 0 || r.Height <= 0 {
		return
	}
	vector.DrawFilledRect(s.target(), float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), c.RGBA(), false)
}

func (s *Surface) StrokeRect(r wicker.Rect, c wicker.Color, thickness float64) {
	if c.A <= 0 || thickness <= 0 {
		return
	}
	// Inset by half the stroke so the border stays inside r.
	h := thickness / 2
	vector.StrokeRect(s.target(), float32(r.X+h), float32(r.Y+h), float32(r.Width-thickness), float32(r.Height-thickness),
		float32(thickness), c.RGBA(), false)
}

func (s *Surface) DrawTexture(r wicker.Rect, tex wicker.Texture, tint wicker.Color) {
	img, ok := tex.(*ebiten.Image)
	if !ok || img == nil {
		return
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.Width/float64(b.Dx()), r.Height/float64(b.Dy()))
	op.GeoM.Translate(r.X, r.Y)
	op.ColorScale.ScaleWithColor(tint.RGBA())
	op.Filter = ebiten.FilterLinear
	s.target().DrawImage(img, op)
}

func (s *Surface) DrawText(r wicker.Rect, str string, style wicker.TextStyle) {
	if str == "" || s.fonts == nil {
		return
	}
	face := s.fonts.Face(style)
	inner := r.Inset(style.Padding)
	lines := s.fonts.lines(str, face, style, inner.Width)
	lh := s.fonts.lineHeight(face)

	y := inner.Y
	if style.Middle {
		y += math.Max(0, (inner.Height-lh*float64(len(lines)))/2)
	}
	op := &text.DrawOptions{}
	for _, line := range lines {
		x := inner.X
		switch style.Align {
		case wicker.TextAlignCenter:
			x += (inner.Width - text.Advance(line, face)) / 2
		case wicker.TextAlignRight:
			x += inner.Width - text.Advance(line, face)
		}
		op.GeoM.Reset()
		op.GeoM.Translate(math.Round(x), math.Round(y))
		op.ColorScale.Reset()
		op.ColorScale.ScaleWithColor(style.Color.RGBA())
		text.Draw(s.target(), line, face, op)
		y += lh
	}
}

func (s *Surface) PushClip(r wicker.Rect) {
	rect := image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.Right())), int(math.Ceil(r.Bottom())),
	)
	if n := len(s.clips); n > 0 {
		rect = rect.Intersect(s.clips[n-1])
	} else if s.screen != nil {
		rect = rect.Intersect(s.screen.Bounds())
	}
	s.clips = append(s.clips, rect)
}

func (s *Surface) PopClip() {
	if len(s.clips) > 0 {
		s.clips = s.clips[:len(s.clips)-1]
	}
}
