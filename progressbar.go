package wicker

import (
	"fmt"

	"github.com/tanema/gween/ease"
)

// ProgressBar shows a value in [0, 1]. Value changes animate the fill over
// Duration seconds.
type ProgressBar struct {
	Node
	value    float64
	shown    float64
	tween    *TweenGroup
	Duration float32
	Ease     ease.TweenFunc

	Track    Color
	Fill     Color
	ShowText bool
}

// NewProgressBar creates an empty progress bar.
func NewProgressBar(id string) *ProgressBar {
	p := &ProgressBar{
		Duration: 0.25,
		Ease:     ease.OutQuad,
		Track:    Color{0.12, 0.12, 0.14, 1},
		Fill:     Color{0.3, 0.65, 0.35, 1},
	}
	p.init(p, id)
	p.Style.Text = TextStyle{Color: ColorWhite, Align: TextAlignCenter, Middle: true}
	return p
}

// Value returns the target value.
func (p *ProgressBar) Value() float64 { return p.value }

// Displayed returns the value currently drawn, which trails Value while
// animating.
func (p *ProgressBar) Displayed() float64 { return p.shown }

// SetValue sets the target value, clamped to [0, 1].
func (p *ProgressBar) SetValue(v float64) {
	v = clamp01(v)
	if v == p.value {
		return
	}
	p.value = v
	if p.Duration <= 0 {
		p.shown = v
		p.tween = nil
		return
	}
	p.tween = TweenValue(&p.shown, v, p.Duration, p.Ease)
}

func (p *ProgressBar) UpdateContent(f *Frame) {
	if p.tween == nil {
		return
	}
	p.tween.Update(float32(f.Input.Delta.Seconds()))
	if p.tween.Done {
		p.tween = nil
	}
}

func (p *ProgressBar) DrawContent(dc *DrawContext, r Rect) {
	dc.FillRect(r, p.Track)
	if w := r.Width * clamp01(p.shown); w > 0 {
		dc.FillRect(Rect{r.X, r.Y, w, r.Height}, p.Fill)
	}
	if p.ShowText {
		dc.DrawText(r, fmt.Sprintf("%d%%", int(p.value*100+0.5)), p.Style.Text)
	}
}
