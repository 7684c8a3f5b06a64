package ebitenhost

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/wicker"
)

// FPSLabel is a label showing the current FPS and TPS, refreshed about
// twice a second.
type FPSLabel struct {
	wicker.Label
	elapsed time.Duration
}

// NewFPSLabel creates an auto-sized FPS label in the top-left corner.
func NewFPSLabel() *FPSLabel {
	l := &FPSLabel{}
	l.Bind(l, "fps")
	l.AutoSize = true
	l.Style.Background = wicker.Color{A: 0.5}
	l.Style.Text = wicker.TextStyle{Color: wicker.ColorWhite, Padding: 3}
	l.SetPosition(wicker.Vec2{X: 4, Y: 4})
	l.SetText("FPS: -")
	return l
}

func (l *FPSLabel) UpdateContent(f *wicker.Frame) {
	l.elapsed += f.Input.Delta
	if l.elapsed >= 500*time.Millisecond {
		l.elapsed = 0
		l.SetText(fmt.Sprintf("FPS: %.1f  TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	l.Label.UpdateContent(f)
}
