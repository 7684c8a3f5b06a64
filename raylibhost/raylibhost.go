// Package raylibhost runs wicker on raylib. It provides a Surface, an input
// poller and a text measurer backed by raylib's default font.
//
// raylib needs cgo and an initialized window, so this package lives in its
// own module.
package raylibhost

import (
	"image"
	"math"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/phanxgames/wicker"
)

// DefaultFontSize is used for text styles with no size.
const DefaultFontSize = 14

// Texture wraps a raylib texture as a wicker.Texture.
type Texture struct {
	rl.Texture2D
}

// Bounds implements wicker.Texture.
func (t Texture) Bounds() image.Rectangle {
	return image.Rect(0, 0, int(t.Width), int(t.Height))
}

func toColor(c wicker.Color) rl.Color {
	// raylib takes straight alpha.
	v := func(f float64) uint8 { return uint8(math.Round(math.Min(math.Max(f, 0), 1) * 255)) }
	return rl.NewColor(v(c.R), v(c.G), v(c.B), v(c.A))
}

func toRect(r wicker.Rect) rl.Rectangle {
	return rl.NewRectangle(float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height))
}

func fontSize(style wicker.TextStyle) int32 {
	if style.Size > 0 {
		return int32(math.Round(style.Size))
	}
	return DefaultFontSize
}

// Surface implements wicker.Surface with raylib draw calls. Use it between
// rl.BeginDrawing and rl.EndDrawing.
type Surface struct {
	clips []image.Rectangle
}

func (s *Surface) FillRect(r wicker.Rect, c wicker.Color) {
	if c.A > 0 {
		rl.DrawRectangleRec(toRect(r), toColor(c))
	}
}

func (s *Surface) StrokeRect(r wicker.Rect, c wicker.Color, thickness float64) {
	if c.A > 0 && thickness > 0 {
		rl.DrawRectangleLinesEx(toRect(r), float32(thickness), toColor(c))
	}
}

func (s *Surface) DrawTexture(r wicker.Rect, tex wicker.Texture, tint wicker.Color) {
	t, ok := tex.(Texture)
	if !ok || t.Width == 0 || t.Height == 0 {
		return
	}
	src := rl.NewRectangle(0, 0, float32(t.Width), float32(t.Height))
	rl.DrawTexturePro(t.Texture2D, src, toRect(r), rl.NewVector2(0, 0), 0, toColor(tint))
}

func (s *Surface) DrawText(r wicker.Rect, text string, style wicker.TextStyle) {
	if text == "" {
		return
	}
	size := fontSize(style)
	inner := r.Inset(style.Padding)
	lines := strings.Split(text, "\n")
	y := inner.Y
	if style.Middle {
		y += math.Max(0, (inner.Height-float64(size)*float64(len(lines)))/2)
	}
	col := toColor(style.Color)
	for _, line := range lines {
		x := inner.X
		w := float64(rl.MeasureText(line, size))
		switch style.Align {
		case wicker.TextAlignCenter:
			x += (inner.Width - w) / 2
		case wicker.TextAlignRight:
			x += inner.Width - w
		}
		rl.DrawText(line, int32(x), int32(y), size, col)
		y += float64(size)
	}
}

func (s *Surface) PushClip(r wicker.Rect) {
	rect := image.Rect(int(math.Floor(r.X)), int(math.Floor(r.Y)), int(math.Ceil(r.Right())), int(math.Ceil(r.Bottom())))
	if n := len(s.clips); n > 0 {
		rect = rect.Intersect(s.clips[n-1])
	}
	s.clips = append(s.clips, rect)
	scissor(rect)
}

func (s *Surface) PopClip() {
	if len(s.clips) == 0 {
		return
	}
	s.clips = s.clips[:len(s.clips)-1]
	rl.EndScissorMode()
	if n := len(s.clips); n > 0 {
		scissor(s.clips[n-1])
	}
}

func scissor(r image.Rectangle) {
	rl.BeginScissorMode(int32(r.Min.X), int32(r.Min.Y), int32(r.Dx()), int32(r.Dy()))
}

// Measurer implements wicker.TextMeasurer with raylib's default font.
type Measurer struct{}

func (Measurer) MeasureText(text string, style wicker.TextStyle, _ float64) wicker.Vec2 {
	if text == "" {
		return wicker.Vec2{}
	}
	size := fontSize(style)
	lines := strings.Split(text, "\n")
	var w int32
	for _, l := range lines {
		w = max(w, rl.MeasureText(l, size))
	}
	return wicker.Vec2{
		X: float64(w) + 2*style.Padding,
		Y: float64(size)*float64(len(lines)) + 2*style.Padding,
	}
}

// Poller converts raylib's input state into a wicker.Input per frame.
type Poller struct {
	elapsed time.Duration
	chars   []rune
}

// Poll reads the current input state. Call it once per frame.
func (p *Poller) Poll() wicker.Input {
	dt := time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
	p.elapsed += dt

	p.chars = p.chars[:0]
	for r := rl.GetCharPressed(); r > 0; r = rl.GetCharPressed() {
		p.chars = append(p.chars, rune(r))
	}

	var keys wicker.Keys
	for k, mask := range map[int32]wicker.Keys{
		rl.KeyBackspace: wicker.KeyBackspace,
		rl.KeyDelete:    wicker.KeyDelete,
		rl.KeyEnter:     wicker.KeyEnter,
		rl.KeyEscape:    wicker.KeyEscape,
		rl.KeyLeft:      wicker.KeyLeft,
		rl.KeyRight:     wicker.KeyRight,
		rl.KeyHome:      wicker.KeyHome,
		rl.KeyEnd:       wicker.KeyEnd,
	} {
		if rl.IsKeyPressed(k) || rl.IsKeyPressedRepeat(k) {
			keys |= mask
		}
	}

	var mods wicker.KeyModifiers
	if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
		mods |= wicker.ModShift
	}
	if rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) {
		mods |= wicker.ModCtrl
	}
	if rl.IsKeyDown(rl.KeyLeftAlt) || rl.IsKeyDown(rl.KeyRightAlt) {
		mods |= wicker.ModAlt
	}
	if rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper) {
		mods |= wicker.ModMeta
	}

	mp := rl.GetMousePosition()
	return wicker.Input{
		Mouse:     wicker.Vec2{X: float64(mp.X), Y: float64(mp.Y)},
		Left:      button(rl.MouseButtonLeft),
		Right:     button(rl.MouseButtonRight),
		Middle:    button(rl.MouseButtonMiddle),
		Wheel:     float64(rl.GetMouseWheelMove()),
		Modifiers: mods,
		Chars:     p.chars,
		Keys:      keys,
		Time:      p.elapsed,
		Delta:     dt,
	}
}

func button(b rl.MouseButton) wicker.ButtonState {
	return wicker.ButtonState{
		Pressed:  rl.IsMouseButtonPressed(b),
		Released: rl.IsMouseButtonReleased(b),
		Held:     rl.IsMouseButtonDown(b),
	}
}

// Run opens a raylib window and runs m until it closes.
func Run(m *wicker.Manager, title string, width, height int32) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(width, height, title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)

	var p Poller
	var s Surface
	for !rl.WindowShouldClose() {
		m.Config().ScreenSize = wicker.Vec2{X: float64(rl.GetScreenWidth()), Y: float64(rl.GetScreenHeight())}
		m.Update(p.Poll())

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		s.clips = s.clips[:0]
		m.Draw(&s)
		rl.EndDrawing()
	}
}
