package ebitenhost

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/wicker"
)

// Key repeat timing in ticks.
const (
	repeatDelay    = 30
	repeatInterval = 4
)

var editKeys = [...]struct {
	key  ebiten.Key
	mask wicker.Keys
}{
	{ebiten.KeyBackspace, wicker.KeyBackspace},
	{ebiten.KeyDelete, wicker.KeyDelete},
	{ebiten.KeyEnter, wicker.KeyEnter},
	{ebiten.KeyNumpadEnter, wicker.KeyEnter},
	{ebiten.KeyEscape, wicker.KeyEscape},
	{ebiten.KeyArrowLeft, wicker.KeyLeft},
	{ebiten.KeyArrowRight, wicker.KeyRight},
	{ebiten.KeyHome, wicker.KeyHome},
	{ebiten.KeyEnd, wicker.KeyEnd},
}

// Poller converts Ebitengine's input state into one wicker.Input per tick.
// Frame time advances by one tick (1/TPS) per Poll, so time-based behavior
// follows the simulation rather than the wall clock.
type Poller struct {
	tick  int64
	chars []rune
}

// Poll reads the current input state. Call it once per Update.
func (p *Poller) Poll() wicker.Input {
	p.tick++
	step := time.Second / time.Duration(max(1, ebiten.TPS()))

	mx, my := ebiten.CursorPosition()
	_, wy := ebiten.Wheel()
	p.chars = ebiten.AppendInputChars(p.chars[:0])

	var keys wicker.Keys
	for _, k := range editKeys {
		if repeating(k.key) {
			keys |= k.mask
		}
	}

	return wicker.Input{
		Mouse:     wicker.Vec2{X: float64(mx), Y: float64(my)},
		Left:      button(ebiten.MouseButtonLeft),
		Right:     button(ebiten.MouseButtonRight),
		Middle:    button(ebiten.MouseButtonMiddle),
		Wheel:     wy,
		Modifiers: readModifiers(),
		Chars:     p.chars,
		Keys:      keys,
		Time:      time.Duration(p.tick) * step,
		Delta:     step,
	}
}

func button(b ebiten.MouseButton) wicker.ButtonState {
	return wicker.ButtonState{
		Pressed:  inpututil.IsMouseButtonJustPressed(b),
		Released: inpututil.IsMouseButtonJustReleased(b),
		Held:     ebiten.IsMouseButtonPressed(b),
	}
}

// repeating reports a key press on its first tick and then at the repeat
// interval while held.
func repeating(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d == 1 || (d >= repeatDelay && (d-repeatDelay)%repeatInterval == 0)
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() wicker.KeyModifiers {
	var mods wicker.KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= wicker.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= wicker.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= wicker.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= wicker.ModMeta
	}
	return mods
}
