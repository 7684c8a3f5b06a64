package wicker

import (
	"math"
	"time"

	"github.com/tanema/gween/ease"
)

// WindowState is the lifecycle state of a window.
type WindowState uint8

const (
	WindowClosed  WindowState = iota
	WindowOpening             // PreOpen handlers are running
	WindowOpen
	WindowClosing // PreClose handlers are running
)

// Interaction is the pointer sub-state of an open window. The states are
// mutually exclusive and re-evaluated every frame.
type Interaction uint8

const (
	InteractionIdle Interaction = iota
	InteractionDragging
	InteractionResizing
)

// Focusable widgets take keyboard focus when clicked.
type Focusable interface {
	Element
	SetFocused(bool)
}

// Window bridges a node tree to the host's window and input system. The
// root node's bounds are the window's screen rectangle.
type Window struct {
	root        *Node
	manager     *Manager
	state       WindowState
	interaction Interaction

	// Draggable windows move while the left button is held after a press on
	// the title strip or a press with DragModifier held.
	Draggable    bool
	DragModifier KeyModifiers
	TitleHeight  float64

	// Resizable windows resize from a square handle in the bottom-right corner.
	Resizable    bool
	ResizeHandle float64

	locked       bool
	overlay      float64
	overlayTween *TweenGroup

	grab Vec2

	focus        Focusable
	focusClaimed bool

	lastClick  time.Duration
	clickArmed bool
	events     []MouseEvent

	PreOpen  Signal[*Window]
	Opened   Signal[*Window]
	PreClose Signal[*Window]
	Closed   Signal[*Window]
}

// NewWindow creates a closed window whose root panel covers bounds.
func NewWindow(id string, bounds Rect) *Window {
	w := &Window{
		Draggable:    true,
		TitleHeight:  24,
		ResizeHandle: 12,
	}
	w.root = NewPanel(id)
	w.root.window = w
	w.root.SetBounds(bounds)
	return w
}

// Root returns the window's root node.
func (w *Window) Root() *Node { return w.root }

// ID returns the root node's ID.
func (w *Window) ID() string { return w.root.ID }

// State returns the lifecycle state.
func (w *Window) State() WindowState { return w.state }

// Interaction returns the current pointer sub-state.
func (w *Window) Interaction() Interaction { return w.interaction }

// Manager returns the manager the window is open in, or nil.
func (w *Window) Manager() *Manager { return w.manager }

// IsLocked reports whether dragging and resizing are disabled.
func (w *Window) IsLocked() bool { return w.locked }

// SetLocked locks or unlocks the window. Locking cancels any drag or resize
// and fades in a dimming overlay.
func (w *Window) SetLocked(v bool) {
	if w.locked == v {
		return
	}
	w.locked = v
	w.interaction = InteractionIdle
	target := 0.0
	if v {
		target = 1
	}
	fade := DefaultConfig().LockFade
	if w.manager != nil {
		fade = w.manager.cfg.LockFade
	}
	if fade <= 0 {
		w.overlay = target
		w.overlayTween = nil
		return
	}
	w.overlayTween = TweenValue(&w.overlay, target, float32(fade.Seconds()), ease.Linear)
}

// Close closes the window through its manager.
func (w *Window) Close() {
	if w.manager != nil {
		w.manager.Close(w)
	}
}

// AddCloseButton places a close button in the top-right corner.
func (w *Window) AddCloseButton(size float64) *Button {
	b := NewButton(w.root.ID+".close", "x")
	b.SetSize(Vec2{size, size})
	b.SetAnchor(AnchorTopRight)
	b.SetOffset(Vec2{-2, 2})
	b.Clicked.Connect(func(MouseEvent) { w.Close() })
	w.root.Register(b)
	return b
}

// Focus moves keyboard focus to f, or clears it when f is nil.
func (w *Window) Focus(f Focusable) {
	if f != nil {
		w.focusClaimed = true
	}
	if w.focus == f {
		return
	}
	if w.focus != nil {
		w.focus.SetFocused(false)
	}
	w.focus = f
	if f != nil {
		f.SetFocused(true)
	}
}

// Focused returns the widget holding keyboard focus.
func (w *Window) Focused() Focusable { return w.focus }

// update runs one frame. active reports whether the window owns the pointer.
func (w *Window) update(f *Frame, active bool) {
	in := f.Input
	pe := MouseEvent{Pos: in.Mouse, Held: in.anyHeld(), Modifiers: in.Modifiers, Time: in.Time}

	if !w.continueGesture(in) {
		if active {
			w.root.HitTest(in.Mouse, pe)
			if !w.beginGesture(in) {
				w.dispatch(in, f.Config)
			}
		} else {
			w.root.clearMouseOver(pe)
		}
	}

	w.root.Update(f)

	if w.overlayTween != nil {
		w.overlayTween.Update(float32(in.Delta.Seconds()))
		if w.overlayTween.Done {
			w.overlayTween = nil
		}
	}
}

// continueGesture advances a drag or resize. It reports whether the window
// consumed the pointer this frame.
func (w *Window) continueGesture(in *Input) bool {
	switch w.interaction {
	case InteractionDragging:
		if !in.Left.Held || in.Keys.Has(KeyEscape) {
			w.interaction = InteractionIdle
			return true
		}
		w.moveTo(in.Mouse.Add(w.grab))
		return true
	case InteractionResizing:
		if !in.Left.Held || in.Keys.Has(KeyEscape) {
			w.interaction = InteractionIdle
			return true
		}
		w.resizeTo(in.Mouse.Add(w.grab).Sub(w.root.Position()))
		return true
	}
	return false
}

// beginGesture starts a drag or resize when the press lands on the window.
func (w *Window) beginGesture(in *Input) bool {
	if w.locked || !in.Left.Pressed {
		return false
	}
	b := w.root.Bounds()
	if !b.ContainsPoint(in.Mouse) {
		return false
	}
	if w.Resizable && w.ResizeHandle > 0 &&
		in.Mouse.X >= b.Right()-w.ResizeHandle && in.Mouse.Y >= b.Bottom()-w.ResizeHandle {
		w.interaction = InteractionResizing
		w.grab = Vec2{b.Right(), b.Bottom()}.Sub(in.Mouse)
		return true
	}
	if !w.Draggable {
		return false
	}
	onTitle := in.Mouse.Y < b.Y+w.TitleHeight && w.root.deepestHovered() == w.root
	if in.Modifiers.Has(w.DragModifier) || onTitle {
		w.interaction = InteractionDragging
		w.grab = b.Pos().Sub(in.Mouse)
		return true
	}
	return false
}

func (w *Window) screen() Vec2 {
	if w.manager == nil {
		return Vec2{}
	}
	return w.manager.cfg.ScreenSize
}

// moveTo places the window at p, clamped to the screen and snapped to whole pixels.
func (w *Window) moveTo(p Vec2) {
	if scr := w.screen(); !scr.IsZero() {
		p.X = math.Min(math.Max(p.X, 0), math.Max(0, scr.X-w.root.Width()))
		p.Y = math.Min(math.Max(p.Y, 0), math.Max(0, scr.Y-w.root.Height()))
	}
	w.root.SetPosition(Vec2{math.Round(p.X), math.Round(p.Y)})
}

// resizeTo sets the window size, clamped to the screen, the root's
// Min/MaxSize, and snapped to whole pixels.
func (w *Window) resizeTo(s Vec2) {
	if scr := w.screen(); !scr.IsZero() {
		pos := w.root.Position()
		s.X = math.Min(s.X, scr.X-pos.X)
		s.Y = math.Min(s.Y, scr.Y-pos.Y)
	}
	w.root.SetSize(Vec2{math.Round(s.X), math.Round(s.Y)})
}

// dispatch classifies the frame's mouse input and cascades it through the
// hovered tree. A double click follows its primary click.
func (w *Window) dispatch(in *Input, cfg *Config) {
	if !w.root.mouseOver {
		return
	}
	w.events = classify(in, w.events[:0])
	for _, e := range w.events {
		if e.Kind == MouseDown {
			w.focusClaimed = false
		}
		w.root.Dispatch(e)
		if e.Kind == MouseDown && !w.focusClaimed {
			w.Focus(nil)
		}
		w.forward(e)
		if e.Kind != MouseClick {
			continue
		}
		if w.clickArmed && cfg != nil && e.Time-w.lastClick <= cfg.DoubleClickThreshold {
			w.clickArmed = false
			dbl := e
			dbl.Kind = MouseDoubleClick
			w.root.Dispatch(dbl)
			w.forward(dbl)
			continue
		}
		w.clickArmed = true
		w.lastClick = e.Time
	}
}

func (w *Window) forward(e MouseEvent) {
	if w.manager == nil || w.manager.sink == nil {
		return
	}
	var kind UIEventKind
	switch e.Kind {
	case MouseClick:
		kind = UIClick
	case MouseRightClick:
		kind = UIRightClick
	case MouseDoubleClick:
		kind = UIDoubleClick
	default:
		return
	}
	target := w.root.deepestHovered()
	if target == nil {
		return
	}
	w.manager.emit(UIEvent{
		Kind: kind, Window: w.ID(), NodeID: target.ID, Data: target.Data,
		Pos: e.Pos, Button: e.Button, Modifiers: e.Modifiers,
	})
}

func (w *Window) draw(dc *DrawContext, cfg *Config) {
	w.root.draw(dc, Vec2{})
	if w.overlay > 0 {
		c := cfg.LockOverlay
		c.A *= w.overlay
		dc.FillRect(w.root.Bounds(), c)
	}
}
