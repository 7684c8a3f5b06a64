package wicker

import (
	"errors"
	"fmt"
	"slices"
)

// UIEventKind classifies events forwarded to an EventSink.
type UIEventKind uint8

const (
	UIClick UIEventKind = iota
	UIRightClick
	UIDoubleClick
	UISelectionChanged
	UIWindowOpened
	UIWindowClosed
)

var uiEventNames = [...]string{
	"Click", "RightClick", "DoubleClick", "SelectionChanged", "WindowOpened", "WindowClosed",
}

func (k UIEventKind) String() string {
	if int(k) < len(uiEventNames) {
		return uiEventNames[k]
	}
	return "UIEventKind(?)"
}

// UIEvent is a flattened, pointer-free event suitable for game systems that
// should not hold on to nodes.
type UIEvent struct {
	Kind      UIEventKind
	Window    string
	NodeID    string
	Data      any
	Pos       Vec2
	Button    MouseButton
	Modifiers KeyModifiers
}

// EventSink receives UIEvents from a Manager. See the ecs package for a
// donburi-backed implementation.
type EventSink interface {
	EmitEvent(UIEvent)
}

// Manager owns the open windows, routes host input to them and draws them
// back to front. Windows are isolated: a panic inside one window's update
// or draw is logged and the remaining windows still run.
type Manager struct {
	cfg      Config
	catalog  *ResourceCatalog
	measurer TextMeasurer
	windows  []*Window
	sink     EventSink

	tooltip     string
	tooltipNode *Label

	injectQueue []syntheticInput
	held        bool // button state of the injected stream
	script      *ScriptRunner
	screenshots []string
}

// NewManager creates a manager. A nil catalog is replaced by an empty frozen
// one and a nil measurer by a MonospaceMeasurer.
func NewManager(cfg Config, catalog *ResourceCatalog, measurer TextMeasurer) *Manager {
	if catalog == nil {
		catalog = NewResourceCatalog()
		catalog.Freeze()
	}
	if measurer == nil {
		measurer = NewMonospaceMeasurer()
	}
	m := &Manager{cfg: cfg, catalog: catalog, measurer: measurer}
	m.tooltipNode = NewLabel("tooltip", "")
	m.tooltipNode.Style = cfg.TooltipStyle
	m.tooltipNode.AutoSize = true
	return m
}

// Config returns the manager's configuration. Changes apply from the next frame.
func (m *Manager) Config() *Config { return &m.cfg }

// Catalog returns the resource catalog shared by every window.
func (m *Manager) Catalog() *ResourceCatalog { return m.catalog }

// Measurer returns the text measurer shared by every window.
func (m *Manager) Measurer() TextMeasurer { return m.measurer }

// SetEventSink forwards clicks, selection changes and window lifecycle
// events to sink. Pass nil to stop forwarding.
func (m *Manager) SetEventSink(sink EventSink) { m.sink = sink }

func (m *Manager) emit(e UIEvent) {
	if m.sink != nil {
		m.sink.EmitEvent(e)
	}
}

// Windows returns the open windows, bottom first.
func (m *Manager) Windows() []*Window { return m.windows }

// Window returns the open window with the given root ID, or nil.
func (m *Manager) Window(id string) *Window {
	for _, w := range m.windows {
		if w.ID() == id {
			return w
		}
	}
	return nil
}

// Open opens w on top of the other windows. PreOpen runs while the window is
// Opening and before it joins the window list; Opened runs once it is Open.
func (m *Manager) Open(w *Window) error {
	if w == nil {
		return errors.New("wicker: open nil window")
	}
	if w.state != WindowClosed {
		return fmt.Errorf("open window %q: %w", w.ID(), ErrWindowNotClosed)
	}
	w.manager = m
	w.state = WindowOpening
	w.PreOpen.Emit(w)
	if w.state != WindowOpening {
		// Closed by a PreOpen handler.
		return nil
	}
	m.windows = append(m.windows, w)
	w.state = WindowOpen
	w.Opened.Emit(w)
	m.emit(UIEvent{Kind: UIWindowOpened, Window: w.ID()})
	return nil
}

// Close closes w. The window leaves the window list before PreClose fires,
// so neither PreClose nor Closed handlers see it in Windows, and Closed
// handlers may reopen it.
func (m *Manager) Close(w *Window) {
	switch w.state {
	case WindowOpening:
		w.state = WindowClosed
		w.manager = nil
		return
	case WindowOpen:
	default:
		return
	}
	if i := slices.Index(m.windows, w); i >= 0 {
		m.windows = slices.Delete(m.windows, i, i+1)
	}
	w.state = WindowClosing
	w.PreClose.Emit(w)
	w.interaction = InteractionIdle
	w.Focus(nil)
	w.root.clearMouseOver(MouseEvent{})
	w.state = WindowClosed
	w.manager = nil
	w.Closed.Emit(w)
	m.emit(UIEvent{Kind: UIWindowClosed, Window: w.ID()})
}

// BringToFront moves w to the top of the stacking order.
func (m *Manager) BringToFront(w *Window) {
	i := slices.Index(m.windows, w)
	if i < 0 || i == len(m.windows)-1 {
		return
	}
	m.windows = append(slices.Delete(m.windows, i, i+1), w)
}

// activeWindow returns the window that owns the pointer this frame: the one
// being dragged or resized, else the topmost visible window under the mouse.
func (m *Manager) activeWindow(p Vec2) *Window {
	for _, w := range m.windows {
		if w.interaction != InteractionIdle {
			return w
		}
	}
	for _, w := range slices.Backward(m.windows) {
		if w.root.visible && w.root.bounds.ContainsPoint(p) {
			return w
		}
	}
	return nil
}

// Update runs one frame. Queued injected input replaces the host's pointer
// state for the frame.
func (m *Manager) Update(in Input) {
	if m.script != nil {
		m.script.step(m)
	}
	m.applyInjected(&in)

	active := m.activeWindow(in.Mouse)
	if active != nil && (in.Left.Pressed || in.Right.Pressed) {
		m.BringToFront(active)
	}

	for _, w := range slices.Clone(m.windows) {
		if w.state != WindowOpen {
			continue
		}
		f := Frame{Input: &in, Catalog: m.catalog, Measurer: m.measurer, Config: &m.cfg, Window: w}
		m.guard(w, "update", func() { w.update(&f, w == active) })
	}

	m.updateTooltip(active, &in)
}

func (m *Manager) updateTooltip(active *Window, in *Input) {
	m.tooltip = ""
	if active == nil || active.state != WindowOpen || active.interaction != InteractionIdle {
		return
	}
	for n := active.root.deepestHovered(); n != nil; n = n.parent {
		if n.Tooltip != "" {
			m.tooltip = n.Tooltip
			break
		}
	}
	if m.tooltip == "" {
		return
	}
	lbl := m.tooltipNode
	lbl.Style = m.cfg.TooltipStyle
	lbl.SetText(m.tooltip)
	lbl.Fit(m.measurer)
	p := in.Mouse.Add(m.cfg.TooltipOffset)
	if scr := m.cfg.ScreenSize; !scr.IsZero() {
		if p.X+lbl.Width() > scr.X {
			p.X = in.Mouse.X - lbl.Width()
		}
		if p.Y+lbl.Height() > scr.Y {
			p.Y = in.Mouse.Y - lbl.Height()
		}
	}
	lbl.SetPosition(p)
}

// Tooltip returns the tooltip text shown this frame, if any.
func (m *Manager) Tooltip() string { return m.tooltip }

// Draw draws every open window back to front, then the tooltip.
func (m *Manager) Draw(s Surface) {
	ts := &trackedSurface{Surface: s}
	dc := DrawContext{Surface: ts, Catalog: m.catalog, Measurer: m.measurer}
	for _, w := range m.windows {
		m.guard(w, "draw", func() { w.draw(&dc, &m.cfg) })
		// A panic can leave clips pushed.
		for ts.depth > 0 {
			ts.PopClip()
		}
	}
	if m.tooltip != "" {
		m.tooltipNode.draw(&dc, Vec2{})
	}
}

// guard runs fn, containing any panic to window w.
func (m *Manager) guard(w *Window, op string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logf("window %q: %s: recovered: %v", w.ID(), op, r)
		}
	}()
	fn()
}

// trackedSurface counts open clips so a failed window can be unwound.
type trackedSurface struct {
	Surface
	depth int
}

func (t *trackedSurface) PushClip(r Rect) {
	t.depth++
	t.Surface.PushClip(r)
}

func (t *trackedSurface) PopClip() {
	if t.depth == 0 {
		return
	}
	t.depth--
	t.Surface.PopClip()
}
