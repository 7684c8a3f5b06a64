package wicker

import "time"

// ButtonState is one mouse button's state for the current frame.
type ButtonState struct {
	Pressed  bool // went down this frame
	Released bool // went up this frame
	Held     bool // is down
}

// Keys is a bitmask of editing keys that went down this frame.
type Keys uint16

const (
	KeyBackspace Keys = 1 << iota
	KeyDelete
	KeyEnter
	KeyEscape
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
)

// Has reports whether every key in k2 is set.
func (k Keys) Has(k2 Keys) bool {
	return k2 != 0 && k&k2 == k2
}

// Input is the host's input snapshot for one frame. The engine never reads
// devices itself.
type Input struct {
	Mouse     Vec2 // screen space, top-left origin
	Left      ButtonState
	Right     ButtonState
	Middle    ButtonState
	Wheel     float64 // positive scrolls up
	Modifiers KeyModifiers
	Chars     []rune // text typed this frame
	Keys      Keys
	Time      time.Duration // monotonic frame timestamp
	Delta     time.Duration // time since the previous frame
}

// anyHeld reports whether the left or right button is down.
func (in *Input) anyHeld() bool {
	return in.Left.Held || in.Right.Held
}

// MouseEventKind classifies a mouse event.
type MouseEventKind uint8

const (
	MouseClick       MouseEventKind = iota // left button released
	MouseRightClick                        // right button released
	MouseDoubleClick                       // second click within the threshold
	MouseDown                              // a button went down
	MouseUp                                // a button went up
	MouseHeld                              // a button is down (every frame)
	MouseWheel                             // wheel moved
	MouseEnter                             // pointer entered the node
	MouseLeave                             // pointer left the node
	MouseHover                             // pointer is over the node (every frame)
)

var mouseEventNames = [...]string{
	"Click", "RightClick", "DoubleClick", "Down", "Up", "Held", "Wheel", "Enter", "Leave", "Hover",
}

func (k MouseEventKind) String() string {
	if int(k) < len(mouseEventNames) {
		return mouseEventNames[k]
	}
	return "MouseEventKind(?)"
}

// MouseEvent carries mouse event data.
type MouseEvent struct {
	Kind      MouseEventKind
	Node      *Node   // node raising the event
	Pos       Vec2    // screen space
	Local     Vec2    // relative to Node's top-left corner
	Button    MouseButton
	Held      bool // a button is held down
	Wheel     float64
	Modifiers KeyModifiers
	Time      time.Duration
}

// classify resolves the frame's mouse input into the ordered list of events
// dispatched to the hovered tree. Double clicks are added by the window.
func classify(in *Input, buf []MouseEvent) []MouseEvent {
	base := MouseEvent{Pos: in.Mouse, Held: in.anyHeld(), Modifiers: in.Modifiers, Time: in.Time}
	add := func(kind MouseEventKind, b MouseButton) {
		e := base
		e.Kind = kind
		e.Button = b
		buf = append(buf, e)
	}
	switch {
	case in.Left.Pressed:
		add(MouseDown, MouseButtonLeft)
	case in.Right.Pressed:
		add(MouseDown, MouseButtonRight)
	case in.Middle.Pressed:
		add(MouseDown, MouseButtonMiddle)
	}
	if in.Left.Released {
		add(MouseClick, MouseButtonLeft)
	}
	if in.Right.Released {
		add(MouseRightClick, MouseButtonRight)
	}
	switch {
	case in.Left.Released:
		add(MouseUp, MouseButtonLeft)
	case in.Right.Released:
		add(MouseUp, MouseButtonRight)
	case in.Middle.Released:
		add(MouseUp, MouseButtonMiddle)
	}
	switch {
	case in.Left.Held:
		add(MouseHeld, MouseButtonLeft)
	case in.Right.Held:
		add(MouseHeld, MouseButtonRight)
	}
	if in.Wheel != 0 {
		e := base
		e.Kind = MouseWheel
		e.Wheel = in.Wheel
		buf = append(buf, e)
	}
	return buf
}

// hitStampCounter is only touched from the frame goroutine.
var hitStampCounter uint64

// HitTest updates mouse-over state for this subtree. point is in the space
// of n's parent (the screen, for window roots). Returns whether the point
// lies within n's bounds.
func (n *Node) HitTest(point Vec2, e MouseEvent) bool {
	hitStampCounter++
	return n.hitTest(point, e, hitStampCounter)
}

func (n *Node) hitTest(point Vec2, e MouseEvent, stamp uint64) bool {
	n.hitStamp = stamp
	over := n.visible && n.bounds.ContainsPoint(point)
	if !over {
		n.clearMouseOver(e)
		return false
	}
	n.setMouseOver(e)

	if !n.CanCascade() {
		for _, c := range n.children {
			c.clearMouseOver(e)
		}
		return true
	}
	local := point.Sub(n.childOrigin())
	for _, c := range snapshot(n.activeChildren()) {
		c.hitTest(local, e, stamp)
	}
	// Children skipped by virtualization lose hover too.
	for _, c := range n.children {
		if c.hitStamp != stamp && c.mouseOver {
			c.clearMouseOver(e)
		}
	}
	return true
}

// CanCascade reports whether input currently flows from n to its children.
func (n *Node) CanCascade() bool {
	return n.visible && n.mouseOver && !n.IgnoreMouse && !n.locked
}

func (n *Node) acceptsInput() bool {
	return n.enabled && !n.IgnoreMouse && !n.locked
}

func (n *Node) setMouseOver(e MouseEvent) {
	if !n.mouseOver {
		n.mouseOver = true
		if n.acceptsInput() {
			e.Kind = MouseEnter
			n.raise(e)
		}
	}
	if n.acceptsInput() {
		e.Kind = MouseHover
		n.raise(e)
	}
}

// clearMouseOver clears hover state in the subtree, raising MouseLeave on
// every node that was hovered.
func (n *Node) clearMouseOver(e MouseEvent) {
	if !n.mouseOver {
		return
	}
	n.mouseOver = false
	if n.acceptsInput() {
		e.Kind = MouseLeave
		n.raise(e)
	}
	for _, c := range snapshot(n.children) {
		c.clearMouseOver(e)
	}
}

// Dispatch offers e to n and then cascades it to every hovered child that can
// accept input, so a parent and all qualifying descendants observe the same
// logical event. The child list is snapshotted before iterating.
func (n *Node) Dispatch(e MouseEvent) {
	if !n.visible || !n.mouseOver {
		return
	}
	if n.acceptsInput() {
		n.raise(e)
	}
	if !n.CanCascade() {
		return
	}
	for _, c := range snapshot(n.activeChildren()) {
		c.Dispatch(e)
	}
}

// raise fires e on this node: the widget hook first, then the signal.
func (n *Node) raise(e MouseEvent) {
	e.Node = n
	e.Local = e.Pos.Sub(n.ScreenPosition())
	if h, ok := n.self.(InputHandler); ok {
		h.HandleMouse(e)
	}
	switch e.Kind {
	case MouseClick:
		n.Clicked.Emit(e)
	case MouseRightClick:
		n.RightClicked.Emit(e)
	case MouseDoubleClick:
		n.DoubleClicked.Emit(e)
	case MouseDown:
		n.MouseDown.Emit(e)
	case MouseUp:
		n.MouseUp.Emit(e)
	case MouseHeld:
		n.MouseHeld.Emit(e)
	case MouseWheel:
		n.Wheel.Emit(e)
	case MouseEnter:
		n.MouseEntered.Emit(e)
	case MouseLeave:
		n.MouseLeft.Emit(e)
	case MouseHover:
		n.Hovered.Emit(e)
	}
}

// deepestHovered returns the deepest hovered node in n's subtree, following
// the last hovered child at each level (the one drawn on top).
func (n *Node) deepestHovered() *Node {
	if !n.mouseOver {
		return nil
	}
	cur := n
	for {
		var next *Node
		kids := cur.activeChildren()
		for i := len(kids) - 1; i >= 0; i-- {
			if kids[i].mouseOver && kids[i].visible {
				next = kids[i]
				break
			}
		}
		if next == nil || !cur.CanCascade() {
			return cur
		}
		cur = next
	}
}
