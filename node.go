package wicker

// Element is implemented by every widget built on a Node. Widgets embed a
// Node and bind themselves to it so the engine can reach their hooks.
type Element interface {
	Base() *Node
}

// Drawable widgets draw their own content after the node's background and
// before its children.
type Drawable interface {
	DrawContent(dc *DrawContext, r Rect)
}

// OverlayDrawer widgets draw on top of their children.
type OverlayDrawer interface {
	DrawOverlay(dc *DrawContext, r Rect)
}

// Updatable widgets run per-frame logic during Update.
type Updatable interface {
	UpdateContent(f *Frame)
}

// InputHandler widgets react to mouse events raised on their node, before
// the node's signals fire.
type InputHandler interface {
	HandleMouse(e MouseEvent)
}

// Sizable widgets report a preferred size for auto-sizing.
type Sizable interface {
	PreferredSize(m TextMeasurer) Vec2
}

// Scroller widgets offset their children's coordinate space.
type Scroller interface {
	ScrollOffset() Vec2
}

// cascader widgets restrict hit-testing, drawing and updating to a subset
// of their children (virtualization).
type cascader interface {
	cascadeChildren() []*Node
}

// SizeEvent reports a size change.
type SizeEvent struct {
	Node     *Node
	Old, New Vec2
}

// PositionEvent reports a position change.
type PositionEvent struct {
	Node     *Node
	Old, New Vec2
}

// BoundsEvent is raised after every bounds change, once propagation to
// children has completed.
type BoundsEvent struct {
	Node     *Node
	Old, New Rect
}

// ChildEvent reports a child being registered or unregistered.
type ChildEvent struct {
	Parent, Child *Node
	Added         bool
}

// nodeUIDCounter is only touched from the frame goroutine.
var nodeUIDCounter uint32

func nextNodeUID() uint32 {
	nodeUIDCounter++
	return nodeUIDCounter
}

// Node is the base retained-mode UI element: a rectangle in its parent's
// coordinate space with size constraints, anchoring, propagation flags,
// children, and event signals.
//
// Nodes are created detached. Register/Unregister establish and break the
// parent-child link together with the subscriptions that go with it.
type Node struct {
	// Identity
	ID      string
	uid     uint32
	Data    any
	Tooltip string
	Style   Style

	// Hierarchy
	parent   *Node
	children []*Node
	self     Element
	window   *Window // set on window roots only

	// Geometry
	bounds       Rect
	minSize      Vec2
	maxSize      Vec2
	offset       Vec2
	anchor       Anchor
	useAnchoring bool

	// Propagation. InheritParentWidth/Height copy the parent's size (plus the
	// modifier) whenever it changes. InheritParentX/Y pin the axis to the
	// parent's origin plus the modifier, which in parent space is just the
	// modifier.
	InheritParentX                bool
	InheritParentY                bool
	InheritParentPositionModifier Vec2
	InheritParentWidth            bool
	InheritParentHeight           bool
	InheritParentSizeModifier     Vec2
	SizeWithParent                bool // add the parent's size delta to this size
	PositionWithParent            bool // add the parent's size delta to this position
	LimitToParent                 bool // clamp size to the room left in the parent
	inheritChildrenWidth          bool
	inheritChildrenHeight         bool
	fitting                       bool

	// State
	visible     bool
	enabled     bool
	locked      bool
	selected    bool
	Selectable  bool
	IgnoreMouse bool
	ClipContent bool
	mouseOver   bool
	hitStamp    uint64

	// Signals
	SizeChanged       Signal[SizeEvent]
	PositionChanged   Signal[PositionEvent]
	BoundsChanged     Signal[BoundsEvent]
	VisibilityChanged Signal[*Node]
	ChildrenChanged   Signal[ChildEvent]
	MouseEntered      Signal[MouseEvent]
	MouseLeft         Signal[MouseEvent]
	Hovered           Signal[MouseEvent]
	Clicked           Signal[MouseEvent]
	RightClicked      Signal[MouseEvent]
	DoubleClicked     Signal[MouseEvent]
	MouseDown         Signal[MouseEvent]
	MouseUp           Signal[MouseEvent]
	MouseHeld         Signal[MouseEvent]
	Wheel             Signal[MouseEvent]

	// parentSubs are the subscriptions the current parent holds on this node.
	parentSubs subscriptions
}

// NewPanel creates a detached, visible, enabled node with no size.
func NewPanel(id string) *Node {
	n := &Node{}
	n.init(nil, id)
	return n
}

// init sets the defaults shared by all constructors and binds the node to
// the widget embedding it. self may be nil for plain panels.
func (n *Node) init(self Element, id string) {
	n.ID = id
	n.uid = nextNodeUID()
	n.self = self
	n.visible = true
	n.enabled = true
}

// Bind attaches a custom widget to its embedded node. Widgets defined
// outside this package call it once from their constructor:
//
//	w := &Meter{}
//	w.Node.Bind(w, "meter")
func (n *Node) Bind(self Element, id string) {
	n.init(self, id)
}

// Base returns n. It makes *Node an Element.
func (n *Node) Base() *Node { return n }

// Element returns the widget bound to n, or n itself for plain panels.
func (n *Node) Element() Element {
	if n.self != nil {
		return n.self
	}
	return n
}

// --- Tree manipulation ---

// Register appends child to this node's children and wires the parent-child
// subscriptions. If child already has another parent it is unregistered from
// it first. Panics if child is nil or an ancestor of this node (cycle).
// Registering a child twice is a caller bug: it panics in debug mode and is
// ignored otherwise.
func (n *Node) Register(el Element) {
	if el == nil {
		panic("wicker: cannot register nil child")
	}
	child := el.Base()
	if child == nil {
		panic("wicker: cannot register nil child")
	}
	if isAncestor(child, n) {
		panic("wicker: registering child would create a cycle")
	}
	if child.parent == n {
		misuse("Register: node %q is already a child of %q", child.ID, n.ID)
		return
	}
	if child.parent != nil {
		child.parent.Unregister(child)
	}
	n.attach(child, len(n.children))
}

// RegisterAt inserts child at the given index. Same reparenting and cycle
// rules as Register.
func (n *Node) RegisterAt(el Element, index int) {
	if el == nil || el.Base() == nil {
		panic("wicker: cannot register nil child")
	}
	child := el.Base()
	if isAncestor(child, n) {
		panic("wicker: registering child would create a cycle")
	}
	if child.parent == n {
		misuse("RegisterAt: node %q is already a child of %q", child.ID, n.ID)
		return
	}
	if child.parent != nil {
		child.parent.Unregister(child)
	}
	if index < 0 || index > len(n.children) {
		panic("wicker: child index out of range")
	}
	n.attach(child, index)
}

func (n *Node) attach(child *Node, index int) {
	child.parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child

	child.parentSubs.add(child.BoundsChanged.Connect(func(BoundsEvent) { n.refitToChildren() }))
	child.parentSubs.add(child.VisibilityChanged.Connect(func(*Node) { n.refitToChildren() }))

	child.inheritFromParent()
	child.refreshAnchors()

	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
	n.ChildrenChanged.Emit(ChildEvent{Parent: n, Child: child, Added: true})
	n.refitToChildren()
}

// Unregister detaches child from this node. Subscriptions are revoked before
// the parent reference is cleared, so no notification reaches a detached
// child. Removing a node that is not a child is a caller bug: it panics in
// debug mode and is ignored otherwise.
func (n *Node) Unregister(el Element) {
	if el == nil || el.Base() == nil {
		return
	}
	child := el.Base()
	if child.parent != n {
		misuse("Unregister: node %q is not a child of %q", child.ID, n.ID)
		return
	}
	child.parentSubs.removeAll()
	n.removeChildByPtr(child)
	child.parent = nil
	child.clearMouseOver(MouseEvent{})

	n.ChildrenChanged.Emit(ChildEvent{Parent: n, Child: child, Added: false})
	n.refitToChildren()
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.parent == nil {
		return
	}
	n.parent.Unregister(n)
}

// UnregisterAll detaches every child, last first.
func (n *Node) UnregisterAll() {
	for i := len(n.children) - 1; i >= 0; i-- {
		n.Unregister(n.children[i])
	}
}

// Parent returns the parent node, or nil for roots.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// SetChildIndex moves child to a new index among its siblings. Later
// children draw on top.
func (n *Node) SetChildIndex(el Element, index int) {
	child := el.Base()
	if child.parent != n {
		panic("wicker: child's parent is not this node")
	}
	nc := len(n.children)
	if index < 0 || index >= nc {
		panic("wicker: child index out of range")
	}
	oldIndex := n.indexOf(child)
	if oldIndex == index {
		return
	}
	// Shift elements to fill the gap and open the target slot.
	if oldIndex < index {
		copy(n.children[oldIndex:], n.children[oldIndex+1:index+1])
	} else {
		copy(n.children[index+1:], n.children[index:oldIndex])
	}
	n.children[index] = child
}

// BringToFront moves this node to the end of its parent's children.
func (n *Node) BringToFront() {
	if n.parent == nil {
		return
	}
	n.parent.SetChildIndex(n, len(n.parent.children)-1)
}

// FindByID returns the first node in this subtree (depth-first, including n)
// whose ID equals id.
func (n *Node) FindByID(id string) *Node {
	if n.ID == id {
		return n
	}
	for _, c := range n.children {
		if found := c.FindByID(id); found != nil {
			return found
		}
	}
	return nil
}

// Window returns the window owning this node's tree, or nil when the tree is
// not open in a window.
func (n *Node) Window() *Window {
	root := n
	for root.parent != nil {
		root = root.parent
	}
	return root.window
}

// --- State ---

// IsVisible reports whether the node draws and receives input.
func (n *Node) IsVisible() bool { return n.visible }

// SetVisible shows or hides the node. Hiding clears hover state in the subtree.
func (n *Node) SetVisible(v bool) {
	if n.visible == v {
		return
	}
	n.visible = v
	if !v {
		n.clearMouseOver(MouseEvent{})
	}
	n.VisibilityChanged.Emit(n)
}

// IsEnabled reports whether the node raises input events.
func (n *Node) IsEnabled() bool { return n.enabled }

// SetEnabled enables or disables input events on this node. Disabled nodes
// still cascade to their children.
func (n *Node) SetEnabled(v bool) { n.enabled = v }

// IsLocked reports whether input is blocked for this node and its subtree.
func (n *Node) IsLocked() bool { return n.locked }

// SetLocked blocks or unblocks input for this node and its subtree.
func (n *Node) SetLocked(v bool) { n.locked = v }

// IsSelected reports the selected flag.
func (n *Node) IsSelected() bool { return n.selected }

// IsMouseOver reports whether the last hit test found the pointer over n.
func (n *Node) IsMouseOver() bool { return n.mouseOver }

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node (or node itself).
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// removeChildByPtr removes child from n.children without clearing child.parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	i := n.indexOf(child)
	if i < 0 {
		return
	}
	copy(n.children[i:], n.children[i+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
}

// activeChildren returns the children that take part in drawing, updating,
// and hit-testing: every child for plain nodes, the renderable subset for
// virtualizing widgets.
func (n *Node) activeChildren() []*Node {
	if c, ok := n.self.(cascader); ok {
		return c.cascadeChildren()
	}
	return n.children
}

// scrollOffset returns the offset applied to the children's coordinate space.
func (n *Node) scrollOffset() Vec2 {
	if s, ok := n.self.(Scroller); ok {
		return s.ScrollOffset()
	}
	return Vec2{}
}

// childOrigin converts a point in n's parent space to n's child space.
func (n *Node) childOrigin() Vec2 {
	return n.Position().Sub(n.scrollOffset())
}

// ScreenPosition returns the node's top-left corner in the space of its
// root's parent (the screen, for window roots).
func (n *Node) ScreenPosition() Vec2 {
	p := n.Position()
	for a := n.parent; a != nil; a = a.parent {
		p = p.Add(a.childOrigin())
	}
	return p
}

// ScreenBounds is Bounds translated to screen space.
func (n *Node) ScreenBounds() Rect {
	p := n.ScreenPosition()
	return Rect{p.X, p.Y, n.bounds.Width, n.bounds.Height}
}
