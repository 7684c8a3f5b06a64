package wicker

// clampAxis clamps v to [lo, hi]. hi == 0 means unbounded. When lo > hi
// the minimum wins.
func clampAxis(v, lo, hi float64) float64 {
	if hi > 0 && v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

func (n *Node) clampSize(s Vec2) Vec2 {
	return Vec2{
		clampAxis(s.X, n.minSize.X, n.maxSize.X),
		clampAxis(s.Y, n.minSize.Y, n.maxSize.Y),
	}
}

// --- Getters ---

func (n *Node) Bounds() Rect { return n.bounds }
func (n *Node) Position() Vec2 { return n.bounds.Pos() }
func (n *Node) Size() Vec2 { return n.bounds.Size() }
func (n *Node) X() float64 { return n.bounds.X }
func (n *Node) Y() float64 { return n.bounds.Y }
func (n *Node) Width() float64 { return n.bounds.Width }
func (n *Node) Height() float64 { return n.bounds.Height }
func (n *Node) Right() float64 { return n.bounds.Right() }
func (n *Node) Bottom() float64 { return n.bounds.Bottom() }
func (n *Node) Offset() Vec2 { return n.offset }
func (n *Node) MinSize() Vec2 { return n.minSize }
func (n *Node) MaxSize() Vec2 { return n.maxSize }
func (n *Node) Anchor() Anchor { return n.anchor }
func (n *Node) UsesAnchoring() bool { return n.useAnchoring }

// --- Setters ---
//
// Every setter is a no-op when the value does not change, so setting the
// same value twice produces exactly one notification sequence.

// SetSize sets width and height, clamped to [MinSize, MaxSize].
func (n *Node) SetSize(s Vec2) {
	n.setBounds(Rect{n.bounds.X, n.bounds.Y, s.X, s.Y})
}

// SetWidth sets the width, clamped to [MinSize.X, MaxSize.X].
func (n *Node) SetWidth(w float64) {
	n.SetSize(Vec2{w, n.bounds.Height})
}

// SetHeight sets the height, clamped to [MinSize.Y, MaxSize.Y].
func (n *Node) SetHeight(h float64) {
	n.SetSize(Vec2{n.bounds.Width, h})
}

// SetPosition sets the position in the parent's coordinate space. Anchored
// nodes with a parent take their position from the anchor and ignore it;
// move them with SetOffset.
func (n *Node) SetPosition(p Vec2) {
	if n.anchored() {
		return
	}
	n.setBounds(Rect{p.X, p.Y, n.bounds.Width, n.bounds.Height})
}

// SetX sets the horizontal position.
func (n *Node) SetX(x float64) {
	n.SetPosition(Vec2{x, n.bounds.Y})
}

// SetY sets the vertical position.
func (n *Node) SetY(y float64) {
	n.SetPosition(Vec2{n.bounds.X, y})
}

// SetBounds sets position and size in one step.
func (n *Node) SetBounds(r Rect) {
	n.setBounds(r)
}

// SetOffset sets the offset added to the anchored position.
func (n *Node) SetOffset(o Vec2) {
	if n.offset == o {
		return
	}
	n.offset = o
	n.applyAnchor()
}

// SetAnchor enables anchoring with the given anchor and re-derives the
// position from the parent's bounds.
func (n *Node) SetAnchor(a Anchor) {
	if n.anchor == a && n.useAnchoring {
		return
	}
	n.anchor = a
	n.useAnchoring = true
	n.applyAnchor()
}

// SetUseAnchoring toggles anchoring. A node with anchoring disabled ignores
// its anchor and offset when positioning.
func (n *Node) SetUseAnchoring(v bool) {
	if n.useAnchoring == v {
		return
	}
	n.useAnchoring = v
	n.applyAnchor()
}

// SetMinSize sets the minimum size and re-clamps the current size.
func (n *Node) SetMinSize(s Vec2) {
	n.minSize = s
	n.SetSize(n.Size())
}

// SetMaxSize sets the maximum size and re-clamps the current size. A zero
// component leaves that axis unbounded.
func (n *Node) SetMaxSize(s Vec2) {
	n.maxSize = s
	n.SetSize(n.Size())
}

// SetInheritChildrenSize makes the node size itself from its visible
// children's extents on the selected axes.
func (n *Node) SetInheritChildrenSize(width, height bool) {
	n.inheritChildrenWidth = width
	n.inheritChildrenHeight = height
	n.refitToChildren()
}

// --- State machine ---

// setBounds applies r (size clamped) and runs the propagation passes in
// order: inherit to children, size with parent, position with parent, limit
// to parent, then BoundsChanged and the anchor refresh.
func (n *Node) setBounds(r Rect) {
	s := n.clampSize(r.Size())
	r.Width, r.Height = s.X, s.Y

	old := n.bounds
	if r == old {
		return
	}
	n.bounds = r

	posDelta := r.Pos().Sub(old.Pos())
	sizeDelta := r.Size().Sub(old.Size())
	if !posDelta.IsZero() {
		n.PositionChanged.Emit(PositionEvent{Node: n, Old: old.Pos(), New: r.Pos()})
	}
	if !sizeDelta.IsZero() {
		n.SizeChanged.Emit(SizeEvent{Node: n, Old: old.Size(), New: r.Size()})
	}

	n.propagate(sizeDelta)

	n.BoundsChanged.Emit(BoundsEvent{Node: n, Old: old, New: r})
	n.refreshAnchors()
}

// propagate pushes a bounds change down to the children whose flags ask for it.
func (n *Node) propagate(sizeDelta Vec2) {
	if len(n.children) == 0 {
		return
	}
	kids := snapshot(n.children)

	// Children live in this node's space, so a move alone changes nothing
	// below it; inherited positions are fixed at register time.
	if sizeDelta.IsZero() {
		return
	}
	// (1) Inherit to children.
	for _, c := range kids {
		if c.InheritParentWidth || c.InheritParentHeight {
			c.inheritParentSize()
		}
	}
	// (2) Size with parent.
	for _, c := range kids {
		if c.SizeWithParent {
			c.SetSize(c.Size().Add(sizeDelta))
		}
	}
	// (3) Position with parent.
	for _, c := range kids {
		if c.PositionWithParent {
			c.SetPosition(c.Position().Add(sizeDelta))
		}
	}
	// (4) Limit to parent.
	for _, c := range kids {
		if c.LimitToParent {
			c.limitToParent()
		}
	}
}

// inheritFromParent applies every parent-driven flag at once. Used when the
// node is registered.
func (n *Node) inheritFromParent() {
	if n.parent == nil {
		return
	}
	if n.InheritParentWidth || n.InheritParentHeight {
		n.inheritParentSize()
	}
	if n.InheritParentX || n.InheritParentY {
		n.inheritParentPosition()
	}
	if n.LimitToParent {
		n.limitToParent()
	}
}

func (n *Node) inheritParentSize() {
	p := n.parent.Size()
	s := n.Size()
	if n.InheritParentWidth {
		s.X = p.X + n.InheritParentSizeModifier.X
	}
	if n.InheritParentHeight {
		s.Y = p.Y + n.InheritParentSizeModifier.Y
	}
	n.SetSize(s)
}

// inheritParentPosition places the node on the parent's origin plus the
// modifier. Positions are parent-relative, so the origin is zero.
func (n *Node) inheritParentPosition() {
	pos := n.Position()
	if n.InheritParentX {
		pos.X = n.InheritParentPositionModifier.X
	}
	if n.InheritParentY {
		pos.Y = n.InheritParentPositionModifier.Y
	}
	n.setBounds(Rect{pos.X, pos.Y, n.bounds.Width, n.bounds.Height})
}

func (n *Node) limitToParent() {
	room := n.parent.Size().Sub(n.Position())
	s := n.Size()
	if s.X > room.X {
		s.X = room.X
	}
	if s.Y > room.Y {
		s.Y = room.Y
	}
	n.SetSize(s)
}

func (n *Node) anchored() bool { return n.useAnchoring && n.parent != nil }

// applyAnchor re-derives the position from the anchor. It reports whether
// the position changed, in which case setBounds has already refreshed the
// subtree.
func (n *Node) applyAnchor() bool {
	if !n.anchored() {
		return false
	}
	p := n.anchor.position(n.parent.Size(), n.Size()).Add(n.offset)
	if p == n.Position() {
		return false
	}
	n.setBounds(Rect{p.X, p.Y, n.bounds.Width, n.bounds.Height})
	return true
}

// refreshAnchors recomputes this node's anchored position, then every
// descendant's, whether or not the intermediate nodes anchor themselves.
func (n *Node) refreshAnchors() {
	if n.applyAnchor() {
		return
	}
	for _, c := range n.children {
		c.refreshAnchors()
	}
}

// refitToChildren sizes the node from its visible children's extents when
// InheritChildrenSize is enabled. Right anchors grow leftward from the
// smallest child X, bottom anchors upward from the smallest child Y.
func (n *Node) refitToChildren() {
	if (!n.inheritChildrenWidth && !n.inheritChildrenHeight) || n.fitting {
		return
	}
	n.fitting = true
	defer func() { n.fitting = false }()

	var minX, minY, maxR, maxB float64
	first := true
	for _, c := range n.children {
		if !c.visible {
			continue
		}
		b := c.bounds
		if first {
			minX, minY, maxR, maxB = b.X, b.Y, b.Right(), b.Bottom()
			first = false
			continue
		}
		minX = min(minX, b.X)
		minY = min(minY, b.Y)
		maxR = max(maxR, b.Right())
		maxB = max(maxB, b.Bottom())
	}

	s := n.Size()
	if n.inheritChildrenWidth {
		s.X = maxR
		if n.anchor.growsLeft() {
			s.X = maxR - minX
		}
	}
	if n.inheritChildrenHeight {
		s.Y = maxB
		if n.anchor.growsUp() {
			s.Y = maxB - minY
		}
	}
	n.SetSize(s)
}

// snapshot copies a child slice so handlers may mutate the tree while the
// caller iterates.
func snapshot(nodes []*Node) []*Node {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]*Node, len(nodes))
	copy(out, nodes)
	return out
}
