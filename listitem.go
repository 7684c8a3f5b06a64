package wicker

// ListLayout selects how a ListView or ListGroup places its items.
type ListLayout uint8

const (
	LayoutList ListLayout = iota // top to bottom
	LayoutRow                    // left to right
	LayoutGrid                   // left to right, wrapping at the available width
)

// ListElement is implemented by *ListItem, *ListGroup, and any widget that
// embeds one of them.
type ListElement interface {
	Element
	Item() *ListItem
}

// ListItem is an entry in a ListView. Custom items embed it and bind
// themselves with Bind, like any other widget.
type ListItem struct {
	Node
	Text string

	list        *ListView
	group       *ListGroup // enclosing group, nil at the top level
	asGroup     *ListGroup // set when this item is a group header
	filteredOut bool
	sizeSub     Subscription
}

// NewListItem creates a selectable item showing text.
func NewListItem(id, text string) *ListItem {
	it := &ListItem{Text: text}
	it.init(it, id)
	it.Selectable = true
	it.Style.Text = TextStyle{Color: ColorWhite, Middle: true, Padding: 4}
	return it
}

// Item implements ListElement.
func (it *ListItem) Item() *ListItem { return it }

// List returns the owning ListView, or nil.
func (it *ListItem) List() *ListView { return it.list }

// Group returns the enclosing group, or nil for top-level items.
func (it *ListItem) Group() *ListGroup { return it.group }

// AsGroup returns the group this item heads, or nil for plain items.
func (it *ListItem) AsGroup() *ListGroup { return it.asGroup }

// IsFilteredOut reports whether the list's filter rejected the item.
func (it *ListItem) IsFilteredOut() bool { return it.filteredOut }

func (it *ListItem) HandleMouse(e MouseEvent) {
	if e.Kind == MouseClick && it.list != nil {
		it.list.itemClicked(it, e)
	}
}

func (it *ListItem) DrawContent(dc *DrawContext, r Rect) {
	if it.selected && it.list != nil {
		dc.FillRect(r, dc.Color(it.list.SelectedKey, it.list.SelectedBg))
	}
	if it.Text != "" {
		dc.DrawText(r, it.Text, it.Style.Text)
	}
}

// PreferredSize is the measured size of the item's text.
func (it *ListItem) PreferredSize(m TextMeasurer) Vec2 {
	return m.MeasureText(it.Text, it.Style.Text, 0)
}

// itemSet is the ordered item collection shared by ListView and ListGroup.
type itemSet struct {
	items       []*ListItem
	renderables []*ListItem
	renderNodes []*Node
	placed      []*ListItem

	Layout ListLayout
	Margin float64
}

// Items returns the items in layout order. Callers must not modify the slice.
func (s *itemSet) Items() []*ListItem { return s.items }

// Renderables returns the visible, unfiltered items drawn and updated this
// frame. Callers must not modify the slice.
func (s *itemSet) Renderables() []*ListItem { return s.renderables }

// Len returns the number of direct items.
func (s *itemSet) Len() int { return len(s.items) }

func (s *itemSet) indexOf(it *ListItem) int {
	for i, x := range s.items {
		if x == it {
			return i
		}
	}
	return -1
}

// arrange positions the set's unfiltered items from origin and returns the
// bottom-right extent they cover. width bounds grid rows.
func (s *itemSet) arrange(origin Vec2, width float64) Vec2 {
	var prev *ListItem
	ext := origin
	s.placed = s.placed[:0]
	for _, it := range s.items {
		if it.filteredOut {
			continue
		}
		if g := it.asGroup; g != nil {
			g.arrangeChildren()
		}
		p := origin
		if prev != nil {
			switch s.Layout {
			case LayoutRow:
				p = Vec2{prev.Right() + s.Margin, origin.Y}
			case LayoutGrid:
				p.X = prev.Right() + s.Margin
				if p.X+it.Width() > origin.X+width {
					p.X = origin.X
				}
				// Below every placed item sharing any of this item's columns,
				// so uneven heights stay packed and mixed widths never overlap.
				for _, q := range s.placed {
					if q.X() < p.X+it.Width() && p.X < q.Right() {
						p.Y = max(p.Y, q.Bottom()+s.Margin)
					}
				}
			default:
				p = Vec2{origin.X, prev.Bottom() + s.Margin}
			}
		}
		it.SetPosition(p)
		s.placed = append(s.placed, it)
		prev = it
		ext.X = max(ext.X, it.Right())
		ext.Y = max(ext.Y, it.Bottom())
	}
	return ext
}

// refresh recomputes visibility against view, which is in the coordinate
// space of the set's container translated by origin. shown is false when an
// enclosing group is hidden or collapsed.
func (s *itemSet) refresh(view Rect, origin Vec2, shown bool) {
	s.renderables = s.renderables[:0]
	s.renderNodes = s.renderNodes[:0]
	for _, it := range s.items {
		b := it.bounds.Translate(origin)
		vis := shown && !it.filteredOut && b.Overlaps(view)
		it.SetVisible(vis)
		if g := it.asGroup; g != nil {
			g.refresh(view, b.Pos(), vis && g.expanded)
		}
		if vis {
			s.renderables = append(s.renderables, it)
			s.renderNodes = append(s.renderNodes, &it.Node)
		}
	}
}

// flatten appends every item depth-first, groups before their children.
func (s *itemSet) flatten(out []*ListItem) []*ListItem {
	for _, it := range s.items {
		out = append(out, it)
		if g := it.asGroup; g != nil {
			out = g.flatten(out)
		}
	}
	return out
}

// ListGroup is a collapsible list item holding nested items below a header.
// Its height is the header height while collapsed and covers its arranged
// children while expanded.
type ListGroup struct {
	ListItem
	itemSet

	HeaderHeight float64
	expanded     bool

	// AlwaysExpanded groups refuse to collapse unless they become empty.
	AlwaysExpanded bool
	// CanExpand overrides the default "has at least one item" check.
	CanExpand func(g *ListGroup) bool

	Toggled Signal[*ListGroup]
}

// NewListGroup creates a collapsed group with the given header height.
func NewListGroup(id, text string, headerHeight float64) *ListGroup {
	g := &ListGroup{HeaderHeight: headerHeight}
	g.Text = text
	g.init(g, id)
	g.asGroup = g
	g.Style.Text = TextStyle{Color: ColorWhite, Middle: true, Padding: 4}
	g.SetHeight(headerHeight)
	return g
}

// Item implements ListElement.
func (g *ListGroup) Item() *ListItem { return &g.ListItem }

// IsExpanded reports whether the group shows its items.
func (g *ListGroup) IsExpanded() bool { return g.expanded }

// Add appends an item to the group.
func (g *ListGroup) Add(el ListElement) *ListItem {
	return g.Insert(el, len(g.items))
}

// Insert places an item at index within the group.
func (g *ListGroup) Insert(el ListElement, index int) *ListItem {
	it := el.Item()
	if it.group == g {
		misuse("list item %q is already in group %q", it.ID, g.ID)
		return it
	}
	detachItem(it)
	index = min(max(index, 0), len(g.items))
	g.items = append(g.items, nil)
	copy(g.items[index+1:], g.items[index:])
	g.items[index] = it
	it.group = g
	g.Register(el)
	if g.list != nil {
		g.list.adopt(it)
		g.list.itemsChanged()
	} else {
		g.arrangeChildren()
	}
	return it
}

// Remove removes an item from the group. It reports whether the item was a member.
func (g *ListGroup) Remove(el ListElement) bool {
	it := el.Item()
	i := g.indexOf(it)
	if i < 0 {
		misuse("list item %q is not in group %q", it.ID, g.ID)
		return false
	}
	g.removeAt(i)
	return true
}

// Clear removes every item from the group.
func (g *ListGroup) Clear() {
	if len(g.items) == 0 {
		return
	}
	l := g.list
	if l != nil {
		l.batch++
		l.clearing++
	}
	for i := len(g.items) - 1; i >= 0; i-- {
		g.removeAt(i)
	}
	if l != nil {
		l.clearing--
		l.endBatch()
	}
}

func (g *ListGroup) removeAt(i int) {
	it := g.items[i]
	g.items = append(g.items[:i], g.items[i+1:]...)
	it.group = nil
	l := g.list
	if l != nil {
		l.release(it)
	}
	g.Unregister(it.Element())
	if len(g.items) == 0 && g.expanded {
		// Empty groups collapse even when AlwaysExpanded.
		g.expanded = false
		g.Toggled.Emit(g)
	}
	if l != nil {
		l.itemsChanged()
	} else {
		g.arrangeChildren()
	}
}

func (g *ListGroup) canExpand() bool {
	if g.CanExpand != nil {
		return g.CanExpand(g)
	}
	return len(g.items) > 0
}

// SetExpanded expands or collapses the group and relayouts the owning list.
// It reports whether the state changed.
func (g *ListGroup) SetExpanded(v bool) bool {
	if !g.setExpanded(v) {
		return false
	}
	g.relayout()
	return true
}

func (g *ListGroup) setExpanded(v bool) bool {
	if g.expanded == v {
		return false
	}
	if v && !g.canExpand() {
		return false
	}
	if !v && g.AlwaysExpanded && len(g.items) > 0 {
		return false
	}
	g.expanded = v
	g.Toggled.Emit(g)
	return true
}

// Toggle flips the expanded state.
func (g *ListGroup) Toggle() bool { return g.SetExpanded(!g.expanded) }

// SetExpandedRecursive applies v to the group and every nested group.
func (g *ListGroup) SetExpandedRecursive(v bool) {
	g.setExpandedRecursive(v)
	g.relayout()
}

func (g *ListGroup) setExpandedRecursive(v bool) {
	g.setExpanded(v)
	for _, it := range g.items {
		if sub := it.asGroup; sub != nil {
			sub.setExpandedRecursive(v)
		}
	}
}

// ExpandAll expands the group and every nested group.
func (g *ListGroup) ExpandAll() { g.SetExpandedRecursive(true) }

// CollapseAll collapses the group and every nested group.
func (g *ListGroup) CollapseAll() { g.SetExpandedRecursive(false) }

// Flatten returns every nested item depth-first.
func (g *ListGroup) Flatten() []*ListItem { return g.flatten(nil) }

func (g *ListGroup) relayout() {
	if g.list != nil {
		g.list.Reposition()
		return
	}
	g.arrangeChildren()
}

// arrangeChildren lays out the group's items below the header and sets the
// group's height.
func (g *ListGroup) arrangeChildren() {
	h := g.HeaderHeight
	if g.expanded {
		ext := g.arrange(Vec2{0, g.HeaderHeight}, g.Width())
		h = max(h, ext.Y)
	}
	g.SetHeight(h)
}

func (g *ListGroup) cascadeChildren() []*Node {
	if !g.expanded {
		return nil
	}
	return g.renderNodes
}

func (g *ListGroup) HandleMouse(e MouseEvent) {
	if e.Kind != MouseClick || e.Local.Y >= g.HeaderHeight {
		return
	}
	if e.Modifiers.Has(ModShift | ModAlt) {
		g.SetExpandedRecursive(!g.expanded)
	} else {
		g.Toggle()
	}
	if g.list != nil && g.Selectable {
		g.list.itemClicked(&g.ListItem, e)
	}
}

func (g *ListGroup) DrawContent(dc *DrawContext, r Rect) {
	hr := Rect{r.X, r.Y, r.Width, g.HeaderHeight}
	if g.selected && g.list != nil {
		dc.FillRect(hr, dc.Color(g.list.SelectedKey, g.list.SelectedBg))
	}
	marker := "+ "
	if g.expanded {
		marker = "- "
	}
	dc.DrawText(hr, marker+g.Text, g.Style.Text)
}

// detachItem removes it from whatever list or group currently holds it.
func detachItem(it *ListItem) {
	switch {
	case it.group != nil:
		it.group.Remove(it)
	case it.list != nil:
		it.list.Remove(it)
	}
}
