package wicker

import (
	"math"
	"slices"

	"github.com/tanema/gween/ease"
)

// ListView is a scrolling, virtualized collection of ListItems laid out as a
// list, a row, or a wrapping grid. Only the renderable items (visible in the
// viewport and not filtered out) are drawn, updated, and hit-tested, so the
// per-frame cost follows the viewport, not the item count.
type ListView struct {
	Node
	itemSet

	IsMultiSelect   bool
	StickySelection bool
	SelectedBg      Color
	SelectedKey     string
	WheelStep       float64
	ScrollDuration  float32 // seconds; 0 scrolls instantly

	scroll      Vec2
	content     Vec2
	scrollTween *TweenGroup
	filter      func(*ListItem) bool
	selection   []*ListItem
	relayouting bool
	batch       int
	clearing    int
	dirty       bool

	SelectionChanged Signal[*ListView]
	Scrolled         Signal[Vec2]
}

// NewListView creates an empty list view of the given size.
func NewListView(id string, size Vec2) *ListView {
	l := &ListView{
		SelectedBg:     Color{0.25, 0.4, 0.7, 0.8},
		WheelStep:      30,
		ScrollDuration: 0.2,
	}
	l.init(l, id)
	l.ClipContent = true
	l.SetSize(size)
	l.SizeChanged.Connect(func(SizeEvent) { l.Reposition() })
	return l
}

// ScrollOffset implements Scroller.
func (l *ListView) ScrollOffset() Vec2 { return l.scroll }

// ContentSize returns the extent covered by the arranged items.
func (l *ListView) ContentSize() Vec2 { return l.content }

func (l *ListView) cascadeChildren() []*Node { return l.renderNodes }

// Add appends an item.
func (l *ListView) Add(el ListElement) *ListItem {
	return l.Insert(el, len(l.items))
}

// Insert places an item at index.
func (l *ListView) Insert(el ListElement, index int) *ListItem {
	it := el.Item()
	if it.list == l && it.group == nil {
		misuse("list item %q is already in list %q", it.ID, l.ID)
		return it
	}
	detachItem(it)
	index = min(max(index, 0), len(l.items))
	l.items = slices.Insert(l.items, index, it)
	l.Register(el)
	l.adopt(it)
	l.itemsChanged()
	return it
}

// Remove removes a top-level item. It reports whether the item was a member.
func (l *ListView) Remove(el ListElement) bool {
	it := el.Item()
	i := l.itemSet.indexOf(it)
	if i < 0 {
		misuse("list item %q is not in list %q", it.ID, l.ID)
		return false
	}
	l.items = slices.Delete(l.items, i, i+1)
	l.release(it)
	l.Unregister(el)
	l.itemsChanged()
	return true
}

// Clear removes every item. Sticky selection does not reselect while
// clearing.
func (l *ListView) Clear() {
	l.batch++
	l.clearing++
	for i := len(l.items) - 1; i >= 0; i-- {
		l.Remove(l.items[i])
	}
	l.clearing--
	l.endBatch()
}

// Batch runs fn with relayout suspended and relayouts once afterwards.
func (l *ListView) Batch(fn func()) {
	l.batch++
	defer l.endBatch()
	fn()
}

func (l *ListView) endBatch() {
	l.batch--
	if l.batch == 0 && l.dirty {
		l.itemsChanged()
	}
}

// adopt binds it, and any nested items, to the list.
func (l *ListView) adopt(it *ListItem) {
	it.list = l
	it.sizeSub = it.SizeChanged.Connect(func(SizeEvent) { l.Reposition() })
	if g := it.asGroup; g != nil {
		for _, c := range g.items {
			l.adopt(c)
		}
	}
}

// release unbinds it and its nested items, dropping them from the selection.
func (l *ListView) release(it *ListItem) {
	it.sizeSub.Remove()
	it.list = nil
	it.filteredOut = false
	if it.selected {
		l.dropSelected(it)
		l.selectionChanged()
	}
	if g := it.asGroup; g != nil {
		for _, c := range g.items {
			l.release(c)
		}
	}
}

// itemsChanged re-filters and relayouts after membership changes, and keeps
// a sticky selection non-empty.
func (l *ListView) itemsChanged() {
	if l.batch > 0 {
		l.dirty = true
		return
	}
	l.dirty = false
	if l.StickySelection && l.clearing == 0 && len(l.selection) == 0 {
		for _, it := range l.Flatten() {
			if l.Select(it) {
				break
			}
		}
	}
	if l.filter != nil {
		l.ApplyFilter()
		return
	}
	l.Reposition()
}

// Flatten returns every item, including nested group items, depth-first.
func (l *ListView) Flatten() []*ListItem { return l.flatten(nil) }

// --- Layout and virtualization ---

// Reposition arranges every item, clamps the scroll offset, and refreshes
// visibility. Item size changes and group toggles call it automatically.
func (l *ListView) Reposition() {
	if l.relayouting {
		return
	}
	if l.batch > 0 {
		l.dirty = true
		return
	}
	l.relayouting = true
	defer func() { l.relayouting = false }()

	l.content = l.arrange(Vec2{}, l.Width())
	l.clampScroll()
	l.RefreshVisibility()
}

// RefreshVisibility marks every item visible iff it overlaps the viewport
// and rebuilds the renderables.
func (l *ListView) RefreshVisibility() {
	view := Rect{l.scroll.X, l.scroll.Y, l.Width(), l.Height()}
	l.refresh(view, Vec2{}, true)
}

func (l *ListView) maxScroll() Vec2 {
	return Vec2{
		max(0, l.content.X-l.Width()),
		max(0, l.content.Y-l.Height()),
	}
}

func (l *ListView) clampScroll() {
	m := l.maxScroll()
	l.scroll.X = min(max(l.scroll.X, 0), m.X)
	l.scroll.Y = min(max(l.scroll.Y, 0), m.Y)
}

// Scroll returns the scroll offset.
func (l *ListView) Scroll() Vec2 { return l.scroll }

// SetScroll sets the scroll offset, clamped to the content.
func (l *ListView) SetScroll(v Vec2) {
	prev := l.scroll
	l.scroll = v
	l.clampScroll()
	if l.scroll == prev {
		return
	}
	l.RefreshVisibility()
	l.Scrolled.Emit(l.scroll)
}

// ScrollTo scrolls so that it is at the top of the viewport, or as close as
// the content allows. With animate set the offset eases there over
// ScrollDuration.
func (l *ListView) ScrollTo(el ListElement, animate bool) {
	it := el.Item()
	if it.list != l {
		return
	}
	target := it.Position()
	for g := it.group; g != nil; g = g.group {
		target = target.Add(g.Position())
	}
	if l.Layout == LayoutList {
		target.X = l.scroll.X
	}
	if !animate || l.ScrollDuration <= 0 {
		l.scrollTween = nil
		l.SetScroll(target)
		return
	}
	from := l.scroll
	l.scrollTween = newTweenGroup(
		[]float64{from.X, from.Y}, []float64{target.X, target.Y},
		l.ScrollDuration, ease.OutCubic,
		func(v [2]float64) { l.SetScroll(Vec2{v[0], v[1]}) },
	)
}

func (l *ListView) UpdateContent(f *Frame) {
	if l.scrollTween == nil {
		return
	}
	l.scrollTween.Update(float32(f.Input.Delta.Seconds()))
	if l.scrollTween.Done {
		l.scrollTween = nil
	}
}

func (l *ListView) HandleMouse(e MouseEvent) {
	if e.Kind != MouseWheel || l.WheelStep == 0 {
		return
	}
	l.scrollTween = nil
	step := math.Round(e.Wheel * l.WheelStep)
	if l.Layout == LayoutRow {
		l.SetScroll(Vec2{l.scroll.X - step, l.scroll.Y})
		return
	}
	l.SetScroll(Vec2{l.scroll.X, l.scroll.Y - step})
}

// --- Filtering ---

// SetFilter installs a predicate; nil removes filtering. Items the predicate
// rejects take no layout space.
func (l *ListView) SetFilter(fn func(*ListItem) bool) {
	l.filter = fn
	l.ApplyFilter()
}

// ApplyFilter re-evaluates the filter for every item. Groups enclosing a
// passing item are forced expanded and unfiltered so the item is reachable.
func (l *ListView) ApplyFilter() {
	flat := l.Flatten()
	for _, it := range flat {
		it.filteredOut = l.filter != nil && !l.filter(it)
	}
	if l.filter != nil {
		for _, it := range flat {
			if it.filteredOut {
				continue
			}
			for g := it.group; g != nil; g = g.group {
				g.filteredOut = false
				g.expanded = true
			}
		}
	}
	l.Reposition()
}

// --- Selection ---

// Selected returns the selected items in selection order.
func (l *ListView) Selected() []*ListItem { return slices.Clone(l.selection) }

// Select selects it. Single-select lists deselect everything else first.
// It reports whether the selection changed.
func (l *ListView) Select(el ListElement) bool {
	it := el.Item()
	if it.list != l || !it.Selectable || it.selected {
		return false
	}
	if !l.IsMultiSelect {
		for _, s := range l.selection {
			s.selected = false
		}
		l.selection = l.selection[:0]
	}
	it.selected = true
	l.selection = append(l.selection, it)
	l.selectionChanged()
	return true
}

// Deselect deselects it unless that would empty a sticky selection.
func (l *ListView) Deselect(el ListElement) bool {
	it := el.Item()
	if !it.selected || it.list != l {
		return false
	}
	if l.StickySelection && len(l.selection) == 1 {
		return false
	}
	l.dropSelected(it)
	l.selectionChanged()
	return true
}

// ForceDeselect deselects it regardless of stickiness.
func (l *ListView) ForceDeselect(el ListElement) bool {
	it := el.Item()
	if !it.selected || it.list != l {
		return false
	}
	l.dropSelected(it)
	l.selectionChanged()
	return true
}

// Toggle selects or deselects it.
func (l *ListView) Toggle(el ListElement) bool {
	if el.Item().selected {
		return l.Deselect(el)
	}
	return l.Select(el)
}

// ClearSelection force-deselects every item.
func (l *ListView) ClearSelection() {
	if len(l.selection) == 0 {
		return
	}
	for _, s := range l.selection {
		s.selected = false
	}
	l.selection = l.selection[:0]
	l.selectionChanged()
}

// SelectAll selects every selectable, unfiltered item of a multi-select list.
func (l *ListView) SelectAll() {
	if !l.IsMultiSelect {
		return
	}
	changed := false
	for _, it := range l.Flatten() {
		if it.Selectable && !it.selected && !it.filteredOut {
			it.selected = true
			l.selection = append(l.selection, it)
			changed = true
		}
	}
	if changed {
		l.selectionChanged()
	}
}

func (l *ListView) dropSelected(it *ListItem) {
	it.selected = false
	if i := slices.Index(l.selection, it); i >= 0 {
		l.selection = slices.Delete(l.selection, i, i+1)
	}
}

func (l *ListView) selectionChanged() {
	l.SelectionChanged.Emit(l)
	w := l.Window()
	if w == nil || w.manager == nil {
		return
	}
	ids := make([]string, len(l.selection))
	for i, s := range l.selection {
		ids[i] = s.ID
	}
	w.manager.emit(UIEvent{Kind: UISelectionChanged, Window: w.ID(), NodeID: l.ID, Data: ids})
}

func (l *ListView) itemClicked(it *ListItem, e MouseEvent) {
	if !it.Selectable {
		return
	}
	l.Toggle(it)
}

// --- Ordering ---

// Sort reorders the top-level items with a stable sort and relayouts.
func (l *ListView) Sort(cmp func(a, b *ListItem) int) {
	slices.SortStableFunc(l.items, cmp)
	l.Reposition()
}
