package wicker

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

// --- Constructor defaults ---

func TestNewPanelDefaults(t *testing.T) {
	n := NewPanel("p")
	if n.ID != "p" {
		t.Errorf("ID = %q, want %q", n.ID, "p")
	}
	if n.uid == 0 {
		t.Error("uid should be non-zero")
	}
	if !n.IsVisible() || !n.IsEnabled() {
		t.Error("new panel should be visible and enabled")
	}
	if n.Parent() != nil || n.NumChildren() != 0 {
		t.Error("new panel should be detached and childless")
	}
	if n.Size() != (Vec2{}) {
		t.Errorf("Size = %v, want zero", n.Size())
	}
	if n.Element() != Element(n) {
		t.Error("Element of a plain panel should be the panel itself")
	}
}

func TestUniqueUIDs(t *testing.T) {
	a := NewPanel("a")
	b := NewPanel("a")
	if a.uid == b.uid {
		t.Errorf("uids should differ, both %d", a.uid)
	}
}

// --- Setters ---

func TestSetSizeIdempotent(t *testing.T) {
	n := NewPanel("n")
	var sizes, bounds int
	n.SizeChanged.Connect(func(SizeEvent) { sizes++ })
	n.BoundsChanged.Connect(func(BoundsEvent) { bounds++ })

	n.SetSize(Vec2{100, 50})
	n.SetSize(Vec2{100, 50})

	if sizes != 1 {
		t.Errorf("SizeChanged fired %d times, want 1", sizes)
	}
	if bounds != 1 {
		t.Errorf("BoundsChanged fired %d times, want 1", bounds)
	}
}

func TestSetPositionIdempotent(t *testing.T) {
	n := NewPanel("n")
	var moves int
	var last PositionEvent
	n.PositionChanged.Connect(func(e PositionEvent) {
		moves++
		last = e
	})

	n.SetPosition(Vec2{10, 20})
	n.SetX(10)
	n.SetY(20)

	if moves != 1 {
		t.Errorf("PositionChanged fired %d times, want 1", moves)
	}
	if last.Old != (Vec2{}) || last.New != (Vec2{10, 20}) {
		t.Errorf("event = %v -> %v, want (0,0) -> (10,20)", last.Old, last.New)
	}
}

func TestSizeClampedToMinMax(t *testing.T) {
	n := NewPanel("n")
	n.SetMinSize(Vec2{20, 20})
	n.SetMaxSize(Vec2{100, 80})

	tests := []struct {
		in, want Vec2
	}{
		{Vec2{10, 10}, Vec2{20, 20}},
		{Vec2{50, 50}, Vec2{50, 50}},
		{Vec2{500, 500}, Vec2{100, 80}},
	}
	for _, tt := range tests {
		n.SetSize(tt.in)
		if got := n.Size(); got != tt.want {
			t.Errorf("SetSize(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMinSizeWinsOverMaxSize(t *testing.T) {
	n := NewPanel("n")
	n.SetMinSize(Vec2{50, 50})
	n.SetMaxSize(Vec2{30, 30})

	n.SetSize(Vec2{100, 100})
	if got := n.Size(); got != (Vec2{50, 50}) {
		t.Errorf("Size = %v, want (50,50)", got)
	}
	n.SetSize(Vec2{10, 10})
	if got := n.Size(); got != (Vec2{50, 50}) {
		t.Errorf("Size = %v, want (50,50)", got)
	}
}

func TestSetMinSizeReclampsCurrentSize(t *testing.T) {
	n := NewPanel("n")
	n.SetSize(Vec2{10, 10})
	n.SetMinSize(Vec2{40, 5})
	if got := n.Size(); got != (Vec2{40, 10}) {
		t.Errorf("Size = %v, want (40,10)", got)
	}
}

// --- Anchoring ---

func TestAnchorBottomRightFollowsParent(t *testing.T) {
	parent := NewPanel("parent")
	parent.SetSize(Vec2{400, 300})

	child := NewPanel("child")
	child.SetSize(Vec2{50, 20})
	parent.Register(child)
	child.SetAnchor(AnchorBottomRight)

	if got := child.Position(); got != (Vec2{350, 280}) {
		t.Errorf("Position = %v, want (350,280)", got)
	}

	parent.SetSize(Vec2{500, 300})
	if got := child.Position(); got != (Vec2{450, 280}) {
		t.Errorf("Position after resize = %v, want (450,280)", got)
	}
}

func TestAnchorOffset(t *testing.T) {
	parent := NewPanel("parent")
	parent.SetSize(Vec2{200, 100})
	child := NewPanel("child")
	child.SetSize(Vec2{20, 20})
	parent.Register(child)

	child.SetAnchor(AnchorCenter)
	child.SetOffset(Vec2{5, -5})
	if got := child.Position(); got != (Vec2{95, 35}) {
		t.Errorf("Position = %v, want (95,35)", got)
	}

	child.SetUseAnchoring(false)
	child.SetPosition(Vec2{1, 1})
	parent.SetSize(Vec2{300, 300})
	if got := child.Position(); got != (Vec2{1, 1}) {
		t.Errorf("unanchored Position = %v, want (1,1)", got)
	}
}

func TestAnchoredIgnoresSetPosition(t *testing.T) {
	parent := NewPanel("parent")
	parent.SetSize(Vec2{100, 100})
	child := NewPanel("child")
	child.SetSize(Vec2{10, 10})
	parent.Register(child)
	child.SetAnchor(AnchorBottomRight)

	moves := 0
	child.PositionChanged.Connect(func(PositionEvent) { moves++ })
	child.SetPosition(Vec2{1, 1})
	child.SetX(3)

	if moves != 0 {
		t.Errorf("PositionChanged fired %d times, want 0", moves)
	}
	if got := child.Position(); got != (Vec2{90, 90}) {
		t.Errorf("Position = %v, want (90,90)", got)
	}

	child.SetOffset(Vec2{-5, 0})
	if got := child.Position(); got != (Vec2{85, 90}) {
		t.Errorf("Position after SetOffset = %v, want (85,90)", got)
	}
}

func TestAnchorReappliedOnOwnResize(t *testing.T) {
	parent := NewPanel("parent")
	parent.SetSize(Vec2{100, 100})
	child := NewPanel("child")
	child.SetSize(Vec2{10, 10})
	parent.Register(child)
	child.SetAnchor(AnchorRight)

	child.SetSize(Vec2{30, 30})
	if got := child.Position(); got != (Vec2{70, 35}) {
		t.Errorf("Position = %v, want (70,35)", got)
	}
}

func TestAnchorRefreshReachesGrandchildren(t *testing.T) {
	root := NewPanel("root")
	root.SetSize(Vec2{100, 100})
	mid := NewPanel("mid")
	mid.InheritParentWidth = true
	mid.InheritParentHeight = true
	root.Register(mid)
	leaf := NewPanel("leaf")
	leaf.SetSize(Vec2{10, 10})
	mid.Register(leaf)
	leaf.SetAnchor(AnchorBottomRight)

	root.SetSize(Vec2{200, 150})
	if got := leaf.Position(); got != (Vec2{190, 140}) {
		t.Errorf("leaf Position = %v, want (190,140)", got)
	}
}

// --- Propagation ---

func TestSizeWithParent(t *testing.T) {
	parent := NewPanel("parent")
	parent.SetSize(Vec2{100, 100})
	child := NewPanel("child")
	child.SetSize(Vec2{50, 50})
	child.SizeWithParent = true
	parent.Register(child)

	parent.SetSize(Vec2{120, 110})
	if got := child.Size(); got != (Vec2{70, 60}) {
		t.Errorf("Size = %v, want (70,60)", got)
	}
}

func TestPositionWithParent(t *testing.T) {
	parent := NewPanel("parent")
	parent.SetSize(Vec2{100, 100})
	child := NewPanel("child")
	child.SetPosition(Vec2{10, 10})
	child.PositionWithParent = true
	parent.Register(child)

	parent.SetSize(Vec2{120, 90})
	if got := child.Position(); got != (Vec2{30, 0}) {
		t.Errorf("Position = %v, want (30,0)", got)
	}
}

func TestInheritParentSizeWithModifier(t *testing.T) {
	parent := NewPanel("parent")
	parent.SetSize(Vec2{200, 100})
	child := NewPanel("child")
	child.InheritParentWidth = true
	child.InheritParentSizeModifier = Vec2{-20, 0}
	child.SetHeight(10)
	parent.Register(child)

	if got := child.Size(); got != (Vec2{180, 10}) {
		t.Errorf("Size on register = %v, want (180,10)", got)
	}
	parent.SetSize(Vec2{300, 100})
	if got := child.Size(); got != (Vec2{280, 10}) {
		t.Errorf("Size after resize = %v, want (280,10)", got)
	}
}

func TestInheritParentPosition(t *testing.T) {
	parent := NewPanel("parent")
	parent.SetPosition(Vec2{40, 40})
	child := NewPanel("child")
	child.SetY(7)
	child.InheritParentX = true
	child.InheritParentPositionModifier = Vec2{5, 0}
	parent.Register(child)

	if got := child.Position(); got != (Vec2{5, 7}) {
		t.Errorf("Position = %v, want (5,7)", got)
	}
	if got := child.ScreenPosition(); got != (Vec2{45, 47}) {
		t.Errorf("ScreenPosition = %v, want (45,47)", got)
	}

	parent.SetPosition(Vec2{60, 10})
	if got := child.Position(); got != (Vec2{5, 7}) {
		t.Errorf("Position after parent move = %v, want (5,7)", got)
	}
	if got := child.ScreenPosition(); got != (Vec2{65, 17}) {
		t.Errorf("ScreenPosition after parent move = %v, want (65,17)", got)
	}
}

func TestInheritParentPositionNoModifier(t *testing.T) {
	parent := NewPanel("parent")
	parent.SetPosition(Vec2{40, 40})
	child := NewPanel("child")
	child.SetPosition(Vec2{12, 12})
	child.InheritParentX = true
	child.InheritParentY = true
	parent.Register(child)

	if got := child.ScreenPosition(); got != parent.ScreenPosition() {
		t.Errorf("ScreenPosition = %v, want parent's %v", got, parent.ScreenPosition())
	}
}

func TestPropagationOrder(t *testing.T) {
	parent := NewPanel("parent")
	parent.SetSize(Vec2{100, 100})

	a := NewPanel("a")
	a.SetHeight(20)
	a.SetPosition(Vec2{0, 50})
	a.InheritParentWidth = true
	a.PositionWithParent = true
	a.LimitToParent = true
	parent.Register(a)

	b := NewPanel("b")
	b.SetSize(Vec2{10, 10})
	parent.Register(b)
	b.SetAnchor(AnchorBottomRight)

	var got []string
	a.SizeChanged.Connect(func(e SizeEvent) { got = append(got, fmt.Sprintf("a.size %v", e.New)) })
	a.PositionChanged.Connect(func(e PositionEvent) { got = append(got, fmt.Sprintf("a.pos %v", e.New)) })
	b.PositionChanged.Connect(func(e PositionEvent) { got = append(got, fmt.Sprintf("b.pos %v", e.New)) })

	parent.SetSize(Vec2{120, 100})

	// Inherit, then position-with-parent, then limit, then anchors.
	want := []string{
		fmt.Sprintf("a.size %v", Vec2{120, 20}),
		fmt.Sprintf("a.pos %v", Vec2{20, 50}),
		fmt.Sprintf("a.size %v", Vec2{100, 20}),
		fmt.Sprintf("b.pos %v", Vec2{110, 90}),
	}
	if strings.Join(got, "; ") != strings.Join(want, "; ") {
		t.Errorf("events = %q, want %q", got, want)
	}
}

func TestLimitToParent(t *testing.T) {
	parent := NewPanel("parent")
	parent.SetSize(Vec2{100, 100})
	child := NewPanel("child")
	child.SetBounds(Rect{60, 0, 40, 40})
	child.LimitToParent = true
	parent.Register(child)

	parent.SetSize(Vec2{80, 100})
	if got := child.Size(); got != (Vec2{20, 40}) {
		t.Errorf("Size = %v, want (20,40)", got)
	}
}

func TestInheritChildrenSize(t *testing.T) {
	parent := NewPanel("parent")
	a := NewPanel("a")
	a.SetBounds(Rect{10, 10, 30, 30})
	b := NewPanel("b")
	b.SetBounds(Rect{50, 0, 20, 20})
	parent.Register(a)
	parent.Register(b)

	parent.SetInheritChildrenSize(true, true)
	if got := parent.Size(); got != (Vec2{70, 40}) {
		t.Errorf("Size = %v, want (70,40)", got)
	}

	b.SetVisible(false)
	if got := parent.Size(); got != (Vec2{40, 40}) {
		t.Errorf("Size after hiding b = %v, want (40,40)", got)
	}

	a.SetSize(Vec2{50, 50})
	if got := parent.Size(); got != (Vec2{60, 60}) {
		t.Errorf("Size after growing a = %v, want (60,60)", got)
	}
}

func TestInheritChildrenSizeGrowsLeft(t *testing.T) {
	parent := NewPanel("parent")
	parent.SetAnchor(AnchorTopRight)
	a := NewPanel("a")
	a.SetBounds(Rect{10, 0, 30, 10})
	parent.Register(a)

	parent.SetInheritChildrenSize(true, false)
	if got := parent.Width(); got != 30 {
		t.Errorf("Width = %v, want 30", got)
	}
}

// --- Tree manipulation ---

func TestRegisterReparents(t *testing.T) {
	a := NewPanel("a")
	b := NewPanel("b")
	c := NewPanel("c")
	a.Register(c)
	b.Register(c)

	if c.Parent() != b {
		t.Error("c should be a child of b")
	}
	if a.NumChildren() != 0 {
		t.Errorf("a has %d children, want 0", a.NumChildren())
	}
}

func TestRegisterCyclePanics(t *testing.T) {
	a := NewPanel("a")
	b := NewPanel("b")
	a.Register(b)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on cycle")
		}
	}()
	b.Register(a)
}

func TestRegisterTwiceLogsOutsideDebug(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)
	defer SetLogOutput(nil)

	a := NewPanel("a")
	b := NewPanel("b")
	a.Register(b)
	a.Register(b)

	if a.NumChildren() != 1 {
		t.Errorf("NumChildren = %d, want 1", a.NumChildren())
	}
	if !strings.Contains(buf.String(), "already a child") {
		t.Errorf("log = %q, want mention of duplicate registration", buf.String())
	}
}

func TestRegisterTwicePanicsInDebug(t *testing.T) {
	SetDebug(true)
	defer SetDebug(false)

	a := NewPanel("a")
	b := NewPanel("b")
	a.Register(b)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic in debug mode")
		}
		if !strings.Contains(fmt.Sprint(r), "already a child") {
			t.Errorf("panic = %v", r)
		}
	}()
	a.Register(b)
}

func TestUnregisterRevokesSubscriptions(t *testing.T) {
	parent := NewPanel("parent")
	parent.SetInheritChildrenSize(true, true)
	child := NewPanel("child")
	child.SetSize(Vec2{30, 30})
	parent.Register(child)
	if parent.Size() != (Vec2{30, 30}) {
		t.Fatalf("Size = %v, want (30,30)", parent.Size())
	}

	parent.Unregister(child)
	child.SetSize(Vec2{90, 90})
	if parent.Size() != (Vec2{}) {
		t.Errorf("detached child resized parent to %v", parent.Size())
	}
	if child.Parent() != nil {
		t.Error("child should have no parent")
	}
}

func TestChildrenChangedSignal(t *testing.T) {
	parent := NewPanel("parent")
	var events []ChildEvent
	parent.ChildrenChanged.Connect(func(e ChildEvent) { events = append(events, e) })

	child := NewPanel("child")
	parent.Register(child)
	child.RemoveFromParent()

	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if !events[0].Added || events[1].Added {
		t.Errorf("Added flags = %v, %v, want true, false", events[0].Added, events[1].Added)
	}
}

func TestRegisterAtAndSetChildIndex(t *testing.T) {
	p := NewPanel("p")
	a, b, c := NewPanel("a"), NewPanel("b"), NewPanel("c")
	p.Register(a)
	p.Register(c)
	p.RegisterAt(b, 1)

	ids := func() string {
		var s []string
		for _, n := range p.Children() {
			s = append(s, n.ID)
		}
		return strings.Join(s, ",")
	}
	if got := ids(); got != "a,b,c" {
		t.Errorf("order = %s, want a,b,c", got)
	}
	a.BringToFront()
	if got := ids(); got != "b,c,a" {
		t.Errorf("order after BringToFront = %s, want b,c,a", got)
	}
	p.SetChildIndex(a, 0)
	if got := ids(); got != "a,b,c" {
		t.Errorf("order after SetChildIndex = %s, want a,b,c", got)
	}
}

func TestFindByID(t *testing.T) {
	root := NewPanel("root")
	mid := NewPanel("mid")
	leaf := NewPanel("leaf")
	root.Register(mid)
	mid.Register(leaf)

	if root.FindByID("leaf") != leaf {
		t.Error("FindByID(leaf) failed")
	}
	if root.FindByID("nope") != nil {
		t.Error("FindByID(nope) should be nil")
	}
}

func TestScreenPosition(t *testing.T) {
	root := NewPanel("root")
	root.SetPosition(Vec2{100, 50})
	child := NewPanel("child")
	child.SetPosition(Vec2{10, 5})
	root.Register(child)

	if got := child.ScreenPosition(); got != (Vec2{110, 55}) {
		t.Errorf("ScreenPosition = %v, want (110,55)", got)
	}
}

// --- Visibility ---

func TestSetVisibleEmitsOnce(t *testing.T) {
	n := NewPanel("n")
	var count int
	n.VisibilityChanged.Connect(func(*Node) { count++ })

	n.SetVisible(false)
	n.SetVisible(false)
	n.SetVisible(true)

	if count != 2 {
		t.Errorf("VisibilityChanged fired %d times, want 2", count)
	}
}
