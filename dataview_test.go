package wicker

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"testing"
	"time"
)

// newStatsView builds a 300x120 table (20px header, 20px rows) with a text
// name column and three numeric columns of width 100, so the fourth column
// starts exactly at the right edge of the viewport.
func newStatsView(rows int) (*DataView, [][]float64) {
	v := NewDataView("dv", Vec2{300, 120}, 20, 20)
	v.AddColumn("name", 100)
	for _, title := range []string{"a", "b", "c"} {
		v.AddColumn(title, 100)
	}
	vals := make([][]float64, rows)
	for i := range rows {
		vals[i] = make([]float64, 3)
		r := v.AddRow(fmt.Sprintf("row%d", i))
		for j := range 3 {
			r.Cell(j+1).SetSource(FloatPtr{P: &vals[i][j]}, 0, 10, 1)
		}
	}
	return v, vals
}

func rowIndices(rows []*DataRow) []int {
	var out []int
	for _, r := range rows {
		out = append(out, r.Index)
	}
	return out
}

func cellTexts(r *DataRow) []string {
	var out []string
	for _, c := range r.Cells() {
		out = append(out, c.Text)
	}
	return out
}

// --- Columns ---

func TestDataViewColumnParity(t *testing.T) {
	v := NewDataView("dv", Vec2{200, 100}, 20, 20)
	v.AddColumn("a", 50)
	r0 := v.AddRow("x")
	r1 := v.AddRow("y")

	v.AddColumn("b", 50)
	for _, r := range v.Rows() {
		if len(r.Cells()) != v.NumColumns() {
			t.Fatalf("row %s has %d cells, want %d", r.ID, len(r.Cells()), v.NumColumns())
		}
	}
	if got := cellTexts(r0); !slices.Equal(got, []string{"x", ""}) {
		t.Errorf("row 0 = %q, want [x \"\"]", got)
	}

	v.InsertColumn(0, "z", 30)
	if got := cellTexts(r1); !slices.Equal(got, []string{"", "y", ""}) {
		t.Errorf("row 1 after insert = %q", got)
	}
	for k, c := range r1.Cells() {
		if c.Column != k {
			t.Errorf("cell %d Column = %d", k, c.Column)
		}
	}
	if x := r1.Cell(1).X(); x != 30 {
		t.Errorf("cell 1 X = %v, want 30", x)
	}
	if w := v.ContentSize().X; w != 130 {
		t.Errorf("content width = %v, want 130", w)
	}

	v.RemoveColumn(1)
	if v.NumColumns() != 2 {
		t.Fatalf("NumColumns = %d, want 2", v.NumColumns())
	}
	if got := cellTexts(r1); !slices.Equal(got, []string{"", ""}) {
		t.Errorf("row 1 after remove = %q", got)
	}
	if c := r1.Cell(1); c.Column != 1 || c.X() != 30 {
		t.Errorf("cell 1 = column %d at %v, want column 1 at 30", c.Column, c.X())
	}
	if v.Header()[1].Text != "b" {
		t.Errorf("header 1 = %q, want b", v.Header()[1].Text)
	}
}

func TestDataViewExtraValuesDropped(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)
	defer SetLogOutput(nil)

	v := NewDataView("dv", Vec2{200, 100}, 20, 20)
	v.AddColumn("a", 50)
	v.AddColumn("b", 50)
	r := v.AddRow("1", "2", "3")

	if got := cellTexts(r); !slices.Equal(got, []string{"1", "2"}) {
		t.Errorf("cells = %q, want [1 2]", got)
	}
	if !strings.Contains(buf.String(), "extra values dropped") {
		t.Errorf("log = %q, want a dropped-values message", buf.String())
	}

	buf.Reset()
	v.RemoveColumn(7)
	v.RemoveRow(-1)
	if n := strings.Count(buf.String(), "out of range"); n != 2 {
		t.Errorf("out-of-range messages = %d, want 2", n)
	}
}

// --- Rows ---

func TestDataViewRowRenumbering(t *testing.T) {
	v := NewDataView("dv", Vec2{200, 100}, 20, 20)
	v.AddColumn("name", 100)
	v.AddRow("a")
	v.AddRow("b")
	v.AddRow("c")
	v.InsertRow(1, "x")

	var names []string
	for j, r := range v.Rows() {
		names = append(names, r.Cell(0).Text)
		if r.Index != j || r.Y() != float64(j)*20 {
			t.Errorf("row %q: index %d at y %v, want %d at %v", r.Cell(0).Text, r.Index, r.Y(), j, float64(j)*20)
		}
	}
	if !slices.Equal(names, []string{"a", "x", "b", "c"}) {
		t.Errorf("rows = %v, want [a x b c]", names)
	}

	v.RemoveRow(0)
	if r := v.RowAt(2); r.Cell(0).Text != "c" || r.Index != 2 || r.Y() != 40 {
		t.Errorf("row 2 = %q index %d y %v, want c 2 40", r.Cell(0).Text, r.Index, r.Y())
	}
	if h := v.ContentSize().Y; h != 60 {
		t.Errorf("content height = %v, want 60", h)
	}
	if v.RowAt(3) != nil {
		t.Error("RowAt past the end should be nil")
	}
}

func TestDataViewClearRows(t *testing.T) {
	v, _ := newStatsView(10)
	v.SetScroll(Vec2{0, 100})
	v.ClearRows()

	if v.NumRows() != 0 || len(v.VisibleRows()) != 0 {
		t.Errorf("after ClearRows: %d rows, %d visible", v.NumRows(), len(v.VisibleRows()))
	}
	if s := v.Scroll(); s.Y != 0 {
		t.Errorf("scroll = %v, want clamped to 0", s)
	}
}

// --- Virtualization ---

func TestDataViewVisibleRows(t *testing.T) {
	v, _ := newStatsView(10)

	if got := rowIndices(v.VisibleRows()); !slices.Equal(got, []int{0, 1, 2, 3, 4}) {
		t.Errorf("visible = %v, want rows 0-4", got)
	}
	r := v.RowAt(0)
	if n := len(r.cascadeChildren()); n != 3 {
		t.Errorf("renderable cells = %d, want 3 (fourth column at the edge)", n)
	}
	if last := r.Cell(3); last.IsVisible() {
		t.Error("cell starting at the viewport edge should be hidden")
	}
	if v.RowAt(5).IsVisible() {
		t.Error("row 5 should be hidden")
	}

	var scrolled []Vec2
	v.Scrolled.Connect(func(s Vec2) { scrolled = append(scrolled, s) })
	v.SetScroll(Vec2{0, 500})
	if got := rowIndices(v.VisibleRows()); !slices.Equal(got, []int{5, 6, 7, 8, 9}) {
		t.Errorf("visible after scroll = %v, want rows 5-9", got)
	}
	v.SetScroll(Vec2{0, 100})
	if len(scrolled) != 1 || scrolled[0] != (Vec2{0, 100}) {
		t.Errorf("Scrolled = %v, want one clamped (0,100)", scrolled)
	}
}

func TestDataViewHorizontalScroll(t *testing.T) {
	v, _ := newStatsView(3)
	v.SetScroll(Vec2{100, 0})

	if x := v.header.X(); x != -100 {
		t.Errorf("header x = %v, want -100", x)
	}
	var titles []string
	for _, n := range v.header.cascadeChildren() {
		titles = append(titles, n.self.(*DataCell).Text)
	}
	if !slices.Equal(titles, []string{"a", "b", "c"}) {
		t.Errorf("visible headers = %v, want [a b c]", titles)
	}
	if v.RowAt(0).Cell(0).IsVisible() || !v.RowAt(0).Cell(3).IsVisible() {
		t.Error("row cells should follow the horizontal scroll")
	}
}

func TestDataViewParallelVisibility(t *testing.T) {
	v, _ := newStatsView(200)
	v.SetScroll(Vec2{0, 1000})

	got := v.VisibleRows()
	if idx := rowIndices(got); !slices.Equal(idx, []int{50, 51, 52, 53, 54}) {
		t.Fatalf("visible = %v, want rows 50-54", idx)
	}
	for _, r := range got {
		if n := len(r.cascadeChildren()); n != 3 {
			t.Errorf("row %d renderables = %d, want 3", r.Index, n)
		}
	}
	if v.RowAt(49).IsVisible() || v.RowAt(55).IsVisible() {
		t.Error("rows next to the viewport should be hidden")
	}
}

// --- Numeric cells ---

func TestDataCellGestures(t *testing.T) {
	v, vals := newStatsView(1)
	copy(vals[0], []float64{5, 5, 5})
	r := v.RowAt(0)
	c := r.Cell(2)

	var changed []int
	v.CellChanged.Connect(func(c *DataCell) { changed = append(changed, c.Column) })

	tests := []struct {
		name string
		e    MouseEvent
		want []float64
	}{
		{"click decreases", MouseEvent{Kind: MouseClick}, []float64{5, 4, 5}},
		{"right click increases", MouseEvent{Kind: MouseRightClick}, []float64{5, 5, 5}},
		{"wheel scales", MouseEvent{Kind: MouseWheel, Wheel: 3}, []float64{5, 8, 5}},
		{"clamped to max", MouseEvent{Kind: MouseWheel, Wheel: 5}, []float64{5, 10, 5}},
		{"shift applies to row", MouseEvent{Kind: MouseClick, Modifiers: ModShift}, []float64{4, 9, 4}},
		{"shift+alt right sets max", MouseEvent{Kind: MouseRightClick, Modifiers: ModShift | ModAlt}, []float64{10, 10, 10}},
		{"shift+alt click sets min", MouseEvent{Kind: MouseClick, Modifiers: ModShift | ModAlt}, []float64{0, 0, 0}},
		{"ctrl leaves value", MouseEvent{Kind: MouseRightClick, Modifiers: ModCtrl}, []float64{0, 0, 0}},
		{"clamped to min", MouseEvent{Kind: MouseClick}, []float64{0, 0, 0}},
	}
	for _, tt := range tests {
		c.HandleMouse(tt.e)
		if !slices.Equal(vals[0], tt.want) {
			t.Errorf("%s: values = %v, want %v", tt.name, vals[0], tt.want)
		}
	}
	if v.lastTouched != c {
		t.Error("gestures should mark the cell as the copy source")
	}
	// 4 single edits, one shift row edit, two shift+alt row edits.
	if len(changed) != 4+3+3+3 {
		t.Errorf("CellChanged fired %d times, want 13", len(changed))
	}
}

func TestDataCellShiftAltSkipsUnbounded(t *testing.T) {
	v, vals := newStatsView(1)
	copy(vals[0], []float64{3, 3, 3})
	r := v.RowAt(0)
	r.Cell(3).SetSource(FloatPtr{P: &vals[0][2]}, 0, 0, 1)

	r.Cell(1).HandleMouse(MouseEvent{Kind: MouseRightClick, Modifiers: ModShift | ModAlt})
	if want := []float64{10, 10, 3}; !slices.Equal(vals[0], want) {
		t.Errorf("values = %v, want %v", vals[0], want)
	}
}

func TestDataCellTextCellsIgnoreGestures(t *testing.T) {
	v, vals := newStatsView(1)
	name := v.RowAt(0).Cell(0)
	name.HandleMouse(MouseEvent{Kind: MouseClick, Modifiers: ModShift})

	if !slices.Equal(vals[0], []float64{0, 0, 0}) || v.lastTouched != nil {
		t.Errorf("text cell edited values %v or touched %v", vals[0], v.lastTouched)
	}
	if name.IsNumeric() || name.Value() != 0 || name.Display() != "row0" {
		t.Errorf("text cell: numeric %v value %v display %q", name.IsNumeric(), name.Value(), name.Display())
	}
}

func TestDataCellDisplayFormat(t *testing.T) {
	v, vals := newStatsView(1)
	c := v.RowAt(0).Cell(1)
	vals[0][0] = 2.5
	if got := c.Display(); got != "2.5" {
		t.Errorf("Display = %q, want 2.5", got)
	}
	c.Format = "%.2f"
	if got := c.Display(); got != "2.50" {
		t.Errorf("Display = %q, want 2.50", got)
	}
}

// --- Copy ---

func TestDataViewCopyExpiry(t *testing.T) {
	v, vals := newStatsView(3)
	vals[0][0] = 7
	src := v.RowAt(0).Cell(1)
	dst := v.RowAt(2).Cell(1)

	v.touch(src, 0)
	v.copyInto(src, MouseEvent{Time: time.Second})
	v.copyInto(dst, MouseEvent{Time: 4 * time.Second})
	if vals[2][0] != 0 {
		t.Errorf("expired source copied: %v", vals[2][0])
	}

	v.CopyExpiry = 5 * time.Second
	v.UpdateContent(&Frame{})
	v.copyInto(dst, MouseEvent{Time: 4 * time.Second})
	if vals[2][0] != 7 {
		t.Errorf("copied value = %v, want 7", vals[2][0])
	}
	if src.touchedAt != 4*time.Second {
		t.Errorf("source touchedAt = %v, want refreshed to 4s", src.touchedAt)
	}

	cfg := DefaultConfig()
	cfg.CopyExpiry = time.Second
	v.CopyExpiry = 0
	v.UpdateContent(&Frame{Config: &cfg})
	if v.expiry != time.Second {
		t.Errorf("expiry = %v, want Config.CopyExpiry", v.expiry)
	}
}

func TestDataViewShiftCopiesRow(t *testing.T) {
	v, vals := newStatsView(4)
	copy(vals[0], []float64{1, 2, 3})
	v.touch(v.RowAt(0).Cell(1), 0)

	v.copyInto(v.RowAt(3).Cell(2), MouseEvent{Modifiers: ModShift, Time: time.Second})
	if want := []float64{1, 2, 3}; !slices.Equal(vals[3], want) {
		t.Errorf("row 3 = %v, want %v", vals[3], want)
	}
	if v.RowAt(3).Cell(0).Text != "row3" {
		t.Error("text cells should not be overwritten")
	}
}

func TestDataViewRemoveForgetsSource(t *testing.T) {
	v, _ := newStatsView(3)
	v.touch(v.RowAt(1).Cell(1), 0)
	v.RemoveColumn(2)
	if v.lastTouched == nil {
		t.Fatal("removing another column should keep the source")
	}
	v.RemoveRow(1)
	if v.lastTouched != nil {
		t.Error("removing the source row should clear the copy source")
	}
}

// --- Through a window ---

// newStatsWindow places a stats view at (0,30) inside an 800x600 rig, so
// row k of column c covers screen x [100c, 100c+100) and y [50+20k, 70+20k).
func newStatsWindow(t *testing.T, rows int) (*testRig, *DataView, [][]float64) {
	t.Helper()
	r := newTestRig(t)
	w := NewWindow("w", Rect{0, 0, 400, 300})
	v, vals := newStatsView(rows)
	v.SetPosition(Vec2{0, 30})
	w.Root().Register(v)
	r.open(t, w)
	return r, v, vals
}

func TestDataViewWheel(t *testing.T) {
	r, v, vals := newStatsWindow(t, 10)

	// Over the name column the wheel scrolls by one row.
	r.m.InjectWheel(50, 60, -1)
	r.drain()
	if s := v.Scroll(); s.Y != 20 {
		t.Fatalf("scroll = %v, want 20", s.Y)
	}

	// Over a numeric cell it edits instead; y=60 now shows row 1.
	r.m.InjectWheel(150, 60, 2)
	r.drain()
	if s := v.Scroll(); s.Y != 20 {
		t.Errorf("scroll = %v, want unchanged 20", s.Y)
	}
	if vals[1][0] != 2 {
		t.Errorf("row 1 a = %v, want 2", vals[1][0])
	}
}

func TestDataViewCtrlDragCopies(t *testing.T) {
	r, _, vals := newStatsWindow(t, 4)
	vals[0][0] = 7

	r.m.InjectPress(150, 60)
	r.m.InjectMove(150, 80)
	r.m.InjectMove(150, 100)
	r.m.InjectRelease(150, 100)
	for r.m.Pending() > 0 {
		r.frame(Input{Modifiers: ModCtrl})
	}

	if vals[1][0] != 7 || vals[2][0] != 7 {
		t.Errorf("copied values = %v, %v, want 7, 7", vals[1][0], vals[2][0])
	}
	if vals[0][0] != 7 || vals[3][0] != 0 {
		t.Errorf("source %v, untouched row %v", vals[0][0], vals[3][0])
	}
}

func TestDataViewClickEditsThroughWindow(t *testing.T) {
	r, v, vals := newStatsWindow(t, 4)
	vals[2][1] = 5
	var changed []*DataCell
	v.CellChanged.Connect(func(c *DataCell) { changed = append(changed, c) })

	r.m.InjectClick(250, 95)
	r.m.InjectRightClick(250, 95)
	r.m.InjectRightClick(250, 95)
	r.drain()

	if vals[2][1] != 6 {
		t.Errorf("value = %v, want 6", vals[2][1])
	}
	if len(changed) != 3 || changed[0] != v.RowAt(2).Cell(2) {
		t.Errorf("CellChanged = %d events, want 3 on row 2 column 2", len(changed))
	}
}

// --- Drawing ---

func TestDataViewDraw(t *testing.T) {
	v, _ := newStatsView(2)
	v.GridLines = true
	v.GridColor = Color{1, 0, 0, 1}

	var rec Recorder
	v.Draw(&DrawContext{Surface: &rec})

	want := []string{"name", "a", "b", "row0", "0", "0", "row1", "0", "0"}
	if got := rec.Texts(); !slices.Equal(got, want) {
		t.Errorf("Texts = %v, want %v", got, want)
	}

	var grid []Rect
	for _, c := range rec.Commands {
		if c.Type == CommandFill && c.Color == v.GridColor {
			grid = append(grid, c.Rect)
		}
	}
	// Three column separators, the header rule, one rule per visible row.
	if len(grid) != 6 {
		t.Fatalf("grid lines = %d, want 6", len(grid))
	}
	if grid[0] != (Rect{100, 0, 1, 60}) {
		t.Errorf("first separator = %v, want (100,0 1x60)", grid[0])
	}
	if grid[3] != (Rect{0, 19, 300, 1}) {
		t.Errorf("header rule = %v, want (0,19 300x1)", grid[3])
	}
	if last := rec.Commands[len(rec.Commands)-1]; last.Type != CommandPopClip {
		t.Errorf("last command = %v, want PopClip", last.Type)
	}
}
