package wicker

import (
	"fmt"
	"runtime"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"
)

// parallelRowThreshold is the row count from which the visibility pass
// fans out across goroutines.
const parallelRowThreshold = 128

// DataRow is one row of a DataView. Every row holds exactly one cell per
// header column.
type DataRow struct {
	Node
	view  *DataView
	Index int
	cells []*DataCell

	// Written by the visibility pass. Each row owns its own slices, which
	// is what makes the parallel pass safe.
	cellVis     []bool
	renderables []*Node
}

func newDataRow(id string) *DataRow {
	r := &DataRow{}
	r.init(r, id)
	return r
}

// View returns the owning DataView.
func (r *DataRow) View() *DataView { return r.view }

// Cells returns the row's cells in column order. Callers must not modify the slice.
func (r *DataRow) Cells() []*DataCell { return r.cells }

// Cell returns the cell in column i, or nil.
func (r *DataRow) Cell(i int) *DataCell {
	if i < 0 || i >= len(r.cells) {
		return nil
	}
	return r.cells[i]
}

func (r *DataRow) cascadeChildren() []*Node { return r.renderables }

func (r *DataRow) addCell(c *DataCell, col int) {
	c.row = r
	r.cells = slices.Insert(r.cells, col, c)
	r.Register(c)
	for j := col; j < len(r.cells); j++ {
		r.cells[j].Column = j
	}
}

func (r *DataRow) removeCell(col int) {
	c := r.cells[col]
	r.cells = slices.Delete(r.cells, col, col+1)
	r.Unregister(c)
	c.row = nil
	for j := col; j < len(r.cells); j++ {
		r.cells[j].Column = j
	}
}

// dataBody is the scrolled region below the header.
type dataBody struct {
	Node
	view *DataView
}

func (b *dataBody) ScrollOffset() Vec2       { return b.view.scroll }
func (b *dataBody) cascadeChildren() []*Node { return b.view.visibleRows }

// DataView is a virtualized table: a header row of column cells over a
// scrolling body of rows. Columns take their width from the header cells.
// Only rows and cells overlapping the viewport are drawn, updated, and
// hit-tested.
type DataView struct {
	Node
	header *DataRow
	body   *dataBody
	rows   []*DataRow

	RowHeight    float64
	HeaderHeight float64
	WheelStep    float64
	GridLines    bool
	GridColor    Color

	// CopyExpiry bounds how long a touched numeric cell stays the ctrl-drag
	// copy source. Zero uses Config.CopyExpiry.
	CopyExpiry time.Duration
	expiry     time.Duration

	scroll      Vec2
	content     Vec2
	colX        []float64
	visibleRows []*Node
	lastTouched *DataCell
	rowSerial   int

	CellChanged Signal[*DataCell]
	Scrolled    Signal[Vec2]
}

// NewDataView creates an empty table of the given size.
func NewDataView(id string, size Vec2, rowHeight, headerHeight float64) *DataView {
	v := &DataView{
		RowHeight:    rowHeight,
		HeaderHeight: headerHeight,
		WheelStep:    rowHeight,
		GridColor:    Color{1, 1, 1, 0.12},
		expiry:       DefaultConfig().CopyExpiry,
	}
	v.init(v, id)
	v.ClipContent = true
	v.SetSize(size)

	v.header = newDataRow(id + ".header")
	v.header.view = v
	v.header.Index = -1
	v.header.Style.Background = Color{0.16, 0.16, 0.2, 1}
	v.header.SetHeight(headerHeight)
	v.Register(v.header)

	v.body = &dataBody{view: v}
	v.body.init(v.body, id+".body")
	v.body.SetY(headerHeight)
	v.body.InheritParentWidth = true
	v.body.InheritParentHeight = true
	v.body.InheritParentSizeModifier = Vec2{0, -headerHeight}
	v.Register(v.body)

	v.body.SizeChanged.Connect(func(SizeEvent) { v.refresh() })
	return v
}

// Header returns the header cells. Callers must not modify the slice.
func (v *DataView) Header() []*DataCell { return v.header.cells }

// NumColumns returns the header cell count.
func (v *DataView) NumColumns() int { return len(v.header.cells) }

// Rows returns the rows in index order. Callers must not modify the slice.
func (v *DataView) Rows() []*DataRow { return v.rows }

// NumRows returns the row count.
func (v *DataView) NumRows() int { return len(v.rows) }

// RowAt returns row i, or nil.
func (v *DataView) RowAt(i int) *DataRow {
	if i < 0 || i >= len(v.rows) {
		return nil
	}
	return v.rows[i]
}

// Scroll returns the body's scroll offset.
func (v *DataView) Scroll() Vec2 { return v.scroll }

// ContentSize returns the size of the full table body.
func (v *DataView) ContentSize() Vec2 { return v.content }

// --- Columns ---

// AddColumn appends a header cell of the given width and pads every shorter
// row with an empty cell.
func (v *DataView) AddColumn(title string, width float64) *DataCell {
	return v.InsertColumn(len(v.header.cells), title, width)
}

// InsertColumn inserts a header cell at col and an empty cell at col in
// every row.
func (v *DataView) InsertColumn(col int, title string, width float64) *DataCell {
	col = min(max(col, 0), len(v.header.cells))
	h := NewDataCell(fmt.Sprintf("%s.h%d", v.ID, col), title)
	h.SetSize(Vec2{width, v.HeaderHeight})
	h.SizeChanged.Connect(func(SizeEvent) { v.layoutColumns() })
	v.header.addCell(h, col)
	for _, r := range v.rows {
		if len(r.cells) < len(v.header.cells) {
			r.addCell(NewDataCell(fmt.Sprintf("%s.c%d", r.ID, col), ""), col)
		}
	}
	v.layoutColumns()
	return h
}

// RemoveColumn removes header cell col and cell col from every row.
func (v *DataView) RemoveColumn(col int) {
	if col < 0 || col >= len(v.header.cells) {
		misuse("DataView %q: column %d out of range", v.ID, col)
		return
	}
	v.header.removeCell(col)
	for _, r := range v.rows {
		if col < len(r.cells) {
			if v.lastTouched == r.cells[col] {
				v.lastTouched = nil
			}
			r.removeCell(col)
		}
	}
	v.layoutColumns()
}

// --- Rows ---

// AddRow appends a row of text cells. Missing values become empty cells;
// values beyond the column count are dropped.
func (v *DataView) AddRow(values ...string) *DataRow {
	return v.InsertRow(len(v.rows), values...)
}

// InsertRow inserts a row at index i and renumbers the rows after it.
func (v *DataView) InsertRow(i int, values ...string) *DataRow {
	i = min(max(i, 0), len(v.rows))
	if len(values) > len(v.header.cells) {
		logf("DataView %q: row has %d values for %d columns; extra values dropped",
			v.ID, len(values), len(v.header.cells))
		values = values[:len(v.header.cells)]
	}
	v.rowSerial++
	r := newDataRow(fmt.Sprintf("%s.r%d", v.ID, v.rowSerial))
	r.view = v
	for j := range v.header.cells {
		text := ""
		if j < len(values) {
			text = values[j]
		}
		r.addCell(NewDataCell(fmt.Sprintf("%s.c%d", r.ID, j), text), j)
	}
	v.rows = slices.Insert(v.rows, i, r)
	v.body.Register(r)
	v.renumber(i)
	v.layoutRows(i)
	v.refresh()
	return r
}

// RemoveRow removes row i and renumbers the rows after it.
func (v *DataView) RemoveRow(i int) {
	if i < 0 || i >= len(v.rows) {
		misuse("DataView %q: row %d out of range", v.ID, i)
		return
	}
	r := v.rows[i]
	v.rows = slices.Delete(v.rows, i, i+1)
	if v.lastTouched != nil && v.lastTouched.row == r {
		v.lastTouched = nil
	}
	v.body.Unregister(r)
	r.view = nil
	v.renumber(i)
	v.layoutRows(i)
	v.refresh()
}

// ClearRows removes every row.
func (v *DataView) ClearRows() {
	for _, r := range v.rows {
		v.body.Unregister(r)
		r.view = nil
	}
	v.rows = v.rows[:0]
	v.lastTouched = nil
	v.refresh()
}

func (v *DataView) renumber(from int) {
	for j := from; j < len(v.rows); j++ {
		v.rows[j].Index = j
	}
}

// --- Layout ---

func (v *DataView) layoutColumns() {
	v.colX = v.colX[:0]
	x := 0.0
	for _, h := range v.header.cells {
		v.colX = append(v.colX, x)
		h.SetPosition(Vec2{x, 0})
		x += h.Width()
	}
	v.header.SetSize(Vec2{x, v.HeaderHeight})
	v.layoutRows(0)
	v.refresh()
}

func (v *DataView) layoutRows(from int) {
	w := v.header.Width()
	for j := from; j < len(v.rows); j++ {
		r := v.rows[j]
		r.SetBounds(Rect{0, float64(j) * v.RowHeight, w, v.RowHeight})
		for k, c := range r.cells {
			c.SetBounds(Rect{v.colX[k], 0, v.header.cells[k].Width(), v.RowHeight})
		}
	}
	v.content = Vec2{w, float64(len(v.rows)) * v.RowHeight}
}

func (v *DataView) maxScroll() Vec2 {
	return Vec2{
		max(0, v.content.X-v.body.Width()),
		max(0, v.content.Y-v.body.Height()),
	}
}

// SetScroll sets the body's scroll offset, clamped to the content.
func (v *DataView) SetScroll(s Vec2) {
	m := v.maxScroll()
	s.X = min(max(s.X, 0), m.X)
	s.Y = min(max(s.Y, 0), m.Y)
	if s == v.scroll {
		return
	}
	v.scroll = s
	v.refreshVisibility()
	v.Scrolled.Emit(s)
}

// refresh clamps the scroll and reruns the visibility pass.
func (v *DataView) refresh() {
	m := v.maxScroll()
	v.scroll.X = min(max(v.scroll.X, 0), m.X)
	v.scroll.Y = min(max(v.scroll.Y, 0), m.Y)
	v.refreshVisibility()
}

// --- Virtualization ---

// refreshVisibility tests the header cells and every row's cells against
// the viewport. With many rows the per-row tests fan out across goroutines;
// each goroutine writes only its own row's cellVis and renderables.
// Visibility flags (which emit signals) are then applied sequentially.
func (v *DataView) refreshVisibility() {
	view := Rect{v.scroll.X, v.scroll.Y, v.body.Width(), v.body.Height()}

	v.header.SetX(-v.scroll.X)
	v.header.renderables = v.header.renderables[:0]
	for _, h := range v.header.cells {
		vis := h.X()+h.Width() > view.X && h.X() < view.Right()
		h.SetVisible(vis)
		if vis {
			v.header.renderables = append(v.header.renderables, &h.Node)
		}
	}

	measure := func(r *DataRow) {
		r.cellVis = r.cellVis[:0]
		r.renderables = r.renderables[:0]
		rowVis := r.bounds.Overlaps(view)
		for _, c := range r.cells {
			vis := rowVis && c.bounds.Translate(r.Position()).Overlaps(view)
			r.cellVis = append(r.cellVis, vis)
			if vis {
				r.renderables = append(r.renderables, &c.Node)
			}
		}
	}

	if len(v.rows) >= parallelRowThreshold {
		var g errgroup.Group
		g.SetLimit(runtime.GOMAXPROCS(0))
		for _, r := range v.rows {
			g.Go(func() error {
				measure(r)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for _, r := range v.rows {
			measure(r)
		}
	}

	v.visibleRows = v.visibleRows[:0]
	for _, r := range v.rows {
		rowVis := len(r.renderables) > 0
		r.SetVisible(rowVis)
		for k, c := range r.cells {
			c.SetVisible(r.cellVis[k])
		}
		if rowVis {
			v.visibleRows = append(v.visibleRows, &r.Node)
		}
	}
}

// VisibleRows returns the rows overlapping the viewport.
func (v *DataView) VisibleRows() []*DataRow {
	out := make([]*DataRow, 0, len(v.visibleRows))
	for _, n := range v.visibleRows {
		out = append(out, n.self.(*DataRow))
	}
	return out
}

// --- Editing ---

func (v *DataView) touch(c *DataCell, t time.Duration) {
	c.touchedAt = t
	v.lastTouched = c
}

// copyInto copies the last touched cell's value into c, or with shift the
// source row's values positionally into c's row. Sources older than the copy
// expiry are ignored.
func (v *DataView) copyInto(c *DataCell, e MouseEvent) {
	src := v.lastTouched
	if src == nil || src == c || src.row == nil || e.Time-src.touchedAt > v.expiry {
		return
	}
	if e.Modifiers.Has(ModShift) {
		if src.row != c.row {
			for k, s := range src.row.cells {
				if d := c.row.Cell(k); d != nil && d.Source != nil && s.Source != nil {
					d.SetValue(s.Value())
				}
			}
		}
	} else {
		c.SetValue(src.Value())
	}
	// Dragging across cells keeps the source alive.
	src.touchedAt = e.Time
}

func (v *DataView) UpdateContent(f *Frame) {
	switch {
	case v.CopyExpiry > 0:
		v.expiry = v.CopyExpiry
	case f.Config != nil:
		v.expiry = f.Config.CopyExpiry
	}
}

func (v *DataView) HandleMouse(e MouseEvent) {
	if e.Kind != MouseWheel || v.WheelStep == 0 {
		return
	}
	// Wheel over a numeric cell edits the cell instead of scrolling.
	if n := v.deepestHovered(); n != nil {
		if c, ok := n.self.(*DataCell); ok && c.IsNumeric() {
			return
		}
	}
	v.SetScroll(Vec2{v.scroll.X, v.scroll.Y - e.Wheel*v.WheelStep})
}

// DrawOverlay draws the grid lines over the header and visible rows.
func (v *DataView) DrawOverlay(dc *DrawContext, r Rect) {
	if !v.GridLines || len(v.header.cells) == 0 {
		return
	}
	c := v.GridColor
	dc.PushClip(r)
	bottom := min(r.Bottom(), r.Y+v.HeaderHeight+v.content.Y-v.scroll.Y)
	for k, x := range v.colX {
		if k == 0 {
			continue
		}
		sx := r.X + x - v.scroll.X
		dc.FillRect(Rect{sx, r.Y, 1, bottom - r.Y}, c)
	}
	right := min(r.Right(), r.X+v.content.X-v.scroll.X)
	dc.FillRect(Rect{r.X, r.Y + v.HeaderHeight - 1, right - r.X, 1}, c)
	for _, n := range v.visibleRows {
		y := r.Y + v.HeaderHeight + n.bounds.Bottom() - v.scroll.Y
		dc.FillRect(Rect{r.X, y - 1, right - r.X, 1}, c)
	}
	dc.PopClip()
}
