package wicker

import (
	"fmt"
	"math"
	"time"
)

// ValueSource is a numeric value a DataCell reads and writes.
type ValueSource interface {
	Value() float64
	SetValue(float64)
}

// FloatPtr adapts a *float64 to ValueSource.
type FloatPtr struct{ P *float64 }

func (f FloatPtr) Value() float64     { return *f.P }
func (f FloatPtr) SetValue(v float64) { *f.P = v }

// DataCell is one cell of a DataView. Cells with a Source are numeric and
// respond to the editing gestures:
//
//	left click / right click   decrease / increase by Step
//	wheel                      change by wheel * Step
//	shift                      apply to every numeric cell in the row
//	shift+alt                  set every numeric cell in the row to its Min / Max
//	ctrl                       no change; mark the cell as the copy source
//	ctrl+drag onto a cell      copy the source value (the whole row with shift)
type DataCell struct {
	Node
	row    *DataRow
	Column int
	Text   string
	Format string // fmt verb for numeric cells, default "%g"

	Source ValueSource
	Min    float64
	Max    float64 // Max <= Min disables clamping
	Step   float64

	touchedAt time.Duration
}

// NewDataCell creates a text cell.
func NewDataCell(id, text string) *DataCell {
	c := &DataCell{Text: text, Step: 1}
	c.init(c, id)
	c.Style.Text = TextStyle{Color: ColorWhite, Middle: true, Padding: 4}
	return c
}

// Row returns the row holding the cell, or nil for header cells.
func (c *DataCell) Row() *DataRow { return c.row }

// IsNumeric reports whether the cell edits a ValueSource.
func (c *DataCell) IsNumeric() bool { return c.Source != nil }

// SetSource makes the cell numeric.
func (c *DataCell) SetSource(src ValueSource, lo, hi, step float64) {
	c.Source = src
	c.Min, c.Max, c.Step = lo, hi, step
}

// Value returns the numeric value, or 0 for text cells.
func (c *DataCell) Value() float64 {
	if c.Source == nil {
		return 0
	}
	return c.Source.Value()
}

// SetValue writes v, clamped to [Min, Max], to the source.
func (c *DataCell) SetValue(v float64) {
	if c.Source == nil {
		return
	}
	if c.Max > c.Min {
		v = math.Min(math.Max(v, c.Min), c.Max)
	}
	if v == c.Source.Value() {
		return
	}
	c.Source.SetValue(v)
	if dv := c.view(); dv != nil {
		dv.CellChanged.Emit(c)
	}
}

// Display returns the text drawn for the cell.
func (c *DataCell) Display() string {
	if c.Source == nil {
		return c.Text
	}
	f := c.Format
	if f == "" {
		f = "%g"
	}
	return fmt.Sprintf(f, c.Source.Value())
}

func (c *DataCell) view() *DataView {
	if c.row == nil {
		return nil
	}
	return c.row.view
}

func (c *DataCell) DrawContent(dc *DrawContext, r Rect) {
	if s := c.Display(); s != "" {
		dc.DrawText(r, s, c.Style.Text)
	}
}

func (c *DataCell) HandleMouse(e MouseEvent) {
	dv := c.view()
	if c.Source == nil || dv == nil {
		return
	}
	switch e.Kind {
	case MouseDown:
		if e.Modifiers.Has(ModCtrl) {
			dv.touch(c, e.Time)
		}
	case MouseClick:
		c.gesture(dv, e, -1)
	case MouseRightClick:
		c.gesture(dv, e, 1)
	case MouseWheel:
		c.gesture(dv, e, e.Wheel)
	case MouseEnter:
		if e.Held && e.Modifiers.Has(ModCtrl) {
			dv.copyInto(c, e)
		}
	}
}

func (c *DataCell) gesture(dv *DataView, e MouseEvent, dir float64) {
	mods := e.Modifiers
	switch {
	case mods.Has(ModCtrl):
	case mods.Has(ModShift | ModAlt):
		for _, o := range c.row.cells {
			if o.Source == nil || o.Max <= o.Min {
				continue
			}
			if dir < 0 {
				o.SetValue(o.Min)
			} else {
				o.SetValue(o.Max)
			}
		}
	case mods.Has(ModShift):
		for _, o := range c.row.cells {
			if o.Source != nil {
				o.SetValue(o.Value() + dir*o.Step)
			}
		}
	default:
		c.SetValue(c.Value() + dir*c.Step)
	}
	dv.touch(c, e.Time)
}
