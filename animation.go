package wicker

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 2 float64 values simultaneously. Create one via
// the convenience constructors (TweenPosition, TweenSize, TweenValue) and
// call Update(dt) each frame. Node tweens go through the node's setters so
// propagation and anchoring run as if the caller had set the value.
//
// There is no global animation manager. Widgets that animate own their
// groups and advance them from UpdateContent.
type TweenGroup struct {
	tweens   [2]*gween.Tween
	count    int
	values   [2]float64
	duration float32
	apply    func(v [2]float64)
	Done     bool
}

// Update advances all tweens by dt seconds and applies the values.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		g.values[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
	g.apply(g.values)
}

// Finish jumps every tween to its end value.
func (g *TweenGroup) Finish() {
	if g.Done {
		return
	}
	for i := 0; i < g.count; i++ {
		g.values[i], _ = float64ok(g.tweens[i].Set(g.duration))
	}
	g.Done = true
	g.apply(g.values)
}

func newTweenGroup(from, to []float64, duration float32, fn ease.TweenFunc, apply func([2]float64)) *TweenGroup {
	g := &TweenGroup{count: len(from), duration: duration, apply: apply}
	for i := range from {
		g.tweens[i] = gween.New(float32(from[i]), float32(to[i]), duration, fn)
		g.values[i] = from[i]
	}
	return g
}

// TweenPosition creates a TweenGroup that moves node to the target position.
func TweenPosition(node *Node, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	p := node.Position()
	return newTweenGroup([]float64{p.X, p.Y}, []float64{to.X, to.Y}, duration, fn, func(v [2]float64) {
		node.SetPosition(Vec2{v[0], v[1]})
	})
}

// TweenSize creates a TweenGroup that resizes node to the target size.
func TweenSize(node *Node, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	s := node.Size()
	return newTweenGroup([]float64{s.X, s.Y}, []float64{to.X, to.Y}, duration, fn, func(v [2]float64) {
		node.SetSize(Vec2{v[0], v[1]})
	})
}

// TweenValue creates a TweenGroup that animates *field to the target value.
func TweenValue(field *float64, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup([]float64{*field}, []float64{to}, duration, fn, func(v [2]float64) {
		*field = v[0]
	})
}

func float64ok(v float32, ok bool) (float64, bool) { return float64(v), ok }
