package wicker

import (
	"strings"

	"golang.org/x/text/cases"
)

// Search is a text input with a clear button that filters a ListView by
// item text. Matching is case-insensitive using Unicode case folding.
type Search struct {
	Node
	Input *TextInput
	Clear *Button

	// Live filters on every edit; otherwise the filter applies when typing
	// finishes or on Enter.
	Live bool

	list  *ListView
	fold  cases.Caser
	query string
}

// NewSearch creates a search box filtering list. The input fills the box
// minus a square clear button on the right.
func NewSearch(id string, list *ListView, height float64) *Search {
	s := &Search{list: list, fold: cases.Fold()}
	s.init(s, id)
	s.SetSize(Vec2{height * 6, height})

	s.Clear = NewButton(id+".clear", "x")
	s.Clear.SetSize(Vec2{height, height})
	s.Clear.SetAnchor(AnchorTopRight)
	s.Clear.Clicked.Connect(func(MouseEvent) { s.Reset() })

	s.Input = NewTextInput(id + ".input")
	s.Input.Placeholder = "Search"
	s.Input.InheritParentWidth = true
	s.Input.InheritParentHeight = true
	s.Input.InheritParentSizeModifier = Vec2{-height, 0}

	s.Register(s.Input)
	s.Register(s.Clear)

	s.Input.Changed.Connect(func(q string) {
		if s.Live {
			s.apply(q)
		}
	})
	s.Input.TypingFinished.Connect(s.apply)
	s.Input.Submitted.Connect(s.apply)
	return s
}

// Query returns the folded query currently applied.
func (s *Search) Query() string { return s.query }

// Reset clears the input and removes the filter.
func (s *Search) Reset() {
	s.Input.SetText("")
	s.apply("")
}

func (s *Search) apply(q string) {
	q = s.fold.String(strings.TrimSpace(q))
	if q == s.query {
		return
	}
	s.query = q
	if s.list == nil {
		return
	}
	if q == "" {
		s.list.SetFilter(nil)
		return
	}
	s.list.SetFilter(func(it *ListItem) bool {
		return strings.Contains(s.fold.String(it.Text), q)
	})
}
