package wicker

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
)

var (
	globalDebug bool
	logMu       sync.Mutex
	logOutput   io.Writer = os.Stderr
)

// SetDebug toggles debug mode. In debug mode structural misuse panics and
// the tree depth / child count checks run on every Register.
func SetDebug(enabled bool) {
	globalDebug = enabled
}

// SetLogOutput redirects diagnostics. A nil writer discards them.
func SetLogOutput(w io.Writer) {
	logMu.Lock()
	defer logMu.Unlock()
	if w == nil {
		w = io.Discard
	}
	logOutput = w
}

// logf prints a diagnostic line prefixed with [wicker].
func logf(format string, args ...any) {
	logMu.Lock()
	defer logMu.Unlock()
	_, _ = fmt.Fprintf(logOutput, "[wicker] "+format+"\n", args...)
}

// misuse reports a caller bug: it panics in debug mode and logs otherwise.
func misuse(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if globalDebug {
		panic("wicker debug: " + msg)
	}
	logf("warning: %s", msg)
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		logf("warning: tree depth %d exceeds %d (node %q)", depth, debugMaxTreeDepth, n.ID)
	}
}

// debugCheckChildCount warns if a node has more than 1000 children. List and
// table widgets virtualize, so large counts there are expected but still
// worth knowing about while debugging.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		logf("warning: node %q has %d children (threshold %d)", n.ID, len(n.children), debugMaxChildCount)
	}
}

var (
	debugHiddenStyle = lipgloss.NewStyle().Faint(true)
	debugHoverStyle  = lipgloss.NewStyle().Bold(true)
)

// DebugTree renders the subtree rooted at n as an indented tree, one line
// per node with its ID, bounds, and state.
func DebugTree(n *Node) string {
	return debugTreeNode(n).String()
}

func debugTreeNode(n *Node) *tree.Tree {
	t := tree.Root(debugLabel(n))
	for _, c := range n.children {
		t.Child(debugTreeNode(c))
	}
	return t
}

func debugLabel(n *Node) string {
	id := n.ID
	if id == "" {
		id = fmt.Sprintf("#%d", n.uid)
	}
	b := n.bounds
	label := fmt.Sprintf("%s %T (%g,%g %gx%g)", id, n.Element(), b.X, b.Y, b.Width, b.Height)
	switch {
	case !n.visible:
		return debugHiddenStyle.Render(label + " hidden")
	case n.mouseOver:
		return debugHoverStyle.Render(label + " hover")
	}
	return label
}
