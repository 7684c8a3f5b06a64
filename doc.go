// Package wicker is a retained-mode UI layout and event engine for games.
//
// Wicker provides the node tree, size/anchor propagation, mouse event
// cascading, virtualized list and table widgets, and a window manager that
// every in-game tool window needs. It owns no framebuffer and reads no
// devices: a host supplies a [Surface] to draw on, an [Input] snapshot per
// frame, and a [TextMeasurer]. The ebitenhost and raylibhost packages are
// ready-made hosts.
//
// # Quick start
//
//	m := wicker.NewManager(wicker.DefaultConfig(), catalog, measurer)
//
//	win := wicker.NewWindow("inventory", wicker.Rect{X: 40, Y: 40, Width: 320, Height: 400})
//	list := wicker.NewListView("items", wicker.Vec2{X: 300, Y: 340})
//	list.SetPosition(wicker.Vec2{X: 10, Y: 30})
//	win.Root().Register(list)
//	m.Open(win)
//
//	// each frame:
//	m.Update(input)
//	m.Draw(surface)
//
// # Nodes
//
// Every element is a [Node]. Nodes form a tree per window; a child's bounds
// are relative to its parent. Size and position setters are idempotent: a
// change notifies observers once, then runs the propagation passes in a
// fixed order (inherit size/position, size with parent, position with
// parent, limit to parent) and recomputes anchored positions for the whole
// subtree. MaxSize 0 on an axis means unbounded; when MinSize exceeds
// MaxSize, MinSize wins.
//
// Widgets embed Node and opt into behavior through small interfaces:
// [Drawable], [Updatable], [InputHandler], [Sizable], [Scroller]. Widgets
// defined outside this package bind themselves with [Node.Bind].
//
// # Input
//
// Once per frame the [Manager] picks the topmost window under the pointer,
// hit-tests its tree and dispatches the classified events (down, click,
// right click, up, held, wheel). A parent and every hovered descendant that
// accepts input observe the same event. Double clicks are raised after the
// primary click. Child lists are snapshotted before every cascade, so
// handlers may add or remove nodes freely.
//
// # Collections
//
// [ListView] lays items out as a list, a row or a wrapping grid, supports
// collapsible [ListGroup]s, filtering and single, multi or sticky selection.
// [DataView] is a table with a header row and numeric cells. Both only draw,
// update and hit-test the items overlapping the viewport.
//
// # Resources
//
// Colors, textures and palettes live in a [ResourceCatalog] built at startup
// and frozen before use. Missing keys log once and fall back; they never fail
// a frame.
//
// # Tweens
//
// [TweenPosition], [TweenSize] and [TweenValue] wrap [gween]. Widgets that
// animate advance their own tweens from UpdateContent.
//
// # Testing
//
// [Recorder] is a Surface that records draw commands, and the Manager's
// Inject* methods and [ScriptRunner] drive input without a device.
//
// [gween]: https://github.com/tanema/gween
package wicker
