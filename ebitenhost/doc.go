// Package ebitenhost runs a wicker window manager on [Ebitengine].
//
// It supplies the three host capabilities the engine needs: a [Surface]
// that draws onto an *ebiten.Image, a [Poller] that turns Ebitengine's input
// state into a wicker.Input once per tick, and [Fonts], a text/v2 based
// wicker.TextMeasurer.
//
// The simplest way to get started is [Run]:
//
//	fonts, _ := ebitenhost.DefaultFonts(14)
//	m := wicker.NewManager(wicker.DefaultConfig(), catalog, fonts)
//	m.Open(win)
//	ebitenhost.Run(m, ebitenhost.RunConfig{Title: "Inventory", Width: 960, Height: 640, Fonts: fonts})
//
// For full control, implement [ebiten.Game] yourself and drive a [Game]'s
// Update and Draw from it.
//
// [Ebitengine]: https://ebitengine.org
package ebitenhost
