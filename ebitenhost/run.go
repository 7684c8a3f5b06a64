package ebitenhost

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/wicker"
)

// RunConfig configures Run.
type RunConfig struct {
	Title         string
	Width, Height int
	Background    wicker.Color
	Fonts         *Fonts // nil loads DefaultFonts(14)
	ShowFPS       bool
	ScreenshotDir string // default "screenshots"
	Resizable     bool
}

// Game adapts a wicker.Manager to ebiten.Game.
type Game struct {
	m       *wicker.Manager
	cfg     RunConfig
	poller  Poller
	surface *Surface
	fps     *FPSLabel
	shots   screenshotter
}

// NewGame creates a Game for m.
func NewGame(m *wicker.Manager, cfg RunConfig) (*Game, error) {
	if cfg.Fonts == nil {
		f, err := DefaultFonts(14)
		if err != nil {
			return nil, err
		}
		cfg.Fonts = f
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}
	g := &Game{m: m, cfg: cfg, surface: NewSurface(cfg.Fonts)}
	g.shots.dir = cfg.ScreenshotDir
	if cfg.ShowFPS {
		g.fps = NewFPSLabel()
	}
	return g, nil
}

func (g *Game) Update() error {
	in := g.poller.Poll()
	g.m.Update(in)
	if g.fps != nil {
		g.fps.Update(&wicker.Frame{Input: &in, Measurer: g.cfg.Fonts, Config: g.m.Config()})
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if !g.cfg.Background.IsZero() {
		screen.Fill(g.cfg.Background.RGBA())
	}
	g.surface.Begin(screen)
	g.m.Draw(g.surface)
	if g.fps != nil {
		g.fps.Draw(&wicker.DrawContext{Surface: g.surface, Catalog: g.m.Catalog(), Measurer: g.cfg.Fonts})
	}
	if labels := g.m.ScreenshotRequests(); len(labels) > 0 {
		if err := g.shots.capture(screen, labels); err != nil {
			fmt.Fprintf(os.Stderr, "[wicker] screenshot: %v\n", err)
		}
	}
}

func (g *Game) Layout(w, h int) (int, int) {
	g.m.Config().ScreenSize = wicker.Vec2{X: float64(w), Y: float64(h)}
	return w, h
}

// Run opens a window and runs m until the window closes.
func Run(m *wicker.Manager, cfg RunConfig) error {
	g, err := NewGame(m, cfg)
	if err != nil {
		return err
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
		m.Config().ScreenSize = wicker.Vec2{X: float64(cfg.Width), Y: float64(cfg.Height)}
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("ebitenhost: run: %w", err)
	}
	return nil
}
