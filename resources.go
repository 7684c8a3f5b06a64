package wicker

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrCatalogFrozen is returned when adding to a catalog after Freeze.
	ErrCatalogFrozen = errors.New("wicker: resource catalog is frozen")
	// ErrUnknownPalette is returned when a palette name is not registered.
	ErrUnknownPalette = errors.New("wicker: unknown palette")
	// ErrUnknownParent is returned when a palette names a missing parent.
	ErrUnknownParent = errors.New("wicker: unknown parent palette")
	// ErrPaletteCycle is returned when palette parents form a cycle.
	ErrPaletteCycle = errors.New("wicker: palette parent cycle")
	// ErrWindowNotClosed is returned when opening a window that is already open.
	ErrWindowNotClosed = errors.New("wicker: window is not closed")
)

// ResourceCatalog holds the color, texture, and palette tables loaded once
// at startup. After Freeze it is read-only and safe to share; no node
// mutates it. Lookups that miss log once per key and fall back.
type ResourceCatalog struct {
	colors   map[string]Color
	textures map[string]Texture
	palettes map[string]*Palette
	frozen   bool

	// Fallback is returned by Color for missing keys.
	Fallback Color

	missMu sync.Mutex
	missed map[string]bool
}

// NewResourceCatalog returns an empty, unfrozen catalog with a magenta
// fallback color.
func NewResourceCatalog() *ResourceCatalog {
	return &ResourceCatalog{
		colors:   make(map[string]Color),
		textures: make(map[string]Texture),
		palettes: make(map[string]*Palette),
		Fallback: Color{1, 0, 1, 1},
		missed:   make(map[string]bool),
	}
}

// Freeze makes the catalog read-only.
func (c *ResourceCatalog) Freeze() { c.frozen = true }

// Frozen reports whether Freeze has been called.
func (c *ResourceCatalog) Frozen() bool { return c.frozen }

// AddColor registers a color under key.
func (c *ResourceCatalog) AddColor(key string, col Color) error {
	if c.frozen {
		return fmt.Errorf("add color %q: %w", key, ErrCatalogFrozen)
	}
	c.colors[key] = col
	return nil
}

// AddTexture registers a texture under key (typically its path).
func (c *ResourceCatalog) AddTexture(key string, tex Texture) error {
	if c.frozen {
		return fmt.Errorf("add texture %q: %w", key, ErrCatalogFrozen)
	}
	c.textures[key] = tex
	return nil
}

// AddPalette registers p. Parents are resolved lazily, so palettes may be
// added in any order.
func (c *ResourceCatalog) AddPalette(p *Palette) error {
	if c.frozen {
		return fmt.Errorf("add palette %q: %w", p.Name, ErrCatalogFrozen)
	}
	c.palettes[p.Name] = p
	return nil
}

// LookupColor returns the color for key and whether it exists. Keys of the
// form "palette/color" resolve through the palette hierarchy.
func (c *ResourceCatalog) LookupColor(key string) (Color, bool) {
	if col, ok := c.colors[key]; ok {
		return col, true
	}
	if name, field, ok := splitPaletteKey(key); ok {
		if col, err := c.ResolveColor(name, field); err == nil {
			return col, true
		}
	}
	return Color{}, false
}

// Color returns the color for key, or Fallback when it is missing.
func (c *ResourceCatalog) Color(key string) Color {
	return c.ColorOr(key, c.Fallback)
}

// ColorOr returns the color for key, or fallback when it is missing. A miss
// degrades visual fidelity but never fails the frame.
func (c *ResourceCatalog) ColorOr(key string, fallback Color) Color {
	if col, ok := c.LookupColor(key); ok {
		return col
	}
	c.reportMiss("color", key)
	return fallback
}

// Texture returns the texture for key, or nil when it is missing.
func (c *ResourceCatalog) Texture(key string) Texture {
	if tex, ok := c.textures[key]; ok {
		return tex
	}
	c.reportMiss("texture", key)
	return nil
}

// Palette returns the named palette.
func (c *ResourceCatalog) Palette(name string) (*Palette, error) {
	p, ok := c.palettes[name]
	if !ok {
		return nil, fmt.Errorf("palette %q: %w", name, ErrUnknownPalette)
	}
	return p, nil
}

// Palettes returns every registered palette.
func (c *ResourceCatalog) Palettes() []*Palette {
	out := make([]*Palette, 0, len(c.palettes))
	for _, p := range c.palettes {
		out = append(out, p)
	}
	return out
}

func (c *ResourceCatalog) reportMiss(kind, key string) {
	c.missMu.Lock()
	seen := c.missed[kind+":"+key]
	c.missed[kind+":"+key] = true
	c.missMu.Unlock()
	if !seen {
		logf("missing %s %q, using fallback", kind, key)
	}
}
