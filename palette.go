package wicker

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-json-experiment/json"
)

// Palette is a named set of colors that inherits every color it does not
// define from its parent.
type Palette struct {
	Name   string           `json:"name"`
	Parent string           `json:"parent,omitempty"`
	Colors map[string]Color `json:"colors"`
}

// splitPaletteKey splits "palette/color".
func splitPaletteKey(key string) (palette, color string, ok bool) {
	i := strings.IndexByte(key, '/')
	if i <= 0 || i == len(key)-1 {
		return "", "", false
	}
	return key[:i], key[i+1:], true
}

// chain returns the palette and its ancestors, nearest first.
func (c *ResourceCatalog) chain(name string) ([]*Palette, error) {
	var out []*Palette
	seen := make(map[string]bool)
	for cur := name; cur != ""; {
		if seen[cur] {
			return nil, fmt.Errorf("palette %q via %q: %w", name, cur, ErrPaletteCycle)
		}
		seen[cur] = true
		p, ok := c.palettes[cur]
		if !ok {
			if cur == name {
				return nil, fmt.Errorf("palette %q: %w", name, ErrUnknownPalette)
			}
			return nil, fmt.Errorf("palette %q parent %q: %w", name, cur, ErrUnknownParent)
		}
		out = append(out, p)
		cur = p.Parent
	}
	return out, nil
}

// ResolveColor returns field as seen by the named palette, walking up the
// parent chain.
func (c *ResourceCatalog) ResolveColor(name, field string) (Color, error) {
	chain, err := c.chain(name)
	if err != nil {
		return Color{}, err
	}
	for _, p := range chain {
		if col, ok := p.Colors[field]; ok {
			return col, nil
		}
	}
	return Color{}, fmt.Errorf("palette %q has no color %q", name, field)
}

// ResolvePalette returns every color visible to the named palette, with
// nearer palettes overriding their ancestors.
func (c *ResourceCatalog) ResolvePalette(name string) (map[string]Color, error) {
	chain, err := c.chain(name)
	if err != nil {
		return nil, err
	}
	out := make(map[string]Color)
	for _, p := range slices.Backward(chain) {
		for k, v := range p.Colors {
			out[k] = v
		}
	}
	return out, nil
}

// paletteFile is the on-disk palette sheet.
type paletteFile struct {
	Palettes []*Palette `json:"palettes"`
}

// LoadPalettes parses a palette sheet and registers every palette. Parent
// references are validated after loading; a cycle or a missing parent is an
// error.
func (c *ResourceCatalog) LoadPalettes(data []byte) error {
	var f paletteFile
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse palettes: %w", err)
	}
	for _, p := range f.Palettes {
		if p.Colors == nil {
			p.Colors = make(map[string]Color)
		}
		if err := c.AddPalette(p); err != nil {
			return err
		}
	}
	for _, p := range f.Palettes {
		if _, err := c.chain(p.Name); err != nil {
			return fmt.Errorf("load palettes: %w", err)
		}
	}
	return nil
}

// MarshalPalettes encodes every registered palette, sorted by name.
func (c *ResourceCatalog) MarshalPalettes() ([]byte, error) {
	f := paletteFile{Palettes: c.Palettes()}
	slices.SortFunc(f.Palettes, func(a, b *Palette) int { return strings.Compare(a.Name, b.Name) })
	data, err := json.Marshal(f, json.Deterministic(true))
	if err != nil {
		return nil, fmt.Errorf("encode palettes: %w", err)
	}
	return data, nil
}
