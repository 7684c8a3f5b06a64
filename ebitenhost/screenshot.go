package ebitenhost

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
)

// screenshotter writes frames requested by script "screenshot" steps. Files
// are named <label>_<frame>.png so a script can request the same label on
// several frames.
type screenshotter struct {
	dir   string
	frame int
}

// capture reads the rendered frame back once and writes one PNG per label.
func (s *screenshotter) capture(screen *ebiten.Image, labels []string) error {
	s.frame++
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("screenshot dir: %w", err)
	}
	b := screen.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, b.Dx(), b.Dy())

	var errs []error
	for _, label := range labels {
		name := fmt.Sprintf("%s_%05d.png", sanitizeLabel(label), s.frame)
		if err := writePNG(filepath.Join(s.dir, name), img); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// unpremultiply converts ReadPixels output (premultiplied RGBA) to
// straight-alpha NRGBA for PNG encoding.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	n := min(len(pixels), len(img.Pix))
	for i := 0; i+3 < n; i += 4 {
		px := pixels[i : i+4 : i+4]
		a := int(px[3])
		out := img.Pix[i : i+4 : i+4]
		out[3] = px[3]
		for c := range 3 {
			v := int(px[c])
			if a > 0 && a < 255 {
				v = min(v*255/a, 255)
			}
			out[c] = uint8(v)
		}
	}
	return img
}

func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// sanitizeLabel keeps letters, digits, '-' and '.', replacing every other
// rune with '_'.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '.' {
			return r
		}
		return '_'
	}, label)
}
