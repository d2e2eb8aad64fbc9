// Package assets loads remote bitmaps and fonts for the share-image
// pipeline.
//
// fonts.go implements the FontPool molecule: truetype parsing, per-size
// face caching, and a bitmap fallback so text rendering never fails for
// want of a font.
package assets

import (
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// systemFontCandidates are probed in order when no explicit font path is
// configured.
var systemFontCandidates = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/Library/Fonts/Arial.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"C:\\Windows\\Fonts\\arial.ttf",
}

// FontPool parses one TTF and hands out cached faces per point size.
// When no TTF can be found it falls back to the built-in bitmap face,
// which keeps rendering alive at reduced fidelity.
//
// Thread Safety: safe for concurrent use; faces are cached under a mutex.
type FontPool struct {
	mu    sync.Mutex
	ttf   *truetype.Font
	faces map[float64]font.Face
}

// NewFontPool creates a FontPool from an explicit TTF path, or by probing
// system candidates when the path is empty. The pool never fails: with no
// usable TTF it serves the bitmap fallback face.
func NewFontPool(fontPath string) *FontPool {
	pool := &FontPool{faces: make(map[float64]font.Face)}

	paths := systemFontCandidates
	if fontPath != "" {
		paths = append([]string{fontPath}, paths...)
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		parsed, err := truetype.Parse(data)
		if err != nil {
			continue
		}
		pool.ttf = parsed
		break
	}
	return pool
}

// NewFontPoolFromBytes creates a FontPool from in-memory TTF data.
// Useful for tests with a known font.
func NewFontPoolFromBytes(data []byte) *FontPool {
	pool := &FontPool{faces: make(map[float64]font.Face)}
	if parsed, err := truetype.Parse(data); err == nil {
		pool.ttf = parsed
	}
	return pool
}

// Face returns a font.Face for the given point size. Faces are cached per
// size. With no parsed TTF the bitmap fallback is returned for every size.
func (p *FontPool) Face(size float64) font.Face {
	if p.ttf == nil {
		return basicfont.Face7x13
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if face, ok := p.faces[size]; ok {
		return face
	}
	face := truetype.NewFace(p.ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	p.faces[size] = face
	return face
}

// MeasureString returns the advance width in pixels of s at the given point
// size. This is the text-measurement function handed to the layout engine's
// word wrap.
func (p *FontPool) MeasureString(s string, size float64) float64 {
	advance := font.MeasureString(p.Face(size), s)
	return float64(advance) / 64
}

// HasTrueType reports whether a real TTF was loaded (false means bitmap
// fallback output).
func (p *FontPool) HasTrueType() bool {
	return p.ttf != nil
}
