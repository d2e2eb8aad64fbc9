// Package theme resolves a concrete drawing palette from a light/dark hint
// or a sampled background color.
//
// palette.go defines the Palette type and the two built-in palettes. A
// palette is resolved once per render call and never mutated mid-render.
package theme

import "image/color"

// Palette is the resolved set of named colors used by the renderer.
type Palette struct {
	Background color.RGBA
	Foreground color.RGBA
	Primary    color.RGBA
	Secondary  color.RGBA
	Muted      color.RGBA
	Card       color.RGBA
	Border     color.RGBA
	Accent     color.RGBA
	Shadow     color.RGBA
	IsDark     bool
}

// Light returns the light-mode palette.
func Light() Palette {
	return Palette{
		Background: color.RGBA{250, 250, 252, 255},
		Foreground: color.RGBA{24, 24, 27, 255},
		Primary:    color.RGBA{124, 58, 237, 255},
		Secondary:  color.RGBA{82, 82, 91, 255},
		Muted:      color.RGBA{161, 161, 170, 255},
		Card:       color.RGBA{255, 255, 255, 255},
		Border:     color.RGBA{228, 228, 231, 255},
		Accent:     color.RGBA{236, 72, 153, 255},
		Shadow:     color.RGBA{0, 0, 0, 40},
		IsDark:     false,
	}
}

// Dark returns the dark-mode palette.
func Dark() Palette {
	return Palette{
		Background: color.RGBA{24, 24, 27, 255},
		Foreground: color.RGBA{250, 250, 250, 255},
		Primary:    color.RGBA{167, 139, 250, 255},
		Secondary:  color.RGBA{212, 212, 216, 255},
		Muted:      color.RGBA{113, 113, 122, 255},
		Card:       color.RGBA{39, 39, 42, 255},
		Border:     color.RGBA{63, 63, 70, 255},
		Accent:     color.RGBA{244, 114, 182, 255},
		Shadow:     color.RGBA{0, 0, 0, 120},
		IsDark:     true,
	}
}
