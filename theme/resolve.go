// Package theme resolves a concrete drawing palette from a light/dark hint
// or a sampled background color.
//
// resolve.go implements the resolver atoms: hint parsing, the luminance
// heuristic, and hex color parsing. All functions here are pure and always
// return a value; there are no error conditions.
package theme

import (
	"image/color"
	"strings"
)

// Hint is an explicit theme marker carried with a render request.
type Hint string

const (
	// HintLight forces the light palette.
	HintLight Hint = "light"

	// HintDark forces the dark palette.
	HintDark Hint = "dark"

	// HintAuto defers to the background sample heuristic.
	HintAuto Hint = ""
)

// ParseHint normalizes a raw hint string. Unrecognized values map to
// HintAuto.
func ParseHint(raw string) Hint {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "light":
		return HintLight
	case "dark":
		return HintDark
	default:
		return HintAuto
	}
}

// Resolve produces the palette for a render call. An explicit hint wins;
// otherwise the background sample decides via IsDarkColor. A nil sample
// with no hint resolves to the light palette.
func Resolve(hint Hint, backgroundSample color.Color) Palette {
	switch hint {
	case HintLight:
		return Light()
	case HintDark:
		return Dark()
	}
	if backgroundSample != nil && IsDarkColor(backgroundSample) {
		return Dark()
	}
	return Light()
}

// IsDarkColor reports whether a color reads as dark using the relative
// luminance heuristic L = 0.299R + 0.587G + 0.114B on channels normalized
// to [0,1]; dark iff L < 0.5.
func IsDarkColor(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	l := 0.299*float64(r)/65535 + 0.587*float64(g)/65535 + 0.114*float64(b)/65535
	return l < 0.5
}

// ParseHex parses "#RGB" or "#RRGGBB" into an RGBA color. The ok result is
// false for malformed input, in which case the zero color is returned.
func ParseHex(s string) (color.RGBA, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")

	var digits string
	switch len(s) {
	case 3:
		// Expand shorthand: "abc" -> "aabbcc"
		var b strings.Builder
		for _, r := range s {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		digits = b.String()
	case 6:
		digits = s
	default:
		return color.RGBA{}, false
	}

	var channels [3]uint8
	for i := 0; i < 3; i++ {
		hi, ok1 := hexVal(digits[i*2])
		lo, ok2 := hexVal(digits[i*2+1])
		if !ok1 || !ok2 {
			return color.RGBA{}, false
		}
		channels[i] = hi<<4 | lo
	}
	return color.RGBA{R: channels[0], G: channels[1], B: channels[2], A: 255}, true
}

func hexVal(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	default:
		return 0, false
	}
}
