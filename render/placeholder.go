// Package render interprets layout instructions into pixels.
//
// placeholder.go holds the fixed gradient table for image placeholders.
// The layout engine picks the index (hash of title mod 6); this file owns
// the colors.
package render

import "image/color"

// gradientPairs are the six placeholder gradients, top color to bottom
// color. Order is fixed: changing it changes which vibe gets which
// placeholder.
var gradientPairs = [6][2]color.RGBA{
	{{139, 92, 246, 255}, {236, 72, 153, 255}},  // violet -> pink
	{{59, 130, 246, 255}, {16, 185, 129, 255}},  // blue -> emerald
	{{249, 115, 22, 255}, {239, 68, 68, 255}},   // orange -> red
	{{20, 184, 166, 255}, {99, 102, 241, 255}},  // teal -> indigo
	{{234, 179, 8, 255}, {249, 115, 22, 255}},   // amber -> orange
	{{168, 85, 247, 255}, {59, 130, 246, 255}},  // purple -> blue
}

// GradientPair returns the colors for a placeholder gradient index.
// Out-of-range indexes wrap, so any int is safe.
func GradientPair(index int) (top, bottom color.RGBA) {
	i := index % len(gradientPairs)
	if i < 0 {
		i += len(gradientPairs)
	}
	return gradientPairs[i][0], gradientPairs[i][1]
}

// placeholderTextColor is the contrasting overlay color for placeholder
// titles. All six gradients are mid-saturation, so white with a shadow
// reads on every pair.
var placeholderTextColor = color.RGBA{255, 255, 255, 255}
