// Package assets loads remote bitmaps and fonts for the share-image
// pipeline.
//
// cover.go implements the cover-crop atom used when a loaded bitmap must
// fill a target box with a different aspect ratio.
package assets

import (
	"image"

	"github.com/disintegration/imaging"
)

// CoverCrop scales and center-crops src to exactly fill width x height,
// the way CSS object-fit: cover does: the source/target aspect ratios are
// compared and the longer axis is cropped to center.
//
// A nil src or non-positive target yields nil; callers already treat nil
// bitmaps as "draw placeholder".
func CoverCrop(src image.Image, width, height int) image.Image {
	if src == nil || width <= 0 || height <= 0 {
		return nil
	}
	return imaging.Fill(src, width, height, imaging.Center, imaging.Lanczos)
}

// FitDown scales src down to fit within width x height preserving aspect
// ratio. Sources already within bounds are returned unscaled.
func FitDown(src image.Image, width, height int) image.Image {
	if src == nil || width <= 0 || height <= 0 {
		return nil
	}
	bounds := src.Bounds()
	if bounds.Dx() <= width && bounds.Dy() <= height {
		return src
	}
	return imaging.Fit(src, width, height, imaging.Lanczos)
}
