// Package render interprets layout instructions into pixels.
package render

import "errors"

// Sentinel errors for render operations.
// These are domain-specific errors that provide clear failure modes.
var (
	// ErrSurfaceUnavailable means the raster surface could not be created.
	// Fatal for the generation call; no retry.
	ErrSurfaceUnavailable = errors.New("render: raster surface unavailable")

	// ErrEncodeFailed means PNG encoding produced no blob.
	ErrEncodeFailed = errors.New("render: image encoding failed")

	// ErrEncodeTimeout means PNG encoding exceeded its time budget.
	ErrEncodeTimeout = errors.New("render: image encoding timed out")
)
