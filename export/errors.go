// Package export delivers encoded share images: file downloads, the share
// hook, and the clipboard.
package export

import "errors"

// Sentinel errors for export operations.
var (
	// ErrEmptyBlob means the caller passed no image data.
	ErrEmptyBlob = errors.New("export: blob is empty")

	// ErrShareHookFailed means the share hook transport genuinely failed
	// (as opposed to being unconfigured or declining, which soft-fail).
	ErrShareHookFailed = errors.New("export: share hook request failed")

	// ErrClipboardFailed means the clipboard utility exists but the write
	// failed.
	ErrClipboardFailed = errors.New("export: clipboard write failed")
)
