// Package composer orchestrates end-to-end share-image generation.
//
// key.go implements the cache-key atom: a stable hash over everything that
// influences the rendered pixels.
package composer

import (
	"encoding/hex"
	"encoding/json"

	"golang.org/x/crypto/blake2b"

	"vibe_backend/layout"
)

// cacheKey derives a stable key for a render. Renders are idempotent given
// identical inputs and palette, so the key covers the full request, the
// resolved layout option (presets included), and the dark/light bit. Asset
// availability is deliberately excluded: a cached frame rendered with
// loaded assets stays valid, and a placeholder frame is only reused for
// identical inputs anyway.
func cacheKey(req Request, opt layout.Option, isDark bool) string {
	payload := struct {
		Request Request       `json:"request"`
		Option  layout.Option `json:"option"`
		IsDark  bool          `json:"isDark"`
	}{req, opt, isDark}

	// Marshal cannot fail for these plain types; the fallback keeps the
	// signature honest anyway.
	data, err := json.Marshal(payload)
	if err != nil {
		return ""
	}

	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}
