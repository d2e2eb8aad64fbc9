// Package composer orchestrates end-to-end share-image generation: theme
// resolution, asset loading, layout, rendering, and encoding.
//
// generator.go implements the Generator organism.
//
// This organism composes:
//   - theme.Resolve for the palette
//   - assets.Loader for avatar/image bitmaps (placeholder on failure)
//   - layout.Compute for the instruction list
//   - render.Renderer for the composited frame
//   - render.EncodePNG for the bounded encode
//   - an optional BlobCache for idempotent-render reuse
//   - logging.Logger for correlation-id structured logging
package composer

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vibe_backend/assets"
	"vibe_backend/core"
	"vibe_backend/layout"
	"vibe_backend/logging"
	"vibe_backend/render"
	"vibe_backend/theme"
	"vibe_backend/vibe"
)

// Request is the immutable input to one generation.
type Request struct {
	Vibe      vibe.Vibe      `json:"vibe"`
	Variant   layout.Variant `json:"variant"`
	ThemeHint theme.Hint     `json:"themeHint"`
	ShareURL  string         `json:"shareUrl,omitempty"`
}

// BlobCache stores encoded blobs keyed by render-input hash. Renders are
// idempotent given identical inputs, so a hit is byte-valid. A nil cache
// disables reuse.
type BlobCache interface {
	// Get returns the cached blob, or nil on miss. Errors are treated as
	// misses by the Generator.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores a blob. Failures are logged, never fatal.
	Put(ctx context.Context, key string, blob []byte) error
}

// Generator runs the full pipeline for one request at a time per call.
// The raster surface is exclusively owned by a single Generate call for
// its duration; concurrent calls each get their own.
//
// Thread Safety: Generator is safe for concurrent use.
type Generator struct {
	loader        *assets.Loader
	renderer      *render.Renderer
	presets       *layout.Presets
	cache         BlobCache
	logger        *logging.Logger
	encodeTimeout time.Duration
}

// NewGenerator assembles a Generator.
//
// Parameters:
//   - loader: asset loader (nil creates a default one)
//   - renderer: instruction interpreter (nil creates a default one)
//   - presets: layout preset overrides (nil uses built-ins)
//   - blobCache: optional render cache (nil disables caching)
//   - logger: structured logger (nil uses a no-op logger)
//   - cfg: service config for the encode timeout (nil uses defaults)
func NewGenerator(loader *assets.Loader, renderer *render.Renderer, presets *layout.Presets, blobCache BlobCache, logger *logging.Logger, cfg *core.Config) *Generator {
	if logger == nil {
		logger = logging.NewTestLogger()
	}
	if loader == nil {
		loader = assets.NewLoader(cfg, logger)
	}
	if renderer == nil {
		renderer = render.NewRenderer(nil)
	}
	encodeTimeout := render.DefaultEncodeTimeout
	if cfg != nil && cfg.EncodeTimeout > 0 {
		encodeTimeout = cfg.EncodeTimeout
	}
	return &Generator{
		loader:        loader,
		renderer:      renderer,
		presets:       presets,
		cache:         blobCache,
		logger:        logger.Named("composer"),
		encodeTimeout: encodeTimeout,
	}
}

// Generate runs the full pipeline and returns the encoded PNG blob.
//
// The flow is:
//  1. Resolve the palette from the theme hint (pure, no DOM reads)
//  2. Check the render cache
//  3. Load avatar and content image concurrently; failures become
//     placeholders, never abort the render
//  4. Compute the layout instruction list
//  5. Render the frame on a surface owned exclusively by this call
//  6. Encode to PNG within the encode budget
//  7. Store the blob in the cache
//
// Asset failures are recovered silently via placeholder substitution.
// Surface and encode failures are fatal for this call and return
// render.ErrSurfaceUnavailable / ErrEncodeFailed / ErrEncodeTimeout.
// Cancelling ctx aborts in-flight asset loads and the encode wait.
func (g *Generator) Generate(ctx context.Context, req Request) ([]byte, error) {
	correlationID := uuid.NewString()
	log := g.logger.With(
		zap.String("correlation_id", correlationID),
		zap.String("variant", string(req.Variant)),
	)

	start := time.Now()
	opt := g.presets.Apply(layout.ParseVariant(string(req.Variant)))
	pal := theme.Resolve(req.ThemeHint, nil)

	key := cacheKey(req, opt, pal.IsDark)
	if g.cache != nil {
		if blob, err := g.cache.Get(ctx, key); err == nil && len(blob) > 0 {
			log.Debug("render cache hit", zap.Int("bytes", len(blob)))
			return blob, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Load both bitmaps concurrently; each races the asset timeout
	// independently.
	var bitmaps render.Bitmaps
	var wg sync.WaitGroup
	if opt.IncludeImage && req.Vibe.ImageURL != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bitmaps.ContentImage = g.loader.LoadImage(ctx, req.Vibe.ImageURL)
		}()
	}
	if req.Vibe.Author.AvatarURL != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bitmaps.Avatar = g.loader.LoadImage(ctx, req.Vibe.Author.AvatarURL)
		}()
	}
	wg.Wait()

	if bitmaps.ContentImage == nil && req.Vibe.ImageURL != "" {
		log.Debug("content image unavailable, using placeholder")
	}
	if bitmaps.Avatar == nil && req.Vibe.Author.AvatarURL != "" {
		log.Debug("avatar unavailable, using initials")
	}

	content := layout.Content{
		Vibe:      req.Vibe,
		HasImage:  bitmaps.ContentImage != nil,
		HasAvatar: bitmaps.Avatar != nil,
		ShareURL:  req.ShareURL,
	}
	ins := layout.Compute(opt, content, g.renderer.Fonts())

	frame, err := g.renderer.Render(ins, pal, bitmaps, opt.Width, opt.Height)
	if err != nil {
		log.Error("render failed", zap.Error(err))
		return nil, err
	}

	blob, err := render.EncodePNG(ctx, frame, g.encodeTimeout)
	if err != nil {
		log.Error("encode failed", zap.Error(err))
		return nil, err
	}

	if g.cache != nil {
		if err := g.cache.Put(ctx, key, blob); err != nil {
			log.Warn("render cache store failed", zap.Error(err))
		}
	}

	log.Info("share image generated",
		zap.Int("width", opt.Width),
		zap.Int("height", opt.Height),
		zap.Int("bytes", len(blob)),
		zap.Duration("elapsed", time.Since(start)))

	return blob, nil
}
