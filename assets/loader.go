// Package assets loads remote bitmaps and fonts for the share-image
// pipeline.
//
// loader.go implements the Loader molecule that fetches and decodes remote
// images (author avatars, vibe images) with a bounded timeout and a nil
// result on any failure.
//
// This molecule composes:
//   - core.Config: for the HTTP client and timeout budget
//   - net/http: for fetching
//   - image + stdlib decoders: for decoding
//   - logging.Logger: for structured logging
package assets

import (
	"bytes"
	"context"
	"image"
	"net/http"
	"time"

	// Registered decoders for the formats asset URLs serve in practice.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"vibe_backend/core"
	"vibe_backend/logging"

	"go.uber.org/zap"
)

// DefaultTimeout is the per-asset fetch budget when none is configured.
// The timeout is a race against the fetch, not a retry.
const DefaultTimeout = 3 * time.Second

// Loader fetches and decodes remote images.
//
// Thread Safety: Loader is safe for concurrent use. Each load creates its
// own HTTP request.
type Loader struct {
	client  *http.Client
	timeout time.Duration
	logger  *logging.Logger
}

// NewLoader creates a Loader from service configuration.
//
// Parameters:
//   - cfg: core.Config carrying the asset timeout (nil uses defaults)
//   - logger: structured logger (nil uses a no-op logger)
func NewLoader(cfg *core.Config, logger *logging.Logger) *Loader {
	timeout := DefaultTimeout
	if cfg != nil && cfg.AssetTimeout > 0 {
		timeout = cfg.AssetTimeout
	}
	if logger == nil {
		logger = logging.NewTestLogger()
	}
	return &Loader{
		client:  core.DefaultHTTPClient(cfg),
		timeout: timeout,
		logger:  logger.Named("assets"),
	}
}

// NewLoaderWithClient creates a Loader with an explicit HTTP client and
// timeout. Useful for testing against httptest servers.
func NewLoaderWithClient(client *http.Client, timeout time.Duration, logger *logging.Logger) *Loader {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = logging.NewTestLogger()
	}
	return &Loader{client: client, timeout: timeout, logger: logger.Named("assets")}
}

// LoadImage fetches a remote image and decodes it into a bitmap.
//
// The fetch races the configured timeout; whichever finishes first wins.
// On any failure - network error, non-200 status, undecodable payload, or
// timeout - the result is nil. Callers must treat nil as "draw placeholder",
// never as a fatal error. An empty url short-circuits to nil without a
// request.
//
// Never returns an error: asset failures are recovered locally by the
// caller substituting a deterministic placeholder.
func (l *Loader) LoadImage(ctx context.Context, url string) image.Image {
	if url == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		l.logger.Debug("asset request construction failed",
			zap.String("url", url),
			zap.Error(err))
		return nil
	}

	resp, err := l.client.Do(req)
	if err != nil {
		// Timeout and network failure land here; both mean placeholder.
		l.logger.Debug("asset fetch failed",
			zap.String("url", url),
			zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		l.logger.Debug("asset fetch returned non-200",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode))
		return nil
	}

	// Read fully before decoding so the timeout covers the body too.
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		l.logger.Debug("asset body read failed",
			zap.String("url", url),
			zap.Error(err))
		return nil
	}

	img, _, err := image.Decode(&buf)
	if err != nil {
		l.logger.Debug("asset decode failed",
			zap.String("url", url),
			zap.Error(err))
		return nil
	}
	return img
}

// Timeout returns the configured per-asset fetch budget.
func (l *Loader) Timeout() time.Duration {
	return l.timeout
}
