package export

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"vibe_backend/core"
	"vibe_backend/logging"

	"go.uber.org/zap"
)

// ShareMetadata accompanies a shared image so the receiving hook can build
// a caption and link.
type ShareMetadata struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
}

// Exporter delivers finished PNG blobs to their destinations.
//
// This molecule composes:
// - Tracked file downloads into the configured output directory
// - An optional HTTP share hook (web-share analogue)
// - An optional system clipboard utility
//
// Share and clipboard follow a soft-fail contract: an unavailable or
// declining destination returns (false, nil), never an error. Only genuine
// transport or I/O failures surface as errors.
type Exporter struct {
	outputDir    string
	shareHookURL string
	clipboardCmd string
	client       *http.Client
	logger       *logging.Logger

	mu        sync.Mutex
	artifacts map[string]struct{}
}

// NewExporter builds an Exporter from the application config.
func NewExporter(cfg *core.Config, logger *logging.Logger) *Exporter {
	if logger == nil {
		logger = logging.NewTestLogger()
	}
	return &Exporter{
		outputDir:    cfg.OutputDir,
		shareHookURL: cfg.ShareHookURL,
		clipboardCmd: cfg.ClipboardCommand,
		client:       core.DefaultHTTPClient(cfg),
		logger:       logger.Named("export"),
		artifacts:    make(map[string]struct{}),
	}
}

// Download writes blob to a uniquely named PNG file under the output
// directory and returns its path. The file is tracked so Cleanup can remove
// it exactly once.
func (e *Exporter) Download(blob []byte, baseName string) (string, error) {
	if len(blob) == 0 {
		return "", ErrEmptyBlob
	}
	name := sanitizeBaseName(baseName)
	path := filepath.Join(e.outputDir, fmt.Sprintf("%s-%d.png", name, time.Now().UnixNano()))

	tmp := path + ".part"
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		return "", fmt.Errorf("export: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("export: finalize %s: %w", path, err)
	}

	e.mu.Lock()
	e.artifacts[path] = struct{}{}
	e.mu.Unlock()

	e.logger.Info("wrote share image",
		zap.String("path", path),
		zap.Int("bytes", len(blob)))
	return path, nil
}

// RemoveArtifact deletes a previously downloaded file. Removal happens at
// most once per path; unknown or already-removed paths are a no-op.
func (e *Exporter) RemoveArtifact(path string) {
	e.mu.Lock()
	_, tracked := e.artifacts[path]
	delete(e.artifacts, path)
	e.mu.Unlock()
	if !tracked {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		e.logger.Warn("failed to remove artifact",
			zap.String("path", path),
			zap.Error(err))
	}
}

// Cleanup removes every tracked artifact. Safe to call multiple times.
func (e *Exporter) Cleanup() {
	e.mu.Lock()
	paths := make([]string, 0, len(e.artifacts))
	for p := range e.artifacts {
		paths = append(paths, p)
	}
	e.artifacts = make(map[string]struct{})
	e.mu.Unlock()

	for _, p := range paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			e.logger.Warn("failed to remove artifact",
				zap.String("path", p),
				zap.Error(err))
		}
	}
}

// Share posts the blob to the configured share hook.
//
// Returns:
// - (true, nil) when the hook accepted the image
// - (false, nil) when no hook is configured, the hook declined (HTTP 4xx),
//   or the caller cancelled the context
// - (false, error) on genuine transport failures
func (e *Exporter) Share(ctx context.Context, blob []byte, meta ShareMetadata) (bool, error) {
	if len(blob) == 0 {
		return false, ErrEmptyBlob
	}
	if e.shareHookURL == "" {
		e.logger.Debug("share hook not configured, skipping")
		return false, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.shareHookURL, bytes.NewReader(blob))
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrShareHookFailed, err)
	}
	req.Header.Set("Content-Type", "image/png")
	req.Header.Set("X-Share-Title", meta.Title)
	req.Header.Set("X-Share-Text", meta.Text)
	req.Header.Set("X-Share-URL", meta.URL)

	resp, err := e.client.Do(req)
	if err != nil {
		// A cancelled share is a declined share, not a failure.
		if ctx.Err() != nil {
			e.logger.Debug("share cancelled", zap.Error(ctx.Err()))
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", ErrShareHookFailed, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		e.logger.Info("shared image via hook",
			zap.String("url", logging.RedactSignedURL(e.shareHookURL)),
			zap.Int("status", resp.StatusCode))
		return true, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		e.logger.Debug("share hook declined",
			zap.Int("status", resp.StatusCode))
		return false, nil
	default:
		return false, fmt.Errorf("%w: status %d", ErrShareHookFailed, resp.StatusCode)
	}
}

// clipboardCandidates are tried in order when no command is configured.
var clipboardCandidates = []string{"wl-copy", "xclip"}

// CopyToClipboard pipes the blob into a clipboard utility.
//
// Returns (false, nil) when no utility is available on this system, so
// callers can fall back to Download without branching on errors.
func (e *Exporter) CopyToClipboard(ctx context.Context, blob []byte) (bool, error) {
	if len(blob) == 0 {
		return false, ErrEmptyBlob
	}
	cmdName, args := e.resolveClipboardCommand()
	if cmdName == "" {
		e.logger.Debug("no clipboard utility available")
		return false, nil
	}

	cmd := exec.CommandContext(ctx, cmdName, args...)
	cmd.Stdin = bytes.NewReader(blob)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return false, nil
		}
		return false, fmt.Errorf("%w: %s: %v", ErrClipboardFailed, cmdName, err)
	}
	e.logger.Info("copied image to clipboard", zap.String("command", cmdName))
	return true, nil
}

// resolveClipboardCommand returns the utility to run and its arguments, or
// "" when none is installed.
func (e *Exporter) resolveClipboardCommand() (string, []string) {
	if e.clipboardCmd != "" {
		fields := strings.Fields(e.clipboardCmd)
		if _, err := exec.LookPath(fields[0]); err == nil {
			return fields[0], fields[1:]
		}
		return "", nil
	}
	for _, c := range clipboardCandidates {
		if _, err := exec.LookPath(c); err == nil {
			if c == "xclip" {
				return c, []string{"-selection", "clipboard", "-t", "image/png"}
			}
			return c, []string{"--type", "image/png"}
		}
	}
	return "", nil
}

// sanitizeBaseName turns an arbitrary title into a safe file name stem.
func sanitizeBaseName(s string) string {
	if s == "" {
		return "share-image"
	}
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "share-image"
	}
	if len(out) > 48 {
		out = out[:48]
	}
	return out
}
