// handlers.go contains the REST handlers for share-image generation and
// export.
package webui

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"vibe_backend/composer"
	"vibe_backend/export"
	"vibe_backend/offload"
	"vibe_backend/render"

	"go.uber.org/zap"
)

// exportRequest is the body of POST /api/export. Mode selects the delivery
// channel: "download", "share", or "clipboard".
type exportRequest struct {
	composer.Request
	Mode string `json:"mode"`
}

// exportResponse reports what the export achieved. Delivered is false when
// a soft-fail destination was unavailable or declined.
type exportResponse struct {
	Delivered bool   `json:"delivered"`
	Path      string `json:"path,omitempty"`
	TaskID    string `json:"task_id,omitempty"`
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}

// handleShareImage serves POST /api/share-image. The body is a generation
// request; the response is the encoded PNG.
func (s *Server) handleShareImage(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	blob, err := s.pool.Generate(r.Context(), req)
	if err != nil {
		s.writeGenerationError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(blob); err != nil {
		s.logger.Warn("failed to write image response", zap.Error(err))
	}
}

// handleSubmitTask serves POST /api/tasks. It queues generation and returns
// the task id without waiting for the result.
func (s *Server) handleSubmitTask(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	// The request context dies with this handler, so queued work runs
	// against the server's lifetime instead.
	id, err := s.pool.Submit(s.baseCtx, req)
	if err != nil {
		s.writeGenerationError(w, err)
		return
	}
	s.writeJSON(w, http.StatusAccepted, exportResponse{TaskID: id})
}

// handleAwaitTask serves GET /api/tasks/{id}, blocking until the task
// finishes and streaming the PNG.
func (s *Server) handleAwaitTask(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/tasks/")
	if id == "" || strings.Contains(id, "/") {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown task"})
		return
	}

	blob, err := s.pool.Await(r.Context(), id)
	if err != nil {
		if errors.Is(err, offload.ErrUnknownTask) {
			s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown task"})
			return
		}
		s.writeGenerationError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(blob); err != nil {
		s.logger.Warn("failed to write image response", zap.Error(err))
	}
}

// handleExport serves POST /api/export: generate, then deliver through the
// requested channel.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if req.Vibe.Title == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "vibe.title is required"})
		return
	}

	blob, err := s.pool.Generate(r.Context(), req.Request)
	if err != nil {
		s.writeGenerationError(w, err)
		return
	}

	switch req.Mode {
	case "", "download":
		path, err := s.exporter.Download(blob, req.Vibe.Title)
		if err != nil {
			s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			return
		}
		s.writeJSON(w, http.StatusOK, exportResponse{Delivered: true, Path: path})
	case "share":
		meta := export.ShareMetadata{
			Title: req.Vibe.Title,
			Text:  req.Vibe.Description,
			URL:   req.ShareURL,
		}
		delivered, err := s.exporter.Share(r.Context(), blob, meta)
		if err != nil {
			s.writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
			return
		}
		s.writeJSON(w, http.StatusOK, exportResponse{Delivered: delivered})
	case "clipboard":
		delivered, err := s.exporter.CopyToClipboard(r.Context(), blob)
		if err != nil {
			s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			return
		}
		s.writeJSON(w, http.StatusOK, exportResponse{Delivered: delivered})
	default:
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown mode: " + req.Mode})
	}
}

// handleHealth serves GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"pending": s.pool.Pending(),
	})
}

// decodeRequest parses and validates a generation request body.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (composer.Request, bool) {
	var req composer.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return req, false
	}
	if req.Vibe.Title == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "vibe.title is required"})
		return req, false
	}
	return req, true
}

// writeGenerationError maps pipeline errors to HTTP status codes.
func (s *Server) writeGenerationError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, offload.ErrPoolClosed), errors.Is(err, offload.ErrWorkerFatal):
		status = http.StatusServiceUnavailable
	case errors.Is(err, offload.ErrSubmitTimeout), errors.Is(err, render.ErrEncodeTimeout):
		status = http.StatusGatewayTimeout
	}
	s.logger.Warn("generation failed",
		zap.Int("status", status),
		zap.Error(err))
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

// writeJSON encodes v as the response body with the given status.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to encode response", zap.Error(err))
	}
}
