// server.go contains the Server organism that wires the HTTP surface
// together.
package webui

import (
	"context"
	"errors"
	"net/http"
	"time"

	"vibe_backend/core"
	"vibe_backend/export"
	"vibe_backend/logging"
	"vibe_backend/offload"

	"go.uber.org/zap"
)

// Server is the HTTP server organism for share-image generation.
// It wires together:
//   - the offload pool for generation
//   - the exporter for downloads, the share hook, and the clipboard
//   - LoggingMiddleware for request logging
//
// Routes:
//   - POST /api/share-image: generate synchronously, respond with PNG
//   - POST /api/tasks: queue generation, respond with a task id
//   - GET  /api/tasks/{id}: await a queued task, respond with PNG
//   - POST /api/export: generate and deliver via download/share/clipboard
//   - GET  /health: liveness probe
type Server struct {
	httpServer *http.Server
	pool       *offload.Pool
	exporter   *export.Exporter
	logger     *logging.Logger
	baseCtx    context.Context
}

// ServerConfig configures the Server.
type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DefaultServerConfig returns a ServerConfig with sensible defaults for the
// given application config.
func DefaultServerConfig(cfg *core.Config) ServerConfig {
	return ServerConfig{
		Addr:            cfg.Addr(),
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    60 * time.Second,
		IdleTimeout:     120 * time.Second,
		ShutdownTimeout: 15 * time.Second,
	}
}

// NewServer wires the routes and middleware. baseCtx bounds queued task
// lifetimes; pass the shutdown manager's context so pending work is
// cancelled when the process stops.
func NewServer(
	config ServerConfig,
	pool *offload.Pool,
	exporter *export.Exporter,
	baseCtx context.Context,
	logger *logging.Logger,
) *Server {
	if logger == nil {
		logger = logging.NewTestLogger()
	}
	if baseCtx == nil {
		baseCtx = context.Background()
	}

	s := &Server{
		pool:     pool,
		exporter: exporter,
		logger:   logger.Named("webui"),
		baseCtx:  baseCtx,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/share-image", s.handleShareImage)
	mux.HandleFunc("POST /api/tasks", s.handleSubmitTask)
	mux.HandleFunc("GET /api/tasks/", s.handleAwaitTask)
	mux.HandleFunc("POST /api/export", s.handleExport)
	mux.HandleFunc("GET /health", s.handleHealth)

	mw := NewLoggingMiddleware(s.logger, []string{"/health"})

	s.httpServer = &http.Server{
		Addr:         config.Addr,
		Handler:      mw.Handler(mux),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}
	return s
}

// Handler exposes the root handler for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start listens and serves until Shutdown is called. It returns nil on
// graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server listening", zap.String("addr", s.httpServer.Addr))
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	return s.httpServer.Shutdown(ctx)
}
