package shutdown

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"vibe_backend/core"
	"vibe_backend/logging"

	"go.uber.org/zap"
)

// Manager coordinates graceful shutdown for the whole process.
//
// This organism composes:
//   - Registry: ordered cleanup functions, each run exactly once
//   - OS signal handling with force-exit on the second signal
//
// Usage:
//
//	manager := NewManager(logger)
//	manager.Register("render-cache", 30, func(ctx context.Context) error {
//	    return store.Close()
//	})
//	manager.Start()
//	manager.Wait()
//	os.Exit(manager.Shutdown())
type Manager struct {
	logger  *logging.Logger
	timeout time.Duration

	mu       sync.Mutex
	started  bool
	shutdown bool
	exitCode int

	ctx    context.Context
	cancel context.CancelFunc

	registry *Registry
	sigChan  chan os.Signal
}

// Option configures a Manager.
type Option func(*Manager)

// WithTimeout sets the shutdown timeout. Default is 30 seconds.
func WithTimeout(timeout time.Duration) Option {
	return func(m *Manager) {
		m.timeout = timeout
	}
}

// NewManager creates a Manager ready to coordinate shutdown.
func NewManager(logger *logging.Logger, opts ...Option) *Manager {
	if logger == nil {
		logger = logging.NewTestLogger()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		logger:   logger.Named("shutdown"),
		timeout:  30 * time.Second,
		exitCode: core.ExitCodeSuccess,
		ctx:      ctx,
		cancel:   cancel,
		registry: NewRegistry(),
		sigChan:  make(chan os.Signal, 2),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Context returns the context cancelled when shutdown begins. Components
// should watch it to stop accepting work.
func (m *Manager) Context() context.Context {
	return m.ctx
}

// Register adds a cleanup function. Lower priority values run first.
func (m *Manager) Register(name string, priority int, fn CleanupFunc) {
	m.registry.Register(name, priority, fn)
	m.logger.Debug("registered shutdown handler",
		zap.String("name", name),
		zap.Int("priority", priority))
}

// Start begins listening for SIGINT and SIGTERM. The first signal cancels
// the managed context; the second forces an immediate exit. Safe to call
// more than once.
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started {
		return
	}
	m.started = true

	signal.Notify(m.sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		count := 0
		for sig := range m.sigChan {
			count++
			if count > 1 {
				m.logger.Warn("second signal received, forcing exit",
					zap.String("signal", sig.String()))
				os.Exit(core.ExitCodeError)
			}
			m.logger.Info("shutdown signal received",
				zap.String("signal", sig.String()))
			m.setExitCodeForSignal(sig)
			m.cancel()
		}
	}()

	m.logger.Info("listening for shutdown signals")
}

// Trigger initiates shutdown programmatically, as if a signal arrived.
func (m *Manager) Trigger() {
	m.cancel()
}

// Wait blocks until shutdown has been initiated.
func (m *Manager) Wait() {
	<-m.ctx.Done()
}

// Shutdown runs the cleanup sequence and returns the process exit code.
// Idempotent; later calls return the same code without re-running cleanup.
func (m *Manager) Shutdown() int {
	m.mu.Lock()
	if m.shutdown {
		code := m.exitCode
		m.mu.Unlock()
		return code
	}
	m.shutdown = true
	m.mu.Unlock()

	start := time.Now()
	m.cancel()
	signal.Stop(m.sigChan)

	m.logger.Info("running cleanup",
		zap.Duration("timeout", m.timeout),
		zap.Int("handlers", m.registry.Count()))

	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	errs := m.registry.Run(ctx)
	for _, err := range errs {
		m.logger.Error("cleanup failed", zap.Error(err))
	}

	m.mu.Lock()
	if len(errs) > 0 && m.exitCode == core.ExitCodeSuccess {
		m.exitCode = core.ExitCodeError
	}
	code := m.exitCode
	m.mu.Unlock()

	m.logger.Info("shutdown complete",
		zap.Duration("duration", time.Since(start)),
		zap.String("exit", fmt.Sprintf("%d (%s)", code, core.ExitCodeName(code))))
	return code
}

// setExitCodeForSignal records the conventional exit code for the signal
// that started shutdown.
func (m *Manager) setExitCodeForSignal(sig os.Signal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch sig {
	case os.Interrupt:
		m.exitCode = core.ExitCodeSIGINT
	case syscall.SIGTERM:
		m.exitCode = core.ExitCodeSIGTERM
	}
}
