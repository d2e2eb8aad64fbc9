package offload

import "errors"

// Sentinel errors for the offload pool.
var (
	// ErrPoolClosed is returned when submitting to or awaiting a closed pool.
	ErrPoolClosed = errors.New("offload: pool closed")

	// ErrSubmitTimeout is returned when the caller's context expires before
	// a worker picks the task up.
	ErrSubmitTimeout = errors.New("offload: submit timed out")

	// ErrUnknownTask is returned when awaiting a task id the pool has never
	// seen or has already delivered.
	ErrUnknownTask = errors.New("offload: unknown task id")

	// ErrWorkerFatal wraps a worker-level failure that forced the pool to
	// reject all pending tasks.
	ErrWorkerFatal = errors.New("offload: worker failure")
)
