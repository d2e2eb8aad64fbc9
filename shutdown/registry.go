// Package shutdown coordinates graceful teardown of the share-image service.
package shutdown

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// CleanupFunc releases one resource during shutdown.
type CleanupFunc func(ctx context.Context) error

// entry holds a registered cleanup function with metadata.
type entry struct {
	name     string
	priority int // lower runs first
	fn       CleanupFunc
}

// Registry maintains an ordered collection of cleanup functions.
//
// This is a molecule that composes CleanupFunc with priority ordering and
// thread-safe registration. Each function runs exactly once, even if Run is
// called multiple times.
type Registry struct {
	mu      sync.Mutex
	entries []entry
	done    bool
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a cleanup function. Lower priority values execute earlier.
// Registration after Run has been called is a no-op.
//
// Typical priorities:
//   - 10-19: stop accepting requests
//   - 20-29: stop background workers
//   - 30-39: close databases
//   - 40+: remove temp files, flush logs
func (r *Registry) Register(name string, priority int, fn CleanupFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done {
		return
	}
	r.entries = append(r.entries, entry{name: name, priority: priority, fn: fn})
}

// Count returns the number of registered functions.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Names returns handler names in execution order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	sorted := r.sortedLocked()
	names := make([]string, len(sorted))
	for i, e := range sorted {
		names[i] = e.name
	}
	return names
}

// Run executes every registered function in priority order and returns the
// errors of those that failed. Subsequent calls are no-ops returning nil.
func (r *Registry) Run(ctx context.Context) []error {
	r.mu.Lock()
	if r.done {
		r.mu.Unlock()
		return nil
	}
	r.done = true
	sorted := r.sortedLocked()
	r.mu.Unlock()

	var errs []error
	for _, e := range sorted {
		if ctx.Err() != nil {
			errs = append(errs, fmt.Errorf("shutdown: %s skipped: %w", e.name, ctx.Err()))
			continue
		}
		if err := e.fn(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown: %s: %w", e.name, err))
		}
	}
	return errs
}

// sortedLocked returns entries ordered by priority, stable within equal
// priorities. Caller holds r.mu.
func (r *Registry) sortedLocked() []entry {
	sorted := make([]entry, len(r.entries))
	copy(sorted, r.entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].priority < sorted[j].priority
	})
	return sorted
}
