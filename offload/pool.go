// Package offload runs share-image generation off the caller's goroutine.
//
// pool.go implements a fixed-size worker pool with a task registry. This is
// a molecule that composes the composer pipeline with uuid task tracking.
package offload

import (
	"context"
	"fmt"
	"sync"

	"vibe_backend/composer"
	"vibe_backend/logging"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Result carries the outcome of one generation task.
type Result struct {
	Blob []byte
	Err  error
}

// pending is the registry entry for a submitted task. The done channel is
// buffered so delivery never blocks on a caller that gave up. abandoned is
// guarded by the pool mutex and marks entries whose awaiter is gone.
type pending struct {
	id        string
	req       composer.Request
	ctx       context.Context
	done      chan Result
	abandoned bool
}

// deliver writes the result unless one was already delivered.
func (t *pending) deliver(res Result) {
	select {
	case t.done <- res:
	default:
	}
}

// Pool executes generation requests on a fixed set of workers.
//
// This molecule composes:
//   - composer.Generator for the actual pipeline
//   - uuid task ids so callers can submit now and await later
//
// Public API:
//   - Submit(): enqueue a request, returns a task id
//   - Await(): block for a task's result
//   - Generate(): Submit plus Await in one call
//   - Close(): shut down, rejecting everything still pending
//
// A worker that panics is treated as fatal: the pool stops accepting work
// and every pending task is rejected with ErrWorkerFatal. A per-request
// generation error only fails its own task.
type Pool struct {
	generator *composer.Generator
	logger    *logging.Logger

	queue   chan *pending
	quit    chan struct{}
	workers int

	mu     sync.Mutex
	tasks  map[string]*pending
	closed bool

	wg sync.WaitGroup
}

// NewPool starts workers goroutines servicing the queue. workers values
// below 1 are raised to 1.
func NewPool(generator *composer.Generator, workers int, logger *logging.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = logging.NewTestLogger()
	}
	p := &Pool{
		generator: generator,
		logger:    logger.Named("offload"),
		queue:     make(chan *pending, workers*4),
		quit:      make(chan struct{}),
		workers:   workers,
		tasks:     make(map[string]*pending),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	return p
}

// Submit enqueues a generation request and returns its task id. The given
// context bounds both the wait for queue space and the generation itself.
func (p *Pool) Submit(ctx context.Context, req composer.Request) (string, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return "", ErrPoolClosed
	}
	t := &pending{
		id:   uuid.New().String(),
		req:  req,
		ctx:  ctx,
		done: make(chan Result, 1),
	}
	p.tasks[t.id] = t
	p.mu.Unlock()

	select {
	case p.queue <- t:
		p.logger.Debug("task queued",
			zap.String("task_id", t.id),
			zap.String("variant", string(req.Variant)))
		return t.id, nil
	case <-p.quit:
		p.drop(t.id)
		return "", ErrPoolClosed
	case <-ctx.Done():
		p.drop(t.id)
		return "", ErrSubmitTimeout
	}
}

// Await blocks until the task completes, the caller's context expires, or
// the pool rejects the task. A task id can be awaited once; the registry
// entry is dropped on delivery. An awaiter that gives up marks the task
// abandoned so its entry is released once the result lands.
func (p *Pool) Await(ctx context.Context, id string) ([]byte, error) {
	p.mu.Lock()
	t, ok := p.tasks[id]
	p.mu.Unlock()
	if !ok {
		return nil, ErrUnknownTask
	}

	select {
	case res := <-t.done:
		p.drop(id)
		return res.Blob, res.Err
	case <-ctx.Done():
		p.abandon(id)
		return nil, ctx.Err()
	}
}

// Generate submits the request and waits for its result.
func (p *Pool) Generate(ctx context.Context, req composer.Request) ([]byte, error) {
	id, err := p.Submit(ctx, req)
	if err != nil {
		return nil, err
	}
	return p.Await(ctx, id)
}

// Close shuts the pool down. Queued and in-flight tasks that have not
// delivered a result are rejected with ErrPoolClosed. Safe to call more
// than once.
func (p *Pool) Close() {
	p.shutdown(ErrPoolClosed)
	p.wg.Wait()
}

// Pending returns the number of tasks awaiting delivery.
func (p *Pool) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.tasks)
}

// worker services the queue until the pool shuts down. A panic anywhere in
// the pipeline is fatal for the whole pool.
func (p *Pool) worker(n int) {
	defer p.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("worker panic, rejecting pending tasks",
				zap.Int("worker", n),
				zap.Any("panic", r))
			p.shutdown(fmt.Errorf("%w: worker %d: %v", ErrWorkerFatal, n, r))
		}
	}()

	for {
		select {
		case <-p.quit:
			return
		case t := <-p.queue:
			if t.ctx.Err() != nil {
				t.deliver(Result{Err: t.ctx.Err()})
				p.reap(t)
				continue
			}
			blob, err := p.generator.Generate(t.ctx, t.req)
			t.deliver(Result{Blob: blob, Err: err})
			p.reap(t)
		}
	}
}

// shutdown marks the pool closed, stops the workers, and rejects every
// pending task with err. Idempotent.
func (p *Pool) shutdown(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.quit)
	}
	for id, t := range p.tasks {
		t.deliver(Result{Err: err})
		delete(p.tasks, id)
	}
}

// drop removes a task from the registry without delivering anything.
func (p *Pool) drop(id string) {
	p.mu.Lock()
	delete(p.tasks, id)
	p.mu.Unlock()
}

// abandon releases a task whose awaiter gave up. A result already sitting
// in the buffer is discarded with the entry; otherwise the entry is marked
// so the delivering worker reaps it.
func (p *Pool) abandon(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	t, ok := p.tasks[id]
	if !ok {
		return
	}
	select {
	case <-t.done:
		delete(p.tasks, id)
	default:
		t.abandoned = true
	}
}

// reap removes an abandoned task after its result has been delivered.
func (p *Pool) reap(t *pending) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if t.abandoned {
		delete(p.tasks, t.id)
	}
}
