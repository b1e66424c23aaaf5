package conduit

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrPoolClosed is returned by [Pool.Submit] when the pool has been closed.
var ErrPoolClosed = errors.New("conduit: pool is closed")

// Pool is a reusable worker pool whose task queue is a bounded
// [Channel]. Tasks are submitted via Submit (blocking) or TrySubmit
// (non-blocking) and processed by a fixed number of worker goroutines.
// Closing the pool closes the queue channel; workers drain the tasks
// buffered before the close and then exit.
type Pool struct {
	tasks *Channel[func() error]
	wg    sync.WaitGroup

	errMu sync.Mutex
	errs  []error

	closeOnce sync.Once
	closeErr  error

	// Observability counters.
	submitted atomic.Int64
	completed atomic.Int64
	errored   atomic.Int64
	inFlight  atomic.Int64
	workers   int
}

// PoolStats provides a point-in-time snapshot of pool activity.
type PoolStats struct {
	Submitted  int64 // total tasks submitted
	Completed  int64 // tasks finished (success + error)
	Errored    int64 // tasks that returned non-nil error
	InFlight   int64 // tasks currently executing
	QueueDepth int   // tasks waiting in the queue
	Workers    int   // worker count (fixed at creation)
}

// PoolOption configures a [Pool].
type PoolOption func(*poolConfig)

type poolConfig struct {
	queueSize int
}

// WithQueueSize sets the task queue capacity. Default is n * 2.
func WithQueueSize(size int) PoolOption {
	if size < 1 {
		panic("conduit: WithQueueSize requires size >= 1")
	}
	return func(c *poolConfig) {
		c.queueSize = size
	}
}

// NewPool creates a pool with n worker goroutines.
// Workers start immediately and process tasks until [Pool.Close] is called.
// Panics if n <= 0.
func NewPool(n int, opts ...PoolOption) *Pool {
	if n <= 0 {
		panic("conduit: NewPool requires n > 0")
	}

	cfg := poolConfig{queueSize: n * 2}
	for _, opt := range opts {
		opt(&cfg)
	}

	tasks, err := New[func() error](cfg.queueSize)
	if err != nil {
		panic("conduit: NewPool queue: " + err.Error())
	}

	p := &Pool{
		tasks:   tasks,
		workers: n,
	}

	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		fn, err := p.tasks.Recv()
		if err != nil {
			// ErrClosed after the queue is fully drained.
			return
		}
		p.runTask(fn)
	}
}

func (p *Pool) runTask(fn func() error) {
	p.inFlight.Add(1)
	defer func() {
		p.inFlight.Add(-1)
		p.completed.Add(1)
	}()

	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = newPanicError(r)
			}
		}()
		err = fn()
	}()
	if err != nil {
		p.errored.Add(1)
		p.errMu.Lock()
		p.errs = append(p.errs, err)
		p.errMu.Unlock()
	}
}

// Stats returns a point-in-time snapshot of pool activity.
// Safe to call concurrently.
func (p *Pool) Stats() PoolStats {
	return PoolStats{
		Submitted:  p.submitted.Load(),
		Completed:  p.completed.Load(),
		Errored:    p.errored.Load(),
		InFlight:   p.inFlight.Load(),
		QueueDepth: p.tasks.Len(),
		Workers:    p.workers,
	}
}

// Submit submits a task to the pool. It blocks while the queue is full.
// Returns [ErrPoolClosed] if the pool has been closed.
func (p *Pool) Submit(fn func() error) error {
	if err := p.tasks.Send(fn); err != nil {
		return ErrPoolClosed
	}
	p.submitted.Add(1)
	return nil
}

// TrySubmit attempts to submit without blocking.
// Returns false if the queue is full or the pool is closed.
func (p *Pool) TrySubmit(fn func() error) bool {
	if err := p.tasks.TrySend(fn); err != nil {
		return false
	}
	p.submitted.Add(1)
	return true
}

// Close stops accepting new tasks, waits for workers to drain the
// queue and finish in-flight tasks, then releases the queue channel.
// Returns the joined errors from all failed tasks.
// Safe to call multiple times; subsequent calls return the same result.
func (p *Pool) Close() error {
	p.closeOnce.Do(func() {
		_ = p.tasks.Close()
		p.wg.Wait()
		_ = p.tasks.Destroy()

		p.errMu.Lock()
		defer p.errMu.Unlock()
		p.closeErr = errors.Join(p.errs...)
	})
	return p.closeErr
}
