package conduit

import (
	"sync"

	"github.com/baxromumarov/conduit/ring"
)

// Channel is a bounded FIFO message pipe with blocking and non-blocking
// send and receive, an explicit close protocol, and support for
// multi-channel [Select].
//
// All state is guarded by a single mutex with two condition variables:
// notFull is signalled whenever an item is removed or the channel
// closes, notEmpty whenever an item is added or the channel closes.
// Blocking operations wait in a loop that re-checks both the closed
// flag and the buffer state on every wakeup, so spurious wakeups and
// lost races against competing waiters are harmless.
//
// The transported values are opaque to the channel; ownership stays
// with the caller before Send and after Recv.
type Channel[T any] struct {
	mu       sync.Mutex
	notFull  *sync.Cond
	notEmpty *sync.Cond
	buf      *ring.Ring[T]
	closed   bool // monotonic: set once by Close, never reset

	// Select waiters. Each registered channel has capacity 1 and is
	// poked (non-blocking) on the matching state change: sendq on
	// remove, recvq on add, both on close.
	sendq []chan struct{}
	recvq []chan struct{}
}

// New creates a Channel with the given fixed capacity.
// Returns [ErrCapacity] if capacity < 1.
func New[T any](capacity int) (*Channel[T], error) {
	if capacity < 1 {
		return nil, ErrCapacity
	}
	c := &Channel[T]{buf: ring.New[T](capacity)}
	c.notFull = sync.NewCond(&c.mu)
	c.notEmpty = sync.NewCond(&c.mu)
	return c, nil
}

// Send enqueues v, blocking while the channel is full. It returns
// [ErrClosed] as soon as the channel is observed closed, even if space
// is available: close forbids all further sends.
func (c *Channel[T]) Send(v T) error {
	c.mu.Lock()
	for {
		if c.closed {
			c.mu.Unlock()
			return ErrClosed
		}
		if c.buf.Free() > 0 {
			break
		}
		c.notFull.Wait()
	}
	c.buf.Push(v)
	c.notifyAdded()
	c.mu.Unlock()
	return nil
}

// Recv dequeues the oldest item, blocking while the channel is empty
// and open. Buffered items are still served after [Channel.Close];
// Recv returns [ErrClosed] only once the channel is both empty and
// closed.
func (c *Channel[T]) Recv() (T, error) {
	c.mu.Lock()
	for c.size() == 0 {
		if c.closed {
			c.mu.Unlock()
			var zero T
			return zero, ErrClosed
		}
		c.notEmpty.Wait()
	}
	v, _ := c.buf.Pop()
	c.notifyRemoved()
	c.mu.Unlock()
	return v, nil
}

// TrySend enqueues v without blocking. It returns [ErrClosed] if the
// channel is closed (checked before capacity, so a closed-and-full
// channel reports ErrClosed, never ErrFull), [ErrFull] if the buffer
// is at capacity, and nil on success.
func (c *Channel[T]) TrySend(v T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if c.buf.Free() == 0 {
		return ErrFull
	}
	c.buf.Push(v)
	c.notifyAdded()
	return nil
}

// TryRecv dequeues the oldest item without blocking. Buffered items are
// served even after close; on an empty channel it returns [ErrClosed]
// when closed and [ErrEmpty] otherwise.
func (c *Channel[T]) TryRecv() (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	if c.size() == 0 {
		if c.closed {
			return zero, ErrClosed
		}
		return zero, ErrEmpty
	}
	v, _ := c.buf.Pop()
	c.notifyRemoved()
	return v, nil
}

// Close marks the channel closed and wakes every blocked sender,
// receiver, and select call so they can observe the closed state.
// Items buffered before the close remain drainable via [Channel.Recv].
// Closing an already-closed channel returns [ErrClosed] and has no
// further effect.
func (c *Channel[T]) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	c.closed = true

	// Broadcast, not signal: every waiter must re-check and exit.
	c.notFull.Broadcast()
	c.notEmpty.Broadcast()
	poke(c.sendq)
	poke(c.recvq)
	return nil
}

// Destroy releases the channel's buffer storage. The channel must
// already be closed and quiescent: no goroutine may still be operating
// on it, which is the caller's contract to uphold. Destroy on an open
// channel returns [ErrNotClosed] and leaves it fully usable.
func (c *Channel[T]) Destroy() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		return ErrNotClosed
	}
	if c.buf != nil {
		c.buf.Reset()
		c.buf = nil
	}
	c.sendq = nil
	c.recvq = nil
	return nil
}

// Len returns the number of buffered items. Items remaining after a
// close still count until they are drained.
func (c *Channel[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size()
}

// Cap returns the capacity fixed at creation, or 0 after [Channel.Destroy].
func (c *Channel[T]) Cap() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.buf == nil {
		return 0
	}
	return c.buf.Cap()
}

// Closed reports whether [Channel.Close] has been called.
func (c *Channel[T]) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// size must be called with c.mu held. It tolerates a destroyed buffer
// so post-Destroy misuse surfaces as ErrClosed rather than a nil
// dereference.
func (c *Channel[T]) size() int {
	if c.buf == nil {
		return 0
	}
	return c.buf.Len()
}

// notifyAdded is called with c.mu held after a successful enqueue.
func (c *Channel[T]) notifyAdded() {
	c.notEmpty.Signal()
	poke(c.recvq)
}

// notifyRemoved is called with c.mu held after a successful dequeue.
func (c *Channel[T]) notifyRemoved() {
	c.notFull.Signal()
	poke(c.sendq)
}

// subscribe registers a select waiter for the given operation.
// The waiter channel must have capacity >= 1.
func (c *Channel[T]) subscribe(op Op, w chan struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch op {
	case OpSend:
		c.sendq = append(c.sendq, w)
	case OpRecv:
		c.recvq = append(c.recvq, w)
	}
}

// unsubscribe removes one registration of w for the given operation.
// A select list may name the same channel twice, so only a single
// instance is removed per call.
func (c *Channel[T]) unsubscribe(op Op, w chan struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch op {
	case OpSend:
		c.sendq = removeWaiter(c.sendq, w)
	case OpRecv:
		c.recvq = removeWaiter(c.recvq, w)
	}
}

func removeWaiter(q []chan struct{}, w chan struct{}) []chan struct{} {
	for i, x := range q {
		if x == w {
			return append(q[:i], q[i+1:]...)
		}
	}
	return q
}

// poke delivers a wakeup token to every registered waiter without
// blocking. Waiter channels have capacity 1, so back-to-back changes
// coalesce into a single pending token.
func poke(q []chan struct{}) {
	for _, w := range q {
		select {
		case w <- struct{}{}:
		default:
		}
	}
}
