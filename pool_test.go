package conduit

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolBasic(t *testing.T) {
	p := NewPool(4)

	var count atomic.Int32
	for i := 0; i < 10; i++ {
		err := p.Submit(func() error {
			count.Add(1)
			return nil
		})
		require.NoError(t, err)
	}

	err := p.Close()
	require.NoError(t, err, "all tasks succeeded; Close should return nil")
	assert.Equal(t, int32(10), count.Load(), "all 10 tasks should have executed")
}

func TestPoolConcurrencyLimit(t *testing.T) {
	const workers = 3
	p := NewPool(workers, WithQueueSize(20))

	var (
		active    atomic.Int32
		maxActive atomic.Int32
		wg        sync.WaitGroup
	)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		err := p.Submit(func() error {
			defer wg.Done()
			cur := active.Add(1)
			for {
				old := maxActive.Load()
				if cur <= old || maxActive.CompareAndSwap(old, cur) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			active.Add(-1)
			return nil
		})
		require.NoError(t, err)
	}

	wg.Wait()
	err := p.Close()
	require.NoError(t, err)

	assert.LessOrEqual(t, maxActive.Load(), int32(workers),
		"concurrent tasks should never exceed worker count")
}

func TestPoolDrainsQueueOnClose(t *testing.T) {
	// One worker held busy while tasks pile up in the queue: Close must
	// still run every buffered task before returning.
	p := NewPool(1, WithQueueSize(10))

	blocker := make(chan struct{})
	require.NoError(t, p.Submit(func() error {
		<-blocker
		return nil
	}))

	var count atomic.Int32
	for i := 0; i < 5; i++ {
		require.NoError(t, p.Submit(func() error {
			count.Add(1)
			return nil
		}))
	}

	close(blocker)
	require.NoError(t, p.Close())
	assert.Equal(t, int32(5), count.Load(), "queued tasks must be drained on close")
}

func TestPoolPanicRecovery(t *testing.T) {
	p := NewPool(2)

	err := p.Submit(func() error {
		panic("task panic!")
	})
	require.NoError(t, err)

	// Submit a normal task to verify the pool still works.
	var ran atomic.Bool
	err = p.Submit(func() error {
		ran.Store(true)
		return nil
	})
	require.NoError(t, err)

	closeErr := p.Close()
	require.Error(t, closeErr, "panic should surface as error in Close")

	var pe *PanicError
	assert.True(t, errors.As(closeErr, &pe), "error should be a PanicError")
	assert.True(t, ran.Load(), "subsequent tasks should still run after panic")
}

func TestPoolSubmitAfterClose(t *testing.T) {
	p := NewPool(2)

	err := p.Close()
	require.NoError(t, err)

	err = p.Submit(func() error { return nil })
	assert.ErrorIs(t, err, ErrPoolClosed)
}

func TestPoolTrySubmit(t *testing.T) {
	p := NewPool(1, WithQueueSize(1))

	blocker := make(chan struct{})
	// Use blocking Submit so we know the worker will pick up the task.
	err := p.Submit(func() error {
		<-blocker
		return nil
	})
	require.NoError(t, err)

	// Fill the single queue slot once the worker holds the first task.
	for !p.TrySubmit(func() error { return nil }) {
		time.Sleep(time.Millisecond)
	}

	// Worker busy and queue full: TrySubmit must fail.
	ok := p.TrySubmit(func() error { return nil })
	assert.False(t, ok, "TrySubmit should return false when queue is full")

	close(blocker)
	_ = p.Close()

	// After close, TrySubmit should also return false.
	ok = p.TrySubmit(func() error { return nil })
	assert.False(t, ok, "TrySubmit should return false after Close")
}

func TestPoolStats(t *testing.T) {
	p := NewPool(2)

	require.NoError(t, p.Submit(func() error { return nil }))
	require.NoError(t, p.Submit(func() error { return errors.New("boom") }))
	_ = p.Close()

	st := p.Stats()
	assert.Equal(t, int64(2), st.Submitted)
	assert.Equal(t, int64(2), st.Completed)
	assert.Equal(t, int64(1), st.Errored)
	assert.Equal(t, int64(0), st.InFlight)
	assert.Equal(t, 0, st.QueueDepth)
	assert.Equal(t, 2, st.Workers)
}

func TestPoolCloseIdempotent(t *testing.T) {
	p := NewPool(2)
	sentinel := errors.New("intentional")
	require.NoError(t, p.Submit(func() error { return sentinel }))

	err1 := p.Close()
	err2 := p.Close()
	assert.ErrorIs(t, err1, sentinel)
	assert.Equal(t, err1, err2, "repeated Close must return the same result")
}

func TestPoolStress(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in short mode")
	}

	const (
		taskCount   = 1000
		workerCount = 10
	)

	p := NewPool(workerCount)

	var count atomic.Int32
	sentinel := errors.New("intentional")
	var errCount atomic.Int32

	for i := 0; i < taskCount; i++ {
		i := i
		err := p.Submit(func() error {
			count.Add(1)
			if i%100 == 0 {
				errCount.Add(1)
				return sentinel
			}
			return nil
		})
		require.NoError(t, err)
	}

	closeErr := p.Close()
	assert.Equal(t, int32(taskCount), count.Load(), "all tasks should have run")

	if errCount.Load() > 0 {
		require.Error(t, closeErr)
	}
}

func TestPoolPanicOnInvalidArgs(t *testing.T) {
	assert.Panics(t, func() { NewPool(0) })
	assert.Panics(t, func() { NewPool(-1) })
	assert.Panics(t, func() { WithQueueSize(0) })
}
