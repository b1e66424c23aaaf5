package conduit

import "errors"

// ErrClosed is returned by any operation attempted on a closed channel:
// sends, receives once the buffer is drained, select cases, and a second
// [Channel.Close]. It is terminal for that channel.
var ErrClosed = errors.New("conduit: channel is closed")

// ErrFull is returned by [Channel.TrySend] when the buffer is at
// capacity. The condition is transient; the caller may retry.
var ErrFull = errors.New("conduit: channel is full")

// ErrEmpty is returned by [Channel.TryRecv] when the buffer holds no
// items. The condition is transient; the caller may retry.
var ErrEmpty = errors.New("conduit: channel is empty")

// ErrNotClosed is returned by [Channel.Destroy] when the channel is
// still open. The channel remains valid; close it first.
var ErrNotClosed = errors.New("conduit: destroy on open channel")

// ErrCapacity is returned by [New] when the requested capacity is
// less than one.
var ErrCapacity = errors.New("conduit: capacity must be at least 1")
