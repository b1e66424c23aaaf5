// Package conduit provides bounded, closable message channels with
// multi-channel select, for handing typed values between goroutines
// with explicit lifecycle control.
//
// Native Go channels are the right tool most of the time, but their
// edges are sharp where lifecycles are explicit: sends to closed
// channels panic, close is not idempotent, there is no way to ask "did
// that fail because the channel is closed or because it is full?", and
// a dynamic select over a runtime-sized set of channels requires
// reflect. conduit trades a little raw speed for a channel whose every
// outcome is an inspectable error value.
//
// # Channels
//
// [New] creates a [Channel] with a fixed capacity. [Channel.Send] and
// [Channel.Recv] block; [Channel.TrySend] and [Channel.TryRecv] return
// [ErrFull] or [ErrEmpty] instead of waiting. [Channel.Close] is a
// broadcast: every blocked operation observes the closed state and
// returns [ErrClosed]. Values buffered before the close remain
// receivable until the channel is drained. [Channel.Destroy] releases
// the buffer once the channel is closed and quiescent.
//
//	ch, _ := conduit.New[string](8)
//	go func() {
//	    ch.Send("hello")
//	    ch.Close()
//	}()
//	for {
//	    v, err := ch.Recv()
//	    if err != nil {
//	        break // conduit.ErrClosed: drained and closed
//	    }
//	    fmt.Println(v)
//	}
//
// # Select
//
// [Select] waits on the first ready operation among several channels.
// Each [Case] names a channel, a direction ([OpSend] or [OpRecv]), and
// a payload slot. Readiness is resolved deterministically in list
// order, and a closed channel surfaces immediately as [ErrClosed] with
// the offending index.
//
// # Built on top
//
//   - [Pool]: a fixed-size worker pool whose task queue is a Channel;
//     closing the pool drains buffered tasks before workers exit.
//   - [Merge]: fan-in from several channels into one, driven by Select.
//   - [Drain]: empty a channel during shutdown, unblocking producers.
//
// All blocking operations follow the monitor pattern: one mutex and two
// condition variables per channel, waits in predicate loops, broadcast
// on close. There are no timeouts and no context parameters; a caller
// needing bounded waiting uses the Try variants or Select.
package conduit
