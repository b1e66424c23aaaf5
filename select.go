package conduit

import "errors"

// Op identifies the operation a [Case] performs on its channel.
type Op int

const (
	// OpSend makes Select attempt to send Case.Value on Case.Chan.
	OpSend Op = iota
	// OpRecv makes Select attempt to receive from Case.Chan into
	// Case.Value.
	OpRecv
)

// Case is one entry in a [Select] call: a channel, the desired
// operation, and the payload slot. For [OpSend] the Value field holds
// the item to send; for [OpRecv] Select writes the received item into
// the Value field of the winning case.
type Case[T any] struct {
	Chan  *Channel[T]
	Op    Op
	Value T
}

// Select waits for the first case in the list that can proceed,
// performs it, and returns that case's index. Readiness is resolved in
// list order: when several cases are ready at once the lowest index
// wins, which keeps behavior deterministic.
//
// If any case's channel is observed closed, Select stops immediately
// and returns that case's index together with [ErrClosed] — a closed
// channel is terminal for its slot and takes priority over scanning
// further entries.
//
// If no case can proceed and none is closed, Select blocks without
// spinning until a send, receive, or close on one of the listed
// channels changes the picture, then re-scans. The wakeup path
// registers a single shared token channel with every listed channel
// before the first scan, so a state change can never slip through
// between a scan and the wait. Per-channel locks are only ever taken
// one at a time, so concurrent Select calls over overlapping channel
// sets cannot deadlock.
//
// Select panics if cases is empty or any case has a nil Chan.
func Select[T any](cases []Case[T]) (int, error) {
	if len(cases) == 0 {
		panic("conduit: Select requires at least one case")
	}
	for i := range cases {
		if cases[i].Chan == nil {
			panic("conduit: Select case has nil channel")
		}
	}

	// Register before scanning. ready has capacity 1: any number of
	// pokes while we are scanning collapse into one pending token,
	// which is enough to force a re-scan.
	ready := make(chan struct{}, 1)
	for i := range cases {
		cases[i].Chan.subscribe(cases[i].Op, ready)
	}
	defer func() {
		for i := range cases {
			cases[i].Chan.unsubscribe(cases[i].Op, ready)
		}
	}()

	for {
		for i := range cases {
			cs := &cases[i]
			switch cs.Op {
			case OpSend:
				err := cs.Chan.TrySend(cs.Value)
				if err == nil {
					return i, nil
				}
				if errors.Is(err, ErrClosed) {
					return i, ErrClosed
				}
			case OpRecv:
				v, err := cs.Chan.TryRecv()
				if err == nil {
					cs.Value = v
					return i, nil
				}
				if errors.Is(err, ErrClosed) {
					return i, ErrClosed
				}
			default:
				panic("conduit: Select case has unknown op")
			}
		}
		<-ready
	}
}
