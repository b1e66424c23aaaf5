package conduit

// Merge forwards every value from the source channels into dst until
// all sources are closed and drained, then returns nil. Values from
// different sources are interleaved in arrival order via [Select]; FIFO
// order is preserved per source but not across sources.
//
// Merge does not close dst: the caller may merge several source sets
// into the same destination. If dst is closed while values remain,
// Merge stops and returns [ErrClosed].
//
// Merge blocks until completion; run it in its own goroutine for
// concurrent fan-in. Panics if no sources are given.
func Merge[T any](dst *Channel[T], srcs ...*Channel[T]) error {
	if len(srcs) == 0 {
		panic("conduit: Merge requires at least one source")
	}

	cases := make([]Case[T], len(srcs))
	for i, src := range srcs {
		cases[i] = Case[T]{Chan: src, Op: OpRecv}
	}

	for len(cases) > 0 {
		i, err := Select(cases)
		if err != nil {
			// Exhausted source: drop its case and keep going.
			cases = append(cases[:i], cases[i+1:]...)
			continue
		}
		if err := dst.Send(cases[i].Value); err != nil {
			return err
		}
	}
	return nil
}
