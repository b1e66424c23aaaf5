package conduit

// Drain receives from c until it reports [ErrClosed], returning every
// value collected in FIFO order. It blocks while the channel is open,
// unblocking producers that are stuck on a full buffer, so it is useful
// for emptying a pipeline during shutdown.
//
// Returns nil when the channel was already empty and closed.
func Drain[T any](c *Channel[T]) []T {
	var out []T
	for {
		v, err := c.Recv()
		if err != nil {
			return out
		}
		out = append(out, v)
	}
}
