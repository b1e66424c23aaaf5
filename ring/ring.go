// Package ring provides a generic, fixed-capacity FIFO ring buffer.
//
// Ring is the storage collaborator for [github.com/baxromumarov/conduit].
// It is deliberately not goroutine-safe: the owning channel serializes
// access with its own lock, so the buffer itself stays free of
// synchronization overhead.
package ring

// Ring is a fixed-capacity FIFO queue over a circular slice.
//
// head is the index of the next slot to fill, tail the index of the
// oldest element. When head == tail the full flag distinguishes a full
// ring from an empty one.
type Ring[T any] struct {
	data []T
	head int
	tail int
	full bool
}

// New creates a Ring with the given capacity. The capacity is fixed for
// the life of the ring. Panics if capacity < 1.
func New[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		panic("ring: New requires capacity >= 1")
	}
	return &Ring[T]{data: make([]T, capacity)}
}

// Push appends v at the back of the ring. It reports whether the push
// happened; a full ring is left untouched and Push returns false.
func (r *Ring[T]) Push(v T) bool {
	if r.full {
		return false
	}
	r.data[r.head] = v
	r.head = (r.head + 1) % len(r.data)
	r.full = r.head == r.tail
	return true
}

// Pop removes and returns the oldest element. It returns the zero value
// and false when the ring is empty.
func (r *Ring[T]) Pop() (T, bool) {
	var zero T
	if !r.full && r.head == r.tail {
		return zero, false
	}
	v := r.data[r.tail]
	r.data[r.tail] = zero // drop the reference so the GC can reclaim it
	r.tail = (r.tail + 1) % len(r.data)
	r.full = false
	return v, true
}

// Len returns the number of buffered elements.
func (r *Ring[T]) Len() int {
	if r.full {
		return len(r.data)
	}
	if r.head >= r.tail {
		return r.head - r.tail
	}
	return len(r.data) - r.tail + r.head
}

// Cap returns the capacity fixed at construction.
func (r *Ring[T]) Cap() int {
	return len(r.data)
}

// Free returns the number of unoccupied slots.
func (r *Ring[T]) Free() int {
	return r.Cap() - r.Len()
}

// Reset discards all buffered elements and zeroes their slots so any
// referenced payloads become collectable. Capacity is unchanged.
func (r *Ring[T]) Reset() {
	var zero T
	for i := range r.data {
		r.data[i] = zero
	}
	r.head = 0
	r.tail = 0
	r.full = false
}
