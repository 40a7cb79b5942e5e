// Package arena provides a generational slot allocator. Values are
// addressed by an opaque Handle; removing a value bumps the slot's
// generation so every handle minted before the removal misses forever,
// even after the slot index is reused.
package arena

import "fmt"

// Handle identifies a value stored in an Arena. Handles are cheap to
// copy and safe to hold across mutations: a handle whose value has been
// removed simply stops resolving.
//
// Note that the zero Handle is what the very first Insert returns, so it
// is not usable as a "no handle" sentinel. Absence is always reported
// through the second return value of Get/Remove.
type Handle struct {
	index      int
	generation uint64
}

type slot[T any] struct {
	value      T
	generation uint64
	occupied   bool
	nextFree   int // index of the next free slot, -1 terminates the list
}

// Arena is a slot-based store with O(1) insert, remove and lookup.
// Freed slots go onto a LIFO free list and are reused by later inserts.
type Arena[T any] struct {
	slots    []slot[T]
	freeHead int
	count    int
}

// New returns an empty arena.
func New[T any]() *Arena[T] {
	return &Arena[T]{freeHead: -1}
}

// Insert stores value and returns a handle unique among all live handles.
func (a *Arena[T]) Insert(value T) Handle {
	var index int
	var generation uint64

	if a.freeHead >= 0 {
		index = a.freeHead
		s := &a.slots[index]
		if s.occupied {
			panic(fmt.Sprintf("arena: free list points at occupied slot %d", index))
		}
		a.freeHead = s.nextFree
		s.occupied = true
		s.value = value
		generation = s.generation
	} else {
		index = len(a.slots)
		a.slots = append(a.slots, slot[T]{value: value, occupied: true, nextFree: -1})
	}

	a.count++
	return Handle{index: index, generation: generation}
}

// Remove frees the slot referenced by h and returns its value. Removing
// a stale, already-freed or out-of-range handle returns the zero value
// and false. The slot's generation increments so h never resolves again.
func (a *Arena[T]) Remove(h Handle) (T, bool) {
	var zero T
	if !a.valid(h) {
		return zero, false
	}

	s := &a.slots[h.index]
	value := s.value
	s.value = zero
	s.occupied = false
	s.generation++
	s.nextFree = a.freeHead
	a.freeHead = h.index
	a.count--
	return value, true
}

// Get returns a pointer to the value referenced by h, or false if the
// handle is stale or out of range. The pointer stays valid only until
// the next Insert, which may grow the backing storage.
func (a *Arena[T]) Get(h Handle) (*T, bool) {
	if !a.valid(h) {
		return nil, false
	}
	return &a.slots[h.index].value, true
}

// Len reports the number of live values.
func (a *Arena[T]) Len() int {
	return a.count
}

func (a *Arena[T]) valid(h Handle) bool {
	if h.index < 0 || h.index >= len(a.slots) {
		return false
	}
	s := &a.slots[h.index]
	return s.occupied && s.generation == h.generation
}
