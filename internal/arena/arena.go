// Package arena provides a generation-checked slot store.
//
// Values are addressed by Keys. Removing a value bumps the generation of its
// slot, so a Key captured before a remove can never refer to whatever is
// inserted into the recycled slot afterwards.
package arena

import (
	"fmt"
	"iter"
)

// Key identifies a value of type T inside an Arena[T].
// Two keys are equal iff they reference the same slot and generation.
// The zero Key is never valid.
type Key[T any] struct {
	index uint32
	gen   uint32
	_     [0]*T
}

// Index returns the slot index of the key.
func (k Key[T]) Index() int {
	return int(k.index)
}

// Generation returns the slot generation the key was issued for.
func (k Key[T]) Generation() uint32 {
	return k.gen
}

// IsZero reports whether k is the zero Key.
func (k Key[T]) IsZero() bool {
	return k.gen == 0
}

// String returns a string representation of the key.
func (k Key[T]) String() string {
	return fmt.Sprintf("%d@%d", k.index, k.gen)
}

// slot holds one arena entry.
type slot[T any] struct {
	value    T
	gen      uint32
	occupied bool
}

// Arena is an ordered collection of slots. Insertion order defines the
// iteration order; free slots are skipped during iteration and recycled on
// the next insert.
type Arena[T any] struct {
	slots []slot[T]
	free  []uint32
	len   int
}

// New creates an empty arena with room for capacity values.
func New[T any](capacity int) *Arena[T] {
	return &Arena[T]{slots: make([]slot[T], 0, capacity)}
}

// Insert stores v and returns its key. A free slot is reused if one exists.
func (a *Arena[T]) Insert(v T) Key[T] {
	a.len++
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[idx]
		s.value = v
		s.occupied = true
		return Key[T]{index: idx, gen: s.gen}
	}

	idx := uint32(len(a.slots))
	a.slots = append(a.slots, slot[T]{value: v, gen: 1, occupied: true})
	return Key[T]{index: idx, gen: 1}
}

// lookup returns the slot for k if k is still valid.
func (a *Arena[T]) lookup(k Key[T]) *slot[T] {
	if int(k.index) >= len(a.slots) {
		return nil
	}
	s := &a.slots[k.index]
	if !s.occupied || s.gen != k.gen {
		return nil
	}
	return s
}

// Get returns a pointer to the value for k, or false if k is stale.
// The pointer is invalidated by the next Insert.
func (a *Arena[T]) Get(k Key[T]) (*T, bool) {
	s := a.lookup(k)
	if s == nil {
		return nil, false
	}
	return &s.value, true
}

// Value returns a copy of the value for k, or false if k is stale.
func (a *Arena[T]) Value(k Key[T]) (T, bool) {
	s := a.lookup(k)
	if s == nil {
		var zero T
		return zero, false
	}
	return s.value, true
}

// Contains reports whether k refers to a live value.
func (a *Arena[T]) Contains(k Key[T]) bool {
	return a.lookup(k) != nil
}

// Remove frees the slot for k and returns the removed value.
func (a *Arena[T]) Remove(k Key[T]) (T, bool) {
	s := a.lookup(k)
	if s == nil {
		var zero T
		return zero, false
	}
	v := s.value
	var zero T
	s.value = zero
	s.occupied = false
	s.gen++
	a.free = append(a.free, k.index)
	a.len--
	return v, true
}

// Len returns the number of live values.
func (a *Arena[T]) Len() int {
	return a.len
}

// All yields every live value with its key, in slot order.
func (a *Arena[T]) All() iter.Seq2[Key[T], *T] {
	return func(yield func(Key[T], *T) bool) {
		for i := range a.slots {
			s := &a.slots[i]
			if !s.occupied {
				continue
			}
			if !yield(Key[T]{index: uint32(i), gen: s.gen}, &s.value) {
				return
			}
		}
	}
}

// Keys yields the key of every live value, in slot order.
func (a *Arena[T]) Keys() iter.Seq[Key[T]] {
	return func(yield func(Key[T]) bool) {
		for k := range a.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Find returns the first live value satisfying pred.
func (a *Arena[T]) Find(pred func(*T) bool) (Key[T], *T, bool) {
	for k, v := range a.All() {
		if pred(v) {
			return k, v, true
		}
	}
	return Key[T]{}, nil, false
}
