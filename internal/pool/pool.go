// Package pool keeps reusable entity handles partitioned into an active set and
// a free set. A handle is in exactly one of the two at any time.
package pool

import "github.com/zyedidia/generic/mapset"

// Pool owns every handle it has ever produced. Handles are built by the factory
// only when the free set is empty. Pool is not safe for concurrent use; the
// owner serializes access.
type Pool[T comparable] struct {
	factory func() T

	// active keeps insertion order so callers iterate deterministically.
	active    []T
	activeSet mapset.Set[T]

	free    []T
	freeSet mapset.Set[T]
}

// New creates an empty pool backed by factory.
func New[T comparable](factory func() T) *Pool[T] {
	return &Pool[T]{
		factory:   factory,
		activeSet: mapset.New[T](),
		freeSet:   mapset.New[T](),
	}
}

// Prewarm constructs n handles up front and places them in the free set.
func (p *Pool[T]) Prewarm(n int) {
	for i := 0; i < n; i++ {
		item := p.factory()
		p.free = append(p.free, item)
		p.freeSet.Put(item)
	}
}

// Acquire moves a handle to the end of the active set, reusing a free one when
// available. created reports whether the factory had to build a new handle.
func (p *Pool[T]) Acquire() (item T, created bool) {
	if n := len(p.free); n > 0 {
		item = p.free[n-1]
		var zero T
		p.free[n-1] = zero
		p.free = p.free[:n-1]
		p.freeSet.Remove(item)
	} else {
		item = p.factory()
		created = true
	}
	p.active = append(p.active, item)
	p.activeSet.Put(item)
	return item, created
}

// Release returns an active handle to the free set. It returns false and does
// nothing if the handle is not currently active.
func (p *Pool[T]) Release(item T) bool {
	if !p.activeSet.Has(item) {
		return false
	}
	for i, a := range p.active {
		if a == item {
			p.active = append(p.active[:i], p.active[i+1:]...)
			break
		}
	}
	p.activeSet.Remove(item)
	p.free = append(p.free, item)
	p.freeSet.Put(item)
	return true
}

// IsActive reports whether item is in the active set.
func (p *Pool[T]) IsActive(item T) bool {
	return p.activeSet.Has(item)
}

// IsFree reports whether item is in the free set.
func (p *Pool[T]) IsFree(item T) bool {
	return p.freeSet.Has(item)
}

// Active returns a copy of the active handles in insertion order.
func (p *Pool[T]) Active() []T {
	out := make([]T, len(p.active))
	copy(out, p.active)
	return out
}

func (p *Pool[T]) ActiveCount() int { return p.activeSet.Size() }

func (p *Pool[T]) FreeCount() int { return p.freeSet.Size() }

// Size is the number of handles the pool has produced.
func (p *Pool[T]) Size() int { return p.ActiveCount() + p.FreeCount() }
