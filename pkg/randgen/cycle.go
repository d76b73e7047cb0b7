package randgen

import "sync"

// CycleState holds the elements not yet drawn in the current epoch. The zero
// value is an empty state; the next draw starts a new epoch.
//
// A CycleState is never modified after it is returned, so callers can keep
// old states around or run several independent sequences over one source.
type CycleState[T any] struct {
	remaining []T
}

// Len reports how many draws are left before the next refill.
func (s CycleState[T]) Len() int { return len(s.remaining) }

// Remaining returns a copy of the undrawn elements in draw order.
func (s CycleState[T]) Remaining() []T { return clone(s.remaining) }

// Cycle draws the next element from source. Every element is returned once
// before any element repeats. When state is empty a new uniformly random
// permutation of source is started.
//
// The returned state must be passed to the next call. source is expected to
// stay the same across a sequence of calls.
func Cycle[T any](source []T, state CycleState[T]) (T, CycleState[T], error) {
	return CycleWith(Crypto, source, state)
}

// CycleWith is like Cycle but draws permutations from src.
func CycleWith[T any](src Source, source []T, state CycleState[T]) (T, CycleState[T], error) {
	if len(source) == 0 {
		var zero T
		return zero, state, ErrEmptySource
	}

	remaining := state.remaining
	if len(remaining) == 0 {
		remaining = ShuffleWith(src, source)
	}

	// remaining[1:] shares the backing array; nothing writes to it again.
	return remaining[0], CycleState[T]{remaining: remaining[1:]}, nil
}

// Shuffle returns a uniformly random permutation of items. items is not
// modified.
func Shuffle[T any](items []T) []T {
	return ShuffleWith(Crypto, items)
}

// ShuffleWith is like Shuffle but draws from src.
func ShuffleWith[T any](src Source, items []T) []T {
	out := clone(items)
	for i := len(out) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Cycler threads a CycleState between calls for callers that want a single
// sequence without carrying the state themselves. It is safe for concurrent
// use.
type Cycler[T any] struct {
	mu     sync.Mutex
	src    Source
	source []T
	state  CycleState[T]
}

// NewCycler returns a Cycler over a copy of source. A nil src uses Crypto.
func NewCycler[T any](source []T, src Source) *Cycler[T] {
	if src == nil {
		src = Crypto
	}
	return &Cycler[T]{src: src, source: clone(source)}
}

// Next draws the next element of the sequence.
func (c *Cycler[T]) Next() (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, state, err := CycleWith(c.src, c.source, c.state)
	if err != nil {
		return v, err
	}
	c.state = state
	return v, nil
}

// State returns the current state. It can be handed to Cycle to continue the
// sequence elsewhere.
func (c *Cycler[T]) State() CycleState[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
