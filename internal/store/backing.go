package store

import (
	"fmt"

	"github.com/hupe1980/hypergraph/core"
	"github.com/hupe1980/hypergraph/internal/conv"
)

// Backing is the dense array behind a Store.
//
// Positions are always 0..Len()-1. Implementations may reject entries
// (a KeySet rejects duplicates) but must not mutate anything when they do.
type Backing[E any] interface {
	Len() int
	At(p core.Position) (E, bool)
	Append(e E) (core.Position, error)
	Set(p core.Position, e E) error
	// SwapRemove moves the last entry into p and truncates by one.
	SwapRemove(p core.Position)
	Reset()
}

// Dense is a Backing over a plain slice.
type Dense[E any] struct {
	entries []E
}

// NewDense creates an empty Dense backing.
func NewDense[E any](capacity int) *Dense[E] {
	return &Dense[E]{entries: make([]E, 0, capacity)}
}

func (d *Dense[E]) Len() int { return len(d.entries) }

func (d *Dense[E]) At(p core.Position) (E, bool) {
	if int(p) >= len(d.entries) {
		var zero E
		return zero, false
	}
	return d.entries[p], true
}

func (d *Dense[E]) Append(e E) (core.Position, error) {
	p, err := conv.IntToPosition(len(d.entries))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCapacity, err)
	}
	d.entries = append(d.entries, e)
	return p, nil
}

func (d *Dense[E]) Set(p core.Position, e E) error {
	if int(p) >= len(d.entries) {
		return ErrPositionNotFound
	}
	d.entries[p] = e
	return nil
}

func (d *Dense[E]) SwapRemove(p core.Position) {
	last := len(d.entries) - 1
	d.entries[p] = d.entries[last]
	var zero E
	d.entries[last] = zero // release references held by the tail slot
	d.entries = d.entries[:last]
}

func (d *Dense[E]) Reset() {
	clear(d.entries)
	d.entries = d.entries[:0]
}
