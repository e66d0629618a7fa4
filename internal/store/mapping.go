package store

import (
	"fmt"

	"github.com/hupe1980/hypergraph/core"
	"github.com/hupe1980/hypergraph/internal/conv"
)

// Mapping is the bidirectional map between stable external IDs and dense
// internal positions.
//
// left is indexed by position (positions are always 0..Len()-1), right is a
// hash map keyed by ID. Both directions are only changed together, by Bind and
// Unbind.
type Mapping[ID comparable] struct {
	left  []ID
	right map[ID]core.Position
}

// NewMapping creates an empty mapping with room for capacity entries.
func NewMapping[ID comparable](capacity int) *Mapping[ID] {
	return &Mapping[ID]{
		left:  make([]ID, 0, capacity),
		right: make(map[ID]core.Position, capacity),
	}
}

// Len returns the number of bound IDs.
func (m *Mapping[ID]) Len() int { return len(m.left) }

// Position resolves an external ID.
func (m *Mapping[ID]) Position(id ID) (core.Position, bool) {
	p, ok := m.right[id]
	return p, ok
}

// ID resolves an internal position.
func (m *Mapping[ID]) ID(p core.Position) (ID, bool) {
	if int(p) >= len(m.left) {
		var zero ID
		return zero, false
	}
	return m.left[p], true
}

// Bind appends id at the next position.
func (m *Mapping[ID]) Bind(id ID) (core.Position, error) {
	if _, ok := m.right[id]; ok {
		return 0, fmt.Errorf("%w: id %v already bound", ErrDuplicate, id)
	}
	p, err := conv.IntToPosition(len(m.left))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCapacity, err)
	}
	m.left = append(m.left, id)
	m.right[id] = p
	return p, nil
}

// Unbind removes id and mirrors a swap-remove of the backing array: the ID at
// the last position moves to id's former position.
//
// It returns the freed position, the former last position and, when they
// differ, the ID that moved.
func (m *Mapping[ID]) Unbind(id ID) (p, last core.Position, moved ID, ok bool, err error) {
	p, found := m.right[id]
	if !found {
		return 0, 0, moved, false, ErrNotFound
	}
	last = core.Position(len(m.left) - 1)

	delete(m.right, id)
	if p != last {
		moved = m.left[last]
		m.left[p] = moved
		m.right[moved] = p
		ok = true
	}
	m.left = m.left[:last]

	return p, last, moved, ok, nil
}

// Reset removes all bindings.
func (m *Mapping[ID]) Reset() {
	m.left = m.left[:0]
	clear(m.right)
}

// Check verifies that left and right are mutual inverses.
func (m *Mapping[ID]) Check() error {
	if len(m.left) != len(m.right) {
		return fmt.Errorf("%w: %d positions but %d ids", ErrPositionNotFound, len(m.left), len(m.right))
	}
	for i, id := range m.left {
		p, ok := m.right[id]
		if !ok {
			return fmt.Errorf("%w: position %d maps to unbound id %v", ErrPositionNotFound, i, id)
		}
		if int(p) != i {
			return fmt.Errorf("%w: id %v maps to %d, expected %d", ErrPositionNotFound, id, p, i)
		}
	}
	return nil
}
