package store

import (
	"fmt"
	"iter"

	"github.com/hupe1980/hypergraph/core"
)

// Removal describes the outcome of a swap-compacting Remove.
//
// When Moved is true, the entry identified by MovedID was relocated from Last
// to Position and every outside reference to Last must be rewritten to
// Position.
type Removal[ID any] struct {
	ID       ID
	Position core.Position
	Last     core.Position
	Moved    bool
	MovedID  ID
}

// Store is an indexed entity store: a dense Backing plus a Mapping between
// stable external IDs and positions. IDs come from a monotonically increasing
// counter and are never reused.
type Store[ID ~uint64, E any] struct {
	backing Backing[E]
	mapping *Mapping[ID]
	next    ID
}

// New creates a Store over the given backing. The backing must be empty.
func New[ID ~uint64, E any](backing Backing[E], capacity int) *Store[ID, E] {
	return &Store[ID, E]{
		backing: backing,
		mapping: NewMapping[ID](capacity),
	}
}

// Len returns the number of live entries.
func (s *Store[ID, E]) Len() int { return s.backing.Len() }

// Insert appends e and assigns it a fresh ID.
func (s *Store[ID, E]) Insert(e E) (ID, core.Position, error) {
	p, err := s.backing.Append(e)
	if err != nil {
		return 0, 0, err
	}

	id := s.next
	if bp, err := s.mapping.Bind(id); err != nil || bp != p {
		// Roll back the append so the store is left untouched.
		s.backing.SwapRemove(p)
		if err == nil {
			err = fmt.Errorf("%w: bound %v at %d, backing at %d", ErrPositionNotFound, id, bp, p)
		}
		return 0, 0, err
	}
	s.next++

	return id, p, nil
}

// Position resolves an external ID to its current position.
func (s *Store[ID, E]) Position(id ID) (core.Position, error) {
	p, ok := s.mapping.Position(id)
	if !ok {
		return 0, ErrNotFound
	}
	return p, nil
}

// IDAt resolves a position to the external ID stored there.
func (s *Store[ID, E]) IDAt(p core.Position) (ID, error) {
	id, ok := s.mapping.ID(p)
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrPositionNotFound, p)
	}
	return id, nil
}

// Get returns the entry for id.
func (s *Store[ID, E]) Get(id ID) (E, error) {
	p, ok := s.mapping.Position(id)
	if !ok {
		var zero E
		return zero, ErrNotFound
	}
	return s.At(p)
}

// At returns the entry at position p.
func (s *Store[ID, E]) At(p core.Position) (E, error) {
	e, ok := s.backing.At(p)
	if !ok {
		return e, fmt.Errorf("%w: %d", ErrPositionNotFound, p)
	}
	return e, nil
}

// Update replaces the entry for id in place. Its position does not change.
func (s *Store[ID, E]) Update(id ID, e E) error {
	p, ok := s.mapping.Position(id)
	if !ok {
		return ErrNotFound
	}
	return s.backing.Set(p, e)
}

// Remove deletes id by swap-compaction.
//
// The last entry moves into the freed slot and the mapping is updated for
// both the removed and the moved ID in one step. The caller owns any outside
// reference to Removal.Last.
func (s *Store[ID, E]) Remove(id ID) (Removal[ID], error) {
	p, ok := s.mapping.Position(id)
	if !ok {
		return Removal[ID]{}, ErrNotFound
	}
	if int(p) >= s.backing.Len() {
		return Removal[ID]{}, fmt.Errorf("%w: %d", ErrPositionNotFound, p)
	}

	s.backing.SwapRemove(p)

	_, last, moved, ok, err := s.mapping.Unbind(id)
	if err != nil {
		return Removal[ID]{}, err
	}

	return Removal[ID]{
		ID:       id,
		Position: p,
		Last:     last,
		Moved:    ok,
		MovedID:  moved,
	}, nil
}

// Reset removes all entries. The ID counter keeps running so that IDs are
// never reused.
func (s *Store[ID, E]) Reset() {
	s.backing.Reset()
	s.mapping.Reset()
}

// All iterates live entries in position order.
func (s *Store[ID, E]) All() iter.Seq2[ID, E] {
	return func(yield func(ID, E) bool) {
		for i := 0; i < s.backing.Len(); i++ {
			p := core.Position(i)
			id, ok := s.mapping.ID(p)
			if !ok {
				return
			}
			e, _ := s.backing.At(p)
			if !yield(id, e) {
				return
			}
		}
	}
}

// Check verifies the mapping bijection and that it covers the backing.
func (s *Store[ID, E]) Check() error {
	if s.mapping.Len() != s.backing.Len() {
		return fmt.Errorf("%w: mapping has %d entries, backing has %d",
			ErrPositionNotFound, s.mapping.Len(), s.backing.Len())
	}
	return s.mapping.Check()
}
