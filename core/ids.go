package core

import "fmt"

// VertexIndex is a stable, user-facing identifier for a vertex.
// Invariant: assigned once at creation, never reused, never changed while the
// vertex lives, even when its internal Position moves.
type VertexIndex uint64

// HyperedgeIndex is a stable, user-facing identifier for a hyperedge.
// Same contract as VertexIndex.
type HyperedgeIndex uint64

// Position is a dense, internal offset into a store's backing array.
// It is not stable: swap-compacting removal moves the last entry into the
// freed slot.
type Position uint32

// MaxPosition is the largest addressable Position.
const MaxPosition = ^Position(0)

func (v VertexIndex) String() string { return fmt.Sprintf("VertexIndex(%d)", uint64(v)) }

func (h HyperedgeIndex) String() string { return fmt.Sprintf("HyperedgeIndex(%d)", uint64(h)) }
