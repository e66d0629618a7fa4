package hypergraph

import (
	"errors"
	"fmt"

	"github.com/hupe1980/hypergraph/core"
	"github.com/hupe1980/hypergraph/internal/store"
)

var (
	// ErrNotFound is returned when an external vertex or hyperedge index does
	// not resolve. Nothing is mutated.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateHyperedge is returned when an insert or content rewrite would
	// produce a hyperedge identical (same ordered vertices, same weight) to
	// another live hyperedge. Nothing is mutated.
	ErrDuplicateHyperedge = errors.New("duplicate hyperedge")

	// ErrNoVertices is returned when a hyperedge with an empty vertex sequence
	// is requested.
	ErrNoVertices = errors.New("hyperedge has no vertices")

	// ErrInternalIndexNotFound signals a broken index invariant: an internal
	// position that should resolve does not. It aborts the operation, never
	// the process.
	ErrInternalIndexNotFound = errors.New("internal index not found")

	// ErrCapacityExceeded is returned when a store cannot address another entry.
	ErrCapacityExceeded = errors.New("capacity exceeded")
)

// Op identifies the public operation that produced an error.
type Op string

const (
	OpAddVertex               Op = "add_vertex"
	OpGetVertex               Op = "get_vertex"
	OpUpdateVertex            Op = "update_vertex"
	OpRemoveVertex            Op = "remove_vertex"
	OpGetVertexHyperedges     Op = "get_vertex_hyperedges"
	OpAddHyperedge            Op = "add_hyperedge"
	OpGetHyperedgeVertices    Op = "get_hyperedge_vertices"
	OpGetHyperedgeWeight      Op = "get_hyperedge_weight"
	OpUpdateHyperedgeVertices Op = "update_hyperedge_vertices"
	OpUpdateHyperedgeWeight   Op = "update_hyperedge_weight"
	OpReverseHyperedge        Op = "reverse_hyperedge"
	OpRemoveHyperedge         Op = "remove_hyperedge"
	OpValidate                Op = "validate"
)

// Entity identifies the entity family an error refers to.
type Entity uint8

const (
	EntityVertex Entity = iota
	EntityHyperedge
)

func (e Entity) String() string {
	if e == EntityHyperedge {
		return "hyperedge"
	}
	return "vertex"
}

// Error is the error type returned by every Hypergraph operation.
//
// It carries only the offending index (or internal position) and an operation
// tag, never vertex payloads or weights; callers format diagnostics with their
// own lookups. Match the kind with errors.Is against the package sentinels.
type Error struct {
	Op     Op
	Entity Entity
	// Index is the external index involved, if any.
	Index uint64
	// Position is the internal position involved; only meaningful for
	// ErrInternalIndexNotFound.
	Position core.Position
	// Err is one of the package sentinels.
	Err error

	cause error
}

func (e *Error) Error() string {
	var msg string
	if errors.Is(e.Err, ErrInternalIndexNotFound) {
		msg = fmt.Sprintf("%s: %s: %s position %d", e.Op, e.Err, e.Entity, e.Position)
	} else {
		msg = fmt.Sprintf("%s: %s: %s %d", e.Op, e.Err, e.Entity, e.Index)
	}
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.cause}
}

// IsInternal reports whether err signals a broken index invariant.
func IsInternal(err error) bool {
	return errors.Is(err, ErrInternalIndexNotFound)
}

func vertexError(op Op, v core.VertexIndex, sentinel error) *Error {
	return &Error{Op: op, Entity: EntityVertex, Index: uint64(v), Err: sentinel}
}

func hyperedgeError(op Op, h core.HyperedgeIndex, sentinel error) *Error {
	return &Error{Op: op, Entity: EntityHyperedge, Index: uint64(h), Err: sentinel}
}

func internalError(op Op, entity Entity, p core.Position, cause error) *Error {
	return &Error{Op: op, Entity: entity, Position: p, Err: ErrInternalIndexNotFound, cause: cause}
}

// translateError maps errors from the internal stores to the package sentinels.
func translateError(op Op, entity Entity, index uint64, err error) error {
	if err == nil {
		return nil
	}

	var he *Error
	if errors.As(err, &he) {
		return err
	}

	e := &Error{Op: op, Entity: entity, Index: index, cause: err}
	switch {
	case errors.Is(err, store.ErrNotFound):
		e.Err, e.cause = ErrNotFound, nil
	case errors.Is(err, store.ErrDuplicate):
		e.Err = ErrDuplicateHyperedge
	case errors.Is(err, store.ErrPositionNotFound):
		e.Err = ErrInternalIndexNotFound
	case errors.Is(err, store.ErrCapacity):
		e.Err = ErrCapacityExceeded
	default:
		e.Err = ErrInternalIndexNotFound
	}
	return e
}
